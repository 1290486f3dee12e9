package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/23bam037-tech/HITHESH-P-H/internal/document"
	"github.com/23bam037-tech/HITHESH-P-H/internal/types"
)

const rawResume = "Jane Doe\nData Analyst\nPython, SQL, Tableau"

func TestAnalyzeResume_RequiresText(t *testing.T) {
	f := &fakeEngines{}
	c, _ := newTestController(t, f)
	c.SetResumeText("   \n ")

	var ve *ValidationError
	require.ErrorAs(t, c.AnalyzeResume(context.Background()), &ve)
	require.ErrorAs(t, c.OptimizeResume(context.Background()), &ve)
	assert.Empty(t, f.audited)
	assert.Empty(t, f.optimized)
}

func TestAnalyzeResume_ShowsResult(t *testing.T) {
	f := &fakeEngines{}
	c, _ := newTestController(t, f)
	c.SetResumeText(rawResume)

	require.NoError(t, c.AnalyzeResume(context.Background()))

	snap := c.Snapshot()
	assert.Equal(t, ResumeResult, snap.Resume.Mode)
	require.NotNil(t, snap.Resume.Analysis)
	assert.Equal(t, 64.0, snap.Resume.Analysis.Score)

	// editing the text returns to edit mode but keeps the last audit
	c.SetResumeText(rawResume + "\nDocker")
	snap = c.Snapshot()
	assert.Equal(t, ResumeEdit, snap.Resume.Mode)
	assert.NotNil(t, snap.Resume.Analysis)
	require.NoError(t, c.SetResumeMode(ResumeResult))
}

func TestSetResumeMode_ResultNeedsAnalysis(t *testing.T) {
	c, _ := newTestController(t, &fakeEngines{})

	var ve *ValidationError
	require.ErrorAs(t, c.SetResumeMode(ResumeResult), &ve)
	assert.Equal(t, ResumeEdit, c.Snapshot().Resume.Mode)
	require.NoError(t, c.SetResumeMode(ResumeEdit))
}

func TestOptimizeResume_Target(t *testing.T) {
	tests := []struct {
		name       string
		careerGoal string
		dashboard  bool
		want       string
	}{
		{name: "selected career wins", careerGoal: "Data Scientist", dashboard: true, want: "Data Scientist"},
		{name: "career goal without selection", careerGoal: "Cloud Engineer", want: "Cloud Engineer"},
		{name: "default label", want: types.DefaultOptimizationTarget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeEngines{}
			c, _ := newTestController(t, f)
			if tt.dashboard {
				reachDashboard(t, c)
				c.WaitBackground()
			} else {
				p := testProfile()
				p.CareerGoal = tt.careerGoal
				require.NoError(t, c.UpdateProfile(p))
			}
			c.SetResumeText(rawResume)

			require.NoError(t, c.OptimizeResume(context.Background()))

			require.Len(t, f.optimized, 1)
			assert.Equal(t, tt.want, f.optimized[0][1])
			snap := c.Snapshot()
			require.NotNil(t, snap.Resume.Optimization)
			assert.Equal(t, tt.want, snap.Resume.Optimization.Target)
			assert.Equal(t, LevelSuccess, snap.Notification.Level)
		})
	}
}

func TestOptimizeResume_FailureKeepsPrevious(t *testing.T) {
	f := &fakeEngines{}
	c, _ := newTestController(t, f)
	c.SetResumeText(rawResume)
	require.NoError(t, c.OptimizeResume(context.Background()))

	f.OptimizeFunc = func(context.Context, string, string) (*types.ResumeOptimization, error) {
		return nil, errors.New("deadline exceeded")
	}
	err := c.OptimizeResume(context.Background())

	var ee *EngineError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, "optimize resume", ee.Operation)
	snap := c.Snapshot()
	assert.Equal(t, "OPTIMIZED: "+rawResume, snap.Resume.Optimization.OptimizedText)
	assert.Equal(t, LevelError, snap.Notification.Level)
}

func TestResumeText_RoundTrip(t *testing.T) {
	const uploaded = "John Smith\nCloud Engineer\nAWS, Terraform\n"

	tests := []struct {
		name string
		set  func(t *testing.T, c *Controller)
		want string
	}{
		{
			name: "manual entry",
			set: func(t *testing.T, c *Controller) {
				c.SetResumeText(rawResume)
			},
			want: rawResume,
		},
		{
			name: "document upload",
			set: func(t *testing.T, c *Controller) {
				require.NoError(t, c.UploadResume(context.Background(), []byte("%PDF-1.7 ..."), "resume.pdf"))
			},
			want: uploaded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeEngines{
				ExtractFunc: func([]byte, string) (string, error) { return uploaded, nil },
			}
			c, _ := newTestController(t, f)
			tt.set(t, c)

			require.NoError(t, c.AnalyzeResume(context.Background()))
			require.NoError(t, c.OptimizeResume(context.Background()))

			assert.Equal(t, []string{tt.want}, f.audited)
			require.Len(t, f.optimized, 1)
			assert.Equal(t, tt.want, f.optimized[0][0])
		})
	}
}

func TestUploadResume_OpensEditor(t *testing.T) {
	f := &fakeEngines{
		ExtractFunc: func(data []byte, name string) (string, error) {
			assert.Equal(t, "cv.pdf", name)
			return "Extracted text\n", nil
		},
	}
	c, _ := newTestController(t, f)
	require.NoError(t, c.Navigate(ViewChat))

	require.NoError(t, c.UploadResume(context.Background(), []byte("%PDF-"), "cv.pdf"))

	snap := c.Snapshot()
	assert.Equal(t, ViewResume, snap.View)
	assert.Equal(t, ResumeEdit, snap.Resume.Mode)
	assert.Equal(t, "Extracted text\n", snap.Resume.Text)
	assert.False(t, snap.Busy)
}

func TestUploadResume_ExtractionFailures(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
	}{
		{
			name:    "unsupported",
			err:     &document.UnsupportedDocumentError{Name: "cv.docx"},
			message: "Only PDF documents can be uploaded.",
		},
		{
			name:    "empty",
			err:     document.ErrEmptyDocument,
			message: "No text could be found in the document. Try pasting the resume instead.",
		},
		{
			name:    "corrupt",
			err:     &document.ExtractionError{Message: "bad xref table"},
			message: "The document could not be read. It may be corrupt.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeEngines{
				ExtractFunc: func([]byte, string) (string, error) { return "", tt.err },
			}
			c, _ := newTestController(t, f)
			c.SetResumeText(rawResume)

			err := c.UploadResume(context.Background(), []byte("data"), "cv")

			assert.ErrorIs(t, err, tt.err)
			snap := c.Snapshot()
			assert.Equal(t, ViewForm, snap.View)
			assert.Equal(t, rawResume, snap.Resume.Text)
			require.NotNil(t, snap.Notification)
			assert.Equal(t, LevelError, snap.Notification.Level)
			assert.Equal(t, tt.message, snap.Notification.Message)
		})
	}
}

func TestCopyOptimizedResume(t *testing.T) {
	c, _ := newTestController(t, &fakeEngines{})

	_, err := c.CopyOptimizedResume()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	c.SetResumeText(rawResume)
	require.NoError(t, c.OptimizeResume(context.Background()))

	text, err := c.CopyOptimizedResume()
	require.NoError(t, err)
	assert.Equal(t, "OPTIMIZED: "+rawResume, text)
	assert.Equal(t, "Optimized resume copied to clipboard.", c.Snapshot().Notification.Message)
}

func TestPrintableResume(t *testing.T) {
	c, _ := newTestController(t, &fakeEngines{})

	_, err := c.PrintableResume()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	c.SetResumeText(rawResume)
	text, err := c.PrintableResume()
	require.NoError(t, err)
	assert.Equal(t, rawResume, text, "falls back to the raw text")

	require.NoError(t, c.OptimizeResume(context.Background()))
	text, err = c.PrintableResume()
	require.NoError(t, err)
	assert.Equal(t, "OPTIMIZED: "+rawResume, text)
}
