package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/23bam037-tech/HITHESH-P-H/internal/events"
	"github.com/23bam037-tech/HITHESH-P-H/internal/types"
)

func TestSendMessage_OptimisticAppend(t *testing.T) {
	f := &fakeEngines{}
	c, rec := newTestController(t, f)

	var during []types.ChatMessage
	f.ReplyFunc = func(_ context.Context, conversationID, message, _ string) (string, error) {
		assert.Equal(t, "sess-1", conversationID)
		assert.Equal(t, "How do I move into data science?", message)
		during = c.Snapshot().Chat
		return "Start with statistics.", nil
	}

	msg, err := c.SendMessage(context.Background(), "  How do I move into data science?  ")
	require.NoError(t, err)

	require.Len(t, during, 1, "user message is visible before the reply")
	assert.Equal(t, types.RoleUser, during[0].Role)

	assert.Equal(t, types.RoleAssistant, msg.Role)
	assert.Equal(t, "Start with statistics.", msg.Text)

	chat := c.Snapshot().Chat
	require.Len(t, chat, 2)
	assert.Equal(t, types.ChatMessage{Role: types.RoleUser, Text: "How do I move into data science?", At: fixedNow}, chat[0])
	assert.Equal(t, msg, chat[1])
	assert.Equal(t, 2, rec.count(events.ChatMessage))
}

func TestSendMessage_FallbackOnFailure(t *testing.T) {
	f := &fakeEngines{
		ReplyFunc: func(context.Context, string, string, string) (string, error) {
			return "", errors.New("agent unavailable")
		},
	}
	c, _ := newTestController(t, f)

	msg, err := c.SendMessage(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, ChatFallback, msg.Text)

	chat := c.Snapshot().Chat
	require.Len(t, chat, 2)
	assert.Equal(t, "hello", chat[0].Text)
	assert.Equal(t, types.RoleAssistant, chat[1].Role)
	assert.Equal(t, ChatFallback, chat[1].Text)

	// a second failure adds exactly one more fallback and keeps the history
	_, err = c.SendMessage(context.Background(), "still there?")
	require.NoError(t, err)
	chat = c.Snapshot().Chat
	require.Len(t, chat, 4)
	assert.Equal(t, "hello", chat[0].Text)
	assert.Equal(t, "still there?", chat[2].Text)
	assert.Equal(t, ChatFallback, chat[3].Text)
}

func TestSendMessage_RejectsEmpty(t *testing.T) {
	f := &fakeEngines{}
	c, _ := newTestController(t, f)

	_, err := c.SendMessage(context.Background(), " \n")

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Empty(t, c.Snapshot().Chat)
	assert.Empty(t, f.replies)
}

func TestSendMessage_ContextLine(t *testing.T) {
	f := &fakeEngines{}
	c, _ := newTestController(t, f)
	require.NoError(t, c.UpdateProfile(testProfile()))

	_, err := c.SendMessage(context.Background(), "hi")
	require.NoError(t, err)

	reachDashboardFromProfile(t, c)
	c.WaitBackground()
	_, err = c.SendMessage(context.Background(), "what next?")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"User Profile: B.Sc Computer Science, Python, SQL.",
		"Trajectory Focus: Data Scientist. Profile: B.Sc Computer Science, Python, SQL.",
	}, f.replies)
}

func TestSendMessage_AllowedWhilePrimaryInFlight(t *testing.T) {
	started := make(chan struct{})
	unblock := make(chan struct{})
	f := &fakeEngines{
		AuditFunc: func(context.Context, string) (*types.ResumeAnalysis, error) {
			close(started)
			<-unblock
			return &types.ResumeAnalysis{Score: 50}, nil
		},
	}
	c, _ := newTestController(t, f)
	c.SetResumeText(rawResume)

	done := make(chan error, 1)
	go func() { done <- c.AnalyzeResume(context.Background()) }()
	<-started

	_, err := c.SendMessage(context.Background(), "quick question")
	require.NoError(t, err)
	assert.Len(t, c.Snapshot().Chat, 2)

	close(unblock)
	require.NoError(t, <-done)
}

// reachDashboardFromProfile finishes the journey for a controller whose profile is set
func reachDashboardFromProfile(t *testing.T, c *Controller) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, c.StartAssessment(ctx))
	for id, a := range sampleAnswers() {
		require.NoError(t, c.RecordAnswer(id, a))
	}
	require.NoError(t, c.SubmitAssessment(ctx))
	require.NoError(t, c.ProceedToDashboard(ctx))
}
