package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/23bam037-tech/HITHESH-P-H/internal/llm"
)

// MockLLMClient implements llm.Client for testing
type MockLLMClient struct {
	GenerateFunc func(ctx context.Context, req llm.Request) (string, error)
	Requests     []llm.Request
}

func (m *MockLLMClient) Generate(ctx context.Context, req llm.Request) (string, error) {
	m.Requests = append(m.Requests, req)
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}
	return "", nil
}

func (m *MockLLMClient) GetModel(llm.ModelTier) string { return "mock-model" }

func (m *MockLLMClient) Close() error { return nil }

func TestPlainText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text untouched", "  Get the AWS Solutions Architect cert.  ", "Get the AWS Solutions Architect cert."},
		{"comparison operators are not tags", "Pick roles where demand > supply and 3 < 5", "Pick roles where demand > supply and 3 < 5"},
		{"paragraphs", "<p>First step.</p><p>Second step.</p>", "First step.\nSecond step."},
		{"list with entities", "<ul><li>Python &amp; SQL</li><li>Spark</li></ul>", "Python & SQL\nSpark"},
		{"line breaks", "Line one<br>Line two", "Line one\nLine two"},
		{"script removed", "<script>alert(1)</script><b>Safe</b>", "Safe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlainText(tt.input))
		})
	}
}

func TestSingle_Reply(t *testing.T) {
	client := &MockLLMClient{GenerateFunc: func(context.Context, llm.Request) (string, error) {
		return "<p>Take the Google Data Analytics certificate.</p>", nil
	}}

	reply, err := NewSingle(client).Reply(context.Background(), "s1", "Which cert first?", "User Profile: B.Sc IT, SQL.")

	require.NoError(t, err)
	assert.Equal(t, "Take the Google Data Analytics certificate.", reply)

	require.Len(t, client.Requests, 1)
	req := client.Requests[0]
	assert.Equal(t, llm.TierLite, req.Tier)
	assert.True(t, req.Grounded)
	assert.True(t, req.FastPath)
	assert.Nil(t, req.Schema)
	assert.Contains(t, req.Prompt, "Which cert first?")
	assert.Contains(t, req.Prompt, "User Profile: B.Sc IT, SQL.")
}

func TestSingle_ReplyErrors(t *testing.T) {
	cause := errors.New("unavailable")
	failing := &MockLLMClient{GenerateFunc: func(context.Context, llm.Request) (string, error) { return "", cause }}
	empty := &MockLLMClient{GenerateFunc: func(context.Context, llm.Request) (string, error) { return "<div> </div>", nil }}

	_, err := NewSingle(failing).Reply(context.Background(), "s1", "hi", "")
	assert.ErrorIs(t, err, cause)

	_, err = NewSingle(empty).Reply(context.Background(), "s1", "hi", "")
	assert.ErrorIs(t, err, ErrEmptyReply)

	assert.NoError(t, NewSingle(empty).Forget(context.Background(), "s1"))
}

func TestNewAgent_RequiresAPIKey(t *testing.T) {
	_, err := NewAgent(context.Background(), nil, "")
	assert.ErrorIs(t, err, llm.ErrNoAPIKey)
}
