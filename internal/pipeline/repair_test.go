package pipeline

import (
	"context"
	"os"
	"testing"

	"footbuddy/internal/config"
	"footbuddy/internal/llm"
	"footbuddy/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := logger.InitLogger("error"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// fakeInvoker returns canned responses and counts invocations.
type fakeInvoker struct {
	fn    func(model config.ModelConfig, prompt string) (string, error)
	calls int
}

func (f *fakeInvoker) Invoke(_ context.Context, model config.ModelConfig, prompt string) (string, error) {
	f.calls++
	return f.fn(model, prompt)
}

func testPrompts(t *testing.T) *llm.Prompts {
	t.Helper()
	prompts, err := llm.LoadPrompts()
	require.NoError(t, err)
	return prompts
}

func newRepairLoop(t *testing.T, invoker *fakeInvoker) *RepairLoop {
	t.Helper()
	return NewRepairLoop(invoker, testPrompts(t), config.ModelConfig{Name: "fix-model"})
}

func TestResolve_ValidResponseShortCircuits(t *testing.T) {
	invoker := &fakeInvoker{fn: func(config.ModelConfig, string) (string, error) {
		t.Fatal("repair must not be invoked for a valid response")
		return "", nil
	}}

	judgment, accepted := newRepairLoop(t, invoker).Resolve(context.Background(),
		`{"answer": "yes", "reason": "red card in 88th minute"}`)

	assert.True(t, accepted)
	assert.Equal(t, "yes", judgment.Answer)
	require.NotNil(t, judgment.Reason)
	assert.Equal(t, "red card in 88th minute", *judgment.Reason)
	assert.Zero(t, invoker.calls)
}

func TestResolve_FencedResponseAccepted(t *testing.T) {
	invoker := &fakeInvoker{fn: func(config.ModelConfig, string) (string, error) {
		t.Fatal("repair must not be invoked for a fenced but valid response")
		return "", nil
	}}

	_, accepted := newRepairLoop(t, invoker).Resolve(context.Background(),
		"```json\n{\"answer\": \"no\", \"reason\": null}\n```")

	assert.True(t, accepted)
}

func TestResolve_RepairSucceeds(t *testing.T) {
	invoker := &fakeInvoker{fn: func(_ config.ModelConfig, prompt string) (string, error) {
		// The fix prompt carries the malformed payload and the examples.
		assert.Contains(t, prompt, "answer: yes")
		assert.Contains(t, prompt, "Input:")
		return `{"answer": "yes", "reason": null}`, nil
	}}

	judgment, accepted := newRepairLoop(t, invoker).Resolve(context.Background(), "answer: yes")

	assert.True(t, accepted)
	assert.Equal(t, "yes", judgment.Answer)
	assert.Nil(t, judgment.Reason)
	assert.Equal(t, 1, invoker.calls)
}

func TestResolve_RepairStillMalformedIsRejected(t *testing.T) {
	invoker := &fakeInvoker{fn: func(config.ModelConfig, string) (string, error) {
		return "still not json", nil
	}}

	_, accepted := newRepairLoop(t, invoker).Resolve(context.Background(), "answer: yes")

	assert.False(t, accepted)
	assert.Equal(t, 1, invoker.calls, "repair is invoked at most once")
}

func TestResolve_InvalidSchemaTriggersRepair(t *testing.T) {
	// Parseable JSON that violates the schema still goes through repair.
	invoker := &fakeInvoker{fn: func(config.ModelConfig, string) (string, error) {
		return `{"answer": "no", "reason": null}`, nil
	}}

	judgment, accepted := newRepairLoop(t, invoker).Resolve(context.Background(),
		`{"answer": "Yes!", "reason": "penalty shootout"}`)

	assert.True(t, accepted)
	assert.Equal(t, "no", judgment.Answer)
	assert.Equal(t, 1, invoker.calls)
}

func TestResolve_RepairCallErrorIsRejected(t *testing.T) {
	invoker := &fakeInvoker{fn: func(config.ModelConfig, string) (string, error) {
		return "", assert.AnError
	}}

	_, accepted := newRepairLoop(t, invoker).Resolve(context.Background(), "garbage")

	assert.False(t, accepted)
	assert.Equal(t, 1, invoker.calls)
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{"plain", `{"a": 1}`, `{"a": 1}`},
		{"fenced with tag", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"fenced without tag", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  \n```json\n{}\n```\n ", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.out, stripCodeFences(tt.in))
		})
	}
}
