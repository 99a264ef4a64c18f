package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studentsim/internal/response"
	"github.com/abhisek/studentsim/internal/session"
	"github.com/abhisek/studentsim/internal/store"
)

func TestDecodeBatchSession(t *testing.T) {
	raw := `{"question":"Why?","responses":[{"id":2,"content":"Because."}],"source":"mock"}`
	st, err := decodeBatch([]byte(raw), "")
	require.NoError(t, err)
	assert.Equal(t, "Why?", st.Question)
	assert.Equal(t, response.SourceMock, st.Source)
	assert.Equal(t, 2, st.Responses[0].ID)
}

func TestDecodeBatchArrayNumbersAndOverridesQuestion(t *testing.T) {
	raw := `[{"content":"First"},{"content":"Second"}]`
	st, err := decodeBatch([]byte(raw), "What is rain?")
	require.NoError(t, err)
	assert.Equal(t, "What is rain?", st.Question)
	require.Len(t, st.Responses, 2)
	assert.Equal(t, 1, st.Responses[0].ID)
	assert.Equal(t, 2, st.Responses[1].ID)
}

func TestDecodeBatchErrors(t *testing.T) {
	_, err := decodeBatch([]byte("  "), "")
	assert.Error(t, err)

	_, err = decodeBatch([]byte("{nope"), "")
	assert.ErrorContains(t, err, "decode session")

	_, err = decodeBatch([]byte(`{"question":"Q","responses":[]}`), "")
	assert.ErrorIs(t, err, session.ErrNoResponses)
}

func TestPrintResponsesExplain(t *testing.T) {
	var buf bytes.Buffer
	printResponses(&buf, session.State{
		Question:  "Q",
		Source:    response.SourceMock,
		Responses: []response.StudentResponse{{ID: 1, Content: "Short", Quality: response.QualityWeak}},
	}, true)
	out := buf.String()
	assert.Contains(t, out, "Source:   mock (1 responses)")
	assert.Contains(t, out, "Student 1 [weak] score=")
}

func newTestCmd(flags ...string) *cobra.Command {
	c := &cobra.Command{}
	c.Flags().Bool("plain", false, "")
	c.Flags().Bool("json", false, "")
	for _, f := range flags {
		_ = c.Flags().Set(f, "true")
	}
	return c
}

func TestPrintDocumentModes(t *testing.T) {
	a := &response.Analysis{Question: "Feedback", Response: "**Student 1**: Nice work."}

	c := newTestCmd("plain")
	var buf bytes.Buffer
	c.SetOut(&buf)
	require.NoError(t, printDocument(c, a))
	assert.Equal(t, "**Student 1**: Nice work.\n", buf.String())

	c = newTestCmd("json")
	buf.Reset()
	c.SetOut(&buf)
	require.NoError(t, printDocument(c, a))
	assert.Contains(t, buf.String(), `"kind": "student"`)
	assert.Contains(t, buf.String(), `"question": "Feedback"`)

	c = newTestCmd()
	buf.Reset()
	c.SetOut(&buf)
	require.NoError(t, printDocument(c, a))
	assert.True(t, strings.HasPrefix(buf.String(), "Follow-up: Feedback"))
	assert.Contains(t, buf.String(), "Nice work.")
}

func TestSessionForRejectsUnknownMode(t *testing.T) {
	_, err := sessionFor(newTestCmd(), "turbo")
	assert.ErrorContains(t, err, "unknown mode")
}

func TestPrintEventTable(t *testing.T) {
	var buf bytes.Buffer
	printEventTable(&buf, nil)
	assert.Equal(t, "No generation calls recorded.\n", buf.String())

	buf.Reset()
	printEventTable(&buf, []store.LLMEvent{
		{ID: 2, Timestamp: time.Now(), LLMRequestEventData: store.LLMRequestEventData{
			Model: "gpt-3.5-turbo", Purpose: "responses", InputTokens: 1000, OutputTokens: 1000, Success: true,
		}},
		{ID: 1, Timestamp: time.Now(), LLMRequestEventData: store.LLMRequestEventData{
			Model: "gpt-3.5-turbo", Purpose: "analysis", Success: false,
		}},
	})
	out := buf.String()
	assert.Contains(t, out, "$0.0020")
	assert.Contains(t, out, "failed")
	assert.Contains(t, out, "analysis")
}

func TestPrintUsageFlagsUnpricedModels(t *testing.T) {
	var buf bytes.Buffer
	printUsage(&buf,
		[]store.PurposeUsage{{Purpose: "responses", Calls: 2, InputTokens: 300, OutputTokens: 700}},
		[]store.ModelUsage{
			{Model: "gpt-3.5-turbo", Calls: 1, InputTokens: 1000, OutputTokens: 1000},
			{Model: "house-model", Calls: 1},
		})
	out := buf.String()
	assert.Contains(t, out, "total (priced models only)")
	assert.Contains(t, out, "No pricing for: house-model")
}
