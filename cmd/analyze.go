package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/studentsim/internal/render"
	"github.com/abhisek/studentsim/internal/response"
	"github.com/abhisek/studentsim/internal/session"
	"github.com/abhisek/studentsim/internal/ui/docview"
)

const terminalWidth = 100

var analyzeCmd = &cobra.Command{
	Use:   "analyze <follow-up>",
	Short: "Ask a follow-up question about a batch of responses",
	Long: "Ask a follow-up question about a batch of responses. The batch is read from\n" +
		"--responses (or stdin) as the JSON printed by `simulate --json`, or as a bare\n" +
		"array of {id, content} objects together with --question.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("responses")
		question, _ := cmd.Flags().GetString("question")
		mode, _ := cmd.Flags().GetString("mode")

		raw, err := readInput(cmd, path)
		if err != nil {
			return fmt.Errorf("read responses: %w", err)
		}
		st, err := decodeBatch(raw, question)
		if err != nil {
			return err
		}

		svc, err := sessionFor(cmd, mode)
		if err != nil {
			return err
		}
		st, err = svc.Analyze(cmd.Context(), st, strings.Join(args, " "))
		if err != nil {
			return err
		}
		if st.Banner != "" {
			fmt.Fprintln(os.Stderr, "Warning:", st.Banner)
		}
		return printDocument(cmd, st.Analysis)
	},
}

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render analysis text (chart, dashboard, or narrative) from a file or stdin",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		raw, err := readInput(cmd, path)
		if err != nil {
			return fmt.Errorf("read analysis: %w", err)
		}
		return printDocument(cmd, &response.Analysis{Response: string(raw)})
	},
}

// decodeBatch accepts a session object or a bare response array.
func decodeBatch(raw []byte, question string) (session.State, error) {
	var st session.State
	trimmed := strings.TrimSpace(string(raw))
	switch {
	case trimmed == "":
		return st, errors.New("no responses given")
	case strings.HasPrefix(trimmed, "["):
		if err := json.Unmarshal([]byte(trimmed), &st.Responses); err != nil {
			return st, fmt.Errorf("decode responses: %w", err)
		}
	default:
		if err := json.Unmarshal([]byte(trimmed), &st); err != nil {
			return st, fmt.Errorf("decode session: %w", err)
		}
	}
	if question != "" {
		st.Question = question
	}
	for i := range st.Responses {
		if st.Responses[i].ID == 0 {
			st.Responses[i].ID = i + 1
		}
	}
	if !st.HasResponses() {
		return st, session.ErrNoResponses
	}
	return st, nil
}

// printDocument prints an analysis styled for the terminal, as plain
// markdown-ish text, or as JSON.
func printDocument(cmd *cobra.Command, a *response.Analysis) error {
	plain, _ := cmd.Flags().GetBool("plain")
	asJSON, _ := cmd.Flags().GetBool("json")
	w := cmd.OutOrStdout()
	doc := render.Render(a.Response)

	switch {
	case asJSON:
		return writeJSON(w, struct {
			Analysis *response.Analysis `json:"analysis,omitempty"`
			Document *render.Document   `json:"document"`
		}{Analysis: a, Document: doc})
	case plain:
		_, err := io.WriteString(w, render.Plain(doc)+"\n")
		return err
	}
	if a.Question != "" {
		fmt.Fprintf(w, "Follow-up: %s\n\n", a.Question)
	}
	_, err := io.WriteString(w, docview.View(doc, terminalWidth)+"\n")
	return err
}

func init() {
	analyzeCmd.Flags().StringP("responses", "r", "", "Responses JSON file (default stdin)")
	analyzeCmd.Flags().StringP("question", "q", "", "Original question (overrides the one in the file)")
	analyzeCmd.Flags().StringP("mode", "m", "auto", "Generation mode: auto, live or mock")
	for _, c := range []*cobra.Command{analyzeCmd, renderCmd} {
		c.Flags().Bool("plain", false, "Print plain text instead of styled output")
		c.Flags().Bool("json", false, "Print the rendered document as JSON")
	}
}
