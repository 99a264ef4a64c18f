package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/studentsim/internal/llm"
	"github.com/abhisek/studentsim/internal/response"
	"github.com/abhisek/studentsim/internal/session"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <question>",
	Short: "Generate simulated student responses to a question",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		mode, _ := cmd.Flags().GetString("mode")
		asJSON, _ := cmd.Flags().GetBool("json")
		explain, _ := cmd.Flags().GetBool("explain")

		q := response.Question{Text: strings.Join(args, " "), NumberOfResponses: count}
		if err := q.Validate(); err != nil {
			return err
		}

		svc, err := sessionFor(cmd, mode)
		if err != nil {
			return err
		}

		st, err := svc.Submit(cmd.Context(), session.State{}, q)
		if err != nil {
			return err
		}
		if st.Banner != "" {
			fmt.Fprintln(os.Stderr, "Warning:", st.Banner)
		}

		if asJSON {
			return writeJSON(cmd.OutOrStdout(), st)
		}
		printResponses(cmd.OutOrStdout(), st, explain)
		return nil
	},
}

// sessionFor builds a session service for mode: auto uses a provider when
// one is configured, mock never does, live requires one.
func sessionFor(cmd *cobra.Command, mode string) (*session.Service, error) {
	log := cliLogger(cmd)
	switch mode {
	case "mock":
		return session.NewService(session.Deps{Logger: log}), nil
	case "auto", "live":
	default:
		return nil, fmt.Errorf("unknown mode %q (want auto, live or mock)", mode)
	}

	st, err := openStore(cmd)
	if err != nil {
		return nil, err
	}
	cobra.OnFinalize(func() { st.Close() })

	provider, _ := envProvider(cmd.Context(), st.EventRepo(), log)
	if provider == nil && mode == "live" {
		return nil, llm.ErrNotConfigured
	}
	return session.NewService(session.Deps{Provider: provider, Logger: log}), nil
}

func printResponses(w io.Writer, st session.State, explain bool) {
	fmt.Fprintf(w, "Question: %s\n", st.Question)
	fmt.Fprintf(w, "Source:   %s (%d responses)\n\n", st.Source, len(st.Responses))
	for _, r := range st.Responses {
		q := r.Quality
		if q == "" {
			q = response.ClassifyQuality(r.Content, st.Question)
		}
		fmt.Fprintf(w, "Student %d [%s]", r.ID, q)
		if explain {
			fmt.Fprintf(w, " score=%d", response.ScoreResponse(r.Content, st.Question))
		}
		fmt.Fprintf(w, "\n%s\n\n", r.Content)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	simulateCmd.Flags().IntP("count", "n", 10, fmt.Sprintf("Number of student responses (1-%d)", response.MaxResponses))
	simulateCmd.Flags().StringP("mode", "m", "auto", "Generation mode: auto, live or mock")
	simulateCmd.Flags().Bool("json", false, "Print the session as JSON (usable as analyze input)")
	simulateCmd.Flags().Bool("explain", false, "Show the quality score behind each tag")
}
