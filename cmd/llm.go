package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/studentsim/internal/llm"
	"github.com/abhisek/studentsim/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded generation calls and their cost",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent generation calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		since, _ := cmd.Flags().GetDuration("since")

		switch llm.Purpose(purpose) {
		case "", llm.PurposeResponses, llm.PurposeAnalysis, llm.PurposeUnknown:
		default:
			return fmt.Errorf("unknown purpose %q (want %s or %s)", purpose, llm.PurposeResponses, llm.PurposeAnalysis)
		}

		opts := store.QueryOpts{Limit: limit, Purpose: purpose}
		if since > 0 {
			opts.From = time.Now().Add(-since)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		printEventTable(cmd.OutOrStdout(), events)
		return nil
	},
}

func printEventTable(w io.Writer, events []store.LLMEvent) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No generation calls recorded.")
		return
	}
	fmt.Fprintf(w, "%-5s  %-16s  %-10s  %-26s  %6s  %6s  %6s  %9s\n",
		"ID", "When", "Purpose", "Model", "In", "Out", "Ms", "Cost")
	fmt.Fprintln(w, strings.Repeat("─", 98))
	for _, e := range events {
		cost := "?"
		if c := llm.LookupCost(e.Model); c != nil {
			cost = formatCost(c.Cost(e.InputTokens, e.OutputTokens))
		}
		if !e.Success {
			cost = "failed"
		}
		fmt.Fprintf(w, "%-5d  %-16s  %-10s  %-26s  %6d  %6d  %6d  %9s\n",
			e.ID, e.Timestamp.Local().Format("Jan 02 15:04:05"), e.Purpose,
			truncate(e.Model, 26), e.InputTokens, e.OutputTokens, e.LatencyMs, cost)
	}
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the prompt and reply of one generation call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}
		printEvent(cmd.OutOrStdout(), e)
		return nil
	},
}

func printEvent(w io.Writer, e *store.LLMEvent) {
	status := "ok"
	if !e.Success {
		status = "failed: " + e.ErrorMessage
	}
	fmt.Fprintf(w, "Call #%d  %s\n", e.ID, e.Timestamp.Local().Format(time.DateTime))
	fmt.Fprintf(w, "  %s via %s, for %s\n", e.Model, e.Provider, e.Purpose)
	fmt.Fprintf(w, "  %d tokens in, %d out, %dms, %s\n", e.InputTokens, e.OutputTokens, e.LatencyMs, status)

	section := func(name, body string) {
		fmt.Fprintf(w, "\n── %s %s\n", name, strings.Repeat("─", max(0, 56-len(name))))
		if body == "" {
			body = "(not captured)"
		}
		fmt.Fprintln(w, strings.TrimRight(body, "\n"))
	}
	section("Prompt", e.RequestBody)
	section("Reply", e.ResponseBody)
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize token usage per feature and estimated cost per model",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		purposes, err := s.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		models, err := s.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		printUsage(cmd.OutOrStdout(), purposes, models)
		return nil
	},
}

func printUsage(w io.Writer, purposes []store.PurposeUsage, models []store.ModelUsage) {
	if len(purposes) == 0 {
		fmt.Fprintln(w, "No generation calls recorded.")
		return
	}
	rule := strings.Repeat("─", 64)

	fmt.Fprintln(w, "Tokens by feature")
	fmt.Fprintln(w, rule)
	var calls, in, out int
	for _, p := range purposes {
		fmt.Fprintf(w, "%-12s  %5d calls  %9d in  %9d out  avg %5dms\n",
			p.Purpose, p.Calls, p.InputTokens, p.OutputTokens, p.AvgLatencyMs)
		calls += p.Calls
		in += p.InputTokens
		out += p.OutputTokens
	}
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-12s  %5d calls  %9d in  %9d out\n", "total", calls, in, out)

	if len(models) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Estimated cost (USD)")
	fmt.Fprintln(w, rule)
	var total float64
	var unpriced []string
	for _, m := range models {
		c := llm.LookupCost(m.Model)
		if c == nil {
			unpriced = append(unpriced, m.Model)
			fmt.Fprintf(w, "%-32s  %5d calls  %9s\n", truncate(m.Model, 32), m.Calls, "?")
			continue
		}
		usd := c.Cost(m.InputTokens, m.OutputTokens)
		total += usd
		fmt.Fprintf(w, "%-32s  %5d calls  %9s\n", truncate(m.Model, 32), m.Calls, formatCost(usd))
	}
	fmt.Fprintln(w, rule)
	label := "total"
	if len(unpriced) > 0 {
		label = "total (priced models only)"
	}
	fmt.Fprintf(w, "%-32s  %17s\n", label, formatCost(total))
	if len(unpriced) > 0 {
		fmt.Fprintf(w, "No pricing for: %s\n", strings.Join(unpriced, ", "))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of calls to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only show calls for responses or analysis")
	llmListCmd.Flags().Duration("since", 0, "Only show calls newer than this (e.g. 24h)")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
