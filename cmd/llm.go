package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/compasshq/compass/internal/llm"
	"github.com/compasshq/compass/internal/store"
)

var purposes = []string{llm.PurposeQuizGen, llm.PurposeCareerPrediction, llm.PurposeGuidance}

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded model calls",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent model calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		if purpose != "" && !slices.Contains(purposes, purpose) {
			return fmt.Errorf("unknown purpose %q (want one of %s)", purpose, strings.Join(purposes, ", "))
		}

		e, err := newEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		events, err := e.store.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit, Purpose: purpose})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		printEvents(cmd.OutOrStdout(), events)
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the full request and response of one call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid event ID %q", args[0])
		}

		e, err := newEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		ev, err := e.store.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if ev == nil {
			return fmt.Errorf("event %d not found", id)
		}
		printEvent(cmd.OutOrStdout(), ev)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		byPurpose, err := e.store.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(byPurpose) == 0 {
			fmt.Fprintln(out, "No model calls recorded yet.")
			return nil
		}
		byModel, err := e.store.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}

		printPurposeUsage(out, byPurpose)
		fmt.Fprintln(out)
		printModelCost(out, byModel)
		return nil
	},
}

func printEvents(w io.Writer, events []store.LLMEvent) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No model calls found.")
		return
	}
	fmt.Fprintf(w, "%-5s  %-19s  %-17s  %-28s  %6s  %6s  %7s  %s\n",
		"ID", "Time", "Purpose", "Model", "In", "Out", "Ms", "OK")
	fmt.Fprintln(w, strings.Repeat("─", 104))
	for _, ev := range events {
		ok := "✓"
		if !ev.Success {
			ok = "✗"
		}
		fmt.Fprintf(w, "%-5d  %-19s  %-17s  %-28s  %6d  %6d  %7d  %s\n",
			ev.ID, ev.Timestamp.Local().Format("2006-01-02 15:04:05"), ev.Purpose,
			truncate(ev.Model, 28), ev.InputTokens, ev.OutputTokens, ev.LatencyMs, ok)
	}
}

func printEvent(w io.Writer, ev *store.LLMEvent) {
	fmt.Fprintf(w, "ID:        %d\n", ev.ID)
	fmt.Fprintf(w, "Time:      %s\n", ev.Timestamp.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Provider:  %s\n", ev.Provider)
	fmt.Fprintf(w, "Model:     %s\n", ev.Model)
	fmt.Fprintf(w, "Purpose:   %s\n", ev.Purpose)
	fmt.Fprintf(w, "Tokens:    %d in / %d out\n", ev.InputTokens, ev.OutputTokens)
	fmt.Fprintf(w, "Latency:   %dms\n", ev.LatencyMs)
	fmt.Fprintf(w, "Success:   %v\n", ev.Success)
	if ev.ErrorMessage != "" {
		fmt.Fprintf(w, "Error:     %s\n", ev.ErrorMessage)
	}
	printBody(w, "REQUEST", ev.RequestBody)
	printBody(w, "RESPONSE", ev.ResponseBody)
}

// printBody prints a captured body, indented when it is JSON.
func printBody(w io.Writer, title, body string) {
	sep := strings.Repeat("─", 60)
	fmt.Fprintf(w, "\n%s\n%s\n%s\n", sep, title, sep)
	if body == "" {
		fmt.Fprintln(w, "(not captured)")
		return
	}
	var buf bytes.Buffer
	if json.Indent(&buf, []byte(body), "", "  ") == nil {
		body = buf.String()
	}
	fmt.Fprintln(w, body)
}

func printPurposeUsage(w io.Writer, usage []store.LLMUsage) {
	sep := strings.Repeat("─", 76)
	fmt.Fprintln(w, "Usage by Purpose")
	fmt.Fprintln(w, sep)
	fmt.Fprintf(w, "%-18s  %6s  %8s  %10s  %10s  %10s\n", "Purpose", "Calls", "Failed", "Input", "Output", "Total")
	fmt.Fprintln(w, sep)

	var total store.LLMUsage
	for _, u := range usage {
		fmt.Fprintf(w, "%-18s  %6d  %8d  %10d  %10d  %10d\n",
			truncate(u.Key, 18), u.Calls, u.Failures, u.InputTokens, u.OutputTokens, u.InputTokens+u.OutputTokens)
		total.Calls += u.Calls
		total.Failures += u.Failures
		total.InputTokens += u.InputTokens
		total.OutputTokens += u.OutputTokens
	}
	fmt.Fprintln(w, sep)
	fmt.Fprintf(w, "%-18s  %6d  %8d  %10d  %10d  %10d\n",
		"TOTAL", total.Calls, total.Failures, total.InputTokens, total.OutputTokens, total.InputTokens+total.OutputTokens)
}

// printModelCost prices each model from the embedded table. Models without
// pricing show "?" and make the total partial.
func printModelCost(w io.Writer, usage []store.LLMUsage) {
	sep := strings.Repeat("─", 76)
	fmt.Fprintln(w, "Estimated Cost (USD)")
	fmt.Fprintln(w, sep)
	fmt.Fprintf(w, "%-32s  %6s  %10s  %10s  %10s\n", "Model", "Calls", "Input", "Output", "Cost")
	fmt.Fprintln(w, sep)

	var (
		sum     float64
		unknown []string
	)
	for _, u := range usage {
		cost := "?"
		if c := llm.LookupCost(u.Key); c != nil {
			usd := c.Cost(u.InputTokens, u.OutputTokens)
			sum += usd
			cost = formatCost(usd)
		} else {
			unknown = append(unknown, u.Key)
		}
		fmt.Fprintf(w, "%-32s  %6d  %10d  %10d  %10s\n", truncate(u.Key, 32), u.Calls, u.InputTokens, u.OutputTokens, cost)
	}

	fmt.Fprintln(w, sep)
	label := "TOTAL"
	if len(unknown) > 0 {
		label = "TOTAL (partial)"
	}
	fmt.Fprintf(w, "%-32s  %6s  %10s  %10s  %10s\n", label, "", "", "", formatCost(sum))
	if len(unknown) > 0 {
		fmt.Fprintf(w, "\nPricing unavailable for: %s\n", strings.Join(unknown, ", "))
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose: "+strings.Join(purposes, ", "))

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
