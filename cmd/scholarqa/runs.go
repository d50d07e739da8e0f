// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/pdiddy/scholarqa/internal/ledger"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded answering runs",
	Long: `Runs lists the answering runs recorded in the ledger, newest first,
with their answer, null-answer, and failure counts.`,
	RunE: runRuns,
}

var runsExportCmd = &cobra.Command{
	Use:   "export RUN_ID",
	Short: "Export a run and its answers as YAML",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsExport,
}

func openLedger(cmd *cobra.Command) (*ledger.Store, error) {
	if err := bindFlags(cmd, map[string]string{"ledger-dir": "ledger.dir"}); err != nil {
		return nil, err
	}
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return ledger.Open(cfg.Ledger)
}

func runRuns(cmd *cobra.Command, args []string) error {
	store, err := openLedger(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.Runs(context.Background(), limit)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(nonNil(runs))
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-5s  %-20s  %-8s  %-10s  %-8s  %-6s  %-6s  %s\n",
		"ID", "Started", "Mode", "Engine", "Answered", "Null", "Failed", "Input")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))
	for _, r := range runs {
		answered := strconv.Itoa(r.Answered)
		if !r.Finished() {
			answered = "running"
		}
		fmt.Fprintf(os.Stdout, "%-5d  %-20s  %-8s  %-10s  %-8s  %-6d  %-6d  %s\n",
			r.ID, r.StartedAt.Local().Format("2006-01-02 15:04:05"), r.MatchMode, r.Engine,
			answered, r.NullAnswers, r.Failed, r.InputPath)
	}
	return nil
}

func runRunsExport(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return errors.WithHint(errors.Newf("invalid run id %q", args[0]), "list run ids with: scholarqa runs")
	}

	store, err := openLedger(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	output, _ := cmd.Flags().GetString("output")
	path, err := store.ExportYAML(context.Background(), id, output)
	if err != nil {
		return err
	}
	fmt.Printf("Exported run %d to %s\n", id, path)
	return nil
}

func init() {
	runsCmd.PersistentFlags().String("ledger-dir", ledger.DefaultDir, "directory holding runs.db")
	runsCmd.Flags().Int("limit", 20, "maximum runs to list (0 = all)")
	runsCmd.Flags().Bool("json", false, "output runs as JSON")
	runsExportCmd.Flags().String("output", "", "export path (default: <ledger-dir>/exports/run-<id>.yaml)")

	runsCmd.AddCommand(runsExportCmd)
	rootCmd.AddCommand(runsCmd)
}
