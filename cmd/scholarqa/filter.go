// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/pdiddy/scholarqa/internal/partition"
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Split questions by whether they name a list of authors",
	Long: `Filter reads a JSON array of question records and writes the records
whose author_dblp_uri is a list to --filtered and all others to --remaining.
Order and record contents are preserved.

A missing input file or malformed JSON stops the run without output.`,
	RunE: runFilter,
}

func runFilter(cmd *cobra.Command, args []string) error {
	if err := bindFlags(cmd, map[string]string{
		"input":     "filter.input",
		"filtered":  "filter.filtered",
		"remaining": "filter.remaining",
		"field":     "filter.field",
	}); err != nil {
		return err
	}
	logConfigUsed(logger)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	res, err := partition.Run(cfg.Filter, os.Stdout, logger.Named("filter"))
	switch {
	case errors.Is(err, partition.ErrInputNotFound):
		return errors.WithHint(err, "pass --input with the path of the question file")
	case errors.Is(err, partition.ErrMalformedInput):
		return errors.WithHint(err, "the input must be a JSON array of records")
	case err != nil:
		return err
	}
	logger.Infow("filter complete", "listed", res.Listed, "remaining", res.Remaining)
	return nil
}

func init() {
	filterCmd.Flags().String("input", defaultFilterInput, "JSON array of question records")
	filterCmd.Flags().String("filtered", defaultFilteredPath, "output file for list-referenced records")
	filterCmd.Flags().String("remaining", defaultRemainingPath, "output file for all other records")
	filterCmd.Flags().String("field", partition.DefaultField, "record key to inspect")

	rootCmd.AddCommand(filterCmd)
}
