// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scholarqa/internal/ledger"
	"github.com/pdiddy/scholarqa/internal/partition"
	"github.com/pdiddy/scholarqa/internal/qa"
	"github.com/pdiddy/scholarqa/internal/resolve"
	"github.com/pdiddy/scholarqa/pkg/types"
)

// Default input and output file names.
const (
	defaultAnswerInput   = "processed_sch_set2_test_questions.json"
	defaultAnswersPath   = "answers2.txt"
	defaultContextPath   = "answers2context.txt"
	defaultFilterInput   = "sch_set2_test_questions.json"
	defaultFilteredPath  = "filtered_questions.json"
	defaultRemainingPath = "mod_sch_set2_test_questions.json"
)

func setDefaults() {
	viper.SetDefault("sparql.dblp_endpoint", resolve.DefaultDBLPEndpoint)
	viper.SetDefault("sparql.graph_endpoint", resolve.DefaultGraphEndpoint)
	viper.SetDefault("sparql.timeout", "0s")
	viper.SetDefault("sparql.requests_per_second", 0)
	viper.SetDefault("sparql.max_retries", 0)
	viper.SetDefault("sparql.user_agent", "scholarqa/"+version)

	viper.SetDefault("qa.backend", string(types.QABackendLexical))
	viper.SetDefault("qa.endpoint", qa.DefaultInferenceEndpoint)
	viper.SetDefault("qa.model", qa.DefaultGenAIModel)
	viper.SetDefault("qa.timeout", "2m")
	viper.SetDefault("qa.user_agent", "scholarqa/"+version)
	viper.SetDefault("qa.api_key", "")

	viper.SetDefault("route.legacy_keywords", false)

	viper.SetDefault("answer.input", defaultAnswerInput)
	viper.SetDefault("answer.answers", defaultAnswersPath)
	viper.SetDefault("answer.answers_context", defaultContextPath)

	viper.SetDefault("filter.input", defaultFilterInput)
	viper.SetDefault("filter.filtered", defaultFilteredPath)
	viper.SetDefault("filter.remaining", defaultRemainingPath)
	viper.SetDefault("filter.field", partition.DefaultField)

	viper.SetDefault("ledger.dir", ledger.DefaultDir)
	viper.SetDefault("ledger.disabled", false)
}

// bindFlags binds command flags to config keys so a flag set on the command
// line wins over the config file and the environment.
func bindFlags(cmd *cobra.Command, keys map[string]string) error {
	for flag, key := range keys {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return errors.Wrapf(err, "binding flag --%s", flag)
		}
	}
	return nil
}

// loadConfig decodes the merged configuration.
func loadConfig() (types.PipelineConfig, error) {
	var cfg types.PipelineConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, errors.Wrap(err, "decoding configuration")
	}
	return cfg, nil
}
