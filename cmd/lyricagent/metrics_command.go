package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"lyricagent/internal/metrics"
)

// metricsResult is the JSON shape for the standalone metrics command.
type metricsResult struct {
	Chars         int     `json:"char_count"`
	Words         int     `json:"word_count"`
	Tokens        int     `json:"token_count"`
	TokensPerWord float64 `json:"tokens_per_word"`
	Hash          string  `json:"lyrics_hash"`
}

func newMetricsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:         "metrics [file]",
		Short:       "Compute lyrics metrics for a text file or stdin",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var err error
			if len(args) == 1 {
				data, err = os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("read lyrics file: %w", err)
				}
			} else {
				data, err = io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
			}

			tokenizer, err := metrics.NewBPETokenizer()
			if err != nil {
				return fmt.Errorf("load tokenizer: %w", err)
			}
			stats := metrics.NewCalculator(tokenizer).Compute(string(data))

			if asJSON {
				return writeJSON(cmd, metricsResult{
					Chars:         stats.Chars,
					Words:         stats.Words,
					Tokens:        stats.Tokens,
					TokensPerWord: stats.TokensPerWord,
					Hash:          stats.Hash,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Chars:           %d\n", stats.Chars)
			fmt.Fprintf(out, "Words:           %d\n", stats.Words)
			fmt.Fprintf(out, "Tokens:          %d\n", stats.Tokens)
			fmt.Fprintf(out, "Tokens per word: %s\n", strconv.FormatFloat(stats.TokensPerWord, 'f', 2, 64))
			fmt.Fprintf(out, "Hash:            %s\n", stats.Hash)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of plain text")
	return cmd
}
