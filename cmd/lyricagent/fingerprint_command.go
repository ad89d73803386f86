package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"lyricagent/internal/fingerprint"
	"lyricagent/internal/services/embedding"
)

func newFingerprintCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint <token-count>...",
		Short: "Derive an album fingerprint from an explicit token-count sequence",
		Long: "Derive the album fingerprint for an ordered sequence of per-track " +
			"token counts, using the configured embedding provider. The same " +
			"sequence always yields the same fingerprint.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			counts := make([]int, len(args))
			for i, arg := range args {
				count, err := strconv.Atoi(arg)
				if err != nil || count < 0 {
					return fmt.Errorf("token count %q must be a non-negative integer", arg)
				}
				counts[i] = count
			}

			embedClient, err := embedding.New(cfg.Embedding.BaseURL, cfg.Embedding.APIKey, cfg.Embedding.Model,
				embedding.WithTimeout(time.Duration(cfg.Embedding.TimeoutSeconds)*time.Second))
			if err != nil {
				return fmt.Errorf("build embedding client: %w", err)
			}

			digest, err := fingerprint.NewGenerator(embedClient).Fingerprint(cmd.Context(), counts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), digest)
			return nil
		},
	}
}
