package cli

import (
	"github.com/spf13/cobra"
)

func newServerStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "server-stats",
		Short: "Fetch the server population snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			// The secret already rides in the Authorization header; no
			// body needed.
			var result ServerStatsResult
			if err := client.Post("/server-stats", nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}
