package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newExecCmd() *cobra.Command {
	var (
		uuid     string
		player   string
		username string
	)

	cmd := &cobra.Command{
		Use:   "exec <command>",
		Short: "Dispatch a templated command on the server",
		Long: `Dispatches a command through the connector. Tokens like {player},
{uuid}, {world} and {username} are substituted from the supplied player
context before dispatch.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			playerContext := map[string]string{}
			if uuid != "" {
				playerContext["uuid"] = uuid
			}
			if player != "" {
				playerContext["playerName"] = player
			}
			if username != "" {
				playerContext["username"] = username
			}

			body := map[string]any{
				"command":       strings.Join(args, " "),
				"playerContext": playerContext,
			}

			var result Envelope
			if err := client.Post("/execute-command", body, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&uuid, "uuid", "", "Target player UUID for {uuid} context")
	cmd.Flags().StringVar(&player, "player", "", "Target player name for {player} context")
	cmd.Flags().StringVar(&username, "username", "", "Web username for {username} context")

	return cmd
}

func newPlayerStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "player-stats <uuid>",
		Short: "Fetch the merged stats view for a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{"uuid": args[0]}

			var result PlayerStatsResult
			if err := client.Post("/player-stats", body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			if cfg.Verbose {
				fmt.Printf("Stats for %s:\n", args[0])
			}
			out.Print(result)
			return nil
		},
	}
}
