package cli

import (
	"github.com/spf13/cobra"
)

func newSendCodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send-code <username>",
		Short: "Issue a verification code to an online player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{"username": args[0]}

			var result Envelope
			if err := client.Post("/generate-and-send-code", body, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newVerifyCodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify-code <username> <code>",
		Short: "Consume a verification code for a player",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{
				"username": args[0],
				"code":     args[1],
			}

			var result VerificationResult
			if err := client.Post("/verify-code", body, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}
