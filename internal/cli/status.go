package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check connector liveness",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := client.GetText("/")
			if err != nil {
				return err
			}

			fmt.Println(body)
			return nil
		},
	}
}
