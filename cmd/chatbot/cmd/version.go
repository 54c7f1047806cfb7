package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/chatbot/pkg/core/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.String("chatbot"))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
