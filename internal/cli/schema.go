package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/parleyhq/parley/internal/convlog"
)

// schemaCmd represents the schema command
var schemaCmd = &cobra.Command{
	Use:    "schema",
	Short:  "Output the JSON schema of the conversation log format",
	Long:   `Output the JSON schema describing the conversation log input format.`,
	Hidden: true,
	Run: func(cmd *cobra.Command, args []string) {
		schemaBytes, err := convlog.NewSchema()
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error generating schema: %v\n", err)
			os.Exit(1)
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(schemaBytes))
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
