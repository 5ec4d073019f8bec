package cli

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/parleyhq/parley/internal/analyzer"
	"github.com/parleyhq/parley/internal/report"
	"github.com/parleyhq/parley/internal/style"
)

// topicsCmd represents the topics command
var topicsCmd = &cobra.Command{
	Use:   "topics [log.json]",
	Short: "List the top discussion topics in a conversation log",
	Long: `Extract and rank discussion topics from a JSON conversation log.

Topics are single words surviving a stop-word and minimum-length filter,
ranked by how often they occur across all messages.

Examples:
  ply topics log.json            # Top 10 topics
  ply topics log.json --top 25   # More topics
  ply topics log.json --output json`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runTopics(commandContext(cmd), args[0]); err != nil {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(topicsCmd)

	topicsCmd.Flags().IntVar(&topTopics, "top", analyzer.DefaultTopTopics, "number of ranked topics to report")
	topicsCmd.Flags().IntVar(&minWordLen, "min-word-len", analyzer.DefaultMinWordLength, "minimum token length for topic extraction")
}

func runTopics(ctx runContext, path string) error {
	summary, err := loadAndAnalyze(ctx, path)
	if err != nil {
		return err
	}

	switch viper.GetString("output") {
	case "json":
		style.PrintJSON(ctx.stdout, summary.Topics)
	case "yaml":
		style.PrintYAML(ctx.stdout, summary.Topics)
	default:
		report.RenderTopics(ctx.stdout, summary.Topics)
	}

	return nil
}
