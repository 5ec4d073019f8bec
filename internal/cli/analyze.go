package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/parleyhq/parley/internal/analyzer"
	"github.com/parleyhq/parley/internal/parser"
	"github.com/parleyhq/parley/internal/report"
	"github.com/parleyhq/parley/internal/style"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [log.json]",
	Short: "Analyze a conversation log and print the statistics report",
	Long: `Analyze a JSON conversation log and print a descriptive statistics report.

The report covers:
- Total conversation and message counts
- Per-participant message counts and length statistics
- Time-of-day distribution of messages
- Conversation initiation patterns
- Longest and shortest conversations
- Frequency-ranked discussion topics

Examples:
  ply analyze daily_conversations_2025-10-25.json
  ply analyze log.json --top 15             # More topics
  ply analyze log.json --min-word-len 4     # Stricter topic tokens
  ply analyze log.json --output json        # Summary as JSON for automation`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runAnalyze(commandContext(cmd), args[0]); err != nil {
			os.Exit(1)
		}
	},
}

var (
	topTopics  int
	minWordLen int
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().IntVar(&topTopics, "top", analyzer.DefaultTopTopics, "number of ranked topics to report")
	analyzeCmd.Flags().IntVar(&minWordLen, "min-word-len", analyzer.DefaultMinWordLength, "minimum token length for topic extraction")
}

func runAnalyze(ctx runContext, path string) error {
	summary, err := loadAndAnalyze(ctx, path)
	if err != nil {
		return err
	}

	switch viper.GetString("output") {
	case "json":
		style.PrintJSON(ctx.stdout, summary)
	case "yaml":
		style.PrintYAML(ctx.stdout, summary)
	default:
		report.Render(ctx.stdout, summary)
	}

	return nil
}

// loadAndAnalyze parses the log at path and folds it into a summary,
// reporting each fatal failure kind distinctly on stderr.
func loadAndAnalyze(ctx runContext, path string) (*analyzer.Summary, error) {
	textOutput := viper.GetString("output") == "text"

	var sp style.Spinner
	if textOutput && !viper.GetBool("quiet") {
		sp = style.NewSpinner(ctx.stderr)
		sp.SetSuffix(" Analyzing " + path + "...")
		sp.Start()
		defer sp.Stop()
	}

	logParser := parser.NewLogParser()
	clog, err := logParser.ParseFile(path)
	if err != nil {
		reportLoadError(ctx, path, err)
		return nil, err
	}

	log.Debug().
		Str("file", path).
		Str("date", clog.Date).
		Int("conversations", len(clog.Conversations)).
		Msg("Conversation log loaded")

	opts := analyzer.Options{
		TopTopics:     topTopics,
		MinWordLength: minWordLen,
	}

	summary := analyzer.Analyze(clog, opts)

	if sp != nil {
		sp.SetFinalMSG(style.SuccessString("Analyzed "+path) + "\n")
		if summary.TotalConversations == 0 {
			style.Warning(ctx.stderr, "Log contains no conversations")
		}
	}

	return summary, nil
}

// reportLoadError writes a styled, cause-specific message for a loader
// failure.
func reportLoadError(ctx runContext, path string, err error) {
	var notFound *parser.NotFoundError
	var parseErr *parser.ParseError
	var schemaErr *parser.SchemaError

	switch {
	case errors.As(err, &notFound):
		style.Error(ctx.stderr, fmt.Sprintf("File not found: %s", notFound.Path))
	case errors.As(err, &parseErr):
		style.Error(ctx.stderr, fmt.Sprintf("Not valid JSON: %v", err))
	case errors.As(err, &schemaErr):
		style.Error(ctx.stderr, fmt.Sprintf("Not a conversation log: %v", err))
	default:
		style.Error(ctx.stderr, fmt.Sprintf("Failed to load %s: %v", path, err))
	}
}
