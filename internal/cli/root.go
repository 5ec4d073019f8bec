package cli

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/parleyhq/parley/internal/style"
)

var (
	// Global flags
	cfgFile      string
	logLevel     string
	outputFormat string
	quiet        bool
	verbose      bool
)

// runContext carries the writers a command renders into, so tests can run
// commands against buffers.
type runContext struct {
	stdout io.Writer
	stderr io.Writer
}

func commandContext(cmd *cobra.Command) runContext {
	return runContext{
		stdout: cmd.OutOrStdout(),
		stderr: cmd.ErrOrStderr(),
	}
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ply",
	Short: "Parley - conversation log analytics",
	Long: `Parley analyzes JSON conversation logs and reports descriptive statistics:
message counts, time-of-day patterns, conversation flow, message length
statistics and a frequency-ranked list of discussion topics.

The ply CLI reads a single day's log and prints the report to standard output.`,
	Version: getVersion(),
	Args:    cobra.MaximumNArgs(1),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogging()
	},
	Run: func(cmd *cobra.Command, args []string) {
		// "ply log.json" is shorthand for "ply analyze log.json".
		if len(args) == 0 {
			_ = cmd.Help()
			return
		}
		if err := runAnalyze(commandContext(cmd), args[0]); err != nil {
			os.Exit(1)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return fang.Execute(context.Background(), rootCmd, fang.WithColorSchemeFunc(func(lightDark lipgloss.LightDarkFunc) fang.ColorScheme {
		return fang.ColorScheme{
			Base:           style.PrimaryTextColor,
			Title:          style.AccentColor,
			Description:    style.PrimaryTextColor,
			Codeblock:      style.CodeColor,
			Program:        style.AccentColor,
			DimmedArgument: style.MutedColor,
			Comment:        style.MutedColor,
			Flag:           style.InfoColor,
			FlagDefault:    style.MutedColor,
			Command:        style.SuccessColor,
			QuotedString:   style.WarningColor,
			Argument:       style.PrimaryTextColor,
			Help:           style.InfoColor,
			Dash:           style.MutedColor,
			ErrorHeader:    [2]color.Color{style.ErrorColor, style.ErrorBgColor},
			ErrorDetails:   style.ErrorColor,
		}
	}))
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.parley/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "disabled", "log level (debug, info, warn, error) (default: disabled)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "output", "text", "output format (text, json, yaml)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".parley" (without extension).
		viper.AddConfigPath(home + "/.parley")
		viper.AddConfigPath(".")
		viper.AddConfigPath(".parley")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Environment variables
	viper.SetEnvPrefix("PARLEY")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		if !quiet {
			fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
		}
	}
}

// initLogging configures the global logger
func initLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	// Set log level
	level := viper.GetString("log-level")
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.Disabled)
	}

	// Configure console output for better readability
	if !viper.GetBool("quiet") && outputFormat == "text" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// getVersion returns the version information
func getVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s, go: %s)", Version, Commit, Date, GoVersion)
}
