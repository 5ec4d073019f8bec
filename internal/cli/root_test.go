package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeCommand(root *cobra.Command, args ...string) (output string, err error) {
	// Create a copy of the root command to avoid modifying the global one
	cmd := &cobra.Command{
		Use:   root.Use,
		Short: root.Short,
		Long:  root.Long,
		Run:   root.Run,
	}

	// Copy all subcommands
	for _, subCmd := range root.Commands() {
		cmd.AddCommand(subCmd)
	}

	// Copy flags
	cmd.Flags().AddFlagSet(root.Flags())
	cmd.PersistentFlags().AddFlagSet(root.PersistentFlags())

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return buf.String(), err
}

func TestRootCommand(t *testing.T) {
	output, err := executeCommand(rootCmd, "--help")
	assert.NoError(t, err)
	assert.Contains(t, output, "Parley analyzes JSON conversation logs")
	assert.Contains(t, output, "Available Commands:")
}

func TestGetVersion(t *testing.T) {
	version := getVersion()
	assert.Contains(t, version, "dev")
	assert.Contains(t, version, "unknown")
}

func TestInitLogging(t *testing.T) {
	require.NotPanics(t, func() {
		initLogging()
	})
}

func TestGlobalFlags(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("config")
	assert.NotNil(t, flag)
	assert.Equal(t, "string", flag.Value.Type())

	flag = rootCmd.PersistentFlags().Lookup("log-level")
	assert.NotNil(t, flag)
	assert.Equal(t, "disabled", flag.DefValue)

	flag = rootCmd.PersistentFlags().Lookup("output")
	assert.NotNil(t, flag)
	assert.Equal(t, "text", flag.DefValue)

	flag = rootCmd.PersistentFlags().Lookup("quiet")
	assert.NotNil(t, flag)
	assert.Equal(t, "bool", flag.Value.Type())

	flag = rootCmd.PersistentFlags().Lookup("verbose")
	assert.NotNil(t, flag)
	assert.Equal(t, "bool", flag.Value.Type())
}

func TestCommandAvailability(t *testing.T) {
	commands := []string{"analyze", "topics", "version"}

	for _, cmdName := range commands {
		cmd, _, err := rootCmd.Find([]string{cmdName})
		assert.NoError(t, err, "Command %s should be available", cmdName)
		assert.Equal(t, cmdName, cmd.Name(), "Command name should match")
	}
}

func TestAnalyzeFlags(t *testing.T) {
	flag := analyzeCmd.Flags().Lookup("top")
	require.NotNil(t, flag)
	assert.Equal(t, "10", flag.DefValue)

	flag = analyzeCmd.Flags().Lookup("min-word-len")
	require.NotNil(t, flag)
	assert.Equal(t, "3", flag.DefValue)
}
