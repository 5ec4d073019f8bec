package style

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

type Spinner interface {
	SetSuffix(suffix string)
	SetFinalMSG(finalMSG string)
	Start()
	Stop()
}

// TestSpinner is a spinner implementation for testing that outputs each
// spinner update on a new line instead of clearing and redrawing
type TestSpinner struct {
	mu       *sync.RWMutex
	Suffix   string
	FinalMSG string
	color    func(a ...interface{}) string
	Writer   io.Writer
	active   bool
}

// NewTestSpinner provides a pointer to an instance of TestSpinner writing
// to w.
func NewTestSpinner(w io.Writer) *TestSpinner {
	return &TestSpinner{
		mu:     &sync.RWMutex{},
		color:  color.New(color.FgWhite).SprintFunc(),
		Writer: w,
	}
}

func (s *TestSpinner) SetSuffix(suffix string) {
	fmt.Fprintf(s.Writer, "[SET SUFFIX] %s\n", suffix)
	s.Suffix = suffix
}

func (s *TestSpinner) SetFinalMSG(finalMSG string) {
	s.FinalMSG = finalMSG
}

// Start will start the indicator.
func (s *TestSpinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active {
		return
	}

	s.active = true
	fmt.Fprintf(s.Writer, "[SPINNER START]\n")
}

// Stop stops the indicator.
func (s *TestSpinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active {
		s.active = false

		fmt.Fprintf(s.Writer, "[SPINNER STOP]\n")

		if s.FinalMSG != "" {
			fmt.Fprintf(s.Writer, "[FINAL MSG] %s\n", s.FinalMSG)
		}
	}
}

type TerminalSpinner struct {
	spinner *spinner.Spinner
}

func NewTerminalSpinner(cs []string, d time.Duration, options ...spinner.Option) *TerminalSpinner {
	return &TerminalSpinner{
		spinner: spinner.New(cs, d, options...),
	}
}

func (s *TerminalSpinner) SetSuffix(suffix string) {
	s.spinner.Suffix = suffix
}

func (s *TerminalSpinner) SetFinalMSG(finalMSG string) {
	s.spinner.FinalMSG = finalMSG
}

func (s *TerminalSpinner) Start() {
	s.spinner.Start()
}

func (s *TerminalSpinner) Stop() {
	s.spinner.Stop()
}

// NewSpinner returns the terminal spinner, or the line-oriented test
// spinner when PARLEY_TEST is set so test output stays stable.
func NewSpinner(w io.Writer) Spinner {
	if os.Getenv("PARLEY_TEST") == "true" {
		return NewTestSpinner(w)
	}

	return NewTerminalSpinner(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(w))
}
