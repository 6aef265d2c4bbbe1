// Package cli holds the startup plumbing shared by the binaries.
package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/lithammer/dedent"
	"github.com/pranav-c01/ICT-Training/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

// SetupLogging sends the global logger to stderr. With logFile set, logs
// are also written to that file in the working directory; the returned
// closer closes it. The level comes from LOG_LEVEL, default info.
func SetupLogging(logFile string) (io.Closer, error) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(level(os.Getenv(config.EnvLogLevel)))

	consoleWriter := zerolog.ConsoleWriter{Out: os.Stderr}

	// JOURNAL_STREAM is set by systemd, which keeps its own log.
	_, underSystemd := os.LookupEnv("JOURNAL_STREAM")
	if logFile == "" || underSystemd {
		log.Logger = log.Output(consoleWriter)
		return io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		log.Logger = log.Output(consoleWriter)
		return io.NopCloser(nil), fmt.Errorf("failed to open log file: %w", err)
	}

	fileWriter := zerolog.ConsoleWriter{Out: f, NoColor: true}
	log.Logger = log.Output(io.MultiWriter(consoleWriter, fileWriter))
	log.Debug().Str("logFile", logFile).Msg("logging to file")
	return f, nil
}

func level(name string) zerolog.Level {
	if name == "" {
		return zerolog.InfoLevel
	}
	l, err := zerolog.ParseLevel(strings.ToLower(name))
	if err != nil {
		return zerolog.InfoLevel
	}
	return l
}

// IsInteractiveTerminal returns true if both stdin and stdout are TTYs.
func IsInteractiveTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// WaitOnWindows pauses execution on Windows so users can see error messages
// before the console window closes.
func WaitOnWindows() {
	if runtime.GOOS == "windows" {
		fmt.Println()
		fmt.Println("Press Enter to exit...")
		fmt.Scanln()
	}
}

// Fatal logs an error, waits on Windows and exits with status 1.
func Fatal(format string, args ...any) {
	log.Error().Msgf(format, args...)
	WaitOnWindows()
	os.Exit(1)
}

// Usage formats an indented help text.
func Usage(text string, a ...any) string {
	return fmt.Sprintf(strings.TrimSpace(dedent.Dedent(text)), a...) + "\n"
}
