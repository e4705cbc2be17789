package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/term"

	"cocomig/internal/driver"
	"cocomig/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "cocomig",
	Short: "Migrate cocotb testbenches from v1 to v2",
	Long: `cocomig finds generator-based cocotb coroutines, cocotb.fork calls and
ReturnValue usage in Python sources and rewrites them to async/await.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupGlobals,
}

// exitError carries a process status decided after output was written.
type exitError struct{ code int }

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func init() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Current().Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)

	// Глобальные флаги
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "path to cocomig.toml or .cocomig.yaml (default: search upwards)")
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.Int("jobs", 0, "max parallel workers (0=auto)")
	flags.String("ui", "auto", "progress UI (auto|on|off)")
	flags.Bool("cache", false, "reuse scan results from the disk cache")
	flags.String("cache-dir", "", "disk cache directory (default: $XDG_CACHE_HOME/cocomig)")
	flags.String("log-level", "disabled", "log level (disabled|error|warn|info|debug)")
	flags.Int("max-findings", 0, "maximum number of findings to print (0=all)")
}

// main executes the root command. Diagnostics are printed by the
// subcommands; main only maps errors to exit statuses.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx)
	stop()
	os.Exit(code)
}

func execute(ctx context.Context) int {
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return driver.ExitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	fmt.Fprintf(rootCmd.ErrOrStderr(), "cocomig: %v\n", err)
	return driver.ExitFailure
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
