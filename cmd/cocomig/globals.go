package main

import (
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"cocomig/internal/log"
)

type colorMode string

const (
	colorAuto colorMode = "auto"
	colorOn   colorMode = "on"
	colorOff  colorMode = "off"
)

func readColorMode(value string) (colorMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return colorAuto, nil
	case "on":
		return colorOn, nil
	case "off":
		return colorOff, nil
	default:
		return "", errors.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
}

// enabled reports whether output to f should be colored.
func (m colorMode) enabled(f *os.File) bool {
	switch m {
	case colorOn:
		return true
	case colorOff:
		return false
	}
	return os.Getenv("NO_COLOR") == "" && isTerminal(f)
}

// globals holds the persistent flags after validation.
type globals struct {
	configPath  string
	color       colorMode
	quiet       bool
	timings     bool
	jobs        int
	ui          uiMode
	cache       bool
	cacheDir    string
	maxFindings int
}

func readGlobals(cmd *cobra.Command) (*globals, error) {
	flags := cmd.Root().PersistentFlags()
	g := &globals{}
	var err error
	if g.configPath, err = flags.GetString("config"); err != nil {
		return nil, err
	}
	colorFlag, err := flags.GetString("color")
	if err != nil {
		return nil, err
	}
	if g.color, err = readColorMode(colorFlag); err != nil {
		return nil, err
	}
	if g.quiet, err = flags.GetBool("quiet"); err != nil {
		return nil, err
	}
	if g.timings, err = flags.GetBool("timings"); err != nil {
		return nil, err
	}
	if g.jobs, err = flags.GetInt("jobs"); err != nil {
		return nil, err
	}
	if g.jobs < 0 {
		return nil, errors.Errorf("invalid --jobs value %d", g.jobs)
	}
	uiFlag, err := flags.GetString("ui")
	if err != nil {
		return nil, err
	}
	if g.ui, err = readUIMode(uiFlag); err != nil {
		return nil, err
	}
	if g.cache, err = flags.GetBool("cache"); err != nil {
		return nil, err
	}
	if g.cacheDir, err = flags.GetString("cache-dir"); err != nil {
		return nil, err
	}
	if g.maxFindings, err = flags.GetInt("max-findings"); err != nil {
		return nil, err
	}
	if g.maxFindings < 0 {
		return nil, errors.Errorf("invalid --max-findings value %d", g.maxFindings)
	}
	return g, nil
}

// setupGlobals validates persistent flags, configures fatih/color and puts a
// zerolog logger on the command context.
func setupGlobals(cmd *cobra.Command, _ []string) error {
	g, err := readGlobals(cmd)
	if err != nil {
		return err
	}
	color.NoColor = !g.color.enabled(os.Stdout)

	levelFlag, err := cmd.Root().PersistentFlags().GetString("log-level")
	if err != nil {
		return err
	}
	level, err := log.ParseLevel(levelFlag)
	if err != nil {
		return err
	}
	logger := log.New(os.Stderr, level, !g.color.enabled(os.Stderr))
	cmd.SetContext(log.NewContext(cmd.Context(), logger))
	return nil
}
