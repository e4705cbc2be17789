package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"cocomig/internal/config"
	"cocomig/internal/driver"
	"cocomig/internal/log"
	"cocomig/internal/observ"
	"cocomig/internal/pipeline"
	"cocomig/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.py|directory>...",
	Short: "Report cocotb v1 constructs without changing files",
	Long: `Check scans Python sources for generator coroutines, cocotb.fork and
ReturnValue. It exits with status 1 when anything needs migrating.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate(cmd, args, driver.ModeCheck)
	},
}

var applyCmd = &cobra.Command{
	Use:   "apply [flags] <file.py|directory>...",
	Short: "Rewrite cocotb v1 constructs to async/await",
	Long: `Apply rewrites every fixable construct. Results go to a sibling file
(<name>.migrated.py by default) unless --inplace is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate(cmd, args, driver.ModeApply)
	},
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|short|json|sarif)")
	checkCmd.Flags().Bool("diff", false, "print the unified diff apply would produce")

	applyCmd.Flags().String("format", "pretty", "output format (pretty|short|json)")
	applyCmd.Flags().Bool("diff", false, "print the unified diff of every rewritten file")
	applyCmd.Flags().Bool("inplace", false, "overwrite the original files")
	applyCmd.Flags().String("suffix", "", "suffix of the sibling output file (default from config, .migrated.py)")
}

type migrateFlags struct {
	format  string
	diff    bool
	inPlace bool
	suffix  string
}

func readMigrateFlags(cmd *cobra.Command, mode driver.Mode) (migrateFlags, error) {
	var (
		f   migrateFlags
		err error
	)
	if f.format, err = cmd.Flags().GetString("format"); err != nil {
		return f, errors.Errorf("failed to get format flag: %w", err)
	}
	f.format = strings.ToLower(f.format)
	switch f.format {
	case "pretty", "json", "short":
	case "sarif":
		if mode == driver.ModeApply {
			return f, errors.Errorf("--format sarif is only supported by check")
		}
	default:
		return f, errors.Errorf("unknown format: %s", f.format)
	}
	if f.diff, err = cmd.Flags().GetBool("diff"); err != nil {
		return f, errors.Errorf("failed to get diff flag: %w", err)
	}
	if mode != driver.ModeApply {
		return f, nil
	}
	if f.inPlace, err = cmd.Flags().GetBool("inplace"); err != nil {
		return f, errors.Errorf("failed to get inplace flag: %w", err)
	}
	if f.suffix, err = cmd.Flags().GetString("suffix"); err != nil {
		return f, errors.Errorf("failed to get suffix flag: %w", err)
	}
	if f.inPlace && cmd.Flags().Changed("suffix") {
		return f, errors.Errorf("--inplace and --suffix are mutually exclusive")
	}
	return f, nil
}

// runMigrate is shared by check and apply: resolve config, discover files,
// run the driver, then render the report and map it to an exit status.
func runMigrate(cmd *cobra.Command, args []string, mode driver.Mode) error {
	g, err := readGlobals(cmd)
	if err != nil {
		return err
	}
	mf, err := readMigrateFlags(cmd, mode)
	if err != nil {
		return err
	}
	stopProfiling, err := startProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	ctx := cmd.Context()
	logger := log.FromContext(ctx)
	timer := observ.NewTimer()

	endPhase := timer.Begin("config")
	cfg, err := config.Resolve(configStart(args), g.configPath)
	if err != nil {
		return errors.Errorf("config: %w", err)
	}
	if mf.suffix != "" {
		// проверяем суффикс теми же правилами, что и в конфиге
		cfg.Files.Suffix = mf.suffix
		if err := cfg.Validate(); err != nil {
			return errors.Errorf("--suffix: %w", err)
		}
	}
	endPhase(cfg.Path)
	logger.Debug().Str("config", cfg.Path).Msg("config resolved")

	endPhase = timer.Begin("discover")
	files, err := driver.DiscoverAll(args, cfg)
	if err != nil {
		return errors.Errorf("discover: %w", err)
	}
	endPhase(fmt.Sprintf("%d files", len(files)))
	if len(files) == 0 {
		return driver.ErrNoFiles
	}

	cache, err := openCache(g)
	if err != nil {
		return err
	}

	baseDir, err := os.Getwd()
	if err != nil {
		return err
	}
	req := driver.Request{
		Paths:   files,
		BaseDir: baseDir,
		Mode:    mode,
		InPlace: mf.inPlace,
		Suffix:  mf.suffix,
		Diff:    mf.diff,
		Jobs:    g.jobs,
		Config:  cfg,
		Cache:   cache,
	}

	endPhase = timer.Begin(mode.String())
	useTUI := mf.format == "pretty" && !g.quiet && shouldUseTUI(g.ui, len(files))
	rep, err := runDriver(ctx, req, useTUI, pipeline.DisplayPaths(files, baseDir))
	if err != nil {
		return err
	}
	endPhase("")
	timer.AddStages(rep.Timings)

	out := cmd.OutOrStdout()
	ro := renderOpts{
		color:       g.color.enabled(os.Stdout),
		quiet:       g.quiet,
		diff:        mf.diff,
		maxFindings: g.maxFindings,
	}
	switch mf.format {
	case "json":
		err = renderJSON(out, rep, mode)
	case "sarif":
		err = renderSarif(out, rep, ro)
	case "short":
		err = renderShort(out, rep, ro)
	default:
		err = renderPretty(out, rep, mode, ro)
	}
	if err != nil {
		return err
	}

	if g.timings {
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
	}
	if code := rep.ExitCode(mode); code != driver.ExitOK {
		return &exitError{code: code}
	}
	return nil
}

func runDriver(ctx context.Context, req driver.Request, useTUI bool, display []string) (*driver.Report, error) {
	if !useTUI {
		return driver.Run(ctx, req)
	}
	var rep *driver.Report
	err := ui.Progress(ctx, os.Stderr, req.Mode.String(), display, func(sink pipeline.Sink) error {
		req.Sink = sink
		var runErr error
		rep, runErr = driver.Run(ctx, req)
		return runErr
	})
	return rep, err
}

func openCache(g *globals) (*driver.Cache, error) {
	if !g.cache {
		return nil, nil
	}
	dir := g.cacheDir
	if dir == "" {
		var err error
		if dir, err = driver.DefaultCacheDir(); err != nil {
			return nil, errors.Errorf("cache: %w", err)
		}
	}
	cache, err := driver.OpenCache(dir)
	if err != nil {
		return nil, errors.Errorf("cache: %w", err)
	}
	return cache, nil
}

// configStart is where the config search begins: the first argument, or its
// directory when it does not exist.
func configStart(args []string) string {
	if len(args) == 0 {
		return "."
	}
	start := args[0]
	if _, err := os.Stat(start); err != nil {
		return filepath.Dir(start)
	}
	return start
}
