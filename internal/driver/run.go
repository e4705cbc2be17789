package driver

import (
	"context"
	"runtime"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"cocomig/internal/config"
	"cocomig/internal/cst"
	"cocomig/internal/fix"
	"cocomig/internal/log"
	"cocomig/internal/migrate"
	"cocomig/internal/parser"
	"cocomig/internal/pipeline"
	"cocomig/internal/source"
)

// Run processes every file of req in parallel. Each file runs its own
// pipeline (read, parse, scan, rewrite, write) and fills only its own slot
// of Report.Files, so no locking is needed. A per-file failure is recorded on
// its FileResult; Run itself fails only on cancellation.
func Run(ctx context.Context, req Request) (*Report, error) {
	cfg := req.Config
	if cfg == nil {
		cfg = config.Default()
	}
	suffix := req.Suffix
	if suffix == "" {
		suffix = cfg.Files.Suffix
	}

	files := append([]string(nil), req.Paths...)
	sort.Strings(files)

	fileSet := source.NewFileSetWithBase(req.BaseDir)
	base := fileSet.BaseDir()
	report := &Report{Mode: req.Mode, FileSet: fileSet, Files: make([]FileResult, len(files))}
	if len(files) == 0 {
		return report, nil
	}

	// FileSet.Add не потокобезопасен: грузим всё заранее.
	loaded := make([]*source.File, len(files))
	loadErrs := make([]error, len(files))
	for i, path := range files {
		start := time.Now()
		id, err := fileSet.Load(path)
		report.Files[i] = FileResult{Path: path, Display: pipeline.DisplayPath(path, base)}
		report.Files[i].Timings.Add(pipeline.StageRead, time.Since(start))
		if err != nil {
			loadErrs[i] = errors.WrapWith(err, ErrLoad)
			// пустой виртуальный файл: диагностике нужен свой FileID
			id = fileSet.AddVirtual(path, nil)
		}
		loaded[i] = fileSet.Get(id)
	}

	display := make([]string, len(files))
	for i := range report.Files {
		display[i] = report.Files[i].Display
	}
	pipeline.EmitQueued(req.Sink, display)

	w := &worker{
		mode:    req.Mode,
		diff:    req.Diff,
		target:  fix.Target{InPlace: req.InPlace, Suffix: suffix},
		markers: cfg.Markers,
		opts:    cfg.MigrateOptions(),
		cache:   req.Cache,
		sink:    req.Sink,
	}

	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// индекс i уникален: мьютекс не нужен
			res := &report.Files[i]
			res.File = loaded[i]
			if loadErrs[i] != nil {
				res.Err = loadErrs[i]
				w.emit(res, pipeline.StageRead, pipeline.StatusError, res.Err, 0)
				return nil
			}
			w.process(gctx, res)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report, errors.Errorf("run: %w", err)
	}
	for i := range report.Files {
		report.Timings.Merge(report.Files[i].Timings)
	}
	return report, nil
}

type worker struct {
	mode    Mode
	diff    bool
	target  fix.Target
	markers config.Markers
	opts    []migrate.Option
	cache   *Cache
	sink    pipeline.Sink
}

func (w *worker) emit(res *FileResult, stage pipeline.Stage, status pipeline.Status, err error, elapsed time.Duration) {
	pipeline.Emit(w.sink, pipeline.Event{File: res.Display, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
}

// step times fn as stage and reports its outcome.
func (w *worker) step(res *FileResult, stage pipeline.Stage, fn func() error) error {
	w.emit(res, stage, pipeline.StatusWorking, nil, 0)
	start := time.Now()
	err := fn()
	elapsed := time.Since(start)
	res.Timings.Add(stage, elapsed)
	if err != nil {
		w.emit(res, stage, pipeline.StatusError, err, elapsed)
		return err
	}
	w.emit(res, stage, pipeline.StatusDone, nil, elapsed)
	return nil
}

func (w *worker) process(ctx context.Context, res *FileResult) {
	logger := log.FromContext(ctx).With().Str("file", res.Display).Logger()
	start := time.Now()
	defer func() {
		logger.Debug().
			Int("findings", len(res.Findings)).
			Int("unfixable", len(res.Unfixable)).
			Bool("changed", res.Changed).
			Bool("cached", res.Cached).
			Dur("elapsed", time.Since(start)).
			Err(res.Err).
			Msg("processed")
	}()
	f := res.File

	if w.fromCache(res, &logger) {
		w.emit(res, pipeline.StageScan, pipeline.StatusCached, nil, 0)
		return
	}

	var root *cst.Node
	if err := w.step(res, pipeline.StageParse, func() error {
		var err error
		root, err = parser.ParseFile(f, parser.Options{})
		return err
	}); err != nil {
		res.Err = err
		return
	}

	needRewrite := w.mode == ModeApply || w.diff
	if !needRewrite {
		_ = w.step(res, pipeline.StageScan, func() error {
			findings := migrate.Report(root, f, w.opts...)
			res.Findings, res.Unfixable = migrate.Split(findings)
			res.Changed = len(res.Findings) > 0
			w.store(res, findings, &logger)
			return nil
		})
		return
	}

	var mres *migrate.Result
	if err := w.step(res, pipeline.StageRewrite, func() error {
		var err error
		mres, err = migrate.Rewrite(root, f, w.opts...)
		return err
	}); err != nil {
		res.Err = err
		return
	}
	res.Findings, res.Unfixable = mres.Findings, mres.Unfixable
	res.Changed = mres.Changed
	res.Source = mres.Source
	w.store(res, mres.All(), &logger)

	if w.mode != ModeApply || !res.Changed {
		return
	}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return
	}
	if err := w.step(res, pipeline.StageWrite, func() error {
		out, err := w.target.Write(f.Path, res.Source)
		res.OutPath = out
		return err
	}); err != nil {
		res.Err = err
	}
}

// fromCache fills res from the cache. In apply mode (and check --diff) only a
// file with nothing to rewrite can be served from the cache.
func (w *worker) fromCache(res *FileResult, logger *zerolog.Logger) bool {
	if w.cache == nil {
		return false
	}
	findings, ok, err := w.cache.Lookup(res.File, w.markers)
	if err != nil {
		logger.Warn().Err(err).Msg("cache lookup failed")
		return false
	}
	if !ok {
		return false
	}
	fixable, unfixable := migrate.Split(findings)
	if (w.mode == ModeApply || w.diff) && len(fixable) > 0 {
		return false
	}
	res.Findings, res.Unfixable = fixable, unfixable
	res.Changed = len(fixable) > 0
	res.Cached = true
	if w.diff && !res.Changed {
		res.Source = res.File.Content
	}
	return true
}

func (w *worker) store(res *FileResult, findings []migrate.Finding, logger *zerolog.Logger) {
	if w.cache == nil {
		return
	}
	if err := w.cache.Store(res.File, w.markers, findings); err != nil {
		logger.Warn().Err(err).Msg("cache store failed")
	}
}
