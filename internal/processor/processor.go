package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/pool"

	"codeberg.org/snonux/rimlocale/internal/batch"
	"codeberg.org/snonux/rimlocale/internal/cli"
	"codeberg.org/snonux/rimlocale/internal/llm"
	"codeberg.org/snonux/rimlocale/internal/report"
	"codeberg.org/snonux/rimlocale/internal/translation"
)

// Summary is the outcome of one run
type Summary struct {
	Planned    int
	Succeeded  int
	Failed     int
	CacheHits  int
	Tokens     int
	Results    []translation.Result // sorted by file and language
	Failures   []translation.Result
	StartedAt  time.Time
	FinishedAt time.Time
}

// Summarize reduces settled results into a Summary
func Summarize(results []translation.Result) Summary {
	sorted := append([]translation.Result(nil), results...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Unit, sorted[j].Unit
		if a.RelPath != b.RelPath {
			return a.RelPath < b.RelPath
		}
		return a.Language < b.Language
	})

	s := Summary{Planned: len(sorted), Results: sorted}
	for _, r := range sorted {
		if r.Cached {
			s.CacheHits++
		} else {
			s.Tokens += r.Tokens
		}
		if r.OK() {
			s.Succeeded++
			continue
		}
		s.Failed++
		s.Failures = append(s.Failures, r)
	}
	return s
}

// Processor translates every eligible file of a mod
type Processor struct {
	flags      *cli.Flags
	root       string
	translator *translation.Translator
	log        zerolog.Logger
}

// NewProcessor creates a processor for the mod in flags.InputDir. provider
// may be nil for a dry run.
func NewProcessor(flags *cli.Flags, provider llm.Provider, log zerolog.Logger) (*Processor, error) {
	root, err := filepath.Abs(flags.InputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve input directory: %w", err)
	}

	return &Processor{
		flags:      flags,
		root:       root,
		translator: translation.NewTranslator(provider, translation.NewFileContentCache(), root, flags.Model, log),
		log:        log,
	}, nil
}

// Root returns the absolute input directory
func (p *Processor) Root() string {
	return p.root
}

// Run discovers, plans and translates the mod. Unit failures are reported in
// the summary; only discovery errors are returned.
func (p *Processor) Run(ctx context.Context) (*Summary, error) {
	started := time.Now()

	files, err := batch.Discover(p.root)
	if err != nil {
		return nil, err
	}
	plan := batch.Plan(p.root, files, p.flags.Languages)

	p.log.Info().
		Str("root", p.root).
		Int("files", len(plan)).
		Int("units", batch.Count(plan)).
		Msg("planned translation")

	if p.flags.DryRun {
		for _, group := range plan {
			for _, unit := range group.Units {
				p.log.Info().Bool("first", unit.IsFirst).Msgf("would translate %s", unit)
			}
		}
		return &Summary{Planned: batch.Count(plan), StartedAt: started, FinishedAt: time.Now()}, nil
	}

	summary := Summarize(p.translatePlan(ctx, plan))
	summary.StartedAt = started
	summary.FinishedAt = time.Now()

	p.logSummary(summary)

	if p.flags.ReportDB != "" {
		if err := p.record(ctx, summary); err != nil {
			p.log.Error().Err(err).Str("database", p.flags.ReportDB).Msg("failed to record run")
		}
	}

	return &summary, nil
}

// translatePlan runs the first unit on its own, then every file as a task of
// a result pool. Results settle independently.
func (p *Processor) translatePlan(ctx context.Context, plan []batch.FileUnits) []translation.Result {
	if len(plan) == 0 {
		return nil
	}

	var results []translation.Result
	var rest []batch.Unit

	first := plan[0]
	if _, err := p.translator.Files().Load(first.SourcePath); err != nil {
		p.log.Error().Err(err).Str("file", first.RelPath).Msg("failed to read source file")
		results = append(results, failAll(first.Units, err)...)
	} else {
		results = append(results, p.translator.TranslateUnit(ctx, first.Units[0]))
		rest = first.Units[1:]
	}

	files := pool.NewWithResults[[]translation.Result]()
	if p.flags.Concurrency > 0 {
		files = files.WithMaxGoroutines(p.flags.Concurrency)
	}

	if len(rest) > 0 {
		files.Go(func() []translation.Result {
			return p.translateUnits(ctx, rest)
		})
	}

	for _, group := range plan[1:] {
		files.Go(func() []translation.Result {
			return p.translateFile(ctx, group)
		})
	}

	for _, settled := range files.Wait() {
		results = append(results, settled...)
	}
	return results
}

// translateFile loads the file once and translates it into every language.
// A read error fails all of the file's units.
func (p *Processor) translateFile(ctx context.Context, group batch.FileUnits) []translation.Result {
	if _, err := p.translator.Files().Load(group.SourcePath); err != nil {
		p.log.Error().Err(err).Str("file", group.RelPath).Msg("failed to read source file")
		return failAll(group.Units, err)
	}

	if !p.flags.WarmEveryFile {
		return p.translateUnits(ctx, group.Units)
	}

	warm := p.translator.TranslateUnit(ctx, group.Units[0])
	return append([]translation.Result{warm}, p.translateUnits(ctx, group.Units[1:])...)
}

// translateUnits translates units concurrently, one task per unit
func (p *Processor) translateUnits(ctx context.Context, units []batch.Unit) []translation.Result {
	if len(units) == 0 {
		return nil
	}

	tasks := pool.NewWithResults[translation.Result]()
	for _, unit := range units {
		tasks.Go(func() translation.Result {
			return p.translator.TranslateUnit(ctx, unit)
		})
	}
	return tasks.Wait()
}

func failAll(units []batch.Unit, err error) []translation.Result {
	results := make([]translation.Result, 0, len(units))
	for _, unit := range units {
		results = append(results, translation.Result{
			Unit: unit,
			Err:  fmt.Errorf("failed to read %s: %w", unit.RelPath, err),
		})
	}
	return results
}

func (p *Processor) logSummary(s Summary) {
	p.log.Info().
		Int("tokens", s.Tokens).
		Int("cache_hits", s.CacheHits).
		Dur("elapsed", s.FinishedAt.Sub(s.StartedAt)).
		Msgf("Total tokens: %d", s.Tokens)

	if s.Failed == 0 {
		p.log.Info().Int("succeeded", s.Succeeded).Msgf("All files processed successfully: %d files.", s.Succeeded)
		return
	}

	for _, f := range s.Failures {
		p.log.Warn().
			Str("file", f.Unit.RelPath).
			Str("language", f.Unit.Language).
			Err(f.Err).
			Msg("translation failed")
	}
	p.log.Warn().
		Int("succeeded", s.Succeeded).
		Int("failed", s.Failed).
		Msgf("Some files failed to process: %d errors.", s.Failed)
}

func (p *Processor) record(ctx context.Context, s Summary) error {
	store, err := report.Open(p.flags.ReportDB)
	if err != nil {
		return err
	}
	defer store.Close()

	run := report.Run{
		StartedAt:  s.StartedAt,
		FinishedAt: s.FinishedAt,
		Succeeded:  s.Succeeded,
		Failed:     s.Failed,
		Tokens:     s.Tokens,
		Entries:    make([]report.Entry, 0, len(s.Results)),
	}
	for _, r := range s.Results {
		entry := report.Entry{
			SourcePath: r.Unit.RelPath,
			Language:   r.Unit.Language,
			OutputPath: r.OutputPath,
			Cached:     r.Cached,
			Tokens:     r.Tokens,
		}
		if r.Err != nil {
			entry.Error = r.Err.Error()
		}
		run.Entries = append(run.Entries, entry)
	}

	id, err := store.Record(ctx, run)
	if err != nil {
		return err
	}
	p.log.Debug().Int64("run_id", id).Str("database", p.flags.ReportDB).Msg("run recorded")
	return nil
}
