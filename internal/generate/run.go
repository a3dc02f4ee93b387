package generate

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"

	"github.com/antithesishq/promptgen/internal/config"
	"github.com/antithesishq/promptgen/internal/library"
	"github.com/antithesishq/promptgen/internal/sink"
	"github.com/antithesishq/promptgen/internal/wordlist"
)

// NewRand returns a PCG-backed generator. A zero seed draws the seed from
// system entropy.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// Runner performs a complete run: load lists, generate, echo and save.
type Runner struct {
	Config config.Config
	Logger *slog.Logger
	// Out receives echoed output when Config.Echo is set.
	Out io.Writer
	// Sink receives the prompts when Config.SaveToFile is set.
	Sink sink.Sink
	// Rand overrides the source built from Config.Seed.
	Rand *rand.Rand
}

// Run generates prompts from the library, the YAML list file and lists, in
// increasing order of precedence on name collisions. It validates r.Config
// before loading anything, so callers that build the Runner by hand needn't.
func (r *Runner) Run(ctx context.Context, lists map[string][]string) (*Result, error) {
	if err := r.Config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	rnd := r.Rand
	if rnd == nil {
		rnd = NewRand(r.Config.Seed)
	}

	store := wordlist.New(rnd)
	if r.Config.DefaultList {
		lib, err := library.LoadDir(r.Config.LibraryPath)
		if err != nil {
			return nil, err
		}
		logger.Debug("loaded library", "path", r.Config.LibraryPath, "lists", len(lib))
		store.AddLists(lib)
	}
	if r.Config.Lists != "" {
		extra, err := library.LoadYAML(r.Config.Lists)
		if err != nil {
			return nil, err
		}
		logger.Debug("loaded list file", "path", r.Config.Lists, "lists", len(extra))
		store.AddLists(extra)
	}
	store.AddLists(lists)

	gen := New(logger, store, r.Config.Template, r.Config.DuplicateDelimiter)
	res, err := gen.Generate(ctx, r.Config.Count, r.Config.ExhaustList)
	if err != nil {
		return nil, err
	}
	logger.Info("generated prompts", "count", r.Config.Count, "distinct", res.Distinct(), "exhaust_list", r.Config.ExhaustList)
	if res.Distinct() < r.Config.Count {
		logger.Debug("duplicate prompts dropped", "dropped", r.Config.Count-res.Distinct())
	}

	r.echo(res.Last)
	r.echo(fmt.Sprintf("%d prompts generated", res.Distinct()))

	if r.Config.SaveToFile && r.Sink != nil {
		loc, err := r.Sink.Save(ctx, res.Sorted())
		if err != nil {
			return res, err
		}
		logger.Info("saved prompts", "location", loc)
		r.echo(fmt.Sprintf("Saved to %s", loc))
	}
	return res, nil
}

func (r *Runner) echo(s string) {
	if !r.Config.Echo || r.Out == nil {
		return
	}
	fmt.Fprintln(r.Out, s)
}

// NewSink picks the sink for cfg: nil when saving is off, S3 when a bucket is
// configured, and the local directory otherwise.
func NewSink(ctx context.Context, cfg config.Config) (sink.Sink, error) {
	switch {
	case !cfg.SaveToFile:
		return nil, nil
	case cfg.S3.Enabled():
		s := sink.NewS3(cfg.S3)
		if err := s.EnsureBucketExists(ctx); err != nil {
			return nil, fmt.Errorf("ensure bucket %q: %w", cfg.S3.Bucket, err)
		}
		return s, nil
	default:
		return &sink.File{Dir: cfg.SaveToFilePath}, nil
	}
}
