// Package seedrand parses seedrand flags and runs the requested mode against a
// seeded stream.
package seedrand

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/louisbranch/seedrand/internal/core/check"
	"github.com/louisbranch/seedrand/internal/core/dice"
	"github.com/louisbranch/seedrand/internal/core/random"
	"github.com/louisbranch/seedrand/internal/core/script"
	entrypoint "github.com/louisbranch/seedrand/internal/platform/cmd"
	"github.com/louisbranch/seedrand/internal/platform/logging"
	"github.com/louisbranch/seedrand/internal/platform/otel"
)

// Modes accepted by Config.Mode.
const (
	ModeDraw    = "draw"
	ModeExpand  = "expand"
	ModeRoll    = "roll"
	ModeScript  = "script"
	ModeStreams = "streams"
)

// Formats accepted by Config.Format.
const (
	FormatText = "text"
	FormatJSON = "json"
)

const (
	defaultDrawCount = 5
	maxCount         = 1_000_000
)

// Config holds seedrand command configuration.
type Config struct {
	Seed          string `env:"SEED"`
	Mode          string `env:"MODE" envDefault:"draw"`
	Count         int    `env:"COUNT"`
	Dice          string `env:"DICE" envDefault:"1d20"`
	Difficulty    int    `env:"DIFFICULTY"`
	ScriptPath    string `env:"SCRIPT"`
	Format        string `env:"FORMAT" envDefault:"text"`
	JournalPath   string `env:"JOURNAL_PATH"`
	Stream        string `env:"STREAM"`
	NormalizeSeed bool   `env:"NORMALIZE_SEED"`
	FreshSeed     bool   `env:"FRESH_SEED"`
	Log           logging.Config
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Seed, "seed", cfg.Seed, "seed text (empty is valid)")
	fs.StringVar(&cfg.Mode, "mode", cfg.Mode, "mode: draw, expand, roll, script, streams")
	fs.IntVar(&cfg.Count, "count", cfg.Count, "values to draw, or rolls to make (0 = mode default)")
	fs.StringVar(&cfg.Dice, "dice", cfg.Dice, "dice notation for roll mode, e.g. 2d6+1")
	fs.IntVar(&cfg.Difficulty, "difficulty", cfg.Difficulty, "difficulty to check rolls against (0 = no check)")
	fs.StringVar(&cfg.ScriptPath, "script", cfg.ScriptPath, "Lua file for script mode")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "output format: text, json")
	fs.StringVar(&cfg.JournalPath, "journal", cfg.JournalPath, "SQLite file that checkpoints the stream position")
	fs.StringVar(&cfg.Stream, "stream", cfg.Stream, "checkpoint name (default: seed fingerprint)")
	fs.BoolVar(&cfg.NormalizeSeed, "normalize", cfg.NormalizeSeed, "normalize the seed to Unicode NFC")
	fs.BoolVar(&cfg.FreshSeed, "fresh", cfg.FreshSeed, "use a fresh random seed (logged for replay)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	cfg.Mode = strings.ToLower(strings.TrimSpace(cfg.Mode))
	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	return cfg, nil
}

// Validate reports configuration that cannot run.
func (c Config) Validate() error {
	switch c.Mode {
	case ModeDraw, ModeExpand, ModeRoll, ModeScript, ModeStreams:
	default:
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	switch c.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("unknown format %q", c.Format)
	}
	if c.Count < 0 || c.Count > maxCount {
		return fmt.Errorf("count must be between 0 and %d", maxCount)
	}
	if c.Mode == ModeScript && strings.TrimSpace(c.ScriptPath) == "" {
		return errors.New("script mode requires -script")
	}
	if c.FreshSeed && c.Seed != "" {
		return errors.New("-fresh and -seed are mutually exclusive")
	}
	if c.Mode == ModeExpand && c.JournalPath != "" {
		return errors.New("expand mode does not use a stream; drop -journal")
	}
	if c.Mode == ModeStreams && strings.TrimSpace(c.JournalPath) == "" {
		return errors.New("streams mode requires -journal")
	}
	return nil
}

func (c Config) count() int {
	if c.Count > 0 {
		return c.Count
	}
	if c.Mode == ModeRoll {
		return 1
	}
	return defaultDrawCount
}

// Run executes the seedrand command, writing results to out.
func Run(ctx context.Context, cfg Config, out io.Writer, logger zerolog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if out == nil {
		out = io.Discard
	}
	options := entrypoint.RunOptions{Logger: &logger}
	return entrypoint.RunWithTelemetryAndOptions(ctx, entrypoint.ServiceSeedrand, options, func(ctx context.Context) error {
		return run(ctx, cfg, out, logger)
	})
}

func run(ctx context.Context, cfg Config, out io.Writer, logger zerolog.Logger) (err error) {
	if cfg.Mode == ModeStreams {
		return listStreams(ctx, cfg.JournalPath, newPrinter(out, cfg.Format), logger)
	}

	seed := cfg.Seed
	if cfg.FreshSeed {
		seed, err = random.NewSeed()
		if err != nil {
			return err
		}
		logger.Info().Str("seed", seed).Msg("using fresh seed")
	}
	if cfg.NormalizeSeed {
		seed = random.CanonicalSeed(seed)
	}

	ctx, span := otel.Tracer("seedrand/cmd").Start(ctx, "seedrand."+cfg.Mode)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(
		attribute.String("seedrand.mode", cfg.Mode),
		attribute.Int("seedrand.count", cfg.count()),
		attribute.Int("seedrand.seed_length", len(seed)),
	)

	p := newPrinter(out, cfg.Format)
	if cfg.Mode == ModeExpand {
		return expand(p, seed, cfg.count())
	}

	sess, err := openSession(ctx, cfg, seed, logger)
	if err != nil {
		return err
	}
	defer sess.close()
	span.SetAttributes(
		attribute.String("seedrand.stream_id", sess.id),
		attribute.Int64("seedrand.start_position", int64(sess.stream.Position())),
	)

	if err := runStream(ctx, cfg, sess.stream, p); err != nil {
		return err
	}
	span.SetAttributes(attribute.Int64("seedrand.end_position", int64(sess.stream.Position())))
	return sess.save(ctx)
}

func runStream(ctx context.Context, cfg Config, stream *random.Stream, p *printer) error {
	switch cfg.Mode {
	case ModeDraw:
		return draw(ctx, p, stream, cfg.count())
	case ModeRoll:
		return roll(ctx, p, stream, cfg.Dice, cfg.Difficulty, cfg.count())
	case ModeScript:
		return runScript(ctx, p, stream, cfg.ScriptPath)
	}
	return fmt.Errorf("unknown mode %q", cfg.Mode)
}

func expand(p *printer, seed string, count int) error {
	e := random.NewExpander(seed)
	for i := 0; i < count; i++ {
		if err := p.word(i, e.Next()); err != nil {
			return err
		}
	}
	return nil
}

func draw(ctx context.Context, p *printer, stream *random.Stream, count int) error {
	for i := 0; i < count; i++ {
		if i%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		v := stream.Next()
		if err := p.value(i, stream.Position(), v); err != nil {
			return err
		}
	}
	return nil
}

func roll(ctx context.Context, p *printer, stream *random.Stream, expr string, difficulty, count int) error {
	notation, err := dice.ParseNotation(expr)
	if err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		result, err := dice.RollWith(stream, notation.Dice, notation.Modifier)
		if err != nil {
			return fmt.Errorf("roll %s: %w", notation, err)
		}
		var res *check.Result
		if difficulty > 0 {
			r := check.Resolve(result, difficulty)
			res = &r
		}
		if err := p.roll(i, notation, result, res); err != nil {
			return err
		}
	}
	return nil
}

func runScript(ctx context.Context, p *printer, stream *random.Stream, path string) error {
	code, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	return script.Run(ctx, stream, filepath.Base(path), string(code), p.out)
}
