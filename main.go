package main

import (
	"fmt"
	"io"
	"os"

	stderrors "errors"

	"github.com/alecthomas/kong"
	"github.com/mcncl/argo/internal/analyzer"
	"github.com/mcncl/argo/internal/config"
	"github.com/mcncl/argo/internal/errors"
	"github.com/mcncl/argo/internal/formatter"
	"github.com/mcncl/argo/internal/logging"
	"github.com/mcncl/argo/internal/models"
	"github.com/mcncl/argo/internal/parser"
	"github.com/rs/zerolog"
)

// CLI defines the command-line interface
var CLI struct {
	Input         string           `arg:"" help:"Input file holding exactly one value, or - for stdin." name:"input"`
	Config        string           `help:"Path to a YAML or TOML config file. Defaults to the nearest .argo.yml or .argo.toml." short:"c"`
	MaxDepth      int              `help:"Maximum map nesting depth (0 for unlimited)." default:"512"`
	AllowTrailing bool             `help:"Accept data after the top-level value."`
	KeyCase       string           `help:"Rewrite map keys on output: snake, camel, lower_camel or kebab."`
	Stats         bool             `help:"Print tree statistics to stderr."`
	Debug         bool             `help:"Enable debug logging." short:"d"`
	Version       kong.VersionFlag `help:"Show version information." short:"v"`
}

// Context holds the runtime context
type Context struct {
	Config *config.Config
	Logger zerolog.Logger
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	k := kong.Must(&CLI,
		kong.Name("argo"),
		kong.Description("Parse a JSON-subset document and print it in canonical form"),
		kong.UsageOnError(),
		kong.Vars{"version": Version},
	)

	// Prints usage and exits non-zero unless exactly one input is named
	kctx, err := k.Parse(os.Args[1:])
	k.FatalIfErrorf(err)

	cfg, err := config.LoadConfigWithCLI(CLI.Config, overridesFrom(kctx))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(errors.NewConfigError(err.Error(), errors.ErrInvalidConfig)))
		os.Exit(1)
	}

	ctx := &Context{
		Config: cfg,
		Logger: logging.New(os.Stderr, "argo", cfg.Dev.Debug),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	if err := run(ctx); err != nil {
		report(ctx, err)
		os.Exit(1)
	}
}

// overridesFrom collects the flags that were given explicitly, so that
// defaults never shadow values from a config file
func overridesFrom(kctx *kong.Context) config.CLIOverrides {
	var o config.CLIOverrides
	for _, path := range kctx.Path {
		if path.Flag == nil {
			continue
		}
		switch path.Flag.Name {
		case "max-depth":
			o.MaxDepth = &CLI.MaxDepth
		case "allow-trailing":
			o.AllowTrailing = &CLI.AllowTrailing
		case "key-case":
			o.KeyCase = &CLI.KeyCase
		case "stats":
			o.Stats = &CLI.Stats
		case "debug":
			o.Debug = &CLI.Debug
		}
	}
	return o
}

// run parses the input and writes the canonical form followed by a newline
func run(ctx *Context) error {
	opts := ctx.Config.ParserOptions()
	opts.Logger = &ctx.Logger
	p := parser.NewParserWithOptions(opts)

	value, err := parseInput(p, ctx)
	if err != nil {
		return err
	}

	if ctx.Config.Output.Stats || ctx.Config.Dev.Debug {
		reportStats(ctx, value)
	}

	f := formatter.NewFormatterWithKeyCase(ctx.Config.KeyCase())
	if err := f.Write(ctx.Stdout, value); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	if _, err := io.WriteString(ctx.Stdout, "\n"); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// parseInput reads the value from the named file or stdin
func parseInput(p *parser.Parser, ctx *Context) (models.Value, error) {
	switch CLI.Input {
	case "":
		return nil, errors.NewInputError("no input provided", errors.ErrNoInput)
	case "-":
		ctx.Logger.Debug().Msg("reading from stdin")
		return p.Parse(ctx.Stdin)
	default:
		ctx.Logger.Debug().Str("path", CLI.Input).Msg("reading file")
		return p.ParseFile(CLI.Input)
	}
}

func reportStats(ctx *Context, value models.Value) {
	stats := analyzer.NewAnalyzer().Analyze(value)
	ctx.Logger.Debug().
		Int("maps", stats.Maps).
		Int("integers", stats.Integers).
		Int("strings", stats.Strings).
		Int("pairs", stats.Pairs).
		Int("depth", stats.MaxDepth).
		Msg("value statistics")
	for _, dup := range stats.Duplicates {
		ctx.Logger.Debug().Str("path", dup.Path).Str("key", dup.Key).Int("count", dup.Count).Msg("duplicate key")
	}

	if ctx.Config.Output.Stats {
		fmt.Fprintln(ctx.Stderr, stats.Summary())
	}
}

// report prints a failed run. Syntax failures print their diagnostic line
// on stdout, and key failures print nothing at all.
func report(ctx *Context, err error) {
	var synErr *errors.SyntaxError
	if stderrors.As(err, &synErr) && !stderrors.Is(err, errors.ErrRead) {
		if msg := errors.Diagnostic(err); msg != "" {
			fmt.Fprintln(ctx.Stdout, msg)
		}
		return
	}

	fmt.Fprintf(ctx.Stderr, "%s\n", errors.UserFriendlyError(err))
	fmt.Fprintf(ctx.Stderr, "\nFor help, run: argo --help\n")
}
