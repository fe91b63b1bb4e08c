package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"
	"github.com/rs/zerolog"

	"github.com/zephyrtronium/equations"
	"github.com/zephyrtronium/equations/internal/config"
)

var version = "dev"

// CLI is the command line of equations.
type CLI struct {
	Config   string           `short:"c" type:"existingfile" help:"TOML or YAML configuration file."`
	In       string           `short:"i" default:"-" help:"Program file to read when no lines are given as arguments, or - for stdin."`
	Prec     uint             `short:"p" help:"Precision of calculations in bits (default 64)."`
	Integers bool             `help:"Accept only integer literals."`
	MaxDepth int              `help:"Maximum nesting of parentheses; 0 for no limit."`
	Given    []string         `short:"g" placeholder:"NAME=EXPR" help:"Variable definition, any number of times."`
	Newlines bool             `short:"n" help:"Print each result on its own line instead of concatenating them."`
	Echo     bool             `help:"Print the structure of each expression before its result."`
	Dump     bool             `help:"Print the parsed program instead of running it."`
	LogLevel string           `help:"Log level (debug, info, warn, error)."`
	Version  kong.VersionFlag `help:"Print the version and exit."`

	Lines []string `arg:"" optional:"" help:"Program lines. Each argument is one line."`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("equations"),
		kong.Description("Evaluate arithmetic expressions and programs of variable assignments."),
		kong.Vars{"version": version},
	)
	cfg, err := settings(&cli)
	kctx.FatalIfErrorf(err)

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger().
		Level(cfg.Level())
	logger.Debug().Str("version", version).Uint("prec", cfg.Precision).Msg("starting")

	if err := run(&cli, cfg, os.Stdin, os.Stdout, logger); err != nil {
		os.Exit(1)
	}
}

// settings loads the configuration file and applies command-line overrides.
func settings(cli *CLI) (config.Config, error) {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return cfg, err
	}
	if cli.Prec != 0 {
		cfg.Precision = cli.Prec
	}
	if cli.Integers {
		cfg.Integers = true
	}
	if cli.MaxDepth != 0 {
		cfg.MaxDepth = cli.MaxDepth
	}
	if cli.Newlines || cli.Echo {
		cfg.Separator = "\n"
	}
	if cli.LogLevel != "" {
		cfg.LogLevel = cli.LogLevel
	}
	return cfg, cfg.Validate()
}

// dumpLine is the form of a program line printed by --dump.
type dumpLine struct {
	Line int
	Name string
	Expr string
	Vars []string
}

// run parses and runs the program. Errors are logged before they are
// returned.
func run(cli *CLI, cfg config.Config, stdin io.Reader, stdout io.Writer, logger zerolog.Logger) error {
	popts := cfg.ParseOptions()
	copts, err := cfg.ContextOptions()
	if err != nil {
		logger.Error().Err(err).Msg("bad variable in config")
		return err
	}
	for _, g := range cli.Given {
		name, e, err := equations.ParseAssignment(g, popts...)
		if err != nil {
			logger.Error().Err(err).Str("given", g).Msg("bad variable definition")
			return err
		}
		copts = append(copts, equations.Define(name, e))
	}

	var src io.Reader
	switch {
	case len(cli.Lines) > 0:
		src = strings.NewReader(strings.Join(cli.Lines, "\n"))
	case cli.In == "" || cli.In == "-":
		src = bufio.NewReader(stdin)
	default:
		f, err := os.Open(cli.In)
		if err != nil {
			logger.Error().Err(err).Msg("opening input")
			return err
		}
		defer f.Close()
		src = bufio.NewReader(f)
	}

	prog, err := equations.ParseProgram(src, popts...)
	if err != nil {
		logger.Error().Err(err).Msg("parsing program")
		return err
	}
	lines := prog.Lines()
	logger.Debug().Int("lines", len(lines)).Msg("parsed program")

	if cli.Dump {
		dump := make([]dumpLine, len(lines))
		for i, l := range lines {
			dump[i] = dumpLine{Line: l.Num, Name: l.Name, Expr: l.Expr.String(), Vars: l.Expr.Vars()}
		}
		fmt.Fprintln(stdout, repr.String(dump, repr.Indent("  ")))
		return nil
	}

	exprs := make([]equations.Line, 0, len(lines))
	for _, l := range lines {
		if l.Name == "" {
			exprs = append(exprs, l)
		}
	}
	ctx := equations.NewContext(copts...)
	r, err := prog.Run(ctx)
	w := bufio.NewWriter(stdout)
	for i, v := range r {
		if i > 0 {
			w.WriteString(cfg.Separator)
		}
		s := equations.Format(v)
		if cli.Echo {
			fmt.Fprintf(w, "%v : ", exprs[i].Expr)
		}
		w.WriteString(s)
		logger.Debug().Int("line", exprs[i].Num).Str("result", s).Msg("evaluated")
	}
	if len(r) > 0 {
		w.WriteByte('\n')
	}
	if ferr := w.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	if err != nil {
		logger.Error().Err(err).Msg("running program")
		return err
	}
	return nil
}
