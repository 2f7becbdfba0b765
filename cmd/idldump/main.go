package main

import (
	"errors"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	idl "github.com/20cmdingding/thriftidl"
	"github.com/20cmdingding/thriftidl/schema"
)

type opts struct {
	IncludeDir string
	ModuleName string
	Format     string
	Verbose    bool
}

func main() {
	op := &opts{}
	flags := pflag.NewFlagSet("idldump", pflag.ExitOnError)
	flags.StringVar(&op.IncludeDir, "include-dir", ".", "Base directory for resolving include statements.")
	flags.StringVar(&op.ModuleName, "module-name", "", "Override the generated module name (must end with _thrift).")
	flags.StringVar(&op.Format, "format", "text", "Output format: text or yaml.")
	flags.BoolVarP(&op.Verbose, "verbose", "v", false, "Enable debug logging.")
	_ = flags.Parse(os.Args[1:])
	args := flags.Args()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if op.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if len(args) != 1 {
		logger.Fatal().Msg("expected exactly one .thrift file")
	}

	parseOpts := []idl.Option{idl.WithIncludeDir(op.IncludeDir)}
	if op.ModuleName != "" {
		parseOpts = append(parseOpts, idl.WithModuleName(op.ModuleName))
	}

	start := time.Now()
	mod, err := idl.Parse(args[0], parseOpts...)
	if err != nil {
		var perr *idl.Error
		if errors.As(err, &perr) {
			logger.Fatal().
				Str("kind", perr.Kind.String()).
				Str("file", perr.File).
				Int("line", perr.Line).
				Msg(perr.Message())
		}
		logger.Fatal().Err(err).Msg("parse failed")
	}
	logger.Debug().
		Dur("elapsed", time.Since(start)).
		Str("module", mod.Name).
		Msg("parsed")

	switch op.Format {
	case "yaml":
		out, err := yaml.Marshal(schema.Snapshot(mod))
		if err != nil {
			logger.Fatal().Err(err).Msg("encoding module dump")
		}
		_, _ = os.Stdout.Write(out)
	case "text":
		schema.Print(mod)
	default:
		logger.Fatal().Str("format", op.Format).Msg("unknown output format")
	}
}
