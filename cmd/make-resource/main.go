package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/monocle-dev/herald/internal/logger"
	"github.com/monocle-dev/herald/internal/scaffold"
)

func main() {
	root := flag.String("root", ".", "repository root to write into")
	only := flag.String("only", "", "comma separated kinds to generate ("+kindList()+")")
	force := flag.Bool("force", false, "overwrite existing files")
	module := flag.String("module", scaffold.DefaultModule, "Go module path used in generated imports")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: make-resource [flags] <name>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error loading .env file: %v\n", err)
	}
	logger.Init(os.Getenv("LOG_LEVEL"), "console")

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	opts := scaffold.Options{
		Module: *module,
		Port:   os.Getenv("PORT"),
		Force:  *force,
	}

	if *only != "" {
		for _, s := range strings.Split(*only, ",") {
			kind, err := scaffold.ParseKind(strings.TrimSpace(s))
			if err != nil {
				logger.Logger.Fatal().Err(err).Msg("Invalid -only")
			}
			opts.Only = append(opts.Only, kind)
		}
	}

	name := flag.Arg(0)
	written, err := scaffold.Generate(*root, name, opts)
	if err != nil {
		logger.Logger.Fatal().Err(err).Str("resource", name).Msg("Error creating resource")
	}

	for _, path := range written {
		logger.Logger.Info().Str("path", path).Msg("Created")
	}

	names, _ := scaffold.NewNames(name)
	logger.Logger.Info().Msgf("Resource %s created successfully", names.Type)
	fmt.Print(scaffold.NextSteps(names))
}

func kindList() string {
	kinds := make([]string, 0, len(scaffold.Kinds))
	for _, k := range scaffold.Kinds {
		kinds = append(kinds, string(k))
	}
	return strings.Join(kinds, ", ")
}
