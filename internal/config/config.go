package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries everything one merge job needs.
type Config struct {
	InputFiles     []string // ordered input workbooks; order drives schema and row order
	OutputPath     string
	MetaColumns    []string // metadata labels (non-class columns), e.g. the sample identifier
	IgnoreBlanks   bool     // skip blank-sample rows at load time
	TrimClassNames bool     // trim surrounding whitespace off header labels at load time
	ShowVersion    bool
}

// ParseFlags parses command-line arguments (excluding the program name).
// Input files are positional; defaults may come from LIPIMERGE_* environment
// variables, optionally loaded from a .env file.
func ParseFlags(args []string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	var meta string

	fs := flag.NewFlagSet("lipimerge", flag.ContinueOnError)
	fs.StringVar(&cfg.OutputPath, "out", envOrDefault("LIPIMERGE_OUT", ""), "output xlsx file")
	fs.StringVar(&meta, "meta", envOrDefault("LIPIMERGE_META_COLUMNS", "Sample"), "comma-separated metadata column labels")
	fs.BoolVar(&cfg.IgnoreBlanks, "ignore-blanks", false, "skip rows whose sample name contains 'blank'")
	fs.BoolVar(&cfg.TrimClassNames, "trim-class-names", false, "trim whitespace around class names before matching")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.InputFiles = fs.Args()
	if cfg.ShowVersion {
		return cfg, nil
	}

	if len(cfg.InputFiles) == 0 {
		return nil, fmt.Errorf("no input files given")
	}
	if cfg.OutputPath == "" {
		return nil, fmt.Errorf("output file must be set with -out")
	}

	for _, label := range strings.Split(meta, ",") {
		if label = strings.TrimSpace(label); label != "" {
			cfg.MetaColumns = append(cfg.MetaColumns, label)
		}
	}
	if len(cfg.MetaColumns) == 0 {
		return nil, fmt.Errorf("at least one metadata column label is required")
	}

	for i, in := range cfg.InputFiles {
		cfg.InputFiles[i] = filepath.Clean(in)
	}
	cfg.OutputPath = filepath.Clean(cfg.OutputPath)

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
