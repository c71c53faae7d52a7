package report

import (
	"log/slog"
	"path/filepath"

	"github.com/ormasoftchile/autodoc/pkg/extract"
	"github.com/ormasoftchile/autodoc/pkg/playbook"
)

// Options configure a Generate or Build run.
type Options struct {
	PlaybookPath string
	// OutputPath overrides the default README_<name>_.md.
	OutputPath string
	// OutputDir holds the default-named report when OutputPath is empty.
	OutputDir string
	// Select is an optional expr-lang expression filtering plays.
	Select string
	Loader *playbook.Loader
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// Built is a rendered-in-memory report.
type Built struct {
	Name  string
	Plays []extract.NormalizedPlay
}

// Result describes a written report.
type Result struct {
	OutputPath string
	Plays      []extract.NormalizedPlay
}

// Build loads the playbook and extracts the plays to report on.
func Build(opts Options) (*Built, error) {
	log := opts.logger()
	sel, err := extract.NewSelector(opts.Select)
	if err != nil {
		return nil, err
	}
	loader := opts.Loader
	if loader == nil {
		loader = playbook.NewLoader()
	}
	doc, err := loader.LoadFile(opts.PlaybookPath)
	if err != nil {
		return nil, err
	}
	log.Debug("playbook loaded", "path", opts.PlaybookPath, "plays", len(doc.Plays))

	plays, err := sel.Filter(extract.Extract(doc))
	if err != nil {
		return nil, err
	}
	if opts.Select != "" {
		log.Debug("plays selected", "expression", opts.Select, "kept", len(plays), "of", len(doc.Plays))
	}
	return &Built{Name: filepath.Base(opts.PlaybookPath), Plays: plays}, nil
}

// Generate runs load, extract, render and write for one playbook.
func Generate(opts Options) (*Result, error) {
	b, err := Build(opts)
	if err != nil {
		return nil, err
	}
	out := opts.OutputPath
	if out == "" {
		out = DefaultOutputPath(opts.PlaybookPath, opts.OutputDir)
	}
	if err := WriteFile(out, b.Name, b.Plays); err != nil {
		return nil, err
	}
	opts.logger().Debug("report written", "path", out)
	return &Result{OutputPath: out, Plays: b.Plays}, nil
}
