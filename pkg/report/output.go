package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/ormasoftchile/autodoc/pkg/extract"
	"github.com/ormasoftchile/autodoc/pkg/playbook"
)

// DefaultOutputPath names the report for playbookPath:
// README_<base name without extension>_.md, placed in dir when dir is set.
func DefaultOutputPath(playbookPath, dir string) string {
	base := filepath.Base(playbookPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		stem = base // dotfile such as ".site"
	}
	name := "README_" + stem + "_.md"
	if dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}

// WriteFile renders the report and writes it to path, replacing any
// existing file.
func WriteFile(path, name string, plays []extract.NormalizedPlay) error {
	var buf bytes.Buffer
	if err := Render(&buf, name, plays); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return &playbook.IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}
