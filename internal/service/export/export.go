// Package export renders a project's markdown and Mermaid diagram files into
// a single PDF using external tools.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"pkt.systems/pslog"
)

const (
	combinedFile = "project.md"
	headerFile   = "header.tex"
	pdfFile      = "project.pdf"
)

const headerTeX = `
\usepackage{pagecolor}
\usepackage{fontspec}
\setmainfont{Arial}
\definecolor{background}{RGB}{19,23,31}
\definecolor{text}{RGB}{255,255,255}
\pagecolor{background}
\color{text}
`

// Options names the output directory and the external tools.
type Options struct {
	OutputDir   string
	DiagramTool string
	Converter   string
	PDFEngine   string
}

func DefaultOptions() Options {
	return Options{
		OutputDir:   "output",
		DiagramTool: "mmdc",
		Converter:   "pandoc",
		PDFEngine:   "xelatex",
	}
}

type Exporter struct {
	opts   Options
	runner Runner
}

// New returns an Exporter. Empty option fields take their defaults and a nil
// runner runs tools with os/exec.
func New(opts Options, runner Runner) *Exporter {
	defaults := DefaultOptions()
	if opts.OutputDir == "" {
		opts.OutputDir = defaults.OutputDir
	}
	if opts.DiagramTool == "" {
		opts.DiagramTool = defaults.DiagramTool
	}
	if opts.Converter == "" {
		opts.Converter = defaults.Converter
	}
	if opts.PDFEngine == "" {
		opts.PDFEngine = defaults.PDFEngine
	}
	if runner == nil {
		runner = ExecRunner{}
	}

	return &Exporter{opts: opts, runner: runner}
}

// Export regenerates the output directory of projectPath and returns the
// absolute path of the produced PDF. A failing step aborts the export and
// leaves whatever was already written in place.
func (e *Exporter) Export(ctx context.Context, projectPath string) (string, error) {
	log := pslog.Ctx(ctx).With("project", projectPath)

	// paths handed to tools must not depend on the working directory
	projectPath, err := filepath.Abs(projectPath)
	if err != nil {
		return "", errors.Wrap(err, "resolving project path")
	}

	info, err := os.Stat(projectPath)
	if err != nil {
		return "", errors.Wrapf(err, "reading project %s", projectPath)
	}
	if !info.IsDir() {
		return "", errors.Errorf("project path is not a directory: %s", projectPath)
	}

	outputDir := filepath.Join(projectPath, e.opts.OutputDir)
	if err := os.RemoveAll(outputDir); err != nil {
		return "", errors.Wrap(err, "removing output directory")
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", errors.Wrap(err, "creating output directory")
	}

	sources, err := collectSources(projectPath)
	if err != nil {
		return "", err
	}
	log.Debug("export sources collected", "count", len(sources))

	var combined strings.Builder
	diagrams := 0
	for _, source := range sources {
		switch filepath.Ext(source) {
		case ".md":
			content, err := os.ReadFile(source)
			if err != nil {
				return "", errors.Wrapf(err, "reading %s", source)
			}
			combined.WriteString("\n\\pagebreak\n")
			combined.Write(content)
			combined.WriteString("\n")
		case ".mmd":
			diagrams++
			name := fmt.Sprintf("diagram_%d.png", diagrams)
			err := e.runner.Run(ctx, projectPath, e.opts.DiagramTool,
				"-i", source,
				"-o", filepath.Join(outputDir, name),
				"--theme", "dark",
				"--backgroundColor", "transparent",
				"--scale", "3",
			)
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&combined, "![%s](%s)\n\n", name, name)
		}
	}

	if err := os.WriteFile(filepath.Join(outputDir, combinedFile), []byte(combined.String()), 0644); err != nil {
		return "", errors.Wrap(err, "writing combined markdown")
	}
	if err := os.WriteFile(filepath.Join(outputDir, headerFile), []byte(headerTeX), 0644); err != nil {
		return "", errors.Wrap(err, "writing pdf header")
	}

	err = e.runner.Run(ctx, outputDir, e.opts.Converter,
		combinedFile,
		"-o", pdfFile,
		"--include-in-header", headerFile,
		"--pdf-engine", e.opts.PDFEngine,
	)
	if err != nil {
		return "", err
	}

	pdfPath, err := filepath.Abs(filepath.Join(outputDir, pdfFile))
	if err != nil {
		return "", errors.Wrap(err, "resolving pdf path")
	}
	log.Info("export finished", "pdf", pdfPath, "diagrams", diagrams)

	return pdfPath, nil
}

// collectSources returns the top-level .md and .mmd files of dir sorted by
// path.
func collectSources(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "listing project %s", dir)
	}

	var sources []string
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if ext != ".md" && ext != ".mmd" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		sources = append(sources, path)
	}
	sort.Strings(sources)

	return sources, nil
}
