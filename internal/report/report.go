// Package report renders a checker result for people (styled text) or
// programs (JSON, YAML).
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/Manjussha/tunecheck/internal/checker"
	"github.com/Manjussha/tunecheck/internal/estimate"
	"github.com/Manjussha/tunecheck/internal/stats"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Write renders res to w in the given format.
func Write(w io.Writer, format string, res *checker.Result, color bool) error {
	switch format {
	case FormatText:
		return Text(w, res, color)
	case FormatJSON:
		return JSON(w, res)
	case FormatYAML:
		return YAML(w, res)
	default:
		return fmt.Errorf("report.Write: unknown format %q", format)
	}
}

// IsTerminal returns true if f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Document is the machine-readable shape of a result.
type Document struct {
	Path          string               `json:"path" yaml:"path"`
	Fingerprint   string               `json:"fingerprint" yaml:"fingerprint"`
	Encoding      string               `json:"encoding" yaml:"encoding"`
	Examples      int                  `json:"examples" yaml:"examples"`
	Valid         int                  `json:"valid" yaml:"valid"`
	Empty         bool                 `json:"empty,omitempty" yaml:"empty,omitempty"`
	Errors        []ErrorGroup         `json:"errors" yaml:"errors"`
	Distributions []stats.Distribution `json:"distributions,omitempty" yaml:"distributions,omitempty"`
	Estimate      *estimate.Estimate   `json:"estimate,omitempty" yaml:"estimate,omitempty"`
}

// ErrorGroup is one category of validation findings.
type ErrorGroup struct {
	Category string `json:"category" yaml:"category"`
	Count    int    `json:"count" yaml:"count"`
	Lines    []int  `json:"lines" yaml:"lines,flow"`
}

// NewDocument flattens res into a Document.
func NewDocument(res *checker.Result) Document {
	doc := Document{
		Path:          res.Path,
		Fingerprint:   res.Fingerprint,
		Encoding:      res.Encoding,
		Examples:      res.Examples,
		Valid:         res.Valid,
		Empty:         res.Empty,
		Errors:        []ErrorGroup{},
		Distributions: res.Distributions,
		Estimate:      res.Estimate,
	}
	for _, c := range res.Validation.Categories() {
		doc.Errors = append(doc.Errors, ErrorGroup{
			Category: c.String(),
			Count:    res.Validation.Count(c),
			Lines:    res.Validation.Lines(c),
		})
	}
	return doc
}

// JSON writes res as indented JSON.
func JSON(w io.Writer, res *checker.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(res)); err != nil {
		return fmt.Errorf("report.JSON: %w", err)
	}
	return nil
}

// YAML writes res as a YAML document.
func YAML(w io.Writer, res *checker.Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(res)); err != nil {
		return fmt.Errorf("report.YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("report.YAML: close: %w", err)
	}
	return nil
}
