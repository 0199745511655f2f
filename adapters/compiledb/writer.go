// Package compiledb exports a clang-style compilation database from the
// declared targets.
package compiledb

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/bobmake/bob/core/domain"
	"github.com/bobmake/bob/core/ports"
	"github.com/google/shlex"
	"go.trai.ch/zerr"
)

// DefaultFilename is the conventional compilation database name.
const DefaultFilename = "compile_commands.json"

// sourceExtensions are the translation-unit suffixes recognized as the
// "file" of a compile command.
var sourceExtensions = []string{".c", ".cpp", ".cc", ".cxx", ".i", ".ii"}

// Entry is one compilation database record.
type Entry struct {
	Directory string   `json:"directory"`
	Arguments []string `json:"arguments"`
	File      string   `json:"file"`
}

// Writer renders the registry's process-shaped recipes into a
// compile_commands.json file.
type Writer struct {
	// Root is the directory recorded on every entry. Empty means the
	// current working directory.
	Root string
	// Output is the destination path. Empty means DefaultFilename under
	// Root; a directory gets DefaultFilename appended.
	Output string

	logger ports.Logger
}

// NewWriter creates a Writer with default root and output.
func NewWriter(logger ports.Logger) *Writer {
	return &Writer{logger: logger}
}

// Generate writes one record per recognized source file argument across
// the given targets' recipes. Action recipes have no command line and are
// skipped.
func (w *Writer) Generate(targets []*domain.Target) error {
	root := w.Root
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return zerr.Wrap(err, "failed to resolve compile db root")
		}
		root = cwd
	}
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}

	output := w.Output
	if output == "" {
		output = filepath.Join(root, DefaultFilename)
	} else if info, err := os.Stat(output); err == nil && info.IsDir() {
		output = filepath.Join(output, DefaultFilename)
	}

	entries, err := Entries(root, targets)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to encode compile db")
	}
	if err := os.WriteFile(output, data, 0o644); err != nil { //nolint:gosec // tooling artifact
		return zerr.With(zerr.Wrap(err, "failed to write compile db"), "path", output)
	}

	w.logger.Debug("compile commands written to " + output)
	return nil
}

// Entries extracts the compilation records for the given targets. It is a
// pure transformation with no scheduling interaction.
func Entries(root string, targets []*domain.Target) ([]Entry, error) {
	entries := make([]Entry, 0)
	for _, t := range targets {
		recipe := t.Recipe()
		if recipe == nil || recipe.Kind() == domain.KindAction {
			continue
		}

		var args []string
		switch recipe.Kind() {
		case domain.KindShell:
			split, err := shlex.Split(recipe.Shell())
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, "failed to split shell recipe"), "target", t.String())
			}
			args = split
		case domain.KindCommand:
			args = recipe.Argv()
		}

		for _, arg := range args {
			if isSourceFile(arg) {
				entries = append(entries, Entry{
					Directory: root,
					Arguments: args,
					File:      arg,
				})
			}
		}
	}
	return entries, nil
}

func isSourceFile(arg string) bool {
	for _, ext := range sourceExtensions {
		if strings.HasSuffix(arg, ext) {
			return true
		}
	}
	return false
}
