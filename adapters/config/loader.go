// Package config loads declarative target definitions for the standalone
// CLI from a YAML file.
package config

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/bobmake/bob/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the conventional declaration file name.
const DefaultFilename = "bob.yaml"

// FileLoader loads target declarations from a YAML file.
type FileLoader struct {
	Filename string
}

// Load reads the declaration file from the given working directory and
// returns a session populated with its targets.
func (l *FileLoader) Load(cwd string) (*domain.Session, error) {
	name := l.Filename
	if name == "" {
		name = DefaultFilename
	}
	return Load(filepath.Join(cwd, name))
}

// Load reads a declaration file from path.
func Load(path string) (*domain.Session, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read declaration file")
	}

	var file Bobfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, "failed to parse declaration file")
	}

	session := domain.NewSession()

	// Registration order decides the default target, so iterate names
	// deterministically.
	names := make([]string, 0, len(file.Targets))
	for name := range file.Targets {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		if err := declare(session, name, file.Targets[name]); err != nil {
			return nil, err
		}
	}

	return session, nil
}

func declare(session *domain.Session, name string, dto TargetDTO) error {
	recipe, err := dto.recipe(name)
	if err != nil {
		return err
	}

	deps := make([]domain.Dependency, len(dto.Deps))
	for i, d := range dto.Deps {
		deps[i] = domain.PathDep(d)
	}

	if dto.Phony {
		if len(dto.Outputs) > 0 {
			return zerr.With(zerr.New("phony targets cannot declare outputs"), "target", name)
		}
		_, err = session.NewPhonyTarget(name, recipe, deps...)
	} else {
		outputs := dto.Outputs
		if len(outputs) == 0 {
			outputs = []string{name}
		}
		_, err = session.NewTarget(outputs, recipe, deps...)
	}
	if err != nil {
		return zerr.With(zerr.Wrap(err, "invalid target declaration"), "target", name)
	}
	return nil
}
