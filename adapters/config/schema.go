package config

import (
	"github.com/bobmake/bob/core/domain"
	"go.trai.ch/zerr"
)

// Bobfile represents the structure of the bob.yaml declaration file.
type Bobfile struct {
	Version string               `yaml:"version"`
	Targets map[string]TargetDTO `yaml:"targets"`
}

// TargetDTO represents one target declaration. The map key is the
// target's name: the phony name for phony targets, otherwise the single
// output path unless outputs overrides it.
type TargetDTO struct {
	Outputs []string `yaml:"outputs"`
	Cmd     []string `yaml:"cmd"`
	Shell   string   `yaml:"shell"`
	Deps    []string `yaml:"deps"`
	Dir     string   `yaml:"dir"`
	Phony   bool     `yaml:"phony"`
}

// recipe builds the declared recipe, or nil when the target has none.
func (dto TargetDTO) recipe(name string) (*domain.Recipe, error) {
	if len(dto.Cmd) > 0 && dto.Shell != "" {
		return nil, zerr.With(zerr.New("cmd and shell are mutually exclusive"), "target", name)
	}
	switch {
	case len(dto.Cmd) > 0:
		return domain.NewCommandRecipe(dto.Cmd[0], dto.Cmd[1:]...).InDir(dto.Dir), nil
	case dto.Shell != "":
		return domain.NewShellRecipe(dto.Shell).InDir(dto.Dir), nil
	default:
		return nil, nil
	}
}
