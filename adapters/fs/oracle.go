// Package fs implements the filesystem-backed staleness oracle.
package fs

import (
	"os"
	"time"

	"github.com/bobmake/bob/core/domain"
	"github.com/bobmake/bob/core/ports"
)

var _ ports.Oracle = (*Oracle)(nil)

// Oracle decides staleness by comparing modification timestamps of a
// target's outputs against its dependencies' outputs.
type Oracle struct{}

// NewOracle creates a new Oracle.
func NewOracle() *Oracle {
	return &Oracle{}
}

// ShouldBuild reports whether t must be rebuilt.
//
// Phony targets are always stale. A single-output target naming an
// existing directory is never stale. Otherwise the target is stale when
// any of its outputs is missing, when any dependency is a phony target,
// or when its newest output is not strictly newer than the newest
// existing dependency file. A dependency set with no existing files
// forces nothing.
func (o *Oracle) ShouldBuild(t *domain.Target) bool {
	if t.Phony() {
		return true
	}

	outputs := t.Outputs()
	if len(outputs) == 1 && isDir(outputs[0]) {
		return false
	}

	own, complete := latestComplete(outputs)
	if !complete {
		return true
	}

	var depPaths []string
	for _, dep := range t.Dependencies() {
		if target, ok := dep.Target(); ok {
			if target.Phony() {
				return true
			}
			depPaths = append(depPaths, target.Outputs()...)
			continue
		}
		path, _ := dep.Path()
		depPaths = append(depPaths, path)
	}

	depLatest, any := latestExisting(depPaths)
	if !any {
		return false
	}

	// Ties rebuild.
	return !own.After(depLatest)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// latestComplete returns the newest modification time across paths and
// whether every path exists.
func latestComplete(paths []string) (time.Time, bool) {
	var latest time.Time
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return time.Time{}, false
		}
		if mt := info.ModTime(); mt.After(latest) {
			latest = mt
		}
	}
	return latest, true
}

// latestExisting returns the newest modification time across the paths
// that exist, and whether any existed at all.
func latestExisting(paths []string) (time.Time, bool) {
	var latest time.Time
	any := false
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			continue
		}
		if mt := info.ModTime(); !any || mt.After(latest) {
			latest = mt
		}
		any = true
	}
	return latest, any
}
