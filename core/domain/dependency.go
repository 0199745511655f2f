package domain

// Dependency is a single entry in a target's dependency list: either a
// reference to another target, or a bare path whose producing target (if
// any) is found during resolution. A path with no producer stays a path
// and is treated as an always-available leaf file.
type Dependency struct {
	target *Target
	path   InternedString
}

// TargetDep declares a dependency on another target.
func TargetDep(t *Target) Dependency {
	return Dependency{target: t}
}

// PathDep declares a dependency on a filesystem path. If a declared
// target lists the path among its outputs, resolution replaces this entry
// with that target.
func PathDep(path string) Dependency {
	return Dependency{path: NewInternedString(path)}
}

// Target returns the resolved target and true, or nil and false for an
// unresolved path reference.
func (d Dependency) Target() (*Target, bool) {
	return d.target, d.target != nil
}

// Path returns the path reference and true, or "" and false when the
// dependency points at a target.
func (d Dependency) Path() (string, bool) {
	if d.target != nil {
		return "", false
	}
	return d.path.String(), true
}

func (d Dependency) valid() bool {
	return d.target != nil || d.path.String() != ""
}

// String renders the dependency for diagnostics.
func (d Dependency) String() string {
	if d.target != nil {
		return d.target.String()
	}
	return d.path.String()
}
