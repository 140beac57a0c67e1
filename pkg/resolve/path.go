package resolve

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/walteh/accsend/pkg/config"
	"github.com/walteh/accsend/pkg/tracker"
	"gitlab.com/tozd/go/errors"
)

// 📍 RelativePath is a component path expressed relative to its project root
type RelativePath struct {
	ProjectCode string
	Path        string // posix, never empty, never contains ".."
}

// String returns the project-relative path
func (r RelativePath) String() string {
	return r.Path
}

// SharePath returns the path relative to the mover's default root share
func (r RelativePath) SharePath() string {
	return r.ProjectCode + "/" + r.Path
}

// 🧭 Resolver derives project-relative paths from component paths. It only
// inspects strings and never touches the filesystem.
type Resolver struct {
	roots  [][]string
	ignore []string
}

// 🏭 NewResolver creates a resolver from the resolve config section
func NewResolver(cfg config.ResolveConfig) (*Resolver, error) {
	r := &Resolver{}

	for _, root := range cfg.ProjectRoots {
		segs := splitSegments(root)
		if len(segs) == 0 {
			return nil, errors.Errorf("invalid project root %q", root)
		}
		r.roots = append(r.roots, segs)
	}

	for _, pattern := range cfg.IgnorePatterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid ignore pattern %q", pattern)
		}
		r.ignore = append(r.ignore, pattern)
	}

	return r, nil
}

// splitSegments splits on both windows and posix separators, dropping empty
// and "." segments
func splitSegments(p string) []string {
	fields := strings.FieldsFunc(p, func(r rune) bool {
		return r == '\\' || r == '/'
	})

	out := fields[:0]
	for _, f := range fields {
		if f == "." {
			continue
		}
		out = append(out, f)
	}
	return out
}

// 🎯 ResolveRelativePath returns the segments after the first segment equal to
// the component's project code
func (r *Resolver) ResolveRelativePath(c tracker.Component) (RelativePath, error) {
	if strings.TrimSpace(c.Path) == "" {
		return RelativePath{}, errors.Errorf("%w: %s", ErrMissingPath, c.ID)
	}
	if c.ProjectCode == "" {
		return RelativePath{}, errors.Errorf("%w: component %s has no project code", ErrProjectCodeNotFound, c.ID)
	}

	segs := splitSegments(c.Path)

	idx := -1
	for i, s := range segs {
		if s == c.ProjectCode {
			idx = i
			break
		}
	}
	if idx < 0 {
		return RelativePath{}, errors.Errorf("%w: %q not in %s", ErrProjectCodeNotFound, c.ProjectCode, c.Path)
	}

	if !r.beneathRoot(segs[:idx]) {
		return RelativePath{}, errors.Errorf("%w: %s", ErrUnsupportedLayout, c.Path)
	}

	rest := segs[idx+1:]
	if len(rest) == 0 {
		return RelativePath{}, errors.Errorf("%w: %s", ErrEmptyRelativePath, c.Path)
	}
	for _, s := range rest {
		if s == ".." {
			return RelativePath{}, errors.Errorf("%w: %s", ErrPathEscapesProject, c.Path)
		}
	}

	return RelativePath{
		ProjectCode: c.ProjectCode,
		Path:        strings.Join(rest, "/"),
	}, nil
}

// beneathRoot reports whether prefix is exactly one configured root. With no
// roots configured any prefix is accepted; an empty prefix means the path is
// already share-relative.
func (r *Resolver) beneathRoot(prefix []string) bool {
	if len(r.roots) == 0 || len(prefix) == 0 {
		return true
	}
	for _, root := range r.roots {
		if len(root) != len(prefix) {
			continue
		}
		match := true
		for i := range root {
			if !strings.EqualFold(root[i], prefix[i]) {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// 🔍 Ignored reports the first ignore pattern matching the component's path or name
func (r *Resolver) Ignored(c tracker.Component) (string, bool) {
	posix := strings.ReplaceAll(c.Path, "\\", "/")
	for _, pattern := range r.ignore {
		if ok, _ := doublestar.Match(pattern, posix); ok {
			return pattern, true
		}
		if c.Name != "" {
			if ok, _ := doublestar.Match(pattern, c.Name); ok {
				return pattern, true
			}
		}
	}
	return "", false
}
