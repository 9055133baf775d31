// Package module defines the read-only unit of input consumed by the
// generate runner: a stable specifier plus the module's full source text.
// Resolving an entrypoint into a module sequence is the upstream resolver's
// job; this package only models its output and offers a trivial file loader.
package module

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Module is one unit of source supplied by the upstream resolver. The runner
// never mutates it; ownership stays with the caller's sequence.
type Module struct {
	// Specifier is the module's stable identifier: a file:// URL or a
	// filesystem path.
	Specifier string

	// Source is the module's full source text.
	Source string
}

// Path resolves the specifier to a local file path. file:// URLs are
// converted; any other URL scheme is rejected, and everything else is taken
// as a plain filesystem path.
func (m Module) Path() (string, error) {
	if strings.HasPrefix(m.Specifier, "file://") {
		u, err := url.Parse(m.Specifier)
		if err != nil {
			return "", fmt.Errorf("module %s: %w", m.Specifier, err)
		}
		return filepath.FromSlash(u.Path), nil
	}
	if i := strings.Index(m.Specifier, "://"); i > 1 {
		return "", fmt.Errorf("module %s: not a local file specifier", m.Specifier)
	}
	return m.Specifier, nil
}

// Dir returns the absolute parent directory of the module's resolved file
// path, as exposed to spawned directives.
func (m Module) Dir() (string, error) {
	p, err := m.Path()
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("module %s: %w", m.Specifier, err)
	}
	return filepath.Dir(abs), nil
}

// Load reads the named files into an ordered module sequence. The order of
// paths is preserved; it determines execution order downstream.
func Load(paths []string) ([]Module, error) {
	modules := make([]Module, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("load module %s: %w", p, err)
		}
		modules = append(modules, Module{Specifier: p, Source: string(data)})
	}
	return modules, nil
}
