// Package resource opens the two metadata inputs. A location is either a
// plain filesystem path or a "classpath:"-prefixed logical name resolved
// against a configured list of root directories, in order.
package resource

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const classpathPrefix = "classpath:"

type Loader struct {
	Roots []string
}

func NewLoader(roots []string) *Loader {
	if len(roots) == 0 {
		roots = []string{"."}
	}
	return &Loader{Roots: roots}
}

// Open returns a reader for location. Callers own the returned handle.
func (l *Loader) Open(location string) (io.ReadCloser, error) {
	if !strings.HasPrefix(location, classpathPrefix) {
		f, err := os.Open(location)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", location, err)
		}
		return f, nil
	}

	name := strings.TrimPrefix(location, classpathPrefix)
	for _, root := range l.Roots {
		f, err := os.Open(filepath.Join(root, filepath.FromSlash(name)))
		if err == nil {
			return f, nil
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("open %s: %w", location, err)
		}
	}
	return nil, fmt.Errorf("open %s: not found under roots %v", location, l.Roots)
}
