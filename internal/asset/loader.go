package asset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"ar-furniture/internal/scene"

	"github.com/qmuntal/gltf"
)

// Loader reads furniture models from disk. Asset references are slash-separated paths relative
// to Root (e.g. "assets/chair.glb").
type Loader struct {
	Root string
}

// NewLoader returns a loader resolving references under root ("" means the working directory).
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// Resolve returns the file path for ref.
func (l *Loader) Resolve(ref string) string {
	p := filepath.FromSlash(ref)
	if filepath.IsAbs(p) || l.Root == "" {
		return filepath.Clean(p)
	}
	return filepath.Join(l.Root, p)
}

// Load reads and decodes the model at ref; external buffers resolve next to the model file.
// Safe to call from worker goroutines: it touches only the file system and builds a detached
// node tree.
func (l *Loader) Load(ctx context.Context, ref string) (*scene.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := gltf.Open(l.Resolve(ref))
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return nil, fmt.Errorf("asset: %w", err)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrFormat, ref, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return build(doc, ref)
}
