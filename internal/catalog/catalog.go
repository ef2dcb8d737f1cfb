package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrUnknownType is returned when a furniture type id is not in the catalog.
var ErrUnknownType = errors.New("catalog: unknown furniture type")

//go:embed default.yaml
var defaultYAML []byte

// Definition is one furniture type: display name, model asset reference, and the uniform
// scale applied at placement. Definitions are immutable once loaded.
type Definition struct {
	ID          string  `yaml:"id"`
	DisplayName string  `yaml:"name"`
	AssetRef    string  `yaml:"model"`
	Scale       float32 `yaml:"scale"`
}

type file struct {
	Furniture []Definition `yaml:"furniture"`
}

// Catalog maps furniture type id to its definition. Order is file order (the picker shows entries in it).
type Catalog struct {
	byID  map[string]Definition
	order []string
}

// Default returns the embedded catalog (chair, sofa, table, bookshelf).
func Default() *Catalog {
	c, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded default invalid: %v", err))
	}
	return c
}

// Load reads a YAML catalog from path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog. Every entry needs an id and a model reference, ids must be
// unique, and scale must be positive.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	if len(f.Furniture) == 0 {
		return nil, fmt.Errorf("catalog: no furniture entries")
	}
	c := &Catalog{byID: make(map[string]Definition, len(f.Furniture))}
	for i, d := range f.Furniture {
		switch {
		case d.ID == "":
			return nil, fmt.Errorf("catalog: entry %d: missing id", i+1)
		case d.AssetRef == "":
			return nil, fmt.Errorf("catalog: %s: missing model", d.ID)
		case d.Scale <= 0:
			return nil, fmt.Errorf("catalog: %s: scale must be positive, got %v", d.ID, d.Scale)
		}
		if _, dup := c.byID[d.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate id %q", d.ID)
		}
		if d.DisplayName == "" {
			d.DisplayName = d.ID
		}
		c.byID[d.ID] = d
		c.order = append(c.order, d.ID)
	}
	return c, nil
}

// Lookup returns the definition for id.
func (c *Catalog) Lookup(id string) (Definition, bool) {
	d, ok := c.byID[id]
	return d, ok
}

// Get is Lookup with ErrUnknownType for a missing id.
func (c *Catalog) Get(id string) (Definition, error) {
	d, ok := c.byID[id]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q", ErrUnknownType, id)
	}
	return d, nil
}

// IDs returns type ids in catalog order.
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Definitions returns a copy of every definition in catalog order.
func (c *Catalog) Definitions() []Definition {
	out := make([]Definition, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// Len returns the number of furniture types.
func (c *Catalog) Len() int {
	return len(c.order)
}
