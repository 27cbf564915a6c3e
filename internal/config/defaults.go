package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/spinday/internal/models"
)

//go:embed defaults.yaml
var embeddedDefaults []byte

// Catalog is the read-only source of default activities per context.
type Catalog struct {
	Weekday []string `yaml:"weekday"`
	Weekend []string `yaml:"weekend"`
}

// Items returns the default labels for ctx in source order. The returned
// slice is a copy.
func (c Catalog) Items(ctx models.PoolContext) []string {
	var src []string
	switch ctx {
	case models.ContextWeekday:
		src = c.Weekday
	case models.ContextWeekend:
		src = c.Weekend
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// Contains reports whether label is a default item in any context.
func (c Catalog) Contains(label string) bool {
	for _, ctx := range models.Contexts {
		for _, item := range c.Items(ctx) {
			if item == label {
				return true
			}
		}
	}
	return false
}

// DefaultCatalog returns the catalog compiled into the binary.
func DefaultCatalog() Catalog {
	cat, err := ParseCatalog(embeddedDefaults)
	if err != nil {
		panic(fmt.Sprintf("embedded defaults.yaml is invalid: %v", err))
	}
	return cat
}

// LoadCatalog reads a catalog file. An empty path yields the embedded catalog.
func LoadCatalog(path string) (Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	expanded, err := ExpandPath(path)
	if err != nil {
		return Catalog{}, err
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to read defaults file: %w", err)
	}
	cat, err := ParseCatalog(data)
	if err != nil {
		return Catalog{}, fmt.Errorf("invalid defaults file %s: %w", path, err)
	}
	return cat, nil
}

// ParseCatalog decodes YAML and enforces the catalog invariants: labels are
// non-empty and unique within a context.
func ParseCatalog(data []byte) (Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return Catalog{}, err
	}
	for _, ctx := range models.Contexts {
		seen := make(map[string]bool)
		for _, item := range cat.Items(ctx) {
			if strings.TrimSpace(item) == "" {
				return Catalog{}, fmt.Errorf("%s list contains an empty label", ctx)
			}
			if seen[item] {
				return Catalog{}, fmt.Errorf("%s list contains %q more than once", ctx, item)
			}
			seen[item] = true
		}
	}
	return cat, nil
}
