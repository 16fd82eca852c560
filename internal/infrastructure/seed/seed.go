// internal/infrastructure/seed/seed.go
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/your-org/storefront/internal/domain/catalog"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// file is the on-disk layout of a catalog document
type file struct {
	Categories []catalog.Category `yaml:"categories"`
	Products   []productRecord    `yaml:"products"`
}

// productRecord references its category by id instead of embedding it
type productRecord struct {
	catalog.Product `yaml:",inline"`
	CategoryID      string `yaml:"category_id"`
}

// Source serves a catalog from a YAML document, the embedded one by default
type Source struct {
	data  []byte
	delay time.Duration
}

// Option configures a Source
type Option func(*Source)

// WithDelay simulates backend latency on every load
func WithDelay(d time.Duration) Option {
	return func(s *Source) {
		s.delay = d
	}
}

// WithDocument replaces the embedded catalog
func WithDocument(data []byte) Option {
	return func(s *Source) {
		s.data = data
	}
}

// NewSource creates a new seed catalog source
func NewSource(opts ...Option) *Source {
	s := &Source{data: defaultCatalog}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadCatalog parses the document after the configured delay
func (s *Source) LoadCatalog(ctx context.Context) (*catalog.Seed, error) {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Parse(s.data)
}

// Parse decodes a catalog document and derives the featured, popular and new lists
func Parse(data []byte) (*catalog.Seed, error) {
	var doc file
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	categories := make(map[string]catalog.Category, len(doc.Categories))
	for _, c := range doc.Categories {
		if c.ID == "" || c.Slug == "" {
			return nil, fmt.Errorf("category %q: id and slug are required", c.Name)
		}
		if _, dup := categories[c.ID]; dup {
			return nil, fmt.Errorf("duplicate category id %q", c.ID)
		}
		categories[c.ID] = c
	}

	seen := make(map[string]bool, len(doc.Products))
	products := make([]catalog.Product, 0, len(doc.Products))
	for _, rec := range doc.Products {
		p := rec.Product
		if p.ID == "" {
			return nil, fmt.Errorf("product %q: id is required", p.Name)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		seen[p.ID] = true

		c, ok := categories[rec.CategoryID]
		if !ok {
			return nil, fmt.Errorf("product %s: unknown category %q", p.ID, rec.CategoryID)
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("product %s: negative price", p.ID)
		}
		p.Category = c
		products = append(products, p)
	}

	return catalog.NewSeed(products, doc.Categories), nil
}
