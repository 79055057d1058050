package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Default returns a fresh copy of the built-in reference catalog.
func Default() *Catalog {
	c, err := Load(bytes.NewReader(defaultCatalog))
	if err != nil {
		panic(fmt.Sprintf("built-in catalog is invalid: %v", err))
	}
	return c
}

// Load decodes a YAML catalog document. Unknown keys are rejected.
func Load(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	if err := validate(doc); err != nil {
		return nil, err
	}
	return New(doc), nil
}

// LoadFile reads a catalog from path, or returns the built-in one when path is empty.
func LoadFile(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func validate(doc Document) error {
	for category := range doc.LocationLabels {
		if _, err := ParseCategory(string(category)); err != nil {
			return fmt.Errorf("location_labels: %w", err)
		}
	}
	for _, e := range append(append([]Entry(nil), doc.Sports...), doc.Esports...) {
		if e.Name == "" {
			return fmt.Errorf("catalog entry without a name")
		}
	}
	check := func(where string, s Schema) error {
		if s.Kind != KindDropdown && s.Kind != KindText {
			return fmt.Errorf("%s: unknown schema type %q", where, s.Kind)
		}
		return nil
	}
	for name, s := range doc.Schemas.Common {
		if err := check(name, s); err != nil {
			return err
		}
	}
	for sport, byType := range doc.Schemas.BySport {
		for name, s := range byType {
			if err := check(sport+"/"+name, s); err != nil {
				return err
			}
		}
	}
	return nil
}
