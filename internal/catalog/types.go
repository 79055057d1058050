package catalog

import "fmt"

// Category splits sports from esports. It decides how the location field is labelled.
type Category string

const (
	CategorySport  Category = "Sport"
	CategoryEsport Category = "Esport"
)

// ParseCategory accepts the canonical names only.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategorySport, CategoryEsport:
		return Category(s), nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// BetType is a kind of wager offered for one sport or game.
type BetType struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type SchemaKind string

const (
	KindDropdown SchemaKind = "dropdown"
	KindText     SchemaKind = "text"
)

// DefaultPlaceholder is shown when nothing more specific is known about a bet type.
const DefaultPlaceholder = "Enter bet"

// Schema describes the input offered for a bet selection: either a fixed set of
// options or a free-text field with a placeholder hint.
type Schema struct {
	Kind        SchemaKind `yaml:"type"`
	Options     []string   `yaml:"options,omitempty"`
	Placeholder string     `yaml:"placeholder,omitempty"`
}

func Dropdown(options ...string) Schema {
	return Schema{Kind: KindDropdown, Options: options}
}

func Text(placeholder string) Schema {
	return Schema{Kind: KindText, Placeholder: placeholder}
}

func (s Schema) IsDropdown() bool {
	return s.Kind == KindDropdown
}

// Sections says which optional parts of the bet form are shown.
type Sections struct {
	Location bool `yaml:"location"`
	Line     bool `yaml:"line"`
	Bet      bool `yaml:"bet"`
}

// AllSections is the fallback when a bet type has no explicit rule.
var AllSections = Sections{Location: true, Line: true, Bet: true}

// Entry is the reference data for one sport or game.
type Entry struct {
	Name        string    `yaml:"name"`
	BetTypes    []BetType `yaml:"bet_types"`
	Tournaments []string  `yaml:"tournaments"`
	Locations   []string  `yaml:"locations"`
	Teams       []string  `yaml:"teams"`
}

// Document is the on-disk form of a catalog.
type Document struct {
	LocationLabels map[Category]string `yaml:"location_labels"`
	Sports         []Entry             `yaml:"sports"`
	Esports        []Entry             `yaml:"esports"`
	Schemas        SchemaTiers         `yaml:"schemas"`
	Sections       SectionTiers        `yaml:"sections"`
}

// SchemaTiers holds option schemas shared by every sport plus per-sport overrides.
type SchemaTiers struct {
	Common  map[string]Schema            `yaml:"common"`
	BySport map[string]map[string]Schema `yaml:"by_sport"`
}

type SectionTiers struct {
	Common  map[string]Sections            `yaml:"common"`
	BySport map[string]map[string]Sections `yaml:"by_sport"`
}
