package catalog

import (
	"maps"
	"slices"
)

// Catalog is the static reference data used to populate pickers before anything
// has been entered by the user. Lookups never fail: a miss yields an empty list or
// the documented fallback so an unknown sport never blocks bet entry.
//
// A Catalog is built once at startup and handed to its consumers. It is not safe
// for concurrent mutation.
type Catalog struct {
	locationLabels map[Category]string
	sports         []string
	esports        []string
	betTypes       map[string][]BetType
	tournaments    map[string][]string
	locations      map[string][]string
	teams          map[string][]string
	schemas        SchemaTiers
	sections       SectionTiers
}

// New builds a catalog from a decoded document. The document is copied.
func New(doc Document) *Catalog {
	c := &Catalog{
		locationLabels: maps.Clone(doc.LocationLabels),
		betTypes:       make(map[string][]BetType),
		tournaments:    make(map[string][]string),
		locations:      make(map[string][]string),
		teams:          make(map[string][]string),
		schemas: SchemaTiers{
			Common:  maps.Clone(doc.Schemas.Common),
			BySport: make(map[string]map[string]Schema, len(doc.Schemas.BySport)),
		},
		sections: SectionTiers{
			Common:  maps.Clone(doc.Sections.Common),
			BySport: make(map[string]map[string]Sections, len(doc.Sections.BySport)),
		},
	}
	if c.locationLabels == nil {
		c.locationLabels = make(map[Category]string)
	}
	for sport, byType := range doc.Schemas.BySport {
		c.schemas.BySport[sport] = maps.Clone(byType)
	}
	for sport, byType := range doc.Sections.BySport {
		c.sections.BySport[sport] = maps.Clone(byType)
	}
	for _, e := range doc.Sports {
		c.AddSport(e)
	}
	for _, e := range doc.Esports {
		c.AddEsport(e)
	}
	return c
}

// Categories returns the fixed category set.
func (c *Catalog) Categories() []Category {
	return []Category{CategorySport, CategoryEsport}
}

// LocationLabel is "Stadium/City:" for sports and "Map:" for esports.
func (c *Catalog) LocationLabel(category Category) string {
	if label, ok := c.locationLabels[category]; ok {
		return label
	}
	return "Location"
}

func (c *Catalog) Sports() []string {
	return slices.Clone(c.sports)
}

func (c *Catalog) Esports() []string {
	return slices.Clone(c.esports)
}

// Names lists the sports or games of one category.
func (c *Catalog) Names(category Category) []string {
	switch category {
	case CategorySport:
		return c.Sports()
	case CategoryEsport:
		return c.Esports()
	}
	return append(c.Sports(), c.esports...)
}

// CategoryOf reports which category a sport or game belongs to.
func (c *Catalog) CategoryOf(sportOrGame string) (Category, bool) {
	if slices.Contains(c.sports, sportOrGame) {
		return CategorySport, true
	}
	if slices.Contains(c.esports, sportOrGame) {
		return CategoryEsport, true
	}
	return "", false
}

func (c *Catalog) BetTypes(sportOrGame string) []BetType {
	return slices.Clone(c.betTypes[sportOrGame])
}

func (c *Catalog) Tournaments(sportOrGame string) []string {
	return slices.Clone(c.tournaments[sportOrGame])
}

func (c *Catalog) Locations(sportOrGame string) []string {
	return slices.Clone(c.locations[sportOrGame])
}

func (c *Catalog) Teams(sportOrGame string) []string {
	return slices.Clone(c.teams[sportOrGame])
}

// ResolveSchema picks the option schema for a bet type: a schema specific to the
// sport wins over one shared by all sports, and free text is the last resort.
func (c *Catalog) ResolveSchema(sportOrGame, betType string) Schema {
	if s, ok := c.schemas.BySport[sportOrGame][betType]; ok {
		return normalize(s)
	}
	if s, ok := c.schemas.Common[betType]; ok {
		return normalize(s)
	}
	return Text(DefaultPlaceholder)
}

// ResolveSections uses the same tiers as ResolveSchema. Everything is shown by default.
func (c *Catalog) ResolveSections(sportOrGame, betType string) Sections {
	if s, ok := c.sections.BySport[sportOrGame][betType]; ok {
		return s
	}
	if s, ok := c.sections.Common[betType]; ok {
		return s
	}
	return AllSections
}

// AddSport registers a sport and replaces any reference lists already held for it.
func (c *Catalog) AddSport(e Entry) {
	c.sports = append(c.sports, e.Name)
	c.setEntry(e)
}

func (c *Catalog) AddEsport(e Entry) {
	c.esports = append(c.esports, e.Name)
	c.setEntry(e)
}

func (c *Catalog) setEntry(e Entry) {
	c.betTypes[e.Name] = slices.Clone(e.BetTypes)
	c.tournaments[e.Name] = slices.Clone(e.Tournaments)
	c.locations[e.Name] = slices.Clone(e.Locations)
	c.teams[e.Name] = slices.Clone(e.Teams)
}

// AddBetType appends to a known sport or game. Unknown names are ignored.
func (c *Catalog) AddBetType(sportOrGame, name, description string) {
	if types, ok := c.betTypes[sportOrGame]; ok {
		c.betTypes[sportOrGame] = append(types, BetType{Name: name, Description: description})
	}
}

func (c *Catalog) AddTournament(sportOrGame, name string) {
	appendKnown(c.tournaments, sportOrGame, name)
}

func (c *Catalog) AddLocation(sportOrGame, name string) {
	appendKnown(c.locations, sportOrGame, name)
}

func (c *Catalog) AddTeam(sportOrGame, name string) {
	appendKnown(c.teams, sportOrGame, name)
}

func appendKnown(m map[string][]string, key, value string) {
	if list, ok := m[key]; ok {
		m[key] = append(list, value)
	}
}

// normalize guarantees a text schema always carries a hint.
func normalize(s Schema) Schema {
	if s.Kind != KindDropdown {
		s.Kind = KindText
		if s.Placeholder == "" {
			s.Placeholder = DefaultPlaceholder
		}
		s.Options = nil
		return s
	}
	s.Options = slices.Clone(s.Options)
	return s
}
