package seed

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"bettracker/internal/catalog"
	"bettracker/internal/store"
)

//go:embed seed.yaml
var defaultSet []byte

// DefaultTextPlaceholder is written for text bet types whose seed entry names none.
const DefaultTextPlaceholder = "Enter bet option"

// BetType is one bet type together with the option schema stored for it.
type BetType struct {
	Name        string             `yaml:"name" validate:"required"`
	Description string             `yaml:"description"`
	Kind        catalog.SchemaKind `yaml:"type" validate:"oneof=dropdown text"`
	Options     []string           `yaml:"options" validate:"required_if=Kind dropdown,dive,required"`
	Placeholder string             `yaml:"placeholder"`
}

// SportGame is everything seeded under one sport or esport title.
type SportGame struct {
	Name        string    `yaml:"name" validate:"required"`
	BetTypes    []BetType `yaml:"bet_types" validate:"dive"`
	Teams       []string  `yaml:"teams" validate:"dive,required"`
	Tournaments []string  `yaml:"tournaments" validate:"dive,required"`
	Locations   []string  `yaml:"locations" validate:"dive,required"`
}

// Set is a complete seed document.
type Set struct {
	Sports  []SportGame `yaml:"sports" validate:"dive"`
	Esports []SportGame `yaml:"esports" validate:"dive"`
}

// DefaultSet returns the built-in seed set.
func DefaultSet() Set {
	set, err := decode(bytes.NewReader(defaultSet))
	if err != nil {
		panic(fmt.Sprintf("built-in seed set is invalid: %v", err))
	}
	return set
}

// LoadSet reads a seed set from path, or returns the built-in one when path is empty.
func LoadSet(path string) (Set, error) {
	if path == "" {
		return DefaultSet(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Set{}, fmt.Errorf("opening seed set: %w", err)
	}
	defer f.Close()
	return decode(f)
}

func decode(r io.Reader) (Set, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var set Set
	if err := dec.Decode(&set); err != nil {
		return Set{}, fmt.Errorf("decoding seed set: %w", err)
	}
	if err := validator.New().Struct(set); err != nil {
		return Set{}, fmt.Errorf("validating seed set: %w", err)
	}
	return set, nil
}

// Result counts what a seeding run touched. Rows that already existed are
// counted too, except option rows, which are only counted when written.
type Result struct {
	SportGames  int
	BetTypes    int
	Options     int
	Teams       int
	Tournaments int
	Locations   int
	Failed      int
}

// Seeder writes a seed set into the store.
type Seeder struct {
	store *store.Store
	set   Set
}

func NewSeeder(st *store.Store, set Set) *Seeder {
	return &Seeder{store: st, set: set}
}

// Run seeds every sport and esport. A failing item is logged and skipped; the
// error return is reserved for a store that cannot be reached at all.
func (s *Seeder) Run() (Result, error) {
	var res Result
	groups := []struct {
		category catalog.Category
		entries  []SportGame
	}{
		{catalog.CategorySport, s.set.Sports},
		{catalog.CategoryEsport, s.set.Esports},
	}

	for _, g := range groups {
		for _, sg := range g.entries {
			sgID, err := s.store.AddSportGame(sg.Name, g.category)
			if err != nil {
				if res.SportGames == 0 {
					return res, fmt.Errorf("seeding %s: %w", sg.Name, err)
				}
				slog.Warn("failed to seed sport/game", "name", sg.Name, "error", err)
				res.Failed++
				continue
			}
			res.SportGames++
			s.seedEntry(sgID, sg, &res)
		}
	}

	slog.Info("seeding complete",
		"sport_games", res.SportGames,
		"bet_types", res.BetTypes,
		"options_written", res.Options,
		"teams", res.Teams,
		"tournaments", res.Tournaments,
		"locations", res.Locations,
		"failed", res.Failed,
	)
	return res, nil
}

func (s *Seeder) seedEntry(sgID int64, sg SportGame, res *Result) {
	for _, bt := range sg.BetTypes {
		btID, err := s.store.AddBetType(bt.Name, sgID, bt.Description)
		if err != nil {
			slog.Warn("failed to seed bet type", "sport_game", sg.Name, "bet_type", bt.Name, "error", err)
			res.Failed++
			continue
		}
		res.BetTypes++

		written, err := s.ensureOption(btID, bt)
		if err != nil {
			slog.Warn("failed to seed bet type option", "sport_game", sg.Name, "bet_type", bt.Name, "error", err)
			res.Failed++
			continue
		}
		if written {
			res.Options++
		}
	}

	refs := []struct {
		kind  string
		names []string
		add   func(string, int64) (int64, error)
		count *int
	}{
		{"team", sg.Teams, s.store.AddTeam, &res.Teams},
		{"tournament", sg.Tournaments, s.store.AddTournament, &res.Tournaments},
		{"location", sg.Locations, s.store.AddLocation, &res.Locations},
	}
	for _, ref := range refs {
		for _, name := range ref.names {
			if _, err := ref.add(name, sgID); err != nil {
				slog.Warn("failed to seed "+ref.kind, "sport_game", sg.Name, "name", name, "error", err)
				res.Failed++
				continue
			}
			*ref.count++
		}
	}
}

// ensureOption writes the option row for bt unless an identical row is stored.
func (s *Seeder) ensureOption(betTypeID int64, bt BetType) (bool, error) {
	var options []string
	placeholder := ""
	if bt.Kind == catalog.KindDropdown {
		options = bt.Options
	} else {
		placeholder = bt.Placeholder
		if placeholder == "" {
			placeholder = DefaultTextPlaceholder
		}
	}

	existing, err := s.store.GetBetTypeOptions(betTypeID)
	if err != nil {
		return false, err
	}
	for _, o := range existing {
		if o.OptionType != bt.Kind || !slices.Equal(o.Options, options) {
			continue
		}
		stored := ""
		if o.Placeholder != nil {
			stored = *o.Placeholder
		}
		if stored == placeholder {
			return false, nil
		}
	}

	if _, err := s.store.AddBetTypeOption(betTypeID, bt.Kind, options, placeholder); err != nil {
		return false, err
	}
	return true, nil
}

// EnsureSeeded runs the seeder only when the store holds no bet types yet. It
// reports whether seeding ran.
func EnsureSeeded(st *store.Store, set Set) (bool, error) {
	n, err := st.CountBetTypes()
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	if _, err := NewSeeder(st, set).Run(); err != nil {
		return false, err
	}
	return true, nil
}
