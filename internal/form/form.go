package form

import (
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	"bettracker/internal/catalog"
	"bettracker/internal/config"
	"bettracker/internal/store"
)

var (
	// ErrUnknownSportGame means the sport or game has not been stored yet.
	ErrUnknownSportGame = errors.New("unknown sport/game")
	// ErrInvalidSubmission means the form failed validation and nothing was stored.
	ErrInvalidSubmission = errors.New("invalid submission")
)

// Form answers the pickers of the bet entry screen and accepts submissions. It
// combines the static catalog with what has been stored, so entities typed in by
// the user show up next to the built-in ones.
type Form struct {
	catalog  *catalog.Catalog
	store    *store.Store
	cache    *schemaCache
	cfg      config.FormConfig
	validate *validator.Validate
}

func New(cat *catalog.Catalog, st *store.Store, cfg config.FormConfig) *Form {
	return &Form{
		catalog:  cat,
		store:    st,
		cache:    newSchemaCache(cfg.SchemaCacheTTL.Duration),
		cfg:      cfg,
		validate: validator.New(),
	}
}

func (f *Form) Categories() []catalog.Category {
	return f.catalog.Categories()
}

func (f *Form) LocationLabel(category catalog.Category) string {
	return f.catalog.LocationLabel(category)
}

func (f *Form) Sections(sportGame, betType string) catalog.Sections {
	return f.catalog.ResolveSections(sportGame, betType)
}

// SportGames lists catalog names first, then stored names the catalog lacks.
func (f *Form) SportGames(category catalog.Category) ([]string, error) {
	names := f.catalog.Names(category)
	stored, err := f.store.ListSportGames(category)
	if err != nil {
		return nil, err
	}
	for _, sg := range stored {
		names = appendUnique(names, sg.Name)
	}
	return names, nil
}

func (f *Form) Teams(sportGame string) ([]string, error) {
	return f.merged(f.catalog.Teams(sportGame), sportGame, f.store.ListTeamsFor)
}

func (f *Form) Tournaments(sportGame string) ([]string, error) {
	return f.merged(f.catalog.Tournaments(sportGame), sportGame, f.store.ListTournamentsFor)
}

func (f *Form) Locations(sportGame string) ([]string, error) {
	return f.merged(f.catalog.Locations(sportGame), sportGame, f.store.ListLocationsFor)
}

func (f *Form) merged(names []string, sportGame string, list func(int64) ([]store.Ref, error)) ([]string, error) {
	sgID, ok, err := f.store.GetSportGameID(sportGame)
	if err != nil || !ok {
		return names, err
	}
	refs, err := list(sgID)
	if err != nil {
		return nil, err
	}
	for _, r := range refs {
		names = appendUnique(names, r.Name)
	}
	return names, nil
}

// BetTypes lists the stored bet types followed by the catalog ones not stored
// yet. A catalog bet type is stored on its first submission.
func (f *Form) BetTypes(sportGame string) ([]catalog.BetType, error) {
	var out []catalog.BetType
	sgID, ok, err := f.store.GetSportGameID(sportGame)
	if err != nil {
		return nil, err
	}
	if ok {
		stored, err := f.store.ListBetTypesFor(sgID)
		if err != nil {
			return nil, err
		}
		for _, bt := range stored {
			out = append(out, catalog.BetType{Name: bt.Name, Description: bt.Description})
		}
	}
	for _, bt := range f.catalog.BetTypes(sportGame) {
		if !containsBetType(out, bt.Name) {
			out = append(out, bt)
		}
	}
	return out, nil
}

// BetOptions resolves how the bet option is entered. Stored option rows win over
// the catalog.
func (f *Form) BetOptions(sportGame, betType string) (catalog.Schema, error) {
	btID, ok, err := f.store.GetBetTypeIDByName(sportGame, betType)
	if err != nil {
		return catalog.Schema{}, err
	}
	if ok {
		if s, hit := f.cache.Get(btID); hit {
			return s, nil
		}
		s, found, err := f.store.ResolveBetTypeSchema(btID)
		if err != nil {
			return catalog.Schema{}, err
		}
		if found {
			f.cache.Set(btID, s)
			return s, nil
		}
	}
	return f.catalog.ResolveSchema(sportGame, betType), nil
}

func (f *Form) AddTeam(sportGame, name string) (int64, error) {
	return f.addRef(sportGame, name, f.store.AddTeam, f.catalog.Teams, f.catalog.AddTeam)
}

func (f *Form) AddTournament(sportGame, name string) (int64, error) {
	return f.addRef(sportGame, name, f.store.AddTournament, f.catalog.Tournaments, f.catalog.AddTournament)
}

func (f *Form) AddLocation(sportGame, name string) (int64, error) {
	return f.addRef(sportGame, name, f.store.AddLocation, f.catalog.Locations, f.catalog.AddLocation)
}

// addRef stores the entity and mirrors it into the catalog list when the catalog
// knows the sport or game.
func (f *Form) addRef(
	sportGame, name string,
	add func(string, int64) (int64, error),
	known func(string) []string,
	remember func(string, string),
) (int64, error) {
	name = strings.TrimSpace(name)
	sgID, ok, err := f.store.GetSportGameID(sportGame)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, errors.Wrapf(ErrUnknownSportGame, "%q", sportGame)
	}
	id, err := add(name, sgID)
	if err != nil {
		return 0, err
	}
	if !slices.Contains(known(sportGame), name) {
		remember(sportGame, name)
	}
	return id, nil
}

// AddBetType stores a new bet type for an existing sport or game along with its
// option schema.
func (f *Form) AddBetType(sportGame, name, description string, schema catalog.Schema) (int64, error) {
	name = strings.TrimSpace(name)
	if err := checkSchema(schema); err != nil {
		return 0, err
	}
	sgID, ok, err := f.store.GetSportGameID(sportGame)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, errors.Wrapf(ErrUnknownSportGame, "%q", sportGame)
	}
	btID, err := f.storeBetType(sgID, name, description, schema)
	if err != nil {
		return 0, err
	}

	if !containsBetType(f.catalog.BetTypes(sportGame), name) {
		f.catalog.AddBetType(sportGame, name, description)
	}
	return btID, nil
}

// checkSchema rejects schemas that would leave a bet type without a usable input.
func checkSchema(s catalog.Schema) error {
	switch s.Kind {
	case catalog.KindText:
		return nil
	case catalog.KindDropdown:
		if slices.ContainsFunc(s.Options, func(o string) bool { return strings.TrimSpace(o) != "" }) {
			return nil
		}
		return errors.Mark(errors.New("dropdown needs at least one option"), ErrInvalidSubmission)
	}
	return errors.Mark(errors.Newf("unknown option type %q", s.Kind), ErrInvalidSubmission)
}

func (f *Form) storeBetType(sgID int64, name, description string, schema catalog.Schema) (int64, error) {
	btID, err := f.store.AddBetType(name, sgID, description)
	if err != nil {
		return 0, err
	}
	var options []string
	if schema.IsDropdown() {
		for _, o := range schema.Options {
			if o = strings.TrimSpace(o); o != "" {
				options = append(options, o)
			}
		}
	}
	if _, err := f.store.AddBetTypeOption(btID, schema.Kind, options, schema.Placeholder); err != nil {
		return 0, err
	}
	f.cache.Invalidate()
	return btID, nil
}

func containsBetType(list []catalog.BetType, name string) bool {
	return slices.ContainsFunc(list, func(bt catalog.BetType) bool { return bt.Name == name })
}

func appendUnique(list []string, name string) []string {
	if slices.Contains(list, name) {
		return list
	}
	return append(list, name)
}
