package store

import (
	"database/sql"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"

	"bettracker/internal/catalog"
)

// SportGame is a sport or an esport title. Names are unique across both categories.
type SportGame struct {
	ID       int64            `db:"id"`
	Name     string           `db:"name"`
	Category catalog.Category `db:"category"`
}

// Ref is a team, tournament or location scoped to one sport or game.
type Ref struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	SportGameID int64  `db:"sport_game_id"`
}

type BetType struct {
	ID          int64
	Name        string
	Description string
}

// BetTypeOption is one stored option schema row. A bet type may own several.
type BetTypeOption struct {
	ID          int64
	BetTypeID   int64
	OptionType  catalog.SchemaKind
	Options     []string
	Placeholder *string
}

func (o BetTypeOption) Schema() catalog.Schema {
	s := catalog.Schema{Kind: o.OptionType, Options: o.Options}
	if o.Placeholder != nil {
		s.Placeholder = *o.Placeholder
	}
	return s
}

type refTable string

const (
	teamsTable       refTable = "teams"
	tournamentsTable refTable = "tournaments"
	locationsTable   refTable = "locations"
)

// AddSportGame returns the id of the named sport or game, creating it if needed.
// An existing row keeps its original category.
func (s *Store) AddSportGame(name string, category catalog.Category) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, ErrEmptyName
	}
	if _, err := catalog.ParseCategory(string(category)); err != nil {
		return 0, err
	}
	if _, err := s.db.Exec(
		`INSERT OR IGNORE INTO sports_games (name, category) VALUES (?, ?)`, name, category,
	); err != nil {
		return 0, unavailable(err, "inserting sport/game")
	}
	id, ok, err := s.GetSportGameID(name)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, errors.Newf("sport/game %q vanished after insert", name)
	}
	return id, nil
}

func (s *Store) GetSportGameID(name string) (int64, bool, error) {
	sg, ok, err := s.getSportGame(name)
	return sg.ID, ok, err
}

func (s *Store) getSportGame(name string) (SportGame, bool, error) {
	var sg SportGame
	err := s.db.Get(&sg, `SELECT id, name, category FROM sports_games WHERE name = ?`, strings.TrimSpace(name))
	if isNotFound(err) {
		return SportGame{}, false, nil
	}
	if err != nil {
		return SportGame{}, false, unavailable(err, "selecting sport/game")
	}
	return sg, true, nil
}

// ListSportGames lists sports and games ordered by name. An empty category lists all.
func (s *Store) ListSportGames(category catalog.Category) ([]SportGame, error) {
	var (
		rows []SportGame
		err  error
	)
	if category == "" {
		err = s.db.Select(&rows, `SELECT id, name, category FROM sports_games ORDER BY name`)
	} else {
		err = s.db.Select(&rows,
			`SELECT id, name, category FROM sports_games WHERE category = ? ORDER BY name`, category)
	}
	if err != nil {
		return nil, unavailable(err, "selecting sports/games")
	}
	return rows, nil
}

func (s *Store) AddTeam(name string, sportGameID int64) (int64, error) {
	return s.getOrCreate(teamsTable, name, sportGameID)
}

func (s *Store) AddTournament(name string, sportGameID int64) (int64, error) {
	return s.getOrCreate(tournamentsTable, name, sportGameID)
}

func (s *Store) AddLocation(name string, sportGameID int64) (int64, error) {
	return s.getOrCreate(locationsTable, name, sportGameID)
}

func (s *Store) ListTeamsFor(sportGameID int64) ([]Ref, error) {
	return s.listFor(teamsTable, sportGameID)
}

func (s *Store) ListTournamentsFor(sportGameID int64) ([]Ref, error) {
	return s.listFor(tournamentsTable, sportGameID)
}

func (s *Store) ListLocationsFor(sportGameID int64) ([]Ref, error) {
	return s.listFor(locationsTable, sportGameID)
}

// getOrCreate relies on the (name, sport_game_id) unique key instead of a
// check-then-insert, so concurrent writers cannot create duplicates.
func (s *Store) getOrCreate(table refTable, name string, sportGameID int64) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, errors.Wrapf(ErrEmptyName, "%s", table)
	}
	if _, err := s.db.Exec(
		`INSERT OR IGNORE INTO `+string(table)+` (name, sport_game_id) VALUES (?, ?)`,
		name, sportGameID,
	); err != nil {
		return 0, unavailable(err, "inserting into "+string(table))
	}

	var id int64
	if err := s.db.Get(&id,
		`SELECT id FROM `+string(table)+` WHERE name = ? AND sport_game_id = ?`,
		name, sportGameID,
	); err != nil {
		return 0, unavailable(err, "selecting from "+string(table))
	}
	return id, nil
}

// optionalRef maps an empty name to NULL.
func (s *Store) optionalRef(table refTable, name string, sportGameID int64) (*int64, error) {
	if strings.TrimSpace(name) == "" {
		return nil, nil
	}
	id, err := s.getOrCreate(table, name, sportGameID)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func (s *Store) listFor(table refTable, sportGameID int64) ([]Ref, error) {
	var rows []Ref
	if err := s.db.Select(&rows,
		`SELECT id, name, sport_game_id FROM `+string(table)+` WHERE sport_game_id = ? ORDER BY name`,
		sportGameID,
	); err != nil {
		return nil, unavailable(err, "selecting from "+string(table))
	}
	return rows, nil
}

// AddBetType returns the id of the bet type for the sport or game, creating it if
// needed. The description of an existing bet type is left untouched.
func (s *Store) AddBetType(name string, sportGameID int64, description string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, errors.Wrap(ErrEmptyName, "bet type")
	}
	if _, err := s.db.Exec(
		`INSERT OR IGNORE INTO bet_types (name, sport_game_id, description) VALUES (?, ?, ?)`,
		name, sportGameID, description,
	); err != nil {
		return 0, unavailable(err, "inserting bet type")
	}
	id, ok, err := s.GetBetTypeID(name, sportGameID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, errors.Newf("bet type %q vanished after insert", name)
	}
	return id, nil
}

func (s *Store) GetBetTypeID(name string, sportGameID int64) (int64, bool, error) {
	var id int64
	err := s.db.Get(&id,
		`SELECT id FROM bet_types WHERE name = ? AND sport_game_id = ?`,
		strings.TrimSpace(name), sportGameID)
	if isNotFound(err) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, unavailable(err, "selecting bet type")
	}
	return id, true, nil
}

// GetBetTypeIDByName resolves a bet type through the name of its sport or game.
func (s *Store) GetBetTypeIDByName(sportGame, betType string) (int64, bool, error) {
	var id int64
	err := s.db.Get(&id, `
		SELECT bt.id FROM bet_types bt
		JOIN sports_games sg ON sg.id = bt.sport_game_id
		WHERE sg.name = ? AND bt.name = ?`,
		strings.TrimSpace(sportGame), strings.TrimSpace(betType))
	if isNotFound(err) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, unavailable(err, "selecting bet type")
	}
	return id, true, nil
}

func (s *Store) ListBetTypesFor(sportGameID int64) ([]BetType, error) {
	var rows []betTypeRow
	if err := s.db.Select(&rows,
		`SELECT id, name, description FROM bet_types WHERE sport_game_id = ? ORDER BY name`,
		sportGameID,
	); err != nil {
		return nil, unavailable(err, "selecting bet types")
	}
	out := make([]BetType, 0, len(rows))
	for _, row := range rows {
		out = append(out, BetType{ID: row.ID, Name: row.Name, Description: row.Description.String})
	}
	return out, nil
}

// CountBetTypes reports how many bet types exist across all sports and games.
func (s *Store) CountBetTypes() (int, error) {
	var n int
	if err := s.db.Get(&n, `SELECT COUNT(*) FROM bet_types`); err != nil {
		return 0, unavailable(err, "counting bet types")
	}
	return n, nil
}

// AddBetTypeOption always inserts a new row; readers merge all rows of a bet type.
// Options are stored as a JSON array and an empty placeholder is stored as NULL.
func (s *Store) AddBetTypeOption(betTypeID int64, kind catalog.SchemaKind, options []string, placeholder string) (int64, error) {
	if kind != catalog.KindDropdown && kind != catalog.KindText {
		return 0, errors.Newf("unknown option type %q", kind)
	}
	if kind == catalog.KindDropdown && len(options) == 0 {
		return 0, errors.New("dropdown option row needs at least one option")
	}

	var encoded, hint sql.NullString
	if options != nil {
		raw, err := sonic.MarshalString(options)
		if err != nil {
			return 0, errors.Wrap(err, "encoding options")
		}
		encoded = sql.NullString{String: raw, Valid: true}
	}
	if placeholder != "" {
		hint = sql.NullString{String: placeholder, Valid: true}
	}

	res, err := s.db.Exec(
		`INSERT INTO bet_type_options (bet_type_id, option_type, options, placeholder) VALUES (?, ?, ?, ?)`,
		betTypeID, kind, encoded, hint,
	)
	if err != nil {
		return 0, unavailable(err, "inserting bet type option")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, unavailable(err, "reading bet type option id")
	}
	return id, nil
}

func (s *Store) GetBetTypeOptions(betTypeID int64) ([]BetTypeOption, error) {
	var rows []optionRow
	if err := s.db.Select(&rows,
		`SELECT id, bet_type_id, option_type, options, placeholder
		 FROM bet_type_options WHERE bet_type_id = ? ORDER BY id`,
		betTypeID,
	); err != nil {
		return nil, unavailable(err, "selecting bet type options")
	}

	out := make([]BetTypeOption, 0, len(rows))
	for _, row := range rows {
		opt := BetTypeOption{
			ID:         row.ID,
			BetTypeID:  row.BetTypeID,
			OptionType: catalog.SchemaKind(row.OptionType),
		}
		if row.Options.Valid {
			if err := sonic.UnmarshalString(row.Options.String, &opt.Options); err != nil {
				return nil, errors.Wrapf(err, "decoding options of row %d", row.ID)
			}
		}
		if row.Placeholder.Valid {
			p := row.Placeholder.String
			opt.Placeholder = &p
		}
		out = append(out, opt)
	}
	return out, nil
}

// ResolveBetTypeSchema merges every stored option row of a bet type. ok is false
// when the bet type has no rows at all.
func (s *Store) ResolveBetTypeSchema(betTypeID int64) (catalog.Schema, bool, error) {
	opts, err := s.GetBetTypeOptions(betTypeID)
	if err != nil {
		return catalog.Schema{}, false, err
	}
	if len(opts) == 0 {
		return catalog.Schema{}, false, nil
	}
	schemas := make([]catalog.Schema, 0, len(opts))
	for _, o := range opts {
		schemas = append(schemas, o.Schema())
	}
	return catalog.MergeSchemas(schemas), true, nil
}

type betTypeRow struct {
	ID          int64          `db:"id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
}

type optionRow struct {
	ID          int64          `db:"id"`
	BetTypeID   int64          `db:"bet_type_id"`
	OptionType  string         `db:"option_type"`
	Options     sql.NullString `db:"options"`
	Placeholder sql.NullString `db:"placeholder"`
}
