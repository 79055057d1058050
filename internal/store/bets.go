package store

import (
	"database/sql"
	"log/slog"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"bettracker/internal/catalog"
)

// Result is the settlement recorded with a bet. Empty means still open.
type Result string

const (
	ResultPending   Result = ""
	ResultWin       Result = "Win"
	ResultLose      Result = "Lose"
	ResultCashedOut Result = "Cashed Out"
)

// ParseResult accepts the canonical results plus the empty pending value.
func ParseResult(s string) (Result, error) {
	switch r := Result(s); r {
	case ResultPending, ResultWin, ResultLose, ResultCashedOut:
		return r, nil
	}
	return "", errors.Newf("unknown result %q", s)
}

// dateLayout is fixed width so text order matches chronological order.
const dateLayout = "2006-01-02 15:04:05.000000"

// BetInput is a bet as submitted from the form. Referenced entities are named,
// not identified: AddBet resolves them, creating teams, tournaments and locations
// that do not exist yet. The sport or game and its bet type must already be stored,
// and Category must match the stored sport or game.
type BetInput struct {
	Category      catalog.Category `validate:"required,oneof=Sport Esport"`
	SportGame     string           `validate:"required"`
	TeamA         string           `validate:"required"`
	TeamB         string           `validate:"required"`
	Tournament    string
	Location      string
	BetType       string `validate:"required"`
	BetOption     string
	Line          *float64
	Odds          float64  `validate:"gt=0"`
	Stake         float64  `validate:"gt=0"`
	Result        Result   `validate:"omitempty,oneof=Win Lose 'Cashed Out'"`
	CashOutAmount *float64 `validate:"omitempty,gte=0"`
	// Date defaults to the store clock when zero.
	Date time.Time
}

func (in BetInput) normalized() BetInput {
	in.SportGame = strings.TrimSpace(in.SportGame)
	in.TeamA = strings.TrimSpace(in.TeamA)
	in.TeamB = strings.TrimSpace(in.TeamB)
	in.Tournament = strings.TrimSpace(in.Tournament)
	in.Location = strings.TrimSpace(in.Location)
	in.BetType = strings.TrimSpace(in.BetType)
	in.BetOption = strings.TrimSpace(in.BetOption)
	return in
}

// BetView is a ledger row with its references resolved to names. Optional
// references that are missing come back nil.
type BetView struct {
	ID                 int64
	Category           catalog.Category
	SportGame          string
	TeamA              string
	TeamB              string
	Tournament         *string
	Location           *string
	BetType            string
	BetTypeDescription *string
	BetOption          string
	Line               *float64
	Odds               float64
	Stake              float64
	Result             Result
	CashOutAmount      *float64
	Date               time.Time
}

// AddBet records one bet and returns its id.
//
// Every failure is logged here and returned marked with ErrBetNotRecorded; no bet
// row exists afterwards. Reference entities created before the failure are kept,
// which is harmless because their creation is idempotent.
func (s *Store) AddBet(in BetInput) (int64, error) {
	id, err := s.addBet(in.normalized())
	if err != nil {
		slog.Error("failed to add bet",
			"sport_game", in.SportGame,
			"bet_type", in.BetType,
			"error", err,
		)
		return 0, errors.Mark(err, ErrBetNotRecorded)
	}
	slog.Info("bet recorded",
		"id", id,
		"sport_game", in.SportGame,
		"bet_type", in.BetType,
		"odds", in.Odds,
		"stake", in.Stake,
	)
	return id, nil
}

func (s *Store) addBet(in BetInput) (int64, error) {
	if err := s.validate.Struct(in); err != nil {
		return 0, errors.Mark(errors.Wrap(err, "validating bet"), ErrInvalidBet)
	}

	// A bet type can only exist under a stored sport or game, so an unknown one
	// fails the same way and nothing is created for it.
	sg, ok, err := s.getSportGame(in.SportGame)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, errors.Wrapf(ErrInvalidBetType, "%q is not offered for %s", in.BetType, in.SportGame)
	}
	if sg.Category != in.Category {
		return 0, errors.Mark(
			errors.Newf("%s is stored as %s, not %s", sg.Name, sg.Category, in.Category),
			ErrInvalidBet,
		)
	}
	sportGameID := sg.ID

	betTypeID, ok, err := s.GetBetTypeID(in.BetType, sportGameID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, errors.Wrapf(ErrInvalidBetType, "%q is not offered for %s", in.BetType, in.SportGame)
	}

	teamAID, err := s.AddTeam(in.TeamA, sportGameID)
	if err != nil {
		return 0, err
	}
	teamBID, err := s.AddTeam(in.TeamB, sportGameID)
	if err != nil {
		return 0, err
	}
	tournamentID, err := s.optionalRef(tournamentsTable, in.Tournament, sportGameID)
	if err != nil {
		return 0, err
	}
	locationID, err := s.optionalRef(locationsTable, in.Location, sportGameID)
	if err != nil {
		return 0, err
	}

	date := in.Date
	if date.IsZero() {
		date = s.now()
	}

	res, err := s.db.Exec(`
		INSERT INTO bets (
			category, sport_game_id, team_a_id, team_b_id, tournament_id,
			location_id, bet_type_id, bet_option, line, odds, stake,
			result, cash_out_amount, date
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.Category, sportGameID, teamAID, teamBID, tournamentID,
		locationID, betTypeID, in.BetOption, in.Line, in.Odds, in.Stake,
		in.Result, in.CashOutAmount, date.UTC().Format(dateLayout),
	)
	if err != nil {
		return 0, unavailable(err, "inserting bet")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, unavailable(err, "reading bet id")
	}
	return id, nil
}

const betViewSQL = `
	SELECT
		b.id, b.category, sg.name AS sport_game,
		t1.name AS team_a, t2.name AS team_b,
		tn.name AS tournament, l.name AS location,
		bt.name AS bet_type, bt.description AS bet_type_description,
		b.bet_option, b.line, b.odds, b.stake, b.result, b.cash_out_amount, b.date
	FROM bets b
	LEFT JOIN sports_games sg ON b.sport_game_id = sg.id
	LEFT JOIN teams t1 ON b.team_a_id = t1.id
	LEFT JOIN teams t2 ON b.team_b_id = t2.id
	LEFT JOIN tournaments tn ON b.tournament_id = tn.id
	LEFT JOIN locations l ON b.location_id = l.id
	LEFT JOIN bet_types bt ON b.bet_type_id = bt.id
	ORDER BY b.date DESC, b.id DESC`

// ListAllBets returns the whole ledger, newest first.
func (s *Store) ListAllBets() ([]BetView, error) {
	return s.listBets(betViewSQL)
}

// ListRecentBets returns at most limit bets, newest first.
func (s *Store) ListRecentBets(limit int) ([]BetView, error) {
	if limit <= 0 {
		return nil, nil
	}
	return s.listBets(betViewSQL+` LIMIT ?`, limit)
}

func (s *Store) listBets(query string, args ...any) ([]BetView, error) {
	var rows []betViewRow
	if err := s.db.Select(&rows, query, args...); err != nil {
		return nil, unavailable(err, "selecting bets")
	}

	out := make([]BetView, 0, len(rows))
	for _, row := range rows {
		v, err := row.view()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

type betViewRow struct {
	ID                 int64           `db:"id"`
	Category           string          `db:"category"`
	SportGame          sql.NullString  `db:"sport_game"`
	TeamA              sql.NullString  `db:"team_a"`
	TeamB              sql.NullString  `db:"team_b"`
	Tournament         sql.NullString  `db:"tournament"`
	Location           sql.NullString  `db:"location"`
	BetType            sql.NullString  `db:"bet_type"`
	BetTypeDescription sql.NullString  `db:"bet_type_description"`
	BetOption          sql.NullString  `db:"bet_option"`
	Line               sql.NullFloat64 `db:"line"`
	Odds               float64         `db:"odds"`
	Stake              float64         `db:"stake"`
	Result             sql.NullString  `db:"result"`
	CashOutAmount      sql.NullFloat64 `db:"cash_out_amount"`
	Date               string          `db:"date"`
}

func (r betViewRow) view() (BetView, error) {
	date, err := time.ParseInLocation(dateLayout, r.Date, time.UTC)
	if err != nil {
		return BetView{}, errors.Wrapf(err, "parsing date of bet %d", r.ID)
	}
	return BetView{
		ID:                 r.ID,
		Category:           catalog.Category(r.Category),
		SportGame:          r.SportGame.String,
		TeamA:              r.TeamA.String,
		TeamB:              r.TeamB.String,
		Tournament:         nullStringPtr(r.Tournament),
		Location:           nullStringPtr(r.Location),
		BetType:            r.BetType.String,
		BetTypeDescription: nullStringPtr(r.BetTypeDescription),
		BetOption:          r.BetOption.String,
		Line:               nullFloatPtr(r.Line),
		Odds:               r.Odds,
		Stake:              r.Stake,
		Result:             Result(r.Result.String),
		CashOutAmount:      nullFloatPtr(r.CashOutAmount),
		Date:               date,
	}, nil
}

func nullStringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullFloatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
