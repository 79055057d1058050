package form

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"bettracker/internal/catalog"
	"bettracker/internal/report"
	"bettracker/internal/store"
)

// Submission is the bet entry form as the user filled it in.
type Submission struct {
	Category      catalog.Category `validate:"required,oneof=Sport Esport"`
	SportGame     string           `validate:"required"`
	TeamA         string           `validate:"required"`
	TeamB         string           `validate:"required"`
	Tournament    string
	Location      string
	BetType       string `validate:"required"`
	BetOption     string
	Line          *float64
	Odds          float64 `validate:"gt=0"`
	Stake         float64 `validate:"gt=0"`
	Result        store.Result
	CashOutAmount *float64
	Date          time.Time
}

// Check applies the form rules without storing anything. Odds must be at least
// the configured minimum and a cashed out bet needs a positive cash-out amount.
func (f *Form) Check(sub Submission) error {
	if err := f.validate.Struct(sub); err != nil {
		return errors.Mark(errors.Wrap(err, "validating form"), ErrInvalidSubmission)
	}
	if sub.Odds < f.cfg.MinOdds {
		return errors.Mark(errors.Newf("odds %.2f below minimum %.2f", sub.Odds, f.cfg.MinOdds), ErrInvalidSubmission)
	}
	if _, err := store.ParseResult(string(sub.Result)); err != nil {
		return errors.Mark(err, ErrInvalidSubmission)
	}
	if sub.Result == store.ResultCashedOut && (sub.CashOutAmount == nil || *sub.CashOutAmount <= 0) {
		return errors.Mark(errors.New("cash-out amount is required for a cashed out bet"), ErrInvalidSubmission)
	}
	return nil
}

// Submit checks the form and records the bet. A bet type the catalog offers for
// the sport or game is stored with its catalog schema on first use. The cash-out
// amount only reaches the ledger when the result is Cashed Out; the line and bet
// option are dropped when the bet type hides them.
func (f *Form) Submit(sub Submission) (int64, error) {
	if err := f.Check(sub); err != nil {
		slog.Warn("bet form rejected", "sport_game", sub.SportGame, "bet_type", sub.BetType, "error", err)
		return 0, err
	}

	if err := f.ensureCatalogBetType(sub); err != nil {
		slog.Warn("bet form rejected", "sport_game", sub.SportGame, "bet_type", sub.BetType, "error", err)
		return 0, err
	}

	sections := f.Sections(sub.SportGame, sub.BetType)
	in := store.BetInput{
		Category:   sub.Category,
		SportGame:  sub.SportGame,
		TeamA:      sub.TeamA,
		TeamB:      sub.TeamB,
		Tournament: sub.Tournament,
		BetType:    sub.BetType,
		Odds:       sub.Odds,
		Stake:      sub.Stake,
		Result:     sub.Result,
		Date:       sub.Date,
	}
	if sections.Location {
		in.Location = sub.Location
	}
	if sections.Line {
		in.Line = sub.Line
	}
	if sections.Bet {
		in.BetOption = sub.BetOption
	}
	if sub.Result == store.ResultCashedOut {
		in.CashOutAmount = sub.CashOutAmount
	}
	return f.store.AddBet(in)
}

// Preview renders the summary shown before a bet is confirmed.
func (f *Form) Preview(sub Submission) []string {
	sections := f.Sections(sub.SportGame, sub.BetType)

	var lines []string
	if sub.Category == catalog.CategoryEsport {
		lines = append(lines, "Game: "+sub.SportGame)
	} else {
		lines = append(lines, "Sport: "+sub.SportGame)
	}
	if sub.Tournament != "" {
		lines = append(lines, "Tournament: "+sub.Tournament)
	}
	lines = append(lines, fmt.Sprintf("Match: %s vs %s", sub.TeamA, sub.TeamB))
	if sections.Location && sub.Location != "" {
		label := strings.TrimSuffix(f.LocationLabel(sub.Category), ":")
		lines = append(lines, label+": "+sub.Location)
	}

	bet := "Bet: " + sub.BetType
	if sections.Bet && sub.BetOption != "" {
		bet += " - " + sub.BetOption
	}
	lines = append(lines, bet)
	if sections.Line && sub.Line != nil {
		lines = append(lines, fmt.Sprintf("Line: %g", *sub.Line))
	}

	lines = append(lines,
		"Odds: "+report.FormatOdds(sub.Odds),
		"Stake: "+report.FormatCurrency(sub.Stake),
	)
	if sub.Result != store.ResultPending {
		lines = append(lines, "Result: "+string(sub.Result))
	}
	if sub.Result == store.ResultCashedOut && sub.CashOutAmount != nil {
		lines = append(lines, "Cash Out: "+report.FormatCurrency(*sub.CashOutAmount))
	}
	return lines
}

// ensureCatalogBetType stores the submitted bet type when only the catalog knows
// it. Bet types unknown to both are left for the store to reject.
func (f *Form) ensureCatalogBetType(sub Submission) error {
	_, ok, err := f.store.GetBetTypeIDByName(sub.SportGame, sub.BetType)
	if err != nil || ok {
		return err
	}
	var desc string
	found := false
	for _, bt := range f.catalog.BetTypes(sub.SportGame) {
		if bt.Name == sub.BetType {
			desc, found = bt.Description, true
			break
		}
	}
	if !found {
		return nil
	}
	if c, known := f.catalog.CategoryOf(sub.SportGame); known && c != sub.Category {
		return errors.Mark(errors.Newf("%s is a %s, not a %s", sub.SportGame, c, sub.Category), ErrInvalidSubmission)
	}
	schema := f.catalog.ResolveSchema(sub.SportGame, sub.BetType)
	if err := checkSchema(schema); err != nil {
		return err
	}

	sgID, err := f.store.AddSportGame(sub.SportGame, sub.Category)
	if err != nil {
		return err
	}
	if _, err := f.storeBetType(sgID, sub.BetType, desc, schema); err != nil {
		return err
	}
	slog.Info("bet type stored from catalog", "sport_game", sub.SportGame, "bet_type", sub.BetType)
	return nil
}
