package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bettracker/internal/catalog"
	"bettracker/internal/store"
)

func newLedger(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	for _, sg := range []struct {
		name     string
		category catalog.Category
		betType  string
	}{
		{"Football", catalog.CategorySport, "Match Winner"},
		{"Dota 2", catalog.CategoryEsport, "Map Winner"},
	} {
		id, err := st.AddSportGame(sg.name, sg.category)
		require.NoError(t, err)
		_, err = st.AddBetType(sg.betType, id, "")
		require.NoError(t, err)
	}
	return st
}

func addBet(t *testing.T, st *store.Store, sportGame string, odds, stake float64, result store.Result, cashOut *float64) {
	t.Helper()
	in := store.BetInput{
		Category:      catalog.CategorySport,
		SportGame:     sportGame,
		TeamA:         "Home",
		TeamB:         "Away",
		BetType:       "Match Winner",
		BetOption:     "Team A",
		Odds:          odds,
		Stake:         stake,
		Result:        result,
		CashOutAmount: cashOut,
	}
	if sportGame == "Dota 2" {
		in.Category = catalog.CategoryEsport
		in.BetType = "Map Winner"
	}
	_, err := st.AddBet(in)
	require.NoError(t, err)
}

func TestGenerate_EmptyLedger(t *testing.T) {
	st := newLedger(t)

	r, err := NewTracker(st.DB()).Generate()
	require.NoError(t, err)
	assert.Zero(t, r.TotalBets)
	assert.Zero(t, r.ProfitLoss)
	assert.Zero(t, r.ROI)
	assert.Zero(t, r.WinRate)
	assert.Empty(t, r.SportStats)
}

func TestGenerate(t *testing.T) {
	st := newLedger(t)
	cashOut := 30.0
	addBet(t, st, "Football", 2.1, 50, store.ResultWin, nil)
	addBet(t, st, "Football", 1.8, 20, store.ResultLose, nil)
	addBet(t, st, "Dota 2", 3.0, 40, store.ResultCashedOut, &cashOut)
	addBet(t, st, "Dota 2", 1.5, 10, store.ResultPending, nil)

	r, err := NewTracker(st.DB()).Generate()
	require.NoError(t, err)

	assert.Equal(t, 4, r.TotalBets)
	assert.Equal(t, 1, r.Wins)
	assert.Equal(t, 1, r.Losses)
	assert.Equal(t, 1, r.CashedOut)
	assert.Equal(t, 1, r.Active)
	assert.InDelta(t, 120, r.TotalStaked, 1e-9)
	assert.InDelta(t, 110, r.SettledStake, 1e-9)
	// 55 won, 20 lost, 10 given up on the cash-out.
	assert.InDelta(t, 25, r.ProfitLoss, 1e-9)
	assert.InDelta(t, 25.0/110.0, r.ROI, 1e-9)
	assert.InDelta(t, 0.5, r.WinRate, 1e-9)

	require.Len(t, r.SportStats, 2)
	football := r.SportStats["Football"]
	assert.Equal(t, 2, football.BetCount)
	assert.InDelta(t, 35, football.ProfitLoss, 1e-9)
	assert.InDelta(t, 0.5, football.WinRate, 1e-9)

	dota := r.SportStats["Dota 2"]
	assert.Equal(t, 2, dota.BetCount)
	assert.Equal(t, 1, dota.Active)
	assert.InDelta(t, 50, dota.Staked, 1e-9)
	assert.InDelta(t, -10, dota.ProfitLoss, 1e-9)
	assert.InDelta(t, -0.25, dota.ROI, 1e-9)
	assert.Zero(t, dota.WinRate)

	assert.Equal(t, []string{"Dota 2", "Football"}, SportNames(r))
	LogReport(r)
}

func TestGenerate_CashOutWithoutAmountBreaksEven(t *testing.T) {
	st := newLedger(t)
	addBet(t, st, "Football", 2.0, 25, store.ResultCashedOut, nil)

	r, err := NewTracker(st.DB()).Generate()
	require.NoError(t, err)
	assert.Equal(t, 1, r.CashedOut)
	assert.Zero(t, r.ProfitLoss)
	assert.Zero(t, r.Active)
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$1,234.50", FormatCurrency(1234.5))
	assert.Equal(t, "$0.00", FormatCurrency(0))
	assert.Equal(t, "-$20.00", FormatCurrency(-20))
}

func TestFormatProfitLoss(t *testing.T) {
	assert.Equal(t, "+$55.00", FormatProfitLoss(55))
	assert.Equal(t, "-$10.00", FormatProfitLoss(-10))
	assert.Equal(t, "$0.00", FormatProfitLoss(0.001))
}

func TestFormatOddsAndPercent(t *testing.T) {
	assert.Equal(t, "2.10", FormatOdds(2.1))
	assert.Equal(t, "12.5%", FormatPercent(0.125))
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2026, 3, 1, 18, 45, 30, 0, time.Local)
	assert.Equal(t, "2026-03-01 18:45", FormatDate(d))
}
