package report

import (
	"database/sql"
	"fmt"
)

// Tracker computes ledger totals from the database.
type Tracker struct {
	db *sql.DB
}

func NewTracker(db *sql.DB) *Tracker {
	return &Tracker{db: db}
}

// Report contains the ledger summary shown on the home screen.
type Report struct {
	TotalBets    int
	Wins         int
	Losses       int
	CashedOut    int
	Active       int
	TotalStaked  float64
	SettledStake float64
	ProfitLoss   float64
	ROI          float64
	WinRate      float64
	SportStats   map[string]SportStats
}

// SportStats contains per sport or game totals.
type SportStats struct {
	BetCount   int
	Active     int
	Staked     float64
	ProfitLoss float64
	ROI        float64
	WinRate    float64
}

// profitSQL is the realised profit of one bet. Open bets contribute nothing, and a
// cash-out without an amount is treated as break-even.
const profitSQL = `
	CASE result
		WHEN 'Win' THEN stake * (odds - 1)
		WHEN 'Lose' THEN -stake
		WHEN 'Cashed Out' THEN COALESCE(cash_out_amount - stake, 0)
		ELSE 0
	END`

const settledSQL = `result IN ('Win', 'Lose', 'Cashed Out')`

// Generate computes the full report.
func (t *Tracker) Generate() (*Report, error) {
	r := &Report{
		SportStats: make(map[string]SportStats),
	}

	if err := t.computeOverall(r); err != nil {
		return nil, fmt.Errorf("computing overall stats: %w", err)
	}
	if err := t.computeSportStats(r); err != nil {
		return nil, fmt.Errorf("computing sport stats: %w", err)
	}

	return r, nil
}

func (t *Tracker) computeOverall(r *Report) error {
	row := t.db.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN result = 'Win' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN result = 'Lose' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN result = 'Cashed Out' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN ` + settledSQL + ` THEN 0 ELSE 1 END), 0),
		       COALESCE(SUM(stake), 0),
		       COALESCE(SUM(CASE WHEN ` + settledSQL + ` THEN stake ELSE 0 END), 0),
		       COALESCE(SUM(` + profitSQL + `), 0)
		FROM bets`)
	if err := row.Scan(
		&r.TotalBets, &r.Wins, &r.Losses, &r.CashedOut, &r.Active,
		&r.TotalStaked, &r.SettledStake, &r.ProfitLoss,
	); err != nil {
		return err
	}

	if r.SettledStake > 0 {
		r.ROI = r.ProfitLoss / r.SettledStake
	}
	if decided := r.Wins + r.Losses; decided > 0 {
		r.WinRate = float64(r.Wins) / float64(decided)
	}
	return nil
}

func (t *Tracker) computeSportStats(r *Report) error {
	rows, err := t.db.Query(`
		SELECT sg.name, COUNT(*),
		       COALESCE(SUM(CASE WHEN ` + settledSQL + ` THEN 0 ELSE 1 END), 0),
		       COALESCE(SUM(b.stake), 0),
		       COALESCE(SUM(CASE WHEN ` + settledSQL + ` THEN b.stake ELSE 0 END), 0),
		       COALESCE(SUM(` + profitSQL + `), 0),
		       COALESCE(SUM(CASE WHEN result = 'Win' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN result = 'Lose' THEN 1 ELSE 0 END), 0)
		FROM bets b
		JOIN sports_games sg ON sg.id = b.sport_game_id
		GROUP BY sg.name`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var stats SportStats
		var settled float64
		var wins, losses int
		if err := rows.Scan(&name, &stats.BetCount, &stats.Active, &stats.Staked, &settled, &stats.ProfitLoss, &wins, &losses); err != nil {
			return err
		}
		if settled > 0 {
			stats.ROI = stats.ProfitLoss / settled
		}
		if wins+losses > 0 {
			stats.WinRate = float64(wins) / float64(wins+losses)
		}
		r.SportStats[name] = stats
	}
	return rows.Err()
}
