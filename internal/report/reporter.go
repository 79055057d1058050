package report

import (
	"log/slog"
	"slices"
)

// LogReport logs the ledger summary as structured JSON.
func LogReport(r *Report) {
	slog.Info("=== LEDGER SUMMARY ===",
		"total_bets", r.TotalBets,
		"wins", r.Wins,
		"losses", r.Losses,
		"cashed_out", r.CashedOut,
		"active", r.Active,
		"staked", r.TotalStaked,
		"profit_loss", r.ProfitLoss,
		"roi", r.ROI,
		"win_rate", r.WinRate,
	)

	for _, name := range SportNames(r) {
		stats := r.SportStats[name]
		slog.Info("sport performance",
			"sport_game", name,
			"bets", stats.BetCount,
			"active", stats.Active,
			"staked", stats.Staked,
			"profit_loss", stats.ProfitLoss,
			"roi", stats.ROI,
			"win_rate", stats.WinRate,
		)
	}
}

// SportNames returns the keys of r.SportStats in name order.
func SportNames(r *Report) []string {
	names := make([]string, 0, len(r.SportStats))
	for name := range r.SportStats {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
