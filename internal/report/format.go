package report

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

const moneyFormat = "#,###.##"

// FormatCurrency renders an amount in dollars with thousands separators, e.g. "-$1,250.00".
func FormatCurrency(amount float64) string {
	if amount < 0 {
		return "-$" + humanize.FormatFloat(moneyFormat, -amount)
	}
	return "$" + humanize.FormatFloat(moneyFormat, amount)
}

// FormatProfitLoss is FormatCurrency with an explicit sign on gains.
func FormatProfitLoss(amount float64) string {
	switch {
	case math.Abs(amount) < 0.005:
		return FormatCurrency(0)
	case amount > 0:
		return "+" + FormatCurrency(amount)
	}
	return FormatCurrency(amount)
}

func FormatOdds(odds float64) string {
	return fmt.Sprintf("%.2f", odds)
}

// FormatPercent renders a ratio such as ROI, e.g. 0.125 -> "12.5%".
func FormatPercent(ratio float64) string {
	return humanize.FormatFloat("#,###.#", ratio*100) + "%"
}

// FormatDate renders a bet date in local time to the minute.
func FormatDate(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}
