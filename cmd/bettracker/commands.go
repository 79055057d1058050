package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"bettracker/internal/catalog"
	"bettracker/internal/form"
	"bettracker/internal/report"
	"bettracker/internal/seed"
	"bettracker/internal/store"
)

type command func(a *app, args []string) error

var commands = map[string]command{
	"seed":           runSeed,
	"sports":         runSports,
	"teams":          listRefs("teams", (*form.Form).Teams),
	"tournaments":    listRefs("tournaments", (*form.Form).Tournaments),
	"locations":      listRefs("locations", (*form.Form).Locations),
	"bettypes":       runBetTypes,
	"options":        runOptions,
	"add":            runAdd,
	"list":           runList,
	"summary":        runSummary,
	"add-team":       addRef("add-team", (*form.Form).AddTeam),
	"add-tournament": addRef("add-tournament", (*form.Form).AddTournament),
	"add-location":   addRef("add-location", (*form.Form).AddLocation),
	"add-bettype":    runAddBetType,
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
}

func runSeed(a *app, args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	fs.Parse(args)

	res, err := seed.NewSeeder(a.store, a.seedSet).Run()
	if err != nil {
		return err
	}
	fmt.Printf("sports/games: %d, bet types: %d, new option rows: %d, teams: %d, tournaments: %d, locations: %d, failed: %d\n",
		res.SportGames, res.BetTypes, res.Options, res.Teams, res.Tournaments, res.Locations, res.Failed)
	return nil
}

func runSports(a *app, args []string) error {
	fs := flag.NewFlagSet("sports", flag.ExitOnError)
	category := fs.String("category", "", "Sport or Esport; empty lists both")
	fs.Parse(args)

	categories := a.form.Categories()
	if *category != "" {
		c, err := catalog.ParseCategory(*category)
		if err != nil {
			return err
		}
		categories = []catalog.Category{c}
	}

	w := newTable()
	fmt.Fprintln(w, "CATEGORY\tNAME")
	for _, c := range categories {
		names, err := a.form.SportGames(c)
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintf(w, "%s\t%s\n", c, name)
		}
	}
	return w.Flush()
}

func listRefs(name string, list func(*form.Form, string) ([]string, error)) command {
	return func(a *app, args []string) error {
		fs := flag.NewFlagSet(name, flag.ExitOnError)
		sport := fs.String("sport", "", "Sport or game name")
		fs.Parse(args)
		if *sport == "" {
			return fmt.Errorf("%s: -sport is required", name)
		}

		names, err := list(a.form, *sport)
		if err != nil {
			return err
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return nil
	}
}

func runBetTypes(a *app, args []string) error {
	fs := flag.NewFlagSet("bettypes", flag.ExitOnError)
	sport := fs.String("sport", "", "Sport or game name")
	fs.Parse(args)
	if *sport == "" {
		return fmt.Errorf("bettypes: -sport is required")
	}

	types, err := a.form.BetTypes(*sport)
	if err != nil {
		return err
	}
	w := newTable()
	fmt.Fprintln(w, "BET TYPE\tDESCRIPTION")
	for _, bt := range types {
		fmt.Fprintf(w, "%s\t%s\n", bt.Name, bt.Description)
	}
	return w.Flush()
}

func runOptions(a *app, args []string) error {
	fs := flag.NewFlagSet("options", flag.ExitOnError)
	sport := fs.String("sport", "", "Sport or game name")
	betType := fs.String("bettype", "", "Bet type name")
	fs.Parse(args)
	if *sport == "" || *betType == "" {
		return fmt.Errorf("options: -sport and -bettype are required")
	}

	s, err := a.form.BetOptions(*sport, *betType)
	if err != nil {
		return err
	}
	sections := a.form.Sections(*sport, *betType)
	if s.IsDropdown() {
		fmt.Printf("dropdown: %s\n", strings.Join(s.Options, " | "))
	} else {
		fmt.Printf("text: %s\n", s.Placeholder)
	}
	fmt.Printf("show location: %t, line: %t, bet: %t\n", sections.Location, sections.Line, sections.Bet)
	return nil
}

func runAdd(a *app, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	category := fs.String("category", "", "Sport or Esport; inferred from the catalog when empty")
	sport := fs.String("sport", "", "Sport or game name")
	teamA := fs.String("team-a", "", "First team or player")
	teamB := fs.String("team-b", "", "Second team or player")
	tournament := fs.String("tournament", "", "Tournament (optional)")
	location := fs.String("location", "", "Stadium, city or map (optional)")
	betType := fs.String("bettype", "", "Bet type name")
	option := fs.String("option", "", "Selected bet option")
	line := fs.String("line", "", "Line, e.g. 2.5 (optional)")
	odds := fs.Float64("odds", 0, "Decimal odds")
	stake := fs.Float64("stake", 0, "Stake")
	result := fs.String("result", "", "Win, Lose or Cashed Out; empty while open")
	cashOut := fs.String("cashout", "", "Cash-out amount when the result is Cashed Out")
	date := fs.String("date", "", "Bet date, YYYY-MM-DD or RFC 3339; defaults to now")
	preview := fs.Bool("preview", false, "Print the preview without recording the bet")
	fs.Parse(args)

	sub := form.Submission{
		Category:   catalog.Category(*category),
		SportGame:  strings.TrimSpace(*sport),
		TeamA:      *teamA,
		TeamB:      *teamB,
		Tournament: *tournament,
		Location:   *location,
		BetType:    *betType,
		BetOption:  *option,
		Odds:       *odds,
		Stake:      *stake,
		Result:     store.Result(*result),
	}
	if sub.Category == "" {
		if c, ok := a.catalog.CategoryOf(sub.SportGame); ok {
			sub.Category = c
		}
	}
	var err error
	if sub.Line, err = parseOptionalFloat("line", *line); err != nil {
		return err
	}
	if sub.CashOutAmount, err = parseOptionalFloat("cashout", *cashOut); err != nil {
		return err
	}
	if *date != "" {
		if sub.Date, err = parseDate(*date); err != nil {
			return err
		}
	}

	for _, l := range a.form.Preview(sub) {
		fmt.Println(l)
	}
	if *preview {
		return a.form.Check(sub)
	}

	id, err := a.form.Submit(sub)
	if err != nil {
		return err
	}
	fmt.Printf("recorded bet #%d\n", id)
	return nil
}

func parseOptionalFloat(name, v string) (*float64, error) {
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing -%s: %w", name, err)
	}
	return &f, nil
}

func parseDate(v string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", v, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing -date: %w", err)
	}
	return t, nil
}

func runList(a *app, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	limit := fs.Int("limit", 0, "Show at most this many bets; 0 shows all")
	fs.Parse(args)

	var (
		bets []store.BetView
		err  error
	)
	if *limit > 0 {
		bets, err = a.store.ListRecentBets(*limit)
	} else {
		bets, err = a.store.ListAllBets()
	}
	if err != nil {
		return err
	}

	w := newTable()
	fmt.Fprintln(w, "ID\tDATE\tSPORT/GAME\tMATCH\tBET\tODDS\tSTAKE\tRESULT")
	for _, b := range bets {
		bet := b.BetType
		if b.BetOption != "" {
			bet += ": " + b.BetOption
		}
		if b.Line != nil {
			bet += fmt.Sprintf(" (%g)", *b.Line)
		}
		res := string(b.Result)
		switch {
		case b.Result == store.ResultPending:
			res = "Active"
		case b.Result == store.ResultCashedOut && b.CashOutAmount != nil:
			res += " " + report.FormatCurrency(*b.CashOutAmount)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s vs %s\t%s\t%s\t%s\t%s\n",
			b.ID, report.FormatDate(b.Date), b.SportGame, b.TeamA, b.TeamB, bet,
			report.FormatOdds(b.Odds), report.FormatCurrency(b.Stake), res)
	}
	return w.Flush()
}

func runSummary(a *app, args []string) error {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	fs.Parse(args)

	r, err := report.NewTracker(a.store.DB()).Generate()
	if err != nil {
		return err
	}
	report.LogReport(r)

	fmt.Printf("Total bets:   %d\n", r.TotalBets)
	fmt.Printf("Wins/Losses:  %d/%d (cashed out %d)\n", r.Wins, r.Losses, r.CashedOut)
	fmt.Printf("Active bets:  %d\n", r.Active)
	fmt.Printf("Staked:       %s\n", report.FormatCurrency(r.TotalStaked))
	fmt.Printf("Profit/Loss:  %s\n", report.FormatProfitLoss(r.ProfitLoss))
	fmt.Printf("ROI:          %s\n", report.FormatPercent(r.ROI))
	fmt.Printf("Win rate:     %s\n", report.FormatPercent(r.WinRate))

	if len(r.SportStats) == 0 {
		return nil
	}
	fmt.Println()
	w := newTable()
	fmt.Fprintln(w, "SPORT/GAME\tBETS\tACTIVE\tSTAKED\tPROFIT/LOSS\tROI")
	for _, name := range report.SportNames(r) {
		s := r.SportStats[name]
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\t%s\n", name, s.BetCount, s.Active,
			report.FormatCurrency(s.Staked), report.FormatProfitLoss(s.ProfitLoss), report.FormatPercent(s.ROI))
	}
	return w.Flush()
}

func addRef(name string, add func(*form.Form, string, string) (int64, error)) command {
	return func(a *app, args []string) error {
		fs := flag.NewFlagSet(name, flag.ExitOnError)
		sport := fs.String("sport", "", "Sport or game name")
		value := fs.String("name", "", "Name to add")
		fs.Parse(args)

		id, err := add(a.form, *sport, *value)
		if err != nil {
			return err
		}
		fmt.Printf("%s #%d\n", strings.TrimSpace(*value), id)
		return nil
	}
}

func runAddBetType(a *app, args []string) error {
	fs := flag.NewFlagSet("add-bettype", flag.ExitOnError)
	sport := fs.String("sport", "", "Sport or game name")
	name := fs.String("name", "", "Bet type name")
	description := fs.String("description", "", "Bet type description")
	options := fs.String("options", "", "Comma separated dropdown options")
	placeholder := fs.String("placeholder", "", "Placeholder of a free text option")
	fs.Parse(args)

	schema := catalog.Text(*placeholder)
	if *options != "" {
		var opts []string
		for _, o := range strings.Split(*options, ",") {
			if o = strings.TrimSpace(o); o != "" {
				opts = append(opts, o)
			}
		}
		schema = catalog.Dropdown(opts...)
	}

	id, err := a.form.AddBetType(*sport, *name, *description, schema)
	if err != nil {
		return err
	}
	fmt.Printf("%s #%d\n", strings.TrimSpace(*name), id)
	return nil
}
