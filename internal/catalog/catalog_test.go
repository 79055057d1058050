package catalog

import (
	"slices"
	"strings"
	"testing"
)

func TestDefault_Categories(t *testing.T) {
	c := Default()
	got := c.Categories()
	if !slices.Equal(got, []Category{CategorySport, CategoryEsport}) {
		t.Errorf("unexpected categories: %v", got)
	}
}

func TestLocationLabel(t *testing.T) {
	c := Default()
	cases := map[Category]string{
		CategorySport:  "Stadium/City:",
		CategoryEsport: "Map:",
		"Chess":        "Location",
	}
	for category, want := range cases {
		if got := c.LocationLabel(category); got != want {
			t.Errorf("LocationLabel(%q) = %q, want %q", category, got, want)
		}
	}
}

func TestDefault_SportAndEsportLists(t *testing.T) {
	c := Default()
	if n := len(c.Sports()); n != 10 {
		t.Errorf("expected 10 sports, got %d", n)
	}
	if n := len(c.Esports()); n != 10 {
		t.Errorf("expected 10 esports, got %d", n)
	}
	if !slices.Contains(c.Sports(), "Football") {
		t.Error("expected Football among sports")
	}
	if !slices.Contains(c.Esports(), "Counter-Strike 2") {
		t.Error("expected Counter-Strike 2 among esports")
	}
}

func TestUnknownSport_ReturnsEmptyLists(t *testing.T) {
	c := Default()
	for _, name := range []string{"Curling", "", "football"} {
		if n := len(c.BetTypes(name)); n != 0 {
			t.Errorf("BetTypes(%q) returned %d items", name, n)
		}
		if n := len(c.Tournaments(name)); n != 0 {
			t.Errorf("Tournaments(%q) returned %d items", name, n)
		}
		if n := len(c.Locations(name)); n != 0 {
			t.Errorf("Locations(%q) returned %d items", name, n)
		}
		if n := len(c.Teams(name)); n != 0 {
			t.Errorf("Teams(%q) returned %d items", name, n)
		}
	}
}

func TestBetTypes_Football(t *testing.T) {
	c := Default()
	types := c.BetTypes("Football")
	if len(types) != 4 {
		t.Fatalf("expected 4 football bet types, got %d", len(types))
	}
	if types[0].Name != "Match Winner" || types[0].Description != "Predict the winner of the match" {
		t.Errorf("unexpected first bet type: %+v", types[0])
	}
}

func TestResolveSchema_Tiers(t *testing.T) {
	c := Default()

	// Sport tier overrides the shared one.
	s := c.ResolveSchema("Tennis", "Match Winner")
	if !s.IsDropdown() || !slices.Equal(s.Options, []string{"Team A", "Team B"}) {
		t.Errorf("tennis match winner: %+v", s)
	}

	// Shared tier.
	s = c.ResolveSchema("Football", "Match Winner")
	if !s.IsDropdown() || !slices.Equal(s.Options, []string{"Team A", "Team B", "Draw"}) {
		t.Errorf("football match winner: %+v", s)
	}
	s = c.ResolveSchema("Curling", "Correct Score")
	if s.IsDropdown() || !strings.HasPrefix(s.Placeholder, "Enter score") {
		t.Errorf("correct score: %+v", s)
	}

	// Fallback.
	s = c.ResolveSchema("Curling", "Stone Count")
	if s.Kind != KindText || s.Placeholder != DefaultPlaceholder {
		t.Errorf("fallback: %+v", s)
	}
}

func TestResolveSchema_DropdownIffDefined(t *testing.T) {
	c := Default()
	for _, sport := range append(c.Sports(), c.Esports()...) {
		for _, bt := range c.BetTypes(sport) {
			s := c.ResolveSchema(sport, bt.Name)
			_, specific := c.schemas.BySport[sport][bt.Name]
			common, shared := c.schemas.Common[bt.Name]
			want := specific && c.schemas.BySport[sport][bt.Name].Kind == KindDropdown ||
				!specific && shared && common.Kind == KindDropdown
			if s.IsDropdown() != want {
				t.Errorf("%s/%s: dropdown=%v want %v", sport, bt.Name, s.IsDropdown(), want)
			}
			if !s.IsDropdown() && s.Placeholder == "" {
				t.Errorf("%s/%s: empty placeholder", sport, bt.Name)
			}
		}
	}
}

func TestResolveSchema_ReturnsCopy(t *testing.T) {
	c := Default()
	s := c.ResolveSchema("Football", "Match Winner")
	s.Options[0] = "mutated"
	if got := c.ResolveSchema("Football", "Match Winner").Options[0]; got != "Team A" {
		t.Errorf("catalog mutated through returned schema: %q", got)
	}
}

func TestResolveSections(t *testing.T) {
	c := Default()
	if got := c.ResolveSections("Football", "Match Winner"); got.Line {
		t.Errorf("match winner should hide the line: %+v", got)
	}
	if got := c.ResolveSections("Basketball", "Total Points"); !got.Line || !got.Location || !got.Bet {
		t.Errorf("total points should show everything: %+v", got)
	}
	if got := c.ResolveSections("Curling", "Anything"); got != AllSections {
		t.Errorf("fallback should show everything: %+v", got)
	}
}

func TestResolveSections_SportTier(t *testing.T) {
	c := New(Document{
		Sections: SectionTiers{
			Common: map[string]Sections{"Winner": {Location: true, Bet: true}},
			BySport: map[string]map[string]Sections{
				"Chess": {"Winner": {Bet: true}},
			},
		},
	})
	if got := c.ResolveSections("Chess", "Winner"); got.Location {
		t.Errorf("sport tier not applied: %+v", got)
	}
	if got := c.ResolveSections("Go", "Winner"); !got.Location || got.Line {
		t.Errorf("common tier not applied: %+v", got)
	}
}

func TestMutators(t *testing.T) {
	c := Default()

	c.AddSport(Entry{Name: "Curling", Teams: []string{"Canada"}})
	c.AddEsport(Entry{Name: "Chess", Teams: []string{"Carlsen"}})
	if !slices.Contains(c.Sports(), "Curling") || !slices.Contains(c.Esports(), "Chess") {
		t.Fatal("added sport/esport missing")
	}
	if cat, ok := c.CategoryOf("Chess"); !ok || cat != CategoryEsport {
		t.Errorf("CategoryOf(Chess) = %q, %v", cat, ok)
	}

	c.AddBetType("Curling", "Stone Count", "Predict the number of stones in the house")
	c.AddTournament("Curling", "Brier")
	c.AddLocation("Curling", "Rideau Hall")
	c.AddTeam("Curling", "Sweden")

	if got := c.BetTypes("Curling"); len(got) != 1 || got[0].Name != "Stone Count" {
		t.Errorf("bet types: %+v", got)
	}
	if got := c.Tournaments("Curling"); !slices.Equal(got, []string{"Brier"}) {
		t.Errorf("tournaments: %v", got)
	}
	if got := c.Locations("Curling"); !slices.Equal(got, []string{"Rideau Hall"}) {
		t.Errorf("locations: %v", got)
	}
	if got := c.Teams("Curling"); !slices.Equal(got, []string{"Canada", "Sweden"}) {
		t.Errorf("teams: %v", got)
	}

	// Appends to an unknown sport are dropped.
	c.AddTeam("Quidditch", "Holyhead Harpies")
	if len(c.Teams("Quidditch")) != 0 {
		t.Error("unknown sport gained a team")
	}
}

func TestParseCategory(t *testing.T) {
	if c, err := ParseCategory("Esport"); err != nil || c != CategoryEsport {
		t.Errorf("ParseCategory(Esport) = %q, %v", c, err)
	}
	if _, err := ParseCategory("sport"); err == nil {
		t.Error("expected error for lower-case category")
	}
}
