package catalog

import (
	"slices"
	"strings"
	"testing"
)

func TestMergeSchemas_UnionsDropdowns(t *testing.T) {
	got := MergeSchemas([]Schema{
		Dropdown("Team A", "Team B"),
		Text("ignored"),
		Dropdown("Team B", "Draw", "Team A"),
	})
	if !got.IsDropdown() {
		t.Fatalf("expected dropdown, got %+v", got)
	}
	if want := []string{"Team A", "Team B", "Draw"}; !slices.Equal(got.Options, want) {
		t.Errorf("options = %v, want %v", got.Options, want)
	}
}

func TestMergeSchemas_FirstTextWins(t *testing.T) {
	got := MergeSchemas([]Schema{Text("Enter score"), Text("Enter something else")})
	if got.Kind != KindText || got.Placeholder != "Enter score" {
		t.Errorf("unexpected merge result: %+v", got)
	}
}

func TestMergeSchemas_EmptyPlaceholderFilled(t *testing.T) {
	got := MergeSchemas([]Schema{{Kind: KindText}})
	if got.Placeholder != DefaultPlaceholder {
		t.Errorf("placeholder = %q", got.Placeholder)
	}
}

func TestMergeSchemas_NoRows(t *testing.T) {
	got := MergeSchemas(nil)
	if got.Kind != KindText || got.Placeholder != DefaultPlaceholder {
		t.Errorf("unexpected default: %+v", got)
	}
}

func TestLoad_RejectsUnknownSchemaType(t *testing.T) {
	doc := `
schemas:
  common:
    Match Winner: {type: slider}
`
	if _, err := Load(strings.NewReader(doc)); err == nil {
		t.Fatal("expected error for unknown schema type")
	}
}

func TestLoad_RejectsUnknownKeys(t *testing.T) {
	if _, err := Load(strings.NewReader("colours: [red]\n")); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestLoad_MinimalDocument(t *testing.T) {
	doc := `
location_labels:
  Sport: "Venue:"
sports:
  - name: Darts
    bet_types:
      - {name: Most 180s, description: Predict which player throws more 180s}
    teams: [Luke Littler]
schemas:
  by_sport:
    Darts:
      Most 180s: {type: dropdown, options: [Player A, Player B]}
`
	c, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	if got := c.LocationLabel(CategorySport); got != "Venue:" {
		t.Errorf("label = %q", got)
	}
	if got := c.LocationLabel(CategoryEsport); got != "Location" {
		t.Errorf("esport label = %q", got)
	}
	if s := c.ResolveSchema("Darts", "Most 180s"); !s.IsDropdown() || len(s.Options) != 2 {
		t.Errorf("schema = %+v", s)
	}
	if got := c.Teams("Darts"); !slices.Equal(got, []string{"Luke Littler"}) {
		t.Errorf("teams = %v", got)
	}
}

func TestLoadFile_EmptyPathIsDefault(t *testing.T) {
	c, err := LoadFile("")
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Sports()) == 0 {
		t.Error("expected built-in sports")
	}
}
