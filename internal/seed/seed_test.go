package seed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bettracker/internal/catalog"
	"bettracker/internal/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func countOptionRows(t *testing.T, st *store.Store) int {
	t.Helper()
	var n int
	require.NoError(t, st.DB().QueryRow(`SELECT COUNT(*) FROM bet_type_options`).Scan(&n))
	return n
}

func TestDefaultSet(t *testing.T) {
	set := DefaultSet()
	require.Len(t, set.Sports, 8)
	require.Len(t, set.Esports, 6)
	assert.Equal(t, "Football", set.Sports[0].Name)
	assert.Equal(t, "Counter-Strike 2", set.Esports[0].Name)

	mw := set.Sports[0].BetTypes[0]
	assert.Equal(t, "Match Winner", mw.Name)
	assert.Equal(t, catalog.KindDropdown, mw.Kind)
	assert.Equal(t, []string{"Team A", "Team B", "Draw"}, mw.Options)
}

func TestRun_SeedsFootballMatchWinner(t *testing.T) {
	st := openStore(t)

	res, err := NewSeeder(st, DefaultSet()).Run()
	require.NoError(t, err)
	assert.Equal(t, 14, res.SportGames)
	assert.Zero(t, res.Failed)
	assert.Equal(t, res.BetTypes, res.Options)

	btID, ok, err := st.GetBetTypeIDByName("Football", "Match Winner")
	require.NoError(t, err)
	require.True(t, ok)

	schema, ok, err := st.ResolveBetTypeSchema(btID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, catalog.KindDropdown, schema.Kind)
	assert.Equal(t, []string{"Team A", "Team B", "Draw"}, schema.Options)

	esports, err := st.ListSportGames(catalog.CategoryEsport)
	require.NoError(t, err)
	assert.Len(t, esports, 6)
}

func TestRun_TextPlaceholders(t *testing.T) {
	st := openStore(t)
	_, err := NewSeeder(st, DefaultSet()).Run()
	require.NoError(t, err)

	btID, ok, err := st.GetBetTypeIDByName("Football", "Correct Score")
	require.NoError(t, err)
	require.True(t, ok)

	opts, err := st.GetBetTypeOptions(btID)
	require.NoError(t, err)
	require.Len(t, opts, 1)
	assert.Equal(t, catalog.KindText, opts[0].OptionType)
	require.NotNil(t, opts[0].Placeholder)
	assert.Equal(t, "Enter score (e.g., 2-1)", *opts[0].Placeholder)
}

func TestRun_Idempotent(t *testing.T) {
	st := openStore(t)
	seeder := NewSeeder(st, DefaultSet())

	first, err := seeder.Run()
	require.NoError(t, err)
	rows := countOptionRows(t, st)
	types, err := st.CountBetTypes()
	require.NoError(t, err)

	second, err := seeder.Run()
	require.NoError(t, err)
	assert.Zero(t, second.Options)
	assert.Equal(t, first.BetTypes, second.BetTypes)
	assert.Equal(t, rows, countOptionRows(t, st))

	again, err := st.CountBetTypes()
	require.NoError(t, err)
	assert.Equal(t, types, again)
}

func TestEnsureSeeded(t *testing.T) {
	st := openStore(t)

	ran, err := EnsureSeeded(st, DefaultSet())
	require.NoError(t, err)
	assert.True(t, ran)

	ran, err = EnsureSeeded(st, DefaultSet())
	require.NoError(t, err)
	assert.False(t, ran)
}

func TestEnsureSeeded_SkipsStoreWithBetTypes(t *testing.T) {
	st := openStore(t)
	sgID, err := st.AddSportGame("Darts", catalog.CategorySport)
	require.NoError(t, err)
	_, err = st.AddBetType("Most 180s", sgID, "")
	require.NoError(t, err)

	ran, err := EnsureSeeded(st, DefaultSet())
	require.NoError(t, err)
	assert.False(t, ran)

	_, ok, err := st.GetSportGameID("Football")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLoadSet(t *testing.T) {
	doc := `
sports:
  - name: Darts
    bet_types:
      - {name: Most 180s, type: dropdown, options: [Player A, Player B]}
      - {name: Checkout, type: text}
    teams: [Luke Littler]
`
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	set, err := LoadSet(path)
	require.NoError(t, err)
	require.Len(t, set.Sports, 1)
	assert.Empty(t, set.Esports)

	st := openStore(t)
	res, err := NewSeeder(st, set).Run()
	require.NoError(t, err)
	assert.Equal(t, 2, res.Options)
	assert.Equal(t, 1, res.Teams)

	btID, ok, err := st.GetBetTypeIDByName("Darts", "Checkout")
	require.NoError(t, err)
	require.True(t, ok)
	opts, err := st.GetBetTypeOptions(btID)
	require.NoError(t, err)
	require.Len(t, opts, 1)
	require.NotNil(t, opts[0].Placeholder)
	assert.Equal(t, DefaultTextPlaceholder, *opts[0].Placeholder)
}

func TestDecode_Rejects(t *testing.T) {
	cases := map[string]string{
		"unknown key":            "leagues: []\n",
		"dropdown without items": "sports:\n  - name: Darts\n    bet_types:\n      - {name: Winner, type: dropdown}\n",
		"unknown type":           "sports:\n  - name: Darts\n    bet_types:\n      - {name: Winner, type: slider}\n",
		"nameless sport":         "esports:\n  - teams: [OG]\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := decode(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadSet_EmptyPathIsDefault(t *testing.T) {
	set, err := LoadSet("")
	require.NoError(t, err)
	assert.Len(t, set.Sports, 8)
}
