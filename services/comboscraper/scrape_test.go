package comboscraper

import (
	"combo-scraper/internal/combos"
	"combo-scraper/services/comboscraper/db"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeSite struct {
	characters  []combos.Character
	discoverErr error
	records     map[string][]combos.ComboRecord
	// failAt cancels after collecting this character
	failAt    string
	collected []string
}

func (f *fakeSite) Discover(context.Context) ([]combos.Character, error) {
	return f.characters, f.discoverErr
}

func (f *fakeSite) Collect(_ context.Context, character combos.Character) ([]combos.ComboRecord, error) {
	f.collected = append(f.collected, character.Name)
	if character.Name == f.failAt {
		return f.records[character.Name], context.Canceled
	}
	return f.records[character.Name], nil
}

func character(name string) combos.Character {
	return combos.Character{Name: name, ListingPath: "/combos-" + name + "/"}
}

func newFakeSite() *fakeSite {
	id := "k1"
	return &fakeSite{
		characters: []combos.Character{
			character("jin"),
			character("kazuya"),
			character("devil_jin"),
			character("lars"),
		},
		records: map[string][]combos.ComboRecord{
			"jin": {
				{Hits: "10 hits", Damage: "55 damages", Moves: []combos.MoveStep{combos.TextStep("SEN")}},
			},
			"kazuya": {
				{ID: &id, Moves: []combos.MoveStep{combos.ImageStep("1", "1.png")}},
			},
		},
	}
}

func names(characters []combos.Character) []string {
	var out []string
	for _, c := range characters {
		out = append(out, c.Name)
	}
	return out
}

func TestSelect(t *testing.T) {
	discovered := newFakeSite().characters

	require.Equal(t, []string{"jin", "kazuya", "devil_jin"}, names(Select(discovered, nil, 3)))
	require.Equal(t, []string{"jin", "kazuya", "devil_jin", "lars"}, names(Select(discovered, nil, 0)))
	require.Equal(t, []string{"jin", "kazuya", "devil_jin", "lars"}, names(Select(discovered, nil, 10)))

	// discovery order, limit ignored, unknown names dropped
	require.Equal(t, []string{"jin", "lars"}, names(Select(discovered, []string{"lars", " JIN ", "kazuyaa"}, 1)))
	require.Empty(t, Select(discovered, []string{"nobody"}, 0))
}

func TestRun(t *testing.T) {
	t.Run("writes the result set in discovery order", func(t *testing.T) {
		site := newFakeSite()
		out := filepath.Join(t.TempDir(), "assets")

		rs, err := Run(context.Background(), site, RunOptions{OutputDir: out, CharacterLimit: 3})
		require.NoError(t, err)
		require.Equal(t, []string{"jin", "kazuya", "devil_jin"}, rs.Characters())
		require.Equal(t, site.collected, rs.Characters())

		loaded, err := combos.Load(filepath.Join(out, combos.ResultFile))
		require.NoError(t, err)
		require.Equal(t, rs.Characters(), loaded.Characters())
		devilJin, ok := loaded.Get("devil_jin")
		require.True(t, ok)
		require.Empty(t, devilJin)
	})

	t.Run("discovery failure writes nothing", func(t *testing.T) {
		site := newFakeSite()
		site.discoverErr = errors.New("unreachable")
		out := t.TempDir()

		_, err := Run(context.Background(), site, RunOptions{OutputDir: out})
		require.ErrorIs(t, err, site.discoverErr)
		require.NoFileExists(t, filepath.Join(out, combos.ResultFile))
	})

	t.Run("interruption keeps the partial result", func(t *testing.T) {
		site := newFakeSite()
		site.failAt = "kazuya"
		out := t.TempDir()
		store, err := db.Open(filepath.Join(out, "combos.db"))
		require.NoError(t, err)
		defer store.Close()

		rs, err := Run(context.Background(), site, RunOptions{OutputDir: out, Exporter: store})
		require.ErrorIs(t, err, context.Canceled)
		require.Equal(t, []string{"jin", "kazuya"}, rs.Characters())
		require.FileExists(t, filepath.Join(out, combos.ResultFile))

		stored, err := store.Load(context.Background())
		require.NoError(t, err)
		require.Equal(t, 0, stored.Len())
	})

	t.Run("exports to sqlite", func(t *testing.T) {
		site := newFakeSite()
		out := t.TempDir()
		store, err := db.Open(filepath.Join(out, "combos.db"))
		require.NoError(t, err)
		defer store.Close()

		_, err = Run(context.Background(), site, RunOptions{
			OutputDir:  out,
			Characters: []string{"kazuya"},
			Exporter:   store,
		})
		require.NoError(t, err)

		stored, err := store.Load(context.Background())
		require.NoError(t, err)
		require.Equal(t, []string{"kazuya"}, stored.Characters())
		records, _ := stored.Get("kazuya")
		require.Len(t, records, 1)
		require.Equal(t, "k1", *records[0].ID)
		require.Equal(t, []combos.MoveStep{combos.ImageStep("1", "1.png")}, records[0].Moves)
	})
}
