package models

import (
	"errors"
	"testing"

	domain "github.com/ghuser/gamecatalog/services/catalog/domain"
)

func TestParseGenre(t *testing.T) {
	t.Run("case insensitive", func(t *testing.T) {
		for _, in := range []string{"rpg", "RPG", "Rpg"} {
			g, err := ParseGenre(in)
			if err != nil {
				t.Fatalf("ParseGenre(%q): %v", in, err)
			}
			if g != GenreRPG {
				t.Errorf("ParseGenre(%q) = %q, want %q", in, g, GenreRPG)
			}
		}
	})

	t.Run("unknown genre rejected", func(t *testing.T) {
		_, err := ParseGenre("Polka")
		if err == nil {
			t.Fatal("expected error for unknown genre")
		}
		if !errors.Is(err, domain.ErrInvalidGame) {
			t.Errorf("error %v must wrap ErrInvalidGame", err)
		}
	})

	t.Run("round trips the full set", func(t *testing.T) {
		for _, g := range Genres() {
			parsed, err := ParseGenre(g.String())
			if err != nil || parsed != g {
				t.Errorf("round trip failed for %q: %v", g, err)
			}
		}
	})
}

func TestGenre_Valid(t *testing.T) {
	if !GenreShooter.Valid() {
		t.Error("Shooter should be valid")
	}
	if Genre("shooter").Valid() {
		t.Error("Valid is exact match only; lowercase variant should fail")
	}
	if Genre("").Valid() {
		t.Error("empty genre should be invalid")
	}
}
