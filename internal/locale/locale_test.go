package locale

import "testing"

const catalogDir = "../../locales"

func TestLoad_Spanish(t *testing.T) {
	c := Load(catalogDir, "es")
	if !c.Found(catalogDir) {
		t.Fatal("spanish catalogue should be present")
	}
	cases := map[string]string{
		"Copper":     "Cobre",
		"Gold":       "Oro",
		"Rare Earth": "Tierras Raras",
		"Game Over":  "Fin del juego",
	}
	for id, want := range cases {
		if got := c.Get(id); got != want {
			t.Fatalf("Get(%q) = %q, want %q", id, got, want)
		}
	}
	if got := c.Func()("Gold"); got != "Oro" {
		t.Fatalf("translator func returned %q", got)
	}
	if got := c.T("Final score: %d", 1500); got != "Puntuación final: 1500" {
		t.Fatalf("unexpected formatted string %q", got)
	}
}

func TestLoad_MissingFallsBack(t *testing.T) {
	c := Load(catalogDir, "xx")
	if c.Found(catalogDir) {
		t.Fatal("no catalogue exists for xx")
	}
	if got := c.Get("Copper"); got != "Copper" {
		t.Fatalf("expected the message id, got %q", got)
	}
}

func TestEnglish(t *testing.T) {
	c := English()
	if got := c.T("Level %d!", 3); got != "Level 3!" {
		t.Fatalf("unexpected %q", got)
	}
	if got := c.Func()("Gold"); got != "Gold" {
		t.Fatalf("unexpected %q", got)
	}
	var nilCat *Catalog
	if got := nilCat.Get("Gold"); got != "Gold" {
		t.Fatalf("nil catalogue should echo, got %q", got)
	}
	if got := nilCat.Func()("100%"); got != "100%" {
		t.Fatalf("plain lookups must not format, got %q", got)
	}
}
