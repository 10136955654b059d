package main

import (
	"flag"
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/geologgia/digging/internal/game"
	"github.com/geologgia/digging/internal/locale"
	"github.com/geologgia/digging/internal/sound"
	"github.com/geologgia/digging/internal/terminal"
)

func main() {
	var seed int64
	var lives int
	var mute bool
	var lang string
	var localeDir string

	flag.Int64Var(&seed, "seed", 0, "RNG seed (0 = time based)")
	flag.IntVar(&lives, "lives", 3, "starting lives")
	flag.BoolVar(&mute, "mute", false, "start with sound off")
	flag.StringVar(&lang, "locale", "", "UI language, e.g. es (default English)")
	flag.StringVar(&localeDir, "locale-dir", "locales", "directory holding <lang>/LC_MESSAGES catalogues")
	flag.Parse()

	cfg := game.DefaultConfig()
	cfg.InitialLives = lives

	cat := locale.English()
	if lang != "" && lang != "en" {
		cat = locale.Load(localeDir, lang)
	}

	snd := sound.NewManager()
	if err := snd.Init(); err != nil {
		// Non-fatal, the game runs silent.
		log.Printf("audio disabled: %v", err)
	}
	defer snd.Close()
	if mute {
		snd.Toggle()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	defer screen.Fini()

	app, err := terminal.New(screen, terminal.Options{
		Config:  cfg,
		Seed:    seed,
		Audio:   snd,
		Mute:    snd,
		Catalog: cat,
	})
	if err != nil {
		screen.Fini()
		log.Fatal(err)
	}
	if err := app.Run(); err != nil {
		screen.Fini()
		log.Fatal(err)
	}
}
