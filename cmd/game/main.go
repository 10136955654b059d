package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/geologgia/digging/internal/desktop"
	"github.com/geologgia/digging/internal/game"
	"github.com/geologgia/digging/internal/locale"
	"github.com/geologgia/digging/internal/sound"
)

func main() {
	var seed int64
	var lives int
	var mute bool
	var volume float64
	var lang string
	var localeDir string

	flag.Int64Var(&seed, "seed", 0, "RNG seed (0 = time based)")
	flag.IntVar(&lives, "lives", 3, "starting lives")
	flag.BoolVar(&mute, "mute", false, "start with sound off")
	flag.Float64Var(&volume, "volume", sound.DefaultVolume, "master volume 0..1")
	flag.StringVar(&lang, "locale", "", "UI language, e.g. es (default English)")
	flag.StringVar(&localeDir, "locale-dir", "locales", "directory holding <lang>/LC_MESSAGES catalogues")
	flag.Parse()

	cfg := game.DefaultConfig()
	cfg.InitialLives = lives

	cat := loadCatalog(lang, localeDir)

	snd := sound.NewManager()
	if err := snd.Init(); err != nil {
		log.Printf("audio disabled: %v", err)
	}
	defer snd.Close()
	snd.SetVolume(volume)
	if mute {
		snd.Toggle()
	}

	app, err := desktop.New(desktop.Options{
		Config:  cfg,
		Seed:    seed,
		Audio:   snd,
		Mute:    snd,
		Catalog: cat,
	})
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowTitle(cat.T("GeologgIA Digger"))
	ebiten.SetWindowSize(app.Size())
	if err := ebiten.RunGame(app); err != nil {
		log.Fatal(err)
	}
}

func loadCatalog(lang, dir string) *locale.Catalog {
	if lang == "" || lang == "en" {
		return locale.English()
	}
	cat := locale.Load(dir, lang)
	if !cat.Found(dir) {
		log.Printf("no %q catalogue under %s, falling back to English", lang, dir)
		return locale.English()
	}
	return cat
}
