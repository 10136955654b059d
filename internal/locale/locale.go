// Package locale wraps the gettext catalogue used for player-facing strings.
// Message ids are the English text, so a missing catalogue falls back to
// English.
package locale

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/leonelquinteros/gotext"
)

// Domain is the catalogue file name under <dir>/<lang>/LC_MESSAGES/.
const Domain = "default"

// Catalog translates message ids for one language.
type Catalog struct {
	lang string
	loc  *gotext.Locale
}

// Load opens the catalogue for lang under dir. A missing catalogue is not an
// error; Found reports whether translations were loaded.
func Load(dir, lang string) *Catalog {
	loc := gotext.NewLocale(dir, lang)
	loc.AddDomain(Domain)
	return &Catalog{lang: lang, loc: loc}
}

// English returns a catalogue that echoes message ids.
func English() *Catalog {
	return &Catalog{lang: "en"}
}

// Lang is the language code the catalogue was loaded for.
func (c *Catalog) Lang() string { return c.lang }

// Found reports whether a catalogue file exists for the language.
func (c *Catalog) Found(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, c.lang, "LC_MESSAGES", Domain+".po"))
	return err == nil
}

// T translates msgid, formatting vars printf-style.
func (c *Catalog) T(msgid string, vars ...interface{}) string {
	if c == nil || c.loc == nil {
		if len(vars) == 0 {
			return msgid
		}
		return fmt.Sprintf(msgid, vars...)
	}
	return c.loc.Get(msgid, vars...)
}

// Get translates msgid without formatting.
func (c *Catalog) Get(msgid string) string {
	if c == nil || c.loc == nil {
		return msgid
	}
	return c.loc.Get(msgid)
}

// Func adapts Get to a plain translator for game.WithTranslator.
func (c *Catalog) Func() func(string) string {
	return c.Get
}
