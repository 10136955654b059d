package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/geologgia/digging/internal/game"
)

// Each grid cell is two terminal columns wide so the field looks square.
const (
	cellWidth = 2
	fieldX    = 1
	fieldY    = 2
	feedWidth = 36
	feedLines = 12
)

var (
	styleDefault = tcell.StyleDefault
	styleTitle   = tcell.StyleDefault.Foreground(tcell.ColorGold).Bold(true)
	styleBorder  = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0x8b, 0x6e, 0x46))
	styleDirt    = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0x4a, 0x33, 0x19)).Background(tcell.NewRGBColor(0x65, 0x43, 0x21))
	styleTunnel  = tcell.StyleDefault.Background(tcell.ColorBlack)
	stylePlayer  = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0xff, 0xcc, 0x00)).Background(tcell.ColorBlack).Bold(true)
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

var mineralColors = map[game.MineralKind]tcell.Color{
	game.Copper:    tcell.NewRGBColor(0xb8, 0x73, 0x33),
	game.Gold:      tcell.NewRGBColor(0xff, 0xd7, 0x00),
	game.RareEarth: tcell.NewRGBColor(0x00, 0xff, 0xff),
}

var enemyColors = map[game.EnemyKind]tcell.Color{
	game.RockMonster:  tcell.NewRGBColor(0x8b, 0x45, 0x13),
	game.LavaCreature: tcell.NewRGBColor(0xff, 0x45, 0x00),
}

var facingRunes = [4]rune{'^', 'v', '<', '>'}

func (a *App) put(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		a.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func (a *App) draw() {
	a.screen.Clear()
	switch a.kind {
	case screenStart:
		a.drawStart()
	default:
		a.drawGame()
		if a.kind == screenOver {
			a.drawGameOver()
		}
	}
	a.screen.Show()
}

func (a *App) drawStart() {
	a.put(2, 2, a.cat.T("GeologgIA Digger"), styleTitle)
	a.put(2, 4, a.cat.T("Press Enter to start"), styleDefault)
	a.put(2, 6, a.cat.T("Arrows/WASD move, Space drills, M mutes, Q quits"), styleDim)
}

func (a *App) drawGame() {
	f := a.sim.Snapshot()
	st := a.hud.status
	a.put(fieldX, 0, fmt.Sprintf("%s: %d  %s: %d  %s: %d",
		a.cat.T("Level"), st.Level, a.cat.T("Score"), st.Score, a.cat.T("Lives"), st.Lives), styleTitle)
	if msg, ok := a.hud.line(); ok {
		style := styleTitle
		if a.hud.mineral {
			style = tcell.StyleDefault.Foreground(mineralColors[a.hud.messageKind]).Bold(true)
		}
		a.put(fieldX, 1, msg, style)
	}

	w, h := f.Cols*cellWidth, f.Rows
	for x := -1; x <= w; x++ {
		a.screen.SetContent(fieldX+x, fieldY-1, '─', nil, styleBorder)
		a.screen.SetContent(fieldX+x, fieldY+h, '─', nil, styleBorder)
	}

	buried := make(map[[2]int]game.MineralKind, len(f.Minerals))
	for _, m := range f.Minerals {
		buried[[2]int{m.X, m.Y}] = m.Kind
	}
	for row := 0; row < f.Rows; row++ {
		for col := 0; col < f.Cols; col++ {
			kind, hasMineral := buried[[2]int{col, row}]
			a.drawCell(col, row, f.IsDug(col, row), kind, hasMineral)
		}
	}

	for _, e := range f.Enemies {
		a.drawEnemy(e)
	}
	p := f.Player
	sx, sy := fieldX+p.X*cellWidth, fieldY+p.Y
	a.screen.SetContent(sx, sy, '@', nil, stylePlayer)
	tip := facingRunes[p.Facing]
	tipStyle := stylePlayer
	if p.Drilling {
		tipStyle = tipStyle.Foreground(tcell.NewRGBColor(0xff, 0x66, 0x00))
	}
	a.screen.SetContent(sx+1, sy, tip, nil, tipStyle)

	a.drawFeed(fieldX+w+3, fieldY)
}

func (a *App) drawCell(col, row int, dug bool, kind game.MineralKind, hasMineral bool) {
	x, y := fieldX+col*cellWidth, fieldY+row
	style, glyph := styleDirt, "░░"
	if dug {
		style, glyph = styleTunnel, "  "
	}
	if hasMineral {
		if dug {
			style, glyph = styleTunnel.Foreground(mineralColors[kind]), "◆◆"
		} else {
			style, glyph = styleDirt.Foreground(mineralColors[kind]), "··"
		}
	}
	a.put(x, y, glyph, style)
}

func (a *App) drawEnemy(e game.EnemyView) {
	x, y := fieldX+e.X*cellWidth, fieldY+e.Y
	style := styleTunnel.Foreground(enemyColors[e.Kind]).Bold(true)
	if e.Exploding {
		a.put(x, y, "**", style.Blink(true))
		return
	}
	body := 'R'
	if e.Kind == game.LavaCreature {
		body = 'L'
	}
	a.screen.SetContent(x, y, body, nil, style)
	inflate := ' '
	if e.InflateLevel > 0 {
		inflate = rune('0' + e.InflateLevel)
	}
	a.screen.SetContent(x+1, y, inflate, nil, style)
}

// drawFeed lists the most recent notable events.
func (a *App) drawFeed(x, y int) {
	a.put(x, y, a.cat.T("GeologgIA Digger"), styleTitle)
	for i, e := range a.recentEvents(feedLines) {
		line := fmt.Sprintf("%4d %-3s %s %s", e.Tick, e.Actor, e.Key, e.Value)
		if len(line) > feedWidth {
			line = line[:feedWidth]
		}
		a.put(x, y+2+i, line, styleDim)
	}
}

func (a *App) recentEvents(n int) []game.SimLogEntry {
	entries := a.log.Entries()
	out := make([]game.SimLogEntry, 0, n)
	for i := len(entries) - 1; i >= 0 && len(out) < n; i-- {
		switch e := entries[i]; e.Category {
		case "move", "dig":
			continue
		default:
			if e.Key == "pos" {
				continue
			}
			out = append(out, e)
		}
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

func (a *App) drawGameOver() {
	sum := a.hud.summary
	lines := []string{
		a.cat.T("Game Over"),
		a.cat.T("Final score: %d", sum.Score),
		a.cat.T("Level reached: %d", sum.Level),
		a.cat.T("Minerals collected"),
		fmt.Sprintf("  %s: %d", a.cat.T("Copper"), sum.Minerals.Copper),
		fmt.Sprintf("  %s: %d", a.cat.T("Gold"), sum.Minerals.Gold),
		fmt.Sprintf("  %s: %d", a.cat.T("Rare Earth"), sum.Minerals.RareEarth),
		a.cat.T("Enemies popped: %d", sum.Enemies),
		a.cat.T("Press R to play again"),
		a.cat.T("Press C to copy the summary"),
	}
	y := fieldY + 3
	for i, l := range lines {
		style := styleDefault.Background(tcell.ColorBlack)
		if i == 0 {
			style = styleTitle.Background(tcell.ColorBlack)
		}
		a.put(fieldX+1, y+i, l, style)
	}
}
