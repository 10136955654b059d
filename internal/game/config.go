package game

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Configuration errors. Validate wraps one of these per offending field.
var (
	ErrInvalidGrid     = errors.New("invalid grid dimensions")
	ErrInvalidMinerals = errors.New("invalid mineral table")
	ErrInvalidEnemies  = errors.New("invalid enemy table")
	ErrInvalidTiming   = errors.New("invalid timing")
)

// Default tuning, matching the arcade original.
const (
	defaultCols         = 12
	defaultRows         = 16
	defaultLives        = 3
	defaultMineralRow   = 2 // minerals never spawn in the two rows under the surface
	defaultEnemyRow     = 3
	defaultEnemyBase    = 2
	defaultEnemyCap     = 6
	defaultLevelBonus   = 1000
	defaultTicksPerBeat = 60 // ticks per second the enemy speeds are expressed against

	defaultDeflateDelay   = 2000 * time.Millisecond
	defaultExplosionDelay = 300 * time.Millisecond
	defaultHitGrace       = 1000 * time.Millisecond
	defaultDrillFlash     = 200 * time.Millisecond
	defaultNoticeDuration = 2000 * time.Millisecond

	// maxInflate is the inflate level at which an enemy bursts.
	maxInflate = 4
)

// EnemySpec is the per-kind movement rate and bounty.
type EnemySpec struct {
	Speed  float64 // cells per second at full rate
	Points int
}

// Config holds every tunable of a run. Build one with DefaultConfig and
// adjust fields before passing it to New.
type Config struct {
	Cols int
	Rows int

	InitialLives int

	// Minerals is sampled in order with cumulative probability per cell.
	Minerals        []MineralSpec
	FirstMineralRow int

	Enemies     map[EnemyKind]EnemySpec
	EnemyMinRow int
	EnemyBase   int // enemies at level 0; level L spawns EnemyBase+L
	EnemyCap    int

	LevelBonus   int // awarded as LevelBonus × new level
	TicksPerBeat int

	DeflateDelay   time.Duration
	ExplosionDelay time.Duration
	HitGrace       time.Duration
	DrillFlash     time.Duration
	NoticeDuration time.Duration
}

// DefaultConfig returns the 12×16 arcade configuration.
func DefaultConfig() Config {
	return Config{
		Cols:            defaultCols,
		Rows:            defaultRows,
		InitialLives:    defaultLives,
		Minerals:        DefaultMinerals(),
		FirstMineralRow: defaultMineralRow,
		Enemies: map[EnemyKind]EnemySpec{
			RockMonster:  {Speed: 2.5, Points: 200},
			LavaCreature: {Speed: 3.5, Points: 300},
		},
		EnemyMinRow:    defaultEnemyRow,
		EnemyBase:      defaultEnemyBase,
		EnemyCap:       defaultEnemyCap,
		LevelBonus:     defaultLevelBonus,
		TicksPerBeat:   defaultTicksPerBeat,
		DeflateDelay:   defaultDeflateDelay,
		ExplosionDelay: defaultExplosionDelay,
		HitGrace:       defaultHitGrace,
		DrillFlash:     defaultDrillFlash,
		NoticeDuration: defaultNoticeDuration,
	}
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// Validate reports every contract violation in the config at once.
func (c Config) Validate() error {
	var errs []error

	if c.Cols <= 0 || c.Rows <= 0 {
		errs = append(errs, fmt.Errorf("%w: %dx%d", ErrInvalidGrid, c.Cols, c.Rows))
	}
	if c.InitialLives <= 0 {
		errs = append(errs, fmt.Errorf("%w: initial lives %d", ErrInvalidGrid, c.InitialLives))
	}

	total := 0.0
	seen := make(map[MineralKind]bool, len(c.Minerals))
	for _, m := range c.Minerals {
		if !finite(m.Probability) || m.Probability < 0 || m.Points < 0 {
			errs = append(errs, fmt.Errorf("%w: %s has probability %.3f points %d",
				ErrInvalidMinerals, m.Kind, m.Probability, m.Points))
		}
		if seen[m.Kind] {
			errs = append(errs, fmt.Errorf("%w: %s listed twice", ErrInvalidMinerals, m.Kind))
		}
		seen[m.Kind] = true
		total += m.Probability
	}
	if total > 1 {
		errs = append(errs, fmt.Errorf("%w: probabilities sum to %.3f", ErrInvalidMinerals, total))
	}
	if c.FirstMineralRow < 0 {
		errs = append(errs, fmt.Errorf("%w: first mineral row %d", ErrInvalidMinerals, c.FirstMineralRow))
	}

	for _, k := range []EnemyKind{RockMonster, LavaCreature} {
		spec, ok := c.Enemies[k]
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s missing", ErrInvalidEnemies, k))
			continue
		}
		if !finite(spec.Speed) || spec.Speed <= 0 || spec.Points < 0 {
			errs = append(errs, fmt.Errorf("%w: %s speed %.2f points %d",
				ErrInvalidEnemies, k, spec.Speed, spec.Points))
		}
	}
	if c.EnemyBase < 0 || c.EnemyCap < 0 {
		errs = append(errs, fmt.Errorf("%w: base %d cap %d", ErrInvalidEnemies, c.EnemyBase, c.EnemyCap))
	}
	if c.EnemyCap > 0 && (c.EnemyMinRow < 0 || c.EnemyMinRow >= c.Rows) {
		errs = append(errs, fmt.Errorf("%w: spawn row %d outside %d rows", ErrInvalidEnemies, c.EnemyMinRow, c.Rows))
	}

	if c.TicksPerBeat <= 0 {
		errs = append(errs, fmt.Errorf("%w: ticks per beat %d", ErrInvalidTiming, c.TicksPerBeat))
	}
	for name, d := range map[string]time.Duration{
		"deflate":   c.DeflateDelay,
		"explosion": c.ExplosionDelay,
		"hit grace": c.HitGrace,
		"drill":     c.DrillFlash,
		"notice":    c.NoticeDuration,
	} {
		if d < 0 {
			errs = append(errs, fmt.Errorf("%w: %s delay %s", ErrInvalidTiming, name, d))
		}
	}

	return errors.Join(errs...)
}

// enemyCount is the roster size for a level.
func (c Config) enemyCount(level int) int {
	n := c.EnemyBase + level
	if n > c.EnemyCap {
		n = c.EnemyCap
	}
	if n < 0 {
		n = 0
	}
	return n
}

// enemyRowBand is the number of rows enemies may spawn on, starting at EnemyMinRow.
func (c Config) enemyRowBand() int {
	band := c.Rows - 5
	if c.EnemyMinRow+band > c.Rows {
		band = c.Rows - c.EnemyMinRow
	}
	if band < 1 {
		band = 1
	}
	return band
}

// TickDuration is the wall-clock length of one simulation tick.
func (c Config) TickDuration() time.Duration {
	if c.TicksPerBeat <= 0 {
		return time.Second / defaultTicksPerBeat
	}
	return time.Second / time.Duration(c.TicksPerBeat)
}
