package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Sim owns the whole run: grid, player, enemy roster, scoreboard and timers.
// It is driven from a single goroutine; Update is called once per frame and
// Move/Drill are called from input handling on the same goroutine.
type Sim struct {
	cfg   Config
	seed  int64
	rng   *rand.Rand
	clock Clock
	sched *Scheduler

	audio     AudioSink
	hud       HUDSink
	log       *SimLog
	translate func(string) string

	session uuid.UUID
	state   State
	started bool
	tick    int
	popped  int

	grid    *Grid
	player  *Player
	enemies []*Enemy
	nextID  int

	grace *Timer
}

// Option configures a Sim at construction.
type Option func(*Sim)

// WithSeed fixes the random seed for mineral placement and enemy behaviour.
func WithSeed(seed int64) Option {
	return func(s *Sim) { s.seed = seed }
}

// WithClock replaces the wall clock used for timed effects.
func WithClock(c Clock) Option {
	return func(s *Sim) { s.clock = c }
}

// WithAudio attaches an audio sink.
func WithAudio(a AudioSink) Option {
	return func(s *Sim) {
		if a != nil {
			s.audio = a
		}
	}
}

// WithHUD attaches a HUD sink.
func WithHUD(h HUDSink) Option {
	return func(s *Sim) {
		if h != nil {
			s.hud = h
		}
	}
}

// WithSimLog records events into l instead of a private quiet log.
func WithSimLog(l *SimLog) Option {
	return func(s *Sim) {
		if l != nil {
			s.log = l
		}
	}
}

// WithTranslator sets the function used to localise mineral names before
// they reach the HUD.
func WithTranslator(fn func(string) string) Option {
	return func(s *Sim) {
		if fn != nil {
			s.translate = fn
		}
	}
}

// New validates cfg and builds an idle Sim. Call Start to begin a run.
func New(cfg Config, opts ...Option) (*Sim, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("game config: %w", err)
	}
	s := &Sim{
		cfg:       cfg,
		seed:      time.Now().UnixNano(),
		clock:     SystemClock{},
		audio:     NopAudio{},
		hud:       NopHUD{},
		log:       NewSimLog(false),
		translate: func(id string) string { return id },
	}
	for _, o := range opts {
		o(s)
	}
	s.rng = rand.New(rand.NewSource(s.seed)) // #nosec G404 -- gameplay randomness
	s.sched = NewScheduler(s.clock)
	return s, nil
}

// Start resets the scoreboard and begins level 1.
func (s *Sim) Start() {
	s.sched.Clear()
	s.grace = nil
	s.state = newState(s.cfg.InitialLives)
	s.session = uuid.New()
	s.started = true
	s.tick = 0
	s.popped = 0
	s.nextID = 0
	s.log.Add(0, "--", "state", "start", s.session.String(), 0)

	s.buildLevel()
	s.audio.OnMusicStart()
	s.refreshHUD()
}

// Restart abandons the current run, if any, and starts a fresh one.
func (s *Sim) Restart() {
	if s.started && !s.state.GameOver {
		s.audio.OnMusicStop()
	}
	s.Start()
}

// buildLevel regenerates everything except the scoreboard.
func (s *Sim) buildLevel() {
	if s.player != nil {
		s.player.stopTimers()
	}
	for _, e := range s.enemies {
		e.stopTimers()
	}

	s.grid = NewGrid(s.cfg, s.rng, s.audio)
	s.player = newPlayer(s, s.spawnX(), 0)
	s.enemies = s.spawnEnemies(s.cfg.enemyCount(s.state.Level))
	s.log.Add(s.tick, "--", "level", "build",
		fmt.Sprintf("level %d: %d minerals, %d enemies", s.state.Level, len(s.grid.minerals), len(s.enemies)),
		float64(s.state.Level))
}

func (s *Sim) spawnX() int { return s.cfg.Cols / 2 }

func (s *Sim) spawnEnemies(n int) []*Enemy {
	out := make([]*Enemy, 0, n)
	band := s.cfg.enemyRowBand()
	for i := 0; i < n; i++ {
		x := s.rng.Intn(s.cfg.Cols)
		y := s.rng.Intn(band) + s.cfg.EnemyMinRow
		kind := RockMonster
		if s.rng.Float64() >= 0.5 {
			kind = LavaCreature
		}
		dir := 1
		if s.rng.Float64() >= 0.5 {
			dir = -1
		}
		s.nextID++
		out = append(out, newEnemy(s, s.nextID, kind, x, y, dir))
	}
	return out
}

// Update runs one tick. Due timers always fire; the entity phase is skipped
// while paused, after game over, and before Start.
func (s *Sim) Update() {
	s.sched.RunDue()
	if !s.started || s.state.Paused || s.state.GameOver {
		return
	}
	s.tick++

	for _, e := range s.enemies {
		e.Update()
		if e.CheckCollision(s.player) {
			s.playerHit(e)
		}
	}

	if s.state.GameOver {
		return
	}
	if s.grid.AllCollected() {
		s.nextLevel()
	}
}

func (s *Sim) playerHit(by *Enemy) {
	if s.state.Paused || s.state.GameOver {
		return
	}
	s.state.Lives--
	s.audio.OnHit()
	s.refreshHUD()
	s.log.Add(s.tick, by.label(), "hit", "player",
		fmt.Sprintf("lives %d", s.state.Lives), float64(s.state.Lives))

	if s.state.Lives <= 0 {
		s.gameOver()
		return
	}

	s.player.X, s.player.Y = s.spawnX(), 0
	s.state.Paused = true
	s.grace = s.sched.Rearm(s.grace, s.cfg.HitGrace, func() {
		s.state.Paused = false
		s.grace = nil
	})
}

func (s *Sim) gameOver() {
	s.state.GameOver = true
	s.audio.OnMusicStop()
	s.audio.OnGameOver()
	sum := s.Summary()
	s.hud.ShowGameOver(sum)
	s.log.Add(s.tick, "--", "state", "game_over",
		fmt.Sprintf("score %d level %d", sum.Score, sum.Level), float64(sum.Score))
}

func (s *Sim) nextLevel() {
	s.state.Level++
	bonus := s.cfg.LevelBonus * s.state.Level
	s.state.Score += bonus
	s.audio.OnLevelComplete()
	s.log.Add(s.tick, "--", "level", "complete",
		fmt.Sprintf("level %d bonus %d", s.state.Level, bonus), float64(bonus))
	s.buildLevel()
	s.refreshHUD()
}

func (s *Sim) removeEnemy(e *Enemy) {
	for i, other := range s.enemies {
		if other == e {
			s.enemies = append(s.enemies[:i], s.enemies[i+1:]...)
			s.log.Add(s.tick, e.label(), "enemy", "remove", e.Kind.String(), 0)
			return
		}
	}
}

func (s *Sim) refreshHUD() {
	s.hud.ShowStatus(s.state.status())
}

func (s *Sim) inputAllowed() bool {
	return s.started && !s.state.Paused && !s.state.GameOver
}

// Move applies a directional intent. It returns false when input is gated
// or the step is off the grid.
func (s *Sim) Move(dir Direction) bool {
	if !s.inputAllowed() {
		return false
	}
	dx, dy := dir.Delta()
	return s.player.Move(dx, dy)
}

// Drill applies the drill intent.
func (s *Sim) Drill() {
	if !s.inputAllowed() {
		return
	}
	s.player.Drill()
}

// Summary is the scoreboard as of now.
func (s *Sim) Summary() Summary {
	return Summary{
		Session:  s.session,
		Level:    s.state.Level,
		Score:    s.state.Score,
		Minerals: s.state.Minerals,
		Ticks:    s.tick,
		Enemies:  s.popped,
	}
}

// State returns a copy of the scoreboard and run flags.
func (s *Sim) State() State { return s.state }

// Config returns the validated configuration the Sim was built with.
func (s *Sim) Config() Config { return s.cfg }

// Grid is the current level's field. It is replaced on every level change.
func (s *Sim) Grid() *Grid { return s.grid }

// Player is the current level's player, nil before Start.
func (s *Sim) Player() *Player { return s.player }

// Tick counts entity updates since Start; paused ticks are not counted.
func (s *Sim) Tick() int { return s.tick }

// Started reports whether Start has been called.
func (s *Sim) Started() bool { return s.started }

// Seed is the RNG seed the run was created with.
func (s *Sim) Seed() int64 { return s.seed }

// Session identifies this run in summaries and exported reports.
func (s *Sim) Session() uuid.UUID { return s.session }

// Log is the run's event log.
func (s *Sim) Log() *SimLog { return s.log }

// Scheduler runs the Sim's deferred effects.
func (s *Sim) Scheduler() *Scheduler { return s.sched }

// Enemies returns the live roster. The slice is a copy; the enemies are not.
func (s *Sim) Enemies() []*Enemy {
	out := make([]*Enemy, len(s.enemies))
	copy(out, s.enemies)
	return out
}
