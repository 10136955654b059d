package game

// State is the per-run scoreboard. It is owned by the Sim; entities request
// mutations through their Sim handle.
type State struct {
	Level    int
	Score    int
	Lives    int
	Minerals Inventory
	Paused   bool
	GameOver bool
}

func newState(lives int) State {
	return State{Level: 1, Lives: lives}
}

func (st State) status() Status {
	return Status{Level: st.Level, Score: st.Score, Lives: st.Lives}
}
