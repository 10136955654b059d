package game

import "testing"

func TestCompareStatus(t *testing.T) {
	base := Status{Level: 2, Score: 900, Lives: 3}
	cases := []struct {
		name string
		next Status
		want StatusChange
	}{
		{"score only", Status{Level: 2, Score: 1000, Lives: 3}, StatusUnchanged},
		{"level up", Status{Level: 3, Score: 3900, Lives: 3}, StatusLevelUp},
		{"life lost", Status{Level: 2, Score: 900, Lives: 2}, StatusLifeLost},
		{"last life", Status{Level: 2, Score: 900, Lives: 0}, StatusUnchanged},
		{"level up with a hit", Status{Level: 3, Score: 3900, Lives: 2}, StatusLevelUp},
	}
	for _, c := range cases {
		if got := CompareStatus(base, c.next); got != c.want {
			t.Fatalf("%s: got %d, want %d", c.name, got, c.want)
		}
	}
}
