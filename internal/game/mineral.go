package game

import "math/rand"

// MineralKind identifies a collectible ore.
type MineralKind uint8

const (
	Copper MineralKind = iota
	Gold
	RareEarth
	mineralKindCount // sentinel
)

func (k MineralKind) String() string {
	switch k {
	case Copper:
		return "COPPER"
	case Gold:
		return "GOLD"
	case RareEarth:
		return "RARE_EARTH"
	default:
		return "unknown"
	}
}

// MineralSpec is one row of the mineral table.
type MineralSpec struct {
	Kind        MineralKind
	Name        string // message id, translated through the locale catalogue
	Icon        string
	Points      int
	Probability float64 // per-cell chance, cumulative with earlier rows
}

// DefaultMinerals returns the table in sampling order. The probabilities
// intentionally leave most cells empty.
func DefaultMinerals() []MineralSpec {
	return []MineralSpec{
		{Kind: Copper, Name: "Copper", Icon: "🟤", Points: 100, Probability: 0.15},
		{Kind: Gold, Name: "Gold", Icon: "🟡", Points: 500, Probability: 0.08},
		{Kind: RareEarth, Name: "Rare Earth", Icon: "💎", Points: 2000, Probability: 0.02},
	}
}

// Mineral is a placed ore. Values handed out by Grid are copies.
type Mineral struct {
	X, Y        int
	Kind        MineralKind
	Name        string
	Icon        string
	Points      int
	Probability float64
	Collected   bool
}

func newMineral(x, y int, spec MineralSpec) Mineral {
	return Mineral{
		X:           x,
		Y:           y,
		Kind:        spec.Kind,
		Name:        spec.Name,
		Icon:        spec.Icon,
		Points:      spec.Points,
		Probability: spec.Probability,
	}
}

// sampleMineral draws at most one mineral kind for a cell using cumulative
// probability over the ordered table.
func sampleMineral(rng *rand.Rand, table []MineralSpec) (MineralSpec, bool) {
	r := rng.Float64()
	cumulative := 0.0
	for _, spec := range table {
		cumulative += spec.Probability
		if r < cumulative {
			return spec, true
		}
	}
	return MineralSpec{}, false
}

// Inventory counts collected minerals per kind.
type Inventory struct {
	Copper    int
	Gold      int
	RareEarth int
}

// add increments the counter matching kind.
func (inv *Inventory) add(k MineralKind) {
	switch k {
	case Copper:
		inv.Copper++
	case Gold:
		inv.Gold++
	case RareEarth:
		inv.RareEarth++
	}
}

// Count returns the counter for kind.
func (inv Inventory) Count(k MineralKind) int {
	switch k {
	case Copper:
		return inv.Copper
	case Gold:
		return inv.Gold
	case RareEarth:
		return inv.RareEarth
	default:
		return 0
	}
}

// Total is the number of minerals collected across kinds.
func (inv Inventory) Total() int {
	return inv.Copper + inv.Gold + inv.RareEarth
}
