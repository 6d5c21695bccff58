package series

import (
	"math/rand"
	"time"
)

// Volume bounds for generated readings: uniform in [VolumeMin, VolumeMax).
const (
	VolumeMin = 50
	VolumeMax = 500
)

// Generator produces synthetic dev and prod volume series.
//
// Randomness comes from an explicit seeded source rather than the package
// global, so generation is deterministic for a given seed and independent
// generators never interfere with each other.
type Generator struct {
	labels   []string
	presence float64
	rng      *rand.Rand
}

// NewGenerator creates a generator that labels each reading with probability
// presence, choosing uniformly from labels when it does. presence is clamped
// into [0, 1].
func NewGenerator(labels []string, presence float64, seed int64) *Generator {
	if presence < 0 {
		presence = 0
	}
	if presence > 1 {
		presence = 1
	}
	return &Generator{
		labels:   labels,
		presence: presence,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// Generate produces the dev and prod series: count readings each, starting
// at start and spaced by cadence. Volumes are drawn uniformly from
// [VolumeMin, VolumeMax) and each reading independently either carries a
// label or is left unlabeled. The two series share timestamps but draw
// volumes and labels independently.
func (g *Generator) Generate(count int, start time.Time, cadence time.Duration) (Series, Series) {
	dev := g.series("dev", count, start, cadence)
	prod := g.series("prod", count, start, cadence)
	return dev, prod
}

func (g *Generator) series(name string, count int, start time.Time, cadence time.Duration) Series {
	readings := make([]Reading, count)
	for i := range readings {
		r := Reading{
			Timestamp: start.Add(time.Duration(i) * cadence),
			Volume:    VolumeMin + g.rng.Intn(VolumeMax-VolumeMin),
		}
		if g.rng.Float64() < g.presence && len(g.labels) > 0 {
			r.Component = g.labels[g.rng.Intn(len(g.labels))]
		}
		readings[i] = r
	}
	return Series{Name: name, Readings: readings}
}
