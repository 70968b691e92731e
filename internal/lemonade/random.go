package lemonade

import "math/rand/v2"

// RandomSource supplies bounded integers in [low, high).
type RandomSource interface {
	NextInt(low, high int) int
}

// RandomFunc adapts a function to RandomSource.
type RandomFunc func(low, high int) int

func (f RandomFunc) NextInt(low, high int) int { return f(low, high) }

type pcgSource struct {
	r *rand.Rand
}

// NewRandomSource returns a PCG-backed source. A zero seed draws from the
// runtime's random seed; any other seed gives a repeatable sequence.
func NewRandomSource(seed uint64) RandomSource {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &pcgSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (p *pcgSource) NextInt(low, high int) int {
	if high <= low {
		return low
	}
	return low + p.r.IntN(high-low)
}
