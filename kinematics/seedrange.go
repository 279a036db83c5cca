package kinematics

import "math"

// SeedRange returns the values of an arithmetic progression with difference
// step which passes through seed, restricted to [st, en]. seed itself may be
// outside of [st, en].
func SeedRange(st, en, seed, step float64) []float64 {
	if !(step > 0) || en < st {
		return nil
	}
	first := seed - math.Floor((seed-st)/step)*step
	n := int(math.Floor((en-first)/step)) + 1
	if n <= 0 {
		return nil
	}
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = first + step*float64(i)
	}
	return vals
}
