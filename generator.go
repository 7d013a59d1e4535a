package ilp

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Generate produces a random Problem with rows constraints over cols
// structural variables, reproducible for a fixed seed: A entries are
// sampled uniformly from [-10, 10) then zeroed with probability 2/3 per
// entry, b entries from [1, 10), and c entries from [-10, 10) except for
// at least ceil(cols/3) entries forced into [0, 10), shuffled among the
// rest so the forced-positive entries don't all land at the front.
func Generate(rows, cols int, seed int64) Problem {
	rnd := rand.New(rand.NewSource(seed))

	A := generateA(rnd, rows, cols)
	b := generateB(rnd, rows)
	c := generateC(rnd, cols)

	base := make([]int, rows)
	for i := range base {
		base[i] = cols + i
	}
	nonBase := make([]int, cols)
	for i := range nonBase {
		nonBase[i] = i
	}

	return Problem{
		A:       A,
		b:       b,
		c:       c,
		z:       0,
		base:    base,
		nonBase: nonBase,
		dual:    false,
	}
}

func generateA(rnd *rand.Rand, rows, cols int) *mat.Dense {
	A := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if rnd.Intn(3) != 0 {
				continue
			}
			A.Set(i, j, uniform(rnd, -10, 10))
		}
	}
	return A
}

func generateB(rnd *rand.Rand, rows int) *mat.VecDense {
	b := mat.NewVecDense(rows, nil)
	for i := 0; i < rows; i++ {
		b.SetVec(i, uniform(rnd, 1, 10))
	}
	return b
}

func generateC(rnd *rand.Rand, cols int) *mat.VecDense {
	c := mat.NewVecDense(cols, nil)
	for j := 0; j < cols; j++ {
		c.SetVec(j, uniform(rnd, -10, 10))
	}

	forced := int(math.Ceil(float64(cols) / 3))
	perm := rnd.Perm(cols)
	for k := 0; k < forced && k < cols; k++ {
		c.SetVec(perm[k], uniform(rnd, 0, 10))
	}

	return c
}

// uniform draws a float64 uniformly from [lo, hi).
func uniform(rnd *rand.Rand, lo, hi float64) float64 {
	return lo + rnd.Float64()*(hi-lo)
}
