package ilp

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// luFactors is a hand-rolled partial-pivoting LU factorization, the same
// Doolittle elimination gonum's own (now superseded) mat64.LU performed,
// but exposing row-level access to L and U so the Dictionary's eta solves
// can chain forward/backward substitution passes onto it directly. gonum's
// current mat.LU type hides those rows behind BLAS/LAPACK calls, which is
// the wrong shape for composing with an eta file one substitution at a
// time, so the basis keeps its own copy of the classic algorithm instead.
type luFactors struct {
	n     int
	lu    *mat.Dense // L below the diagonal (unit diagonal implied), U on and above
	pivot []int      // pivot[k] is the row swapped into position k during elimination
}

// identityLU returns the (trivial) LU factorization of the n x n identity
// matrix, the Dictionary's basis representation before any pivot occurs.
func identityLU(n int) *luFactors {
	lu := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		lu.Set(i, i, 1)
	}
	pivot := make([]int, n)
	for i := range pivot {
		pivot[i] = i
	}
	return &luFactors{n: n, lu: lu, pivot: pivot}
}

// factorize computes the partial-pivoting LU factorization of the square
// matrix a.
func factorize(a *mat.Dense) *luFactors {
	n, _ := a.Dims()
	lu := mat.DenseCopyOf(a)
	pivot := make([]int, n)

	for k := 0; k < n; k++ {
		maxRow := k
		maxVal := math.Abs(lu.At(k, k))
		for i := k + 1; i < n; i++ {
			if v := math.Abs(lu.At(i, k)); v > maxVal {
				maxVal = v
				maxRow = i
			}
		}
		pivot[k] = maxRow
		if maxRow != k {
			swapRows(lu, k, maxRow)
		}

		pv := lu.At(k, k)
		for i := k + 1; i < n; i++ {
			factor := 0.0
			if pv != 0 {
				factor = lu.At(i, k) / pv
			}
			lu.Set(i, k, factor)
			for j := k + 1; j < n; j++ {
				lu.Set(i, j, lu.At(i, j)-factor*lu.At(k, j))
			}
		}
	}

	return &luFactors{n: n, lu: lu, pivot: pivot}
}

func swapRows(m *mat.Dense, i, j int) {
	if i == j {
		return
	}
	_, n := m.Dims()
	for c := 0; c < n; c++ {
		vi, vj := m.At(i, c), m.At(j, c)
		m.Set(i, c, vj)
		m.Set(j, c, vi)
	}
}

// solve returns x such that A x = v, where A is the matrix this factors.
func (f *luFactors) solve(v *mat.VecDense) *mat.VecDense {
	n := f.n
	pb := make([]float64, n)
	for i := 0; i < n; i++ {
		pb[i] = v.AtVec(i)
	}
	for k := 0; k < n; k++ {
		pb[k], pb[f.pivot[k]] = pb[f.pivot[k]], pb[k]
	}

	y := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := pb[i]
		for j := 0; j < i; j++ {
			sum -= f.lu.At(i, j) * y[j]
		}
		y[i] = sum
	}

	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := y[i]
		for j := i + 1; j < n; j++ {
			sum -= f.lu.At(i, j) * x[j]
		}
		x[i] = sum / f.lu.At(i, i)
	}

	return mat.NewVecDense(n, x)
}

// solveTranspose returns x such that A^T x = v.
func (f *luFactors) solveTranspose(v *mat.VecDense) *mat.VecDense {
	n := f.n
	b := make([]float64, n)
	for i := 0; i < n; i++ {
		b[i] = v.AtVec(i)
	}

	// solve U^T z = b (lower triangular)
	z := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := b[i]
		for j := 0; j < i; j++ {
			sum -= f.lu.At(j, i) * z[j]
		}
		z[i] = sum / f.lu.At(i, i)
	}

	// solve L^T w = z (upper triangular, unit diagonal)
	w := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := z[i]
		for j := i + 1; j < n; j++ {
			sum -= f.lu.At(j, i) * w[j]
		}
		w[i] = sum
	}

	// undo the row permutation in reverse order
	for k := n - 1; k >= 0; k-- {
		w[k], w[f.pivot[k]] = w[f.pivot[k]], w[k]
	}

	return mat.NewVecDense(n, w)
}

// dense reconstructs the explicit matrix this factorization represents.
func (f *luFactors) dense() *mat.Dense {
	n := f.n
	l := mat.NewDense(n, n, nil)
	u := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		l.Set(i, i, 1)
		for j := 0; j < n; j++ {
			if j < i {
				l.Set(i, j, f.lu.At(i, j))
			} else {
				u.Set(i, j, f.lu.At(i, j))
			}
		}
	}
	var prod mat.Dense
	prod.Mul(l, u)

	// undo the row permutation: prod currently equals P*A, so apply the
	// inverse permutation (reverse order) to recover A.
	result := mat.DenseCopyOf(&prod)
	for k := n - 1; k >= 0; k-- {
		swapRows(result, k, f.pivot[k])
	}
	return result
}
