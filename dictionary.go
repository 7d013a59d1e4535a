package ilp

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	// maxError is the pivot-optimality tolerance: a reduced cost below
	// this is treated as non-positive.
	maxError = 1e-10

	// maxEtaFileSize bounds the eta file before a refactor is forced.
	maxEtaFileSize = 30
)

// pivotError is raised internally by tryPivot and always caught by pivot;
// it never escapes the Dictionary.
type pivotError struct {
	msg string
}

func (e *pivotError) Error() string { return e.msg }

var (
	errDictionaryFinal = &pivotError{"dictionary is final"}
	errUnbounded       = &pivotError{"problem is unbounded"}
)

// etaColumn is one eta matrix in the basis's eta file: the identity matrix
// with column col replaced by values.
type etaColumn struct {
	col    int
	values *mat.VecDense
}

// forwardSolve returns w such that E w = v, exploiting that E differs from
// the identity in exactly one column.
func (e etaColumn) forwardSolve(v *mat.VecDense) *mat.VecDense {
	n := v.Len()
	w := mat.NewVecDense(n, nil)
	wp := v.AtVec(e.col) / e.values.AtVec(e.col)
	for i := 0; i < n; i++ {
		if i == e.col {
			w.SetVec(i, wp)
			continue
		}
		w.SetVec(i, v.AtVec(i)-e.values.AtVec(i)*wp)
	}
	return w
}

// transposeSolve returns w such that E^T w = v.
func (e etaColumn) transposeSolve(v *mat.VecDense) *mat.VecDense {
	n := v.Len()
	w := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		if i != e.col {
			w.SetVec(i, v.AtVec(i))
		}
	}
	sum := 0.0
	for j := 0; j < n; j++ {
		var wj float64
		if j == e.col {
			continue
		}
		wj = v.AtVec(j)
		sum += e.values.AtVec(j) * wj
	}
	wp := (v.AtVec(e.col) - sum) / e.values.AtVec(e.col)
	w.SetVec(e.col, wp)
	return w
}

// dense returns the explicit m x m matrix this eta column represents.
func (e etaColumn) dense(m int) *mat.Dense {
	out := mat.NewDense(m, m, nil)
	for i := 0; i < m; i++ {
		out.Set(i, i, 1)
	}
	for i := 0; i < m; i++ {
		out.Set(i, e.col, e.values.AtVec(i))
	}
	return out
}

// basis is the Dictionary's representation of the current basis matrix B:
// a pair of triangular factors (L, U) for some past state of B, followed by
// an ordered eta file such that B = L*U*E1*...*Ek.
type basis struct {
	m   int
	lu  *luFactors
	eta []etaColumn
}

func newBasis(m int) *basis {
	return &basis{m: m, lu: identityLU(m)}
}

// forwardSolve returns y such that B y = v.
func (bs *basis) forwardSolve(v *mat.VecDense) *mat.VecDense {
	y := bs.lu.solve(v)
	for _, e := range bs.eta {
		y = e.forwardSolve(y)
	}
	return y
}

// transposeSolve returns y such that B^T y = v.
func (bs *basis) transposeSolve(v *mat.VecDense) *mat.VecDense {
	y := v
	for i := len(bs.eta) - 1; i >= 0; i-- {
		y = bs.eta[i].transposeSolve(y)
	}
	return bs.lu.solveTranspose(y)
}

// appendEta records a pivot's eta update, refactoring once the file would
// exceed maxEtaFileSize.
func (bs *basis) appendEta(col int, values *mat.VecDense) {
	bs.eta = append(bs.eta, etaColumn{col: col, values: values})
	if len(bs.eta) > maxEtaFileSize {
		bs.refactor()
	}
}

// refactor recomputes the explicit basis matrix B = L*U*E1*...*Ek and
// LU-factors it afresh, emptying the eta file.
func (bs *basis) refactor() {
	r := bs.lu.dense()
	for _, e := range bs.eta {
		var next mat.Dense
		next.Mul(r, e.dense(bs.m))
		r = &next
	}
	bs.lu = factorize(r)
	bs.eta = nil
}

// dictionaryState records whether a Dictionary can still be pivoted.
type dictionaryState int

const (
	pivotable dictionaryState = iota
	final
	unbounded
)

// Dictionary is the revised-simplex engine: a canonical-form LP with an
// explicit basis, advanced one pivot at a time.
type Dictionary struct {
	m, n, x int

	// A and c are indexed by global variable id (0..x), fixed at
	// construction and never reshuffled; only base/nonBase mutate.
	A *mat.Dense
	b *mat.VecDense
	c *mat.VecDense
	z float64

	base    []int
	nonBase []int
	dual    bool

	basis *basis
	state dictionaryState
}

// newDictionary builds the Dictionary for a Problem: the extended matrix
// [A | I_m], with structural columns scattered to their nonBase global id
// and slack columns scattered to their base global id, plus an identity
// basis representation.
func newDictionary(p Problem) *Dictionary {
	m, n := p.Dims()
	x := m + n

	A := mat.NewDense(m, x, nil)
	for pos, gid := range p.nonBase {
		for row := 0; row < m; row++ {
			A.Set(row, gid, p.A.At(row, pos))
		}
	}
	for pos, gid := range p.base {
		A.Set(pos, gid, 1)
	}

	c := mat.NewVecDense(x, nil)
	for pos, gid := range p.nonBase {
		c.SetVec(gid, p.c.AtVec(pos))
	}

	return &Dictionary{
		m:       m,
		n:       n,
		x:       x,
		A:       A,
		b:       copyVec(p.b),
		c:       c,
		z:       p.z,
		base:    append([]int(nil), p.base...),
		nonBase: append([]int(nil), p.nonBase...),
		dual:    p.dual,
		basis:   newBasis(m),
		state:   pivotable,
	}
}

// canPivot reports whether pivot may still advance this Dictionary.
func (d *Dictionary) canPivot() bool {
	return d.state == pivotable
}

// pivot attempts one simplex pivot, silently doing nothing if the
// Dictionary is already final or unbounded.
func (d *Dictionary) pivot() {
	if err := d.tryPivot(); err != nil {
		var pe *pivotError
		if errors.As(err, &pe) {
			return
		}
		panic(err)
	}
}

func (d *Dictionary) tryPivot() error {
	chat := d.objectiveRow()

	enterIndex := -1
	best := maxError
	for j := 0; j < d.n; j++ {
		if chat.AtVec(j) > best {
			best = chat.AtVec(j)
			enterIndex = j
		}
	}
	if enterIndex == -1 {
		d.state = final
		return errDictionaryFinal
	}

	enterGID := d.nonBase[enterIndex]
	enterCol := d.column(enterGID)
	neg := mat.NewVecDense(d.m, nil)
	neg.ScaleVec(-1, enterCol)
	dcol := d.basis.forwardSolve(neg)

	bhat := d.basis.forwardSolve(d.b)

	leaveIndex := -1
	leaveLimit := math.Inf(1)
	for i := 0; i < d.m; i++ {
		if dcol.AtVec(i) >= 0 {
			continue
		}
		limit := -bhat.AtVec(i) / dcol.AtVec(i)
		if leaveIndex == -1 ||
			limit < leaveLimit-maxError ||
			(limit <= leaveLimit+maxError && d.base[i] < d.base[leaveIndex]) {
			leaveIndex = i
			leaveLimit = limit
		}
	}
	if leaveIndex == -1 {
		d.state = unbounded
		return errUnbounded
	}

	d.base[leaveIndex], d.nonBase[enterIndex] = d.nonBase[enterIndex], d.base[leaveIndex]

	eta := mat.NewVecDense(d.m, nil)
	eta.ScaleVec(-1, dcol)
	d.basis.appendEta(leaveIndex, eta)

	return nil
}

// column returns A's column for global variable id gid.
func (d *Dictionary) column(gid int) *mat.VecDense {
	col := mat.NewVecDense(d.m, nil)
	for i := 0; i < d.m; i++ {
		col.SetVec(i, d.A.At(i, gid))
	}
	return col
}

// objectiveRow computes the reduced-cost row chat = cN - pi*AN, where
// B^T pi = cB.
func (d *Dictionary) objectiveRow() *mat.VecDense {
	cb := mat.NewVecDense(d.m, nil)
	for i, gid := range d.base {
		cb.SetVec(i, d.c.AtVec(gid))
	}
	pi := d.basis.transposeSolve(cb)

	chat := mat.NewVecDense(d.n, nil)
	for j, gid := range d.nonBase {
		col := d.column(gid)
		chat.SetVec(j, d.c.AtVec(gid)-mat.Dot(pi, col))
	}
	return chat
}

func (d *Dictionary) objectiveValue() float64 {
	cb := mat.NewVecDense(d.m, nil)
	for i, gid := range d.base {
		cb.SetVec(i, d.c.AtVec(gid))
	}
	pi := d.basis.transposeSolve(cb)
	return mat.Dot(pi, d.b) + d.z
}

// getSolution returns the objective value and decision-variable vector of
// the current (assumed final) basis.
func (d *Dictionary) getSolution() Solution {
	bhat := d.basis.forwardSolve(d.b)
	vars := mat.NewVecDense(d.x, nil)
	for i, gid := range d.base {
		vars.SetVec(gid, bhat.AtVec(i))
	}
	return Solution{
		Value: d.objectiveValue(),
		Vars:  vars.SliceVec(0, d.n).(*mat.VecDense),
	}
}

// toProblem exports the current dictionary state as a Problem in dictionary
// form, so the Brancher can augment it with a new constraint row.
func (d *Dictionary) toProblem() Problem {
	bhat := d.basis.forwardSolve(d.b)
	chat := d.objectiveRow()

	A := mat.NewDense(d.m, d.n, nil)
	for j, gid := range d.nonBase {
		col := d.column(gid)
		solved := d.basis.forwardSolve(col)
		for i := 0; i < d.m; i++ {
			A.Set(i, j, solved.AtVec(i))
		}
	}

	return Problem{
		A:       A,
		b:       copyVec(bhat),
		c:       copyVec(chat),
		z:       d.objectiveValue(),
		base:    append([]int(nil), d.base...),
		nonBase: append([]int(nil), d.nonBase...),
		dual:    d.dual,
	}
}
