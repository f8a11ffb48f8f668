// Block transforms.
//
// Every transform is expressed as an orthonormal basis matrix A so that the
// forward transform of an NxN block X is Θ = A·X·Aᵗ and the inverse is
// X = Aᵗ·Θ·A. Basis matrices depend only on (kind, size) and are cached.
//
// Transforms tile the plane with non-overlapping NxN windows. A trailing
// window smaller than NxN (plane dimension not divisible by the block size)
// is copied through unmodified in both directions.
package watermarklab

import (
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/mat"
)

type basisKey struct {
	kind TransformKind
	size int
}

var (
	basisMu    sync.Mutex
	basisCache = map[basisKey]*mat.Dense{}
)

// transformBasis returns the cached NxN basis matrix for the given kind,
// building it on first use.
func transformBasis(kind TransformKind, n int) (*mat.Dense, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBlockSize, n)
	}
	basisMu.Lock()
	defer basisMu.Unlock()
	key := basisKey{kind, n}
	if a, ok := basisCache[key]; ok {
		return a, nil
	}
	var (
		a   *mat.Dense
		err error
	)
	switch kind {
	case TransformDCT:
		a = dctBasis(n)
	case TransformWalshHadamard:
		a, err = walshHadamardBasis(n)
	case TransformHaar:
		a, err = haarBasis(n)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedTransform, kind)
	}
	if err != nil {
		return nil, err
	}
	basisCache[key] = a
	return a, nil
}

// dctBasis builds the NxN DCT-II basis: row 0 is the constant sqrt(1/N),
// row i>0 holds sqrt(2/N)·cos((2j+1)·i·π/2N).
func dctBasis(n int) *mat.Dense {
	a := mat.NewDense(n, n, nil)
	c0 := math.Sqrt(1 / float64(n))
	for j := 0; j < n; j++ {
		a.Set(0, j, c0)
	}
	ci := math.Sqrt(2 / float64(n))
	for i := 1; i < n; i++ {
		for j := 0; j < n; j++ {
			a.Set(i, j, ci*math.Cos((2*float64(j)+1)*float64(i)*math.Pi/(2*float64(n))))
		}
	}
	return a
}

// walshHadamardBasis builds the NxN Hadamard matrix by the recursive
// doubling construction H(2n) = [[H(n),H(n)],[H(n),-H(n)]], normalized by
// 1/sqrt(N). N must be a power of two.
func walshHadamardBasis(n int) (*mat.Dense, error) {
	if !isPowerOfTwo(n) {
		return nil, fmt.Errorf("%w: WHT needs a power of two, got %d", ErrInvalidBlockSize, n)
	}
	h := [][]float64{{1}}
	for size := 1; size < n; size *= 2 {
		next := make([][]float64, size*2)
		for i := range next {
			next[i] = make([]float64, size*2)
		}
		for i := 0; i < size; i++ {
			for j := 0; j < size; j++ {
				next[i][j] = h[i][j]
				next[i][j+size] = h[i][j]
				next[i+size][j] = h[i][j]
				next[i+size][j+size] = -h[i][j]
			}
		}
		h = next
	}
	a := mat.NewDense(n, n, nil)
	norm := 1 / math.Sqrt(float64(n))
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a.Set(i, j, h[i][j]*norm)
		}
	}
	return a, nil
}

// haarBasis builds the NxN orthonormal Haar matrix by recursive doubling:
// the top half of H(2n) averages adjacent pairs through H(n), the bottom
// half holds the paired differences. N must be a power of two.
func haarBasis(n int) (*mat.Dense, error) {
	if !isPowerOfTwo(n) {
		return nil, fmt.Errorf("%w: Haar needs a power of two, got %d", ErrInvalidBlockSize, n)
	}
	h := [][]float64{{1}}
	inv := 1 / math.Sqrt2
	for size := 1; size < n; size *= 2 {
		next := make([][]float64, size*2)
		for i := range next {
			next[i] = make([]float64, size*2)
		}
		for i := 0; i < size; i++ {
			for j := 0; j < size; j++ {
				// Scaling rows: H(n) ⊗ [1,1] / sqrt(2).
				next[i][2*j] = h[i][j] * inv
				next[i][2*j+1] = h[i][j] * inv
			}
			// Detail rows: I(n) ⊗ [1,-1] / sqrt(2).
			next[size+i][2*i] = inv
			next[size+i][2*i+1] = -inv
		}
		h = next
	}
	a := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a.Set(i, j, h[i][j])
		}
	}
	return a, nil
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// forwardTransformPlane applies Θ = A·X·Aᵗ to every complete NxN window.
func forwardTransformPlane(m *mat.Dense, kind TransformKind, n int) (*mat.Dense, error) {
	a, err := transformBasis(kind, n)
	if err != nil {
		return nil, err
	}
	return applyBlockwise(m, n, func(block *mat.Dense) *mat.Dense {
		var theta mat.Dense
		theta.Product(a, block, a.T())
		return &theta
	}), nil
}

// inverseTransformPlane applies X = Aᵗ·Θ·A to every complete NxN window.
func inverseTransformPlane(m *mat.Dense, kind TransformKind, n int) (*mat.Dense, error) {
	a, err := transformBasis(kind, n)
	if err != nil {
		return nil, err
	}
	return applyBlockwise(m, n, func(block *mat.Dense) *mat.Dense {
		var x mat.Dense
		x.Product(a.T(), block, a)
		return &x
	}), nil
}

// applyBlockwise runs f over every complete NxN window of m and writes the
// result into a copy of m. Trailing partial windows are left as copied.
func applyBlockwise(m *mat.Dense, n int, f func(*mat.Dense) *mat.Dense) *mat.Dense {
	rows, cols := m.Dims()
	out := clonePlane(m)
	block := mat.NewDense(n, n, nil)
	for r0 := 0; r0+n <= rows; r0 += n {
		for c0 := 0; c0+n <= cols; c0 += n {
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					block.Set(i, j, m.At(r0+i, c0+j))
				}
			}
			res := f(block)
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					out.Set(r0+i, c0+j, res.At(i, j))
				}
			}
		}
	}
	return out
}
