package eclipse

import (
	"math"

	"github.com/pkg/errors"
)

var errSingular = errors.New("eclipse: singular normal equations")

// polyfit returns least-squares coefficients c[0..degree] of the polynomial
// through (ts, vs), constant term first.
func polyfit(ts, vs []float64, degree int) ([]float64, error) {
	n := degree + 1
	if len(ts) < n || len(ts) != len(vs) {
		return nil, errors.Errorf("eclipse: %d samples cannot fit degree %d", len(ts), degree)
	}

	// Normal equations A c = b, augmented as m = [A | b].
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n+1)
	}
	for k, t := range ts {
		pow := make([]float64, 2*n)
		pow[0] = 1
		for i := 1; i < len(pow); i++ {
			pow[i] = pow[i-1] * t
		}
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				m[i][j] += pow[i+j]
			}
			m[i][n] += pow[i] * vs[k]
		}
	}

	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(m[r][col]) > math.Abs(m[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(m[pivot][col]) < 1e-15 {
			return nil, errSingular
		}
		m[col], m[pivot] = m[pivot], m[col]
		for r := col + 1; r < n; r++ {
			f := m[r][col] / m[col][col]
			for c := col; c <= n; c++ {
				m[r][c] -= f * m[col][c]
			}
		}
	}

	c := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		s := m[i][n]
		for j := i + 1; j < n; j++ {
			s -= m[i][j] * c[j]
		}
		c[i] = s / m[i][i]
	}
	return c, nil
}
