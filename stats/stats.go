package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Mean returns the arithmetic mean of x, or NaN when x is empty.
func Mean(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	return stat.Mean(x, nil)
}

// StdDev returns the unbiased sample standard deviation of x. It is NaN for
// fewer than two values.
func StdDev(x []float64) float64 {
	if len(x) < 2 {
		return math.NaN()
	}
	return stat.StdDev(x, nil)
}

// Ranks returns the 1-based rank of every value in x. Tied values share the
// mean of the ranks they span.
func Ranks(x []float64) []float64 {
	order := make([]int, len(x))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return x[order[a]] < x[order[b]]
	})

	ranks := make([]float64, len(x))
	for lo := 0; lo < len(order); {
		hi := lo + 1
		for hi < len(order) && x[order[hi]] == x[order[lo]] {
			hi++
		}
		// Positions lo..hi-1 hold ranks lo+1..hi.
		r := float64(lo+1+hi) / 2
		for p := lo; p < hi; p++ {
			ranks[order[p]] = r
		}
		lo = hi
	}
	return ranks
}

// Quantile returns the empirical q-quantile of x. x is not modified.
func Quantile(x []float64, q float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)
	return stat.Quantile(q, stat.Empirical, sorted, nil)
}

// TopColumns returns the indices of the n columns of rows with the largest
// sums, largest first. Ties keep column order. Rows must share a length.
func TopColumns(rows [][]float64, n int) []int {
	if len(rows) == 0 || n <= 0 {
		return nil
	}
	sums := make([]float64, len(rows[0]))
	for _, r := range rows {
		for j, v := range r {
			sums[j] += v
		}
	}
	idx := make([]int, len(sums))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return sums[idx[a]] > sums[idx[b]]
	})
	if n > len(idx) {
		n = len(idx)
	}
	return idx[:n]
}
