package stats

import (
	"fmt"

	"github.com/nicolas-legroux/tcgaExplorer/matrix"
)

// Class is a named group of sample indices.
type Class struct {
	Name    string
	Members []int
}

// Summary is the mean and standard deviation of a set of matrix entries.
type Summary struct {
	Mean   float64
	StdDev float64
	Count  int
}

// ClassTable holds a Summary for every pair of classes. It is symmetric.
type ClassTable struct {
	Classes []Class
	Cells   [][]Summary
}

// ClassStats summarises the entries of m between the members of every pair
// of classes. Pairs of a sample with itself are skipped, so the diagonal of
// the table describes within-class spread.
func ClassStats(m *matrix.Matrix, classes []Class) (*ClassTable, error) {
	n := m.N()
	for _, c := range classes {
		for _, i := range c.Members {
			if i < 0 || i >= n {
				return nil, fmt.Errorf("stats: class %q: %w: index %d, n=%d", c.Name, matrix.ErrOutOfRange, i, n)
			}
		}
	}

	cells := make([][]Summary, len(classes))
	for i := range cells {
		cells[i] = make([]Summary, len(classes))
	}

	var values []float64
	for a := range classes {
		for b := a; b < len(classes); b++ {
			values = values[:0]
			for _, i := range classes[a].Members {
				for _, j := range classes[b].Members {
					if i != j {
						values = append(values, m.At(i, j))
					}
				}
			}
			s := Summary{Mean: Mean(values), StdDev: StdDev(values), Count: len(values)}
			cells[a][b] = s
			cells[b][a] = s
		}
	}
	return &ClassTable{Classes: classes, Cells: cells}, nil
}

// ClusterSizes counts the members of each compacted cluster label 0..k-1.
// Negative labels are ignored.
func ClusterSizes(labels []int) []int {
	k := 0
	for _, l := range labels {
		if l+1 > k {
			k = l + 1
		}
	}
	sizes := make([]int, k)
	for _, l := range labels {
		if l >= 0 {
			sizes[l]++
		}
	}
	return sizes
}
