package kmeans_test

import (
	"fmt"
	"math/rand"

	"github.com/nicolas-legroux/tcgaExplorer/kmeans"
)

func Example() {
	values := []float64{0, 0, 1, 1, 8, 8, 8}
	assign := make([]int, len(values))

	km, err := kmeans.New(values, assign, 2, 10, kmeans.Scalar{},
		kmeans.WithRand(rand.New(rand.NewSource(1))))
	if err != nil {
		panic(err)
	}

	res, err := km.Compute()
	if err != nil {
		panic(err)
	}

	fmt.Println(res.Centroids, assign)
	// Output: [0.5 8] [0 0 0 0 1 1 1]
}
