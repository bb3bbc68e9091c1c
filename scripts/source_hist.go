package main

import (
	"log"
	"os"
	"strconv"

	plt "github.com/phil-mansfield/pyplot"
	"github.com/phil-mansfield/table"
)

// Plots the marginal distribution of one column of a sampled-state table
// written by `pentrack-source sample`. Useful for eyeballing whether a
// source configuration produces the expected spectrum and spatial
// weighting.
//
// Usage: $ source_hist states.txt colIdx [bins]

func main() {
	if len(os.Args) != 3 && len(os.Args) != 4 {
		log.Fatalf("Usage: $ %s states_file col_idx [bins]", os.Args[0])
	}

	col, err := strconv.Atoi(os.Args[2])
	if err != nil {
		log.Fatal(err.Error())
	}
	bins := 50
	if len(os.Args) == 4 {
		if bins, err = strconv.Atoi(os.Args[3]); err != nil {
			log.Fatal(err.Error())
		}
	}

	cols, err := table.ReadTable(os.Args[1], []int{col}, nil)
	if err != nil {
		log.Fatal(err.Error())
	}
	xs := cols[0]
	if len(xs) == 0 {
		log.Fatal("empty table")
	}

	lo, hi := xs[0], xs[0]
	for _, x := range xs {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	if hi == lo {
		hi = lo + 1
	}

	counts := make([]float64, bins)
	centers := make([]float64, bins)
	dx := (hi - lo) / float64(bins)
	for i := range centers {
		centers[i] = lo + (float64(i)+0.5)*dx
	}
	for _, x := range xs {
		i := int((x - lo) / dx)
		if i == bins {
			i--
		}
		counts[i]++
	}

	plt.Reset()
	plt.Plot(centers, counts, "k", plt.LW(2))
	plt.Show()
}
