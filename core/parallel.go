package core

import (
	"sync"

	"github.com/kpfaulkner/dic-go/util"
)

// Both kernels are data parallel with disjoint destinations, so the only
// scheduling concern is dividing work. Two strategies are offered: a flat
// split of pixel indices across workers, and a hierarchical split into row
// bands ("teams") that cache their neighbourhood before computing.

// rowBand is one team's slice of rows, endY exclusive.
type rowBand struct {
	startY int
	endY   int
}

// runFlat divides [0, numItems) into contiguous ranges, one per worker,
// and blocks until all workers finish.
func runFlat(numItems int, numWorkers int, work func(start int, end int)) {

	if numWorkers < 1 {
		numWorkers = 1
	}
	itemsPerWorker := (numItems + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		start := w * itemsPerWorker
		end := util.Min(start+itemsPerWorker, numItems)
		if start >= numItems {
			break
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			work(s, e)
		}(start, end)
	}
	wg.Wait()
}

// runTeams queues row bands of teamSize rows and lets numWorkers team
// goroutines drain them. Blocks until every band is done.
func runTeams(height int, teamSize int, numWorkers int, work func(band rowBand)) {

	numBands := (height + teamSize - 1) / teamSize
	bandChan := make(chan rowBand, numBands)
	for b := 0; b < numBands; b++ {
		startY := b * teamSize
		bandChan <- rowBand{startY: startY, endY: util.Min(startY+teamSize, height)}
	}
	close(bandChan)

	if numWorkers < 1 {
		numWorkers = 1
	}
	wg := sync.WaitGroup{}
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for band := range bandChan {
				work(band)
			}
		}()
	}
	wg.Wait()
}
