package main

import (
	"fmt"
	"math"
	"time"

	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"

	"github.com/kpfaulkner/dic-go/core"
	"github.com/kpfaulkner/dic-go/options"
)

// Profiling harness for the two kernels, flat vs hierarchical over a
// synthetic image.
func main() {

	//p := profile.Start(profile.MemProfileHeap, profile.ProfilePath("."))
	p := profile.Start(profile.CPUProfile, profile.ProfilePath("."))
	defer p.Stop()

	const width = 4096
	const height = 4096
	data := make([]float64, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			data[y*width+x] = 100.0*math.Sin(float64(x)/8.0) + 100.0*math.Cos(float64(y)/8.0)
		}
	}

	img, err := core.NewImageFromSharedArray(data, width, height, &options.ImageOptions{GaussFilterMaskSize: 13})
	if err != nil {
		log.Fatalf("boomage %v", err)
	}

	for _, hierarchical := range []bool{false, true} {
		start := time.Now()
		if err := img.ComputeGradients(hierarchical, options.DefaultTeamSize); err != nil {
			log.Errorf("Error computing gradients: %v", err)
			return
		}
		fmt.Printf("gradients hierarchical=%v took %d ms\n", hierarchical, time.Since(start).Milliseconds())

		start = time.Now()
		if err := img.GaussFilter(hierarchical, options.DefaultTeamSize); err != nil {
			log.Errorf("Error filtering: %v", err)
			return
		}
		fmt.Printf("gauss filter hierarchical=%v took %d ms\n", hierarchical, time.Since(start).Milliseconds())
	}
}
