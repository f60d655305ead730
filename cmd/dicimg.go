package main

import (
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/kpfaulkner/dic-go/core"
	"github.com/kpfaulkner/dic-go/options"
)

// Reads an image (tiff or rawi), computes gradients, Gauss filters it and
// writes the smoothed result next to the input.
func main() {

	if len(os.Args) < 2 {
		fmt.Printf("usage: dicimg <image.tif|image.rawi>\n")
		os.Exit(1)
	}
	fileName := os.Args[1]

	opt := &options.ImageOptions{
		GaussFilterMaskSize:     7,
		HierarchicalParallelism: true,
		TeamSize:                64,
	}
	img, err := core.NewImageFromFile(fileName, opt)
	if err != nil {
		log.Errorf("Error reading %s: %v", fileName, err)
		os.Exit(1)
	}
	fmt.Printf("%s: %dx%d, %d pixels\n", fileName, img.Width(), img.Height(), img.NumPixels())

	start := time.Now()
	if err := img.ComputeGradients(opt.HierarchicalParallelism, opt.TeamSize); err != nil {
		log.Errorf("Error computing gradients: %v", err)
		os.Exit(1)
	}
	fmt.Printf("gradients took %d ms\n", time.Since(start).Milliseconds())

	start = time.Now()
	if err := img.GaussFilter(opt.HierarchicalParallelism, opt.TeamSize); err != nil {
		log.Errorf("Error filtering: %v", err)
		os.Exit(1)
	}
	fmt.Printf("gauss filter took %d ms\n", time.Since(start).Milliseconds())

	if err := img.WriteTIFF(fileName + ".filtered.tif"); err != nil {
		os.Exit(1)
	}
	if err := img.WriteRAWI(fileName + ".filtered.rawi"); err != nil {
		os.Exit(1)
	}
}
