package core

import (
	"fmt"

	"github.com/kpfaulkner/dic-go/image"
	"github.com/kpfaulkner/dic-go/options"
	"github.com/kpfaulkner/dic-go/util"
)

// HasGradients returns true once ComputeGradients has completed.
func (im *Image) HasGradients() bool {
	return im.hasGradients
}

// GradX returns the x gradient at local coordinates (x, y). As with Value
// the internal storage is (row, column) so the indices are switched.
// Contract: HasGradients() must be true.
func (im *Image) GradX(x int, y int) float64 {
	im.checkGradients()
	im.checkCoords(x, y)
	return im.gradX.Get(y, x)
}

// GradY returns the y gradient at local coordinates (x, y).
// Contract: HasGradients() must be true.
func (im *Image) GradY(x int, y int) float64 {
	im.checkGradients()
	im.checkCoords(x, y)
	return im.gradY.Get(y, x)
}

func (im *Image) checkGradients() {
	if !im.hasGradients {
		panic("dic: gradients read before ComputeGradients has completed")
	}
}

// ComputeGradients populates the gradient buffers from the intensities
// using a finite difference stencil along each axis. Interior pixels get
// the 4th order 5 point stencil, pixels one in from an edge drop to the
// 3 point central difference, edge pixels use one-sided differences.
//
// useHierarchical selects the team based execution strategy with teamSize
// rows per team, otherwise work is split flat across pixels. Both
// strategies share the per-pixel formula and produce identical results.
// The call is synchronous, it returns once every pixel has been written
// and pulled back to the host view.
func (im *Image) ComputeGradients(useHierarchical bool, teamSize int) error {

	if im.opts.GradientMethod != options.FiniteDifference {
		return fmt.Errorf("gradient method %d is not supported: %w", im.opts.GradientMethod, ErrPrecondition)
	}
	if useHierarchical && teamSize < 1 {
		return fmt.Errorf("team size %d must be positive: %w", teamSize, ErrConfiguration)
	}

	if im.gradX == nil {
		im.gradX = image.NewDualView(im.width, im.height)
		im.gradY = image.NewDualView(im.width, im.height)
	}

	im.intensities.Push()
	src := im.intensities.Device()
	gx := im.gradX.Device()
	gy := im.gradY.Device()

	if useHierarchical {
		im.gradientsHierarchical(gx, gy, teamSize)
	} else {
		at := func(x, y int) float64 { return src[y*im.width+x] }
		runFlat(im.NumPixels(), im.opts.MaxGoroutines, func(start, end int) {
			for p := start; p < end; p++ {
				y := p / im.width
				x := p % im.width
				gx[p], gy[p] = im.gradientsAt(x, y, at)
			}
		})
	}

	im.gradX.Pull()
	im.gradY.Pull()
	im.hasGradients = true
	return nil
}

// gradientsHierarchical runs the stencil team by team. Each team copies
// its row band plus a two row halo into pooled scratch first, the cached
// neighbourhood the hierarchical strategy exists for.
func (im *Image) gradientsHierarchical(gx []float64, gy []float64, teamSize int) {

	runTeams(im.height, teamSize, im.opts.MaxGoroutines, func(band rowBand) {
		haloTop := util.Max(band.startY-2, 0)
		haloBottom := util.Min(band.endY+2, im.height)
		scratch := util.GetScratchBand(haloBottom-haloTop, im.width)
		for r := haloTop; r < haloBottom; r++ {
			copy(scratch[r-haloTop], im.intensities.DeviceRow(r))
		}
		at := func(x, y int) float64 { return scratch[y-haloTop][x] }

		for y := band.startY; y < band.endY; y++ {
			for x := 0; x < im.width; x++ {
				gx[y*im.width+x], gy[y*im.width+x] = im.gradientsAt(x, y, at)
			}
		}
		util.ReturnScratchBand(scratch)
	})
}

// gradientsAt applies the stencil at one pixel. Both execution strategies
// funnel through here so they cannot drift apart numerically.
func (im *Image) gradientsAt(x int, y int, at func(x int, y int) float64) (float64, float64) {

	var gradX float64
	switch {
	case im.width == 1:
		gradX = 0
	case x >= 2 && x < im.width-2:
		gradX = im.gradC1*(at(x+1, y)-at(x-1, y)) + im.gradC2*(at(x+2, y)-at(x-2, y))
	case x == 0:
		gradX = at(1, y) - at(0, y)
	case x == im.width-1:
		gradX = at(x, y) - at(x-1, y)
	default:
		gradX = 0.5 * (at(x+1, y) - at(x-1, y))
	}

	var gradY float64
	switch {
	case im.height == 1:
		gradY = 0
	case y >= 2 && y < im.height-2:
		gradY = im.gradC1*(at(x, y+1)-at(x, y-1)) + im.gradC2*(at(x, y+2)-at(x, y-2))
	case y == 0:
		gradY = at(x, 1) - at(x, 0)
	case y == im.height-1:
		gradY = at(x, y) - at(x, y-1)
	default:
		gradY = 0.5 * (at(x, y+1) - at(x, y-1))
	}

	return gradX, gradY
}
