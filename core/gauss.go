package core

import (
	"fmt"
	"math"

	"github.com/kpfaulkner/dic-go/util"
)

// MaxGaussFilterMaskSize is the hard upper bound on the filter window so
// the kernel memory footprint stays fixed.
const MaxGaussFilterMaskSize = 13

// computeGaussFilterCoeffs fills the coefficient window for the configured
// mask size and normalizes it to sum to 1, which keeps a constant image
// invariant under filtering.
func (im *Image) computeGaussFilterCoeffs(maskSize int) error {

	if maskSize <= 0 || maskSize%2 == 0 || maskSize > MaxGaussFilterMaskSize {
		return fmt.Errorf("gauss filter mask size %d must be odd and between 1 and %d: %w",
			maskSize, MaxGaussFilterMaskSize, ErrConfiguration)
	}
	im.gaussFilterMaskSize = maskSize
	im.gaussFilterHalfMask = (maskSize - 1) / 2

	// the mask spans +-3 sigma
	sigma := float64(maskSize) / 6.0
	sum := 0.0
	for i := 0; i < maskSize; i++ {
		for j := 0; j < maskSize; j++ {
			dy := float64(i - im.gaussFilterHalfMask)
			dx := float64(j - im.gaussFilterHalfMask)
			c := math.Exp(-(dx*dx + dy*dy) / (2.0 * sigma * sigma))
			im.gaussFilterCoeffs[i][j] = c
			sum += c
		}
	}
	for i := 0; i < maskSize; i++ {
		for j := 0; j < maskSize; j++ {
			im.gaussFilterCoeffs[i][j] /= sum
		}
	}
	return nil
}

// GaussFilterCoeffs returns the active window of normalized coefficients.
func (im *Image) GaussFilterCoeffs() [][]float64 {
	coeffs := util.MakeMatrix2D[float64](im.gaussFilterMaskSize, im.gaussFilterMaskSize)
	for i := 0; i < im.gaussFilterMaskSize; i++ {
		for j := 0; j < im.gaussFilterMaskSize; j++ {
			coeffs[i][j] = im.gaussFilterCoeffs[i][j]
		}
	}
	return coeffs
}

// GaussFilterMaskSize returns the configured mask size.
func (im *Image) GaussFilterMaskSize() int {
	return im.gaussFilterMaskSize
}

// GaussFilter smooths the intensities by 2D convolution with the
// precomputed mask. Samples outside the buffer clamp to the nearest edge
// pixel. The convolution writes a separate destination buffer, only after
// the whole pass completes do the intensities get replaced, so the kernel
// never reads values it has already smoothed.
//
// Execution strategy selection and blocking semantics match
// ComputeGradients.
func (im *Image) GaussFilter(useHierarchical bool, teamSize int) error {

	if useHierarchical && teamSize < 1 {
		return fmt.Errorf("team size %d must be positive: %w", teamSize, ErrConfiguration)
	}

	im.intensities.Push()
	src := im.intensities.Device()
	dest := make([]float64, im.NumPixels())

	if useHierarchical {
		im.gaussHierarchical(dest, teamSize)
	} else {
		at := func(x, y int) float64 { return src[y*im.width+x] }
		runFlat(im.NumPixels(), im.opts.MaxGoroutines, func(start, end int) {
			for p := start; p < end; p++ {
				dest[p] = im.gaussAt(p%im.width, p/im.width, at)
			}
		})
	}

	copy(im.intensities.Device(), dest)
	im.intensities.Pull()
	return nil
}

func (im *Image) gaussHierarchical(dest []float64, teamSize int) {

	half := im.gaussFilterHalfMask
	runTeams(im.height, teamSize, im.opts.MaxGoroutines, func(band rowBand) {
		haloTop := util.Max(band.startY-half, 0)
		haloBottom := util.Min(band.endY+half, im.height)
		scratch := util.GetScratchBand(haloBottom-haloTop, im.width)
		for r := haloTop; r < haloBottom; r++ {
			copy(scratch[r-haloTop], im.intensities.DeviceRow(r))
		}
		at := func(x, y int) float64 { return scratch[y-haloTop][x] }

		for y := band.startY; y < band.endY; y++ {
			for x := 0; x < im.width; x++ {
				dest[y*im.width+x] = im.gaussAt(x, y, at)
			}
		}
		util.ReturnScratchBand(scratch)
	})
}

// gaussAt accumulates the mask window at one pixel, clamping sample
// coordinates to the buffer. Shared by both execution strategies, and the
// accumulation order is fixed so results are identical between them.
func (im *Image) gaussAt(x int, y int, at func(x int, y int) float64) float64 {

	half := im.gaussFilterHalfMask
	v := 0.0
	for i := 0; i < im.gaussFilterMaskSize; i++ {
		sy := util.Clamp(y+i-half, 0, im.height-1)
		for j := 0; j < im.gaussFilterMaskSize; j++ {
			sx := util.Clamp(x+j-half, 0, im.width-1)
			v += im.gaussFilterCoeffs[i][j] * at(sx, sy)
		}
	}
	return v
}
