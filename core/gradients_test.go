package core

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kpfaulkner/dic-go/options"
	"github.com/kpfaulkner/dic-go/testcommon"
)

const gradTolerance = 1e-10

func TestGradientsLinearRampX(t *testing.T) {

	img, err := NewImageFromArray(testcommon.RampX(5, 5), 5, 5, nil)
	assert.Nil(t, err)
	assert.False(t, img.HasGradients())

	assert.Nil(t, img.ComputeGradients(false, 0))
	assert.True(t, img.HasGradients())

	// interior 5 point stencil reproduces the slope exactly
	for y := 0; y < 5; y++ {
		assert.InDelta(t, 1.0, img.GradX(2, y), gradTolerance)
	}

	// boundary formulas also recover a linear ramp
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			assert.InDelta(t, 1.0, img.GradX(x, y), gradTolerance)
			assert.InDelta(t, 0.0, img.GradY(x, y), gradTolerance)
		}
	}
}

func TestGradientsLinearRampY(t *testing.T) {

	img, err := NewImageFromArray(testcommon.RampY(5, 7), 5, 7, nil)
	assert.Nil(t, err)

	assert.Nil(t, img.ComputeGradients(true, 2))
	for y := 0; y < 7; y++ {
		for x := 0; x < 5; x++ {
			assert.InDelta(t, 0.0, img.GradX(x, y), gradTolerance)
			assert.InDelta(t, 1.0, img.GradY(x, y), gradTolerance)
		}
	}
}

func TestGradientsFlatVsHierarchical(t *testing.T) {

	const width = 17
	const height = 11
	data := make([]float64, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			data[y*width+x] = 100.0*math.Sin(float64(x)/3.0) + 50.0*math.Cos(float64(y)/2.0)
		}
	}

	flat, err := NewImageFromArray(data, width, height, nil)
	assert.Nil(t, err)
	assert.Nil(t, flat.ComputeGradients(false, 0))

	// team sizes that do and do not divide the height
	for _, teamSize := range []int{1, 3, 4, 256} {
		hier, err := NewImageFromArray(data, width, height, nil)
		assert.Nil(t, err)
		assert.Nil(t, hier.ComputeGradients(true, teamSize))

		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				assert.InDelta(t, flat.GradX(x, y), hier.GradX(x, y), gradTolerance)
				assert.InDelta(t, flat.GradY(x, y), hier.GradY(x, y), gradTolerance)
			}
		}
	}
}

func TestGradientsInvalidTeamSize(t *testing.T) {

	img, err := NewImageFromArray(testcommon.RampX(5, 5), 5, 5, nil)
	assert.Nil(t, err)

	err = img.ComputeGradients(true, 0)
	assert.True(t, errors.Is(err, ErrConfiguration))
	// failed call leaves state untouched
	assert.False(t, img.HasGradients())

	assert.Nil(t, img.ComputeGradients(true, 8))
	assert.True(t, img.HasGradients())
}

func TestGradientsUnsupportedMethod(t *testing.T) {

	img, err := NewImageFromArray(testcommon.RampX(5, 5), 5, 5,
		&options.ImageOptions{GradientMethod: options.GradientMethod(99)})
	assert.Nil(t, err)

	err = img.ComputeGradients(false, 0)
	assert.True(t, errors.Is(err, ErrPrecondition))
	assert.False(t, img.HasGradients())
}

func TestGradientsRecompute(t *testing.T) {

	data := testcommon.RampX(6, 6)
	img, err := NewImageFromSharedArray(data, 6, 6, nil)
	assert.Nil(t, err)
	assert.Nil(t, img.ComputeGradients(false, 0))
	assert.InDelta(t, 1.0, img.GradX(3, 3), gradTolerance)

	// double the ramp through the shared array and recompute
	for i := range data {
		data[i] *= 2.0
	}
	assert.Nil(t, img.ComputeGradients(false, 0))
	assert.True(t, img.HasGradients())
	assert.InDelta(t, 2.0, img.GradX(3, 3), gradTolerance)
}

func TestGradientsDegenerateDims(t *testing.T) {

	// single column: no x neighbours at all
	img, err := NewImageFromArray(testcommon.RampY(1, 5), 1, 5, nil)
	assert.Nil(t, err)
	assert.Nil(t, img.ComputeGradients(false, 0))
	for y := 0; y < 5; y++ {
		assert.InDelta(t, 0.0, img.GradX(0, y), gradTolerance)
		assert.InDelta(t, 1.0, img.GradY(0, y), gradTolerance)
	}

	// two columns: forward and backward differences only
	img, err = NewImageFromArray(testcommon.RampX(2, 2), 2, 2, nil)
	assert.Nil(t, err)
	assert.Nil(t, img.ComputeGradients(true, 1))
	for y := 0; y < 2; y++ {
		assert.InDelta(t, 1.0, img.GradX(0, y), gradTolerance)
		assert.InDelta(t, 1.0, img.GradX(1, y), gradTolerance)
	}
}
