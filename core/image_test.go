package core

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kpfaulkner/dic-go/options"
	"github.com/kpfaulkner/dic-go/testcommon"
)

func TestNewImageFromArray(t *testing.T) {

	img, err := NewImageFromArray(testcommon.RampX(4, 3), 4, 3, nil)
	assert.Nil(t, err)
	assert.Equal(t, 4, img.Width())
	assert.Equal(t, 3, img.Height())
	assert.Equal(t, 12, img.NumPixels())
	assert.Equal(t, 0, img.OffsetX())
	assert.Equal(t, 0, img.OffsetY())
	assert.Equal(t, 2.0, img.Value(2, 1))
	assert.Equal(t, 12, img.Intensities().NumPixels())
	assert.False(t, img.HasGradients())
}

func TestNewImageFromArrayLengthMismatch(t *testing.T) {

	_, err := NewImageFromArray(make([]float64, 11), 4, 3, nil)
	assert.NotNil(t, err)
	assert.True(t, errors.Is(err, ErrConfiguration))

	_, err = NewImageFromSharedArray(make([]float64, 13), 4, 3, nil)
	assert.True(t, errors.Is(err, ErrConfiguration))

	_, err = NewImageFromArray(nil, 0, 0, nil)
	assert.True(t, errors.Is(err, ErrConfiguration))
}

func TestNewImageFromArrayCopies(t *testing.T) {

	data := testcommon.Constant(3, 3, 5.0)
	img, err := NewImageFromArray(data, 3, 3, nil)
	assert.Nil(t, err)

	data[0] = 99.0
	assert.Equal(t, 5.0, img.Value(0, 0))
}

func TestNewImageFromSharedArrayAdopts(t *testing.T) {

	data := testcommon.Constant(3, 3, 5.0)
	img, err := NewImageFromSharedArray(data, 3, 3, nil)
	assert.Nil(t, err)

	data[0] = 99.0
	assert.Equal(t, 99.0, img.Value(0, 0))
}

func TestGaussMaskSizeValidation(t *testing.T) {

	data := testcommon.Constant(4, 4, 1.0)

	// too large
	_, err := NewImageFromArray(data, 4, 4, &options.ImageOptions{GaussFilterMaskSize: 15})
	assert.True(t, errors.Is(err, ErrConfiguration))

	// even
	_, err = NewImageFromArray(data, 4, 4, &options.ImageOptions{GaussFilterMaskSize: 14})
	assert.True(t, errors.Is(err, ErrConfiguration))

	// negative
	_, err = NewImageFromArray(data, 4, 4, &options.ImageOptions{GaussFilterMaskSize: -3})
	assert.True(t, errors.Is(err, ErrConfiguration))

	img, err := NewImageFromArray(data, 4, 4, &options.ImageOptions{GaussFilterMaskSize: 7})
	assert.Nil(t, err)
	assert.Equal(t, 7, img.GaussFilterMaskSize())

	// zero means default
	img, err = NewImageFromArray(data, 4, 4, nil)
	assert.Nil(t, err)
	assert.Equal(t, options.DefaultGaussFilterMaskSize, img.GaussFilterMaskSize())
}

func TestValueOutOfRangePanics(t *testing.T) {

	img, err := NewImageFromArray(testcommon.Constant(3, 3, 1.0), 3, 3, nil)
	assert.Nil(t, err)

	assert.Panics(t, func() { img.Value(3, 0) })
	assert.Panics(t, func() { img.Value(0, -1) })
}

func TestGradAccessBeforeComputePanics(t *testing.T) {

	img, err := NewImageFromArray(testcommon.Constant(3, 3, 1.0), 3, 3, nil)
	assert.Nil(t, err)

	assert.Panics(t, func() { img.GradX(1, 1) })
	assert.Panics(t, func() { img.GradY(1, 1) })
}

func TestRAWIFileRoundTrip(t *testing.T) {

	// fractional values an 8 bit format would truncate
	data := []float64{0.125, 1.5, 200.75, 255.0, 300.5, -2.25}
	img, err := NewImageFromArray(data, 3, 2, nil)
	assert.Nil(t, err)

	fileName := filepath.Join(t.TempDir(), "out.rawi")
	assert.Nil(t, img.WriteRAWI(fileName))

	img2, err := NewImageFromFile(fileName, nil)
	assert.Nil(t, err)
	assert.Equal(t, 3, img2.Width())
	assert.Equal(t, 2, img2.Height())
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			assert.Equal(t, img.Value(x, y), img2.Value(x, y))
		}
	}
}

func TestTIFFFileTruncates(t *testing.T) {

	data := []float64{0.125, 1.5, 200.75, 255.0}
	img, err := NewImageFromArray(data, 2, 2, nil)
	assert.Nil(t, err)

	fileName := filepath.Join(t.TempDir(), "out.tif")
	assert.Nil(t, img.WriteTIFF(fileName))

	img2, err := NewImageFromFile(fileName, nil)
	assert.Nil(t, err)
	assert.Equal(t, 0.0, img2.Value(0, 0))
	assert.Equal(t, 1.0, img2.Value(1, 0))
	assert.Equal(t, 200.0, img2.Value(0, 1))
	assert.Equal(t, 255.0, img2.Value(1, 1))
}

func TestNewImageFromFileMissing(t *testing.T) {

	_, err := NewImageFromFile(filepath.Join(t.TempDir(), "nope.rawi"), nil)
	assert.NotNil(t, err)

	_, err = NewImageFromFile("whatever.bmp", nil)
	assert.NotNil(t, err)
}

func TestNewImageFromFileRegion(t *testing.T) {

	src, err := NewImageFromArray(testcommon.RampX(8, 6), 8, 6, nil)
	assert.Nil(t, err)
	fileName := filepath.Join(t.TempDir(), "src.rawi")
	assert.Nil(t, src.WriteRAWI(fileName))

	region, err := NewImageFromFileRegion(fileName, 2, 1, 4, 3, nil)
	assert.Nil(t, err)
	assert.Equal(t, 4, region.Width())
	assert.Equal(t, 3, region.Height())
	assert.Equal(t, 2, region.OffsetX())
	assert.Equal(t, 1, region.OffsetY())

	// local (0,0) is global (2,1), and the ramp value follows global x
	assert.Equal(t, 2.0, region.Value(0, 0))
	assert.Equal(t, 5.0, region.Value(3, 2))
	assert.Equal(t, 2, region.GlobalX(0))
	assert.Equal(t, 3, region.GlobalY(2))
}

func TestNewImageFromFileRegionOutOfBounds(t *testing.T) {

	src, err := NewImageFromArray(testcommon.RampX(8, 6), 8, 6, nil)
	assert.Nil(t, err)
	fileName := filepath.Join(t.TempDir(), "src.rawi")
	assert.Nil(t, src.WriteRAWI(fileName))

	_, err = NewImageFromFileRegion(fileName, 6, 0, 4, 3, nil)
	assert.True(t, errors.Is(err, ErrConfiguration))

	_, err = NewImageFromFileRegion(fileName, 0, 4, 8, 3, nil)
	assert.True(t, errors.Is(err, ErrConfiguration))

	_, err = NewImageFromFileRegion(fileName, -1, 0, 4, 3, nil)
	assert.True(t, errors.Is(err, ErrConfiguration))
}
