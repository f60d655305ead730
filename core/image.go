package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/kpfaulkner/dic-go/image"
	"github.com/kpfaulkner/dic-go/imageformats"
	"github.com/kpfaulkner/dic-go/options"
)

// Image is a container for pixel intensity information plus the derived
// gradient and Gauss-filtered buffers. Coordinates are from the top left
// corner, positive right for x and positive down for y. Intensity access
// is always in local coordinates: if only a portion of a larger image was
// read in, the first pixel is still (0,0) and the stored offsets map local
// back to global coordinates.
type Image struct {

	// offsets convert local to global image coordinates
	// (the pixel container may be a subset of a larger image)
	offsetX int
	offsetY int

	width  int
	height int

	// pixel container
	intensities *image.DualView

	// gradient containers, allocated on first ComputeGradients
	gradX *image.DualView
	gradY *image.DualView

	hasGradients bool

	// coeffs used in computing gradients
	gradC1 float64
	gradC2 float64

	// Gauss filter coefficients, 13 is the maximum size for the filter window
	gaussFilterCoeffs   [MaxGaussFilterMaskSize][MaxGaussFilterMaskSize]float64
	gaussFilterMaskSize int
	gaussFilterHalfMask int

	opts *options.ImageOptions
}

// NewImageFromFile reads a whole image file (.tif/.tiff or .rawi) into a
// new Image.
func NewImageFromFile(fileName string, params *options.ImageOptions) (*Image, error) {

	intensities, width, height, err := readIntensityFile(fileName)
	if err != nil {
		log.Errorf("Error reading image file %s: %v", fileName, err)
		return nil, err
	}
	return newImage(image.AdoptSlice(intensities, width, height), 0, 0, params)
}

// NewImageFromFileRegion reads only a portion of an image file, given by
// the offset of its upper left corner and its dims. The region must lie
// fully inside the source image.
func NewImageFromFileRegion(fileName string, offsetX int, offsetY int, width int, height int, params *options.ImageOptions) (*Image, error) {

	intensities, srcWidth, srcHeight, err := readIntensityFile(fileName)
	if err != nil {
		log.Errorf("Error reading image file %s: %v", fileName, err)
		return nil, err
	}
	if offsetX < 0 || offsetY < 0 || width <= 0 || height <= 0 ||
		offsetX+width > srcWidth || offsetY+height > srcHeight {
		return nil, fmt.Errorf("region %dx%d at (%d,%d) exceeds %dx%d source image: %w",
			width, height, offsetX, offsetY, srcWidth, srcHeight, ErrConfiguration)
	}

	region := make([]float64, width*height)
	for y := 0; y < height; y++ {
		srcRow := (offsetY+y)*srcWidth + offsetX
		copy(region[y*width:(y+1)*width], intensities[srcRow:srcRow+width])
	}
	return newImage(image.AdoptSlice(region, width, height), offsetX, offsetY, params)
}

// NewImageFromArray copies a pre-populated row-major intensity array.
func NewImageFromArray(intensities []float64, width int, height int, params *options.ImageOptions) (*Image, error) {

	if err := checkArrayDims(intensities, width, height); err != nil {
		return nil, err
	}
	return newImage(image.NewDualViewFromSlice(intensities, width, height), 0, 0, params)
}

// NewImageFromSharedArray adopts a row-major intensity array without
// copying it. The Image keeps the slice alive, and writes the caller makes
// through the original slice stay visible on the host view.
func NewImageFromSharedArray(intensities []float64, width int, height int, params *options.ImageOptions) (*Image, error) {

	if err := checkArrayDims(intensities, width, height); err != nil {
		return nil, err
	}
	return newImage(image.AdoptSlice(intensities, width, height), 0, 0, params)
}

func checkArrayDims(intensities []float64, width int, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("image dims %dx%d must be positive: %w", width, height, ErrConfiguration)
	}
	if len(intensities) != width*height {
		return fmt.Errorf("array of %d values does not match %dx%d image: %w",
			len(intensities), width, height, ErrConfiguration)
	}
	return nil
}

func newImage(intensities *image.DualView, offsetX int, offsetY int, params *options.ImageOptions) (*Image, error) {

	im := &Image{
		offsetX:     offsetX,
		offsetY:     offsetY,
		width:       intensities.Width,
		height:      intensities.Height,
		intensities: intensities,
	}
	if err := im.defaultConstructorTasks(params); err != nil {
		return nil, err
	}
	return im, nil
}

func (im *Image) defaultConstructorTasks(params *options.ImageOptions) error {

	im.opts = options.NewImageOptions(params)

	// 4th order central difference coeffs, derived for unit pixel spacing:
	// grad = c1*(I[+1]-I[-1]) + c2*(I[+2]-I[-2])
	im.gradC1 = 2.0 / 3.0
	im.gradC2 = -1.0 / 12.0

	return im.computeGaussFilterCoeffs(im.opts.GaussFilterMaskSize)
}

func readIntensityFile(fileName string) ([]float64, int, int, error) {

	f, err := os.Open(fileName)
	if err != nil {
		return nil, 0, 0, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".tif", ".tiff":
		return imageformats.ReadTIFF(f)
	case ".rawi":
		return imageformats.ReadRAWI(f)
	default:
		return nil, 0, 0, fmt.Errorf("unsupported image format %q", filepath.Ext(fileName))
	}
}

// Width returns the width of the image
func (im *Image) Width() int {
	return im.width
}

// Height returns the height of the image
func (im *Image) Height() int {
	return im.height
}

// NumPixels returns the number of pixels in the image
func (im *Image) NumPixels() int {
	return im.width * im.height
}

// OffsetX returns the global x coordinate of the upper left corner
func (im *Image) OffsetX() int {
	return im.offsetX
}

// OffsetY returns the global y coordinate of the upper left corner
func (im *Image) OffsetY() int {
	return im.offsetY
}

// GlobalX converts a local x coordinate to the global image frame
func (im *Image) GlobalX(x int) int {
	return x + im.offsetX
}

// GlobalY converts a local y coordinate to the global image frame
func (im *Image) GlobalY(y int) int {
	return y + im.offsetY
}

// Value returns the intensity at local coordinates (x, y). The internal
// buffer is stored (row, column) so the indices are switched from x,y to
// y,x. Panics if the coordinates are out of range, a flat backing store
// would otherwise silently alias a neighbouring row.
func (im *Image) Value(x int, y int) float64 {
	im.checkCoords(x, y)
	return im.intensities.Get(y, x)
}

// Intensities returns the dual view of the intensity values.
func (im *Image) Intensities() *image.DualView {
	return im.intensities
}

func (im *Image) checkCoords(x int, y int) {
	if x < 0 || x >= im.width || y < 0 || y >= im.height {
		panic(fmt.Sprintf("dic: coordinates (%d,%d) outside %dx%d image", x, y, im.width, im.height))
	}
}

// WriteTIFF writes the image to a tiff file. Intensities are truncated to
// 8 bit, use WriteRAWI to keep full precision.
func (im *Image) WriteTIFF(fileName string) error {

	f, err := os.Create(fileName)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := imageformats.WriteTIFF(f, im.intensities.Host(), im.width, im.height); err != nil {
		log.Errorf("Error writing tiff %s: %v", fileName, err)
		return err
	}
	return nil
}

// WriteRAWI writes the image to a .rawi (raw intensity) file, keeping the
// full float64 intensity values.
func (im *Image) WriteRAWI(fileName string) error {

	f, err := os.Create(fileName)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := imageformats.WriteRAWI(f, im.intensities.Host(), im.width, im.height); err != nil {
		log.Errorf("Error writing rawi %s: %v", fileName, err)
		return err
	}
	return nil
}
