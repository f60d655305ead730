package imageformats

import (
	"image"
	"image/color"
	"io"

	"golang.org/x/image/tiff"

	"github.com/kpfaulkner/dic-go/util"
)

// WriteTIFF encodes the intensities as 8-bit grayscale TIFF. Values are
// clamped to [0,255] and truncated, use rawi when the full precision
// matters.
func WriteTIFF(output io.Writer, intensities []float64, width int, height int) error {

	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := util.Clamp(intensities[y*width+x], 0.0, 255.0)
			img.SetGray(x, y, color.Gray{Y: uint8(v)})
		}
	}
	return tiff.Encode(output, img, &tiff.Options{Compression: tiff.Uncompressed})
}

// ReadTIFF decodes a TIFF stream into intensity values. Grayscale inputs
// map directly, anything else goes through the usual luma weights.
func ReadTIFF(input io.Reader) ([]float64, int, int, error) {

	img, err := tiff.Decode(input)
	if err != nil {
		return nil, 0, 0, err
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	intensities := make([]float64, width*height)

	switch src := img.(type) {
	case *image.Gray:
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				intensities[y*width+x] = float64(src.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y)
			}
		}
	case *image.Gray16:
		// keep 16 bit sources on the 8 bit intensity scale
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				intensities[y*width+x] = float64(src.Gray16At(bounds.Min.X+x, bounds.Min.Y+y).Y) / 257.0
			}
		}
	default:
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
				intensities[y*width+x] = (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 257.0
			}
		}
	}
	return intensities, width, height, nil
}
