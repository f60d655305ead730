package imageformats

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Raw intensity (.rawi) format: TIFF output truncates intensities to 8 bit
// integers, rawi keeps the full float64 precision. Layout is a fixed magic,
// width and height as uint32, then width*height little-endian float64
// values in row-major order.

var rawiMagic = [4]byte{'R', 'A', 'W', 'I'}

// WriteRAWI serializes full precision intensity values.
func WriteRAWI(output io.Writer, intensities []float64, width int, height int) error {

	if len(intensities) != width*height {
		return fmt.Errorf("rawi: %d intensity values for %dx%d image", len(intensities), width, height)
	}
	if _, err := output.Write(rawiMagic[:]); err != nil {
		return err
	}
	if err := binary.Write(output, binary.LittleEndian, uint32(width)); err != nil {
		return err
	}
	if err := binary.Write(output, binary.LittleEndian, uint32(height)); err != nil {
		return err
	}
	return binary.Write(output, binary.LittleEndian, intensities)
}

// ReadRAWI reads a rawi stream back, returning the intensities and the
// stored dimensions.
func ReadRAWI(input io.Reader) ([]float64, int, int, error) {

	var magic [4]byte
	if _, err := io.ReadFull(input, magic[:]); err != nil {
		return nil, 0, 0, err
	}
	if magic != rawiMagic {
		return nil, 0, 0, fmt.Errorf("rawi: bad magic %q", magic[:])
	}

	var width, height uint32
	if err := binary.Read(input, binary.LittleEndian, &width); err != nil {
		return nil, 0, 0, err
	}
	if err := binary.Read(input, binary.LittleEndian, &height); err != nil {
		return nil, 0, 0, err
	}

	intensities := make([]float64, int(width)*int(height))
	if err := binary.Read(input, binary.LittleEndian, intensities); err != nil {
		return nil, 0, 0, err
	}
	return intensities, int(width), int(height), nil
}
