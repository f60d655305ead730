package testcommon

// Synthetic intensity arrays used across the test packages.

// RampX builds a width*height row-major array with intensity(x,y) = x.
func RampX(width int, height int) []float64 {
	data := make([]float64, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			data[y*width+x] = float64(x)
		}
	}
	return data
}

// RampY builds a width*height row-major array with intensity(x,y) = y.
func RampY(width int, height int) []float64 {
	data := make([]float64, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			data[y*width+x] = float64(y)
		}
	}
	return data
}

// Constant builds a width*height array with every pixel set to v.
func Constant(width int, height int, v float64) []float64 {
	data := make([]float64, width*height)
	for i := range data {
		data[i] = v
	}
	return data
}

// Checker builds a width*height array alternating between lo and hi, handy
// when a test needs structure in both axes.
func Checker(width int, height int, lo float64, hi float64) []float64 {
	data := make([]float64, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if (x+y)%2 == 0 {
				data[y*width+x] = lo
			} else {
				data[y*width+x] = hi
			}
		}
	}
	return data
}
