package util

import (
	"golang.org/x/exp/constraints"
)

// Flat backed 2D matrix. Keeping the storage in a single slice means the
// kernels can walk it by pixel index as well as by (row, col).

type Matrix[T constraints.Ordered] struct {
	Width  int
	Height int
	Data   []T
}

// New2DMatrix creates a new 2D matrix with the given dimensions
// Note height is the first dimension, width is the second
func New2DMatrix[T constraints.Ordered](height int, width int) *Matrix[T] {
	matrix := make([]T, width*height)
	return &Matrix[T]{Width: width, Height: height, Data: matrix}
}

// New2DMatrixFromData wraps an existing row-major slice without copying it.
// len(data) must be width*height, the caller checks that before handing the
// slice over.
func New2DMatrixFromData[T constraints.Ordered](data []T, height int, width int) *Matrix[T] {
	return &Matrix[T]{Width: width, Height: height, Data: data}
}

// Note y is first param... row major storage
func (s *Matrix[T]) Get(y int, x int) T {
	return s.Data[y*s.Width+x]
}

func (s *Matrix[T]) Set(y int, x int, value T) {
	s.Data[y*s.Width+x] = value
}

func (s *Matrix[T]) GetRow(y int) []T {
	return s.Data[y*s.Width : (y+1)*s.Width]
}

func (s *Matrix[T]) SetRow(y int, data []T) {
	copy(s.Data[y*s.Width:(y+1)*s.Width], data)
}
