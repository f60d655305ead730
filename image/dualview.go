package image

import (
	"github.com/kpfaulkner/dic-go/util"
)

// DualView is one logical pixel buffer held as two views: a host view for
// sequential access (file I/O, single pixel queries) and a device view the
// data-parallel kernels read and write. The two views are physically
// separate memory with explicit sync points:
//
//	Push copies host -> device, required before launching a kernel that
//	reads the buffer.
//	Pull copies device -> host, required before host code reads a kernel
//	result.
//
// Skipping either copy yields stale reads. The host view is authoritative
// between kernel invocations.
type DualView struct {
	Width  int
	Height int

	host *util.Matrix[float64]
	dev  *util.Matrix[float64]
}

func NewDualView(width int, height int) *DualView {
	return &DualView{
		Width:  width,
		Height: height,
		host:   util.New2DMatrix[float64](height, width),
		dev:    util.New2DMatrix[float64](height, width),
	}
}

// NewDualViewFromSlice copies the given row-major data into a fresh host
// view. len(data) must be width*height, callers validate before handing
// the slice in.
func NewDualViewFromSlice(data []float64, width int, height int) *DualView {
	dv := NewDualView(width, height)
	copy(dv.host.Data, data)
	return dv
}

// AdoptSlice wraps the given row-major slice as the host view without
// copying. The slice stays alive as long as the view does, and host-side
// writes through the original slice remain visible, which is the point of
// adopting rather than copying.
func AdoptSlice(data []float64, width int, height int) *DualView {
	return &DualView{
		Width:  width,
		Height: height,
		host:   util.New2DMatrixFromData(data, height, width),
		dev:    util.New2DMatrix[float64](height, width),
	}
}

func (dv *DualView) NumPixels() int {
	return dv.Width * dv.Height
}

// Get reads the host view. y is row, x is column.
func (dv *DualView) Get(y int, x int) float64 {
	return dv.host.Get(y, x)
}

// Set writes the host view. A Push is needed before the write is visible
// to a kernel.
func (dv *DualView) Set(y int, x int, value float64) {
	dv.host.Set(y, x, value)
}

// Host exposes the host-side flat buffer (row major).
func (dv *DualView) Host() []float64 {
	return dv.host.Data
}

// Device exposes the kernel-side flat buffer (row major). Host code must
// not read it directly, results come back via Pull.
func (dv *DualView) Device() []float64 {
	return dv.dev.Data
}

// DeviceRow returns one row of the device view.
func (dv *DualView) DeviceRow(y int) []float64 {
	return dv.dev.GetRow(y)
}

// Push makes host-side writes visible to the device view.
func (dv *DualView) Push() {
	copy(dv.dev.Data, dv.host.Data)
}

// Pull makes kernel-written results visible to the host view.
func (dv *DualView) Pull() {
	copy(dv.host.Data, dv.dev.Data)
}
