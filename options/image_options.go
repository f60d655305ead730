package options

import "runtime"

// GradientMethod selects the derivative scheme used by ComputeGradients.
type GradientMethod int

const (
	// FiniteDifference is the 5/3 point central difference stencil with
	// one-sided differences at the image edges.
	FiniteDifference GradientMethod = iota
)

const (
	DefaultGaussFilterMaskSize = 7
	DefaultTeamSize            = 256
)

// ImageOptions carries the recognized image parameters. Zero values mean
// "use the default", invalid values are rejected where they are consumed.
type ImageOptions struct {
	GaussFilterMaskSize     int
	GradientMethod          GradientMethod
	HierarchicalParallelism bool
	TeamSize                int
	MaxGoroutines           int
}

func NewImageOptions(options *ImageOptions) *ImageOptions {

	opt := &ImageOptions{
		GaussFilterMaskSize: DefaultGaussFilterMaskSize,
		GradientMethod:      FiniteDifference,
		TeamSize:            DefaultTeamSize,
		MaxGoroutines:       runtime.NumCPU(),
	}
	if options != nil {
		if options.GaussFilterMaskSize != 0 {
			opt.GaussFilterMaskSize = options.GaussFilterMaskSize
		}
		opt.GradientMethod = options.GradientMethod
		opt.HierarchicalParallelism = options.HierarchicalParallelism
		if options.TeamSize != 0 {
			opt.TeamSize = options.TeamSize
		}
		if options.MaxGoroutines != 0 {
			opt.MaxGoroutines = options.MaxGoroutines
		}
	}
	return opt
}
