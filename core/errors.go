package core

import "errors"

// ErrConfiguration indicates construction parameters or recognized options
// that fail validation: mismatched array lengths, a sub-region outside the
// source image, an even or oversized Gauss mask, a bad team size.
var ErrConfiguration = errors.New("dic: invalid configuration")

// ErrPrecondition indicates a call that violates the Image contract, such
// as selecting an unsupported gradient method.
var ErrPrecondition = errors.New("dic: precondition violated")
