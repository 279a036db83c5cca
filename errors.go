package gears

import (
	"errors"
	"fmt"
)

var (
	// ErrDomain indicates a geometrically impossible configuration, usually
	// caused by an invalid combination of gear parameters.
	ErrDomain = errors.New("geometric domain error")
	// ErrNoIntersection indicates a line missing a circle.
	ErrNoIntersection = fmt.Errorf("%w: line and circle do not intersect", ErrDomain)
	// ErrParallel indicates parallel lines or zero length segment(s).
	ErrParallel = fmt.Errorf("%w: parallel lines or zero length segment", ErrDomain)
	// ErrInvalidParams indicates gear parameters outside of their valid range.
	ErrInvalidParams = errors.New("invalid gear parameters")
)
