package gobsp

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
)

const (
	// ErrTypeDegenerateVector is returned when a zero-length vector is
	// normalized, typically a scene object or viewer with no normal.
	ErrTypeDegenerateVector = "degenerate-vector"

	// ErrTypeParallelSplit is returned when a segment classified as
	// straddling turns out to be parallel to the splitting plane. It means
	// classification and geometry disagree and is never recovered from.
	ErrTypeParallelSplit = "parallel-split"

	ErrTypeSceneFile = "scene-file"
)

func newDegenerateVectorError(v Vector3) error {
	return errors.New("cannot normalize a zero-length vector").
		WithType(ErrTypeDegenerateVector).
		WithTag("x", v.X).
		WithTag("y", v.Y).
		WithTag("z", v.Z)
}

func newParallelSplitError(plane *Hyperplane, seg *Segment) error {
	return errors.New("segment is parallel to the splitting plane").
		WithType(ErrTypeParallelSplit).
		WithTag("hyperplane", plane.Tag).
		WithTag("segment", seg.Tag)
}

func IsDegenerateVector(err error) bool {
	return errors.IsType(err, ErrTypeDegenerateVector)
}

func IsParallelSplit(err error) bool {
	return errors.IsType(err, ErrTypeParallelSplit)
}
