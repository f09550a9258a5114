package gobsp

import "fmt"

// CollinearEpsilon is the default half-width of the band around a hyperplane
// inside which a point classifies as Collinear. Zero keeps exact equality.
const CollinearEpsilon = 0.0

// Side is the result of classifying a point or segment against a hyperplane.
type Side int

const (
	Collinear Side = iota
	Front
	Back
	Straddling
)

func (s Side) String() string {
	switch s {
	case Front:
		return "front"
	case Back:
		return "back"
	case Collinear:
		return "collinear"
	case Straddling:
		return "straddling"
	default:
		return fmt.Sprintf("side(%d)", int(s))
	}
}

// Hyperplane is an oriented plane through Point facing along Normal.
// Normal is always unit length.
type Hyperplane struct {
	Point  Point3
	Normal Vector3
	Tag    string
}

func NewHyperplane(point Point3, normal Vector3, tag string) (*Hyperplane, error) {
	n, err := normal.Normalize()
	if err != nil {
		return nil, err
	}
	return &Hyperplane{
		Point:  point,
		Normal: n,
		Tag:    tag,
	}, nil
}

// SignedDistance is positive in front of the plane and negative behind it.
func (h *Hyperplane) SignedDistance(p Point3) float64 {
	return p.Sub(h.Point).Dot(h.Normal)
}

// Flipped returns the same plane facing the other way.
func (h *Hyperplane) Flipped() *Hyperplane {
	return &Hyperplane{
		Point:  h.Point,
		Normal: h.Normal.Negate(),
		Tag:    h.Tag,
	}
}

func (h *Hyperplane) String() string {
	return fmt.Sprintf("{%s: p: %v, n: %v}", h.Tag, h.Point, h.Normal)
}

// ClassifyPoint reports which side of plane p lies on. Points whose signed
// distance is within eps of zero are Collinear.
func ClassifyPoint(plane *Hyperplane, p Point3, eps float64) Side {
	d := plane.SignedDistance(p)
	if d > eps {
		return Front
	}
	if d < -eps {
		return Back
	}
	return Collinear
}

// ClassifySegment classifies both endpoints. Any mix other than two equal
// sides counts as Straddling, including one endpoint lying on the plane.
func ClassifySegment(plane *Hyperplane, seg *Segment, eps float64) Side {
	s1 := ClassifyPoint(plane, seg.P1, eps)
	s2 := ClassifyPoint(plane, seg.P2, eps)
	if s1 == s2 {
		return s1
	}
	return Straddling
}
