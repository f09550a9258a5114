package gobsp

import (
	"fmt"
	"math"
)

// ParallelEpsilon bounds the line-plane denominator below which a segment is
// considered parallel to the plane.
const ParallelEpsilon = 1e-12

// markerHalfWidth is the X offset of the synthetic endpoints given to markers.
const markerHalfWidth = 0.25

// Kind says what a scene object is. Only KindSegment objects are physically
// cut by a split; every other kind is a marker assigned whole to one side.
type Kind int

const (
	KindSegment Kind = iota
	KindTree
	KindCloud
	KindPolygon
)

func (k Kind) String() string {
	switch k {
	case KindSegment:
		return "segment"
	case KindTree:
		return "tree"
	case KindCloud:
		return "cloud"
	case KindPolygon:
		return "polygon"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// DefaultMarkerNormal is used for markers created without a facing. It must
// stay unit length.
var DefaultMarkerNormal = Vector3{0, 0, 1}

// Segment is a splittable scene object: a line segment with a face normal and
// a derived center.
type Segment struct {
	P1     Point3
	P2     Point3
	Normal Vector3
	Center Point3
	Tag    string
	Kind   Kind
}

func NewSegment(p1, p2 Point3, normal Vector3, tag string) (*Segment, error) {
	n, err := normal.Normalize()
	if err != nil {
		return nil, err
	}
	return &Segment{
		P1:     p1,
		P2:     p2,
		Normal: n,
		Center: Midpoint(p1, p2),
		Tag:    tag,
		Kind:   KindSegment,
	}, nil
}

// NewMarker creates a center-only object. Its endpoints sit a quarter unit
// either side of center along X so it can be classified like a segment.
func NewMarker(kind Kind, center Point3, normal Vector3, tag string) (*Segment, error) {
	n, err := normal.Normalize()
	if err != nil {
		return nil, err
	}
	return marker(kind, center, n, tag), nil
}

func NewTree(center Point3, tag string) *Segment {
	return marker(KindTree, center, DefaultMarkerNormal, tag)
}

func NewCloud(center Point3, tag string) *Segment {
	return marker(KindCloud, center, DefaultMarkerNormal, tag)
}

func marker(kind Kind, center Point3, normal Vector3, tag string) *Segment {
	offset := Vector3{markerHalfWidth, 0, 0}
	return &Segment{
		P1:     center.Sub(offset),
		P2:     center.Add(offset),
		Normal: normal,
		Center: center,
		Tag:    tag,
		Kind:   kind,
	}
}

func (s *Segment) IsMarker() bool {
	return s.Kind != KindSegment
}

func (s *Segment) Length() float64 {
	return s.P1.DistanceTo(s.P2)
}

func (s *Segment) String() string {
	return fmt.Sprintf("{%s %s: p1: %v, p2: %v, n: %v}", s.Kind, s.Tag, s.P1, s.P2, s.Normal)
}

// Split cuts seg where it crosses plane and returns the half in front and
// the half behind. A segment with one endpoint on the plane is not cut and
// is returned whole on the side of its other endpoint.
func Split(plane *Hyperplane, seg *Segment, eps float64) (front, back *Segment, err error) {
	s1 := ClassifyPoint(plane, seg.P1, eps)
	s2 := ClassifyPoint(plane, seg.P2, eps)

	switch {
	case s1 == s2 && s1 != Collinear:
		return assign(s1, seg)
	case s1 == Collinear && s2 == Collinear:
		return nil, nil, nil
	case s1 == Collinear:
		return assign(s2, seg)
	case s2 == Collinear:
		return assign(s1, seg)
	}

	l := seg.P2.Sub(seg.P1)
	denom := l.Dot(plane.Normal)
	if math.Abs(denom) <= ParallelEpsilon {
		return nil, nil, newParallelSplitError(plane, seg)
	}
	d := plane.Point.Sub(seg.P1).Dot(plane.Normal) / denom
	p := seg.P1.Add(l.Scale(d))

	first := &Segment{
		P1:     seg.P1,
		P2:     p,
		Normal: seg.Normal,
		Center: Midpoint(seg.P1, p),
		Tag:    seg.Tag + ".1",
		Kind:   seg.Kind,
	}
	second := &Segment{
		P1:     p,
		P2:     seg.P2,
		Normal: seg.Normal,
		Center: Midpoint(p, seg.P2),
		Tag:    seg.Tag + ".2",
		Kind:   seg.Kind,
	}

	if s1 == Front {
		return first, second, nil
	}
	return second, first, nil
}

// SplitByPoint assigns a marker whole to the side its center lies on. A
// center exactly on the plane goes behind it.
func SplitByPoint(plane *Hyperplane, obj *Segment, eps float64) (front, back *Segment) {
	if ClassifyPoint(plane, obj.Center, eps) == Front {
		return obj, nil
	}
	return nil, obj
}

// SplitObject splits obj by plane according to its kind.
func SplitObject(plane *Hyperplane, obj *Segment, eps float64) (front, back *Segment, err error) {
	if obj.IsMarker() {
		front, back = SplitByPoint(plane, obj, eps)
		return front, back, nil
	}
	return Split(plane, obj, eps)
}

func assign(side Side, seg *Segment) (front, back *Segment, err error) {
	if side == Front {
		return seg, nil, nil
	}
	return nil, seg, nil
}
