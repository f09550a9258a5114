package gobsp

import "sort"

// Objects is an ordered list of scene objects. Order matters: the first
// object seeds the splitting plane of a node that has none.
type Objects []*Segment

// Centroid is the mean of the objects' centers, or the origin when empty.
func (o Objects) Centroid() Point3 {
	if len(o) == 0 {
		return Point3{}
	}

	var sum Vector3
	for _, obj := range o {
		sum = sum.Add(obj.Center)
	}
	return sum.Scale(1 / float64(len(o)))
}

// Tags
func (o Objects) Tags() []string {
	tags := make([]string, len(o))
	for i, obj := range o {
		tags[i] = obj.Tag
	}
	return tags
}

// CountKind counts the objects of the given kind.
func (o Objects) CountKind(kind Kind) int {
	n := 0
	for _, obj := range o {
		if obj.Kind == kind {
			n++
		}
	}
	return n
}

// sort the objects so that the ones farther away from pos are at the start
// of the slice, the order a painter's algorithm draws them in
func (o Objects) SortByDistance(pos Point3) {
	if len(o) == 0 {
		return
	}

	sort.SliceStable(o, func(i, j int) bool {
		return o[i].Center.DistanceTo(pos) > o[j].Center.DistanceTo(pos)
	})
}
