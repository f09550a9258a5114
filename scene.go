package gobsp

import (
	"fmt"
	"os"

	"github.com/aquilax/go-perlin"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Scene describes the objects of a world. It is read from YAML:
//
//	trees:
//	  - {x: 0, y: 0, z: 0, tag: oak}
//	segments:
//	  - {p1: [0, 0, 0], p2: [2, 0, 0], normal: [0, -1, 0], tag: wall}
//	forests:
//	  - {x: -20, rows: 5, cols: 5, seed: 7}
type Scene struct {
	Trees    []MarkerSpec  `yaml:"trees,omitempty"`
	Clouds   []MarkerSpec  `yaml:"clouds,omitempty"`
	Polygons []MarkerSpec  `yaml:"polygons,omitempty"`
	Segments []SegmentSpec `yaml:"segments,omitempty"`
	Forests  []ForestSpec  `yaml:"forests,omitempty"`
}

type MarkerSpec struct {
	X      float64   `yaml:"x"`
	Y      float64   `yaml:"y"`
	Z      float64   `yaml:"z"`
	Normal []float64 `yaml:"normal,omitempty"`
	Tag    string    `yaml:"tag,omitempty"`
}

type SegmentSpec struct {
	P1     []float64 `yaml:"p1"`
	P2     []float64 `yaml:"p2"`
	Normal []float64 `yaml:"normal"`
	Tag    string    `yaml:"tag,omitempty"`
}

// ForestSpec is a rectangular clump of trees starting at (X, Y, Z). Each
// tree is nudged on the ground plane by up to Jitter units of Perlin noise
// seeded with Seed, so a given ForestSpec always yields the same forest.
type ForestSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Z        float64 `yaml:"z"`
	Rows     int     `yaml:"rows"`
	Cols     int     `yaml:"cols"`
	SpacingX float64 `yaml:"spacing_x,omitempty"`
	SpacingZ float64 `yaml:"spacing_z,omitempty"`
	Jitter   float64 `yaml:"jitter,omitempty"`
	Seed     int64   `yaml:"seed,omitempty"`
}

const (
	defaultForestSpacingX = 2.5
	defaultForestSpacingZ = 1.5

	perlinAlpha = 2.0
	perlinBeta  = 2.0
	perlinN     = 3
)

// DefaultScene is three 5x5 clumps of trees side by side along X.
func DefaultScene() *Scene {
	return &Scene{
		Forests: []ForestSpec{
			{X: -20, Rows: 5, Cols: 5},
			{X: 0, Rows: 5, Cols: 5},
			{X: 20, Rows: 5, Cols: 5},
		},
	}
}

func LoadSceneFile(fileName string) (*Scene, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, errors.New("reading scene file failed").
			WithType(ErrTypeSceneFile).
			WithTag("file", fileName).
			Wrap(err)
	}

	scene, err := ParseScene(data)
	if err != nil {
		return nil, errors.New("parsing scene file failed").
			WithType(ErrTypeSceneFile).
			WithTag("file", fileName).
			Wrap(err)
	}
	return scene, nil
}

func ParseScene(data []byte) (*Scene, error) {
	var scene Scene
	if err := yaml.Unmarshal(data, &scene); err != nil {
		return nil, err
	}
	return &scene, nil
}

// Objects builds the scene's objects in file order: trees, clouds,
// polygons, segments, then forests.
func (s *Scene) Objects() (Objects, error) {
	var objs Objects

	markers := []struct {
		kind  Kind
		specs []MarkerSpec
	}{
		{KindTree, s.Trees},
		{KindCloud, s.Clouds},
		{KindPolygon, s.Polygons},
	}
	for _, m := range markers {
		for i, spec := range m.specs {
			obj, err := spec.build(m.kind, i)
			if err != nil {
				return nil, err
			}
			objs = append(objs, obj)
		}
	}

	for i, spec := range s.Segments {
		obj, err := spec.build(i)
		if err != nil {
			return nil, err
		}
		objs = append(objs, obj)
	}

	treeID := len(s.Trees)
	for i, spec := range s.Forests {
		if spec.Rows < 0 || spec.Cols < 0 {
			return nil, errors.New("forest dimensions cannot be negative").
				WithType(ErrTypeSceneFile).
				WithTag("forest", i).
				WithTag("rows", spec.Rows).
				WithTag("cols", spec.Cols)
		}
		forest := Forest(spec, treeID)
		treeID += len(forest)
		objs = append(objs, forest...)
	}
	return objs, nil
}

func (m MarkerSpec) build(kind Kind, i int) (*Segment, error) {
	normal := DefaultMarkerNormal
	if m.Normal != nil {
		n, err := vectorFromSlice(m.Normal, "normal")
		if err != nil {
			return nil, err
		}
		normal = n
	}

	tag := m.Tag
	if tag == "" {
		tag = fmt.Sprintf("%s-%d", kind, i)
	}
	return NewMarker(kind, NewPoint3(m.X, m.Y, m.Z), normal, tag)
}

func (s SegmentSpec) build(i int) (*Segment, error) {
	p1, err := vectorFromSlice(s.P1, "p1")
	if err != nil {
		return nil, err
	}
	p2, err := vectorFromSlice(s.P2, "p2")
	if err != nil {
		return nil, err
	}
	normal, err := vectorFromSlice(s.Normal, "normal")
	if err != nil {
		return nil, err
	}

	tag := s.Tag
	if tag == "" {
		tag = fmt.Sprintf("segment-%d", i)
	}
	return NewSegment(p1, p2, normal, tag)
}

// Forest lays out spec's trees row by row, tagging them tree-<firstID>,
// tree-<firstID+1> and so on. A forest without rows or columns is empty.
func Forest(spec ForestSpec, firstID int) Objects {
	spacingX := spec.SpacingX
	if spacingX == 0 {
		spacingX = defaultForestSpacingX
	}
	spacingZ := spec.SpacingZ
	if spacingZ == 0 {
		spacingZ = defaultForestSpacingZ
	}

	var noise *perlin.Perlin
	if spec.Jitter != 0 {
		noise = perlin.NewPerlin(perlinAlpha, perlinBeta, perlinN, spec.Seed)
	}

	if spec.Rows <= 0 || spec.Cols <= 0 {
		return nil
	}

	trees := make(Objects, 0, spec.Rows*spec.Cols)
	for i := 0; i < spec.Rows; i++ {
		for j := 0; j < spec.Cols; j++ {
			x := spec.X + float64(i)*spacingX
			z := spec.Z + float64(j)*spacingZ
			if noise != nil {
				x += spec.Jitter * noise.Noise2D(x/10+0.5, z/10)
				z += spec.Jitter * noise.Noise2D(z/10, x/10+0.5)
			}
			trees = append(trees, NewTree(NewPoint3(x, spec.Y, z), fmt.Sprintf("tree-%d", firstID+len(trees))))
		}
	}
	return trees
}

func vectorFromSlice(v []float64, field string) (Vector3, error) {
	if len(v) != 3 {
		return Vector3{}, errors.New("vector needs exactly three components").
			WithType(ErrTypeSceneFile).
			WithTag("field", field).
			WithTag("len", len(v))
	}
	return NewVector3(v[0], v[1], v[2]), nil
}
