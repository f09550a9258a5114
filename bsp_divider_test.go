package gobsp

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// fourSegments returns a pivot wall on y=0 facing -Y, a wall above it, a
// wall below it and a wall further along the pivot's own line.
func fourSegments(t *testing.T) Objects {
	down := NewVector3(0, -1, 0)
	return Objects{
		mustSegment(t, NewPoint3(0, 0, 0), NewPoint3(2, 0, 0), down, "pivot"),
		mustSegment(t, NewPoint3(0, 1, 0), NewPoint3(2, 1, 0), down, "above"),
		mustSegment(t, NewPoint3(0, -1, 0), NewPoint3(2, -1, 0), down, "below"),
		mustSegment(t, NewPoint3(3, 0, 0), NewPoint3(5, 0, 0), down, "along"),
	}
}

func grid(rows, cols int) Objects {
	var objs Objects
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			objs = append(objs, NewTree(NewPoint3(float64(i)*2.5, 0, float64(j)*1.5), fmt.Sprintf("tree-%d", len(objs))))
		}
	}
	return objs
}

func nodeIDs(root *Node) []string {
	var ids []string
	root.Walk(func(n *Node, _ int) bool {
		ids = append(ids, n.ID)
		return true
	})
	return ids
}

func objectCounts(root *Node) []int {
	var counts []int
	root.Walk(func(n *Node, _ int) bool {
		counts = append(counts, len(n.Objects))
		return true
	})
	return counts
}

func TestDivideFourSegments(t *testing.T) {
	root := NewRootNode(fourSegments(t)...)
	d := NewDivider(4)

	require.NoError(t, d.Divide(root, 1))

	require.NotNil(t, root.Hyperplane)
	require.Equal(t, "pivot.hypp", root.Hyperplane.Tag)
	require.Equal(t, NewPoint3(1, 0, 0), root.Hyperplane.Point)
	require.Equal(t, NewVector3(0, -1, 0), root.Hyperplane.Normal)

	require.Equal(t, []string{"pivot", "along"}, root.Objects.Tags())
	require.Equal(t, []string{"below"}, root.Front.Objects.Tags())
	require.Equal(t, []string{"above"}, root.Back.Objects.Tags())
	require.Equal(t, 1, root.Depth())
	require.False(t, root.IsLeaf())

	// children face the parent's normal turned a quarter either way
	requireVecEqual(t, NewVector3(0, -1, 0), root.Front.Normal)
	require.Equal(t, NewPoint3(1, -1, 0), root.Front.Center)
	require.Equal(t, NewPoint3(1, 1, 0), root.Back.Center)
}

func TestDivideChildNormalsRotate(t *testing.T) {
	east := NewVector3(1, 0, 0)
	root := NewRootNode(
		mustSegment(t, NewPoint3(0, 0, 0), NewPoint3(0, 0, 2), east, "pivot"),
		mustSegment(t, NewPoint3(1, 0, 0), NewPoint3(1, 0, 2), east, "east"),
		mustSegment(t, NewPoint3(-1, 0, 0), NewPoint3(-1, 0, 2), east, "west"),
	)

	require.NoError(t, NewDivider(2).Divide(root, 1))
	require.Equal(t, []string{"east"}, root.Front.Objects.Tags())
	require.Equal(t, []string{"west"}, root.Back.Objects.Tags())

	requireVecEqual(t, NewVector3(0, 0, -1), root.Front.Normal)
	requireVecEqual(t, NewVector3(0, 0, 1), root.Back.Normal)
	requireVecEqual(t, NewVector3(0, 0, -1), root.Front.Hyperplane.Normal)
	requireVecEqual(t, NewPoint3(1, 0, 1), root.Front.Hyperplane.Point)
}

func TestDivideLeaf(t *testing.T) {
	root := NewRootNode(grid(1, 4)...)
	d := NewDivider(5)

	require.True(t, d.IsLeaf(root))
	require.NoError(t, d.Divide(root, Unlimited))
	require.True(t, root.IsLeaf())
	require.False(t, root.HasChildren())
	require.Nil(t, root.Hyperplane)
	require.Len(t, root.Objects, 4)

	require.NoError(t, NewDivider(5).Divide(NewRootNode(), Unlimited))
}

func TestDivideSplitsStraddlingSegments(t *testing.T) {
	down := NewVector3(0, -1, 0)
	root := NewRootNode(
		mustSegment(t, NewPoint3(0, 0, 0), NewPoint3(2, 0, 0), down, "pivot"),
		mustSegment(t, NewPoint3(5, -1, 0), NewPoint3(5, 3, 0), NewVector3(1, 0, 0), "post"),
	)

	require.NoError(t, NewDivider(2).Divide(root, 1))
	require.Equal(t, []string{"pivot"}, root.Objects.Tags())
	require.Equal(t, []string{"post.1"}, root.Front.Objects.Tags())
	require.Equal(t, []string{"post.2"}, root.Back.Objects.Tags())
	require.Equal(t, NewPoint3(5, 0, 0), root.Front.Objects[0].P2)
}

func TestDivideIsIdempotent(t *testing.T) {
	root := NewRootNode(grid(5, 5)...)
	d := NewDivider(5)
	require.NoError(t, d.Divide(root, Unlimited))

	ids := nodeIDs(root)
	counts := objectCounts(root)
	require.Greater(t, len(ids), 1)

	require.NoError(t, d.Divide(root, 0))
	require.Equal(t, ids, nodeIDs(root))
	require.Equal(t, counts, objectCounts(root))

	require.NoError(t, d.Divide(root, Unlimited))
	require.Equal(t, ids, nodeIDs(root))
	require.Equal(t, counts, objectCounts(root))
}

func TestDivideDepthBound(t *testing.T) {
	for depth := 1; depth <= 4; depth++ {
		t.Run(fmt.Sprintf("depth %d", depth), func(t *testing.T) {
			root := NewRootNode(grid(6, 6)...)
			require.NoError(t, NewDivider(2).Divide(root, depth))
			require.LessOrEqual(t, root.Depth(), depth)
			require.Len(t, root.AllObjects(), 36)
		})
	}
}

func TestDivideRepeatedlyDeepens(t *testing.T) {
	root := NewRootNode(grid(6, 6)...)
	d := NewDivider(2)

	rootID := root.ID
	previous := 0
	for i := 1; i <= 3; i++ {
		require.NoError(t, d.Divide(root, 1))
		require.Equal(t, rootID, root.ID)
		require.Greater(t, root.Depth(), previous)
		require.LessOrEqual(t, root.Depth(), i)
		previous = root.Depth()
	}
	require.Len(t, root.AllObjects(), 36)
}

func TestDividePushesIntoExistingChildren(t *testing.T) {
	root := NewRootNode(fourSegments(t)...)
	d := NewDivider(4)
	require.NoError(t, d.Divide(root, 1))

	front, back := root.Front, root.Back
	down := NewVector3(0, -1, 0)
	root.PushAll(Objects{
		mustSegment(t, NewPoint3(0, 2, 0), NewPoint3(2, 2, 0), down, "high"),
		mustSegment(t, NewPoint3(0, -2, 0), NewPoint3(2, -2, 0), down, "low"),
	})

	require.NoError(t, d.Divide(root, 1))
	require.Same(t, front, root.Front)
	require.Same(t, back, root.Back)
	require.Equal(t, []string{"pivot", "along"}, root.Objects.Tags())
	require.Equal(t, []string{"below", "low"}, root.Front.Objects.Tags())
	require.Equal(t, []string{"above", "high"}, root.Back.Objects.Tags())
}

func TestDivideCollinearOnlyKeepsDepth(t *testing.T) {
	// Every object lies on the root's plane, so the root moves nothing and
	// does not use up a level.
	down := NewVector3(0, -1, 0)
	var objs Objects
	for i := 0; i < 3; i++ {
		objs = append(objs, mustSegment(t, NewPoint3(float64(i*3), 0, 0), NewPoint3(float64(i*3+2), 0, 0), down, fmt.Sprintf("wall-%d", i)))
	}
	root := NewRootNode(objs...)

	require.NoError(t, NewDivider(2).Divide(root, 1))
	require.Len(t, root.Objects, 3)
	require.Empty(t, root.Front.Objects)
	require.Empty(t, root.Back.Objects)
	require.True(t, root.Front.IsLeaf())
	require.True(t, root.Back.IsLeaf())
}

func TestDivideRecursionLimit(t *testing.T) {
	// Coincident upright posts facing up are cut in half by every plane
	// below them, so only the recursion limit stops the divide.
	var objs Objects
	for i := 0; i < 4; i++ {
		objs = append(objs, mustSegment(t, NewPoint3(1, -1, 1), NewPoint3(1, 1, 1), NewVector3(0, 1, 0), fmt.Sprintf("post-%d", i)))
	}
	root := NewRootNode(objs...)
	d := NewDivider(2)
	d.MaxRecursion = 4

	require.NoError(t, d.Divide(root, Unlimited))
	require.Equal(t, 4, root.Depth())
	require.Len(t, root.AllObjects(), 4*16)
}

func TestDividePivot(t *testing.T) {
	root := NewRootNode(fourSegments(t)...)
	d := NewDivider(4)
	d.Pivot = func(objs Objects) int {
		for i, obj := range objs {
			if obj.Tag == "above" {
				return i
			}
		}
		return 0
	}

	require.NoError(t, d.Divide(root, 1))
	require.Equal(t, "above.hypp", root.Hyperplane.Tag)
	require.Equal(t, []string{"above"}, root.Objects.Tags())
	require.Equal(t, []string{"pivot", "below", "along"}, root.Front.Objects.Tags())
	require.Empty(t, root.Back.Objects)
}

func TestDivideRefreshesLeafOfExistingChild(t *testing.T) {
	root := NewRootNode(fourSegments(t)...)
	d := NewDivider(2)
	require.NoError(t, d.Divide(root, 1))
	require.NoError(t, d.Divide(root, 1))
	require.True(t, root.Front.IsLeaf())

	down := NewVector3(0, -1, 0)
	root.PushAll(Objects{
		mustSegment(t, NewPoint3(0, -2, 0), NewPoint3(2, -2, 0), down, "lower"),
		mustSegment(t, NewPoint3(0, -3, 0), NewPoint3(2, -3, 0), down, "lowest"),
	})
	require.NoError(t, d.Divide(root, 1))

	require.Equal(t, []string{"below", "lower", "lowest"}, root.Front.Objects.Tags())
	require.False(t, root.Front.HasChildren())
	require.False(t, d.IsLeaf(root.Front))
	require.False(t, root.Front.IsLeaf())
	require.True(t, root.Back.IsLeaf())

	require.NoError(t, d.Divide(root, 1))
	require.True(t, root.Front.HasChildren())
	require.False(t, root.Front.IsLeaf())
}

func TestDivideNewChildrenLeafFlag(t *testing.T) {
	root := NewRootNode(fourSegments(t)...)
	require.NoError(t, NewDivider(4).Divide(root, 1))

	// depth ran out before the children were visited
	require.True(t, root.Front.IsLeaf())
	require.True(t, root.Back.IsLeaf())
}

func TestDivideErrors(t *testing.T) {
	down := NewVector3(0, -1, 0)

	t.Run("parallel split", func(t *testing.T) {
		sliver := mustSegment(t, NewPoint3(0, 1e-14, 0), NewPoint3(10, -1e-14, 0), down, "sliver")
		root := NewRootNode(
			mustSegment(t, NewPoint3(0, 0, 0), NewPoint3(2, 0, 0), NewVector3(0, 1, 0), "pivot"),
			sliver,
		)
		before := append(Objects{}, root.Objects...)

		err := NewDivider(2).Divide(root, Unlimited)
		require.Error(t, err)
		require.True(t, IsParallelSplit(err))
		require.Equal(t, before, root.Objects)
		require.False(t, root.HasChildren())
	})

	t.Run("pivot without a normal", func(t *testing.T) {
		flat := &Segment{
			P1:     NewPoint3(0, 0, 0),
			P2:     NewPoint3(2, 0, 0),
			Center: NewPoint3(1, 0, 0),
			Tag:    "flat",
		}
		root := NewRootNode(flat, mustSegment(t, NewPoint3(0, 1, 0), NewPoint3(2, 1, 0), down, "wall"))
		before := append(Objects{}, root.Objects...)

		err := NewDivider(2).Divide(root, Unlimited)
		require.Error(t, err)
		require.True(t, IsDegenerateVector(err))
		require.Equal(t, before, root.Objects)
		require.Nil(t, root.Hyperplane)
		require.False(t, root.HasChildren())
	})
}
