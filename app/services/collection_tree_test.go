package services

import (
	"testing"

	"github.com/Rakhulsr/go-catalog/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint { return &v }

func col(id uint, parent *uint) models.Collection {
	return models.Collection{ID: id, Name: "c", ParentID: parent, IsActive: true}
}

// assertTree checks that every child points at its parent and no id repeats.
func assertTree(t *testing.T, nodes []*CollectionNode, parent *uint, seen map[uint]bool) {
	t.Helper()
	for _, n := range nodes {
		require.False(t, seen[n.ID], "collection %d emitted twice", n.ID)
		seen[n.ID] = true
		if parent != nil {
			require.NotNil(t, n.ParentID)
			assert.Equal(t, *parent, *n.ParentID)
		}
		require.NotNil(t, n.Children)
		id := n.ID
		assertTree(t, n.Children, &id, seen)
	}
}

func TestBuildCollectionTree(t *testing.T) {
	rows := []models.Collection{
		col(1, nil),
		col(2, uintPtr(1)),
		col(3, uintPtr(1)),
		col(4, uintPtr(2)),
		col(5, nil),
	}

	tree := BuildCollectionTree(rows, nil, false)

	require.Len(t, tree, 2)
	assert.Equal(t, uint(1), tree[0].ID)
	assert.Equal(t, uint(5), tree[1].ID)
	require.Len(t, tree[0].Children, 2)
	assert.Equal(t, uint(2), tree[0].Children[0].ID)
	assert.Equal(t, uint(3), tree[0].Children[1].ID)
	require.Len(t, tree[0].Children[0].Children, 1)
	assert.Equal(t, uint(4), tree[0].Children[0].Children[0].ID)
	assert.Empty(t, tree[1].Children)

	assertTree(t, tree, nil, map[uint]bool{})
}

func TestBuildCollectionTreeFromParent(t *testing.T) {
	rows := []models.Collection{
		col(1, nil),
		col(2, uintPtr(1)),
		col(3, uintPtr(2)),
		col(4, nil),
	}

	tree := BuildCollectionTree(rows, uintPtr(1), false)

	require.Len(t, tree, 1)
	assert.Equal(t, uint(2), tree[0].ID)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, uint(3), tree[0].Children[0].ID)
}

func TestBuildCollectionTreeOrphans(t *testing.T) {
	// 3's parent (2) is not in the result, e.g. because it is inactive
	rows := []models.Collection{
		col(1, nil),
		col(3, uintPtr(2)),
	}

	dropped := BuildCollectionTree(rows, nil, false)
	require.Len(t, dropped, 1)
	assert.Equal(t, uint(1), dropped[0].ID)

	promoted := BuildCollectionTree(rows, nil, true)
	require.Len(t, promoted, 2)
	assert.Equal(t, uint(3), promoted[1].ID)
}

func TestBuildCollectionTreeSurvivesCycles(t *testing.T) {
	// 2 and 3 point at each other; neither is reachable from a root
	rows := []models.Collection{
		col(1, nil),
		col(2, uintPtr(3)),
		col(3, uintPtr(2)),
		col(4, uintPtr(1)),
	}

	tree := BuildCollectionTree(rows, nil, false)
	seen := map[uint]bool{}
	assertTree(t, tree, nil, seen)
	assert.Len(t, seen, 2)

	promoted := BuildCollectionTree(rows, nil, true)
	assert.Len(t, promoted, 1)
}

func TestBuildCollectionTreeEmpty(t *testing.T) {
	tree := BuildCollectionTree(nil, nil, false)
	assert.NotNil(t, tree)
	assert.Empty(t, tree)
}
