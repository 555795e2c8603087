package services

import "github.com/Rakhulsr/go-catalog/app/models"

// CollectionNode is a collection together with its nested children.
type CollectionNode struct {
	models.Collection
	Children []*CollectionNode `json:"children"`
}

// BuildCollectionTree nests a flat list of collections. Roots are the rows
// whose parent is rootID (nil means top level). With promoteOrphans, rows
// whose parent is not part of the list are treated as roots too; otherwise
// they are dropped. Sibling order follows the input order and every row is
// emitted at most once.
func BuildCollectionTree(collections []models.Collection, rootID *uint, promoteOrphans bool) []*CollectionNode {
	present := make(map[uint]bool, len(collections))
	for _, c := range collections {
		present[c.ID] = true
	}

	byParent := make(map[uint][]models.Collection)
	var roots []models.Collection
	for _, c := range collections {
		switch {
		case rootID == nil && c.ParentID == nil:
			roots = append(roots, c)
		case rootID != nil && c.ParentID != nil && *c.ParentID == *rootID:
			roots = append(roots, c)
		case c.ParentID != nil && present[*c.ParentID]:
			byParent[*c.ParentID] = append(byParent[*c.ParentID], c)
		case promoteOrphans && rootID == nil:
			roots = append(roots, c)
		}
	}

	visited := make(map[uint]bool, len(collections))
	var attach func(c models.Collection) *CollectionNode
	attach = func(c models.Collection) *CollectionNode {
		visited[c.ID] = true
		node := &CollectionNode{Collection: c, Children: []*CollectionNode{}}
		for _, child := range byParent[c.ID] {
			if visited[child.ID] {
				continue
			}
			node.Children = append(node.Children, attach(child))
		}
		return node
	}

	tree := make([]*CollectionNode, 0, len(roots))
	for _, r := range roots {
		if visited[r.ID] {
			continue
		}
		tree = append(tree, attach(r))
	}
	return tree
}
