// Package hierarchy assembles the nested category tree of a menu from
// the flat rows stored in the database, and flattens it back.
package hierarchy

import (
	"sort"

	"menucraft-api/apperr"
	"menucraft-api/models"
)

// CategoryNode is one level of the presentation tree. Subcategories is
// always non-nil so renderers never see a null list.
type CategoryNode struct {
	models.Category
	Subcategories []*CategoryNode `json:"subcategories"`
	Items         []models.Item   `json:"items"`
}

// BuildTree groups categories by parent starting from the nil root,
// ordered by DisplayOrder ascending at every level. Categories whose
// parent chain loops back on itself make the forest unrenderable and
// are rejected outright.
func BuildTree(categories []models.Category) ([]*CategoryNode, error) {
	byID := make(map[uint]models.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	// Reject parent cycles before recursing.
	for _, c := range categories {
		visited := map[uint]bool{c.ID: true}
		for p := c.ParentID; p != nil; {
			if visited[*p] {
				return nil, apperr.Invalid("category parent chain contains a cycle")
			}
			visited[*p] = true
			parent, ok := byID[*p]
			if !ok {
				break
			}
			p = parent.ParentID
		}
	}

	children := make(map[uint][]models.Category)
	var roots []models.Category
	for _, c := range categories {
		// A category whose parent is absent from the input (e.g. the
		// parent is hidden) is dropped along with its subtree.
		if c.ParentID == nil {
			roots = append(roots, c)
		} else if _, ok := byID[*c.ParentID]; ok {
			children[*c.ParentID] = append(children[*c.ParentID], c)
		}
	}

	var build func(cats []models.Category) []*CategoryNode
	build = func(cats []models.Category) []*CategoryNode {
		sort.SliceStable(cats, func(i, j int) bool {
			return cats[i].DisplayOrder < cats[j].DisplayOrder
		})
		nodes := make([]*CategoryNode, 0, len(cats))
		for _, c := range cats {
			nodes = append(nodes, &CategoryNode{
				Category:      c,
				Subcategories: build(children[c.ID]),
				Items:         []models.Item{},
			})
		}
		return nodes
	}
	return build(roots), nil
}

// Flatten is the inverse of BuildTree: a depth-first walk emitting
// each node's Category row, parents before children.
func Flatten(nodes []*CategoryNode) []models.Category {
	var out []models.Category
	var walk func(nodes []*CategoryNode)
	walk = func(nodes []*CategoryNode) {
		for _, n := range nodes {
			out = append(out, n.Category)
			walk(n.Subcategories)
		}
	}
	walk(nodes)
	return out
}
