// Package graph owns the shape of the widget tree: parent and child edges
// between integer node handles, plus a free list of reclaimed handles.
//
// The graph knows nothing about widgets. Callers keep per-node data in slices
// indexed by [ID], and the graph guarantees that an ID handed out by
// [Graph.AllocNode] is either fresh (the slices must grow) or a reclaimed
// handle whose old edges have been cleared.
//
// Creating a cycle is a programmer error. The graph does not detect cycles;
// a cyclic tree makes every recursive traversal loop forever.
package graph

import (
	"fmt"
	"slices"

	"github.com/go-drift/retained/pkg/errors"
)

// ID identifies a node. IDs are only meaningful to the Graph that issued them
// and may be reused after the node's subtree is freed.
type ID int

// None is the explicit "no node" marker: the parent of the root and of
// detached nodes, and the empty value for interaction singletons.
const None ID = -1

// IsValid reports whether id refers to a node rather than None.
func (id ID) IsValid() bool {
	return id >= 0
}

func (id ID) String() string {
	if id == None {
		return "none"
	}
	return fmt.Sprintf("#%d", int(id))
}

// Graph is an append-only arena of nodes with a free list.
type Graph struct {
	root     ID
	parent   []ID
	children [][]ID
	live     []bool
	free     []ID
}

// New returns an empty graph with no root.
func New() *Graph {
	return &Graph{root: None}
}

// Len returns the number of slots ever allocated, live or free. Per-node
// slices kept alongside the graph must have this length.
func (g *Graph) Len() int {
	return len(g.parent)
}

// Root returns the root node, or None if no root has been set.
func (g *Graph) Root() ID {
	return g.root
}

// SetRoot designates the root node.
func (g *Graph) SetRoot(root ID) {
	g.mustLive("graph.SetRoot", root)
	g.root = root
}

// IsRoot reports whether id is the current root.
func (g *Graph) IsRoot(id ID) bool {
	return id.IsValid() && id == g.root
}

// IsLive reports whether id is allocated and not yet freed.
func (g *Graph) IsLive(id ID) bool {
	return id >= 0 && int(id) < len(g.live) && g.live[id]
}

// Parent returns the parent of id. The second result is false for the root
// and for detached nodes.
func (g *Graph) Parent(id ID) (ID, bool) {
	g.mustLive("graph.Parent", id)
	p := g.parent[id]
	return p, p.IsValid()
}

// Children returns the ordered children of id, back to front. The slice is
// owned by the graph and must not be modified.
func (g *Graph) Children(id ID) []ID {
	g.mustLive("graph.Children", id)
	return g.children[id]
}

// AllocNode returns a handle for a new detached node, reusing a freed handle
// when one is available.
func (g *Graph) AllocNode() ID {
	if n := len(g.free); n > 0 {
		id := g.free[n-1]
		g.free = g.free[:n-1]
		g.parent[id] = None
		g.children[id] = nil
		g.live[id] = true
		return id
	}
	id := ID(len(g.parent))
	g.parent = append(g.parent, None)
	g.children = append(g.children, nil)
	g.live = append(g.live, true)
	return id
}

// AppendChild attaches child as the last (topmost) child of parent.
func (g *Graph) AppendChild(parent, child ID) {
	g.mustAttachable("graph.AppendChild", parent, child)
	g.children[parent] = append(g.children[parent], child)
	g.parent[child] = parent
}

// AddBefore attaches child immediately before sibling in parent's child list.
func (g *Graph) AddBefore(parent, sibling, child ID) {
	g.mustAttachable("graph.AddBefore", parent, child)
	ix := slices.Index(g.children[parent], sibling)
	if ix < 0 {
		panic(&errors.TreeError{Op: "graph.AddBefore", ID: int(sibling), Reason: fmt.Sprintf("not a child of %v", parent)})
	}
	g.children[parent] = slices.Insert(g.children[parent], ix, child)
	g.parent[child] = parent
}

// RemoveChild detaches child from parent. The child and its subtree stay
// allocated; the caller must reattach or free it.
func (g *Graph) RemoveChild(parent, child ID) {
	g.mustLive("graph.RemoveChild", parent)
	g.mustLive("graph.RemoveChild", child)
	ix := slices.Index(g.children[parent], child)
	if ix < 0 {
		panic(&errors.TreeError{Op: "graph.RemoveChild", ID: int(child), Reason: fmt.Sprintf("not a child of %v", parent)})
	}
	g.children[parent] = slices.Delete(g.children[parent], ix, ix+1)
	g.parent[child] = None
}

// FreeSubtree releases node and all of its descendants, returning the freed
// IDs in pre-order. The node should already be detached from its parent.
func (g *Graph) FreeSubtree(node ID) []ID {
	g.mustLive("graph.FreeSubtree", node)
	var freed []ID
	g.Walk(node, func(id ID) {
		freed = append(freed, id)
	})
	for _, id := range freed {
		g.live[id] = false
		g.parent[id] = None
		g.children[id] = nil
		g.free = append(g.free, id)
	}
	if g.root.IsValid() && !g.live[g.root] {
		g.root = None
	}
	return freed
}

// Walk calls fn for node and every descendant in pre-order (paint order).
func (g *Graph) Walk(node ID, fn func(ID)) {
	fn(node)
	for _, child := range g.children[node] {
		g.Walk(child, fn)
	}
}

// Contains reports whether node lies in the subtree rooted at ancestor.
func (g *Graph) Contains(ancestor, node ID) bool {
	for id := node; id.IsValid(); id = g.parent[id] {
		if id == ancestor {
			return true
		}
	}
	return false
}

func (g *Graph) mustLive(op string, id ID) {
	if !g.IsLive(id) {
		panic(&errors.TreeError{Op: op, ID: int(id), Reason: "not a live node"})
	}
}

func (g *Graph) mustAttachable(op string, parent, child ID) {
	g.mustLive(op, parent)
	g.mustLive(op, child)
	if g.parent[child].IsValid() {
		panic(&errors.TreeError{Op: op, ID: int(child), Reason: fmt.Sprintf("already a child of %v", g.parent[child])})
	}
	if child == g.root {
		panic(&errors.TreeError{Op: op, ID: int(child), Reason: "the root cannot be attached"})
	}
}
