package gmod

// TraversalHandlerResult controls how Traverse proceeds after visiting a
// node (GmodTraversal.cpp's TraversalHandlerResult).
type TraversalHandlerResult int

const (
	// TraversalContinue descends into the visited node's children.
	TraversalContinue TraversalHandlerResult = iota
	// TraversalSkipSubtree visits the node's remaining siblings but none
	// of its own children.
	TraversalSkipSubtree
	// TraversalStop ends the walk immediately.
	TraversalStop
)

// TraversalHandler is called once per node Traverse visits. parents is the
// path of ancestors from the walk's start node (inclusive; the root for
// Traverse) down to node's immediate parent, in root-to-leaf order; the handler must not retain or mutate it.
type TraversalHandler func(parents []GmodNode, node GmodNode) TraversalHandlerResult

// Traverse performs a depth-first walk of the full tree reachable from the
// GMOD root, calling handler once per node. A node reachable through more
// than one parent is visited once per distinct path: the DAG is unrolled
// into its spanning paths rather than collapsed to a visited set
// (GmodTraversal.cpp). PathExistsBetween, by contrast, keeps a visited set.
//
// handler's result steers the walk: TraversalContinue is the normal case,
// TraversalSkipSubtree prunes node's children without stopping the walk,
// and TraversalStop ends it immediately, including across recursion levels.
func (g *Gmod) Traverse(handler TraversalHandler) {
	root, ok := g.RootNode()
	if !ok {
		return
	}
	g.traverse(nil, root, handler, pathWalkLimit)
}

// TraverseFrom is Traverse starting at the node named by code rather than
// the GMOD root. It reports false if code names no node.
func (g *Gmod) TraverseFrom(code string, handler TraversalHandler) bool {
	start, ok := g.TryGetNode(code)
	if !ok {
		return false
	}
	g.traverse(nil, start, handler, pathWalkLimit)
	return true
}

// traverse returns false once handler has requested TraversalStop, so
// callers at every recursion level unwind without visiting further nodes.
func (g *Gmod) traverse(parents []GmodNode, node GmodNode, handler TraversalHandler, depthBudget int) bool {
	switch handler(parents, node) {
	case TraversalStop:
		return false
	case TraversalSkipSubtree:
		return true
	}
	if depthBudget <= 0 {
		return true
	}

	nextParents := append(append([]GmodNode(nil), parents...), node)
	for _, c := range node.children {
		child := g.nodes[c.index]
		if !g.traverse(nextParents, child, handler, depthBudget-1) {
			return false
		}
	}
	return true
}
