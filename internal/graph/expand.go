package graph

// Catalog supplies the node types that may be added to a graph during
// expansion. Implementations must return the same sequence on every call
// while a search is running.
type Catalog interface {
	NodeTypes() []*NodeType
}

// Expand returns every legal one-connection extension of g. The result is
// empty when g has no open input slot or when no candidate can feed it.
func (g *Graph) Expand(cat Catalog) []*Graph {
	return g.AppendChildren(nil, cat)
}

// AppendChildren appends every legal one-connection extension of g to dst and
// returns the extended slice.
//
// The open slot is the first unfilled leading input of the most recently
// added node that still has one. It is fed either by an output of an existing
// node that does not depend on the open node, or by an output of a freshly
// appended node of any interior node type in cat. Children are emitted in a
// fixed order: existing nodes by index, then node types in catalog order,
// output slots ascending within each.
func (g *Graph) AppendChildren(dst []*Graph, cat Catalog) []*Graph {
	filled := g.filledSlots()
	node, input, ok := nextOpenSlot(g, filled)
	if !ok {
		return dst
	}
	want := g.nodes[node].Input(input)

	blocked := g.descendants(node)
	for other, nt := range g.nodes {
		if blocked[other] {
			continue
		}
		for out := 0; out < nt.OutputCount(); out++ {
			if !nt.Output(out).IsInstanceOf(want) {
				continue
			}
			child := g.clone()
			child.connections = append(child.connections, Connection{From: other, FromOutput: out, To: node, ToInput: input})
			child.complete = child.computeComplete()
			dst = append(dst, child)
		}
	}

	if cat == nil {
		return dst
	}
	for _, nt := range cat.NodeTypes() {
		if nt.IsInputRole() || nt.IsOutputRole() {
			continue
		}
		for out := 0; out < nt.OutputCount(); out++ {
			if !nt.Output(out).IsInstanceOf(want) {
				continue
			}
			child := g.clone()
			child.nodes = append(child.nodes, nt)
			child.connections = append(child.connections, Connection{From: len(child.nodes) - 1, FromOutput: out, To: node, ToInput: input})
			child.complete = child.computeComplete()
			dst = append(dst, child)
		}
	}
	return dst
}

// nextOpenSlot scans nodes from the most recently added to the earliest and
// returns the first one with an unfilled leading input.
func nextOpenSlot(g *Graph, filled [][]bool) (node, input int, ok bool) {
	for i := len(g.nodes) - 1; i >= 0; i-- {
		if in, open := nextOpenIndex(g.nodes[i], filled[i]); open {
			return i, in, true
		}
	}
	return 0, 0, false
}

// nextOpenIndex returns the number of connected leading inputs, or false when
// the node has no inputs or all of them are connected.
func nextOpenIndex(nt *NodeType, filled []bool) (int, bool) {
	if nt.IsInputRole() {
		return 0, false
	}
	n := 0
	for n < len(filled) && filled[n] {
		n++
	}
	if n == len(filled) {
		return 0, false
	}
	return n, true
}

// descendants marks target and every node that target's outputs reach,
// directly or transitively. Connecting any marked node into target would
// close a cycle.
func (g *Graph) descendants(target int) []bool {
	marked := make([]bool, len(g.nodes))
	marked[target] = true
	stack := []int{target}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, c := range g.connections {
			if c.From == n && !marked[c.To] {
				marked[c.To] = true
				stack = append(stack, c.To)
			}
		}
	}
	return marked
}
