package graph

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

const (
	// OutputIndex is the node index of the designated Output node.
	OutputIndex = 0
	// InputIndex is the node index of the designated Input node.
	InputIndex = 1
)

// Connection is a directed edge from output slot FromOutput of node From to
// input slot ToInput of node To. Nodes are addressed by their index in the
// owning graph.
type Connection struct {
	From       int
	FromOutput int
	To         int
	ToInput    int
}

// String renders the connection as "from: out --> to: in".
func (c Connection) String() string {
	return fmt.Sprintf("%d: %d --> %d: %d", c.From, c.FromOutput, c.To, c.ToInput)
}

// Graph is a typed dataflow program under construction. Every input slot
// receives at most one connection. A graph is complete when every input slot
// of every node has exactly one connection.
//
// Graphs returned by NewGraph or Expand are owned by the caller until they
// are published (e.g. pushed to a search tree); after that they must be
// treated as immutable.
type Graph struct {
	name        string
	nodes       []*NodeType
	connections []Connection
	complete    bool
}

// NewGraph creates a root graph holding only an Output node and an Input node.
// It fails with ErrConfiguration if output is not an Output role node type or
// input is not an Input role node type.
func NewGraph(name string, input, output *NodeType) (*Graph, error) {
	if output == nil || !output.IsOutputRole() {
		return nil, fmt.Errorf("%w: graph %q: designated output node type is not an output node", ErrConfiguration, name)
	}
	if input == nil || !input.IsInputRole() {
		return nil, fmt.Errorf("%w: graph %q: designated input node type is not an input node", ErrConfiguration, name)
	}
	g := &Graph{
		name:  name,
		nodes: []*NodeType{output, input},
	}
	g.complete = g.computeComplete()
	return g, nil
}

// Name returns the graph name. Children inherit the name of their parent.
func (g *Graph) Name() string { return g.name }

// IsComplete reports whether every input slot has exactly one connection.
func (g *Graph) IsComplete() bool { return g.complete }

// NodeCount returns the number of nodes, including the Input and Output nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// Node returns the node type of the node at index i.
func (g *Graph) Node(i int) *NodeType { return g.nodes[i] }

// Nodes returns a copy of the node list.
func (g *Graph) Nodes() []*NodeType { return slices.Clone(g.nodes) }

// ConnectionCount returns the number of connections.
func (g *Graph) ConnectionCount() int { return len(g.connections) }

// Connections returns a copy of the connection list, in insertion order.
func (g *Graph) Connections() []Connection { return slices.Clone(g.connections) }

// OutputNode returns the node type of the designated Output node.
func (g *Graph) OutputNode() *NodeType { return g.nodes[OutputIndex] }

// InputNode returns the node type of the designated Input node.
func (g *Graph) InputNode() *NodeType { return g.nodes[InputIndex] }

// IncomingConnection returns the connection feeding input slot in of node n.
func (g *Graph) IncomingConnection(n, in int) (Connection, bool) {
	for _, c := range g.connections {
		if c.To == n && c.ToInput == in {
			return c, true
		}
	}
	return Connection{}, false
}

// String renders the graph as a node list followed by a connection list.
func (g *Graph) String() string {
	var sb strings.Builder
	for i, n := range g.nodes {
		sb.WriteString(strconv.Itoa(i))
		sb.WriteString(" = ")
		sb.WriteString(n.String())
		sb.WriteByte('\n')
	}
	for _, c := range g.connections {
		sb.WriteString(c.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// clone returns a deep copy of g with room for one more node and connection.
func (g *Graph) clone() *Graph {
	nodes := make([]*NodeType, len(g.nodes), len(g.nodes)+1)
	copy(nodes, g.nodes)
	connections := make([]Connection, len(g.connections), len(g.connections)+1)
	copy(connections, g.connections)
	return &Graph{
		name:        g.name,
		nodes:       nodes,
		connections: connections,
	}
}

// filledSlots returns, per node, which input slots currently have a connection.
func (g *Graph) filledSlots() [][]bool {
	filled := make([][]bool, len(g.nodes))
	for i, n := range g.nodes {
		filled[i] = make([]bool, n.InputCount())
	}
	for _, c := range g.connections {
		filled[c.To][c.ToInput] = true
	}
	return filled
}

func (g *Graph) computeComplete() bool {
	for _, slots := range g.filledSlots() {
		for _, ok := range slots {
			if !ok {
				return false
			}
		}
	}
	return true
}
