// Package signalflow builds a directed topology graph over resolved
// broadcast devices and answers path, redundancy, and bottleneck queries
// against it.
//
// The graph is owned by a single analyzer instance and mutated only
// through AddNode/AddPath; queries are read-only. Broadcast topologies
// can legitimately loop through routers, so no acyclicity is assumed or
// enforced anywhere.
package signalflow

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// SignalNode is a point in the signal chain. Its identity inside a graph
// is Key(): room, rack, and device ID joined with underscores. Adding a
// node under an existing key overwrites the previous attributes
// (last-write-wins, no merge).
type SignalNode struct {
	DeviceID     string            `json:"device_id"`
	DeviceType   string            `json:"device_type,omitempty"`
	Room         string            `json:"room"`
	Rack         string            `json:"rack"`
	Connector    string            `json:"connector,omitempty"`
	SignalFormat string            `json:"signal_format,omitempty"`
	Attributes   map[string]string `json:"attributes,omitempty"`
}

// Key returns the node's graph identity.
func (n SignalNode) Key() string {
	return fmt.Sprintf("%s_%s_%s", n.Room, n.Rack, n.DeviceID)
}

// Path is a directed signal run between two nodes.
type Path struct {
	Source      SignalNode `json:"source"`
	Destination SignalNode `json:"destination"`
	CableID     string     `json:"cable_id,omitempty"`
	RouterPath  []string   `json:"router_path,omitempty"`
	Active      bool       `json:"active"`
}

type edge struct {
	cableID    string
	routerPath []string
	active     bool
}

// Graph is the directed signal-flow topology.
type Graph struct {
	logger   *zap.Logger
	nodes    map[string]SignalNode
	out      map[string]map[string]edge
	in       map[string]map[string]edge
	critical map[string]bool
}

// NewGraph creates an empty graph. A nil logger disables logging.
func NewGraph(logger *zap.Logger) *Graph {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Graph{
		logger:   logger,
		nodes:    make(map[string]SignalNode),
		out:      make(map[string]map[string]edge),
		in:       make(map[string]map[string]edge),
		critical: make(map[string]bool),
	}
}

// AddNode inserts or replaces a node. Re-adding an existing key
// overwrites all prior attributes.
func (g *Graph) AddNode(n SignalNode) {
	key := n.Key()
	if _, exists := g.nodes[key]; exists {
		g.logger.Debug("node overwritten", zap.String("node", key))
	}
	g.nodes[key] = n
}

// AddPath inserts or replaces the directed edge between the path's
// endpoints. Endpoint nodes missing from the graph are registered;
// endpoints already present keep their attributes (only AddNode
// overwrites nodes). Re-adding an existing edge overwrites its
// attributes.
func (g *Graph) AddPath(p Path) {
	src := p.Source.Key()
	dst := p.Destination.Key()
	if _, ok := g.nodes[src]; !ok {
		g.nodes[src] = p.Source
	}
	if _, ok := g.nodes[dst]; !ok {
		g.nodes[dst] = p.Destination
	}

	e := edge{cableID: p.CableID, routerPath: p.RouterPath, active: p.Active}
	if g.out[src] == nil {
		g.out[src] = make(map[string]edge)
	}
	if g.in[dst] == nil {
		g.in[dst] = make(map[string]edge)
	}
	g.out[src][dst] = e
	g.in[dst][src] = e
}

// MarkCritical flags a node key so chain analyses report it among a
// path's critical points regardless of its degree.
func (g *Graph) MarkCritical(nodeKey string) {
	g.critical[nodeKey] = true
}

// Node returns the node stored under key.
func (g *Graph) Node(key string) (SignalNode, bool) {
	n, ok := g.nodes[key]
	return n, ok
}

// NodeCount returns the number of registered nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// InDegree returns the number of edges arriving at the node.
func (g *Graph) InDegree(key string) int { return len(g.in[key]) }

// OutDegree returns the number of edges leaving the node.
func (g *Graph) OutDegree(key string) int { return len(g.out[key]) }

// successors returns the node's outgoing neighbor keys, sorted so path
// enumeration is deterministic.
func (g *Graph) successors(key string) []string {
	next := make([]string, 0, len(g.out[key]))
	for dst := range g.out[key] {
		next = append(next, dst)
	}
	sort.Strings(next)
	return next
}

// nodeKeys returns all node keys, sorted.
func (g *Graph) nodeKeys() []string {
	keys := make([]string, 0, len(g.nodes))
	for k := range g.nodes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
