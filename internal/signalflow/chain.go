package signalflow

import (
	"strings"

	"go.uber.org/zap"
)

// DefaultBottleneckThreshold is the degree above which a node is
// reported by FindBottlenecks when no threshold is given.
const DefaultBottleneckThreshold = 5

// FormatConversion records a signal format change at a node along a path.
type FormatConversion struct {
	Point string `json:"point"`
	From  string `json:"from"`
	To    string `json:"to"`
}

// PathAnalysis describes one simple path between the queried endpoints.
type PathAnalysis struct {
	Path              []string           `json:"path"`
	Length            int                `json:"length"`
	RouterHops        int                `json:"router_hops"`
	FormatConversions []FormatConversion `json:"format_conversions,omitempty"`
	CriticalPoints    []string           `json:"critical_points,omitempty"`
}

// ChainAnalysis is the result of AnalyzeSignalChain. NoPath is set when
// the endpoints exist but no route connects them; that is a finding, not
// an error.
type ChainAnalysis struct {
	Start          string         `json:"start"`
	End            string         `json:"end"`
	NoPath         bool           `json:"no_path"`
	PathsFound     int            `json:"paths_found"`
	Paths          []PathAnalysis `json:"paths,omitempty"`
	RedundantPaths bool           `json:"redundant_paths"`
	Shortest       *PathAnalysis  `json:"shortest,omitempty"`
}

// AnalyzeSignalChain enumerates every simple path from start to end and
// annotates each with its hop count, router traversals, format
// conversions, and critical points. Path length counts edges, so a
// direct connection has length 1.
func (g *Graph) AnalyzeSignalChain(start, end string) ChainAnalysis {
	result := ChainAnalysis{Start: start, End: end}

	paths := g.simplePaths(start, end)
	if len(paths) == 0 {
		g.logger.Info("no signal path",
			zap.String("start", start), zap.String("end", end))
		result.NoPath = true
		return result
	}

	result.PathsFound = len(paths)
	result.RedundantPaths = len(paths) > 1
	result.Paths = make([]PathAnalysis, 0, len(paths))
	for _, p := range paths {
		pa := PathAnalysis{
			Path:              p,
			Length:            len(p) - 1,
			RouterHops:        g.countRouterHops(p),
			FormatConversions: g.formatConversions(p),
			CriticalPoints:    g.criticalPoints(p),
		}
		result.Paths = append(result.Paths, pa)
		if result.Shortest == nil || pa.Length < result.Shortest.Length {
			cp := pa
			result.Shortest = &cp
		}
	}
	return result
}

// simplePaths returns every cycle-free path from start to end, each as a
// slice of node keys including both endpoints. Neighbor expansion is
// sorted, so the enumeration order is stable across runs.
func (g *Graph) simplePaths(start, end string) [][]string {
	if _, ok := g.nodes[start]; !ok {
		return nil
	}
	if _, ok := g.nodes[end]; !ok {
		return nil
	}

	var found [][]string
	visited := map[string]bool{start: true}
	path := []string{start}

	var walk func(node string)
	walk = func(node string) {
		if node == end {
			cp := make([]string, len(path))
			copy(cp, path)
			found = append(found, cp)
			return
		}
		for _, next := range g.successors(node) {
			if visited[next] {
				continue
			}
			visited[next] = true
			path = append(path, next)
			walk(next)
			path = path[:len(path)-1]
			visited[next] = false
		}
	}
	walk(start)
	return found
}

// countRouterHops counts path nodes whose key marks router hardware.
func (g *Graph) countRouterHops(path []string) int {
	hops := 0
	for _, key := range path {
		if strings.Contains(key, "EQX") || strings.Contains(key, "RTR") {
			hops++
		}
	}
	return hops
}

// formatConversions reports every node where the signal format changes
// from the previous node. Nodes without a recorded format are skipped.
func (g *Graph) formatConversions(path []string) []FormatConversion {
	var conversions []FormatConversion
	prev := ""
	for _, key := range path {
		node, ok := g.nodes[key]
		if !ok || node.SignalFormat == "" {
			continue
		}
		if prev != "" && node.SignalFormat != prev {
			conversions = append(conversions, FormatConversion{
				Point: key,
				From:  prev,
				To:    node.SignalFormat,
			})
		}
		prev = node.SignalFormat
	}
	return conversions
}

// criticalPoints returns path nodes that are single points of failure:
// nodes explicitly flagged via MarkCritical, plus any node with total
// degree 1.
func (g *Graph) criticalPoints(path []string) []string {
	var points []string
	for _, key := range path {
		if g.critical[key] || g.InDegree(key)+g.OutDegree(key) == 1 {
			points = append(points, key)
		}
	}
	return points
}

// Bottleneck is a node whose fan-in or fan-out exceeds the query
// threshold.
type Bottleneck struct {
	Node      string `json:"node"`
	InDegree  int    `json:"in_degree"`
	OutDegree int    `json:"out_degree"`
}

// FindBottlenecks reports nodes whose in-degree or out-degree exceeds
// threshold, sorted by node key. A threshold of zero or less uses
// DefaultBottleneckThreshold.
func (g *Graph) FindBottlenecks(threshold int) []Bottleneck {
	if threshold <= 0 {
		threshold = DefaultBottleneckThreshold
	}
	var found []Bottleneck
	for _, key := range g.nodeKeys() {
		in, out := g.InDegree(key), g.OutDegree(key)
		if in > threshold || out > threshold {
			found = append(found, Bottleneck{Node: key, InDegree: in, OutDegree: out})
		}
	}
	return found
}
