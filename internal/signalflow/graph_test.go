package signalflow

import (
	"reflect"
	"testing"
)

func node(id, room, rack string) SignalNode {
	return SignalNode{DeviceID: id, Room: room, Rack: rack}
}

func TestAddNodeOverwrites(t *testing.T) {
	g := NewGraph(nil)
	g.AddNode(SignalNode{DeviceID: "CAM01", Room: "ST1", Rack: "RK1", DeviceType: "camera"})
	g.AddNode(SignalNode{DeviceID: "CAM01", Room: "ST1", Rack: "RK1", DeviceType: "converter"})

	if g.NodeCount() != 1 {
		t.Fatalf("NodeCount = %d, want 1", g.NodeCount())
	}
	n, ok := g.Node("ST1_RK1_CAM01")
	if !ok {
		t.Fatal("node not found after re-add")
	}
	if n.DeviceType != "converter" {
		t.Errorf("DeviceType = %q, want %q (last write wins)", n.DeviceType, "converter")
	}
}

func TestAddPathRegistersEndpoints(t *testing.T) {
	g := NewGraph(nil)
	g.AddPath(Path{Source: node("A", "MCR", "RK1"), Destination: node("B", "MCR", "RK1")})

	if g.NodeCount() != 2 {
		t.Errorf("NodeCount = %d, want 2", g.NodeCount())
	}
	if g.OutDegree("MCR_RK1_A") != 1 || g.InDegree("MCR_RK1_B") != 1 {
		t.Errorf("degrees: out(A)=%d in(B)=%d, want 1/1",
			g.OutDegree("MCR_RK1_A"), g.InDegree("MCR_RK1_B"))
	}
}

func TestAnalyzeSignalChainRedundantPaths(t *testing.T) {
	g := NewGraph(nil)
	a := node("A", "MCR", "RK1")
	b := node("B", "MCR", "RK1")
	c := node("C", "MCR", "RK1")
	g.AddPath(Path{Source: a, Destination: b})
	g.AddPath(Path{Source: b, Destination: c})
	g.AddPath(Path{Source: a, Destination: c})

	result := g.AnalyzeSignalChain("MCR_RK1_A", "MCR_RK1_C")
	if result.NoPath {
		t.Fatal("NoPath = true, want paths")
	}
	if result.PathsFound != 2 {
		t.Fatalf("PathsFound = %d, want 2", result.PathsFound)
	}
	if !result.RedundantPaths {
		t.Error("RedundantPaths = false, want true")
	}
	if result.Shortest == nil || result.Shortest.Length != 1 {
		t.Errorf("Shortest = %+v, want length 1", result.Shortest)
	}
}

func TestAnalyzeSignalChainNoPath(t *testing.T) {
	g := NewGraph(nil)
	g.AddNode(node("A", "MCR", "RK1"))
	g.AddNode(node("B", "MCR", "RK2"))

	result := g.AnalyzeSignalChain("MCR_RK1_A", "MCR_RK2_B")
	if !result.NoPath {
		t.Error("NoPath = false, want true for disconnected endpoints")
	}
	if result.PathsFound != 0 || result.Shortest != nil {
		t.Errorf("PathsFound = %d Shortest = %v, want 0/nil", result.PathsFound, result.Shortest)
	}
}

func TestAnalyzeSignalChainRouterHops(t *testing.T) {
	g := NewGraph(nil)
	cam := node("CAM01", "ST1", "RK1")
	eqx := node("EQX01", "MCR", "RK5")
	mon := node("MON01", "PCR", "RK2")
	g.AddPath(Path{Source: cam, Destination: eqx})
	g.AddPath(Path{Source: eqx, Destination: mon})

	result := g.AnalyzeSignalChain(cam.Key(), mon.Key())
	if result.PathsFound != 1 {
		t.Fatalf("PathsFound = %d, want 1", result.PathsFound)
	}
	if got := result.Paths[0].RouterHops; got != 1 {
		t.Errorf("RouterHops = %d, want 1", got)
	}
}

func TestAnalyzeSignalChainFormatConversions(t *testing.T) {
	g := NewGraph(nil)
	src := SignalNode{DeviceID: "CAM01", Room: "ST1", Rack: "RK1", SignalFormat: "SDI"}
	conv := SignalNode{DeviceID: "GW01", Room: "MCR", Rack: "RK3", SignalFormat: "IP"}
	g.AddPath(Path{Source: src, Destination: conv})

	result := g.AnalyzeSignalChain(src.Key(), conv.Key())
	want := []FormatConversion{{Point: "MCR_RK3_GW01", From: "SDI", To: "IP"}}
	if got := result.Paths[0].FormatConversions; !reflect.DeepEqual(got, want) {
		t.Errorf("FormatConversions = %+v, want %+v", got, want)
	}
}

func TestAnalyzeSignalChainCriticalPoints(t *testing.T) {
	g := NewGraph(nil)
	a := node("A", "MCR", "RK1")
	b := node("B", "MCR", "RK1")
	c := node("C", "MCR", "RK1")
	g.AddPath(Path{Source: a, Destination: b})
	g.AddPath(Path{Source: b, Destination: c})
	g.MarkCritical("MCR_RK1_B")

	result := g.AnalyzeSignalChain("MCR_RK1_A", "MCR_RK1_C")
	want := []string{"MCR_RK1_A", "MCR_RK1_B", "MCR_RK1_C"}
	if got := result.Paths[0].CriticalPoints; !reflect.DeepEqual(got, want) {
		t.Errorf("CriticalPoints = %v, want %v", got, want)
	}
}

func TestFindBottlenecks(t *testing.T) {
	g := NewGraph(nil)
	hub := node("EQX01", "MCR", "RK5")
	for _, id := range []string{"A", "B", "C", "D", "E", "F"} {
		g.AddPath(Path{Source: hub, Destination: node(id, "PCR", "RK2")})
	}

	quiet := node("SW01", "MCR", "RK6")
	for _, id := range []string{"G", "H", "I", "J"} {
		g.AddPath(Path{Source: quiet, Destination: node(id, "PCR", "RK2")})
	}

	found := g.FindBottlenecks(0)
	if len(found) != 1 {
		t.Fatalf("FindBottlenecks = %+v, want only the out-degree-6 node", found)
	}
	if found[0].Node != "MCR_RK5_EQX01" || found[0].OutDegree != 6 {
		t.Errorf("bottleneck = %+v, want MCR_RK5_EQX01 with out-degree 6", found[0])
	}
}
