package main

import (
	"testing"

	"github.com/tinrooster/dwg2xls2/internal/facility"
	"github.com/tinrooster/dwg2xls2/pkg/models"
)

func testManager(t *testing.T) *facility.Manager {
	t.Helper()
	m, err := facility.NewManager([]facility.RackSeries{
		{Prefix: "CB", StartNumber: 1, EndNumber: 5, Type: facility.RackCustom, Room: facility.RoomMCR},
	})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestResolveRack(t *testing.T) {
	m := testManager(t)

	if info := resolveRack(m, "CB03", 0.7); info == nil || info.Room != facility.RoomMCR {
		t.Fatalf("resolveRack(CB03) = %+v, want MCR rack", info)
	}
	// Hand-entered run sheets confuse O and 0.
	if info := resolveRack(m, "CBO3", 0.7); info == nil || info.RackID != "CB03" {
		t.Errorf("resolveRack(CBO3) = %+v, want CB03", info)
	}
	if info := resolveRack(m, "CBO3", 0.95); info != nil {
		t.Errorf("resolveRack(CBO3) above cutoff = %+v, want nil", info)
	}
}

func TestBuildSignalGraph(t *testing.T) {
	m := testManager(t)
	conns := []models.SignalConnection{
		{Number: "1001", OriginDevice: "CB01", DestDevice: "CB02"},
		{Number: "1002", OriginDevice: "CB01", DestDevice: "CB03"},
		{Number: "1003", OriginDevice: "", DestDevice: "CB04"},
	}

	g := buildSignalGraph(conns, m, 0.7, nil)
	if g.NodeCount() != 3 {
		t.Fatalf("NodeCount = %d, want 3", g.NodeCount())
	}
	if n, ok := g.Node("MCR_CB01_CB01"); !ok || n.Room != "MCR" {
		t.Errorf("Node(MCR_CB01_CB01) = %+v %v, want MCR node", n, ok)
	}

	found := g.FindBottlenecks(1)
	if len(found) != 1 {
		t.Fatalf("FindBottlenecks(1) = %v, want one entry", found)
	}
	if found[0].Node != "MCR_CB01_CB01" || found[0].OutDegree != 2 {
		t.Errorf("bottleneck = %+v, want MCR_CB01_CB01 with out-degree 2", found[0])
	}
}
