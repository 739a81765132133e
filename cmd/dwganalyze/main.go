// Command dwganalyze extracts engineering metadata from CAD drawing
// entity exports: device identities, circuit topology, rack layouts,
// and cable run sheets.
//
// Drawing files are JSON arrays of text entities. Each file is handled
// by its own analyzer instance, so a batch fans out across workers with
// no shared mutable state.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/tinrooster/dwg2xls2/internal/cabledb"
	"github.com/tinrooster/dwg2xls2/internal/config"
	"github.com/tinrooster/dwg2xls2/internal/drawing"
	"github.com/tinrooster/dwg2xls2/internal/facility"
	"github.com/tinrooster/dwg2xls2/internal/patterns"
	"github.com/tinrooster/dwg2xls2/internal/router"
	"github.com/tinrooster/dwg2xls2/internal/signalflow"
	"github.com/tinrooster/dwg2xls2/pkg/models"
)

type fileReport struct {
	File        string                             `json:"file"`
	DrawingType models.DrawingType                 `json:"drawing_type"`
	Entities    int                                `json:"entities"`
	Analyses    []drawing.EntityAnalysis           `json:"analyses,omitempty"`
	Devices     []models.ExtractedDevice           `json:"devices,omitempty"`
	Skipped     []drawing.Skip                     `json:"skipped,omitempty"`
	Circuits    map[string]drawing.CircuitAnalysis `json:"circuits,omitempty"`
	Rack        *drawing.RackLayout                `json:"rack,omitempty"`
	Error       string                             `json:"error,omitempty"`
}

type report struct {
	Files       []fileReport                  `json:"files,omitempty"`
	Connections *signalflow.ConnectionSummary `json:"connections,omitempty"`
	Bottlenecks []signalflow.Bottleneck       `json:"bottlenecks,omitempty"`
	Router      *routerReport                 `json:"router,omitempty"`
}

type routerReport struct {
	Configuration router.Configuration `json:"configuration"`
	Utilization   []router.Utilization `json:"utilization,omitempty"`
}

func main() {
	cfgPath := flag.String("config", "", "Path to configuration file")
	outPath := flag.String("out", "", "Write the JSON report here instead of stdout")
	connPath := flag.String("connections", "", "JSON file of cable run sheet rows")
	routerPath := flag.String("router-ports", "", "JSON file of EQX router port assignments")
	persist := flag.Bool("persist", false, "Store parsed connections in the cable database")
	flag.Parse()

	v, err := config.NewViper(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg, err := config.FromViper(v)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger, err := config.NewLogger(v)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	var rep report
	rep.Files = analyzeFiles(flag.Args(), cfg, logger)

	if *connPath != "" {
		summary, bottlenecks, err := processConnections(*connPath, cfg, *persist, logger)
		if err != nil {
			logger.Fatal("connection processing failed", zap.Error(err))
		}
		rep.Connections = summary
		rep.Bottlenecks = bottlenecks
	}

	if *routerPath != "" {
		rr, err := analyzeRouterPorts(*routerPath, cfg)
		if err != nil {
			logger.Fatal("router analysis failed", zap.Error(err))
		}
		rep.Router = rr
	}

	if err := writeReport(rep, *outPath); err != nil {
		logger.Fatal("write report", zap.Error(err))
	}
}

// analyzeFiles fans each drawing file out to its own goroutine with its
// own analyzer instances. Results come back in input order.
func analyzeFiles(files []string, cfg *config.Config, logger *zap.Logger) []fileReport {
	if len(files) == 0 {
		return nil
	}
	reports := make([]fileReport, len(files))
	var wg sync.WaitGroup
	for i, file := range files {
		wg.Add(1)
		go func(i int, file string) {
			defer wg.Done()
			reports[i] = analyzeFile(file, cfg, logger.With(zap.String("file", file)))
		}(i, file)
	}
	wg.Wait()
	return reports
}

func analyzeFile(file string, cfg *config.Config, logger *zap.Logger) fileReport {
	rep := fileReport{File: file}

	entities, err := readEntities(file)
	if err != nil {
		rep.Error = err.Error()
		return rep
	}
	rep.Entities = len(entities)
	rep.DrawingType = drawing.ClassifyDrawing(entities)
	logger.Info("drawing classified",
		zap.String("type", string(rep.DrawingType)),
		zap.Int("entities", len(entities)))

	analyzer, err := drawing.NewContentAnalyzer(logger)
	if err != nil {
		rep.Error = err.Error()
		return rep
	}
	analyzer.SetMaxInputLen(cfg.Analysis.MaxInputLen)
	for _, e := range entities {
		ea, err := analyzer.AnalyzeEntity(e)
		if err != nil {
			logger.Warn("entity analysis failed", zap.Error(err))
			continue
		}
		if len(ea.Matches) > 0 {
			rep.Analyses = append(rep.Analyses, ea)
		}
	}

	switch rep.DrawingType {
	case models.DrawingTypeFloorPlan:
		extraction := drawing.NewDeviceExtractor(logger).ExtractFromFloorplan(entities)
		rep.Devices = extraction.Devices
		rep.Skipped = extraction.Skipped
	case models.DrawingTypeCircuitDiagram:
		circuits, err := drawing.NewCircuitExtractor(logger).ExtractCircuits(entities, cfg.Analysis.Radius)
		if err != nil {
			rep.Error = err.Error()
			return rep
		}
		rep.Circuits = circuits
	}

	rackAnalyzer, err := drawing.NewRackLayoutAnalyzer(cfg.Analysis.CategoryPriority, logger)
	if err != nil {
		rep.Error = err.Error()
		return rep
	}
	rackAnalyzer.SetMaxInputLen(cfg.Analysis.MaxInputLen)
	if layout := rackAnalyzer.AnalyzeRackLayout(entities); len(layout.Mounts) > 0 {
		rep.Rack = &layout
	}
	return rep
}

func readEntities(file string) ([]models.Entity, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var entities []models.Entity
	if err := json.Unmarshal(data, &entities); err != nil {
		return nil, fmt.Errorf("parse %s: %w", file, err)
	}
	return entities, nil
}

func processConnections(path string, cfg *config.Config, persist bool, logger *zap.Logger) (*signalflow.ConnectionSummary, []signalflow.Bottleneck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	var rows []map[string]string
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}

	idx := signalflow.ProcessConnectionData(rows, logger)
	summary := signalflow.SummarizeConnections(idx.Connections)

	manager, err := loadFacility(cfg)
	if err != nil {
		return nil, nil, err
	}
	graph := buildSignalGraph(idx.Connections, manager, cfg.Analysis.FuzzyCutoff, logger)
	bottlenecks := graph.FindBottlenecks(cfg.Analysis.BottleneckThreshold)

	if persist {
		if err := persistConnections(idx.Connections, manager, cfg, logger); err != nil {
			return nil, nil, err
		}
	}
	return &summary, bottlenecks, nil
}

// buildSignalGraph turns parsed run sheet rows into a signal flow graph
// so fan-in and fan-out hot spots show up in the report.
func buildSignalGraph(conns []models.SignalConnection, manager *facility.Manager, cutoff float64, logger *zap.Logger) *signalflow.Graph {
	g := signalflow.NewGraph(logger)
	for _, c := range conns {
		if c.OriginDevice == "" || c.DestDevice == "" {
			continue
		}
		g.AddPath(signalflow.Path{
			Source:      signalNode(c.OriginDevice, manager, cutoff),
			Destination: signalNode(c.DestDevice, manager, cutoff),
			CableID:     c.Number,
			Active:      true,
		})
	}
	return g
}

func signalNode(device string, manager *facility.Manager, cutoff float64) signalflow.SignalNode {
	n := signalflow.SignalNode{DeviceID: device, Rack: device}
	if info := resolveRack(manager, device, cutoff); info != nil {
		n.Room = string(info.Room)
	}
	return n
}

// resolveRack looks the rack ID up in the facility series, falling back
// to fuzzy matching against the known racks. Run sheet text is hand
// entered, so IDs like "CBO2" for CB02 are common.
func resolveRack(manager *facility.Manager, id string, cutoff float64) *facility.RackInfo {
	if info := manager.Resolve(id); info != nil {
		return info
	}
	if match, ok := patterns.BestMatch(id, manager.AllRacks(), cutoff); ok {
		return manager.Resolve(match)
	}
	return nil
}

// persistConnections stores parsed runs in the cable database. Run
// sheet endpoint identifiers are rack IDs, so rooms come from the
// facility series definitions.
func persistConnections(conns []models.SignalConnection, manager *facility.Manager, cfg *config.Config, logger *zap.Logger) error {
	store, err := cabledb.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		return err
	}

	stored := 0
	for _, c := range conns {
		if c.OriginDevice == "" || c.DestDevice == "" {
			continue
		}
		record := cabledb.Connection{
			CableID:         c.Number,
			SourceRack:      c.OriginDevice,
			SourceDevice:    c.OriginDevice,
			SourceConnector: c.OriginPort,
			DestRack:        c.DestDevice,
			DestDevice:      c.DestDevice,
			DestConnector:   c.DestPort,
			Type:            cabledb.CableType(c.WireType),
		}
		if info := resolveRack(manager, c.OriginDevice, cfg.Analysis.FuzzyCutoff); info != nil {
			record.SourceRoom = string(info.Room)
		}
		if info := resolveRack(manager, c.DestDevice, cfg.Analysis.FuzzyCutoff); info != nil {
			record.DestRoom = string(info.Room)
		}
		if _, err := store.AddConnection(ctx, record); err != nil {
			logger.Warn("connection not stored",
				zap.String("number", c.Number), zap.Error(err))
			continue
		}
		stored++
	}
	logger.Info("connections stored",
		zap.Int("stored", stored), zap.Int("parsed", len(conns)),
		zap.String("database", cfg.Database.Path))
	return nil
}

// routerPortFile is the input shape for -router-ports.
type routerPortFile struct {
	RouterID string `json:"router_id"`
	Ports    []struct {
		Side       router.Side `json:"side"`
		Card       int         `json:"card"`
		Index      int         `json:"index"`
		Name       string      `json:"name"`
		PortNumber int         `json:"port_number"`
	} `json:"ports"`
}

func analyzeRouterPorts(path string, cfg *config.Config) (*routerReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file routerPortFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	eqx := router.NewEQXRouter(file.RouterID, router.WithPortsPerCard(cfg.Router.PortsPerCard))
	for _, p := range file.Ports {
		if p.Side == router.SideOutput {
			eqx.AddOutputPort(p.Card, p.Index, p.Name, p.PortNumber)
		} else {
			eqx.AddInputPort(p.Card, p.Index, p.Name, p.PortNumber)
		}
	}

	rr := &routerReport{Configuration: eqx.Export()}
	for _, side := range []router.Side{router.SideInput, router.SideOutput} {
		var cards []router.CardExport
		if side == router.SideInput {
			cards = rr.Configuration.InputCards
		} else {
			cards = rr.Configuration.OutputCards
		}
		for _, card := range cards {
			u, err := eqx.CardUtilization(side, card.CardNumber)
			if err != nil {
				return nil, err
			}
			rr.Utilization = append(rr.Utilization, u)
		}
	}
	return rr, nil
}

func loadFacility(cfg *config.Config) (*facility.Manager, error) {
	if cfg.Facility.LayoutPath == "" {
		return facility.NewManager(facility.DefaultSeries())
	}
	data, err := os.ReadFile(cfg.Facility.LayoutPath)
	if err != nil {
		return nil, err
	}
	return facility.ImportYAML(data)
}

func writeReport(rep report, outPath string) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if outPath == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(outPath, data, 0o644)
}
