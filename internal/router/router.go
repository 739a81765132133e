// Package router models Evertz EQX routing frames: cards on the input
// and output sides, their port assignments, and signal type
// classification derived from port naming conventions.
package router

import (
	"fmt"
	"regexp"
	"sort"
)

// SignalType is the classified signal carried on a router port.
type SignalType string

const (
	SignalBlack    SignalType = "BLACK"
	SignalBars     SignalType = "BARS_AND_TONE"
	SignalCamera   SignalType = "CAM"
	SignalPlayback SignalType = "PLAYBACK"
	SignalWeb      SignalType = "WEB"
	SignalDirecTV  SignalType = "DIRECTV"
	SignalPrompt   SignalType = "PROMPT"
	SignalDelay    SignalType = "DELAY"
	SignalOpen     SignalType = "OPEN"
)

// Side distinguishes the two port directions of a frame.
type Side string

const (
	SideInput  Side = "INPUT"
	SideOutput Side = "OUTPUT"
)

// DefaultPortsPerCard is the EQX card capacity assumed when the router
// is built without an explicit port count.
const DefaultPortsPerCard = 18

// signalRule maps a port naming convention to a signal type. Rules are
// checked in order and the first match wins; unmatched names classify
// as SignalOpen.
type signalRule struct {
	signal SignalType
	re     *regexp.Regexp
}

var signalRules = []signalRule{
	{SignalCamera, regexp.MustCompile(`CAM-\d+_ST$|CAM-.*Flash.*|CAM-Chroma`)},
	{SignalPlayback, regexp.MustCompile(`PLAYBACK-\d+_B\d-\d+`)},
	{SignalWeb, regexp.MustCompile(`PC-[A-Z]_WEB|MAC-Shared_WEB`)},
	{SignalPrompt, regexp.MustCompile(`PROMPT-[AB]`)},
	{SignalDelay, regexp.MustCompile(`DelayQuad_MV`)},
	{SignalBlack, regexp.MustCompile(`^BLACK$`)},
	{SignalBars, regexp.MustCompile(`^BARS AND TONE$`)},
	{SignalOpen, regexp.MustCompile(`^OPEN_\d+$`)},
}

// ClassifySignal resolves a port name to its signal type.
func ClassifySignal(name string) SignalType {
	for _, rule := range signalRules {
		if rule.re.MatchString(name) {
			return rule.signal
		}
	}
	return SignalOpen
}

// Port is one input or output on a router card.
type Port struct {
	Index      int               `json:"index"`
	Name       string            `json:"name"`
	PortNumber int               `json:"port_number"`
	CardNumber int               `json:"card_number"`
	Signal     SignalType        `json:"signal_type"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Card is one EQX card with its populated ports, keyed by port number.
type Card struct {
	CardNumber int           `json:"card_number"`
	PortCount  int           `json:"port_count"`
	Side       Side          `json:"side"`
	Model      string        `json:"card_model,omitempty"`
	Ports      map[int]*Port `json:"ports"`
}

// EQXRouter holds the configuration of a single routing frame.
type EQXRouter struct {
	routerID     string
	portsPerCard int
	inputCards   map[int]*Card
	outputCards  map[int]*Card
}

// Option adjusts router construction.
type Option func(*EQXRouter)

// WithPortsPerCard overrides the card capacity for cards created by
// this router.
func WithPortsPerCard(n int) Option {
	return func(r *EQXRouter) {
		if n > 0 {
			r.portsPerCard = n
		}
	}
}

// NewEQXRouter creates an empty router configuration.
func NewEQXRouter(routerID string, opts ...Option) *EQXRouter {
	r := &EQXRouter{
		routerID:     routerID,
		portsPerCard: DefaultPortsPerCard,
		inputCards:   make(map[int]*Card),
		outputCards:  make(map[int]*Card),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RouterID returns the frame identifier.
func (r *EQXRouter) RouterID() string { return r.routerID }

// AddInputPort registers a port on an input card, creating the card on
// first use. The port's signal type is classified from its name.
// Re-adding a port number replaces the previous assignment.
func (r *EQXRouter) AddInputPort(cardNumber, portIndex int, name string, portNumber int) *Port {
	return r.addPort(r.inputCards, SideInput, cardNumber, portIndex, name, portNumber)
}

// AddOutputPort registers a port on an output card. Semantics match
// AddInputPort.
func (r *EQXRouter) AddOutputPort(cardNumber, portIndex int, name string, portNumber int) *Port {
	return r.addPort(r.outputCards, SideOutput, cardNumber, portIndex, name, portNumber)
}

func (r *EQXRouter) addPort(cards map[int]*Card, side Side, cardNumber, portIndex int, name string, portNumber int) *Port {
	card, ok := cards[cardNumber]
	if !ok {
		card = &Card{
			CardNumber: cardNumber,
			PortCount:  r.portsPerCard,
			Side:       side,
			Ports:      make(map[int]*Port),
		}
		cards[cardNumber] = card
	}
	port := &Port{
		Index:      portIndex,
		Name:       name,
		PortNumber: portNumber,
		CardNumber: cardNumber,
		Signal:     ClassifySignal(name),
	}
	card.Ports[portNumber] = port
	return port
}

func (r *EQXRouter) cards(side Side) map[int]*Card {
	if side == SideOutput {
		return r.outputCards
	}
	return r.inputCards
}

// PortsByType returns every port on the given side carrying the signal
// type, sorted by port index.
func (r *EQXRouter) PortsByType(side Side, signal SignalType) []*Port {
	var ports []*Port
	for _, card := range r.cards(side) {
		for _, port := range card.Ports {
			if port.Signal == signal {
				ports = append(ports, port)
			}
		}
	}
	sort.Slice(ports, func(i, j int) bool { return ports[i].Index < ports[j].Index })
	return ports
}

// Utilization summarizes how full a card is.
type Utilization struct {
	CardNumber     int                `json:"card_number"`
	TotalPorts     int                `json:"total_ports"`
	UsedPorts      int                `json:"used_ports"`
	AvailablePorts int                `json:"available_ports"`
	SignalCounts   map[SignalType]int `json:"signal_counts"`
}

// CardUtilization reports usage for one card. Unknown card numbers are
// an error.
func (r *EQXRouter) CardUtilization(side Side, cardNumber int) (Utilization, error) {
	card, ok := r.cards(side)[cardNumber]
	if !ok {
		return Utilization{}, fmt.Errorf("router %s: %s card %d not found", r.routerID, side, cardNumber)
	}
	u := Utilization{
		CardNumber:     cardNumber,
		TotalPorts:     card.PortCount,
		UsedPorts:      len(card.Ports),
		AvailablePorts: card.PortCount - len(card.Ports),
		SignalCounts:   make(map[SignalType]int),
	}
	for _, port := range card.Ports {
		u.SignalCounts[port.Signal]++
	}
	return u, nil
}
