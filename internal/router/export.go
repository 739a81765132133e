package router

import "sort"

// Configuration is the serializable snapshot of a router frame. Cards
// and ports are emitted as sorted slices so exports diff cleanly.
type Configuration struct {
	RouterID     string       `json:"router_id" yaml:"router_id"`
	PortsPerCard int          `json:"ports_per_card" yaml:"ports_per_card"`
	InputCards   []CardExport `json:"input_cards" yaml:"input_cards"`
	OutputCards  []CardExport `json:"output_cards" yaml:"output_cards"`
}

// CardExport is one card in a Configuration.
type CardExport struct {
	CardNumber int    `json:"card_number" yaml:"card_number"`
	PortCount  int    `json:"port_count" yaml:"port_count"`
	Model      string `json:"card_model,omitempty" yaml:"card_model,omitempty"`
	Ports      []Port `json:"ports" yaml:"ports"`
}

// Export snapshots the full router configuration.
func (r *EQXRouter) Export() Configuration {
	return Configuration{
		RouterID:     r.routerID,
		PortsPerCard: r.portsPerCard,
		InputCards:   exportCards(r.inputCards),
		OutputCards:  exportCards(r.outputCards),
	}
}

func exportCards(cards map[int]*Card) []CardExport {
	nums := make([]int, 0, len(cards))
	for n := range cards {
		nums = append(nums, n)
	}
	sort.Ints(nums)

	out := make([]CardExport, 0, len(nums))
	for _, n := range nums {
		card := cards[n]
		ce := CardExport{
			CardNumber: card.CardNumber,
			PortCount:  card.PortCount,
			Model:      card.Model,
		}
		portNums := make([]int, 0, len(card.Ports))
		for pn := range card.Ports {
			portNums = append(portNums, pn)
		}
		sort.Ints(portNums)
		for _, pn := range portNums {
			ce.Ports = append(ce.Ports, *card.Ports[pn])
		}
		out = append(out, ce)
	}
	return out
}

// FromConfiguration rebuilds a router from an exported snapshot. Port
// signal types are re-derived from port names, so hand-edited exports
// stay consistent after a round trip.
func FromConfiguration(cfg Configuration) *EQXRouter {
	r := NewEQXRouter(cfg.RouterID, WithPortsPerCard(cfg.PortsPerCard))
	for _, card := range cfg.InputCards {
		for _, p := range card.Ports {
			r.AddInputPort(card.CardNumber, p.Index, p.Name, p.PortNumber)
		}
		if c, ok := r.inputCards[card.CardNumber]; ok {
			c.Model = card.Model
		}
	}
	for _, card := range cfg.OutputCards {
		for _, p := range card.Ports {
			r.AddOutputPort(card.CardNumber, p.Index, p.Name, p.PortNumber)
		}
		if c, ok := r.outputCards[card.CardNumber]; ok {
			c.Model = card.Model
		}
	}
	return r
}
