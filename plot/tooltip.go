package plot

import (
	"fmt"

	"seehuhn.de/go/geom/vec"

	"git.sr.ht/~whereswaldon/streamgraph/backend"
)

// EventKind distinguishes pointer events on layers.
type EventKind uint8

const (
	Enter EventKind = iota
	Move
	Leave
)

func (k EventKind) String() string {
	switch k {
	case Enter:
		return "enter"
	case Move:
		return "move"
	case Leave:
		return "leave"
	default:
		return fmt.Sprintf("EventKind(%d)", uint8(k))
	}
}

// PointerEvent is a pointer interaction with the layer of Series at
// Position in canvas coordinates.
type PointerEvent struct {
	Kind     EventKind
	Series   string
	Position vec.Vec2
}

// TooltipState is the visibility of the tooltip.
type TooltipState uint8

const (
	Hidden TooltipState = iota
	Visible
)

// Tooltip is the floating panel that shows a series' mini chart.
type Tooltip struct {
	State  TooltipState
	Series string
	// Position is the panel's top left corner in canvas coordinates.
	Position vec.Vec2
	// Mini is kept when the tooltip hides so it can be shown again
	// without recomputing.
	Mini *MiniChart

	cfg TooltipConfig
}

func newTooltip(cfg TooltipConfig) *Tooltip {
	return &Tooltip{cfg: cfg}
}

// Visible reports whether the panel should be drawn.
func (t *Tooltip) Visible() bool {
	return t.State == Visible
}

// Handle applies ev and reports whether the tooltip changed.
func (t *Tooltip) Handle(ev PointerEvent, records []backend.Record, cat *backend.Catalog) bool {
	switch ev.Kind {
	case Enter:
		t.State = Visible
		t.Series = ev.Series
		t.Mini = NewMiniChart(records, ev.Series, cat.Color(ev.Series), t.cfg)
		t.Position = ev.Position.Add(t.cfg.Offset)
		return true
	case Move:
		if t.State != Visible {
			return false
		}
		t.Position = ev.Position.Add(t.cfg.Offset)
		return true
	case Leave:
		if t.State != Visible {
			return false
		}
		t.State = Hidden
		return true
	}
	return false
}

// Refresh rebuilds the mini chart of a visible tooltip against records.
func (t *Tooltip) Refresh(records []backend.Record, cat *backend.Catalog) {
	if t.State != Visible {
		return
	}
	t.Mini = NewMiniChart(records, t.Series, cat.Color(t.Series), t.cfg)
}
