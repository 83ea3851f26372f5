package plot

import "seehuhn.de/go/geom/vec"

// HoverTracker turns a stream of hit-test results into enter, move and
// leave events.
type HoverTracker struct {
	current string
	active  bool
}

// Update records that the pointer is at pos over the layer of series, or
// over no layer when hit is false.
func (h *HoverTracker) Update(series string, hit bool, pos vec.Vec2) []PointerEvent {
	switch {
	case !hit && !h.active:
		return nil
	case !hit:
		prev := h.current
		h.current, h.active = "", false
		return []PointerEvent{{Kind: Leave, Series: prev, Position: pos}}
	case h.active && h.current == series:
		return []PointerEvent{{Kind: Move, Series: series, Position: pos}}
	default:
		// Moving straight from one layer onto another enters the new one
		// without hiding the tooltip in between.
		h.current, h.active = series, true
		return []PointerEvent{{Kind: Enter, Series: series, Position: pos}}
	}
}

// Exit records that the pointer left the canvas.
func (h *HoverTracker) Exit(pos vec.Vec2) []PointerEvent {
	return h.Update("", false, pos)
}

// Hovered returns the series under the pointer.
func (h *HoverTracker) Hovered() (string, bool) {
	return h.current, h.active
}
