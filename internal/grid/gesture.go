package grid

import (
	"weekly-meal-planner/internal/plan"
)

// Point is a coordinate in the same space as the registered cell regions
// (the client's viewport, in practice).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// HitTester resolves a coordinate to the cell under it.
type HitTester interface {
	CellAt(p Point) (key string, ok bool)
}

// CellRegion is the rectangle occupied by one cell.
type CellRegion struct {
	Key    string  `json:"key"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// CellRegions hit-tests against a flat list of rectangles. When regions
// overlap the first match wins.
type CellRegions []CellRegion

// CellAt implements HitTester.
func (r CellRegions) CellAt(p Point) (string, bool) {
	for _, c := range r {
		if p.X >= c.X && p.X < c.X+c.Width && p.Y >= c.Y && p.Y < c.Y+c.Height {
			return c.Key, true
		}
	}
	return "", false
}

// PointerDrag recognizes the drag-and-drop pipeline. The browser resolves
// the drop target itself, so the adapter only needs to arm on a non-empty
// source and pair it with the reported target.
type PointerDrag struct {
	source string
}

// Start arms the drag. A cell without a dish name is not draggable and the
// adapter stays disarmed.
func (d *PointerDrag) Start(sourceKey string, entry plan.MealEntry) bool {
	if !entry.HasContent() {
		d.source = ""
		return false
	}
	d.source = sourceKey
	return true
}

// Dragging reports whether a drag is in progress.
func (d *PointerDrag) Dragging() bool {
	return d.source != ""
}

// Drop completes the gesture and emits the copy request. It returns false
// when the adapter was never armed.
func (d *PointerDrag) Drop(targetKey string) (CopyRequest, bool) {
	source := d.source
	d.source = ""
	if source == "" {
		return CopyRequest{}, false
	}
	return CopyRequest{Source: source, Target: targetKey}, true
}

// Cancel disarms without emitting anything.
func (d *PointerDrag) Cancel() {
	d.source = ""
}

// TouchDrag recognizes the touch pipeline. It tracks the currently pressed
// source and the cell currently hovered; on release the target is resolved
// by hit-testing the release coordinate, falling back to the last hovered
// cell when the finger lands between cells.
type TouchDrag struct {
	hits    HitTester
	source  string
	hovered string
}

// NewTouchDrag creates the adapter with the given hit tester.
func NewTouchDrag(hits HitTester) *TouchDrag {
	return &TouchDrag{hits: hits}
}

// Start arms the gesture. Like the pointer pipeline, only a cell with
// content can be picked up.
func (d *TouchDrag) Start(sourceKey string, entry plan.MealEntry) bool {
	if !entry.HasContent() {
		return false
	}
	d.source = sourceKey
	d.hovered = ""
	return true
}

// Move updates the hovered cell from the finger position. Moving off every
// cell clears the hover state.
func (d *TouchDrag) Move(p Point) {
	if d.source == "" {
		return
	}
	if key, ok := d.hits.CellAt(p); ok {
		d.hovered = key
	} else {
		d.hovered = ""
	}
}

// Hovered returns the cell currently under the finger, if any.
func (d *TouchDrag) Hovered() string {
	return d.hovered
}

// End completes the gesture at the release coordinate and emits the copy
// request. No request is emitted when the adapter was never armed, when no
// target resolves, or when the target is the source itself.
func (d *TouchDrag) End(p Point) (CopyRequest, bool) {
	source := d.source
	hovered := d.hovered
	d.source = ""
	d.hovered = ""

	if source == "" {
		return CopyRequest{}, false
	}

	target, ok := d.hits.CellAt(p)
	if !ok {
		if hovered == "" {
			return CopyRequest{}, false
		}
		target = hovered
	}
	if target == source {
		return CopyRequest{}, false
	}
	return CopyRequest{Source: source, Target: target}, true
}
