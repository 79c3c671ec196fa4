// Package drag tracks a pointer-following ghost of a dragged element.
//
// The controller is presentational. It does not decide where a drop lands;
// it only remembers where the pointer grabbed the element and keeps the
// ghost at that same anchor while the pointer moves. The anchor is the
// element's top-left corner: ghost = pointer - offset, where offset was
// pointer - element top-left at press time.
package drag

import "errors"

var (
	// ErrUnknownElement is returned when the locator has no bounds for the id
	ErrUnknownElement = errors.New("no bounds for element")
	// ErrNoPointer is returned for a touch event without touches
	ErrNoPointer = errors.New("pointer event has no position")
	// ErrAlreadyDragging is returned when Begin is called mid-gesture
	ErrAlreadyDragging = errors.New("a drag is already in progress")
)

// State is the controller's lifecycle state
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Locator reports the current on-screen bounds of an element
type Locator interface {
	Bounds(id string) (Rect, bool)
}

// LocatorFunc adapts a function to Locator
type LocatorFunc func(id string) (Rect, bool)

func (f LocatorFunc) Bounds(id string) (Rect, bool) { return f(id) }

// Ghost describes the floating clone while a drag is active. It is drawn
// detached from layout, above everything else, and never receives input.
type Ghost struct {
	ElementID string
	Pos       Point
	Size      Rect // bounds of the source element at press time
	Z         int
	Tilted    bool // render with the "lifted" treatment
}

// GhostZ is the z-index the ghost is drawn at
const GhostZ = 1000

// Controller is the drag state machine. The zero value is not usable; use
// New.
type Controller struct {
	locator Locator

	// OnStart and OnEnd are optional notifications
	OnStart func(id string, offset Point)
	OnEnd   func(id string)

	state     State
	elementID string
	offset    Point
	bounds    Rect
	pos       Point
}

// New creates an idle controller
func New(locator Locator) *Controller {
	return &Controller{locator: locator}
}

// State returns the lifecycle state
func (c *Controller) State() State {
	return c.state
}

// Active reports whether a drag is in progress
func (c *Controller) Active() bool {
	return c.state == Dragging
}

// ElementID returns the dragged element's id, or "" when idle
func (c *Controller) ElementID() string {
	return c.elementID
}

// Offset returns the pointer's offset into the element captured at press
func (c *Controller) Offset() Point {
	return c.offset
}

// Begin starts a drag of elementID at the pointer position in ev
func (c *Controller) Begin(ev PointerEvent, elementID string) error {
	if c.state == Dragging {
		return ErrAlreadyDragging
	}
	pointer, ok := ev.Point()
	if !ok {
		return ErrNoPointer
	}
	bounds, ok := c.locator.Bounds(elementID)
	if !ok {
		return ErrUnknownElement
	}

	c.state = Dragging
	c.elementID = elementID
	c.bounds = bounds
	c.offset = pointer.Sub(bounds.Min())
	c.pos = bounds.Min()

	if c.OnStart != nil {
		c.OnStart(elementID, c.offset)
	}
	return nil
}

// Track moves the ghost so the grabbed point stays under the pointer. It
// does nothing when idle.
func (c *Controller) Track(ev PointerEvent) {
	if c.state != Dragging {
		return
	}
	pointer, ok := ev.Point()
	if !ok {
		return
	}
	c.pos = pointer.Sub(c.offset)
}

// End finishes or cancels the gesture. Calling it while idle is a no-op,
// so OnEnd fires once per gesture.
func (c *Controller) End() {
	if c.state != Dragging {
		return
	}
	id := c.elementID

	c.state = Idle
	c.elementID = ""
	c.offset = Point{}
	c.bounds = Rect{}
	c.pos = Point{}

	if c.OnEnd != nil {
		c.OnEnd(id)
	}
}

// Ghost returns the overlay to draw, or false when idle
func (c *Controller) Ghost() (Ghost, bool) {
	if c.state != Dragging {
		return Ghost{}, false
	}
	return Ghost{
		ElementID: c.elementID,
		Pos:       c.pos,
		Size:      c.bounds,
		Z:         GhostZ,
		Tilted:    true,
	}, true
}

// IsSource reports whether id is the element being dragged, so renderers
// can dim it until the drag ends
func (c *Controller) IsSource(id string) bool {
	return c.state == Dragging && c.elementID == id
}
