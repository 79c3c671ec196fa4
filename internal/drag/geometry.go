package drag

// Point is a screen position in cells
type Point struct {
	X, Y int
}

// Sub returns p - q
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Add returns p + q
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Rect is an element's bounding box
type Rect struct {
	X, Y          int
	Width, Height int
}

// Min is the top-left corner
func (r Rect) Min() Point {
	return Point{X: r.X, Y: r.Y}
}

// Contains reports whether p lies inside r
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}

// PointerKind tells mouse and touch input apart
type PointerKind int

const (
	Mouse PointerKind = iota
	Touch
)

// PointerEvent is a press or move from either a mouse or a touch screen.
// Touch events carry every active touch; only the first is tracked.
type PointerEvent struct {
	Kind    PointerKind
	Pos     Point
	Touches []Point
}

// MouseAt builds a mouse event
func MouseAt(x, y int) PointerEvent {
	return PointerEvent{Kind: Mouse, Pos: Point{X: x, Y: y}}
}

// TouchAt builds a single-touch event
func TouchAt(x, y int) PointerEvent {
	return PointerEvent{Kind: Touch, Touches: []Point{{X: x, Y: y}}}
}

// Point resolves the tracked position. ok is false for a touch event with
// no touches.
func (e PointerEvent) Point() (Point, bool) {
	if e.Kind == Touch {
		if len(e.Touches) == 0 {
			return Point{}, false
		}
		return e.Touches[0], true
	}
	return e.Pos, true
}
