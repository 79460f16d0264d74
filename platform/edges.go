package platform

// ResizeEdge is the window edge or corner being dragged.
type ResizeEdge int32

const (
	EdgeNone ResizeEdge = iota
	EdgeTop
	EdgeBottom
	EdgeLeft
	EdgeRight
	EdgeTopLeft
	EdgeTopRight
	EdgeBottomLeft
	EdgeBottomRight
)

// direction is the effect of moving an edge by (dx, dy): each factor is
// -1, 0 or 1 and says how the origin and extent follow the pointer.
type direction struct {
	name         string
	moveX, moveY int32
	growW, growH int32
}

var edgeDirections = [...]direction{
	EdgeNone:        {"none", 0, 0, 0, 0},
	EdgeTop:         {"top", 0, 1, 0, -1},
	EdgeBottom:      {"bottom", 0, 0, 0, 1},
	EdgeLeft:        {"left", 1, 0, -1, 0},
	EdgeRight:       {"right", 0, 0, 1, 0},
	EdgeTopLeft:     {"top_left", 1, 1, -1, -1},
	EdgeTopRight:    {"top_right", 0, 1, 1, -1},
	EdgeBottomLeft:  {"bottom_left", 1, 0, -1, 1},
	EdgeBottomRight: {"bottom_right", 0, 0, 1, 1},
}

// Valid reports whether e is a known edge.
func (e ResizeEdge) Valid() bool {
	return e >= EdgeNone && int(e) < len(edgeDirections)
}

func (e ResizeEdge) String() string {
	if !e.Valid() {
		return "unknown"
	}
	return edgeDirections[e].name
}

// MinWindowExtent is the smallest width or height a drag can produce.
const MinWindowExtent = 1

// Drag returns r after dragging edge e by (dx, dy). The opposite edge stays
// fixed; extents never drop below MinWindowExtent.
func (e ResizeEdge) Drag(r Rect, dx, dy int32) Rect {
	if !e.Valid() {
		return r
	}
	d := edgeDirections[e]

	w := r.Width + d.growW*dx
	h := r.Height + d.growH*dy
	if w < MinWindowExtent {
		dx -= (MinWindowExtent - w) * -d.growW
		w = MinWindowExtent
	}
	if h < MinWindowExtent {
		dy -= (MinWindowExtent - h) * -d.growH
		h = MinWindowExtent
	}

	return Rect{
		X:      r.X + d.moveX*dx,
		Y:      r.Y + d.moveY*dy,
		Width:  w,
		Height: h,
	}
}
