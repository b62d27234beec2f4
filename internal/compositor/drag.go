package compositor

import "errors"

// DragMargin keeps dragged elements this many template pixels away from every
// edge.
const DragMargin = 50.0

var (
	ErrDragActive    = errors.New("compositor: a drag session is already active")
	ErrUnknownTarget = errors.New("compositor: unknown drag target")
)

// Target identifies what is being dragged: a text slot, or the QR overlay.
type Target struct {
	Slot string `json:"slot,omitempty"`
	QR   bool   `json:"qr,omitempty"`
}

// QRTarget is the drag target for the overlay.
var QRTarget = Target{QR: true}

func SlotTarget(id string) Target { return Target{Slot: id} }

// DragSession is the state of one active drag. Offset is the element's
// screen position minus the pointer's container-relative position at the
// moment the drag started.
type DragSession struct {
	Target Target
	Offset Point
}

// DragController moves editor targets in response to pointer events. It is
// Idle when it has no session and Dragging otherwise; at most one session
// exists at a time.
type DragController struct {
	editor  *Editor
	session *DragSession
}

// Start begins a drag of target at the client pointer position. A second
// Start while dragging is rejected with ErrDragActive.
func (d *DragController) Start(target Target, pointer Point, container Rect) error {
	if d.session != nil {
		return ErrDragActive
	}
	e := d.editor
	if e.tpl == nil {
		return ErrNotReady
	}
	m, err := NewMapper(container, e.tpl.Width, e.tpl.Height)
	if err != nil {
		return err
	}
	pos, ok := e.Position(target)
	if !ok {
		return ErrUnknownTarget
	}
	d.session = &DragSession{
		Target: target,
		Offset: m.ToScreen(pos).Sub(m.Relative(pointer)),
	}
	return nil
}

// Move repositions the dragged target so it follows the pointer, clamped to
// [DragMargin, dimension-DragMargin] on each axis. It reports false when idle
// or when the container has no size.
func (d *DragController) Move(pointer Point, container Rect) (Point, bool) {
	if d.session == nil {
		return Point{}, false
	}
	e := d.editor
	m, err := NewMapper(container, e.tpl.Width, e.tpl.Height)
	if err != nil {
		return Point{}, false
	}
	p := m.ToTemplate(m.Relative(pointer).Add(d.session.Offset))
	p.X = clamp(p.X, DragMargin, float64(e.tpl.Width)-DragMargin)
	p.Y = clamp(p.Y, DragMargin, float64(e.tpl.Height)-DragMargin)
	e.SetPosition(d.session.Target, p)
	return p, true
}

// End finishes the session, keeping the last position.
func (d *DragController) End() { d.session = nil }

// Cancel drops the session. Used on template switch and teardown.
func (d *DragController) Cancel() { d.session = nil }

// Active returns the current session, if any.
func (d *DragController) Active() (DragSession, bool) {
	if d.session == nil {
		return DragSession{}, false
	}
	return *d.session, true
}

// Dragging reports whether target is the one being dragged.
func (d *DragController) Dragging(target Target) bool {
	return d.session != nil && d.session.Target == target
}
