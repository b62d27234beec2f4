// Package compositor holds the meme editor model: per-slot caption state,
// pointer-driven repositioning, the live preview layout and the PNG export
// renderer. It has no DOM or HTTP dependency so the same code runs in the
// server, the CLI and the WebAssembly editor.
package compositor

import (
	"github.com/cristianadrielbraun/memezzz/internal/catalog"
)

// SlotState is the editable state of one text slot. Position nil means the
// slot sits at its template anchor.
type SlotState struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Position *Point `json:"position,omitempty"`
}

// At returns the override, or the anchor of slot when there is none.
func (s SlotState) At(slot catalog.TextSlot) Point {
	if s.Position != nil {
		return *s.Position
	}
	return Point{slot.X, slot.Y}
}

func (s SlotState) clone() SlotState {
	if s.Position != nil {
		p := *s.Position
		s.Position = &p
	}
	return s
}

// QRState is the editor-side view of the overlay: whether it is shown and
// where the user dragged it. Position nil means the default corner.
type QRState struct {
	Enabled  bool   `json:"enabled"`
	Position *Point `json:"position,omitempty"`
}

// Editor owns the active template, one SlotState per slot in template order,
// the overlay placement and the drag controller. It is not safe for
// concurrent use.
type Editor struct {
	tpl   *catalog.Template
	slots []SlotState
	qr    QRState
	drag  *DragController
}

// NewEditor starts an editor on t. A nil template yields an empty editor on
// which every operation is a no-op.
func NewEditor(t *catalog.Template) *Editor {
	e := &Editor{}
	e.drag = &DragController{editor: e}
	e.SelectTemplate(t)
	return e
}

// SelectTemplate replaces all slot state with fresh state for t. Any drag
// session is cancelled and the overlay returns to its default corner.
func (e *Editor) SelectTemplate(t *catalog.Template) {
	e.drag.Cancel()
	e.tpl = t
	e.qr.Position = nil
	if t == nil {
		e.slots = nil
		return
	}
	e.slots = make([]SlotState, len(t.TextAreas))
	for i, s := range t.TextAreas {
		e.slots[i] = SlotState{ID: s.ID, Text: s.DefaultText}
	}
}

func (e *Editor) Template() *catalog.Template { return e.tpl }

// Slots returns a copy of the slot states in template order.
func (e *Editor) Slots() []SlotState {
	out := make([]SlotState, len(e.slots))
	for i, s := range e.slots {
		out[i] = s.clone()
	}
	return out
}

func (e *Editor) Slot(id string) (SlotState, bool) {
	i := e.index(id)
	if i < 0 {
		return SlotState{}, false
	}
	return e.slots[i].clone(), true
}

// Anchor returns the template-defined position of slot id.
func (e *Editor) Anchor(id string) (Point, bool) {
	if e.tpl == nil {
		return Point{}, false
	}
	s, ok := e.tpl.Slot(id)
	if !ok {
		return Point{}, false
	}
	return Point{s.X, s.Y}, true
}

// EffectivePosition returns the override of slot id, or its anchor.
func (e *Editor) EffectivePosition(id string) (Point, bool) {
	return e.Position(SlotTarget(id))
}

// SetText replaces the caption of slot id. The position is left unchanged.
func (e *Editor) SetText(id, text string) bool {
	i := e.index(id)
	if i < 0 {
		return false
	}
	e.slots[i].Text = text
	return true
}

// ResetPositions restores every slot to its anchor and the overlay to its
// default corner. Captions are kept.
func (e *Editor) ResetPositions() {
	if e.tpl == nil {
		return
	}
	for i := range e.slots {
		e.slots[i].Position = nil
	}
	e.qr.Position = nil
}

// SetQREnabled toggles the overlay.
func (e *Editor) SetQREnabled(on bool) { e.qr.Enabled = on }

func (e *Editor) QR() QRState {
	q := e.qr
	if q.Position != nil {
		p := *q.Position
		q.Position = &p
	}
	return q
}

// Position returns the effective template-space position of a drag target.
func (e *Editor) Position(t Target) (Point, bool) {
	if e.tpl == nil {
		return Point{}, false
	}
	if t.QR {
		if e.qr.Position != nil {
			return *e.qr.Position, true
		}
		return DefaultQRPosition(e.tpl.Width, e.tpl.Height), true
	}
	i := e.index(t.Slot)
	if i < 0 {
		return Point{}, false
	}
	slot, ok := e.tpl.Slot(t.Slot)
	if !ok {
		return Point{}, false
	}
	return e.slots[i].At(slot), true
}

// SetPosition overrides the position of a drag target.
func (e *Editor) SetPosition(t Target, p Point) bool {
	if e.tpl == nil {
		return false
	}
	if t.QR {
		e.qr.Position = &p
		return true
	}
	i := e.index(t.Slot)
	if i < 0 {
		return false
	}
	e.slots[i].Position = &p
	return true
}

// Drag returns the editor's drag controller.
func (e *Editor) Drag() *DragController { return e.drag }

// Scene snapshots the editor for rendering. The overlay image is supplied by
// the caller.
func (e *Editor) Scene() Scene {
	s := Scene{Template: e.tpl, Slots: e.Slots()}
	if e.qr.Position != nil {
		p := *e.qr.Position
		s.OverlayCenter = &p
	}
	return s
}

// State is the serializable snapshot sent from the browser editor to the
// export endpoint.
type State struct {
	TemplateID string      `json:"templateId"`
	Slots      []SlotState `json:"slots"`
	QR         QRState     `json:"qr"`
}

func (e *Editor) State() State {
	st := State{Slots: e.Slots(), QR: e.QR()}
	if e.tpl != nil {
		st.TemplateID = e.tpl.ID
	}
	return st
}

// Load applies a snapshot to an editor already on the snapshot's template.
// Unknown slot ids are ignored. A slot without a position goes back to its
// anchor.
func (e *Editor) Load(st State) {
	if e.tpl == nil {
		return
	}
	for _, s := range st.Slots {
		i := e.index(s.ID)
		if i < 0 {
			continue
		}
		e.slots[i].Text = s.Text
		e.slots[i].Position = s.clone().Position
	}
	e.qr.Enabled = st.QR.Enabled
	e.qr.Position = nil
	if st.QR.Position != nil {
		p := *st.QR.Position
		e.qr.Position = &p
	}
}

func (e *Editor) index(id string) int {
	for i := range e.slots {
		if e.slots[i].ID == id {
			return i
		}
	}
	return -1
}
