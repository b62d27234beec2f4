package compositor

import "strings"

// TextShadow draws a 2px black outline around preview captions.
const TextShadow = "2px 2px 0 #000, -2px -2px 0 #000, 2px -2px 0 #000, -2px 2px 0 #000, " +
	"0 2px 0 #000, 2px 0 0 #000, 0 -2px 0 #000, -2px 0 0 #000"

// DisplayFont is the preview font stack.
const DisplayFont = "Impact, 'Anton', 'Arial Black', sans-serif"

// Box is one caption positioned in percentages of the container, so the
// preview scales with the page without recomputation.
type Box struct {
	ID           string  `json:"id"`
	Text         string  `json:"text"`
	LeftPct      float64 `json:"left"`
	TopPct       float64 `json:"top"`
	WidthPct     float64 `json:"width"`
	MinHeightPct float64 `json:"minHeight"`
	Align        string  `json:"align"`
	Justify      string  `json:"justify"`
	Dragging     bool    `json:"dragging"`
}

// QRBox places the overlay in the preview.
type QRBox struct {
	LeftPct   float64 `json:"left"`
	TopPct    float64 `json:"top"`
	WidthPct  float64 `json:"width"`
	HeightPct float64 `json:"height"`
	Dragging  bool    `json:"dragging"`
}

// Layout is the live preview of an editor.
type Layout struct {
	TemplateID string `json:"templateId"`
	Boxes      []Box  `json:"boxes"`
	QR         *QRBox `json:"qr,omitempty"`
}

// Preview lays out every slot at its effective position. Element positions
// update synchronously with the state, without transitions.
func Preview(e *Editor) Layout {
	tpl := e.tpl
	if tpl == nil || tpl.Width <= 0 || tpl.Height <= 0 {
		return Layout{}
	}
	w, h := float64(tpl.Width), float64(tpl.Height)
	out := Layout{TemplateID: tpl.ID, Boxes: make([]Box, 0, len(e.slots))}
	for _, st := range e.slots {
		slot, ok := tpl.Slot(st.ID)
		if !ok {
			continue
		}
		pos := st.At(slot)
		align := string(slot.Align)
		if align == "" {
			align = "center"
		}
		out.Boxes = append(out.Boxes, Box{
			ID:           st.ID,
			Text:         strings.ToUpper(st.Text),
			LeftPct:      (pos.X - slot.Width/2) / w * 100,
			TopPct:       (pos.Y - slot.Height/2) / h * 100,
			WidthPct:     slot.Width / w * 100,
			MinHeightPct: slot.Height / h * 100,
			Align:        align,
			Justify:      justify(align),
			Dragging:     e.drag.Dragging(SlotTarget(st.ID)),
		})
	}
	if e.qr.Enabled {
		c, _ := e.Position(QRTarget)
		side := w * QRFraction
		out.QR = &QRBox{
			LeftPct:   (c.X - side/2) / w * 100,
			TopPct:    (c.Y - side/2) / h * 100,
			WidthPct:  QRFraction * 100,
			HeightPct: side / h * 100,
			Dragging:  e.drag.Dragging(QRTarget),
		}
	}
	return out
}

func justify(align string) string {
	switch align {
	case "left":
		return "flex-start"
	case "right":
		return "flex-end"
	default:
		return "center"
	}
}
