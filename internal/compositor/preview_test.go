package compositor

import (
	"math"
	"testing"
)

func TestPreviewPercentages(t *testing.T) {
	e := NewEditor(testTemplate())
	l := Preview(e)
	if l.TemplateID != "test" || len(l.Boxes) != 3 {
		t.Fatalf("Preview() = %+v", l)
	}
	top := l.Boxes[0]
	if top.Text != "TOP" {
		t.Errorf("Text = %q", top.Text)
	}
	checks := map[string][2]float64{
		"left":      {top.LeftPct, 12.5},
		"top":       {top.TopPct, 25.0 / 6},
		"width":     {top.WidthPct, 75},
		"minHeight": {top.MinHeightPct, 25},
	}
	for name, c := range checks {
		if math.Abs(c[0]-c[1]) > 1e-9 {
			t.Errorf("%s = %v, want %v", name, c[0], c[1])
		}
	}
	if l.Boxes[2].Justify != "flex-start" || l.Boxes[2].Align != "left" {
		t.Errorf("side box = %+v", l.Boxes[2])
	}
	if l.QR != nil {
		t.Error("overlay shown while disabled")
	}
}

func TestPreviewTracksDrag(t *testing.T) {
	e := NewEditor(testTemplate())
	e.SetQREnabled(true)
	d := e.Drag()
	_ = d.Start(SlotTarget("top"), Point{310, 110}, container)
	d.Move(Point{330, 110}, container)

	l := Preview(e)
	if !l.Boxes[0].Dragging || l.Boxes[1].Dragging {
		t.Errorf("dragging flags = %v/%v", l.Boxes[0].Dragging, l.Boxes[1].Dragging)
	}
	// Moved 40 template px right.
	if want := (440.0 - 300) / 800 * 100; math.Abs(l.Boxes[0].LeftPct-want) > 1e-9 {
		t.Errorf("left = %v, want %v", l.Boxes[0].LeftPct, want)
	}
	if l.QR == nil || math.Abs(l.QR.WidthPct-15) > 1e-9 {
		t.Errorf("QR box = %+v", l.QR)
	}
}
