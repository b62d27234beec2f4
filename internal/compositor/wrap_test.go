package compositor

import (
	"reflect"
	"testing"
)

func TestWrapShortTextSingleLine(t *testing.T) {
	got := Wrap("  ONE DOES NOT SIMPLY  ", WrapOptions{Threshold: 20, CharsPerLine: 5})
	if !reflect.DeepEqual(got, []string{"ONE DOES NOT SIMPLY"}) {
		t.Errorf("Wrap() = %q", got)
	}
	if Wrap("   ", WrapOptions{Threshold: 20}) != nil {
		t.Error("blank text should produce no lines")
	}
}

func TestWrapGreedy(t *testing.T) {
	got := Wrap("WHEN THE CODE WORKS ON THE FIRST TRY", WrapOptions{Threshold: 20, CharsPerLine: 12})
	want := []string{"WHEN THE", "CODE WORKS", "ON THE FIRST", "TRY"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Wrap() = %q, want %q", got, want)
	}
	for _, l := range got {
		if len(l) > 12 {
			t.Errorf("line %q exceeds 12 chars", l)
		}
	}
}

func TestWrapSplitsLongWords(t *testing.T) {
	got := Wrap("SUPERCALIFRAGILISTIC IS LONG", WrapOptions{Threshold: 10, CharsPerLine: 8})
	want := []string{"SUPERCAL", "IFRAGILI", "STIC IS", "LONG"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Wrap() = %q, want %q", got, want)
	}
}

func TestWrapKeepsNoBreakWords(t *testing.T) {
	got := Wrap("DEPLOYING TO PRODUCTION!", WrapOptions{Threshold: 10, CharsPerLine: 8, NoBreak: DefaultNoBreak})
	want := []string{"DEPLOYIN", "G TO", "PRODUCTION!"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Wrap() = %q, want %q", got, want)
	}
}

func TestCharsPerLine(t *testing.T) {
	if got := CharsPerLine(600, 50); got != 20 {
		t.Errorf("CharsPerLine(600, 50) = %d, want 20", got)
	}
	if got := CharsPerLine(10, 100); got != 1 {
		t.Errorf("CharsPerLine floor = %d, want 1", got)
	}
	if got := CharsPerLine(100, 0); got != 1 {
		t.Errorf("CharsPerLine(size 0) = %d", got)
	}
}
