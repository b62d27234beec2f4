//go:build js && wasm

// Browser editor for the meme creator page. Drag sessions and the live
// preview run here against the same compositor code the server exports with.
// Compiled with: GOOS=js GOARCH=wasm go build -o web/static/js/editor.wasm ./cmd/editor-wasm/
package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"syscall/js"

	"github.com/cristianadrielbraun/memezzz/internal/catalog"
	"github.com/cristianadrielbraun/memezzz/internal/compositor"
)

var (
	doc    = js.Global().Get("document")
	window = js.Global()

	editor *compositor.Editor
	stage  js.Value

	// pressFn is attached once to the stage; window listeners exist only
	// while a drag session is active.
	pressFn  js.Func
	windowFn []windowListener
)

type windowListener struct {
	event string
	fn    js.Func
}

func main() {
	stage = doc.Call("getElementById", "meme-stage")
	if tpl, ok := readTemplate(); ok {
		editor = compositor.NewEditor(tpl)
		if st, ok := readState(); ok {
			editor.Load(st)
		}
	}
	bindStage()

	js.Global().Set("goSetText", js.FuncOf(setText))
	js.Global().Set("goResetPositions", js.FuncOf(resetPositions))
	js.Global().Set("goSelectTemplate", js.FuncOf(selectTemplate))
	js.Global().Set("goApplyCaptions", js.FuncOf(applyCaptions))
	js.Global().Set("goSetQREnabled", js.FuncOf(setQREnabled))
	js.Global().Set("goEditorState", js.FuncOf(editorState))
	js.Global().Set("goTeardown", js.FuncOf(teardown))
	js.Global().Set("goEditorReady", js.ValueOf(true))
	doc.Call("dispatchEvent", js.Global().Get("CustomEvent").New("editor:ready"))

	select {}
}

func readTemplate() (*catalog.Template, bool) {
	node := doc.Call("getElementById", "editor-template")
	if node.IsNull() {
		return nil, false
	}
	var tpl catalog.Template
	if err := json.Unmarshal([]byte(node.Get("textContent").String()), &tpl); err != nil {
		fmt.Println("editor: bad template:", err)
		return nil, false
	}
	return &tpl, true
}

func readState() (compositor.State, bool) {
	var st compositor.State
	node := doc.Call("getElementById", "editor-state")
	if node.IsNull() {
		return st, false
	}
	if err := json.Unmarshal([]byte(node.Get("textContent").String()), &st); err != nil {
		return st, false
	}
	return st, true
}

func bindStage() {
	if stage.IsNull() || stage.IsUndefined() {
		return
	}
	pressFn = js.FuncOf(onPress)
	stage.Call("addEventListener", "mousedown", pressFn)
	stage.Call("addEventListener", "touchstart", pressFn, map[string]any{"passive": false})
}

func unbindStage() {
	if pressFn.IsUndefined() || stage.IsNull() || stage.IsUndefined() {
		return
	}
	stage.Call("removeEventListener", "mousedown", pressFn)
	stage.Call("removeEventListener", "touchstart", pressFn)
	pressFn.Release()
	pressFn = js.Func{}
}

func container() compositor.Rect {
	r := stage.Call("getBoundingClientRect")
	return compositor.Rect{
		Left:   r.Get("left").Float(),
		Top:    r.Get("top").Float(),
		Width:  r.Get("width").Float(),
		Height: r.Get("height").Float(),
	}
}

// pointer returns the client position of a mouse or touch event.
func pointer(ev js.Value) (compositor.Point, bool) {
	if touches := ev.Get("touches"); !touches.IsUndefined() {
		if touches.Get("length").Int() == 0 {
			return compositor.Point{}, false
		}
		ev = touches.Index(0)
	}
	return compositor.Point{X: ev.Get("clientX").Float(), Y: ev.Get("clientY").Float()}, true
}

func targetOf(node js.Value) (compositor.Target, bool) {
	if node.IsNull() || node.IsUndefined() || node.Get("closest").IsUndefined() {
		return compositor.Target{}, false
	}
	if el := node.Call("closest", "[data-slot]"); !el.IsNull() {
		return compositor.SlotTarget(el.Get("dataset").Get("slot").String()), true
	}
	if el := node.Call("closest", "[data-qr]"); !el.IsNull() {
		return compositor.QRTarget, true
	}
	return compositor.Target{}, false
}

func onPress(this js.Value, args []js.Value) any {
	if editor == nil || len(args) == 0 {
		return nil
	}
	ev := args[0]
	target, ok := targetOf(ev.Get("target"))
	if !ok {
		return nil
	}
	p, ok := pointer(ev)
	if !ok {
		return nil
	}
	if err := editor.Drag().Start(target, p, container()); err != nil {
		return nil
	}
	ev.Call("preventDefault")
	attachWindow()
	applyLayout()
	return nil
}

func onMove(this js.Value, args []js.Value) any {
	if len(args) == 0 {
		return nil
	}
	p, ok := pointer(args[0])
	if !ok {
		return nil
	}
	if _, moved := editor.Drag().Move(p, container()); moved {
		args[0].Call("preventDefault")
		applyLayout()
	}
	return nil
}

func onRelease(this js.Value, args []js.Value) any {
	editor.Drag().End()
	detachWindow()
	applyLayout()
	notify()
	return nil
}

func attachWindow() {
	detachWindow()
	move := js.FuncOf(onMove)
	end := js.FuncOf(onRelease)
	windowFn = []windowListener{
		{"mousemove", move},
		{"touchmove", move},
		{"mouseup", end},
		{"touchend", end},
		{"touchcancel", end},
	}
	for _, l := range windowFn {
		window.Call("addEventListener", l.event, l.fn, map[string]any{"passive": false})
	}
}

// detachWindow removes the drag listeners. It runs on every exit path of a
// session: release, template switch and teardown.
func detachWindow() {
	if len(windowFn) == 0 {
		return
	}
	for _, l := range windowFn {
		window.Call("removeEventListener", l.event, l.fn, map[string]any{"passive": false})
	}
	windowFn[0].fn.Release() // mousemove and touchmove share it
	windowFn[2].fn.Release() // mouseup, touchend and touchcancel share it
	windowFn = nil
}

func pct(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) + "%" }

// applyLayout moves the preview nodes to the editor's current layout.
func applyLayout() {
	if editor == nil || stage.IsNull() || stage.IsUndefined() {
		return
	}
	l := compositor.Preview(editor)
	for _, b := range l.Boxes {
		node := stage.Call("querySelector", `[data-slot="`+b.ID+`"]`)
		if node.IsNull() {
			continue
		}
		style := node.Get("style")
		style.Set("left", pct(b.LeftPct))
		style.Set("top", pct(b.TopPct))
		style.Set("width", pct(b.WidthPct))
		style.Set("minHeight", pct(b.MinHeightPct))
		style.Set("justifyContent", b.Justify)
		if span := node.Call("querySelector", "span"); !span.IsNull() {
			span.Set("textContent", b.Text)
		}
		node.Get("classList").Call("toggle", "ring-2", b.Dragging)
		node.Get("classList").Call("toggle", "opacity-80", b.Dragging)
	}

	qr := stage.Call("querySelector", "[data-qr]")
	if qr.IsNull() {
		return
	}
	if l.QR == nil {
		qr.Get("style").Set("display", "none")
		return
	}
	style := qr.Get("style")
	style.Set("display", "")
	style.Set("left", pct(l.QR.LeftPct))
	style.Set("top", pct(l.QR.TopPct))
	style.Set("width", pct(l.QR.WidthPct))
	style.Set("height", pct(l.QR.HeightPct))
	qr.Get("classList").Call("toggle", "ring-2", l.QR.Dragging)
}

// notify tells the page script the editor state changed.
func notify() {
	detail := map[string]any{"detail": stateJSON()}
	doc.Call("dispatchEvent", js.Global().Get("CustomEvent").New("editor:change", detail))
}

func stateJSON() string {
	if editor == nil {
		return "null"
	}
	b, err := json.Marshal(editor.State())
	if err != nil {
		return "null"
	}
	return string(b)
}

// goSetText(slotID, text) -> bool
func setText(this js.Value, args []js.Value) any {
	if editor == nil || len(args) < 2 {
		return js.ValueOf(false)
	}
	ok := editor.SetText(args[0].String(), args[1].String())
	applyLayout()
	return js.ValueOf(ok)
}

// goResetPositions()
func resetPositions(this js.Value, args []js.Value) any {
	if editor == nil {
		return nil
	}
	editor.Drag().Cancel()
	detachWindow()
	editor.ResetPositions()
	applyLayout()
	notify()
	return nil
}

// goSelectTemplate(templateJSON[, stateJSON]) switches template. The page
// script swaps the preview markup first.
func selectTemplate(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("error: need templateJSON")
	}
	var tpl catalog.Template
	if err := json.Unmarshal([]byte(args[0].String()), &tpl); err != nil {
		return js.ValueOf("error: parse template: " + err.Error())
	}
	if editor != nil {
		editor.Drag().Cancel()
	}
	detachWindow()
	unbindStage()

	if editor == nil {
		editor = compositor.NewEditor(&tpl)
	} else {
		editor.SelectTemplate(&tpl)
	}
	if len(args) > 1 && args[1].Type() == js.TypeString {
		var st compositor.State
		if err := json.Unmarshal([]byte(args[1].String()), &st); err == nil {
			editor.Load(st)
		}
	}
	stage = doc.Call("getElementById", "meme-stage")
	bindStage()
	applyLayout()
	notify()
	return js.ValueOf("ok")
}

// goApplyCaptions(captionsJSON) distributes generated captions over the
// slots and returns the resulting slot texts.
func applyCaptions(this js.Value, args []js.Value) any {
	if editor == nil || len(args) < 1 {
		return js.ValueOf("error: editor not ready")
	}
	var c compositor.Captions
	if err := json.Unmarshal([]byte(args[0].String()), &c); err != nil {
		return js.ValueOf("error: parse captions: " + err.Error())
	}
	editor.ApplyCaptions(c)
	applyLayout()
	notify()
	texts := make([]any, 0, len(editor.Slots()))
	for _, s := range editor.Slots() {
		texts = append(texts, s.Text)
	}
	return js.ValueOf(texts)
}

// goSetQREnabled(bool)
func setQREnabled(this js.Value, args []js.Value) any {
	if editor == nil || len(args) < 1 {
		return nil
	}
	editor.SetQREnabled(args[0].Truthy())
	applyLayout()
	notify()
	return nil
}

// goEditorState() -> JSON snapshot for /api/export
func editorState(this js.Value, args []js.Value) any {
	return js.ValueOf(stateJSON())
}

// goTeardown() ends any drag and removes every listener.
func teardown(this js.Value, args []js.Value) any {
	if editor != nil {
		editor.Drag().Cancel()
	}
	detachWindow()
	unbindStage()
	return nil
}
