package compositor

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/cristianadrielbraun/memezzz/internal/catalog"
)

func testTemplate() *catalog.Template {
	return &catalog.Template{
		ID:     "test",
		Name:   "Legacy Code Victory!",
		Path:   "test.png",
		Width:  800,
		Height: 600,
		TextAreas: []catalog.TextSlot{
			{ID: "top", X: 400, Y: 100, Width: 600, Height: 150, Align: catalog.AlignCenter, DefaultText: "Top"},
			{ID: "bottom", X: 400, Y: 500, Width: 600, Height: 150, Align: catalog.AlignCenter, DefaultText: "Bottom"},
			{ID: "side", X: 150, Y: 300, Width: 200, Height: 100, Align: catalog.AlignLeft},
		},
	}
}

func solidImage(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{c}, image.Point{}, draw.Src)
	return img
}
