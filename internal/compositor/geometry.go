package compositor

import "errors"

// ErrNotReady is returned when a mapping is requested before the template or
// its on-screen container has a size.
var ErrNotReady = errors.New("compositor: template or container not ready")

// Point is a position in either template or screen pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Rect is the on-screen box of the preview container, in client pixels.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (r Rect) Origin() Point { return Point{r.Left, r.Top} }

// Mapper converts between container-relative screen pixels and template
// pixels. Build a new one for every interaction; the container may have been
// resized since the last.
type Mapper struct {
	container Rect
	// template pixels per screen pixel
	sx, sy float64
}

// NewMapper returns ErrNotReady when either size is zero.
func NewMapper(container Rect, templateWidth, templateHeight int) (Mapper, error) {
	if container.Width <= 0 || container.Height <= 0 || templateWidth <= 0 || templateHeight <= 0 {
		return Mapper{}, ErrNotReady
	}
	return Mapper{
		container: container,
		sx:        float64(templateWidth) / container.Width,
		sy:        float64(templateHeight) / container.Height,
	}, nil
}

// ToTemplate maps a container-relative screen point into template space.
func (m Mapper) ToTemplate(p Point) Point {
	return Point{p.X * m.sx, p.Y * m.sy}
}

// ToScreen maps a template point to container-relative screen pixels.
func (m Mapper) ToScreen(p Point) Point {
	return Point{p.X / m.sx, p.Y / m.sy}
}

// Relative converts a client (viewport) point to container-relative pixels.
func (m Mapper) Relative(client Point) Point {
	return client.Sub(m.container.Origin())
}

// ClientToTemplate maps a viewport point into template space.
func (m Mapper) ClientToTemplate(client Point) Point {
	return m.ToTemplate(m.Relative(client))
}

// TemplateToClient maps a template point to viewport pixels.
func (m Mapper) TemplateToClient(p Point) Point {
	return m.ToScreen(p).Add(m.container.Origin())
}

func clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
