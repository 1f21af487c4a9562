package wm

import "math"

// Position is an offset from a window's layout anchor. Floating windows are
// anchored at the viewport center, others at its top-left corner.
type Position struct {
	X, Y float64
}

// Add returns p shifted by d.
func (p Position) Add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

// Sub returns p - q.
func (p Position) Sub(q Position) Position {
	return Position{X: p.X - q.X, Y: p.Y - q.Y}
}

// Size is a measured width and height.
type Size struct {
	Width, Height float64
}

// Range is a closed interval [Min, Max].
type Range struct {
	Min, Max float64
}

// Clamp constrains v to r. NaN clamps to r.Min.
func (r Range) Clamp(v float64) float64 {
	if math.IsNaN(v) || v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Bounds holds the per-axis clamp ranges for a window's position.
type Bounds struct {
	X, Y Range
}

// Clamp constrains p to b.
func (b Bounds) Clamp(p Position) Position {
	return Position{X: b.X.Clamp(p.X), Y: b.Y.Clamp(p.Y)}
}

// measure turns an unavailable measurement (NaN, infinite, negative) into 0.
func measure(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// MaxOffset is how far a window of the given extent can travel inside the
// viewport on one axis. It is never negative.
func MaxOffset(viewport, window float64) float64 {
	return math.Max(0, measure(viewport)-measure(window))
}

// AxisRange returns the allowed position range on one axis: centered on zero
// for floating windows, starting at zero otherwise.
func AxisRange(viewport, window float64, floating bool) Range {
	off := MaxOffset(viewport, window)
	if floating {
		return Range{Min: -off / 2, Max: off / 2}
	}
	return Range{Min: 0, Max: off}
}

// DragBounds returns the clamp bounds for a window of size win inside vp.
func DragBounds(vp, win Size, floating bool) Bounds {
	return Bounds{
		X: AxisRange(vp.Width, win.Width, floating),
		Y: AxisRange(vp.Height, win.Height, floating),
	}
}

// Transform is the render transform of a window: a translation from its
// anchor plus a uniform scale. Centered marks center-anchored translation.
type Transform struct {
	X, Y     float64
	Scale    float64
	Centered bool
}

// Lerp interpolates between a and b. t is clamped to [0, 1].
func Lerp(a, b Transform, t float64) Transform {
	t = Range{Min: 0, Max: 1}.Clamp(t)
	mix := func(x, y float64) float64 { return x*(1-t) + y*t }
	return Transform{
		X:        mix(a.X, b.X),
		Y:        mix(a.Y, b.Y),
		Scale:    mix(a.Scale, b.Scale),
		Centered: b.Centered,
	}
}

// Rect is an axis-aligned rectangle in viewport coordinates.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point lies inside r.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Place resolves a transform for a window of size win into a rectangle in a
// viewport of size vp. Scaling shrinks the window around its center.
func Place(t Transform, vp, win Size) Rect {
	w := measure(win.Width) * t.Scale
	h := measure(win.Height) * t.Scale
	left, top := t.X, t.Y
	if t.Centered {
		left += (measure(vp.Width) - measure(win.Width)) / 2
		top += (measure(vp.Height) - measure(win.Height)) / 2
	}
	// Scale about the unscaled box's center.
	left += (measure(win.Width) - w) / 2
	top += (measure(win.Height) - h) / 2
	return Rect{X: left, Y: top, Width: w, Height: h}
}
