package wm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAxisRange(t *testing.T) {
	tests := []struct {
		name     string
		vp, win  float64
		floating bool
		want     Range
	}{
		{"floating", 800, 200, true, Range{Min: -300, Max: 300}},
		{"anchored", 800, 200, false, Range{Min: 0, Max: 600}},
		{"window larger", 100, 200, true, Range{Min: 0, Max: 0}},
		{"nan viewport", math.NaN(), 200, false, Range{}},
		{"nan window", 100, math.NaN(), false, Range{Max: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AxisRange(tt.vp, tt.win, tt.floating))
		})
	}
}

func TestRangeClamp(t *testing.T) {
	r := Range{Min: -3, Max: 3}
	assert.Equal(t, 3.0, r.Clamp(1000))
	assert.Equal(t, -3.0, r.Clamp(-1000))
	assert.Equal(t, 1.5, r.Clamp(1.5))
	assert.Equal(t, -3.0, r.Clamp(math.NaN()))
}

func TestDragBoundsClamp(t *testing.T) {
	b := DragBounds(Size{Width: 800, Height: 600}, Size{Width: 200, Height: 100}, true)
	assert.Equal(t, Position{X: 300, Y: -250}, b.Clamp(Position{X: 1000, Y: -900}))
}

func TestLerpEndpoints(t *testing.T) {
	a := Transform{X: 0, Y: 0, Scale: 1, Centered: true}
	b := Transform{X: 10, Y: -10, Scale: 0.1, Centered: true}
	assert.Equal(t, a, Lerp(a, b, 0))
	assert.Equal(t, b, Lerp(a, b, 1))
	assert.Equal(t, b, Lerp(a, b, 7))
}

func TestPlace(t *testing.T) {
	vp := Size{Width: 80, Height: 24}
	win := Size{Width: 20, Height: 10}

	r := Place(Transform{X: 0, Y: 0, Scale: 1, Centered: true}, vp, win)
	assert.Equal(t, Rect{X: 30, Y: 7, Width: 20, Height: 10}, r)

	r = Place(Transform{X: 4, Y: 2, Scale: 1}, vp, win)
	assert.Equal(t, Rect{X: 4, Y: 2, Width: 20, Height: 10}, r)

	r = Place(Transform{Scale: 0.5}, vp, win)
	assert.Equal(t, Rect{X: 5, Y: 2.5, Width: 10, Height: 5}, r)
	assert.True(t, r.Contains(5, 3))
	assert.False(t, r.Contains(15, 3))
}
