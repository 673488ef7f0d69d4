package camera

import (
	"testing"

	"github.com/san-kum/rampsim/internal/geom"
	"github.com/stretchr/testify/assert"
)

func TestFollow(t *testing.T) {
	c := New(DefaultConfig(), Viewport{W: 1000, H: 600})
	assert.InDelta(t, 6.5, c.FollowOffset(), 1e-12)

	tests := []struct {
		chassisX float64
		want     float64
	}{
		{2.0, 0},
		{6.5, 0},
		{10, 3.5},
		{-4, 0},
	}
	for _, tt := range tests {
		c.Follow(tt.chassisX)
		assert.InDelta(t, tt.want, c.X, 1e-12, "chassis x %v", tt.chassisX)
		assert.GreaterOrEqual(t, c.X, 0.0)
	}
}

func TestBaselineMapsToFraction(t *testing.T) {
	vp := Viewport{W: 800, H: 500}
	c := New(DefaultConfig(), vp)
	assert.InDelta(t, -2.0, c.Y, 1e-12)

	p := c.WorldToScreen(geom.V(0, 0))
	assert.InDelta(t, 0.0, p.X(), 1e-9)
	assert.InDelta(t, 300.0, p.Y(), 1e-9)

	c.Resize(Viewport{W: 800, H: 1000})
	assert.InDelta(t, 600.0, c.WorldToScreen(geom.V(0, 0)).Y(), 1e-9)
}

func TestWorldToScreen(t *testing.T) {
	c := New(DefaultConfig(), Viewport{W: 1000, H: 600})
	c.Update(10)

	p := c.WorldToScreen(geom.V(10, 1))
	assert.InDelta(t, 650.0, p.X(), 1e-9)
	assert.InDelta(t, 260.0, p.Y(), 1e-9)

	back := c.ScreenToWorld(p)
	assert.InDelta(t, 10.0, back.X(), 1e-9)
	assert.InDelta(t, 1.0, back.Y(), 1e-9)
}
