package vehicle

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/rampsim/internal/engine"
	"github.com/san-kum/rampsim/internal/engine/enginetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSpec(t *testing.T) {
	s := DefaultSpec()
	assert.InDelta(t, 1.3, s.AxleFrontX, 1e-12)
	assert.InDelta(t, -1.385, s.AxleRearX, 1e-12)
	assert.InDelta(t, 2.685, s.Wheelbase(), 1e-12)
	assert.InDelta(t, 0.135, s.Clearance(), 1e-12)
	assert.InDelta(t, 0.355, s.StartY, 1e-12)
	require.NoError(t, s.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Spec)
	}{
		{"zero wheel", func(s *Spec) { s.WheelR = 0 }},
		{"negative density", func(s *Spec) { s.ChassisDensity = -1 }},
		{"negative torque", func(s *Spec) { s.MaxMotorTorque = -5 }},
		{"axles swapped", func(s *Spec) { s.AxleFrontX, s.AxleRearX = s.AxleRearX, s.AxleFrontX }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSpec()
			tt.mutate(&s)
			assert.ErrorIs(t, s.Validate(), ErrInvalidSpec)
		})
	}
}

func TestBuild(t *testing.T) {
	w := enginetest.New()
	s := DefaultSpec()
	v, err := Build(w, s)
	require.NoError(t, err)

	require.Len(t, w.Live(engine.Dynamic), 3)
	require.Len(t, w.Joints, 2)

	c := v.Chassis.(*enginetest.Body)
	require.Len(t, c.Fixtures, 1)
	assert.Equal(t, engine.Box{HalfW: 2.1, HalfH: 0.21}, c.Fixtures[0].Shape)
	assert.Equal(t, 2.0, c.Fixtures[0].Density)
	assert.Equal(t, 0.6, c.Fixtures[0].Friction)

	rear := v.Rear.Body.Position()
	front := v.Front.Body.Position()
	assert.InDelta(t, 0.615, rear.X(), 1e-12)
	assert.InDelta(t, 3.3, front.X(), 1e-12)
	assert.InDelta(t, 0.32, rear.Y(), 1e-12)
	assert.Equal(t, rear.Y(), front.Y())

	for _, j := range w.Joints {
		assert.True(t, j.Def.EnableMotor)
		assert.False(t, j.Def.CollideConnected)
		assert.Equal(t, 0.0, j.Def.MotorSpeed)
		assert.Equal(t, 80.0, j.MaxMotorTorque())
		assert.Equal(t, v.Chassis, j.Def.A)
		assert.Equal(t, j.Def.B.Position(), j.Def.Anchor)
	}

	wf := v.Front.Body.(*enginetest.Body).Fixtures[0]
	assert.Equal(t, engine.Circle{Radius: 0.31}, wf.Shape)
	assert.Equal(t, 1.2, wf.Friction)
}

func TestBuild_CleansUpOnFailure(t *testing.T) {
	for n := 0; n < 3; n++ {
		w := enginetest.New()
		_, err := Build(&failAfter{World: w, n: n}, DefaultSpec())
		require.Error(t, err)
		assert.Empty(t, w.Bodies, "after %d bodies", n)
		assert.Empty(t, w.Joints, "after %d bodies", n)
		assert.Len(t, w.Destroyed, n)
	}
}

// failAfter lets n bodies be created before CreateBody fails.
type failAfter struct {
	*enginetest.World
	n int
}

func (f *failAfter) CreateBody(def engine.BodyDef) (engine.Body, error) {
	if f.n == 0 {
		return nil, errors.New("out of bodies")
	}
	f.n--
	return f.World.CreateBody(def)
}

func TestReplace(t *testing.T) {
	w := enginetest.New()
	v, err := Replace(w, nil, DefaultSpec(), nil)
	require.NoError(t, err)
	old := []engine.Body{v.Chassis, v.Rear.Body, v.Front.Body}
	oldJoints := append([]*enginetest.Joint(nil), w.Joints...)

	v.Chassis.(*enginetest.Body).Pos[0] = 40
	same, err := Replace(w, v, DefaultSpec(), nil)
	require.NoError(t, err)
	assert.Same(t, v, same)

	require.Len(t, w.Destroyed, 3)
	for i, b := range old {
		assert.Equal(t, b, engine.Body(w.Destroyed[i]))
	}
	for _, j := range oldJoints {
		assert.True(t, j.Dead)
	}
	assert.Len(t, w.Live(engine.Dynamic), 3)
	assert.Len(t, w.Joints, 2)
	assert.Equal(t, 2.0, v.Chassis.Position().X())
}

func TestReplace_InvalidSpecKeepsCar(t *testing.T) {
	w := enginetest.New()
	v, err := Build(w, DefaultSpec())
	require.NoError(t, err)

	bad := DefaultSpec()
	bad.WheelR = math.Inf(-1)
	got, err := Replace(w, v, bad, nil)
	assert.ErrorIs(t, err, ErrInvalidSpec)
	assert.Same(t, v, got)
	assert.Empty(t, w.Destroyed)
	assert.NotNil(t, v.Chassis)
}
