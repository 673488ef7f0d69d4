package terrain

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/san-kum/rampsim/internal/engine"
	"github.com/san-kum/rampsim/internal/geom"
	"go.uber.org/zap"
)

// Terrain owns the static ground body built from a Profile.
type Terrain struct {
	profile Profile
	verts   []geom.Vec2
	body    engine.Body
	log     *zap.Logger
}

func New(p Profile, log *zap.Logger) *Terrain {
	if log == nil {
		log = zap.NewNop()
	}
	return &Terrain{profile: p, verts: Build(p), log: log}
}

func (t *Terrain) Profile() Profile { return t.profile }

func (t *Terrain) Body() engine.Body { return t.body }

// Vertices returns a copy of the current polyline.
func (t *Terrain) Vertices() []geom.Vec2 {
	out := make([]geom.Vec2, len(t.verts))
	copy(out, t.verts)
	return out
}

// Apply replaces the ground body in w with one built from the current
// profile. The new body is fully assembled before the old one is destroyed,
// and the handle swaps in a single assignment; on failure the previous
// ground stays in place.
func (t *Terrain) Apply(w engine.World) error {
	verts := Build(t.profile)

	next, err := w.CreateBody(engine.BodyDef{Kind: engine.Static})
	if err != nil {
		return fmt.Errorf("terrain: create ground: %w", err)
	}
	for i := 1; i < len(verts); i++ {
		fd := engine.FixtureDef{
			Shape:    engine.Edge{A: verts[i-1], B: verts[i]},
			Friction: t.profile.Friction,
		}
		if err := next.Attach(fd); err != nil {
			_ = w.DestroyBody(next)
			return fmt.Errorf("terrain: edge %d: %w", i, err)
		}
	}

	if t.body != nil {
		if err := w.DestroyBody(t.body); err != nil {
			_ = w.DestroyBody(next)
			return fmt.Errorf("terrain: destroy previous ground: %w", err)
		}
	}

	t.body, t.verts = next, verts
	t.log.Debug("terrain rebuilt",
		zap.Int("vertices", len(verts)),
		zap.Uint64("fingerprint", Fingerprint(verts)))
	return nil
}

// SetProfile replaces the profile and rebuilds the ground.
func (t *Terrain) SetProfile(w engine.World, p Profile) error {
	prev := t.profile
	t.profile = p
	if err := t.Apply(w); err != nil {
		t.profile = prev
		return err
	}
	return nil
}

// Fingerprint hashes the exact IEEE-754 bits of verts.
func Fingerprint(verts []geom.Vec2) uint64 {
	h := xxhash.New()
	var buf [8]byte
	for _, v := range verts {
		for _, c := range v {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(c))
			_, _ = h.Write(buf[:])
		}
	}
	return h.Sum64()
}
