package control

import (
	"sort"
	"time"
)

// DefaultHoldWindow covers typical terminal auto-repeat delays.
const DefaultHoldWindow = 550 * time.Millisecond

// HoldRelease synthesises key-up events for hosts that only report key
// presses (terminals). A key counts as held while repeats keep arriving
// within the window.
type HoldRelease struct {
	window time.Duration
	held   map[Key]time.Time
}

func NewHoldRelease(window time.Duration) *HoldRelease {
	if window <= 0 {
		window = DefaultHoldWindow
	}
	return &HoldRelease{window: window, held: make(map[Key]time.Time)}
}

// Hit records a press. fresh is false for auto-repeats of a held key.
func (h *HoldRelease) Hit(k Key, now time.Time) (fresh bool) {
	_, held := h.held[k]
	h.held[k] = now
	return !held
}

// Expired removes and returns the keys whose last press is older than the
// window, in Key order.
func (h *HoldRelease) Expired(now time.Time) []Key {
	var out []Key
	for k, last := range h.held {
		if now.Sub(last) > h.window {
			out = append(out, k)
			delete(h.held, k)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (h *HoldRelease) Held(k Key) bool {
	_, ok := h.held[k]
	return ok
}
