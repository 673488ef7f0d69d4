package control

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

var ErrBadScript = errors.New("control: invalid script")

// Event is a timed key transition, seconds from the start of a run.
type Event struct {
	At   float64 `yaml:"at" json:"at"`
	Key  string  `yaml:"key" json:"key"`
	Down bool    `yaml:"down" json:"down"`
}

// Script drives a headless run.
type Script struct {
	Name   string  `yaml:"name" json:"name"`
	Events []Event `yaml:"events" json:"events"`
}

// DefaultScript accelerates over the curb and down the slope, brakes, then
// backs up.
func DefaultScript() Script {
	return Script{
		Name: "default",
		Events: []Event{
			{At: 0.5, Key: "ArrowRight", Down: true},
			{At: 8.0, Key: "ArrowRight", Down: false},
			{At: 8.0, Key: "Space", Down: true},
			{At: 9.5, Key: "Space", Down: false},
			{At: 10.0, Key: "ArrowLeft", Down: true},
			{At: 12.0, Key: "ArrowLeft", Down: false},
		},
	}
}

func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Script) Validate() error {
	for i, e := range s.Events {
		if e.At < 0 {
			return fmt.Errorf("%w: event %d at negative time %.3f", ErrBadScript, i, e.At)
		}
		if ParseKey(e.Key) == KeyNone {
			return fmt.Errorf("%w: event %d has unknown key %q", ErrBadScript, i, e.Key)
		}
	}
	return nil
}

// Due returns events with from <= At < to, ordered by time. Events sharing a
// timestamp keep their script order.
func (s *Script) Due(from, to float64) []Event {
	var out []Event
	for _, e := range s.Events {
		if e.At >= from && e.At < to {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].At < out[j].At })
	return out
}
