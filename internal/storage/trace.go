package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/rampsim/internal/sim"
)

var TraceHeader = []string{
	"t", "steps", "x", "y", "angle", "vx", "vy",
	"rear_omega", "front_omega", "rear_motor", "front_motor",
	"throttle", "braking", "cam_x",
}

func ftoa(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }

func WriteTrace(out io.Writer, frames []sim.Frame) error {
	w := csv.NewWriter(out)
	if err := w.Write(TraceHeader); err != nil {
		return err
	}
	for _, f := range frames {
		braking := "0"
		if f.Control.Braking {
			braking = "1"
		}
		row := []string{
			ftoa(f.Time),
			strconv.Itoa(f.Steps),
			ftoa(f.Chassis.X), ftoa(f.Chassis.Y), ftoa(f.Chassis.Angle),
			ftoa(f.VX), ftoa(f.VY),
			ftoa(f.Rear.Omega), ftoa(f.Front.Omega),
			ftoa(f.Rear.MotorSpeed), ftoa(f.Front.MotorSpeed),
			strconv.Itoa(f.Control.Throttle),
			braking,
			ftoa(f.Camera.X),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ReadTrace parses a trace written by WriteTrace. Wheel positions are not
// stored and come back zero.
func ReadTrace(in io.Reader) ([]sim.Frame, error) {
	r := csv.NewReader(in)
	r.FieldsPerRecord = len(TraceHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []sim.Frame{}, nil
	}

	frames := make([]sim.Frame, 0, len(records)-1)
	for i, rec := range records[1:] {
		var vals [14]float64
		for j, field := range rec {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("storage: trace row %d column %s: %w", i+1, TraceHeader[j], err)
			}
			vals[j] = v
		}
		f := sim.Frame{
			Time:    vals[0],
			Steps:   int(vals[1]),
			Chassis: sim.Pose{X: vals[2], Y: vals[3], Angle: vals[4]},
			VX:      vals[5],
			VY:      vals[6],
		}
		f.Rear.Omega, f.Front.Omega = vals[7], vals[8]
		f.Rear.MotorSpeed, f.Front.MotorSpeed = vals[9], vals[10]
		f.Control.Throttle = int(vals[11])
		f.Control.Braking = vals[12] != 0
		f.Camera.X = vals[13]
		frames = append(frames, f)
	}
	return frames, nil
}
