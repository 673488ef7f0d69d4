package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/rampsim/internal/control"
	"github.com/san-kum/rampsim/internal/sim"
)

func testResult() *sim.Result {
	return &sim.Result{
		Script: "default",
		Steps:  2,
		Frames: []sim.Frame{
			{Time: 1.0 / 60, Steps: 1, Chassis: sim.Pose{X: 2, Y: 0.355}},
			{
				Time: 2.0 / 60, Steps: 1,
				Chassis: sim.Pose{X: 2.01, Y: 0.35, Angle: -0.01},
				VX:      0.6,
				Rear:    sim.WheelFrame{Omega: -1.5, MotorSpeed: -12},
				Front:   sim.WheelFrame{Omega: -1.4, MotorSpeed: -12},
				Control: control.State{Throttle: 1, Braking: true},
				Camera:  sim.CameraFrame{X: 0.25},
			},
		},
		Metrics: map[string]float64{"distance": 0.01},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(RunMetadata{Script: "default", Engine: "box2d", FrameDt: 1.0 / 60, Fingerprint: 42}, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.ID != runID || meta.Engine != "box2d" || meta.Fingerprint != 42 {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Steps != 2 || meta.Frames != 2 {
		t.Errorf("expected 2 steps and frames, got %d/%d", meta.Steps, meta.Frames)
	}
	if meta.Metrics["distance"] != 0.01 {
		t.Errorf("expected distance 0.01, got %f", meta.Metrics["distance"])
	}

	frames, err := st.LoadTrace(runID)
	if err != nil {
		t.Fatalf("load trace failed: %v", err)
	}
	if len(frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(frames))
	}
	f := frames[1]
	if f.Chassis.X != 2.01 || f.Rear.MotorSpeed != -12 || f.Control.Throttle != 1 || !f.Control.Braking {
		t.Errorf("trace round trip lost data: %+v", f)
	}
	if f.Camera.X != 0.25 {
		t.Errorf("expected camera x 0.25, got %f", f.Camera.X)
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	first, _ := st.Save(RunMetadata{Script: "a"}, testResult())
	second, _ := st.Save(RunMetadata{Script: "b"}, testResult())
	os.MkdirAll(filepath.Join(tmpDir, "junk"), 0755)

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	ids := map[string]bool{runs[0].ID: true, runs[1].ID: true}
	if !ids[first] || !ids[second] {
		t.Errorf("expected runs %s and %s, got %+v", first, second, runs)
	}
	if runs[0].Timestamp.Before(runs[1].Timestamp) {
		t.Error("expected newest first")
	}
}

func TestStoreList_MissingDir(t *testing.T) {
	runs, err := New(filepath.Join(t.TempDir(), "absent")).List()
	if err != nil || len(runs) != 0 {
		t.Errorf("expected empty list, got %v, %v", runs, err)
	}
}

func TestStoreLoad_NotFound(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
	if _, err := st.LoadTrace("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runID, err := st.Save(RunMetadata{Script: "default"}, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	if _, err := os.Stat(filepath.Join(runDir, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}
	if _, err := os.Stat(filepath.Join(runDir, "trace.csv")); os.IsNotExist(err) {
		t.Error("trace.csv not created")
	}
}

func TestReadTrace_Malformed(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTrace(&buf, testResult().Frames); err != nil {
		t.Fatal(err)
	}
	bad := bytes.Replace(buf.Bytes(), []byte("2.010000"), []byte("two"), 1)
	if _, err := ReadTrace(bytes.NewReader(bad)); err == nil {
		t.Error("expected parse error")
	}
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	meta := RunMetadata{ID: "x", Metrics: map[string]float64{"max_speed": 3}}
	if err := ExportJSON(&buf, meta, testResult().Frames); err != nil {
		t.Fatal(err)
	}
	var out ExportData
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Meta.ID != "x" || len(out.Frames) != 2 || out.Metrics["max_speed"] != 3 {
		t.Errorf("unexpected export %+v", out)
	}
}
