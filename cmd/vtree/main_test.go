package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/vtree/internal/config"
	vterrors "github.com/vango-dev/vtree/internal/errors"
)

// execute runs the CLI with args and returns what it wrote to its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(&globalOptions{})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// boltConfigDir writes a config that records snapshots into a temp bolt file.
func boltConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cfg := config.New()
	cfg.Log.Level = "error"
	cfg.Snapshot.Driver = config.DriverBolt
	cfg.Snapshot.Path = filepath.Join(dir, "snapshots.db")
	if err := cfg.SaveTo(filepath.Join(dir, "vtree.json")); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	return dir
}

func TestVersionShort(t *testing.T) {
	out, err := execute(t, "version", "--short")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if strings.TrimSpace(out) != version {
		t.Errorf("version --short = %q, want %q", out, version)
	}
}

func TestRenderHTML(t *testing.T) {
	out, err := execute(t, "render", "--config", t.TempDir(), "--log-level", "error",
		"--counter", "2", "--color", "red")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `<div style="height: 20px; background: red;">the counter is 2` +
		`<h1 style="color: red;">BOOM! BOOM! </h1>` +
		`<h1 style="color: red;">The count from parent is: 2</h1></div>`
	if strings.TrimSpace(out) != want {
		t.Errorf("render =\n%s\nwant\n%s", out, want)
	}
}

func TestRenderTerminal(t *testing.T) {
	out, err := execute(t, "render", "--config", t.TempDir(), "--log-level", "error",
		"--format", "terminal", "--color", "red")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"div", "the counter is 1", "h1", "The count from parent is: 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("terminal render missing %q:\n%s", want, out)
		}
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	_, err := execute(t, "render", "--config", t.TempDir(), "--format", "svg")
	if got := vterrors.CodeOf(err); got != "VT021" {
		t.Errorf("CodeOf(err) = %q, want VT021 (err: %v)", got, err)
	}
}

func TestInvalidConfigFlag(t *testing.T) {
	_, err := execute(t, "render", "--config", t.TempDir(), "--log-level", "loud")
	if got := vterrors.CodeOf(err); got != "VT021" {
		t.Errorf("CodeOf(err) = %q, want VT021 (err: %v)", got, err)
	}
}

func TestRunRecordsSnapshots(t *testing.T) {
	dir := boltConfigDir(t)

	out, err := execute(t, "run", "--config", dir, "--interval", "1ms", "--max", "2")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, want := range []string{"#1 mount", "#2 set_state", "#3 set_state", "the counter is 3"} {
		if !strings.Contains(out, want) {
			t.Errorf("run output missing %q:\n%s", want, out)
		}
	}

	list, err := execute(t, "snapshot", "--config", dir, "--list")
	if err != nil {
		t.Fatalf("snapshot --list: %v", err)
	}
	if lines := strings.Split(strings.TrimSpace(list), "\n"); len(lines) != 3 {
		t.Errorf("snapshot --list printed %d lines, want 3:\n%s", len(lines), list)
	}

	latest, err := execute(t, "snapshot", "--config", dir)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if !strings.Contains(latest, "the counter is 3") {
		t.Errorf("latest snapshot = %q", latest)
	}

	raw, err := execute(t, "snapshot", "2", "--json", "--config", dir)
	if err != nil {
		t.Fatalf("snapshot 2: %v", err)
	}
	var snap struct {
		Seq       uint64 `json:"seq"`
		Kind      string `json:"kind"`
		Component string `json:"component"`
	}
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		t.Fatalf("decode %q: %v", raw, err)
	}
	if snap.Seq != 2 || snap.Kind != "set_state" || snap.Component != "App" {
		t.Errorf("snapshot 2 = %+v", snap)
	}
}

func TestSnapshotErrors(t *testing.T) {
	if _, err := execute(t, "snapshot", "--config", t.TempDir()); vterrors.CodeOf(err) != "VT040" {
		t.Errorf("driver none: err = %v, want VT040", err)
	}

	dir := boltConfigDir(t)
	if _, err := execute(t, "snapshot", "--config", dir, "nope"); vterrors.CodeOf(err) != "VT042" {
		t.Errorf("bad seq: err = %v, want VT042", err)
	}
	if _, err := execute(t, "snapshot", "--config", dir, "9"); vterrors.CodeOf(err) != "VT042" {
		t.Errorf("missing seq: err = %v, want VT042", err)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, config.LogConfig{Level: "warn", Format: "json"})
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record written at warn level: %s", out)
	}
	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if rec["msg"] != "shown" || rec["k"] != "v" || rec["level"] != slog.LevelWarn.String() {
		t.Errorf("record = %v", rec)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	dir := boltConfigDir(t)
	opts := &globalOptions{configPath: filepath.Join(dir, "vtree.json"), logLevel: "debug", logFormat: "json"}
	cfg, err := opts.loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Snapshot.Driver != config.DriverBolt {
		t.Errorf("Driver = %q, want bolt", cfg.Snapshot.Driver)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v", cfg.Log)
	}
}

func TestErrorsList(t *testing.T) {
	out, err := execute(t, "errors")
	if err != nil {
		t.Fatalf("errors: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != len(vterrors.GetAllCodes()) {
		t.Errorf("errors printed %d lines, want %d:\n%s", len(lines), len(vterrors.GetAllCodes()), out)
	}
	if !strings.HasPrefix(lines[0], "VT001") {
		t.Errorf("first line = %q, want VT001 first", lines[0])
	}
}

func TestErrorsExplain(t *testing.T) {
	out, err := execute(t, "errors", "vt003")
	if err != nil {
		t.Fatalf("errors vt003: %v", err)
	}
	for _, want := range []string{"VT003: Child count mismatch", "Category: update", "Hint:"} {
		if !strings.Contains(out, want) {
			t.Errorf("errors vt003 missing %q:\n%s", want, out)
		}
	}

	if _, err := execute(t, "errors", "VT999"); err == nil {
		t.Error("unknown code should fail")
	}
}

func TestPrintErrorJSON(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, vterrors.New("VT060").WithDetail("port\x00 in use"), "json")

	var rec map[string]string
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if rec["code"] != "VT060" || rec["detail"] != "port\x00 in use" {
		t.Errorf("record = %v", rec)
	}

	buf.Reset()
	vterrors.DisableColors()
	defer vterrors.EnableColors()
	printError(&buf, vterrors.New("VT060"), "text")
	if !strings.Contains(buf.String(), "ERROR VT060: Preview server failed") {
		t.Errorf("text output = %q", buf.String())
	}
}
