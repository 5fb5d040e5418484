package main

import (
	"os"
	"path/filepath"
	"testing"
)

const layoutDir = "../../pkg/layouts/gamepad"

func TestRunMatchesCheckedInLayout(t *testing.T) {
	dir := t.TempDir()
	opts := options{
		actions:  filepath.Join(layoutDir, "actions.yaml"),
		typeName: "gamepad.Gamepad",
		vdf:      filepath.Join(dir, "gamepad.vdf"),
		out:      filepath.Join(dir, "gamepad_gen.go"),
	}
	if err := run(opts); err != nil {
		t.Fatalf("run: %v", err)
	}

	for _, name := range []string{"gamepad.vdf", "gamepad_gen.go"} {
		got, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatal(err)
		}
		want, err := os.ReadFile(filepath.Join(layoutDir, name))
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != string(want) {
			t.Errorf("%s differs from the checked-in file", name)
		}
	}
}

func TestRunFromManifest(t *testing.T) {
	dir := t.TempDir()
	opts := options{
		manifest: filepath.Join(layoutDir, "gamepad.vdf"),
		typeName: "gamepad.Gamepad",
		out:      filepath.Join(dir, "gamepad_gen.go"),
	}
	if err := run(opts); err != nil {
		t.Fatalf("run: %v", err)
	}
	got, err := os.ReadFile(opts.out)
	if err != nil {
		t.Fatal(err)
	}
	want, err := os.ReadFile(filepath.Join(layoutDir, "gamepad_gen.go"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(want) {
		t.Error("generated layout differs from the checked-in file")
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts options
		ok   bool
	}{
		{"actions and vdf", options{actions: "a.yaml", vdf: "a.vdf"}, true},
		{"actions and out", options{actions: "a.yaml", typeName: "p.T", out: "t.go"}, true},
		{"manifest and out", options{manifest: "a.vdf", typeName: "p.T", out: "t.go"}, true},
		{"no input", options{vdf: "a.vdf"}, false},
		{"both inputs", options{actions: "a.yaml", manifest: "a.vdf", vdf: "b.vdf"}, false},
		{"manifest with vdf", options{manifest: "a.vdf", vdf: "b.vdf"}, false},
		{"type without out", options{actions: "a.yaml", typeName: "p.T", vdf: "a.vdf"}, false},
		{"nothing to write", options{actions: "a.yaml"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.validate()
			if (err == nil) != tt.ok {
				t.Errorf("validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestRunMissingAsset(t *testing.T) {
	err := run(options{actions: filepath.Join(t.TempDir(), "missing.yaml"), vdf: "x.vdf"})
	if err == nil {
		t.Error("expected error for missing asset")
	}
}
