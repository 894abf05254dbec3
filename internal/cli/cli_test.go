// SPDX-License-Identifier: Unlicense OR MIT

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	c := New(&logs, LogInfo)
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(&logs)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

const twoBoxes = `hflow(a:box(40px, 20px), b:box(30px, 40px))`

func TestLayoutExpr(t *testing.T) {
	out, err := execute(t, "layout", "-e", twoBoxes, "--width", "200", "--height", "100")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"viewport 200x100", "a (box)", "(0,0)-(40,20)", "b (box)", "(40,0)-(70,40)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
}

func TestLayoutJSON(t *testing.T) {
	out, err := execute(t, "layout", "-e", twoBoxes, "--json")
	if err != nil {
		t.Fatal(err)
	}
	var nodes []arrangedNode
	if err := json.Unmarshal([]byte(out), &nodes); err != nil {
		t.Fatalf("%v:\n%s", err, out)
	}
	if len(nodes) != 3 {
		t.Fatalf("got %d nodes, expected 3", len(nodes))
	}
	if got := nodes[2]; got.Node != "b (box)" || got.Depth != 1 || got.Rect != [4]float32{40, 0, 70, 40} {
		t.Errorf("got %+v", got)
	}
}

func TestLayoutFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.toml")
	src := `
[options]
viewport = [300, 200]

[root]
layout = "flow"
direction = "vertical"

[[root.children]]
name = "title"
text = "placeholder"
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := execute(t, "layout", path, "--set", "title=hi")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "title (text)") || !strings.Contains(out, "viewport 300x200") {
		t.Errorf("unexpected output:\n%s", out)
	}

	out, err = execute(t, "names", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "title") {
		t.Errorf("names lacks title:\n%s", out)
	}
}

func TestSceneArgs(t *testing.T) {
	tests := [][]string{
		{"layout"},
		{"layout", "scene.toml", "-e", twoBoxes},
		{"layout", "-e", twoBoxes, "--set", "a"},
		{"layout", "-e", "box(1px"},
		{"check", filepath.Join(t.TempDir(), "missing.toml")},
	}
	for _, args := range tests {
		if _, err := execute(t, args...); err == nil {
			t.Errorf("%q: expected error", args)
		}
	}
}

func TestCheckCommand(t *testing.T) {
	out, err := execute(t, "check", "-e", twoBoxes)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, iconSuccess) || !strings.Contains(out, "3 nodes") {
		t.Errorf("unexpected output:\n%s", out)
	}
}
