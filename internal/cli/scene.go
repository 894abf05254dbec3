// SPDX-License-Identifier: Unlicense OR MIT

package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"gioui.org/blocks/scene"
)

// sceneFlags are the flags shared by commands that load a scene.
type sceneFlags struct {
	expr     string
	width    float32
	height   float32
	pxPerDp  float32
	fontSize float32
	set      []string
}

func (f *sceneFlags) register(cmd *cobra.Command) {
	d := scene.DefaultOptions()
	cmd.Flags().StringVarP(&f.expr, "expr", "e", "", "layout expression to use instead of a scene file")
	cmd.Flags().Float32Var(&f.width, "width", 0, "viewport width (default: from scene, or 800)")
	cmd.Flags().Float32Var(&f.height, "height", 0, "viewport height (default: from scene, or 600)")
	cmd.Flags().Float32Var(&f.pxPerDp, "px-per-dp", d.PxPerDp, "pixels per dp for scenes that don't set it")
	cmd.Flags().Float32Var(&f.fontSize, "font-size", d.FontSize, "text size in dp for scenes that don't set it")
	cmd.Flags().StringArrayVar(&f.set, "set", nil, "replace the text of a named node, as name=text")
}

// args accepts a single scene file, or none with --expr.
func (f *sceneFlags) args(cmd *cobra.Command, args []string) error {
	switch {
	case f.expr != "" && len(args) > 0:
		return errors.New("a scene file and --expr are mutually exclusive")
	case f.expr == "" && len(args) != 1:
		return errors.New("requires a scene file or --expr")
	}
	return nil
}

func (f *sceneFlags) options() scene.Options {
	return scene.Options{PxPerDp: f.pxPerDp, FontSize: f.fontSize}
}

func (f *sceneFlags) load(args []string) (*scene.Scene, error) {
	var (
		s   *scene.Scene
		err error
	)
	opts := scene.WithOptions(f.options())
	if f.expr != "" {
		s, err = scene.ParseExpr(f.expr, opts)
	} else {
		dir, name := filepath.Split(args[0])
		if dir == "" {
			dir = "."
		}
		s, err = scene.Load(os.DirFS(dir), name, opts)
	}
	if err != nil {
		return nil, err
	}
	if f.width > 0 || f.height > 0 {
		vp := s.Options.ViewportSize()
		if f.width > 0 {
			vp.X = f.width
		}
		if f.height > 0 {
			vp.Y = f.height
		}
		s.Resize(vp)
	}
	for _, kv := range f.set {
		name, text, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("--set %q: expected name=text", kv)
		}
		if err := s.SetText(name, text); err != nil {
			return nil, err
		}
	}
	return s, nil
}
