// SPDX-License-Identifier: Unlicense OR MIT

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"gioui.org/blocks/f32"
	"gioui.org/blocks/layout"
	"gioui.org/blocks/scene"
)

// layoutCommand creates the layout command for printing arranged scenes.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags  sceneFlags
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "layout [scene.toml]",
		Short: "Lay out a scene and print the arranged tree",
		Long: `Lay out a scene and print the arranged tree.

The scene is read from a TOML file or, with --expr, from a layout
expression such as

	blocks layout -e 'vflow(title:text("Hello"), box(100%, 20px))'

Every node is printed with its rectangle in viewport coordinates and
the margin it protrudes, if any.`,
		Args: flags.args,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), cmd.OutOrStdout(), &flags, args, asJSON)
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the arranged nodes as JSON")
	return cmd
}

func (c *CLI) runLayout(ctx context.Context, w io.Writer, flags *sceneFlags, args []string, asJSON bool) error {
	logger := loggerFromContext(ctx)
	s, err := flags.load(args)
	if err != nil {
		return err
	}
	p := newProgress(logger)
	s.Update(logger)
	p.done("layout", "nodes", s.World.Len())
	if asJSON {
		return writeJSON(w, s)
	}
	vp := s.Options.ViewportSize()
	fmt.Fprintln(w, StyleTitle.Render(fmt.Sprintf("viewport %gx%g", vp.X, vp.Y)))
	printTree(w, s, s.Root, "", "")
	return nil
}

// printTree prints id and its subtree with box drawing guides.
func printTree(w io.Writer, s *scene.Scene, id layout.NodeID, guide, childGuide string) {
	line := StyleDim.Render(guide) + StyleName.Render(s.Describe(id)) + " " + StyleValue.Render(s.World.ScreenRect(id).String())
	if m := s.World.Margin(id); m != (f32.Edges{}) {
		line += StyleDim.Render(" margin " + m.String())
	}
	fmt.Fprintln(w, line)
	children := s.World.Children(id)
	for i, c := range children {
		if i == len(children)-1 {
			printTree(w, s, c, childGuide+"└─ ", childGuide+"   ")
		} else {
			printTree(w, s, c, childGuide+"├─ ", childGuide+"│  ")
		}
	}
}

// arrangedNode is the JSON form of an arranged node.
type arrangedNode struct {
	Node   string     `json:"node"`
	Depth  int        `json:"depth"`
	Rect   [4]float32 `json:"rect"`
	Margin [4]float32 `json:"margin"`
}

func writeJSON(w io.Writer, s *scene.Scene) error {
	var nodes []arrangedNode
	var visit func(id layout.NodeID, depth int)
	visit = func(id layout.NodeID, depth int) {
		r, m := s.World.ScreenRect(id), s.World.Margin(id)
		nodes = append(nodes, arrangedNode{
			Node:   s.Describe(id),
			Depth:  depth,
			Rect:   [4]float32{r.Min.X, r.Min.Y, r.Max.X, r.Max.Y},
			Margin: [4]float32{m.Top, m.Right, m.Bottom, m.Left},
		})
		for _, c := range s.World.Children(id) {
			visit(c, depth+1)
		}
	}
	visit(s.Root, 0)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(nodes); err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	return nil
}

// namesCommand creates the names command for listing named nodes.
func (c *CLI) namesCommand() *cobra.Command {
	var flags sceneFlags
	cmd := &cobra.Command{
		Use:   "names [scene.toml]",
		Short: "List the named nodes of a scene",
		Args:  flags.args,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := flags.load(args)
			if err != nil {
				return err
			}
			s.Update(loggerFromContext(cmd.Context()))
			w := cmd.OutOrStdout()
			for _, name := range s.Names() {
				id, _ := s.Lookup(name)
				size := s.World.Rect(id).Size()
				printKeyValue(w, name, fmt.Sprintf("%gx%g", size.X, size.Y))
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
