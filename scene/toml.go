// SPDX-License-Identifier: Unlicense OR MIT

package scene

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/image/font"

	"gioui.org/blocks/f32"
	"gioui.org/blocks/layout"
	"gioui.org/blocks/text"
	"gioui.org/blocks/unit"
	"gioui.org/blocks/widget"
)

// Document is the TOML form of a scene.
type Document struct {
	Options Options  `toml:"options"`
	Root    NodeSpec `toml:"root"`
}

// NodeSpec describes a node and its subtree. Lengths are strings such
// as "24", "24px", "12dp", "50%" or "100% - 8dp". Margin and padding
// are dp values.
type NodeSpec struct {
	Name string `toml:"name"`

	// Layout is "flow" or "stack" for nodes with children.
	Layout         string `toml:"layout"`
	Direction      string `toml:"direction"`
	Reverse        bool   `toml:"reverse"`
	Stretch        bool   `toml:"stretch"`
	CrossAlign     string `toml:"cross_align"`
	ContainMargins bool   `toml:"contain_margins"`
	AlignX         string `toml:"align_x"`
	AlignY         string `toml:"align_y"`

	Margin      []float32 `toml:"margin"`
	Padding     []float32 `toml:"padding"`
	Size        []string  `toml:"size"`
	MinSize     []string  `toml:"min_size"`
	MaxSize     []string  `toml:"max_size"`
	Offset      []string  `toml:"offset"`
	Anchor      []string  `toml:"anchor"`
	AspectRatio float32   `toml:"aspect_ratio"`
	// Maximize is one weight for both axes or one per axis.
	Maximize    []float32 `toml:"maximize"`

	// Leaf content. At most one of Text, Image and Cells may be set.
	Text  *string    `toml:"text"`
	Image string     `toml:"image"`
	Fit   string     `toml:"fit"`
	Cells int        `toml:"cells"`
	Cell  [2]float32 `toml:"cell"`

	Children []NodeSpec `toml:"children"`
}

// BuildOption configures Load, Parse and ParseExpr.
type BuildOption func(b *builder)

// WithOptions sets the options of a scene. Options in a TOML document
// override it.
func WithOptions(o Options) BuildOption {
	return func(b *builder) {
		b.opts = o
	}
}

// WithFace shapes text with face instead of the default font.
func WithFace(face font.Face) BuildOption {
	return func(b *builder) {
		b.shaper = text.NewShaperFace(face)
	}
}

// WithFS resolves image paths in fsys.
func WithFS(fsys fs.FS) BuildOption {
	return func(b *builder) {
		b.fsys = fsys
	}
}

type builder struct {
	fsys   fs.FS
	dir    string
	opts   Options
	shaper *text.Shaper
	scene  *Scene
}

func newBuilder(options []BuildOption) *builder {
	b := new(builder)
	for _, o := range options {
		o(b)
	}
	return b
}

// Load reads the TOML scene name from fsys. Image paths are relative
// to the directory of name.
func Load(fsys fs.FS, name string, options ...BuildOption) (*Scene, error) {
	src, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	b := newBuilder(options)
	b.fsys = fsys
	b.dir = path.Dir(name)
	s, err := b.parse(string(src))
	if err != nil {
		return nil, fmt.Errorf("scene: %s: %w", name, err)
	}
	return s, nil
}

// Parse reads a TOML scene from src.
func Parse(src string, options ...BuildOption) (*Scene, error) {
	s, err := newBuilder(options).parse(src)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	return s, nil
}

func (b *builder) parse(src string) (*Scene, error) {
	doc := Document{Options: b.opts}
	md, err := toml.Decode(src, &doc)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, strings.Join(keys, ", "))
	}
	return b.build(doc)
}

// Build creates a scene from a decoded document.
func Build(doc Document, options ...BuildOption) (*Scene, error) {
	s, err := newBuilder(options).build(doc)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	return s, nil
}

func (b *builder) build(doc Document) (*Scene, error) {
	if err := b.init(doc.Options); err != nil {
		return nil, err
	}
	root, err := b.node(&doc.Root, "root")
	if err != nil {
		return nil, err
	}
	b.scene.Root = root
	return b.scene, nil
}

func (b *builder) init(opts Options) error {
	b.scene = newScene(opts)
	if b.shaper == nil {
		sh, err := text.NewShaper(b.scene.Options.metric().Dp(b.scene.Options.FontSize))
		if err != nil {
			return err
		}
		b.shaper = sh
	}
	return nil
}

func (b *builder) node(spec *NodeSpec, where string) (layout.NodeID, error) {
	var id layout.NodeID
	props, kind, err := b.props(spec)
	if err != nil {
		return id, fmt.Errorf("%s: %w", where, err)
	}
	children := make([]layout.NodeID, len(spec.Children))
	for i := range spec.Children {
		c, err := b.node(&spec.Children[i], fmt.Sprintf("%s.children[%d]", where, i))
		if err != nil {
			return id, err
		}
		children[i] = c
	}
	id = b.scene.World.Insert(props, children...)
	if lbl, ok := props.Resolver.(*text.Label); ok {
		b.scene.labels[id] = lbl
	}
	if err := b.scene.register(id, spec.Name, kind); err != nil {
		return id, fmt.Errorf("%s: %w", where, err)
	}
	return id, nil
}

func (b *builder) props(spec *NodeSpec) (layout.Props, string, error) {
	var p layout.Props
	m := b.scene.Options.metric()
	var err error
	if p.Margin, err = parseEdges(spec.Margin, m); err != nil {
		return p, "", fmt.Errorf("margin: %w", err)
	}
	if p.Padding, err = parseEdges(spec.Padding, m); err != nil {
		return p, "", fmt.Errorf("padding: %w", err)
	}
	vecs := []struct {
		key  string
		vals []string
		dst  *unit.Vec
	}{
		{"size", spec.Size, &p.Size},
		{"min_size", spec.MinSize, &p.MinSize},
		{"offset", spec.Offset, &p.Offset},
		{"anchor", spec.Anchor, &p.Anchor},
	}
	for _, v := range vecs {
		if v.vals == nil {
			continue
		}
		if *v.dst, err = parseVec(v.vals, m); err != nil {
			return p, "", fmt.Errorf("%s: %w", v.key, err)
		}
	}
	if spec.MaxSize != nil {
		bound, err := parseVec(spec.MaxSize, m)
		if err != nil {
			return p, "", fmt.Errorf("max_size: %w", err)
		}
		p.MaxSize = layout.Bound(bound)
	}
	p.AspectRatio = spec.AspectRatio
	if p.Maximize, err = parseWeights(spec.Maximize); err != nil {
		return p, "", fmt.Errorf("maximize: %w", err)
	}

	kind, err := b.content(spec, &p)
	return p, kind, err
}

// content sets the layout strategy or resolver of p and returns the
// kind of node.
func (b *builder) content(spec *NodeSpec, p *layout.Props) (string, error) {
	var kinds []string
	if spec.Layout != "" {
		kinds = append(kinds, spec.Layout)
	}
	if spec.Text != nil {
		kinds = append(kinds, "text")
	}
	if spec.Image != "" {
		kinds = append(kinds, "image")
	}
	if spec.Cells != 0 {
		kinds = append(kinds, "cells")
	}
	switch len(kinds) {
	case 0:
		if len(spec.Children) > 0 {
			return "", ErrNoLayout
		}
		return "box", nil
	case 1:
	default:
		return "", fmt.Errorf("%w: %s", ErrConflict, strings.Join(kinds, " and "))
	}
	if spec.Layout == "" && len(spec.Children) > 0 {
		return "", fmt.Errorf("%w: %s with children", ErrConflict, kinds[0])
	}
	switch kind := kinds[0]; kind {
	case "flow":
		dir, err := parseDirection(spec.Direction)
		if err != nil {
			return "", err
		}
		align, err := parseAlignment(spec.CrossAlign)
		if err != nil {
			return "", err
		}
		p.Layout = layout.Flow{
			Direction:      dir,
			Reverse:        spec.Reverse,
			Stretch:        spec.Stretch,
			CrossAlign:     align,
			ContainMargins: spec.ContainMargins,
		}
		return kind, nil
	case "stack":
		h, err := parseAlignment(spec.AlignX)
		if err != nil {
			return "", err
		}
		v, err := parseAlignment(spec.AlignY)
		if err != nil {
			return "", err
		}
		p.Layout = layout.Stack{Horizontal: h, Vertical: v}
		return kind, nil
	case "text":
		p.Resolver = &text.Label{Shaper: b.shaper, Text: *spec.Text}
		return kind, nil
	case "image":
		fit, err := parseFit(spec.Fit)
		if err != nil {
			return "", err
		}
		im, err := b.image(spec.Image, fit)
		if err != nil {
			return "", err
		}
		p.Resolver = im
		return kind, nil
	case "cells":
		if spec.Cells < 0 {
			return "", fmt.Errorf("%w: cells %d", ErrBadValue, spec.Cells)
		}
		p.Resolver = widget.FixedArea{Cells: spec.Cells, Cell: f32.Pt(spec.Cell[0], spec.Cell[1])}
		return kind, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownLayout, kind)
	}
}

func (b *builder) image(name string, fit widget.Fit) (widget.Image, error) {
	if b.fsys == nil {
		return widget.Image{}, fmt.Errorf("image %q: no file system", name)
	}
	if b.dir != "" && !path.IsAbs(name) {
		name = path.Join(b.dir, name)
	}
	f, err := b.fsys.Open(name)
	if err != nil {
		return widget.Image{}, err
	}
	defer f.Close()
	im, _, err := widget.DecodeImage(f, fit)
	if err != nil {
		return widget.Image{}, fmt.Errorf("image %q: %w", name, err)
	}
	im.Scale = b.scene.Options.metric().Dp(1)
	return im, nil
}
