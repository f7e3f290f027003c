package art

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Entry describes one image in a manifest. Entries with a File are decoded
// from PNG; the rest are generated from Width, Height, Color and Shape.
type Entry struct {
	File   string `yaml:"file"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Color  string `yaml:"color"`
	Shape  string `yaml:"shape"` // "disc" (default) or "block"
	Glyph  string `yaml:"glyph"`
}

// Manifest maps image names to entries. It implements Loader.
type Manifest struct {
	Images map[string]Entry `yaml:"images"`

	dir string
}

// LoadManifest reads a YAML manifest. Relative file paths resolve against the
// manifest's directory.
func LoadManifest(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	m, err := ParseManifest(raw, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return m, nil
}

// ParseManifest decodes manifest YAML with dir as the base for file entries.
func ParseManifest(raw []byte, dir string) (*Manifest, error) {
	m := &Manifest{dir: dir}
	if err := yaml.Unmarshal(raw, m); err != nil {
		return nil, err
	}
	if m.Images == nil {
		m.Images = map[string]Entry{}
	}
	return m, nil
}

// Names lists the manifest's image names in sorted order.
func (m *Manifest) Names() []string {
	names := make([]string, 0, len(m.Images))
	for name := range m.Images {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load implements Loader.
func (m *Manifest) Load(name string) (*Sprite, error) {
	e, ok := m.Images[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrImageNotFound)
	}
	col := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	if e.Color != "" {
		parsed, err := ParseColor(e.Color)
		if err != nil {
			return nil, err
		}
		col = parsed
	}
	s := &Sprite{Name: name, Color: col, Glyph: glyphFor(name, e.Glyph)}

	if e.File != "" {
		path := e.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(m.dir, path)
		}
		img, err := decodePNG(path)
		if err != nil {
			return nil, err
		}
		s.Pixels = img
		return s, nil
	}

	if e.Width <= 0 || e.Height <= 0 {
		return nil, fmt.Errorf("image %q needs a file or a positive size", name)
	}
	switch e.Shape {
	case "", "disc":
		s.Pixels = newDisc(e.Width, e.Height, col)
	case "block":
		s.Pixels = newBlock(e.Width, e.Height, col)
	default:
		return nil, fmt.Errorf("image %q: unknown shape %q", name, e.Shape)
	}
	return s, nil
}

// DirLoader loads <Dir>/<name>.png.
type DirLoader struct {
	Dir string
}

// Load implements Loader.
func (d DirLoader) Load(name string) (*Sprite, error) {
	img, err := decodePNG(filepath.Join(d.Dir, name+".png"))
	if err != nil {
		return nil, err
	}
	return &Sprite{
		Name:   name,
		Pixels: img,
		Glyph:  glyphFor(name, ""),
		Color:  color.RGBA{R: 255, G: 255, B: 255, A: 255},
	}, nil
}

func decodePNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// ParseColor parses "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("color %q: want #rrggbb or #rrggbbaa", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

func glyphFor(name, glyph string) rune {
	if glyph != "" {
		r, _ := utf8.DecodeRuneInString(glyph)
		return r
	}
	if name == "" {
		return '?'
	}
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.ToUpper(r)
}
