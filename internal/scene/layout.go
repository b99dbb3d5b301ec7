package scene

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/sortbot/internal/geom"
)

//go:embed default.yaml
var defaultLayout []byte

// DefaultYAML returns the embedded default layout document.
func DefaultYAML() []byte {
	out := make([]byte, len(defaultLayout))
	copy(out, defaultLayout)
	return out
}

// Layout is the on-disk description of the play field.
type Layout struct {
	Version int        `yaml:"version"`
	Field   SizeSpec   `yaml:"field"`
	Origin  PointSpec  `yaml:"origin"`
	Item    SizeSpec   `yaml:"item"`
	Helper  HelperSpec `yaml:"helper"`
	Bins    []BinSpec  `yaml:"bins"`
}

// SizeSpec is a width/height pair.
type SizeSpec struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PointSpec is a cell position.
type PointSpec struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// RectSpec is a region in field cells.
type RectSpec struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// HelperSpec describes the helper region.
type HelperSpec struct {
	Name  string   `yaml:"name"`
	Label string   `yaml:"label,omitempty"`
	Rect  RectSpec `yaml:"rect"`
}

// BinSpec describes one disposal bin.
type BinSpec struct {
	ID   string   `yaml:"id"`
	Name string   `yaml:"name,omitempty"`
	Rect RectSpec `yaml:"rect"`
}

func (s SizeSpec) size() geom.Size    { return geom.Size{W: s.Width, H: s.Height} }
func (p PointSpec) point() geom.Point { return geom.Point{X: p.X, Y: p.Y} }
func (r RectSpec) rect() geom.Rect    { return geom.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H} }

// Parse decodes a YAML layout and checks it against the layout schema.
// Semantic checks happen in New.
func Parse(data []byte) (*Layout, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode layout: %w", err)
	}
	if doc == nil {
		return nil, &ValidationError{Problems: []string{"layout is empty"}}
	}
	if err := validateSchema(doc); err != nil {
		return nil, err
	}

	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("decode layout: %w", err)
	}
	return &l, nil
}

// LoadLayout reads and parses the layout at path.
func LoadLayout(path string) (*Layout, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	l, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// Load builds a validated scene from the layout at path, or from the
// embedded default layout when path is empty.
func Load(path string) (*Scene, error) {
	if path == "" {
		return Default()
	}
	l, err := LoadLayout(path)
	if err != nil {
		return nil, err
	}
	s, err := New(l)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Default builds the scene from the embedded default layout.
func Default() (*Scene, error) {
	l, err := Parse(defaultLayout)
	if err != nil {
		return nil, fmt.Errorf("default layout: %w", err)
	}
	return New(l)
}

// normalize converts a YAML-decoded value into the shape encoding/json
// produces, which is what the schema validator expects.
func normalize(doc any) (any, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ValidationError lists every problem found in a layout.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid layout: " + e.Problems[0]
	}
	msg := fmt.Sprintf("invalid layout (%d problems):", len(e.Problems))
	for _, p := range e.Problems {
		msg += "\n  - " + p
	}
	return msg
}

// IsValidationError reports whether err is or wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
