// Package shapes holds the static needle layouts of the display: the ten
// digits and the decorative shapes animation cycles pass through.
package shapes

import (
	_ "embed"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"clockclock24/engine"
)

//go:embed catalog.yaml
var defaultCatalog []byte

var familyNames = map[string]engine.Family{
	engine.FamilyLinear.String():      engine.FamilyLinear,
	engine.FamilySymmetrical.String(): engine.FamilySymmetrical,
}

// Shape is a named decorative layout.
type Shape struct {
	Name   string
	Layout engine.Layout
}

// Catalog is a validated set of digits and shape families. It is read-only
// once loaded and safe for concurrent use.
type Catalog struct {
	digits   [10]engine.Digit
	families map[engine.Family][]Shape
}

// face is a clock as written in the catalog: a face name or an
// [hours, minutes] pair.
type face struct {
	name   string
	angles []float64
	line   int
}

func (f *face) UnmarshalYAML(n *yaml.Node) error {
	f.line = n.Line
	switch n.Kind {
	case yaml.ScalarNode:
		f.name = n.Value
		return nil
	case yaml.SequenceNode:
		return n.Decode(&f.angles)
	default:
		return errors.Errorf("line %d: a clock is a face name or an [hours, minutes] pair", n.Line)
	}
}

type grid [][]face

type shapeFile struct {
	Name   string `yaml:"name"`
	Digits []grid `yaml:"digits"`
}

type catalogFile struct {
	Faces    map[string][]float64   `yaml:"faces"`
	Digits   map[string]grid        `yaml:"digits"`
	Families map[string][]shapeFile `yaml:"families"`
}

// Load parses and validates a YAML catalog.
func Load(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, "unable to parse shape catalog")
	}

	faces := make(map[string]engine.ClockState, len(file.Faces))
	for name, angles := range file.Faces {
		if len(angles) != 2 {
			return nil, errors.Errorf("face %q needs [hours, minutes], got %v", name, angles)
		}
		faces[name] = engine.ClockState{Hours: angles[0], Minutes: angles[1]}
	}

	c := &Catalog{families: make(map[engine.Family][]Shape)}
	for n := range c.digits {
		g, ok := file.Digits[strconv.Itoa(n)]
		if !ok {
			return nil, errors.Errorf("digit %d is missing", n)
		}
		d, err := g.resolve(faces)
		if err != nil {
			return nil, errors.Wrapf(err, "digit %d", n)
		}
		c.digits[n] = d
	}
	if extra := lo.Without(lo.Keys(file.Digits), "0", "1", "2", "3", "4", "5", "6", "7", "8", "9"); len(extra) > 0 {
		return nil, errors.Errorf("unknown digits %v", extra)
	}

	for name, shapes := range file.Families {
		family, ok := familyNames[name]
		if !ok {
			return nil, errors.Errorf("unknown shape family %q", name)
		}
		for _, s := range shapes {
			l, err := s.resolve(faces)
			if err != nil {
				return nil, errors.Wrapf(err, "%s shape %q", name, s.Name)
			}
			c.families[family] = append(c.families[family], Shape{Name: s.Name, Layout: l})
		}
	}
	for _, family := range familyNames {
		if len(c.families[family]) == 0 {
			return nil, errors.Errorf("shape family %q is empty", family)
		}
	}
	return c, nil
}

func (f face) resolve(faces map[string]engine.ClockState) (engine.ClockState, error) {
	if f.name != "" {
		c, ok := faces[f.name]
		if !ok {
			return engine.ClockState{}, errors.Errorf("line %d: unknown face %q", f.line, f.name)
		}
		return c, nil
	}
	if len(f.angles) != 2 {
		return engine.ClockState{}, errors.Errorf("line %d: a clock needs [hours, minutes], got %v", f.line, f.angles)
	}
	return engine.ClockState{Hours: f.angles[0], Minutes: f.angles[1]}, nil
}

func (g grid) resolve(faces map[string]engine.ClockState) (engine.Digit, error) {
	var d engine.Digit
	if len(g) != engine.NumRows {
		return d, errors.Errorf("a digit has %d rows, got %d", engine.NumRows, len(g))
	}
	for r, row := range g {
		if len(row) != engine.NumColumns {
			return d, errors.Errorf("row %d has %d clocks, want %d", r, len(row), engine.NumColumns)
		}
		for col, f := range row {
			c, err := f.resolve(faces)
			if err != nil {
				return d, err
			}
			d[r][col] = c
		}
	}
	return d, nil
}

func (s shapeFile) resolve(faces map[string]engine.ClockState) (engine.Layout, error) {
	var l engine.Layout
	if len(s.Digits) != engine.NumDigits {
		return l, errors.Errorf("a shape has %d digits, got %d", engine.NumDigits, len(s.Digits))
	}
	for i, g := range s.Digits {
		d, err := g.resolve(faces)
		if err != nil {
			return l, errors.Wrapf(err, "digit position %d", i)
		}
		l[i] = d
	}
	return l, nil
}

// LoadFile reads a YAML catalog from disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read shape catalog %v", path)
	}
	return Load(data)
}

// Default returns the catalog built into the binary.
func Default() (*Catalog, error) {
	return Load(defaultCatalog)
}

// MustDefault is Default for callers that cannot recover from a broken
// built-in catalog.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

// Open returns the catalog at path, or the built-in one when path is empty.
func Open(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}

// Digit returns the needle grid of n.
func (c *Catalog) Digit(n int) (engine.Digit, error) {
	if n < 0 || n > 9 {
		return engine.Digit{}, errors.Errorf("%d is not a digit", n)
	}
	return c.digits[n], nil
}

// ClockLayout returns the layout showing hour:minute as HHMM.
func (c *Catalog) ClockLayout(hour, minute int) (engine.Layout, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return engine.Layout{}, errors.Errorf("invalid time %02d:%02d", hour, minute)
	}
	return engine.Layout{
		c.digits[hour/10],
		c.digits[hour%10],
		c.digits[minute/10],
		c.digits[minute%10],
	}, nil
}

// TimeLayout returns the layout showing the wall-clock time of t.
func (c *Catalog) TimeLayout(t time.Time) engine.Layout {
	l, _ := c.ClockLayout(t.Hour(), t.Minute())
	return l
}

// Shapes returns the layouts of a family. It implements engine.ShapeSource.
func (c *Catalog) Shapes(f engine.Family) []engine.Layout {
	return lo.Map(c.families[f], func(s Shape, _ int) engine.Layout {
		return s.Layout
	})
}

// Named returns the shapes of a family with their names.
func (c *Catalog) Named(f engine.Family) []Shape {
	return append([]Shape(nil), c.families[f]...)
}

// ParseClock parses "HH:MM" in 24 hour time.
func ParseClock(s string) (hour, minute int, err error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, 0, errors.Errorf("time %q is not HH:MM", s)
	}
	if hour, err = strconv.Atoi(hh); err != nil {
		return 0, 0, errors.Wrapf(err, "time %q", s)
	}
	if minute, err = strconv.Atoi(mm); err != nil {
		return 0, 0, errors.Wrapf(err, "time %q", s)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, errors.Errorf("time %q is out of range", s)
	}
	return hour, minute, nil
}
