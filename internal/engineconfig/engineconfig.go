package engineconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file, relative to the process working directory.
const DefaultPath = "config/cube.yaml"

// Palette holds the sticker colours as "#rrggbb" strings, one per face plus the hidden faces.
type Palette struct {
	Right string `yaml:"right"`
	Left  string `yaml:"left"`
	Up    string `yaml:"up"`
	Down  string `yaml:"down"`
	Front string `yaml:"front"`
	Back  string `yaml:"back"`
	Inner string `yaml:"inner"`
}

// Prefs holds the puzzle geometry, animation speed and display options. Persisted across runs.
type Prefs struct {
	CubieSize float32 `yaml:"cubie_size"`
	Gap       float32 `yaml:"gap"`
	// Epsilon is the slice membership tolerance in world units. Zero derives it from CubieSize.
	Epsilon  float32 `yaml:"epsilon,omitempty"`
	StepSize float32 `yaml:"step_size"`

	WindowTitle    string  `yaml:"window_title"`
	TargetFPS      int32   `yaml:"target_fps"`
	CameraDistance float32 `yaml:"camera_distance"`
	CameraFovy     float32 `yaml:"camera_fovy"`

	ShowFPS      bool `yaml:"show_fps"`
	ShowMemAlloc bool `yaml:"show_memalloc"`
	ShowState    bool `yaml:"show_state"`

	Background string  `yaml:"background"`
	Border     string  `yaml:"border"`
	Highlight  string  `yaml:"highlight"`
	Palette    Palette `yaml:"palette"`
}

// epsilonFactor matches a 0.1 tolerance to a size-5 cubie.
const epsilonFactor = 0.02

// Default returns the preferences of the classic layout: size-5 cubies, 0.25 gap, 0.1 rad per frame.
func Default() Prefs {
	return Prefs{
		CubieSize:      5,
		Gap:            0.25,
		StepSize:       0.1,
		WindowTitle:    "cube",
		TargetFPS:      60,
		CameraDistance: 18 * math32.Sqrt(3),
		CameraFovy:     75,
		ShowState:      true,
		Background:     "#bebcbe",
		Border:         "#000000",
		Highlight:      "#ff0000",
		Palette: Palette{
			Right: "#fcfcfc",
			Left:  "#ffff00",
			Up:    "#0000ff",
			Down:  "#ff8c00",
			Front: "#008000",
			Back:  "#ff0000",
			Inner: "#000000",
		},
	}
}

// Tolerance returns the membership epsilon, deriving it from the cubie size when unset.
func (p Prefs) Tolerance() float32 {
	if p.Epsilon > 0 {
		return p.Epsilon
	}
	return p.CubieSize * epsilonFactor
}

// Validate reports the first invalid field.
func (p Prefs) Validate() error {
	if p.CubieSize <= 0 {
		return fmt.Errorf("cubie_size must be positive, got %v", p.CubieSize)
	}
	if p.Gap < 0 {
		return fmt.Errorf("gap must not be negative, got %v", p.Gap)
	}
	if p.StepSize <= 0 {
		return fmt.Errorf("step_size must be positive, got %v", p.StepSize)
	}
	if p.Epsilon < 0 || p.Tolerance() >= (p.CubieSize+p.Gap)/2 {
		return fmt.Errorf("epsilon %v must be below half the cubie spacing", p.Tolerance())
	}
	if p.TargetFPS < 0 {
		return fmt.Errorf("target_fps must not be negative, got %d", p.TargetFPS)
	}
	colors := map[string]string{
		"background": p.Background, "border": p.Border, "highlight": p.Highlight,
		"palette.right": p.Palette.Right, "palette.left": p.Palette.Left,
		"palette.up": p.Palette.Up, "palette.down": p.Palette.Down,
		"palette.front": p.Palette.Front, "palette.back": p.Palette.Back,
		"palette.inner": p.Palette.Inner,
	}
	for name, v := range colors {
		if _, err := ParseHex(v); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// ErrBadColor is returned for colour strings that are not #rrggbb or #rrggbbaa.
var ErrBadColor = errors.New("colour must be #rrggbb or #rrggbbaa")

// ParseHex parses "#rrggbb" or "#rrggbbaa" into RGBA bytes. Alpha defaults to 255.
func ParseHex(s string) ([4]uint8, error) {
	var out [4]uint8
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 8 {
		return out, fmt.Errorf("%q: %w", s, ErrBadColor)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return out, fmt.Errorf("%q: %w", s, ErrBadColor)
	}
	if len(h) == 6 {
		v = v<<8 | 0xff
	}
	out[0] = uint8(v >> 24)
	out[1] = uint8(v >> 16)
	out[2] = uint8(v >> 8)
	out[3] = uint8(v)
	return out, nil
}

// Load reads preferences from path. A missing file yields Default() and no error; fields absent
// from the file keep their defaults. A malformed or invalid file yields Default() and the error.
func Load(path string) (Prefs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), err
	}
	p := Default()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Default(), fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if err := p.Validate(); err != nil {
		return Default(), fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return p, nil
}

// Save writes preferences to path, creating the directory if needed.
func Save(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
