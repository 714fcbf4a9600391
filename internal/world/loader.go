package world

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tomz197/raycaster/internal/geom"
)

//go:embed default.yaml
var defaultMapYAML []byte

// YAMLMap represents the YAML structure for a map file.
type YAMLMap struct {
	Name   string     `yaml:"name"`
	Rows   []string   `yaml:"rows"`
	Player YAMLPose   `yaml:"player"`
	Walls  []YAMLWall `yaml:"walls"`
}

// YAMLPoint is a map coordinate.
type YAMLPoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// YAMLPose is the starting position and heading.
type YAMLPose struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Angle float64 `yaml:"angle,omitempty"`
}

// YAMLWall is a wall segment tested by the raycaster.
type YAMLWall struct {
	Name string    `yaml:"name,omitempty"`
	A    YAMLPoint `yaml:"a"`
	B    YAMLPoint `yaml:"b"`
}

// ParseYAML parses a map file.
func ParseYAML(data []byte) (*Map, error) {
	var ym YAMLMap
	if err := yaml.Unmarshal(data, &ym); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}

	walls := make([]geom.Line, 0, len(ym.Walls))
	for _, w := range ym.Walls {
		walls = append(walls, geom.Line{
			A: geom.Point{X: w.A.X, Y: w.A.Y},
			B: geom.Point{X: w.B.X, Y: w.B.Y},
		})
	}

	start := geom.Direction{
		Point: geom.Point{X: ym.Player.X, Y: ym.Player.Y},
		Angle: ym.Player.Angle,
	}

	return New(ym.Name, ym.Rows, walls, start)
}

// Default returns the built-in map.
func Default() *Map {
	m, err := ParseYAML(defaultMapYAML)
	if err != nil {
		panic(fmt.Sprintf("built-in map: %v", err))
	}
	return m
}

// Load reads a map file, or returns the built-in map when path is empty.
func Load(path string) (*Map, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read map %s: %w", path, err)
	}
	m, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse map %s: %w", path, err)
	}
	return m, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
