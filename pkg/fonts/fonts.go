// Package fonts provides the embedded font faces used for raster output.
//
// The Go font family ships inside golang.org/x/image, so rendering never
// depends on fonts installed on the host. Fonts are parsed once per
// process. A [Set] caches sized faces; the faces themselves keep glyph state
// and must not be drawn with from several goroutines, so each render uses
// its own Set.
package fonts

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontFamily is the family name of the embedded fonts.
const FontFamily = "Go"

// Weight selects a face in the family.
type Weight int

const (
	Regular Weight = iota
	Bold
)

// Regular and bold TTF data, parsed once on first use.
var (
	parsed    [2]*opentype.Font
	parseErr  error
	parseOnce sync.Once
)

func load() error {
	parseOnce.Do(func() {
		for w, data := range [][]byte{goregular.TTF, gobold.TTF} {
			f, err := opentype.Parse(data)
			if err != nil {
				parseErr = fmt.Errorf("parse embedded font: %w", err)
				return
			}
			parsed[w] = f
		}
	})
	return parseErr
}

type faceKey struct {
	size   float64
	weight Weight
}

// Set hands out sized faces and caches them by (size, weight).
type Set struct {
	mu    sync.Mutex
	faces map[faceKey]font.Face
}

// NewSet returns an empty face cache.
func NewSet() *Set {
	return &Set{faces: make(map[faceKey]font.Face)}
}

// Face returns the face of the given pixel size and weight.
func (s *Set) Face(size float64, w Weight) (font.Face, error) {
	if size <= 0 {
		return nil, fmt.Errorf("font size must be positive, got %g", size)
	}
	if err := load(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := faceKey{size, w}
	if f, ok := s.faces[key]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(parsed[w], &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create %g px face: %w", size, err)
	}
	s.faces[key] = f
	return f, nil
}

// Measure returns the advance width and line height of s at the given size.
func (s *Set) Measure(text string, size float64, w Weight) (float64, float64, error) {
	face, err := s.Face(size, w)
	if err != nil {
		return 0, 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	adv := font.MeasureString(face, text)
	m := face.Metrics()
	return float64(adv) / 64, float64(m.Ascent+m.Descent) / 64, nil
}

// Close releases all cached faces.
func (s *Set) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, f := range s.faces {
		f.Close()
		delete(s.faces, k)
	}
	return nil
}
