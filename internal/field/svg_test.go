package field

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSVG(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shape.svg")
	svg := `<svg xmlns="http://www.w3.org/2000/svg">` + body + `</svg>`
	require.NoError(t, os.WriteFile(path, []byte(svg), 0o644))
	return path
}

func TestLoadSilhouetteMissingFile(t *testing.T) {
	_, err := LoadSilhouette(filepath.Join(t.TempDir(), "nope.svg"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFormationUnavailable)
}

func TestLoadSilhouetteNotSVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shape.svg")
	require.NoError(t, os.WriteFile(path, []byte("<html></html>"), 0o644))
	_, err := LoadSilhouette(path)
	assert.ErrorIs(t, err, ErrFormationUnavailable)
}

func TestLoadSilhouettePolygon(t *testing.T) {
	path := writeSVG(t, `<polygon points="0,0 10,0 10,10 0,10"/>`)
	s, err := LoadSilhouette(path)
	require.NoError(t, err)
	require.Len(t, s.Rings, 1)
	assert.Equal(t, Box{0, 0, 10, 10}, s.Box)
	assert.True(t, s.Contains(5, 5))
	assert.False(t, s.Contains(15, 5))
	assert.False(t, s.Contains(-1, 5))
}

func TestLoadSilhouetteNestedGroups(t *testing.T) {
	path := writeSVG(t, `<g><g><rect x="0" y="0" width="4" height="4"/></g>
		<circle cx="20" cy="2" r="2"/></g>`)
	s, err := LoadSilhouette(path)
	require.NoError(t, err)
	require.Len(t, s.Rings, 2)
	assert.True(t, s.Contains(2, 2))
	assert.True(t, s.Contains(20, 2))
	assert.False(t, s.Contains(10, 2))
}

// Even-odd rule: a path with an inner ring punches a hole.
func TestLoadSilhouettePathWithHole(t *testing.T) {
	path := writeSVG(t, `<path d="M0 0 H10 V10 H0 Z M3 3 H7 V7 H3 Z"/>`)
	s, err := LoadSilhouette(path)
	require.NoError(t, err)
	require.Len(t, s.Rings, 2)
	assert.True(t, s.Contains(1, 1))
	assert.False(t, s.Contains(5, 5), "point in the hole must be outside")
}

func TestLoadSilhouetteRelativePath(t *testing.T) {
	path := writeSVG(t, `<path d="m1 1 l4 0 l0 4 z"/>`)
	s, err := LoadSilhouette(path)
	require.NoError(t, err)
	require.Len(t, s.Rings, 1)
	assert.True(t, s.Contains(4, 2))
	assert.False(t, s.Contains(1.5, 4.5))
}

// Curve commands are flattened to their endpoints.
func TestLoadSilhouetteCurveEndpoints(t *testing.T) {
	path := writeSVG(t, `<path d="M0 0 C 1 -5 9 -5 10 0 L10 10 L0 10 Z"/>`)
	s, err := LoadSilhouette(path)
	require.NoError(t, err)
	require.Len(t, s.Rings, 1)
	assert.Equal(t, []Point2{{0, 0}, {10, 0}, {10, 10}, {0, 10}}, s.Rings[0])
}

func TestLoadSilhouetteDropsDegenerateRings(t *testing.T) {
	// The zero-area line polygon is dropped, the rect survives.
	path := writeSVG(t, `<polygon points="0,0 5,0 10,0"/>
		<rect x="0" y="0" width="2" height="2"/>`)
	s, err := LoadSilhouette(path)
	require.NoError(t, err)
	assert.Len(t, s.Rings, 1)
}

func TestLoadSilhouetteNoGeometry(t *testing.T) {
	path := writeSVG(t, `<polygon points="0,0 5,0 10,0"/>`)
	_, err := LoadSilhouette(path)
	assert.ErrorIs(t, err, ErrFormationUnavailable)
}

func TestTokenizePathCompactNumbers(t *testing.T) {
	tests := []struct {
		d    string
		want []string
	}{
		{"M0-1L2-3", []string{"M", "0", "-1", "L", "2", "-3"}},
		{"M.5.5", []string{"M", ".5", ".5"}},
		{"L1e-3 2", []string{"L", "1e-3", "2"}},
		{"M1.5.5", []string{"M", "1.5", ".5"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tokenizePath(tt.d), "d=%q", tt.d)
	}
}

func TestSampleInsideAllContained(t *testing.T) {
	s := &Silhouette{
		Rings: [][]Point2{{{0, 0}, {10, 0}, {10, 10}, {0, 10}}},
		Box:   Box{0, 0, 10, 10},
	}
	r := NewRand(99)
	pts := s.SampleInside(500, r)
	require.Len(t, pts, 500)
	for _, p := range pts {
		require.True(t, s.Contains(p.X, p.Y))
	}
}

func TestSampleInsideGivesUpOnSliver(t *testing.T) {
	// Near-zero fill fraction: the attempt cap stops the loop.
	s := &Silhouette{
		Rings: [][]Point2{{{0, 0}, {1e-6, 0}, {1e-6, 1e6}, {0, 1e6}}},
		Box:   Box{0, 0, 1e6, 1e6},
	}
	pts := s.SampleInside(100, NewRand(1))
	assert.Less(t, len(pts), 100)
}
