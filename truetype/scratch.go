package truetype

import "unsafe"

// DefaultScratchSize is the working-memory budget for one glyph build.
const DefaultScratchSize = 96000

// Scratch is a reusable arena for the temporary buffers of one glyph
// build: the outline, the flattened points, the edge list and the active
// edge pool. Its accounting is reset at the start of every build, so
// nothing carries over between glyphs except the allocated capacity.
//
// A Scratch is not safe for concurrent use. A nil *Scratch is valid and
// allocates without a budget.
type Scratch struct {
	limit int
	used  int

	verts    []Vertex
	points   []point
	contours []int
	edges    []edge
	active   []activeEdge
	scan     []float32
}

// NewScratch creates an arena that fails builds needing more than limit
// bytes. A limit of 0 means unlimited.
func NewScratch(limit int) *Scratch {
	return &Scratch{limit: limit}
}

// Reset forgets everything allocated for the previous glyph.
func (s *Scratch) Reset() {
	s.used = 0
	s.verts = s.verts[:0]
	s.points = s.points[:0]
	s.contours = s.contours[:0]
	s.edges = s.edges[:0]
	s.active = s.active[:0]
}

// Used returns the bytes charged since the last Reset.
func (s *Scratch) Used() int { return s.used }

// Limit returns the byte budget, 0 for unlimited.
func (s *Scratch) Limit() int { return s.limit }

func (s *Scratch) charge(n int, size uintptr) error {
	s.used += n * int(size)
	if s.limit > 0 && s.used > s.limit {
		return ErrScratchFull
	}
	return nil
}

func (s *Scratch) chargeVerts(n int) error {
	return s.charge(n, unsafe.Sizeof(Vertex{}))
}

func (s *Scratch) allocEdges(n int) ([]edge, error) {
	if err := s.charge(n, unsafe.Sizeof(edge{})); err != nil {
		return nil, err
	}
	if cap(s.edges) < n {
		s.edges = make([]edge, n)
	}
	s.edges = s.edges[:n]
	return s.edges, nil
}

func (s *Scratch) allocScanline(n int) ([]float32, error) {
	if err := s.charge(n, unsafe.Sizeof(float32(0))); err != nil {
		return nil, err
	}
	if cap(s.scan) < n {
		s.scan = make([]float32, n)
	}
	s.scan = s.scan[:n]
	return s.scan, nil
}
