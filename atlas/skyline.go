package atlas

// Node is one span of the skyline: the region [X, X+Width) is occupied
// up to row Y.
type Node struct {
	X, Y, Width int
}

// Atlas is a skyline packer over a Width×Height area.
type Atlas struct {
	width  int
	height int
	nodes  []Node
}

// New creates a packer with a single empty span covering the full width.
func New(width, height int) (*Atlas, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}
	a := &Atlas{nodes: make([]Node, 0, 256)}
	a.Reset(width, height)
	return a, nil
}

// Width returns the packing width.
func (a *Atlas) Width() int { return a.width }

// Height returns the packing height.
func (a *Atlas) Height() int { return a.height }

// Nodes returns the current skyline, ordered by X. The slice is owned by
// the atlas and is only valid until the next mutating call.
func (a *Atlas) Nodes() []Node { return a.nodes }

// Reset drops every placement and resizes the packing area.
func (a *Atlas) Reset(width, height int) {
	a.width = width
	a.height = height
	a.nodes = append(a.nodes[:0], Node{X: 0, Y: 0, Width: width})
}

// Expand grows the packing area while keeping existing placements.
// Shrinking is not supported; smaller dimensions are ignored.
func (a *Atlas) Expand(width, height int) {
	if width > a.width {
		a.nodes = append(a.nodes, Node{X: a.width, Y: 0, Width: width - a.width})
		a.width = width
	}
	if height > a.height {
		a.height = height
	}
}

// AddRect finds a place for a w×h rectangle and reserves it. It returns
// the top-left corner, or ok=false when the atlas has no room.
func (a *Atlas) AddRect(w, h int) (x, y int, ok bool) {
	if w <= 0 || h <= 0 {
		return 0, 0, false
	}

	bestH, bestW, bestI := a.height, a.width, -1
	bestX, bestY := -1, -1

	// Lowest resulting top edge wins, then the narrowest span.
	for i := range a.nodes {
		y := a.rectFits(i, w, h)
		if y == -1 {
			continue
		}
		if bestI == -1 || y+h < bestH || (y+h == bestH && a.nodes[i].Width < bestW) {
			bestI = i
			bestW = a.nodes[i].Width
			bestH = y + h
			bestX = a.nodes[i].X
			bestY = y
		}
	}
	if bestI == -1 {
		return -1, -1, false
	}

	a.addSkylineLevel(bestI, bestX, bestY, w, h)
	return bestX, bestY, true
}

// rectFits returns the y at which a w×h rectangle rests when its left
// edge is at span i, or -1 if it would leave the atlas.
func (a *Atlas) rectFits(i, w, h int) int {
	x := a.nodes[i].X
	if x+w > a.width {
		return -1
	}
	y := a.nodes[i].Y
	spaceLeft := w
	for spaceLeft > 0 {
		if i == len(a.nodes) {
			return -1
		}
		y = max(y, a.nodes[i].Y)
		if y+h > a.height {
			return -1
		}
		spaceLeft -= a.nodes[i].Width
		i++
	}
	return y
}

func (a *Atlas) addSkylineLevel(idx, x, y, w, h int) {
	a.insertNode(idx, Node{X: x, Y: y + h, Width: w})

	// Trim the spans now covered by the new level.
	for i := idx + 1; i < len(a.nodes); i++ {
		prev := a.nodes[i-1]
		end := prev.X + prev.Width
		if a.nodes[i].X >= end {
			break
		}
		shrink := end - a.nodes[i].X
		a.nodes[i].X += shrink
		a.nodes[i].Width -= shrink
		if a.nodes[i].Width > 0 {
			break
		}
		a.removeNode(i)
		i--
	}

	// Merge neighbours at the same height.
	for i := 0; i < len(a.nodes)-1; i++ {
		if a.nodes[i].Y == a.nodes[i+1].Y {
			a.nodes[i].Width += a.nodes[i+1].Width
			a.removeNode(i + 1)
			i--
		}
	}
}

func (a *Atlas) insertNode(idx int, n Node) {
	a.nodes = append(a.nodes, Node{})
	copy(a.nodes[idx+1:], a.nodes[idx:])
	a.nodes[idx] = n
}

func (a *Atlas) removeNode(idx int) {
	a.nodes = append(a.nodes[:idx], a.nodes[idx+1:]...)
}
