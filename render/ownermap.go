package render

// NoOwner marks a pixel no item covers.
const NoOwner = -1

// OwnerMap records, per pixel, the topmost item covering it in a rendered
// frame. It is rebuilt for every frame and only ever summarized into masks,
// never persisted. Item identity is the arena index, stored densely rather
// than as per-pixel references.
type OwnerMap struct {
	width, height int
	idx           []int32
}

// NewOwnerMap returns an owner map with every pixel unowned.
func NewOwnerMap(width, height int) *OwnerMap {
	m := &OwnerMap{width: width, height: height, idx: make([]int32, width*height)}
	for i := range m.idx {
		m.idx[i] = NoOwner
	}
	return m
}

// Width returns the map width in pixels.
func (m *OwnerMap) Width() int { return m.width }

// Height returns the map height in pixels.
func (m *OwnerMap) Height() int { return m.height }

// Get returns the owning item ID at a pixel, or NoOwner.
func (m *OwnerMap) Get(x, y int) int {
	return int(m.idx[y*m.width+x])
}

// Set claims a pixel for an item. Later claims win, mirroring paint order.
func (m *OwnerMap) Set(x, y, id int) {
	m.idx[y*m.width+x] = int32(id)
}

// VisibleAreas counts the visible pixels of every owning item. Occluded
// pixels belong to the item painted last, so the counts reflect only what a
// viewer actually sees.
func (m *OwnerMap) VisibleAreas() map[int]int {
	areas := map[int]int{}
	for _, id := range m.idx {
		if id != NoOwner {
			areas[int(id)]++
		}
	}
	return areas
}
