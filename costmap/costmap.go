// Package costmap provides the read-only occupancy grid the obstacle critics
// query, plus an in-memory implementation for tests and simulation.
package costmap

// Cell cost values. Costs grow with proximity to obstacles; LethalObstacle
// marks a definitely occupied cell.
const (
	FreeSpace                 uint8 = 0
	InscribedInflatedObstacle uint8 = 253
	LethalObstacle            uint8 = 254
	NoInformation             uint8 = 255
)

// Costmap is the narrow read interface the critics need. The host guarantees
// no concurrent writer during a tick.
type Costmap interface {
	// AtWorld returns the cell cost at world coordinates, and false when the
	// point lies outside the grid.
	AtWorld(wx, wy float64) (uint8, bool)
	// FrameID returns the frame commands should be stamped with.
	FrameID() string
}

// Costmap2D is a dense planar grid costmap.
type Costmap2D struct {
	cells      []uint8
	sizeX      int
	sizeY      int
	resolution float64
	originX    float64
	originY    float64
	frameID    string
}

// NewCostmap2D allocates a grid of sizeX by sizeY cells filled with
// defaultCost. origin is the world position of cell (0, 0).
func NewCostmap2D(sizeX, sizeY int, resolution, originX, originY float64, frameID string, defaultCost uint8) *Costmap2D {
	cells := make([]uint8, sizeX*sizeY)
	if defaultCost != 0 {
		for i := range cells {
			cells[i] = defaultCost
		}
	}
	return &Costmap2D{
		cells:      cells,
		sizeX:      sizeX,
		sizeY:      sizeY,
		resolution: resolution,
		originX:    originX,
		originY:    originY,
		frameID:    frameID,
	}
}

// FrameID returns the costmap's base frame id.
func (c *Costmap2D) FrameID() string { return c.frameID }

// Resolution returns the cell edge length in meters.
func (c *Costmap2D) Resolution() float64 { return c.resolution }

// WorldToMap converts world coordinates to cell indices, reporting false when
// the point falls outside the grid.
func (c *Costmap2D) WorldToMap(wx, wy float64) (int, int, bool) {
	if wx < c.originX || wy < c.originY {
		return 0, 0, false
	}
	mx := int((wx - c.originX) / c.resolution)
	my := int((wy - c.originY) / c.resolution)
	if mx >= c.sizeX || my >= c.sizeY {
		return 0, 0, false
	}
	return mx, my, true
}

// MapToWorld returns the world coordinates of the center of cell (mx, my).
func (c *Costmap2D) MapToWorld(mx, my int) (float64, float64) {
	wx := c.originX + (float64(mx)+0.5)*c.resolution
	wy := c.originY + (float64(my)+0.5)*c.resolution
	return wx, wy
}

// At returns the cost of cell (mx, my).
func (c *Costmap2D) At(mx, my int) uint8 {
	return c.cells[my*c.sizeX+mx]
}

// SetCost writes the cost of cell (mx, my).
func (c *Costmap2D) SetCost(mx, my int, cost uint8) {
	c.cells[my*c.sizeX+mx] = cost
}

// AtWorld returns the cell cost at world coordinates.
func (c *Costmap2D) AtWorld(wx, wy float64) (uint8, bool) {
	mx, my, ok := c.WorldToMap(wx, wy)
	if !ok {
		return NoInformation, false
	}
	return c.At(mx, my), true
}

// SetRectWorld fills the world-frame axis-aligned rectangle with the given
// cost, clipped to the grid. Useful for staging obstacles in tests.
func (c *Costmap2D) SetRectWorld(minX, minY, maxX, maxY float64, cost uint8) {
	for my := 0; my < c.sizeY; my++ {
		for mx := 0; mx < c.sizeX; mx++ {
			wx, wy := c.MapToWorld(mx, my)
			if wx >= minX && wx <= maxX && wy >= minY && wy <= maxY {
				c.SetCost(mx, my, cost)
			}
		}
	}
}
