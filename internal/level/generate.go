package level

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/tilenav/internal/telemetry"
)

const (
	// Default generated level dimensions
	DefaultWidth  = 60
	DefaultHeight = 22

	// BSP parameters
	minRoomSize = 4  // Minimum room dimension
	maxRoomSize = 12 // Maximum room dimension
	minLeafSize = 7  // Minimum BSP leaf size before stopping split
)

// Room is a rectangular carved area of a generated level, in tile indices.
type Room struct {
	X, Y          int // Top-left tile
	Width, Height int
}

// Center returns the center tile of the room.
func (r Room) Center() (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Contains returns true if the given tile is inside the room.
func (r Room) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Generator carves rooms and corridors into a solid tile layout using BSP.
type Generator struct {
	Width  int
	Height int
	Rooms  []Room
	tiles  [][]byte
	rng    *rand.Rand
}

// NewGenerator creates a generator whose layout starts as solid wall.
func NewGenerator(width, height int, rng *rand.Rand) *Generator {
	tiles := make([][]byte, height)
	for y := range tiles {
		tiles[y] = make([]byte, width)
		for x := range tiles[y] {
			tiles[y][x] = WallRune
		}
	}
	return &Generator{
		Width:  width,
		Height: height,
		tiles:  tiles,
		rng:    rng,
	}
}

// Generate builds a level definition with its origin at (0,0).
// The same seed always yields the same layout.
func Generate(ctx context.Context, width, height int, seed int64) *Def {
	gen := NewGenerator(width, height, rand.New(rand.NewSource(seed)))
	gen.Carve(ctx)
	return gen.Def(fmt.Sprintf("generated-%d", seed))
}

// Carve splits the layout, carves a room per leaf and joins sibling rooms.
func (g *Generator) Carve(ctx context.Context) {
	tracer := telemetry.Tracer("level")
	_, span := tracer.Start(ctx, "level.generate")
	defer span.End()

	startTime := time.Now()

	root := &bspNode{
		x:      1,
		y:      1,
		width:  g.Width - 2,
		height: g.Height - 2,
	}
	g.splitNode(root)
	g.createRooms(root)
	g.connectRooms(root)

	span.SetAttributes(
		attribute.Int("level.width", g.Width),
		attribute.Int("level.height", g.Height),
		attribute.Int("level.room_count", len(g.Rooms)),
		attribute.Int64("level.generation_ms", time.Since(startTime).Milliseconds()),
	)
}

// IsFloor returns true if the tile at (x, y) was carved.
func (g *Generator) IsFloor(x, y int) bool {
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return false
	}
	return g.tiles[y][x] != WallRune
}

// Def converts the carved layout into a level definition.
func (g *Generator) Def(id string) *Def {
	rows := make([]string, g.Height)
	for y := range g.tiles {
		rows[y] = string(g.tiles[y])
	}

	def := &Def{
		ID:   id,
		Name: "Generated " + id,
		End:  [2]float64{float64(g.Width - 1), float64(g.Height - 1)},
		Rows: rows,
	}
	if len(g.Rooms) > 0 {
		x, y := g.Rooms[0].Center()
		def.Spawn = [2]float64{float64(x) + 0.5, float64(y) + 0.5}
	}
	return def
}

type bspNode struct {
	x, y          int
	width, height int
	left, right   *bspNode
	room          *Room
}

func (n *bspNode) isLeaf() bool {
	return n.left == nil && n.right == nil
}

func (g *Generator) splitNode(node *bspNode) {
	if node.width < minLeafSize*2 && node.height < minLeafSize*2 {
		return
	}

	var splitHorizontally bool
	switch {
	case node.width > node.height && node.width >= minLeafSize*2:
		splitHorizontally = false
	case node.height >= minLeafSize*2:
		splitHorizontally = true
	case node.width >= minLeafSize*2:
		splitHorizontally = false
	default:
		return
	}

	span := node.width
	if splitHorizontally {
		span = node.height
	}
	lo, hi := minLeafSize, span-minLeafSize
	if hi <= lo {
		return
	}
	splitPos := lo + g.rng.Intn(hi-lo+1)

	if splitHorizontally {
		node.left = &bspNode{x: node.x, y: node.y, width: node.width, height: splitPos}
		node.right = &bspNode{x: node.x, y: node.y + splitPos, width: node.width, height: node.height - splitPos}
	} else {
		node.left = &bspNode{x: node.x, y: node.y, width: splitPos, height: node.height}
		node.right = &bspNode{x: node.x + splitPos, y: node.y, width: node.width - splitPos, height: node.height}
	}

	g.splitNode(node.left)
	g.splitNode(node.right)
}

func (g *Generator) createRooms(node *bspNode) {
	if node == nil {
		return
	}
	if !node.isLeaf() {
		g.createRooms(node.left)
		g.createRooms(node.right)
		return
	}

	roomWidth := min(maxRoomSize, node.width-2)
	roomHeight := min(maxRoomSize, node.height-2)
	if roomWidth < minRoomSize || roomHeight < minRoomSize {
		return
	}
	roomWidth = minRoomSize + g.rng.Intn(roomWidth-minRoomSize+1)
	roomHeight = minRoomSize + g.rng.Intn(roomHeight-minRoomSize+1)

	room := Room{
		X:      node.x + 1 + g.rng.Intn(node.width-roomWidth-1),
		Y:      node.y + 1 + g.rng.Intn(node.height-roomHeight-1),
		Width:  roomWidth,
		Height: roomHeight,
	}
	node.room = &room
	g.Rooms = append(g.Rooms, room)

	for y := room.Y; y < room.Y+room.Height; y++ {
		for x := room.X; x < room.X+room.Width; x++ {
			g.carve(x, y)
		}
	}
}

func (g *Generator) connectRooms(node *bspNode) {
	if node == nil || node.isLeaf() {
		return
	}
	g.connectRooms(node.left)
	g.connectRooms(node.right)

	leftRoom := anyRoom(node.left)
	rightRoom := anyRoom(node.right)
	if leftRoom == nil || rightRoom == nil {
		return
	}

	x1, y1 := leftRoom.Center()
	x2, y2 := rightRoom.Center()
	if g.rng.Intn(2) == 0 {
		g.carveLine(x1, y1, x2, y1)
		g.carveLine(x2, y1, x2, y2)
	} else {
		g.carveLine(x1, y1, x1, y2)
		g.carveLine(x1, y2, x2, y2)
	}
}

// anyRoom returns a room from a subtree, preferring the left side.
func anyRoom(node *bspNode) *Room {
	if node == nil {
		return nil
	}
	if node.room != nil {
		return node.room
	}
	if room := anyRoom(node.left); room != nil {
		return room
	}
	return anyRoom(node.right)
}

// carveLine carves a horizontal or vertical corridor between two tiles.
func (g *Generator) carveLine(x1, y1, x2, y2 int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			g.carve(x, y)
		}
	}
}

// carve turns a tile into floor, leaving the outer border intact.
func (g *Generator) carve(x, y int) {
	if x > 0 && x < g.Width-1 && y > 0 && y < g.Height-1 {
		g.tiles[y][x] = '.'
	}
}
