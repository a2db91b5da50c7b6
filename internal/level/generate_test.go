package level

import (
	"context"
	"math/rand"
	"testing"

	"github.com/samdwyer/tilenav/internal/grid"
	"github.com/samdwyer/tilenav/internal/nav"
)

func TestGeneratorReproducibility(t *testing.T) {
	seed := int64(12345)

	g1 := NewGenerator(DefaultWidth, DefaultHeight, rand.New(rand.NewSource(seed)))
	g2 := NewGenerator(DefaultWidth, DefaultHeight, rand.New(rand.NewSource(seed)))

	ctx := context.Background()
	g1.Carve(ctx)
	g2.Carve(ctx)

	if len(g1.Rooms) != len(g2.Rooms) {
		t.Fatalf("Room count mismatch: %d != %d", len(g1.Rooms), len(g2.Rooms))
	}
	for i := range g1.Rooms {
		if g1.Rooms[i] != g2.Rooms[i] {
			t.Errorf("Room %d mismatch: %+v != %+v", i, g1.Rooms[i], g2.Rooms[i])
		}
	}

	d1, d2 := g1.Def("a"), g2.Def("b")
	for y := range d1.Rows {
		if d1.Rows[y] != d2.Rows[y] {
			t.Errorf("Row %d mismatch:\n%s\n%s", y, d1.Rows[y], d2.Rows[y])
		}
	}
}

func TestGeneratedLevelIsConnected(t *testing.T) {
	for _, seed := range []int64{1, 7, 42, 2024} {
		def := Generate(context.Background(), DefaultWidth, DefaultHeight, seed)
		if err := def.Validate(); err != nil {
			t.Fatalf("seed %d: Validate() = %v", seed, err)
		}

		g, _, err := def.BuildGrid(context.Background())
		if err != nil {
			t.Fatalf("seed %d: BuildGrid() = %v", seed, err)
		}

		gen := NewGenerator(DefaultWidth, DefaultHeight, rand.New(rand.NewSource(seed)))
		gen.Carve(context.Background())
		if len(gen.Rooms) < 2 {
			t.Fatalf("seed %d: expected several rooms, got %d", seed, len(gen.Rooms))
		}

		// Every room center must be reachable from the spawn room.
		reqs := make([]nav.Request, 0, len(gen.Rooms))
		for _, room := range gen.Rooms {
			x, y := room.Center()
			if !gen.IsFloor(x, y) {
				t.Errorf("seed %d: room center (%d,%d) is not floor", seed, x, y)
			}
			reqs = append(reqs, nav.Request{
				From: def.SpawnPos(),
				To:   grid.Vec2{X: float64(x) + 0.5, Y: float64(y) + 0.5},
			})
		}
		results, err := nav.FindPaths(context.Background(), g, reqs, nav.Orthogonal, 4)
		if err != nil {
			t.Fatalf("seed %d: FindPaths() = %v", seed, err)
		}
		for i, res := range results {
			if !res.Found {
				t.Errorf("seed %d: room %d unreachable from spawn", seed, i)
			}
		}
	}
}

func TestGeneratedBorderIsWall(t *testing.T) {
	def := Generate(context.Background(), 30, 16, 99)
	last := len(def.Rows) - 1
	for x := 0; x < 30; x++ {
		if def.Rows[0][x] != WallRune || def.Rows[last][x] != WallRune {
			t.Fatalf("border column %d is not wall", x)
		}
	}
	for y := range def.Rows {
		if def.Rows[y][0] != WallRune || def.Rows[y][29] != WallRune {
			t.Fatalf("border row %d is not wall", y)
		}
	}
}

func TestRoomMethods(t *testing.T) {
	r := Room{X: 2, Y: 3, Width: 4, Height: 5}
	if x, y := r.Center(); x != 4 || y != 5 {
		t.Errorf("Center() = (%d,%d), want (4,5)", x, y)
	}
	if !r.Contains(2, 3) || !r.Contains(5, 7) {
		t.Error("Contains should include the room's corners")
	}
	if r.Contains(6, 3) || r.Contains(2, 8) {
		t.Error("Contains should exclude tiles past the edge")
	}
}
