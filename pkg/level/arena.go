package level

import (
	"math/rand/v2"

	"github.com/opd-ai/go-vampires/pkg/entity"
)

// SpawnMarker names the hostile spawn points Arena places.
const SpawnMarker = "Enemy"

// Arena builds a walled rectangular level of cols by rows tiles with scattered
// pillars, for frontends that have no map file. The player starts in the
// middle; hostiles spawn just inside the corners and edge midpoints. cols and
// rows are raised to at least 8.
func Arena(cols, rows int, tileSize float64, rng *rand.Rand) *Level {
	cols, rows = max(cols, 8), max(rows, 8)
	w, h := float64(cols)*tileSize, float64(rows)*tileSize

	l := &Level{TileSize: tileSize}
	tile := entity.BoxFrame(tileSize, tileSize)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			l.Ground = append(l.Ground, Tile{Col: c, Row: r, Frame: tile})
		}
	}

	// outer wall as four non-overlapping strips
	l.Objects = append(l.Objects,
		Object{X: 0, Y: 0, Frame: entity.BoxFrame(w, tileSize)},
		Object{X: 0, Y: h - tileSize, Frame: entity.BoxFrame(w, tileSize)},
		Object{X: 0, Y: tileSize, Frame: entity.BoxFrame(tileSize, h-2*tileSize)},
		Object{X: w - tileSize, Y: tileSize, Frame: entity.BoxFrame(tileSize, h-2*tileSize)},
	)

	midC, midR := cols/2, rows/2
	for r := 3; r < rows-3; r += 4 {
		for c := 3; c < cols-3; c += 4 {
			if abs(c-midC) <= 2 && abs(r-midR) <= 2 {
				continue
			}
			if rng.IntN(2) == 0 {
				continue
			}
			l.Objects = append(l.Objects, Object{X: float64(c) * tileSize, Y: float64(r) * tileSize, Frame: tile})
		}
	}

	l.Entities = append(l.Entities, Marker{Name: PlayerMarker, X: w / 2, Y: h / 2})
	inset := tileSize * 1.5
	for _, p := range [][2]float64{
		{inset, inset}, {w / 2, inset}, {w - inset, inset},
		{inset, h / 2}, {w - inset, h / 2},
		{inset, h - inset}, {w / 2, h - inset}, {w - inset, h - inset},
	} {
		l.Entities = append(l.Entities, Marker{Name: SpawnMarker, X: p[0], Y: p[1]})
	}
	return l
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
