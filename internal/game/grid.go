// Package game implements the 2048 puzzle: the slide/merge engine, the
// terminal-state checks, the game session and its terminal rendering.
package game

import (
	"errors"
	"fmt"
	"strings"
)

// Size is the board dimension.
const Size = 4

// CellCount is the number of cells on the board.
const CellCount = Size * Size

var (
	// ErrInvalidTile is returned when a cell is neither empty nor a power of two >= 2.
	ErrInvalidTile = errors.New("game: invalid tile value")

	// ErrUnknownDirection is returned when a direction name cannot be parsed.
	ErrUnknownDirection = errors.New("game: unknown direction")
)

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists every valid direction.
var Directions = [...]Direction{DirUp, DirDown, DirLeft, DirRight}

// String returns the lower-case direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

// ParseDirection parses "up", "down", "left" or "right" (case-insensitive).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return DirUp, nil
	case "down":
		return DirDown, nil
	case "left":
		return DirLeft, nil
	case "right":
		return DirRight, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

// Point is a cell coordinate on the board.
type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Grid is the 4x4 board. Zero means an empty cell.
type Grid [Size][Size]int

// NewGrid builds a grid from row-major cells, validating every value.
func NewGrid(cells [CellCount]int) (Grid, error) {
	var g Grid
	for i, v := range cells {
		if !IsTileValue(v) {
			return Grid{}, fmt.Errorf("%w: %d at cell %d", ErrInvalidTile, v, i)
		}
		g[i/Size][i%Size] = v
	}
	return g, nil
}

// IsTileValue reports whether v may appear on the board.
func IsTileValue(v int) bool {
	return v == 0 || (v >= 2 && v&(v-1) == 0)
}

// Cells returns the grid flattened in row-major order.
func (g Grid) Cells() [CellCount]int {
	var cells [CellCount]int
	for r := range Size {
		for c := range Size {
			cells[r*Size+c] = g[r][c]
		}
	}
	return cells
}

// lineCell maps position j of line i to a board coordinate so that
// position 0 is the edge tiles slide toward.
func lineCell(dir Direction, i, j int) (row, col int) {
	switch dir {
	case DirLeft:
		return i, j
	case DirRight:
		return i, Size - 1 - j
	case DirUp:
		return j, i
	default: // DirDown
		return Size - 1 - j, i
	}
}

// SlideLine compacts a line toward index 0, merging equal neighbours.
// A tile produced by a merge does not merge again in the same pass.
func SlideLine(line [Size]int) (result [Size]int, gained int, merged bool) {
	var tiles [Size]int
	n := 0
	for _, v := range line {
		if v != 0 {
			tiles[n] = v
			n++
		}
	}

	w := 0
	for i := 0; i < n; i++ {
		if i+1 < n && tiles[i] == tiles[i+1] {
			result[w] = tiles[i] * 2
			gained += result[w]
			merged = true
			i++ // skip the absorbed tile
		} else {
			result[w] = tiles[i]
		}
		w++
	}

	return result, gained, merged
}

// MoveResult describes the effect of sliding a grid in one direction.
type MoveResult struct {
	Grid    Grid
	Gained  int  // Score from merges
	Changed bool // Whether any tile moved or merged
	Merged  bool // Whether at least one merge happened
}

// Move slides every line of the grid toward dir.
// An invalid direction leaves the grid unchanged.
func (g Grid) Move(dir Direction) MoveResult {
	res := MoveResult{Grid: g}
	if !dir.Valid() {
		return res
	}

	for i := range Size {
		var line [Size]int
		for j := range Size {
			r, c := lineCell(dir, i, j)
			line[j] = g[r][c]
		}

		slid, gained, merged := SlideLine(line)
		res.Gained += gained
		res.Merged = res.Merged || merged

		for j := range Size {
			r, c := lineCell(dir, i, j)
			res.Grid[r][c] = slid[j]
		}
	}

	res.Changed = res.Grid != g
	return res
}

// EmptyCells returns coordinates of all empty cells in row-major order.
func (g Grid) EmptyCells() []Point {
	var cells []Point
	for r := range Size {
		for c := range Size {
			if g[r][c] == 0 {
				cells = append(cells, Point{Row: r, Col: c})
			}
		}
	}
	return cells
}

// HasEmptyCell returns true if there's at least one empty cell.
func (g Grid) HasEmptyCell() bool {
	for r := range Size {
		for c := range Size {
			if g[r][c] == 0 {
				return true
			}
		}
	}
	return false
}

// HasAdjacentPair returns true if two equal non-empty tiles touch
// horizontally or vertically.
func (g Grid) HasAdjacentPair() bool {
	for r := range Size {
		for c := range Size {
			v := g[r][c]
			if v == 0 {
				continue
			}
			if c < Size-1 && g[r][c+1] == v {
				return true
			}
			if r < Size-1 && g[r+1][c] == v {
				return true
			}
		}
	}
	return false
}

// MaxTile returns the highest tile value on the board.
func (g Grid) MaxTile() int {
	maxVal := 0
	for r := range Size {
		for c := range Size {
			maxVal = max(maxVal, g[r][c])
		}
	}
	return maxVal
}

// Contains reports whether any cell holds exactly v.
func (g Grid) Contains(v int) bool {
	for r := range Size {
		for c := range Size {
			if g[r][c] == v {
				return true
			}
		}
	}
	return false
}

// String renders the grid as four space-separated rows, "." for empty.
func (g Grid) String() string {
	var sb strings.Builder
	for r := range Size {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := range Size {
			if c > 0 {
				sb.WriteByte(' ')
			}
			if g[r][c] == 0 {
				fmt.Fprintf(&sb, "%5s", ".")
			} else {
				fmt.Fprintf(&sb, "%5d", g[r][c])
			}
		}
	}
	return sb.String()
}

// IsGameOver returns true when the grid is full and no two neighbours match.
func IsGameOver(g Grid) bool {
	return !g.HasEmptyCell() && !g.HasAdjacentPair()
}

// IsWin returns true when any cell equals target.
func IsWin(g Grid, target int) bool {
	return target > 0 && g.Contains(target)
}
