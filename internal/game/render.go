package game

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/tui-2048/internal/core"
)

const (
	cellWidth  = 7 // Width of each cell (including left border)
	cellHeight = 2 // Height of each cell (including top border)
	hudHeight  = 3

	boardW = Size*cellWidth + 1  // +1 for right border
	boardH = Size*cellHeight + 1 // +1 for bottom border
)

// tileColors maps tile values to their foreground colour.
var tileColors = map[int]core.Color{
	2:    core.ColorWhite,
	4:    core.ColorBrightWhite,
	8:    core.ColorYellow,
	16:   core.ColorOrange,
	32:   core.ColorRed,
	64:   core.ColorBrightRed,
	128:  core.ColorBrightYellow,
	256:  core.ColorGreen,
	512:  core.ColorCyan,
	1024: core.ColorBlue,
	2048: core.ColorMagenta,
}

// TileColor returns the colour used to draw a tile value.
func TileColor(v int) core.Color {
	if c, ok := tileColors[v]; ok {
		return c
	}
	return core.ColorBrightMagenta
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}
	if g.session == nil {
		return
	}

	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, boardX)
	g.renderBoard(dst, boardX, boardY)
	dst.DrawTextColor((g.screenW-len(g.Controls()))/2, boardY+boardH+1, g.Controls(), core.ColorGray)
	g.renderOverlays(dst, core.NewRect(boardX, boardY, boardW, boardH))
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
}

// renderHUD draws title, score, best and rule indicators above the board.
func (g *Game) renderHUD(dst *core.Screen, boardX int) {
	s := g.session

	title := "2 0 4 8"
	if g.mode == ModeEndless {
		title = "2 0 4 8  endless"
	}
	dst.DrawTextColor(boardX+(boardW-len(title))/2, 0, title, core.ColorBrightYellow)

	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", s.Score()))
	best := fmt.Sprintf("Best: %d", s.Best())
	dst.DrawText(boardX+boardW-len(best), 1, best)

	if target := s.Rules().Target; target > 0 {
		dst.DrawTextColor(boardX, 2, fmt.Sprintf("Target: %d", target), core.ColorGray)
	} else {
		dst.DrawTextColor(boardX, 2, fmt.Sprintf("Max: %d", s.Grid().MaxTile()), core.ColorGray)
	}

	if limit := s.Rules().NoMergeLimit; limit > 0 {
		streak := fmt.Sprintf("No merge: %d/%d", s.NoMergeCount(), limit)
		color := core.ColorGray
		if s.NoMergeCount() >= limit-1 {
			color = core.ColorBrightRed
		}
		dst.DrawTextColor(boardX+boardW-len(streak), 2, streak, color)
	}
}

// renderBoard draws the grid lines and tiles.
func (g *Game) renderBoard(dst *core.Screen, boardX, boardY int) {
	for y := range Size + 1 {
		for x := range Size + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			dst.SetColor(px, py, gridCorner(x, y), core.ColorGray)

			if x < Size {
				for i := 1; i < cellWidth; i++ {
					dst.SetColor(px+i, py, '─', core.ColorGray)
				}
			}
			if y < Size {
				for i := 1; i < cellHeight; i++ {
					dst.SetColor(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}

	grid := g.session.Grid()
	for r := range Size {
		for c := range Size {
			val := grid[r][c]
			if val == 0 {
				continue
			}

			valStr := strconv.Itoa(val)
			padLeft := max((cellWidth-1-len(valStr))/2, 0)

			cellX := boardX + c*cellWidth + 1
			cellY := boardY + r*cellHeight + 1
			dst.DrawTextColor(cellX+padLeft, cellY, valStr, TileColor(val))
		}
	}
}

// gridCorner returns the box-drawing rune for grid intersection (x, y).
func gridCorner(x, y int) rune {
	switch {
	case y == 0 && x == 0:
		return '┌'
	case y == 0 && x == Size:
		return '┐'
	case y == Size && x == 0:
		return '└'
	case y == Size && x == Size:
		return '┘'
	case y == 0:
		return '┬'
	case y == Size:
		return '┴'
	case x == 0:
		return '├'
	case x == Size:
		return '┤'
	default:
		return '┼'
	}
}

// renderOverlays draws pause, win and loss notifications over the board.
func (g *Game) renderOverlays(dst *core.Screen, board core.Rect) {
	s := g.session

	switch {
	case g.paused:
		drawOverlay(dst, board, "PAUSED", "Press P to resume")
	case s.Status() == StatusWon:
		drawOverlay(dst, board,
			fmt.Sprintf("You reached %d!", s.Rules().Target),
			fmt.Sprintf("Score: %d", s.Score()),
			"C: keep going",
			"R: new game")
	case s.Status() == StatusLost:
		reason := "No more moves"
		if s.LossReason() == LossNoMerge {
			reason = fmt.Sprintf("%d moves without merging", s.Rules().NoMergeLimit)
		}
		drawOverlay(dst, board, "GAME OVER", reason, "Press R to restart")
	}
}

// drawOverlay draws a boxed message centered on the board.
func drawOverlay(dst *core.Screen, board core.Rect, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	box := core.CenteredRect(board, maxLen+4, len(lines)+2)
	dst.FillRect(box)
	dst.DrawBox(box)

	cx, _ := box.Center()
	for i, line := range lines {
		dst.DrawTextColor(cx-len(line)/2, box.Y+1+i, line, core.ColorBrightWhite)
	}
}

// Controls returns the control hints for the game.
// Narrow screens get the short form.
func (g *Game) Controls() string {
	const full = "Arrows/WASD/drag: Move  P: Pause  R: New  Q: Quit"
	if g.screenW < len(full) {
		return "Arrows: Move P R Q"
	}
	return full
}
