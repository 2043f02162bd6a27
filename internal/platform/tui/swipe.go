package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/game"
)

// cellAspect compensates for terminal cells being about twice as tall as wide.
const cellAspect = 2.0

// swipeTracker turns a left-button press/release pair into a swipe.
type swipeTracker struct {
	threshold float64
	active    bool
	startX    int
	startY    int
}

func newSwipeTracker(threshold float64) swipeTracker {
	return swipeTracker{threshold: threshold}
}

// handle consumes a mouse message. It returns a direction when the message
// completes a drag long enough to count as a swipe.
func (s *swipeTracker) handle(msg tea.MouseMsg) (game.Direction, bool) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return 0, false
		}
		s.active = true
		s.startX, s.startY = msg.X, msg.Y

	case tea.MouseActionRelease:
		if !s.active {
			return 0, false
		}
		s.active = false

		dx := float64(msg.X - s.startX)
		dy := float64(msg.Y-s.startY) * cellAspect
		if dx == 0 && dy == 0 {
			// A click is not a swipe.
			return 0, false
		}
		return game.DirectionFromSwipe(dx, dy, s.threshold)
	}

	return 0, false
}
