package game

import (
	"errors"
	"fmt"
)

// Action is one of the four cardinal moves or staying in place.
type Action int

const (
	ActionUp Action = iota
	ActionDown
	ActionLeft
	ActionRight
	ActionStay
	actionCount // sentinel
)

// Actions lists every action in scan order. Tie-breaks that depend on
// ordering always walk this slice front to back.
var Actions = [actionCount]Action{ActionUp, ActionDown, ActionLeft, ActionRight, ActionStay}

// Moves lists the four non-stay actions.
var Moves = [4]Action{ActionUp, ActionDown, ActionLeft, ActionRight}

// ErrNotAdjacent is returned by NextAction when dst is neither src nor one of
// its orthogonal neighbours.
var ErrNotAdjacent = errors.New("destination is not adjacent to source")

var actionOffsets = [actionCount]Cell{
	ActionUp:    {X: 0, Y: 1},
	ActionDown:  {X: 0, Y: -1},
	ActionLeft:  {X: -1, Y: 0},
	ActionRight: {X: 1, Y: 0},
	ActionStay:  {X: 0, Y: 0},
}

// Offset returns the unit vector of the action (zero for stay).
func (a Action) Offset() Cell {
	if a < 0 || a >= actionCount {
		return Cell{}
	}
	return actionOffsets[a]
}

// Dest returns the cell reached by applying a at src.
func (a Action) Dest(src Cell) Cell {
	return src.Add(a.Offset())
}

func (a Action) String() string {
	switch a {
	case ActionUp:
		return "up"
	case ActionDown:
		return "down"
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	case ActionStay:
		return "stay"
	default:
		return "unknown"
	}
}

// NextAction returns the action that steps from src to dst.
func NextAction(src, dst Cell) (Action, error) {
	d := dst.Sub(src)
	for _, a := range Actions {
		if actionOffsets[a] == d {
			return a, nil
		}
	}
	return ActionStay, fmt.Errorf("next action %v -> %v: %w", src, dst, ErrNotAdjacent)
}

// MaxLevel is the strongest recommendation a strategy can give an action.
const MaxLevel = 10.0

// ActionLevels holds one non-negative recommendation per action. The array
// form keeps it total over Actions by construction.
type ActionLevels [actionCount]float64

// Best returns the first action with the highest level, scanning in Actions order.
func (l ActionLevels) Best() Action {
	best := Actions[0]
	for _, a := range Actions {
		if l[a] > l[best] {
			best = a
		}
	}
	return best
}

// Only returns levels with a at MaxLevel and everything else zero.
func Only(a Action) ActionLevels {
	var l ActionLevels
	l[a] = MaxLevel
	return l
}
