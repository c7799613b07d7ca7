package core

import "math"

// Command is an abstract player intent, decoupled from keys and gestures.
type Command int

const (
	CommandNone Command = iota
	CommandMoveLeft
	CommandMoveRight
	CommandJump
	CommandRoll
)

// String returns a human-readable name for the command.
func (c Command) String() string {
	switch c {
	case CommandNone:
		return "None"
	case CommandMoveLeft:
		return "MoveLeft"
	case CommandMoveRight:
		return "MoveRight"
	case CommandJump:
		return "Jump"
	case CommandRoll:
		return "Roll"
	default:
		return "Unknown"
	}
}

// SwipeThreshold is the minimum travel, in pixels, for a swipe to register.
const SwipeThreshold = 30.0

// ClassifySwipe maps a touch swipe vector to a command.
// The dominant axis decides between lane changes and jump/roll; screen y grows
// downward, so a downward swipe rolls. Returns false for swipes that are too
// short on their dominant axis.
func ClassifySwipe(dx, dy float64) (Command, bool) {
	if math.Abs(dx) > math.Abs(dy) {
		if math.Abs(dx) <= SwipeThreshold {
			return CommandNone, false
		}
		if dx > 0 {
			return CommandMoveRight, true
		}
		return CommandMoveLeft, true
	}

	if math.Abs(dy) <= SwipeThreshold {
		return CommandNone, false
	}
	if dy > 0 {
		return CommandRoll, true
	}
	return CommandJump, true
}

// CommandQueue buffers commands between simulation ticks.
// The host pushes as input arrives; the simulation drains once per tick.
type CommandQueue struct {
	pending []Command
}

// Push appends a command. CommandNone is ignored.
func (q *CommandQueue) Push(c Command) {
	if c == CommandNone {
		return
	}
	q.pending = append(q.pending, c)
}

// Drain returns all buffered commands in arrival order and empties the queue.
func (q *CommandQueue) Drain() []Command {
	if len(q.pending) == 0 {
		return nil
	}
	out := make([]Command, len(q.pending))
	copy(out, q.pending)
	q.pending = q.pending[:0]
	return out
}

// Len returns the number of buffered commands.
func (q *CommandQueue) Len() int {
	return len(q.pending)
}

// Clear discards buffered commands.
func (q *CommandQueue) Clear() {
	q.pending = q.pending[:0]
}
