package runner

import (
	"github.com/vovakirdan/tui-runner/internal/core"
)

// Autopilot plays the game from snapshots: it leaves lanes blocked by tall
// or stacked obstacles, jumps low barriers and drifts toward coins.
type Autopilot struct {
	Lookahead  float64 // Seconds of travel scanned ahead
	JumpWindow [2]float64
}

// NewAutopilot returns an autopilot tuned for the default physics.
func NewAutopilot() *Autopilot {
	return &Autopilot{
		Lookahead:  1.2,
		JumpWindow: [2]float64{0.2, 0.45},
	}
}

type laneScan struct {
	blocked  bool
	lowAt    float64 // Nearest low barrier distance, 0 if none
	floating bool
	rewards  int
}

// Decide returns the commands to enqueue for the next tick.
func (a *Autopilot) Decide(s Snapshot) []core.Command {
	if s.Phase != PhaseRunning || s.Paused || s.Speed <= 0 {
		return nil
	}
	horizon := s.Speed * a.Lookahead
	lanes := a.scan(s, horizon)
	cur := s.Player.Lane
	at := func(l int) *laneScan { return &lanes[l-minLane] }

	if t := s.Player.Timers; t.Jetpack > 0 || t.InvincibleMS > 500 {
		return steer(cur, a.richest(lanes, cur, false))
	}

	here := at(cur)
	if here.blocked || (here.lowAt > 0 && here.floating) {
		if l, ok := a.escape(lanes, cur); ok {
			return steer(cur, l)
		}
	}

	if here.lowAt > 0 && !s.Player.Airborne {
		eta := here.lowAt / s.Speed
		if eta >= a.JumpWindow[0] && eta <= a.JumpWindow[1] {
			return []core.Command{core.CommandJump}
		}
		return nil
	}

	if s.Player.Airborne {
		return nil
	}
	return steer(cur, a.richest(lanes, cur, true))
}

func (a *Autopilot) scan(s Snapshot, horizon float64) [3]laneScan {
	var lanes [3]laneScan
	for i := range s.Entities {
		e := &s.Entities[i]
		d := -e.Z
		if d < -1 || d > horizon || e.Lane < minLane || e.Lane > maxLane {
			continue
		}
		l := &lanes[e.Lane-minLane]
		switch e.Kind {
		case KindObstacleTall:
			l.blocked = true
		case KindObstacleLow:
			if d > 0 && (l.lowAt == 0 || d < l.lowAt) {
				l.lowAt = d
			}
			if d <= 0 {
				l.blocked = true
			}
		case KindObstacleFloating:
			l.floating = true
		case KindCoin:
			l.rewards++
		case KindPowerUpMagnet, KindPowerUpJetpack, KindPowerUpHoverboard:
			l.rewards += 3
		}
	}
	return lanes
}

// escape picks the nearest lane that is neither blocked nor passes through a
// blocked lane, preferring the one with more rewards.
func (a *Autopilot) escape(lanes [3]laneScan, cur int) (int, bool) {
	best, found := cur, false
	for l := minLane; l <= maxLane; l++ {
		if l == cur || !reachable(lanes, cur, l) {
			continue
		}
		s := lanes[l-minLane]
		if s.lowAt > 0 && s.floating {
			continue
		}
		if !found || abs(l-cur) < abs(best-cur) ||
			(abs(l-cur) == abs(best-cur) && s.rewards > lanes[best-minLane].rewards) {
			best, found = l, true
		}
	}
	return best, found
}

// richest returns the reachable safe lane with the most rewards, staying put
// on ties.
func (a *Autopilot) richest(lanes [3]laneScan, cur int, safeOnly bool) int {
	best := cur
	for l := minLane; l <= maxLane; l++ {
		if safeOnly && !reachable(lanes, cur, l) {
			continue
		}
		if lanes[l-minLane].rewards > lanes[best-minLane].rewards {
			best = l
		}
	}
	return best
}

func reachable(lanes [3]laneScan, from, to int) bool {
	if from == to {
		return true
	}
	step := 1
	if to < from {
		step = -1
	}
	for l := from + step; ; l += step {
		s := lanes[l-minLane]
		if s.blocked || s.lowAt > 0 {
			return false
		}
		if l == to {
			return true
		}
	}
}

func steer(from, to int) []core.Command {
	var cmds []core.Command
	for ; from < to; from++ {
		cmds = append(cmds, core.CommandMoveRight)
	}
	for ; from > to; from-- {
		cmds = append(cmds, core.CommandMoveLeft)
	}
	return cmds
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
