package core

import "testing"

func TestClassifySwipe(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy float64
		want   Command
		ok     bool
	}{
		{"swipe right", 80, 10, CommandMoveRight, true},
		{"swipe left", -80, 10, CommandMoveLeft, true},
		{"swipe up", 5, -60, CommandJump, true},
		{"swipe down", 5, 60, CommandRoll, true},
		{"short horizontal", 30, 0, CommandNone, false},
		{"short vertical", 0, -30, CommandNone, false},
		{"just over threshold", 30.5, 0, CommandMoveRight, true},
		{"diagonal ties go vertical", 40, 40, CommandRoll, true},
		{"tap", 0, 0, CommandNone, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ClassifySwipe(tc.dx, tc.dy)
			if got != tc.want || ok != tc.ok {
				t.Errorf("ClassifySwipe(%v, %v) = (%v, %v), expected (%v, %v)",
					tc.dx, tc.dy, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestCommandQueue(t *testing.T) {
	var q CommandQueue

	q.Push(CommandJump)
	q.Push(CommandNone)
	q.Push(CommandMoveLeft)

	if q.Len() != 2 {
		t.Fatalf("Len() = %d, expected 2", q.Len())
	}

	got := q.Drain()
	if len(got) != 2 || got[0] != CommandJump || got[1] != CommandMoveLeft {
		t.Errorf("Drain() = %v, expected [Jump MoveLeft]", got)
	}
	if q.Len() != 0 {
		t.Error("Drain should empty the queue")
	}
	if q.Drain() != nil {
		t.Error("Drain on empty queue should return nil")
	}

	q.Push(CommandRoll)
	q.Clear()
	if q.Len() != 0 {
		t.Error("Clear should empty the queue")
	}
}

func TestCommandString(t *testing.T) {
	if CommandRoll.String() != "Roll" {
		t.Errorf("CommandRoll.String() = %q", CommandRoll.String())
	}
	if Command(99).String() != "Unknown" {
		t.Error("unknown command should stringify as Unknown")
	}
}
