package runner

import (
	"slices"
	"testing"

	"github.com/vovakirdan/tui-runner/internal/core"
)

func runningSnapshot(lane int, entities ...EntityView) Snapshot {
	return Snapshot{
		Phase:    PhaseRunning,
		Speed:    10,
		Player:   PlayerView{Lane: lane, State: Grounded},
		Entities: entities,
	}
}

func TestAutopilotDecisions(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
		want []core.Command
	}{
		{
			name: "dodges tall barrier",
			snap: runningSnapshot(0, EntityView{Kind: KindObstacleTall, Lane: 0, Z: -8}),
			want: []core.Command{core.CommandMoveLeft},
		},
		{
			name: "dodges toward coins",
			snap: runningSnapshot(0,
				EntityView{Kind: KindObstacleTall, Lane: 0, Z: -8},
				EntityView{Kind: KindCoin, Lane: 1, Z: -10}),
			want: []core.Command{core.CommandMoveRight},
		},
		{
			name: "jumps low barrier in time",
			snap: runningSnapshot(0, EntityView{Kind: KindObstacleLow, Lane: 0, Z: -3}),
			want: []core.Command{core.CommandJump},
		},
		{
			name: "waits for distant low barrier",
			snap: runningSnapshot(0, EntityView{Kind: KindObstacleLow, Lane: 0, Z: -10}),
			want: nil,
		},
		{
			name: "ignores floating block on the ground",
			snap: runningSnapshot(0, EntityView{Kind: KindObstacleFloating, Lane: 0, Z: -5}),
			want: nil,
		},
		{
			name: "chases coins",
			snap: runningSnapshot(-1, EntityView{Kind: KindCoin, Lane: 1, Z: -6}),
			want: []core.Command{core.CommandMoveRight, core.CommandMoveRight},
		},
		{
			name: "will not cross a blocked lane",
			snap: runningSnapshot(-1,
				EntityView{Kind: KindObstacleTall, Lane: 0, Z: -6},
				EntityView{Kind: KindCoin, Lane: 1, Z: -6}),
			want: nil,
		},
		{
			name: "idle game",
			snap: Snapshot{Phase: PhaseGameOver, Speed: 10},
			want: nil,
		},
	}

	ap := NewAutopilot()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ap.Decide(tt.snap)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Decide = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAutopilotDrivesGame(t *testing.T) {
	g, _, _ := newTestGame(21)
	g.Start()
	ap := NewAutopilot()

	for i := 0; i < 600 && g.Phase() == PhaseRunning; i++ {
		for _, c := range ap.Decide(g.Snapshot()) {
			g.Enqueue(c)
		}
		g.Tick(frame)
	}
	if g.Ticks() == 0 || g.Score() == 0 {
		t.Error("autopilot run did not advance")
	}
}
