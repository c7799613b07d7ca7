package runner

// Cue identifies a sound effect requested by the simulation.
type Cue int

const (
	CueJump Cue = iota
	CueRoll
	CueCoin
	CueCrash
	CuePowerUp
)

// String returns the name of the cue.
func (c Cue) String() string {
	switch c {
	case CueJump:
		return "jump"
	case CueRoll:
		return "roll"
	case CueCoin:
		return "coin"
	case CueCrash:
		return "crash"
	case CuePowerUp:
		return "powerup"
	default:
		return "unknown"
	}
}

// Audio receives sound cues. Implementations must not block the tick.
type Audio interface {
	Play(cue Cue)
}

// UI receives display notifications from the game.
type UI interface {
	ScoreChanged(score int)
	CoinsChanged(coins int)
	GameOverShown(score, coins int)
	GameOverHidden()
}

// NopAudio discards every cue.
type NopAudio struct{}

func (NopAudio) Play(Cue) {}

// NopUI discards every notification.
type NopUI struct{}

func (NopUI) ScoreChanged(int) {}
func (NopUI) CoinsChanged(int) {}
func (NopUI) GameOverShown(int, int) {}
func (NopUI) GameOverHidden() {}
