package game

// Outcome is how a game finished.
type Outcome int

const (
	OutcomeRunning Outcome = iota
	OutcomeCaptured
	OutcomeStuck
	OutcomeSurvived
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRunning:
		return "running"
	case OutcomeCaptured:
		return "captured"
	case OutcomeStuck:
		return "stuck"
	case OutcomeSurvived:
		return "survived"
	default:
		return "unknown"
	}
}

// OutcomeReason summarises a game for reports.
type OutcomeReason struct {
	Outcome     Outcome
	Steps       int
	GoodSteps   int
	Score       int
	Checkpoints int
	Visited     int
	Description string
}

// DetermineOutcome reads the final state of p.
func DetermineOutcome(p *Pursuit) OutcomeReason {
	r := OutcomeReason{
		Outcome:     p.Outcome(),
		Steps:       p.Steps(),
		GoodSteps:   p.GoodSteps(),
		Checkpoints: len(p.Checkpoints()),
	}
	for i := range p.Checkpoints() {
		if p.Visited(i) {
			r.Visited++
		}
	}
	r.Score, _ = p.Score()

	switch r.Outcome {
	case OutcomeCaptured:
		r.Description = "enemy_caught_agent"
	case OutcomeStuck:
		r.Description = "agent_stuck"
	case OutcomeSurvived:
		if r.Checkpoints > 0 && r.Visited < r.Checkpoints {
			r.Description = "agent_survived_enemy_gated"
		} else {
			r.Description = "agent_survived_max_steps"
		}
	default:
		r.Description = "in_progress"
	}
	return r
}
