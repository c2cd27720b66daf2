package progress

import "fmt"

type State string

const (
	Red    State = "red"
	Yellow State = "yellow"
	Green  State = "green"
)

// Percent returns actual as a percentage of goal.
func Percent(actual, goal int) (float64, error) {
	if goal == 0 {
		return 0, ErrZeroGoal
	}
	return float64(actual) / float64(goal) * 100, nil
}

// Status classifies actual against goal. Callers must check for a zero goal first;
// Status panics when goal is 0.
func Status(actual, goal int) State {
	pct, err := Percent(actual, goal)
	if err != nil {
		panic(fmt.Sprintf("progress: status with goal %d", goal))
	}
	return stateFor(pct)
}

func stateFor(pct float64) State {
	switch {
	case pct < 50 || pct > 150:
		return Red
	case pct < 80 || pct > 120:
		return Yellow
	default:
		return Green
	}
}

// Summary is a progress snapshot ready for display. When HasGoal is false the
// percentage, status and bar fields are zero and should not be rendered.
type Summary struct {
	Words   int     `json:"words" yaml:"words"`
	Goal    int     `json:"goal" yaml:"goal"`
	HasGoal bool    `json:"hasGoal" yaml:"hasGoal"`
	Percent float64 `json:"percent" yaml:"percent"`
	Status  State   `json:"status,omitempty" yaml:"status,omitempty"`
	// Bar is Percent clamped to 100.
	Bar float64 `json:"bar" yaml:"bar"`
}

func Summarize(actual, goal int) Summary {
	s := Summary{Words: actual, Goal: goal}
	pct, err := Percent(actual, goal)
	if err != nil {
		return s
	}
	s.HasGoal = true
	s.Percent = pct
	s.Status = stateFor(pct)
	s.Bar = pct
	if s.Bar > 100 {
		s.Bar = 100
	}
	return s
}
