package workout

const (
	runningCalorieMultiplier = 18.0
	runningCalorieShift      = 20.0
)

// RunningParams are the readings of a running session.
type RunningParams struct {
	Action   int
	Duration float64
	Weight   float64
}

// Running is a running session.
type Running struct {
	training
}

// NewRunning validates params and builds a Running workout.
func NewRunning(p RunningParams) (Running, error) {
	t, err := newTraining(p.Action, p.Duration, p.Weight, defaultStepLength)
	if err != nil {
		return Running{}, err
	}
	return Running{training: t}, nil
}

// TrainingType returns "Running".
func (Running) TrainingType() string { return "Running" }

// SpentCalories scales the mean speed by the running coefficients and the time in minutes.
func (r Running) SpentCalories() float64 {
	return (runningCalorieMultiplier*r.MeanSpeed() - runningCalorieShift) *
		r.weight / MInKm * r.duration * MinInH
}

// Summary computes distance, mean speed and calories.
func (r Running) Summary() InfoMessage {
	return summarize(r, r.duration)
}
