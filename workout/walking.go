package workout

const (
	walkingWeightMultiplier = 0.035
	walkingSpeedMultiplier  = 0.029
)

// WalkingParams are the readings of a sports walking session. Height is in cm.
type WalkingParams struct {
	Action   int
	Duration float64
	Weight   float64
	Height   float64
}

// SportsWalking is a sports walking session.
type SportsWalking struct {
	training
	height float64
}

// NewSportsWalking validates params and builds a SportsWalking workout.
func NewSportsWalking(p WalkingParams) (SportsWalking, error) {
	t, err := newTraining(p.Action, p.Duration, p.Weight, defaultStepLength)
	if err != nil {
		return SportsWalking{}, err
	}
	if !(p.Height > 0) {
		return SportsWalking{}, &InvalidParameterError{Field: "height", Value: p.Height, Reason: reasonNotPositive}
	}
	return SportsWalking{training: t, height: p.Height}, nil
}

// TrainingType returns "SportsWalking".
func (SportsWalking) TrainingType() string { return "SportsWalking" }

// Height returns the athlete's height in cm.
func (w SportsWalking) Height() float64 { return w.height }

// SpentCalories buckets the squared speed into height-sized bins with floor
// division. Only whole bins count.
func (w SportsWalking) SpentCalories() float64 {
	speed := w.MeanSpeed()
	bucket := floorDiv(speed*speed, w.height)
	return (walkingWeightMultiplier*w.weight + bucket*walkingSpeedMultiplier*w.weight) *
		w.duration * MinInH
}

// Summary computes distance, mean speed and calories.
func (w SportsWalking) Summary() InfoMessage {
	return summarize(w, w.duration)
}
