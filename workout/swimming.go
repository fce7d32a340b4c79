package workout

const (
	swimmingStrokeLength    = 1.38
	swimmingSpeedShift      = 1.1
	swimmingSpeedMultiplier = 2.0
)

// SwimmingParams are the readings of a swimming session. PoolLength is in metres,
// PoolCount is the number of lengths swum.
type SwimmingParams struct {
	Action     int
	Duration   float64
	Weight     float64
	PoolLength float64
	PoolCount  int
}

// Swimming is a pool swimming session. Distance still follows the stroke count
// while mean speed comes from the pool geometry.
type Swimming struct {
	training
	poolLength float64
	poolCount  int
}

// NewSwimming validates params and builds a Swimming workout.
func NewSwimming(p SwimmingParams) (Swimming, error) {
	t, err := newTraining(p.Action, p.Duration, p.Weight, swimmingStrokeLength)
	if err != nil {
		return Swimming{}, err
	}
	return Swimming{training: t, poolLength: p.PoolLength, poolCount: p.PoolCount}, nil
}

// TrainingType returns "Swimming".
func (Swimming) TrainingType() string { return "Swimming" }

// MeanSpeed returns the pool distance swum per hour in km/h.
func (s Swimming) MeanSpeed() float64 {
	return s.poolLength * float64(s.poolCount) / MInKm / s.duration
}

// SpentCalories grows with mean speed and weight; duration does not enter the formula.
func (s Swimming) SpentCalories() float64 {
	return (s.MeanSpeed() + swimmingSpeedShift) * swimmingSpeedMultiplier * s.weight
}

// Summary computes distance, mean speed and calories.
func (s Swimming) Summary() InfoMessage {
	return summarize(s, s.duration)
}
