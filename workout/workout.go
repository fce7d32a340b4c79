// Package workout computes distance, mean speed and calories for running,
// sports walking and swimming sessions from raw sensor readings.
//
// Workouts are built from an activity code and a flat list of values:
//
//	w, err := workout.Create("RUN", []float64{15000, 1, 75})
//	if err != nil {
//		return err
//	}
//	fmt.Println(w.Summary().Message())
//
// All computations are pure. A Workout never changes after construction, so
// Summary may be called repeatedly and from several goroutines.
package workout

import "math"

const (
	// MInKm is the number of metres in a kilometre.
	MInKm = 1000.0
	// MinInH is the number of minutes in an hour.
	MinInH = 60.0

	reasonNotPositive = "must be positive"
	reasonNotFinite   = "must be finite"
	reasonNotInteger  = "is outside the integer range"

	// defaultStepLength is the distance in metres covered by one running or walking step.
	defaultStepLength = 0.65
)

// Workout is implemented by every activity type.
type Workout interface {
	// TrainingType returns the label shown in the summary line.
	TrainingType() string
	// Distance returns the distance covered in km.
	Distance() float64
	// MeanSpeed returns the mean speed in km/h.
	MeanSpeed() float64
	// SpentCalories returns the energy spent in kcal.
	SpentCalories() float64
	// Summary computes all metrics and packages them into an InfoMessage.
	Summary() InfoMessage
}

// training holds the readings shared by all activity types and the default distance and speed math.
// It does not satisfy Workout on its own: SpentCalories panics and is shadowed by every
// concrete type.
type training struct {
	action     int
	duration   float64
	weight     float64
	stepLength float64
}

func newTraining(action int, duration, weight, stepLength float64) (training, error) {
	if !(duration > 0) {
		return training{}, &InvalidParameterError{Field: "duration", Value: duration, Reason: reasonNotPositive}
	}
	return training{
		action:     action,
		duration:   duration,
		weight:     weight,
		stepLength: stepLength,
	}, nil
}

// Action returns the number of steps or strokes.
func (t training) Action() int { return t.action }

// Duration returns the workout duration in hours.
func (t training) Duration() float64 { return t.duration }

// Weight returns the athlete's weight in kg.
func (t training) Weight() float64 { return t.weight }

// Distance returns action count times step length, in km.
func (t training) Distance() float64 {
	return float64(t.action) * t.stepLength / MInKm
}

// MeanSpeed returns Distance over duration, in km/h.
func (t training) MeanSpeed() float64 {
	return t.Distance() / t.duration
}

// SpentCalories panics with ErrUnimplementedCalorieModel.
func (t training) SpentCalories() float64 {
	panic(ErrUnimplementedCalorieModel)
}

// summarize runs distance, mean speed and calories in that order so that every
// concrete type goes through its own overrides.
func summarize(w Workout, duration float64) InfoMessage {
	distance := w.Distance()
	speed := w.MeanSpeed()
	calories := w.SpentCalories()
	return InfoMessage{
		TrainingType: w.TrainingType(),
		Duration:     duration,
		Distance:     distance,
		Speed:        speed,
		Calories:     calories,
	}
}

// floorDiv divides x by y rounding toward negative infinity. The quotient is
// derived from math.Mod so that results sitting on a bucket boundary do not
// round up, e.g. floorDiv(0.5, 0.1) is 4.
func floorDiv(x, y float64) float64 {
	mod := math.Mod(x, y)
	div := (x - mod) / y
	if mod != 0 && (y < 0) != (mod < 0) {
		div -= 1
	}
	if div == 0 {
		return math.Copysign(0, x/y)
	}
	floor := math.Floor(div)
	if div-floor > 0.5 {
		floor += 1
	}
	return floor
}
