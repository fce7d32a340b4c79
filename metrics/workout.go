package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/nomis52/fitstats/workout"
)

const (
	labelTrainingType = "training_type"
	labelCode         = "code"
)

// WorkoutMetrics is the metric set updated while processing workout packages.
type WorkoutMetrics struct {
	processed CounterVec
	rejected  CounterVec
	distance  GaugeVec
	speed     GaugeVec
	calories  GaugeVec
}

// NewWorkoutMetrics registers the workout metrics with registry.
func NewWorkoutMetrics(registry Registry) (*WorkoutMetrics, error) {
	processed, err := registry.NewCounterVec(prometheus.CounterOpts{
		Name: "workouts_processed_total",
		Help: "Number of workout packages summarised, by training type.",
	}, []string{labelTrainingType})
	if err != nil {
		return nil, fmt.Errorf("creating processed counter: %w", err)
	}

	rejected, err := registry.NewCounterVec(prometheus.CounterOpts{
		Name: "workouts_rejected_total",
		Help: "Number of workout packages that could not be summarised, by activity code.",
	}, []string{labelCode})
	if err != nil {
		return nil, fmt.Errorf("creating rejected counter: %w", err)
	}

	distance, err := registry.NewGaugeVec(prometheus.GaugeOpts{
		Name: "workout_last_distance_km",
		Help: "Distance of the most recent workout in km.",
	}, []string{labelTrainingType})
	if err != nil {
		return nil, fmt.Errorf("creating distance gauge: %w", err)
	}

	speed, err := registry.NewGaugeVec(prometheus.GaugeOpts{
		Name: "workout_last_speed_kmh",
		Help: "Mean speed of the most recent workout in km/h.",
	}, []string{labelTrainingType})
	if err != nil {
		return nil, fmt.Errorf("creating speed gauge: %w", err)
	}

	calories, err := registry.NewGaugeVec(prometheus.GaugeOpts{
		Name: "workout_last_calories_kcal",
		Help: "Calories spent during the most recent workout.",
	}, []string{labelTrainingType})
	if err != nil {
		return nil, fmt.Errorf("creating calories gauge: %w", err)
	}

	return &WorkoutMetrics{
		processed: processed,
		rejected:  rejected,
		distance:  distance,
		speed:     speed,
		calories:  calories,
	}, nil
}

// RecordSummary records a successfully summarised workout.
func (m *WorkoutMetrics) RecordSummary(info workout.InfoMessage) {
	labels := prometheus.Labels{labelTrainingType: info.TrainingType}
	m.processed.With(labels).Inc()
	m.distance.With(labels).Set(info.Distance)
	m.speed.With(labels).Set(info.Speed)
	m.calories.With(labels).Set(info.Calories)
}

// RecordRejected records a package that failed with the given activity code.
func (m *WorkoutMetrics) RecordRejected(code string) {
	m.rejected.With(prometheus.Labels{labelCode: code}).Inc()
}
