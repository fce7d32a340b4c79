package workout

import (
	"fmt"
	"log/slog"
)

// InfoMessage holds the computed results of a single workout.
type InfoMessage struct {
	TrainingType string  `json:"training_type"`
	Duration     float64 `json:"duration_h"`
	Distance     float64 `json:"distance_km"`
	Speed        float64 `json:"speed_kmh"`
	Calories     float64 `json:"calories_kcal"`
}

// Message renders the summary line. Every number is printed with three decimals.
func (m InfoMessage) Message() string {
	return fmt.Sprintf(
		"Workout type: %s; Duration: %.3f h; Distance: %.3f km; Avg speed: %.3f km/h; Calories burned: %.3f.",
		m.TrainingType, m.Duration, m.Distance, m.Speed, m.Calories,
	)
}

func (m InfoMessage) String() string {
	return m.Message()
}

// LogValue groups the fields so a message can be passed straight to a structured logger.
func (m InfoMessage) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("training_type", m.TrainingType),
		slog.Float64("duration_h", m.Duration),
		slog.Float64("distance_km", m.Distance),
		slog.Float64("speed_kmh", m.Speed),
		slog.Float64("calories_kcal", m.Calories),
	)
}
