package workout

import (
	"math"
	"slices"
)

const (
	// CodeSwimming identifies a swimming package.
	CodeSwimming = "SWM"
	// CodeRunning identifies a running package.
	CodeRunning = "RUN"
	// CodeWalking identifies a sports walking package.
	CodeWalking = "WLK"
)

// builder turns positional values into a workout. fields names each position;
// build is only called with len(fields) finite values.
type builder struct {
	fields []string
	build  func(values []float64) (Workout, error)
}

var builders = map[string]builder{
	CodeSwimming: {
		fields: []string{"action", "duration", "weight", "pool length", "pool count"},
		build: func(v []float64) (Workout, error) {
			action, err := toInt("action", v[0])
			if err != nil {
				return nil, err
			}
			count, err := toInt("pool count", v[4])
			if err != nil {
				return nil, err
			}
			w, err := NewSwimming(SwimmingParams{
				Action:     action,
				Duration:   v[1],
				Weight:     v[2],
				PoolLength: v[3],
				PoolCount:  count,
			})
			if err != nil {
				return nil, err
			}
			return w, nil
		},
	},
	CodeRunning: {
		fields: []string{"action", "duration", "weight"},
		build: func(v []float64) (Workout, error) {
			action, err := toInt("action", v[0])
			if err != nil {
				return nil, err
			}
			w, err := NewRunning(RunningParams{
				Action:   action,
				Duration: v[1],
				Weight:   v[2],
			})
			if err != nil {
				return nil, err
			}
			return w, nil
		},
	},
	CodeWalking: {
		fields: []string{"action", "duration", "weight", "height"},
		build: func(v []float64) (Workout, error) {
			action, err := toInt("action", v[0])
			if err != nil {
				return nil, err
			}
			w, err := NewSportsWalking(WalkingParams{
				Action:   action,
				Duration: v[1],
				Weight:   v[2],
				Height:   v[3],
			})
			if err != nil {
				return nil, err
			}
			return w, nil
		},
	},
}

// Create builds the workout identified by code from its positional sensor values.
//
// SWM expects action, duration, weight, pool length and pool count; RUN expects
// action, duration and weight; WLK expects action, duration, weight and height.
// Action and pool count are truncated to integers. NaN and infinite values are rejected.
func Create(code string, values []float64) (Workout, error) {
	b, ok := builders[code]
	if !ok {
		return nil, &UnknownActivityCodeError{Code: code, Valid: ValidCodes()}
	}
	if len(values) != len(b.fields) {
		return nil, &InvalidArgumentCountError{Code: code, Want: len(b.fields), Got: len(values)}
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &InvalidParameterError{Field: b.fields[i], Value: v, Reason: reasonNotFinite}
		}
	}
	return b.build(values)
}

// ValidCodes returns the recognised activity codes in sorted order.
func ValidCodes() []string {
	codes := make([]string, 0, len(builders))
	for code := range builders {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

// toInt truncates v toward zero, rejecting values an int cannot hold.
func toInt(field string, v float64) (int, error) {
	if v < math.MinInt || v >= math.MaxInt {
		return 0, &InvalidParameterError{Field: field, Value: v, Reason: reasonNotInteger}
	}
	return int(v), nil
}
