package algo

import (
	"fmt"
	"math"
)

func checkDistance(meters float64) error {
	// NaN不满足meters >= 0
	if !(meters >= 0) || math.IsInf(meters, 1) {
		return fmt.Errorf("%w: %v", ErrInvalidDistance, meters)
	}
	return nil
}

func MetersToMiles(meters float64) (float64, error) {
	if err := checkDistance(meters); err != nil {
		return 0, err
	}
	return meters / METERS_PER_MILE, nil
}

// EstimateMinutes rounds meters/speed up to whole minutes; 0 meters is exactly 0 minutes.
// Results that do not fit in an int are clamped to math.MaxInt.
func EstimateMinutes(meters, metersPerMinute float64) (int, error) {
	if err := checkDistance(meters); err != nil {
		return 0, err
	}
	if meters == 0 {
		return 0, nil
	}
	minutes := math.Ceil(meters / metersPerMinute)
	// float64(math.MaxInt)会进位到2^63，超出int范围
	if minutes >= float64(math.MaxInt) {
		return math.MaxInt, nil
	}
	return int(minutes), nil
}

func MetersToMinutes(meters float64) (int, error) {
	return EstimateMinutes(meters, WALK_SPEED)
}

func MetersToDrivingMinutes(meters float64) (int, error) {
	return EstimateMinutes(meters, DRIVE_SPEED)
}
