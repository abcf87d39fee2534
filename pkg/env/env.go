package env

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

type Error struct {
	Name string
}

func (e *Error) Error() string {
	return fmt.Sprintf("unable to access environment variable: %s", e.Name)
}

type ConversionError struct {
	Name string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("unable to convert environment variable: %s", e.Name)
}

// ParseDuration accepts either a Go duration string or a bare number of
// seconds. Negative values are turned positive.
func ParseDuration(s string) (time.Duration, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(math.Abs(float64(n))) * time.Second, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("unable to parse duration: %w", err)
	}
	if d < 0 {
		d = -d
	}

	return d, nil
}
