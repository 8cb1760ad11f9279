// Package pricing holds the pure ride-cost and clock arithmetic. Costs are
// computed and aggregated on raw float64 values; RoundMoney is applied once
// at the display edge so rounding error never compounds across sums.
package pricing

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// Cost is the raw booking cost: rate per minute times duration. The result
// is the authoritative value for aggregation; round only for display.
func Cost(costPerMinute float64, durationMinutes int) float64 {
	return costPerMinute * float64(durationMinutes)
}

// RoundMoney rounds to 2 decimal places, half up.
func RoundMoney(x float64) float64 {
	return math.Round(x*100) / 100
}

// ParseClock converts an "HH:MM" string to minutes past midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("malformed time %q, want HH:MM", s)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("malformed time %q, want HH:MM", s)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("malformed time %q, want HH:MM", s)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("time %q out of range", s)
	}
	return hours*60 + minutes, nil
}

// FormatClock converts minutes past midnight back to "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// EndTime adds durationMinutes to an "HH:MM" start time with minute-of-day
// wraparound: 23:45 + 30 -> 00:15. Durations of a full day or more wrap as
// many times as needed.
func EndTime(start string, durationMinutes int) (string, error) {
	startMinutes, err := ParseClock(start)
	if err != nil {
		return "", err
	}
	end := (startMinutes + durationMinutes) % minutesPerDay
	if end < 0 {
		end += minutesPerDay
	}
	return FormatClock(end), nil
}

// UsageStats aggregates a set of rides. Averages are 0 when the set is
// empty, never NaN.
type UsageStats struct {
	Rides        int     `json:"rides"`
	TotalCost    float64 `json:"total_cost"`
	TotalMinutes int     `json:"total_minutes"`
	AvgCost      float64 `json:"avg_cost"`
	AvgMinutes   float64 `json:"avg_minutes"`
}

// Stats sums costs and durations and derives the averages. The two slices
// are expected to be parallel; extra entries in the longer one are ignored.
func Stats(costs []float64, durations []int) UsageStats {
	n := len(costs)
	if len(durations) < n {
		n = len(durations)
	}
	stats := UsageStats{Rides: n}
	for i := 0; i < n; i++ {
		stats.TotalCost += costs[i]
		stats.TotalMinutes += durations[i]
	}
	if n > 0 {
		stats.AvgCost = stats.TotalCost / float64(n)
		stats.AvgMinutes = float64(stats.TotalMinutes) / float64(n)
	}
	return stats
}
