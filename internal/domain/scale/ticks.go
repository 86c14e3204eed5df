package scale

import (
	"math"
	"sort"
	"time"
)

// Thresholds for picking 10, 5 or 2 as the leading digit of a tick step.
var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// durationIntervals is the ladder of tick intervals for elapsed time.
var durationIntervals = []time.Duration{
	time.Second,
	5 * time.Second,
	15 * time.Second,
	30 * time.Second,
	time.Minute,
	5 * time.Minute,
	15 * time.Minute,
	30 * time.Minute,
	time.Hour,
	3 * time.Hour,
	6 * time.Hour,
	12 * time.Hour,
}

// TickStep returns a 1, 2 or 5 times a power of ten step that splits
// [start, stop] into roughly count intervals.
func TickStep(start, stop float64, count int) float64 {
	if count <= 0 || stop == start {
		return 0
	}
	step := math.Abs(stop-start) / float64(count)
	power := math.Floor(math.Log10(step))
	return leadingFactor(step/math.Pow(10, power)) * math.Pow(10, power)
}

func leadingFactor(errRatio float64) float64 {
	switch {
	case errRatio >= e10:
		return 10
	case errRatio >= e5:
		return 5
	case errRatio >= e2:
		return 2
	default:
		return 1
	}
}

// Ticks returns the multiples of TickStep inside [start, stop], ascending.
func Ticks(start, stop float64, count int) []float64 {
	if start > stop {
		start, stop = stop, start
	}
	if start == stop {
		return []float64{start}
	}
	step := TickStep(start, stop, count)
	if step == 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return nil
	}
	power := math.Floor(math.Log10(step))
	var ticks []float64
	if power >= 0 {
		i0 := math.Ceil(start / step)
		i1 := math.Floor(stop / step)
		for i := i0; i <= i1; i++ {
			ticks = append(ticks, i*step)
		}
		return ticks
	}
	// Divide by the inverse step to keep fractional ticks exact.
	inv := 1 / step
	i0 := math.Ceil(start * inv)
	i1 := math.Floor(stop * inv)
	for i := i0; i <= i1; i++ {
		ticks = append(ticks, i/inv)
	}
	return ticks
}

// YearTicks returns the years to label between minYear and maxYear.
// The step is never below one year.
func YearTicks(minYear, maxYear, count int) []int {
	if minYear > maxYear {
		minYear, maxYear = maxYear, minYear
	}
	if minYear == maxYear {
		return []int{minYear}
	}
	step := int(TickStep(float64(minYear), float64(maxYear), count))
	if step < 1 {
		step = 1
	}
	first := minYear
	if rem := first % step; rem != 0 {
		first += step - rem
	}
	var years []int
	for y := first; y <= maxYear; y += step {
		years = append(years, y)
	}
	return years
}

// DurationStep picks the interval from the duration ladder closest to
// splitting [from, to] into count parts.
func DurationStep(from, to time.Duration, count int) time.Duration {
	if to < from {
		from, to = to, from
	}
	if count <= 0 {
		count = 1
	}
	target := float64(to-from) / float64(count)
	i := sort.Search(len(durationIntervals), func(i int) bool {
		return float64(durationIntervals[i]) > target
	})
	switch {
	case i == 0:
		return durationIntervals[0]
	case i == len(durationIntervals):
		hours := TickStep(0, (to - from).Hours(), count)
		return time.Duration(hours * float64(time.Hour))
	}
	lo, hi := durationIntervals[i-1], durationIntervals[i]
	if target/float64(lo) < float64(hi)/target {
		return lo
	}
	return hi
}

// DurationTicks returns the multiples of DurationStep inside [from, to], ascending.
func DurationTicks(from, to time.Duration, count int) []time.Duration {
	if to < from {
		from, to = to, from
	}
	if from == to {
		return []time.Duration{from}
	}
	step := DurationStep(from, to, count)
	if step <= 0 {
		return nil
	}
	first := from
	if rem := first % step; rem != 0 {
		first += step - rem
	}
	var ticks []time.Duration
	for d := first; d <= to; d += step {
		ticks = append(ticks, d)
	}
	return ticks
}
