package domain

import "time"

const (
	DefaultMaxDailySteps  = 60000
	DefaultVariationRatio = 0.05

	minutesPerDay = 24 * 60
)

// ReferenceZone is the UTC+8 offset all dates and step curves are pinned to.
var ReferenceZone = time.FixedZone("CST", 8*60*60)

type StepConfig struct {
	MaxDailySteps  int
	VariationRatio float64
}

func DefaultStepConfig() StepConfig {
	return StepConfig{
		MaxDailySteps:  DefaultMaxDailySteps,
		VariationRatio: DefaultVariationRatio,
	}
}

// StepRange is the closed interval a submitted step count is drawn from.
type StepRange struct {
	Low  int
	High int
}

// IsEmpty reports whether the range collapsed to [0, 0] and the run should be skipped.
func (r StepRange) IsEmpty() bool {
	return r.High <= 0
}

func (r StepRange) Contains(steps int) bool {
	return steps >= r.Low && steps <= r.High
}

func MinuteOfDay(now time.Time) int {
	local := now.In(ReferenceZone)
	return local.Hour()*60 + local.Minute()
}

// BaseSteps grows linearly with the minute of the day, reaching maxDailySteps at midnight.
func BaseSteps(minuteOfDay int, maxDailySteps int) int {
	if minuteOfDay <= 0 || maxDailySteps <= 0 {
		return 0
	}

	return maxDailySteps * minuteOfDay / minutesPerDay
}

func GenerateStepRange(now time.Time, cfg StepConfig) StepRange {
	base := BaseSteps(MinuteOfDay(now), cfg.MaxDailySteps)
	variation := int(float64(base) * cfg.VariationRatio)

	low := base - variation
	if low < 0 {
		low = 0
	}

	return StepRange{Low: low, High: base + variation}
}
