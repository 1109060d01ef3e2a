package scoring

import "math"

const (
	tappingMinTaps = 10

	tappingSpeedWeight       = 0.35
	tappingConsistencyWeight = 0.35
	tappingRhythmWeight      = 0.20
	tappingFatigueWeight     = 0.10
)

const tappingInsufficientMsg = "Not enough taps to analyze. Please tap for the full test duration."

// ScoreTapping converts a tap timestamp sequence into speed, consistency,
// rhythm and fatigue subscores. Timestamps are millisecond offsets from
// test start; durationSeconds is the fixed test length.
func ScoreTapping(tapTimestampsMs []int64, durationSeconds float64) (TappingResult, error) {
	if durationSeconds <= 0 {
		return TappingResult{}, invalidInput("tapping assessment requires a positive duration")
	}
	if len(tapTimestampsMs) == 0 {
		return TappingResult{}, invalidInput("tapping assessment requires at least one tap")
	}

	tapsPerSecond := float64(len(tapTimestampsMs)) / durationSeconds
	if len(tapTimestampsMs) < tappingMinTaps {
		return TappingResult{
			Status:        StatusInsufficientData,
			TapsPerSecond: round1(tapsPerSecond),
			RiskLevel:     RiskLow,
			Message:       tappingInsufficientMsg,
		}, nil
	}

	// Inter-tap intervals in milliseconds, derived from the integer
	// timestamps so a perfect metronome has exactly zero variance.
	intervals := make([]float64, 0, len(tapTimestampsMs)-1)
	for i := 1; i < len(tapTimestampsMs); i++ {
		intervals = append(intervals, float64(tapTimestampsMs[i]-tapTimestampsMs[i-1]))
	}

	speed := tapSpeedScore(tapsPerSecond)
	consistency := tapConsistencyScore(intervals)
	rhythm := tapRhythmScore(intervals)
	fatigue := tapFatigueScore(tapTimestampsMs, durationSeconds)

	overall := speed*tappingSpeedWeight +
		consistency*tappingConsistencyWeight +
		rhythm*tappingRhythmWeight +
		fatigue*tappingFatigueWeight

	return TappingResult{
		Status:           StatusOK,
		TapsPerSecond:    round1(tapsPerSecond),
		SpeedScore:       round1(speed),
		ConsistencyScore: round1(consistency),
		RhythmScore:      round1(rhythm),
		FatigueScore:     round1(fatigue),
		OverallScore:     round1(clamp(overall, 0, 100)),
		RiskLevel:        classifyRisk(overall, tappingLowCut, tappingHighCut),
	}, nil
}

// tapSpeedScore is a piecewise-linear ramp over taps per second. The
// knots (1.5, 3, 4.5, 6) come from normative finger-tapping rates.
func tapSpeedScore(tapsPerSecond float64) float64 {
	switch {
	case tapsPerSecond >= 6:
		return 100
	case tapsPerSecond > 4.5:
		return 80 + (tapsPerSecond-4.5)/1.5*20
	case tapsPerSecond > 3:
		return 60 + (tapsPerSecond-3)/1.5*20
	case tapsPerSecond > 1.5:
		return 30 + (tapsPerSecond-1.5)/1.5*30
	default:
		return math.Max(0, tapsPerSecond/1.5*30)
	}
}

func tapConsistencyScore(intervals []float64) float64 {
	if len(intervals) < 2 {
		return 50
	}
	m := mean(intervals)
	if m == 0 {
		return 50
	}
	cv := stddev(intervals) / m
	if math.IsNaN(cv) || math.IsInf(cv, 0) {
		return 50
	}
	return math.Max(0, 100-cv*100)
}

// tapRhythmScore uses lag-1 autocorrelation of the intervals as a
// regularity proxy. A zero-variance interval train is perfectly
// rhythmic.
func tapRhythmScore(intervals []float64) float64 {
	if len(intervals) < 3 {
		return 50
	}
	r, degenerate := autocorrLag1(intervals)
	if degenerate {
		return 100
	}
	return clamp((r+0.5)*100, 0, 100)
}

// tapFatigueScore compares mean inter-tap intervals between the two
// temporal halves of the test. Slowing down in the second half reads as
// fatigue.
func tapFatigueScore(tapTimestampsMs []int64, durationSeconds float64) float64 {
	midpointMs := durationSeconds * 1000 / 2

	var early, late []float64
	for _, t := range tapTimestampsMs {
		if float64(t) < midpointMs {
			early = append(early, float64(t))
		} else {
			late = append(late, float64(t))
		}
	}
	if len(early) < 5 || len(late) < 5 {
		return 100
	}

	earlyMean := mean(successiveDiffs(early))
	lateMean := mean(successiveDiffs(late))
	if earlyMean == 0 {
		return 100
	}

	percentIncrease := (lateMean - earlyMean) / earlyMean * 100
	if math.IsNaN(percentIncrease) || math.IsInf(percentIncrease, 0) {
		return 100
	}
	return clamp(100-percentIncrease, 0, 100)
}

func successiveDiffs(xs []float64) []float64 {
	if len(xs) < 2 {
		return nil
	}
	diffs := make([]float64, 0, len(xs)-1)
	for i := 1; i < len(xs); i++ {
		diffs = append(diffs, xs[i]-xs[i-1])
	}
	return diffs
}
