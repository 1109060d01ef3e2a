package scoring

import "math"

const (
	reactionMinTrials = 3

	reactionTimingWeight      = 0.6
	reactionConsistencyWeight = 0.4

	// Linear-map anchors. 280/800 ms and 60/250 ms are the canonical
	// constants; the source history also carried a 250/750 variant.
	reactionFastMs  = 280.0
	reactionSlowMs  = 800.0
	reactionTightMs = 60.0
	reactionLooseMs = 250.0
)

const reactionInsufficientMsg = "Not enough reaction trials to analyze. Please complete at least 3 trials."

// ScoreReaction converts per-trial latencies into timing and consistency
// subscores.
func ScoreReaction(reactionTimesMs []int64) (ReactionResult, error) {
	if len(reactionTimesMs) == 0 {
		return ReactionResult{}, invalidInput("reaction assessment requires at least one trial")
	}
	if len(reactionTimesMs) < reactionMinTrials {
		return ReactionResult{
			Status:    StatusInsufficientData,
			RiskLevel: RiskLow,
			Message:   reactionInsufficientMsg,
		}, nil
	}

	times := make([]float64, len(reactionTimesMs))
	for i, t := range reactionTimesMs {
		times[i] = float64(t)
	}

	avg := mean(times)
	timing := clamp(100-(avg-reactionFastMs)/(reactionSlowMs-reactionFastMs)*100, 0, 100)

	sd := stddev(times)
	consistency := clamp(100-(sd-reactionTightMs)/(reactionLooseMs-reactionTightMs)*100, 0, 100)

	if math.IsNaN(timing) {
		timing = 0
	}
	if math.IsNaN(consistency) {
		consistency = 0
	}

	overall := timing*reactionTimingWeight + consistency*reactionConsistencyWeight

	return ReactionResult{
		Status:            StatusOK,
		AverageTimeMs:     round1(avg),
		ReactionTimeScore: round1(timing),
		ConsistencyScore:  round1(consistency),
		OverallScore:      round1(clamp(overall, 0, 100)),
		RiskLevel:         classifyRisk(overall, reactionLowCut, reactionHighCut),
	}, nil
}
