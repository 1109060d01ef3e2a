package scoring

import "github.com/ZanzyTHEbar/errbuilder-go"

// Risk band cuts per modality. The source history carried two variants
// (50/70 and 50/75); these are the canonical picks, kept in one place so
// a revision is a one-line change.
const (
	spiralLowCut    = 50.0
	spiralHighCut   = 75.0
	tappingLowCut   = 50.0
	tappingHighCut  = 70.0
	reactionLowCut  = 50.0
	reactionHighCut = 70.0
	voiceLowCut     = 50.0
	voiceHighCut    = 75.0
)

// classifyRisk applies the shared three-band thresholding. Both cuts are
// inclusive on the higher band: overall >= highCut is low risk,
// overall >= lowCut is moderate, anything below is high.
func classifyRisk(overall, lowCut, highCut float64) RiskLevel {
	switch {
	case overall >= highCut:
		return RiskLow
	case overall >= lowCut:
		return RiskModerate
	default:
		return RiskHigh
	}
}

// invalidInput builds a precondition-violation error, distinct from the
// InsufficientData result path.
func invalidInput(msg string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(msg)
}
