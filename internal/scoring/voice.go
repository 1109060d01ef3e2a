package scoring

const (
	voiceClarityWeight = 0.40
	voiceVolumeWeight  = 0.25
	voicePitchWeight   = 0.20
	voiceTremorWeight  = 0.15
)

// Fixed lookup tables mapping qualitative labels to subscores. Higher is
// better, except tremor where higher means worse.
var (
	pitchScores = map[PitchQuality]float64{
		PitchMonopitch: 20,
		PitchVaried:    70,
		PitchNatural:   95,
	}
	volumeScores = map[VolumeQuality]float64{
		VolumeMonoloudness: 25,
		VolumeTrailingOff:  50,
		VolumeConsistent:   95,
	}
	clarityScores = map[ClarityQuality]float64{
		ClaritySlurred:   20,
		ClarityImprecise: 60,
		ClarityCrisp:     95,
	}
	voiceTremorScores = map[VoiceTremor]float64{
		VoiceTremorNone:        5,
		VoiceTremorSlight:      30,
		VoiceTremorModerate:    65,
		VoiceTremorSignificant: 90,
	}
)

// ScoreVoice maps an externally supplied categorical assessment to
// numeric subscores via the fixed lookup tables. Unknown labels are a
// precondition violation, not a zeroed result.
func ScoreVoice(assessment VoiceAssessment) (VoiceResult, error) {
	pitch, ok := pitchScores[assessment.Pitch]
	if !ok {
		return VoiceResult{}, invalidInput("unknown pitch label: " + string(assessment.Pitch))
	}
	volume, ok := volumeScores[assessment.Volume]
	if !ok {
		return VoiceResult{}, invalidInput("unknown volume label: " + string(assessment.Volume))
	}
	clarity, ok := clarityScores[assessment.Clarity]
	if !ok {
		return VoiceResult{}, invalidInput("unknown clarity label: " + string(assessment.Clarity))
	}
	tremor, ok := voiceTremorScores[assessment.Tremor]
	if !ok {
		return VoiceResult{}, invalidInput("unknown tremor label: " + string(assessment.Tremor))
	}

	overall := clarity*voiceClarityWeight +
		volume*voiceVolumeWeight +
		pitch*voicePitchWeight +
		(100-tremor)*voiceTremorWeight

	return VoiceResult{
		Status:       StatusOK,
		PitchScore:   pitch,
		VolumeScore:  volume,
		ClarityScore: clarity,
		TremorScore:  tremor,
		OverallScore: round1(clamp(overall, 0, 100)),
		RiskLevel:    classifyRisk(overall, voiceLowCut, voiceHighCut),
	}, nil
}
