package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreVoice(t *testing.T) {
	tests := []struct {
		name        string
		assessment  VoiceAssessment
		wantOverall float64
		wantRisk    RiskLevel
	}{
		{
			name: "healthy voice",
			assessment: VoiceAssessment{
				Pitch:   PitchNatural,
				Volume:  VolumeConsistent,
				Clarity: ClarityCrisp,
				Tremor:  VoiceTremorNone,
			},
			// 95*0.4 + 95*0.25 + 95*0.2 + (100-5)*0.15
			wantOverall: 95,
			wantRisk:    RiskLow,
		},
		{
			name: "severely impaired voice",
			assessment: VoiceAssessment{
				Pitch:   PitchMonopitch,
				Volume:  VolumeMonoloudness,
				Clarity: ClaritySlurred,
				Tremor:  VoiceTremorSignificant,
			},
			// 20*0.4 + 25*0.25 + 20*0.2 + (100-90)*0.15
			wantOverall: 19.8,
			wantRisk:    RiskHigh,
		},
		{
			name: "mixed presentation",
			assessment: VoiceAssessment{
				Pitch:   PitchVaried,
				Volume:  VolumeTrailingOff,
				Clarity: ClarityImprecise,
				Tremor:  VoiceTremorSlight,
			},
			// 60*0.4 + 50*0.25 + 70*0.2 + (100-30)*0.15
			wantOverall: 61,
			wantRisk:    RiskModerate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ScoreVoice(tt.assessment)
			require.NoError(t, err)

			assert.Equal(t, StatusOK, result.Status)
			assert.InDelta(t, tt.wantOverall, result.OverallScore, 0.05)
			assert.Equal(t, tt.wantRisk, result.RiskLevel)
		})
	}
}

func TestScoreVoice_SubscoresMatchTables(t *testing.T) {
	result, err := ScoreVoice(VoiceAssessment{
		Pitch:   PitchVaried,
		Volume:  VolumeConsistent,
		Clarity: ClaritySlurred,
		Tremor:  VoiceTremorModerate,
	})
	require.NoError(t, err)

	assert.Equal(t, 70.0, result.PitchScore)
	assert.Equal(t, 95.0, result.VolumeScore)
	assert.Equal(t, 20.0, result.ClarityScore)
	assert.Equal(t, 65.0, result.TremorScore)
}

func TestScoreVoice_UnknownLabels(t *testing.T) {
	valid := VoiceAssessment{
		Pitch:   PitchNatural,
		Volume:  VolumeConsistent,
		Clarity: ClarityCrisp,
		Tremor:  VoiceTremorNone,
	}

	tests := []struct {
		name   string
		mutate func(*VoiceAssessment)
	}{
		{"bad pitch", func(a *VoiceAssessment) { a.Pitch = "falsetto" }},
		{"bad volume", func(a *VoiceAssessment) { a.Volume = "loud" }},
		{"bad clarity", func(a *VoiceAssessment) { a.Clarity = "muddy" }},
		{"bad tremor", func(a *VoiceAssessment) { a.Tremor = "extreme" }},
		{"empty fields", func(a *VoiceAssessment) { *a = VoiceAssessment{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := valid
			tt.mutate(&a)
			_, err := ScoreVoice(a)
			assert.Error(t, err)
		})
	}
}

func TestVoiceWeightsSumToOne(t *testing.T) {
	total := voiceClarityWeight + voiceVolumeWeight + voicePitchWeight + voiceTremorWeight
	assert.InDelta(t, 1.0, total, 1e-10)
}
