package types

import "github.com/tremorlab/motorscreen/internal/scoring"

// SpiralRequest is the raw spiral-drawing sample buffer from the canvas
// capture widget.
type SpiralRequest struct {
	Points []scoring.TimestampedPoint `json:"points" binding:"required"`
}

// TappingRequest is the raw tap buffer from the tap capture widget.
type TappingRequest struct {
	TapTimestampsMs []int64 `json:"tapTimestampsMs" binding:"required"`
	DurationSeconds float64 `json:"durationSeconds" binding:"required"`
}

// ReactionRequest is the per-trial latency buffer.
type ReactionRequest struct {
	ReactionTimesMs []int64 `json:"reactionTimesMs" binding:"required"`
}

// VoiceRequest carries the categorical labels produced by the external
// voice classifier.
type VoiceRequest struct {
	Pitch   string `json:"pitch" binding:"required"`
	Volume  string `json:"volume" binding:"required"`
	Clarity string `json:"clarity" binding:"required"`
	Tremor  string `json:"tremor" binding:"required"`
}

// Assessment converts the request into the scoring engine's input type.
func (r VoiceRequest) Assessment() scoring.VoiceAssessment {
	return scoring.VoiceAssessment{
		Pitch:   scoring.PitchQuality(r.Pitch),
		Volume:  scoring.VolumeQuality(r.Volume),
		Clarity: scoring.ClarityQuality(r.Clarity),
		Tremor:  scoring.VoiceTremor(r.Tremor),
	}
}
