package scoring

// TimestampedPoint is a single pointer sample from the spiral canvas.
// Insertion order is temporal order; duplicate timestamps are tolerated.
type TimestampedPoint struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	TimestampMs int64   `json:"timestampMs"`
}

// Status tags a result so callers can tell a genuine low score from a
// sparse-sample fallback.
type Status string

const (
	StatusOK               Status = "ok"
	StatusInsufficientData Status = "insufficient_data"
)

// RiskLevel is the three-band classification of an overall score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
)

// Voice qualitative categories, produced by an external classifier.
type (
	PitchQuality   string
	VolumeQuality  string
	ClarityQuality string
	VoiceTremor    string
)

const (
	PitchMonopitch PitchQuality = "monopitch"
	PitchVaried    PitchQuality = "varied"
	PitchNatural   PitchQuality = "natural"

	VolumeMonoloudness VolumeQuality = "monoloudness"
	VolumeTrailingOff  VolumeQuality = "trailing_off"
	VolumeConsistent   VolumeQuality = "consistent"

	ClaritySlurred   ClarityQuality = "slurred"
	ClarityImprecise ClarityQuality = "imprecise"
	ClarityCrisp     ClarityQuality = "crisp"

	VoiceTremorNone        VoiceTremor = "none"
	VoiceTremorSlight      VoiceTremor = "slight"
	VoiceTremorModerate    VoiceTremor = "moderate"
	VoiceTremorSignificant VoiceTremor = "significant"
)

// VoiceAssessment is the categorical output of the external voice
// classifier. The engine never sees raw audio.
type VoiceAssessment struct {
	Pitch   PitchQuality   `json:"pitch"`
	Volume  VolumeQuality  `json:"volume"`
	Clarity ClarityQuality `json:"clarity"`
	Tremor  VoiceTremor    `json:"tremor"`
}

// Result is the modality-independent view of a score result, handed to
// the recommendation generator and the persistence layer.
type Result interface {
	Modality() string
	Subscores() map[string]float64
	Overall() float64
	Risk() RiskLevel
}

// SpiralResult holds the spiral drawing subscores.
type SpiralResult struct {
	Status           Status    `json:"status"`
	TremorScore      float64   `json:"tremorScore"`
	SmoothnessScore  float64   `json:"smoothnessScore"`
	SpeedScore       float64   `json:"speedScore"`
	ConsistencyScore float64   `json:"consistencyScore"`
	OverallScore     float64   `json:"overallScore"`
	RiskLevel        RiskLevel `json:"riskLevel"`
	Recommendation   string    `json:"recommendation,omitempty"`
	Message          string    `json:"message,omitempty"`
}

func (r SpiralResult) Modality() string { return "spiral" }

func (r SpiralResult) Subscores() map[string]float64 {
	return map[string]float64{
		"tremor":      r.TremorScore,
		"smoothness":  r.SmoothnessScore,
		"speed":       r.SpeedScore,
		"consistency": r.ConsistencyScore,
	}
}

func (r SpiralResult) Overall() float64 { return r.OverallScore }
func (r SpiralResult) Risk() RiskLevel  { return r.RiskLevel }

// TappingResult holds the finger-tapping subscores.
type TappingResult struct {
	Status           Status    `json:"status"`
	TapsPerSecond    float64   `json:"tapsPerSecond"`
	SpeedScore       float64   `json:"speedScore"`
	ConsistencyScore float64   `json:"consistencyScore"`
	RhythmScore      float64   `json:"rhythmScore"`
	FatigueScore     float64   `json:"fatigueScore"`
	OverallScore     float64   `json:"overallScore"`
	RiskLevel        RiskLevel `json:"riskLevel"`
	Recommendation   string    `json:"recommendation,omitempty"`
	Message          string    `json:"message,omitempty"`
}

func (r TappingResult) Modality() string { return "tapping" }

func (r TappingResult) Subscores() map[string]float64 {
	return map[string]float64{
		"speed":       r.SpeedScore,
		"consistency": r.ConsistencyScore,
		"rhythm":      r.RhythmScore,
		"fatigue":     r.FatigueScore,
	}
}

func (r TappingResult) Overall() float64 { return r.OverallScore }
func (r TappingResult) Risk() RiskLevel  { return r.RiskLevel }

// ReactionResult holds the reaction-time subscores.
type ReactionResult struct {
	Status            Status    `json:"status"`
	AverageTimeMs     float64   `json:"averageTimeMs"`
	ReactionTimeScore float64   `json:"reactionTimeScore"`
	ConsistencyScore  float64   `json:"consistencyScore"`
	OverallScore      float64   `json:"overallScore"`
	RiskLevel         RiskLevel `json:"riskLevel"`
	Recommendation    string    `json:"recommendation,omitempty"`
	Message           string    `json:"message,omitempty"`
}

func (r ReactionResult) Modality() string { return "reaction" }

func (r ReactionResult) Subscores() map[string]float64 {
	return map[string]float64{
		"reaction_time": r.ReactionTimeScore,
		"consistency":   r.ConsistencyScore,
	}
}

func (r ReactionResult) Overall() float64 { return r.OverallScore }
func (r ReactionResult) Risk() RiskLevel  { return r.RiskLevel }

// VoiceResult holds the mapped vocal subscores. TremorScore follows the
// lookup table convention where higher means worse.
type VoiceResult struct {
	Status         Status    `json:"status"`
	PitchScore     float64   `json:"pitchScore"`
	VolumeScore    float64   `json:"volumeScore"`
	ClarityScore   float64   `json:"clarityScore"`
	TremorScore    float64   `json:"tremorScore"`
	OverallScore   float64   `json:"overallScore"`
	RiskLevel      RiskLevel `json:"riskLevel"`
	Recommendation string    `json:"recommendation,omitempty"`
	Message        string    `json:"message,omitempty"`
}

func (r VoiceResult) Modality() string { return "voice" }

func (r VoiceResult) Subscores() map[string]float64 {
	return map[string]float64{
		"pitch":   r.PitchScore,
		"volume":  r.VolumeScore,
		"clarity": r.ClarityScore,
		"tremor":  r.TremorScore,
	}
}

func (r VoiceResult) Overall() float64 { return r.OverallScore }
func (r VoiceResult) Risk() RiskLevel  { return r.RiskLevel }
