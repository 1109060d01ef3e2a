// Package recommend produces the advisory text attached to assessment
// results. Recommendations are best-effort: a generator failure never
// invalidates a scored result.
package recommend

import (
	"context"
	"errors"

	"github.com/tremorlab/motorscreen/internal/scoring"
)

// ErrUnavailable is returned when no recommendation can be produced.
var ErrUnavailable = errors.New("recommendation generator unavailable")

// Generator produces advisory text for a scored assessment. It receives
// the full subscore vector and overall score so an implementation backed
// by a remote service can tailor the text; the template generator keys
// only on modality and risk.
type Generator interface {
	Recommend(ctx context.Context, modality string, subscores map[string]float64, overall float64, risk scoring.RiskLevel) (string, error)
}

// TemplateGenerator serves static per-risk templates. It never fails.
type TemplateGenerator struct{}

// NewTemplateGenerator creates the default generator
func NewTemplateGenerator() *TemplateGenerator {
	return &TemplateGenerator{}
}

var templates = map[scoring.RiskLevel]map[string]string{
	scoring.RiskLow: {
		"spiral":   "Your drawing control looks steady. Keep up regular self-checks.",
		"tapping":  "Your tapping speed and rhythm are within the expected range.",
		"reaction": "Your reaction times look typical. No follow-up needed right now.",
		"voice":    "Your voice qualities are within the expected range.",
	},
	scoring.RiskModerate: {
		"spiral":   "Some irregularity showed up in your drawing. Consider repeating the test when rested, and mention it at your next check-up.",
		"tapping":  "Your tapping showed some inconsistency. Repeat the test at a different time of day and track whether it persists.",
		"reaction": "Your reaction times were slower or more variable than typical. Re-test when alert and discuss persistent results with a clinician.",
		"voice":    "Some voice changes were detected. Consider repeating the test and mentioning the result to a clinician.",
	},
	scoring.RiskHigh: {
		"spiral":   "Your drawing showed notable tremor or irregularity. This tool is not a diagnosis, but we recommend discussing these results with a healthcare professional.",
		"tapping":  "Your tapping pattern showed marked slowing or irregularity. We recommend sharing these results with a healthcare professional.",
		"reaction": "Your reaction times were well outside the typical range. We recommend discussing these results with a healthcare professional.",
		"voice":    "Notable voice changes were detected. We recommend discussing these results with a healthcare professional.",
	},
}

// Recommend returns the template for the modality and risk level.
func (g *TemplateGenerator) Recommend(_ context.Context, modality string, _ map[string]float64, _ float64, risk scoring.RiskLevel) (string, error) {
	byModality, ok := templates[risk]
	if !ok {
		return "", ErrUnavailable
	}
	text, ok := byModality[modality]
	if !ok {
		return "", ErrUnavailable
	}
	return text, nil
}
