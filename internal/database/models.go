package database

import (
	"time"

	"github.com/google/uuid"
)

// User represents an anonymous device identity keyed by client IP
type User struct {
	ID        string    `json:"id" db:"id"`
	IPAddress string    `json:"-" db:"ip_address"`
	UserAgent string    `json:"-" db:"user_agent"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Assessment is a persisted scoring outcome for one modality
type Assessment struct {
	ID             string             `json:"id" db:"id"`
	UserID         string             `json:"user_id" db:"user_id"`
	Modality       string             `json:"modality" db:"modality"`
	Status         string             `json:"status" db:"status"`
	Subscores      map[string]float64 `json:"subscores"`
	OverallScore   float64            `json:"overallScore" db:"overall_score"`
	RiskLevel      string             `json:"riskLevel" db:"risk_level"`
	Recommendation string             `json:"recommendation,omitempty" db:"recommendation"`
	CreatedAt      time.Time          `json:"created_at" db:"created_at"`
}

// NewUser creates a new user with generated ID
func NewUser(ipAddress, userAgent string) *User {
	now := time.Now()
	return &User{
		ID:        uuid.New().String(),
		IPAddress: ipAddress,
		UserAgent: userAgent,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewAssessment creates an assessment record with generated ID
func NewAssessment(userID, modality, status string, subscores map[string]float64, overall float64, riskLevel, recommendation string) *Assessment {
	return &Assessment{
		ID:             uuid.New().String(),
		UserID:         userID,
		Modality:       modality,
		Status:         status,
		Subscores:      subscores,
		OverallScore:   overall,
		RiskLevel:      riskLevel,
		Recommendation: recommendation,
		CreatedAt:      time.Now(),
	}
}
