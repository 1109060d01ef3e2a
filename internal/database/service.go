package database

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tremorlab/motorscreen/internal/scoring"
)

// Service provides business logic over the assessment store
type Service struct {
	repo       *Repository
	jwtSecret  []byte
	sessionTTL time.Duration
}

// NewService creates a new assessment service
func NewService(repo *Repository, jwtSecret string, sessionTTL time.Duration) *Service {
	return &Service{
		repo:       repo,
		jwtSecret:  []byte(jwtSecret),
		sessionTTL: sessionTTL,
	}
}

// IdentifyClient resolves the anonymous user record for a client
func (s *Service) IdentifyClient(ipAddress, userAgent string) (*User, error) {
	user, err := s.repo.GetOrCreateUser(ipAddress, userAgent)
	if err != nil {
		return nil, fmt.Errorf("failed to identify client: %w", err)
	}
	return user, nil
}

// RecordAssessment persists a scored result for the given user
func (s *Service) RecordAssessment(userID string, result scoring.Result, status, recommendation string) (*Assessment, error) {
	assessment := NewAssessment(
		userID,
		result.Modality(),
		status,
		result.Subscores(),
		result.Overall(),
		string(result.Risk()),
		recommendation,
	)

	if err := s.repo.SaveAssessment(assessment); err != nil {
		return nil, err
	}

	return assessment, nil
}

// History returns a user's recent assessments
func (s *Service) History(userID, modality string, limit int) ([]Assessment, error) {
	return s.repo.GetAssessmentHistory(userID, modality, limit)
}

// GenerateSessionToken generates a JWT token for the user session
func (s *Service) GenerateSessionToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(s.sessionTTL).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, nil
}

// ValidateSessionToken validates a JWT token and returns the user ID
func (s *Service) ValidateSessionToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		userID, ok := claims["user_id"].(string)
		if !ok {
			return "", fmt.Errorf("user_id not found in token")
		}
		return userID, nil
	}

	return "", fmt.Errorf("invalid token")
}
