// Package privacy handles anonymization and data deletion. Assessment
// results are health-adjacent data, so client IPs are never stored raw
// and users can erase everything tied to their identity.
package privacy

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/tremorlab/motorscreen/internal/database"
)

// PrivacyService handles data anonymization and privacy compliance
type PrivacyService struct {
	db   *database.DB
	salt string
}

// NewService creates a new privacy service. The salt keeps IP hashes
// from being reversible by dictionary lookup.
func NewService(db *database.DB, salt string) *PrivacyService {
	return &PrivacyService{db: db, salt: salt}
}

// AnonymizeIP returns the salted hash under which a client is stored
func (ps *PrivacyService) AnonymizeIP(ip string) string {
	hash := sha256.Sum256([]byte(ps.salt + ip))
	return hex.EncodeToString(hash[:])
}

// DeleteUserData removes a user and every assessment tied to them
func (ps *PrivacyService) DeleteUserData(userID string) (int64, error) {
	shortID := userID
	if len(shortID) > 8 {
		shortID = shortID[:8] + "..."
	}
	slog.Info("Initiating user data deletion", "user_id", shortID)

	result, err := ps.db.Exec("DELETE FROM assessments WHERE user_id = ?", userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete assessments: %w", err)
	}
	deleted, _ := result.RowsAffected()

	if _, err := ps.db.Exec("DELETE FROM users WHERE id = ?", userID); err != nil {
		return deleted, fmt.Errorf("failed to delete user: %w", err)
	}

	slog.Info("User data deleted", "user_id", shortID, "assessments_deleted", deleted)

	return deleted, nil
}
