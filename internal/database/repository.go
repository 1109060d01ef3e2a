package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Repository handles database operations
type Repository struct {
	db *DB
}

// NewRepository creates a new repository
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// GetOrCreateUser gets an existing user or creates a new one based on IP address
func (r *Repository) GetOrCreateUser(ipAddress, userAgent string) (*User, error) {
	stmt, err := r.db.GetPreparedStatement("get_user_by_ip")
	if err != nil {
		return nil, err
	}

	var user User
	err = stmt.QueryRow(ipAddress).Scan(
		&user.ID, &user.IPAddress, &user.UserAgent,
		&user.CreatedAt, &user.UpdatedAt,
	)

	if err == nil {
		_, err = r.db.Exec(`
			UPDATE users SET updated_at = ?, user_agent = ? WHERE id = ?
		`, time.Now(), userAgent, user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
		return &user, nil
	}

	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	user = *NewUser(ipAddress, userAgent)

	insert, err := r.db.GetPreparedStatement("insert_user")
	if err != nil {
		return nil, err
	}
	if _, err := insert.Exec(user.ID, user.IPAddress, user.UserAgent, user.CreatedAt, user.UpdatedAt); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// SaveAssessment persists a scored assessment
func (r *Repository) SaveAssessment(a *Assessment) error {
	subscores, err := json.Marshal(a.Subscores)
	if err != nil {
		return fmt.Errorf("failed to encode subscores: %w", err)
	}

	stmt, err := r.db.GetPreparedStatement("insert_assessment")
	if err != nil {
		return err
	}

	_, err = stmt.Exec(
		a.ID, a.UserID, a.Modality, a.Status, string(subscores),
		a.OverallScore, a.RiskLevel, a.Recommendation, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save assessment: %w", err)
	}

	return nil
}

// GetAssessmentHistory returns a user's most recent assessments, optionally
// filtered by modality. Limit is capped to keep the response bounded.
func (r *Repository) GetAssessmentHistory(userID, modality string, limit int) ([]Assessment, error) {
	const maxLimit = 100
	if limit <= 0 || limit > maxLimit {
		limit = maxLimit
	}

	var (
		rows *sql.Rows
		err  error
	)
	if modality == "" {
		stmt, stmtErr := r.db.GetPreparedStatement("get_assessments")
		if stmtErr != nil {
			return nil, stmtErr
		}
		rows, err = stmt.Query(userID, limit)
	} else {
		stmt, stmtErr := r.db.GetPreparedStatement("get_assessments_by_modality")
		if stmtErr != nil {
			return nil, stmtErr
		}
		rows, err = stmt.Query(userID, modality, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query assessments: %w", err)
	}
	defer rows.Close()

	assessments := make([]Assessment, 0, limit)
	for rows.Next() {
		var (
			a         Assessment
			subscores string
			rec       sql.NullString
		)
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.Modality, &a.Status, &subscores,
			&a.OverallScore, &a.RiskLevel, &rec, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan assessment: %w", err)
		}
		if err := json.Unmarshal([]byte(subscores), &a.Subscores); err != nil {
			return nil, fmt.Errorf("failed to decode subscores: %w", err)
		}
		a.Recommendation = rec.String
		assessments = append(assessments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assessments: %w", err)
	}

	return assessments, nil
}

// CountAssessments returns the total number of stored assessments for a user
func (r *Repository) CountAssessments(userID string) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM assessments WHERE user_id = ?`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count assessments: %w", err)
	}
	return count, nil
}
