package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/kowshikmeda/KabaddiBackend/internal/models"
	"github.com/kowshikmeda/KabaddiBackend/pkg/database"
)

type CommentaryRepository struct {
	db *database.DB
}

func NewCommentaryRepository(db *database.DB) *CommentaryRepository {
	return &CommentaryRepository{db: db}
}

// InsertTx appends a commentary line inside the score transaction.
func (r *CommentaryRepository) InsertTx(tx *sql.Tx, matchID, line string, createdAt time.Time) (*models.Commentary, error) {
	query := `
		INSERT INTO commentaries (match_id, commentary, created_at)
		VALUES ($1, $2, $3)
		RETURNING id, match_id, commentary, created_at
	`

	commentary := &models.Commentary{}
	err := tx.QueryRow(query, matchID, line, createdAt).Scan(
		&commentary.ID,
		&commentary.MatchID,
		&commentary.Commentary,
		&commentary.CreatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to insert commentary: %w", err)
	}

	return commentary, nil
}

// FindByMatchID lists a match's commentary, newest first.
func (r *CommentaryRepository) FindByMatchID(matchID string) ([]*models.Commentary, error) {
	query := `
		SELECT id, match_id, commentary, created_at
		FROM commentaries
		WHERE match_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query commentaries: %w", err)
	}
	defer rows.Close()

	commentaries := []*models.Commentary{}
	for rows.Next() {
		commentary := &models.Commentary{}
		err := rows.Scan(
			&commentary.ID,
			&commentary.MatchID,
			&commentary.Commentary,
			&commentary.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan commentary: %w", err)
		}
		commentaries = append(commentaries, commentary)
	}

	return commentaries, nil
}
