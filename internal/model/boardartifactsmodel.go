package model

import (
	"context"
	"time"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

// ErrNotFound is returned when a queried row does not exist.
var ErrNotFound = sqlx.ErrNotFound

var _ BoardArtifactsModel = (*defaultBoardArtifactsModel)(nil)

type (
	// BoardArtifactsModel mirrors the latest sentiment artifact into
	// Postgres, one row per artifact name. The file on disk stays the
	// source of truth; this table only serves frontends without
	// filesystem access.
	BoardArtifactsModel interface {
		Upsert(ctx context.Context, data *BoardArtifact) error
		FindOneByName(ctx context.Context, name string) (*BoardArtifact, error)
	}

	// BoardArtifact is one mirrored artifact row.
	BoardArtifact struct {
		Name       string    `db:"name"`
		Payload    string    `db:"payload"`
		WeekEnding string    `db:"week_ending"`
		UpdatedAt  time.Time `db:"updated_at"`
	}

	defaultBoardArtifactsModel struct {
		conn sqlx.SqlConn
	}
)

// NewBoardArtifactsModel returns a model for the board_artifacts table.
func NewBoardArtifactsModel(conn sqlx.SqlConn) BoardArtifactsModel {
	return &defaultBoardArtifactsModel{conn: conn}
}

// Upsert inserts or replaces the artifact row keyed by name.
func (m *defaultBoardArtifactsModel) Upsert(ctx context.Context, data *BoardArtifact) error {
	stmt := `
INSERT INTO public.board_artifacts (name, payload, week_ending, updated_at)
VALUES ($1, $2, $3, NOW())
ON CONFLICT (name) DO UPDATE SET
    payload = EXCLUDED.payload,
    week_ending = EXCLUDED.week_ending,
    updated_at = NOW();`
	_, err := m.conn.ExecCtx(ctx, stmt, data.Name, data.Payload, data.WeekEnding)
	return err
}

// FindOneByName loads the artifact row with the given name.
func (m *defaultBoardArtifactsModel) FindOneByName(ctx context.Context, name string) (*BoardArtifact, error) {
	stmt := `SELECT name, payload, week_ending, updated_at FROM public.board_artifacts WHERE name = $1 LIMIT 1`
	var row BoardArtifact
	err := m.conn.QueryRowCtx(ctx, &row, stmt, name)
	switch err {
	case nil:
		return &row, nil
	case sqlx.ErrNotFound:
		return nil, ErrNotFound
	default:
		return nil, err
	}
}
