// Package boardpersist mirrors the latest sentiment artifact into
// Postgres so a web frontend can read it without filesystem access. The
// mirror holds only the newest snapshot, superseded in full on each run,
// the same lifecycle as the artifact file.
package boardpersist

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/zeromicro/go-zero/core/stores/sqlx"

	"marketmood/internal/artifact"
	"marketmood/internal/model"
)

// DefaultArtifactName keys the single mirrored row.
const DefaultArtifactName = "sentiment"

// Service persists the latest artifact. A nil Service is a no-op, so
// callers wire it unconditionally and skip nothing at the call site.
type Service struct {
	artifactsModel model.BoardArtifactsModel
	name           string
}

// Config enumerates dependencies required to mirror artifacts.
type Config struct {
	SQLConn        sqlx.SqlConn
	ArtifactsModel model.BoardArtifactsModel
	ArtifactName   string
}

// NewService wires an artifact mirror. Returns nil when the connection is
// missing.
func NewService(cfg Config) *Service {
	if cfg.SQLConn == nil {
		return nil
	}
	m := cfg.ArtifactsModel
	if m == nil {
		m = model.NewBoardArtifactsModel(cfg.SQLConn)
	}
	name := strings.TrimSpace(cfg.ArtifactName)
	if name == "" {
		name = DefaultArtifactName
	}
	return &Service{artifactsModel: m, name: name}
}

// RecordLatest upserts the artifact JSON into the mirror row.
func (s *Service) RecordLatest(ctx context.Context, art *artifact.Artifact) error {
	if s == nil || art == nil {
		return nil
	}
	payload, err := json.Marshal(art)
	if err != nil {
		return fmt.Errorf("boardpersist: encode artifact: %w", err)
	}
	row := &model.BoardArtifact{
		Name:       s.name,
		Payload:    string(payload),
		WeekEnding: art.Cot.WeekEnding,
	}
	if err := s.artifactsModel.Upsert(ctx, row); err != nil {
		return fmt.Errorf("boardpersist: upsert %s: %w", s.name, err)
	}
	return nil
}

// Latest loads the mirrored artifact, nil when no row exists yet.
func (s *Service) Latest(ctx context.Context) (*artifact.Artifact, error) {
	if s == nil {
		return nil, nil
	}
	row, err := s.artifactsModel.FindOneByName(ctx, s.name)
	if err != nil {
		if err == model.ErrNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("boardpersist: load %s: %w", s.name, err)
	}
	var art artifact.Artifact
	if err := json.Unmarshal([]byte(row.Payload), &art); err != nil {
		return nil, fmt.Errorf("boardpersist: decode %s: %w", s.name, err)
	}
	return &art, nil
}
