package svc

import (
	"log"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx driver
	"github.com/zeromicro/go-zero/core/stores/sqlx"

	"marketmood/internal/config"
	"marketmood/internal/model"
	boardpersist "marketmood/internal/persistence/board"
	"marketmood/internal/runlog"
	feedpkg "marketmood/pkg/feed"
	_ "marketmood/pkg/feed/sources/cftc"
	_ "marketmood/pkg/feed/sources/datalink"
	_ "marketmood/pkg/feed/sources/file"
)

type ServiceContext struct {
	Config *config.Config

	FeedConfig      *feedpkg.Config
	FeedProviders   map[string]feedpkg.Provider
	DefaultProvider feedpkg.Provider

	RunLog *runlog.Writer

	// Optional Postgres mirror of the latest artifact.
	DBConn              sqlx.SqlConn
	BoardArtifactsModel model.BoardArtifactsModel
	Board               *boardpersist.Service
}

func NewServiceContext(c *config.Config) *ServiceContext {
	svc := &ServiceContext{Config: c}

	feedCfg := c.Feed.Value
	if feedCfg == nil {
		feedCfg = feedpkg.MustLoad()
	}
	providers, err := feedCfg.BuildProviders()
	if err != nil {
		log.Fatalf("failed to build feed providers: %v", err)
	}
	svc.FeedConfig = feedCfg
	svc.FeedProviders = providers
	svc.DefaultProvider = providers[feedCfg.Default]
	if svc.DefaultProvider == nil {
		log.Fatalf("default feed provider %q not found", feedCfg.Default)
	}

	if c.RunLogDir != "" {
		svc.RunLog = runlog.NewWriter(c.RunLogDir)
	}

	// Only wire the mirror when a DSN is provided; the artifact file is
	// the source of truth either way.
	if c.Postgres.DSN != "" {
		conn := sqlx.NewSqlConn("pgx", c.Postgres.DSN)
		svc.DBConn = conn
		svc.BoardArtifactsModel = model.NewBoardArtifactsModel(conn)
		svc.Board = boardpersist.NewService(boardpersist.Config{
			SQLConn:        conn,
			ArtifactsModel: svc.BoardArtifactsModel,
		})
	}
	return svc
}
