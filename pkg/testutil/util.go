package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/yatube-lab/backend/config"
	"github.com/yatube-lab/backend/internal/entity"
	"github.com/yatube-lab/backend/pkg/authenticator"
	"github.com/yatube-lab/backend/pkg/logger"
	"github.com/yatube-lab/backend/pkg/session"
	"github.com/yatube-lab/backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func MockConfigs() config.Configs {
	return config.Configs{
		Env: "test",
		ApiServer: config.APIServerConfigs{
			PageSize: 10,
		},
		Auth: config.AuthConfigs{
			TokenSecret: "secret",
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: time.Minute,
			},
			LoginURL: "/auth/login/",
		},
		Session: config.SessionConfigs{
			Secret: "session-secret",
			Name:   "yatube",
		},
		File: config.FileConfigs{
			MaxSize:       2,
			MaxImageWidth: 960,
		},
		Cache: config.CacheConfigs{
			Backend:  "memory",
			IndexTTL: 20 * 15 * time.Second,
		},
	}
}

// MockContext returns a context carrying every dependency a domain needs. The
// database is a private in-memory sqlite database with all tables migrated.
func MockContext() context.Context {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		panic(err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}

	cfg := MockConfigs()

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithSnowFlake(ctx, node)
	ctx = xcontext.WithTokenEngine(ctx, authenticator.NewTokenEngine(cfg.Auth.TokenSecret))
	ctx = xcontext.WithSessionStore(ctx, session.NewCookieStore(cfg.Session.Name, []byte(cfg.Session.Secret)))
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUserID(ctx context.Context, userID string) context.Context {
	return xcontext.WithRequestUserID(ctx, userID)
}
