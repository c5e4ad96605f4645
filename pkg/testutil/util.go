package testutil

import (
	"context"
	"time"

	"github.com/athlonhq/backend/config"
	"github.com/athlonhq/backend/migration"
	"github.com/athlonhq/backend/pkg/logger"
	"github.com/athlonhq/backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	cfg := config.Configs{
		ApiServer: config.APIServerConfigs{
			MaxLimit:     50,
			DefaultLimit: 10,
		},
		Auth: config.AuthConfigs{
			TokenSecret: "secret",
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: time.Minute,
			},
		},
		Challenge: config.ChallengeConfigs{
			LeadTime:         24 * time.Hour,
			Duration:         7 * 24 * time.Hour,
			StaggerDays:      2,
			MaxTypesPerEvent: 3,
			IndividualCap:    100,
			TeamCap:          50,
			BasePoints:       100,
			FeaturedCacheTTL: time.Minute,
		},
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithDB(ctx, db)

	if err := migration.AutoMigrate(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUserID(userID string) context.Context {
	return xcontext.WithRequestUserID(MockContext(), userID)
}
