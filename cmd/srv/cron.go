package main

import (
	"github.com/athlonhq/backend/internal/domain/cron"
	"github.com/athlonhq/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startCron(*cli.Context) error {
	s.loadBaseContext()
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadPublisher()
	s.loadRepos()

	cronJobManager := cron.NewCronJobManager()
	cronJobManager.Register(cron.NewActivateChallengesCronJob(s.challengeRepo, s.publisher))
	cronJobManager.Start(s.ctx)

	return nil
}
