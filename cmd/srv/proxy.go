package main

import (
	"net/http"

	"github.com/athlonhq/backend/internal/domain"
	"github.com/athlonhq/backend/internal/middleware"
	"github.com/athlonhq/backend/internal/model"
	"github.com/athlonhq/backend/pkg/kafka"
	"github.com/athlonhq/backend/pkg/router"
	"github.com/athlonhq/backend/pkg/ws"
	"github.com/athlonhq/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startWsProxy(*cli.Context) error {
	s.loadBaseContext()
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadRepos()

	s.hub = ws.NewHub()
	s.wsProxyDomain = domain.NewWsProxyDomain(
		s.challengeRepo, s.submissionRepo, s.participantRepo, s.hub)

	s.subscriber = kafka.NewSubscriber(
		"ws-proxy",
		[]string{xcontext.Configs(s.ctx).Kafka.Addr},
		[]string{model.ChallengeChangeTopic},
		s.wsProxyDomain.OnChallengeChanged,
	)
	s.subscriber.Subscribe(s.ctx)
	defer s.subscriber.Stop(s.ctx)

	r := router.New(s.ctx)
	r.Before(middleware.WithStartTime())
	router.Raw(r, "/subscribe", s.wsProxyDomain.ServeSubscriber)

	cfg := xcontext.Configs(s.ctx)
	s.server = &http.Server{
		Addr:    cfg.WsProxyServer.Address(),
		Handler: r.Handler(),
	}

	xcontext.Logger(s.ctx).Infof("Starting ws proxy server on port %s", cfg.WsProxyServer.Port)
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}

	xcontext.Logger(s.ctx).Infof("Server stopped")
	return nil
}
