package main

import (
	"net/http"

	"github.com/athlonhq/backend/internal/middleware"
	"github.com/athlonhq/backend/pkg/prometheus"
	"github.com/athlonhq/backend/pkg/router"
	"github.com/athlonhq/backend/pkg/xcontext"
	"github.com/rs/cors"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	s.loadBaseContext()
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadTemplates()
	s.loadRedisClient()
	s.loadPublisher()
	s.loadRepos()
	s.loadDomains()

	cfg := xcontext.Configs(s.ctx)

	mux := http.NewServeMux()
	mux.Handle("/", s.loadRouter().Handler())
	mux.Handle("/metrics", prometheus.NewHandler())

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.ApiServer.AllowCORS,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowCredentials: true,
	})

	s.server = &http.Server{
		Addr:    cfg.ApiServer.Address(),
		Handler: c.Handler(mux),
	}

	xcontext.Logger(s.ctx).Infof("Starting api server on port %s", cfg.ApiServer.Port)
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}

	xcontext.Logger(s.ctx).Infof("Server stopped")
	return nil
}

func (s *srv) loadRouter() *router.Router {
	r := router.New(s.ctx)
	r.Before(middleware.WithStartTime())
	r.Before(middleware.ParseAccessToken(s.tokenEngine))
	r.AddCloser(middleware.Logger())
	r.AddCloser(middleware.Prometheus())

	// Public API.
	router.GET(r, "/getChallenge", s.challengeDomain.Get)
	router.GET(r, "/getListChallenge", s.challengeDomain.GetList)
	router.GET(r, "/getFeaturedChallenges", s.challengeDomain.GetFeatured)
	router.GET(r, "/getChallengeResults", s.challengeDomain.GetResults)
	router.GET(r, "/searchChallenge", s.challengeDomain.Search)
	router.GET(r, "/getSubmission", s.submissionDomain.Get)
	router.GET(r, "/getListSubmission", s.submissionDomain.GetList)
	router.GET(r, "/getLeaderboard", s.leaderboardDomain.GetLeaderboard)
	router.GET(r, "/getEvent", s.eventDomain.Get)
	router.GET(r, "/getListEvent", s.eventDomain.GetList)
	router.GET(r, "/getEventLeaderboard", s.eventDomain.GetLeaderboard)
	router.GET(r, "/getUser", s.userDomain.GetUser)

	// These following APIs need authentication.
	authRouter := r.Branch()
	authRouter.Before(middleware.Authenticate())
	{
		router.GET(authRouter, "/getMe", s.userDomain.GetMe)
		router.GET(authRouter, "/getEventRank", s.eventDomain.GetRank)
		router.POST(authRouter, "/submit", s.submissionDomain.Submit)
		router.POST(authRouter, "/participate", s.submissionDomain.Participate)
		router.POST(authRouter, "/vote", s.voteDomain.Vote)
	}

	// These following APIs are only for administrators.
	adminRouter := authRouter.Branch()
	adminRouter.Before(middleware.NewOnlyAdmin(s.userRepo).Middleware())
	{
		router.POST(adminRouter, "/createEvent", s.eventDomain.Create)
		router.POST(adminRouter, "/generateChallenges", s.challengeDomain.Generate)
		router.POST(adminRouter, "/activateChallenge", s.challengeDomain.Activate)
		router.POST(adminRouter, "/endChallenge", s.challengeDomain.End)
	}

	return r
}
