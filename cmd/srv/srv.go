package main

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/athlonhq/backend/config"
	"github.com/athlonhq/backend/internal/domain"
	"github.com/athlonhq/backend/internal/domain/search"
	"github.com/athlonhq/backend/internal/domain/statistic"
	"github.com/athlonhq/backend/internal/model"
	"github.com/athlonhq/backend/internal/repository"
	"github.com/athlonhq/backend/migration"
	"github.com/athlonhq/backend/pkg/authenticator"
	"github.com/athlonhq/backend/pkg/kafka"
	"github.com/athlonhq/backend/pkg/logger"
	"github.com/athlonhq/backend/pkg/pubsub"
	"github.com/athlonhq/backend/pkg/ws"
	"github.com/athlonhq/backend/pkg/xcontext"
	"github.com/athlonhq/backend/pkg/xredis"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App
	ctx context.Context

	userRepo        repository.UserRepository
	eventRepo       repository.EventRepository
	challengeRepo   repository.ChallengeRepository
	participantRepo repository.ParticipantRepository
	submissionRepo  repository.SubmissionRepository
	voteRepo        repository.VoteRepository
	resultRepo      repository.ResultRepository

	userDomain        domain.UserDomain
	eventDomain       domain.EventDomain
	challengeDomain   domain.ChallengeDomain
	submissionDomain  domain.SubmissionDomain
	voteDomain        domain.VoteDomain
	leaderboardDomain domain.LeaderboardDomain
	wsProxyDomain     domain.WsProxyDomain

	templates   config.ChallengeTemplates
	leaderboard statistic.Leaderboard

	tokenEngine  authenticator.TokenEngine[model.AccessTokenClaims]
	searchCaller search.Caller
	redisClient  xredis.Client
	publisher    pubsub.Publisher
	subscriber   pubsub.Subscriber
	hub          *ws.Hub

	server *http.Server
}

func (s *srv) loadConfig() config.Configs {
	return config.Configs{
		Env: getEnv("ENV", "local"),
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "mysql"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			User:     getEnv("MYSQL_USER", "mysql"),
			Password: getEnv("MYSQL_PASSWORD", "mysql"),
			Database: getEnv("MYSQL_DATABASE", "athlon"),
			LogLevel: getEnv("DATABASE_LOG_LEVEL", "error"),
		},
		ApiServer: config.APIServerConfigs{
			ServerConfigs: config.ServerConfigs{
				Host:      getEnv("API_HOST", "localhost"),
				Port:      getEnv("API_PORT", "8080"),
				AllowCORS: []string{getEnv("API_ALLOW_CORS", "http://localhost:3000")},
			},
			MaxLimit:     getEnvAsInt("API_MAX_LIMIT", 50),
			DefaultLimit: getEnvAsInt("API_DEFAULT_LIMIT", 10),
		},
		WsProxyServer: config.ServerConfigs{
			Host:      getEnv("WS_PROXY_HOST", "localhost"),
			Port:      getEnv("WS_PROXY_PORT", "8081"),
			AllowCORS: []string{getEnv("API_ALLOW_CORS", "http://localhost:3000")},
		},
		SearchServer: config.SearchConfigs{
			IndexDir: getEnv("SEARCH_INDEX_DIR", "searchindex"),
		},
		Auth: config.AuthConfigs{
			TokenSecret: getEnv("TOKEN_SECRET", "token_secret"),
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: getEnvAsDuration("ACCESS_TOKEN_DURATION", "24h"),
			},
		},
		Redis: config.RedisConfigs{
			Addr: getEnv("REDIS_ADDRESS", "localhost:6379"),
		},
		Kafka: config.KafkaConfigs{
			Addr: getEnv("KAFKA_ADDRESS", "localhost:9092"),
		},
		Challenge: config.ChallengeConfigs{
			LeadTime:         getEnvAsDuration("CHALLENGE_LEAD_TIME", "24h"),
			Duration:         getEnvAsDuration("CHALLENGE_DURATION", "168h"),
			StaggerDays:      getEnvAsInt("CHALLENGE_STAGGER_DAYS", 2),
			MaxTypesPerEvent: getEnvAsInt("CHALLENGE_MAX_TYPES_PER_EVENT", 3),
			IndividualCap:    getEnvAsInt("CHALLENGE_INDIVIDUAL_CAP", 100),
			TeamCap:          getEnvAsInt("CHALLENGE_TEAM_CAP", 50),
			BasePoints:       uint64(getEnvAsInt("CHALLENGE_BASE_POINTS", 100)),
			TemplatePath:     getEnv("CHALLENGE_TEMPLATE_PATH", ""),
			FeaturedCacheTTL: getEnvAsDuration("FEATURED_CACHE_TTL", "1m"),
		},
	}
}

func (s *srv) loadBaseContext() {
	configs := s.loadConfig()

	logLevel := logger.INFO
	if configs.Env == "local" {
		logLevel = logger.DEBUG
	}

	s.ctx = context.Background()
	s.ctx = xcontext.WithConfigs(s.ctx, configs)
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(logLevel))
}

func (s *srv) newDatabase() *gorm.DB {
	databaseCfg := xcontext.Configs(s.ctx).Database
	db, err := gorm.Open(mysql.Open(databaseCfg.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	return db
}

func (s *srv) migrateDB() {
	if err := migration.Migrate(s.ctx); err != nil {
		panic(err)
	}
}

func (s *srv) loadTemplates() {
	templatePath := xcontext.Configs(s.ctx).Challenge.TemplatePath
	if templatePath == "" {
		s.templates = config.DefaultChallengeTemplates()
		return
	}

	templates, err := config.LoadChallengeTemplates(templatePath)
	if err != nil {
		panic(err)
	}

	s.templates = templates
}

func (s *srv) loadRedisClient() {
	var err error
	s.redisClient, err = xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadPublisher() {
	s.publisher = kafka.NewPublisher(
		"athlon-backend", []string{xcontext.Configs(s.ctx).Kafka.Addr})
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.eventRepo = repository.NewEventRepository()
	s.challengeRepo = repository.NewChallengeRepository()
	s.participantRepo = repository.NewParticipantRepository()
	s.submissionRepo = repository.NewSubmissionRepository()
	s.voteRepo = repository.NewVoteRepository()
	s.resultRepo = repository.NewResultRepository()
}

func (s *srv) loadDomains() {
	cfg := xcontext.Configs(s.ctx)

	s.tokenEngine = authenticator.NewTokenEngine[model.AccessTokenClaims](cfg.Auth)
	s.searchCaller = search.NewBleveIndex(s.ctx)
	s.leaderboard = statistic.New(s.participantRepo, s.userRepo, s.redisClient)

	s.userDomain = domain.NewUserDomain(s.userRepo)
	s.eventDomain = domain.NewEventDomain(s.eventRepo, s.leaderboard, s.searchCaller)
	s.challengeDomain = domain.NewChallengeDomain(
		s.challengeRepo, s.participantRepo, s.submissionRepo, s.resultRepo,
		s.eventRepo, s.templates, s.leaderboard, s.redisClient, s.publisher,
		s.searchCaller)
	s.submissionDomain = domain.NewSubmissionDomain(
		s.challengeRepo, s.participantRepo, s.submissionRepo, s.userRepo, s.publisher)
	s.voteDomain = domain.NewVoteDomain(
		s.submissionRepo, s.challengeRepo, s.voteRepo, s.publisher)
	s.leaderboardDomain = domain.NewLeaderboardDomain(s.challengeRepo, s.submissionRepo)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		panic(err)
	}

	return n
}

func getEnvAsDuration(key, fallback string) time.Duration {
	d, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		panic(err)
	}

	return d
}
