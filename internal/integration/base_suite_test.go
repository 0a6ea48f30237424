package integration_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/metinatakli/cinema-tickets/internal/app"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
)

const (
	cacheImageName = "redis:7"
	testStream     = "seat-reservations-test"
)

type BaseSuite struct {
	suite.Suite
	cacheContainer *RedisContainer
	redis          *redis.Client
	logger         *slog.Logger
}

func (s *BaseSuite) SetupSuite() {
	testcontainers.SkipIfProviderIsNotHealthy(s.T())

	ctx := context.Background()

	redisContainer, err := getCacheContainer(ctx)
	s.Require().NoError(err)

	s.cacheContainer = redisContainer

	cfg := app.Config{
		Env: "test",
		Redis: app.RedisConfig{
			URL:          redisContainer.ConnectionString,
			Stream:       testStream,
			MaxOpenConns: 10,
			MaxIdleConns: 10,
			MaxIdleTime:  2 * time.Minute,
		},
	}

	client, err := app.NewRedisClient(ctx, cfg)
	s.Require().NoError(err)

	s.redis = client
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (s *BaseSuite) TearDownSuite() {
	if s.redis != nil {
		s.redis.Close()
	}

	if s.cacheContainer != nil {
		if err := testcontainers.TerminateContainer(s.cacheContainer.Container); err != nil {
			s.T().Logf("failed to terminate container: %s", err)
		}
	}
}

func (s *BaseSuite) SetupTest() {
	if s.redis != nil {
		s.Require().NoError(s.redis.Del(context.Background(), testStream).Err())
	}
}
