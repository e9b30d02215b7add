package catalogs

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/questline/questline/internal/entities"
	apperrors "github.com/questline/questline/internal/errors"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepoTestSuite struct {
	suite.Suite
	mockClient *redis.Client
	mock       redismock.ClientMock
	repo       Repository
}

func (s *RedisRepoTestSuite) SetupTest() {
	s.mockClient, s.mock = redismock.NewClientMock()
	s.repo = NewRedisRepository(&RedisRepoConfig{Client: s.mockClient})
}

func (s *RedisRepoTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

func TestRedisRepoTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepoTestSuite))
}

func (s *RedisRepoTestSuite) testDungeon() *entities.Dungeon {
	return &entities.Dungeon{
		Slug:   "catacombs",
		Name:   "The Catacombs",
		Active: true,
		Floors: []entities.Floor{{Index: 1, Name: "Sunken Entrance"}},
	}
}

func (s *RedisRepoTestSuite) TestPut() {
	ctx := context.Background()
	dungeon := s.testDungeon()

	data, err := json.Marshal(dungeon)
	s.Require().NoError(err)

	s.mock.ExpectSet("catalog:dungeon:catacombs", data, 0).SetVal("OK")
	s.mock.ExpectSAdd("catalog:dungeons:active", "catacombs").SetVal(1)

	s.NoError(s.repo.Put(ctx, dungeon))
}

func (s *RedisRepoTestSuite) TestPut_InactiveLeavesIndex() {
	ctx := context.Background()
	dungeon := s.testDungeon()
	dungeon.Active = false

	data, err := json.Marshal(dungeon)
	s.Require().NoError(err)

	s.mock.ExpectSet("catalog:dungeon:catacombs", data, 0).SetVal("OK")
	s.mock.ExpectSRem("catalog:dungeons:active", "catacombs").SetVal(1)

	s.NoError(s.repo.Put(ctx, dungeon))
}

func (s *RedisRepoTestSuite) TestGetBySlug() {
	ctx := context.Background()
	dungeon := s.testDungeon()

	data, err := json.Marshal(dungeon)
	s.Require().NoError(err)

	s.mock.ExpectGet("catalog:dungeon:catacombs").SetVal(string(data))

	got, err := s.repo.GetBySlug(ctx, "catacombs")
	s.Require().NoError(err)
	s.Equal("The Catacombs", got.Name)
	s.Len(got.Floors, 1)
}

func (s *RedisRepoTestSuite) TestGetBySlug_NotFound() {
	ctx := context.Background()

	s.mock.ExpectGet("catalog:dungeon:missing").RedisNil()

	_, err := s.repo.GetBySlug(ctx, "missing")
	s.Require().Error(err)
	s.True(apperrors.IsNotFound(err))
}

func (s *RedisRepoTestSuite) TestGetBySlug_RedisError() {
	ctx := context.Background()

	s.mock.ExpectGet("catalog:dungeon:catacombs").SetErr(errors.New("redis down"))

	_, err := s.repo.GetBySlug(ctx, "catacombs")
	s.Error(err)
}

func (s *RedisRepoTestSuite) TestListActive() {
	ctx := context.Background()
	dungeon := s.testDungeon()

	data, err := json.Marshal(dungeon)
	s.Require().NoError(err)

	s.mock.ExpectSMembers("catalog:dungeons:active").SetVal([]string{"catacombs"})
	s.mock.ExpectGet("catalog:dungeon:catacombs").SetVal(string(data))

	dungeons, err := s.repo.ListActive(ctx)
	s.Require().NoError(err)
	s.Require().Len(dungeons, 1)
	s.Equal("catacombs", dungeons[0].Slug)
}
