package progress

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

func (s *RedisRepoTestSuite) testRecord() *entities.PlayerProgress {
	record := entities.NewPlayerProgress("player-1")
	record.DungeonLevel = 3
	record.DungeonExp = 240
	record.UnspentStatPoints = 10
	record.MarkExplored(1)
	record.MarkExplored(2)
	record.AssignedStats = entities.CombatStats{MaxHP: 120, Attack: 15}
	return record
}

func (s *RedisRepoTestSuite) TestSave() {
	ctx := context.Background()
	record := s.testRecord()

	data, err := json.Marshal(record)
	s.Require().NoError(err)

	s.mock.ExpectSet("progress:player-1", data, 0).SetVal("OK")

	s.NoError(s.repo.Save(ctx, record))
}

func (s *RedisRepoTestSuite) TestSave_Validation() {
	ctx := context.Background()

	s.Error(s.repo.Save(ctx, nil))
	s.Error(s.repo.Save(ctx, &entities.PlayerProgress{}))
}

func (s *RedisRepoTestSuite) TestGet() {
	ctx := context.Background()
	record := s.testRecord()

	data, err := json.Marshal(record)
	s.Require().NoError(err)

	s.mock.ExpectGet("progress:player-1").SetVal(string(data))

	got, err := s.repo.Get(ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(3, got.DungeonLevel)
	s.Equal(240, got.DungeonExp)
	s.Equal([]int{1, 2}, got.ExploredFloorList())
}

func (s *RedisRepoTestSuite) TestGet_NotFound() {
	ctx := context.Background()

	s.mock.ExpectGet("progress:missing").RedisNil()

	_, err := s.repo.Get(ctx, "missing")
	s.Require().Error(err)
	s.True(apperrors.IsNotFound(err))
}

func (s *RedisRepoTestSuite) TestGet_RedisError() {
	ctx := context.Background()

	s.mock.ExpectGet("progress:player-1").SetErr(errors.New("redis down"))

	_, err := s.repo.Get(ctx, "player-1")
	s.Error(err)
}
