package explorations

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/questline/questline/internal/entities"
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

func (s *RedisRepoTestSuite) testState() *entities.ExplorationState {
	return &entities.ExplorationState{
		PlayerID:    "player-1",
		DungeonSlug: "catacombs",
		FloorIndex:  2,
		CurrentHP:   80,
		StartTime:   time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		Version:     3,
	}
}

func (s *RedisRepoTestSuite) TestSave() {
	ctx := context.Background()
	state := s.testState()

	saved := *state
	saved.Version = 4
	data, err := json.Marshal(&saved)
	s.Require().NoError(err)

	s.mock.ExpectEval(SaveScript,
		[]string{"exploration:player-1", "explorations:active"},
		int64(3), string(data), "player-1",
	).SetVal(int64(1))

	s.Require().NoError(s.repo.Save(ctx, state))
	s.Equal(int64(4), state.Version, "version bumps on successful save")
}

func (s *RedisRepoTestSuite) TestSave_StaleVersion() {
	ctx := context.Background()
	state := s.testState()

	saved := *state
	saved.Version = 4
	data, err := json.Marshal(&saved)
	s.Require().NoError(err)

	s.mock.ExpectEval(SaveScript,
		[]string{"exploration:player-1", "explorations:active"},
		int64(3), string(data), "player-1",
	).SetVal(int64(0))

	err = s.repo.Save(ctx, state)
	s.Require().ErrorIs(err, ErrStaleState)
	s.Equal(int64(3), state.Version, "version restored on rejected save")
}

func (s *RedisRepoTestSuite) TestSave_Validation() {
	ctx := context.Background()

	s.Error(s.repo.Save(ctx, nil))
	s.Error(s.repo.Save(ctx, &entities.ExplorationState{}))
}

func (s *RedisRepoTestSuite) TestGet() {
	ctx := context.Background()
	state := s.testState()

	data, err := json.Marshal(state)
	s.Require().NoError(err)

	s.mock.ExpectGet("exploration:player-1").SetVal(string(data))

	got, err := s.repo.Get(ctx, "player-1")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal("catacombs", got.DungeonSlug)
	s.Equal(2, got.FloorIndex)
}

func (s *RedisRepoTestSuite) TestGet_AbsentIsNotExploring() {
	ctx := context.Background()

	s.mock.ExpectGet("exploration:player-1").RedisNil()

	got, err := s.repo.Get(ctx, "player-1")
	s.Require().NoError(err)
	s.Nil(got)
}

func (s *RedisRepoTestSuite) TestGet_RedisError() {
	ctx := context.Background()

	s.mock.ExpectGet("exploration:player-1").SetErr(errors.New("redis down"))

	_, err := s.repo.Get(ctx, "player-1")
	s.Error(err)
}

func (s *RedisRepoTestSuite) TestDelete() {
	ctx := context.Background()

	s.mock.ExpectDel("exploration:player-1").SetVal(1)
	s.mock.ExpectSRem("explorations:active", "player-1").SetVal(1)

	s.NoError(s.repo.Delete(ctx, "player-1"))
}

func (s *RedisRepoTestSuite) TestListActive() {
	ctx := context.Background()
	state := s.testState()

	data, err := json.Marshal(state)
	s.Require().NoError(err)

	s.mock.ExpectSMembers("explorations:active").SetVal([]string{"player-1"})
	s.mock.ExpectGet("exploration:player-1").SetVal(string(data))

	states, err := s.repo.ListActive(ctx)
	s.Require().NoError(err)
	s.Require().Len(states, 1)
	s.Equal("player-1", states[0].PlayerID)
}
