package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/dicepad/dicepad/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.GameTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) newGame(id model.GameID) *model.Game {
	p1 := model.NewPlayer("p1", "Ala")
	p2 := model.NewPlayer("p2", "Bob")
	score := 12
	p1.Achievements[model.AchievementFours] = &score
	p1.TotalScore = 12
	return &model.Game{
		ID:                 id,
		AdminID:            "admin-1",
		Players:            []model.Player{p1, p2},
		CurrentRound:       1,
		CurrentPlayerIndex: 1,
		CreatedAt:          time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (s *StorageSuite) TestSaveAndGetGame() {
	game := s.newGame("K7KPQ2")

	s.Require().NoError(s.storage.SaveGame(s.ctx, game))

	got, err := s.storage.GetGame(s.ctx, "K7KPQ2")
	s.Require().NoError(err)
	s.Equal(game.ID, got.ID)
	s.Equal(game.AdminID, got.AdminID)
	s.Equal(1, got.CurrentPlayerIndex)
	s.Require().Len(got.Players, 2)

	// Claimed and unclaimed categories survive the JSON round trip
	s.Require().NotNil(got.Players[0].Achievements[model.AchievementFours])
	s.Equal(12, *got.Players[0].Achievements[model.AchievementFours])
	s.Nil(got.Players[0].Achievements[model.AchievementOnes])
	s.Equal(12, got.Players[0].TotalScore)
}

func (s *StorageSuite) TestGetGameNotFound() {
	_, err := s.storage.GetGame(s.ctx, "MISSIN")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestGameExpiresAfterTTL() {
	s.Require().NoError(s.storage.SaveGame(s.ctx, s.newGame("K7KPQ2")))

	s.mini.FastForward(2 * time.Hour)

	_, err := s.storage.GetGame(s.ctx, "K7KPQ2")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestDeleteGame() {
	s.Require().NoError(s.storage.SaveGame(s.ctx, s.newGame("K7KPQ2")))

	s.Require().NoError(s.storage.DeleteGame(s.ctx, "K7KPQ2"))

	_, err := s.storage.GetGame(s.ctx, "K7KPQ2")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestGameExists() {
	s.Require().NoError(s.storage.SaveGame(s.ctx, s.newGame("K7KPQ2")))

	exists, err := s.storage.GameExists(s.ctx, "K7KPQ2")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.storage.GameExists(s.ctx, "ZZZZZZ")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *StorageSuite) TestCountGames() {
	count, err := s.storage.CountGames(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, count)

	s.Require().NoError(s.storage.SaveGame(s.ctx, s.newGame("AAAAAA")))
	s.Require().NoError(s.storage.SaveGame(s.ctx, s.newGame("BBBBBB")))
	s.Require().NoError(s.storage.SaveGame(s.ctx, s.newGame("CCCCCC")))

	count, err = s.storage.CountGames(s.ctx)
	s.Require().NoError(err)
	s.Equal(3, count)
}
