package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/dicepad/dicepad/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
}

func (s *StorageSuite) newGame(id model.GameID) *model.Game {
	return &model.Game{
		ID:                 id,
		AdminID:            "admin-1",
		Players:            []model.Player{model.NewPlayer("p1", "Ala")},
		CurrentRound:       1,
		CurrentPlayerIndex: 0,
		CreatedAt:          time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (s *StorageSuite) TestSaveAndGetGame() {
	game := s.newGame("AAAAAA")

	s.Require().NoError(s.storage.SaveGame(context.Background(), game))

	got, err := s.storage.GetGame(context.Background(), "AAAAAA")
	s.Require().NoError(err)
	s.Equal(game.ID, got.ID)
	s.Equal(game.AdminID, got.AdminID)
	s.Equal(game.CreatedAt, got.CreatedAt)
	s.Len(got.Players, 1)
}

func (s *StorageSuite) TestGetGameNotFound() {
	_, err := s.storage.GetGame(context.Background(), "MISSIN")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestGetGameReturnsIsolatedCopy() {
	game := s.newGame("AAAAAA")
	s.Require().NoError(s.storage.SaveGame(context.Background(), game))

	got, err := s.storage.GetGame(context.Background(), "AAAAAA")
	s.Require().NoError(err)

	// Mutating the returned game must not leak into the store
	got.CurrentRound = 99
	score := 5
	got.Players[0].Achievements[model.AchievementOnes] = &score

	fresh, err := s.storage.GetGame(context.Background(), "AAAAAA")
	s.Require().NoError(err)
	s.Equal(1, fresh.CurrentRound)
	s.Nil(fresh.Players[0].Achievements[model.AchievementOnes])
}

func (s *StorageSuite) TestSaveGameStoresCopy() {
	game := s.newGame("AAAAAA")
	s.Require().NoError(s.storage.SaveGame(context.Background(), game))

	// Mutating the original after save must not affect the store
	game.CurrentPlayerIndex = 7

	got, err := s.storage.GetGame(context.Background(), "AAAAAA")
	s.Require().NoError(err)
	s.Equal(0, got.CurrentPlayerIndex)
}

func (s *StorageSuite) TestSaveGameOverwrites() {
	game := s.newGame("AAAAAA")
	s.Require().NoError(s.storage.SaveGame(context.Background(), game))

	updated := game.Clone()
	updated.CurrentRound = 2
	s.Require().NoError(s.storage.SaveGame(context.Background(), updated))

	got, err := s.storage.GetGame(context.Background(), "AAAAAA")
	s.Require().NoError(err)
	s.Equal(2, got.CurrentRound)
}

func (s *StorageSuite) TestDeleteGame() {
	s.Require().NoError(s.storage.SaveGame(context.Background(), s.newGame("AAAAAA")))

	s.Require().NoError(s.storage.DeleteGame(context.Background(), "AAAAAA"))

	_, err := s.storage.GetGame(context.Background(), "AAAAAA")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestGameExists() {
	s.Require().NoError(s.storage.SaveGame(context.Background(), s.newGame("AAAAAA")))

	exists, err := s.storage.GameExists(context.Background(), "AAAAAA")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.storage.GameExists(context.Background(), "BBBBBB")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *StorageSuite) TestCountGames() {
	count, err := s.storage.CountGames(context.Background())
	s.Require().NoError(err)
	s.Equal(0, count)

	s.Require().NoError(s.storage.SaveGame(context.Background(), s.newGame("AAAAAA")))
	s.Require().NoError(s.storage.SaveGame(context.Background(), s.newGame("BBBBBB")))

	count, err = s.storage.CountGames(context.Background())
	s.Require().NoError(err)
	s.Equal(2, count)
}
