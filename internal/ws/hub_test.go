package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/dicepad/dicepad/internal/api/response"
	"github.com/dicepad/dicepad/internal/dependencies/mocks"
	"github.com/dicepad/dicepad/internal/model"
	"github.com/dicepad/dicepad/internal/services/registry"
	"github.com/dicepad/dicepad/internal/services/scoring"
	"github.com/dicepad/dicepad/internal/storage/memory"
	"github.com/dicepad/dicepad/internal/testutil"
)

type HubSuite struct {
	suite.Suite
	random *mocks.MockRandom
	hub    *Hub
}

func TestHubSuite(t *testing.T) {
	suite.Run(t, new(HubSuite))
}

func (s *HubSuite) SetupTest() {
	s.random = mocks.NewMockRandom()
	controller := registry.NewController(
		memory.New(),
		scoring.New(),
		mocks.NewMockClock(time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)),
		s.random,
		testutil.NopLogger(),
	)
	s.hub = NewHub(controller, testutil.NopLogger())
}

// newClient builds a connected client without a real websocket; dispatch
// never touches the connection, only the send channel
func (s *HubSuite) newClient() *Client {
	client := &Client{send: make(chan []byte, 16)}
	s.hub.clients[client] = true
	return client
}

func (s *HubSuite) message(msgType string, payload any) []byte {
	raw, err := json.Marshal(payload)
	s.Require().NoError(err)
	data, err := json.Marshal(Envelope{Type: msgType, Payload: raw})
	s.Require().NoError(err)
	return data
}

func (s *HubSuite) receive(client *Client) Envelope {
	select {
	case data := <-client.send:
		var envelope Envelope
		s.Require().NoError(json.Unmarshal(data, &envelope))
		return envelope
	default:
		s.Require().FailNow("expected a queued message")
		return Envelope{}
	}
}

func (s *HubSuite) receiveGame(client *Client) response.Game {
	envelope := s.receive(client)
	s.Require().Equal(TypeGameUpdate, envelope.Type)
	var game response.Game
	s.Require().NoError(json.Unmarshal(envelope.Payload, &game))
	return game
}

func (s *HubSuite) receiveError(client *Client) ErrorPayload {
	envelope := s.receive(client)
	s.Require().Equal(TypeError, envelope.Type)
	var payload ErrorPayload
	s.Require().NoError(json.Unmarshal(envelope.Payload, &payload))
	return payload
}

func (s *HubSuite) assertNothingQueued(client *Client) {
	select {
	case data := <-client.send:
		s.Require().FailNowf("unexpected message", "got %s", data)
	default:
	}
}

func (s *HubSuite) createGame(client *Client, names ...string) response.Game {
	s.random.QueueCode("K7KPQ2")
	s.hub.dispatch(context.Background(), client, s.message(TypeCreateGame, CreateGamePayload{PlayerNames: names}))
	return s.receiveGame(client)
}

func (s *HubSuite) TestCreateGame() {
	client := s.newClient()

	game := s.createGame(client, "Ala", "Bob")

	s.Equal("K7KPQ2", game.ID)
	s.Equal(1, game.CurrentRound)
	s.Equal(0, game.CurrentPlayerIndex)
	s.Equal(time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC).UnixMilli(), game.CreatedAt)
	s.Require().Len(game.Players, 2)
	s.Equal("Ala", game.Players[0].Name)
	s.Equal("Bob", game.Players[1].Name)

	// The sheet arrives in full, every category present and unclaimed
	s.Len(game.Players[0].Achievements, 15)
	s.Nil(game.Players[0].Achievements["poker"])

	// The creator is subscribed to its own game
	s.True(s.hub.games["K7KPQ2"][client])
}

func (s *HubSuite) TestCreateGameNoPlayers() {
	client := s.newClient()

	s.hub.dispatch(context.Background(), client, s.message(TypeCreateGame, CreateGamePayload{}))

	payload := s.receiveError(client)
	s.Equal(CodeInvalidRequest, payload.Code)
	s.Empty(s.hub.games)
}

func (s *HubSuite) TestMalformedJSON() {
	client := s.newClient()

	s.hub.dispatch(context.Background(), client, []byte("{not json"))

	payload := s.receiveError(client)
	s.Equal(CodeMalformedMessage, payload.Code)
}

func (s *HubSuite) TestUnknownMessageType() {
	client := s.newClient()

	s.hub.dispatch(context.Background(), client, s.message("spectate-game", JoinGamePayload{GameID: "K7KPQ2"}))

	payload := s.receiveError(client)
	s.Equal(CodeMalformedMessage, payload.Code)
}

func (s *HubSuite) TestJoinGame() {
	creator := s.newClient()
	joiner := s.newClient()
	s.createGame(creator, "Ala", "Bob")

	s.hub.dispatch(context.Background(), joiner, s.message(TypeJoinGame, JoinGamePayload{GameID: "K7KPQ2"}))

	game := s.receiveGame(joiner)
	s.Equal("K7KPQ2", game.ID)
	s.True(s.hub.games["K7KPQ2"][joiner])

	// Joining mutates nothing, so the creator hears nothing
	s.assertNothingQueued(creator)
}

func (s *HubSuite) TestJoinUnknownGame() {
	client := s.newClient()

	s.hub.dispatch(context.Background(), client, s.message(TypeJoinGame, JoinGamePayload{GameID: "MISSIN"}))

	payload := s.receiveError(client)
	s.Equal(CodeGameNotFound, payload.Code)

	// A failed join must not leave a subscription behind
	s.Empty(s.hub.games["MISSIN"])
}

func (s *HubSuite) TestAddScoreBroadcasts() {
	creator := s.newClient()
	joiner := s.newClient()
	game := s.createGame(creator, "Ala", "Bob")
	ala := game.Players[0].ID

	s.hub.dispatch(context.Background(), joiner, s.message(TypeJoinGame, JoinGamePayload{GameID: game.ID}))
	s.receiveGame(joiner)

	s.hub.dispatch(context.Background(), joiner, s.message(TypeAddScore, AddScorePayload{
		GameID:          game.ID,
		PlayerID:        ala,
		AchievementType: "ones",
		Score:           4,
	}))

	// Every subscriber gets the same snapshot, the sender included
	for _, client := range []*Client{creator, joiner} {
		updated := s.receiveGame(client)
		s.Equal(4, updated.Players[0].TotalScore)
		s.Require().NotNil(updated.Players[0].Achievements["ones"])
		s.Equal(4, *updated.Players[0].Achievements["ones"])
		s.Equal(1, updated.CurrentPlayerIndex)
	}
}

func (s *HubSuite) TestAddScoreErrorGoesToSenderOnly() {
	creator := s.newClient()
	game := s.createGame(creator, "Ala")
	ala := game.Players[0].ID

	score := s.message(TypeAddScore, AddScorePayload{
		GameID:          game.ID,
		PlayerID:        ala,
		AchievementType: "ones",
		Score:           2,
	})
	s.hub.dispatch(context.Background(), creator, score)
	s.receiveGame(creator)

	other := s.newClient()
	s.hub.dispatch(context.Background(), other, score)

	payload := s.receiveError(other)
	s.Equal(CodeAlreadyClaimed, payload.Code)
	s.assertNothingQueued(creator)
}

func (s *HubSuite) TestAddScoreUnknownAchievement() {
	client := s.newClient()
	game := s.createGame(client, "Ala")

	s.hub.dispatch(context.Background(), client, s.message(TypeAddScore, AddScorePayload{
		GameID:          game.ID,
		PlayerID:        game.Players[0].ID,
		AchievementType: "yatzy",
		Score:           50,
	}))

	payload := s.receiveError(client)
	s.Equal(CodeInvalidRequest, payload.Code)
}

func (s *HubSuite) TestAddScoreNegative() {
	client := s.newClient()
	game := s.createGame(client, "Ala")

	s.hub.dispatch(context.Background(), client, s.message(TypeAddScore, AddScorePayload{
		GameID:          game.ID,
		PlayerID:        game.Players[0].ID,
		AchievementType: "chance",
		Score:           -3,
	}))

	payload := s.receiveError(client)
	s.Equal(CodeInvalidRequest, payload.Code)

	// The rejected claim never reached the game
	got, err := s.hub.registry.GetGame(context.Background(), "K7KPQ2")
	s.Require().NoError(err)
	s.Nil(got.Players[0].Achievements[model.AchievementChance])
	s.Equal(0, got.CurrentPlayerIndex)
}

func (s *HubSuite) TestGamesAreIsolated() {
	clientA := s.newClient()
	clientB := s.newClient()

	gameA := s.createGame(clientA, "Ala")
	s.random.QueueCode("B4DQ2M")
	s.hub.dispatch(context.Background(), clientB, s.message(TypeCreateGame, CreateGamePayload{PlayerNames: []string{"Bob"}}))
	s.receiveGame(clientB)

	s.hub.dispatch(context.Background(), clientA, s.message(TypeAddScore, AddScorePayload{
		GameID:          gameA.ID,
		PlayerID:        gameA.Players[0].ID,
		AchievementType: "chance",
		Score:           17,
	}))

	s.receiveGame(clientA)
	s.assertNothingQueued(clientB)
}

func (s *HubSuite) TestSlowClientIsDropped() {
	creator := s.newClient()
	s.createGame(creator, "Ala")

	// No buffer at all: the first delivery already has nowhere to go
	slow := &Client{send: make(chan []byte)}
	s.hub.clients[slow] = true

	s.hub.dispatch(context.Background(), slow, s.message(TypeJoinGame, JoinGamePayload{GameID: "K7KPQ2"}))

	s.False(s.hub.clients[slow])
	s.Empty(s.hub.games["K7KPQ2"][slow])

	_, open := <-slow.send
	s.False(open)
}
