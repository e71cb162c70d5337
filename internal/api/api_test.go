package api_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forcadev/forca-online/internal/api"
	"github.com/forcadev/forca-online/internal/api/response"
	"github.com/forcadev/forca-online/internal/factory"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// API tests are integration tests - use production factory with real random/clock
	app, err := factory.New(factory.Config{})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		RoomController:  app.RoomController,
		GuessController: app.GuessController,
		WordsService:    app.WordsService,
		HubManager:      app.HubManager,
	})

	return &testServer{handler: router}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestCreatePlayer(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"display_name": "Alice"}
	rr := ts.request(http.MethodPost, "/api/v1/players", body)

	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp response.Player
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)

	assert.Equal(t, "Alice", resp.DisplayName)
	assert.NotEmpty(t, resp.ID)
}

func TestCreatePlayerRequiresName(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/players", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_REQUEST")
}

func TestGetPlayer(t *testing.T) {
	ts := newTestServer(t)

	playerID := createPlayer(t, ts, "Bob")

	rr := ts.request(http.MethodGet, "/api/v1/players/"+playerID, nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.Player
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "Bob", resp.DisplayName)
}

func TestGetPlayerNotFound(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/players/nonexistent", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "PLAYER_NOT_FOUND")
}

func TestCreateRoom(t *testing.T) {
	ts := newTestServer(t)

	hostID := createPlayer(t, ts, "Alice")

	body := map[string]string{"player_id": hostID, "mode": "competitive", "category": "animais"}
	rr := ts.request(http.MethodPost, "/api/v1/rooms", body)
	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp response.Room
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)

	assert.Equal(t, "waiting", resp.Status)
	assert.Equal(t, "competitive", resp.Mode)
	assert.Equal(t, hostID, resp.HostID)
	assert.Equal(t, "Alice", resp.HostName)
	assert.Len(t, resp.Code, 6)
	assert.NotEmpty(t, resp.Word)
}

func TestCreateRoomInvalidMode(t *testing.T) {
	ts := newTestServer(t)

	hostID := createPlayer(t, ts, "Alice")

	body := map[string]string{"player_id": hostID, "mode": "battle-royale"}
	rr := ts.request(http.MethodPost, "/api/v1/rooms", body)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_MODE")
}

func TestCreateRoomUnknownCategory(t *testing.T) {
	ts := newTestServer(t)

	hostID := createPlayer(t, ts, "Alice")

	body := map[string]string{"player_id": hostID, "mode": "competitive", "category": "dinosaurs"}
	rr := ts.request(http.MethodPost, "/api/v1/rooms", body)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "UNKNOWN_CATEGORY")
}

func TestGetRoomByCode(t *testing.T) {
	ts := newTestServer(t)

	hostID := createPlayer(t, ts, "Alice")
	room := createRoom(t, ts, hostID, "competitive", "animais")

	rr := ts.request(http.MethodGet, "/api/v1/rooms/"+room.Code, nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.Room
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, room.ID, resp.ID)
}

func TestGetRoomNotFound(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/rooms/ZZZZZZ", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "ROOM_NOT_FOUND")
}

func TestJoinRoomStartsCompetitiveGame(t *testing.T) {
	ts := newTestServer(t)

	hostID := createPlayer(t, ts, "Alice")
	guestID := createPlayer(t, ts, "Bob")
	room := createRoom(t, ts, hostID, "competitive", "animais")

	body := map[string]string{"player_id": guestID}
	rr := ts.request(http.MethodPost, "/api/v1/rooms/"+room.Code+"/join", body)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.Room
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "playing", resp.Status)
	assert.Equal(t, guestID, resp.GuestID)
	assert.Equal(t, "Bob", resp.GuestName)
}

func TestJoinRoomFull(t *testing.T) {
	ts := newTestServer(t)

	hostID := createPlayer(t, ts, "Alice")
	guestID := createPlayer(t, ts, "Bob")
	thirdID := createPlayer(t, ts, "Carol")
	room := createRoom(t, ts, hostID, "challenger", "")

	rr := ts.request(http.MethodPost, "/api/v1/rooms/"+room.Code+"/join", map[string]string{"player_id": guestID})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/rooms/"+room.Code+"/join", map[string]string{"player_id": thirdID})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "ROOM_FULL")
}

func TestChallengerWordExchange(t *testing.T) {
	ts := newTestServer(t)

	hostID := createPlayer(t, ts, "Alice")
	guestID := createPlayer(t, ts, "Bob")
	room := createRoom(t, ts, hostID, "challenger", "")

	// Joining a challenger room does not start play; words come first
	rr := ts.request(http.MethodPost, "/api/v1/rooms/"+room.Code+"/join", map[string]string{"player_id": guestID})
	require.Equal(t, http.StatusOK, rr.Code)
	var joined response.Room
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &joined))
	assert.Equal(t, "waiting", joined.Status)

	// Host authors the word Bob will guess
	rr = ts.request(http.MethodPost, "/api/v1/rooms/"+room.ID+"/word",
		map[string]string{"player_id": hostID, "word": "gato", "category": "animais"})
	assert.Equal(t, http.StatusOK, rr.Code)
	var afterHost response.Room
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &afterHost))
	assert.Equal(t, "waiting", afterHost.Status)
	assert.Equal(t, "GATO", afterHost.HostWord)

	// Second word flips the room to playing
	rr = ts.request(http.MethodPost, "/api/v1/rooms/"+room.ID+"/word",
		map[string]string{"player_id": guestID, "word": "banana", "category": "frutas"})
	assert.Equal(t, http.StatusOK, rr.Code)
	var afterGuest response.Room
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &afterGuest))
	assert.Equal(t, "playing", afterGuest.Status)
	assert.Equal(t, "BANANA", afterGuest.GuestWord)
}

func TestSetWordTooShort(t *testing.T) {
	ts := newTestServer(t)

	hostID := createPlayer(t, ts, "Alice")
	room := createRoom(t, ts, hostID, "challenger", "")

	rr := ts.request(http.MethodPost, "/api/v1/rooms/"+room.ID+"/word",
		map[string]string{"player_id": hostID, "word": "ab"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "WORD_TOO_SHORT")
}

func TestSetWordWrongMode(t *testing.T) {
	ts := newTestServer(t)

	hostID := createPlayer(t, ts, "Alice")
	room := createRoom(t, ts, hostID, "competitive", "animais")

	rr := ts.request(http.MethodPost, "/api/v1/rooms/"+room.ID+"/word",
		map[string]string{"player_id": hostID, "word": "gato"})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "WRONG_MODE")
}

func TestGetState(t *testing.T) {
	ts := newTestServer(t)

	hostID := createPlayer(t, ts, "Alice")
	guestID := createPlayer(t, ts, "Bob")
	room := createRoom(t, ts, hostID, "competitive", "animais")

	rr := ts.request(http.MethodPost, "/api/v1/rooms/"+room.Code+"/join", map[string]string{"player_id": guestID})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/rooms/"+room.ID+"/state?player_id="+hostID, nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var state response.RoomState
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &state))

	assert.Equal(t, "playing", state.Room.Status)
	require.NotNil(t, state.Mine)
	assert.Equal(t, hostID, state.Mine.PlayerID)
	require.NotNil(t, state.Opponent)
	assert.Equal(t, guestID, state.Opponent.PlayerID)
	assert.Equal(t, 6, state.MaxErrors)
	assert.NotEmpty(t, state.MaskedWord)
	assert.NotContains(t, state.MaskedWord, "A", "untouched word should be fully masked")
}

func TestGetStateRejectsOutsider(t *testing.T) {
	ts := newTestServer(t)

	hostID := createPlayer(t, ts, "Alice")
	outsiderID := createPlayer(t, ts, "Mallory")
	room := createRoom(t, ts, hostID, "competitive", "animais")

	rr := ts.request(http.MethodGet, "/api/v1/rooms/"+room.ID+"/state?player_id="+outsiderID, nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "NOT_IN_ROOM")
}

func TestFullChallengerGameFlow(t *testing.T) {
	ts := newTestServer(t)

	hostID := createPlayer(t, ts, "Alice")
	guestID := createPlayer(t, ts, "Bob")
	room := createRoom(t, ts, hostID, "challenger", "")

	rr := ts.request(http.MethodPost, "/api/v1/rooms/"+room.Code+"/join", map[string]string{"player_id": guestID})
	require.Equal(t, http.StatusOK, rr.Code)

	// Alice authors OVO for Bob; Bob authors UVA for Alice
	rr = ts.request(http.MethodPost, "/api/v1/rooms/"+room.ID+"/word",
		map[string]string{"player_id": hostID, "word": "ovo", "category": "comidas"})
	require.Equal(t, http.StatusOK, rr.Code)
	rr = ts.request(http.MethodPost, "/api/v1/rooms/"+room.ID+"/word",
		map[string]string{"player_id": guestID, "word": "uva", "category": "frutas"})
	require.Equal(t, http.StatusOK, rr.Code)

	// Alice guesses her way through UVA
	for i, letter := range []string{"u", "v", "a"} {
		rr = ts.request(http.MethodPost, "/api/v1/rooms/"+room.ID+"/guess",
			map[string]string{"player_id": hostID, "letter": letter})
		require.Equal(t, http.StatusOK, rr.Code)

		var result response.GuessResult
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
		assert.True(t, result.Applied)
		assert.True(t, result.Correct)
		if i == 2 {
			assert.True(t, result.Finished)
			assert.True(t, result.Won)
		}
	}

	// The room is finished with Alice as winner
	rr = ts.request(http.MethodGet, "/api/v1/rooms/"+room.ID+"/state?player_id="+hostID, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var state response.RoomState
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &state))
	assert.Equal(t, "finished", state.Room.Status)
	assert.Equal(t, hostID, state.Room.WinnerID)
	assert.Equal(t, "UVA", state.MaskedWord)
}

func TestGuessWrongLetterIncrementsErrors(t *testing.T) {
	ts := newTestServer(t)

	hostID := createPlayer(t, ts, "Alice")
	guestID := createPlayer(t, ts, "Bob")
	room := createRoom(t, ts, hostID, "challenger", "")

	rr := ts.request(http.MethodPost, "/api/v1/rooms/"+room.Code+"/join", map[string]string{"player_id": guestID})
	require.Equal(t, http.StatusOK, rr.Code)
	rr = ts.request(http.MethodPost, "/api/v1/rooms/"+room.ID+"/word",
		map[string]string{"player_id": hostID, "word": "gato"})
	require.Equal(t, http.StatusOK, rr.Code)
	rr = ts.request(http.MethodPost, "/api/v1/rooms/"+room.ID+"/word",
		map[string]string{"player_id": guestID, "word": "uva"})
	require.Equal(t, http.StatusOK, rr.Code)

	// Alice guesses a letter not in UVA
	rr = ts.request(http.MethodPost, "/api/v1/rooms/"+room.ID+"/guess",
		map[string]string{"player_id": hostID, "letter": "z"})
	require.Equal(t, http.StatusOK, rr.Code)

	var result response.GuessResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.True(t, result.Applied)
	assert.False(t, result.Correct)

	rr = ts.request(http.MethodGet, "/api/v1/rooms/"+room.ID+"/state?player_id="+hostID, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var state response.RoomState
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &state))
	assert.Equal(t, 1, state.Mine.Errors)
}

func TestGuessInvalidLetter(t *testing.T) {
	ts := newTestServer(t)

	hostID := createPlayer(t, ts, "Alice")
	guestID := createPlayer(t, ts, "Bob")
	room := createRoom(t, ts, hostID, "competitive", "animais")

	rr := ts.request(http.MethodPost, "/api/v1/rooms/"+room.Code+"/join", map[string]string{"player_id": guestID})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/rooms/"+room.ID+"/guess",
		map[string]string{"player_id": hostID, "letter": "42"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_LETTER")
}

func TestGuessBeforeGameStartsIsNoOp(t *testing.T) {
	ts := newTestServer(t)

	hostID := createPlayer(t, ts, "Alice")
	room := createRoom(t, ts, hostID, "competitive", "animais")

	rr := ts.request(http.MethodPost, "/api/v1/rooms/"+room.ID+"/guess",
		map[string]string{"player_id": hostID, "letter": "a"})
	assert.Equal(t, http.StatusOK, rr.Code)

	var result response.GuessResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.False(t, result.Applied)
}

func TestCategories(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/categories", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.CategoriesResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Contains(t, resp.Categories, "animais")
	assert.Contains(t, resp.Categories, "frutas")
}

func TestEventsRejectsOutsider(t *testing.T) {
	ts := newTestServer(t)

	hostID := createPlayer(t, ts, "Alice")
	outsiderID := createPlayer(t, ts, "Mallory")
	room := createRoom(t, ts, hostID, "competitive", "animais")

	rr := ts.request(http.MethodGet, "/api/v1/rooms/"+room.ID+"/events?player_id="+outsiderID, nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

// Helper functions

func createPlayer(t *testing.T, ts *testServer, displayName string) string {
	t.Helper()

	body := map[string]string{"display_name": displayName}
	rr := ts.request(http.MethodPost, "/api/v1/players", body)
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp response.Player
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)

	return resp.ID
}

func createRoom(t *testing.T, ts *testServer, playerID, mode, category string) response.Room {
	t.Helper()

	body := map[string]string{"player_id": playerID, "mode": mode, "category": category}
	rr := ts.request(http.MethodPost, "/api/v1/rooms", body)
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp response.Room
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)

	return resp
}
