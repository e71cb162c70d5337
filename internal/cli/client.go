package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/forcadev/forca-online/internal/model"
	"github.com/forcadev/forca-online/internal/session"
)

// Client is an HTTP client for the API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new API client
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// APIError represents an error response from the API
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an API error
type ErrorResponse struct {
	Error APIError `json:"error"`
}

func (e *APIError) String() string {
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

// Do performs an HTTP request
func (c *Client) Do(method, path string, body, result any) error {
	reqURL := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	// Check for error responses
	if resp.StatusCode >= 400 {
		var errResp ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error.Code != "" {
			return fmt.Errorf("%s", errResp.Error.String())
		}
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	// Parse successful response
	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

// Get performs a GET request
func (c *Client) Get(path string, result any) error {
	return c.Do(http.MethodGet, path, nil, result)
}

// Post performs a POST request
func (c *Client) Post(path string, body, result any) error {
	return c.Do(http.MethodPost, path, body, result)
}

// RoomState is the per-player room view returned by the state endpoint.
// The room and progress rows share their JSON shape with the model types.
type RoomState struct {
	Room       model.Room      `json:"room"`
	Mine       *model.Progress `json:"mine,omitempty"`
	Opponent   *model.Progress `json:"opponent,omitempty"`
	MaskedWord string          `json:"masked_word"`
	IsMyTurn   bool            `json:"is_my_turn"`
	MaxErrors  int             `json:"max_errors"`
}

// GuessResult is the response for a guess submission
type GuessResult struct {
	Applied  bool `json:"applied"`
	Correct  bool `json:"correct"`
	Finished bool `json:"finished"`
	Won      bool `json:"won"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

// CategoriesResult lists the available word categories
type CategoriesResult struct {
	Categories []string `json:"categories"`
}

// CreatePlayer creates a new player identity
func (c *Client) CreatePlayer(name string) (*model.Player, error) {
	var player model.Player
	req := map[string]string{"display_name": name}
	if err := c.Post("/api/v1/players", req, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

// GetPlayer fetches a player by id
func (c *Client) GetPlayer(id model.PlayerID) (*model.Player, error) {
	var player model.Player
	if err := c.Get("/api/v1/players/"+url.PathEscape(string(id)), &player); err != nil {
		return nil, err
	}
	return &player, nil
}

// CreateRoom creates a room hosted by the given player
func (c *Client) CreateRoom(playerID model.PlayerID, mode, category string) (*model.Room, error) {
	var room model.Room
	req := map[string]string{
		"player_id": string(playerID),
		"mode":      mode,
		"category":  category,
	}
	if err := c.Post("/api/v1/rooms", req, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

// GetRoomByCode fetches a room by its shareable code
func (c *Client) GetRoomByCode(code string) (*model.Room, error) {
	var room model.Room
	if err := c.Get("/api/v1/rooms/"+url.PathEscape(code), &room); err != nil {
		return nil, err
	}
	return &room, nil
}

// JoinRoom joins a waiting room by code
func (c *Client) JoinRoom(code string, playerID model.PlayerID) (*model.Room, error) {
	var room model.Room
	req := map[string]string{"player_id": string(playerID)}
	if err := c.Post("/api/v1/rooms/"+url.PathEscape(code)+"/join", req, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

// SetWord submits a challenger-mode word
func (c *Client) SetWord(roomID model.RoomID, playerID model.PlayerID, word, category string) (*model.Room, error) {
	var room model.Room
	req := map[string]string{
		"player_id": string(playerID),
		"word":      word,
		"category":  category,
	}
	if err := c.Post("/api/v1/rooms/"+url.PathEscape(string(roomID))+"/word", req, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

// Guess submits a letter guess
func (c *Client) Guess(roomID model.RoomID, playerID model.PlayerID, letter string) (*GuessResult, error) {
	var result GuessResult
	req := map[string]string{
		"player_id": string(playerID),
		"letter":    letter,
	}
	if err := c.Post("/api/v1/rooms/"+url.PathEscape(string(roomID))+"/guess", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetState fetches the per-player view of a room
func (c *Client) GetState(roomID model.RoomID, playerID model.PlayerID) (*RoomState, error) {
	var state RoomState
	path := "/api/v1/rooms/" + url.PathEscape(string(roomID)) + "/state?player_id=" + url.QueryEscape(string(playerID))
	if err := c.Get(path, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// Categories fetches the available word categories
func (c *Client) Categories() (*CategoriesResult, error) {
	var result CategoriesResult
	if err := c.Get("/api/v1/categories", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Health checks server health
func (c *Client) Health() (*HealthResult, error) {
	var result HealthResult
	if err := c.Get("/api/v1/health", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// roomFetcher adapts the state endpoint to the session resume protocol's
// room lookup, which addresses rooms by id rather than by code
type roomFetcher struct {
	client   *Client
	playerID model.PlayerID
}

func (f *roomFetcher) GetRoom(_ context.Context, id model.RoomID) (*model.Room, error) {
	state, err := f.client.GetState(id, f.playerID)
	if err != nil {
		return nil, err
	}
	return &state.Room, nil
}

var _ session.RoomFetcher = (*roomFetcher)(nil)
