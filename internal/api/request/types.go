package request

// CreatePlayerRequest is the request body for creating a player
type CreatePlayerRequest struct {
	DisplayName string `json:"display_name"`
}

// CreateRoomRequest is the request body for creating a room
type CreateRoomRequest struct {
	PlayerID string `json:"player_id"`
	Mode     string `json:"mode"`
	Category string `json:"category,omitempty"`
}

// JoinRoomRequest is the request body for joining a room by code
type JoinRoomRequest struct {
	PlayerID string `json:"player_id"`
}

// SetWordRequest is the request body for authoring a challenger word
type SetWordRequest struct {
	PlayerID string `json:"player_id"`
	Word     string `json:"word"`
	Category string `json:"category,omitempty"`
}

// GuessRequest is the request body for submitting a letter guess
type GuessRequest struct {
	PlayerID string `json:"player_id"`
	Letter   string `json:"letter"`
}
