// Package sync reconciles remote room and progress changes into a client's
// local view. On entry it takes a full baseline fetch, then consumes the
// room's change feed; every notification replaces the matching local row
// wholesale (last arrival wins). The monotonicity of progress fields makes
// that safe under unordered, at-least-once delivery.
package sync

import (
	"context"
	"log/slog"
	"sync"

	"github.com/forcadev/forca-online/internal/model"
	"github.com/forcadev/forca-online/internal/storage"
)

// View is one client's local picture of an active room
type View struct {
	Room     *model.Room
	Mine     *model.Progress
	Opponent *model.Progress
}

// Channel subscribes one player to one room at a time
type Channel struct {
	storage  storage.Storage
	playerID model.PlayerID
	logger   *slog.Logger

	mu      sync.RWMutex
	view    View
	updates chan struct{}
	cancel  func()
	done    chan struct{}
}

// NewChannel creates a channel for the given player
func NewChannel(storage storage.Storage, playerID model.PlayerID, logger *slog.Logger) *Channel {
	return &Channel{
		storage:  storage,
		playerID: playerID,
		logger:   logger.With(slog.String("component", "sync")),
		updates:  make(chan struct{}, 1),
	}
}

// Open subscribes to the room's change feed and then takes a baseline
// fetch of the room and both progress records. Subscribing first means
// writes landing during the fetch are not lost; they arrive as
// notifications and the full-row replacement makes redelivery harmless.
// Re-opening an already-open channel tears the old subscription down.
func (c *Channel) Open(ctx context.Context, roomID model.RoomID) error {
	c.Close()

	feed, cancel, err := c.storage.Subscribe(ctx, roomID)
	if err != nil {
		return err
	}

	if err := c.refetch(ctx, roomID); err != nil {
		cancel()
		return err
	}

	done := make(chan struct{})
	c.mu.Lock()
	c.cancel = cancel
	c.done = done
	c.mu.Unlock()

	go c.consume(feed, done)

	c.logger.Info("sync channel opened", slog.String("room_id", string(roomID)))
	return nil
}

// Close tears down the current subscription and clears the local view.
// In-flight remote writes are not cancelled; they surface on the next Open.
func (c *Channel) Close() {
	c.mu.Lock()
	cancel := c.cancel
	done := c.done
	c.cancel = nil
	c.done = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}

	c.mu.Lock()
	c.view = View{}
	c.mu.Unlock()
}

// Snapshot returns a copy of the current view
func (c *Channel) Snapshot() View {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.view
}

// Updates signals after each applied change. The channel has a buffer of
// one: consumers that coalesce redraws read it at their own pace.
func (c *Channel) Updates() <-chan struct{} {
	return c.updates
}

// refetch establishes the baseline view from a full fetch
func (c *Channel) refetch(ctx context.Context, roomID model.RoomID) error {
	room, err := c.storage.GetRoom(ctx, roomID)
	if err != nil {
		return err
	}

	records, err := c.storage.GetProgressForRoom(ctx, roomID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.view = View{Room: room}
	for _, p := range records {
		if p.PlayerID == c.playerID {
			c.view.Mine = p
		} else {
			c.view.Opponent = p
		}
	}
	c.mu.Unlock()
	return nil
}

func (c *Channel) consume(feed <-chan model.Change, done chan struct{}) {
	defer close(done)
	for change := range feed {
		c.apply(change)
	}
}

// apply replaces the local row the change refers to. Progress rows are
// routed to the mine/opponent slot by player id.
func (c *Channel) apply(change model.Change) {
	c.mu.Lock()
	switch change.Kind {
	case model.ChangeRoom:
		if change.Room != nil {
			c.view.Room = change.Room
		}
	case model.ChangeProgress:
		if change.Progress != nil {
			if change.Progress.PlayerID == c.playerID {
				c.view.Mine = change.Progress
			} else {
				c.view.Opponent = change.Progress
			}
		}
	}
	c.mu.Unlock()

	select {
	case c.updates <- struct{}{}:
	default:
	}
}
