package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/forcadev/forca-online/internal/model"
	"github.com/forcadev/forca-online/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Rows are stored as JSON values; change notifications travel over a
// pub/sub channel per room, carrying the full new row.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, model.ErrBackendUnavailable
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, playerKey(player.ID), data, s.cfg.PlayerTTL).Err()
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

// Room operations

func (s *Storage) SaveRoom(ctx context.Context, room *model.Room) error {
	data, err := json.Marshal(room)
	if err != nil {
		return err
	}

	event, err := json.Marshal(model.RoomChange(room))
	if err != nil {
		return err
	}

	// Save, index by code, and notify subscribers in one pipeline
	pipe := s.client.Pipeline()
	pipe.Set(ctx, roomKey(room.ID), data, s.cfg.RoomTTL)
	pipe.Set(ctx, codeIndexKey(room.Code), string(room.ID), s.cfg.RoomTTL)
	pipe.Publish(ctx, roomChannel(room.ID), event)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error) {
	data, err := s.client.Get(ctx, roomKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRoomNotFound
		}
		return nil, err
	}

	var room model.Room
	if err := json.Unmarshal(data, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *Storage) GetRoomByCode(ctx context.Context, code model.RoomCode) (*model.Room, error) {
	roomIDStr, err := s.client.Get(ctx, codeIndexKey(code)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRoomNotFound
		}
		return nil, err
	}

	return s.GetRoom(ctx, model.RoomID(roomIDStr))
}

func (s *Storage) RoomCodeExists(ctx context.Context, code model.RoomCode) (bool, error) {
	exists, err := s.client.Exists(ctx, codeIndexKey(code)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

// Progress operations

func (s *Storage) SaveProgress(ctx context.Context, progress *model.Progress) error {
	data, err := json.Marshal(progress)
	if err != nil {
		return err
	}

	event, err := json.Marshal(model.ProgressChange(progress))
	if err != nil {
		return err
	}

	pKey := progressKey(progress.RoomID, progress.PlayerID)
	indexKey := progressForRoomIndexKey(progress.RoomID)

	pipe := s.client.Pipeline()
	pipe.Set(ctx, pKey, data, s.cfg.RoomTTL)
	pipe.SAdd(ctx, indexKey, pKey)
	pipe.Expire(ctx, indexKey, s.cfg.RoomTTL) // Keep index TTL in sync
	pipe.Publish(ctx, roomChannel(progress.RoomID), event)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetProgress(ctx context.Context, roomID model.RoomID, playerID model.PlayerID) (*model.Progress, error) {
	data, err := s.client.Get(ctx, progressKey(roomID, playerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrProgressNotFound
		}
		return nil, err
	}

	var progress model.Progress
	if err := json.Unmarshal(data, &progress); err != nil {
		return nil, err
	}
	return &progress, nil
}

func (s *Storage) GetProgressForRoom(ctx context.Context, roomID model.RoomID) ([]*model.Progress, error) {
	indexKey := progressForRoomIndexKey(roomID)

	keys, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, err
	}

	if len(keys) == 0 {
		return []*model.Progress{}, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	records := make([]*model.Progress, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Record may have expired
		}
		var progress model.Progress
		if err := json.Unmarshal([]byte(val.(string)), &progress); err != nil {
			continue // Skip invalid data
		}
		records = append(records, &progress)
	}

	return records, nil
}

// Subscription operations

func (s *Storage) Subscribe(ctx context.Context, roomID model.RoomID) (<-chan model.Change, func(), error) {
	pubsub := s.client.Subscribe(ctx, roomChannel(roomID))

	// Confirm the subscription is live before reporting success, so the
	// caller's follow-up baseline fetch covers any earlier writes
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, err
	}

	ch := make(chan model.Change, 64)
	done := make(chan struct{})
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			close(done)
			_ = pubsub.Close()
		})
	}

	go func() {
		defer close(ch)
		for msg := range pubsub.Channel() {
			var change model.Change
			if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
				continue
			}
			select {
			case ch <- change:
			case <-ctx.Done():
				cancel()
				return
			}
		}
	}()

	// The watcher must also exit when the caller cancels directly, not only
	// on context cancellation
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-done:
		}
	}()

	return ch, cancel, nil
}
