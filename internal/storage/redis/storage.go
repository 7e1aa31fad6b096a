package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/trouze/movienight/internal/model"
	"github.com/trouze/movienight/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
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
		return nil, err
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

// Cursor operations

func (s *Storage) GetCursor(ctx context.Context) (int, error) {
	val, err := s.client.Get(ctx, cursorKey()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// Never set; default to the first slot
			return 0, nil
		}
		return 0, err
	}

	cursor, err := strconv.Atoi(val)
	if err != nil {
		return 0, err
	}
	return cursor, nil
}

func (s *Storage) SetCursor(ctx context.Context, value int) error {
	// Plain number, last write wins
	return s.client.Set(ctx, cursorKey(), value, 0).Err()
}

// Member operations

func (s *Storage) SaveMember(ctx context.Context, member *model.Member) error {
	data, err := json.Marshal(member)
	if err != nil {
		return err
	}

	key := memberKey(member.ID)

	// Only push to the index on first save so the enumeration order
	// stays free of duplicates
	pipe := s.client.Pipeline()
	exists := s.client.Exists(ctx, key).Val()
	pipe.Set(ctx, key, data, 0)
	if exists == 0 {
		pipe.RPush(ctx, membersIndexKey(), key)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetMember(ctx context.Context, id model.MemberID) (*model.Member, error) {
	data, err := s.client.Get(ctx, memberKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrMemberNotFound
		}
		return nil, err
	}

	var member model.Member
	if err := json.Unmarshal(data, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *Storage) ListMembers(ctx context.Context) ([]*model.Member, error) {
	keys, err := s.client.LRange(ctx, membersIndexKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	if len(keys) == 0 {
		return []*model.Member{}, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	members := make([]*model.Member, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Member was deleted but the index entry lingered
		}
		var member model.Member
		if err := json.Unmarshal([]byte(val.(string)), &member); err != nil {
			continue // Skip invalid data
		}
		members = append(members, &member)
	}

	return members, nil
}

func (s *Storage) DeleteMember(ctx context.Context, id model.MemberID) error {
	key := memberKey(id)

	pipe := s.client.Pipeline()
	pipe.Del(ctx, key)
	pipe.LRem(ctx, membersIndexKey(), 0, key)
	_, err := pipe.Exec(ctx)
	return err
}

// Credentials operations

func (s *Storage) SaveCredentials(ctx context.Context, creds *model.Credentials) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return err
	}

	// Pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, credentialsKey(creds.MemberID), data, 0)
	pipe.Set(ctx, usernameIndexKey(creds.Username), string(creds.MemberID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetCredentialsByUsername(ctx context.Context, username string) (*model.Credentials, error) {
	memberIDStr, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrMemberNotFound
		}
		return nil, err
	}

	data, err := s.client.Get(ctx, credentialsKey(model.MemberID(memberIDStr))).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrMemberNotFound
		}
		return nil, err
	}

	var creds model.Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

// Movie operations

func (s *Storage) SaveMovie(ctx context.Context, movie *model.Movie) error {
	data, err := json.Marshal(movie)
	if err != nil {
		return err
	}

	key := movieKey(movie.ID)

	pipe := s.client.Pipeline()
	exists := s.client.Exists(ctx, key).Val()
	pipe.Set(ctx, key, data, 0)
	if exists == 0 {
		pipe.RPush(ctx, moviesIndexKey(), key)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetMovie(ctx context.Context, id model.MovieID) (*model.Movie, error) {
	data, err := s.client.Get(ctx, movieKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrMovieNotFound
		}
		return nil, err
	}

	var movie model.Movie
	if err := json.Unmarshal(data, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

func (s *Storage) ListMovies(ctx context.Context) ([]*model.Movie, error) {
	keys, err := s.client.LRange(ctx, moviesIndexKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	if len(keys) == 0 {
		return []*model.Movie{}, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	movies := make([]*model.Movie, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var movie model.Movie
		if err := json.Unmarshal([]byte(val.(string)), &movie); err != nil {
			continue
		}
		movies = append(movies, &movie)
	}

	return movies, nil
}

func (s *Storage) DeleteMovie(ctx context.Context, id model.MovieID) error {
	key := movieKey(id)

	pipe := s.client.Pipeline()
	pipe.Del(ctx, key)
	pipe.LRem(ctx, moviesIndexKey(), 0, key)
	_, err := pipe.Exec(ctx)
	return err
}

// Chat operations

func (s *Storage) AppendChatMessage(ctx context.Context, msg *model.ChatMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.RPush(ctx, chatKey(), data)
	if s.cfg.ChatHistoryCap > 0 {
		pipe.LTrim(ctx, chatKey(), int64(-s.cfg.ChatHistoryCap), -1)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) RecentChatMessages(ctx context.Context, n int) ([]*model.ChatMessage, error) {
	if n <= 0 {
		return []*model.ChatMessage{}, nil
	}

	values, err := s.client.LRange(ctx, chatKey(), int64(-n), -1).Result()
	if err != nil {
		return nil, err
	}

	messages := make([]*model.ChatMessage, 0, len(values))
	for _, val := range values {
		var msg model.ChatMessage
		if err := json.Unmarshal([]byte(val), &msg); err != nil {
			continue // Skip invalid history entries
		}
		messages = append(messages, &msg)
	}

	return messages, nil
}
