package taskboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client is the Redis persistence adapter.
// All keys and channels are automatically namespaced with the instance name.
// The client is thread-safe and can be used concurrently from multiple goroutines.
type Client struct {
	rdb          *redis.Client
	instanceName string
}

// StateEvent announces that a key was written or removed.
type StateEvent struct {
	Key     string `json:"key"`
	Removed bool   `json:"removed,omitempty"`
	AtMs    int64  `json:"at_ms"`
}

// NewClient creates a new Redis-backed storage for the specified instance.
//
// Parameters:
//   - redisOpts: Redis connection options (address, password, DB, etc.)
//   - instanceName: board instance identifier (must not be empty)
//
// Returns an error if instanceName is empty.
func NewClient(redisOpts *redis.Options, instanceName string) (*Client, error) {
	if instanceName == "" {
		return nil, fmt.Errorf("instance name cannot be empty")
	}

	return &Client{
		rdb:          redis.NewClient(redisOpts),
		instanceName: instanceName,
	}, nil
}

// Close closes the Redis connection. Implements io.Closer.
// After calling Close(), the client should not be used.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Ping verifies Redis connectivity. Useful for health checks.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// InstanceName returns the namespace this client writes under.
func (c *Client) InstanceName() string {
	return c.instanceName
}

// GetItem reads a logical key. Returns ErrNotFound if the key does not exist.
func (c *Client) GetItem(ctx context.Context, key string) (string, error) {
	value, err := c.rdb.Get(ctx, NamespacedKey(c.instanceName, key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to read %s from Redis: %w", key, err)
	}
	return value, nil
}

// SetItem writes a logical key and publishes a state event.
// Publishes to taskboard:{instance}:state_events after a successful write.
func (c *Client) SetItem(ctx context.Context, key, value string) error {
	if err := c.rdb.Set(ctx, NamespacedKey(c.instanceName, key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write %s to Redis: %w", key, err)
	}

	return c.publish(ctx, StateEvent{Key: key, AtMs: time.Now().UnixMilli()})
}

// RemoveItem deletes a logical key and publishes a state event.
func (c *Client) RemoveItem(ctx context.Context, key string) error {
	removed, err := c.rdb.Del(ctx, NamespacedKey(c.instanceName, key)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete %s from Redis: %w", key, err)
	}

	// Nothing changed, nothing to announce
	if removed == 0 {
		return nil
	}

	return c.publish(ctx, StateEvent{Key: key, Removed: true, AtMs: time.Now().UnixMilli()})
}

// Keys lists the logical keys currently stored for this instance.
// Uses SCAN so large keyspaces do not block the server.
func (c *Client) Keys(ctx context.Context) ([]string, error) {
	prefix := KeyPrefix(c.instanceName)
	iter := c.rdb.Scan(ctx, 0, prefix+"*", 0).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val()[len(prefix):])
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan keys: %w", err)
	}

	return keys, nil
}

func (c *Client) publish(ctx context.Context, event StateEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal state event: %w", err)
	}

	channel := StateEventsChannel(c.instanceName)
	if err := c.rdb.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish state event: %w", err)
	}

	return nil
}

// StateSubscription represents an active Pub/Sub subscription to state events.
// Caller must call Close() when done to clean up resources.
type StateSubscription struct {
	events <-chan *StateEvent
	errors <-chan error
	cancel func()
	once   sync.Once
}

// Events returns the channel of state events.
// The channel will be closed when the subscription is closed or the context is cancelled.
func (s *StateSubscription) Events() <-chan *StateEvent {
	return s.events
}

// Errors returns the channel of subscription errors.
// The subscription continues after errors - messages are skipped.
func (s *StateSubscription) Errors() <-chan error {
	return s.errors
}

// Close stops the subscription and cleans up resources. Implements io.Closer.
// Safe to call multiple times - subsequent calls are no-ops.
func (s *StateSubscription) Close() error {
	s.once.Do(s.cancel)
	return nil
}

// SubscribeStateEvents subscribes to write events for this instance.
// Caller must call subscription.Close() when done.
// Context cancellation also stops the subscription.
//
// Events are delivered on a buffered channel (size 10) to prevent blocking.
// Redis Pub/Sub is at-most-once: a slow subscriber may miss events.
func (c *Client) SubscribeStateEvents(ctx context.Context) (*StateSubscription, error) {
	pubsub := c.rdb.Subscribe(ctx, StateEventsChannel(c.instanceName))

	// Wait for the subscription to be confirmed so no write is missed
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to state events: %w", err)
	}

	eventsChan := make(chan *StateEvent, 10)
	errorsChan := make(chan error, 10)

	subCtx, cancelFunc := context.WithCancel(ctx)

	go func() {
		defer close(eventsChan)
		defer close(errorsChan)
		defer pubsub.Close()

		ch := pubsub.Channel()

		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}

				var event StateEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					select {
					case errorsChan <- fmt.Errorf("failed to unmarshal state event: %w", err):
					case <-subCtx.Done():
						return
					}
					continue
				}

				select {
				case eventsChan <- &event:
				case <-subCtx.Done():
					return
				}
			}
		}
	}()

	return &StateSubscription{
		events: eventsChan,
		errors: errorsChan,
		cancel: cancelFunc,
	}, nil
}
