package redis

import "github.com/redis/rueidis"

// NewStoreForTest creates a Store around an injected client (for tests with mock.Client).
func NewStoreForTest(c rueidis.Client, keyPrefix string) *Store {
	return &Store{client: c, keyPrefix: keyPrefix}
}
