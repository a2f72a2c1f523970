package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepoKey(t *testing.T) {
	assert.Equal(t, "github:repos:octocat", repoKey("OctoCat"))
}

// An unreachable server surfaces as an error, never as a silent miss.
func TestRepoCache_GetUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	_, ok, err := NewRepoCache(client).Get(context.Background(), "octocat")
	require.Error(t, err)
	assert.False(t, ok)
}
