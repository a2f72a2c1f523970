package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_ClientOptions(t *testing.T) {
	opts := Config{
		URI:         "mongodb://localhost:27017",
		AppName:     "social-api",
		MaxPoolSize: 50,
		Timeout:     3 * time.Second,
	}.clientOptions()

	require.NotNil(t, opts.AppName)
	assert.Equal(t, "social-api", *opts.AppName)
	require.NotNil(t, opts.MaxPoolSize)
	assert.Equal(t, uint64(50), *opts.MaxPoolSize)
	require.NotNil(t, opts.ConnectTimeout)
	assert.Equal(t, 3*time.Second, *opts.ConnectTimeout)
	require.NotNil(t, opts.ServerSelectionTimeout)
	assert.Equal(t, 3*time.Second, *opts.ServerSelectionTimeout)
}

func TestConfig_DefaultTimeout(t *testing.T) {
	opts := Config{URI: "mongodb://localhost:27017"}.clientOptions()

	require.NotNil(t, opts.ConnectTimeout)
	assert.Equal(t, defaultTimeout, *opts.ConnectTimeout)
	assert.Nil(t, opts.AppName)
	assert.Nil(t, opts.MaxPoolSize)
}

func TestConnect_RequiresDatabase(t *testing.T) {
	_, _, err := Connect(context.Background(), Config{URI: "mongodb://localhost:27017"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database name")
}
