package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginLimiter_Allow(t *testing.T) {
	t.Run("first attempt sets the window TTL", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		mock.ExpectIncr("login_attempts:1.2.3.4:20230001").SetVal(1)
		mock.ExpectExpire("login_attempts:1.2.3.4:20230001", time.Minute).SetVal(true)

		limiter := NewLoginLimiter(client, 10, time.Minute)
		allowed, err := limiter.Allow(context.Background(), "1.2.3.4:20230001")

		require.NoError(t, err)
		assert.True(t, allowed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("attempts within the limit pass", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		mock.ExpectIncr("login_attempts:k").SetVal(10)

		limiter := NewLoginLimiter(client, 10, time.Minute)
		allowed, err := limiter.Allow(context.Background(), "k")

		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("attempts over the limit are denied", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		mock.ExpectIncr("login_attempts:k").SetVal(11)

		limiter := NewLoginLimiter(client, 10, time.Minute)
		allowed, err := limiter.Allow(context.Background(), "k")

		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("redis failure fails open", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		mock.ExpectIncr("login_attempts:k").SetErr(assert.AnError)

		limiter := NewLoginLimiter(client, 10, time.Minute)
		allowed, err := limiter.Allow(context.Background(), "k")

		assert.Error(t, err)
		assert.True(t, allowed, "an unavailable limiter must not lock students out")
	})

	t.Run("nil client disables limiting", func(t *testing.T) {
		limiter := NewLoginLimiter(nil, 10, time.Minute)
		allowed, err := limiter.Allow(context.Background(), "k")

		require.NoError(t, err)
		assert.True(t, allowed)
	})
}
