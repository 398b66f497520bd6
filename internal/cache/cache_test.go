package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClient_NilBehavesLikeEmptyCache(t *testing.T) {
	var c *Client
	ctx := context.Background()

	assert.NoError(t, c.Ping(ctx))

	data, err := c.Get(ctx, "rating_summary:1")
	assert.NoError(t, err)
	assert.Nil(t, data)

	assert.NoError(t, c.Set(ctx, "rating_summary:1", []byte(`{"avg":3}`), time.Minute))
	assert.NoError(t, c.Delete(ctx, "rating_summary:1"))

	// Still a miss after Set: a nil client never stores anything.
	data, err = c.Get(ctx, "rating_summary:1")
	assert.NoError(t, err)
	assert.Nil(t, data)
}
