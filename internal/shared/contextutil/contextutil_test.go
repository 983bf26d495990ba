package contextutil_test

import (
	"context"
	"testing"

	"go-taxcalc/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestMetadataRoundTrip(t *testing.T) {
	ctx := contextutil.WithRequestID(context.Background(), "req-1")
	ctx = contextutil.WithUserID(ctx, "user-1")

	md := contextutil.ExtractMetadata(ctx)
	assert.Equal(t, "req-1", md.RequestID)
	assert.Equal(t, "user-1", md.UserID)

	empty := contextutil.ExtractMetadata(context.Background())
	assert.Empty(t, empty.RequestID)
	assert.Empty(t, empty.UserID)
}

func TestGetLogger(t *testing.T) {
	scoped := zap.NewExample()
	fallback := zap.NewNop()

	ctx := contextutil.WithLogger(context.Background(), scoped)
	assert.Same(t, scoped, contextutil.GetLogger(ctx, fallback))
	assert.Same(t, fallback, contextutil.GetLogger(context.Background(), fallback))
	assert.NotNil(t, contextutil.GetLogger(context.Background(), nil))
}
