package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github/chapool/child-wallet/internal/auth"
)

func TestOwnerContext(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, auth.OwnerFromContext(ctx))

	ctx = auth.WithOwner(ctx, "principal-1")
	assert.Equal(t, "principal-1", auth.OwnerFromContext(ctx))
}

func TestNormalizeOwner(t *testing.T) {
	assert.Equal(t, "abc", auth.NormalizeOwner("  abc\t"))
	assert.Empty(t, auth.NormalizeOwner("   "))
}
