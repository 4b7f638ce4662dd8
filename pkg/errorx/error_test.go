package errorx

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(NotFound, "Not found group %s", "test-slug")
	require.Equal(t, "Not found group test-slug", err.Error())
	require.Equal(t, NotFound, err.Code)
}

func TestIs(t *testing.T) {
	wrapped := fmt.Errorf("wrap: %w", New(PermissionDenied, "Permission denied"))
	require.True(t, Is(wrapped, PermissionDenied))
	require.False(t, Is(wrapped, NotFound))
	require.True(t, Is(errors.New("plain"), Unknown.Code))
}
