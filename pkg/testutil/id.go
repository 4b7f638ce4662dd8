package testutil

import (
	"context"

	"github.com/yatube-lab/backend/pkg/xcontext"
)

func NextID(ctx context.Context) int64 {
	return xcontext.SnowFlake(ctx).Generate().Int64()
}
