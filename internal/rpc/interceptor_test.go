package rpc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/fekuna/smart-inventory/internal/logger"
	"github.com/fekuna/smart-inventory/internal/model"
)

func TestLoggingInterceptor(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	intercept := LoggingInterceptor(logger.NewFromZap(zap.New(core)))
	info := &grpc.UnaryServerInfo{FullMethod: "/smartinventory.v1.InventoryService/ProcessSale"}

	_, err := intercept(context.Background(), nil, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return nil, Error(ctx, model.ErrProductNotFound)
	})
	require.Error(t, err)

	entries := logs.FilterMessage("grpc request failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "NotFound", entries[0].ContextMap()["code"])
	assert.Equal(t, info.FullMethod, entries[0].ContextMap()["method"])
}

func TestRecoveryInterceptor(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	intercept := RecoveryInterceptor(logger.NewFromZap(zap.New(core)))
	info := &grpc.UnaryServerInfo{FullMethod: "/x/y"}

	_, err := intercept(context.Background(), nil, info, func(context.Context, interface{}) (interface{}, error) {
		panic("boom")
	})
	assert.Equal(t, codes.Internal, status.Code(err))
	assert.Equal(t, 1, logs.FilterMessage("grpc handler panic").Len())
}
