package database

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"mindsprint_backend/internals/configs"
)

func TestOpenStoreMemory(t *testing.T) {
	log, hook := test.NewNullLogger()
	ctx := context.Background()

	b, err := OpenStore(ctx, &configs.Config{StoreDriver: configs.DriverMemory}, log)
	require.NoError(t, err)
	require.NoError(t, b.Ping(ctx))
	require.NoError(t, b.Close(ctx))

	_, isMigrator := b.(Migrator)
	require.False(t, isMigrator)
	require.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestOpenStoreUnknownDriver(t *testing.T) {
	log, _ := test.NewNullLogger()
	_, err := OpenStore(context.Background(), &configs.Config{StoreDriver: "redis"}, log)
	require.ErrorContains(t, err, "redis")
}
