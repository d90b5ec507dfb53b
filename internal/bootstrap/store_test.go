package bootstrap

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-account-service/config"
	"github.com/oksasatya/go-account-service/internal/domain/entity"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	for _, driver := range []string{"memory", "sqlite"} {
		t.Run(driver, func(t *testing.T) {
			cfg := &config.Config{DBDriver: driver, SQLitePath: filepath.Join(t.TempDir(), "accounts.db")}
			store, err := OpenStore(ctx, cfg, quietLogger())
			require.NoError(t, err)
			defer store.Close()

			assert.Equal(t, driver, store.Driver)
			u := &entity.User{Username: "alice", PasswordHash: "x"}
			require.NoError(t, store.Repo.Create(ctx, u))
			got, err := store.Repo.GetByUsername(ctx, "alice")
			require.NoError(t, err)
			assert.Equal(t, u.ID, got.ID)
		})
	}
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	_, err := OpenStore(context.Background(), &config.Config{DBDriver: "mongo"}, quietLogger())
	assert.ErrorContains(t, err, "mongo")
}
