package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/haierkeys/fast-ledger-sync-service/internal/ledger"
	"github.com/haierkeys/fast-ledger-sync-service/internal/service"
	"github.com/haierkeys/fast-ledger-sync-service/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestLoadConfig_Defaults(t *testing.T) {
	p := writeConfig(t, "log:\n  level: debug\n")

	c, realpath, err := LoadConfig(p)
	require.NoError(t, err)
	assert.Equal(t, p, realpath)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "sqlite", c.Database.Type)
	assert.Equal(t, ledger.TypeObject, c.Remote.Type)
	assert.Equal(t, storage.LOCAL, c.Remote.Object.Type)
	assert.Equal(t, service.ValidationAdvisory, c.Sync.ValidationPolicy)
	assert.Empty(t, c.Schedule.BackupCron)
	assert.Equal(t, "release", c.Server.RunMode)
}

func TestLoadConfig_Overrides(t *testing.T) {
	p := writeConfig(t, `
remote:
  type: dynamodb
  rate-limit: 5
  dynamodb:
    table: books
sync:
  validation-policy: block
schedule:
  backup-cron: "0 3 * * *"
write-queue:
  capacity: 8
  timeout: 1m
`)

	c, _, err := LoadConfig(p)
	require.NoError(t, err)
	assert.Equal(t, ledger.TypeDynamoDB, c.Remote.Type)
	assert.Equal(t, 5.0, c.Remote.RateLimit)
	assert.Equal(t, "books", c.Remote.DynamoDB.Table)
	assert.Equal(t, "us-east-1", c.Remote.DynamoDB.Region)
	assert.Equal(t, service.ValidationBlock, c.GetServiceConfig().Sync.ValidationPolicy)
	assert.Equal(t, "0 3 * * *", c.Schedule.BackupCron)

	wq := c.GetWriteQueueConfig()
	assert.Equal(t, 8, wq.QueueCapacity)
	assert.Equal(t, time.Minute, wq.WriteTimeout)
}

func TestLoadConfig_Invalid(t *testing.T) {
	_, _, err := LoadConfig(writeConfig(t, "sync:\n  validation-policy: strict\n"))
	assert.ErrorContains(t, err, "validation-policy")

	_, _, err = LoadConfig(writeConfig(t, "remote:\n  type: ftp\n"))
	assert.ErrorContains(t, err, "remote.type")

	_, _, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read config file failed")

	_, _, err = LoadConfig(writeConfig(t, "log: [\n"))
	assert.ErrorContains(t, err, "parse config file failed")
}

func TestAppConfig_Save(t *testing.T) {
	p := writeConfig(t, "")
	c, _, err := LoadConfig(p)
	require.NoError(t, err)

	c.Schedule.BackupCron = "@daily"
	require.NoError(t, c.Save())

	again, _, err := LoadConfig(p)
	require.NoError(t, err)
	assert.Equal(t, "@daily", again.Schedule.BackupCron)
}

func TestAppConfig_GetDatabaseConfig(t *testing.T) {
	c, _, err := LoadConfig(writeConfig(t, "server:\n  run-mode: debug\ndatabase:\n  type: postgres\n  port: 5433\n"))
	require.NoError(t, err)

	db := c.GetDatabaseConfig()
	assert.Equal(t, "postgres", db.Type)
	assert.Equal(t, 5433, db.Port)
	assert.Equal(t, "debug", db.RunMode)
	assert.Equal(t, "disable", db.SSLMode)
}
