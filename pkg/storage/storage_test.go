package storage_test

import (
	"context"
	"testing"

	"github.com/haierkeys/fast-ledger-sync-service/pkg/storage"
	"github.com/haierkeys/fast-ledger-sync-service/pkg/storage/local_fs"
)

func TestNewClient_Local(t *testing.T) {
	cfg := &storage.Config{
		Type:     storage.LOCAL,
		SavePath: t.TempDir(),
	}

	client, err := storage.NewClient(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("Failed to create local client: %v", err)
	}

	if _, ok := client.(*local_fs.LocalFS); !ok {
		t.Fatal("Client is not *local_fs.LocalFS")
	}
}

func TestNewClient_Invalid(t *testing.T) {
	cfg := &storage.Config{
		Type: "invalid",
	}

	_, err := storage.NewClient(context.Background(), cfg, nil)
	if err == nil {
		t.Fatal("Expected error for invalid storage type")
	}
}
