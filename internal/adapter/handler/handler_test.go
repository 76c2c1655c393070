package handler

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rl1809/shoe-inventory/internal/adapter/storage"
	"github.com/rl1809/shoe-inventory/internal/core/service"
)

const sampleInventory = `Country,Code,Product,Cost,Quantity
England,SKU3001,Tale Runner,100,30
England,SKU3002,Philosopher Boot,200,40
Ireland,SKU3003,Wardrobe Slip-On,300,25
South Africa,SKU3004,Ring Hiker,400,37
England,SKU3005,Wonderland Flat,19.99,12
`

type testEnv struct {
	path string
	repo *storage.FileAdapter
	svc  *service.InventoryService
}

// setupTestEnv writes content to a temp inventory file and wires a service
// on top of it. The service is not loaded yet.
func setupTestEnv(t *testing.T, content string) *testEnv {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inventory.txt")
	if content != "" {
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	repo := storage.NewFileAdapter(path, nil)
	return &testEnv{
		path: path,
		repo: repo,
		svc:  service.NewInventoryService(repo, nil),
	}
}

func setupLoadedEnv(t *testing.T, content string) *testEnv {
	t.Helper()
	env := setupTestEnv(t, content)
	require.NoError(t, env.svc.Load(context.Background()))
	return env
}

func (e *testEnv) fileContent(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(e.path)
	require.NoError(t, err)
	return string(data)
}
