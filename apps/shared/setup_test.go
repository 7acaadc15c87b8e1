package shared

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zhalalov2-code/online-course/core"
	"github.com/Zhalalov2-code/online-course/storage/database"
)

func TestOpenStorage(t *testing.T) {
	tests := []struct {
		name   string
		conf   core.DatabaseConfig
		withDB bool
	}{
		{name: "memory", conf: core.DatabaseConfig{Engine: database.EngineMemory}},
		{name: "sqlite", conf: core.DatabaseConfig{Engine: database.EngineSqlite, Path: filepath.Join(t.TempDir(), "test.db")}, withDB: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, err := OpenStorage(tt.conf)
			require.NoError(t, err)
			defer func() { assert.NoError(t, storage.Close()) }()
			assert.Equal(t, tt.withDB, storage.DB != nil)

			ctx := context.Background()
			require.NoError(t, storage.Completed.SetCompleted(ctx, "completedTests_1", `["4"]`))
			got, err := storage.Completed.GetCompleted(ctx, "completedTests_1")
			require.NoError(t, err)
			assert.Equal(t, `["4"]`, got)
		})
	}

	_, err := OpenStorage(core.DatabaseConfig{Engine: "mysql"})
	assert.Error(t, err)
}

func TestNewServices(t *testing.T) {
	storage, err := OpenStorage(core.DatabaseConfig{Engine: database.EngineMemory})
	require.NoError(t, err)

	conf := &core.Config{Backend: core.BackendConfig{URL: "http://localhost/school"}}
	svcs := NewServices(conf, NewLogger("TEST : ", conf), storage)
	assert.NotNil(t, svcs.Backend)
	assert.NotNil(t, svcs.User)
	assert.NotNil(t, svcs.Course)
	assert.NotNil(t, svcs.Quiz)
	assert.NotNil(t, svcs.Tracker)
}
