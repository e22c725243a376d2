package pool

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestDefaultPoolConfig(t *testing.T) {
	cfg := DefaultPoolConfig()
	assert.Equal(t, 25, cfg.MaxOpenConns)
	assert.Equal(t, 5, cfg.MaxIdleConns)
	assert.Equal(t, 5*time.Minute, cfg.ConnMaxLifetime)
	assert.Equal(t, 10*time.Minute, cfg.ConnMaxIdleTime)
}

func createTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestSetupConnectionPool(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "valid config",
			cfg:  Config{MaxOpenConns: 10, MaxIdleConns: 5, ConnMaxLifetime: time.Minute},
		},
		{
			name: "idle equals open",
			cfg:  Config{MaxOpenConns: 10, MaxIdleConns: 10},
		},
		{
			name: "zero idle",
			cfg:  Config{MaxOpenConns: 10, MaxIdleConns: 0},
		},
		{
			name:    "zero open",
			cfg:     Config{MaxOpenConns: 0, MaxIdleConns: 5},
			wantErr: "MaxOpenConns must be greater than 0",
		},
		{
			name:    "negative open",
			cfg:     Config{MaxOpenConns: -1},
			wantErr: "MaxOpenConns must be greater than 0",
		},
		{
			name:    "negative idle",
			cfg:     Config{MaxOpenConns: 10, MaxIdleConns: -1},
			wantErr: "MaxIdleConns must be non-negative",
		},
		{
			name:    "idle above open",
			cfg:     Config{MaxOpenConns: 5, MaxIdleConns: 10},
			wantErr: "MaxIdleConns (10) cannot be greater than MaxOpenConns (5)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := createTestDB(t)
			err := SetupConnectionPool(db, tt.cfg)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)

			sqlDB, err := db.DB()
			require.NoError(t, err)
			assert.Equal(t, tt.cfg.MaxOpenConns, sqlDB.Stats().MaxOpenConnections)
		})
	}
}
