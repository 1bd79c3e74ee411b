package database

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_WithDefaults(t *testing.T) {
	tests := []struct {
		name string
		in   Pool
		want Pool
	}{
		{
			name: "Zero value",
			in:   Pool{},
			want: DefaultPool,
		},
		{
			name: "Idle clamped to open",
			in:   Pool{MaxOpenConns: 2, MaxIdleConns: 8},
			want: Pool{
				MaxOpenConns:    2,
				MaxIdleConns:    2,
				ConnMaxLifetime: DefaultPool.ConnMaxLifetime,
				ConnMaxIdleTime: DefaultPool.ConnMaxIdleTime,
			},
		},
		{
			name: "Explicit values kept",
			in:   Pool{MaxOpenConns: 20, MaxIdleConns: 4, ConnMaxLifetime: time.Hour, ConnMaxIdleTime: time.Minute},
			want: Pool{MaxOpenConns: 20, MaxIdleConns: 4, ConnMaxLifetime: time.Hour, ConnMaxIdleTime: time.Minute},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.withDefaults())
		})
	}
}

func TestPool_ApplySetsOpenLimit(t *testing.T) {
	// sql.Open does not dial, so no server is needed.
	db, err := sql.Open("pgx", "postgres://billy@localhost:1/billy?sslmode=disable")
	require.NoError(t, err)
	defer db.Close()

	Pool{MaxOpenConns: 7}.apply(db)

	assert.Equal(t, 7, db.Stats().MaxOpenConnections)
}
