package store

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPostgresStore(t *testing.T) {
	pgURL := os.Getenv("PG_URL")
	if pgURL == "" {
		t.Skip("PG_URL not set, skipping PostgreSQL store tests")
	}

	pool, err := Connect(context.Background(), pgURL)
	require.NoError(t, err)
	defer pool.Close()

	exerciseStore(t, NewPostgresStore(pool))
}
