package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthService_Check_Healthy(t *testing.T) {
	svc := NewHealthService("Simon Tech Solutions API", pingerFunc(func(context.Context) error { return nil }))

	res, err := svc.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "healthy", res.Status)
	assert.Equal(t, "Simon Tech Solutions API", res.Service)
	assert.Empty(t, res.Error)
}

func TestHealthService_Check_Unhealthy(t *testing.T) {
	svc := NewHealthService("api", pingerFunc(func(context.Context) error {
		return errors.New("ping failed: connection refused")
	}))

	res, err := svc.Check(context.Background())
	require.Error(t, err)
	assert.Equal(t, "unhealthy", res.Status)
	assert.Contains(t, res.Error, "connection refused")
}
