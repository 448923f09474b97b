package rediscache

import (
	"testing"

	"github.com/jobdam/jobdam-backend/internal/logger"
)

func TestNewWithoutAddr(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	cache, err := New(logger.NewNop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if cache != nil {
		t.Fatalf("expected a nil cache when REDIS_ADDR is unset")
	}
}
