package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
)

func TestConnect_UsesPassword(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	defer mr.Close()
	mr.RequireAuth("hunter2")
	ctx := context.Background()

	if _, err := Connect(ctx, Config{Addr: mr.Addr(), Timeout: time.Second}); err == nil {
		t.Fatalf("expected auth failure without a password")
	}

	client, err := Connect(ctx, Config{Addr: mr.Addr(), Password: "hunter2", Timeout: time.Second})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer client.Close()
}
