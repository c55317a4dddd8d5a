package redis

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sm8ta/fleet_maintenance_console/internal/core/ports"
)

// closedAddr returns an address nothing listens on.
func closedAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := l.Addr().String()
	l.Close()
	return addr
}

func TestConnectFailsWithoutServer(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if _, err := Connect(ctx, closedAddr(t), ""); err == nil {
		t.Fatalf("expected connection error")
	}
}

func TestStateStoreWrapsTransportErrors(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        closedAddr(t),
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	store := NewStateStore(client, 0)
	ctx := context.Background()

	_, err := store.Get(ctx, "fleet:session:token")
	if err == nil || errors.Is(err, ports.ErrStateNotFound) {
		t.Fatalf("transport failure must not look like a missing key, got %v", err)
	}
	if err := store.Set(ctx, "fleet:session:token", "tok"); err == nil {
		t.Fatalf("expected Set() error")
	}
	if err := store.Delete(ctx, "fleet:session:token"); err == nil {
		t.Fatalf("expected Delete() error")
	}
}
