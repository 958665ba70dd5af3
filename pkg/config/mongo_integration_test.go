//go:build integration

package config

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestMongoBackend_Integration(t *testing.T) {
	uri := os.Getenv(EnvMongoURI)
	if uri == "" {
		t.Skipf("%s not set", EnvMongoURI)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	b, err := NewMongoBackend(ctx, MongoOptions{
		URI:        uri,
		Database:   DefaultMongoDatabase + "_test",
		Collection: "configuration_" + uuid.NewString(),
	})
	if err != nil {
		t.Fatalf("NewMongoBackend() error: %v", err)
	}
	t.Cleanup(func() {
		_ = b.coll.Drop(context.Background())
		b.Close()
	})

	testBackendContract(t, b)

	// A second backend over the same collection sees the same entries.
	shared := NewMongoBackendWithCollection(b.coll)
	v, ok, err := shared.Get(ctx, "runelite", "XpTracker_preferredLocation")
	if err != nil || !ok || v != "30:40" {
		t.Errorf("shared Get = %q, %v, %v; want 30:40", v, ok, err)
	}
	if err := shared.Close(); err != nil {
		t.Errorf("Close on borrowed collection: %v", err)
	}
}
