package queue_test

import (
	"context"
	"testing"

	"github.com/matheusot/enquete/queue"
)

func TestNewClient(t *testing.T) {
	t.Run("fails without a redis url", func(t *testing.T) {
		t.Setenv("REDIS_URL", "")

		if _, err := queue.NewClient(context.Background()); err == nil {
			t.Error("expected an error when REDIS_URL is unset")
		}
	})

	t.Run("close returns nil when the underlying client closes cleanly", func(t *testing.T) {
		t.Setenv("REDIS_URL", "redis://localhost:6379")

		client, err := queue.NewClient(context.Background())
		if err != nil {
			t.Fatalf("could not create queue client: %v", err)
		}

		if err := client.Close(); err != nil {
			t.Errorf("close returned %v, want nil", err)
		}
	})
}
