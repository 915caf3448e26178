package queue

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"SwingScope/pkg/logger"

	"github.com/redis/go-redis/v9"
)

func fileLogger(t *testing.T, path string) *logger.Logger {
	t.Helper()
	lgr, err := logger.New(&logger.Config{Level: "info", Format: "json", Output: path})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return lgr
}

func TestStartRetryProcessorRunsOnce(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "queue.log")
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	q := NewRedisQueue(fileLogger(t, logPath), nil, client, ModeConsumerOnly)

	q.StartRetryProcessor()
	q.StartRetryProcessor()

	close(q.stopCh)
	q.wg.Wait()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if got := strings.Count(string(data), "retry processor started"); got != 1 {
		t.Fatalf("expected a single retry processor, got %d", got)
	}
}

func TestStartRetryProcessorProducerOnlyNoop(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "queue.log")
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	q := NewRedisQueue(fileLogger(t, logPath), nil, client, ModeProducerOnly)

	q.StartRetryProcessor()
	q.wg.Wait()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if strings.Contains(string(data), "retry processor started") {
		t.Fatal("producer-only queue must not run a retry processor")
	}
}
