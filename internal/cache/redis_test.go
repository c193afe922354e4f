package cache

import (
	"context"
	"testing"
	"time"
)

func TestDisabledCachePassThrough(t *testing.T) {
	redisEnabled = false
	redisClient = nil

	var dest map[string]string
	hit, err := GetJSON(context.Background(), "quiz:2026-08-30", &dest)
	if err != nil {
		t.Fatalf("disabled GetJSON error: %v", err)
	}
	if hit {
		t.Fatalf("disabled cache must always miss")
	}
	if err := SetJSON(context.Background(), "quiz:2026-08-30", map[string]string{"a": "b"}, time.Minute); err != nil {
		t.Fatalf("disabled SetJSON error: %v", err)
	}
	if err := Del(context.Background(), "quiz:2026-08-30"); err != nil {
		t.Fatalf("disabled Del error: %v", err)
	}
}

func TestBuildKey(t *testing.T) {
	redisPrefix = "bb"

	if got := buildKey("daily_quiz:2026-08-30"); got != "bb:daily_quiz:2026-08-30" {
		t.Fatalf("key want bb:daily_quiz:2026-08-30 got %s", got)
	}
	if got := buildKey("  "); got != "bb" {
		t.Fatalf("blank key want bare prefix got %s", got)
	}
}
