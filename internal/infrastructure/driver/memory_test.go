package driver

import (
	"testing"
	"time"
)

func TestMemoryKVSetGet(t *testing.T) {
	kv := NewMemoryKV()

	if _, err := kv.Get("missing"); err != ErrKeyNotFound {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}

	if err := kv.Set("k", "v"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := kv.Get("k")
	if err != nil || got != "v" {
		t.Errorf("Get(k) = %q, %v, want v, nil", got, err)
	}

	kv.Set("k", "v2")
	if got, _ := kv.Get("k"); got != "v2" {
		t.Errorf("overwrite not applied, got %q", got)
	}
}

func TestMemoryKVDel(t *testing.T) {
	kv := NewMemoryKV()
	kv.Set("k", "v")

	if err := kv.Del("k"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := kv.Get("k"); err != ErrKeyNotFound {
		t.Errorf("expected ErrKeyNotFound after delete, got %v", err)
	}
	if err := kv.Del("k"); err != nil {
		t.Errorf("deleting a missing key must be a no-op, got %v", err)
	}
}

func TestMemoryKVExists(t *testing.T) {
	kv := NewMemoryKV()

	if ok, _ := kv.Exists("k"); ok {
		t.Error("missing key reported as existing")
	}
	kv.Set("k", "v")
	if ok, _ := kv.Exists("k"); !ok {
		t.Error("present key reported as missing")
	}
}

func TestMemoryKVExpiry(t *testing.T) {
	kv := NewMemoryKV()

	kv.SetEX("short", "v", 10*time.Millisecond)
	if got, err := kv.Get("short"); err != nil || got != "v" {
		t.Fatalf("key unreadable before expiry: %q, %v", got, err)
	}

	time.Sleep(20 * time.Millisecond)
	if _, err := kv.Get("short"); err != ErrKeyNotFound {
		t.Errorf("expected ErrKeyNotFound after expiry, got %v", err)
	}
	if ok, _ := kv.Exists("short"); ok {
		t.Error("expired key reported as existing")
	}

	// zero expiration means no deadline
	kv.SetEX("forever", "v", 0)
	if _, err := kv.Get("forever"); err != nil {
		t.Errorf("key with zero expiration must not expire, got %v", err)
	}
}
