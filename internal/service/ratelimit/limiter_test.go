package ratelimit

import (
	"testing"
	"time"
)

func TestAllowConsumesBucket(t *testing.T) {
	l := New()
	for i := 0; i < 3; i++ {
		if !l.Allow("client", 3, 0) {
			t.Fatalf("call %d denied, want allowed", i)
		}
	}
	if l.Allow("client", 3, 0) {
		t.Fatalf("expected empty bucket to deny")
	}
}

func TestAllowKeysAreIndependent(t *testing.T) {
	l := New()
	if !l.Allow("a", 1, 0) {
		t.Fatalf("a denied")
	}
	if l.Allow("a", 1, 0) {
		t.Fatalf("a allowed twice")
	}
	if !l.Allow("b", 1, 0) {
		t.Fatalf("b denied by a's bucket")
	}
}

func TestAllowRefills(t *testing.T) {
	l := New()
	if !l.Allow("client", 1, 100) {
		t.Fatalf("first call denied")
	}
	if l.Allow("client", 1, 100) {
		t.Fatalf("expected deny before refill")
	}
	// 100 tokens/sec restores a full token within tens of milliseconds.
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if l.Allow("client", 1, 100) {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("bucket never refilled")
}
