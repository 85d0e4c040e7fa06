package lock

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAcquireRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.lock")

	if err := Acquire(path); err != nil {
		t.Fatalf("acquire: %v", err)
	}

	held, pid, err := IsHeld(path)
	if err != nil {
		t.Fatalf("is held: %v", err)
	}
	if !held {
		t.Fatal("lock should be held after acquire")
	}
	if pid != os.Getpid() {
		t.Errorf("lock pid = %d, want %d", pid, os.Getpid())
	}

	if err := Acquire(path); err == nil {
		t.Fatal("second acquire should fail while lock is held")
	}

	if err := Release(path); err != nil {
		t.Fatalf("release: %v", err)
	}

	held, _, err = IsHeld(path)
	if err != nil {
		t.Fatalf("is held after release: %v", err)
	}
	if held {
		t.Error("lock should not be held after release")
	}
}

func TestAcquireReplacesStaleLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.lock")

	// A lock file left behind by a dead process does not block.
	if err := os.WriteFile(path, []byte("999999999"), 0o644); err != nil {
		t.Fatalf("writing stale lock: %v", err)
	}

	if err := Acquire(path); err != nil {
		t.Fatalf("acquire over stale lock: %v", err)
	}
	defer Release(path)

	held, pid, err := IsHeld(path)
	if err != nil {
		t.Fatalf("is held: %v", err)
	}
	if !held || pid != os.Getpid() {
		t.Errorf("lock should now belong to this process, got held=%v pid=%d", held, pid)
	}
}

func TestReleaseMissingLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.lock")
	if err := Release(path); err != nil {
		t.Errorf("releasing an absent lock should be a no-op, got %v", err)
	}
}

func TestIsHeldGarbageContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.lock")
	if err := os.WriteFile(path, []byte("not a pid"), 0o644); err != nil {
		t.Fatalf("writing lock: %v", err)
	}

	held, _, err := IsHeld(path)
	if err != nil {
		t.Fatalf("is held: %v", err)
	}
	if held {
		t.Error("unparseable lock content should not count as held")
	}
}
