package util

import "testing"

func TestStorageKeyForUser(t *testing.T) {
	id := "google:12345"
	got := StorageKeyForUser(id)
	if got != StorageKeyForUser(id) {
		t.Fatalf("expected stable key, got %s", got)
	}
	for _, ch := range got {
		if !((ch >= 'a' && ch <= 'f') || (ch >= '0' && ch <= '9')) {
			t.Fatalf("key contains non-hex character: %c", ch)
		}
	}
	if len(got) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(got))
	}
	if StorageKeyForUser("guest:12345") == got {
		t.Fatal("expected distinct users to map to distinct keys")
	}
}
