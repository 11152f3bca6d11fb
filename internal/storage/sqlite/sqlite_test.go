package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/mmynk/addressbook/internal/book"
	"github.com/mmynk/addressbook/internal/models"
)

// snapshot flattens a book into comparable values.
type snapshot struct {
	Name     string
	Phones   []string
	Birthday string
}

func snapshotOf(b *book.AddressBook) []snapshot {
	var out []snapshot
	for _, r := range b.Records() {
		s := snapshot{Name: r.Name.String(), Phones: r.PhoneNumbers()}
		if r.Birthday != nil {
			s.Birthday = r.Birthday.String()
		}
		out = append(out, s)
	}
	return out
}

func testBook(t *testing.T) *book.AddressBook {
	t.Helper()
	b := book.New()

	alice, _ := models.NewRecord("Alice")
	for _, p := range []string{"1234567890", "0987654321", "1234567890"} {
		if err := alice.AddPhone(p); err != nil {
			t.Fatalf("AddPhone failed: %v", err)
		}
	}
	b.Add(alice)

	bob, _ := models.NewRecord("Bob")
	if err := bob.AddBirthday("29.02.2000"); err != nil {
		t.Fatalf("AddBirthday failed: %v", err)
	}
	b.Add(bob)

	carol, _ := models.NewRecord("Carol")
	if err := carol.AddPhone("5555555555"); err != nil {
		t.Fatalf("AddPhone failed: %v", err)
	}
	if err := carol.AddBirthday("01.01.1970"); err != nil {
		t.Fatalf("AddBirthday failed: %v", err)
	}
	b.Add(carol)

	return b
}

func TestSQLiteStore(t *testing.T) {
	// Create temp directory for test database
	tempDir, err := os.MkdirTemp("", "addressbook-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, "nested", "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	t.Run("Load on fresh database returns empty book", func(t *testing.T) {
		b, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if b.Len() != 0 {
			t.Errorf("Expected empty book, got %d records", b.Len())
		}
	})

	t.Run("LastSaved reports nothing before first save", func(t *testing.T) {
		if _, ok, err := store.LastSaved(ctx); err != nil || ok {
			t.Errorf("LastSaved = %v, %v; want false, nil", ok, err)
		}
	})

	t.Run("Save records save time", func(t *testing.T) {
		before := time.Now().Add(-time.Second)
		if err := store.Save(ctx, testBook(t)); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		savedAt, ok, err := store.LastSaved(ctx)
		if err != nil {
			t.Fatalf("LastSaved failed: %v", err)
		}
		if !ok {
			t.Fatal("Expected a save time after Save")
		}
		if savedAt.Before(before) || savedAt.After(time.Now().Add(time.Second)) {
			t.Errorf("LastSaved = %v, want around now", savedAt)
		}
	})

	t.Run("Save then Load round-trips", func(t *testing.T) {
		original := testBook(t)
		if err := store.Save(ctx, original); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		loaded, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if diff := cmp.Diff(snapshotOf(original), snapshotOf(loaded)); diff != "" {
			t.Errorf("round-trip mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Save replaces previous contents", func(t *testing.T) {
		b := testBook(t)
		b.Delete("Alice")
		if err := store.Save(ctx, b); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		loaded, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if _, ok := loaded.Find("Alice"); ok {
			t.Error("Alice survived a save that no longer contains her")
		}
		if loaded.Len() != 2 {
			t.Errorf("Expected 2 records, got %d", loaded.Len())
		}
	})

	t.Run("Reopened store sees saved data", func(t *testing.T) {
		if err := store.Save(ctx, testBook(t)); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		reopened, err := New(dbPath)
		if err != nil {
			t.Fatalf("Failed to reopen store: %v", err)
		}
		defer reopened.Close()

		loaded, err := reopened.Load(ctx)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if diff := cmp.Diff(snapshotOf(testBook(t)), snapshotOf(loaded)); diff != "" {
			t.Errorf("reopen mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Load rejects corrupted phone", func(t *testing.T) {
		if err := store.Save(ctx, testBook(t)); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if _, err := store.db.Exec("UPDATE phones SET number = 'bad'"); err != nil {
			t.Fatalf("corrupting phones failed: %v", err)
		}
		if _, err := store.Load(ctx); err == nil {
			t.Error("Expected error loading corrupted phone, got nil")
		}
	})
}
