package storage

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
	if err := store.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}

	// Reopening runs the migrations again on an existing schema.
	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	store.Close()
}

func TestStoreOpenExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.overworld/test.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".overworld", "test.db")); err != nil {
		t.Errorf("database not created under HOME: %v", err)
	}
}

func TestScriptRuns(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.RecordScriptStart("s1", 0, "overworld/rooms/home/init"); err != nil {
		t.Fatalf("RecordScriptStart() failed: %v", err)
	}
	if _, err := store.RecordScriptStart("s1", 1, "dialog:home/wake-up"); err != nil {
		t.Fatalf("RecordScriptStart() failed: %v", err)
	}
	// Same handle in another session must not be touched.
	if _, err := store.RecordScriptStart("s2", 1, "dialog:other"); err != nil {
		t.Fatalf("RecordScriptStart() failed: %v", err)
	}
	if err := store.RecordScriptEnd("s1", 1); err != nil {
		t.Fatalf("RecordScriptEnd() failed: %v", err)
	}

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}

	// Newest first
	if runs[0].SessionID != "s2" || runs[0].Done() {
		t.Errorf("runs[0] = %+v, expected the open s2 run", runs[0])
	}
	if runs[1].Name != "dialog:home/wake-up" || !runs[1].Done() {
		t.Errorf("runs[1] = %+v, expected the completed wake-up dialog", runs[1])
	}
	if runs[2].Script != 0 || runs[2].Done() {
		t.Errorf("runs[2] = %+v, expected the open init script", runs[2])
	}
	if runs[2].StartedAt.IsZero() {
		t.Error("StartedAt should be set")
	}

	limited, err := store.RecentRuns(1)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("Expected 1 run with limit, got %d", len(limited))
	}
}

func TestEvents(t *testing.T) {
	store := openTestStore(t)

	for _, name := range []string{"room/home/enter", "ui/confirm", "home/door"} {
		if err := store.RecordEvent("s1", name, 1); err != nil {
			t.Fatalf("RecordEvent() failed: %v", err)
		}
	}
	if err := store.RecordEvent("s1", "ui/cancel", 0); err != nil {
		t.Fatalf("RecordEvent() failed: %v", err)
	}

	events, err := store.RecentEvents(0)
	if err != nil {
		t.Fatalf("RecentEvents() failed: %v", err)
	}
	if len(events) != 4 {
		t.Fatalf("Expected 4 events, got %d", len(events))
	}
	if events[0].Event != "ui/cancel" || events[0].Subscribers != 0 {
		t.Errorf("events[0] = %+v", events[0])
	}
	if events[3].Event != "room/home/enter" {
		t.Errorf("events[3] = %+v, expected the oldest event last", events[3])
	}
}

func TestSaveAndLoadGame(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.LoadGame("slot1"); !errors.Is(err, ErrNoSave) {
		t.Fatalf("LoadGame() on empty slot: err = %v, expected ErrNoSave", err)
	}

	save := SaveData{Slot: "slot1", Room: "home", X: 4, Y: 3, Direction: "left", Unlocked: []string{"home>hallway"}}
	if err := store.SaveGame(save); err != nil {
		t.Fatalf("SaveGame() failed: %v", err)
	}

	got, err := store.LoadGame("slot1")
	if err != nil {
		t.Fatalf("LoadGame() failed: %v", err)
	}
	if got.Room != "home" || got.X != 4 || got.Y != 3 || got.Direction != "left" {
		t.Errorf("LoadGame() = %+v", got)
	}
	if !slices.Equal(got.Unlocked, save.Unlocked) {
		t.Errorf("Unlocked = %v, expected %v", got.Unlocked, save.Unlocked)
	}

	// Overwrite the slot
	save.Room, save.Unlocked = "hallway", nil
	if err := store.SaveGame(save); err != nil {
		t.Fatalf("SaveGame() failed: %v", err)
	}
	got, err = store.LoadGame("slot1")
	if err != nil {
		t.Fatalf("LoadGame() failed: %v", err)
	}
	if got.Room != "hallway" || got.Unlocked != nil {
		t.Errorf("LoadGame() after overwrite = %+v", got)
	}

	if err := store.SaveGame(SaveData{Slot: "slot0", Room: "home", Direction: "forward"}); err != nil {
		t.Fatalf("SaveGame() failed: %v", err)
	}
	saves, err := store.ListSaves()
	if err != nil {
		t.Fatalf("ListSaves() failed: %v", err)
	}
	if len(saves) != 2 || saves[0].Slot != "slot0" || saves[1].Slot != "slot1" {
		t.Errorf("ListSaves() = %+v", saves)
	}
}

func TestSaveGameEmptySlot(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveGame(SaveData{Room: "home"}); err == nil {
		t.Error("Expected error for empty slot")
	}
}
