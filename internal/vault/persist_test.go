package vault

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rowanvale/hearth/internal/model"
)

func TestVaultRoundTripsThroughDisk(t *testing.T) {
	dir := t.TempDir()
	clock := &fakeClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}

	v, err := Open(dir, nil, clock.Now)
	if err != nil {
		t.Fatalf("open vault: %v", err)
	}

	alice := model.NewMember("Alice", model.RoleParent, "🧡", 0, clock.now)
	v.AddMember(alice)
	deed := v.ActiveDeeds()[0]
	m := model.NewMoment(deed.ID, alice.ID, clock.now, clock.now, "first bath")
	v.RecordMoment(m)
	v.Close() // drain pending writes

	reopened, err := Open(dir, nil, clock.Now)
	if err != nil {
		t.Fatalf("reopen vault: %v", err)
	}
	defer reopened.Close()

	members := reopened.Members()
	if len(members) != 1 || members[0].Name != "Alice" {
		t.Errorf("members after reload = %+v", members)
	}
	if got := reopened.TotalMoments(); got != 1 {
		t.Errorf("moments after reload = %d, want 1", got)
	}
	if got := reopened.MomentsForDay(clock.now); len(got) != 1 || got[0].Note != "first bath" {
		t.Errorf("moment fields lost on reload: %+v", got)
	}
	l := reopened.Ledger()
	if l.TotalSparks != 1 || l.CurrentStreak != 1 {
		t.Errorf("ledger after reload = %+v", l)
	}
	if len(reopened.ActiveDeeds()) != 10 {
		t.Errorf("deeds after reload = %d, want 10", len(reopened.ActiveDeeds()))
	}
}

func TestCorruptCollectionFallsBackAlone(t *testing.T) {
	dir := t.TempDir()
	clock := &fakeClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}

	v, err := Open(dir, nil, clock.Now)
	if err != nil {
		t.Fatalf("open vault: %v", err)
	}
	alice := model.NewMember("Alice", model.RoleParent, "🧡", 0, clock.now)
	v.AddMember(alice)
	v.RecordMoment(model.NewMoment(v.ActiveDeeds()[0].ID, alice.ID, clock.now, clock.now, ""))
	v.Close()

	// Corrupt just the ledger file.
	if err := os.WriteFile(filepath.Join(dir, fileLedger), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("corrupt ledger: %v", err)
	}

	reopened, err := Open(dir, nil, clock.Now)
	if err != nil {
		t.Fatalf("reopen vault: %v", err)
	}
	defer reopened.Close()

	if l := reopened.Ledger(); l.TotalSparks != 0 || l.Level != model.LevelSeedling {
		t.Errorf("corrupt ledger should fall back to defaults, got %+v", l)
	}
	// The other collections load independently.
	if len(reopened.Members()) != 1 {
		t.Error("member collection affected by ledger corruption")
	}
	if reopened.TotalMoments() != 1 {
		t.Error("moment collection affected by ledger corruption")
	}
}

func TestWriteFileAtomicReplaces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")

	if err := writeFileAtomic(path, []byte("one")); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := writeFileAtomic(path, []byte("two")); err != nil {
		t.Fatalf("second write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "two" {
		t.Errorf("content = %q, want %q", data, "two")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %d entries", len(entries))
	}
}

func TestMissingOptionalFieldsDefault(t *testing.T) {
	dir := t.TempDir()

	// A preferences file written by an older build, missing newer fields.
	partial := []byte(`{"soft_mode": false}`)
	if err := os.WriteFile(filepath.Join(dir, filePreferences), partial, 0o644); err != nil {
		t.Fatalf("write partial prefs: %v", err)
	}

	clock := &fakeClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
	v, err := Open(dir, nil, clock.Now)
	if err != nil {
		t.Fatalf("open vault: %v", err)
	}
	defer v.Close()

	p := v.Preferences()
	if p.SoftMode {
		t.Error("explicit soft_mode=false ignored")
	}
	if !p.WeekStartsOnMonday {
		t.Error("absent week_starts_on_monday should keep its default")
	}
	if p.AvatarEmoji != "🏠" {
		t.Errorf("absent avatar_emoji = %q, want default", p.AvatarEmoji)
	}
}
