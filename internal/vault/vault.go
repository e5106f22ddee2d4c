// Package vault is the authoritative store for all household data: the
// member, deed and moment collections, the gamification ledger and the
// preferences record. All reads and mutations go through a Vault; the
// in-memory state is the source of truth and every mutation queues an
// asynchronous JSON write of the affected collection.
package vault

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rowanvale/hearth/internal/model"
	"github.com/rowanvale/hearth/internal/spark"
)

// Collection names a persisted unit for change notification.
type Collection string

const (
	CollectionMembers     Collection = "members"
	CollectionDeeds       Collection = "deeds"
	CollectionMoments     Collection = "moments"
	CollectionLedger      Collection = "ledger"
	CollectionPreferences Collection = "preferences"
)

// File names in the vault directory. Kept compatible with existing data.
const (
	fileMembers     = "kin_souls.json"
	fileDeeds       = "hearth_deeds.json"
	fileMoments     = "ember_moments.json"
	fileLedger      = "spark_ledger.json"
	filePreferences = "nest_preferences.json"
)

// FlagStore is the key-value side store for flags that live outside the
// JSON collection files, such as onboarding completion.
type FlagStore interface {
	OnboardingComplete() bool
	SetOnboardingComplete(done bool) error
}

// Vault holds every collection in memory and owns their persistence.
// Construct one per installation with Open; there is no global instance.
type Vault struct {
	mu  sync.RWMutex
	dir string
	now func() time.Time

	members []model.Member
	deeds   []model.Deed
	moments []model.Moment
	ledger  model.Ledger
	prefs   model.Preferences

	lastLogged *uuid.UUID

	flags     FlagStore
	persist   *persister
	observers []func(Collection)
}

// Open loads the vault from dir, falling back to documented defaults
// for any collection that is missing or unreadable. A nil now uses the
// wall clock; tests inject a fixed one. flags may be nil when no flag
// store is attached.
func Open(dir string, flags FlagStore, now func() time.Time) (*Vault, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create vault dir: %w", err)
	}
	if now == nil {
		now = time.Now
	}

	v := &Vault{
		dir:     dir,
		now:     now,
		flags:   flags,
		persist: newPersister(),
	}

	v.members = loadSlice[model.Member](v.path(fileMembers))
	v.deeds = loadSlice[model.Deed](v.path(fileDeeds))
	v.moments = loadSlice[model.Moment](v.path(fileMoments))
	v.ledger = loadRecord(v.path(fileLedger), model.DefaultLedger())
	v.prefs = loadRecord(v.path(filePreferences), model.DefaultPreferences())

	// First launch: seed the default deeds.
	if len(v.deeds) == 0 {
		v.deeds = model.DefaultDeeds()
		v.saveDeedsLocked()
	}

	return v, nil
}

// Close drains pending writes. The vault must not be used afterwards.
func (v *Vault) Close() {
	v.persist.close()
}

// Notify registers an observer called after every mutation with the
// affected collection. Observers run on the mutating goroutine, outside
// the vault's lock.
func (v *Vault) Notify(fn func(Collection)) {
	v.mu.Lock()
	v.observers = append(v.observers, fn)
	v.mu.Unlock()
}

func (v *Vault) notify(cols ...Collection) {
	v.mu.RLock()
	observers := make([]func(Collection), len(v.observers))
	copy(observers, v.observers)
	v.mu.RUnlock()

	for _, fn := range observers {
		for _, c := range cols {
			fn(c)
		}
	}
}

// --- Members ---

func (v *Vault) AddMember(m model.Member) {
	v.mu.Lock()
	v.members = append(v.members, m)
	v.saveMembersLocked()
	v.mu.Unlock()
	v.notify(CollectionMembers)
}

func (v *Vault) UpdateMember(m model.Member) {
	v.mu.Lock()
	for i := range v.members {
		if v.members[i].ID == m.ID {
			v.members[i] = m
			v.saveMembersLocked()
			break
		}
	}
	v.mu.Unlock()
	v.notify(CollectionMembers)
}

// ArchiveMember soft-deletes a member so historical moments keep
// resolving. Missing ids are a no-op.
func (v *Vault) ArchiveMember(id uuid.UUID) {
	v.mu.Lock()
	for i := range v.members {
		if v.members[i].ID == id {
			v.members[i].Archived = true
			v.saveMembersLocked()
			break
		}
	}
	v.mu.Unlock()
	v.notify(CollectionMembers)
}

// Members returns a copy of the full member list, archived included.
func (v *Vault) Members() []model.Member {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]model.Member, len(v.members))
	copy(out, v.members)
	return out
}

// ActiveMembers returns the non-archived members.
func (v *Vault) ActiveMembers() []model.Member {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return activeMembersLocked(v.members)
}

func activeMembersLocked(members []model.Member) []model.Member {
	var out []model.Member
	for _, m := range members {
		if !m.Archived {
			out = append(out, m)
		}
	}
	return out
}

// --- Deeds ---

func (v *Vault) AddDeed(d model.Deed) {
	v.mu.Lock()
	v.deeds = append(v.deeds, d)
	v.saveDeedsLocked()
	v.mu.Unlock()
	v.notify(CollectionDeeds)
}

func (v *Vault) UpdateDeed(d model.Deed) {
	v.mu.Lock()
	for i := range v.deeds {
		if v.deeds[i].ID == d.ID {
			v.deeds[i] = d
			v.saveDeedsLocked()
			break
		}
	}
	v.mu.Unlock()
	v.notify(CollectionDeeds)
}

func (v *Vault) ArchiveDeed(id uuid.UUID) {
	v.mu.Lock()
	for i := range v.deeds {
		if v.deeds[i].ID == id {
			v.deeds[i].Archived = true
			v.saveDeedsLocked()
			break
		}
	}
	v.mu.Unlock()
	v.notify(CollectionDeeds)
}

func (v *Vault) Deeds() []model.Deed {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]model.Deed, len(v.deeds))
	copy(out, v.deeds)
	return out
}

// --- Moments ---

// RecordMoment appends a moment, persists it, then synchronously applies
// the gamification effects: the point/streak award first, the badge
// check second. The updated ledger is visible as soon as this returns.
// Returns the badge ids unlocked by this moment.
func (v *Vault) RecordMoment(m model.Moment) []string {
	v.mu.Lock()
	v.moments = append(v.moments, m)
	id := m.ID
	v.lastLogged = &id
	v.saveMomentsLocked()

	now := v.now()
	spark.Award(&v.ledger, m.HappenedAt, now)
	unlocked := spark.CheckMoment(&v.ledger, m, momentsOnDay(v.moments, m.HappenedAt), len(v.moments), now)
	v.saveLedgerLocked()
	v.mu.Unlock()

	v.notify(CollectionMoments, CollectionLedger)
	return unlocked
}

// UpdateMoment replaces a moment by id. Edits never re-trigger streak or
// badge logic; historical changes are not rewarded.
func (v *Vault) UpdateMoment(m model.Moment) {
	v.mu.Lock()
	for i := range v.moments {
		if v.moments[i].ID == m.ID {
			v.moments[i] = m
			v.saveMomentsLocked()
			break
		}
	}
	v.mu.Unlock()
	v.notify(CollectionMoments)
}

// DeleteMoment removes a moment by id. Points, streak and badges already
// granted from it are kept; the ledger is a permanent record.
func (v *Vault) DeleteMoment(id uuid.UUID) {
	v.mu.Lock()
	kept := v.moments[:0]
	for _, m := range v.moments {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	v.moments = kept
	if v.lastLogged != nil && *v.lastLogged == id {
		v.lastLogged = nil
	}
	v.saveMomentsLocked()
	v.mu.Unlock()
	v.notify(CollectionMoments)
}

// UndoLastMoment deletes the most recently recorded moment, if any.
// Single-shot: a second call before another log does nothing.
func (v *Vault) UndoLastMoment() bool {
	v.mu.RLock()
	last := v.lastLogged
	v.mu.RUnlock()
	if last == nil {
		return false
	}
	v.DeleteMoment(*last)
	return true
}

// ToggleGratitude flips the gratitude flag on a moment. Turning it on
// records who gave thanks and unlocks the gratitude badge on first use;
// turning it off clears the giver. Returns any badge ids unlocked.
func (v *Vault) ToggleGratitude(momentID, from uuid.UUID) []string {
	var unlocked []string
	changed := false

	v.mu.Lock()
	for i := range v.moments {
		if v.moments[i].ID != momentID {
			continue
		}
		v.moments[i].HasGratitude = !v.moments[i].HasGratitude
		if v.moments[i].HasGratitude {
			giver := from
			v.moments[i].GratitudeFrom = &giver
		} else {
			v.moments[i].GratitudeFrom = nil
		}
		v.saveMomentsLocked()
		changed = true

		if v.moments[i].HasGratitude {
			unlocked = spark.CheckGratitude(&v.ledger, v.now())
			if len(unlocked) > 0 {
				v.saveLedgerLocked()
			}
		}
		break
	}
	v.mu.Unlock()

	if changed {
		if len(unlocked) > 0 {
			v.notify(CollectionMoments, CollectionLedger)
		} else {
			v.notify(CollectionMoments)
		}
	}
	return unlocked
}

// --- Ledger and preferences ---

// Ledger returns a copy of the gamification state.
func (v *Vault) Ledger() model.Ledger {
	v.mu.RLock()
	defer v.mu.RUnlock()
	l := v.ledger
	l.UnlockedBadges = make([]model.Badge, len(v.ledger.UnlockedBadges))
	copy(l.UnlockedBadges, v.ledger.UnlockedBadges)
	return l
}

func (v *Vault) Preferences() model.Preferences {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.prefs
}

func (v *Vault) SetPreferences(p model.Preferences) {
	v.mu.Lock()
	v.prefs = p
	v.savePreferencesLocked()
	v.mu.Unlock()
	v.notify(CollectionPreferences)
}

// --- Onboarding flag ---

func (v *Vault) OnboardingComplete() bool {
	if v.flags == nil {
		return false
	}
	return v.flags.OnboardingComplete()
}

func (v *Vault) SetOnboardingComplete(done bool) {
	if v.flags == nil {
		return
	}
	if err := v.flags.SetOnboardingComplete(done); err != nil {
		slog.Error("set onboarding flag", "error", err)
	}
}

// --- Reset ---

// ResetAllData clears every collection, restores the default deeds,
// resets ledger and preferences, and clears the onboarding flag.
func (v *Vault) ResetAllData() {
	v.mu.Lock()
	v.members = nil
	v.deeds = model.DefaultDeeds()
	v.moments = nil
	v.ledger = model.DefaultLedger()
	v.prefs = model.DefaultPreferences()
	v.lastLogged = nil

	v.saveMembersLocked()
	v.saveDeedsLocked()
	v.saveMomentsLocked()
	v.saveLedgerLocked()
	v.savePreferencesLocked()
	v.mu.Unlock()

	v.SetOnboardingComplete(false)
	v.notify(CollectionMembers, CollectionDeeds, CollectionMoments, CollectionLedger, CollectionPreferences)
}

// --- Persistence ---

func (v *Vault) path(name string) string {
	return filepath.Join(v.dir, name)
}

func (v *Vault) saveMembersLocked()     { v.submit(fileMembers, v.members) }
func (v *Vault) saveDeedsLocked()       { v.submit(fileDeeds, v.deeds) }
func (v *Vault) saveMomentsLocked()     { v.submit(fileMoments, v.moments) }
func (v *Vault) saveLedgerLocked()      { v.submit(fileLedger, v.ledger) }
func (v *Vault) savePreferencesLocked() { v.submit(filePreferences, v.prefs) }

// submit marshals under the caller's lock so the queued bytes are a
// consistent snapshot, then hands them to the background writer.
func (v *Vault) submit(name string, value any) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		slog.Error("vault marshal failed", "file", name, "error", err)
		return
	}
	v.persist.submit(v.path(name), data)
}

func loadSlice[T any](path string) []T {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("vault load failed", "path", path, "error", err)
		}
		return nil
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		slog.Warn("vault decode failed", "path", path, "error", err)
		return nil
	}
	return out
}

func loadRecord[T any](path string, fallback T) T {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("vault load failed", "path", path, "error", err)
		}
		return fallback
	}
	out := fallback
	if err := json.Unmarshal(data, &out); err != nil {
		slog.Warn("vault decode failed", "path", path, "error", err)
		return fallback
	}
	return out
}
