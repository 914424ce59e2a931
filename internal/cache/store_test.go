package cache

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/pfrederiksen/bref-rosters/internal/table"
)

func sampleSet() table.RecordSet {
	rs := table.FromRows(
		[]string{"Name", "IL", table.ColumnPlayerID, table.ColumnAltURL},
		[][]string{
			{"Cade Cavalli", "15-day", "cavalca01", ""},
			{"Andry Lara", "", "", "https://www.baseball-reference.com/register/player.fcgi?id=lara--000and"},
		},
	)
	rs.Dropped = 1
	return rs
}

func TestStore_SaveLoad(t *testing.T) {
	s, err := New(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	key := Key("active_roster", "2026", "WSN")
	if err := s.Save(key, "active_roster", []string{"2026", "WSN"}, sampleSet()); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	entry, err := s.Load(key)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if entry == nil {
		t.Fatal("Load() returned nil entry")
	}
	got := entry.RecordSet()
	want := sampleSet()
	if !reflect.DeepEqual(got.Rows(), want.Rows()) || !got.Columns.Equal(want.Columns) {
		t.Errorf("RecordSet() = %v, want %v", got, want)
	}
	if got.Dropped != 1 {
		t.Errorf("Dropped = %d, want 1", got.Dropped)
	}
}

func TestStore_LoadMissing(t *testing.T) {
	s, err := New(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	entry, err := s.Load(Key("nothing"))
	if err != nil || entry != nil {
		t.Errorf("Load(missing) = %v, %v; want nil, nil", entry, err)
	}
}

func TestStore_Expiry(t *testing.T) {
	s, err := New(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	key := Key("depth_chart", "WSN", "MAJ")
	if err := s.Save(key, "depth_chart", nil, sampleSet()); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	now = now.Add(30 * time.Minute)
	if entry, _ := s.Load(key); entry == nil {
		t.Fatal("entry expired too early")
	}

	now = now.Add(time.Hour)
	if entry, _ := s.Load(key); entry != nil {
		t.Error("entry should have expired")
	}
	if _, err := os.Stat(filepath.Join(s.Dir(), key+".json")); !os.IsNotExist(err) {
		t.Error("expired entry should be removed from disk")
	}
}

func TestStore_CorruptEntry(t *testing.T) {
	s, err := New(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	key := Key("broken")
	if err := os.WriteFile(filepath.Join(s.Dir(), key+".json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load(key); err == nil {
		t.Error("Load() should report a corrupt entry")
	}
}

func TestStore_ClearAndPurge(t *testing.T) {
	s, err := New(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	for _, team := range []string{"WSN", "NYY"} {
		if err := s.Save(Key("active_roster", team), "active_roster", []string{team}, sampleSet()); err != nil {
			t.Fatal(err)
		}
	}
	now = now.Add(2 * time.Hour)
	if err := s.Save(Key("active_roster", "BOS"), "active_roster", []string{"BOS"}, sampleSet()); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(s.Dir(), "junk.json"), []byte("junk"), 0644); err != nil {
		t.Fatal(err)
	}

	removed, err := s.Purge()
	if err != nil {
		t.Fatalf("Purge() error: %v", err)
	}
	if removed != 3 {
		t.Errorf("Purge() removed %d, want 3", removed)
	}

	removed, err = s.Clear()
	if err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if removed != 1 {
		t.Errorf("Clear() removed %d, want 1", removed)
	}
}

func TestKey(t *testing.T) {
	if Key("depth_chart", "WSN", "MAJ") != Key("depth_chart", "WSN", "MAJ") {
		t.Error("Key() is not deterministic")
	}
	distinct := []string{
		Key("depth_chart", "WSN", "MAJ"),
		Key("depth_chart", "WSN", "AA"),
		Key("depth_chart_batting", "WSN", "MAJ"),
		Key("depth_chart", "WSNMAJ"),
	}
	seen := map[string]bool{}
	for _, k := range distinct {
		if seen[k] {
			t.Errorf("Key collision: %s", k)
		}
		seen[k] = true
	}
}

func TestNew_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	s, err := New("~/cache/bref", time.Hour)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if s.Dir() != filepath.Join(home, "cache", "bref") {
		t.Errorf("Dir() = %q", s.Dir())
	}
}
