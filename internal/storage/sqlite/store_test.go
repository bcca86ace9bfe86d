package sqlite

import (
	"path/filepath"
	"testing"

	"lootlogger/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lootlogger-test.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	store.SetPlayer("tester")
	return store
}

func zulrahRecord(kc int) domain.Record {
	return domain.Record{
		Name:        "Zulrah",
		CombatLevel: 725,
		KillCount:   kc,
		Type:        domain.TypeNPC,
		Items: []domain.ItemEntry{
			{Name: "Tanzanite fang", ID: 12922, Quantity: 1, Price: 2400000},
			{Name: "Zulrah's scales", ID: 12934, Quantity: 150, Price: 180},
		},
	}
}

func TestAddAndLoadKeepAppendOrder(t *testing.T) {
	store := newTestStore(t)

	for kc := 1; kc <= 3; kc++ {
		if err := store.Add(domain.TypeNPC, "Zulrah", zulrahRecord(kc)); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	recs, err := store.Load(domain.TypeNPC, "Zulrah")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recs))
	}
	for i, rec := range recs {
		if rec.KillCount != i+1 {
			t.Fatalf("records out of order: %#v", recs)
		}
		if rec.Name != "Zulrah" || rec.Type != domain.TypeNPC {
			t.Fatalf("unexpected record %#v", rec)
		}
		if len(rec.Items) != 2 || rec.Items[0].Name != "Tanzanite fang" || rec.Items[1].Quantity != 150 {
			t.Fatalf("items lost or reordered: %#v", rec.Items)
		}
	}
}

func TestLoadIsCaseInsensitiveOnName(t *testing.T) {
	store := newTestStore(t)
	if err := store.Add(domain.TypeNPC, "Zulrah", zulrahRecord(1)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	recs, err := store.Load(domain.TypeNPC, "ZULRAH")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	// Display case is preserved.
	if recs[0].Name != "Zulrah" {
		t.Fatalf("display name mangled: %q", recs[0].Name)
	}
}

func TestLoadMissingSourceIsEmpty(t *testing.T) {
	store := newTestStore(t)
	recs, err := store.Load(domain.TypeNPC, "Vorkath")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("expected no records, got %d", len(recs))
	}
}

func TestReplaceOverwritesCollection(t *testing.T) {
	store := newTestStore(t)
	if err := store.Add(domain.TypeNPC, "Zulrah", zulrahRecord(1)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := store.Add(domain.TypeNPC, "Zulrah", zulrahRecord(2)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	recs, err := store.Load(domain.TypeNPC, "Zulrah")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	recs[1].AddItem(domain.ItemEntry{Name: "Pet snakeling", ID: 12921, Quantity: 1})
	if err := store.Replace(domain.TypeNPC, "Zulrah", recs); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	again, err := store.Load(domain.TypeNPC, "Zulrah")
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if len(again) != 2 {
		t.Fatalf("expected 2 records after replace, got %d", len(again))
	}
	last := again[1]
	if len(last.Items) != 3 || last.Items[2].Name != "Pet snakeling" {
		t.Fatalf("appended item missing: %#v", last.Items)
	}
}

func TestDeleteReportsWhetherAnythingExisted(t *testing.T) {
	store := newTestStore(t)
	if err := store.Add(domain.TypeNPC, "Zulrah", zulrahRecord(1)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	ok, err := store.Delete(domain.TypeNPC, "Zulrah")
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !ok {
		t.Fatal("expected delete to report success")
	}

	ok, err = store.Delete(domain.TypeNPC, "Zulrah")
	if err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
	if ok {
		t.Fatal("second delete reported success")
	}

	recs, err := store.Load(domain.TypeNPC, "Zulrah")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("records survived delete: %#v", recs)
	}
}

func TestRecordsAreScopedToPlayer(t *testing.T) {
	store := newTestStore(t)
	if err := store.Add(domain.TypeNPC, "Zulrah", zulrahRecord(1)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	store.SetPlayer("someone else")
	recs, err := store.Load(domain.TypeNPC, "Zulrah")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(recs) != 0 {
		t.Fatal("records leaked across players")
	}

	names, err := store.KnownNames()
	if err != nil {
		t.Fatalf("KnownNames failed: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("known names leaked across players: %#v", names)
	}
}

func TestKnownNames(t *testing.T) {
	store := newTestStore(t)
	if err := store.Add(domain.TypeNPC, "Zulrah", zulrahRecord(1)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := store.Add(domain.TypeNPC, "Zulrah", zulrahRecord(2)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := store.Add(domain.TypeEvent, "Clue Scroll (Hard)", domain.Record{Name: "Clue Scroll (Hard)", Type: domain.TypeEvent}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	names, err := store.KnownNames()
	if err != nil {
		t.Fatalf("KnownNames failed: %v", err)
	}
	if len(names[domain.TypeNPC]) != 1 {
		t.Fatalf("expected deduplicated NPC names, got %#v", names[domain.TypeNPC])
	}
	if _, ok := names[domain.TypeNPC]["zulrah"]; !ok {
		t.Fatalf("expected lower-cased key, got %#v", names[domain.TypeNPC])
	}
	if _, ok := names[domain.TypeEvent]["clue scroll (hard)"]; !ok {
		t.Fatalf("expected clue key, got %#v", names[domain.TypeEvent])
	}
}
