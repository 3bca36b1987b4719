package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/wjam/findbugs-sonar-rules-plugin/internal/model"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := db.CreateSchema(); err != nil {
		t.Fatalf("schema: %v", err)
	}
	return db
}

func sampleRun(id string) model.Run {
	return model.Run{
		ID:           id,
		StartedAt:    time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		Version:      model.Version,
		MessagesPath: "src/main/resources/messages.xml",
		BugRankPath:  "src/main/resources/bugrank.txt",
		OutputPath:   "target/sonar-rules/rules.xml",
		Encoding:     "UTF-8",
		Rules: []model.Rule{
			{Key: "Foo.BAR", Priority: "MINOR", Name: "Bad thing", Description: "desc"},
			{Key: "No.RANK", Priority: "", Name: "Unranked thing", Description: "more"},
		},
	}
}

func TestSaveLoadRun_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	run := sampleRun("run-1")
	if err := db.SaveRun(&run); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := db.LoadRun("run-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.ID != run.ID || got.Encoding != run.Encoding || len(got.Rules) != 2 {
		t.Fatalf("loaded = %+v", got)
	}
	if got.Rules[1].Priority != "" {
		t.Fatalf("empty priority must survive persistence; got %q", got.Rules[1].Priority)
	}
}

func TestSaveRun_UpsertReplacesRules(t *testing.T) {
	db := openTestDB(t)
	run := sampleRun("run-1")
	if err := db.SaveRun(&run); err != nil {
		t.Fatalf("save: %v", err)
	}
	run.Rules = run.Rules[:1]
	if err := db.SaveRun(&run); err != nil {
		t.Fatalf("re-save: %v", err)
	}
	rules, err := db.ListRules("run-1", "")
	if err != nil {
		t.Fatalf("list rules: %v", err)
	}
	if len(rules) != 1 {
		t.Fatalf("rules = %d, want 1 after upsert", len(rules))
	}
}

func TestSaveRun_DuplicateKeysKeptInOrder(t *testing.T) {
	db := openTestDB(t)
	run := sampleRun("run-1")
	// A catalog may declare the same pattern type twice; one rule is
	// emitted per record, so the store has to hold both rows.
	run.Rules = []model.Rule{
		{Key: "Dup.KEY", Priority: "MINOR", Name: "first", Description: "a"},
		{Key: "Other.KEY", Priority: "", Name: "middle", Description: "b"},
		{Key: "Dup.KEY", Priority: "MINOR", Name: "second", Description: "c"},
	}
	if err := db.SaveRun(&run); err != nil {
		t.Fatalf("save with duplicate keys: %v", err)
	}

	rules, err := db.ListRules("run-1", "")
	if err != nil {
		t.Fatalf("list rules: %v", err)
	}
	if len(rules) != 3 {
		t.Fatalf("rules = %d, want 3", len(rules))
	}
	for i, name := range []string{"first", "middle", "second"} {
		if rules[i].Name != name {
			t.Fatalf("rule %d = %+v, want name %q (emission order)", i, rules[i], name)
		}
	}
}

func TestListRuns_NewestFirstWithCounts(t *testing.T) {
	db := openTestDB(t)
	a := sampleRun("run-a")
	b := sampleRun("run-b")
	b.StartedAt = a.StartedAt.Add(time.Hour)
	if err := db.SaveRun(&a); err != nil {
		t.Fatalf("save a: %v", err)
	}
	if err := db.SaveRun(&b); err != nil {
		t.Fatalf("save b: %v", err)
	}

	rows, err := db.ListRuns(10, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 || rows[0].ID != "run-b" {
		t.Fatalf("rows = %+v, want run-b first", rows)
	}
	if rows[0].Rules != 2 {
		t.Fatalf("rule count = %d, want 2", rows[0].Rules)
	}

	latest, err := db.LoadLatestRun()
	if err != nil || latest.ID != "run-b" {
		t.Fatalf("latest = %+v, %v", latest, err)
	}
}

func TestListRules_PriorityFilter(t *testing.T) {
	db := openTestDB(t)
	run := sampleRun("run-1")
	if err := db.SaveRun(&run); err != nil {
		t.Fatalf("save: %v", err)
	}
	minor, err := db.ListRules("run-1", "MINOR")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(minor) != 1 || minor[0].Key != "Foo.BAR" {
		t.Fatalf("minor = %+v", minor)
	}
}

func TestHasRun(t *testing.T) {
	db := openTestDB(t)
	run := sampleRun("run-1")
	if err := db.SaveRun(&run); err != nil {
		t.Fatalf("save: %v", err)
	}
	if ok, err := db.HasRun("run-1"); err != nil || !ok {
		t.Fatalf("HasRun(run-1) = %v, %v", ok, err)
	}
	if ok, err := db.HasRun("absent"); err != nil || ok {
		t.Fatalf("HasRun(absent) = %v, %v", ok, err)
	}
}
