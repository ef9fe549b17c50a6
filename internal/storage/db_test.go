package storage

import (
	"path/filepath"
	"reflect"
	"testing"

	"judgments/internal"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "data", "judgments.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func rec(pairs ...string) internal.Record {
	r := internal.NewRecord()
	for i := 0; i+1 < len(pairs); i += 2 {
		r.Set(pairs[i], pairs[i+1])
	}
	return r
}

func TestRunLifecycleAndCollection(t *testing.T) {
	db := openTestDB(t)

	runID, err := db.CreateRun("trace-1")
	if err != nil {
		t.Fatal(err)
	}

	page1 := []internal.Record{
		rec("url", "u", "case_number", "HC/1", "attachment", "https://x/a.pdf", "title", "A", "alias", "N/A"),
		rec("url", "u", "case_number", "HC/2", "attachment", "N/A", "title", "B", "alias", "N/A"),
	}
	page2 := []internal.Record{
		rec("url", "u", "case_number", "CA/1", "attachment", "https://x/a.pdf", "title", "C", "alias", "Z"),
	}
	if err := db.InsertCases(runID, ";#High Court;#High Court - Civil;#", page1); err != nil {
		t.Fatal(err)
	}
	if err := db.InsertCases(runID, ";#Court of Appeal;#Court of Appeal - Civil;#", page2); err != nil {
		t.Fatal(err)
	}

	coll, err := db.GetRunCollection(runID)
	if err != nil {
		t.Fatal(err)
	}
	if coll.Len() != 3 {
		t.Fatalf("len=%d", coll.Len())
	}
	recs := coll.Records()
	if recs[2].Get("case_number") != "CA/1" {
		t.Fatalf("order lost: %v", recs[2].Get("case_number"))
	}
	if !reflect.DeepEqual(recs[0].Keys(), []string{"url", "case_number", "attachment", "title", "alias"}) {
		t.Fatalf("keys=%v", recs[0].Keys())
	}

	out := "out/file.xlsx"
	if err := db.FinishRun(runID, "completed", 3, 0, &out); err != nil {
		t.Fatal(err)
	}
	runs, err := db.ListRuns(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Status != "completed" || runs[0].Records != 3 || runs[0].OutputPath == nil || *runs[0].OutputPath != out {
		t.Fatalf("runs=%+v", runs)
	}
	if runs[0].FinishedAt == nil {
		t.Fatal("finishedAt not set")
	}
}

func TestListAttachmentURLs(t *testing.T) {
	db := openTestDB(t)
	runID, _ := db.CreateRun("trace-2")
	err := db.InsertCases(runID, "g", []internal.Record{
		rec("case_number", "1", "attachment", "https://x/a.pdf"),
		rec("case_number", "2", "attachment", "https://x/a.pdf"),
		rec("case_number", "3", "attachment", "N/A"),
		rec("case_number", "4", "attachment", "https://x"),
		rec("case_number", "5", "attachment", "https://x/b.pdf"),
	})
	if err != nil {
		t.Fatal(err)
	}

	refs, err := db.ListAttachmentURLs(runID, "https://x", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(refs) != 2 || refs[0].URL != "https://x/a.pdf" || refs[0].CaseNumber != "1" || refs[1].URL != "https://x/b.pdf" {
		t.Fatalf("refs=%+v", refs)
	}

	if err := db.UpsertDocument("https://x/a.pdf", "1", "judgment text", 42); err != nil {
		t.Fatal(err)
	}
	refs, err = db.ListAttachmentURLs(runID, "https://x", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(refs) != 1 || refs[0].URL != "https://x/b.pdf" {
		t.Fatalf("refs=%+v", refs)
	}

	text, err := db.GetDocumentText("https://x/a.pdf")
	if err != nil || text == nil || *text != "judgment text" {
		t.Fatalf("text=%v err=%v", text, err)
	}
}

func TestMetadata(t *testing.T) {
	db := openTestDB(t)
	v, err := db.GetMetadata("scrape.last_run")
	if err != nil || v != nil {
		t.Fatalf("v=%v err=%v", v, err)
	}
	if err := db.SetMetadata("scrape.last_run", "a"); err != nil {
		t.Fatal(err)
	}
	if err := db.SetMetadata("scrape.last_run", "b"); err != nil {
		t.Fatal(err)
	}
	v, err = db.GetMetadata("scrape.last_run")
	if err != nil || v == nil || *v != "b" {
		t.Fatalf("v=%v err=%v", v, err)
	}
}
