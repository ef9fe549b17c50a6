package pipeline

import (
	"reflect"
	"testing"

	"judgments/internal"
	"judgments/internal/logger"
)

func sampleRaw(caseNo string) internal.RawRecord {
	return internal.RawRecord{
		internal.FieldYears:             "2022",
		internal.FieldTitle:             "John Doe (Also known as Jonathan)",
		internal.FieldCaseNumber:        caseNo,
		internal.FieldAttachment:        "<div><a href='/x/y.pdf'>link</a></div>",
		internal.FieldKeyword:           "Appeal",
		internal.FieldPresidingJudge:    "<div>Hon. Judge A.B.C.!</div>",
		internal.FieldCourtTitle:        "High Court",
		internal.FieldJurisdictionTitle: "High Court - Civil",
	}
}

func TestAssemble(t *testing.T) {
	rec, err := NewAssembler(nil).Assemble(sampleRaw("HC/1/2022"))
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{
		"url":                SearchPageURL,
		"title":              "John Doe",
		"alias":              "Jonathan",
		"case_number":        "HC/1/2022",
		"attachment":         "https://www.judiciary.gov.bn/x/y.pdf",
		"years":              "2022",
		"keyword":            "Appeal",
		"presiding_judge":    "Hon Judge ABC",
		"court_title":        "High Court",
		"jurisdiction_title": "High Court - Civil",
	}
	if rec.Len() != len(want) {
		t.Fatalf("keys=%v", rec.Keys())
	}
	for k, v := range want {
		if got := rec.Get(k); got != v {
			t.Fatalf("%s got %q want %q", k, got, v)
		}
	}
}

func TestAssembleEmptyRecordFillsNA(t *testing.T) {
	rec, err := NewAssembler(nil).Assemble(internal.RawRecord{})
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range rec.Keys() {
		if k == internal.ColURL {
			continue
		}
		if rec.Get(k) != internal.NA {
			t.Fatalf("%s=%q", k, rec.Get(k))
		}
	}
	if rec.Len() != 10 {
		t.Fatalf("len=%d", rec.Len())
	}
}

func TestAssembleBatchOrderAndColumns(t *testing.T) {
	batch := []internal.RawRecord{sampleRaw("1"), {}, sampleRaw("3")}
	var coll internal.Collection
	res := NewAssembler(nil).AssembleBatch(&coll, batch)
	if res.Appended != 3 || len(res.Failures) != 0 {
		t.Fatalf("res=%+v", res)
	}
	if coll.Len() != 3 {
		t.Fatalf("len=%d", coll.Len())
	}
	recs := coll.Records()
	if recs[0].Get("case_number") != "1" || recs[1].Get("case_number") != internal.NA || recs[2].Get("case_number") != "3" {
		t.Fatal("order not preserved")
	}

	wantCols := []string{"url", "title", "alias", "case_number", "attachment", "years", "keyword", "presiding_judge", "court_title", "jurisdiction_title"}
	if !reflect.DeepEqual(coll.Columns(), wantCols) {
		t.Fatalf("columns=%v", coll.Columns())
	}
}

func TestAssembleBatchIsolatesFailures(t *testing.T) {
	fields := append(DefaultFields(), FieldNormalizer{
		Column: "boom",
		Fn: func(raw internal.RawRecord) string {
			if raw[internal.FieldCaseNumber] == "bad" {
				panic("malformed")
			}
			return "ok"
		},
	})
	a := NewAssemblerWithFields(logger.Discard(), fields)

	var coll internal.Collection
	res := a.AssembleBatch(&coll, []internal.RawRecord{sampleRaw("1"), sampleRaw("bad"), sampleRaw("3")})
	if res.Appended != 2 {
		t.Fatalf("appended=%d", res.Appended)
	}
	if len(res.Failures) != 1 || res.Failures[0].Index != 1 {
		t.Fatalf("failures=%+v", res.Failures)
	}
	recs := coll.Records()
	if recs[0].Get("case_number") != "1" || recs[1].Get("case_number") != "3" {
		t.Fatal("unexpected records")
	}
}
