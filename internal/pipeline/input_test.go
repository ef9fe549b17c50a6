package pipeline

import (
	"strings"
	"testing"

	"judgments/internal"
)

func TestLoadRawRecordsJSON(t *testing.T) {
	page := `{"Row":[{"ID":"12","Years":"2020","Case_x0020_Number":null,"FSObjType":0,"Title":"A v B"}],"NextHref":"?Paged=TRUE"}`
	rows, err := LoadRawRecordsJSON(strings.NewReader(page))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("len=%d", len(rows))
	}
	if _, ok := rows[0][internal.FieldCaseNumber]; ok {
		t.Fatal("null should be absent")
	}
	if rows[0]["FSObjType"] != "0" {
		t.Fatalf("FSObjType=%q", rows[0]["FSObjType"])
	}

	arr := `[{"Title":"X"},{"Title":"Y"}]`
	rows, err = LoadRawRecordsJSON(strings.NewReader(arr))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || rows[1][internal.FieldTitle] != "Y" {
		t.Fatalf("rows=%v", rows)
	}
}

func TestLoadRawRecordsJSONInvalid(t *testing.T) {
	if _, err := LoadRawRecordsJSON(strings.NewReader("{not json")); err == nil {
		t.Fatal("expected error")
	}
	rows, err := LoadRawRecordsJSON(strings.NewReader("  "))
	if err != nil || rows != nil {
		t.Fatalf("rows=%v err=%v", rows, err)
	}
}

func TestExtractPDFTextRejectsGarbage(t *testing.T) {
	if _, err := ExtractPDFText([]byte("not a pdf")); err == nil {
		t.Fatal("expected error")
	}
}
