package pipeline

import (
	"fmt"

	"judgments/internal"
	"judgments/internal/logger"
)

// FieldNormalizer fills one output column from a raw record.
type FieldNormalizer struct {
	Column string
	Fn     func(internal.RawRecord) string
}

// DefaultFields lists the fixed columns in the order they are written, before
// the title/alias columns are appended.
func DefaultFields() []FieldNormalizer {
	return []FieldNormalizer{
		{Column: internal.ColURL, Fn: func(internal.RawRecord) string { return SearchPageURL }},
		{Column: internal.ColYears, Fn: Years},
		{Column: internal.ColCaseNumber, Fn: CaseNumber},
		{Column: internal.ColAttachment, Fn: Attachment},
		{Column: internal.ColKeyword, Fn: Keyword},
		{Column: internal.ColPresidingJudge, Fn: PresidingJudge},
		{Column: internal.ColCourtTitle, Fn: CourtTitle},
		{Column: internal.ColJurisdictionTitle, Fn: JurisdictionTitle},
	}
}

type Assembler struct {
	fields []FieldNormalizer
	log    *logger.Logger
}

func NewAssembler(log *logger.Logger) *Assembler {
	return NewAssemblerWithFields(log, DefaultFields())
}

func NewAssemblerWithFields(log *logger.Logger, fields []FieldNormalizer) *Assembler {
	if log == nil {
		log = logger.Discard()
	}
	return &Assembler{fields: fields, log: log}
}

// Assemble builds one record. A panic inside a normalizer is returned as an
// error instead of unwinding the caller's batch.
func (a *Assembler) Assemble(raw internal.RawRecord) (rec internal.Record, err error) {
	defer func() {
		if r := recover(); r != nil {
			rec = internal.Record{}
			err = fmt.Errorf("assemble record: %v", r)
		}
	}()

	rec = internal.NewRecord()
	for _, f := range a.fields {
		rec.Set(f.Column, f.Fn(raw))
	}
	titles := TitleFields([]string{CaseName(raw)})
	for _, k := range titles.Keys() {
		rec.Set(k, titles.Get(k))
	}
	return rec, nil
}

type RecordError struct {
	Index int
	Err   error
}

func (e RecordError) Error() string {
	return fmt.Sprintf("record %d: %v", e.Index, e.Err)
}

type BatchResult struct {
	Appended int
	Failures []RecordError
}

// AssembleBatch appends one record per raw record to coll, in input order.
// Records that fail are logged and skipped; the rest of the batch continues.
func (a *Assembler) AssembleBatch(coll *internal.Collection, batch []internal.RawRecord) BatchResult {
	res := BatchResult{}
	for i, raw := range batch {
		rec, err := a.Assemble(raw)
		if err != nil {
			a.log.Warn("skipping record", "index", i, "case_number", raw[internal.FieldCaseNumber], "err", err)
			res.Failures = append(res.Failures, RecordError{Index: i, Err: err})
			continue
		}
		coll.Append(rec)
		res.Appended++
	}
	return res
}
