package internal

// NA is written for every missing, empty or unparseable value.
const NA = "N/A"

// RawRecord is one case row as returned by the portal, keyed by the portal's
// internal field names (Case_x0020_Number, Presiding_x0020_Judge, ...).
type RawRecord map[string]string

const (
	FieldYears             = "Years"
	FieldTitle             = "Title"
	FieldCaseNumber        = "Case_x0020_Number"
	FieldAttachment        = "Attachment"
	FieldKeyword           = "Keyword"
	FieldPresidingJudge    = "Presiding_x0020_Judge"
	FieldCourtTitle        = "Court_x003a_Title"
	FieldJurisdictionTitle = "Jurisdiction_x003a_Title"
)

const (
	ColURL               = "url"
	ColTitle             = "title"
	ColAlias             = "alias"
	ColCaseNumber        = "case_number"
	ColAttachment        = "attachment"
	ColYears             = "years"
	ColKeyword           = "keyword"
	ColPresidingJudge    = "presiding_judge"
	ColCourtTitle        = "court_title"
	ColJurisdictionTitle = "jurisdiction_title"
)

// PriorityColumns always lead the exported column order.
var PriorityColumns = []string{ColURL, ColTitle, ColAlias, ColCaseNumber, ColAttachment}

// Record is one cleaned case entry. Keys keep insertion order.
type Record struct {
	keys   []string
	values map[string]string
}

func NewRecord() Record {
	return Record{values: map[string]string{}}
}

func (r *Record) Set(key, value string) {
	if r.values == nil {
		r.values = map[string]string{}
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns NA for keys the record does not carry.
func (r Record) Get(key string) string {
	if v, ok := r.values[key]; ok {
		return v
	}
	return NA
}

func (r Record) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

func (r Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

func (r Record) Len() int {
	return len(r.keys)
}

// Collection accumulates records for one run. It is append-only and owned by
// whoever drives the fetch loop.
type Collection struct {
	records []Record
}

func (c *Collection) Append(r Record) {
	c.records = append(c.records, r)
}

func (c *Collection) Len() int {
	return len(c.records)
}

func (c *Collection) Records() []Record {
	out := make([]Record, len(c.records))
	copy(out, c.records)
	return out
}

// Since returns the records appended at or after index from.
func (c *Collection) Since(from int) []Record {
	if from < 0 {
		from = 0
	}
	if from >= len(c.records) {
		return nil
	}
	out := make([]Record, len(c.records)-from)
	copy(out, c.records[from:])
	return out
}

// Columns is the priority prefix followed by every other key in first-seen
// order across all records.
func (c *Collection) Columns() []string {
	seen := map[string]struct{}{}
	cols := make([]string, 0, len(PriorityColumns)+8)
	for _, k := range PriorityColumns {
		seen[k] = struct{}{}
		cols = append(cols, k)
	}
	for _, rec := range c.records {
		for _, k := range rec.keys {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			cols = append(cols, k)
		}
	}
	return cols
}

// Rows projects every record onto Columns, filling gaps with NA.
func (c *Collection) Rows() [][]string {
	cols := c.Columns()
	out := make([][]string, 0, len(c.records))
	for _, rec := range c.records {
		row := make([]string, len(cols))
		for i, k := range cols {
			row[i] = rec.Get(k)
		}
		out = append(out, row)
	}
	return out
}

type RunRow struct {
	ID         int
	TraceID    string
	StartedAt  string
	FinishedAt *string
	Status     string
	Records    int
	Failed     int
	OutputPath *string
}

type AttachmentRef struct {
	CaseID     int
	CaseNumber string
	URL        string
}
