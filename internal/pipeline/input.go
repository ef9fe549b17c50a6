package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"judgments/internal"
)

type portalPage struct {
	Row []map[string]any `json:"Row"`
}

// LoadRawRecordsJSON reads an offline dump: either a bare array of rows or a
// portal page object with a "Row" array.
func LoadRawRecordsJSON(r io.Reader) ([]internal.RawRecord, error) {
	blob, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	blob = bytes.TrimSpace(blob)
	if len(blob) == 0 {
		return nil, nil
	}

	var rows []map[string]any
	if blob[0] == '[' {
		if err := json.Unmarshal(blob, &rows); err != nil {
			return nil, fmt.Errorf("decode rows: %w", err)
		}
	} else {
		var page portalPage
		if err := json.Unmarshal(blob, &page); err != nil {
			return nil, fmt.Errorf("decode page: %w", err)
		}
		rows = page.Row
	}

	out := make([]internal.RawRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, RawRecordFromJSON(row))
	}
	return out, nil
}

// RawRecordFromJSON flattens decoded JSON values to strings. Nulls are
// dropped so they read as absent.
func RawRecordFromJSON(row map[string]any) internal.RawRecord {
	out := internal.RawRecord{}
	for k, v := range row {
		switch t := v.(type) {
		case nil:
			continue
		case string:
			out[k] = t
		case float64:
			out[k] = strconv.FormatFloat(t, 'f', -1, 64)
		case bool:
			out[k] = strconv.FormatBool(t)
		default:
			blob, err := json.Marshal(t)
			if err != nil {
				continue
			}
			out[k] = string(blob)
		}
	}
	return out
}
