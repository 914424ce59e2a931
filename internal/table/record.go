package table

import (
	"bytes"
	"encoding/json"
)

// Computed columns appended to every schema.
const (
	ColumnPlayerID = "player_ID"
	ColumnAltURL   = "Alt URL"
)

// Schema is the ordered list of column names of a record set.
type Schema []string

// Index returns the position of column, or -1.
func (s Schema) Index(column string) int {
	for i, c := range s {
		if c == column {
			return i
		}
	}
	return -1
}

// Equal reports whether both schemas list the same columns in the same order.
func (s Schema) Equal(other Schema) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Field is one column value of a record.
type Field struct {
	Column string
	Value  string
}

// Record is one player's row as an ordered column → value mapping.
type Record []Field

// Get returns the value stored under column.
func (r Record) Get(column string) (string, bool) {
	for _, f := range r {
		if f.Column == column {
			return f.Value, true
		}
	}
	return "", false
}

// Value is Get without the presence flag.
func (r Record) Value(column string) string {
	v, _ := r.Get(column)
	return v
}

// MarshalJSON encodes the record as an object with keys in column order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Column)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// RecordSet is the result of a report.
type RecordSet struct {
	Columns Schema   `json:"columns"`
	Records []Record `json:"records"`
	// Dropped counts linked rows discarded because a cell could not be used.
	Dropped int `json:"dropped,omitempty"`
}

// Len returns the number of records.
func (rs RecordSet) Len() int {
	return len(rs.Records)
}

// Rows returns every record's values aligned to Columns. Columns a record
// does not carry are empty.
func (rs RecordSet) Rows() [][]string {
	rows := make([][]string, len(rs.Records))
	for i, rec := range rs.Records {
		row := make([]string, len(rs.Columns))
		for j, col := range rs.Columns {
			row[j] = rec.Value(col)
		}
		rows[i] = row
	}
	return rows
}

// Where returns the records whose column equals value.
func (rs RecordSet) Where(column, value string) []Record {
	matched := make([]Record, 0)
	for _, rec := range rs.Records {
		if v, ok := rec.Get(column); ok && v == value {
			matched = append(matched, rec)
		}
	}
	return matched
}

// FromRows builds a record set from a header and value rows, the inverse of Rows.
func FromRows(columns []string, rows [][]string) RecordSet {
	rs := RecordSet{
		Columns: append(Schema(nil), columns...),
		Records: make([]Record, 0, len(rows)),
	}
	for _, row := range rows {
		rec := make(Record, 0, len(columns))
		for i, col := range columns {
			v := ""
			if i < len(row) {
				v = row[i]
			}
			rec = append(rec, Field{Column: col, Value: v})
		}
		rs.Records = append(rs.Records, rec)
	}
	return rs
}

// Concat joins record sets in argument order. The resulting columns are the
// ordered union of every input's source columns followed by player_ID and
// Alt URL. Every record is rebuilt over those columns, empty where its set
// lacked one.
func Concat(sets ...RecordSet) RecordSet {
	out := RecordSet{Records: make([]Record, 0)}
	seen := make(map[string]bool)
	for _, rs := range sets {
		for _, col := range rs.Columns {
			if col == ColumnPlayerID || col == ColumnAltURL || seen[col] {
				continue
			}
			seen[col] = true
			out.Columns = append(out.Columns, col)
		}
		out.Dropped += rs.Dropped
	}
	out.Columns = append(out.Columns, ColumnPlayerID, ColumnAltURL)

	for _, rs := range sets {
		for _, rec := range rs.Records {
			full := make(Record, 0, len(out.Columns))
			for _, col := range out.Columns {
				full = append(full, Field{Column: col, Value: rec.Value(col)})
			}
			out.Records = append(out.Records, full)
		}
	}
	return out
}
