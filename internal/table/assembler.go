package table

import (
	"fmt"
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/bref-rosters/internal/level"
)

// Assembler merges same-shaped tables into one record set. The schema is
// fixed by the first table added; rows keep insertion order.
type Assembler struct {
	base *url.URL

	levelColumn string
	minLevel    level.Level

	source   Schema
	columns  Schema
	levelIdx int
	records  []Record
	dropped  int
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithBaseURL sets the URL that relative alternate links are resolved against.
func WithBaseURL(base *url.URL) Option {
	return func(a *Assembler) {
		a.base = base
	}
}

// WithLevelFilter keeps only rows whose column holds a level at or above min.
func WithLevelFilter(column string, min level.Level) Option {
	return func(a *Assembler) {
		a.levelColumn = column
		a.minLevel = min
	}
}

// NewAssembler returns an empty Assembler.
func NewAssembler(opts ...Option) *Assembler {
	a := &Assembler{levelIdx: -1}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Add appends the rows of t.
func (a *Assembler) Add(t *goquery.Selection) error {
	if a.levelColumn != "" {
		if err := a.minLevel.Validate(); err != nil {
			return err
		}
	}

	headings := Headings(t)
	if len(headings) == 0 {
		return fmt.Errorf("%w: table has no header row", ErrSchemaMismatch)
	}
	source := Schema(headings[1:])

	if a.source == nil {
		if err := a.setSchema(source); err != nil {
			return err
		}
	} else if !a.source.Equal(source) {
		return fmt.Errorf("%w: got %v, want %v", ErrSchemaMismatch, source, a.source)
	}

	for _, row := range ExtractRows(t) {
		if len(row.Cells) != len(a.source) {
			a.dropped++
			continue
		}
		if a.levelIdx >= 0 {
			keep, err := level.Include(row.Cells[a.levelIdx], a.minLevel)
			if err != nil {
				a.dropped++
				continue
			}
			if !keep {
				continue
			}
		}
		a.records = append(a.records, a.record(row))
	}
	return nil
}

func (a *Assembler) setSchema(source Schema) error {
	if a.levelColumn != "" {
		a.levelIdx = source.Index(a.levelColumn)
		if a.levelIdx < 0 {
			return fmt.Errorf("%w: %q", ErrColumnNotFound, a.levelColumn)
		}
	}
	a.source = source
	a.columns = make(Schema, 0, len(source)+2)
	a.columns = append(a.columns, source...)
	a.columns = append(a.columns, ColumnPlayerID, ColumnAltURL)
	return nil
}

func (a *Assembler) record(row Row) Record {
	link := ResolveLink(row.Link, a.base)
	rec := make(Record, 0, len(a.columns))
	for i, col := range a.source {
		rec = append(rec, Field{Column: col, Value: row.Cells[i]})
	}
	return append(rec,
		Field{Column: ColumnPlayerID, Value: link.ID},
		Field{Column: ColumnAltURL, Value: link.AltURL},
	)
}

// RecordSet returns what has been assembled so far.
func (a *Assembler) RecordSet() RecordSet {
	records := make([]Record, len(a.records))
	for i, rec := range a.records {
		records[i] = append(Record(nil), rec...)
	}
	return RecordSet{
		Columns: append(Schema(nil), a.columns...),
		Records: records,
		Dropped: a.dropped,
	}
}

// Assemble locates each table id in doc, in order, and merges them.
func Assemble(doc *Document, ids []string, opts ...Option) (RecordSet, error) {
	a := NewAssembler(opts...)
	for _, id := range ids {
		t, err := doc.Table(id)
		if err != nil {
			return RecordSet{}, err
		}
		if err := a.Add(t); err != nil {
			return RecordSet{}, fmt.Errorf("table %q: %w", id, err)
		}
	}
	return a.RecordSet(), nil
}
