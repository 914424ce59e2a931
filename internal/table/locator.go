package table

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// NodeSource is one place to look for a table.
type NodeSource interface {
	// FindTable returns the first table with the given id, or nil.
	FindTable(id string) *goquery.Selection
}

// Document is a parsed page searched through an ordered list of sources:
// the visible tree, then the contents of HTML comments.
type Document struct {
	sources []NodeSource
}

// Parse reads an HTML page.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return NewDocument(doc), nil
}

// NewDocument wraps an already parsed page.
func NewDocument(doc *goquery.Document) *Document {
	return &Document{
		sources: []NodeSource{
			treeSource{sel: doc.Selection},
			&commentSource{roots: doc.Selection.Nodes},
		},
	}
}

// Table locates the table with the given id.
func (d *Document) Table(id string) (*goquery.Selection, error) {
	for _, src := range d.sources {
		if t := src.FindTable(id); t != nil {
			return t, nil
		}
	}
	return nil, &NotFoundError{ID: id}
}

// treeSource searches the document as rendered.
type treeSource struct {
	sel *goquery.Selection
}

func (s treeSource) FindTable(id string) *goquery.Selection {
	return findTableByID(s.sel, id)
}

// commentSource searches markup embedded in comment nodes. Each comment that
// looks like it holds a table is parsed once, on first use.
type commentSource struct {
	roots  []*html.Node
	docs   []*goquery.Document
	loaded bool
}

func (s *commentSource) FindTable(id string) *goquery.Selection {
	s.load()
	for _, doc := range s.docs {
		if t := findTableByID(doc.Selection, id); t != nil {
			return t
		}
	}
	return nil
}

func (s *commentSource) load() {
	if s.loaded {
		return
	}
	s.loaded = true

	for _, root := range s.roots {
		walk(root, func(n *html.Node) {
			if n.Type != html.CommentNode || !strings.Contains(n.Data, "<table") {
				return
			}
			doc, err := goquery.NewDocumentFromReader(strings.NewReader(n.Data))
			if err != nil {
				return
			}
			s.docs = append(s.docs, doc)
		})
	}
}

func walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func findTableByID(sel *goquery.Selection, id string) *goquery.Selection {
	match := sel.Find("table").FilterFunction(func(_ int, t *goquery.Selection) bool {
		v, ok := t.Attr("id")
		return ok && v == id
	})
	if match.Length() == 0 {
		return nil
	}
	return match.First()
}
