package table

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Row is one body row of a table.
type Row struct {
	Cells []string
	Link  string
}

// Headings returns the trimmed text of every th in the table's first row.
func Headings(t *goquery.Selection) []string {
	headings := make([]string, 0)
	t.Find("tr").First().Find("th").Each(func(_ int, th *goquery.Selection) {
		headings = append(headings, strings.TrimSpace(th.Text()))
	})
	return headings
}

// ExtractRows returns the body rows that carry a hyperlink, in source order.
// Cells are the row's td elements; the leading th rank cell is not included.
// Rows without a link are section headers or dividers and are skipped.
func ExtractRows(t *goquery.Selection) []Row {
	rows := make([]Row, 0)
	t.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		href, ok := tr.Find("a[href]").First().Attr("href")
		if !ok {
			return
		}
		cells := tr.Find("td").Map(func(_ int, td *goquery.Selection) string {
			return strings.TrimSpace(td.Text())
		})
		rows = append(rows, Row{Cells: cells, Link: href})
	})
	return rows
}
