package soc

import (
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/brequin/brequin/soc/catalog"
	"golang.org/x/net/html"
)

var pageCountPattern = regexp.MustCompile(`Page \((\d+) of (\d+)\)`)

// row adapts one <tr> of the results table to catalog.Row.
type row struct {
	selection *goquery.Selection
	cells     []string
}

// NewRow wraps a parsed <tr> node, for callers that obtain the table some
// other way than ParsePage.
func NewRow(node *html.Node) catalog.Row {
	return newRow(goquery.NewDocumentFromNode(node).Selection)
}

func newRow(selection *goquery.Selection) *row {
	return &row{
		selection: selection,
		cells:     texts(selection.ChildrenFiltered("td")),
	}
}

func (r *row) Class() string {
	return r.selection.AttrOr("class", "")
}

func (r *row) CellCount() int {
	return len(r.cells)
}

func (r *row) CellText(i int) string {
	if i < 0 || i >= len(r.cells) {
		return ""
	}
	return r.cells[i]
}

func (r *row) SpanningText() (string, bool) {
	cell := r.selection.ChildrenFiltered(`td[colspan="13"]`).First()
	if cell.Length() == 0 {
		return "", false
	}
	return text(cell), true
}

func (r *row) HeaderTexts() []string {
	return texts(r.selection.ChildrenFiltered("td.crsheader"))
}

func text(selection *goquery.Selection) string {
	return strings.Join(strings.Fields(selection.Text()), " ")
}

func texts(selection *goquery.Selection) []string {
	return selection.Map(func(i int, s *goquery.Selection) string {
		return text(s)
	})
}

// PageNumbers reads "Page (n of total)" out of text.
func PageNumbers(text string) (number, total int, ok bool) {
	match := pageCountPattern.FindStringSubmatch(text)
	if match == nil {
		return 0, 0, false
	}
	number, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, 0, false
	}
	total, err = strconv.Atoi(match[2])
	if err != nil {
		return 0, 0, false
	}
	return number, total, true
}

// ParsePage reads one results page. A page without page metadata has no
// results; a page with metadata but no results table is incomplete.
func ParsePage(r io.Reader) (*catalog.Page, error) {
	document, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	number, total, ok := PageNumbers(text(document.Find(`td[align="right"]`).First()))
	if !ok {
		return nil, catalog.ErrNoResults
	}

	table := document.Find("table.tbrdr").First()
	if table.Length() == 0 {
		return nil, catalog.ErrTableMissing
	}

	page := &catalog.Page{Number: number, Total: total}
	for _, node := range table.ChildrenFiltered("tbody").ChildrenFiltered("tr").Nodes {
		page.Rows = append(page.Rows, NewRow(node))
	}
	return page, nil
}
