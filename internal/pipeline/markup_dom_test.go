package pipeline

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-invoice2pdf/internal/layout"
)

// ---------------------------------------------------------------------------
// DOM helpers
// ---------------------------------------------------------------------------

func parseDOM(t *testing.T, markup string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("html.Parse() error = %v", err)
	}
	return doc
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key == "class" {
			for _, c := range strings.Fields(a.Val) {
				if c == class {
					return true
				}
			}
		}
	}
	return false
}

// findAll returns the element nodes under n matching pred, in document order.
func findAll(n *html.Node, pred func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && pred(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func byClass(class string) func(*html.Node) bool {
	return func(n *html.Node) bool { return hasClass(n, class) }
}

func byAtom(a atom.Atom) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.DataAtom == a }
}

func text(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}

// ---------------------------------------------------------------------------
// TestMarkupWriter_DOM - Parsed document structure
// ---------------------------------------------------------------------------

func TestMarkupWriter_DOMSectionOrder(t *testing.T) {
	t.Parallel()

	doc := parseDOM(t, render(t, newTestWriter(t), &layout.InvoiceData{CompanyName: "Acme"}))

	var order []string
	for _, n := range findAll(doc, func(n *html.Node) bool {
		return hasClass(n, "title") || hasClass(n, "contact") || hasClass(n, "bill-info") ||
			hasClass(n, "bills") || hasClass(n, "total")
	}) {
		for _, a := range n.Attr {
			if a.Key == "class" {
				order = append(order, a.Val)
			}
		}
	}

	want := []string{"title", "contact", "bill-info", "bills", "total"}
	if strings.Join(order, ",") != strings.Join(want, ",") {
		t.Errorf("section order = %q, want %q", order, want)
	}

	styles := findAll(doc, byAtom(atom.Style))
	if len(styles) != 1 {
		t.Fatalf("<style> count = %d, want 1", len(styles))
	}
	if styles[0].Parent.DataAtom != atom.Head {
		t.Errorf("<style> parent = %s, want head", styles[0].Parent.Data)
	}
}

func TestMarkupWriter_DOMBills(t *testing.T) {
	t.Parallel()

	doc := parseDOM(t, render(t, newTestWriter(t), &layout.InvoiceData{
		Bills: []layout.BillData{
			{Description: "first", Amount: 1},
			{Description: "second", Amount: 2, ExtraParagraphs: []string{"", "a", "b"}},
			{Description: "third", Amount: 3, ExtraParagraphs: []string{}},
			{Description: "fourth", Amount: 0, ExtraParagraphs: []string{"", ""}},
		},
	}))

	bills := findAll(doc, byClass("bill"))
	if len(bills) != 4 {
		t.Fatalf("bill count = %d, want 4", len(bills))
	}

	wantDesc := []string{"first", "second", "third", "fourth"}
	wantNotes := [][]string{nil, {"a", "b"}, nil, {}}
	for i, b := range bills {
		ps := findAll(b, byAtom(atom.P))
		if len(ps) < 2 || text(ps[0]) != wantDesc[i] {
			t.Errorf("bill %d description mismatch", i)
		}

		lists := findAll(b, byClass("extra-info"))
		if wantNotes[i] == nil {
			if len(lists) != 0 {
				t.Errorf("bill %d should have no sub-list", i)
			}
			continue
		}
		if len(lists) != 1 {
			t.Fatalf("bill %d sub-lists = %d, want 1", i, len(lists))
		}
		var got []string
		for _, li := range findAll(lists[0], byAtom(atom.Li)) {
			got = append(got, text(li))
		}
		if strings.Join(got, "|") != strings.Join(wantNotes[i], "|") {
			t.Errorf("bill %d notes = %q, want %q", i, got, wantNotes[i])
		}
	}

	totals := findAll(doc, byClass("total"))
	if len(totals) != 1 || text(totals[0]) != "TOTAL $6" {
		t.Errorf("total section = %q", text(totals[0]))
	}
}

func TestMarkupWriter_DOMEscapedText(t *testing.T) {
	t.Parallel()

	name := `<script>alert("x")</script> & Sons`
	doc := parseDOM(t, render(t, newTestWriter(t), &layout.InvoiceData{CompanyName: name}))

	if scripts := findAll(doc, byAtom(atom.Script)); len(scripts) != 0 {
		t.Fatalf("company name injected %d <script> elements", len(scripts))
	}
	headings := findAll(doc, byAtom(atom.H3))
	if len(headings) != 1 || text(headings[0]) != name {
		t.Errorf("contact heading text = %q, want %q", text(headings[0]), name)
	}
}
