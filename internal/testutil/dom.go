package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Page is a rendered HTML page that tests can query and interact with the
// way a user would: edit fields, pick options and click buttons. Elements
// are addressed by their data-testid attribute.
type Page struct {
	t       testing.TB
	handler http.Handler
	doc     *html.Node
}

// Render fetches path from handler with a GET and parses the result.
func Render(t testing.TB, handler http.Handler, path string) *Page {
	t.Helper()
	p := &Page{t: t, handler: handler}
	p.load(httptest.NewRequest(http.MethodGet, path, nil))
	return p
}

func (p *Page) load(req *http.Request) {
	p.t.Helper()

	rr := ExecuteRequest(req, p.handler)
	CheckResponseCode(p.t, http.StatusOK, rr.Code)

	doc, err := html.Parse(rr.Body)
	if err != nil {
		p.t.Fatalf("parsing HTML response: %v", err)
	}
	p.doc = doc
}

// Has reports whether an element with the given test ID exists.
func (p *Page) Has(testID string) bool {
	return findNode(p.doc, byTestID(testID)) != nil
}

// HasText reports whether the page's visible text contains s.
func (p *Page) HasText(s string) bool {
	return strings.Contains(textContent(p.doc), s)
}

// Text returns the text content of the element with the given test ID.
func (p *Page) Text(testID string) string {
	p.t.Helper()
	return textContent(p.mustFind(testID))
}

// Value returns the current value of an input or select.
func (p *Page) Value(testID string) string {
	p.t.Helper()
	n := p.mustFind(testID)
	if n.DataAtom == atom.Select {
		return selectedValue(n)
	}
	return attr(n, "value")
}

// Change sets the value of the input with the given test ID.
func (p *Page) Change(testID, value string) {
	p.t.Helper()
	n := p.mustFind(testID)
	if n.DataAtom != atom.Input {
		p.t.Fatalf("element %q is a <%s>, not an <input>", testID, n.Data)
	}
	setAttr(n, "value", value)
}

// Select picks the option with the given value in a select element.
func (p *Page) Select(testID, value string) {
	p.t.Helper()
	n := p.mustFind(testID)
	if n.DataAtom != atom.Select {
		p.t.Fatalf("element %q is a <%s>, not a <select>", testID, n.Data)
	}

	found := false
	for _, opt := range findAll(n, byAtom(atom.Option)) {
		removeAttr(opt, "selected")
		if optionValue(opt) == value && !found {
			setAttr(opt, "selected", "")
			found = true
		}
	}
	if !found {
		p.t.Fatalf("select %q has no option with value %q", testID, value)
	}
}

// Click activates a submit button: the enclosing form is serialised the way
// a browser would and posted back, and the response becomes the page.
func (p *Page) Click(testID string) {
	p.t.Helper()
	btn := p.mustFind(testID)
	if btn.DataAtom != atom.Button {
		p.t.Fatalf("element %q is a <%s>, not a <button>", testID, btn.Data)
	}

	form := ancestor(btn, atom.Form)
	if form == nil {
		p.t.Fatalf("button %q is not inside a form", testID)
	}

	values := formValues(form)
	if name := attr(btn, "name"); name != "" {
		values.Add(name, attr(btn, "value"))
	}

	action := attr(form, "action")
	if action == "" {
		action = "/"
	}
	p.load(NewFormRequest(action, values))
}

func (p *Page) mustFind(testID string) *html.Node {
	p.t.Helper()
	n := findNode(p.doc, byTestID(testID))
	if n == nil {
		p.t.Fatalf("no element with data-testid %q", testID)
	}
	return n
}

func formValues(form *html.Node) url.Values {
	values := url.Values{}
	for _, n := range findAll(form, func(n *html.Node) bool {
		return n.DataAtom == atom.Input || n.DataAtom == atom.Select
	}) {
		name := attr(n, "name")
		if name == "" {
			continue
		}
		if n.DataAtom == atom.Select {
			values.Add(name, selectedValue(n))
			continue
		}
		values.Add(name, attr(n, "value"))
	}
	return values
}

func selectedValue(sel *html.Node) string {
	opts := findAll(sel, byAtom(atom.Option))
	for _, opt := range opts {
		if hasAttr(opt, "selected") {
			return optionValue(opt)
		}
	}
	if len(opts) > 0 {
		return optionValue(opts[0])
	}
	return ""
}

func optionValue(opt *html.Node) string {
	if hasAttr(opt, "value") {
		return attr(opt, "value")
	}
	return strings.TrimSpace(textContent(opt))
}

func byTestID(id string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && attr(n, "data-testid") == id
	}
}

func byAtom(a atom.Atom) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == a
	}
}

func findNode(root *html.Node, match func(*html.Node) bool) *html.Node {
	if match(root) {
		return root
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if n := findNode(c, match); n != nil {
			return n
		}
	}
	return nil
}

func findAll(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

func ancestor(n *html.Node, a atom.Atom) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.DataAtom == a {
			return p
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	attrs := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Key != key {
			attrs = append(attrs, a)
		}
	}
	n.Attr = attrs
}
