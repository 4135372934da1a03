// Package markup translates a restricted HTML/CSS subset into a box
// tree. Unrecognized tags become generic block containers and
// unrecognized style properties are ignored; the only fatal condition
// is malformed tag nesting.
package markup

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/azbo/typeset/internal/res"
	"github.com/azbo/typeset/logging"
	"github.com/azbo/typeset/pkg/doc"
)

// Translator converts markup strings into box trees. A loader is
// needed only when the markup references images.
type Translator struct {
	loader   *res.Loader
	warnings []doc.Warning
}

// NewTranslator creates a translator resolving images via loader,
// which may be nil.
func NewTranslator(loader *res.Loader) *Translator {
	return &Translator{loader: loader}
}

// Translate converts markup into a box tree. It returns the non-fatal
// diagnostics recorded along the way; the conversion never aborts on a
// single bad image.
func (t *Translator) Translate(markup string) (doc.Node, []doc.Warning, error) {
	t.warnings = nil
	if err := validate(markup); err != nil {
		return nil, nil, err
	}
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, nil, &doc.MarkupError{Msg: err.Error()}
	}
	node := t.translateContainer(findBody(root), defaultStyle())
	return doc.Normalize(node), t.warnings, nil
}

func (t *Translator) warn(w doc.Warning) {
	t.warnings = append(t.warnings, w)
	logging.Logger().Debug("markup warning", "kind", w.Kind.String(), "detail", w.Detail)
}

// findBody returns the body element, or the root for fragments the
// parser did not wrap.
func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if body := findBody(c); body != nil {
			return body
		}
	}
	return nil
}

// translateContainer converts an element's children, merging inline
// content into text runs and recursing into block children. A single
// resulting child is returned bare; multiple children stack in a
// Column.
func (t *Translator) translateContainer(elem *html.Node, st styleState) doc.Node {
	if elem == nil {
		return doc.Column{}
	}
	var children []doc.Node
	var spans []doc.InlineSpan

	flush := func() {
		if hasVisibleText(spans) {
			children = append(children, doc.TextRun{Spans: spans, Align: st.Align})
		}
		spans = nil
	}

	var walk func(n *html.Node, st styleState)
	walk = func(n *html.Node, st styleState) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				if text := normalizeWhitespace(c.Data); text != "" {
					spans = append(spans, st.span(text))
				}
			case html.ElementNode:
				tag := strings.ToLower(c.Data)
				switch tag {
				case "br":
					spans = append(spans, st.span("\n"))
				case "b", "strong":
					s2 := st
					s2.Bold = true
					walk(c, s2.apply(attr(c, "style")))
				case "i", "em":
					s2 := st
					s2.Italic = true
					walk(c, s2.apply(attr(c, "style")))
				case "u":
					s2 := st
					s2.Underline = true
					walk(c, s2.apply(attr(c, "style")))
				case "span":
					walk(c, st.apply(attr(c, "style")))
				case "script", "style", "head":
					// Never content.
				default:
					flush()
					children = append(children, t.translateElement(c, st))
				}
			}
		}
	}
	walk(elem, st)
	flush()

	if len(children) == 1 {
		return children[0]
	}
	return doc.Column{Children: children}
}

// translateElement converts one block-level element. Unrecognized tags
// fall through to the generic container case with their children still
// translated.
func (t *Translator) translateElement(elem *html.Node, st styleState) doc.Node {
	tag := strings.ToLower(elem.Data)
	style := attr(elem, "style")

	if size, ok := headingSizes[tag]; ok {
		// Resolve the style attribute against the inherited size, so a
		// relative font-size scales the surrounding text, not the
		// heading default. The default fills in only when the attribute
		// is silent on font-size.
		heading := st
		heading.Bold = true
		heading = heading.apply(style)
		if !setsFontSize(style) {
			heading.Size = size
		}
		content := t.translateContainer(elem, heading)
		pad := heading.Size * 0.4
		return doc.Padding{Top: pad, Bottom: pad, Child: content}
	}

	st = st.apply(style)
	switch tag {
	case "p":
		return doc.Padding{Top: 6, Bottom: 6, Child: t.translateContainer(elem, st)}
	case "ul", "ol":
		return t.translateList(elem, st, tag == "ol")
	case "table":
		return t.translateTable(elem, st)
	case "img":
		return t.translateImage(elem)
	default:
		// div and any unrecognized tag: generic block container.
		return t.translateContainer(elem, st)
	}
}

func (t *Translator) translateList(elem *html.Node, st styleState, ordered bool) doc.Node {
	list := doc.List{Ordered: ordered}
	for c := elem.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && strings.ToLower(c.Data) == "li" {
			list.Items = append(list.Items, t.translateContainer(c, st.apply(attr(c, "style"))))
		}
	}
	return list
}

// translateTable builds a Table leaf. The first all-<th> row becomes
// the header; column specs come from width attributes or styles on the
// first row's cells, defaulting to auto.
func (t *Translator) translateTable(elem *html.Node, st styleState) doc.Node {
	style := doc.TableStyle{
		BorderColor:      doc.Gray,
		CellPadding:      4,
		HeaderBackground: doc.Color{R: 242, G: 242, B: 242},
		HeaderBold:       true,
	}
	if b := parseLength(attr(elem, "border"), st.Size, 0); b > 0 {
		style.BorderWidth = 1
	}
	for _, d := range parseDeclarations(attr(elem, "style")) {
		switch d.Property {
		case "border":
			if w := parseBorderWidth(d.Value); w > 0 {
				style.BorderWidth = w
			}
		case "cellpadding":
			style.CellPadding = parseLength(d.Value, st.Size, style.CellPadding)
		}
	}
	if cp := attr(elem, "cellpadding"); cp != "" {
		style.CellPadding = parseLength(cp, st.Size, style.CellPadding)
	}

	var header []doc.Node
	var rows [][]doc.Node
	var cols []doc.ColumnSpec
	for _, tr := range tableRows(elem) {
		var cells []doc.Node
		allHead := true
		i := 0
		for c := tr.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			cellTag := strings.ToLower(c.Data)
			if cellTag != "td" && cellTag != "th" {
				continue
			}
			if cellTag != "th" {
				allHead = false
			}
			cellStyle := st
			if cellTag == "th" {
				cellStyle.Bold = true
			}
			cells = append(cells, t.translateContainer(c, cellStyle.apply(attr(c, "style"))))
			if len(cols) <= i {
				cols = append(cols, columnSpecFor(c, st))
			}
			i++
		}
		if len(cells) == 0 {
			continue
		}
		if allHead && header == nil && len(rows) == 0 {
			header = cells
			continue
		}
		rows = append(rows, cells)
	}

	// Every row carries exactly one cell per column.
	for i := range rows {
		for len(rows[i]) < len(cols) {
			rows[i] = append(rows[i], doc.Column{})
		}
	}
	for header != nil && len(header) < len(cols) {
		header = append(header, doc.Column{})
	}

	table := doc.Table{Columns: cols, Header: header, Rows: rows, Style: style}
	if w := parseLength(attr(elem, "width"), st.Size, 0); w > 0 {
		return doc.SizeConstraint{Width: w, Child: table}
	}
	return table
}

// tableRows collects tr elements, looking through thead/tbody/tfoot.
func tableRows(table *html.Node) []*html.Node {
	var rows []*html.Node
	for c := table.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch strings.ToLower(c.Data) {
		case "tr":
			rows = append(rows, c)
		case "thead", "tbody", "tfoot":
			for r := c.FirstChild; r != nil; r = r.NextSibling {
				if r.Type == html.ElementNode && strings.ToLower(r.Data) == "tr" {
					rows = append(rows, r)
				}
			}
		}
	}
	return rows
}

// columnSpecFor reads a fixed width from a cell's width attribute or
// style, defaulting to auto.
func columnSpecFor(cell *html.Node, st styleState) doc.ColumnSpec {
	if w := parseLength(attr(cell, "width"), st.Size, 0); w > 0 {
		return doc.Fixed(w)
	}
	for _, d := range parseDeclarations(attr(cell, "style")) {
		if d.Property == "width" {
			if w := parseLength(d.Value, st.Size, 0); w > 0 {
				return doc.Fixed(w)
			}
		}
	}
	return doc.Auto()
}

// translateImage resolves an img element's pixel source. Resolution
// failure yields a zero-size placeholder and a warning, never an error.
func (t *Translator) translateImage(elem *html.Node) doc.Node {
	src := attr(elem, "src")
	if src == "" {
		t.warn(doc.Warning{Kind: doc.WarnImageUnresolved, Detail: "img without src"})
		return doc.Image{}
	}
	if t.loader == nil {
		t.warn(doc.Warning{Kind: doc.WarnImageUnresolved, Detail: fmt.Sprintf("no loader for %q", src)})
		return doc.Image{}
	}
	resource, err := t.loader.Load(src)
	if err != nil {
		t.warn(doc.Warning{Kind: doc.WarnImageUnresolved, Detail: fmt.Sprintf("%q: %v", src, err)})
		return doc.Image{}
	}
	w, h, err := resource.ImageSize()
	if err != nil {
		t.warn(doc.Warning{Kind: doc.WarnImageUnresolved, Detail: fmt.Sprintf("%q: %v", src, err)})
		return doc.Image{}
	}

	img := doc.Image{Source: resource, Width: w, Height: h}
	aw := parseLength(attr(elem, "width"), 0, 0)
	ah := parseLength(attr(elem, "height"), 0, 0)
	if aw > 0 || ah > 0 {
		return doc.SizeConstraint{Width: aw, Height: ah, Child: img}
	}
	return img
}

// parseBorderWidth extracts the width component of a border shorthand
// like "1px solid black".
func parseBorderWidth(value string) float64 {
	for _, f := range strings.Fields(value) {
		if w := parseLength(f, 0, 0); w > 0 {
			return w
		}
	}
	return 0
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

// normalizeWhitespace collapses runs of whitespace to single spaces,
// dropping text that is whitespace only.
func normalizeWhitespace(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	out := strings.Join(fields, " ")
	if strings.HasPrefix(s, " ") || strings.HasPrefix(s, "\n") || strings.HasPrefix(s, "\t") {
		out = " " + out
	}
	if strings.HasSuffix(s, " ") || strings.HasSuffix(s, "\n") || strings.HasSuffix(s, "\t") {
		out += " "
	}
	return out
}

func hasVisibleText(spans []doc.InlineSpan) bool {
	for _, s := range spans {
		if strings.TrimSpace(s.Text) != "" {
			return true
		}
	}
	return false
}
