package source

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// HTML keeps the visible text of a document. Script-like containers are
// dropped and a newline is emitted around block-level elements, so
// "<td>12</td><td>34</td>" yields two runs rather than 1234.
type HTML struct {
	// KeepTitle includes the <title> text.
	KeepTitle bool
}

func (h HTML) Convert(input []byte) ([]byte, error) {
	node, err := html.Parse(bytes.NewReader(input))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	var b bytes.Buffer
	b.Grow(len(input) / 2)
	h.collect(&b, node)
	return b.Bytes(), nil
}

func (h HTML) collect(b *bytes.Buffer, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.CommentNode, html.DoctypeNode:
		return
	case html.ElementNode:
		name := strings.ToLower(n.Data)
		switch name {
		case "script", "style", "noscript", "template", "head":
			if name == "head" && h.KeepTitle {
				if t := findFirst(n, "title"); t != nil {
					h.collectChildren(b, t)
					b.WriteByte('\n')
				}
			}
			return
		}
		if isBlock(name) {
			b.WriteByte('\n')
			h.collectChildren(b, n)
			b.WriteByte('\n')
			return
		}
	}
	h.collectChildren(b, n)
}

func (h HTML) collectChildren(b *bytes.Buffer, n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		h.collect(b, c)
	}
}

func isBlock(name string) bool {
	switch name {
	case "p", "div", "section", "article", "main", "aside", "nav", "header", "footer",
		"h1", "h2", "h3", "h4", "h5", "h6", "ul", "ol", "li", "dl", "dt", "dd",
		"table", "thead", "tbody", "tfoot", "tr", "td", "th", "caption",
		"pre", "blockquote", "br", "hr", "form", "fieldset", "figure", "figcaption",
		"option", "address", "body", "title":
		return true
	}
	return false
}

func findFirst(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && strings.EqualFold(n.Data, tag) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if res := findFirst(c, tag); res != nil {
			return res
		}
	}
	return nil
}
