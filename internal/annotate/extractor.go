package annotate

import (
	"strings"

	"golang.org/x/net/html"
)

// Anchor is one hyperlink recovered from annotated output.
type Anchor struct {
	Href string // The link address
	Text string // The original matched text the anchor wraps
}

// Anchors extracts the anchors present in annotated output. Annotated text is
// an HTML fragment (plain text plus inserted <a> elements), which the parser
// wraps in a document; only anchor elements are reported.
func Anchors(annotated string) ([]Anchor, error) {
	doc, err := html.Parse(strings.NewReader(annotated))
	if err != nil {
		return nil, err
	}

	var anchors []Anchor
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			anchors = append(anchors, Anchor{
				Href: getAttr(n, "href"),
				Text: nodeText(n),
			})
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return anchors, nil
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
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
