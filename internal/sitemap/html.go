package sitemap

import (
	"strings"

	"golang.org/x/net/html"
)

// StripHTML reduces an excerpt to plain text: tags removed, script/style
// subtrees and comments dropped, whitespace collapsed.
func StripHTML(content string) string {
	if content == "" {
		return ""
	}

	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return strings.Join(strings.Fields(content), " ")
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.Join(strings.Fields(b.String()), " ")
}
