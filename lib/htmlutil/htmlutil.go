package htmlutil

import (
	"bytes"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// GetText returns the concatenation of every text node under node.
func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer, false)
	return buffer.String()
}

// GetStrippedText is like GetText but trims every text node before
// joining them and drops the ones that end up empty.
func GetStrippedText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer, true)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer, strip bool) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		if strip {
			buffer.WriteString(strings.TrimSpace(node.Data))
			return
		}
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer, strip)
		child = child.NextSibling
	}
}

// Text returns the stripped text of the first node in sel, or "" if sel
// is empty.
func Text(sel *goquery.Selection) string {
	if sel == nil || len(sel.Nodes) == 0 {
		return ""
	}
	return GetStrippedText(sel.Nodes[0])
}

// HasClass reports whether node carries class among its space separated
// class names.
func HasClass(node *html.Node, class string) bool {
	for _, a := range node.Attr {
		if a.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(a.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

// DirectChildren returns the element children of sel with the given tag
// and class. Grandchildren are never visited.
func DirectChildren(sel *goquery.Selection, tag, class string) []*goquery.Selection {
	var out []*goquery.Selection
	sel.Children().Each(func(_ int, child *goquery.Selection) {
		node := child.Get(0)
		if tag != "" && node.Data != tag {
			return
		}
		if class != "" && !HasClass(node, class) {
			return
		}
		out = append(out, child)
	})
	return out
}

// Basename returns the last path element of a url or path, ignoring any
// query string or fragment.
func Basename(link string) string {
	if i := strings.IndexAny(link, "?#"); i >= 0 {
		link = link[:i]
	}
	if link == "" {
		return ""
	}
	return path.Base(link)
}
