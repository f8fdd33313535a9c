package platform

import (
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"golang.org/x/net/html"
)

// ParseListing extracts the href targets of every anchor in an HTML directory
// index, in document order
func ParseListing(r io.Reader) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var links []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key == "href" && attr.Val != "" {
					links = append(links, attr.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return links, nil
}

// FilterByExt keeps the links whose name ends with ext and reduces each one to
// its unescaped base name. Query strings and fragments are ignored.
func FilterByExt(links []string, ext string) []string {
	var out []string
	seen := make(map[string]bool)

	for _, link := range links {
		name := link
		if u, err := url.Parse(link); err == nil {
			name = u.Path
		}
		if !strings.HasSuffix(strings.ToLower(name), strings.ToLower(ext)) {
			continue
		}

		if unescaped, err := url.PathUnescape(name); err == nil {
			name = unescaped
		}
		name = path.Base(name)
		if name == "." || name == "/" || seen[name] {
			continue
		}

		seen[name] = true
		out = append(out, name)
	}
	return out
}
