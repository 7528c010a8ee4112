package pipeline

import (
	"net/url"
	"path"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// markdownExtensions are the link targets rewritten to rendered pages.
var markdownExtensions = []string{".md", ".markdown"}

// RewriteMarkdownLinks points relative links to Markdown files at their
// rendered .html siblings, keeping query and fragment.
//
// Rewrites:
//   - a[href]: relative paths ending in .md or .markdown
//
// Leaves unchanged:
//   - absolute URLs, protocol-relative URLs, anchors
//   - absolute paths
//   - links to any other file type
func RewriteMarkdownLinks(fragment string) (string, error) {
	if !strings.Contains(fragment, "<a ") {
		return fragment, nil
	}

	nodes, err := html.ParseFragment(strings.NewReader(fragment), &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	})
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	for _, n := range nodes {
		rewriteLinks(n)
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// rewriteLinks traverses the tree and rewrites a[href] values in place.
func rewriteLinks(n *html.Node) {
	if n.Type == html.ElementNode && n.DataAtom == atom.A {
		for i, attr := range n.Attr {
			if attr.Key == "href" {
				n.Attr[i].Val = markdownToHTMLHref(attr.Val)
			}
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteLinks(c)
	}
}

// markdownToHTMLHref returns href with a Markdown extension swapped for .html.
// Non-matching or unparsable values are returned unchanged.
func markdownToHTMLHref(href string) string {
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "//") {
		return href
	}

	u, err := url.Parse(href)
	if err != nil || u.Scheme != "" || u.Host != "" || strings.HasPrefix(u.Path, "/") {
		return href
	}

	ext := strings.ToLower(path.Ext(u.Path))
	for _, md := range markdownExtensions {
		if ext == md {
			u.Path = strings.TrimSuffix(u.Path, path.Ext(u.Path)) + ".html"
			return u.String()
		}
	}
	return href
}
