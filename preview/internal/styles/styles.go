// Package styles replicates the host document's styling into the isolated
// preview context. Every stylesheet reachable from the host page is carried
// over: inline style blocks are copied verbatim, linked sheets are inlined
// when their content can be fetched and re-linked by absolute URL when it
// cannot. A sheet that yields neither content nor a usable URL is skipped —
// the rest still apply, so replication degrades but never collapses into
// "no styles".
package styles

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// SheetRef is one stylesheet found in the host document, in document order.
// Exactly one of Href/Text is set.
type SheetRef struct {
	Href string // <link rel="stylesheet">
	Text string // <style> block content
}

// Block is a replicated stylesheet ready for the isolated head.
type Block struct {
	Inline string // CSS text to emit in a <style> block
	Href   string // absolute URL to emit as a <link>
}

// ExtractSheets parses the host document and returns every reachable
// stylesheet reference. Parsing is tolerant: malformed markup yields
// whatever sheets the parser can still see.
func ExtractSheets(hostHTML string) []SheetRef {
	doc, err := html.Parse(strings.NewReader(hostHTML))
	if err != nil {
		return nil
	}

	var refs []SheetRef
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "link":
				if isStylesheetLink(n) {
					if href := attr(n, "href"); href != "" {
						refs = append(refs, SheetRef{Href: href})
					}
				}
			case "style":
				var b strings.Builder
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					if c.Type == html.TextNode {
						b.WriteString(c.Data)
					}
				}
				if text := strings.TrimSpace(b.String()); text != "" {
					refs = append(refs, SheetRef{Text: text})
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return refs
}

func isStylesheetLink(n *html.Node) bool {
	rel := strings.ToLower(attr(n, "rel"))
	for _, part := range strings.Fields(rel) {
		if part == "stylesheet" {
			return true
		}
	}
	return false
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// Replicator turns sheet references into blocks for the isolated context.
type Replicator struct {
	httpc  *http.Client
	logger *slog.Logger
}

// Option customises a Replicator.
type Option func(*Replicator)

// WithHTTPClient replaces the fetcher used to inline linked sheets.
func WithHTTPClient(h *http.Client) Option { return func(r *Replicator) { r.httpc = h } }

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option { return func(r *Replicator) { r.logger = l } }

// NewReplicator creates a Replicator.
func NewReplicator(opts ...Option) *Replicator {
	r := &Replicator{
		httpc:  &http.Client{Timeout: 5 * time.Second},
		logger: slog.Default(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Replicate converts refs into blocks, resolving relative hrefs against
// base. The fallback chain per sheet: inline the fetched content; failing
// that, re-link by absolute URL; failing both, skip the sheet and keep
// going. Inline <style> refs copy their raw text directly.
func (r *Replicator) Replicate(ctx context.Context, refs []SheetRef, base *url.URL) []Block {
	var blocks []Block
	for _, ref := range refs {
		if ref.Text != "" {
			blocks = append(blocks, Block{Inline: ref.Text})
			continue
		}

		abs := resolve(base, ref.Href)
		if abs == "" {
			r.logger.Warn("styles: unusable stylesheet href, skipping", "href", ref.Href)
			continue
		}

		css, err := r.fetch(ctx, abs)
		if err != nil {
			r.logger.Debug("styles: inline fetch failed, re-linking", "href", abs, "error", err)
			blocks = append(blocks, Block{Href: abs})
			continue
		}
		blocks = append(blocks, Block{Inline: css})
	}
	return blocks
}

func (r *Replicator) fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := r.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func resolve(base *url.URL, href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base != nil {
		u = base.ResolveReference(u)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return u.String()
}

// BaselineReset is appended after every replicated block so copied rules
// cannot override it. It zeroes the frame chrome the isolated document
// would otherwise inherit and lets content height drive the document.
const BaselineReset = `html, body { margin: 0; padding: 0; height: auto; }`

// ComposeHead renders the replicated blocks plus the baseline reset as
// head markup for the isolated document.
func ComposeHead(blocks []Block) string {
	var b strings.Builder
	for _, blk := range blocks {
		if blk.Href != "" {
			b.WriteString(`<link rel="stylesheet" href="`)
			b.WriteString(html.EscapeString(blk.Href))
			b.WriteString("\">\n")
			continue
		}
		b.WriteString("<style>\n")
		b.WriteString(blk.Inline)
		b.WriteString("\n</style>\n")
	}
	b.WriteString("<style>")
	b.WriteString(BaselineReset)
	b.WriteString("</style>\n")
	return b.String()
}
