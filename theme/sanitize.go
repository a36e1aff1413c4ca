package theme

import "github.com/microcosm-cc/bluemonday"

// noticePolicy allows the inline formatting merchants actually use in the
// notice bar and strips everything that could script or restyle the page.
var noticePolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("b", "strong", "i", "em", "u", "br", "span")
	p.AllowAttrs("href").OnElements("a")
	p.RequireNoFollowOnLinks(true)
	return p
}()

// SanitizeHTML strips unsafe markup from merchant-supplied HTML before it
// can reach the render surface. Idempotent: sanitized input passes through
// unchanged.
func SanitizeHTML(s string) string {
	return noticePolicy.Sanitize(s)
}
