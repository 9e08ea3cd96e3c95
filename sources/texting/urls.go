package texting

import (
	"regexp"
	"strings"
)

var (
	// urlPattern detects scheme://host[/path] sequences, optionally wrapped in
	// angle brackets; group 1 is the URL without the brackets.
	urlPattern = regexp.MustCompile(`<?((http|https)://([\w_-]+(?:\.[\w_-]+)+)([^\s'<>]+)?)>?`)

	// markdownLinkPattern matches [text](url) style links arriving from the bridge.
	markdownLinkPattern = regexp.MustCompile(`\[([^\]]*)\]\(\s?(\S+?)\s?\)`)

	whitespacePattern = regexp.MustCompile(`\s+`)
)

// FlattenMarkdownLinks rewrites markdown-style links into a plain "text: url"
// form and collapses repeated whitespace, for messages arriving from the bridge.
func FlattenMarkdownLinks(input string) string {
	flattened := markdownLinkPattern.ReplaceAllStringFunc(input, func(match string) string {
		groups := markdownLinkPattern.FindStringSubmatch(match)
		return strings.TrimSpace(groups[1]) + ": " + strings.TrimSpace(groups[2])
	})
	return whitespacePattern.ReplaceAllString(flattened, " ")
}
