// Package render converts markdown reply text into the small HTML
// subset Telegram accepts in messages.
package render

import (
	"regexp"
	"strings"

	"github.com/russross/blackfriday"
)

var (
	tagReplacer = strings.NewReplacer(
		"<strong>", "<b>", "</strong>", "</b>",
		"<em>", "<i>", "</em>", "</i>",
		"<del>", "<s>", "</del>", "</s>",
	)

	headOpenRe  = regexp.MustCompile(`<h[1-6]>`)
	headCloseRe = regexp.MustCompile(`</h[1-6]>`)
	blockEndRe  = regexp.MustCompile(`</p>|</li>`)
	// Telegram allows only b, i, u, s, a, code and pre.
	dropTagRe = regexp.MustCompile(`</?(?:p|ul|ol|li|blockquote)>|<(?:hr|br|img[^>]*)\s*/?>`)
)

// TelegramHTML renders markdown into Telegram-safe HTML. Block
// structure is flattened to newlines since Telegram has no block tags.
func TelegramHTML(markdown string) string {
	html := string(blackfriday.MarkdownCommon([]byte(markdown)))

	html = tagReplacer.Replace(html)
	html = headOpenRe.ReplaceAllString(html, "<b>")
	html = headCloseRe.ReplaceAllString(html, "</b>\n")
	html = strings.ReplaceAll(html, "<li>", "• ")
	html = blockEndRe.ReplaceAllString(html, "\n")
	html = dropTagRe.ReplaceAllString(html, "")

	return strings.TrimSpace(html)
}
