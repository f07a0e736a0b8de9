package filters

import (
	"context"
	"regexp"

	"github.com/tgrouter/tgrouter/pkg/domain"
)

// Regex matches updates whose textual content matches pattern. The
// content is the message text or caption, the callback query data, or
// the inline query text, depending on the update kind. Submatches are
// recorded on the event. Panics on an invalid pattern, like
// regexp.MustCompile.
func Regex(pattern string) Filter {
	re := regexp.MustCompile(pattern)

	return New("regex("+pattern+")", func(_ context.Context, e *domain.Event) (bool, error) {
		content := regexContent(e)
		if content == "" {
			return false, nil
		}

		matches := re.FindStringSubmatch(content)
		if matches == nil {
			return false, nil
		}

		e.Matches = matches
		return true, nil
	})
}

func regexContent(e *domain.Event) string {
	switch {
	case e.Update.CallbackQuery != nil:
		return e.Update.CallbackQuery.Data
	case e.Update.InlineQuery != nil:
		return e.Update.InlineQuery.Query
	}
	return e.Text()
}

// CallbackData matches callback queries whose data starts with prefix.
func CallbackData(prefix string) Filter {
	return New("callback_data("+prefix+")", func(_ context.Context, e *domain.Event) (bool, error) {
		cb := e.Update.CallbackQuery
		if cb == nil {
			return false, nil
		}
		if len(cb.Data) < len(prefix) {
			return false, nil
		}
		return cb.Data[:len(prefix)] == prefix, nil
	})
}
