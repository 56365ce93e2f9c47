package render

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// ErrorList renders already encoded messages as an unordered list. An empty
// slice renders an empty list.
func ErrorList(messages []string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var sb strings.Builder
		sb.WriteString("<ul>")
		for _, msg := range messages {
			sb.WriteString("<li>")
			sb.WriteString(msg)
			sb.WriteString("</li>")
		}
		sb.WriteString("</ul>")
		_, err := io.WriteString(w, sb.String())
		return err
	})
}

// ToString renders a component to a string.
func ToString(ctx context.Context, c templ.Component) (string, error) {
	var sb strings.Builder
	if err := c.Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
