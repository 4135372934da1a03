package markup

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/azbo/typeset/pkg/doc"
)

// voidTags never take end tags.
var voidTags = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// impliedEndTags may be left unclosed in valid HTML; the parser closes
// them when a sibling or the parent ends.
var impliedEndTags = map[string]bool{
	"li": true, "p": true, "tr": true, "td": true, "th": true,
	"thead": true, "tbody": true, "tfoot": true, "option": true,
	"dt": true, "dd": true,
}

type openTag struct {
	name   string
	offset int
}

// validate runs the tokenizer over the raw input and checks tag
// nesting. It reports the byte offset of the offending token; this is
// the only fatal condition in translation.
func validate(markup string) error {
	z := html.NewTokenizer(strings.NewReader(markup))
	var stack []openTag
	offset := 0

	for {
		tt := z.Next()
		tokenStart := offset
		offset += len(z.Raw())

		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return &doc.MarkupError{Offset: tokenStart, Msg: err.Error()}
			}
			for _, open := range stack {
				if !impliedEndTags[open.name] {
					return &doc.MarkupError{
						Offset: open.offset,
						Msg:    fmt.Sprintf("unterminated <%s>", open.name),
					}
				}
			}
			return nil
		case html.StartTagToken:
			name, _ := z.TagName()
			tag := strings.ToLower(string(name))
			if !voidTags[tag] {
				stack = append(stack, openTag{name: tag, offset: tokenStart})
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			tag := strings.ToLower(string(name))
			// Pop implied-end tags sitting above the matching open tag.
			top := len(stack) - 1
			for top >= 0 && stack[top].name != tag && impliedEndTags[stack[top].name] {
				top--
			}
			if top < 0 || stack[top].name != tag {
				return &doc.MarkupError{
					Offset: tokenStart,
					Msg:    fmt.Sprintf("unexpected </%s>", tag),
				}
			}
			stack = stack[:top]
		}
	}
}
