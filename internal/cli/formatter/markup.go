package formatter

import (
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/microcosm-cc/bluemonday"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/net/html"
)

// Kind classifies a response body for rendering.
type Kind int

const (
	KindPlain Kind = iota
	KindHTML
	KindMarkdown
)

var (
	htmlTagRe  = regexp.MustCompile(`(?i)</?(h[1-6]|ul|ol|li|p|br|strong|b|em|i)\b[^>]*>`)
	markdownRe = regexp.MustCompile("(?m)(^#{1,6} |^\\s*[-*] |^\\s*\\d+\\. |^```|\\*\\*[^*\\n]+\\*\\*)")
)

// Detect guesses whether content is HTML, Markdown or plain text.
func Detect(content string) Kind {
	switch {
	case htmlTagRe.MatchString(content):
		return KindHTML
	case markdownRe.MatchString(content):
		return KindMarkdown
	default:
		return KindPlain
	}
}

// answerPolicy keeps the handful of tags the guide emits. Everything else,
// including scripts and attributes, is stripped before rendering.
var answerPolicy = bluemonday.NewPolicy().
	AllowElements("h1", "h2", "h3", "h4", "h5", "h6", "ul", "ol", "li", "p", "br", "strong", "b", "em", "i")

// Sanitize strips markup outside the allowed set.
func Sanitize(content string) string {
	return answerPolicy.Sanitize(content)
}

// RenderResponse turns a guide answer into terminal text wrapped to width.
func RenderResponse(content string, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	switch Detect(content) {
	case KindHTML:
		return RenderHTML(content, width)
	case KindMarkdown:
		out, err := RenderMarkdown(content, width)
		if err != nil {
			return wordwrap.String(content, width)
		}
		return out
	default:
		return wordwrap.String(strings.TrimSpace(content), width)
	}
}

// RenderMarkdown renders with glamour using the no-TTY style so output is
// stable regardless of the terminal background.
func RenderMarkdown(content string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("notty"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	out, err := r.Render(content)
	if err != nil {
		return "", err
	}
	return strings.Trim(out, "\n"), nil
}

// RenderHTML sanitizes content and lays it out as styled terminal text:
// headings in the header style, list items as bullets, bold runs in bold.
func RenderHTML(content string, width int) string {
	r := &htmlRenderer{width: width}
	z := html.NewTokenizer(strings.NewReader(Sanitize(content)))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if z.Err() != io.EOF {
				return wordwrap.String(content, width)
			}
			break
		}
		tok := z.Token()
		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			r.open(tok.Data)
		case html.EndTagToken:
			r.close(tok.Data)
		case html.TextToken:
			r.text(tok.Data)
		}
	}
	r.flush()
	return strings.TrimRight(strings.Join(r.lines, "\n"), "\n ")
}

type listFrame struct {
	ordered bool
	n       int
}

type htmlRenderer struct {
	width   int
	lines   []string
	cur     strings.Builder
	prefix  string
	bold    int
	heading int
	lists   []listFrame
}

func (r *htmlRenderer) open(tag string) {
	switch tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		r.flush()
		r.blank()
		r.heading++
	case "ul", "ol":
		r.flush()
		r.lists = append(r.lists, listFrame{ordered: tag == "ol"})
	case "li":
		r.flush()
		marker := "•"
		if n := len(r.lists); n > 0 && r.lists[n-1].ordered {
			r.lists[n-1].n++
			marker = strconv.Itoa(r.lists[n-1].n) + "."
		}
		r.prefix = StyleGold.Render(marker) + " "
	case "p":
		r.flush()
		r.blank()
	case "br":
		r.flush()
	case "strong", "b":
		r.bold++
	}
}

func (r *htmlRenderer) close(tag string) {
	switch tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		if r.heading > 0 {
			r.heading--
		}
		r.flush()
	case "ul", "ol":
		r.flush()
		if n := len(r.lists); n > 0 {
			r.lists = r.lists[:n-1]
		}
	case "li", "p":
		r.flush()
	case "strong", "b":
		if r.bold > 0 {
			r.bold--
		}
	}
}

func (r *htmlRenderer) text(s string) {
	words := strings.Fields(s)
	if len(words) == 0 {
		return
	}
	chunk := strings.Join(words, " ")
	if r.cur.Len() > 0 && startsWithSpace(s) && !strings.HasSuffix(r.cur.String(), " ") {
		r.cur.WriteString(" ")
	}
	switch {
	case r.heading > 0:
		chunk = StyleHeader.Render(chunk)
	case r.bold > 0:
		chunk = StyleBold.Render(chunk)
	}
	r.cur.WriteString(chunk)
	if endsWithSpace(s) {
		r.cur.WriteString(" ")
	}
}

func (r *htmlRenderer) flush() {
	line := strings.TrimRight(r.cur.String(), " ")
	r.cur.Reset()
	if line == "" {
		r.prefix = ""
		return
	}

	depth := len(r.lists)
	if depth > 0 {
		depth--
	}
	pad := uint(2 * depth)
	if r.prefix != "" {
		body := wordwrap.String(line, wrapLimit(r.width-int(pad)-2))
		body = indent.String(body, 2)
		body = r.prefix + strings.TrimPrefix(body, "  ")
		r.lines = append(r.lines, indent.String(body, pad))
	} else {
		r.lines = append(r.lines, indent.String(wordwrap.String(line, wrapLimit(r.width-int(pad))), pad))
	}
	r.prefix = ""
}

func (r *htmlRenderer) blank() {
	if n := len(r.lines); n > 0 && r.lines[n-1] != "" {
		r.lines = append(r.lines, "")
	}
}

func startsWithSpace(s string) bool {
	return s != "" && strings.TrimLeft(s, " \t\r\n") != s
}

func endsWithSpace(s string) bool {
	return s != "" && strings.TrimRight(s, " \t\r\n") != s
}

func wrapLimit(w int) int {
	if w < 20 {
		return 20
	}
	return w
}
