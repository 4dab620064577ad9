package markup

import (
	"bytes"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// registryKey normalizes a tag or registry name. A Caser keeps state, so a
// new one is made per call.
func registryKey(name string) string {
	return cases.Upper(language.Und).String(name)
}

// problematicHTMLTags lists HTML tags that conflict with component names.
// The html parser matches them case-insensitively and applies HTML5
// semantics (e.g., <Link> becomes the void <link> and loses its children),
// so a component registered under one of these names is never reached
// with the markup its author intended.
var problematicHTMLTags = map[string]bool{
	// Void elements
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,

	// Elements with special parsing rules
	"script": true, "style": true, "title": true, "textarea": true,
	"select": true, "option": true, "optgroup": true, "template": true,
	"iframe": true, "object": true, "form": true, "button": true,
	"table": true, "thead": true, "tbody": true, "tfoot": true,
	"tr": true, "td": true, "th": true, "caption": true, "colgroup": true,

	// Document structure
	"html": true, "head": true, "body": true, "frameset": true,
}

// ConflictingTagNames returns the registry names that collide with HTML tags
// the parser treats specially, sorted.
func ConflictingTagNames(registry map[string]any) []string {
	var names []string
	for name := range registry {
		if problematicHTMLTags[strings.ToLower(name)] {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// Attribute values may contain '>' or '/', so quoted values are skipped whole.
var selfClosingTag = regexp.MustCompile(`<([A-Za-z][A-Za-z0-9-]*)((?:\s+(?:[^<>"'/]|"[^"]*"|'[^']*'|/[^>])*)?)\s*/>`)

// expandSelfClosing rewrites <Name .../> into <Name ...></Name> for non-void
// elements. HTML5 ignores the trailing slash, so without this a
// self-closing component would swallow its following siblings.
func expandSelfClosing(src string) string {
	return selfClosingTag.ReplaceAllStringFunc(src, func(m string) string {
		sub := selfClosingTag.FindStringSubmatch(m)
		name := sub[1]
		if voidElements[strings.ToLower(name)] {
			return m
		}
		return fmt.Sprintf("<%s%s></%s>", name, strings.TrimRight(sub[2], " \t\r\n"), name)
	})
}

// openingTag renders the start tag of n, used to name the element in errors.
func openingTag(n *html.Node) string {
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(n.Data)
	for _, a := range n.Attr {
		fmt.Fprintf(&b, ` %s="%s"`, a.Key, html.EscapeString(a.Val))
	}
	b.WriteString(">")
	return b.String()
}

// innerHTML serializes the children of n.
func innerHTML(n *html.Node) (string, error) {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// elementChildren returns the element children of n, skipping text and
// comments.
func elementChildren(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// estimateLineNumber finds the approximate line where text appears in the
// source. Tag and attribute names are lower-cased by the parser, so the
// search ignores case.
func estimateLineNumber(source, text string) int {
	if text == "" {
		return 0
	}
	lines := strings.Split(strings.ToLower(source), "\n")
	text = strings.ToLower(text)

	for i, line := range lines {
		if strings.Contains(line, text) {
			return i + 1
		}
	}

	// Ternaries are often reformatted; search for the condition part.
	if idx := strings.Index(text, "?"); idx > 0 && strings.Contains(text, ":") {
		if start := strings.LastIndex(text[:idx], "{"); start >= 0 {
			search := text[start : idx+1]
			for i, line := range lines {
				if strings.Contains(line, search) {
					return i + 1
				}
			}
		}
	}

	// Fallback: a short prefix
	trimmed := strings.TrimSpace(text)
	if len(trimmed) > 10 {
		search := trimmed[:10]
		for i, line := range lines {
			if strings.Contains(line, search) {
				return i + 1
			}
		}
	}
	return 0
}

// ContextLines returns the lines around lineNumber with the line itself
// marked, for diagnostics.
func ContextLines(source string, lineNumber, contextSize int) string {
	lines := strings.Split(source, "\n")
	if lineNumber < 1 || lineNumber > len(lines) {
		return ""
	}

	start := max(lineNumber-contextSize-1, 0)
	end := min(lineNumber+contextSize, len(lines))

	var b strings.Builder
	for i := start; i < end; i++ {
		prefix := "  "
		if i+1 == lineNumber {
			prefix = "> "
		}
		fmt.Fprintf(&b, "%s%4d | %s\n", prefix, i+1, lines[i])
	}
	return b.String()
}
