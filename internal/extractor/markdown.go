package extractor

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/dgallion1/docstruct/internal/document"
)

// MarkdownExtractor handles Markdown files using goldmark. Headings
// become synthetic bookmarks at their heading level; body text is
// paginated into fixed-size windows.
type MarkdownExtractor struct {
	PageChars int
}

func (p *MarkdownExtractor) Extract(r io.Reader, filename string) (*document.Source, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	var sb strings.Builder
	var headings []heading

	appendText := func(t string) {
		t = strings.TrimSpace(t)
		if t == "" {
			return
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(t)
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			title := string(node.Text(src))
			if sb.Len() > 0 {
				sb.WriteString("\n\n")
			}
			headings = append(headings, heading{
				title:  title,
				level:  node.Level,
				offset: sb.Len(),
			})
			sb.WriteString(title)
		default:
			appendText(mdText(n, src))
		}
	}

	// First h1 doubles as the document title.
	title := ""
	for _, h := range headings {
		if h.level == 1 {
			title = h.title
			break
		}
	}

	return synthSource(filename, title, sb.String(), headings, p.PageChars), nil
}

// mdText gets the text content of a goldmark AST node. Leaf blocks
// carry their raw source lines; containers are flattened recursively.
func mdText(n ast.Node, src []byte) string {
	if t, ok := n.(*ast.Text); ok {
		return string(t.Value(src))
	}
	if n.Type() == ast.TypeBlock {
		if lines := n.Lines(); lines.Len() > 0 {
			var buf bytes.Buffer
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				buf.Write(seg.Value(src))
			}
			return strings.TrimSpace(buf.String())
		}
	}
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if s := mdText(c, src); s != "" {
			if buf.Len() > 0 {
				buf.WriteByte('\n')
			}
			buf.WriteString(s)
		}
	}
	return strings.TrimSpace(buf.String())
}
