package text

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Speakable strips markdown syntax so a speech engine does not read it aloud.
// Code blocks are dropped, links and images keep their text, every block ends a line.
func Speakable(markdown string) string {
	source := []byte(markdown)
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	var sb strings.Builder

	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch n.Kind() {
		case ast.KindFencedCodeBlock, ast.KindCodeBlock, ast.KindHTMLBlock, ast.KindRawHTML:
			return ast.WalkSkipChildren, nil

		case ast.KindThematicBreak:
			return ast.WalkContinue, nil

		case ast.KindParagraph, ast.KindHeading, ast.KindTextBlock:
			if !entering {
				sb.WriteString("\n")
			}

			return ast.WalkContinue, nil
		}

		if !entering {
			return ast.WalkContinue, nil
		}

		switch v := n.(type) {
		case *ast.Text:
			sb.Write(v.Segment.Value(source))

			if v.SoftLineBreak() || v.HardLineBreak() {
				sb.WriteString(" ")
			}

		case *ast.String:
			sb.Write(v.Value)
		}

		return ast.WalkContinue, nil
	})

	return Normalize(sb.String())
}
