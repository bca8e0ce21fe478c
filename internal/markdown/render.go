// ABOUTME: Renders assistant Markdown replies as ANSI terminal text
// ABOUTME: Walks the goldmark AST; links become "title (url)" with underline

// Package markdown converts assistant replies from Markdown to plain
// terminal output with a little ANSI styling. The backend writes replies
// in Markdown for the browser; in a terminal we keep the structure (lists,
// emphasis, citation links) without showing raw markup.
package markdown

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gtext "github.com/yuin/goldmark/text"
)

const (
	ansiReset     = "\033[0m"
	ansiBold      = "\033[1m"
	ansiDim       = "\033[2m"
	ansiItalic    = "\033[3m"
	ansiUnderline = "\033[4m"
)

// Render converts Markdown source to ANSI terminal text. On any walk
// failure the source is returned unchanged; a raw reply is better than a
// lost one.
func Render(source string) string {
	src := []byte(source)
	doc := goldmark.New().Parser().Parse(gtext.NewReader(src))

	r := &renderer{source: src}
	if err := ast.Walk(doc, r.walk); err != nil {
		return source
	}
	return strings.TrimRight(r.out.String(), "\n")
}

// renderer accumulates output while walking the AST. ordered tracks the
// item counter for each nested ordered list.
type renderer struct {
	source  []byte
	out     strings.Builder
	ordered []int
}

func (r *renderer) walk(n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node := n.(type) {
	case *ast.Heading:
		if entering {
			r.out.WriteString(ansiBold)
		} else {
			r.out.WriteString(ansiReset + "\n\n")
		}

	case *ast.Paragraph:
		if !entering {
			r.out.WriteString("\n\n")
		}

	case *ast.TextBlock:
		if !entering {
			r.out.WriteString("\n")
		}

	case *ast.Text:
		if entering {
			r.out.Write(node.Segment.Value(r.source))
			if node.HardLineBreak() || node.SoftLineBreak() {
				r.out.WriteString("\n")
			}
		}

	case *ast.String:
		if entering {
			r.out.Write(node.Value)
		}

	case *ast.Emphasis:
		style := ansiItalic
		if node.Level >= 2 {
			style = ansiBold
		}
		if entering {
			r.out.WriteString(style)
		} else {
			r.out.WriteString(ansiReset)
		}

	case *ast.CodeSpan:
		if entering {
			r.out.WriteString(ansiDim)
		} else {
			r.out.WriteString(ansiReset)
		}

	case *ast.Link:
		if entering {
			r.out.WriteString(ansiUnderline)
		} else {
			r.out.WriteString(ansiReset + " (" + string(node.Destination) + ")")
		}

	case *ast.AutoLink:
		if entering {
			r.out.WriteString(ansiUnderline)
			r.out.Write(node.URL(r.source))
			r.out.WriteString(ansiReset)
		}
		return ast.WalkSkipChildren, nil

	case *ast.List:
		if entering {
			start := 0
			if node.IsOrdered() {
				start = node.Start
				if start == 0 {
					start = 1
				}
			}
			r.ordered = append(r.ordered, start)
		} else {
			r.ordered = r.ordered[:len(r.ordered)-1]
			if _, inItem := n.Parent().(*ast.ListItem); !inItem {
				r.out.WriteString("\n")
			}
		}

	case *ast.ListItem:
		if entering {
			depth := len(r.ordered)
			r.out.WriteString(strings.Repeat("  ", depth-1))
			if counter := r.ordered[depth-1]; counter > 0 {
				r.out.WriteString(strconv.Itoa(counter) + ". ")
				r.ordered[depth-1]++
			} else {
				r.out.WriteString("- ")
			}
		}

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		if entering {
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				r.out.WriteString("    ")
				r.out.Write(seg.Value(r.source))
			}
			r.out.WriteString("\n")
		}
		return ast.WalkSkipChildren, nil

	case *ast.Blockquote:
		if entering {
			r.out.WriteString("  ")
		}

	case *ast.ThematicBreak:
		if entering {
			r.out.WriteString(strings.Repeat("-", 24) + "\n\n")
		}
	}

	return ast.WalkContinue, nil
}
