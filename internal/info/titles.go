package info

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const topLevelHeadingLevelConstant = 1

// GuideTitle extracts the first top-level heading of a markdown document.
// Documents without one yield an empty string.
func GuideTitle(markdownPayload []byte) string {
	markdownParser := goldmark.New().Parser()
	documentRoot := markdownParser.Parse(text.NewReader(markdownPayload))

	extractedTitle := ""
	_ = ast.Walk(documentRoot, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		headingNode, isHeading := node.(*ast.Heading)
		if !isHeading || headingNode.Level != topLevelHeadingLevelConstant {
			return ast.WalkContinue, nil
		}
		extractedTitle = collectNodeText(headingNode, markdownPayload)
		return ast.WalkStop, nil
	})
	return strings.TrimSpace(extractedTitle)
}

func collectNodeText(node ast.Node, source []byte) string {
	var textBuilder strings.Builder
	for childNode := node.FirstChild(); childNode != nil; childNode = childNode.NextSibling() {
		switch typedChild := childNode.(type) {
		case *ast.Text:
			textBuilder.Write(typedChild.Segment.Value(source))
		default:
			textBuilder.WriteString(collectNodeText(childNode, source))
		}
	}
	return textBuilder.String()
}
