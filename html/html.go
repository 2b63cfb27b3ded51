// Package html converts article fragments into content nodes for
// terminal rendering.
package html

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

// Node represents a content node in the document.
type Node struct {
	Type     NodeType
	Text     string
	Children []*Node
	Href     string // for links
}

// NodeType identifies the kind of content node.
type NodeType int

const (
	NodeDocument NodeType = iota
	NodeHeading1
	NodeHeading2
	NodeHeading3
	NodeParagraph
	NodeBlockquote
	NodeList
	NodeListItem
	NodeCode
	NodeCodeBlock
	NodeLink
	NodeText
	NodeStrong
	NodeEmphasis
	NodeRule
)

// Article is a parsed article fragment.
type Article struct {
	Title   string
	Content *Node
}

var policy = bluemonday.UGCPolicy()

// Sanitize strips scripts, styles, event handlers and anything else that
// is not article content from markup.
func Sanitize(markup string) string {
	return policy.Sanitize(markup)
}

// ParseArticle sanitizes and parses an article fragment. The content root
// is the first <article>, else <main>, else the whole fragment.
func ParseArticle(markup string) (*Article, error) {
	title := documentTitle(markup)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(Sanitize(markup)))
	if err != nil {
		return nil, err
	}

	root := doc.Find("article").First()
	if root.Length() == 0 {
		root = doc.Find("main").First()
	}
	if root.Length() == 0 {
		root = doc.Find("body").First()
	}

	content := &Node{Type: NodeDocument}
	if root.Length() > 0 {
		extractContent(root.Nodes[0], content)
	}

	if title == "" {
		title = strings.TrimSpace(root.Find("h1").First().Text())
	}

	return &Article{Title: title, Content: content}, nil
}

// documentTitle reads <title> before sanitizing drops the head.
func documentTitle(markup string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

func extractContent(n *html.Node, parent *Node) {
	var loose *Node // paragraph collecting bare inline content

	flush := func() {
		if loose != nil && strings.TrimSpace(loose.PlainText()) != "" {
			parent.Children = append(parent.Children, loose)
		}
		loose = nil
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			switch c.Data {
			case "h1":
				flush()
				parent.Children = append(parent.Children, &Node{Type: NodeHeading1, Text: textContent(c)})

			case "h2":
				flush()
				parent.Children = append(parent.Children, &Node{Type: NodeHeading2, Text: textContent(c)})

			case "h3", "h4", "h5", "h6":
				flush()
				parent.Children = append(parent.Children, &Node{Type: NodeHeading3, Text: textContent(c)})

			case "p":
				flush()
				node := &Node{Type: NodeParagraph}
				extractInline(c, node)
				parent.Children = append(parent.Children, node)

			case "blockquote":
				flush()
				node := &Node{Type: NodeBlockquote}
				extractContent(c, node)
				parent.Children = append(parent.Children, node)

			case "ul", "ol":
				flush()
				node := &Node{Type: NodeList}
				extractList(c, node)
				parent.Children = append(parent.Children, node)

			case "pre":
				flush()
				parent.Children = append(parent.Children, &Node{Type: NodeCodeBlock, Text: strings.Trim(rawText(c), "\n")})

			case "hr":
				flush()
				parent.Children = append(parent.Children, &Node{Type: NodeRule})

			case "article", "main", "section", "div", "header", "footer", "figure", "body":
				flush()
				extractContent(c, parent)

			default:
				if loose == nil {
					loose = &Node{Type: NodeParagraph}
				}
				extractInlineNode(c, loose)
			}

		case html.TextNode:
			if strings.TrimSpace(c.Data) == "" {
				continue
			}
			if loose == nil {
				loose = &Node{Type: NodeParagraph}
			}
			loose.Children = append(loose.Children, &Node{Type: NodeText, Text: c.Data})
		}
	}
	flush()
}

func extractList(n *html.Node, parent *Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "li" {
			item := &Node{Type: NodeListItem}
			extractInline(c, item)
			parent.Children = append(parent.Children, item)
		}
	}
}

func extractInline(n *html.Node, parent *Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		extractInlineNode(c, parent)
	}
}

func extractInlineNode(c *html.Node, parent *Node) {
	switch c.Type {
	case html.TextNode:
		if c.Data != "" {
			parent.Children = append(parent.Children, &Node{Type: NodeText, Text: c.Data})
		}

	case html.ElementNode:
		switch c.Data {
		case "a":
			link := &Node{Type: NodeLink, Href: getAttr(c, "href")}
			extractInline(c, link)
			parent.Children = append(parent.Children, link)

		case "strong", "b":
			node := &Node{Type: NodeStrong}
			extractInline(c, node)
			parent.Children = append(parent.Children, node)

		case "em", "i":
			node := &Node{Type: NodeEmphasis}
			extractInline(c, node)
			parent.Children = append(parent.Children, node)

		case "code":
			parent.Children = append(parent.Children, &Node{Type: NodeCode, Text: textContent(c)})

		case "br":
			parent.Children = append(parent.Children, &Node{Type: NodeText, Text: "\n"})

		case "img":
			if alt := getAttr(c, "alt"); alt != "" {
				parent.Children = append(parent.Children, &Node{Type: NodeText, Text: "[" + alt + "]"})
			}

		default:
			extractInline(c, parent)
		}
	}
}

func rawText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func textContent(n *html.Node) string {
	return strings.Join(strings.Fields(rawText(n)), " ")
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// PlainText returns the plain text content of a node and its children.
func (n *Node) PlainText() string {
	var sb strings.Builder
	n.appendPlainText(&sb)
	return sb.String()
}

func (n *Node) appendPlainText(sb *strings.Builder) {
	if n.Text != "" {
		sb.WriteString(n.Text)
	}
	for _, child := range n.Children {
		child.appendPlainText(sb)
	}
}
