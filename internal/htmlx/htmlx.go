// Package htmlx wraps the HTML fragment handling the line decorator needs:
// parsing, document-order text walking with rune-offset mapping, and
// re-serialization. The Engine interface exists so callers can share one
// code path between the precise tree mode and a degraded string-only mode
// (a nil Engine): capability check instead of environment conditionals.
package htmlx

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Attr is one attribute on a wrapper element.
type Attr struct {
	Key string
	Val string
}

// Engine parses inline HTML into a mutable Fragment.
type Engine interface {
	ParseFragment(fragment string) (*Fragment, error)
}

// Default returns the golang.org/x/net/html backed engine.
func Default() Engine {
	return netHTMLEngine{}
}

type netHTMLEngine struct{}

func (netHTMLEngine) ParseFragment(fragment string) (*Fragment, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), ctx)
	if err != nil {
		return nil, fmt.Errorf("parse fragment: %w", err)
	}
	return &Fragment{nodes: nodes}, nil
}

// Fragment is a parsed inline-HTML fragment: a list of sibling nodes with no
// shared parent document.
type Fragment struct {
	nodes []*html.Node
}

// Text returns the visible text of the fragment in document order.
func (f *Fragment) Text() string {
	var b strings.Builder
	for _, root := range f.nodes {
		walkText(root, func(n *html.Node) bool {
			b.WriteString(n.Data)
			return false
		})
	}
	return b.String()
}

// ReplaceRuneAt replaces the single rune at the given absolute rune offset
// of the fragment's visible text with the replacement string. The target may
// live inside any text node, nested arbitrarily deep in highlight spans;
// offsets are mapped by walking text nodes in document order, the same order
// Text concatenates in. Returns false when the offset is out of range.
func (f *Fragment) ReplaceRuneAt(offset int, replacement string) bool {
	if offset < 0 {
		return false
	}
	remaining := offset
	for _, root := range f.nodes {
		done := walkText(root, func(n *html.Node) bool {
			runes := []rune(n.Data)
			if remaining >= len(runes) {
				remaining -= len(runes)
				return false
			}
			n.Data = string(runes[:remaining]) + replacement + string(runes[remaining+1:])
			return true
		})
		if done {
			return true
		}
	}
	return false
}

// walkText visits the text nodes under n in document order, stopping when
// visit returns true. Iterative on an explicit stack: the render path must
// not recurse proportionally to fragment depth.
func walkText(n *html.Node, visit func(*html.Node) bool) bool {
	stack := []*html.Node{n}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node.Type == html.TextNode {
			if visit(node) {
				return true
			}
			continue
		}
		// Push children in reverse so document order pops first.
		for c := node.LastChild; c != nil; c = c.PrevSibling {
			stack = append(stack, c)
		}
	}
	return false
}

// WrapAll reparents every node of the fragment under one new element, so
// the fragment afterwards consists of exactly that container.
func (f *Fragment) WrapAll(tag string, attrs []Attr) {
	wrapper := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for _, a := range attrs {
		wrapper.Attr = append(wrapper.Attr, html.Attribute{Key: a.Key, Val: a.Val})
	}
	for _, n := range f.nodes {
		n.Parent = nil
		n.PrevSibling = nil
		n.NextSibling = nil
		wrapper.AppendChild(n)
	}
	f.nodes = []*html.Node{wrapper}
}

// Render serializes the fragment back to an HTML string.
func (f *Fragment) Render() (string, error) {
	var b strings.Builder
	for _, n := range f.nodes {
		if err := html.Render(&b, n); err != nil {
			return "", fmt.Errorf("render fragment: %w", err)
		}
	}
	return b.String(), nil
}
