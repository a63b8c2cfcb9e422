package ui

// Rect is a screen rectangle in pixels.
type Rect struct {
	X, Y, W, H float32
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Node is a single UI element: panel, label or button. Class and ID select CSS rules.
// Children are stacked inside the node, vertically unless Row is set.
type Node struct {
	Type     string // "panel", "label", "button"
	Class    string // e.g. "menu" for .menu
	ID       string // e.g. "main" for #main
	Text     string
	Bounds   Rect
	Hidden   bool
	Row      bool
	Children []*Node
	// OnClick runs when the node is clicked. Nodes without it let clicks fall through to their parent.
	OnClick func()
	// Fill overrides the CSS background, e.g. for colour swatches.
	Fill *uint32
}

// NewNode creates a node with type and optional class, id, and text.
func NewNode(typ, class, id, text string, children ...*Node) *Node {
	return &Node{Type: typ, Class: class, ID: id, Text: text, Children: children}
}

// NewButton returns a clickable label.
func NewButton(class, text string, onClick func()) *Node {
	return &Node{Type: "button", Class: class, Text: text, OnClick: onClick}
}

// hit returns the deepest visible node under (x, y) that has a click handler, or nil.
func (n *Node) hit(x, y float32) *Node {
	if n.Hidden || !n.Bounds.Contains(x, y) {
		return nil
	}
	for i := len(n.Children) - 1; i >= 0; i-- {
		if h := n.Children[i].hit(x, y); h != nil {
			return h
		}
	}
	if n.OnClick != nil {
		return n
	}
	return nil
}
