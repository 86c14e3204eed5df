package chart

import (
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Kind names the element a scene node materializes into.
type Kind string

// Node kinds understood by the renderers.
const (
	KindBody   Kind = "body"
	KindDiv    Kind = "div"
	KindSVG    Kind = "svg"
	KindGroup  Kind = "g"
	KindCircle Kind = "circle"
	KindLine   Kind = "line"
	KindText   Kind = "text"
)

// DefaultContainerID is the id of the element the chart attaches to.
const DefaultContainerID = "scatterplot"

// Attr is a single name/value attribute or style property.
type Attr struct {
	Name  string
	Value string
}

// Transform positions a node relative to its parent: translate first, then rotate.
type Transform struct {
	TX, TY float64
	Rotate float64 // degrees
}

// IsZero reports whether the transform leaves coordinates untouched.
func (t Transform) IsZero() bool {
	return t.TX == 0 && t.TY == 0 && t.Rotate == 0
}

// String renders the transform in SVG syntax.
func (t Transform) String() string {
	if t.IsZero() {
		return ""
	}
	var b strings.Builder
	b.WriteString("translate(")
	b.WriteString(FormatNumber(t.TX))
	b.WriteString(", ")
	b.WriteString(FormatNumber(t.TY))
	b.WriteString(")")
	if t.Rotate != 0 {
		b.WriteString(" rotate(")
		b.WriteString(FormatNumber(t.Rotate))
		b.WriteString(")")
	}
	return b.String()
}

// Node is one element of the scene graph.
// Text is plain text; InnerHTML is trusted markup produced by this package.
type Node struct {
	Kind      Kind
	Attrs     []Attr
	Style     []Attr
	Text      string
	InnerHTML string
	Transform Transform
	Children  []*Node
}

// NewNode creates an empty node of the given kind.
func NewNode(kind Kind) *Node {
	return &Node{Kind: kind}
}

// Set assigns an attribute, replacing an existing value.
func (n *Node) Set(name, value string) *Node {
	n.Attrs = setAttr(n.Attrs, name, value)
	return n
}

// SetFloat assigns a numeric attribute.
func (n *Node) SetFloat(name string, v float64) *Node {
	return n.Set(name, FormatNumber(v))
}

// Get returns an attribute value.
func (n *Node) Get(name string) (string, bool) {
	return getAttr(n.Attrs, name)
}

// Float returns a numeric attribute, or 0 when absent or not a number.
func (n *Node) Float(name string) float64 {
	v, ok := n.Get(name)
	if !ok {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}

// SetStyle assigns an inline style property.
func (n *Node) SetStyle(name, value string) *Node {
	n.Style = setAttr(n.Style, name, value)
	return n
}

// StyleValue returns an inline style property.
func (n *Node) StyleValue(name string) (string, bool) {
	return getAttr(n.Style, name)
}

// Append adds children and returns the receiver.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// ID returns the id attribute.
func (n *Node) ID() string {
	id, _ := n.Get("id")
	return id
}

// HasClass reports whether class is listed in the class attribute.
func (n *Node) HasClass(class string) bool {
	v, ok := n.Get("class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

// Walk visits n and its descendants depth first. Returning false from fn
// skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// FindAll returns every node in the subtree matching pred, in document order.
func (n *Node) FindAll(pred func(*Node) bool) []*Node {
	var out []*Node
	n.Walk(func(c *Node) bool {
		if pred(c) {
			out = append(out, c)
		}
		return true
	})
	return out
}

// FindByID returns the first node with the given id, or nil.
func (n *Node) FindByID(id string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if c.ID() == id {
			found = c
			return false
		}
		return true
	})
	return found
}

// Document is the page the chart is attached to: a body holding the chart
// container plus any overlay elements.
type Document struct {
	ID        string
	Body      *Node
	Container *Node
}

// NewDocument creates a document whose body holds one container element.
func NewDocument(containerID string) *Document {
	if containerID == "" {
		containerID = DefaultContainerID
	}
	container := NewNode(KindDiv).Set("id", containerID)
	return &Document{
		ID:        uuid.NewString(),
		Body:      NewNode(KindBody).Append(container),
		Container: container,
	}
}

// Panels returns the svg canvases attached to the container.
func (d *Document) Panels() []*Node {
	var out []*Node
	for _, c := range d.Container.Children {
		if c.Kind == KindSVG {
			out = append(out, c)
		}
	}
	return out
}

// Marks returns every data mark in the container.
func (d *Document) Marks() []*Node {
	return d.Container.FindAll(func(n *Node) bool {
		return n.Kind == KindCircle && n.HasClass(MarkClass)
	})
}

// Tooltip returns the first tooltip overlay attached to the body, or nil.
func (d *Document) Tooltip() *Node {
	for _, c := range d.Body.Children {
		if c.ID() == TooltipID {
			return c
		}
	}
	return nil
}

// FormatNumber renders v with at most two decimals and no trailing zeros.
func FormatNumber(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		r = 0 // normalize -0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

func setAttr(attrs []Attr, name, value string) []Attr {
	for i := range attrs {
		if attrs[i].Name == name {
			attrs[i].Value = value
			return attrs
		}
	}
	return append(attrs, Attr{Name: name, Value: value})
}

func getAttr(attrs []Attr, name string) (string, bool) {
	for _, a := range attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}
