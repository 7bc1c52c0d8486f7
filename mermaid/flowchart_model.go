package mermaid

// Direction is the layout direction of a flowchart or subgraph.
type Direction int

const (
	TopDown Direction = iota // TD / TB
	BottomUp                 // BT
	LeftRight                // LR
	RightLeft                // RL
)

func (d Direction) String() string {
	switch d {
	case TopDown:
		return "TD"
	case BottomUp:
		return "BT"
	case LeftRight:
		return "LR"
	case RightLeft:
		return "RL"
	default:
		return "TD"
	}
}

// Shape is the rendered shape of a flowchart node, determined by the
// delimiter pair around its text.
type Shape int

const (
	ShapeRectangle     Shape = iota // [ ]
	ShapeRounded                    // ( )
	ShapeStadium                    // ([ ])
	ShapeSubroutine                 // [[ ]]
	ShapeRhombus                    // { }
	ShapeHexagon                    // {{ }}
	ShapeCircle                     // (( ))
	ShapeDoubleCircle               // ((( )))
	ShapeAsymmetric                 // > ]
	ShapeParallelogram              // [/ /]
	ShapeTrapezoid                  // [\ \]
)

var shapeNames = map[Shape]string{
	ShapeRectangle:     "rectangle",
	ShapeRounded:       "rounded",
	ShapeStadium:       "stadium",
	ShapeSubroutine:    "subroutine",
	ShapeRhombus:       "rhombus",
	ShapeHexagon:       "hexagon",
	ShapeCircle:        "circle",
	ShapeDoubleCircle:  "double-circle",
	ShapeParallelogram: "parallelogram",
	ShapeTrapezoid:     "trapezoid",
	ShapeAsymmetric:    "asymmetric",
}

func (s Shape) String() string {
	if name, ok := shapeNames[s]; ok {
		return name
	}
	return "rectangle"
}

// LineStyle is the visual style of an edge's line.
type LineStyle int

const (
	LineSolid LineStyle = iota
	LineDotted
	LineThick
	LineInvisible
)

func (s LineStyle) String() string {
	switch s {
	case LineDotted:
		return "dotted"
	case LineThick:
		return "thick"
	case LineInvisible:
		return "invisible"
	default:
		return "solid"
	}
}

// Arrowhead is the terminator drawn at an edge's destination.
type Arrowhead int

const (
	ArrowNormal Arrowhead = iota
	ArrowOpen
	ArrowCross
	ArrowCircle
	ArrowNone
)

func (a Arrowhead) String() string {
	switch a {
	case ArrowOpen:
		return "open"
	case ArrowCross:
		return "cross"
	case ArrowCircle:
		return "circle"
	case ArrowNone:
		return "none"
	default:
		return "normal"
	}
}

// FlowchartNode is a single node in a flowchart. Identity is the ID; the
// first shaped occurrence fixes text and shape, later bare references reuse
// the existing entry.
type FlowchartNode struct {
	ID    string
	Text  string
	Shape Shape
	Line  int // source line of first occurrence
}

// FlowchartEdge is a directed connection between two nodes. From and To are
// node IDs resolved through the owning diagram's node map, never copies.
type FlowchartEdge struct {
	From      string
	To        string
	Label     string
	Style     LineStyle
	Arrowhead Arrowhead
	MinLength int // rank span encoded by extra dashes; 1 for the minimal form
}

// FlowchartSubgraph is a named grouping of nodes, possibly nested.
// NodeIDs holds member node IDs in first-seen order.
type FlowchartSubgraph struct {
	ID           string
	Title        string
	Direction    Direction
	HasDirection bool
	NodeIDs      []string
	Subgraphs    []*FlowchartSubgraph
}

// ClassDef records a classDef declaration. The style body is consumed
// syntactically but not decomposed; only the target class name is kept.
type ClassDef struct {
	Name string
}

// Flowchart is the complete parsed representation of one flowchart source.
type Flowchart struct {
	Direction Direction
	Edges     []*FlowchartEdge
	Subgraphs []*FlowchartSubgraph
	ClassDefs []ClassDef
	Errors    []ParseError

	nodes     map[string]*FlowchartNode
	nodeOrder []string // preserve declaration order
}

// newFlowchart returns an empty model with the default direction.
func newFlowchart() *Flowchart {
	return &Flowchart{
		Direction: TopDown,
		nodes:     make(map[string]*FlowchartNode),
	}
}

// Node returns the node with the given ID, or nil if not present.
func (f *Flowchart) Node(id string) *FlowchartNode {
	return f.nodes[id]
}

// Nodes returns all nodes in declaration order.
func (f *Flowchart) Nodes() []*FlowchartNode {
	nodes := make([]*FlowchartNode, 0, len(f.nodeOrder))
	for _, id := range f.nodeOrder {
		nodes = append(nodes, f.nodes[id])
	}
	return nodes
}

// EdgesFrom returns all edges originating at the given node ID.
func (f *Flowchart) EdgesFrom(id string) []*FlowchartEdge {
	var result []*FlowchartEdge
	for _, e := range f.Edges {
		if e.From == id {
			result = append(result, e)
		}
	}
	return result
}

// EdgesTo returns all edges targeting the given node ID.
func (f *Flowchart) EdgesTo(id string) []*FlowchartEdge {
	var result []*FlowchartEdge
	for _, e := range f.Edges {
		if e.To == id {
			result = append(result, e)
		}
	}
	return result
}

// ensureNode registers a bare reference: the node is created with default
// text and shape if missing, and an existing entry is left untouched.
func (f *Flowchart) ensureNode(id string, line int) *FlowchartNode {
	if n, ok := f.nodes[id]; ok {
		return n
	}
	n := &FlowchartNode{ID: id, Text: id, Shape: ShapeRectangle, Line: line}
	f.nodes[id] = n
	f.nodeOrder = append(f.nodeOrder, id)
	return n
}

// defineNode registers or updates a shaped node definition. A shaped
// occurrence always sets text and shape; the original source line of the
// first occurrence is kept.
func (f *Flowchart) defineNode(id, text string, shape Shape, line int) *FlowchartNode {
	n := f.ensureNode(id, line)
	n.Text = text
	n.Shape = shape
	return n
}
