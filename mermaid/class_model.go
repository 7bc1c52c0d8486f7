package mermaid

// Visibility is the access level of a class member, from its leading marker.
type Visibility int

const (
	VisibilityPublic    Visibility = iota // +
	VisibilityPrivate                     // -
	VisibilityProtected                   // #
	VisibilityPackage                     // ~
)

func (v Visibility) String() string {
	switch v {
	case VisibilityPrivate:
		return "private"
	case VisibilityProtected:
		return "protected"
	case VisibilityPackage:
		return "package"
	default:
		return "public"
	}
}

// RelationType is the semantic kind of a class-diagram connection.
type RelationType int

const (
	RelationAssociation RelationType = iota
	RelationInheritance
	RelationComposition
	RelationAggregation
	RelationRealization
	RelationDependency
)

func (r RelationType) String() string {
	switch r {
	case RelationInheritance:
		return "inheritance"
	case RelationComposition:
		return "composition"
	case RelationAggregation:
		return "aggregation"
	case RelationRealization:
		return "realization"
	case RelationDependency:
		return "dependency"
	default:
		return "association"
	}
}

// ClassMember is one attribute or method of a class.
type ClassMember struct {
	Name       string
	IsMethod   bool
	Visibility Visibility
	TypeName   string // empty when no type was declared
}

// Class is a single class in a class diagram. Identity is the name; the
// first mention creates the entry whether it appears as a declaration, a
// member owner, or a relation endpoint.
type Class struct {
	Name    string
	Members []ClassMember
	Line    int // source line of first mention
}

// Relation is a typed connection between two classes. From and To are class
// names resolved through the owning diagram's class map.
type Relation struct {
	From  string
	To    string
	Type  RelationType
	Label string
}

// ClassDiagram is the complete parsed representation of one class-diagram
// source.
type ClassDiagram struct {
	Title     string
	Relations []*Relation
	Errors    []ParseError

	classes    map[string]*Class
	classOrder []string // preserve declaration order
}

func newClassDiagram() *ClassDiagram {
	return &ClassDiagram{classes: make(map[string]*Class)}
}

// Class returns the class with the given name, or nil if not present.
func (d *ClassDiagram) Class(name string) *Class {
	return d.classes[name]
}

// Classes returns all classes in declaration order.
func (d *ClassDiagram) Classes() []*Class {
	classes := make([]*Class, 0, len(d.classOrder))
	for _, name := range d.classOrder {
		classes = append(classes, d.classes[name])
	}
	return classes
}

// RelationsFrom returns all relations originating at the given class name.
func (d *ClassDiagram) RelationsFrom(name string) []*Relation {
	var result []*Relation
	for _, r := range d.Relations {
		if r.From == name {
			result = append(result, r)
		}
	}
	return result
}

// ensureClass registers a class if it does not already exist.
func (d *ClassDiagram) ensureClass(name string, line int) *Class {
	if c, ok := d.classes[name]; ok {
		return c
	}
	c := &Class{Name: name, Line: line}
	d.classes[name] = c
	d.classOrder = append(d.classOrder, name)
	return c
}
