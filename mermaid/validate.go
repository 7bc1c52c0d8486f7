package mermaid

import (
	"fmt"
	"strings"
)

// Severity represents the severity level of a validation diagnostic.
type Severity int

const (
	// Error means the diagram is broken and downstream layout will misrender it.
	Error Severity = iota
	// Warning means the diagram renders but something is likely unintended.
	Warning
	// Info is an informational note.
	Info
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "ERROR"
	case Warning:
		return "WARNING"
	case Info:
		return "INFO"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Diagnostic is a single validation finding.
type Diagnostic struct {
	Rule     string   // rule identifier (e.g., "orphan_node")
	Severity Severity // ERROR, WARNING, or INFO
	Message  string   // human-readable description
	Subject  string   // related node ID or class name (optional)
}

func (d Diagnostic) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s: %s", d.Severity, d.Rule, d.Message)
	if d.Subject != "" {
		fmt.Fprintf(&b, " (subject: %s)", d.Subject)
	}
	return b.String()
}

// FlowchartRule is a single validation rule over a parsed flowchart.
type FlowchartRule interface {
	Name() string
	Apply(f *Flowchart) []Diagnostic
}

// ClassDiagramRule is a single validation rule over a parsed class diagram.
type ClassDiagramRule interface {
	Name() string
	Apply(d *ClassDiagram) []Diagnostic
}

// ValidateFlowchart runs all built-in rules (and any extra rules) against
// the flowchart. Returns all diagnostics regardless of severity.
func ValidateFlowchart(f *Flowchart, extraRules ...FlowchartRule) []Diagnostic {
	rules := []FlowchartRule{
		parseErrorsRule{},
		emptyFlowchartRule{},
		orphanNodeRule{},
		selfLoopRule{},
		emptySubgraphRule{},
	}
	rules = append(rules, extraRules...)

	var diagnostics []Diagnostic
	for _, rule := range rules {
		diagnostics = append(diagnostics, rule.Apply(f)...)
	}
	return diagnostics
}

// ValidateClassDiagram runs all built-in rules (and any extra rules)
// against the class diagram.
func ValidateClassDiagram(d *ClassDiagram, extraRules ...ClassDiagramRule) []Diagnostic {
	rules := []ClassDiagramRule{
		classParseErrorsRule{},
		emptyClassDiagramRule{},
		isolatedClassRule{},
		duplicateMemberRule{},
	}
	rules = append(rules, extraRules...)

	var diagnostics []Diagnostic
	for _, rule := range rules {
		diagnostics = append(diagnostics, rule.Apply(d)...)
	}
	return diagnostics
}

// HasErrors reports whether any diagnostic carries Error severity.
func HasErrors(diagnostics []Diagnostic) bool {
	for _, d := range diagnostics {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// --- Flowchart rules ---

// parseErrorsRule surfaces recorded parse errors as Error diagnostics.
type parseErrorsRule struct{}

func (parseErrorsRule) Name() string { return "parse_errors" }

func (parseErrorsRule) Apply(f *Flowchart) []Diagnostic {
	var out []Diagnostic
	for _, pe := range f.Errors {
		out = append(out, Diagnostic{
			Rule:     "parse_errors",
			Severity: Error,
			Message:  pe.Error(),
		})
	}
	return out
}

// emptyFlowchartRule warns when a flowchart declares no nodes at all.
type emptyFlowchartRule struct{}

func (emptyFlowchartRule) Name() string { return "empty_flowchart" }

func (emptyFlowchartRule) Apply(f *Flowchart) []Diagnostic {
	if len(f.Nodes()) > 0 {
		return nil
	}
	return []Diagnostic{{
		Rule:     "empty_flowchart",
		Severity: Warning,
		Message:  "flowchart declares no nodes",
	}}
}

// orphanNodeRule notes nodes that participate in no edge and no subgraph.
type orphanNodeRule struct{}

func (orphanNodeRule) Name() string { return "orphan_node" }

func (orphanNodeRule) Apply(f *Flowchart) []Diagnostic {
	if len(f.Edges) == 0 {
		return nil
	}
	connected := make(map[string]bool)
	for _, e := range f.Edges {
		connected[e.From] = true
		connected[e.To] = true
	}
	markSubgraphMembers(f.Subgraphs, connected)

	var out []Diagnostic
	for _, n := range f.Nodes() {
		if !connected[n.ID] {
			out = append(out, Diagnostic{
				Rule:     "orphan_node",
				Severity: Info,
				Message:  fmt.Sprintf("node %q has no edges", n.ID),
				Subject:  n.ID,
			})
		}
	}
	return out
}

func markSubgraphMembers(subgraphs []*FlowchartSubgraph, set map[string]bool) {
	for _, sg := range subgraphs {
		for _, id := range sg.NodeIDs {
			set[id] = true
		}
		markSubgraphMembers(sg.Subgraphs, set)
	}
}

// selfLoopRule warns about edges whose endpoints are the same node.
type selfLoopRule struct{}

func (selfLoopRule) Name() string { return "self_loop" }

func (selfLoopRule) Apply(f *Flowchart) []Diagnostic {
	var out []Diagnostic
	for _, e := range f.Edges {
		if e.From == e.To {
			out = append(out, Diagnostic{
				Rule:     "self_loop",
				Severity: Warning,
				Message:  fmt.Sprintf("edge from %q loops back to itself", e.From),
				Subject:  e.From,
			})
		}
	}
	return out
}

// emptySubgraphRule warns about subgraphs with no member nodes and no
// nested subgraphs.
type emptySubgraphRule struct{}

func (emptySubgraphRule) Name() string { return "empty_subgraph" }

func (emptySubgraphRule) Apply(f *Flowchart) []Diagnostic {
	var out []Diagnostic
	var walk func(subgraphs []*FlowchartSubgraph)
	walk = func(subgraphs []*FlowchartSubgraph) {
		for _, sg := range subgraphs {
			if len(sg.NodeIDs) == 0 && len(sg.Subgraphs) == 0 {
				out = append(out, Diagnostic{
					Rule:     "empty_subgraph",
					Severity: Warning,
					Message:  fmt.Sprintf("subgraph %q contains no nodes", sg.ID),
					Subject:  sg.ID,
				})
			}
			walk(sg.Subgraphs)
		}
	}
	walk(f.Subgraphs)
	return out
}

// --- Class diagram rules ---

type classParseErrorsRule struct{}

func (classParseErrorsRule) Name() string { return "parse_errors" }

func (classParseErrorsRule) Apply(d *ClassDiagram) []Diagnostic {
	var out []Diagnostic
	for _, pe := range d.Errors {
		out = append(out, Diagnostic{
			Rule:     "parse_errors",
			Severity: Error,
			Message:  pe.Error(),
		})
	}
	return out
}

type emptyClassDiagramRule struct{}

func (emptyClassDiagramRule) Name() string { return "empty_class_diagram" }

func (emptyClassDiagramRule) Apply(d *ClassDiagram) []Diagnostic {
	if len(d.Classes()) > 0 {
		return nil
	}
	return []Diagnostic{{
		Rule:     "empty_class_diagram",
		Severity: Warning,
		Message:  "class diagram declares no classes",
	}}
}

// isolatedClassRule notes classes with neither members nor relations.
type isolatedClassRule struct{}

func (isolatedClassRule) Name() string { return "isolated_class" }

func (isolatedClassRule) Apply(d *ClassDiagram) []Diagnostic {
	related := make(map[string]bool)
	for _, r := range d.Relations {
		related[r.From] = true
		related[r.To] = true
	}

	var out []Diagnostic
	for _, c := range d.Classes() {
		if len(c.Members) == 0 && !related[c.Name] {
			out = append(out, Diagnostic{
				Rule:     "isolated_class",
				Severity: Info,
				Message:  fmt.Sprintf("class %q has no members and no relations", c.Name),
				Subject:  c.Name,
			})
		}
	}
	return out
}

// duplicateMemberRule warns when a class declares the same member name twice.
type duplicateMemberRule struct{}

func (duplicateMemberRule) Name() string { return "duplicate_member" }

func (duplicateMemberRule) Apply(d *ClassDiagram) []Diagnostic {
	var out []Diagnostic
	for _, c := range d.Classes() {
		seen := make(map[string]bool)
		for _, m := range c.Members {
			if seen[m.Name] {
				out = append(out, Diagnostic{
					Rule:     "duplicate_member",
					Severity: Warning,
					Message:  fmt.Sprintf("class %q declares member %q more than once", c.Name, m.Name),
					Subject:  c.Name,
				})
				continue
			}
			seen[m.Name] = true
		}
	}
	return out
}
