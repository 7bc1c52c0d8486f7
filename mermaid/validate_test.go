package mermaid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rulesOf(diagnostics []Diagnostic) []string {
	out := make([]string, len(diagnostics))
	for i, d := range diagnostics {
		out[i] = d.Rule
	}
	return out
}

func TestValidateFlowchartClean(t *testing.T) {
	chart := ParseFlowchart([]byte("flowchart TD\nA --> B\nB --> C"))
	diagnostics := ValidateFlowchart(chart)
	assert.Empty(t, diagnostics)
	assert.False(t, HasErrors(diagnostics))
}

func TestValidateFlowchartEmpty(t *testing.T) {
	chart := ParseFlowchart([]byte("flowchart TD"))
	diagnostics := ValidateFlowchart(chart)
	require.Len(t, diagnostics, 1)
	assert.Equal(t, "empty_flowchart", diagnostics[0].Rule)
	assert.Equal(t, Warning, diagnostics[0].Severity)
	assert.False(t, HasErrors(diagnostics))
}

func TestValidateFlowchartParseErrors(t *testing.T) {
	chart := ParseFlowchart([]byte("flowchart TD\nA[Broken\nB --> C"))
	diagnostics := ValidateFlowchart(chart)
	assert.Contains(t, rulesOf(diagnostics), "parse_errors")
	assert.True(t, HasErrors(diagnostics))
}

func TestValidateFlowchartOrphanNode(t *testing.T) {
	chart := ParseFlowchart([]byte("flowchart TD\nA --> B\nC[Lonely]"))
	diagnostics := ValidateFlowchart(chart)
	require.Len(t, diagnostics, 1)
	assert.Equal(t, "orphan_node", diagnostics[0].Rule)
	assert.Equal(t, Info, diagnostics[0].Severity)
	assert.Equal(t, "C", diagnostics[0].Subject)
}

func TestValidateFlowchartOrphanSkippedWhenNoEdges(t *testing.T) {
	// Without edges every node would be an orphan; the rule stays quiet.
	chart := ParseFlowchart([]byte("flowchart TD\nA\nB\nC"))
	diagnostics := ValidateFlowchart(chart)
	assert.NotContains(t, rulesOf(diagnostics), "orphan_node")
}

func TestValidateFlowchartSubgraphMemberNotOrphan(t *testing.T) {
	src := `flowchart TD
A --> B
C[Grouped]
subgraph grp
  C
end
`
	chart := ParseFlowchart([]byte(src))
	diagnostics := ValidateFlowchart(chart)
	assert.NotContains(t, rulesOf(diagnostics), "orphan_node")
}

func TestValidateFlowchartSelfLoop(t *testing.T) {
	chart := ParseFlowchart([]byte("flowchart TD\nA --> A"))
	diagnostics := ValidateFlowchart(chart)
	require.Len(t, diagnostics, 1)
	assert.Equal(t, "self_loop", diagnostics[0].Rule)
	assert.Equal(t, Warning, diagnostics[0].Severity)
	assert.Equal(t, "A", diagnostics[0].Subject)
}

func TestValidateFlowchartEmptySubgraph(t *testing.T) {
	chart := ParseFlowchart([]byte("flowchart TD\nA --> B\nsubgraph grp\nend"))
	diagnostics := ValidateFlowchart(chart)
	require.Len(t, diagnostics, 1)
	assert.Equal(t, "empty_subgraph", diagnostics[0].Rule)
	assert.Equal(t, "grp", diagnostics[0].Subject)
}

type bannedNodeRule struct{ id string }

func (bannedNodeRule) Name() string { return "banned_node" }

func (r bannedNodeRule) Apply(f *Flowchart) []Diagnostic {
	if f.Node(r.id) == nil {
		return nil
	}
	return []Diagnostic{{Rule: "banned_node", Severity: Error, Subject: r.id}}
}

func TestValidateFlowchartExtraRules(t *testing.T) {
	chart := ParseFlowchart([]byte("flowchart TD\nA --> forbidden"))
	diagnostics := ValidateFlowchart(chart, bannedNodeRule{id: "forbidden"})
	assert.Contains(t, rulesOf(diagnostics), "banned_node")
	assert.True(t, HasErrors(diagnostics))
}

func TestValidateClassDiagramClean(t *testing.T) {
	diagram := ParseClassDiagram([]byte("classDiagram\nclass Animal {\n  +name\n}\nDog --|> Animal"))
	diagnostics := ValidateClassDiagram(diagram)
	assert.Empty(t, diagnostics)
}

func TestValidateClassDiagramEmpty(t *testing.T) {
	diagram := ParseClassDiagram([]byte("classDiagram"))
	diagnostics := ValidateClassDiagram(diagram)
	require.Len(t, diagnostics, 1)
	assert.Equal(t, "empty_class_diagram", diagnostics[0].Rule)
	assert.Equal(t, Warning, diagnostics[0].Severity)
}

func TestValidateClassDiagramParseErrors(t *testing.T) {
	diagram := ParseClassDiagram([]byte("graph TD"))
	diagnostics := ValidateClassDiagram(diagram)
	assert.Contains(t, rulesOf(diagnostics), "parse_errors")
	assert.True(t, HasErrors(diagnostics))
}

func TestValidateClassDiagramIsolatedClass(t *testing.T) {
	diagram := ParseClassDiagram([]byte("classDiagram\nclass Alone\nDog --|> Animal"))
	diagnostics := ValidateClassDiagram(diagram)
	require.Len(t, diagnostics, 1)
	assert.Equal(t, "isolated_class", diagnostics[0].Rule)
	assert.Equal(t, Info, diagnostics[0].Severity)
	assert.Equal(t, "Alone", diagnostics[0].Subject)
}

func TestValidateClassDiagramDuplicateMember(t *testing.T) {
	diagram := ParseClassDiagram([]byte("classDiagram\nclass Dog {\n  +bark\n  +bark\n}"))
	diagnostics := ValidateClassDiagram(diagram)
	require.Len(t, diagnostics, 1)
	assert.Equal(t, "duplicate_member", diagnostics[0].Rule)
	assert.Equal(t, Warning, diagnostics[0].Severity)
	assert.Equal(t, "Dog", diagnostics[0].Subject)
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{Rule: "self_loop", Severity: Warning, Message: "loops", Subject: "A"}
	assert.Equal(t, `[WARNING] self_loop: loops (subject: A)`, d.String())

	d = Diagnostic{Rule: "empty_flowchart", Severity: Warning, Message: "no nodes"}
	assert.Equal(t, `[WARNING] empty_flowchart: no nodes`, d.String())
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "ERROR", Error.String())
	assert.Equal(t, "WARNING", Warning.String())
	assert.Equal(t, "INFO", Info.String())
}
