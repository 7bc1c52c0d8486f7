package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/packerlschupfer/gDiagram/mermaid"
)

var parseCmd = &cobra.Command{
	Use:   "parse <diagram.mmd>",
	Short: "Parse a Mermaid diagram file",
	Long:  "Parse a Mermaid flowchart or class-diagram file, report parse errors, and optionally emit the model as JSON or YAML.",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().StringP("format", "f", "text", "Output format: text, json, or yaml")
	parseCmd.Flags().Bool("strict", false, "Exit non-zero when the diagram has parse errors")

	_ = viper.BindPFlag("format", parseCmd.Flags().Lookup("format"))

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading diagram file: %w", err)
	}

	format := viper.GetString("format")
	strict, _ := cmd.Flags().GetBool("strict")

	doc, errCount := parseToDocument(src)

	switch format {
	case "text":
		printDocument(doc)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding model: %w", err)
		}
	case "yaml":
		out, err := yaml.Marshal(doc)
		if err != nil {
			return fmt.Errorf("encoding model: %w", err)
		}
		_, _ = os.Stdout.Write(out)
	default:
		return fmt.Errorf("unknown format %q: expected text, json, or yaml", format)
	}

	if strict && errCount > 0 {
		return fmt.Errorf("diagram has %d parse error(s)", errCount)
	}
	return nil
}

// detectGrammar picks the parser from the first keyword of the source.
func detectGrammar(src []byte) string {
	head := bytes.TrimSpace(src)
	if bytes.HasPrefix(head, []byte("classDiagram")) {
		return "classDiagram"
	}
	return "flowchart"
}

// Document is the machine-readable snapshot of a parsed diagram emitted by
// --format json/yaml.
type Document struct {
	Type      string        `json:"type" yaml:"type"`
	Direction string        `json:"direction,omitempty" yaml:"direction,omitempty"`
	Title     string        `json:"title,omitempty" yaml:"title,omitempty"`
	Nodes     []NodeDoc     `json:"nodes,omitempty" yaml:"nodes,omitempty"`
	Edges     []EdgeDoc     `json:"edges,omitempty" yaml:"edges,omitempty"`
	Subgraphs []SubgraphDoc `json:"subgraphs,omitempty" yaml:"subgraphs,omitempty"`
	ClassDefs []string      `json:"class_defs,omitempty" yaml:"class_defs,omitempty"`
	Classes   []ClassDoc    `json:"classes,omitempty" yaml:"classes,omitempty"`
	Relations []RelationDoc `json:"relations,omitempty" yaml:"relations,omitempty"`
	Errors    []ErrorDoc    `json:"errors,omitempty" yaml:"errors,omitempty"`
}

type NodeDoc struct {
	ID    string `json:"id" yaml:"id"`
	Text  string `json:"text" yaml:"text"`
	Shape string `json:"shape" yaml:"shape"`
	Line  int    `json:"line" yaml:"line"`
}

type EdgeDoc struct {
	From      string `json:"from" yaml:"from"`
	To        string `json:"to" yaml:"to"`
	Label     string `json:"label,omitempty" yaml:"label,omitempty"`
	Style     string `json:"style" yaml:"style"`
	Arrowhead string `json:"arrowhead" yaml:"arrowhead"`
	MinLength int    `json:"min_length" yaml:"min_length"`
}

type SubgraphDoc struct {
	ID        string        `json:"id" yaml:"id"`
	Title     string        `json:"title,omitempty" yaml:"title,omitempty"`
	Direction string        `json:"direction,omitempty" yaml:"direction,omitempty"`
	Nodes     []string      `json:"nodes,omitempty" yaml:"nodes,omitempty"`
	Subgraphs []SubgraphDoc `json:"subgraphs,omitempty" yaml:"subgraphs,omitempty"`
}

type ClassDoc struct {
	Name    string      `json:"name" yaml:"name"`
	Line    int         `json:"line" yaml:"line"`
	Members []MemberDoc `json:"members,omitempty" yaml:"members,omitempty"`
}

type MemberDoc struct {
	Name       string `json:"name" yaml:"name"`
	Visibility string `json:"visibility" yaml:"visibility"`
	Type       string `json:"type,omitempty" yaml:"type,omitempty"`
	Method     bool   `json:"method" yaml:"method"`
}

type RelationDoc struct {
	From  string `json:"from" yaml:"from"`
	To    string `json:"to" yaml:"to"`
	Type  string `json:"type" yaml:"type"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

type ErrorDoc struct {
	Message string `json:"message" yaml:"message"`
	Line    int    `json:"line" yaml:"line"`
	Column  int    `json:"column" yaml:"column"`
}

// parseToDocument parses the source with the detected grammar and flattens
// the model into the export document. Returns the document and the number
// of parse errors.
func parseToDocument(src []byte) (Document, int) {
	if detectGrammar(src) == "classDiagram" {
		return classDocument(mermaid.ParseClassDiagram(src))
	}
	return flowchartDocument(mermaid.ParseFlowchart(src))
}

func flowchartDocument(chart *mermaid.Flowchart) (Document, int) {
	doc := Document{
		Type:      "flowchart",
		Direction: chart.Direction.String(),
	}
	for _, n := range chart.Nodes() {
		doc.Nodes = append(doc.Nodes, NodeDoc{
			ID: n.ID, Text: n.Text, Shape: n.Shape.String(), Line: n.Line,
		})
	}
	for _, e := range chart.Edges {
		doc.Edges = append(doc.Edges, EdgeDoc{
			From: e.From, To: e.To, Label: e.Label,
			Style: e.Style.String(), Arrowhead: e.Arrowhead.String(),
			MinLength: e.MinLength,
		})
	}
	doc.Subgraphs = subgraphDocs(chart.Subgraphs)
	for _, cd := range chart.ClassDefs {
		doc.ClassDefs = append(doc.ClassDefs, cd.Name)
	}
	doc.Errors = errorDocs(chart.Errors)
	return doc, len(chart.Errors)
}

func subgraphDocs(subgraphs []*mermaid.FlowchartSubgraph) []SubgraphDoc {
	var out []SubgraphDoc
	for _, sg := range subgraphs {
		d := SubgraphDoc{ID: sg.ID, Title: sg.Title, Nodes: sg.NodeIDs}
		if sg.HasDirection {
			d.Direction = sg.Direction.String()
		}
		d.Subgraphs = subgraphDocs(sg.Subgraphs)
		out = append(out, d)
	}
	return out
}

func classDocument(diagram *mermaid.ClassDiagram) (Document, int) {
	doc := Document{
		Type:  "classDiagram",
		Title: diagram.Title,
	}
	for _, c := range diagram.Classes() {
		cd := ClassDoc{Name: c.Name, Line: c.Line}
		for _, m := range c.Members {
			cd.Members = append(cd.Members, MemberDoc{
				Name:       m.Name,
				Visibility: m.Visibility.String(),
				Type:       m.TypeName,
				Method:     m.IsMethod,
			})
		}
		doc.Classes = append(doc.Classes, cd)
	}
	for _, r := range diagram.Relations {
		doc.Relations = append(doc.Relations, RelationDoc{
			From: r.From, To: r.To, Type: r.Type.String(), Label: r.Label,
		})
	}
	doc.Errors = errorDocs(diagram.Errors)
	return doc, len(diagram.Errors)
}

func errorDocs(errs []mermaid.ParseError) []ErrorDoc {
	var out []ErrorDoc
	for _, e := range errs {
		out = append(out, ErrorDoc{Message: e.Message, Line: e.Line, Column: e.Column})
	}
	return out
}

// printDocument writes a human-readable summary to stderr-style plain text.
func printDocument(doc Document) {
	fmt.Printf("Type: %s\n", doc.Type)
	if doc.Direction != "" {
		fmt.Printf("Direction: %s\n", doc.Direction)
	}
	if doc.Title != "" {
		fmt.Printf("Title: %s\n", doc.Title)
	}

	if doc.Type == "flowchart" {
		fmt.Printf("Nodes: %d, Edges: %d, Subgraphs: %d\n",
			len(doc.Nodes), len(doc.Edges), len(doc.Subgraphs))
		for _, n := range doc.Nodes {
			fmt.Printf("  - %s [%s] (%s)\n", n.ID, n.Text, n.Shape)
		}
		for _, e := range doc.Edges {
			arrow := fmt.Sprintf("%s/%s", e.Style, e.Arrowhead)
			if e.Label != "" {
				fmt.Printf("  - %s -> %s (%s, label %q)\n", e.From, e.To, arrow, e.Label)
			} else {
				fmt.Printf("  - %s -> %s (%s)\n", e.From, e.To, arrow)
			}
		}
	} else {
		fmt.Printf("Classes: %d, Relations: %d\n", len(doc.Classes), len(doc.Relations))
		for _, c := range doc.Classes {
			fmt.Printf("  - %s (%d members)\n", c.Name, len(c.Members))
		}
		for _, r := range doc.Relations {
			fmt.Printf("  - %s -> %s (%s)\n", r.From, r.To, r.Type)
		}
	}

	if len(doc.Errors) > 0 {
		fmt.Printf("Parse errors: %d\n", len(doc.Errors))
		for _, e := range doc.Errors {
			fmt.Printf("  - line %d, col %d: %s\n", e.Line, e.Column, e.Message)
		}
	}

	if viper.GetBool("verbose") && doc.Type == "flowchart" {
		printSubgraphs(doc.Subgraphs, "  ")
	}
}

func printSubgraphs(subgraphs []SubgraphDoc, indent string) {
	for _, sg := range subgraphs {
		title := sg.Title
		if title == "" {
			title = sg.ID
		}
		fmt.Printf("%ssubgraph %s [%s]: %s\n", indent, sg.ID, title, strings.Join(sg.Nodes, ", "))
		printSubgraphs(sg.Subgraphs, indent+"  ")
	}
}
