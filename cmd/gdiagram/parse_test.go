package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDetectGrammar(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"classDiagram\nclass Animal", "classDiagram"},
		{"flowchart TD\nA --> B", "flowchart"},
		{"graph LR\nA --> B", "flowchart"},
		{"\n\t  classDiagram\nDog --|> Animal", "classDiagram"},
		{"", "flowchart"},
		{"not a diagram at all", "flowchart"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, detectGrammar([]byte(tt.src)), "src: %q", tt.src)
	}
}

func TestFlowchartDocumentJSONShape(t *testing.T) {
	doc, errCount := parseToDocument([]byte("flowchart LR\nA[Start] -->|go| B"))
	require.Zero(t, errCount)

	out, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "flowchart",
		"direction": "LR",
		"nodes": [
			{"id": "A", "text": "Start", "shape": "rectangle", "line": 2},
			{"id": "B", "text": "B", "shape": "rectangle", "line": 2}
		],
		"edges": [
			{"from": "A", "to": "B", "label": "go", "style": "solid", "arrowhead": "normal", "min_length": 1}
		]
	}`, string(out))
}

func TestClassDocumentJSONShape(t *testing.T) {
	src := `classDiagram
title Zoo
class Animal {
  +name: String
  +speak()
}
Dog --|> Animal : subtype
`
	doc, errCount := parseToDocument([]byte(src))
	require.Zero(t, errCount)

	out, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "classDiagram",
		"title": "Zoo",
		"classes": [
			{"name": "Animal", "line": 3, "members": [
				{"name": "name", "visibility": "public", "type": "String", "method": false},
				{"name": "speak", "visibility": "public", "method": true}
			]},
			{"name": "Dog", "line": 7}
		],
		"relations": [
			{"from": "Dog", "to": "Animal", "type": "inheritance", "label": "subtype"}
		]
	}`, string(out))
}

func TestDocumentYAMLRoundTrip(t *testing.T) {
	sources := []string{
		"flowchart LR\nA[Start] -->|go| B{Gate}\nsubgraph grp [Group]\nA\nend\nclassDef hot fill:#f00",
		"classDiagram\ntitle Zoo\nclass Animal {\n  +name: String\n}\nDog --|> Animal",
	}
	for _, src := range sources {
		doc, _ := parseToDocument([]byte(src))

		out, err := yaml.Marshal(doc)
		require.NoError(t, err, "src: %q", src)

		var back Document
		require.NoError(t, yaml.Unmarshal(out, &back), "src: %q", src)
		assert.Equal(t, doc, back, "src: %q", src)
	}
}

func TestParseToDocumentReportsErrors(t *testing.T) {
	doc, errCount := parseToDocument([]byte("flowchart TD\nA[Broken"))
	require.NotZero(t, errCount)
	require.Len(t, doc.Errors, errCount)
	assert.Equal(t, 2, doc.Errors[0].Line)
	assert.Contains(t, doc.Errors[0].Message, "']'")
}
