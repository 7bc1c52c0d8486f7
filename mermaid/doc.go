// Package mermaid implements parsers for the Mermaid flowchart and class
// diagram grammars.
//
// Both grammars share a single tokenizer and error model. Parsing is
// structured in three layers:
//
//   - Lexer: converts raw bytes into a materialized token slice in one
//     pass, preferring the longest punctuation match so the eleven shape
//     delimiter pairs and fourteen arrow variants come out unambiguous.
//     Lexing is total; it never fails.
//   - Parsers: hand-rolled recursive descent over the token slice, one
//     independent entry point per grammar. A failed statement is recorded
//     as a ParseError on the model and the parser resynchronizes at the
//     next statement boundary, so a single typo never blanks the diagram.
//   - Models: the output data structures (Flowchart, ClassDiagram and
//     their nodes, edges, classes, members and relations), populated in
//     source order for deterministic downstream layout.
//
// Usage:
//
//	chart := mermaid.ParseFlowchart(src)
//	for _, e := range chart.Errors {
//	    fmt.Println(e)
//	}
//	fmt.Println(len(chart.Nodes()), len(chart.Edges))
//
// Neither entry point returns an error; a model with a non-empty Errors
// list is still usable as a best-effort partial result.
package mermaid
