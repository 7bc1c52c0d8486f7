package mermaid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClassDiagramMinimal(t *testing.T) {
	diagram := ParseClassDiagram([]byte("classDiagram"))
	require.NotNil(t, diagram)
	assert.Empty(t, diagram.Errors)
	assert.Empty(t, diagram.Classes())
	assert.Empty(t, diagram.Relations)
}

func TestParseClassDiagramMissingHeader(t *testing.T) {
	diagram := ParseClassDiagram([]byte("class Animal"))
	require.Len(t, diagram.Errors, 1)
	assert.Equal(t, 1, diagram.Errors[0].Line)
	assert.Equal(t, 1, diagram.Errors[0].Column)
	assert.Empty(t, diagram.Classes())
}

func TestParseClassDiagramTitle(t *testing.T) {
	diagram := ParseClassDiagram([]byte("classDiagram\ntitle Animal Kingdom Overview"))
	require.Empty(t, diagram.Errors)
	assert.Equal(t, "Animal Kingdom Overview", diagram.Title)
}

func TestParseClassDiagramDeclaration(t *testing.T) {
	diagram := ParseClassDiagram([]byte("classDiagram\nclass Animal"))
	require.Empty(t, diagram.Errors)
	classes := diagram.Classes()
	require.Len(t, classes, 1)
	assert.Equal(t, "Animal", classes[0].Name)
	assert.Equal(t, 2, classes[0].Line)
}

func TestParseClassDiagramMembers(t *testing.T) {
	src := `classDiagram
class Animal {
  +name: String
  -age: int
  #weight: float
  ~tag: String
  +speak()
}
`
	diagram := ParseClassDiagram([]byte(src))
	require.Empty(t, diagram.Errors)

	animal := diagram.Class("Animal")
	require.NotNil(t, animal)
	require.Len(t, animal.Members, 5)

	name := animal.Members[0]
	assert.Equal(t, "name", name.Name)
	assert.Equal(t, VisibilityPublic, name.Visibility)
	assert.Equal(t, "String", name.TypeName)
	assert.False(t, name.IsMethod)

	age := animal.Members[1]
	assert.Equal(t, "age", age.Name)
	assert.Equal(t, VisibilityPrivate, age.Visibility)
	assert.Equal(t, "int", age.TypeName)

	assert.Equal(t, VisibilityProtected, animal.Members[2].Visibility)
	assert.Equal(t, VisibilityPackage, animal.Members[3].Visibility)

	speak := animal.Members[4]
	assert.Equal(t, "speak", speak.Name)
	assert.True(t, speak.IsMethod)
	assert.Equal(t, VisibilityPublic, speak.Visibility)
}

func TestParseClassDiagramSingleLineBody(t *testing.T) {
	diagram := ParseClassDiagram([]byte("classDiagram\nclass Animal { +name: String +speak() }"))
	require.Empty(t, diagram.Errors)

	animal := diagram.Class("Animal")
	require.NotNil(t, animal)
	require.Len(t, animal.Members, 2)

	assert.Equal(t, "name", animal.Members[0].Name)
	assert.Equal(t, VisibilityPublic, animal.Members[0].Visibility)
	assert.Equal(t, "String", animal.Members[0].TypeName)
	assert.False(t, animal.Members[0].IsMethod)

	assert.Equal(t, "speak", animal.Members[1].Name)
	assert.Equal(t, VisibilityPublic, animal.Members[1].Visibility)
	assert.True(t, animal.Members[1].IsMethod)
}

func TestParseClassDiagramTypeNameForm(t *testing.T) {
	src := "classDiagram\nclass Point {\n  +int x\n  int y\n}"
	diagram := ParseClassDiagram([]byte(src))
	require.Empty(t, diagram.Errors)

	point := diagram.Class("Point")
	require.NotNil(t, point)
	require.Len(t, point.Members, 2)

	assert.Equal(t, "x", point.Members[0].Name)
	assert.Equal(t, "int", point.Members[0].TypeName)
	assert.Equal(t, VisibilityPublic, point.Members[0].Visibility)

	assert.Equal(t, "y", point.Members[1].Name)
	assert.Equal(t, "int", point.Members[1].TypeName)
}

func TestParseClassDiagramNameOnlyMember(t *testing.T) {
	diagram := ParseClassDiagram([]byte("classDiagram\nclass Bag {\n  contents\n}"))
	require.Empty(t, diagram.Errors)
	bag := diagram.Class("Bag")
	require.NotNil(t, bag)
	require.Len(t, bag.Members, 1)
	assert.Equal(t, "contents", bag.Members[0].Name)
	assert.Empty(t, bag.Members[0].TypeName)
}

func TestParseClassDiagramMethodWithParameters(t *testing.T) {
	src := "classDiagram\nclass Dog {\n  +fetch(Ball ball, int times)\n}"
	diagram := ParseClassDiagram([]byte(src))
	require.Empty(t, diagram.Errors)
	dog := diagram.Class("Dog")
	require.NotNil(t, dog)
	require.Len(t, dog.Members, 1)
	assert.Equal(t, "fetch", dog.Members[0].Name)
	assert.True(t, dog.Members[0].IsMethod)
}

func TestParseClassDiagramAnnotationReclassifiesMethod(t *testing.T) {
	// A '(' inside a ':' annotation signals a return-type-before-parameters
	// form; the member becomes a method and type accumulation stops.
	src := "classDiagram\nclass Dog {\n  +speak: String ()\n}"
	diagram := ParseClassDiagram([]byte(src))
	require.Empty(t, diagram.Errors)
	dog := diagram.Class("Dog")
	require.NotNil(t, dog)
	require.Len(t, dog.Members, 1)
	assert.True(t, dog.Members[0].IsMethod)
}

func TestParseClassDiagramVisibilityRollback(t *testing.T) {
	// A '-' not followed by an identifier is not a visibility marker and
	// must not produce a member.
	src := "classDiagram\nclass Odd {\n  -\n  +real\n}"
	diagram := ParseClassDiagram([]byte(src))
	odd := diagram.Class("Odd")
	require.NotNil(t, odd)
	require.Len(t, odd.Members, 1)
	assert.Equal(t, "real", odd.Members[0].Name)
}

func TestParseClassDiagramStrayTokensInBody(t *testing.T) {
	src := "classDiagram\nclass Odd {\n  ::: @@\n  +ok\n}"
	diagram := ParseClassDiagram([]byte(src))
	odd := diagram.Class("Odd")
	require.NotNil(t, odd)
	require.Len(t, odd.Members, 1)
	assert.Equal(t, "ok", odd.Members[0].Name)
}

func TestParseClassDiagramMissingBrace(t *testing.T) {
	diagram := ParseClassDiagram([]byte("classDiagram\nclass Animal {\n  +name"))
	require.NotEmpty(t, diagram.Errors)
	assert.Contains(t, diagram.Errors[0].Message, "'}'")

	animal := diagram.Class("Animal")
	require.NotNil(t, animal)
	require.Len(t, animal.Members, 1)
	assert.Equal(t, "name", animal.Members[0].Name)
}

func TestParseClassDiagramMissingClassName(t *testing.T) {
	diagram := ParseClassDiagram([]byte("classDiagram\nclass\nclass Ok"))
	require.NotEmpty(t, diagram.Errors)
	require.NotNil(t, diagram.Class("Ok"))
}

func TestParseClassDiagramRelations(t *testing.T) {
	tests := []struct {
		glyph string
		typ   RelationType
	}{
		{"--|>", RelationInheritance},
		{"<|--", RelationInheritance},
		{"..|>", RelationRealization},
		{"<|..", RelationRealization},
		{"..>", RelationDependency},
		{"<..", RelationDependency},
		{"-.->", RelationDependency},
		{"-.-", RelationDependency},
		{"*--", RelationComposition},
		{"--*", RelationComposition},
		{"o--", RelationAggregation},
		{"--o", RelationAggregation},
		{"-->", RelationAssociation},
		{"--", RelationAssociation},
		{"..", RelationAssociation},
	}
	for _, tt := range tests {
		src := "classDiagram\nDog " + tt.glyph + " Animal"
		diagram := ParseClassDiagram([]byte(src))
		require.Empty(t, diagram.Errors, "glyph: %s", tt.glyph)
		require.Len(t, diagram.Relations, 1, "glyph: %s", tt.glyph)

		rel := diagram.Relations[0]
		assert.Equal(t, tt.typ, rel.Type, "glyph: %s", tt.glyph)
		assert.Equal(t, "Dog", rel.From, "glyph: %s", tt.glyph)
		assert.Equal(t, "Animal", rel.To, "glyph: %s", tt.glyph)

		// Both endpoints are registered via get_or_create.
		assert.NotNil(t, diagram.Class("Dog"), "glyph: %s", tt.glyph)
		assert.NotNil(t, diagram.Class("Animal"), "glyph: %s", tt.glyph)
	}
}

func TestParseClassDiagramRelationLabel(t *testing.T) {
	diagram := ParseClassDiagram([]byte("classDiagram\nDog --> Owner : belongs to"))
	require.Empty(t, diagram.Errors)
	require.Len(t, diagram.Relations, 1)
	assert.Equal(t, "belongs to", diagram.Relations[0].Label)
}

func TestParseClassDiagramRelationMissingTarget(t *testing.T) {
	diagram := ParseClassDiagram([]byte("classDiagram\nDog --|>\nCat --|> Animal"))
	require.NotEmpty(t, diagram.Errors)
	require.Len(t, diagram.Relations, 1)
	assert.Equal(t, "Cat", diagram.Relations[0].From)
}

func TestParseClassDiagramBareReference(t *testing.T) {
	diagram := ParseClassDiagram([]byte("classDiagram\nAnimal"))
	require.Empty(t, diagram.Errors)
	require.Len(t, diagram.Classes(), 1)
	assert.Empty(t, diagram.Relations)
}

func TestParseClassDiagramIdentity(t *testing.T) {
	src := `classDiagram
class Animal
Dog --|> Animal
class Dog {
  +bark()
}
`
	diagram := ParseClassDiagram([]byte(src))
	require.Empty(t, diagram.Errors)

	// Duplicate mentions never create duplicate entries.
	classes := diagram.Classes()
	require.Len(t, classes, 2)
	assert.Equal(t, "Animal", classes[0].Name)
	assert.Equal(t, "Dog", classes[1].Name)

	dog := diagram.Class("Dog")
	require.NotNil(t, dog)
	assert.Equal(t, 3, dog.Line) // first mention, as a relation endpoint
	require.Len(t, dog.Members, 1)
}

func TestParseClassDiagramIdempotent(t *testing.T) {
	src := []byte(`classDiagram
title Zoo
class Animal {
  +name: String
  +speak()
}
Dog --|> Animal : subtype
Pond o-- Duck
`)
	first := ParseClassDiagram(src)
	second := ParseClassDiagram(src)
	assert.Equal(t, first.Title, second.Title)
	assert.Equal(t, first.Classes(), second.Classes())
	assert.Equal(t, first.Relations, second.Relations)
	assert.Equal(t, first.Errors, second.Errors)
}

func TestParseClassDiagramGarbageTerminates(t *testing.T) {
	inputs := []string{
		"classDiagram\n{{{{",
		"classDiagram\nclass { }",
		"classDiagram\n<|-- --|>",
		"classDiagram\nclass X { ------ }",
	}
	for _, src := range inputs {
		diagram := ParseClassDiagram([]byte(src))
		require.NotNil(t, diagram, "input: %s", src)
	}
}
