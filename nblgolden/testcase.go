// Package nblgolden extracts fenced-code test cases from Markdown
// fixtures: a noble-program input fence plus one or more ast/asm/
// compile-error assertion fences per "Test: " heading.
package nblgolden

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// AssertionType names what an assertion fence checks: the lowered AST's
// s-expression rendering, a substring the generated assembly must
// contain, or the diagnostic message Compile must fail with.
type AssertionType string

const (
	AssertionTypeAST          AssertionType = "ast"
	AssertionTypeAsm          AssertionType = "asm"
	AssertionTypeCompileError AssertionType = "compile-error"
)

const inputFenceLanguage = "noble-program"

// Assertion is a single expectation attached to a TestCase.
type Assertion struct {
	Type    AssertionType
	Content string
}

// TestCase is one "Test: <name>" section: a Noble source snippet plus
// the assertions it must satisfy once compiled.
type TestCase struct {
	Name       string
	Input      string
	Assertions []Assertion
}

// ExtractTestCases parses a Markdown document and returns every test case
// it contains, by walking "Test: " headings and the fenced code blocks
// that follow each one.
func ExtractTestCases(markdownContent string) ([]TestCase, error) {
	md := goldmark.New()
	source := []byte(markdownContent)
	doc := md.Parser().Parse(text.NewReader(source))

	var cases []TestCase
	var current *TestCase

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			headingText := extractText(n, source)
			if !strings.HasPrefix(headingText, "Test: ") {
				return ast.WalkContinue, nil
			}
			if current != nil {
				if err := validate(current); err != nil {
					return ast.WalkStop, err
				}
				cases = append(cases, *current)
			}
			current = &TestCase{Name: strings.TrimPrefix(headingText, "Test: ")}

		case *ast.FencedCodeBlock:
			language := string(n.Language(source))
			content := strings.TrimRight(extractCodeBlock(n, source), "\n")

			if current == nil || language == "" {
				return ast.WalkContinue, nil
			}

			switch AssertionType(language) {
			case AssertionType(inputFenceLanguage):
				if current.Input != "" {
					return ast.WalkStop, fmt.Errorf("test %q: multiple %s fences", current.Name, inputFenceLanguage)
				}
				current.Input = content
			case AssertionTypeAST, AssertionTypeAsm, AssertionTypeCompileError:
				current.Assertions = append(current.Assertions, Assertion{Type: AssertionType(language), Content: content})
			default:
				return ast.WalkStop, fmt.Errorf("test %q: unknown fence language %q", current.Name, language)
			}
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking golden markdown: %w", err)
	}

	if current != nil {
		if err := validate(current); err != nil {
			return nil, err
		}
		cases = append(cases, *current)
	}

	return cases, nil
}

func validate(tc *TestCase) error {
	if tc.Input == "" {
		return fmt.Errorf("test %q has no %s fence", tc.Name, inputFenceLanguage)
	}
	if len(tc.Assertions) == 0 {
		return fmt.Errorf("test %q has no assertion fences", tc.Name)
	}
	return nil
}

func extractText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if t, ok := n.(*ast.Text); ok {
				buf.Write(t.Segment.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func extractCodeBlock(block *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	for i := 0; i < block.Lines().Len(); i++ {
		line := block.Lines().At(i)
		buf.Write(line.Value(source))
	}
	return buf.String()
}
