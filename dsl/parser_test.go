package dsl_test

import (
	"strings"
	"testing"

	"github.com/ByLCY/folio/dsl"
)

const sampleBook = `
book MobyDick v1 {
  meta {
    title: "Moby Dick"
    author: "Herman Melville"
    keywords: [
      "novel"
      "whaling"
    ]
  }

  // 目录可以嵌套
  toc {
    entry "Chapter 1" chapter 0 {
      entry "Loomings" chapter 0
    }
    entry "Chapter 2" chapter 1
  }

  chapter {
    "Call me Ishmael."
    "Some years ago, never mind how long precisely."
  }

  chapter { "The Carpet-Bag" }
}
`

func TestParseBook(t *testing.T) {
	doc, err := dsl.ParseString(sampleBook)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if doc.Name != "MobyDick" || doc.Version != "v1" {
		t.Fatalf("unexpected header: %s %s", doc.Name, doc.Version)
	}
	if len(doc.Nodes) != 4 {
		t.Fatalf("expected 4 nodes, got %d", len(doc.Nodes))
	}
	kinds := make([]string, 0, len(doc.Nodes))
	for _, n := range doc.Nodes {
		kinds = append(kinds, n.Kind())
	}
	if got := strings.Join(kinds, ","); got != "meta,toc,chapter,chapter" {
		t.Fatalf("unexpected node kinds: %s", got)
	}

	meta := doc.Nodes[0].Meta
	title := meta.Block.Statements[0].Assignment
	if title == nil || title.Key != "title" || title.Value.String == nil {
		t.Fatalf("expected title assignment, got %+v", meta.Block.Statements[0])
	}
	if got := string(*title.Value.String); got != "Moby Dick" {
		t.Fatalf("expected title Moby Dick, got %s", got)
	}
	keywords := meta.Block.Statements[2].Assignment
	if keywords == nil || keywords.Value.Array == nil || len(keywords.Value.Array.Values) != 2 {
		t.Fatalf("expected 2 keywords, got %+v", keywords)
	}

	toc := doc.Nodes[1].TOC
	first := toc.Block.Statements[0].Command
	if first == nil || first.Name != "entry" {
		t.Fatalf("expected entry command, got %+v", toc.Block.Statements[0])
	}
	if len(first.Args) != 3 || first.Args[0].Value != "Chapter 1" || first.Args[1].Value != "chapter" || first.Args[2].Value != "0" {
		t.Fatalf("unexpected entry args: %+v", first.Args)
	}
	if first.Args[0].Type != "String" || first.Args[2].Type != "Number" {
		t.Fatalf("unexpected arg token types: %s %s", first.Args[0].Type, first.Args[2].Type)
	}
	if first.Block == nil || len(first.Block.Statements) != 1 || first.Block.Statements[0].Command == nil {
		t.Fatalf("nested entry missing: %+v", first.Block)
	}

	chapter := doc.Nodes[2].Chapter
	if len(chapter.Block.Statements) != 2 || chapter.Block.Statements[1].Text == nil {
		t.Fatalf("chapter literals missing: %+v", chapter.Block.Statements)
	}
	if got := string(chapter.Block.Statements[0].Text.Value); got != "Call me Ishmael." {
		t.Fatalf("unexpected chapter text: %q", got)
	}
}

func TestParseRejectsUnknownNode(t *testing.T) {
	if _, err := dsl.ParseString(`book B v1 { appendix { "x" } }`); err == nil {
		t.Fatalf("expected error for unknown top-level node")
	}
}

func TestParseEscapedText(t *testing.T) {
	doc, err := dsl.Parse(strings.NewReader("book B v1 { chapter { \"line \\\"quoted\\\"\" } }"))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	got := string(doc.Nodes[0].Chapter.Block.Statements[0].Text.Value)
	if got != `line "quoted"` {
		t.Fatalf("unexpected unquoted text: %q", got)
	}
}
