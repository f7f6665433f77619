package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ByLCY/folio/binding"
	"github.com/ByLCY/folio/dsl"
)

// FromDSL 将书籍清单 AST 转换为分页输入。
// data 不为空时，标题与正文中的 ${path} 会被替换。
func FromDSL(doc *dsl.Document, data any) (Book, error) {
	if doc == nil {
		return Book{}, fmt.Errorf("文档为空")
	}
	var book Book
	var tocBlocks []*dsl.Block
	for _, node := range doc.Nodes {
		switch {
		case node.Meta != nil:
			collectMeta(node.Meta.Block, &book.Meta, data)
		case node.TOC != nil:
			tocBlocks = append(tocBlocks, node.TOC.Block)
		case node.Chapter != nil:
			book.Sections = append(book.Sections, chapterText(node.Chapter.Block, data))
		}
	}
	book.Title = book.Meta.Title

	for _, block := range tocBlocks {
		entries, err := collectEntries(block, len(book.Sections))
		if err != nil {
			return Book{}, err
		}
		book.TOC = append(book.TOC, entries...)
	}
	return book, nil
}

func collectMeta(block *dsl.Block, meta *DocumentMeta, data any) {
	if block == nil {
		return
	}
	for _, stmt := range block.Statements {
		if stmt.Assignment == nil {
			continue
		}
		value := stmt.Assignment.Value
		switch strings.ToLower(stmt.Assignment.Key) {
		case "title":
			meta.Title = binding.Interpolate(valueToString(value), data)
		case "author":
			meta.Author = valueToString(value)
		case "subject":
			meta.Subject = valueToString(value)
		case "creator":
			meta.Creator = valueToString(value)
		case "keywords":
			meta.Keywords = valueToStringSlice(value)
		}
	}
}

// chapterText 用换行连接章节内的多个字符串字面量。
func chapterText(block *dsl.Block, data any) string {
	if block == nil {
		return ""
	}
	var parts []string
	for _, stmt := range block.Statements {
		if stmt.Text != nil {
			parts = append(parts, binding.Interpolate(string(stmt.Text.Value), data))
		}
	}
	return strings.Join(parts, "\n")
}

// collectEntries 解析 entry "标题" [chapter N] { ... } 形式的目录节点。
func collectEntries(block *dsl.Block, chapters int) ([]Entry, error) {
	if block == nil {
		return nil, nil
	}
	var entries []Entry
	for _, stmt := range block.Statements {
		cmd := stmt.Command
		if cmd == nil || cmd.Name != "entry" {
			continue
		}
		entry := Entry{Section: NoSection}
		for i := 0; i < len(cmd.Args); i++ {
			arg := cmd.Args[i]
			switch {
			case arg.Type == "String" && entry.Title == "":
				entry.Title = arg.Value
			case arg.Value == "chapter" && i+1 < len(cmd.Args):
				i++
				n, err := strconv.Atoi(cmd.Args[i].Value)
				if err != nil {
					return nil, fmt.Errorf("%s: 目录章节下标无效 %q", cmd.Pos, cmd.Args[i].Value)
				}
				if n < 0 || n >= chapters {
					return nil, fmt.Errorf("%s: 目录指向不存在的章节 %d（共 %d 章）", cmd.Pos, n, chapters)
				}
				entry.Section = n
			}
		}
		children, err := collectEntries(cmd.Block, chapters)
		if err != nil {
			return nil, err
		}
		entry.Children = children
		entries = append(entries, entry)
	}
	return entries, nil
}

func valueToString(val *dsl.Value) string {
	if val == nil {
		return ""
	}
	switch {
	case val.String != nil:
		return string(*val.String)
	case val.Number != nil:
		return *val.Number
	case val.Ident != nil:
		return *val.Ident
	case val.Array != nil:
		return strings.Join(valueToStringSlice(val), ", ")
	}
	return ""
}

func valueToStringSlice(val *dsl.Value) []string {
	if val == nil {
		return nil
	}
	if val.Array == nil {
		if s := valueToString(val); s != "" {
			return []string{s}
		}
		return nil
	}
	out := make([]string, 0, len(val.Array.Values))
	for _, item := range val.Array.Values {
		if s := valueToString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
