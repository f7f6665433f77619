package layout

// NoSection 表示目录节点没有指向任何章节。
const NoSection = -1

// Entry 是嵌套目录的一个节点，Section 为所指章节的下标（从 0 开始）。
type Entry struct {
	Title    string
	Section  int
	Children []Entry
}

// Walk 以深度优先顺序遍历目录，fn 返回 false 时停止。depth 从 0 开始。
func Walk(entries []Entry, fn func(entry Entry, depth int) bool) {
	walk(entries, 0, fn)
}

func walk(entries []Entry, depth int, fn func(Entry, int) bool) bool {
	for _, entry := range entries {
		if !fn(entry, depth) {
			return false
		}
		if !walk(entry.Children, depth+1, fn) {
			return false
		}
	}
	return true
}

// resolveOutline 根据章节跨度为目录节点计算页码。
func resolveOutline(entries []Entry, spans []SectionSpan, lastPage int) []OutlineEntry {
	if len(entries) == 0 {
		return nil
	}
	out := make([]OutlineEntry, 0, len(entries))
	for _, entry := range entries {
		children := resolveOutline(entry.Children, spans, lastPage)
		page := sectionPage(entry.Section, spans, lastPage)
		if page == 0 {
			page = 1
			if len(children) > 0 {
				page = children[0].Page
			}
		}
		out = append(out, OutlineEntry{Title: entry.Title, Page: page, Children: children})
	}
	return out
}

// sectionPage 返回章节的起始页；空白章节顺延到下一个有内容的章节，
// 之后都没有内容时指向最后一页。无效下标返回 0。
func sectionPage(index int, spans []SectionSpan, lastPage int) int {
	if index < 0 || index >= len(spans) {
		return 0
	}
	for _, span := range spans[index:] {
		if !span.Skipped {
			return span.FirstPage
		}
	}
	return lastPage
}
