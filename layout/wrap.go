package layout

import (
	"iter"
	"strings"
	"unicode/utf8"
)

// LineWrapper 将一个章节折成若干行。
type LineWrapper interface {
	Wrap(text string) iter.Seq[string]
}

// Wrapper 使用贪心算法折行：从左到右尽量把单词放进当前行，放不下就换行。
// 单词从不拆分，单个超长单词独占一行。Measure 为空时按 rune 计数。
type Wrapper struct {
	Measure func(string) float64
	Limit   float64
}

var _ LineWrapper = Wrapper{}

// CapacityWrapper 返回按字符容量折行的 Wrapper。
func CapacityWrapper(capacity int) Wrapper {
	return Wrapper{Limit: float64(capacity)}
}

// Wrap 返回惰性的行序列，每次 range 都会从头重新切分，可重复遍历。
// 空白章节不产生任何行。
func (w Wrapper) Wrap(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		var line strings.Builder
		width := 0.0
		for word := range strings.FieldsSeq(text) {
			if line.Len() == 0 {
				line.WriteString(word)
				width = w.measure(word)
				continue
			}
			prospective := w.extend(line.String(), width, word)
			if prospective <= w.Limit {
				line.WriteByte(' ')
				line.WriteString(word)
				width = prospective
				continue
			}
			if !yield(line.String()) {
				return
			}
			line.Reset()
			line.WriteString(word)
			width = w.measure(word)
		}
		if line.Len() > 0 {
			yield(line.String())
		}
	}
}

// extend 计算在当前行后追加一个空格和 word 之后的宽度。
// 按字符计数时宽度可以直接累加；字形宽度受字距影响，需要整体重新测量。
func (w Wrapper) extend(current string, width float64, word string) float64 {
	if w.Measure == nil {
		return width + 1 + float64(utf8.RuneCountInString(word))
	}
	return w.Measure(current + " " + word)
}

func (w Wrapper) measure(s string) float64 {
	if w.Measure == nil {
		return float64(utf8.RuneCountInString(s))
	}
	return w.Measure(s)
}

// WrapLines 将 Wrap 的结果收集为切片。
func WrapLines(w LineWrapper, text string) []string {
	var lines []string
	for line := range w.Wrap(text) {
		lines = append(lines, line)
	}
	return lines
}
