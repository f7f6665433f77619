package layout

import (
	"iter"
	"log/slog"
	"slices"
	"strings"

	"github.com/ByLCY/folio/binding"
)

// flowState 描述单个章节的分页状态：NoPage → Filling →（空间耗尽）NoPage → … → Closed。
type flowState int

const (
	stateNoPage flowState = iota
	stateFilling
	stateClosed
)

func (s flowState) String() string {
	switch s {
	case stateNoPage:
		return "no-page"
	case stateFilling:
		return "filling"
	case stateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// cursor 是当前页（pages 下标）与下一行基线位置，按值在放置步骤之间传递。
type cursor struct {
	page int
	y    float64
}

func (c cursor) advance(leading float64) cursor {
	return cursor{page: c.page, y: c.y - leading}
}

// Engine 将折好的行依次放入固定尺寸的页面。
// 一个 Engine 只服务于一个文档，不可并发使用。
type Engine struct {
	cfg     Config
	wrapper LineWrapper
	log     *slog.Logger

	doc   Document
	title string
	// pageSection 记录每页所属的章节下标，标题页为 -1。
	pageSection []int

	begun    bool
	finished bool
}

// NewEngine 校验配置并创建分页引擎；配置不可用时返回 *ConfigurationError。
func NewEngine(cfg Config, opts EngineOptions) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	wrapper := opts.Wrapper
	if wrapper == nil {
		wrapper = CapacityWrapper(Capacity(cfg.UsableWidth(), cfg.FontSize))
	}
	return &Engine{
		cfg:     cfg,
		wrapper: wrapper,
		log:     opts.logger(),
	}, nil
}

// BeginDocument 生成标题页（第 1 页），标题为空时显示 "Untitled"。
// 标题页立即关闭，不参与后续的行放置。
func (e *Engine) BeginDocument(title string) error {
	if e.finished {
		return ErrFinished
	}
	if e.begun {
		return ErrAlreadyBegun
	}
	e.emitTitle(title)
	return nil
}

// emitTitle 生成标题页，调用方保证尚未生成过。
func (e *Engine) emitTitle(title string) {
	e.begun = true
	if strings.TrimSpace(title) == "" {
		title = UntitledTitle
	}
	e.title = title
	e.doc.Pages = append(e.doc.Pages, e.newPage(PositionedLine{
		Text:     title,
		X:        e.cfg.Margin.Left,
		Y:        e.cfg.top(),
		FontSize: e.cfg.TitleFontSize,
		Bold:     true,
	}))
	e.pageSection = append(e.pageSection, -1)
}

// AppendSection 折行并放置一个章节。每个非空章节都从新的一页开始；
// 空白章节直接跳过，不产生页面。
func (e *Engine) AppendSection(text string) error {
	if strings.TrimSpace(text) == "" {
		return e.place(func(func(string) bool) {})
	}
	return e.place(e.wrapper.Wrap(text))
}

// appendWrapped 放置已经折好的行，供并行折行后按顺序回填。
func (e *Engine) appendWrapped(lines []string) error {
	return e.place(slices.Values(lines))
}

func (e *Engine) place(lines iter.Seq[string]) error {
	if e.finished {
		return ErrFinished
	}
	if !e.begun {
		e.emitTitle("")
	}

	index := len(e.doc.Sections)
	span := SectionSpan{Index: index}
	state := stateNoPage
	var cur cursor
	for line := range lines {
		// 只有在放下这一行之后仍不低于下边距时才留在当前页。
		if state == stateFilling && cur.y-e.cfg.Leading >= e.cfg.Margin.Bottom {
			cur = cur.advance(e.cfg.Leading)
		} else {
			cur = e.openPage(index)
			if span.FirstPage == 0 {
				span.FirstPage = cur.page + 1
			}
			state = stateFilling
		}
		page := &e.doc.Pages[cur.page]
		page.Lines = append(page.Lines, PositionedLine{
			Text:     line,
			X:        e.cfg.Margin.Left,
			Y:        cur.y,
			FontSize: e.cfg.FontSize,
		})
		span.Lines++
	}

	if span.Lines == 0 {
		span.Skipped = true
		e.log.Debug("跳过空白章节", "section", index)
	} else {
		span.LastPage = cur.page + 1
		state = stateClosed
		e.log.Debug("章节排版完成", "section", index, "lines", span.Lines,
			"firstPage", span.FirstPage, "lastPage", span.LastPage, "state", state)
	}
	e.doc.Sections = append(e.doc.Sections, span)
	return nil
}

func (e *Engine) openPage(section int) cursor {
	e.doc.Pages = append(e.doc.Pages, e.newPage())
	e.pageSection = append(e.pageSection, section)
	return cursor{page: len(e.doc.Pages) - 1, y: e.cfg.top()}
}

func (e *Engine) newPage(lines ...PositionedLine) Page {
	return Page{
		Width:  e.cfg.PageWidth,
		Height: e.cfg.PageHeight,
		Margin: e.cfg.Margin,
		Lines:  lines,
	}
}

// Finish 关闭文档并返回排版结果；重复调用返回同一结果。
// 未调用 BeginDocument 时也会生成标题页。
func (e *Engine) Finish() *Document {
	if e.finished {
		return &e.doc
	}
	if !e.begun {
		e.emitTitle("")
	}
	e.finished = true
	e.applyFooter()
	return &e.doc
}

// applyFooter 在正文页（不含标题页）上输出页脚。
func (e *Engine) applyFooter() {
	if e.cfg.Footer == "" {
		return
	}
	total := len(e.doc.Pages)
	for i := 1; i < total; i++ {
		data := map[string]any{
			"page":    i + 1,
			"pages":   total,
			"title":   e.title,
			"section": e.pageSection[i] + 1,
		}
		e.doc.Pages[i].Footer = []PositionedLine{{
			Text:     binding.Interpolate(e.cfg.Footer, data),
			X:        e.cfg.Margin.Left,
			Y:        e.cfg.Margin.Bottom / 2,
			FontSize: e.cfg.FontSize,
		}}
	}
}
