package layout

import (
	"fmt"
	"log/slog"
	"runtime"
	"strings"
)

const defaultCreator = "folio"

// Build 对整本书排版：先并行折行，再按文档顺序交给单个 Engine 分页。
// 配置无效时在处理任何章节之前返回 *ConfigurationError。
func Build(book Book, opts BuildOptions) (*Document, error) {
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	var wrapper LineWrapper
	if opts.Typesetter != nil {
		w, err := opts.Typesetter.LineWrapper(cfg.UsableWidth(), cfg.FontSize)
		if err != nil {
			return nil, fmt.Errorf("layout: 创建折行器失败: %w", err)
		}
		wrapper = w
	}

	engine, err := NewEngine(cfg, EngineOptions{Wrapper: wrapper, Logger: log})
	if err != nil {
		return nil, err
	}

	wrapped := wrapSections(book.Sections, engine.wrapper, opts.Workers)

	if err := engine.BeginDocument(book.Title); err != nil {
		return nil, err
	}
	for i, lines := range wrapped {
		if err := engine.appendWrapped(lines); err != nil {
			return nil, fmt.Errorf("layout: 章节 %d 排版失败: %w", i, err)
		}
	}
	doc := engine.Finish()

	doc.Meta = book.Meta
	if doc.Meta.Title == "" {
		doc.Meta.Title = strings.TrimSpace(book.Title)
	}
	if doc.Meta.Creator == "" {
		doc.Meta.Creator = defaultCreator
	}
	doc.Outline = resolveOutline(book.TOC, doc.Sections, len(doc.Pages))

	log.Info("排版完成", "title", engine.title, "sections", len(book.Sections), "pages", len(doc.Pages))
	return doc, nil
}

// wrapSections 以有限并发对各章节折行，结果按输入顺序返回。
// 空白章节得到 nil，由 Engine 记为跳过。
func wrapSections(sections []string, wrapper LineWrapper, workers int) [][]string {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	out := make([][]string, len(sections))
	if len(sections) == 0 {
		return out
	}

	type wrapResult struct {
		idx   int
		lines []string
	}
	results := make(chan wrapResult, len(sections))
	sem := make(chan struct{}, workers)

	for i, text := range sections {
		sem <- struct{}{}
		go func(i int, text string) {
			defer func() { <-sem }()
			results <- wrapResult{idx: i, lines: WrapLines(wrapper, text)}
		}(i, text)
	}
	for range sections {
		r := <-results
		out[r.idx] = r.lines
	}
	return out
}
