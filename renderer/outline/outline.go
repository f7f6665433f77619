// Package outline post-processes rendered PDFs with pdfcpu: it turns the
// resolved table of contents into PDF bookmarks and counts pages.
package outline

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/ByLCY/folio/layout"
)

// Apply 为 PDF 添加书签，已有书签会被替换。没有目录时原样返回。
func Apply(pdf []byte, entries []layout.OutlineEntry) ([]byte, error) {
	if len(entries) == 0 {
		return pdf, nil
	}
	var out bytes.Buffer
	bms := toBookmarks(entries, 1)
	if err := api.AddBookmarks(bytes.NewReader(pdf), &out, bms, true, configuration()); err != nil {
		return nil, fmt.Errorf("pdfcpu 添加书签失败: %w", err)
	}
	return out.Bytes(), nil
}

// PageCount 读取并校验 PDF，返回页数。
func PageCount(pdf []byte) (int, error) {
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(pdf), configuration())
	if err != nil {
		return 0, fmt.Errorf("pdfcpu read: %w", err)
	}
	return ctx.PageCount, nil
}

// toBookmarks 转换目录树。pdfcpu 要求同级书签页码不递减且子节点不早于父节点，
// 因此页码会被抬升到 minPage 以上。
func toBookmarks(entries []layout.OutlineEntry, minPage int) []pdfcpu.Bookmark {
	out := make([]pdfcpu.Bookmark, 0, len(entries))
	floor := minPage
	for _, entry := range entries {
		page := max(entry.Page, floor)
		title := entry.Title
		if title == "" {
			title = fmt.Sprintf("Page %d", page)
		}
		out = append(out, pdfcpu.Bookmark{
			Title:    title,
			PageFrom: page,
			Kids:     toBookmarks(entry.Children, page),
		})
		floor = page
	}
	return out
}

func configuration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}
