// Package fpdfrenderer renders layout documents with the PDF core fonts
// Helvetica and Helvetica-Bold through github.com/go-pdf/fpdf.
package fpdfrenderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/ByLCY/folio/layout"
	"github.com/ByLCY/folio/renderer"
)

const (
	fontFamily = "Helvetica"
	// 空描述符表示 cp1252，核心字体只能显示该字符集
	codePage = ""
)

// Renderer draws each layout page onto an fpdf page of the same size (pt).
type Renderer struct{}

var _ renderer.Renderer = (*Renderer)(nil)

// NewRenderer creates an fpdf-based renderer.
func NewRenderer() *Renderer { return &Renderer{} }

// Render renders the document into a PDF byte slice.
func (r *Renderer) Render(doc *layout.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if len(doc.Pages) == 0 {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}

	first := doc.Pages[0]
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: first.Width, Ht: first.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	applyMeta(pdf, doc.Meta)
	tr := pdf.UnicodeTranslatorFromDescriptor(codePage)

	for _, page := range doc.Pages {
		orientation, size := pageFormat(page)
		pdf.AddPageFormat(orientation, size)
		drawLines(pdf, page, page.Lines, tr)
		drawLines(pdf, page, page.Footer, tr)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// pageFormat 横向页面需要以 "L" 传入纵向尺寸，fpdf 会自行交换宽高。
func pageFormat(page layout.Page) (string, fpdf.SizeType) {
	if page.Width > page.Height {
		return "L", fpdf.SizeType{Wd: page.Height, Ht: page.Width}
	}
	return "P", fpdf.SizeType{Wd: page.Width, Ht: page.Height}
}

// drawLines 绘制基线文本；fpdf 以左上角为原点，需要翻转 Y。
func drawLines(pdf *fpdf.Fpdf, page layout.Page, lines []layout.PositionedLine, tr func(string) string) {
	for _, ln := range lines {
		style := ""
		if ln.Bold {
			style = "B"
		}
		pdf.SetFont(fontFamily, style, ln.FontSize)
		pdf.Text(ln.X, page.Height-ln.Y, tr(ln.Text))
	}
}

func applyMeta(pdf *fpdf.Fpdf, meta layout.DocumentMeta) {
	pdf.SetTitle(meta.Title, true)
	pdf.SetAuthor(meta.Author, true)
	pdf.SetSubject(meta.Subject, true)
	pdf.SetCreator(meta.Creator, true)
	pdf.SetKeywords(strings.Join(meta.Keywords, ", "), true)
}
