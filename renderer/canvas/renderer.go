package canvasrenderer

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/folio/fonts"
	"github.com/ByLCY/folio/layout"
	"github.com/ByLCY/folio/renderer"
)

const familyName = "folio"

var textColor = canvas.Black

// Renderer draws layout documents via github.com/tdewolff/canvas.
// 布局坐标为 pt（左下角原点），canvas 使用 mm，绘制时在边界换算。
type Renderer struct {
	fontBlobs map[string][]byte

	fontMu sync.Mutex
	family *canvas.FontFamily
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ layout.Typesetter = (*Renderer)(nil)
)

// Options configures the canvas renderer.
type Options struct {
	// Fonts 覆盖内置字体，键为 fonts.Regular / fonts.Bold。
	Fonts map[string]Resource
	// Logger 为空时使用 slog.Default()。
	Logger *slog.Logger
}

// Resource can be provided either by Bytes or by Path.
type Resource struct {
	Bytes []byte
	Path  string
}

// NewRenderer creates a renderer using the built-in Go fonts.
func NewRenderer() *Renderer { return NewRendererWithOptions(Options{}) }

// NewRendererWithOptions creates a renderer with injected font resources.
func NewRendererWithOptions(opts Options) *Renderer {
	r := &Renderer{fontBlobs: map[string][]byte{}}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	for name, res := range opts.Fonts {
		if name == "" {
			continue
		}
		if len(res.Bytes) > 0 {
			r.fontBlobs[name] = res.Bytes
			continue
		}
		if res.Path != "" {
			data, err := os.ReadFile(res.Path)
			if err != nil || len(data) == 0 {
				log.Warn("字体文件不可用，回退到内置字体", "font", name, "path", res.Path, "err", err)
				continue
			}
			r.fontBlobs[name] = data
		}
	}
	return r
}

// Render renders the document into a PDF byte slice.
func (r *Renderer) Render(doc *layout.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if len(doc.Pages) == 0 {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}

	var buf bytes.Buffer
	first := doc.Pages[0]
	writer := pdf.New(&buf, toMm(first.Width), toMm(first.Height), nil)
	r.applyMeta(writer, doc.Meta)
	for i, page := range doc.Pages {
		if i > 0 {
			writer.NewPage(toMm(page.Width), toMm(page.Height))
		}
		c := canvas.New(toMm(page.Width), toMm(page.Height))
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianI) // 与布局一致：左下角为原点，Y 向上

		if err := r.drawLines(ctx, page.Lines); err != nil {
			return nil, fmt.Errorf("绘制第 %d 页失败: %w", i+1, err)
		}
		if err := r.drawLines(ctx, page.Footer); err != nil {
			return nil, fmt.Errorf("绘制第 %d 页页脚失败: %w", i+1, err)
		}
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) applyMeta(writer *pdf.PDF, meta layout.DocumentMeta) {
	keywords := strings.Join(meta.Keywords, ", ")
	writer.SetInfo(meta.Title, meta.Subject, keywords, meta.Author, meta.Creator)
}

// drawLines 在基线位置绘制每一行，坐标与字号均由 pt 换算。
func (r *Renderer) drawLines(ctx *canvas.Context, lines []layout.PositionedLine) error {
	for _, ln := range lines {
		face, err := r.fontFace(ln.FontSize, ln.Bold)
		if err != nil {
			return err
		}
		text := canvas.NewTextLine(face, ln.Text, canvas.Left)
		ctx.DrawText(toMm(ln.X), toMm(ln.Y), text)
	}
	return nil
}

// LineWrapper 实现 layout.Typesetter：按正文字体的真实字形宽度贪心折行。
// 这是对字符容量近似的替代，分页结果与默认模式不同。
func (r *Renderer) LineWrapper(usableWidth, fontSize float64) (layout.LineWrapper, error) {
	face, err := r.fontFace(fontSize, false)
	if err != nil {
		return nil, err
	}
	// 折行在多个 goroutine 中进行，字体面的测量需要串行
	var mu sync.Mutex
	return layout.Wrapper{
		Measure: func(s string) float64 {
			mu.Lock()
			defer mu.Unlock()
			return face.TextWidth(s)
		},
		Limit: toMm(usableWidth),
	}, nil
}

// fontFace 创建指定字号（pt）的字体面。
func (r *Renderer) fontFace(sizePt float64, bold bool) (*canvas.FontFace, error) {
	family, err := r.ensureFamily()
	if err != nil {
		return nil, err
	}
	style := canvas.FontRegular
	if bold {
		style = canvas.FontBold
	}
	return family.Face(sizePt, textColor, style, canvas.FontNormal), nil
}

func (r *Renderer) ensureFamily() (*canvas.FontFamily, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	if r.family != nil {
		return r.family, nil
	}

	family := canvas.NewFontFamily(familyName)
	for _, f := range []struct {
		name  string
		style canvas.FontStyle
	}{{fonts.Regular, canvas.FontRegular}, {fonts.Bold, canvas.FontBold}} {
		data, err := r.loadFontBytes(f.name)
		if err != nil {
			return nil, err
		}
		if err := family.LoadFont(data, 0, f.style); err != nil {
			return nil, fmt.Errorf("加载字体 %s 失败: %w", f.name, err)
		}
	}
	r.family = family
	return family, nil
}

func (r *Renderer) loadFontBytes(name string) ([]byte, error) {
	if blob, ok := r.fontBlobs[name]; ok {
		return blob, nil
	}
	return fonts.Load(name)
}

// toMm 将点(pt)转换为毫米(mm)。
func toMm(pt float64) float64 { return pt * layout.PtToMm }
