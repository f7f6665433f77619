package layout

import (
	"fmt"
	"math"
	"strings"
)

// 默认排版参数（单位 pt）。
const (
	DefaultMargin        = 50.0
	DefaultFontSize      = 12.0
	DefaultLeadingFactor = 1.5
	DefaultTitleFontSize = 24.0

	// UntitledTitle 是缺少标题时标题页显示的文字。
	UntitledTitle = "Untitled"

	// capacityGlyphFactor 近似认为每个字符宽度为字号的一半。
	capacityGlyphFactor = 0.5
)

// Config 描述页面尺寸、边距与字号，全部以 pt 为单位。
type Config struct {
	PageWidth     float64
	PageHeight    float64
	Margin        Margin
	FontSize      float64
	Leading       float64
	TitleFontSize float64
	// Footer 为页脚模板（例如 "${page} / ${pages}"），为空时不输出页脚。
	Footer string
}

// DefaultConfig 返回默认参数：Letter 纸张、50pt 边距、12pt 正文、1.5 倍行距。
func DefaultConfig() Config {
	size := PagePresets["LETTER"]
	return Config{
		PageWidth:     size[0],
		PageHeight:    size[1],
		Margin:        Margin{Top: DefaultMargin, Right: DefaultMargin, Bottom: DefaultMargin, Left: DefaultMargin},
		FontSize:      DefaultFontSize,
		Leading:       DefaultLeadingFactor * DefaultFontSize,
		TitleFontSize: DefaultTitleFontSize,
	}
}

// PagePresets 为常见纸张尺寸（pt，纵向）。
var PagePresets = map[string][2]float64{
	"LETTER": {612, 792},
	"LEGAL":  {612, 1008},
	"A4":     {595, 842},
	"A5":     {420, 595},
}

// ResolvePageSize 根据名称返回纸张尺寸，landscape 时交换宽高。
func ResolvePageSize(name string, landscape bool) (float64, float64, error) {
	base, ok := PagePresets[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return 0, 0, fmt.Errorf("暂不支持的纸张尺寸：%s", name)
	}
	width, height := base[0], base[1]
	if landscape {
		width, height = height, width
	}
	return width, height, nil
}

// Validate 检查所有数值均为有限值且可用区域为正。
func (c Config) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"pageWidth", c.PageWidth},
		{"pageHeight", c.PageHeight},
		{"margin", c.Margin.Top},
		{"margin", c.Margin.Right},
		{"margin", c.Margin.Bottom},
		{"margin", c.Margin.Left},
		{"fontSize", c.FontSize},
		{"leading", c.Leading},
		{"titleFontSize", c.TitleFontSize},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return &ConfigurationError{Field: f.name, Reason: fmt.Sprintf("必须为有限数值，实际 %g", f.value)}
		}
	}
	switch {
	case c.PageWidth <= 0:
		return &ConfigurationError{Field: "pageWidth", Reason: fmt.Sprintf("必须为正数，实际 %g", c.PageWidth)}
	case c.PageHeight <= 0:
		return &ConfigurationError{Field: "pageHeight", Reason: fmt.Sprintf("必须为正数，实际 %g", c.PageHeight)}
	case c.Margin.Top < 0 || c.Margin.Right < 0 || c.Margin.Bottom < 0 || c.Margin.Left < 0:
		return &ConfigurationError{Field: "margin", Reason: fmt.Sprintf("不能为负数：%+v", c.Margin)}
	case c.Margin.Left+c.Margin.Right >= c.PageWidth:
		return &ConfigurationError{Field: "margin", Reason: fmt.Sprintf("左右边距之和 %g 不小于页宽 %g", c.Margin.Left+c.Margin.Right, c.PageWidth)}
	case c.Margin.Top+c.Margin.Bottom >= c.PageHeight:
		return &ConfigurationError{Field: "margin", Reason: fmt.Sprintf("上下边距之和 %g 不小于页高 %g", c.Margin.Top+c.Margin.Bottom, c.PageHeight)}
	case c.FontSize <= 0:
		return &ConfigurationError{Field: "fontSize", Reason: fmt.Sprintf("必须为正数，实际 %g", c.FontSize)}
	case c.Leading <= 0:
		return &ConfigurationError{Field: "leading", Reason: fmt.Sprintf("必须为正数，实际 %g", c.Leading)}
	case c.TitleFontSize <= 0:
		return &ConfigurationError{Field: "titleFontSize", Reason: fmt.Sprintf("必须为正数，实际 %g", c.TitleFontSize)}
	}
	return nil
}

// UsableWidth 为页宽减去左右边距。
func (c Config) UsableWidth() float64 { return c.PageWidth - c.Margin.Left - c.Margin.Right }

// UsableHeight 为页高减去上下边距。
func (c Config) UsableHeight() float64 { return c.PageHeight - c.Margin.Top - c.Margin.Bottom }

// top 是每页第一行的基线位置。
func (c Config) top() float64 { return c.PageHeight - c.Margin.Top }

// Capacity 近似计算一行可容纳的字符数：floor(usableWidth / (fontSize × 0.5))。
// 这不是真实的字形测量，但必须保持不变以获得一致的分页结果。
func Capacity(usableWidth, fontSize float64) int {
	if fontSize <= 0 {
		return 0
	}
	return int(math.Floor(usableWidth / (fontSize * capacityGlyphFactor)))
}
