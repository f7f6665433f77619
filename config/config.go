package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ByLCY/folio/layout"
)

// 折行测量方式。
const (
	MeasureApprox = "approx" // 按字符容量近似，默认
	MeasureGlyph  = "glyph"  // 真实字形宽度，需要渲染器支持
)

// 渲染后端。
const (
	RendererCanvas = "canvas"
	RendererFPDF   = "fpdf"
)

// Settings 对应 YAML 配置文件，长度均为带单位的字符串（裸数字为 pt）。
type Settings struct {
	Page          string  `yaml:"page"`        // Letter | Legal | A4 | A5
	Orientation   string  `yaml:"orientation"` // portrait | landscape
	Width         string  `yaml:"width"`       // 可选，覆盖 page
	Height        string  `yaml:"height"`
	Margin        Lengths `yaml:"margin"` // 1~4 个值，语义同 CSS
	FontSize      string  `yaml:"font_size"`
	LineHeight    string  `yaml:"line_height"` // "1.5x" 或 "18pt"
	TitleFontSize string  `yaml:"title_font_size"`
	Footer        string  `yaml:"footer"`
	Measure       string  `yaml:"measure"`
	Renderer      string  `yaml:"renderer"`
	Workers       int     `yaml:"workers"`
}

// Lengths 既可以写成列表，也可以写成以空格分隔的一个标量（例如 "50pt 40pt"）。
type Lengths []string

func (l *Lengths) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*l = strings.Fields(node.Value)
		return nil
	case yaml.SequenceNode:
		var values []string
		if err := node.Decode(&values); err != nil {
			return err
		}
		*l = values
		return nil
	default:
		return fmt.Errorf("line %d: margin 应为标量或列表", node.Line)
	}
}

// DefaultSettings 返回默认配置，解析后等于 layout.DefaultConfig()。
func DefaultSettings() *Settings {
	return &Settings{
		Page:          "Letter",
		Orientation:   "portrait",
		Margin:        Lengths{"50pt"},
		FontSize:      "12pt",
		LineHeight:    "1.5x",
		TitleFontSize: "24pt",
		Measure:       MeasureApprox,
		Renderer:      RendererCanvas,
	}
}

// LoadSettings reads a YAML file on top of DefaultSettings.
func LoadSettings(path string) (*Settings, error) {
	s := DefaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return s, s.Validate()
}

// Validate checks the enumerations; lengths are checked by Resolve.
func (s *Settings) Validate() error {
	switch strings.ToLower(s.Measure) {
	case "", MeasureApprox, MeasureGlyph:
	default:
		return fmt.Errorf("measure %q 不受支持（可选 approx 或 glyph）", s.Measure)
	}
	switch strings.ToLower(s.Renderer) {
	case "", RendererCanvas, RendererFPDF:
	default:
		return fmt.Errorf("renderer %q 不受支持（可选 canvas 或 fpdf）", s.Renderer)
	}
	switch strings.ToLower(s.Orientation) {
	case "", "portrait", "landscape":
	default:
		return fmt.Errorf("orientation %q 不受支持", s.Orientation)
	}
	if s.Workers < 0 {
		return fmt.Errorf("workers 不能为负数")
	}
	return nil
}

// Resolve 将配置转换为以 pt 为单位的 layout.Config，并做可用区域校验。
func (s *Settings) Resolve() (layout.Config, error) {
	cfg := layout.DefaultConfig()

	landscape := strings.EqualFold(s.Orientation, "landscape")
	if s.Page != "" {
		w, h, err := layout.ResolvePageSize(s.Page, landscape)
		if err != nil {
			return cfg, err
		}
		cfg.PageWidth, cfg.PageHeight = w, h
	}
	if s.Width != "" {
		v, err := lengthPT(s.Width)
		if err != nil {
			return cfg, fmt.Errorf("width: %w", err)
		}
		cfg.PageWidth = v
	}
	if s.Height != "" {
		v, err := lengthPT(s.Height)
		if err != nil {
			return cfg, fmt.Errorf("height: %w", err)
		}
		cfg.PageHeight = v
	}

	if len(s.Margin) > 0 {
		m, err := resolveMargin(s.Margin)
		if err != nil {
			return cfg, err
		}
		cfg.Margin = m
	}
	if s.FontSize != "" {
		v, err := lengthPT(s.FontSize)
		if err != nil {
			return cfg, fmt.Errorf("font_size: %w", err)
		}
		cfg.FontSize = v
	}
	lh := layout.LineHeightSpec{Kind: layout.LineHeightFactor, Factor: layout.DefaultLeadingFactor}
	if s.LineHeight != "" {
		parsed, err := layout.ParseLineHeight(s.LineHeight)
		if err != nil {
			return cfg, fmt.Errorf("line_height: %w", err)
		}
		lh = parsed
	}
	cfg.Leading = lh.Resolve(cfg.FontSize)
	if s.TitleFontSize != "" {
		v, err := lengthPT(s.TitleFontSize)
		if err != nil {
			return cfg, fmt.Errorf("title_font_size: %w", err)
		}
		cfg.TitleFontSize = v
	}
	cfg.Footer = s.Footer

	return cfg, cfg.Validate()
}

// resolveMargin 支持 CSS 风格的 1~4 个值：
// 1 个：四边相同；2 个：上下、左右；3 个：上、左右、下；4 个：上、右、下、左。
func resolveMargin(values []string) (layout.Margin, error) {
	if len(values) > 4 {
		return layout.Margin{}, fmt.Errorf("margin 最多 4 个值，实际 %d 个", len(values))
	}
	vals := make([]float64, len(values))
	for i, v := range values {
		pt, err := lengthPT(v)
		if err != nil {
			return layout.Margin{}, fmt.Errorf("margin[%d]: %w", i, err)
		}
		vals[i] = pt
	}
	switch len(vals) {
	case 1:
		v := vals[0]
		return layout.Margin{Top: v, Right: v, Bottom: v, Left: v}, nil
	case 2:
		return layout.Margin{Top: vals[0], Right: vals[1], Bottom: vals[0], Left: vals[1]}, nil
	case 3:
		return layout.Margin{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[1]}, nil
	case 4:
		return layout.Margin{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[3]}, nil
	}
	return layout.DefaultConfig().Margin, nil
}

func lengthPT(value string) (float64, error) {
	l, err := layout.ParseLength(value)
	if err != nil {
		return 0, err
	}
	return l.ToPT(), nil
}

// Glyph reports whether glyph measurement was requested.
func (s *Settings) Glyph() bool { return strings.EqualFold(s.Measure, MeasureGlyph) }
