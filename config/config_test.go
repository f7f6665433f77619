package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ByLCY/folio/layout"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "folio.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("写入配置失败: %v", err)
	}
	return path
}

func TestDefaultSettingsResolveToDefaultConfig(t *testing.T) {
	cfg, err := DefaultSettings().Resolve()
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if cfg != layout.DefaultConfig() {
		t.Fatalf("默认配置不一致: got=%+v want=%+v", cfg, layout.DefaultConfig())
	}
}

func TestLoadSettings(t *testing.T) {
	path := writeConfig(t, `
page: A4
orientation: landscape
margin: [36pt, 1in]
font_size: 10pt
line_height: 14pt
footer: "${page} / ${pages}"
measure: glyph
renderer: fpdf
workers: 2
`)
	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings error: %v", err)
	}
	if !s.Glyph() || s.Renderer != RendererFPDF || s.Workers != 2 {
		t.Fatalf("unexpected settings: %+v", s)
	}
	cfg, err := s.Resolve()
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if cfg.PageWidth != 842 || cfg.PageHeight != 595 {
		t.Fatalf("landscape A4 期望 842x595，实际 %gx%g", cfg.PageWidth, cfg.PageHeight)
	}
	want := layout.Margin{Top: 36, Right: 72, Bottom: 36, Left: 72}
	if cfg.Margin != want {
		t.Fatalf("margin 期望 %+v，实际 %+v", want, cfg.Margin)
	}
	if cfg.FontSize != 10 || cfg.Leading != 14 {
		t.Fatalf("字号/行高不符: %g %g", cfg.FontSize, cfg.Leading)
	}
	if cfg.TitleFontSize != layout.DefaultTitleFontSize {
		t.Fatalf("未配置的标题字号应保留默认值，实际 %g", cfg.TitleFontSize)
	}
	if cfg.Footer != "${page} / ${pages}" {
		t.Fatalf("footer 不符: %q", cfg.Footer)
	}
}

func TestMarginVariants(t *testing.T) {
	cases := []struct {
		in   Lengths
		want layout.Margin
	}{
		{Lengths{"10"}, layout.Margin{Top: 10, Right: 10, Bottom: 10, Left: 10}},
		{Lengths{"10", "5"}, layout.Margin{Top: 10, Right: 5, Bottom: 10, Left: 5}},
		{Lengths{"12", "8", "6"}, layout.Margin{Top: 12, Right: 8, Bottom: 6, Left: 8}},
		{Lengths{"1", "2", "3", "4"}, layout.Margin{Top: 1, Right: 2, Bottom: 3, Left: 4}},
	}
	for _, tc := range cases {
		got, err := resolveMargin(tc.in)
		if err != nil {
			t.Fatalf("resolveMargin(%v) error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("resolveMargin(%v) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
	if _, err := resolveMargin(Lengths{"1", "2", "3", "4", "5"}); err == nil {
		t.Fatalf("超过 4 个值应返回错误")
	}
}

func TestScalarMargin(t *testing.T) {
	s, err := LoadSettings(writeConfig(t, "margin: 20mm 10mm\n"))
	if err != nil {
		t.Fatalf("LoadSettings error: %v", err)
	}
	cfg, err := s.Resolve()
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if math.Abs(cfg.Margin.Top-20*layout.MmToPt) > 1e-9 || math.Abs(cfg.Margin.Left-10*layout.MmToPt) > 1e-9 {
		t.Fatalf("标量 margin 解析错误: %+v", cfg.Margin)
	}
}

func TestResolveRejectsUnusableArea(t *testing.T) {
	s := DefaultSettings()
	s.Margin = Lengths{"400pt", "50pt"}
	_, err := s.Resolve()
	var cfgErr *layout.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("期望 ConfigurationError，实际 %v", err)
	}
	if cfgErr.Field != "margin" {
		t.Fatalf("期望 margin 字段报错，实际 %q", cfgErr.Field)
	}
}

func TestResolveRejectsNonFiniteLengths(t *testing.T) {
	for _, content := range []string{
		"margin: nan\n",
		"margin: [50pt, inf]\n",
		"width: inf\n",
		"height: -infpt\n",
		"font_size: nan\n",
		"line_height: nan\n",
		"line_height: infx\n",
		"title_font_size: NaNpt\n",
	} {
		s, err := LoadSettings(writeConfig(t, content))
		if err != nil {
			t.Fatalf("LoadSettings(%q) error: %v", content, err)
		}
		if _, err := s.Resolve(); err == nil {
			t.Fatalf("配置 %q 含非有限数值，Resolve 应返回错误", content)
		}
	}
}

func TestValidateRejectsUnknownValues(t *testing.T) {
	for _, content := range []string{"measure: exact\n", "renderer: svg\n", "orientation: diagonal\n", "workers: -1\n"} {
		if _, err := LoadSettings(writeConfig(t, content)); err == nil {
			t.Fatalf("配置 %q 应校验失败", content)
		}
	}
	if _, err := DefaultSettings().Resolve(); err != nil {
		t.Fatalf("默认配置应有效: %v", err)
	}
	s := DefaultSettings()
	s.Page = "B7"
	if _, err := s.Resolve(); err == nil {
		t.Fatalf("未知纸张应返回错误")
	}
}
