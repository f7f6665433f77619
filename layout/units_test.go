package layout

import (
	"math"
	"testing"
)

// TestPtMmRoundTrip 验证 pt↔mm 换算的往返精度（允许极小的浮点误差）。
func TestPtMmRoundTrip(t *testing.T) {
	samples := []float64{0, 0.001, 1, 12, 14.4, 72, 96, 144, 1000}
	for _, pt := range samples {
		mm := pt * PtToMm
		back := mm * MmToPt
		if diff := math.Abs(back - pt); diff > 1e-9 {
			t.Fatalf("pt→mm→pt 往返误差过大: in=%gpt mm=%g back=%g diff=%g", pt, mm, back, diff)
		}
	}
}

// TestParseLength 覆盖常见单位到 pt 的转换，裸数字按 pt 处理。
func TestParseLength(t *testing.T) {
	cases := []struct {
		in     string
		wantPT float64
	}{
		{"50", 50},
		{"50pt", 50},
		{" 12PT ", 12},
		{"1in", 72},
		{"25.4mm", 25.4 * MmToPt},
		{"2.54cm", 25.4 * MmToPt},
	}
	for _, tc := range cases {
		l, err := ParseLength(tc.in)
		if err != nil {
			t.Fatalf("解析 %q 失败: %v", tc.in, err)
		}
		if diff := math.Abs(l.ToPT() - tc.wantPT); diff > 1e-9 {
			t.Fatalf("%q 转 pt 期望 %g，实际 %g", tc.in, tc.wantPT, l.ToPT())
		}
	}
	if _, err := ParseLength("abc"); err == nil {
		t.Fatalf("非法长度应返回错误")
	}
	if _, err := ParseLength(""); err == nil {
		t.Fatalf("空长度应返回错误")
	}
	for _, in := range []string{"nan", "inf", "-Inf", "NaNpt", "infinitymm"} {
		if _, err := ParseLength(in); err == nil {
			t.Fatalf("非有限长度 %q 应返回错误", in)
		}
	}
	if _, err := ParseLineHeight("nanx"); err == nil {
		t.Fatalf("非有限行高倍数应返回错误")
	}
}

// TestLineHeightResolve 验证行高解析：倍数与绝对值两种语义。
func TestLineHeightResolve(t *testing.T) {
	factor, err := ParseLineHeight("1.5x")
	if err != nil {
		t.Fatalf("解析 1.5x 失败: %v", err)
	}
	if factor.Kind != LineHeightFactor {
		t.Fatalf("1.5x 应为倍数行高，实际 %#v", factor)
	}
	if got := factor.Resolve(12); math.Abs(got-18) > 1e-9 {
		t.Fatalf("1.5x@12pt 期望 18，实际 %g", got)
	}

	abs, err := ParseLineHeight("6mm")
	if err != nil {
		t.Fatalf("解析 6mm 失败: %v", err)
	}
	if abs.Kind != LineHeightAbsolute {
		t.Fatalf("6mm 应为绝对行高，实际 %#v", abs)
	}
	if got, want := abs.Resolve(12), 6*MmToPt; math.Abs(got-want) > 1e-9 {
		t.Fatalf("6mm 行高期望 %g，实际 %g", want, got)
	}

	if _, err := ParseLineHeight("fastx"); err == nil {
		t.Fatalf("非法倍数应返回错误")
	}
}
