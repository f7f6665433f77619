package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ByLCY/folio/config"
	"github.com/ByLCY/folio/dsl"
	"github.com/ByLCY/folio/layout"
	"github.com/ByLCY/folio/renderer"
	canvasrenderer "github.com/ByLCY/folio/renderer/canvas"
	fpdfrenderer "github.com/ByLCY/folio/renderer/fpdf"
	"github.com/ByLCY/folio/renderer/outline"
)

func main() {
	input := flag.String("in", "examples/moby.folio", "书籍清单文件路径")
	output := flag.String("out", "output/book.pdf", "PDF 输出路径")
	configPath := flag.String("config", "", "YAML 排版配置路径")
	debug := flag.String("debug", "", "布局调试 JSON 输出路径")
	dataJSON := flag.String("data", "", "绑定到清单的 JSON 数据")
	backend := flag.String("renderer", "", "渲染后端：canvas 或 fpdf（覆盖配置）")
	verbose := flag.Bool("v", false, "输出逐章排版日志")
	flag.Parse()

	if *verbose {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	var inputData any
	if *dataJSON != "" {
		if err := json.Unmarshal([]byte(*dataJSON), &inputData); err != nil {
			log.Fatalf("解析 data JSON 失败: %v", err)
		}
	}

	settings := config.DefaultSettings()
	if *configPath != "" {
		s, err := config.LoadSettings(*configPath)
		if err != nil {
			log.Fatalf("读取配置失败: %v", err)
		}
		settings = s
	}
	if *backend != "" {
		settings.Renderer = *backend
		if err := settings.Validate(); err != nil {
			log.Fatalf("参数无效: %v", err)
		}
	}

	if err := run(*input, *output, *debug, inputData, settings, newRenderer(settings.Renderer)); err != nil {
		log.Fatalf("生成 PDF 失败: %v", err)
	}
	fmt.Printf("已生成 PDF：%s\n", *output)
}

func newRenderer(name string) renderer.Renderer {
	if strings.EqualFold(name, config.RendererFPDF) {
		return fpdfrenderer.NewRenderer()
	}
	return canvasrenderer.NewRenderer()
}

// run 串联解析、排版、渲染与书签。
func run(inputPath, outputPath, debugPath string, data any, settings *config.Settings, r renderer.Renderer) error {
	if r == nil {
		return fmt.Errorf("renderer 不能为空")
	}
	cfg, err := settings.Resolve()
	if err != nil {
		return fmt.Errorf("排版配置无效: %w", err)
	}

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("无法打开清单文件 %s: %w", inputPath, err)
	}
	defer file.Close()

	ast, err := dsl.Parse(file)
	if err != nil {
		return fmt.Errorf("解析清单失败: %w", err)
	}
	book, err := layout.FromDSL(ast, data)
	if err != nil {
		return fmt.Errorf("读取章节失败: %w", err)
	}

	opts := layout.BuildOptions{Config: cfg, Workers: settings.Workers}
	if settings.Glyph() {
		ts, ok := r.(layout.Typesetter)
		if !ok {
			return fmt.Errorf("renderer %s 不支持字形测量", settings.Renderer)
		}
		opts.Typesetter = ts
	}
	doc, err := layout.Build(book, opts)
	if err != nil {
		return fmt.Errorf("布局计算失败: %w", err)
	}

	if debugPath != "" {
		if err := writeDebug(doc, debugPath); err != nil {
			return err
		}
	}

	pdfBytes, err := r.Render(doc)
	if err != nil {
		return fmt.Errorf("渲染 PDF 失败: %w", err)
	}
	pdfBytes, err = outline.Apply(pdfBytes, doc.Outline)
	if err != nil {
		return fmt.Errorf("写入书签失败: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(outputPath, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("写入 PDF 文件失败: %w", err)
	}
	return nil
}

func writeDebug(doc *layout.Document, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(doc, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
