package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ByLCY/folio/document"
	"github.com/ByLCY/folio/editor"
	"github.com/ByLCY/folio/layout"
	"github.com/ByLCY/folio/merge"
	"github.com/ByLCY/folio/plan"
	canvasrenderer "github.com/ByLCY/folio/renderer/canvas"
	"github.com/ByLCY/folio/viewer"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "merge":
		err = runMerge(os.Args[2:])
	case "plan":
		err = runPlan(os.Args[2:])
	case "preview":
		err = runPreview(os.Args[2:])
	case "text":
		err = runText(os.Args[2:])
	case "edit":
		err = runEdit(os.Args[2:])
	case "info":
		err = runInfo(os.Args[2:])
	case "-h", "--help", "help":
		usage()
		return
	default:
		usage()
		log.Fatalf("未知子命令: %s", os.Args[1])
	}
	if err != nil {
		log.Fatalf("%s 失败: %v", os.Args[1], err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "用法: folio <子命令> [选项]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "子命令:")
	fmt.Fprintln(os.Stderr, "  merge    合并多个 PDF 文件")
	fmt.Fprintln(os.Stderr, "  plan     执行合并计划文件")
	fmt.Fprintln(os.Stderr, "  preview  渲染连续滚动布局预览图")
	fmt.Fprintln(os.Stderr, "  text     提取 PDF 文本")
	fmt.Fprintln(os.Stderr, "  edit     替换单页文本")
	fmt.Fprintln(os.Stderr, "  info     显示 PDF 基础信息")
}

// runMerge 按参数顺序合并输入文件。
func runMerge(args []string) error {
	fs := flag.NewFlagSet("merge", flag.ExitOnError)
	output := fs.String("out", "merged.pdf", "合并输出路径")
	if err := fs.Parse(args); err != nil {
		return err
	}
	inputs := fs.Args()

	list := merge.NewList()
	for _, f := range inputs {
		if err := list.Add(f); err != nil {
			return err
		}
	}
	if err := list.Merge(*output); err != nil {
		return err
	}
	pages, err := merge.PageCount(*output)
	if err != nil {
		return err
	}
	fmt.Printf("已合并 %d 个文件：%s（共 %d 页）\n", list.Len(), *output, pages)
	return nil
}

// runPlan 解析计划文件并逐个任务执行合并。
func runPlan(args []string) error {
	fs := flag.NewFlagSet("plan", flag.ExitOnError)
	input := fs.String("in", "merge.plan", "计划文件路径")
	dataJSON := fs.String("data", "", "绑定到计划占位符的 JSON 数据")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var data any
	if *dataJSON != "" {
		if err := json.Unmarshal([]byte(*dataJSON), &data); err != nil {
			return fmt.Errorf("解析 data JSON 失败: %w", err)
		}
	}

	file, err := os.Open(*input)
	if err != nil {
		return fmt.Errorf("无法打开计划文件 %s: %w", *input, err)
	}
	defer file.Close()

	p, err := plan.Parse(file)
	if err != nil {
		return fmt.Errorf("解析计划失败: %w", err)
	}
	return plan.Run(p, data, func(files []string, out string) error {
		if err := merge.Merge(files, out); err != nil {
			return err
		}
		fmt.Printf("已生成：%s\n", out)
		return nil
	})
}

// runPreview 构建布局并输出 PNG 预览，可选输出布局调试 JSON。
func runPreview(args []string) error {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	input := fs.String("in", "", "PDF 文件路径")
	output := fs.String("out", "preview.png", "预览图输出路径")
	zoom := fs.Float64("zoom", 1.0, "缩放倍率")
	mode := fs.String("mode", "single", "排版模式: single | two-up | facing")
	viewport := fs.Float64("viewport", 0, "视口宽度（像素，0 取默认值）")
	debug := fs.String("debug", "", "布局调试 JSON 输出路径")
	page := fs.String("page", "", "跳转页码（仅影响调试输出的当前页）")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *input == "" {
		return fmt.Errorf("缺少 -in 参数")
	}

	m, ok := layout.ParseMode(*mode)
	if !ok {
		return fmt.Errorf("未知排版模式: %q", *mode)
	}

	doc, err := document.Open(*input)
	if err != nil {
		return err
	}
	defer doc.Close()

	v, err := viewer.New(doc, *viewport)
	if err != nil {
		return err
	}
	if err := v.SetZoom(*zoom); err != nil {
		return err
	}
	if err := v.SetMode(m); err != nil {
		return err
	}
	if *page != "" {
		if err := v.JumpToPage(*page); err != nil {
			return err
		}
	}

	res := v.Layout()
	if *debug != "" {
		if err := os.MkdirAll(filepath.Dir(*debug), 0o755); err != nil {
			return fmt.Errorf("创建调试目录失败: %w", err)
		}
		if err := layout.WriteDebugJSON(res, *debug); err != nil {
			return fmt.Errorf("输出调试 JSON 失败: %w", err)
		}
	}

	r := canvasrenderer.NewRenderer()
	png, err := r.Render(res)
	if err != nil {
		return fmt.Errorf("渲染预览失败: %w", err)
	}
	if err := os.WriteFile(*output, png, 0o644); err != nil {
		return fmt.Errorf("写入预览图失败: %w", err)
	}
	fmt.Printf("已生成预览：%s（第 %d 页，共 %d 页）\n", *output, v.CurrentPage()+1, doc.PageCount())
	return nil
}

// runText 提取整个文档或单页的文本。
func runText(args []string) error {
	fs := flag.NewFlagSet("text", flag.ExitOnError)
	input := fs.String("in", "", "PDF 文件路径")
	page := fs.Int("page", 0, "仅提取指定页（从 1 开始，0 表示全部）")
	stats := fs.Bool("stats", false, "输出字符数与词数统计")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *input == "" {
		return fmt.Errorf("缺少 -in 参数")
	}

	doc, err := document.Open(*input)
	if err != nil {
		return err
	}
	defer doc.Close()

	var text string
	if *page > 0 {
		text, err = doc.PageText(*page - 1)
	} else {
		text, err = document.ExtractAll(doc)
	}
	if err != nil {
		return err
	}

	fmt.Print(text)
	if !strings.HasSuffix(text, "\n") {
		fmt.Println()
	}
	if *stats {
		chars, words := document.Stats(text)
		fmt.Printf("字符数: %d  词数: %d\n", chars, words)
	}
	return nil
}

// runEdit 替换单页文本并写出新文件。
func runEdit(args []string) error {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	input := fs.String("in", "", "PDF 文件路径")
	output := fs.String("out", "", "输出路径")
	page := fs.Int("page", 1, "目标页码（从 1 开始）")
	text := fs.String("text", "", "替换文本")
	textFile := fs.String("text-file", "", "从文件读取替换文本（优先于 -text）")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *input == "" {
		return fmt.Errorf("缺少 -in 参数")
	}
	if *output == "" {
		return fmt.Errorf("缺少 -out 参数")
	}

	newText := *text
	if *textFile != "" {
		data, err := os.ReadFile(*textFile)
		if err != nil {
			return fmt.Errorf("读取替换文本失败: %w", err)
		}
		newText = string(data)
	}

	e := editor.New(canvasrenderer.NewRenderer())
	if err := e.Apply(*input, *page, newText, *output); err != nil {
		return err
	}
	fmt.Printf("已写入编辑结果：%s\n", *output)
	return nil
}

// runInfo 打印页数与每页尺寸。
func runInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	input := fs.String("in", "", "PDF 文件路径")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *input == "" {
		return fmt.Errorf("缺少 -in 参数")
	}

	doc, err := document.Open(*input)
	if err != nil {
		return err
	}
	defer doc.Close()

	fmt.Printf("文件: %s\n", doc.Path())
	fmt.Printf("页数: %d\n", doc.PageCount())
	for i := 0; i < doc.PageCount(); i++ {
		w, h, err := doc.PageSize(i, 1.0)
		if err != nil {
			return err
		}
		fmt.Printf("  第 %d 页: %.1f x %.1f pt\n", i+1, w, h)
	}
	return nil
}
