// Package document 封装外部 PDF 库，向布局与编辑器提供页数、页面尺寸、
// 页面文本与文本块包围盒。解析、光栅化等重活全部由外部库承担。
package document

import (
	"fmt"
	"os"
	"sort"

	"github.com/ledongthuc/pdf"
)

// Document 是一个已打开的 PDF 文件。除重新打开替换外只读。
type Document struct {
	path string
	file *os.File
	r    *pdf.Reader
}

// Open 打开并校验 PDF：必须能解析且至少包含一页。
func Open(path string) (*Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开 PDF 文件 %s: %w", path, err)
	}
	if r.NumPage() < 1 {
		f.Close()
		return nil, fmt.Errorf("PDF 文件 %s 不包含任何页面", path)
	}
	return &Document{path: path, file: f, r: r}, nil
}

// Validate 检查 path 是否为可用的 PDF（能打开且页数大于 0）。
func Validate(path string) error {
	d, err := Open(path)
	if err != nil {
		return err
	}
	return d.Close()
}

// Close 关闭底层文件。
func (d *Document) Close() error {
	if d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file = nil
	return err
}

// Path 返回打开时使用的文件路径。
func (d *Document) Path() string { return d.path }

// PageCount 返回页数。
func (d *Document) PageCount() int { return d.r.NumPage() }

// PageSize 实现 layout.Metrics：返回第 index 页（0 基）在指定缩放下的
// 渲染像素尺寸。尺寸来自（可继承的）MediaBox，1pt 在 zoom=1.0 下即 1px。
func (d *Document) PageSize(index int, zoom float64) (float64, float64, error) {
	page, err := d.page(index)
	if err != nil {
		return 0, 0, err
	}
	box := findInherited(page.V, "MediaBox")
	if box.IsNull() || box.Len() < 4 {
		return 0, 0, fmt.Errorf("第 %d 页缺少 MediaBox", index+1)
	}
	w := box.Index(2).Float64() - box.Index(0).Float64()
	h := box.Index(3).Float64() - box.Index(1).Float64()
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("第 %d 页 MediaBox 尺寸非法: %gx%g", index+1, w, h)
	}
	return w * zoom, h * zoom, nil
}

// PageText 返回第 index 页（0 基）的纯文本。
func (d *Document) PageText(index int) (string, error) {
	page, err := d.page(index)
	if err != nil {
		return "", err
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("提取第 %d 页文本失败: %w", index+1, err)
	}
	return text, nil
}

// Block 是一个文本块的包围盒，坐标为页面左上角原点、单位 pt。
type Block struct {
	X, Y, W, H float64
}

// TopLeft 返回供插入替换文本使用的左上角坐标。
func (b Block) TopLeft() (float64, float64) { return b.X, b.Y }

// PageBlocks 将第 index 页（0 基）的文本片段聚类为文本块包围盒。
// 片段先按基线分行，再按行距分段；无文本时返回空切片。
func (d *Document) PageBlocks(index int) ([]Block, error) {
	page, err := d.page(index)
	if err != nil {
		return nil, err
	}
	_, pageH, err := d.PageSize(index, 1.0)
	if err != nil {
		return nil, err
	}
	return clusterBlocks(page.Content().Text, pageH), nil
}

func (d *Document) page(index int) (pdf.Page, error) {
	if index < 0 || index >= d.r.NumPage() {
		return pdf.Page{}, fmt.Errorf("页下标越界: %d（共 %d 页）", index, d.r.NumPage())
	}
	page := d.r.Page(index + 1)
	if page.V.IsNull() {
		return pdf.Page{}, fmt.Errorf("第 %d 页内容为空", index+1)
	}
	return page, nil
}

// findInherited 沿 Parent 链向上查找可继承的页面属性（如 MediaBox）。
func findInherited(v pdf.Value, key string) pdf.Value {
	for ; !v.IsNull(); v = v.Key("Parent") {
		if r := v.Key(key); !r.IsNull() {
			return r
		}
	}
	return pdf.Value{}
}

// fragment 是聚类用的最小文本片段（PDF 坐标，原点在左下角）。
type fragment struct {
	x, y, w, size float64
}

// clusterBlocks 把文本片段聚成块：先按 y 近似相等并成行（容差为字号的
// 一半），再把行距不超过 1.6 倍字号的相邻行并成块，最后换算为左上角原点。
func clusterBlocks(texts []pdf.Text, pageH float64) []Block {
	frags := make([]fragment, 0, len(texts))
	for _, t := range texts {
		if t.S == "" {
			continue
		}
		size := t.FontSize
		if size <= 0 {
			size = 10
		}
		frags = append(frags, fragment{x: t.X, y: t.Y, w: t.W, size: size})
	}
	if len(frags) == 0 {
		return []Block{}
	}

	// 从页面顶部往下处理（PDF 的 y 轴向上，因此按 y 降序）。
	sort.Slice(frags, func(i, j int) bool {
		if frags[i].y != frags[j].y {
			return frags[i].y > frags[j].y
		}
		return frags[i].x < frags[j].x
	})

	type line struct {
		x0, x1, y, size float64
	}
	var lines []line
	for _, f := range frags {
		if n := len(lines); n > 0 && abs(lines[n-1].y-f.y) <= lines[n-1].size/2 {
			cur := &lines[n-1]
			cur.x0 = min(cur.x0, f.x)
			cur.x1 = max(cur.x1, f.x+f.w)
			if f.size > cur.size {
				cur.size = f.size
			}
			continue
		}
		lines = append(lines, line{x0: f.x, x1: f.x + f.w, y: f.y, size: f.size})
	}

	type span struct {
		x0, x1, top, bottom float64
	}
	var blocks []Block
	var cur *span
	flush := func() {
		if cur == nil {
			return
		}
		blocks = append(blocks, Block{
			X: cur.x0,
			Y: pageH - cur.top,
			W: cur.x1 - cur.x0,
			H: cur.top - cur.bottom,
		})
		cur = nil
	}
	for _, ln := range lines {
		top := ln.y + ln.size
		bottom := ln.y - ln.size*0.25
		if cur != nil && cur.bottom-top <= ln.size*1.6 {
			cur.x0 = min(cur.x0, ln.x0)
			cur.x1 = max(cur.x1, ln.x1)
			cur.bottom = bottom
			continue
		}
		flush()
		cur = &span{x0: ln.x0, x1: ln.x1, top: top, bottom: bottom}
	}
	flush()
	return blocks
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
