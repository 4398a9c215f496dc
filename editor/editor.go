// Package editor 实现单页文本替换：把目标页上已有的文本块用白色矩形
// 遮住，再把替换文本作为覆盖层盖印到该页。原始内容流保持不变，编辑结果
// 始终写入新文件。
package editor

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/ByLCY/folio/document"
	"github.com/ByLCY/folio/renderer"
)

const replacementFontSize = 11.0

// OverlayRenderer 将覆盖层描述绘制成单页 PDF。
type OverlayRenderer interface {
	RenderOverlay(ov renderer.Overlay) ([]byte, error)
}

// Editor 组合文档解析与覆盖层盖印。
type Editor struct {
	r OverlayRenderer
}

// New 创建编辑器。
func New(r OverlayRenderer) *Editor { return &Editor{r: r} }

// Apply 把 inPath 中第 pageNum 页（从 1 开始）的文本替换为 newText，
// 结果写入 outPath。页面上没有可识别文本块时返回错误。
func (e *Editor) Apply(inPath string, pageNum int, newText, outPath string) error {
	if e.r == nil {
		return fmt.Errorf("缺少覆盖层渲染器")
	}
	if outPath == "" {
		return fmt.Errorf("缺少输出路径")
	}

	doc, err := document.Open(inPath)
	if err != nil {
		return err
	}
	defer doc.Close()

	if pageNum < 1 || pageNum > doc.PageCount() {
		return fmt.Errorf("页码 %d 超出范围 [1, %d]", pageNum, doc.PageCount())
	}
	pageIndex := pageNum - 1

	blocks, err := doc.PageBlocks(pageIndex)
	if err != nil {
		return err
	}
	if len(blocks) == 0 {
		return fmt.Errorf("第 %d 页没有可编辑的文本块", pageNum)
	}

	w, h, err := doc.PageSize(pageIndex, 1.0)
	if err != nil {
		return err
	}

	ov := buildOverlay(w, h, blocks, newText)
	overlayPDF, err := e.r.RenderOverlay(ov)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(outPath), "folio-overlay-*.pdf")
	if err != nil {
		return fmt.Errorf("创建临时覆盖层文件失败: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)
	if _, err := tmp.Write(overlayPDF); err != nil {
		tmp.Close()
		return fmt.Errorf("写入临时覆盖层文件失败: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("关闭临时覆盖层文件失败: %w", err)
	}

	wm, err := api.PDFWatermark(tmpPath, "pos:full, rot:0", true, false, types.POINTS)
	if err != nil {
		return fmt.Errorf("构建覆盖层水印失败: %w", err)
	}
	selected := []string{strconv.Itoa(pageNum)}
	if err := api.AddWatermarksFile(inPath, outPath, selected, wm, nil); err != nil {
		return fmt.Errorf("盖印覆盖层失败: %w", err)
	}
	return nil
}

// buildOverlay 把文本块转换成覆盖层描述。遮挡矩形四周各留 2pt 余量，
// 替换文本放在首个块的左上角。
func buildOverlay(pageW, pageH float64, blocks []document.Block, newText string) renderer.Overlay {
	const pad = 2.0
	ov := renderer.Overlay{
		PageWidth:  pageW,
		PageHeight: pageH,
		Text:       newText,
		FontSize:   replacementFontSize,
	}
	for _, b := range blocks {
		ov.Covers = append(ov.Covers, renderer.Cover{
			X: b.X - pad,
			Y: b.Y - pad,
			W: b.W + 2*pad,
			H: b.H + 2*pad,
		})
	}
	ov.TextX, ov.TextY = blocks[0].TopLeft()
	return ov
}
