// Package canvasrenderer 用 github.com/tdewolff/canvas 绘制布局预览与
// 编辑器覆盖层。预览只画页面占位框与页码标注：页面内容的光栅化属于外部
// PDF 库的职责，不在本仓库范围内。
package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/ByLCY/folio/fonts"
	"github.com/ByLCY/folio/layout"
	"github.com/ByLCY/folio/renderer"
)

const (
	pageBorderWidth = 1.0
	labelPad        = 10.0
	labelFontSize   = 8.0
	defaultEditSize = 11.0
)

// Renderer 基于 canvas 实现预览与覆盖层绘制。
type Renderer struct {
	fontMu sync.Mutex
	family *canvas.FontFamily
}

var _ renderer.Renderer = (*Renderer)(nil)

// NewRenderer 创建渲染器，内置字体按需加载。
func NewRenderer() *Renderer { return &Renderer{} }

// Render 将布局结果画成 PNG 预览：每个落点一个带边框的白色占位框，
// 行侧标注灰色页码。画布尺寸即布局的总宽高（1 布局像素 = 1 输出像素）。
func (r *Renderer) Render(res *layout.Result) ([]byte, error) {
	if res == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if len(res.Placements) == 0 {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}

	c := canvas.New(res.TotalWidth, res.TotalHeight)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点

	// 背景
	ctx.SetFillColor(canvas.Hex("#e8e8e8"))
	ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
	ctx.DrawPath(0, 0, canvas.Rectangle(res.TotalWidth, res.TotalHeight))

	// 页面占位框
	for _, p := range res.Placements {
		ctx.SetFillColor(canvas.White)
		ctx.SetStrokeColor(canvas.Hex("#9a9a9a"))
		ctx.SetStrokeWidth(pageBorderWidth)
		ctx.DrawPath(p.Left, p.Top, canvas.Rectangle(p.Width, p.Height))
	}

	// 行侧页码标注
	face, err := r.face(labelFontSize*layout.MmToPt, canvas.Hex("#808080"))
	if err != nil {
		return nil, err
	}
	for _, row := range groupRows(res.Placements) {
		label := rowLabel(row)
		right := row[0].Left + row[0].Width
		for _, p := range row {
			if edge := p.Left + p.Width; edge > right {
				right = edge
			}
		}
		line := canvas.NewTextLine(face, label, canvas.Left)
		baseline := row[0].Top + labelPad + face.Metrics().Ascent
		ctx.DrawText(right+labelPad, baseline, line)
	}

	img := rasterizer.Draw(c, canvas.DPMM(1.0), canvas.DefaultColorSpace)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("编码 PNG 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderOverlay 生成一页覆盖层 PDF：白色遮挡矩形盖住原有文本块，
// 替换文本写在首个块的左上角。输入坐标为 pt，内部换算为 mm。
func (r *Renderer) RenderOverlay(ov renderer.Overlay) ([]byte, error) {
	if ov.PageWidth <= 0 || ov.PageHeight <= 0 {
		return nil, fmt.Errorf("覆盖层页面尺寸非法: %gx%g", ov.PageWidth, ov.PageHeight)
	}
	w := toMm(ov.PageWidth)
	h := toMm(ov.PageHeight)

	var buf bytes.Buffer
	writer := pdf.New(&buf, w, h, nil)
	c := canvas.New(w, h)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)

	ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
	ctx.SetFillColor(canvas.White)
	for _, cover := range ov.Covers {
		ctx.DrawPath(toMm(cover.X), toMm(cover.Y), canvas.Rectangle(toMm(cover.W), toMm(cover.H)))
	}

	if ov.Text != "" {
		size := ov.FontSize
		if size <= 0 {
			size = defaultEditSize
		}
		face, err := r.face(size, canvas.Black)
		if err != nil {
			return nil, err
		}
		lineHeight := face.Metrics().LineHeight
		cursorY := toMm(ov.TextY)
		for _, lineText := range strings.Split(ov.Text, "\n") {
			line := canvas.NewTextLine(face, lineText, canvas.Left)
			baseline := cursorY + face.Metrics().Ascent
			ctx.DrawText(toMm(ov.TextX), baseline, line)
			cursorY += lineHeight
		}
	}

	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入覆盖层 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// face 返回指定字号（pt）与颜色的内置字体面。
func (r *Renderer) face(sizePt float64, col color.Color) (*canvas.FontFace, error) {
	family, err := r.ensureFamily()
	if err != nil {
		return nil, err
	}
	return family.Face(sizePt, col, canvas.FontRegular, canvas.FontNormal), nil
}

func (r *Renderer) ensureFamily() (*canvas.FontFamily, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	if r.family != nil {
		return r.family, nil
	}
	data, err := fonts.Load(fonts.SansRegular)
	if err != nil {
		return nil, err
	}
	family := canvas.NewFontFamily("folio")
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("加载内置字体失败: %w", err)
	}
	r.family = family
	return family, nil
}

// groupRows 按 Top 将有序落点分组成行。
func groupRows(placements []layout.Placement) [][]layout.Placement {
	var rows [][]layout.Placement
	for _, p := range placements {
		if n := len(rows); n > 0 && rows[n-1][0].Top == p.Top {
			rows[n-1] = append(rows[n-1], p)
			continue
		}
		rows = append(rows, []layout.Placement{p})
	}
	return rows
}

// rowLabel 生成行标注文字，页码从 1 开始。
func rowLabel(row []layout.Placement) string {
	if len(row) == 2 {
		return fmt.Sprintf("Pages %d / %d", row[0].PageIndex+1, row[1].PageIndex+1)
	}
	return fmt.Sprintf("Page %d", row[0].PageIndex+1)
}

// toMm 将点(pt)转换为毫米(mm)。
func toMm(pt float64) float64 { return pt * layout.PtToMm }
