package layout

import (
	"fmt"
	"math"
)

const (
	// startOffset 是画布顶端到第一行页面的距离（像素）。
	startOffset = 10.0
	// pageGap 是相邻两行页面之间、以及双页左右之间的间距（像素）。
	pageGap = 20.0
	// leftMargin 是双页模式下左侧页面的固定左边距（像素）。
	leftMargin = 10.0
	// minTotalWidth 是画布宽度下限，避免窄文档得到退化的视口。
	minTotalWidth = 800.0
	// defaultViewportWidth 是视口宽度未测量时的兜底值。
	defaultViewportWidth = 800.0
)

// Build 依据请求计算所有页面的落点，并同步生成页首偏移索引。
// 每次调用都返回全新的 Result，互不共享内部切片。
func Build(req Request, opts BuildOptions) (*Result, error) {
	if req.PageCount < 0 {
		return nil, fmt.Errorf("页数不能为负：%d", req.PageCount)
	}
	if opts.Metrics == nil {
		return nil, fmt.Errorf("layout: 缺少页面度量后端 Metrics")
	}
	if req.Zoom <= 0 {
		return nil, fmt.Errorf("缩放倍率必须为正：%g", req.Zoom)
	}

	res := &Result{Request: req}
	if req.PageCount == 0 {
		// 空文档：无落点，给出下限尺寸，调用方不应绘制。
		res.Placements = []Placement{}
		res.Positions = []float64{}
		res.TotalWidth = minTotalWidth
		res.TotalHeight = math.Max(startOffset, 1)
		return res, nil
	}

	var err error
	if req.Mode.IsTwoUp() {
		err = buildTwoUp(req, opts.Metrics, res)
	} else {
		err = buildSingleColumn(req, opts.Metrics, res)
	}
	if err != nil {
		return nil, err
	}

	res.TotalWidth = math.Max(res.TotalWidth, minTotalWidth)
	return res, nil
}

// buildSingleColumn 单列排布：逐页往下堆叠，页面在视口内水平居中。
func buildSingleColumn(req Request, m Metrics, res *Result) error {
	viewport := req.ViewportWidth
	if viewport <= 1 {
		viewport = defaultViewportWidth
	}

	y := startOffset
	for i := 0; i < req.PageCount; i++ {
		w, h, err := m.PageSize(i, req.Zoom)
		if err != nil {
			return fmt.Errorf("读取第 %d 页尺寸失败: %w", i+1, err)
		}
		// 居中锚点不小于 w/2+10，保证窄视口下页面不会越过左边界。
		centerX := math.Max(viewport/2, w/2+leftMargin)
		res.Placements = append(res.Placements, Placement{
			PageIndex: i,
			Top:       y,
			Left:      centerX - w/2,
			Width:     w,
			Height:    h,
		})
		res.Positions = append(res.Positions, y)
		res.TotalWidth = math.Max(res.TotalWidth, w+pageGap)
		y += h + pageGap
	}
	res.TotalHeight = math.Max(y, 1)
	return nil
}

// buildTwoUp 双页排布，可选书籍对开（首页单独放在右侧）。
func buildTwoUp(req Request, m Metrics, res *Result) error {
	y := startOffset
	i := 0

	if req.Mode.IsFacing() {
		// 封面在右：第 0 页单独成行，左侧留出与其等宽的空位。
		w, h, err := m.PageSize(0, req.Zoom)
		if err != nil {
			return fmt.Errorf("读取第 1 页尺寸失败: %w", err)
		}
		left := leftMargin + w + pageGap
		res.Placements = append(res.Placements, Placement{
			PageIndex: 0,
			Top:       y,
			Left:      left,
			Width:     w,
			Height:    h,
		})
		res.Positions = append(res.Positions, y)
		res.TotalWidth = math.Max(res.TotalWidth, left+w+pageGap)
		y += h + pageGap
		i = 1
	}

	for i < req.PageCount {
		lw, lh, err := m.PageSize(i, req.Zoom)
		if err != nil {
			return fmt.Errorf("读取第 %d 页尺寸失败: %w", i+1, err)
		}
		res.Placements = append(res.Placements, Placement{
			PageIndex: i,
			Top:       y,
			Left:      leftMargin,
			Width:     lw,
			Height:    lh,
		})
		res.Positions = append(res.Positions, y)

		rowWidth := lw
		rowHeight := lh
		if i+1 < req.PageCount {
			rw, rh, err := m.PageSize(i+1, req.Zoom)
			if err != nil {
				return fmt.Errorf("读取第 %d 页尺寸失败: %w", i+2, err)
			}
			res.Placements = append(res.Placements, Placement{
				PageIndex: i + 1,
				Top:       y,
				Left:      leftMargin + lw + pageGap,
				Width:     rw,
				Height:    rh,
			})
			res.Positions = append(res.Positions, y)
			rowWidth = lw + pageGap + rw
			rowHeight = math.Max(lh, rh)
			i += 2
		} else {
			// 奇数页数：最后一页单独作为左页。
			i++
		}

		res.TotalWidth = math.Max(res.TotalWidth, leftMargin+rowWidth+pageGap)
		y += rowHeight + pageGap
	}
	res.TotalHeight = math.Max(y, 1)
	return nil
}

// Gap 返回行间距，供消费方做跳转往返的容差判断。
func Gap() float64 { return pageGap }
