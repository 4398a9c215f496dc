package layout

// BuildOptions 配置布局阶段所需的依赖。
type BuildOptions struct {
	Metrics Metrics
}

// Metrics 提供指定缩放下单页的渲染像素尺寸，由 PDF 后端实现。
type Metrics interface {
	PageSize(index int, zoom float64) (width, height float64, err error)
}
