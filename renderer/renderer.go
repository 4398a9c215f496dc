package renderer

import "github.com/ByLCY/folio/layout"

// Renderer 将布局结果输出为最终文件，例如 PNG 预览图。
// Render 返回生成的二进制数据以及可能的错误。
type Renderer interface {
	Render(res *layout.Result) ([]byte, error)
}

// Cover 是编辑器覆盖层里的一个白色遮挡矩形（左上角原点，单位 pt）。
type Cover struct {
	X, Y, W, H float64
}

// Overlay 描述编辑器要盖在目标页上的一整页覆盖内容。
type Overlay struct {
	PageWidth  float64 // pt
	PageHeight float64 // pt
	Covers     []Cover
	Text       string  // 替换文本
	TextX      float64 // pt，首个文本块左上角
	TextY      float64 // pt
	FontSize   float64 // pt，<=0 时使用默认 11pt
}
