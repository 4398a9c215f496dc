// Package viewer 维护阅读状态：缩放、排版模式、滚动位置。
// 每次状态变化都重新构建布局并换算滚动比例，保证当前页在视野内不丢失。
package viewer

import (
	"fmt"

	"github.com/ByLCY/folio/layout"
	"github.com/ByLCY/folio/nav"
)

// Provider 提供布局所需的文档信息。*document.Document 满足该接口。
type Provider interface {
	PageCount() int
	PageSize(index int, zoom float64) (float64, float64, error)
}

// Viewer 是展示层的状态机。并发不安全，调用方串行使用。
type Viewer struct {
	doc           Provider
	zoom          float64
	mode          layout.Mode
	viewportWidth float64
	scroll        float64 // 滚动比例，0 顶部，1 底部
	res           *layout.Result
	ctrl          *nav.Controller
}

// New 创建查看器并完成首次布局。viewportWidth <= 0 时由布局层取默认值。
func New(doc Provider, viewportWidth float64) (*Viewer, error) {
	if doc == nil {
		return nil, fmt.Errorf("缺少文档")
	}
	v := &Viewer{
		doc:           doc,
		zoom:          1.0,
		mode:          layout.SingleColumn,
		viewportWidth: viewportWidth,
	}
	if err := v.Relayout(); err != nil {
		return nil, err
	}
	return v, nil
}

// Relayout 以当前状态重建布局与导航索引。失败时保留旧布局。
func (v *Viewer) Relayout() error {
	res, err := layout.Build(layout.Request{
		PageCount:     v.doc.PageCount(),
		Zoom:          v.zoom,
		Mode:          v.mode,
		ViewportWidth: v.viewportWidth,
	}, layout.BuildOptions{Metrics: v.doc})
	if err != nil {
		return fmt.Errorf("重建布局失败: %w", err)
	}
	v.res = res
	v.ctrl = nav.New(res, v.doc.PageCount())
	return nil
}

// Layout 返回最近一次成功构建的布局结果。
func (v *Viewer) Layout() *layout.Result { return v.res }

// Zoom 返回当前缩放倍率。
func (v *Viewer) Zoom() float64 { return v.zoom }

// SetZoom 设置缩放倍率（自动夹紧到合法区间）并重新布局。
// 重布局前后保持当前页不变：先记住顶端页，布局后跳回该页。
func (v *Viewer) SetZoom(zoom float64) error {
	return v.rebuild(func() { v.zoom = layout.ClampZoom(zoom) })
}

// ZoomIn 放大一档。已到上限时仍会触发一次重布局，结果不变。
func (v *Viewer) ZoomIn() error {
	return v.rebuild(func() { v.zoom = layout.ZoomIn(v.zoom) })
}

// ZoomOut 缩小一档。
func (v *Viewer) ZoomOut() error {
	return v.rebuild(func() { v.zoom = layout.ZoomOut(v.zoom) })
}

// Mode 返回当前排版模式。
func (v *Viewer) Mode() layout.Mode { return v.mode }

// SetMode 切换排版模式并重新布局。
func (v *Viewer) SetMode(mode layout.Mode) error {
	return v.rebuild(func() { v.mode = mode })
}

// ToggleTwoUp 在单栏与双页之间切换。关闭双页时封面右置一并清除。
func (v *Viewer) ToggleTwoUp() error {
	return v.rebuild(func() { v.mode = v.mode.WithTwoUp(!v.mode.IsTwoUp()) })
}

// SetFacing 开关“封面右置”。开启时强制进入双页模式。
func (v *Viewer) SetFacing(on bool) error {
	return v.rebuild(func() { v.mode = v.mode.WithFacing(on) })
}

// SetViewportWidth 更新视口宽度（窗口尺寸变化时调用）并重新布局。
func (v *Viewer) SetViewportWidth(w float64) error {
	return v.rebuild(func() { v.viewportWidth = w })
}

// rebuild 应用状态变更并重布局，前后保持顶端可见页不变。
func (v *Viewer) rebuild(apply func()) error {
	current := v.CurrentPage()
	apply()
	if err := v.Relayout(); err != nil {
		return err
	}
	frac, err := v.ctrl.JumpToPage(fmt.Sprintf("%d", current+1))
	if err == nil {
		v.scroll = frac
	}
	return nil
}

// Scroll 返回当前滚动比例。
func (v *Viewer) Scroll() float64 { return v.scroll }

// SetScroll 设置滚动比例，越界值夹紧到 [0, 1]。
func (v *Viewer) SetScroll(frac float64) {
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	v.scroll = frac
}

// JumpToPage 跳转到 1 基页码。输入非法时滚动位置保持不变。
func (v *Viewer) JumpToPage(input string) error {
	frac, err := v.ctrl.JumpToPage(input)
	if err != nil {
		return err
	}
	v.scroll = frac
	return nil
}

// PageStep 向前（-1）或向后（+1）翻页；双页模式一次翻一个对页。
func (v *Viewer) PageStep(direction int) {
	v.scroll = v.ctrl.PageStep(v.scroll, direction, v.mode.IsTwoUp())
}

// Home 跳到文档顶部。
func (v *Viewer) Home() { v.scroll = v.ctrl.Home() }

// End 跳到文档底部。
func (v *Viewer) End() { v.scroll = v.ctrl.End() }

// CurrentPage 返回当前顶端可见页的下标（0 基）。
func (v *Viewer) CurrentPage() int {
	if v.res == nil {
		return 0
	}
	return v.ctrl.PageAt(v.scroll * v.res.TotalHeight)
}
