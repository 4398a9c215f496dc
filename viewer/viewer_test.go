package viewer

import (
	"errors"
	"math"
	"testing"

	"github.com/ByLCY/folio/layout"
	"github.com/ByLCY/folio/nav"
)

// fakeDoc 提供固定尺寸页面（200x100pt 按倍率缩放）。
type fakeDoc struct {
	pages int
}

func (d fakeDoc) PageCount() int { return d.pages }

func (d fakeDoc) PageSize(index int, zoom float64) (float64, float64, error) {
	if index < 0 || index >= d.pages {
		return 0, 0, errors.New("页索引越界")
	}
	return 200 * zoom, 100 * zoom, nil
}

func newTestViewer(t *testing.T, pages int) *Viewer {
	t.Helper()
	v, err := New(fakeDoc{pages: pages}, 800)
	if err != nil {
		t.Fatalf("创建查看器失败: %v", err)
	}
	return v
}

func TestNewViewerDefaults(t *testing.T) {
	v := newTestViewer(t, 5)
	if v.Zoom() != 1.0 {
		t.Fatalf("初始缩放应为 1.0: got=%g", v.Zoom())
	}
	if v.Mode() != layout.SingleColumn {
		t.Fatalf("初始模式应为单栏: got=%v", v.Mode())
	}
	if v.Scroll() != 0 {
		t.Fatalf("初始滚动应在顶部: got=%g", v.Scroll())
	}
	if got := len(v.Layout().Placements); got != 5 {
		t.Fatalf("布局应包含 5 个落点: got=%d", got)
	}
}

func TestZoomStepsRelayout(t *testing.T) {
	v := newTestViewer(t, 3)
	h0 := v.Layout().TotalHeight

	if err := v.ZoomIn(); err != nil {
		t.Fatalf("放大失败: %v", err)
	}
	if math.Abs(v.Zoom()-1.2) > 1e-9 {
		t.Fatalf("放大一档应为 1.2: got=%g", v.Zoom())
	}
	if v.Layout().TotalHeight <= h0 {
		t.Fatalf("放大后总高度应增加: %g -> %g", h0, v.Layout().TotalHeight)
	}

	if err := v.SetZoom(99); err != nil {
		t.Fatalf("设置缩放失败: %v", err)
	}
	if v.Zoom() != layout.ZoomMax {
		t.Fatalf("超限缩放应夹紧到上限: got=%g", v.Zoom())
	}
}

func TestModeCouplingThroughViewer(t *testing.T) {
	v := newTestViewer(t, 6)

	if err := v.SetFacing(true); err != nil {
		t.Fatalf("开启封面右置失败: %v", err)
	}
	if v.Mode() != layout.TwoUpFacingCoverRight {
		t.Fatalf("封面右置应强制双页: got=%v", v.Mode())
	}

	if err := v.ToggleTwoUp(); err != nil {
		t.Fatalf("切换双页失败: %v", err)
	}
	if v.Mode() != layout.SingleColumn {
		t.Fatalf("关闭双页应回到单栏并清除封面右置: got=%v", v.Mode())
	}
}

func TestJumpAndCurrentPage(t *testing.T) {
	v := newTestViewer(t, 10)

	if err := v.JumpToPage("7"); err != nil {
		t.Fatalf("跳页失败: %v", err)
	}
	if got := v.CurrentPage(); got != 6 {
		t.Fatalf("跳到第 7 页后当前页应为下标 6: got=%d", got)
	}

	err := v.JumpToPage("999")
	if !errors.Is(err, nav.ErrInvalidPage) {
		t.Fatalf("越界页码应返回 ErrInvalidPage: %v", err)
	}
	if got := v.CurrentPage(); got != 6 {
		t.Fatalf("非法跳转不应移动滚动位置: got=%d", got)
	}
}

func TestRelayoutKeepsCurrentPage(t *testing.T) {
	v := newTestViewer(t, 10)
	if err := v.JumpToPage("5"); err != nil {
		t.Fatalf("跳页失败: %v", err)
	}

	if err := v.ZoomIn(); err != nil {
		t.Fatalf("放大失败: %v", err)
	}
	if got := v.CurrentPage(); got != 4 {
		t.Fatalf("缩放后当前页应保持下标 4: got=%d", got)
	}

	if err := v.ToggleTwoUp(); err != nil {
		t.Fatalf("切换双页失败: %v", err)
	}
	if got := v.CurrentPage(); got != 4 {
		t.Fatalf("切换模式后当前页应保持下标 4: got=%d", got)
	}
}

func TestPageStepThroughViewer(t *testing.T) {
	v := newTestViewer(t, 6)

	v.PageStep(+1)
	if got := v.CurrentPage(); got != 1 {
		t.Fatalf("单页翻页应到下标 1: got=%d", got)
	}

	if err := v.ToggleTwoUp(); err != nil {
		t.Fatalf("切换双页失败: %v", err)
	}
	before := v.CurrentPage()
	v.PageStep(+1)
	if got := v.CurrentPage(); got != before+2 {
		t.Fatalf("双页翻页应前进两页: %d -> %d", before, got)
	}

	v.Home()
	if v.Scroll() != 0 {
		t.Fatalf("Home 应回到顶部: got=%g", v.Scroll())
	}
	v.End()
	if v.Scroll() != 1 {
		t.Fatalf("End 应到达底部: got=%g", v.Scroll())
	}
}

func TestSetScrollClamps(t *testing.T) {
	v := newTestViewer(t, 2)
	v.SetScroll(-0.5)
	if v.Scroll() != 0 {
		t.Fatalf("负滚动应夹紧到 0: got=%g", v.Scroll())
	}
	v.SetScroll(1.5)
	if v.Scroll() != 1 {
		t.Fatalf("超界滚动应夹紧到 1: got=%g", v.Scroll())
	}
}
