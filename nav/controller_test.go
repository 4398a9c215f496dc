package nav

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/ByLCY/folio/layout"
)

// fixedResult 构造一个 5 页、每页高 100 的单列布局结果（偏移 10,130,…,490）。
func fixedResult(t *testing.T, pageCount int) *layout.Result {
	t.Helper()
	res, err := layout.Build(
		layout.Request{PageCount: pageCount, Zoom: 1.0, Mode: layout.SingleColumn},
		layout.BuildOptions{Metrics: constMetrics{}},
	)
	if err != nil {
		t.Fatalf("布局计算失败: %v", err)
	}
	return res
}

type constMetrics struct{}

func (constMetrics) PageSize(index int, zoom float64) (float64, float64, error) {
	return 200 * zoom, 100 * zoom, nil
}

// TestJumpToPage 验证合法跳转返回的比例对应页首偏移。
func TestJumpToPage(t *testing.T) {
	res := fixedResult(t, 5)
	c := New(res, 5)

	frac, err := c.JumpToPage("3")
	if err != nil {
		t.Fatalf("跳转失败: %v", err)
	}
	if got := frac * res.TotalHeight; got != res.Positions[2] {
		t.Fatalf("跳转比例错误: got=%g want=%g", got, res.Positions[2])
	}
}

// TestJumpToPageOutOfRange 验证越界页码返回 ErrInvalidPage。
func TestJumpToPageOutOfRange(t *testing.T) {
	c := New(fixedResult(t, 5), 5)
	for _, input := range []string{"0", "6", "-3", "100"} {
		if _, err := c.JumpToPage(input); !errors.Is(err, ErrInvalidPage) {
			t.Fatalf("输入 %q 应返回 ErrInvalidPage: %v", input, err)
		}
	}
}

// TestJumpToPageBadInput 验证非数字输入返回 ErrInvalidInput。
func TestJumpToPageBadInput(t *testing.T) {
	c := New(fixedResult(t, 5), 5)
	for _, input := range []string{"", "abc", "1.5", "3x"} {
		if _, err := c.JumpToPage(input); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("输入 %q 应返回 ErrInvalidInput: %v", input, err)
		}
	}
}

// TestJumpRoundTrip 验证往返性质：由返回比例反推的偏移能在一个行距容差内
// 找回原页的页首偏移。
func TestJumpRoundTrip(t *testing.T) {
	res := fixedResult(t, 5)
	c := New(res, 5)
	for n := 1; n <= 5; n++ {
		frac, err := c.JumpToPage(strconv.Itoa(n))
		if err != nil {
			t.Fatalf("跳转第 %d 页失败: %v", n, err)
		}
		back := math.Round(frac * res.TotalHeight)
		if diff := math.Abs(back - res.Positions[n-1]); diff > layout.Gap() {
			t.Fatalf("第 %d 页往返偏差过大: %g", n, diff)
		}
		if got := c.PageAt(back); got != n-1 {
			t.Fatalf("PageAt 反查错误: got=%d want=%d", got, n-1)
		}
	}
}

// TestStaleIndexFallback 验证位置索引长度不符时静默走线性估算。
func TestStaleIndexFallback(t *testing.T) {
	stale := fixedResult(t, 3) // 只有 3 项位置索引
	c := New(stale, 5)         // 文档实际 5 页

	frac, err := c.JumpToPage("4")
	if err != nil {
		t.Fatalf("过期索引下跳转不应报错: %v", err)
	}
	// 线性估算：3*300 / (5*300)
	if want := 3.0 * fallbackRowHeight / (5 * fallbackRowHeight); frac != want {
		t.Fatalf("线性估算比例错误: got=%g want=%g", frac, want)
	}

	// nil 布局结果同样走估算。
	c = New(nil, 4)
	if got := c.PageAt(650); got != 2 {
		t.Fatalf("估算 PageAt 错误: got=%d want=2", got)
	}
}

// TestPageStepBounds 验证翻页在文档边界处原地不动。
func TestPageStepBounds(t *testing.T) {
	res := fixedResult(t, 5)
	c := New(res, 5)

	top := 0.0
	if got := c.PageStep(top, -1, false); got != top {
		t.Fatalf("首页向前翻页应原地不动: got=%g", got)
	}

	last := res.Positions[4] / res.TotalHeight
	if got := c.PageStep(last, +1, false); got != last {
		t.Fatalf("末页向后翻页应原地不动: got=%g", got)
	}
}

// TestPageStepSpread 验证双页模式一次翻两页，单页模式翻一页。
func TestPageStepSpread(t *testing.T) {
	res := fixedResult(t, 5)
	c := New(res, 5)

	frac := c.PageStep(0, +1, false)
	if got := c.PageAt(frac * res.TotalHeight); got != 1 {
		t.Fatalf("单页翻页应到第 1 页: got=%d", got)
	}

	frac = c.PageStep(0, +1, true)
	if got := c.PageAt(frac * res.TotalHeight); got != 2 {
		t.Fatalf("双页翻页应到第 2 页: got=%d", got)
	}

	// 双页模式在倒数第二页向后翻，夹紧到末页而不是越界。
	start := res.Positions[3] / res.TotalHeight
	frac = c.PageStep(start, +1, true)
	if got := c.PageAt(frac * res.TotalHeight); got != 4 {
		t.Fatalf("翻页应夹紧到末页: got=%d", got)
	}
}

// TestHomeEnd 验证固定比例。
func TestHomeEnd(t *testing.T) {
	c := New(nil, 0)
	if c.Home() != 0.0 || c.End() != 1.0 {
		t.Fatalf("Home/End 比例错误: %g %g", c.Home(), c.End())
	}
}
