// Package nav 将离散的翻页动作换算为滚动比例。
// 它只读布局结果，自身不持有滚动状态；滚动位置由展示层保存。
package nav

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ByLCY/folio/layout"
)

// 位置索引不可信时的线性估算行高（像素）。
const fallbackRowHeight = 300.0

var (
	// ErrInvalidPage 表示页码超出 [1, pageCount]。
	ErrInvalidPage = errors.New("页码超出范围")
	// ErrInvalidInput 表示跳转输入不是合法页码。
	ErrInvalidInput = errors.New("页码格式不正确")
)

// Controller 基于布局结果回答“跳到第 N 页滚动到哪”这类问题。
// pageCount 以文档为准；当布局结果的位置索引与之不符（过期索引）时，
// 所有计算静默退化为线性估算，保证滚动始终可用。
type Controller struct {
	res       *layout.Result
	pageCount int
}

// New 创建导航控制器。res 可以为 nil（尚未布局），此时全部走线性估算。
func New(res *layout.Result, pageCount int) *Controller {
	if pageCount < 0 {
		pageCount = 0
	}
	return &Controller{res: res, pageCount: pageCount}
}

// indexUsable 报告位置索引是否可用于精确跳转。
func (c *Controller) indexUsable() bool {
	return c.res != nil && len(c.res.Positions) == c.pageCount && c.pageCount > 0
}

// offsetOf 返回第 index 页的页首偏移与总高度，索引过期时按线性估算。
func (c *Controller) offsetOf(index int) (offset, total float64) {
	if c.indexUsable() {
		return c.res.Positions[index], c.res.TotalHeight
	}
	return float64(index) * fallbackRowHeight, float64(c.pageCount) * fallbackRowHeight
}

// JumpToPage 解析 1 基页码输入并返回目标滚动比例。
// 非数字输入返回 ErrInvalidInput，越界返回 ErrInvalidPage；
// 两者都只是拒绝本次动作，调用方照常保持当前滚动位置。
func (c *Controller) JumpToPage(input string) (float64, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidInput, input)
	}
	if n < 1 || n > c.pageCount {
		return 0, fmt.Errorf("%w: 请输入 1 到 %d 之间的页码", ErrInvalidPage, c.pageCount)
	}
	offset, total := c.offsetOf(n - 1)
	if total <= 0 {
		return 0, nil
	}
	return offset / total, nil
}

// PageAt 返回纵向偏移 offset 处最顶端可见页的下标：
// 最大的 i 使得 Positions[i] <= offset+1。索引过期时线性估算。
func (c *Controller) PageAt(offset float64) int {
	if c.pageCount == 0 {
		return 0
	}
	if !c.indexUsable() {
		idx := int(offset / fallbackRowHeight)
		return clamp(idx, 0, c.pageCount-1)
	}
	pos := c.res.Positions
	// sort.Search 找到第一个 > offset+1 的位置，其前一项即顶端可见页。
	i := sort.Search(len(pos), func(i int) bool { return pos[i] > offset+1 })
	i = clamp(i-1, 0, len(pos)-1)
	// 双页模式下同一行的两页偏移相同，取行内最左边的页。
	for i > 0 && pos[i-1] == pos[i] {
		i--
	}
	return i
}

// PageStep 从当前滚动比例出发向前或向后翻页，返回新的滚动比例。
// direction 为 ±1；双页模式一次翻一个对页（两页）。目标越界时原地不动，
// 按住翻页键顶到文档边界不应弹出任何错误。
func (c *Controller) PageStep(fraction float64, direction int, twoUp bool) float64 {
	if c.pageCount == 0 {
		return fraction
	}
	_, total := c.offsetOf(0)
	cur := c.PageAt(fraction * total)

	step := 1
	if twoUp {
		step = 2
	}
	target := clamp(cur+direction*step, 0, c.pageCount-1)
	if target == cur {
		return fraction
	}
	offset, totalH := c.offsetOf(target)
	if totalH <= 0 {
		return fraction
	}
	return offset / totalH
}

// Home 返回文档顶部的滚动比例。
func (c *Controller) Home() float64 { return 0.0 }

// End 返回文档底部的滚动比例。
func (c *Controller) End() float64 { return 1.0 }

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
