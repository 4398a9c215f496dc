package layout

// 该文件定义布局请求与布局结果，供布局计算、导航、渲染与调试 JSON 共用。

// Mode 表示连续滚动阅读的页面排布方式。
// TwoUpFacingCoverRight 蕴含双页模式：关闭双页必须同时关闭对开，
// 打开对开必须同时打开双页，因此三种状态用单个枚举表达，非法组合不存在。
type Mode int

const (
	// SingleColumn 单列：每行一页，页面在视口内水平居中。
	SingleColumn Mode = iota
	// TwoUp 双页：每行左右各一页。
	TwoUp
	// TwoUpFacingCoverRight 书籍对开：首页单独靠右（封面在右侧），
	// 之后从第 1 页起重新按 (1,2) (3,4) … 配对。
	TwoUpFacingCoverRight
)

// IsTwoUp 报告该模式是否按双页排布（对开模式也是双页）。
func (m Mode) IsTwoUp() bool { return m == TwoUp || m == TwoUpFacingCoverRight }

// IsFacing 报告该模式是否为书籍对开。
func (m Mode) IsFacing() bool { return m == TwoUpFacingCoverRight }

// WithTwoUp 返回切换双页开关后的模式。关闭双页会一并退出对开。
func (m Mode) WithTwoUp(on bool) Mode {
	if !on {
		return SingleColumn
	}
	if m == TwoUpFacingCoverRight {
		return m
	}
	return TwoUp
}

// WithFacing 返回切换对开开关后的模式。打开对开会强制进入双页。
func (m Mode) WithFacing(on bool) Mode {
	if on {
		return TwoUpFacingCoverRight
	}
	if m.IsTwoUp() {
		return TwoUp
	}
	return SingleColumn
}

func (m Mode) String() string {
	switch m {
	case SingleColumn:
		return "single"
	case TwoUp:
		return "two-up"
	case TwoUpFacingCoverRight:
		return "facing"
	default:
		return "unknown"
	}
}

// ParseMode 解析命令行用的模式名。
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "single", "single-column", "":
		return SingleColumn, true
	case "two-up", "twoup", "2up":
		return TwoUp, true
	case "facing", "facing-cover-right", "book":
		return TwoUpFacingCoverRight, true
	default:
		return SingleColumn, false
	}
}

// Request 描述一次布局计算的全部输入。每次缩放/换模式/换文档都构造新的
// Request 并得到全新的 Result，布局过程不持有可变共享状态。
type Request struct {
	PageCount     int     `json:"pageCount"`
	Zoom          float64 `json:"zoom"`
	Mode          Mode    `json:"mode"`
	ViewportWidth float64 `json:"viewportWidth"` // <=1 时视为未测量，按默认宽度处理
}

// Placement 记录一页在连续画布上的落点与尺寸（单位：像素）。
type Placement struct {
	PageIndex int     `json:"pageIndex"`
	Top       float64 `json:"top"`
	Left      float64 `json:"left"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
}

// Result 保存一次布局的全部输出。
// Positions 与页索引按下标对齐；消费方在做精确跳转前必须检查
// len(Positions) 是否等于文档页数，不相等时按线性估算回退。
type Result struct {
	Request     Request     `json:"request"`
	Placements  []Placement `json:"placements"`
	Positions   []float64   `json:"positions"`
	TotalWidth  float64     `json:"totalWidth"`
	TotalHeight float64     `json:"totalHeight"`
}
