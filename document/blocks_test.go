package document

import (
	"testing"

	"github.com/ledongthuc/pdf"
)

// frag 构造一个聚类输入片段（PDF 坐标，y 为基线）。
func frag(x, y, w, size float64) pdf.Text {
	return pdf.Text{S: "x", X: x, Y: y, W: w, FontSize: size}
}

// TestClusterSingleBlock 验证同一段内的多行并成一个块。
func TestClusterSingleBlock(t *testing.T) {
	pageH := 800.0
	texts := []pdf.Text{
		frag(72, 700, 200, 12),
		frag(72, 684, 180, 12), // 行距 16 < 1.6*12
		frag(72, 668, 150, 12),
	}
	blocks := clusterBlocks(texts, pageH)
	if len(blocks) != 1 {
		t.Fatalf("应聚成 1 个块: got=%d", len(blocks))
	}
	b := blocks[0]
	if b.X != 72 {
		t.Fatalf("块左边界错误: %g", b.X)
	}
	if b.W != 200 {
		t.Fatalf("块宽度应取最宽行: %g", b.W)
	}
	// 顶部 = pageH - (700+12)
	if b.Y != pageH-712 {
		t.Fatalf("块顶部错误: %g", b.Y)
	}
}

// TestClusterSeparateBlocks 验证行距过大的段落被拆成多个块。
func TestClusterSeparateBlocks(t *testing.T) {
	texts := []pdf.Text{
		frag(72, 700, 200, 12),
		frag(72, 600, 200, 12), // 与上一行相距 100，远超段内行距
	}
	blocks := clusterBlocks(texts, 800)
	if len(blocks) != 2 {
		t.Fatalf("应聚成 2 个块: got=%d", len(blocks))
	}
	if blocks[0].Y >= blocks[1].Y {
		t.Fatalf("块应按自上而下排序: %g %g", blocks[0].Y, blocks[1].Y)
	}
}

// TestClusterSameLineFragments 验证同一基线上的片段并成一行。
func TestClusterSameLineFragments(t *testing.T) {
	texts := []pdf.Text{
		frag(72, 700, 50, 12),
		frag(130, 700, 60, 12),
		frag(200, 701, 40, 12), // 基线误差在半个字号内
	}
	blocks := clusterBlocks(texts, 800)
	if len(blocks) != 1 {
		t.Fatalf("同行片段应聚成 1 个块: got=%d", len(blocks))
	}
	if b := blocks[0]; b.X != 72 || b.X+b.W != 240 {
		t.Fatalf("行包围盒错误: x=%g w=%g", b.X, b.W)
	}
}

// TestClusterEmpty 验证空页返回空切片。
func TestClusterEmpty(t *testing.T) {
	if blocks := clusterBlocks(nil, 800); len(blocks) != 0 {
		t.Fatalf("空页不应有块: %d", len(blocks))
	}
	if blocks := clusterBlocks([]pdf.Text{{S: "", X: 1, Y: 1}}, 800); len(blocks) != 0 {
		t.Fatalf("空字符串片段不应成块: %d", len(blocks))
	}
}
