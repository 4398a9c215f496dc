package document

import (
	"strings"
	"testing"
)

// stubSource 是只含固定文本的 TextSource 测试替身。
type stubSource struct {
	pages []string
}

func (s *stubSource) PageCount() int { return len(s.pages) }

func (s *stubSource) PageText(index int) (string, error) {
	return s.pages[index], nil
}

// TestExtractAllHeaders 验证每页之前插入分隔行且顺序正确。
func TestExtractAllHeaders(t *testing.T) {
	src := &stubSource{pages: []string{"first", "second", "third"}}
	all, err := ExtractAll(src)
	if err != nil {
		t.Fatalf("提取失败: %v", err)
	}
	want := "\n--- Page 1 ---\nfirst\n--- Page 2 ---\nsecond\n--- Page 3 ---\nthird"
	if all != want {
		t.Fatalf("提取结果错误:\ngot=%q\nwant=%q", all, want)
	}
}

// TestExtractAllEmpty 验证全篇无文本时返回空串而不是一串分隔行。
func TestExtractAllEmpty(t *testing.T) {
	src := &stubSource{pages: []string{"", "  \n", ""}}
	all, err := ExtractAll(src)
	if err != nil {
		t.Fatalf("提取失败: %v", err)
	}
	if all != "" {
		t.Fatalf("无文本文档应返回空串: %q", all)
	}
}

// TestStats 验证字符与词数统计。
func TestStats(t *testing.T) {
	chars, words := Stats("hello layout engine\nsecond line")
	if chars != len("hello layout engine\nsecond line") {
		t.Fatalf("字符数错误: %d", chars)
	}
	if words != 5 {
		t.Fatalf("词数错误: got=%d want=5", words)
	}
}

// TestStripHeaders 验证分隔行被正确剔除。
func TestStripHeaders(t *testing.T) {
	s := "\n--- Page 1 ---\nbody\n--- Page 2 ---\n"
	if got := strings.TrimSpace(stripHeaders(s)); got != "body" {
		t.Fatalf("剔除分隔行失败: %q", got)
	}
}
