package document

import (
	"fmt"
	"strings"
)

// TextSource 是全文提取需要的最小文档能力，便于测试替身。
type TextSource interface {
	PageCount() int
	PageText(index int) (string, error)
}

// ExtractAll 提取全部页面文本，页与页之间插入 "--- Page N ---" 分隔行。
// 整篇没有可见文本时返回空串。
func ExtractAll(src TextSource) (string, error) {
	var b strings.Builder
	for i := 0; i < src.PageCount(); i++ {
		text, err := src.PageText(i)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "\n--- Page %d ---\n%s", i+1, text)
	}
	all := b.String()
	if strings.TrimSpace(stripHeaders(all)) == "" {
		return "", nil
	}
	return all, nil
}

// stripHeaders 去掉分隔行，用于判断文档是否真的没有文本。
func stripHeaders(s string) string {
	var b strings.Builder
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(line, "--- Page ") && strings.HasSuffix(line, " ---") {
			continue
		}
		b.WriteString(line)
	}
	return b.String()
}

// Stats 统计提取文本的字符数与词数。
func Stats(s string) (chars, words int) {
	return len(s), len(strings.Fields(s))
}
