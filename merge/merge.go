// Package merge 维护待合并文件列表并调用 pdfcpu 完成合并。
package merge

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/ByLCY/folio/document"
)

// MinInputs 是一次合并要求的最少输入文件数。
const MinInputs = 2

// List 是有序的待合并文件列表。
type List struct {
	files    []string
	validate func(path string) error
}

// NewList 创建空列表。加入的每个文件都会先经过 document.Validate 校验。
func NewList() *List {
	return &List{validate: document.Validate}
}

// Files 返回当前文件列表的副本。
func (l *List) Files() []string {
	out := make([]string, len(l.files))
	copy(out, l.files)
	return out
}

// Len 返回列表长度。
func (l *List) Len() int { return len(l.files) }

// Add 校验并追加一个文件。重复路径允许（同一文件可以合并多次）。
func (l *List) Add(path string) error {
	if l.validate != nil {
		if err := l.validate(path); err != nil {
			return fmt.Errorf("文件校验失败: %w", err)
		}
	}
	l.files = append(l.files, path)
	return nil
}

// Remove 删除下标处的文件。越界时不做任何事。
func (l *List) Remove(index int) {
	if index < 0 || index >= len(l.files) {
		return
	}
	l.files = append(l.files[:index], l.files[index+1:]...)
}

// MoveUp 将下标处的文件上移一位。已在首位或越界时不动。
func (l *List) MoveUp(index int) {
	if index <= 0 || index >= len(l.files) {
		return
	}
	l.files[index-1], l.files[index] = l.files[index], l.files[index-1]
}

// MoveDown 将下标处的文件下移一位。已在末位或越界时不动。
func (l *List) MoveDown(index int) {
	if index < 0 || index >= len(l.files)-1 {
		return
	}
	l.files[index], l.files[index+1] = l.files[index+1], l.files[index]
}

// Clear 清空列表。
func (l *List) Clear() { l.files = nil }

// Merge 将列表内容按顺序合并到 out。
func (l *List) Merge(out string) error {
	return Merge(l.files, out)
}

// Merge 按顺序把 files 合并为一个 PDF。少于 MinInputs 个文件时报错。
func Merge(files []string, out string) error {
	if len(files) < MinInputs {
		return fmt.Errorf("至少需要 %d 个文件才能合并，当前 %d 个", MinInputs, len(files))
	}
	if out == "" {
		return fmt.Errorf("缺少输出路径")
	}
	if err := api.MergeCreateFile(files, out, false, nil); err != nil {
		return fmt.Errorf("合并 PDF 失败: %w", err)
	}
	return nil
}

// PageCount 返回 path 的页数（pdfcpu 读取）。
func PageCount(path string) (int, error) {
	ctx, err := api.ReadContextFile(path)
	if err != nil {
		return 0, fmt.Errorf("读取 PDF 失败: %w", err)
	}
	return ctx.PageCount, nil
}
