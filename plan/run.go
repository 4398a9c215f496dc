package plan

import "fmt"

// MergeFunc 执行一次合并：输入文件列表与输出路径均已完成插值。
type MergeFunc func(files []string, out string) error

// Run 依次执行 plan 内的全部任务。data 用于 ${…} 插值，可以为 nil。
// 任一任务失败即中止并返回该任务的错误。
func Run(p *Plan, data any, mergeFn MergeFunc) error {
	if mergeFn == nil {
		return fmt.Errorf("缺少合并实现")
	}
	if err := p.Validate(); err != nil {
		return err
	}
	for i, job := range p.Jobs {
		files := job.Files()
		for j, f := range files {
			files[j] = Interpolate(f, data)
		}
		out := Interpolate(job.OutputPath(), data)
		if err := mergeFn(files, out); err != nil {
			return fmt.Errorf("plan %q 第 %d 个任务失败: %w", string(p.Name), i+1, err)
		}
	}
	return nil
}
