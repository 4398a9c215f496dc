// Package plan parses batch merge plans: small script files listing which
// PDFs to merge into which outputs, with ${path} placeholders bound to
// caller-supplied data at run time.
package plan

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	planLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	planParser = participle.MustBuild[Plan](
		participle.Lexer(planLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
	)
)

// Plan is the root AST node for a plan file.
type Plan struct {
	Pos  lexer.Position `parser:"" json:"-"`
	Name StringLiteral  `parser:"'plan' @String"`
	Jobs []*MergeJob    `parser:"'{' @@* '}'"`
}

// MergeJob describes one merge: an ordered input list and an output path.
type MergeJob struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Entries []*JobEntry    `parser:"'merge' '{' @@* '}'"`
}

// JobEntry is a single statement inside a merge block.
type JobEntry struct {
	File   *StringLiteral `parser:"  'file' @String"`
	Output *StringLiteral `parser:"| 'output' @String"`
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse reads a plan file from r.
func Parse(r io.Reader) (*Plan, error) {
	plan, err := planParser.Parse("", r)
	if err != nil {
		return nil, fmt.Errorf("解析 plan 失败: %w", err)
	}
	return plan, nil
}

// ParseString parses a plan from an in-memory string.
func ParseString(src string) (*Plan, error) {
	plan, err := planParser.ParseString("", src)
	if err != nil {
		return nil, fmt.Errorf("解析 plan 失败: %w", err)
	}
	return plan, nil
}

// Files returns the job's input files in declaration order.
func (j *MergeJob) Files() []string {
	var files []string
	for _, e := range j.Entries {
		if e.File != nil {
			files = append(files, string(*e.File))
		}
	}
	return files
}

// OutputPath returns the job's output path, or "" when missing.
func (j *MergeJob) OutputPath() string {
	for _, e := range j.Entries {
		if e.Output != nil {
			return string(*e.Output)
		}
	}
	return ""
}

// Validate checks that every job has enough inputs and an output.
func (p *Plan) Validate() error {
	if len(p.Jobs) == 0 {
		return fmt.Errorf("plan %q 不包含任何 merge 任务", string(p.Name))
	}
	for i, job := range p.Jobs {
		if len(job.Files()) < 2 {
			return fmt.Errorf("plan %q 第 %d 个任务至少需要 2 个输入文件", string(p.Name), i+1)
		}
		if job.OutputPath() == "" {
			return fmt.Errorf("plan %q 第 %d 个任务缺少 output", string(p.Name), i+1)
		}
	}
	return nil
}
