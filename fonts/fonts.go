// Package fonts 提供内置字体字节数据，供预览标注与编辑器覆盖文本使用。
package fonts

import (
	"fmt"

	"github.com/go-fonts/liberation/liberationsansbold"
	"github.com/go-fonts/liberation/liberationsansregular"
)

// 内置字体名。Load 同时接受 "builtin:" 前缀形式。
const (
	SansRegular = "LiberationSans-Regular"
	SansBold    = "LiberationSans-Bold"
)

var builtin = map[string][]byte{
	SansRegular: liberationsansregular.TTF,
	SansBold:    liberationsansbold.TTF,
}

// Load 返回内置字体的字节数据，name 可写为 "builtin:LiberationSans-Regular"
// 或直接 "LiberationSans-Regular"。
func Load(name string) ([]byte, error) {
	key := name
	if len(key) > len("builtin:") && key[:len("builtin:")] == "builtin:" {
		key = key[len("builtin:"):]
	}
	data, ok := builtin[key]
	if !ok {
		return nil, fmt.Errorf("找不到内置字体 %s", name)
	}
	return data, nil
}
