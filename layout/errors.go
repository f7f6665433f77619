package layout

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyBegun is returned when BeginDocument is called more than once.
	ErrAlreadyBegun = errors.New("layout: 标题页已经生成")
	// ErrFinished is returned for any placement after Finish.
	ErrFinished = errors.New("layout: 文档已经结束")
)

// ConfigurationError 表示页面配置不可用（例如可用区域非正），在处理任何章节之前返回。
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("layout: 配置 %s 无效: %s", e.Field, e.Reason)
}
