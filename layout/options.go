package layout

import "log/slog"

// BuildOptions 配置布局阶段所需的依赖，例如排版后端与并发度。
type BuildOptions struct {
	Config     Config
	Typesetter Typesetter
	// Workers 限制并行折行的章节数，<=0 时使用 runtime.NumCPU()。
	Workers int
	Logger  *slog.Logger
}

// EngineOptions 配置单个分页引擎实例。
type EngineOptions struct {
	// Wrapper 为空时按字符容量折行。
	Wrapper LineWrapper
	Logger  *slog.Logger
}

// Typesetter 根据可用宽度与字号提供折行器，例如基于真实字形宽度的实现。
type Typesetter interface {
	LineWrapper(usableWidth, fontSize float64) (LineWrapper, error)
}

func (o EngineOptions) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}
