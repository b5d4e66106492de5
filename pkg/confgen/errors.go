package confgen

import (
	"errors"
	"fmt"
	"strings"
)

// 错误分类。每个失败都会以 [*Error] 返回，Kind 为以下哨兵之一，
// 调用方通过 errors.Is 判断类别。
var (
	// ErrSourceUnavailable 配置源文件无法打开或读取。
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrMalformedDocument 配置源内容无法按其格式解析。
	ErrMalformedDocument = errors.New("malformed document")
	// ErrUnexpectedShape 根节点不是 mapping，或 key 不是字符串。
	ErrUnexpectedShape = errors.New("unexpected shape")
	// ErrUnsupportedValueType 某个值不是标量字符串。
	ErrUnsupportedValueType = errors.New("unsupported value type")
	// ErrDuplicateIdentifier 两个不同的 key 归一化后得到相同的标识符。
	ErrDuplicateIdentifier = errors.New("duplicate identifier")
	// ErrInvalidIdentifier key 归一化后无法成为合法的 Go 导出标识符。
	ErrInvalidIdentifier = errors.New("invalid identifier")
	// ErrReservedIdentifier 标识符与生成文件自身声明的名称冲突。
	ErrReservedIdentifier = errors.New("reserved identifier")
	// ErrWriteFailure 生成文件无法写入。
	ErrWriteFailure = errors.New("write failure")
	// ErrMissingEnvironment 宿主构建环境未提供输出目录。
	ErrMissingEnvironment = errors.New("missing environment")
)

// Error 描述一次生成失败，携带出错的文件、key 与行号。
type Error struct {
	Kind error  // 错误类别 (Err* 哨兵)
	Path string // 相关文件路径
	Key  string // 出错的配置 key，可为空
	Line int    // 1 起始的行号，未知时为 0
	Err  error  // 底层错误，可为空
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Path != "" {
		b.WriteString(": ")
		b.WriteString(e.Path)
		if e.Line > 0 {
			fmt.Fprintf(&b, ":%d", e.Line)
		}
	}
	if e.Key != "" {
		fmt.Fprintf(&b, ": key %q", e.Key)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}

	return b.String()
}

// Unwrap 同时暴露类别与底层错误，errors.Is 对两者均成立。
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Err}
}
