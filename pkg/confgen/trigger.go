package confgen

import (
	"fmt"
	"io"
	"strings"
)

// DefaultTriggerPrefix 触发声明行的默认前缀。
const DefaultTriggerPrefix = "confgen:"

// EmitRebuildTriggers 向宿主构建系统声明：以下文件内容变化时需要重新生成。
//
// 每个路径输出一行 "<prefix>rerun-if-changed=<path>"，空路径被跳过。
func EmitRebuildTriggers(w io.Writer, prefix string, paths ...string) error {
	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, "%srerun-if-changed=%s\n", prefix, path); err != nil {
			return fmt.Errorf("emit rebuild trigger: %w", err)
		}
	}

	return nil
}

var makeEscaper = strings.NewReplacer(" ", `\ `, "#", `\#`, "$", "$$")

// Depfile 渲染 Make 风格的依赖文件："<target>: <dep> <dep>"，供 make/ninja 使用。
func Depfile(target string, deps ...string) []byte {
	var b strings.Builder
	b.WriteString(makeEscaper.Replace(target))
	b.WriteString(":")
	for _, dep := range deps {
		if dep == "" {
			continue
		}
		b.WriteString(" ")
		b.WriteString(makeEscaper.Replace(dep))
	}
	b.WriteString("\n")

	return []byte(b.String())
}

// WriteDepfile 原子写入依赖文件，失败返回 ErrWriteFailure。
func WriteDepfile(path, target string, deps ...string) error {
	if err := writeFileAtomic(path, Depfile(target, deps...)); err != nil {
		return &Error{Kind: ErrWriteFailure, Path: path, Err: err}
	}

	return nil
}
