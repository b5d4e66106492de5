package confgen

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
)

// decodeFunc 将原始内容解析为根节点。
//
// 返回的 [*Error] 会被补全路径后原样传出，其余错误归为 ErrMalformedDocument。
type decodeFunc func(path string, content []byte) (Node, error)

var decoders = map[Format]decodeFunc{
	FormatYAML: decodeYAML,
	FormatJSON: decodeJSON,
	FormatTOML: decodeTOML,
	FormatHCL:  decodeHCL,
	FormatEnv:  decodeEnv,
}

// Load 读取并解析配置源文件。
//
// format 为空时按扩展名推断（见 [FormatFromPath]）。
// 文件无法读取返回 ErrSourceUnavailable，内容无法解析返回 ErrMalformedDocument。
func Load(path string, format Format) (*Document, error) {
	content, err := os.ReadFile(path) //nolint:gosec // path is supplied by the build
	if err != nil {
		return nil, &Error{Kind: ErrSourceUnavailable, Path: path, Err: err}
	}

	return Parse(path, format, content)
}

// Parse 解析内存中的配置内容，path 仅用于格式推断与错误信息。
func Parse(path string, format Format, content []byte) (*Document, error) {
	if format == "" {
		format = FormatFromPath(path)
	}
	decode, ok := decoders[format]
	if !ok {
		return nil, &Error{Kind: ErrMalformedDocument, Path: path, Err: fmt.Errorf("unknown format %q", format)}
	}

	root, err := decode(path, content)
	if err != nil {
		var genErr *Error
		if errors.As(err, &genErr) {
			genErr.Path = path
			return nil, genErr
		}

		return nil, &Error{Kind: ErrMalformedDocument, Path: path, Err: err}
	}

	slog.Debug("Parsed config source", "path", path, "format", format, "kind", root.Kind, "fields", len(root.Fields))

	return &Document{Path: path, Format: format, Root: root}, nil
}
