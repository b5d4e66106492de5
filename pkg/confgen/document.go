package confgen

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format 配置源的文本格式。
type Format string

// 支持的配置源格式。
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatHCL  Format = "hcl"
	FormatEnv  Format = "env"
)

// ParseFormat 解析格式名称，空字符串表示按扩展名推断。
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "":
		return "", nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	case "hcl":
		return FormatHCL, nil
	case "env", "dotenv":
		return FormatEnv, nil
	default:
		return "", fmt.Errorf("unknown format %q", name)
	}
}

// FormatFromPath 根据扩展名推断格式，无法识别时按 YAML 处理。
func FormatFromPath(path string) Format {
	if format, err := ParseFormat(filepath.Ext(path)); err == nil && format != "" {
		return format
	}

	return FormatYAML
}

// NodeKind 文档节点的种类。
type NodeKind int

// 节点种类。
const (
	KindEmpty NodeKind = iota
	KindMapping
	KindSequence
	KindScalar
)

func (k NodeKind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	case KindScalar:
		return "scalar"
	default:
		return "unknown"
	}
}

// ScalarType 标量节点的解析类型。
type ScalarType int

// 标量类型。
const (
	ScalarString ScalarType = iota
	ScalarInt
	ScalarFloat
	ScalarBool
	ScalarNull
	ScalarOther
)

func (t ScalarType) String() string {
	switch t {
	case ScalarString:
		return "string"
	case ScalarInt:
		return "integer"
	case ScalarFloat:
		return "float"
	case ScalarBool:
		return "boolean"
	case ScalarNull:
		return "null"
	default:
		return "non-literal"
	}
}

// Node 与格式无关的文档节点。
//
// 只有根节点会展开 Fields；嵌套的 mapping/sequence 只记录种类，
// 因为它们在校验阶段一律被拒绝。
type Node struct {
	Kind   NodeKind
	Scalar ScalarType
	Value  string
	Fields []Field
	Line   int
}

// Field mapping 中的一项，保持源文件顺序。
type Field struct {
	Key         string
	KeyIsString bool
	Value       Node
	Line        int
}

// IsString 报告节点是否为标量字符串。
func (n Node) IsString() bool {
	return n.Kind == KindScalar && n.Scalar == ScalarString
}

// describe 返回错误信息中使用的类型描述。
func (n Node) describe() string {
	if n.Kind == KindScalar {
		return n.Scalar.String()
	}

	return n.Kind.String()
}

// Document 解析后的原始配置文档。
type Document struct {
	Path   string
	Format Format
	Root   Node
}
