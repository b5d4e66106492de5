package confgen

import (
	"fmt"
	"go/token"
	"strconv"
	"strings"

	"golang.org/x/tools/imports"
)

// 渲染默认值。
const (
	DefaultPackage     = "config"
	DefaultTypeName    = "Config"
	DefaultConstructor = "Default"
	DefaultFilename    = "config_gen.go"
)

// RenderOptions 控制生成文件的命名与头部信息。
type RenderOptions struct {
	Package       string // 生成文件的包名
	TypeName      string // 聚合结构体类型名
	Constructor   string // 返回结构体实例的函数名
	SourcePath    string // 头部注释中的配置源路径
	GeneratorPath string // 头部注释中的生成器位置
	Filename      string // 仅用于格式化错误信息
}

func (o RenderOptions) withDefaults() RenderOptions {
	if o.Package == "" {
		o.Package = DefaultPackage
	}
	if o.TypeName == "" {
		o.TypeName = DefaultTypeName
	}
	if o.Constructor == "" {
		o.Constructor = DefaultConstructor
	}
	if o.Filename == "" {
		o.Filename = DefaultFilename
	}

	return o
}

// Reserved 返回生成文件自身声明的名称，配置项的 Go 名称不得与之冲突。
func (o RenderOptions) Reserved() []string {
	o = o.withDefaults()
	return []string{o.TypeName, o.Constructor}
}

func (o RenderOptions) validate() error {
	if !token.IsIdentifier(o.Package) || o.Package == "_" {
		return &Error{Kind: ErrInvalidIdentifier, Err: fmt.Errorf("package name %q", o.Package)}
	}
	for _, name := range o.Reserved() {
		if !isExportedIdentifier(name) {
			return &Error{Kind: ErrInvalidIdentifier, Err: fmt.Errorf("declaration name %q must be an exported Go identifier", name)}
		}
	}
	if o.TypeName == o.Constructor {
		return &Error{Kind: ErrReservedIdentifier, Err: fmt.Errorf("type and constructor are both named %s", o.TypeName)}
	}

	return nil
}

var commentReplacer = strings.NewReplacer("\r", " ", "\n", " ")

// Render 生成 Go 源码，依次包含：
//  1. 头部注释：配置源路径、生成器位置、"DO NOT EDIT" 标记
//  2. 结构体类型，每个条目一个导出的 string 字段，json tag 为 snake_case 标识符
//  3. 构造函数，返回所有字段由常量填充的结构体值
//  4. const 块，每个条目一个导出常量
//
// 输出只依赖输入内容与顺序，不含时间戳；同样的输入得到逐字节相同的输出。
func Render(set *ConfigSet, opts RenderOptions) ([]byte, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}

	source := commentReplacer.Replace(opts.SourcePath)
	generator := commentReplacer.Replace(opts.GeneratorPath)
	if generator == "" {
		generator = "confgen"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "// Code generated by confgen from %s; DO NOT EDIT.\n", source)
	fmt.Fprintf(&b, "// Generated by %s.\n\n", generator)
	fmt.Fprintf(&b, "package %s\n\n", opts.Package)

	fmt.Fprintf(&b, "// %s holds the values of %s.\n", opts.TypeName, source)
	if set.Len() == 0 {
		fmt.Fprintf(&b, "type %s struct{}\n\n", opts.TypeName)
	} else {
		fmt.Fprintf(&b, "type %s struct {\n", opts.TypeName)
		for _, e := range set.entries {
			fmt.Fprintf(&b, "\t%s string `json:%s`\n", e.GoName, strconv.Quote(e.Identifier))
		}
		b.WriteString("}\n\n")
	}

	fmt.Fprintf(&b, "// %s returns the %s built from the constants below.\n", opts.Constructor, opts.TypeName)
	fmt.Fprintf(&b, "func %s() %s {\n", opts.Constructor, opts.TypeName)
	if set.Len() == 0 {
		fmt.Fprintf(&b, "\treturn %s{}\n}\n", opts.TypeName)
	} else {
		fmt.Fprintf(&b, "\treturn %s{\n", opts.TypeName)
		for _, e := range set.entries {
			fmt.Fprintf(&b, "\t\t%s: %s,\n", e.GoName, e.GoName)
		}
		b.WriteString("\t}\n}\n")
	}

	if set.Len() > 0 {
		fmt.Fprintf(&b, "\n// Values of %s, one constant per key.\n", source)
		b.WriteString("const (\n")
		for _, e := range set.entries {
			fmt.Fprintf(&b, "\t%s = %s\n", e.GoName, strconv.Quote(e.Value))
		}
		b.WriteString(")\n")
	}

	out, err := imports.Process(opts.Filename, []byte(b.String()), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("format generated source: %w", err)
	}

	return out, nil
}
