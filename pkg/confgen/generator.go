package confgen

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/lwmacct/251218-go-pkg-confgen/pkg/templexp"
)

// Options 一次生成所需的全部输入。
type Options struct {
	ConfigPath    string    // 配置源文件
	Format        Format    // 为空时按扩展名推断
	OutDir        string    // 宿主构建系统提供的输出目录
	Filename      string    // 输出文件名，默认 DefaultFilename
	GeneratorPath string    // 生成器源文件，写入头部并作为重建触发依赖
	GeneratorName string    // GeneratorPath 为空时写入头部的名称，不参与重建触发
	Package       string    // 生成文件的包名
	TypeName      string    // 聚合结构体类型名
	Constructor   string    // 构造函数名
	Depfile       string    // 非空时额外写出 Make 风格依赖文件
	TriggerPrefix string    // 触发声明行前缀
	Triggers      io.Writer // 触发声明输出目标，默认 os.Stdout
	ExpandEnv     bool      // 对值执行 ${VAR} 展开（输出将依赖环境）
	Environ       []string  // ExpandEnv 使用的环境快照，默认 os.Environ()
}

// Result 一次成功生成的结果。
type Result struct {
	OutputPath string
	Entries    int
	Bytes      int
}

// Generator 配置常量生成器，单次、同步、无跨调用状态。
type Generator struct {
	opts Options
}

// New 创建生成器。
func New(opts Options) *Generator {
	if opts.Filename == "" {
		opts.Filename = DefaultFilename
	}
	if opts.Triggers == nil {
		opts.Triggers = os.Stdout
	}

	return &Generator{opts: opts}
}

func (g *Generator) renderOptions() RenderOptions {
	generator := g.opts.GeneratorPath
	if generator == "" {
		generator = g.opts.GeneratorName
	}

	return RenderOptions{
		Package:       g.opts.Package,
		TypeName:      g.opts.TypeName,
		Constructor:   g.opts.Constructor,
		SourcePath:    g.opts.ConfigPath,
		GeneratorPath: generator,
		Filename:      g.opts.Filename,
	}.withDefaults()
}

// Prepare 完成读取、校验、归一化与渲染，不写任何文件。
func (g *Generator) Prepare(ctx context.Context) (*ConfigSet, []byte, error) {
	doc, err := Load(g.opts.ConfigPath, g.opts.Format)
	if err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	renderOpts := g.renderOptions()
	set, err := Flatten(doc, renderOpts.Reserved()...)
	if err != nil {
		return nil, nil, err
	}
	slog.Debug("Validated config source", "path", doc.Path, "format", doc.Format, "entries", set.Len())

	if g.opts.ExpandEnv {
		set, err = g.expand(doc.Path, set)
		if err != nil {
			return nil, nil, err
		}
	}

	content, err := Render(set, renderOpts)
	if err != nil {
		return nil, nil, err
	}

	return set, content, nil
}

func (g *Generator) expand(path string, set *ConfigSet) (*ConfigSet, error) {
	environ := g.opts.Environ
	if environ == nil {
		environ = os.Environ()
	}
	expander := templexp.NewExpander(environ)

	return set.mapValues(func(e NormalizedEntry) (string, error) {
		value, err := expander.Expand(e.Value)
		if err != nil {
			return "", &Error{Kind: ErrMalformedDocument, Path: path, Key: e.Key, Line: e.Line, Err: err}
		}

		return value, nil
	})
}

// Run 执行完整流程：读取 → 校验 → 渲染 → 写入 → 声明重建触发。
//
// 任一步骤失败都会立即返回，渲染在内存中完成后才写文件，
// 因此失败时不会留下部分输出，也不会覆盖已有文件。
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	if g.opts.OutDir == "" {
		return nil, &Error{Kind: ErrMissingEnvironment, Err: errors.New("output directory is not set (use --out-dir or OUT_DIR)")}
	}

	set, content, err := g.Prepare(ctx)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := Write(g.opts.OutDir, g.opts.Filename, content)
	if err != nil {
		return nil, err
	}
	if g.opts.Depfile != "" {
		if err := WriteDepfile(g.opts.Depfile, path, g.opts.ConfigPath, g.opts.GeneratorPath); err != nil {
			return nil, err
		}
	}
	if err := EmitRebuildTriggers(g.opts.Triggers, g.opts.TriggerPrefix, g.opts.ConfigPath, g.opts.GeneratorPath); err != nil {
		return nil, err
	}

	slog.Info("Generated config constants", "output", path, "entries", set.Len(), "bytes", len(content))

	return &Result{OutputPath: path, Entries: set.Len(), Bytes: len(content)}, nil
}
