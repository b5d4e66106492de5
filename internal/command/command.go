// Package command 提供 confgen 各子命令共享的设置、flags 与日志初始化。
package command

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251218-go-pkg-confgen/internal/config"
	"github.com/lwmacct/251218-go-pkg-confgen/pkg/cfgm"
	"github.com/lwmacct/251218-go-pkg-confgen/pkg/confgen"
)

const (
	// AppName 应用名称，同时决定设置文件名 (.confgen.yaml)。
	AppName = "confgen"
	// EnvPrefix 设置项的环境变量前缀。
	EnvPrefix = "CONFGEN_"
)

// Defaults 为默认配置的单一来源。
var Defaults = config.DefaultConfig()

// LogLevelFlag 返回日志级别 flag，每次调用生成新实例。
func LogLevelFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "log-level",
		Value:   "info",
		Usage:   "日志级别 (debug/info/warn/error)",
		Sources: cli.EnvVars(EnvPrefix + "LOG_LEVEL"),
	}
}

// Before 根据 --log-level 初始化默认 slog 日志器。
func Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	w := cmd.Root().ErrWriter
	if w == nil {
		w = os.Stderr
	}
	if err := SetupLogger(w, cmd.String("log-level")); err != nil {
		return ctx, err
	}

	return ctx, nil
}

// SetupLogger 以 charmbracelet/log 作为 slog 的 handler 输出到 w。
func SetupLogger(w io.Writer, level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}

	handler := log.NewWithOptions(w, log.Options{
		Prefix: AppName,
		Level:  lvl,
	})
	slog.SetDefault(slog.New(handler))

	return nil
}

// SourceFlags 返回描述配置源的 flags。
func SourceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Value:   Defaults.Config,
			Usage:   "配置源文件路径",
		},
		&cli.StringFlag{
			Name:  "format",
			Value: Defaults.Format,
			Usage: "配置源格式 (yaml/json/toml/hcl/env)，为空按扩展名推断",
		},
		&cli.BoolFlag{
			Name:    "strict-settings",
			Usage:   "设置文件 (.confgen.yaml) 出现未知 key 时报错",
			Sources: cli.EnvVars(EnvPrefix + "STRICT_SETTINGS"),
		},
	}
}

// RenderFlags 返回影响生成文件命名的 flags。
func RenderFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "package",
			Aliases: []string{"p"},
			Value:   Defaults.Package,
			Usage:   "生成文件的包名",
			Sources: cli.EnvVars("GOPACKAGE"),
		},
		&cli.StringFlag{
			Name:  "type",
			Value: Defaults.Type,
			Usage: "聚合结构体类型名",
		},
		&cli.StringFlag{
			Name:  "constructor",
			Value: Defaults.Constructor,
			Usage: "构造函数名",
		},
		&cli.StringFlag{
			Name:    "generator",
			Value:   Defaults.Generator,
			Usage:   "生成器源文件，写入头部并作为重建触发依赖（默认取 go:generate 所在文件）",
			Sources: cli.EnvVars("GOFILE"),
		},
	}
}

// LoadSettings 加载并校验设置：默认值 → 设置文件 → 环境变量 → CLI flags。
func LoadSettings(cmd *cli.Command) (*config.Config, error) {
	opts := []cfgm.Option{cfgm.WithEnvPrefix(EnvPrefix)}
	if cmd.Bool("strict-settings") {
		opts = append(opts, cfgm.WithStrictKeys())
	}

	cfg, err := cfgm.LoadCmd(cmd, Defaults, AppName, opts...)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Options 加载设置并转换为生成器选项。
//
// 未指定生成器文件时，头部使用 [DefaultGeneratorName]，但不声明为重建触发依赖。
func Options(cmd *cli.Command) (confgen.Options, error) {
	cfg, err := LoadSettings(cmd)
	if err != nil {
		return confgen.Options{}, err
	}

	opts, err := cfg.Options()
	if err != nil {
		return confgen.Options{}, err
	}
	if opts.GeneratorPath == "" {
		opts.GeneratorName = DefaultGeneratorName()
	}

	return opts, nil
}

// DefaultGeneratorName 返回当前程序的主包路径，仅用于生成文件头部。
//
// 使用包路径而非可执行文件路径，go run 的临时目录不会进入生成内容。
func DefaultGeneratorName() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Path != "" {
		return info.Path
	}

	return AppName
}

// Version 返回构建信息中的模块版本。
func Version() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}

	return "(devel)"
}
