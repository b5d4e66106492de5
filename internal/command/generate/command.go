// Package generate 提供从配置源生成 Go 常量文件的命令。
package generate

import (
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251218-go-pkg-confgen/internal/command"
)

// Command 生成命令
var Command = &cli.Command{
	Name:   "generate",
	Usage:  "读取配置源并生成 Go 常量文件",
	Action: action,
	Flags:  Flags(),
}

// Flags 返回生成命令的全部 flags，每次调用生成新实例。
func Flags() []cli.Flag {
	return slices.Concat(
		command.SourceFlags(),
		command.RenderFlags(),
		[]cli.Flag{
			&cli.StringFlag{
				Name:    "out-dir",
				Aliases: []string{"o"},
				Value:   command.Defaults.OutDir,
				Usage:   "生成文件的输出目录",
				Sources: cli.EnvVars("OUT_DIR"),
			},
			&cli.StringFlag{
				Name:  "output",
				Value: command.Defaults.Output,
				Usage: "生成文件名",
			},
			&cli.StringFlag{
				Name:  "depfile",
				Value: command.Defaults.Depfile,
				Usage: "Make 风格依赖文件路径，为空不写",
			},
			&cli.StringFlag{
				Name:  "trigger-prefix",
				Value: command.Defaults.TriggerPrefix,
				Usage: "重建触发声明行前缀",
			},
			&cli.BoolFlag{
				Name:  "expand-env",
				Value: command.Defaults.ExpandEnv,
				Usage: "对配置值执行 ${VAR} 展开",
			},
		},
	)
}
