// Package keys 提供列出配置键与生成标识符映射的命令。
package keys

import (
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251218-go-pkg-confgen/internal/command"
)

// Command 键列表命令
var Command = &cli.Command{
	Name:   "keys",
	Usage:  "列出配置键及其归一化标识符",
	Action: action,
	Flags:  slices.Concat(command.SourceFlags(), command.RenderFlags()),
}
