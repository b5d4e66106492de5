// Package check 提供仅校验配置源、不写文件的命令。
package check

import (
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251218-go-pkg-confgen/internal/command"
)

// Command 校验命令
var Command = &cli.Command{
	Name:   "check",
	Usage:  "校验配置源并渲染到内存，不写入任何文件",
	Action: action,
	Flags:  slices.Concat(command.SourceFlags(), command.RenderFlags()),
}
