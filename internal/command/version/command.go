// Package version 提供版本信息命令。
package version

import (
	"context"
	"fmt"
	"runtime"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251218-go-pkg-confgen/internal/command"
)

// Command 版本命令
var Command = &cli.Command{
	Name:  "version",
	Usage: "显示版本信息",
	Action: func(_ context.Context, cmd *cli.Command) error {
		_, err := fmt.Fprintf(cmd.Root().Writer, "%s %s (%s %s/%s)\n",
			command.AppName, command.Version(), runtime.Version(), runtime.GOOS, runtime.GOARCH)

		return err
	},
}
