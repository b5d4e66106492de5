// confgen 为 go:generate 场景提供的单命令入口，等价于 `confgen generate`。
//
//	//go:generate go run github.com/lwmacct/251218-go-pkg-confgen/cmd/confgen -c config.yaml -o .
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/lwmacct/251218-go-pkg-confgen/internal/command"
	app "github.com/lwmacct/251218-go-pkg-confgen/internal/command/generate"
)

func main() {
	app.Command.Flags = append(app.Command.Flags, command.LogLevelFlag())
	app.Command.Before = command.Before

	if err := app.Command.Run(context.Background(), os.Args); err != nil {
		slog.Error("应用程序运行失败", "error", err)
		os.Exit(1)
	}
}
