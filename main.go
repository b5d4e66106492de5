package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251218-go-pkg-confgen/internal/command"
	"github.com/lwmacct/251218-go-pkg-confgen/internal/command/check"
	"github.com/lwmacct/251218-go-pkg-confgen/internal/command/generate"
	"github.com/lwmacct/251218-go-pkg-confgen/internal/command/keys"
	"github.com/lwmacct/251218-go-pkg-confgen/internal/command/version"
)

func main() {
	app := &cli.Command{
		Name:    command.AppName,
		Usage:   "配置常量代码生成工具",
		Version: command.Version(),
		Flags:   []cli.Flag{command.LogLevelFlag()},
		Before:  command.Before,
		Commands: []*cli.Command{
			version.Command,
			generate.Command,
			check.Command,
			keys.Command,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
