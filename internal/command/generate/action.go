package generate

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251218-go-pkg-confgen/internal/command"
	"github.com/lwmacct/251218-go-pkg-confgen/pkg/confgen"
)

func action(ctx context.Context, cmd *cli.Command) error {
	// 加载设置：默认值 → 设置文件 → 环境变量 → CLI flags
	opts, err := command.Options(cmd)
	if err != nil {
		return err
	}
	opts.Triggers = cmd.Root().Writer

	result, err := confgen.New(opts).Run(ctx)
	if err != nil {
		return err
	}
	slog.Debug("Generate finished", "output", result.OutputPath, "entries", result.Entries)

	return nil
}
