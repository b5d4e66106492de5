package check

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251218-go-pkg-confgen/internal/command"
	"github.com/lwmacct/251218-go-pkg-confgen/pkg/confgen"
)

var okStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))

func action(ctx context.Context, cmd *cli.Command) error {
	opts, err := command.Options(cmd)
	if err != nil {
		return err
	}

	set, content, err := confgen.New(opts).Prepare(ctx)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.Root().Writer, "%s %s: %d entries, %d bytes\n",
		okStyle.Render("ok"), opts.ConfigPath, set.Len(), len(content))

	return err
}
