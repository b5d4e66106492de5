package keys

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251218-go-pkg-confgen/internal/command"
	"github.com/lwmacct/251218-go-pkg-confgen/pkg/confgen"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))

func action(ctx context.Context, cmd *cli.Command) error {
	opts, err := command.Options(cmd)
	if err != nil {
		return err
	}

	set, _, err := confgen.New(opts).Prepare(ctx)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.Root().Writer, Table(set.Entries()).Render())

	return err
}

// Table 构建键映射表格：原始键、标识符、Go 名称与所在行。
func Table(entries []confgen.NormalizedEntry) *table.Table {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		line := "-"
		if e.Line > 0 {
			line = strconv.Itoa(e.Line)
		}
		rows = append(rows, []string{e.Key, e.Identifier, e.GoName, line})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			return lipgloss.NewStyle()
		}).
		Headers("KEY", "IDENTIFIER", "GO NAME", "LINE").
		Rows(rows...)
}
