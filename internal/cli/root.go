// Package cli contém os comandos de linha de comando do margin-dashboard
package cli

import (
	"io"

	"github.com/spf13/cobra"
)

// NewRootCmd monta a árvore de comandos; a saída dos relatórios vai para out
func NewRootCmd(out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "margin",
		Short:         "Relatórios de rentabilidade multi-moeda e tarefas administrativas",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		NewReportCmd(out),
		NewMonthsCmd(out),
		NewBreakdownCmd(out),
		NewMigrateCmd(),
		NewSyncRatesCmd(out),
		NewUserCmd(out),
	)

	return root
}
