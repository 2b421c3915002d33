package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/vfg2006/margin-dashboard-api/internal/config"
	"github.com/vfg2006/margin-dashboard-api/internal/domain"
	"github.com/vfg2006/margin-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/margin-dashboard-api/pkg/utils"
)

const commandTimeout = 60 * time.Second

// snapshotFlags são as opções comuns aos comandos que leem um snapshot em JSON
type snapshotFlags struct {
	snapshotPath string
	strict       bool
}

func (f *snapshotFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.snapshotPath, "snapshot", "", "Arquivo JSON com países, produtos, vendas, investimentos e câmbio")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "Falha quando faltar taxa de câmbio em vez de usar 1")
	_ = cmd.MarkFlagRequired("snapshot")
}

func (f *snapshotFlags) service() (*reporting.Service, error) {
	snapshot, err := reporting.LoadSnapshotFile(f.snapshotPath)
	if err != nil {
		return nil, err
	}

	return reporting.NewService(reporting.NewStaticLoader(snapshot), config.Reports{
		FailOnMissingRate: f.strict,
	}), nil
}

type ReportCmd struct {
	snapshotFlags
	from      string
	to        string
	countries []string
	out       io.Writer
}

func NewReportCmd(out io.Writer) *cobra.Command {
	rc := &ReportCmd{out: out}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Calcula o relatório de métricas por país e o consolidado em EUR",
		RunE:  rc.run,
	}

	rc.register(cmd)
	cmd.Flags().StringVar(&rc.from, "from", "", "Mês inicial (YYYY-MM)")
	cmd.Flags().StringVar(&rc.to, "to", "", "Mês final (YYYY-MM)")
	cmd.Flags().StringSliceVar(&rc.countries, "country", nil, "IDs de países, repetido ou separado por vírgula")

	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, _ []string) error {
	filters := &domain.ReportFilters{CountryIDs: rc.countries}

	if rc.from != "" {
		month, err := domain.ParseMonth(rc.from)
		if err != nil {
			return err
		}
		filters.StartMonth = &month
	}
	if rc.to != "" {
		month, err := domain.ParseMonth(rc.to)
		if err != nil {
			return err
		}
		filters.EndMonth = &month
	}

	service, err := rc.service()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	report, err := service.GetReport(ctx, "", filters)
	if err != nil {
		return err
	}

	return printJSON(rc.out, report)
}

type MonthsCmd struct {
	snapshotFlags
	out io.Writer
}

func NewMonthsCmd(out io.Writer) *cobra.Command {
	mc := &MonthsCmd{out: out}
	cmd := &cobra.Command{
		Use:   "months",
		Short: "Lista os meses com vendas ou investimentos no snapshot",
		RunE:  mc.run,
	}
	mc.register(cmd)
	return cmd
}

func (mc *MonthsCmd) run(cmd *cobra.Command, _ []string) error {
	service, err := mc.service()
	if err != nil {
		return err
	}

	months, err := service.GetAvailableMonths(cmd.Context(), "")
	if err != nil {
		return err
	}

	return printJSON(mc.out, map[string]any{"months": months})
}

type BreakdownCmd struct {
	snapshotFlags
	country string
	month   string
	out     io.Writer
}

func NewBreakdownCmd(out io.Writer) *cobra.Command {
	bc := &BreakdownCmd{out: out}
	cmd := &cobra.Command{
		Use:   "breakdown",
		Short: "Detalha as métricas por produto de um país em um mês",
		RunE:  bc.run,
	}

	bc.register(cmd)
	cmd.Flags().StringVar(&bc.country, "country", "", "ID do país")
	cmd.Flags().StringVar(&bc.month, "month", "", "Mês (YYYY-MM)")
	_ = cmd.MarkFlagRequired("country")
	_ = cmd.MarkFlagRequired("month")

	return cmd
}

func (bc *BreakdownCmd) run(cmd *cobra.Command, _ []string) error {
	month, err := domain.ParseMonth(bc.month)
	if err != nil {
		return err
	}

	service, err := bc.service()
	if err != nil {
		return err
	}

	breakdown, err := service.GetProductBreakdown(cmd.Context(), "", bc.country, month)
	if err != nil {
		return err
	}

	return printJSON(bc.out, breakdown)
}

func printJSON(out io.Writer, payload any) error {
	pretty, err := utils.PrettyJson(payload)
	if err != nil {
		return fmt.Errorf("erro ao formatar saída: %w", err)
	}
	_, err = fmt.Fprintln(out, pretty)
	return err
}
