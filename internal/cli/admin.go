package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/vfg2006/margin-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/margin-dashboard-api/infrastructure/integrator/ecb"
	"github.com/vfg2006/margin-dashboard-api/infrastructure/migration"
	"github.com/vfg2006/margin-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/margin-dashboard-api/internal/config"
	"github.com/vfg2006/margin-dashboard-api/internal/domain"
	"github.com/vfg2006/margin-dashboard-api/internal/scheduler"
	"github.com/vfg2006/margin-dashboard-api/internal/usecases/authenticating"
)

// connect carrega a configuração do ambiente e abre a conexão com o banco
func connect(ctx context.Context) (*config.Config, *postgres.Connection, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, err
	}

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("erro ao conectar ao PostgreSQL: %w", err)
	}

	return cfg, conn, nil
}

func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica as migrações pendentes do banco",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, conn, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer conn.Close()

			return migration.Run(conn.DB)
		},
	}
}

func NewSyncRatesCmd(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "sync-rates",
		Short: "Busca no BCE as taxas de câmbio dos meses recentes e grava no banco",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			cfg, conn, err := connect(ctx)
			if err != nil {
				return err
			}
			defer conn.Close()

			service := scheduler.NewExchangeRateSyncService(
				repository.NewCountryRepository(conn),
				repository.NewExchangeRateRepository(conn),
				ecb.NewClient(cfg.ECB),
				cfg,
			)

			result, err := service.SyncExchangeRates(ctx)
			if err != nil {
				return err
			}

			return printJSON(out, result)
		},
	}
}

type UserCreateCmd struct {
	name     string
	email    string
	password string
	tenantID string
	roleID   int
	out      io.Writer
}

func NewUserCmd(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Gerencia usuários da API",
	}

	uc := &UserCreateCmd{out: out}
	create := &cobra.Command{
		Use:   "create",
		Short: "Cria um usuário com senha forte",
		RunE:  uc.run,
	}

	create.Flags().StringVar(&uc.name, "name", "", "Nome do usuário")
	create.Flags().StringVar(&uc.email, "email", "", "E-mail de login")
	create.Flags().StringVar(&uc.password, "password", "", "Senha em texto")
	create.Flags().StringVar(&uc.tenantID, "tenant", "", "Tenant do usuário")
	create.Flags().IntVar(&uc.roleID, "role", 0, "Role (1 admin, 2 supervisor, 3 analista)")
	for _, flag := range []string{"name", "email", "password", "tenant"} {
		_ = create.MarkFlagRequired(flag)
	}

	cmd.AddCommand(create)
	return cmd
}

func (uc *UserCreateCmd) run(cmd *cobra.Command, _ []string) error {
	cfg, conn, err := connect(cmd.Context())
	if err != nil {
		return err
	}
	defer conn.Close()

	service := authenticating.NewService(repository.NewUserRepository(conn), cfg.Auth)
	return uc.create(cmd.Context(), service)
}

func (uc *UserCreateCmd) create(ctx context.Context, service authenticating.Authenticator) error {
	user, err := service.CreateUser(ctx, &domain.User{
		Name:         uc.name,
		Email:        uc.email,
		PasswordHash: uc.password,
		TenantID:     uc.tenantID,
		RoleID:       uc.roleID,
		Active:       true,
	})
	if err != nil {
		return err
	}

	return printJSON(uc.out, user)
}
