package listing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/margin-dashboard-api/infrastructure/repository/mocks"
	"github.com/vfg2006/margin-dashboard-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestService_ListSales(t *testing.T) {
	ctrl := gomock.NewController(t)
	saleRepo := mocks.NewMockSaleRepository(ctrl)
	service := NewService(saleRepo, mocks.NewMockExchangeRateRepository(ctrl))
	ctx := context.Background()
	filter := &domain.RecordFilter{WithRelations: true}

	saleRepo.EXPECT().ListSales(ctx, "tenant-1", filter).Return([]domain.Sale{{ID: "s1"}}, nil)

	sales, err := service.ListSales(ctx, "tenant-1", filter)

	require.NoError(t, err)
	assert.Len(t, sales, 1)
}

func TestService_ListExchangeRates(t *testing.T) {
	ctrl := gomock.NewController(t)
	rateRepo := mocks.NewMockExchangeRateRepository(ctrl)
	service := NewService(mocks.NewMockSaleRepository(ctrl), rateRepo)
	ctx := context.Background()
	dbErr := errors.New("db fora")

	rateRepo.EXPECT().ListRates(ctx, "tenant-1", gomock.Nil()).Return(nil, dbErr)

	_, err := service.ListExchangeRates(ctx, "tenant-1", nil)

	assert.ErrorIs(t, err, dbErr)
}

func TestService_ListRatePeriods(t *testing.T) {
	ctrl := gomock.NewController(t)
	rateRepo := mocks.NewMockExchangeRateRepository(ctrl)
	service := NewService(mocks.NewMockSaleRepository(ctrl), rateRepo)
	ctx := context.Background()

	rateRepo.EXPECT().ListAllPeriods(ctx, "tenant-1").Return([]string{"2024-01-01", "2024-02-01"}, nil)

	periods, err := service.ListRatePeriods(ctx, "tenant-1")

	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-01", "2024-02-01"}, periods)
}
