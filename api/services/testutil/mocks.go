package testutil

import (
	"context"
	"statsdb/api/dto"
	rankingsrepo "statsdb/api/repositories/rankings"
	"testing"

	"github.com/stretchr/testify/mock"
)

// Assert the expectations of all mocks.
func VerifyAllMocks(t *testing.T, mocks ...any) {
	t.Helper()

	for _, m := range mocks {
		if mockObj, ok := m.(interface{ AssertExpectations(mock.TestingT) bool }); ok {
			mockObj.AssertExpectations(t)
		}
	}
}

// ============================================================================
// Mock Implementations used on the rankings service tests.
// ============================================================================

type MockRankingsRepository struct {
	mock.Mock
}

func (m *MockRankingsRepository) FirstGameSince(ctx context.Context, since int64) (uint, bool, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(uint), args.Bool(1), args.Error(2)
}

func (m *MockRankingsRepository) MapsSince(ctx context.Context, since int64) ([]*rankingsrepo.MapCount, error) {
	args := m.Called(ctx, since)
	rows, _ := args.Get(0).([]*rankingsrepo.MapCount)
	return rows, args.Error(1)
}

func (m *MockRankingsRepository) PlayerGamesSince(ctx context.Context, firstGame uint) ([]*rankingsrepo.HandleCount, error) {
	args := m.Called(ctx, firstGame)
	rows, _ := args.Get(0).([]*rankingsrepo.HandleCount)
	return rows, args.Error(1)
}

func (m *MockRankingsRepository) ServerGamesSince(ctx context.Context, firstGame uint) ([]*rankingsrepo.HandleCount, error) {
	args := m.Called(ctx, firstGame)
	rows, _ := args.Get(0).([]*rankingsrepo.HandleCount)
	return rows, args.Error(1)
}

func (m *MockRankingsRepository) PlayerHandlesSince(ctx context.Context, firstGame uint) ([]string, error) {
	args := m.Called(ctx, firstGame)
	handles, _ := args.Get(0).([]string)
	return handles, args.Error(1)
}

func (m *MockRankingsRepository) TotalWielded(ctx context.Context, firstGame uint) (int64, error) {
	args := m.Called(ctx, firstGame)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRankingsRepository) WeaponTotals(ctx context.Context, firstGame uint) ([]*rankingsrepo.WeaponTotal, error) {
	args := m.Called(ctx, firstGame)
	rows, _ := args.Get(0).([]*rankingsrepo.WeaponTotal)
	return rows, args.Error(1)
}

func (m *MockRankingsRepository) PlayerDamage(ctx context.Context, firstGame uint, excludedWeapons []string) ([]*rankingsrepo.PlayerDamage, error) {
	args := m.Called(ctx, firstGame, excludedWeapons)
	rows, _ := args.Get(0).([]*rankingsrepo.PlayerDamage)
	return rows, args.Error(1)
}

func (m *MockRankingsRepository) PlayerWeaponUsage(ctx context.Context, firstGame uint, weapons []string) ([]*rankingsrepo.PlayerWeaponUsage, error) {
	args := m.Called(ctx, firstGame, weapons)
	rows, _ := args.Get(0).([]*rankingsrepo.PlayerWeaponUsage)
	return rows, args.Error(1)
}

// ============================================================================
// Mock Implementations used on the handler tests.
// ============================================================================

type MockRankingsService struct {
	mock.Mock
}

func (m *MockRankingsService) WeaponSums(ctx context.Context, days int) (*dto.WeaponSums, error) {
	args := m.Called(ctx, days)
	result, _ := args.Get(0).(*dto.WeaponSums)
	return result, args.Error(1)
}

func (m *MockRankingsService) WeaponsByWielded(ctx context.Context, days int) ([]*dto.WeaponUsage, error) {
	args := m.Called(ctx, days)
	result, _ := args.Get(0).([]*dto.WeaponUsage)
	return result, args.Error(1)
}

func (m *MockRankingsService) MapsByGames(ctx context.Context, days int) ([]*dto.MapGames, error) {
	args := m.Called(ctx, days)
	result, _ := args.Get(0).([]*dto.MapGames)
	return result, args.Error(1)
}

func (m *MockRankingsService) PlayersByGames(ctx context.Context, days int) ([]*dto.HandleGames, error) {
	args := m.Called(ctx, days)
	result, _ := args.Get(0).([]*dto.HandleGames)
	return result, args.Error(1)
}

func (m *MockRankingsService) ServersByGames(ctx context.Context, days int) ([]*dto.HandleGames, error) {
	args := m.Called(ctx, days)
	result, _ := args.Get(0).([]*dto.HandleGames)
	return result, args.Error(1)
}

func (m *MockRankingsService) PlayersByDPM(ctx context.Context, days int) ([]*dto.PlayerDPM, error) {
	args := m.Called(ctx, days)
	result, _ := args.Get(0).([]*dto.PlayerDPM)
	return result, args.Error(1)
}

func (m *MockRankingsService) PlayerWeapons(ctx context.Context, days int) ([]*dto.WeaponBestPlayer, error) {
	args := m.Called(ctx, days)
	result, _ := args.Get(0).([]*dto.WeaponBestPlayer)
	return result, args.Error(1)
}

func (m *MockRankingsService) GetAll(ctx context.Context, days int) (*dto.Rankings, error) {
	args := m.Called(ctx, days)
	result, _ := args.Get(0).(*dto.Rankings)
	return result, args.Error(1)
}
