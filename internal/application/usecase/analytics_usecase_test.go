package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dvdrental-api/internal/application/usecase"
	"github.com/jhoicas/dvdrental-api/internal/domain"
	"github.com/jhoicas/dvdrental-api/internal/domain/entity"
)

type fakeAnalyticsRepo struct {
	calls      int
	gotYear    *int
	gotLimit   int
	failWith   error
	categories []entity.CategoryRevenue
	films      []entity.FilmRevenue
}

func (r *fakeAnalyticsRepo) MostProfitableCategories(_ context.Context, year *int) ([]entity.CategoryRevenue, error) {
	r.calls++
	r.gotYear = year
	return r.categories, r.failWith
}

func (r *fakeAnalyticsRepo) MostProfitableFilms(_ context.Context, year *int, limit int) ([]entity.FilmRevenue, error) {
	r.calls++
	r.gotYear, r.gotLimit = year, limit
	return r.films, r.failWith
}

type mapCache struct{ data map[string][]byte }

func (c *mapCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	b, ok := c.data[key]
	return b, ok, nil
}

func (c *mapCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.data[key] = value
	return nil
}

func intPtr(n int) *int { return &n }

func TestMostProfitableCategories_SinCache(t *testing.T) {
	repo := &fakeAnalyticsRepo{categories: []entity.CategoryRevenue{
		{CategoryID: 15, CategoryName: "Sports", Year: 2007, TotalRevenue: decimal.RequireFromString("5314.21"), RentalCount: 1179, FilmCount: 73},
	}}
	uc := usecase.NewAnalyticsUseCase(repo, nil, time.Minute, zerolog.Nop())

	out, err := uc.MostProfitableCategories(context.Background(), intPtr(2007))
	require.NoError(t, err)
	assert.Equal(t, 1, out.Count)
	assert.Equal(t, "Sports", out.Results[0].CategoryName)
	assert.Equal(t, 2007, *repo.gotYear)
}

func TestMostProfitableFilms_LimiteYDefecto(t *testing.T) {
	repo := &fakeAnalyticsRepo{films: []entity.FilmRevenue{{FilmID: 879, Title: "Telegraph Voyage"}}}
	uc := usecase.NewAnalyticsUseCase(repo, nil, time.Minute, zerolog.Nop())

	out, err := uc.MostProfitableFilms(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 100, repo.gotLimit)
	assert.Nil(t, repo.gotYear)
	assert.Equal(t, []string{}, out.Results[0].CategoryNames)

	for _, bad := range []int{0, 1001} {
		_, err := uc.MostProfitableFilms(context.Background(), nil, intPtr(bad))
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestAnalytics_ErrorDelProcedimiento(t *testing.T) {
	repo := &fakeAnalyticsRepo{failWith: errors.New("function does not exist")}
	uc := usecase.NewAnalyticsUseCase(repo, nil, time.Minute, zerolog.Nop())

	_, err := uc.MostProfitableCategories(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrBusinessRule)
	assert.Contains(t, err.Error(), "get_most_profitable_categories_by_year")
}

func TestAnalytics_SegundaLecturaDesdeCache(t *testing.T) {
	repo := &fakeAnalyticsRepo{films: []entity.FilmRevenue{
		{FilmID: 879, Title: "Telegraph Voyage", Year: 2007, TotalRevenue: decimal.RequireFromString("231.73"), CategoryNames: []string{"Music"}},
	}}
	cache := &mapCache{data: map[string][]byte{}}
	uc := usecase.NewAnalyticsUseCase(repo, cache, time.Minute, zerolog.Nop())

	first, err := uc.MostProfitableFilms(context.Background(), intPtr(2007), intPtr(10))
	require.NoError(t, err)
	second, err := uc.MostProfitableFilms(context.Background(), intPtr(2007), intPtr(10))
	require.NoError(t, err)

	assert.Equal(t, 1, repo.calls)
	assert.Contains(t, cache.data, "analytics:films:2007:10")
	assert.True(t, second.Results[0].TotalRevenue.Equal(first.Results[0].TotalRevenue))
	assert.Equal(t, []string{"Music"}, second.Results[0].CategoryNames)

	_, err = uc.MostProfitableFilms(context.Background(), intPtr(2007), intPtr(20))
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls, "otro limit es otra clave")
}
