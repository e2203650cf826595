package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/jhoicas/dvdrental-api/internal/application/dto"
	"github.com/jhoicas/dvdrental-api/internal/application/ports"
	"github.com/jhoicas/dvdrental-api/internal/domain"
	"github.com/jhoicas/dvdrental-api/internal/domain/entity"
	"github.com/jhoicas/dvdrental-api/internal/domain/repository"
	"github.com/jhoicas/dvdrental-api/pkg/metrics"
)

const (
	reportCategories = "categories"
	reportFilms      = "films"
)

// AnalyticsUseCase reportes de rentabilidad sobre los procedimientos almacenados.
// Con cache configurada, los resultados se guardan por reporte y argumentos durante ttl.
type AnalyticsUseCase struct {
	repo  repository.AnalyticsRepository
	cache ports.Cache
	ttl   time.Duration
	log   zerolog.Logger
}

// NewAnalyticsUseCase construye el caso de uso. cache nil desactiva la caché.
func NewAnalyticsUseCase(repo repository.AnalyticsRepository, cache ports.Cache, ttl time.Duration, log zerolog.Logger) *AnalyticsUseCase {
	return &AnalyticsUseCase{repo: repo, cache: cache, ttl: ttl, log: log}
}

// MostProfitableCategories year nil = todos los años.
func (uc *AnalyticsUseCase) MostProfitableCategories(ctx context.Context, year *int) (*dto.CountResponse[dto.CategoryRevenueResponse], error) {
	key := "analytics:" + reportCategories + ":" + yearKey(year)
	rows, err := cached(ctx, uc, reportCategories, key, func() ([]dto.CategoryRevenueResponse, error) {
		data, err := uc.repo.MostProfitableCategories(ctx, year)
		if err != nil {
			return nil, procedureError("get_most_profitable_categories_by_year", err)
		}
		out := make([]dto.CategoryRevenueResponse, 0, len(data))
		for _, r := range data {
			out = append(out, toCategoryRevenue(r))
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.CountResponse[dto.CategoryRevenueResponse]{Count: len(rows), Results: rows}, nil
}

// MostProfitableFilms limit nil = DefaultFilmsLimit; debe estar entre 1 y MaxFilmsLimit.
func (uc *AnalyticsUseCase) MostProfitableFilms(ctx context.Context, year, limit *int) (*dto.CountResponse[dto.FilmRevenueResponse], error) {
	n := dto.DefaultFilmsLimit
	if limit != nil {
		n = *limit
	}
	if n < 1 || n > dto.MaxFilmsLimit {
		return nil, domain.FieldError(domain.ErrInvalidInput, "limit", fmt.Sprintf("limit debe estar entre 1 y %d", dto.MaxFilmsLimit))
	}

	key := "analytics:" + reportFilms + ":" + yearKey(year) + ":" + strconv.Itoa(n)
	rows, err := cached(ctx, uc, reportFilms, key, func() ([]dto.FilmRevenueResponse, error) {
		data, err := uc.repo.MostProfitableFilms(ctx, year, n)
		if err != nil {
			return nil, procedureError("get_most_profitable_films_by_year", err)
		}
		out := make([]dto.FilmRevenueResponse, 0, len(data))
		for _, r := range data {
			out = append(out, toFilmRevenue(r))
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.CountResponse[dto.FilmRevenueResponse]{Count: len(rows), Results: rows}, nil
}

// cached lee de la caché o ejecuta load y guarda el resultado. Los fallos de la caché
// se registran y la consulta sigue contra la base.
func cached[T any](ctx context.Context, uc *AnalyticsUseCase, report, key string, load func() ([]T, error)) ([]T, error) {
	if uc.cache == nil {
		return load()
	}
	raw, ok, err := uc.cache.Get(ctx, key)
	switch {
	case err != nil:
		uc.log.Warn().Err(err).Str("key", key).Msg("lectura de caché")
	case ok:
		var rows []T
		if err := json.Unmarshal(raw, &rows); err == nil {
			metrics.AnalyticsCacheHits.WithLabelValues(report, "hit").Inc()
			return rows, nil
		}
		uc.log.Warn().Str("key", key).Msg("entrada de caché corrupta")
	}
	metrics.AnalyticsCacheHits.WithLabelValues(report, "miss").Inc()

	rows, err := load()
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(rows); err == nil {
		if err := uc.cache.Set(ctx, key, b, uc.ttl); err != nil {
			uc.log.Warn().Err(err).Str("key", key).Msg("escritura de caché")
		}
	}
	return rows, nil
}

func yearKey(year *int) string {
	if year == nil {
		return "all"
	}
	return strconv.Itoa(*year)
}

func procedureError(name string, err error) error {
	return &domain.Error{Kind: domain.ErrBusinessRule, Detail: fmt.Sprintf("error al ejecutar %s: %v", name, err)}
}

func toCategoryRevenue(r entity.CategoryRevenue) dto.CategoryRevenueResponse {
	return dto.CategoryRevenueResponse{
		CategoryID:   r.CategoryID,
		CategoryName: r.CategoryName,
		Year:         r.Year,
		TotalRevenue: r.TotalRevenue,
		RentalCount:  r.RentalCount,
		FilmCount:    r.FilmCount,
	}
}

func toFilmRevenue(r entity.FilmRevenue) dto.FilmRevenueResponse {
	names := r.CategoryNames
	if names == nil {
		names = []string{}
	}
	return dto.FilmRevenueResponse{
		FilmID:        r.FilmID,
		Title:         r.Title,
		Year:          r.Year,
		TotalRevenue:  r.TotalRevenue,
		RentalCount:   r.RentalCount,
		CategoryNames: names,
	}
}
