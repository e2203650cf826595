package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/dvdrental-api/internal/application/dto"
	"github.com/jhoicas/dvdrental-api/internal/application/ports"
	"github.com/jhoicas/dvdrental-api/internal/domain"
	"github.com/jhoicas/dvdrental-api/internal/domain/entity"
	"github.com/jhoicas/dvdrental-api/internal/domain/repository"
)

// FilmUseCase catálogo de películas. Las escrituras y sus verificaciones corren en una transacción.
type FilmUseCase struct {
	films      repository.FilmRepository
	categories repository.CategoryRepository
	tx         ports.TxRunner
}

// NewFilmUseCase construye el caso de uso.
func NewFilmUseCase(films repository.FilmRepository, categories repository.CategoryRepository, tx ports.TxRunner) *FilmUseCase {
	return &FilmUseCase{films: films, categories: categories, tx: tx}
}

// List busca por título/descripción y pagina ordenando por título.
func (uc *FilmUseCase) List(ctx context.Context, q dto.FilmListQuery) (*dto.ListResult[dto.FilmListItem], error) {
	q.Normalize()
	return uc.list(ctx, entity.FilmFilter{
		Search: strings.TrimSpace(q.Search),
		Limit:  q.PageSize,
		Offset: q.Offset(),
	})
}

// ListByCategory películas de una categoría existente.
func (uc *FilmUseCase) ListByCategory(ctx context.Context, categoryID int64, page dto.PageRequest) (*dto.ListResult[dto.FilmListItem], error) {
	cat, err := uc.categories.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.NotFound("categoría", categoryID)
	}
	page.Normalize()
	return uc.list(ctx, entity.FilmFilter{CategoryID: categoryID, Limit: page.PageSize, Offset: page.Offset()})
}

func (uc *FilmUseCase) list(ctx context.Context, f entity.FilmFilter) (*dto.ListResult[dto.FilmListItem], error) {
	films, total, err := uc.films.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.FilmListItem, 0, len(films))
	for _, film := range films {
		items = append(items, dto.FilmListItem{
			FilmID:      film.ID,
			Title:       film.Title,
			ReleaseYear: film.ReleaseYear,
			Rating:      film.Rating,
			RentalRate:  film.RentalRate,
		})
	}
	return &dto.ListResult[dto.FilmListItem]{Items: items, Total: total}, nil
}

// Get devuelve el detalle; ErrNotFound si no existe.
func (uc *FilmUseCase) Get(ctx context.Context, id int64) (*dto.FilmResponse, error) {
	film, err := uc.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toFilmResponse(film)
	return &out, nil
}

func (uc *FilmUseCase) mustGet(ctx context.Context, id int64) (*entity.Film, error) {
	return getFilm(ctx, uc.films, id)
}

func getFilm(ctx context.Context, films repository.FilmRepository, id int64) (*entity.Film, error) {
	film, err := films.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if film == nil {
		return nil, domain.NotFound("película", id)
	}
	return film, nil
}

// Create da de alta la película. Sin rating se asigna G.
func (uc *FilmUseCase) Create(ctx context.Context, in dto.CreateFilmRequest) (*dto.FilmEnvelope, error) {
	if in.RentalRate == nil {
		return nil, domain.FieldError(domain.ErrInvalidInput, "rental_rate", "rental_rate es obligatorio")
	}
	if in.ReplacementCost == nil {
		return nil, domain.FieldError(domain.ErrInvalidInput, "replacement_cost", "replacement_cost es obligatorio")
	}
	film := &entity.Film{
		Title:           strings.TrimSpace(in.Title),
		Description:     in.Description,
		ReleaseYear:     in.ReleaseYear,
		LanguageID:      in.LanguageID,
		RentalDuration:  in.RentalDuration,
		RentalRate:      *in.RentalRate,
		Length:          in.Length,
		ReplacementCost: *in.ReplacementCost,
		Rating:          in.Rating,
	}
	if film.Rating == nil {
		r := entity.DefaultRating
		film.Rating = &r
	}
	err := uc.tx.Run(ctx, func(tx ports.Repos) error {
		if err := checkFilm(ctx, tx.Refs, film); err != nil {
			return err
		}
		return tx.Films.Create(ctx, film)
	})
	if err != nil {
		return nil, err
	}
	return &dto.FilmEnvelope{Message: "Película creada correctamente.", Film: toFilmResponse(film)}, nil
}

// Update aplica solo los campos presentes. Sin cambios devuelve la fila actual.
func (uc *FilmUseCase) Update(ctx context.Context, id int64, in dto.UpdateFilmRequest) (*dto.FilmEnvelope, error) {
	var film *entity.Film
	changed := false
	err := uc.tx.Run(ctx, func(tx ports.Repos) error {
		var err error
		if film, err = getFilm(ctx, tx.Films, id); err != nil {
			return err
		}
		if changed = applyFilmUpdate(film, in); !changed {
			return nil
		}
		if err := checkFilm(ctx, tx.Refs, film); err != nil {
			return err
		}
		return tx.Films.Update(ctx, film)
	})
	if err != nil {
		return nil, err
	}
	if !changed {
		return &dto.FilmEnvelope{Message: "Sin cambios.", Film: toFilmResponse(film)}, nil
	}
	return &dto.FilmEnvelope{Message: "Película actualizada correctamente.", Film: toFilmResponse(film)}, nil
}

func applyFilmUpdate(film *entity.Film, in dto.UpdateFilmRequest) bool {
	changed := false
	if in.Title != nil {
		film.Title, changed = strings.TrimSpace(*in.Title), true
	}
	if in.Description != nil {
		film.Description, changed = in.Description, true
	}
	if in.ReleaseYear != nil {
		film.ReleaseYear, changed = in.ReleaseYear, true
	}
	if in.LanguageID != nil {
		film.LanguageID, changed = *in.LanguageID, true
	}
	if in.RentalDuration != nil {
		film.RentalDuration, changed = *in.RentalDuration, true
	}
	if in.RentalRate != nil {
		film.RentalRate, changed = *in.RentalRate, true
	}
	if in.Length != nil {
		film.Length, changed = in.Length, true
	}
	if in.ReplacementCost != nil {
		film.ReplacementCost, changed = *in.ReplacementCost, true
	}
	if in.Rating != nil {
		film.Rating, changed = in.Rating, true
	}
	return changed
}

// checkFilm reglas comunes de alta y modificación.
func checkFilm(ctx context.Context, refs repository.ReferenceRepository, film *entity.Film) error {
	if film.Title == "" {
		return domain.FieldError(domain.ErrInvalidInput, "title", "el título es obligatorio")
	}
	if film.RentalDuration < 1 {
		return domain.FieldError(domain.ErrInvalidInput, "rental_duration", "rental_duration debe ser al menos 1")
	}
	if err := ensureNonNegative(film.RentalRate, "rental_rate"); err != nil {
		return err
	}
	if err := ensureNonNegative(film.ReplacementCost, "replacement_cost"); err != nil {
		return err
	}
	if film.Rating != nil && !entity.ValidRating(*film.Rating) {
		return domain.FieldError(domain.ErrInvalidInput, "rating", "clasificación inválida")
	}
	return ensureRef(ctx, refs, entity.RefLanguage, film.LanguageID, "language_id")
}

// Delete borra la película; ErrNotFound si no existía.
func (uc *FilmUseCase) Delete(ctx context.Context, id int64) error {
	return uc.tx.Run(ctx, func(tx ports.Repos) error {
		ok, err := tx.Films.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return domain.NotFound("película", id)
		}
		return nil
	})
}

func toFilmResponse(f *entity.Film) dto.FilmResponse {
	return dto.FilmResponse{
		FilmID:          f.ID,
		Title:           f.Title,
		Description:     f.Description,
		ReleaseYear:     f.ReleaseYear,
		LanguageID:      f.LanguageID,
		RentalDuration:  f.RentalDuration,
		RentalRate:      f.RentalRate,
		Length:          f.Length,
		ReplacementCost: f.ReplacementCost,
		Rating:          f.Rating,
		SpecialFeatures: f.SpecialFeatures,
		LastUpdate:      f.LastUpdate,
	}
}
