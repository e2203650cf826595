package usecase

import (
	"context"
	"unicode/utf8"

	"github.com/jhoicas/dvdrental-api/internal/application/dto"
	"github.com/jhoicas/dvdrental-api/internal/application/ports"
	"github.com/jhoicas/dvdrental-api/internal/domain"
	"github.com/jhoicas/dvdrental-api/internal/domain/entity"
	"github.com/jhoicas/dvdrental-api/internal/domain/repository"
)

// CategoryUseCase CRUD de categorías. El nombre es único sin distinguir mayúsculas;
// la comprobación de unicidad y la escritura comparten transacción.
type CategoryUseCase struct {
	repo repository.CategoryRepository
	tx   ports.TxRunner
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, tx ports.TxRunner) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, tx: tx}
}

func (uc *CategoryUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ListResult[dto.CategoryResponse], error) {
	page.Normalize()
	cats, total, err := uc.repo.List(ctx, page.PageSize, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(cats))
	for _, c := range cats {
		items = append(items, toCategoryResponse(c))
	}
	return &dto.ListResult[dto.CategoryResponse]{Items: items, Total: total}, nil
}

func (uc *CategoryUseCase) Get(ctx context.Context, id int64) (*dto.CategoryResponse, error) {
	c, err := uc.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toCategoryResponse(c)
	return &out, nil
}

func (uc *CategoryUseCase) mustGet(ctx context.Context, id int64) (*entity.Category, error) {
	return getCategory(ctx, uc.repo, id)
}

func getCategory(ctx context.Context, repo repository.CategoryRepository, id int64) (*entity.Category, error) {
	c, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NotFound("categoría", id)
	}
	return c, nil
}

func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryEnvelope, error) {
	c := &entity.Category{}
	err := uc.tx.Run(ctx, func(tx ports.Repos) error {
		name, err := checkCategoryName(ctx, tx.Categories, in.Name, 0)
		if err != nil {
			return err
		}
		c.Name = name
		return tx.Categories.Create(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return &dto.CategoryEnvelope{Message: "Categoría creada correctamente.", Category: toCategoryResponse(c)}, nil
}

func (uc *CategoryUseCase) Update(ctx context.Context, id int64, in dto.CategoryRequest) (*dto.CategoryEnvelope, error) {
	var c *entity.Category
	err := uc.tx.Run(ctx, func(tx ports.Repos) error {
		var err error
		if c, err = getCategory(ctx, tx.Categories, id); err != nil {
			return err
		}
		name, err := checkCategoryName(ctx, tx.Categories, in.Name, id)
		if err != nil {
			return err
		}
		c.Name = name
		return tx.Categories.Update(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return &dto.CategoryEnvelope{Message: "Categoría actualizada correctamente.", Category: toCategoryResponse(c)}, nil
}

// checkCategoryName normaliza y valida longitud y unicidad del nombre.
func checkCategoryName(ctx context.Context, repo repository.CategoryRepository, raw string, excludeID int64) (string, error) {
	name := normalizeName(raw)
	if name == "" {
		return "", domain.FieldError(domain.ErrInvalidInput, "name", "el nombre es obligatorio")
	}
	if utf8.RuneCountInString(name) > entity.CategoryNameMaxLen {
		return "", domain.FieldError(domain.ErrInvalidInput, "name", "el nombre admite como máximo 25 caracteres")
	}
	exists, err := repo.ExistsByName(ctx, name, excludeID)
	if err != nil {
		return "", err
	}
	if exists {
		return "", domain.FieldError(domain.ErrBusinessRule, "name", "ya existe una categoría con ese nombre")
	}
	return name, nil
}

func (uc *CategoryUseCase) Delete(ctx context.Context, id int64) error {
	return uc.tx.Run(ctx, func(tx ports.Repos) error {
		ok, err := tx.Categories.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return domain.NotFound("categoría", id)
		}
		return nil
	})
}

func toCategoryResponse(c *entity.Category) dto.CategoryResponse {
	return dto.CategoryResponse{CategoryID: c.ID, Name: c.Name, LastUpdate: c.LastUpdate}
}
