package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dvdrental-api/internal/application/dto"
	"github.com/jhoicas/dvdrental-api/internal/application/usecase"
	"github.com/jhoicas/dvdrental-api/internal/domain"
	"github.com/jhoicas/dvdrental-api/internal/infrastructure/memory"
)

func newCategoryUseCase() *usecase.CategoryUseCase {
	store := memory.NewStore()
	return usecase.NewCategoryUseCase(store.Repos().Categories, store)
}

func TestCategoryCreate_RecortaYNormaliza(t *testing.T) {
	uc := newCategoryUseCase()
	out, err := uc.Create(context.Background(), dto.CategoryRequest{Name: "  Ｃomedy "})
	require.NoError(t, err)
	assert.Equal(t, "Comedy", out.Category.Name)
}

func TestCategoryCreate_NombreDuplicadoSinMayusculas(t *testing.T) {
	uc := newCategoryUseCase()
	_, err := uc.Create(context.Background(), dto.CategoryRequest{Name: "Drama"})
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), dto.CategoryRequest{Name: "drama"})
	assert.ErrorIs(t, err, domain.ErrBusinessRule)
}

func TestCategoryCreate_Longitud(t *testing.T) {
	uc := newCategoryUseCase()
	_, err := uc.Create(context.Background(), dto.CategoryRequest{Name: strings.Repeat("x", 26)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), dto.CategoryRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCategoryUpdate_MismoNombrePropioPermitido(t *testing.T) {
	uc := newCategoryUseCase()
	a, err := uc.Create(context.Background(), dto.CategoryRequest{Name: "Action"})
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), dto.CategoryRequest{Name: "Animation"})
	require.NoError(t, err)

	out, err := uc.Update(context.Background(), a.Category.CategoryID, dto.CategoryRequest{Name: "ACTION"})
	require.NoError(t, err)
	assert.Equal(t, "ACTION", out.Category.Name)

	_, err = uc.Update(context.Background(), a.Category.CategoryID, dto.CategoryRequest{Name: "animation"})
	assert.ErrorIs(t, err, domain.ErrBusinessRule)

	_, err = uc.Update(context.Background(), 999, dto.CategoryRequest{Name: "Otra"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategoryListYDelete(t *testing.T) {
	uc := newCategoryUseCase()
	for _, n := range []string{"Sports", "Classics", "Music"} {
		_, err := uc.Create(context.Background(), dto.CategoryRequest{Name: n})
		require.NoError(t, err)
	}

	out, err := uc.List(context.Background(), dto.PageRequest{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Total)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "Classics", out.Items[0].Name)

	require.NoError(t, uc.Delete(context.Background(), out.Items[0].CategoryID))
	assert.ErrorIs(t, uc.Delete(context.Background(), out.Items[0].CategoryID), domain.ErrNotFound)
}

func TestCategoryEscrituras_RollbackSiFallaLaTransaccion(t *testing.T) {
	store := memory.NewStore()
	base := usecase.NewCategoryUseCase(store.Repos().Categories, store)
	created, err := base.Create(context.Background(), dto.CategoryRequest{Name: "Family"})
	require.NoError(t, err)

	uc := usecase.NewCategoryUseCase(store.Repos().Categories, commitFailTx{store: store, err: errCommit})
	_, err = uc.Create(context.Background(), dto.CategoryRequest{Name: "Games"})
	assert.ErrorIs(t, err, errCommit)
	_, err = uc.Update(context.Background(), created.Category.CategoryID, dto.CategoryRequest{Name: "Kids"})
	assert.ErrorIs(t, err, errCommit)
	assert.ErrorIs(t, uc.Delete(context.Background(), created.Category.CategoryID), errCommit)

	out, err := base.List(context.Background(), dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Family", out.Items[0].Name)
}
