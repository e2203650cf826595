//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/dvdrental-api/internal/application/ports"
	"github.com/jhoicas/dvdrental-api/internal/domain"
	"github.com/jhoicas/dvdrental-api/internal/domain/entity"
	"github.com/jhoicas/dvdrental-api/internal/infrastructure/postgres"
	"github.com/jhoicas/dvdrental-api/pkg/config"
)

// fixtureSchema subconjunto del esquema dvdrental usado por los repositorios.
const fixtureSchema = `
CREATE TYPE mpaa_rating AS ENUM ('G', 'PG', 'PG-13', 'R', 'NC-17');
CREATE DOMAIN year AS integer CONSTRAINT year_check CHECK (VALUE >= 1901 AND VALUE <= 2155);
CREATE TABLE language (language_id SERIAL PRIMARY KEY, name CHAR(20) NOT NULL, last_update TIMESTAMP NOT NULL DEFAULT now());
CREATE TABLE category (category_id SERIAL PRIMARY KEY, name VARCHAR(25) NOT NULL, last_update TIMESTAMP NOT NULL DEFAULT now());
CREATE TABLE film (
	film_id SERIAL PRIMARY KEY, title VARCHAR(255) NOT NULL, description TEXT, release_year year,
	language_id SMALLINT NOT NULL REFERENCES language, rental_duration SMALLINT NOT NULL DEFAULT 3,
	rental_rate NUMERIC(4,2) NOT NULL DEFAULT 4.99, length SMALLINT,
	replacement_cost NUMERIC(5,2) NOT NULL DEFAULT 19.99, rating mpaa_rating DEFAULT 'G',
	last_update TIMESTAMP NOT NULL DEFAULT now(), special_features TEXT[]
);
CREATE TABLE film_category (film_id SMALLINT REFERENCES film, category_id SMALLINT REFERENCES category, PRIMARY KEY (film_id, category_id));
CREATE TABLE customer (customer_id SERIAL PRIMARY KEY, first_name VARCHAR(45) NOT NULL);
CREATE TABLE staff (staff_id SERIAL PRIMARY KEY, first_name VARCHAR(45) NOT NULL);
CREATE TABLE inventory (inventory_id SERIAL PRIMARY KEY, film_id SMALLINT NOT NULL REFERENCES film);
CREATE TABLE rental (
	rental_id SERIAL PRIMARY KEY, rental_date TIMESTAMP NOT NULL, inventory_id INTEGER NOT NULL REFERENCES inventory,
	customer_id SMALLINT NOT NULL REFERENCES customer, return_date TIMESTAMP,
	staff_id SMALLINT NOT NULL REFERENCES staff, last_update TIMESTAMP NOT NULL DEFAULT now()
);
CREATE TABLE payment (
	payment_id SERIAL PRIMARY KEY, customer_id SMALLINT NOT NULL REFERENCES customer,
	staff_id SMALLINT NOT NULL REFERENCES staff, rental_id INTEGER REFERENCES rental ON DELETE SET NULL,
	amount NUMERIC(5,2) NOT NULL, payment_date TIMESTAMP NOT NULL
);
INSERT INTO language (name) VALUES ('English');
INSERT INTO customer (first_name) VALUES ('Mary');
INSERT INTO staff (first_name) VALUES ('Mike');
`

func setupPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pg, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("dvdrental"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pg.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn, MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, fixtureSchema)
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(ctx, pool))
	require.NoError(t, postgres.Migrate(ctx, pool), "migrate es idempotente")
	return pool
}

func TestIntegration_Repositorios(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	repos := postgres.NewRepos(pool)

	t.Run("usuarios", func(t *testing.T) {
		u := &entity.User{Username: "mary", Email: "mary@example.com", PasswordHash: "x", Role: entity.RoleCustomer,
			DateJoined: time.Now(), UpdatedAt: time.Now()}
		require.NoError(t, repos.Users.Create(ctx, u))
		assert.NotZero(t, u.ID)

		dup := *u
		assert.ErrorIs(t, repos.Users.Create(ctx, &dup), domain.ErrUserAlreadyExists)

		got, err := repos.Users.GetByEmail(ctx, "MARY@example.com")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.False(t, got.IsActive)

		require.NoError(t, repos.Users.SetActive(ctx, u.ID, true))
		require.NoError(t, repos.Users.TouchLastLogin(ctx, u.ID, time.Now()))
		got, err = repos.Users.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.True(t, got.IsActive)
		assert.NotNil(t, got.LastLogin)

		missing, err := repos.Users.GetByUsername(ctx, "nadie")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("películas y categorías", func(t *testing.T) {
		rating := "PG-13"
		year := 2006
		film := &entity.Film{Title: "Academy Dinosaur", ReleaseYear: &year, LanguageID: 1, RentalDuration: 6,
			RentalRate: decimal.RequireFromString("0.99"), ReplacementCost: decimal.RequireFromString("20.99"), Rating: &rating}
		require.NoError(t, repos.Films.Create(ctx, film))

		cat := &entity.Category{Name: "Documentary"}
		require.NoError(t, repos.Categories.Create(ctx, cat))
		_, err := pool.Exec(ctx, `INSERT INTO film_category (film_id, category_id) VALUES ($1, $2)`, film.ID, cat.ID)
		require.NoError(t, err)

		films, total, err := repos.Films.List(ctx, entity.FilmFilter{Search: "dino", CategoryID: cat.ID, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, films, 1)
		assert.Equal(t, "PG-13", *films[0].Rating)
		assert.Equal(t, 2006, *films[0].ReleaseYear)
		assert.True(t, films[0].RentalRate.Equal(decimal.RequireFromString("0.99")))

		exists, err := repos.Categories.ExistsByName(ctx, "documentary", 0)
		require.NoError(t, err)
		assert.True(t, exists)

		_, err = repos.Categories.Delete(ctx, cat.ID)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("alquileres y pagos", func(t *testing.T) {
		_, err := pool.Exec(ctx, `INSERT INTO inventory (film_id) SELECT film_id FROM film LIMIT 1`)
		require.NoError(t, err)
		for kind, id := range map[entity.RefKind]int64{entity.RefCustomer: 1, entity.RefStaff: 1, entity.RefInventory: 1, entity.RefLanguage: 1} {
			ok, err := repos.Refs.Exists(ctx, kind, id)
			require.NoError(t, err)
			assert.True(t, ok, kind)
		}

		rental := &entity.Rental{RentalDate: time.Now(), InventoryID: 1, CustomerID: 1, StaffID: 1}
		require.NoError(t, repos.Rentals.Create(ctx, rental))
		busy, err := repos.Rentals.HasActiveRental(ctx, 1, 0)
		require.NoError(t, err)
		assert.True(t, busy)
		busy, err = repos.Rentals.HasActiveRental(ctx, 1, rental.ID)
		require.NoError(t, err)
		assert.False(t, busy)

		p := &entity.Payment{CustomerID: 1, StaffID: 1, RentalID: &rental.ID, Amount: decimal.RequireFromString("2.99"), PaymentDate: time.Now()}
		require.NoError(t, repos.Payments.Create(ctx, p))
		list, total, err := repos.Payments.List(ctx, entity.PaymentFilter{CustomerID: 1, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Equal(t, p.ID, list[0].ID)

		ok, err := repos.Rentals.Delete(ctx, rental.ID)
		require.NoError(t, err)
		assert.True(t, ok)
		got, err := repos.Payments.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Nil(t, got.RentalID, "ON DELETE SET NULL")
	})
}

func TestIntegration_TxRunnerRollback(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	runner := postgres.NewTxRunner(pool)

	err := runner.Run(ctx, func(tx ports.Repos) error {
		cat := &entity.Category{Name: "Temporal"}
		if err := tx.Categories.Create(ctx, cat); err != nil {
			return err
		}
		return domain.ErrBusinessRule
	})
	assert.ErrorIs(t, err, domain.ErrBusinessRule)

	exists, err := postgres.NewCategoryRepository(pool).ExistsByName(ctx, "temporal", 0)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestIntegration_LockInventorySerializaAlquileres(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	repos := postgres.NewRepos(pool)
	film := &entity.Film{Title: "Lock Film", LanguageID: 1, RentalDuration: 3,
		RentalRate: decimal.RequireFromString("0.99"), ReplacementCost: decimal.RequireFromString("9.99")}
	require.NoError(t, repos.Films.Create(ctx, film))
	var inventoryID int64
	require.NoError(t, pool.QueryRow(ctx, `INSERT INTO inventory (film_id) VALUES ($1) RETURNING inventory_id`, film.ID).Scan(&inventoryID))

	first, err := pool.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = first.Rollback(ctx) }()
	ok, err := postgres.NewRentalRepository(first).LockInventory(ctx, inventoryID)
	require.NoError(t, err)
	assert.True(t, ok)

	second, err := pool.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = second.Rollback(ctx) }()
	_, err = second.Exec(ctx, `SET LOCAL lock_timeout = '200ms'`)
	require.NoError(t, err)
	_, err = postgres.NewRentalRepository(second).LockInventory(ctx, inventoryID)
	assert.Error(t, err, "la segunda transacción espera al bloqueo de la primera")

	ok, err = repos.Rentals.LockInventory(ctx, 999999)
	require.NoError(t, err)
	assert.False(t, ok)
}
