// Package memory implementa los repositorios en memoria. Se usa en tests de casos de uso y handlers;
// Run emula la transacción restaurando una copia del estado si fn falla.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/dvdrental-api/internal/application/ports"
	"github.com/jhoicas/dvdrental-api/internal/domain"
	"github.com/jhoicas/dvdrental-api/internal/domain/entity"
	"github.com/jhoicas/dvdrental-api/internal/domain/repository"
)

var (
	_ ports.TxRunner                 = (*Store)(nil)
	_ repository.UserRepository      = (*UserRepo)(nil)
	_ repository.FilmRepository      = (*FilmRepo)(nil)
	_ repository.CategoryRepository  = (*CategoryRepo)(nil)
	_ repository.RentalRepository    = (*RentalRepo)(nil)
	_ repository.PaymentRepository   = (*PaymentRepo)(nil)
	_ repository.ReferenceRepository = (*RefRepo)(nil)
)

// Store estado compartido por todos los repositorios en memoria.
type Store struct {
	mu sync.Mutex

	users      map[int64]entity.User
	films      map[int64]entity.Film
	categories map[int64]entity.Category
	filmCats   map[int64][]int64 // film_id -> category_ids
	rentals    map[int64]entity.Rental
	payments   map[int64]entity.Payment
	refs       map[entity.RefKind]map[int64]struct{}
	seq        int64
}

// NewStore construye un Store vacío.
func NewStore() *Store {
	return &Store{
		users:      map[int64]entity.User{},
		films:      map[int64]entity.Film{},
		categories: map[int64]entity.Category{},
		filmCats:   map[int64][]int64{},
		rentals:    map[int64]entity.Rental{},
		payments:   map[int64]entity.Payment{},
		refs:       map[entity.RefKind]map[int64]struct{}{},
	}
}

// Repos devuelve los repositorios sobre este Store.
func (s *Store) Repos() ports.Repos {
	return ports.Repos{
		Users:      &UserRepo{s: s},
		Films:      &FilmRepo{s: s},
		Categories: &CategoryRepo{s: s},
		Rentals:    &RentalRepo{s: s},
		Payments:   &PaymentRepo{s: s},
		Refs:       &RefRepo{s: s},
	}
}

// Run implementa ports.TxRunner.
func (s *Store) Run(ctx context.Context, fn func(tx ports.Repos) error) error {
	snap := s.snapshot()
	if err := fn(s.Repos()); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// AddRef registra ids existentes de una tabla referenciada (customer, staff, inventory...).
func (s *Store) AddRef(kind entity.RefKind, ids ...int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.refs[kind] == nil {
		s.refs[kind] = map[int64]struct{}{}
	}
	for _, id := range ids {
		s.refs[kind][id] = struct{}{}
	}
}

// LinkFilmCategory asocia una película a una categoría.
func (s *Store) LinkFilmCategory(filmID, categoryID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filmCats[filmID] = append(s.filmCats[filmID], categoryID)
}

func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

type snapshot struct {
	users      map[int64]entity.User
	films      map[int64]entity.Film
	categories map[int64]entity.Category
	rentals    map[int64]entity.Rental
	payments   map[int64]entity.Payment
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot{
		users:      cloneMap(s.users),
		films:      cloneMap(s.films),
		categories: cloneMap(s.categories),
		rentals:    cloneMap(s.rentals),
		payments:   cloneMap(s.payments),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = snap.users
	s.films = snap.films
	s.categories = snap.categories
	s.rentals = snap.rentals
	s.payments = snap.payments
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}

// ── Users ─────────────────────────────────────────────────────────────────────

// UserRepo repositorio de usuarios en memoria.
type UserRepo struct{ s *Store }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.users {
		if x.Username == u.Username || strings.EqualFold(x.Email, u.Email) {
			return domain.ErrUserAlreadyExists
		}
	}
	u.ID = r.s.nextID()
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) find(match func(entity.User) bool) *entity.User {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if match(u) {
			u := u
			return &u
		}
	}
	return nil
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Username == username }), nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return strings.EqualFold(u.Email, email) }), nil
}

func (r *UserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	u, _ := r.GetByUsername(ctx, username)
	return u != nil, nil
}

func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	u, _ := r.GetByEmail(ctx, email)
	return u != nil, nil
}

func (r *UserRepo) update(id int64, fn func(*entity.User)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	fn(&u)
	u.UpdatedAt = time.Now()
	r.s.users[id] = u
	return nil
}

func (r *UserRepo) SetActive(_ context.Context, id int64, active bool) error {
	return r.update(id, func(u *entity.User) { u.IsActive = active })
}

func (r *UserRepo) UpdatePassword(_ context.Context, id int64, hash string) error {
	return r.update(id, func(u *entity.User) { u.PasswordHash = hash })
}

func (r *UserRepo) TouchLastLogin(_ context.Context, id int64, at time.Time) error {
	return r.update(id, func(u *entity.User) { u.LastLogin = &at })
}

// ── Films ─────────────────────────────────────────────────────────────────────

// FilmRepo repositorio de películas en memoria.
type FilmRepo struct{ s *Store }

func (r *FilmRepo) List(_ context.Context, f entity.FilmFilter) ([]*entity.Film, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	search := strings.ToLower(f.Search)
	var all []*entity.Film
	for id, film := range r.s.films {
		if search != "" {
			desc := ""
			if film.Description != nil {
				desc = *film.Description
			}
			if !strings.Contains(strings.ToLower(film.Title), search) && !strings.Contains(strings.ToLower(desc), search) {
				continue
			}
		}
		if f.CategoryID != 0 && !containsID(r.s.filmCats[id], f.CategoryID) {
			continue
		}
		film := film
		all = append(all, &film)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Title < all[j].Title })
	return page(all, f.Limit, f.Offset), len(all), nil
}

func containsID(ids []int64, id int64) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

func (r *FilmRepo) GetByID(_ context.Context, id int64) (*entity.Film, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f, ok := r.s.films[id]
	if !ok {
		return nil, nil
	}
	return &f, nil
}

func (r *FilmRepo) Create(_ context.Context, f *entity.Film) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f.ID = r.s.nextID()
	f.LastUpdate = time.Now()
	r.s.films[f.ID] = *f
	return nil
}

func (r *FilmRepo) Update(_ context.Context, f *entity.Film) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f.LastUpdate = time.Now()
	r.s.films[f.ID] = *f
	return nil
}

func (r *FilmRepo) Delete(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.films[id]
	delete(r.s.films, id)
	return ok, nil
}

// ── Categories ────────────────────────────────────────────────────────────────

// CategoryRepo repositorio de categorías en memoria.
type CategoryRepo struct{ s *Store }

func (r *CategoryRepo) List(_ context.Context, limit, offset int) ([]*entity.Category, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := make([]*entity.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		c := c
		all = append(all, &c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return page(all, limit, offset), len(all), nil
}

func (r *CategoryRepo) GetByID(_ context.Context, id int64) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CategoryRepo) ExistsByName(_ context.Context, name string, excludeID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, c := range r.s.categories {
		if id != excludeID && strings.EqualFold(c.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c.ID = r.s.nextID()
	c.LastUpdate = time.Now()
	r.s.categories[c.ID] = *c
	return nil
}

func (r *CategoryRepo) Update(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c.LastUpdate = time.Now()
	r.s.categories[c.ID] = *c
	return nil
}

func (r *CategoryRepo) Delete(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.categories[id]
	delete(r.s.categories, id)
	return ok, nil
}

// ── Rentals ───────────────────────────────────────────────────────────────────

// RentalRepo repositorio de alquileres en memoria.
type RentalRepo struct{ s *Store }

func (r *RentalRepo) List(_ context.Context, f entity.RentalFilter) ([]*entity.Rental, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.Rental
	for _, x := range r.s.rentals {
		if f.CustomerID != 0 && x.CustomerID != f.CustomerID {
			continue
		}
		if f.StaffID != 0 && x.StaffID != f.StaffID {
			continue
		}
		x := x
		all = append(all, &x)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].RentalDate.After(all[j].RentalDate) })
	return page(all, f.Limit, f.Offset), len(all), nil
}

func (r *RentalRepo) GetByID(_ context.Context, id int64) (*entity.Rental, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	x, ok := r.s.rentals[id]
	if !ok {
		return nil, nil
	}
	return &x, nil
}

// LockInventory solo comprueba existencia; el mutex del Store ya serializa.
func (r *RentalRepo) LockInventory(_ context.Context, inventoryID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.refs[entity.RefInventory][inventoryID]
	return ok, nil
}

func (r *RentalRepo) HasActiveRental(_ context.Context, inventoryID, excludeRentalID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, x := range r.s.rentals {
		if id != excludeRentalID && x.InventoryID == inventoryID && x.ReturnDate == nil {
			return true, nil
		}
	}
	return false, nil
}

func (r *RentalRepo) Create(_ context.Context, x *entity.Rental) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	x.ID = r.s.nextID()
	x.LastUpdate = time.Now()
	r.s.rentals[x.ID] = *x
	r.s.addRefLocked(entity.RefRental, x.ID)
	return nil
}

func (r *RentalRepo) Update(_ context.Context, x *entity.Rental) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	x.LastUpdate = time.Now()
	r.s.rentals[x.ID] = *x
	return nil
}

func (r *RentalRepo) Delete(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.rentals[id]
	delete(r.s.rentals, id)
	delete(r.s.refs[entity.RefRental], id)
	return ok, nil
}

func (s *Store) addRefLocked(kind entity.RefKind, id int64) {
	if s.refs[kind] == nil {
		s.refs[kind] = map[int64]struct{}{}
	}
	s.refs[kind][id] = struct{}{}
}

// ── Payments ──────────────────────────────────────────────────────────────────

// PaymentRepo repositorio de pagos en memoria.
type PaymentRepo struct{ s *Store }

func (r *PaymentRepo) List(_ context.Context, f entity.PaymentFilter) ([]*entity.Payment, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.Payment
	for _, p := range r.s.payments {
		if f.CustomerID != 0 && p.CustomerID != f.CustomerID {
			continue
		}
		if f.StaffID != 0 && p.StaffID != f.StaffID {
			continue
		}
		p := p
		all = append(all, &p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].PaymentDate.After(all[j].PaymentDate) })
	return page(all, f.Limit, f.Offset), len(all), nil
}

func (r *PaymentRepo) GetByID(_ context.Context, id int64) (*entity.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.payments[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *PaymentRepo) Create(_ context.Context, p *entity.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = r.s.nextID()
	r.s.payments[p.ID] = *p
	return nil
}

func (r *PaymentRepo) Update(_ context.Context, p *entity.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.payments[p.ID] = *p
	return nil
}

func (r *PaymentRepo) Delete(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.payments[id]
	delete(r.s.payments, id)
	return ok, nil
}

// ── References ────────────────────────────────────────────────────────────────

// RefRepo verifica existencia contra los ids registrados con AddRef.
type RefRepo struct{ s *Store }

func (r *RefRepo) Exists(_ context.Context, kind entity.RefKind, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.refs[kind][id]
	return ok, nil
}
