// Package testutil provides an in-memory store that mirrors the PostgreSQL
// repositories closely enough for service and handler tests.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"macrotracker/internal/models"
	"macrotracker/internal/repository"
)

type Store struct {
	mu     sync.Mutex
	nextID int64

	users        []*models.User
	sessions     map[string]*models.Session
	products     []*models.Product
	meals        []*models.Meal
	consumptions []*models.Consumption
	audit        []*models.AuditLog

	Users        *UserStore
	Sessions     *SessionStore
	Products     *ProductStore
	Meals        *MealStore
	Consumptions *ConsumptionStore
	Audit        *AuditStore
}

func New() *Store {
	s := &Store{sessions: make(map[string]*models.Session)}
	s.Users = &UserStore{s}
	s.Sessions = &SessionStore{s}
	s.Products = &ProductStore{s}
	s.Meals = &MealStore{s}
	s.Consumptions = &ConsumptionStore{s}
	s.Audit = &AuditStore{s}
	return s
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

// AddUser inserts a user with a cheap bcrypt hash of password.
func (s *Store) AddUser(username, email, password string, admin, approved bool) *models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	u := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		IsAdmin:      admin,
		IsApproved:   approved,
	}
	if err := s.Users.Create(context.Background(), u); err != nil {
		panic(err)
	}
	return u
}

// AuditActions returns the recorded audit actions in insertion order.
func (s *Store) AuditActions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	actions := make([]string, 0, len(s.audit))
	for _, a := range s.audit {
		actions = append(actions, a.Action)
	}
	return actions
}

func (s *Store) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

func (s *Store) ProductCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.products)
}

func (s *Store) ConsumptionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.consumptions)
}

type UserStore struct{ s *Store }

func (r *UserStore) find(match func(*models.User) bool) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.ID == id })
}

func (r *UserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Email == email })
}

func (r *UserStore) ExistsByEmailOrUsername(_ context.Context, email, username string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.exists(email, username), nil
}

func (r *UserStore) exists(email, username string) bool {
	for _, u := range r.s.users {
		if u.Email == email || strings.EqualFold(u.Username, username) {
			return true
		}
	}
	return false
}

func (r *UserStore) Create(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.exists(user.Email, user.Username) {
		return fmt.Errorf("%w: users_email_key", repository.ErrDuplicate)
	}
	user.ID = r.s.id()
	user.CreatedAt = time.Now().Add(time.Duration(user.ID) * time.Millisecond)
	cp := *user
	r.s.users = append(r.s.users, &cp)
	return nil
}

func (r *UserStore) update(id int64, fn func(*models.User)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.ID == id {
			fn(u)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *UserStore) UpdatePassword(_ context.Context, id int64, hash string) error {
	return r.update(id, func(u *models.User) { u.PasswordHash = hash })
}

func (r *UserStore) Approve(_ context.Context, id int64) error {
	return r.update(id, func(u *models.User) { u.IsApproved = true })
}

func (r *UserStore) list(match func(*models.User) bool) []*models.User {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.User
	for _, u := range r.s.users {
		if match(u) {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out
}

func (r *UserStore) List(_ context.Context) ([]*models.User, error) {
	users := r.list(func(*models.User) bool { return true })
	sort.Slice(users, func(i, j int) bool {
		if !users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].CreatedAt.After(users[j].CreatedAt)
		}
		return users[i].ID > users[j].ID
	})
	return users, nil
}

func (r *UserStore) ListPending(_ context.Context) ([]*models.User, error) {
	users := r.list(func(u *models.User) bool { return !u.IsApproved })
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *UserStore) HasAdmin(_ context.Context) (bool, error) {
	return len(r.list(func(u *models.User) bool { return u.IsAdmin })) > 0, nil
}

type SessionStore struct{ s *Store }

func (r *SessionStore) GetByID(_ context.Context, id string) (*models.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sess, ok := r.s.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *sess
	return &cp, nil
}

func (r *SessionStore) Create(_ context.Context, session *models.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	session.CreatedAt = time.Now()
	cp := *session
	r.s.sessions[session.ID] = &cp
	return nil
}

func (r *SessionStore) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.sessions, id)
	return nil
}

func (r *SessionStore) DeleteExpired(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, sess := range r.s.sessions {
		if sess.IsExpired() {
			delete(r.s.sessions, id)
			n++
		}
	}
	return n, nil
}

func (r *SessionStore) Extend(_ context.Context, id string, expiresAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sess, ok := r.s.sessions[id]; ok {
		sess.ExpiresAt = expiresAt
	}
	return nil
}

type ProductStore struct{ s *Store }

func (r *ProductStore) Create(_ context.Context, p *models.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = r.s.id()
	cp := *p
	r.s.products = append(r.s.products, &cp)
	return nil
}

func (r *ProductStore) GetByID(_ context.Context, userID, id int64) (*models.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p := r.s.product(userID, id); p != nil {
		cp := *p
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (s *Store) product(userID, id int64) *models.Product {
	for _, p := range s.products {
		if p.ID == id && p.UserID == userID {
			return p
		}
	}
	return nil
}

func (r *ProductStore) ListByUser(_ context.Context, userID int64) ([]*models.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.Product
	for _, p := range r.s.products {
		if p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Delete refuses to remove referenced products, like the RESTRICT foreign key.
func (r *ProductStore) Delete(_ context.Context, userID, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.consumptions {
		if c.ProductID == id {
			return fmt.Errorf("%w: consumptions_product_id_fkey", repository.ErrForeignKey)
		}
	}
	for i, p := range r.s.products {
		if p.ID == id && p.UserID == userID {
			r.s.products = append(r.s.products[:i], r.s.products[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type MealStore struct{ s *Store }

func (r *MealStore) Create(_ context.Context, m *models.Meal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m.ID = r.s.id()
	cp := *m
	cp.Date = models.Day(m.Date)
	r.s.meals = append(r.s.meals, &cp)
	return nil
}

func (s *Store) meal(userID, id int64) *models.Meal {
	for _, m := range s.meals {
		if m.ID == id && m.UserID == userID {
			return m
		}
	}
	return nil
}

func (r *MealStore) GetByID(_ context.Context, userID, id int64) (*models.Meal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m := r.s.meal(userID, id); m != nil {
		cp := *m
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (r *MealStore) list(match func(*models.Meal) bool) []*models.Meal {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.Meal
	for _, m := range r.s.meals {
		if match(m) {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out
}

func (r *MealStore) ListByUser(_ context.Context, userID int64) ([]*models.Meal, error) {
	meals := r.list(func(m *models.Meal) bool { return m.UserID == userID })
	sort.Slice(meals, func(i, j int) bool {
		a, b := meals[i], meals[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
	return meals, nil
}

func (r *MealStore) ListByUserOnDate(_ context.Context, userID int64, day time.Time) ([]*models.Meal, error) {
	day = models.Day(day)
	meals := r.list(func(m *models.Meal) bool { return m.UserID == userID && m.Date.Equal(day) })
	sort.Slice(meals, func(i, j int) bool {
		if meals[i].Name != meals[j].Name {
			return meals[i].Name < meals[j].Name
		}
		return meals[i].ID < meals[j].ID
	})
	return meals, nil
}

func (r *MealStore) ListRecentDates(_ context.Context, userID int64, limit int) ([]time.Time, error) {
	seen := make(map[time.Time]bool)
	var dates []time.Time
	for _, m := range r.list(func(m *models.Meal) bool { return m.UserID == userID }) {
		if !seen[m.Date] {
			seen[m.Date] = true
			dates = append(dates, m.Date)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })
	if len(dates) > limit {
		dates = dates[:limit]
	}
	return dates, nil
}

type ConsumptionStore struct{ s *Store }

func (r *ConsumptionStore) Create(_ context.Context, c *models.Consumption) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.meal(c.UserID, c.MealID) == nil || r.s.product(c.UserID, c.ProductID) == nil {
		return fmt.Errorf("%w: consumptions_meal_id_fkey", repository.ErrForeignKey)
	}
	c.ID = r.s.id()
	c.CreatedAt = time.Now()
	cp := *c
	r.s.consumptions = append(r.s.consumptions, &cp)
	return nil
}

func (r *ConsumptionStore) ListDetailsOnDate(_ context.Context, userID int64, day time.Time) ([]*models.ConsumptionDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	day = models.Day(day)
	var out []*models.ConsumptionDetail
	for _, c := range r.s.consumptions {
		if c.UserID != userID {
			continue
		}
		m := r.s.meal(userID, c.MealID)
		if m == nil || !m.Date.Equal(day) {
			continue
		}
		p := r.s.product(userID, c.ProductID)
		if p == nil {
			continue
		}
		out = append(out, &models.ConsumptionDetail{
			Consumption: *c,
			Per100g:     p.Per100g,
			ProductName: p.Name,
			MealName:    m.Name,
			MealDate:    m.Date,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].MealName != out[j].MealName {
			return out[i].MealName < out[j].MealName
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *ConsumptionStore) CountByProduct(_ context.Context, userID, productID int64) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, c := range r.s.consumptions {
		if c.UserID == userID && c.ProductID == productID {
			n++
		}
	}
	return n, nil
}

type AuditStore struct{ s *Store }

func (r *AuditStore) Create(_ context.Context, log *models.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	log.ID = r.s.id()
	log.CreatedAt = time.Now()
	cp := *log
	r.s.audit = append(r.s.audit, &cp)
	return nil
}

func (r *AuditStore) List(_ context.Context, limit, offset int) ([]*models.AuditLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.AuditLog
	for i := len(r.s.audit) - 1; i >= 0; i-- {
		cp := *r.s.audit[i]
		if cp.UserID != nil {
			for _, u := range r.s.users {
				if u.ID == *cp.UserID {
					name := u.Username
					cp.Username = &name
				}
			}
		}
		out = append(out, &cp)
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *AuditStore) Count(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.audit), nil
}
