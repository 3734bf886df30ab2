// Package auth owns accounts, sessions and profiles. Credential checks go
// through the Verifier boundary (bcrypt against the stored account list),
// sessions are a signed token plus a revocable auth flag in the KV store.
package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/AndhiniDev/dapur-azka-backend/internal/kvstore"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleCustomer     = "customer"
	RoleAdmin        = "admin"
	RoleCollaborator = "collaborator"
)

const (
	StatusActive    = "Aktif"
	StatusInactive  = "Nonaktif"
	StatusUnverified = "Verifikasi Tertunda"
)

var (
	ErrBadCredentials   = errors.New("email atau password salah")
	ErrEmailTaken       = errors.New("email already registered")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrPasswordMismatch = errors.New("password confirmation does not match")
	ErrAccountNotFound  = errors.New("account not found")
)

// Account is the back-office view of a user: credentials, role, status.
type Account struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	PasswordHash  string `json:"passwordHash,omitempty"`
	Role          string `json:"role"`
	Status        string `json:"status"`
	JoinDate      string `json:"joinDate"` // YYYY-MM-DD
	Avatar        string `json:"avatar,omitempty"`
	ProfileStatus string `json:"profileStatus,omitempty"`

	// Delivery profile, carried on the account so it survives logout.
	Phone      string `json:"phone,omitempty"`
	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
}

// Profile is the session-scoped user record, materialized on login and torn
// down on logout.
type Profile struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	PostalCode    string `json:"postalCode"`
	Role          string `json:"role"`
	Avatar        string `json:"avatar,omitempty"`
	ProfileStatus string `json:"profileStatus,omitempty"`
}

// Verifier is the credential-verification boundary. The default
// implementation checks bcrypt hashes in the account store; swap it out to
// back login with something else without touching the session model.
type Verifier interface {
	Verify(ctx context.Context, email, password string) (Account, error)
}

// CartClearer lets logout clear the user's cart without importing the cart
// package (orders of initialization: cart depends on catalog, not on auth).
type CartClearer interface {
	Clear(ctx context.Context, userID string) error
}

type Service struct {
	mu       sync.Mutex
	store    kvstore.Store
	verifier Verifier
	carts    CartClearer
	now      func() time.Time
}

func NewService(store kvstore.Store, carts CartClearer) *Service {
	s := &Service{store: store, carts: carts, now: time.Now}
	s.verifier = &storeVerifier{s: s}
	return s
}

// SetVerifier replaces the credential boundary. Nil restores the default.
func (s *Service) SetVerifier(v Verifier) {
	if v == nil {
		v = &storeVerifier{s: s}
	}
	s.verifier = v
}

// Register creates a customer account, logs it in, and materializes the
// profile.
func (s *Service) Register(ctx context.Context, name, email, password, confirm string) (Profile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if len(password) < 6 {
		return Profile{}, ErrPasswordTooShort
	}
	if password != confirm {
		return Profile{}, ErrPasswordMismatch
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Profile{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.accounts(ctx)
	if err != nil {
		return Profile{}, err
	}
	for _, a := range accounts {
		if a.Email == email {
			return Profile{}, ErrEmailTaken
		}
	}
	acc := Account{
		ID:            "user-" + uuid.NewString(),
		Name:          name,
		Email:         email,
		PasswordHash:  string(hash),
		Role:          RoleCustomer,
		Status:        StatusActive,
		JoinDate:      s.now().Format("2006-01-02"),
		ProfileStatus: "Pelanggan Baru",
	}
	accounts = append(accounts, acc)
	if err := s.store.Set(ctx, kvstore.KeyUsers, accounts); err != nil {
		return Profile{}, err
	}
	return s.openSession(ctx, acc)
}

// Login verifies credentials and opens a session.
func (s *Service) Login(ctx context.Context, email, password string) (Profile, error) {
	acc, err := s.verifier.Verify(ctx, strings.ToLower(strings.TrimSpace(email)), password)
	if err != nil {
		return Profile{}, err
	}
	return s.openSession(ctx, acc)
}

func (s *Service) openSession(ctx context.Context, acc Account) (Profile, error) {
	if err := s.store.Set(ctx, kvstore.AuthFlagKey(acc.ID), true); err != nil {
		return Profile{}, err
	}
	p := profileOf(acc)
	if err := s.store.Set(ctx, kvstore.UserProfileKey(acc.ID), p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Logout tears the session down: auth flag, session profile and cart all go.
func (s *Service) Logout(ctx context.Context, userID string) error {
	if err := s.store.Remove(ctx, kvstore.AuthFlagKey(userID)); err != nil {
		return err
	}
	if err := s.store.Remove(ctx, kvstore.UserProfileKey(userID)); err != nil {
		return err
	}
	if s.carts != nil {
		return s.carts.Clear(ctx, userID)
	}
	return nil
}

// IsAuthenticated reports whether the user has an open session. Storage
// trouble reads as "not logged in" rather than an error page.
func (s *Service) IsAuthenticated(ctx context.Context, userID string) bool {
	var flag bool
	found, err := s.store.Get(ctx, kvstore.AuthFlagKey(userID), &flag)
	return err == nil && found && flag
}

func (s *Service) Profile(ctx context.Context, userID string) (Profile, error) {
	var p Profile
	found, err := s.store.Get(ctx, kvstore.UserProfileKey(userID), &p)
	if err != nil {
		return Profile{}, err
	}
	if !found {
		return Profile{}, ErrAccountNotFound
	}
	return p, nil
}

// UpdateProfile merges the given fields into both the session profile and
// the durable account record.
func (s *Service) UpdateProfile(ctx context.Context, userID string, upd Profile) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.Profile(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	merge(&p, upd)
	if err := s.store.Set(ctx, kvstore.UserProfileKey(userID), p); err != nil {
		return Profile{}, err
	}

	accounts, err := s.accounts(ctx)
	if err != nil {
		return Profile{}, err
	}
	for i := range accounts {
		if accounts[i].ID == userID {
			accounts[i].Name = p.Name
			accounts[i].Phone = p.Phone
			accounts[i].Address = p.Address
			accounts[i].City = p.City
			accounts[i].PostalCode = p.PostalCode
			accounts[i].Avatar = p.Avatar
			accounts[i].ProfileStatus = p.ProfileStatus
			break
		}
	}
	if err := s.store.Set(ctx, kvstore.KeyUsers, accounts); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (s *Service) ChangePassword(ctx context.Context, userID, current, next, confirm string) error {
	if len(next) < 6 {
		return ErrPasswordTooShort
	}
	if next != confirm {
		return ErrPasswordMismatch
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.accounts(ctx)
	if err != nil {
		return err
	}
	for i := range accounts {
		if accounts[i].ID != userID {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(accounts[i].PasswordHash), []byte(current)) != nil {
			return ErrBadCredentials
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		accounts[i].PasswordHash = string(hash)
		return s.store.Set(ctx, kvstore.KeyUsers, accounts)
	}
	return ErrAccountNotFound
}

// DeleteAccount logs the user out and removes the account record.
func (s *Service) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.Logout(ctx, userID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeAccount(ctx, userID)
}

// --- back-office user management ---

// ListAccounts returns every account with the password hash blanked.
func (s *Service) ListAccounts(ctx context.Context) ([]Account, error) {
	accounts, err := s.accounts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Account, len(accounts))
	for i, a := range accounts {
		a.PasswordHash = ""
		out[i] = a
	}
	return out, nil
}

// UpdateAccount lets an admin change name, role and status.
func (s *Service) UpdateAccount(ctx context.Context, id, name, role, status string) (Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.accounts(ctx)
	if err != nil {
		return Account{}, err
	}
	for i := range accounts {
		if accounts[i].ID != id {
			continue
		}
		if name != "" {
			accounts[i].Name = name
		}
		if role != "" {
			accounts[i].Role = role
		}
		if status != "" {
			accounts[i].Status = status
		}
		if err := s.store.Set(ctx, kvstore.KeyUsers, accounts); err != nil {
			return Account{}, err
		}
		a := accounts[i]
		a.PasswordHash = ""
		return a, nil
	}
	return Account{}, ErrAccountNotFound
}

// RemoveAccount deletes a user from the back-office side.
func (s *Service) RemoveAccount(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeAccount(ctx, id)
}

// Seed creates the initial admin account unless the email already exists.
func (s *Service) Seed(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.accounts(ctx)
	if err != nil {
		return err
	}
	for _, a := range accounts {
		if a.Email == email {
			return nil
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	accounts = append(accounts, Account{
		ID:            "admin-" + uuid.NewString()[:8],
		Name:          "Admin Utama",
		Email:         email,
		PasswordHash:  string(hash),
		Role:          RoleAdmin,
		Status:        StatusActive,
		JoinDate:      s.now().Format("2006-01-02"),
		ProfileStatus: "Administrator",
	})
	return s.store.Set(ctx, kvstore.KeyUsers, accounts)
}

func (s *Service) accounts(ctx context.Context) ([]Account, error) {
	var accounts []Account
	if _, err := s.store.Get(ctx, kvstore.KeyUsers, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (s *Service) removeAccount(ctx context.Context, id string) error {
	accounts, err := s.accounts(ctx)
	if err != nil {
		return err
	}
	out := accounts[:0]
	removed := false
	for _, a := range accounts {
		if a.ID == id {
			removed = true
			continue
		}
		out = append(out, a)
	}
	if !removed {
		return ErrAccountNotFound
	}
	return s.store.Set(ctx, kvstore.KeyUsers, out)
}

type storeVerifier struct{ s *Service }

func (v *storeVerifier) Verify(ctx context.Context, email, password string) (Account, error) {
	accounts, err := v.s.accounts(ctx)
	if err != nil {
		return Account{}, err
	}
	for _, a := range accounts {
		if a.Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) != nil {
			return Account{}, ErrBadCredentials
		}
		if a.Status == StatusInactive {
			return Account{}, ErrBadCredentials
		}
		return a, nil
	}
	return Account{}, ErrBadCredentials
}

func profileOf(a Account) Profile {
	return Profile{
		ID:            a.ID,
		Name:          a.Name,
		Email:         a.Email,
		Phone:         a.Phone,
		Address:       a.Address,
		City:          a.City,
		PostalCode:    a.PostalCode,
		Role:          a.Role,
		Avatar:        a.Avatar,
		ProfileStatus: a.ProfileStatus,
	}
}

func merge(p *Profile, upd Profile) {
	if upd.Name != "" {
		p.Name = upd.Name
	}
	if upd.Phone != "" {
		p.Phone = upd.Phone
	}
	if upd.Address != "" {
		p.Address = upd.Address
	}
	if upd.City != "" {
		p.City = upd.City
	}
	if upd.PostalCode != "" {
		p.PostalCode = upd.PostalCode
	}
	if upd.Avatar != "" {
		p.Avatar = upd.Avatar
	}
	if upd.ProfileStatus != "" {
		p.ProfileStatus = upd.ProfileStatus
	}
}
