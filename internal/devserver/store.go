package devserver

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/waitlistadmin/internal/client/models"
	"github.com/dmitrijs2005/waitlistadmin/internal/common"
)

const timeLayout = time.RFC3339

type admin struct {
	ID              string
	Name            string
	Email           string
	PasswordHash    []byte
	CreatedAt       time.Time
	UpdatedAt       time.Time
	EmailVerifiedAt time.Time
	LastLoginAt     time.Time
	IsActive        bool
}

type pendingCode struct {
	code    string
	expires time.Time
}

// Store is the in-memory state of the development backend.
type Store struct {
	mu sync.RWMutex

	bcryptCost int
	now        func() time.Time

	admins   map[string]*admin // by id
	codes    map[string]pendingCode
	waitlist []models.WaitlistUser
	users    []models.User
	pinSet   map[int64]bool
	tracking models.TrackingData
	nextID   int64
}

func NewStore(bcryptCost int, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		bcryptCost: bcryptCost,
		now:        now,
		admins:     make(map[string]*admin),
		codes:      make(map[string]pendingCode),
		pinSet:     make(map[int64]bool),
		nextID:     1,
	}
}

func normEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Store) adminByEmail(email string) *admin {
	email = normEmail(email)
	for _, a := range s.admins {
		if a.Email == email {
			return a
		}
	}
	return nil
}

// AddAdmin creates an admin with a bcrypt-hashed password.
func (s *Store) AddAdmin(name, email, password string) (admin, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return admin{}, fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.adminByEmail(email) != nil {
		return admin{}, common.ErrorAlreadyExists
	}
	now := s.now().UTC()
	a := &admin{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(name),
		Email:        normEmail(email),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
		IsActive:     true,
	}
	s.admins[a.ID] = a
	return *a, nil
}

// Authenticate checks email and password.
func (s *Store) Authenticate(email, password string) (admin, error) {
	s.mu.RLock()
	a := s.adminByEmail(email)
	var cp admin
	if a != nil {
		cp = *a
	}
	s.mu.RUnlock()

	if a == nil || !cp.IsActive {
		return admin{}, common.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(cp.PasswordHash, []byte(password)); err != nil {
		return admin{}, common.ErrInvalidCredentials
	}
	return cp, nil
}

// IssueCode remembers code as the pending login code of email.
func (s *Store) IssueCode(email, code string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[normEmail(email)] = pendingCode{code: code, expires: s.now().Add(ttl)}
}

// ConsumeCode checks the pending code of email and, when it matches,
// completes the login.
func (s *Store) ConsumeCode(email, code string) (admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email = normEmail(email)
	p, ok := s.codes[email]
	if !ok || p.code != code || s.now().After(p.expires) {
		return admin{}, common.ErrInvalidVerificationCode
	}
	a := s.adminByEmail(email)
	if a == nil {
		return admin{}, common.ErrInvalidVerificationCode
	}
	delete(s.codes, email)

	now := s.now().UTC()
	if a.EmailVerifiedAt.IsZero() {
		a.EmailVerifiedAt = now
	}
	a.LastLoginAt = now
	return *a, nil
}

func (s *Store) AdminByID(id string) (admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.admins[id]
	if !ok {
		return admin{}, common.ErrorNotFound
	}
	return *a, nil
}

// UpdateAdmin applies patch to the admin id.
func (s *Store) UpdateAdmin(id string, patch models.ProfilePatch) (admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.admins[id]
	if !ok {
		return admin{}, common.ErrorNotFound
	}
	if patch.Email != nil {
		email := normEmail(*patch.Email)
		if other := s.adminByEmail(email); other != nil && other.ID != id {
			return admin{}, common.ErrorAlreadyExists
		}
		a.Email = email
	}
	if patch.Name != nil {
		a.Name = strings.TrimSpace(*patch.Name)
	}
	a.UpdatedAt = s.now().UTC()
	return *a, nil
}

// Admins lists admins, oldest first.
func (s *Store) Admins() []admin {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]admin, 0, len(s.admins))
	for _, a := range s.admins {
		out = append(out, *a)
	}
	slices.SortFunc(out, func(a, b admin) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.Email, b.Email)
	})
	return out
}

func (s *Store) Waitlist() []models.WaitlistUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.waitlist)
}

func (s *Store) AddToWaitlist(in models.NewWaitlistUser) (models.WaitlistUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := normEmail(in.EmailAddress)
	for _, w := range s.waitlist {
		if w.EmailAddress == email {
			return models.WaitlistUser{}, common.ErrorAlreadyExists
		}
	}
	w := models.WaitlistUser{
		ID:            s.nextID,
		EmailAddress:  email,
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Country:       in.Country,
		WalletAddress: in.WalletAddress,
		CreatedAt:     s.now().UTC().Format(timeLayout),
	}
	s.nextID++
	s.waitlist = append(s.waitlist, w)
	return w, nil
}

func (s *Store) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.users)
}

func (s *Store) User(id int64) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, common.ErrorNotFound
}

func (s *Store) CreateUser(in models.NewUser) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Username, in.Username) {
			return models.User{}, common.ErrorAlreadyExists
		}
	}
	status := in.VerificationStatus
	if status == "" {
		status = "pending"
	}
	now := s.now().UTC().Format(timeLayout)
	u := models.User{
		ID:                 s.nextID,
		Username:           in.Username,
		PhoneNumber:        in.PhoneNumber,
		WalletAddress:      in.WalletAddress,
		VerificationStatus: status,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	s.pinSet[u.ID] = in.Pin != ""
	s.nextID++
	s.users = append(s.users, u)
	return u, nil
}

func (s *Store) SetVerification(id int64, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i].VerificationStatus = status
			s.users[i].UpdatedAt = s.now().UTC().Format(timeLayout)
			return nil
		}
	}
	return common.ErrorNotFound
}

func (s *Store) Tracking() models.TrackingData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tracking
}

// SetTracking replaces the usage-tracking report.
func (s *Store) SetTracking(td models.TrackingData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tracking = td
}
