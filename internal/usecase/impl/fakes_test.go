package impl

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"

	"ideamatch/config"
	"ideamatch/internal/domain/entity"
	"ideamatch/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// The services are exercised against in-memory repositories behind a
// pass-through transaction manager, with the real bcrypt hasher and JWT
// issuer, so the credential-flow guarantees are checked end to end.

type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*entity.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[uuid.UUID]*entity.Account)}
}

func cloneAccount(a *entity.Account) *entity.Account {
	cp := *a

	return &cp
}

func (r *fakeAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	return cloneAccount(account), nil
}

func (r *fakeAccountRepo) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	email = strings.ToLower(email)
	for _, account := range r.accounts {
		if account.Email == email {
			return cloneAccount(account), nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

func (r *fakeAccountRepo) Create(_ context.Context, account *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account.Email = strings.ToLower(account.Email)
	for _, existing := range r.accounts {
		if existing.Email == account.Email {
			return errors.New("duplicate email")
		}
	}
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	r.accounts[account.ID] = cloneAccount(account)

	return nil
}

func (r *fakeAccountRepo) Update(_ context.Context, account *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[account.ID]; !ok {
		return repository.ErrAccountNotFound
	}
	r.accounts[account.ID] = cloneAccount(account)

	return nil
}

func (r *fakeAccountRepo) List(_ context.Context, filter repository.AccountFilter) ([]*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.Account
	for _, account := range r.accounts {
		if filter.Role != nil && account.Role != *filter.Role {
			continue
		}
		if filter.IsActive != nil && account.IsActive != *filter.IsActive {
			continue
		}
		out = append(out, cloneAccount(account))
	}

	return out, nil
}

func (r *fakeAccountRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[id]; !ok {
		return repository.ErrAccountNotFound
	}
	delete(r.accounts, id)

	return nil
}

// get returns the stored row directly for assertions.
func (r *fakeAccountRepo) get(id uuid.UUID) *entity.Account {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil
	}

	return cloneAccount(account)
}

func (r *fakeAccountRepo) getByEmail(email string) *entity.Account {
	account, err := r.FindByEmail(context.Background(), email)
	if err != nil {
		return nil
	}

	return account
}

type fakeIdeaRepo struct {
	mu    sync.Mutex
	ideas []*entity.Idea
}

func newFakeIdeaRepo() *fakeIdeaRepo {
	return &fakeIdeaRepo{}
}

func (r *fakeIdeaRepo) Create(_ context.Context, idea *entity.Idea) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if idea.ID == uuid.Nil {
		idea.ID = uuid.New()
	}
	cp := *idea
	r.ideas = append(r.ideas, &cp)

	return nil
}

func (r *fakeIdeaRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Idea, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, idea := range r.ideas {
		if idea.ID == id {
			cp := *idea

			return &cp, nil
		}
	}

	return nil, repository.ErrIdeaNotFound
}

func (r *fakeIdeaRepo) Search(_ context.Context, query repository.IdeaQuery) ([]*entity.Idea, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*entity.Idea
	for _, idea := range r.ideas {
		if query.FounderID != uuid.Nil && idea.FounderID != query.FounderID {
			continue
		}
		if query.Industry != "" && idea.Industry != query.Industry {
			continue
		}
		if query.Stage != "" && idea.Stage != query.Stage {
			continue
		}
		if query.Region != "" && idea.Region != query.Region {
			continue
		}
		if query.MinFunding > 0 && idea.FundingAmount < query.MinFunding {
			continue
		}
		if query.MaxFunding > 0 && idea.FundingAmount > query.MaxFunding {
			continue
		}
		if query.Search != "" {
			needle := strings.ToLower(query.Search)
			if !strings.Contains(strings.ToLower(idea.StartupName), needle) &&
				!strings.Contains(strings.ToLower(idea.PitchTitle), needle) {
				continue
			}
		}
		cp := *idea
		matched = append(matched, &cp)
	}

	total := int64(len(matched))

	limit := query.Limit
	if limit <= 0 {
		limit = 20
	}
	page := query.Page
	if page < 1 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}

	return matched[start:end], total, nil
}

type fakeInvestorProfileRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*entity.InvestorProfile
}

func newFakeInvestorProfileRepo() *fakeInvestorProfileRepo {
	return &fakeInvestorProfileRepo{profiles: make(map[uuid.UUID]*entity.InvestorProfile)}
}

func (r *fakeInvestorProfileRepo) FindByAccountID(_ context.Context, accountID uuid.UUID) (*entity.InvestorProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile, ok := r.profiles[accountID]
	if !ok {
		return nil, repository.ErrInvestorProfileNotFound
	}
	cp := *profile

	return &cp, nil
}

func (r *fakeInvestorProfileRepo) Create(_ context.Context, profile *entity.InvestorProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *profile
	r.profiles[profile.AccountID] = &cp

	return nil
}

func (r *fakeInvestorProfileRepo) Update(_ context.Context, profile *entity.InvestorProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[profile.AccountID]; !ok {
		return repository.ErrInvestorProfileNotFound
	}
	cp := *profile
	r.profiles[profile.AccountID] = &cp

	return nil
}

// stubFactory hands the fakes out as transaction-bound repositories.
type stubFactory struct {
	accounts *fakeAccountRepo
	ideas    *fakeIdeaRepo
	profiles *fakeInvestorProfileRepo
}

func (f *stubFactory) AccountRepo() repository.AccountRepository                 { return f.accounts }
func (f *stubFactory) IdeaRepo() repository.IdeaRepository                       { return f.ideas }
func (f *stubFactory) InvestorProfileRepo() repository.InvestorProfileRepository { return f.profiles }

// stubTxManager runs the callback directly; the fakes are already atomic.
type stubTxManager struct {
	factory *stubFactory
}

func (tm *stubTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(tm.factory)
}

// recordingMailer captures outbound mail instead of dialing SMTP.
type recordingMailer struct {
	mu       sync.Mutex
	otps     map[string]string // email -> last OTP
	links    map[string]string // email -> last reset URL
	failNext bool
}

func newRecordingMailer() *recordingMailer {
	return &recordingMailer{
		otps:  make(map[string]string),
		links: make(map[string]string),
	}
}

func (m *recordingMailer) SendOTP(_ context.Context, email, otp string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failNext {
		m.failNext = false

		return errors.New("smtp unavailable")
	}
	m.otps[email] = otp

	return nil
}

func (m *recordingMailer) SendResetLink(_ context.Context, email, resetURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failNext {
		m.failNext = false

		return errors.New("smtp unavailable")
	}
	m.links[email] = resetURL

	return nil
}

func (m *recordingMailer) lastOTP(email string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.otps[email]
}

func (m *recordingMailer) lastLink(email string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.links[email]
}

// recordingStorage captures uploads instead of talking to a bucket.
type recordingStorage struct {
	mu      sync.Mutex
	uploads map[string][]byte
	deleted []string
}

func newRecordingStorage() *recordingStorage {
	return &recordingStorage{uploads: make(map[string][]byte)}
}

func (s *recordingStorage) Upload(_ context.Context, key, _ string, content io.Reader) (string, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads[key] = data

	return "https://cdn.test/" + key, nil
}

func (s *recordingStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.uploads, key)
	s.deleted = append(s.deleted, key)

	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test-access-secret"
	cfg.SecretKey.Refresh = "test-refresh-secret"
	cfg.Auth = &config.AuthConfig{
		BcryptCost:      4,
		AccessTokenTTL:  config.DefaultAccessTokenTTL,
		RefreshTokenTTL: config.DefaultRefreshTokenTTL,
		OTPTTL:          config.DefaultOTPTTL,
		ResetTokenTTL:   config.DefaultResetTokenTTL,
	}
	cfg.Mail = &config.MailConfig{FrontendBaseURL: "https://app.test"}

	return cfg
}
