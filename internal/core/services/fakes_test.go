package services

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/orgvote/orgvote/internal/core/domain"
	"github.com/orgvote/orgvote/internal/core/ports"
)

// In-memory repositories for service tests. The ballot fake reproduces
// the storage-layer behavior the services rely on: the candidate
// predicate checked inside the insert and the (voter, organization)
// uniqueness constraint.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) SetVoterVerified(_ context.Context, voterID uuid.UUID, organization string, verified bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[voterID]
	if !ok || u.Role != domain.RoleVoter || u.Organization != organization {
		return domain.ErrVoterNotFound
	}
	u.IsVerified = verified
	return nil
}

func (r *fakeUserRepo) ListVoters(_ context.Context, organization string) ([]domain.VoterOverview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var voters []domain.VoterOverview
	for _, u := range r.users {
		if u.Role == domain.RoleVoter && u.Organization == organization {
			voters = append(voters, domain.VoterOverview{User: *u})
		}
	}
	return voters, nil
}

func (r *fakeUserRepo) ListAllVoters(_ context.Context) ([]domain.VoterOverview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var voters []domain.VoterOverview
	for _, u := range r.users {
		if u.Role == domain.RoleVoter {
			voters = append(voters, domain.VoterOverview{User: *u})
		}
	}
	return voters, nil
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*domain.VoterProfile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uuid.UUID]*domain.VoterProfile)}
}

func (r *fakeProfileRepo) Upsert(_ context.Context, profile *domain.VoterProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *profile
	r.profiles[profile.VoterID] = &copied
	return nil
}

func (r *fakeProfileRepo) GetByVoterID(_ context.Context, voterID uuid.UUID) (*domain.VoterProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[voterID]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

type voterOrg struct {
	voterID uuid.UUID
	org     string
}

type fakeBallotRepo struct {
	mu         sync.Mutex
	candidates *fakeCandidateRepo
	byVoter    map[voterOrg]*domain.Ballot
}

func newFakeBallotRepo(candidates *fakeCandidateRepo) *fakeBallotRepo {
	return &fakeBallotRepo{
		candidates: candidates,
		byVoter:    make(map[voterOrg]*domain.Ballot),
	}
}

func (r *fakeBallotRepo) Insert(_ context.Context, ballot *domain.Ballot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.candidates.items[ballot.CandidateID]
	if !ok || !c.IsVerified || c.Organization != ballot.Organization {
		return domain.ErrCandidateIneligible
	}

	key := voterOrg{ballot.VoterID, ballot.Organization}
	if _, exists := r.byVoter[key]; exists {
		return domain.ErrAlreadyVoted
	}

	copied := *ballot
	r.byVoter[key] = &copied
	return nil
}

func (r *fakeBallotRepo) GetByVoter(_ context.Context, voterID uuid.UUID, organization string) (*domain.Ballot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.byVoter[voterOrg{voterID, organization}]
	if !ok {
		return nil, nil
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBallotRepo) ListRecords(_ context.Context, organization string) ([]domain.BallotRecord, error) {
	return nil, nil
}

func (r *fakeBallotRepo) ListAllRecords(_ context.Context) ([]domain.BallotRecord, error) {
	return nil, nil
}

type fakeCandidateRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*domain.Candidate
	files map[uuid.UUID][]domain.CandidateFile
}

func newFakeCandidateRepo() *fakeCandidateRepo {
	return &fakeCandidateRepo{
		items: make(map[uuid.UUID]*domain.Candidate),
		files: make(map[uuid.UUID][]domain.CandidateFile),
	}
}

func (r *fakeCandidateRepo) Create(_ context.Context, candidate *domain.Candidate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *candidate
	r.items[candidate.ID] = &copied
	return nil
}

func (r *fakeCandidateRepo) Update(_ context.Context, candidate *domain.Candidate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[candidate.ID]; !ok {
		return domain.ErrCandidateNotFound
	}
	copied := *candidate
	r.items[candidate.ID] = &copied
	return nil
}

func (r *fakeCandidateRepo) Delete(_ context.Context, id uuid.UUID, organization string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok || c.Organization != organization {
		return domain.ErrCandidateNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeCandidateRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok {
		return nil, domain.ErrCandidateNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *fakeCandidateRepo) ListVotable(_ context.Context, organization string, _ ports.CandidateOrder) ([]domain.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Candidate
	for _, c := range r.items {
		if c.Organization == organization && c.IsVerified {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCandidateRepo) ListByOrganization(_ context.Context, organization string) ([]domain.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Candidate
	for _, c := range r.items {
		if c.Organization == organization {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCandidateRepo) ListAll(_ context.Context) ([]domain.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Candidate
	for _, c := range r.items {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCandidateRepo) SetVerified(_ context.Context, id uuid.UUID, organization string, verified bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok || c.Organization != organization {
		return domain.ErrCandidateNotFound
	}
	c.IsVerified = verified
	return nil
}

func (r *fakeCandidateRepo) AddFile(_ context.Context, file *domain.CandidateFile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.files[file.CandidateID] = append(r.files[file.CandidateID], *file)
	return nil
}

func (r *fakeCandidateRepo) FilesForCandidates(_ context.Context, ids []uuid.UUID) (map[uuid.UUID][]domain.CandidateFile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[uuid.UUID][]domain.CandidateFile)
	for _, id := range ids {
		if files, ok := r.files[id]; ok {
			out[id] = append([]domain.CandidateFile(nil), files...)
		}
	}
	return out, nil
}

type fakeOrgRepo struct {
	mu   sync.Mutex
	orgs map[string]*domain.Organization
}

func newFakeOrgRepo() *fakeOrgRepo {
	return &fakeOrgRepo{orgs: make(map[string]*domain.Organization)}
}

func (r *fakeOrgRepo) CreateWithAdmin(_ context.Context, user *domain.User, _ *domain.AdminDetails, org *domain.Organization) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.orgs[org.Name]; exists {
		return domain.ErrOrganizationTaken
	}
	copied := *org
	r.orgs[org.Name] = &copied
	return nil
}

func (r *fakeOrgRepo) ListOverviews(_ context.Context) ([]domain.OrganizationOverview, error) {
	return nil, nil
}
