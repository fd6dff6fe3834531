package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/orgvote/orgvote/internal/core/domain"
	"github.com/orgvote/orgvote/internal/core/ports"
)

type candidateRepository struct {
	db *sql.DB
}

func NewCandidateRepository(db *sql.DB) ports.CandidateRepository {
	return &candidateRepository{
		db: db,
	}
}

const candidateColumns = `
	c.id, c.name, COALESCE(c.email, ''), COALESCE(c.phone, ''), c.organization,
	COALESCE(c.agenda, ''), COALESCE(c.goals, ''), COALESCE(c.short_term_plans, ''),
	COALESCE(c.long_term_plans, ''), COALESCE(c.profile_image, ''), c.is_verified, c.created_at,
	(SELECT COUNT(*) FROM ballots WHERE candidate_id = c.id) AS vote_count
`

func (r *candidateRepository) Create(ctx context.Context, candidate *domain.Candidate) error {
	query := `
		INSERT INTO candidates (id, name, email, phone, organization, agenda, goals,
		                        short_term_plans, long_term_plans, profile_image, is_verified)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, NULLIF($6, ''), NULLIF($7, ''),
		        NULLIF($8, ''), NULLIF($9, ''), NULLIF($10, ''), $11)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		candidate.ID, candidate.Name, candidate.Email, candidate.Phone, candidate.Organization,
		candidate.Agenda, candidate.Goals, candidate.ShortTermPlans, candidate.LongTermPlans,
		candidate.ProfileImage, candidate.IsVerified,
	).Scan(&candidate.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert candidate: %w", err)
	}
	return nil
}

func (r *candidateRepository) Update(ctx context.Context, candidate *domain.Candidate) error {
	query := `
		UPDATE candidates
		SET name = $1, email = NULLIF($2, ''), phone = NULLIF($3, ''), agenda = NULLIF($4, ''),
		    goals = NULLIF($5, ''), short_term_plans = NULLIF($6, ''), long_term_plans = NULLIF($7, ''),
		    profile_image = NULLIF($8, '')
		WHERE id = $9 AND organization = $10
	`
	res, err := r.db.ExecContext(ctx, query,
		candidate.Name, candidate.Email, candidate.Phone, candidate.Agenda, candidate.Goals,
		candidate.ShortTermPlans, candidate.LongTermPlans, candidate.ProfileImage,
		candidate.ID, candidate.Organization,
	)
	if err != nil {
		return fmt.Errorf("failed to update candidate: %w", err)
	}
	return requireAffected(res)
}

func (r *candidateRepository) Delete(ctx context.Context, id uuid.UUID, organization string) error {
	// Candidate files go with the candidate; already-cast ballots stay in
	// the ledger untouched.
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM candidates WHERE id = $1 AND organization = $2`, id, organization)
	if err != nil {
		return fmt.Errorf("failed to delete candidate: %w", err)
	}
	return requireAffected(res)
}

func (r *candidateRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates c WHERE c.id = $1`
	candidate := &domain.Candidate{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&candidate.ID, &candidate.Name, &candidate.Email, &candidate.Phone, &candidate.Organization,
		&candidate.Agenda, &candidate.Goals, &candidate.ShortTermPlans, &candidate.LongTermPlans,
		&candidate.ProfileImage, &candidate.IsVerified, &candidate.CreatedAt, &candidate.VoteCount,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCandidateNotFound
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	return candidate, nil
}

func orderClause(order ports.CandidateOrder) string {
	switch order {
	case ports.OrderByVotes:
		return ` ORDER BY vote_count DESC, c.name ASC`
	case ports.OrderByCreated:
		return ` ORDER BY c.created_at DESC`
	default:
		return ` ORDER BY c.name ASC`
	}
}

func (r *candidateRepository) ListVotable(ctx context.Context, organization string, order ports.CandidateOrder) ([]domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + `
		FROM candidates c
		WHERE c.organization = $1 AND c.is_verified
	` + orderClause(order)

	rows, err := r.db.QueryContext(ctx, query, organization)
	if err != nil {
		return nil, fmt.Errorf("failed to list votable candidates: %w", err)
	}
	defer rows.Close()

	return scanCandidates(rows)
}

func (r *candidateRepository) ListByOrganization(ctx context.Context, organization string) ([]domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + `
		FROM candidates c
		WHERE c.organization = $1
	` + orderClause(ports.OrderByCreated)
	rows, err := r.db.QueryContext(ctx, query, organization)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	return scanCandidates(rows)
}

func (r *candidateRepository) ListAll(ctx context.Context) ([]domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + `
		FROM candidates c
	` + orderClause(ports.OrderByCreated)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	return scanCandidates(rows)
}

func (r *candidateRepository) SetVerified(ctx context.Context, id uuid.UUID, organization string, verified bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE candidates SET is_verified = $1 WHERE id = $2 AND organization = $3`,
		verified, id, organization)
	if err != nil {
		return fmt.Errorf("failed to update candidate verification: %w", err)
	}
	return requireAffected(res)
}

func (r *candidateRepository) AddFile(ctx context.Context, file *domain.CandidateFile) error {
	query := `
		INSERT INTO candidate_files (id, candidate_id, file_name, file_path, file_type)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''))
		RETURNING uploaded_at
	`
	err := r.db.QueryRowContext(ctx, query,
		file.ID, file.CandidateID, file.FileName, file.FilePath, file.FileType,
	).Scan(&file.UploadedAt)
	if err != nil {
		return fmt.Errorf("failed to insert candidate file: %w", err)
	}
	return nil
}

func (r *candidateRepository) FilesForCandidates(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]domain.CandidateFile, error) {
	query := `
		SELECT id, candidate_id, file_name, file_path, COALESCE(file_type, ''), uploaded_at
		FROM candidate_files
		WHERE candidate_id = ANY($1)
		ORDER BY uploaded_at
	`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candidate files: %w", err)
	}
	defer rows.Close()

	files := make(map[uuid.UUID][]domain.CandidateFile)
	for rows.Next() {
		var f domain.CandidateFile
		if err := rows.Scan(&f.ID, &f.CandidateID, &f.FileName, &f.FilePath, &f.FileType, &f.UploadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan candidate file: %w", err)
		}
		files[f.CandidateID] = append(files[f.CandidateID], f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating candidate files: %w", err)
	}
	return files, nil
}

func scanCandidates(rows *sql.Rows) ([]domain.Candidate, error) {
	var candidates []domain.Candidate
	for rows.Next() {
		var c domain.Candidate
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Email, &c.Phone, &c.Organization,
			&c.Agenda, &c.Goals, &c.ShortTermPlans, &c.LongTermPlans,
			&c.ProfileImage, &c.IsVerified, &c.CreatedAt, &c.VoteCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating candidates: %w", err)
	}
	return candidates, nil
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrCandidateNotFound
	}
	return nil
}
