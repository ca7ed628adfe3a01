package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/moroapp/moro/internal/domain/model"
	"github.com/moroapp/moro/internal/domain/port"
	"github.com/moroapp/moro/internal/domain/valueobject"
)

// scannable abstracts pgx.Row and pgx.Rows for shared scan helpers.
type scannable interface {
	Scan(dest ...any) error
}

// FinancingApplicationRepo implements port.FinancingApplicationRepository.
type FinancingApplicationRepo struct {
	pool *pgxpool.Pool
}

// NewFinancingApplicationRepo creates a new PostgreSQL-backed application repository.
func NewFinancingApplicationRepo(pool *pgxpool.Pool) *FinancingApplicationRepo {
	return &FinancingApplicationRepo{pool: pool}
}

// Save persists an application using an upsert with optimistic concurrency control.
func (r *FinancingApplicationRepo) Save(ctx context.Context, app model.FinancingApplication) error {
	reasoningJSON, err := json.Marshal(app.Reasoning())
	if err != nil {
		return fmt.Errorf("marshal reasoning: %w", err)
	}

	const query = `
		INSERT INTO financing_applications (
			id, tenant_id, applicant_id, requested_amount, currency, purpose,
			phone_number, status, total_score, risk_level, recommendation,
			reasoning, reviewer_id, review_note, provider_reference,
			version, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (id) DO UPDATE SET
			status             = EXCLUDED.status,
			total_score        = EXCLUDED.total_score,
			risk_level         = EXCLUDED.risk_level,
			recommendation     = EXCLUDED.recommendation,
			reasoning          = EXCLUDED.reasoning,
			reviewer_id        = EXCLUDED.reviewer_id,
			review_note        = EXCLUDED.review_note,
			provider_reference = EXCLUDED.provider_reference,
			version            = EXCLUDED.version,
			updated_at         = EXCLUDED.updated_at
		WHERE financing_applications.version = EXCLUDED.version - 1
	`
	tag, err := r.pool.Exec(ctx, query,
		app.ID(), app.TenantID(), app.ApplicantID(),
		app.RequestedAmount().String(), app.Currency(), app.Purpose(),
		app.PhoneNumber(), app.Status().String(),
		app.TotalScore(), app.RiskLevel().String(), app.Recommendation().String(),
		reasoningJSON, app.ReviewerID(), app.ReviewNote(), app.ProviderReference(),
		app.Version(), app.CreatedAt(), app.UpdatedAt(),
	)
	if err != nil {
		return port.NewDataAccessError("save financing application", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("optimistic concurrency conflict: application %s has been modified", app.ID())
	}
	return nil
}

// FindByID retrieves an application by ID within a tenant.
func (r *FinancingApplicationRepo) FindByID(ctx context.Context, tenantID, id string) (model.FinancingApplication, error) {
	const query = `
		SELECT id, tenant_id, applicant_id, requested_amount, currency, purpose,
		       phone_number, status, total_score, risk_level, recommendation,
		       reasoning, reviewer_id, review_note, provider_reference,
		       version, created_at, updated_at
		FROM financing_applications
		WHERE tenant_id = $1 AND id = $2
	`
	row := r.pool.QueryRow(ctx, query, tenantID, id)
	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.FinancingApplication{}, port.ErrApplicationNotFound
		}
		return model.FinancingApplication{}, port.NewDataAccessError("find financing application", err)
	}
	return app, nil
}

// FindByApplicantID retrieves all applications submitted by one applicant.
func (r *FinancingApplicationRepo) FindByApplicantID(ctx context.Context, tenantID, applicantID string) ([]model.FinancingApplication, error) {
	const query = `
		SELECT id, tenant_id, applicant_id, requested_amount, currency, purpose,
		       phone_number, status, total_score, risk_level, recommendation,
		       reasoning, reviewer_id, review_note, provider_reference,
		       version, created_at, updated_at
		FROM financing_applications
		WHERE tenant_id = $1 AND applicant_id = $2
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, tenantID, applicantID)
	if err != nil {
		return nil, port.NewDataAccessError("query financing applications", err)
	}
	defer rows.Close()

	var result []model.FinancingApplication
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, port.NewDataAccessError("scan financing application", err)
		}
		result = append(result, app)
	}
	if err := rows.Err(); err != nil {
		return nil, port.NewDataAccessError("iterate financing applications", err)
	}
	return result, nil
}

func scanApplication(s scannable) (model.FinancingApplication, error) {
	var (
		id, tenantID, applicantID                 string
		amountStr, currency, purpose, phoneNumber string
		statusStr                                 string
		totalScore                                int
		riskStr, recommendationStr                string
		reasoningJSON                             []byte
		reviewerID, reviewNote, providerReference string
		version                                   int
		createdAt, updatedAt                      time.Time
	)

	err := s.Scan(
		&id, &tenantID, &applicantID, &amountStr, &currency, &purpose,
		&phoneNumber, &statusStr, &totalScore, &riskStr, &recommendationStr,
		&reasoningJSON, &reviewerID, &reviewNote, &providerReference,
		&version, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.FinancingApplication{}, err
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return model.FinancingApplication{}, fmt.Errorf("parse stored amount: %w", err)
	}

	status, err := valueobject.NewFinancingApplicationStatus(statusStr)
	if err != nil {
		return model.FinancingApplication{}, fmt.Errorf("parse stored status: %w", err)
	}

	var riskLevel valueobject.RiskLevel
	if riskStr != "" {
		riskLevel, err = valueobject.NewRiskLevel(riskStr)
		if err != nil {
			return model.FinancingApplication{}, fmt.Errorf("parse stored risk level: %w", err)
		}
	}

	var recommendation valueobject.Recommendation
	if recommendationStr != "" {
		recommendation, err = valueobject.NewRecommendation(recommendationStr)
		if err != nil {
			return model.FinancingApplication{}, fmt.Errorf("parse stored recommendation: %w", err)
		}
	}

	var reasoning []string
	if len(reasoningJSON) > 0 {
		if err := json.Unmarshal(reasoningJSON, &reasoning); err != nil {
			return model.FinancingApplication{}, fmt.Errorf("unmarshal reasoning: %w", err)
		}
	}

	return model.ReconstructFinancingApplication(
		id, tenantID, applicantID, amount, currency, purpose, phoneNumber,
		status, totalScore, riskLevel, recommendation, reasoning,
		reviewerID, reviewNote, providerReference,
		version, createdAt, updatedAt,
	), nil
}
