package exhibitors

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smart-exhibitor/backend/internal/models"
)

// Store is the persistence collaborator for exhibitor records. Mutations are
// field-scoped: each method updates only the sub-resource it names, so
// concurrent writers touching different sub-resources cannot clobber each
// other with stale whole-document writes.
type Store interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Exhibitor, error)
	GetByEmail(ctx context.Context, email string) (*models.Exhibitor, error)
	Insert(ctx context.Context, ex *models.Exhibitor) error
	List(ctx context.Context, excludeEmail string) ([]models.ExhibitorPublic, error)
	Stats(ctx context.Context, excludeEmail string) (models.DashboardStats, error)
	SetLogo(ctx context.Context, id uuid.UUID, logo models.LogoSubmission) error
	SetCompanyInfo(ctx context.Context, id uuid.UUID, info models.CompanyInfo) error
	SetBoothUpgrade(ctx context.Context, id uuid.UUID, upgrade models.BoothUpgrade) error
	SetWebinarDate(ctx context.Context, id uuid.UUID, date time.Time) error
	SetBanner(ctx context.Context, id uuid.UUID, b models.MarketingBanner) error
	SetLogoApproval(ctx context.Context, id uuid.UUID, approved bool) error
	SetCompanyInfoApproval(ctx context.Context, id uuid.UUID, approved bool) error
	SetBoothUpgradeApproval(ctx context.Context, id uuid.UUID, approved bool) error
	SetPaymentStatus(ctx context.Context, id uuid.UUID, status models.PaymentStatus) error
	SetChecklistItem(ctx context.Context, id uuid.UUID, item string, done bool) error
	DeleteAllExcept(ctx context.Context, email string) (int64, error)
}

// Repository implements Store on PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an exhibitor repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const exhibitorColumns = `id, email, password_hash, company_name, contact_name,
	COALESCE(phone,''), COALESCE(website,''), COALESCE(booth_number,''),
	booth_size, payment_status,
	COALESCE(logo_filename,''), COALESCE(logo_original_name,''), COALESCE(logo_path,''), logo_approved,
	COALESCE(company_description,''), COALESCE(company_products,'{}'::text[]), COALESCE(company_target_audience,''), company_info_approved,
	upgrade_requested, COALESCE(upgrade_current_size,''), COALESCE(upgrade_requested_size,''), upgrade_approved,
	webinar_date,
	banner_generated, COALESCE(banner_image_path,''), banner_event_name,
	checklist_logo_uploaded, checklist_company_info_submitted, checklist_webinar_date_selected, checklist_banner_generated,
	created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExhibitor(row rowScanner) (*models.Exhibitor, error) {
	var (
		ex      models.Exhibitor
		logo    models.LogoSubmission
		info    models.CompanyInfo
		upgrade models.BoothUpgrade
		boothSz string
		payment string
		upCur   string
		upReq   string
	)
	err := row.Scan(
		&ex.ID, &ex.Email, &ex.Password, &ex.CompanyName, &ex.ContactName,
		&ex.Phone, &ex.Website, &ex.BoothNumber,
		&boothSz, &payment,
		&logo.Filename, &logo.OriginalName, &logo.StoragePath, &logo.Approved,
		&info.Description, &info.Products, &info.TargetAudience, &info.Approved,
		&upgrade.Requested, &upCur, &upReq, &upgrade.Approved,
		&ex.WebinarDate,
		&ex.Banner.Generated, &ex.Banner.ImagePath, &ex.Banner.EventName,
		&ex.Checklist.LogoUploaded, &ex.Checklist.CompanyInfoSubmitted,
		&ex.Checklist.WebinarDateSelected, &ex.Checklist.MarketingBannerGenerated,
		&ex.CreatedAt, &ex.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	ex.BoothSize = models.BoothSize(boothSz)
	ex.PaymentStatus = models.PaymentStatus(payment)
	if logo.Filename != "" {
		ex.Logo = &logo
	}
	if info.Description != "" || len(info.Products) > 0 {
		ex.CompanyInfo = &info
	}
	if upgrade.Requested {
		upgrade.CurrentSize = models.BoothSize(upCur)
		upgrade.RequestedSize = models.BoothSize(upReq)
		ex.BoothUpgrade = &upgrade
	}
	return &ex, nil
}

// GetByID returns an exhibitor by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Exhibitor, error) {
	q := fmt.Sprintf(`SELECT %s FROM exhibitors WHERE id = $1`, exhibitorColumns)
	return scanExhibitor(r.pool.QueryRow(ctx, q, id))
}

// GetByEmail returns an exhibitor by email.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*models.Exhibitor, error) {
	q := fmt.Sprintf(`SELECT %s FROM exhibitors WHERE email = $1`, exhibitorColumns)
	return scanExhibitor(r.pool.QueryRow(ctx, q, email))
}

// Insert creates a new exhibitor record with defaults for all onboarding and
// approval state. Fills ID, CreatedAt and UpdatedAt on success.
func (r *Repository) Insert(ctx context.Context, ex *models.Exhibitor) error {
	const q = `INSERT INTO exhibitors
		(email, password_hash, company_name, contact_name, phone, website, booth_number, booth_size, payment_status, banner_event_name)
		VALUES ($1, $2, $3, $4, NULLIF($5,''), NULLIF($6,''), NULLIF($7,''), $8, $9, $10)
		RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, q,
		ex.Email, ex.Password, ex.CompanyName, ex.ContactName,
		ex.Phone, ex.Website, ex.BoothNumber,
		string(ex.BoothSize), string(ex.PaymentStatus), ex.Banner.EventName,
	).Scan(&ex.ID, &ex.CreatedAt, &ex.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert exhibitor: %w", err)
	}
	return nil
}

// List returns all exhibitors except excludeEmail, newest first, without
// password hashes.
func (r *Repository) List(ctx context.Context, excludeEmail string) ([]models.ExhibitorPublic, error) {
	q := fmt.Sprintf(`SELECT %s FROM exhibitors WHERE email <> $1 ORDER BY created_at DESC`, exhibitorColumns)
	rows, err := r.pool.Query(ctx, q, excludeEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.ExhibitorPublic
	for rows.Next() {
		ex, err := scanExhibitor(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, ex.ToPublic())
	}
	return list, rows.Err()
}

// Stats computes the live admin dashboard counts, excluding the admin record.
func (r *Repository) Stats(ctx context.Context, excludeEmail string) (models.DashboardStats, error) {
	const q = `SELECT
		COUNT(*),
		COUNT(*) FILTER (WHERE logo_filename IS NOT NULL AND NOT logo_approved),
		COUNT(*) FILTER (WHERE company_description IS NOT NULL AND NOT company_info_approved),
		COUNT(*) FILTER (WHERE upgrade_requested AND NOT upgrade_approved),
		COUNT(*) FILTER (WHERE payment_status = 'Paid in Full')
		FROM exhibitors WHERE email <> $1`
	var s models.DashboardStats
	err := r.pool.QueryRow(ctx, q, excludeEmail).Scan(
		&s.TotalExhibitors, &s.PendingLogos, &s.PendingCompanyInfo, &s.PendingBoothUpgrade, &s.PaidInFull,
	)
	if err != nil {
		return models.DashboardStats{}, fmt.Errorf("dashboard stats: %w", err)
	}
	return s, nil
}

func (r *Repository) exec(ctx context.Context, q string, args ...any) error {
	tag, err := r.pool.Exec(ctx, q, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetLogo records a logo submission and flips the checklist flag. A
// resubmission always resets approval.
func (r *Repository) SetLogo(ctx context.Context, id uuid.UUID, logo models.LogoSubmission) error {
	const q = `UPDATE exhibitors SET
		logo_filename = $2, logo_original_name = $3, logo_path = $4, logo_approved = $5,
		checklist_logo_uploaded = TRUE, updated_at = NOW()
		WHERE id = $1`
	return r.exec(ctx, q, id, logo.Filename, logo.OriginalName, logo.StoragePath, logo.Approved)
}

// SetCompanyInfo records a company info submission and flips the checklist flag.
func (r *Repository) SetCompanyInfo(ctx context.Context, id uuid.UUID, info models.CompanyInfo) error {
	const q = `UPDATE exhibitors SET
		company_description = $2, company_products = $3, company_target_audience = $4, company_info_approved = $5,
		checklist_company_info_submitted = TRUE, updated_at = NOW()
		WHERE id = $1`
	return r.exec(ctx, q, id, info.Description, info.Products, info.TargetAudience, info.Approved)
}

// SetBoothUpgrade records an upgrade request. A second request overwrites the
// first and resets approval.
func (r *Repository) SetBoothUpgrade(ctx context.Context, id uuid.UUID, upgrade models.BoothUpgrade) error {
	const q = `UPDATE exhibitors SET
		upgrade_requested = $2, upgrade_current_size = $3, upgrade_requested_size = $4, upgrade_approved = $5,
		updated_at = NOW()
		WHERE id = $1`
	return r.exec(ctx, q, id, upgrade.Requested, string(upgrade.CurrentSize), string(upgrade.RequestedSize), upgrade.Approved)
}

// SetWebinarDate stores the chosen slot and flips the checklist flag.
func (r *Repository) SetWebinarDate(ctx context.Context, id uuid.UUID, date time.Time) error {
	const q = `UPDATE exhibitors SET
		webinar_date = $2, checklist_webinar_date_selected = TRUE, updated_at = NOW()
		WHERE id = $1`
	return r.exec(ctx, q, id, date)
}

// SetBanner replaces the banner reference and flips the checklist flag.
func (r *Repository) SetBanner(ctx context.Context, id uuid.UUID, b models.MarketingBanner) error {
	const q = `UPDATE exhibitors SET
		banner_generated = $2, banner_image_path = $3, banner_event_name = $4,
		checklist_banner_generated = TRUE, updated_at = NOW()
		WHERE id = $1`
	return r.exec(ctx, q, id, b.Generated, b.ImagePath, b.EventName)
}

// SetLogoApproval sets the logo approval flag.
func (r *Repository) SetLogoApproval(ctx context.Context, id uuid.UUID, approved bool) error {
	return r.exec(ctx, `UPDATE exhibitors SET logo_approved = $2, updated_at = NOW() WHERE id = $1`, id, approved)
}

// SetCompanyInfoApproval sets the company info approval flag.
func (r *Repository) SetCompanyInfoApproval(ctx context.Context, id uuid.UUID, approved bool) error {
	return r.exec(ctx, `UPDATE exhibitors SET company_info_approved = $2, updated_at = NOW() WHERE id = $1`, id, approved)
}

// SetBoothUpgradeApproval sets the upgrade approval flag and, when approving,
// applies the requested booth size in the same statement so the size change is
// atomic with the flag.
func (r *Repository) SetBoothUpgradeApproval(ctx context.Context, id uuid.UUID, approved bool) error {
	const q = `UPDATE exhibitors SET
		upgrade_approved = $2,
		booth_size = CASE WHEN $2 THEN COALESCE(upgrade_requested_size, booth_size) ELSE booth_size END,
		updated_at = NOW()
		WHERE id = $1`
	return r.exec(ctx, q, id, approved)
}

// SetPaymentStatus overwrites the payment label. A previously chosen webinar
// date is deliberately left in place even if the status regresses below
// "Paid in Full".
func (r *Repository) SetPaymentStatus(ctx context.Context, id uuid.UUID, status models.PaymentStatus) error {
	return r.exec(ctx, `UPDATE exhibitors SET payment_status = $2, updated_at = NOW() WHERE id = $1`, id, string(status))
}

var checklistColumns = map[string]string{
	"logoUploaded":             "checklist_logo_uploaded",
	"companyInfoSubmitted":     "checklist_company_info_submitted",
	"webinarDateSelected":      "checklist_webinar_date_selected",
	"marketingBannerGenerated": "checklist_banner_generated",
}

// SetChecklistItem overrides a single checklist flag (admin action).
func (r *Repository) SetChecklistItem(ctx context.Context, id uuid.UUID, item string, done bool) error {
	col, ok := checklistColumns[item]
	if !ok {
		return fmt.Errorf("%w: unknown checklist item %q", ErrValidation, item)
	}
	q := fmt.Sprintf(`UPDATE exhibitors SET %s = $2, updated_at = NOW() WHERE id = $1`, col)
	return r.exec(ctx, q, id, done)
}

// DeleteAllExcept removes every exhibitor except the given email and returns
// the number of deleted records.
func (r *Repository) DeleteAllExcept(ctx context.Context, email string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM exhibitors WHERE email <> $1`, email)
	if err != nil {
		return 0, fmt.Errorf("delete exhibitors: %w", err)
	}
	return tag.RowsAffected(), nil
}
