package exhibitors

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smart-exhibitor/backend/internal/banner"
	"github.com/smart-exhibitor/backend/internal/models"
	"github.com/smart-exhibitor/backend/pkg/queue"
	"github.com/smart-exhibitor/backend/pkg/storage"
	"github.com/smart-exhibitor/backend/pkg/utils"
)

// ApprovalDomain names an admin-approvable sub-resource.
type ApprovalDomain string

const (
	DomainLogo         ApprovalDomain = "logo"
	DomainCompanyInfo  ApprovalDomain = "companyInfo"
	DomainBoothUpgrade ApprovalDomain = "boothUpgrade"
)

// Cleaner enqueues orphaned-blob deletions; nil disables async cleanup.
type Cleaner interface {
	EnqueueBlobDelete(ctx context.Context, payload queue.BlobDeletePayload) error
}

// Service is the exhibitor state machine: it mediates every mutation of an
// exhibitor record, enforcing field-level transition rules for both
// self-service and admin operations.
type Service struct {
	store      Store
	blobs      storage.Store
	cleanup    Cleaner
	logger     *zap.Logger
	eventName  string
	adminEmail string
}

// NewService creates the exhibitor service. cleanup may be nil.
func NewService(store Store, blobs storage.Store, cleanup Cleaner, eventName, adminEmail string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if eventName == "" {
		eventName = models.DefaultEventName
	}
	return &Service{
		store:      store,
		blobs:      blobs,
		cleanup:    cleanup,
		logger:     logger,
		eventName:  eventName,
		adminEmail: adminEmail,
	}
}

// AdminEmail returns the email of the account granted the admin role.
func (s *Service) AdminEmail() string { return s.adminEmail }

// Dashboard returns the exhibitor's own record, password excluded.
func (s *Service) Dashboard(ctx context.Context, exhibitorID uuid.UUID) (*models.ExhibitorPublic, error) {
	ex, err := s.store.GetByID(ctx, exhibitorID)
	if err != nil {
		return nil, err
	}
	pub := ex.ToPublic()
	return &pub, nil
}

// SubmitLogo validates and stores a logo upload, resetting any prior approval
// and flipping the logoUploaded checklist flag. The previous logo blob, if
// any, is scheduled for deletion once the new one is recorded.
func (s *Service) SubmitLogo(ctx context.Context, exhibitorID uuid.UUID, originalName, contentType string, data []byte) (*models.LogoSubmission, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no file uploaded", ErrValidation)
	}
	if len(data) > storage.MaxLogoFileSize {
		return nil, fmt.Errorf("%w: file exceeds 5MB limit", ErrValidation)
	}
	if !storage.ValidateLogoFileType(contentType, originalName) {
		return nil, fmt.Errorf("%w: only jpeg, jpg, png and gif files are allowed", ErrValidation)
	}

	ex, err := s.store.GetByID(ctx, exhibitorID)
	if err != nil {
		return nil, err
	}

	key := storage.LogoKey(originalName)
	ref, err := s.blobs.Put(ctx, key, storage.ContentTypeForFilename(originalName), bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("store logo: %w", err)
	}

	sub := models.LogoSubmission{
		Filename:     path.Base(key),
		OriginalName: originalName,
		StoragePath:  ref,
		Approved:     false,
	}
	if err := s.store.SetLogo(ctx, exhibitorID, sub); err != nil {
		return nil, err
	}
	if ex.HasLogo() {
		s.scheduleBlobDelete(ctx, ex.Logo.StoragePath, "logo replaced")
	}
	return &sub, nil
}

// SubmitCompanyInfo validates and records the company profile. Resubmission
// resets approval, requiring a fresh admin review.
func (s *Service) SubmitCompanyInfo(ctx context.Context, exhibitorID uuid.UUID, description string, products []string, targetAudience string) (*models.CompanyInfo, error) {
	description = strings.TrimSpace(description)
	targetAudience = strings.TrimSpace(targetAudience)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}
	if targetAudience == "" {
		return nil, fmt.Errorf("%w: target audience is required", ErrValidation)
	}
	var kept []string
	for _, p := range products {
		if t := strings.TrimSpace(p); t != "" {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("%w: at least one product is required", ErrValidation)
	}

	info := models.CompanyInfo{
		Description:    description,
		Products:       kept,
		TargetAudience: targetAudience,
		Approved:       false,
	}
	if err := s.store.SetCompanyInfo(ctx, exhibitorID, info); err != nil {
		return nil, err
	}
	return &info, nil
}

// RequestBoothUpgrade records an upgrade request, snapshotting the current
// booth size. Requesting the currently held size is permitted; a second
// request overwrites the first and resets approval.
func (s *Service) RequestBoothUpgrade(ctx context.Context, exhibitorID uuid.UUID, requestedSize models.BoothSize) (*models.BoothUpgrade, error) {
	if !models.ValidBoothSize(requestedSize) {
		return nil, fmt.Errorf("%w: invalid booth size %q", ErrValidation, requestedSize)
	}
	ex, err := s.store.GetByID(ctx, exhibitorID)
	if err != nil {
		return nil, err
	}
	upgrade := models.BoothUpgrade{
		Requested:     true,
		CurrentSize:   ex.BoothSize,
		RequestedSize: requestedSize,
		Approved:      false,
	}
	if err := s.store.SetBoothUpgrade(ctx, exhibitorID, upgrade); err != nil {
		return nil, err
	}
	return &upgrade, nil
}

// AvailableWebinarDates returns the published slots. Like slot selection, the
// listing is gated on full payment.
func (s *Service) AvailableWebinarDates(ctx context.Context, exhibitorID uuid.UUID) ([]time.Time, error) {
	ex, err := s.store.GetByID(ctx, exhibitorID)
	if err != nil {
		return nil, err
	}
	if ex.PaymentStatus != models.PaymentPaidInFull {
		return nil, fmt.Errorf("%w: webinar booking requires full payment", ErrForbidden)
	}
	return WebinarSlots(), nil
}

// SelectWebinarDate stores the chosen slot. Requires full payment and a date
// from the published slot list; re-selection simply overwrites.
func (s *Service) SelectWebinarDate(ctx context.Context, exhibitorID uuid.UUID, date time.Time) (*time.Time, error) {
	ex, err := s.store.GetByID(ctx, exhibitorID)
	if err != nil {
		return nil, err
	}
	if ex.PaymentStatus != models.PaymentPaidInFull {
		return nil, fmt.Errorf("%w: webinar booking requires full payment", ErrForbidden)
	}
	if !ValidWebinarSlot(date) {
		return nil, fmt.Errorf("%w: date is not an available webinar slot", ErrValidation)
	}
	if err := s.store.SetWebinarDate(ctx, exhibitorID, date); err != nil {
		return nil, err
	}
	return &date, nil
}

// GenerateBanner renders and stores a fresh marketing banner. Requires an
// uploaded logo; each call produces a new uniquely named image and the prior
// reference is replaced only after the new image is fully stored.
func (s *Service) GenerateBanner(ctx context.Context, exhibitorID uuid.UUID) (*models.MarketingBanner, error) {
	ex, err := s.store.GetByID(ctx, exhibitorID)
	if err != nil {
		return nil, err
	}
	if !ex.HasLogo() {
		return nil, fmt.Errorf("%w: logo must be uploaded first", ErrValidation)
	}
	return s.regenerateBanner(ctx, ex)
}

// regenerateBanner composes the banner from the exhibitor's current snapshot
// and swaps in the new reference. An unreadable or undecodable logo blob falls
// back to the initial glyph inside the compositor rather than failing.
func (s *Service) regenerateBanner(ctx context.Context, ex *models.Exhibitor) (*models.MarketingBanner, error) {
	eventName := ex.Banner.EventName
	if eventName == "" {
		eventName = s.eventName
	}

	var logoBytes []byte
	if ex.HasLogo() {
		var err error
		logoBytes, err = s.blobs.Get(ctx, ex.Logo.StoragePath)
		if err != nil {
			s.logger.Warn("logo blob unreadable, using fallback glyph",
				zap.String("exhibitor_id", ex.ID.String()),
				zap.String("key", ex.Logo.StoragePath),
				zap.Error(err))
			logoBytes = nil
		}
	}

	img, err := banner.Compose(banner.Input{
		CompanyName: ex.CompanyName,
		BoothNumber: ex.BoothNumber,
		BoothSize:   string(ex.BoothSize),
		EventName:   eventName,
		Logo:        logoBytes,
	})
	if err != nil {
		return nil, fmt.Errorf("compose banner: %w", err)
	}

	key := storage.BannerKey(ex.ID.String())
	ref, err := s.blobs.Put(ctx, key, "image/png", bytes.NewReader(img), int64(len(img)))
	if err != nil {
		return nil, fmt.Errorf("store banner: %w", err)
	}

	b := models.MarketingBanner{Generated: true, ImagePath: ref, EventName: eventName}
	if err := s.store.SetBanner(ctx, ex.ID, b); err != nil {
		return nil, err
	}
	if ex.Banner.ImagePath != "" && ex.Banner.ImagePath != ref {
		s.scheduleBlobDelete(ctx, ex.Banner.ImagePath, "banner regenerated")
	}
	return &b, nil
}

// Approve sets an approval flag on the target's sub-resource. Approving a
// logo regenerates the banner with the approved logo in the same operation;
// approving a booth upgrade applies the requested size atomically with the
// flag. Rejection is never terminal: flags can be flipped again later.
func (s *Service) Approve(ctx context.Context, targetID uuid.UUID, domain ApprovalDomain, approved bool) (*models.Exhibitor, error) {
	ex, err := s.store.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	switch domain {
	case DomainLogo:
		if ex.Logo == nil {
			return nil, fmt.Errorf("%w: no logo submitted", ErrValidation)
		}
		if err := s.store.SetLogoApproval(ctx, targetID, approved); err != nil {
			return nil, err
		}
		if approved && ex.HasLogo() {
			ex.Logo.Approved = true
			if _, err := s.regenerateBanner(ctx, ex); err != nil {
				// Approval stands; the exhibitor keeps the prior banner and
				// can regenerate later.
				s.logger.Error("banner regeneration after logo approval failed",
					zap.String("exhibitor_id", targetID.String()), zap.Error(err))
			}
		}
	case DomainCompanyInfo:
		if ex.CompanyInfo == nil {
			return nil, fmt.Errorf("%w: no company info submitted", ErrValidation)
		}
		if err := s.store.SetCompanyInfoApproval(ctx, targetID, approved); err != nil {
			return nil, err
		}
	case DomainBoothUpgrade:
		if ex.BoothUpgrade == nil || !ex.BoothUpgrade.Requested {
			return nil, fmt.Errorf("%w: no booth upgrade requested", ErrValidation)
		}
		if err := s.store.SetBoothUpgradeApproval(ctx, targetID, approved); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: unknown approval domain %q", ErrValidation, domain)
	}

	return s.store.GetByID(ctx, targetID)
}

// SetPaymentStatus overwrites the payment label. A webinar date chosen while
// paid in full is not cleared if the status later regresses.
func (s *Service) SetPaymentStatus(ctx context.Context, targetID uuid.UUID, status models.PaymentStatus) (*models.Exhibitor, error) {
	if !models.ValidPaymentStatus(status) {
		return nil, fmt.Errorf("%w: invalid payment status %q", ErrValidation, status)
	}
	if err := s.store.SetPaymentStatus(ctx, targetID, status); err != nil {
		return nil, err
	}
	return s.store.GetByID(ctx, targetID)
}

// SetChecklistItem overrides a checklist flag (admin action).
func (s *Service) SetChecklistItem(ctx context.Context, targetID uuid.UUID, item string, done bool) (*models.Exhibitor, error) {
	if err := s.store.SetChecklistItem(ctx, targetID, item, done); err != nil {
		return nil, err
	}
	return s.store.GetByID(ctx, targetID)
}

// CreateParams are the admin-supplied fields for provisioning an exhibitor.
type CreateParams struct {
	Email         string
	Password      string
	CompanyName   string
	ContactName   string
	Phone         string
	Website       string
	BoothNumber   string
	BoothSize     models.BoothSize
	PaymentStatus models.PaymentStatus
}

// CreateExhibitor provisions a new account with hashed password and default
// onboarding state. Fails with ErrDuplicateEmail if the email is taken.
func (s *Service) CreateExhibitor(ctx context.Context, p CreateParams) (*models.ExhibitorPublic, error) {
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	if p.Email == "" || p.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}
	if strings.TrimSpace(p.CompanyName) == "" || strings.TrimSpace(p.ContactName) == "" {
		return nil, fmt.Errorf("%w: company name and contact name are required", ErrValidation)
	}
	if p.BoothSize == "" {
		p.BoothSize = models.BoothSize10x10
	}
	if !models.ValidBoothSize(p.BoothSize) {
		return nil, fmt.Errorf("%w: invalid booth size %q", ErrValidation, p.BoothSize)
	}
	if p.PaymentStatus == "" {
		p.PaymentStatus = models.PaymentPending
	}
	if !models.ValidPaymentStatus(p.PaymentStatus) {
		return nil, fmt.Errorf("%w: invalid payment status %q", ErrValidation, p.PaymentStatus)
	}

	hash, err := utils.HashPassword(p.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	ex := &models.Exhibitor{
		Email:         p.Email,
		Password:      hash,
		CompanyName:   strings.TrimSpace(p.CompanyName),
		ContactName:   strings.TrimSpace(p.ContactName),
		Phone:         strings.TrimSpace(p.Phone),
		Website:       strings.TrimSpace(p.Website),
		BoothNumber:   strings.TrimSpace(p.BoothNumber),
		BoothSize:     p.BoothSize,
		PaymentStatus: p.PaymentStatus,
		Banner:        models.MarketingBanner{EventName: s.eventName},
	}
	if err := s.store.Insert(ctx, ex); err != nil {
		return nil, err
	}
	pub := ex.ToPublic()
	return &pub, nil
}

// ListExhibitors returns all records except the admin's own, newest first.
func (s *Service) ListExhibitors(ctx context.Context) ([]models.ExhibitorPublic, error) {
	return s.store.List(ctx, s.adminEmail)
}

// GetExhibitor returns a single record, password excluded.
func (s *Service) GetExhibitor(ctx context.Context, id uuid.UUID) (*models.ExhibitorPublic, error) {
	ex, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	pub := ex.ToPublic()
	return &pub, nil
}

// Stats computes the admin dashboard counts from current store state.
func (s *Service) Stats(ctx context.Context) (models.DashboardStats, error) {
	return s.store.Stats(ctx, s.adminEmail)
}

// ResetDemoData deletes every exhibitor except the admin's record and purges
// stored logo and banner blobs, keeping the reserved placeholder asset.
// Destructive; intended for demo use only.
func (s *Service) ResetDemoData(ctx context.Context) (int64, error) {
	deleted, err := s.store.DeleteAllExcept(ctx, s.adminEmail)
	if err != nil {
		return 0, err
	}
	for _, folder := range []string{storage.FolderLogos, storage.FolderBanners} {
		keys, err := s.blobs.List(ctx, folder)
		if err != nil {
			s.logger.Warn("list blobs during reset failed", zap.String("folder", folder), zap.Error(err))
			continue
		}
		for _, key := range keys {
			if path.Base(key) == storage.PlaceholderLogo {
				continue
			}
			if err := s.blobs.Delete(ctx, key); err != nil {
				s.logger.Warn("delete blob during reset failed", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return deleted, nil
}

// EnsureDemoAccounts seeds the demo exhibitor and admin accounts if absent.
func (s *Service) EnsureDemoAccounts(ctx context.Context) error {
	seeds := []CreateParams{
		{
			Email:         "demo@company.com",
			Password:      "password123",
			CompanyName:   "Demo Company",
			ContactName:   "John Doe",
			Phone:         "555-0123",
			Website:       "https://democompany.com",
			BoothNumber:   "A12",
			PaymentStatus: models.PaymentPaidInFull,
		},
		{
			Email:         s.adminEmail,
			Password:      "admin123",
			CompanyName:   "Admin User",
			ContactName:   "Admin User",
			Phone:         "555-0000",
			Website:       "https://expo.com",
			BoothNumber:   "Admin",
			PaymentStatus: models.PaymentPaidInFull,
		},
	}
	for _, p := range seeds {
		if _, err := s.CreateExhibitor(ctx, p); err != nil && !errors.Is(err, ErrDuplicateEmail) {
			return err
		}
	}
	return nil
}

func (s *Service) scheduleBlobDelete(ctx context.Context, key, reason string) {
	if s.cleanup == nil {
		return
	}
	if err := s.cleanup.EnqueueBlobDelete(ctx, queue.BlobDeletePayload{Key: key, Reason: reason}); err != nil {
		s.logger.Warn("enqueue blob delete failed", zap.String("key", key), zap.Error(err))
	}
}
