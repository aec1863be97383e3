package models

import (
	"time"

	"github.com/google/uuid"
)

// Role represents an authenticated actor's role in the portal.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleExhibitor Role = "exhibitor"
)

// BoothSize is the physical booth footprint.
type BoothSize string

const (
	BoothSize10x10  BoothSize = "10x10"
	BoothSize10x20  BoothSize = "10x20"
	BoothSize20x20  BoothSize = "20x20"
	BoothSizeCustom BoothSize = "Custom"
)

// ValidBoothSize reports whether s is one of the known booth sizes.
func ValidBoothSize(s BoothSize) bool {
	switch s {
	case BoothSize10x10, BoothSize10x20, BoothSize20x20, BoothSizeCustom:
		return true
	}
	return false
}

// PaymentStatus is the admin-set payment label for an exhibitor.
type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "Pending"
	PaymentPartial    PaymentStatus = "Partial"
	PaymentPaidInFull PaymentStatus = "Paid in Full"
)

// ValidPaymentStatus reports whether s is one of the known payment statuses.
func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentPending, PaymentPartial, PaymentPaidInFull:
		return true
	}
	return false
}

// DefaultEventName is used for marketing banners unless overridden in config.
const DefaultEventName = "Small Business Expo 2024"

// LogoSubmission is an uploaded logo awaiting (or past) admin review.
type LogoSubmission struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	StoragePath  string `json:"storage_path"`
	Approved     bool   `json:"approved"`
}

// CompanyInfo is the exhibitor's company profile submission.
type CompanyInfo struct {
	Description    string   `json:"description"`
	Products       []string `json:"products"`
	TargetAudience string   `json:"target_audience"`
	Approved       bool     `json:"approved"`
}

// BoothUpgrade is a request to change booth size, gated on admin approval.
type BoothUpgrade struct {
	Requested     bool      `json:"requested"`
	CurrentSize   BoothSize `json:"current_size"`
	RequestedSize BoothSize `json:"requested_size"`
	Approved      bool      `json:"approved"`
}

// MarketingBanner references the generated banner image.
type MarketingBanner struct {
	Generated bool   `json:"generated"`
	ImagePath string `json:"image_path"`
	EventName string `json:"event_name"`
}

// OnboardingChecklist tracks the four self-service milestones. Flags flip true
// when the corresponding submission succeeds and are never cleared by admin
// rejection.
type OnboardingChecklist struct {
	LogoUploaded             bool `json:"logo_uploaded"`
	CompanyInfoSubmitted     bool `json:"company_info_submitted"`
	WebinarDateSelected      bool `json:"webinar_date_selected"`
	MarketingBannerGenerated bool `json:"marketing_banner_generated"`
}

// Exhibitor is the portal's sole aggregate: one tenant company at the event.
type Exhibitor struct {
	ID            uuid.UUID           `json:"id"`
	Email         string              `json:"email"`
	Password      string              `json:"-"`
	CompanyName   string              `json:"company_name"`
	ContactName   string              `json:"contact_name"`
	Phone         string              `json:"phone"`
	Website       string              `json:"website"`
	BoothNumber   string              `json:"booth_number"`
	BoothSize     BoothSize           `json:"booth_size"`
	PaymentStatus PaymentStatus       `json:"payment_status"`
	Logo          *LogoSubmission     `json:"logo,omitempty"`
	CompanyInfo   *CompanyInfo        `json:"company_info,omitempty"`
	BoothUpgrade  *BoothUpgrade       `json:"booth_upgrade,omitempty"`
	WebinarDate   *time.Time          `json:"webinar_date,omitempty"`
	Banner        MarketingBanner     `json:"marketing_banner"`
	Checklist     OnboardingChecklist `json:"onboarding_checklist"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// HasLogo reports whether a logo file has been uploaded.
func (e *Exhibitor) HasLogo() bool {
	return e.Logo != nil && e.Logo.Filename != ""
}

// ExhibitorPublic is Exhibitor without the password hash, for API responses.
type ExhibitorPublic struct {
	ID            uuid.UUID           `json:"id"`
	Email         string              `json:"email"`
	CompanyName   string              `json:"company_name"`
	ContactName   string              `json:"contact_name"`
	Phone         string              `json:"phone"`
	Website       string              `json:"website"`
	BoothNumber   string              `json:"booth_number"`
	BoothSize     BoothSize           `json:"booth_size"`
	PaymentStatus PaymentStatus       `json:"payment_status"`
	Logo          *LogoSubmission     `json:"logo,omitempty"`
	CompanyInfo   *CompanyInfo        `json:"company_info,omitempty"`
	BoothUpgrade  *BoothUpgrade       `json:"booth_upgrade,omitempty"`
	WebinarDate   *time.Time          `json:"webinar_date,omitempty"`
	Banner        MarketingBanner     `json:"marketing_banner"`
	Checklist     OnboardingChecklist `json:"onboarding_checklist"`
	CreatedAt     time.Time           `json:"created_at"`
}

// ToPublic converts an Exhibitor to its password-free view.
func (e *Exhibitor) ToPublic() ExhibitorPublic {
	return ExhibitorPublic{
		ID:            e.ID,
		Email:         e.Email,
		CompanyName:   e.CompanyName,
		ContactName:   e.ContactName,
		Phone:         e.Phone,
		Website:       e.Website,
		BoothNumber:   e.BoothNumber,
		BoothSize:     e.BoothSize,
		PaymentStatus: e.PaymentStatus,
		Logo:          e.Logo,
		CompanyInfo:   e.CompanyInfo,
		BoothUpgrade:  e.BoothUpgrade,
		WebinarDate:   e.WebinarDate,
		Banner:        e.Banner,
		Checklist:     e.Checklist,
		CreatedAt:     e.CreatedAt,
	}
}

// DashboardStats are the live aggregate counts for the admin dashboard.
type DashboardStats struct {
	TotalExhibitors     int `json:"total_exhibitors"`
	PendingLogos        int `json:"pending_logos"`
	PendingCompanyInfo  int `json:"pending_company_info"`
	PendingBoothUpgrade int `json:"pending_booth_upgrades"`
	PaidInFull          int `json:"paid_in_full"`
}
