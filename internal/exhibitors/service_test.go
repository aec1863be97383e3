package exhibitors

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smart-exhibitor/backend/internal/models"
	"github.com/smart-exhibitor/backend/pkg/storage"
)

// memStore is an in-memory Store for service tests.
type memStore struct {
	mu      sync.Mutex
	records map[uuid.UUID]*models.Exhibitor
}

func newMemStore() *memStore {
	return &memStore{records: map[uuid.UUID]*models.Exhibitor{}}
}

func copyExhibitor(ex *models.Exhibitor) *models.Exhibitor {
	cp := *ex
	if ex.Logo != nil {
		l := *ex.Logo
		cp.Logo = &l
	}
	if ex.CompanyInfo != nil {
		ci := *ex.CompanyInfo
		ci.Products = append([]string(nil), ex.CompanyInfo.Products...)
		cp.CompanyInfo = &ci
	}
	if ex.BoothUpgrade != nil {
		bu := *ex.BoothUpgrade
		cp.BoothUpgrade = &bu
	}
	if ex.WebinarDate != nil {
		d := *ex.WebinarDate
		cp.WebinarDate = &d
	}
	return &cp
}

func (m *memStore) get(id uuid.UUID) (*models.Exhibitor, error) {
	ex, ok := m.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return ex, nil
}

func (m *memStore) GetByID(_ context.Context, id uuid.UUID) (*models.Exhibitor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ex, err := m.get(id)
	if err != nil {
		return nil, err
	}
	return copyExhibitor(ex), nil
}

func (m *memStore) GetByEmail(_ context.Context, email string) (*models.Exhibitor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ex := range m.records {
		if ex.Email == email {
			return copyExhibitor(ex), nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) Insert(_ context.Context, ex *models.Exhibitor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.records {
		if existing.Email == ex.Email {
			return ErrDuplicateEmail
		}
	}
	ex.ID = uuid.New()
	ex.CreatedAt = time.Now()
	ex.UpdatedAt = ex.CreatedAt
	m.records[ex.ID] = copyExhibitor(ex)
	return nil
}

func (m *memStore) List(_ context.Context, excludeEmail string) ([]models.ExhibitorPublic, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var list []models.ExhibitorPublic
	for _, ex := range m.records {
		if ex.Email == excludeEmail {
			continue
		}
		list = append(list, ex.ToPublic())
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (m *memStore) Stats(_ context.Context, excludeEmail string) (models.DashboardStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var s models.DashboardStats
	for _, ex := range m.records {
		if ex.Email == excludeEmail {
			continue
		}
		s.TotalExhibitors++
		if ex.Logo != nil && !ex.Logo.Approved {
			s.PendingLogos++
		}
		if ex.CompanyInfo != nil && !ex.CompanyInfo.Approved {
			s.PendingCompanyInfo++
		}
		if ex.BoothUpgrade != nil && ex.BoothUpgrade.Requested && !ex.BoothUpgrade.Approved {
			s.PendingBoothUpgrade++
		}
		if ex.PaymentStatus == models.PaymentPaidInFull {
			s.PaidInFull++
		}
	}
	return s, nil
}

func (m *memStore) SetLogo(_ context.Context, id uuid.UUID, logo models.LogoSubmission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ex, err := m.get(id)
	if err != nil {
		return err
	}
	l := logo
	ex.Logo = &l
	ex.Checklist.LogoUploaded = true
	return nil
}

func (m *memStore) SetCompanyInfo(_ context.Context, id uuid.UUID, info models.CompanyInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ex, err := m.get(id)
	if err != nil {
		return err
	}
	ci := info
	ex.CompanyInfo = &ci
	ex.Checklist.CompanyInfoSubmitted = true
	return nil
}

func (m *memStore) SetBoothUpgrade(_ context.Context, id uuid.UUID, upgrade models.BoothUpgrade) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ex, err := m.get(id)
	if err != nil {
		return err
	}
	bu := upgrade
	ex.BoothUpgrade = &bu
	return nil
}

func (m *memStore) SetWebinarDate(_ context.Context, id uuid.UUID, date time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ex, err := m.get(id)
	if err != nil {
		return err
	}
	d := date
	ex.WebinarDate = &d
	ex.Checklist.WebinarDateSelected = true
	return nil
}

func (m *memStore) SetBanner(_ context.Context, id uuid.UUID, b models.MarketingBanner) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ex, err := m.get(id)
	if err != nil {
		return err
	}
	ex.Banner = b
	ex.Checklist.MarketingBannerGenerated = true
	return nil
}

func (m *memStore) SetLogoApproval(_ context.Context, id uuid.UUID, approved bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ex, err := m.get(id)
	if err != nil {
		return err
	}
	if ex.Logo != nil {
		ex.Logo.Approved = approved
	}
	return nil
}

func (m *memStore) SetCompanyInfoApproval(_ context.Context, id uuid.UUID, approved bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ex, err := m.get(id)
	if err != nil {
		return err
	}
	if ex.CompanyInfo != nil {
		ex.CompanyInfo.Approved = approved
	}
	return nil
}

func (m *memStore) SetBoothUpgradeApproval(_ context.Context, id uuid.UUID, approved bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ex, err := m.get(id)
	if err != nil {
		return err
	}
	if ex.BoothUpgrade != nil {
		ex.BoothUpgrade.Approved = approved
		if approved {
			ex.BoothSize = ex.BoothUpgrade.RequestedSize
		}
	}
	return nil
}

func (m *memStore) SetPaymentStatus(_ context.Context, id uuid.UUID, status models.PaymentStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ex, err := m.get(id)
	if err != nil {
		return err
	}
	ex.PaymentStatus = status
	return nil
}

func (m *memStore) SetChecklistItem(_ context.Context, id uuid.UUID, item string, done bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ex, err := m.get(id)
	if err != nil {
		return err
	}
	switch item {
	case "logoUploaded":
		ex.Checklist.LogoUploaded = done
	case "companyInfoSubmitted":
		ex.Checklist.CompanyInfoSubmitted = done
	case "webinarDateSelected":
		ex.Checklist.WebinarDateSelected = done
	case "marketingBannerGenerated":
		ex.Checklist.MarketingBannerGenerated = done
	default:
		return ErrValidation
	}
	return nil
}

func (m *memStore) DeleteAllExcept(_ context.Context, email string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var deleted int64
	for id, ex := range m.records {
		if ex.Email != email {
			delete(m.records, id)
			deleted++
		}
	}
	return deleted, nil
}

// memBlobs is an in-memory storage.Store for service tests.
type memBlobs struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemBlobs() *memBlobs {
	return &memBlobs{objects: map[string][]byte{}}
}

func (m *memBlobs) Put(_ context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return key, nil
}

func (m *memBlobs) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[key]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

func (m *memBlobs) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *memBlobs) List(_ context.Context, prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var keys []string
	for k := range m.objects {
		if strings.HasPrefix(k, prefix+"/") {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

const testAdminEmail = "admin@expo.com"

func newTestService(t *testing.T) (*Service, *memStore, *memBlobs) {
	t.Helper()
	store := newMemStore()
	blobs := newMemBlobs()
	svc := NewService(store, blobs, nil, "Small Business Expo 2024", testAdminEmail, nil)
	return svc, store, blobs
}

func seedExhibitor(t *testing.T, svc *Service, email string) uuid.UUID {
	t.Helper()
	pub, err := svc.CreateExhibitor(context.Background(), CreateParams{
		Email:       email,
		Password:    "password123",
		CompanyName: "Acme Corp",
		ContactName: "Jane Smith",
		BoothNumber: "A12",
	})
	require.NoError(t, err)
	return pub.ID
}

func pngLogo(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestCreateExhibitorDefaults(t *testing.T) {
	svc, _, _ := newTestService(t)
	pub, err := svc.CreateExhibitor(context.Background(), CreateParams{
		Email:       "new@acme.com",
		Password:    "secret12",
		CompanyName: "Acme Corp",
		ContactName: "Jane Smith",
	})
	require.NoError(t, err)
	assert.Equal(t, models.BoothSize10x10, pub.BoothSize)
	assert.Equal(t, models.PaymentPending, pub.PaymentStatus)
	assert.Nil(t, pub.Logo)
	assert.False(t, pub.Checklist.LogoUploaded)
	assert.Equal(t, "Small Business Expo 2024", pub.Banner.EventName)
}

func TestCreateExhibitorDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService(t)
	seedExhibitor(t, svc, "dup@acme.com")
	_, err := svc.CreateExhibitor(context.Background(), CreateParams{
		Email:       "dup@acme.com",
		Password:    "secret12",
		CompanyName: "Other Corp",
		ContactName: "Bob",
	})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestSubmitLogoValidation(t *testing.T) {
	svc, _, _ := newTestService(t)
	id := seedExhibitor(t, svc, "ex@acme.com")
	ctx := context.Background()

	_, err := svc.SubmitLogo(ctx, id, "logo.png", "image/png", nil)
	assert.ErrorIs(t, err, ErrValidation)

	big := make([]byte, storage.MaxLogoFileSize+1)
	_, err = svc.SubmitLogo(ctx, id, "logo.png", "image/png", big)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.SubmitLogo(ctx, id, "logo.svg", "image/svg+xml", []byte("<svg/>"))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSubmitLogoStoresAndResubmissionResetsApproval(t *testing.T) {
	svc, _, blobs := newTestService(t)
	id := seedExhibitor(t, svc, "ex@acme.com")
	ctx := context.Background()

	sub, err := svc.SubmitLogo(ctx, id, "logo.png", "image/png", pngLogo(t))
	require.NoError(t, err)
	assert.False(t, sub.Approved)
	assert.Equal(t, "logo.png", sub.OriginalName)

	stored, err := blobs.Get(ctx, sub.StoragePath)
	require.NoError(t, err)
	assert.Equal(t, pngLogo(t), stored)

	ex, err := svc.Dashboard(ctx, id)
	require.NoError(t, err)
	assert.True(t, ex.Checklist.LogoUploaded)

	// Approve, then resubmit: approval must reset.
	_, err = svc.Approve(ctx, id, DomainLogo, true)
	require.NoError(t, err)
	sub2, err := svc.SubmitLogo(ctx, id, "logo2.png", "image/png", pngLogo(t))
	require.NoError(t, err)
	assert.False(t, sub2.Approved)
	assert.NotEqual(t, sub.StoragePath, sub2.StoragePath)
}

func TestSubmitCompanyInfo(t *testing.T) {
	svc, _, _ := newTestService(t)
	id := seedExhibitor(t, svc, "ex@acme.com")
	ctx := context.Background()

	_, err := svc.SubmitCompanyInfo(ctx, id, "  ", []string{"Widgets"}, "SMBs")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.SubmitCompanyInfo(ctx, id, "We make widgets", []string{"", "  "}, "SMBs")
	assert.ErrorIs(t, err, ErrValidation)

	info, err := svc.SubmitCompanyInfo(ctx, id, "We make widgets", []string{" Widgets ", "", "Gadgets"}, "SMBs")
	require.NoError(t, err)
	assert.Equal(t, []string{"Widgets", "Gadgets"}, info.Products)
	assert.False(t, info.Approved)

	ex, err := svc.Dashboard(ctx, id)
	require.NoError(t, err)
	assert.True(t, ex.Checklist.CompanyInfoSubmitted)
}

func TestRequestBoothUpgrade(t *testing.T) {
	svc, _, _ := newTestService(t)
	id := seedExhibitor(t, svc, "ex@acme.com")
	ctx := context.Background()

	_, err := svc.RequestBoothUpgrade(ctx, id, "30x30")
	assert.ErrorIs(t, err, ErrValidation)

	up, err := svc.RequestBoothUpgrade(ctx, id, models.BoothSize20x20)
	require.NoError(t, err)
	assert.True(t, up.Requested)
	assert.Equal(t, models.BoothSize10x10, up.CurrentSize)
	assert.Equal(t, models.BoothSize20x20, up.RequestedSize)
	assert.False(t, up.Approved)

	// Requesting the currently held size is allowed.
	same, err := svc.RequestBoothUpgrade(ctx, id, models.BoothSize10x10)
	require.NoError(t, err)
	assert.Equal(t, models.BoothSize10x10, same.RequestedSize)
}

func TestWebinarDatePaymentGate(t *testing.T) {
	svc, _, _ := newTestService(t)
	id := seedExhibitor(t, svc, "ex@acme.com")
	ctx := context.Background()
	slot := WebinarSlots()[0]

	_, err := svc.SelectWebinarDate(ctx, id, slot)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.AvailableWebinarDates(ctx, id)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.SetPaymentStatus(ctx, id, models.PaymentPartial)
	require.NoError(t, err)
	_, err = svc.SelectWebinarDate(ctx, id, slot)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.SetPaymentStatus(ctx, id, models.PaymentPaidInFull)
	require.NoError(t, err)

	slots, err := svc.AvailableWebinarDates(ctx, id)
	require.NoError(t, err)
	assert.Len(t, slots, 5)

	_, err = svc.SelectWebinarDate(ctx, id, slot.Add(time.Hour))
	assert.ErrorIs(t, err, ErrValidation)

	got, err := svc.SelectWebinarDate(ctx, id, slot)
	require.NoError(t, err)
	assert.True(t, slot.Equal(*got))

	ex, err := svc.Dashboard(ctx, id)
	require.NoError(t, err)
	assert.True(t, ex.Checklist.WebinarDateSelected)
}

func TestWebinarDateSurvivesPaymentRegression(t *testing.T) {
	svc, _, _ := newTestService(t)
	id := seedExhibitor(t, svc, "ex@acme.com")
	ctx := context.Background()

	_, err := svc.SetPaymentStatus(ctx, id, models.PaymentPaidInFull)
	require.NoError(t, err)
	_, err = svc.SelectWebinarDate(ctx, id, WebinarSlots()[2])
	require.NoError(t, err)

	ex, err := svc.SetPaymentStatus(ctx, id, models.PaymentPartial)
	require.NoError(t, err)
	require.NotNil(t, ex.WebinarDate)
	assert.True(t, WebinarSlots()[2].Equal(*ex.WebinarDate))

	// But no new selection while under-paid.
	_, err = svc.SelectWebinarDate(ctx, id, WebinarSlots()[3])
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestGenerateBannerRequiresLogo(t *testing.T) {
	svc, _, _ := newTestService(t)
	id := seedExhibitor(t, svc, "ex@acme.com")

	_, err := svc.GenerateBanner(context.Background(), id)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGenerateBanner(t *testing.T) {
	svc, _, blobs := newTestService(t)
	id := seedExhibitor(t, svc, "ex@acme.com")
	ctx := context.Background()

	_, err := svc.SubmitLogo(ctx, id, "logo.png", "image/png", pngLogo(t))
	require.NoError(t, err)

	b, err := svc.GenerateBanner(ctx, id)
	require.NoError(t, err)
	assert.True(t, b.Generated)
	assert.Equal(t, "Small Business Expo 2024", b.EventName)

	data, err := blobs.Get(ctx, b.ImagePath)
	require.NoError(t, err)
	img, _, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 400, img.Bounds().Dy())

	ex, err := svc.Dashboard(ctx, id)
	require.NoError(t, err)
	assert.True(t, ex.Checklist.MarketingBannerGenerated)

	// Regeneration produces a fresh object key.
	b2, err := svc.GenerateBanner(ctx, id)
	require.NoError(t, err)
	assert.NotEqual(t, b.ImagePath, b2.ImagePath)
}

func TestApproveLogoRegeneratesBanner(t *testing.T) {
	svc, _, _ := newTestService(t)
	id := seedExhibitor(t, svc, "ex@acme.com")
	ctx := context.Background()

	_, err := svc.Approve(ctx, id, DomainLogo, true)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.SubmitLogo(ctx, id, "logo.png", "image/png", pngLogo(t))
	require.NoError(t, err)

	ex, err := svc.Approve(ctx, id, DomainLogo, true)
	require.NoError(t, err)
	require.NotNil(t, ex.Logo)
	assert.True(t, ex.Logo.Approved)
	assert.True(t, ex.Banner.Generated)
	assert.NotEmpty(t, ex.Banner.ImagePath)
}

func TestRejectLogoKeepsBannerAndChecklist(t *testing.T) {
	svc, _, _ := newTestService(t)
	id := seedExhibitor(t, svc, "ex@acme.com")
	ctx := context.Background()

	_, err := svc.SubmitLogo(ctx, id, "logo.png", "image/png", pngLogo(t))
	require.NoError(t, err)
	approved, err := svc.Approve(ctx, id, DomainLogo, true)
	require.NoError(t, err)
	bannerPath := approved.Banner.ImagePath

	rejected, err := svc.Approve(ctx, id, DomainLogo, false)
	require.NoError(t, err)
	assert.False(t, rejected.Logo.Approved)
	assert.Equal(t, bannerPath, rejected.Banner.ImagePath)
	assert.True(t, rejected.Checklist.LogoUploaded)
	assert.True(t, rejected.Checklist.MarketingBannerGenerated)
}

func TestApproveBoothUpgradeAppliesSize(t *testing.T) {
	svc, _, _ := newTestService(t)
	id := seedExhibitor(t, svc, "ex@acme.com")
	ctx := context.Background()

	_, err := svc.Approve(ctx, id, DomainBoothUpgrade, true)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.RequestBoothUpgrade(ctx, id, models.BoothSize20x20)
	require.NoError(t, err)

	rejected, err := svc.Approve(ctx, id, DomainBoothUpgrade, false)
	require.NoError(t, err)
	assert.Equal(t, models.BoothSize10x10, rejected.BoothSize)
	assert.False(t, rejected.BoothUpgrade.Approved)

	approved, err := svc.Approve(ctx, id, DomainBoothUpgrade, true)
	require.NoError(t, err)
	assert.Equal(t, models.BoothSize20x20, approved.BoothSize)
	assert.True(t, approved.BoothUpgrade.Approved)
}

func TestApproveCompanyInfo(t *testing.T) {
	svc, _, _ := newTestService(t)
	id := seedExhibitor(t, svc, "ex@acme.com")
	ctx := context.Background()

	_, err := svc.Approve(ctx, id, DomainCompanyInfo, true)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.SubmitCompanyInfo(ctx, id, "We make widgets", []string{"Widgets"}, "SMBs")
	require.NoError(t, err)
	ex, err := svc.Approve(ctx, id, DomainCompanyInfo, true)
	require.NoError(t, err)
	assert.True(t, ex.CompanyInfo.Approved)
}

func TestSetPaymentStatusValidation(t *testing.T) {
	svc, _, _ := newTestService(t)
	id := seedExhibitor(t, svc, "ex@acme.com")

	_, err := svc.SetPaymentStatus(context.Background(), id, "Refunded")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestStatsExcludesAdmin(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	require.NoError(t, svc.EnsureDemoAccounts(ctx))
	id := seedExhibitor(t, svc, "ex@acme.com")
	_, err := svc.SubmitLogo(ctx, id, "logo.png", "image/png", pngLogo(t))
	require.NoError(t, err)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalExhibitors) // demo + seeded, admin excluded
	assert.Equal(t, 1, stats.PendingLogos)
	assert.Equal(t, 1, stats.PaidInFull) // demo account
}

func TestResetDemoData(t *testing.T) {
	svc, store, blobs := newTestService(t)
	ctx := context.Background()
	require.NoError(t, svc.EnsureDemoAccounts(ctx))
	id := seedExhibitor(t, svc, "ex@acme.com")
	_, err := svc.SubmitLogo(ctx, id, "logo.png", "image/png", pngLogo(t))
	require.NoError(t, err)
	_, err = svc.GenerateBanner(ctx, id)
	require.NoError(t, err)

	// The reserved placeholder asset must survive a reset.
	_, err = blobs.Put(ctx, "logos/"+storage.PlaceholderLogo, "image/svg+xml", strings.NewReader("<svg/>"), 6)
	require.NoError(t, err)

	deleted, err := svc.ResetDemoData(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted) // demo + seeded

	_, err = store.GetByEmail(ctx, testAdminEmail)
	assert.NoError(t, err)
	_, err = store.GetByEmail(ctx, "ex@acme.com")
	assert.ErrorIs(t, err, ErrNotFound)

	// A reset leaves no exhibitors behind, demo account included; reseeding
	// happens only through EnsureDemoAccounts.
	list, err := svc.ListExhibitors(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	logos, err := blobs.List(ctx, storage.FolderLogos)
	require.NoError(t, err)
	assert.Equal(t, []string{"logos/" + storage.PlaceholderLogo}, logos)
	banners, err := blobs.List(ctx, storage.FolderBanners)
	require.NoError(t, err)
	assert.Empty(t, banners)
}

func TestEnsureDemoAccountsIdempotent(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	require.NoError(t, svc.EnsureDemoAccounts(ctx))
	require.NoError(t, svc.EnsureDemoAccounts(ctx))

	list, err := svc.ListExhibitors(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1) // demo account only; admin excluded from listing
}

func TestSetChecklistItem(t *testing.T) {
	svc, _, _ := newTestService(t)
	id := seedExhibitor(t, svc, "ex@acme.com")
	ctx := context.Background()

	ex, err := svc.SetChecklistItem(ctx, id, "logoUploaded", true)
	require.NoError(t, err)
	assert.True(t, ex.Checklist.LogoUploaded)

	_, err = svc.SetChecklistItem(ctx, id, "bogus", true)
	assert.ErrorIs(t, err, ErrValidation)
}
