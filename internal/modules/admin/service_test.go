package admin

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"soundbridge/internal/database"
	"soundbridge/internal/domain"
	"soundbridge/internal/repository"
)

func setupService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	svc := NewService(
		repository.NewUserRepository(db),
		repository.NewApplicationRepository(db),
		repository.NewReleaseRepository(db),
		repository.NewPayoutRepository(db),
		repository.NewTicketRepository(db),
		repository.NewDSPRepository(db),
		repository.NewSettingRepository(db),
		repository.NewNewsRepository(db),
	)
	return svc, db
}

func seedApplicant(t *testing.T, db *gorm.DB) (*domain.User, *domain.Application) {
	t.Helper()

	u := &domain.User{
		Username: "freshdrop", Email: "fresh@drop.io",
		PasswordHash: "x", FullName: "Fresh Drop", Role: domain.RoleArtist,
	}
	require.NoError(t, db.Create(u).Error)

	app := &domain.Application{UserID: u.ID, Status: domain.StatusPending}
	require.NoError(t, db.Create(app).Error)
	return u, app
}

func TestReviewApplication_ApproveFlipsUserFlag(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	u, app := seedApplicant(t, db)

	reviewed, err := svc.ReviewApplication(ctx, app.ID, ReviewRequest{Status: "approved"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, reviewed.Status)
	require.NotNil(t, reviewed.ReviewedAt)

	var stored domain.User
	require.NoError(t, db.First(&stored, u.ID).Error)
	assert.True(t, stored.IsApproved)
}

func TestReviewApplication_RejectRequiresReason(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	u, app := seedApplicant(t, db)

	_, err := svc.ReviewApplication(ctx, app.ID, ReviewRequest{Status: "rejected", Reason: "  "})
	assert.ErrorIs(t, err, ErrMissingReason)

	reviewed, err := svc.ReviewApplication(ctx, app.ID, ReviewRequest{Status: "rejected", Reason: "incomplete profile"})
	require.NoError(t, err)
	assert.Equal(t, "incomplete profile", reviewed.RejectionReason)

	var stored domain.User
	require.NoError(t, db.First(&stored, u.ID).Error)
	assert.False(t, stored.IsApproved)
}

func TestReviewApplication_IsOneShot(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	_, app := seedApplicant(t, db)

	_, err := svc.ReviewApplication(ctx, app.ID, ReviewRequest{Status: "approved"})
	require.NoError(t, err)

	_, err = svc.ReviewApplication(ctx, app.ID, ReviewRequest{Status: "rejected", Reason: "changed my mind"})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestReviewApplication_InvalidStatus(t *testing.T) {
	svc, db := setupService(t)
	_, app := seedApplicant(t, db)

	_, err := svc.ReviewApplication(context.Background(), app.ID, ReviewRequest{Status: "pending"})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.ReviewApplication(context.Background(), app.ID, ReviewRequest{Status: "maybe"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestReviewRelease_RejectStoresReason(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	rel := &domain.Release{
		UserID: 1, Title: "Neon Horizon", PrimaryArtist: "Nova Wave",
		ReleaseType: domain.ReleaseTypeEP, Genre: "Electronic", Language: "en",
		Status: domain.StatusPending, CoverArtURL: "/static/c.jpg",
	}
	require.NoError(t, db.Create(rel).Error)

	reviewed, err := svc.ReviewRelease(ctx, rel.ID, ReviewRequest{Status: "rejected", Reason: "low audio quality"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, reviewed.Status)
	assert.Equal(t, "low audio quality", reviewed.RejectionReason)

	_, err = svc.ReviewRelease(ctx, rel.ID, ReviewRequest{Status: "approved"})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestReviewPayoutRequest_SetsReviewedAtOnce(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	pr := &domain.PayoutRequest{
		Reference: "r-1", UserID: 1, MethodID: 1,
		Amount: decimal.NewFromFloat(60), Status: domain.StatusPending,
	}
	require.NoError(t, db.Create(pr).Error)

	reviewed, err := svc.ReviewPayoutRequest(ctx, pr.ID, ReviewRequest{Status: "approved"})
	require.NoError(t, err)
	require.NotNil(t, reviewed.ReviewedAt)

	_, err = svc.ReviewPayoutRequest(ctx, pr.ID, ReviewRequest{Status: "rejected", Reason: "fraud"})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestUpdateUser_RoleAndSuspension(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	u, _ := seedApplicant(t, db)

	badRole := "superuser"
	_, err := svc.UpdateUser(ctx, u.ID, UpdateUserRequest{Role: &badRole})
	assert.ErrorIs(t, err, ErrInvalidRole)

	newRole := "label_manager"
	suspend := true
	updated, err := svc.UpdateUser(ctx, u.ID, UpdateUserRequest{
		Role: &newRole, IsSuspended: &suspend, SuspensionReason: "chargeback abuse",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleLabelManager, updated.Role)
	assert.True(t, updated.IsSuspended)
	assert.Equal(t, "chargeback abuse", updated.SuspensionReason)

	lift := false
	updated, err = svc.UpdateUser(ctx, u.ID, UpdateUserRequest{IsSuspended: &lift})
	require.NoError(t, err)
	assert.False(t, updated.IsSuspended)
	assert.Empty(t, updated.SuspensionReason, "reason cleared when suspension lifts")
}

func TestSetTicketStatus_AnyTransition(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	tk := &domain.Ticket{UserID: 1, Subject: "Help", Status: domain.TicketClosed}
	require.NoError(t, db.Create(tk).Error)

	updated, err := svc.SetTicketStatus(ctx, tk.ID, domain.TicketOpen)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketOpen, updated.Status)

	_, err = svc.SetTicketStatus(ctx, 999, domain.TicketClosed)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCreateEarning_RequiresExistingUser(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	u, _ := seedApplicant(t, db)

	_, err := svc.CreateEarning(ctx, CreateEarningRequest{UserID: 999, Amount: decimal.NewFromFloat(10)})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	e, err := svc.CreateEarning(ctx, CreateEarningRequest{
		UserID: u.ID, Amount: decimal.NewFromFloat(42.42), Description: "sync license",
	})
	require.NoError(t, err)
	assert.NotZero(t, e.ID)
}

func TestSetSetting_Upserts(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	require.NoError(t, svc.SetSetting(ctx, SettingRequest{Key: "minimum_payout", Value: "50"}))
	require.NoError(t, svc.SetSetting(ctx, SettingRequest{Key: "minimum_payout", Value: "75"}))

	settings, err := svc.ListSettings(ctx)
	require.NoError(t, err)
	require.Len(t, settings, 1)
	assert.Equal(t, "75", settings[0].Value)
}

func TestGetStatistics(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	seedApplicant(t, db)

	require.NoError(t, db.Create(&domain.Release{
		UserID: 1, Title: "A", PrimaryArtist: "X", ReleaseType: domain.ReleaseTypeSingle,
		Genre: "Pop", Language: "en", Status: domain.StatusPending, CoverArtURL: "/c.jpg",
	}).Error)
	require.NoError(t, db.Create(&domain.Release{
		UserID: 1, Title: "B", PrimaryArtist: "X", ReleaseType: domain.ReleaseTypeSingle,
		Genre: "Pop", Language: "en", Status: domain.StatusApproved, CoverArtURL: "/c.jpg",
	}).Error)
	require.NoError(t, db.Create(&domain.Ticket{UserID: 1, Subject: "Open", Status: domain.TicketOpen}).Error)
	require.NoError(t, db.Create(&domain.Ticket{UserID: 1, Subject: "Closed", Status: domain.TicketClosed}).Error)

	stats, err := svc.GetStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalUsers)
	assert.Equal(t, 1, stats.PendingApplications)
	assert.Equal(t, 2, stats.TotalReleases)
	assert.Equal(t, 1, stats.PendingReleases)
	assert.Equal(t, 1, stats.OpenTickets)
	assert.Equal(t, 0, stats.PendingPayoutRequests)
}
