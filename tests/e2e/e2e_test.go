package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"soundbridge/internal/database"
	"soundbridge/internal/domain"
	"soundbridge/internal/middleware"
	"soundbridge/internal/modules/admin"
	"soundbridge/internal/modules/auth"
	"soundbridge/internal/modules/payout"
	"soundbridge/internal/modules/release"
	"soundbridge/internal/modules/ticket"
	jwtsvc "soundbridge/internal/pkg/jwt"
	"soundbridge/internal/repository"
)

const cookieName = "sb_session"

type suite struct {
	router *gin.Engine
	db     *gorm.DB
	jwt    *jwtsvc.Service
}

func setupSuite(t *testing.T) *suite {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	userRepo := repository.NewUserRepository(db)
	appRepo := repository.NewApplicationRepository(db)
	releaseRepo := repository.NewReleaseRepository(db)
	dspRepo := repository.NewDSPRepository(db)
	payoutRepo := repository.NewPayoutRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	newsRepo := repository.NewNewsRepository(db)

	j := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService, auth.CookieConfig{Name: cookieName, TTL: 24 * time.Hour})

	releaseService := release.NewService(releaseRepo, dspRepo)
	releaseHandler := release.NewHandler(releaseService, t.TempDir())

	payoutService := payout.NewService(payoutRepo, settingRepo)
	payoutHandler := payout.NewHandler(payoutService)

	hub := ticket.NewHub()
	ticketService := ticket.NewService(ticketRepo, hub)
	ticketHandler := ticket.NewHandler(ticketService, hub)

	adminService := admin.NewService(
		userRepo, appRepo, releaseRepo, payoutRepo,
		ticketRepo, dspRepo, settingRepo, newsRepo,
	)
	adminHandler := admin.NewHandler(adminService)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	authn := middleware.NewAuthenticator(j, userRepo, cookieName)

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)

		authed := v1.Group("/")
		authed.Use(authn.Authenticate())
		{
			authHandler.RegisterAuthenticatedRoutes(authed)

			approved := authed.Group("/")
			approved.Use(middleware.ApprovedActive())
			{
				releaseHandler.RegisterRoutes(approved)
				payoutHandler.RegisterRoutes(approved)
				ticketHandler.RegisterRoutes(approved)
			}

			adminGroup := authed.Group("/admin")
			adminGroup.Use(middleware.AdminOnly())
			adminHandler.RegisterRoutes(adminGroup, authed)
		}
	}

	// Seed the fixed admin account and the DSP catalog.
	hash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	require.NoError(t, db.Create(&domain.User{
		Username: "admin", Email: "admin@soundbridge.io", PasswordHash: string(hash),
		FullName: "Admin", Role: domain.RoleAdmin, IsApproved: true,
	}).Error)

	for _, name := range []string{"Spotify", "Apple Music", "Tidal"} {
		require.NoError(t, db.Create(&domain.DSP{Name: name, Enabled: true}).Error)
	}

	return &suite{router: r, db: db, jwt: j}
}

func (s *suite) do(t *testing.T, method, path string, body any, cookie string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: cookie})
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *suite) login(t *testing.T, username, password string) string {
	t.Helper()

	w := s.do(t, "POST", "/api/v1/auth/login", gin.H{"username": username, "password": password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	for _, c := range w.Result().Cookies() {
		if c.Name == cookieName {
			return c.Value
		}
	}
	t.Fatal("no session cookie in login response")
	return ""
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestFullReleaseLifecycle(t *testing.T) {
	s := setupSuite(t)

	// Register a new artist.
	w := s.do(t, "POST", "/api/v1/auth/register", gin.H{
		"username": "novawave", "email": "nova@wave.fm",
		"password": "secret-pass-1", "full_name": "Nova Wave", "role": "artist",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	artistCookie := s.login(t, "novawave", "secret-pass-1")

	// Functional endpoints are blocked until the application is approved.
	w = s.do(t, "GET", "/api/v1/releases", nil, artistCookie)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "not approved yet")

	// Admin approves the application.
	adminCookie := s.login(t, "admin", "admin123")

	w = s.do(t, "GET", "/api/v1/admin/applications?status=pending", nil, adminCookie)
	require.Equal(t, http.StatusOK, w.Code)
	apps := decode(t, w)["applications"].([]any)
	require.Len(t, apps, 1)
	appID := int64(apps[0].(map[string]any)["id"].(float64))

	w = s.do(t, "PATCH", fmt.Sprintf("/api/v1/admin/applications/%d", appID),
		gin.H{"status": "approved"}, adminCookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Re-reviewing the same application fails.
	w = s.do(t, "PATCH", fmt.Sprintf("/api/v1/admin/applications/%d", appID),
		gin.H{"status": "rejected", "reason": "nope"}, adminCookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// The artist can now see the DSP catalog and submit a release.
	w = s.do(t, "GET", "/api/v1/dsps", nil, artistCookie)
	require.Equal(t, http.StatusOK, w.Code)
	dsps := decode(t, w)["dsps"].([]any)
	require.Len(t, dsps, 3)

	dspIDs := make([]int64, 0, 3)
	for _, d := range dsps {
		dspIDs = append(dspIDs, int64(d.(map[string]any)["id"].(float64)))
	}

	w = s.do(t, "POST", "/api/v1/releases", gin.H{
		"title":          "Neon Horizon",
		"primary_artist": "Nova Wave",
		"release_type":   "EP",
		"genre":          "Electronic",
		"language":       "en",
		"release_date":   time.Now().UTC().AddDate(0, 1, 0).Format("2006-01-02"),
		"cover_art_url":  "/static/cover.jpg",
		"tracks": []gin.H{
			{"title": "Neon Horizon", "track_number": 1, "audio_url": "/static/01.wav"},
			{"title": "Afterglow", "track_number": 2, "audio_url": "/static/02.wav"},
		},
		"dsp_ids": dspIDs,
	}, artistCookie)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	rel := decode(t, w)["release"].(map[string]any)
	relID := int64(rel["id"].(float64))
	assert.Equal(t, "pending", rel["status"])

	// Validation failures come back as a field-keyed map.
	w = s.do(t, "POST", "/api/v1/releases", gin.H{
		"title": "Broken", "primary_artist": "Nova Wave", "release_type": "Mixtape",
		"genre": "Electronic", "language": "en", "release_date": "yesterday",
		"cover_art_url": "/static/c.jpg",
		"tracks":        []gin.H{{"title": "", "track_number": 5, "audio_url": ""}},
		"dsp_ids":       dspIDs,
	}, artistCookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	errs := decode(t, w)["errors"].(map[string]any)
	assert.Contains(t, errs, "release_type")
	assert.Contains(t, errs, "release_date")
	assert.Contains(t, errs, "tracks.0.title")

	// Admin rejects the release with a reason the artist can read back.
	w = s.do(t, "PATCH", fmt.Sprintf("/api/v1/admin/releases/%d", relID),
		gin.H{"status": "rejected", "reason": "low audio quality"}, adminCookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, "GET", fmt.Sprintf("/api/v1/releases/%d", relID), nil, artistCookie)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode(t, w)["release"].(map[string]any)
	assert.Equal(t, "rejected", got["status"])
	assert.Equal(t, "low audio quality", got["rejection_reason"])
}

func TestPayoutFlow(t *testing.T) {
	s := setupSuite(t)
	adminCookie := s.login(t, "admin", "admin123")

	// Approved artist with an earnings history.
	hash, _ := bcrypt.GenerateFromPassword([]byte("artist123"), bcrypt.DefaultCost)
	artist := &domain.User{
		Username: "novawave", Email: "nova@wave.fm", PasswordHash: string(hash),
		FullName: "Nova Wave", Role: domain.RoleArtist, IsApproved: true,
	}
	require.NoError(t, s.db.Create(artist).Error)
	require.NoError(t, s.db.Create(&domain.PlatformSetting{Key: domain.SettingMinimumPayout, Value: "50"}).Error)

	artistCookie := s.login(t, "novawave", "artist123")

	// Admin records earnings.
	w := s.do(t, "POST", "/api/v1/admin/earnings", gin.H{
		"user_id": artist.ID, "amount": "120", "description": "Q2 royalties",
	}, adminCookie)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Artist proposes a payout method; it starts pending and is unusable.
	w = s.do(t, "POST", "/api/v1/payout-methods", gin.H{
		"type": "bank_transfer", "details": `{"iban":"DE89"}`,
	}, artistCookie)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	methodID := int64(decode(t, w)["method"].(map[string]any)["id"].(float64))

	w = s.do(t, "POST", "/api/v1/payout-requests", gin.H{
		"method_id": methodID, "amount": "60",
	}, artistCookie)
	assert.Equal(t, http.StatusBadRequest, w.Code, "pending method must be rejected")

	// Admin approves the method; the withdrawal then goes through.
	w = s.do(t, "PATCH", fmt.Sprintf("/api/v1/admin/payout-methods/%d", methodID),
		gin.H{"status": "approved"}, adminCookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, "POST", "/api/v1/payout-requests", gin.H{
		"method_id": methodID, "amount": "60",
	}, artistCookie)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	reqID := int64(decode(t, w)["request"].(map[string]any)["id"].(float64))

	// Balance only drops once the admin approves the request.
	w = s.do(t, "GET", "/api/v1/balance", nil, artistCookie)
	require.Equal(t, http.StatusOK, w.Code)
	bal, err := decimal.NewFromString(fmt.Sprint(decode(t, w)["balance"]))
	require.NoError(t, err)
	assert.True(t, bal.Equal(decimal.NewFromInt(120)), "balance %s", bal)

	w = s.do(t, "PATCH", fmt.Sprintf("/api/v1/admin/payout-requests/%d", reqID),
		gin.H{"status": "approved"}, adminCookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, "GET", "/api/v1/balance", nil, artistCookie)
	require.Equal(t, http.StatusOK, w.Code)
	bal, err = decimal.NewFromString(fmt.Sprint(decode(t, w)["balance"]))
	require.NoError(t, err)
	assert.True(t, bal.Equal(decimal.NewFromInt(60)), "balance %s", bal)
}

func TestTicketFlow(t *testing.T) {
	s := setupSuite(t)
	adminCookie := s.login(t, "admin", "admin123")

	hash, _ := bcrypt.GenerateFromPassword([]byte("artist123"), bcrypt.DefaultCost)
	artist := &domain.User{
		Username: "novawave", Email: "nova@wave.fm", PasswordHash: string(hash),
		FullName: "Nova Wave", Role: domain.RoleArtist, IsApproved: true,
	}
	require.NoError(t, s.db.Create(artist).Error)
	artistCookie := s.login(t, "novawave", "artist123")

	w := s.do(t, "POST", "/api/v1/tickets", gin.H{
		"subject": "Cover art missing", "message": "Deezer shows a placeholder.",
	}, artistCookie)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	ticketID := int64(decode(t, w)["ticket"].(map[string]any)["id"].(float64))

	// Admin replies as staff, then closes the ticket.
	w = s.do(t, "POST", fmt.Sprintf("/api/v1/admin/tickets/%d", ticketID), nil, adminCookie)
	assert.Equal(t, http.StatusNotFound, w.Code, "admin ticket surface is PATCH only")

	w = s.do(t, "PATCH", fmt.Sprintf("/api/v1/admin/tickets/%d", ticketID),
		gin.H{"status": "closed"}, adminCookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, "POST", fmt.Sprintf("/api/v1/tickets/%d/messages", ticketID),
		gin.H{"body": "one more thing"}, artistCookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Ticket is closed")

	// Reopened tickets accept replies again.
	w = s.do(t, "PATCH", fmt.Sprintf("/api/v1/admin/tickets/%d", ticketID),
		gin.H{"status": "open"}, adminCookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, "POST", fmt.Sprintf("/api/v1/tickets/%d/messages", ticketID),
		gin.H{"body": "thanks for reopening"}, artistCookie)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestAdminSurfaceRequiresAdminRole(t *testing.T) {
	s := setupSuite(t)

	hash, _ := bcrypt.GenerateFromPassword([]byte("artist123"), bcrypt.DefaultCost)
	require.NoError(t, s.db.Create(&domain.User{
		Username: "novawave", Email: "nova@wave.fm", PasswordHash: string(hash),
		FullName: "Nova Wave", Role: domain.RoleArtist, IsApproved: true,
	}).Error)
	artistCookie := s.login(t, "novawave", "artist123")

	w := s.do(t, "GET", "/api/v1/admin/applications", nil, artistCookie)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, "GET", "/api/v1/admin/stats", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
