package main

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"soundbridge/internal/database"
	"soundbridge/internal/domain"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "soundbridge.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (children first to avoid FK errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM ticket_messages")
	db.Exec("DELETE FROM tickets")
	db.Exec("DELETE FROM payout_requests")
	db.Exec("DELETE FROM payout_methods")
	db.Exec("DELETE FROM earnings")
	db.Exec("DELETE FROM release_dsps")
	db.Exec("DELETE FROM tracks")
	db.Exec("DELETE FROM releases")
	db.Exec("DELETE FROM applications")
	db.Exec("DELETE FROM news_posts")
	db.Exec("DELETE FROM platform_settings")
	db.Exec("DELETE FROM dsps")
	db.Exec("DELETE FROM users")

	// ================== USERS ==================
	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Username:     "admin",
		Email:        "admin@soundbridge.io",
		PasswordHash: string(adminHash),
		FullName:     "Platform Admin",
		Role:         domain.RoleAdmin,
		IsApproved:   true,
	}
	db.Create(&admin)
	log.Println("Admin created: admin / admin123")

	artistHash, _ := bcrypt.GenerateFromPassword([]byte("artist123"), bcrypt.DefaultCost)
	artist := domain.User{
		Username:     "novawave",
		Email:        "nova@wave.fm",
		PasswordHash: string(artistHash),
		FullName:     "Nova Wave",
		Role:         domain.RoleArtist,
		IsApproved:   true,
		Country:      "DE",
	}
	db.Create(&artist)

	labelHash, _ := bcrypt.GenerateFromPassword([]byte("label123"), bcrypt.DefaultCost)
	label := domain.User{
		Username:     "midnight_mgmt",
		Email:        "office@midnight.records",
		PasswordHash: string(labelHash),
		FullName:     "Midnight Records",
		LabelName:    "Midnight Records",
		Role:         domain.RoleLabelManager,
		IsApproved:   true,
		Country:      "UK",
	}
	db.Create(&label)

	pendingHash, _ := bcrypt.GenerateFromPassword([]byte("pending123"), bcrypt.DefaultCost)
	pending := domain.User{
		Username:     "freshdrop",
		Email:        "fresh@drop.io",
		PasswordHash: string(pendingHash),
		FullName:     "Fresh Drop",
		Role:         domain.RoleArtist,
	}
	db.Create(&pending)

	// Applications mirror the users' approval state.
	now := time.Now()
	db.Create(&domain.Application{UserID: artist.ID, Status: domain.StatusApproved, ReviewedAt: &now})
	db.Create(&domain.Application{UserID: label.ID, Status: domain.StatusApproved, ReviewedAt: &now})
	db.Create(&domain.Application{UserID: pending.ID, Status: domain.StatusPending})

	// ================== DSP CATALOG ==================
	log.Println("Creating DSP catalog...")

	dspNames := []struct {
		name    string
		region  string
		enabled bool
	}{
		{"Spotify", "global", true},
		{"Apple Music", "global", true},
		{"Deezer", "global", true},
		{"Tidal", "global", true},
		{"YouTube Music", "global", true},
		{"Boomplay", "africa", true},
		{"NetEase Cloud Music", "china", false},
	}
	dsps := make([]domain.DSP, 0, len(dspNames))
	for _, d := range dspNames {
		dsp := domain.DSP{Name: d.name, Region: d.region, Enabled: d.enabled}
		db.Create(&dsp)
		dsps = append(dsps, dsp)
	}

	// ================== SETTINGS ==================
	log.Println("Writing platform settings...")

	allowed, _ := json.Marshal([]string{"crypto", "bank_transfer"})
	db.Create(&domain.PlatformSetting{Key: domain.SettingMinimumPayout, Value: "50"})
	db.Create(&domain.PlatformSetting{Key: domain.SettingAllowedPayoutMethods, Value: string(allowed)})

	// ================== RELEASES ==================
	log.Println("Creating releases...")

	approvedRelease := domain.Release{
		UserID:        artist.ID,
		Title:         "Neon Horizon",
		PrimaryArtist: "Nova Wave",
		ReleaseType:   domain.ReleaseTypeEP,
		Genre:         "Electronic",
		Language:      "en",
		ReleaseDate:   time.Now().AddDate(0, 1, 0),
		Status:        domain.StatusApproved,
		CoverArtURL:   "/static/neon-horizon.jpg",
		Tracks: []domain.Track{
			{Title: "Neon Horizon", TrackNumber: 1, AudioURL: "/static/neon-horizon-01.wav", Duration: 214},
			{Title: "Afterglow", TrackNumber: 2, AudioURL: "/static/neon-horizon-02.wav", Duration: 189},
			{Title: "Static Dreams", TrackNumber: 3, IsExplicit: true, AudioURL: "/static/neon-horizon-03.wav", Duration: 242},
		},
		DSPs: dsps[:5],
	}
	db.Create(&approvedRelease)

	pendingRelease := domain.Release{
		UserID:        artist.ID,
		Title:         "Violet Skies",
		PrimaryArtist: "Nova Wave",
		ReleaseType:   domain.ReleaseTypeSingle,
		Genre:         "Electronic",
		Language:      "en",
		ReleaseDate:   time.Now().AddDate(0, 2, 0),
		Status:        domain.StatusPending,
		CoverArtURL:   "/static/violet-skies.jpg",
		Tracks: []domain.Track{
			{Title: "Violet Skies", TrackNumber: 1, AudioURL: "/static/violet-skies-01.wav", Duration: 201},
		},
		DSPs: dsps[:3],
	}
	db.Create(&pendingRelease)

	// ================== EARNINGS / PAYOUTS ==================
	log.Println("Creating earnings and payout data...")

	db.Create(&domain.Earning{
		UserID:      artist.ID,
		ReleaseID:   &approvedRelease.ID,
		Amount:      decimal.NewFromFloat(84.50),
		Description: "Q2 streaming royalties",
	})
	db.Create(&domain.Earning{
		UserID:      artist.ID,
		ReleaseID:   &approvedRelease.ID,
		Amount:      decimal.NewFromFloat(35.25),
		Description: "Q3 streaming royalties",
	})

	method := domain.PayoutMethod{
		UserID:     artist.ID,
		Type:       domain.PayoutMethodBankTransfer,
		Details:    `{"iban":"DE89370400440532013000","holder":"Nova Wave"}`,
		Status:     domain.StatusApproved,
		ReviewedAt: &now,
	}
	db.Create(&method)

	db.Create(&domain.PayoutRequest{
		Reference: uuid.NewString(),
		UserID:    artist.ID,
		MethodID:  method.ID,
		Amount:    decimal.NewFromFloat(50),
		Status:    domain.StatusPending,
	})

	// ================== TICKETS ==================
	log.Println("Creating tickets...")

	ticket := domain.Ticket{
		UserID:   artist.ID,
		Subject:  "Cover art not showing on Deezer",
		Status:   domain.TicketInProgress,
		Priority: domain.PriorityNormal,
		Messages: []domain.TicketMessage{
			{UserID: artist.ID, Body: "My EP went live last week but Deezer still shows a placeholder cover."},
			{UserID: admin.ID, Body: "Thanks for the report, we re-delivered the artwork and are waiting on Deezer's ingest.", IsStaff: true},
		},
	}
	db.Create(&ticket)

	// ================== NEWS ==================
	db.Create(&domain.NewsPost{
		AuthorID:  admin.ID,
		Title:     "Payout schedule for September",
		Body:      "Payout requests approved before the 25th will be settled by the first week of October.",
		Published: true,
	})

	log.Println("Seed complete.")
}
