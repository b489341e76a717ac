package ticket

import (
	"context"
	"testing"

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

	return NewService(repository.NewTicketRepository(db), NewHub()), db
}

var (
	artist = &domain.User{ID: 1, Role: domain.RoleArtist}
	admin  = &domain.User{ID: 2, Role: domain.RoleAdmin}
	other  = &domain.User{ID: 3, Role: domain.RoleArtist}
)

func TestCreate_WithFirstMessage(t *testing.T) {
	svc, _ := setupService(t)

	tk, err := svc.Create(context.Background(), artist, CreateTicketRequest{
		Subject: "Cover art missing",
		Message: "Deezer shows a placeholder.",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.TicketOpen, tk.Status)
	assert.Equal(t, domain.PriorityNormal, tk.Priority)
	require.Len(t, tk.Messages, 1)
	assert.False(t, tk.Messages[0].IsStaff)
}

func TestCreate_WithoutMessage(t *testing.T) {
	svc, _ := setupService(t)

	tk, err := svc.Create(context.Background(), artist, CreateTicketRequest{Subject: "Just a question"})
	require.NoError(t, err)
	assert.Empty(t, tk.Messages)
}

func TestGet_NotFoundBeforeForbidden(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	tk, err := svc.Create(ctx, artist, CreateTicketRequest{Subject: "Mine"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, other, 4242)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = svc.Get(ctx, other, tk.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := svc.Get(ctx, admin, tk.ID)
	require.NoError(t, err)
	assert.Equal(t, tk.ID, got.ID)
}

func TestAddMessage_StaffFlagFollowsRole(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	tk, err := svc.Create(ctx, artist, CreateTicketRequest{Subject: "Help"})
	require.NoError(t, err)

	msg, err := svc.AddMessage(ctx, artist, tk.ID, "Any update?")
	require.NoError(t, err)
	assert.False(t, msg.IsStaff)

	reply, err := svc.AddMessage(ctx, admin, tk.ID, "Looking into it.")
	require.NoError(t, err)
	assert.True(t, reply.IsStaff)
}

func TestAddMessage_ForbiddenForStrangers(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	tk, err := svc.Create(ctx, artist, CreateTicketRequest{Subject: "Private"})
	require.NoError(t, err)

	_, err = svc.AddMessage(ctx, other, tk.ID, "let me in")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAddMessage_ClosedTicketRejectsReplies(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	tk, err := svc.Create(ctx, artist, CreateTicketRequest{Subject: "Done deal"})
	require.NoError(t, err)

	require.NoError(t, db.Model(&domain.Ticket{}).
		Where("id = ?", tk.ID).
		Update("status", domain.TicketClosed).Error)

	_, err = svc.AddMessage(ctx, artist, tk.ID, "one more thing")
	assert.ErrorIs(t, err, ErrTicketClosed)

	// Admins are bound by the same rule.
	_, err = svc.AddMessage(ctx, admin, tk.ID, "reopening?")
	assert.ErrorIs(t, err, ErrTicketClosed)
}

func TestListForUser_OnlyOwnTickets(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, artist, CreateTicketRequest{Subject: "A"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, other, CreateTicketRequest{Subject: "B"})
	require.NoError(t, err)

	mine, err := svc.ListForUser(ctx, artist.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "A", mine[0].Subject)
}
