package admin

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"soundbridge/internal/domain"
)

type Service struct {
	users    UserRepository
	apps     ApplicationRepository
	releases ReleaseRepository
	payouts  PayoutRepository
	tickets  TicketRepository
	dsps     DSPRepository
	settings SettingRepository
	news     NewsRepository
}

func NewService(
	users UserRepository,
	apps ApplicationRepository,
	releases ReleaseRepository,
	payouts PayoutRepository,
	tickets TicketRepository,
	dsps DSPRepository,
	settings SettingRepository,
	news NewsRepository,
) *Service {
	return &Service{
		users:    users,
		apps:     apps,
		releases: releases,
		payouts:  payouts,
		tickets:  tickets,
		dsps:     dsps,
		settings: settings,
		news:     news,
	}
}

// checkReview enforces the shared review machine: only pending entities can
// be reviewed, the target must be approved/rejected, and rejections carry a
// reason. Review is one-shot; reviewedAt is written exactly once.
func checkReview(current domain.ReviewStatus, target domain.ReviewStatus, reason string) error {
	if !domain.ValidReviewTarget(target) {
		return ErrInvalidStatus
	}
	if current != domain.StatusPending {
		return ErrAlreadyReviewed
	}
	if target == domain.StatusRejected && strings.TrimSpace(reason) == "" {
		return ErrMissingReason
	}
	return nil
}

// -------------------- Applications --------------------

func (s *Service) ListApplications(ctx context.Context, status domain.ReviewStatus) ([]domain.Application, error) {
	return s.apps.List(ctx, status)
}

// ReviewApplication approves or rejects an access application. Approval
// flips the owning user's IsApproved flag inside the same transaction so a
// crash cannot leave the two rows disagreeing.
func (s *Service) ReviewApplication(ctx context.Context, id int64, req ReviewRequest) (*domain.Application, error) {
	app, err := s.apps.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	target := domain.ReviewStatus(req.Status)
	if err := checkReview(app.Status, target, req.Reason); err != nil {
		return nil, err
	}

	now := time.Now()
	app.Status = target
	app.ReviewedAt = &now
	if target == domain.StatusRejected {
		app.RejectionReason = strings.TrimSpace(req.Reason)
	}

	err = s.apps.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("User").Save(app).Error; err != nil {
			return err
		}
		if target == domain.StatusApproved {
			return tx.Model(&domain.User{}).
				Where("id = ?", app.UserID).
				Update("is_approved", true).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return app, nil
}

// -------------------- Releases --------------------

func (s *Service) ListReleases(ctx context.Context, status domain.ReviewStatus) ([]domain.Release, error) {
	return s.releases.ListAll(ctx, status)
}

func (s *Service) ReviewRelease(ctx context.Context, id int64, req ReviewRequest) (*domain.Release, error) {
	rel, err := s.releases.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	target := domain.ReviewStatus(req.Status)
	if err := checkReview(rel.Status, target, req.Reason); err != nil {
		return nil, err
	}

	rel.Status = target
	if target == domain.StatusRejected {
		rel.RejectionReason = strings.TrimSpace(req.Reason)
	}
	if err := s.releases.Update(ctx, rel); err != nil {
		return nil, err
	}
	return rel, nil
}

// -------------------- Payout methods --------------------

func (s *Service) ListPayoutMethods(ctx context.Context, status domain.ReviewStatus) ([]domain.PayoutMethod, error) {
	return s.payouts.ListMethods(ctx, status)
}

func (s *Service) ReviewPayoutMethod(ctx context.Context, id int64, req ReviewRequest) (*domain.PayoutMethod, error) {
	m, err := s.payouts.GetMethodByID(ctx, id)
	if err != nil {
		return nil, err
	}

	target := domain.ReviewStatus(req.Status)
	if err := checkReview(m.Status, target, req.Reason); err != nil {
		return nil, err
	}

	now := time.Now()
	m.Status = target
	m.ReviewedAt = &now
	if target == domain.StatusRejected {
		m.RejectionReason = strings.TrimSpace(req.Reason)
	}
	if err := s.payouts.UpdateMethod(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// -------------------- Payout requests --------------------

func (s *Service) ListPayoutRequests(ctx context.Context, status domain.ReviewStatus) ([]domain.PayoutRequest, error) {
	return s.payouts.ListRequests(ctx, status)
}

// ReviewPayoutRequest approves or rejects a withdrawal. Approval has no
// further side effect: the user's balance is derived, so flipping the
// status alone reduces it on the next read.
func (s *Service) ReviewPayoutRequest(ctx context.Context, id int64, req ReviewRequest) (*domain.PayoutRequest, error) {
	pr, err := s.payouts.GetRequestByID(ctx, id)
	if err != nil {
		return nil, err
	}

	target := domain.ReviewStatus(req.Status)
	if err := checkReview(pr.Status, target, req.Reason); err != nil {
		return nil, err
	}

	now := time.Now()
	pr.Status = target
	pr.ReviewedAt = &now
	if target == domain.StatusRejected {
		pr.RejectionReason = strings.TrimSpace(req.Reason)
	}
	if err := s.payouts.UpdateRequest(ctx, pr); err != nil {
		return nil, err
	}
	return pr, nil
}

// -------------------- Users --------------------

func (s *Service) ListUsers(ctx context.Context, filter UserListFilter) ([]domain.User, error) {
	q := s.users.DB().WithContext(ctx).Model(&domain.User{})

	if strings.TrimSpace(filter.Role) != "" {
		q = q.Where("role = ?", strings.TrimSpace(filter.Role))
	}
	if filter.Approved != nil {
		q = q.Where("is_approved = ?", *filter.Approved)
	}
	if filter.Suspended != nil {
		q = q.Where("is_suspended = ?", *filter.Suspended)
	}
	if strings.TrimSpace(filter.Query) != "" {
		sv := "%" + strings.ToLower(strings.TrimSpace(filter.Query)) + "%"
		q = q.Where("LOWER(username) LIKE ? OR LOWER(email) LIKE ? OR LOWER(full_name) LIKE ?", sv, sv, sv)
	}

	var users []domain.User
	if err := q.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Service) UpdateUser(ctx context.Context, id int64, req UpdateUserRequest) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Role != nil {
		role := domain.UserRole(*req.Role)
		if !domain.ValidRole(role) {
			return nil, ErrInvalidRole
		}
		u.Role = role
	}
	if req.IsApproved != nil {
		u.IsApproved = *req.IsApproved
	}
	if req.IsSuspended != nil {
		u.IsSuspended = *req.IsSuspended
		if *req.IsSuspended {
			u.SuspensionReason = strings.TrimSpace(req.SuspensionReason)
		} else {
			u.SuspensionReason = ""
		}
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	if _, err := s.users.GetByID(ctx, id); err != nil {
		return err
	}
	return s.users.Delete(ctx, id)
}

// -------------------- Tickets --------------------

func (s *Service) ListTickets(ctx context.Context, status domain.TicketStatus) ([]domain.Ticket, error) {
	return s.tickets.ListAll(ctx, status)
}

// SetTicketStatus moves a ticket to any of the three states; the machine
// is deliberately not forward-only for admins.
func (s *Service) SetTicketStatus(ctx context.Context, id int64, status domain.TicketStatus) (*domain.Ticket, error) {
	t, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	t.Status = status
	if err := s.tickets.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// -------------------- DSPs --------------------

func (s *Service) ListDSPs(ctx context.Context) ([]domain.DSP, error) {
	return s.dsps.ListAll(ctx)
}

func (s *Service) CreateDSP(ctx context.Context, req DSPRequest) (*domain.DSP, error) {
	d := &domain.DSP{
		Name:    strings.TrimSpace(req.Name),
		Region:  req.Region,
		Enabled: true,
	}
	if req.Enabled != nil {
		d.Enabled = *req.Enabled
	}
	if err := s.dsps.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) UpdateDSP(ctx context.Context, id int64, req DSPRequest) (*domain.DSP, error) {
	d, err := s.dsps.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Name) != "" {
		d.Name = strings.TrimSpace(req.Name)
	}
	if req.Region != "" {
		d.Region = req.Region
	}
	if req.Enabled != nil {
		d.Enabled = *req.Enabled
	}
	if err := s.dsps.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// -------------------- Settings --------------------

func (s *Service) ListSettings(ctx context.Context) ([]domain.PlatformSetting, error) {
	return s.settings.List(ctx)
}

func (s *Service) SetSetting(ctx context.Context, req SettingRequest) error {
	return s.settings.Set(ctx, strings.TrimSpace(req.Key), req.Value)
}

// -------------------- Earnings --------------------

// CreateEarning appends to a user's accrual ledger.
func (s *Service) CreateEarning(ctx context.Context, req CreateEarningRequest) (*domain.Earning, error) {
	if _, err := s.users.GetByID(ctx, req.UserID); err != nil {
		return nil, err
	}

	e := &domain.Earning{
		UserID:      req.UserID,
		ReleaseID:   req.ReleaseID,
		Amount:      req.Amount,
		Description: req.Description,
	}
	if err := s.payouts.CreateEarning(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// -------------------- News --------------------

func (s *Service) ListNews(ctx context.Context) ([]domain.NewsPost, error) {
	return s.news.ListAll(ctx)
}

func (s *Service) ListPublishedNews(ctx context.Context) ([]domain.NewsPost, error) {
	return s.news.ListPublished(ctx)
}

func (s *Service) CreateNews(ctx context.Context, authorID int64, req NewsRequest) (*domain.NewsPost, error) {
	n := &domain.NewsPost{
		AuthorID:  authorID,
		Title:     strings.TrimSpace(req.Title),
		Body:      req.Body,
		Published: true,
	}
	if req.Published != nil {
		n.Published = *req.Published
	}
	if err := s.news.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *Service) UpdateNews(ctx context.Context, id int64, req NewsRequest) (*domain.NewsPost, error) {
	n, err := s.news.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	n.Title = strings.TrimSpace(req.Title)
	n.Body = req.Body
	if req.Published != nil {
		n.Published = *req.Published
	}
	if err := s.news.Update(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *Service) DeleteNews(ctx context.Context, id int64) error {
	if _, err := s.news.GetByID(ctx, id); err != nil {
		return err
	}
	return s.news.Delete(ctx, id)
}

// -------------------- Statistics --------------------

func (s *Service) GetStatistics(ctx context.Context) (*StatisticsResponse, error) {
	stats := &StatisticsResponse{}

	count := func(db *gorm.DB, model any, dest *int, query string, args ...any) error {
		var n int64
		q := db.WithContext(ctx).Model(model)
		if query != "" {
			q = q.Where(query, args...)
		}
		if err := q.Count(&n).Error; err != nil {
			return err
		}
		*dest = int(n)
		return nil
	}

	if err := count(s.users.DB(), &domain.User{}, &stats.TotalUsers, ""); err != nil {
		return nil, err
	}
	if err := count(s.apps.DB(), &domain.Application{}, &stats.PendingApplications, "status = ?", domain.StatusPending); err != nil {
		return nil, err
	}
	if err := count(s.releases.DB(), &domain.Release{}, &stats.TotalReleases, ""); err != nil {
		return nil, err
	}
	if err := count(s.releases.DB(), &domain.Release{}, &stats.PendingReleases, "status = ?", domain.StatusPending); err != nil {
		return nil, err
	}
	if err := count(s.tickets.DB(), &domain.Ticket{}, &stats.OpenTickets, "status = ?", domain.TicketOpen); err != nil {
		return nil, err
	}
	if err := count(s.payouts.DB(), &domain.PayoutRequest{}, &stats.PendingPayoutRequests, "status = ?", domain.StatusPending); err != nil {
		return nil, err
	}

	return stats, nil
}
