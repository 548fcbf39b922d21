package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campuspool/internal/models"
	"campuspool/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Moderation actions an admin can take on a handled report.
const (
	ReportActionWarn    = "warn"
	ReportActionSuspend = "suspend"
	ReportActionDisable = "disable"
	ReportActionDismiss = "dismiss"
)

const auditLogLimit = 100

type AdminService struct {
	users      *repository.UserRepository
	rides      *repository.RideRepository
	requests   *repository.RideRequestRepository
	safety     *repository.SafetyRepository
	moderation *repository.ModerationRepository
	userSvc    *UserService
}

func NewAdminService(
	users *repository.UserRepository,
	rides *repository.RideRepository,
	requests *repository.RideRequestRepository,
	safety *repository.SafetyRepository,
	moderation *repository.ModerationRepository,
	userSvc *UserService,
) *AdminService {
	return &AdminService{
		users:      users,
		rides:      rides,
		requests:   requests,
		safety:     safety,
		moderation: moderation,
		userSvc:    userSvc,
	}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]UserView, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]UserView, 0, len(users))
	for i := range users {
		view, err := s.userSvc.View(ctx, &users[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

type PlatformStats struct {
	TotalUsers           int64 `json:"total_users"`
	TotalRides           int64 `json:"total_rides"`
	ActiveRides          int64 `json:"active_rides"`
	CompletedRides       int64 `json:"completed_rides"`
	CancelledRides       int64 `json:"cancelled_rides"`
	PendingVerifications int64 `json:"pending_verifications"`
	ActiveSOSEvents      int64 `json:"active_sos_events"`
	PendingReports       int64 `json:"pending_reports"`
}

func (s *AdminService) Stats(ctx context.Context) (*PlatformStats, error) {
	stats := &PlatformStats{}
	var err error

	if stats.TotalUsers, err = s.users.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalRides, err = s.rides.Count(ctx); err != nil {
		return nil, err
	}
	if stats.ActiveRides, err = s.rides.CountByStatus(ctx, models.RideStatusActive); err != nil {
		return nil, err
	}
	if stats.CompletedRides, err = s.rides.CountByStatus(ctx, models.RideStatusCompleted); err != nil {
		return nil, err
	}
	if stats.CancelledRides, err = s.rides.CountByStatus(ctx, models.RideStatusCancelled); err != nil {
		return nil, err
	}
	if stats.PendingVerifications, err = s.users.CountByVerificationStatus(ctx, models.VerificationPending); err != nil {
		return nil, err
	}
	if stats.ActiveSOSEvents, err = s.safety.CountActiveSOS(ctx); err != nil {
		return nil, err
	}
	if stats.PendingReports, err = s.moderation.CountReportsByStatus(ctx, models.ReportStatusPending); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *AdminService) AuditLogs(ctx context.Context) ([]models.AuditLog, error) {
	return s.moderation.ListAuditLogs(ctx, auditLogLimit)
}

// SetUserStatus flips a user's active or suspended flag. Admin accounts are
// off limits.
func (s *AdminService) SetUserStatus(ctx context.Context, admin *models.User, userID uuid.UUID, isActive, isSuspended *bool) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.IsAdmin {
		return nil, ErrCannotModerateAdmin
	}

	if isActive != nil {
		user.IsActive = *isActive
	}
	if isSuspended != nil {
		user.IsSuspended = *isSuspended
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.audit(ctx, admin, "set_user_status", "user", user.ID.String(),
		fmt.Sprintf("active=%v suspended=%v", user.IsActive, user.IsSuspended))
	return user, nil
}

func (s *AdminService) PendingVerifications(ctx context.Context) ([]models.User, error) {
	return s.users.ListByVerificationStatus(ctx, models.VerificationPending)
}

// HandleVerification approves or rejects a pending student-ID submission.
func (s *AdminService) HandleVerification(ctx context.Context, admin *models.User, userID uuid.UUID, approve bool, reason *string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	if approve {
		user.VerificationStatus = models.VerificationVerified
		user.VerifiedAt = &now
		user.RejectionReason = nil
	} else {
		user.VerificationStatus = models.VerificationRejected
		user.RejectionReason = reason
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	action := "reject_verification"
	if approve {
		action = "approve_verification"
	}
	s.audit(ctx, admin, action, "user", user.ID.String(), "")
	return user, nil
}

type FileReportInput struct {
	ReportedUserID *uuid.UUID
	RideID         *uuid.UUID
	Category       models.ReportCategory
	Description    string
}

// FileReport records a user's complaint for admin review.
func (s *AdminService) FileReport(ctx context.Context, reporter *models.User, in FileReportInput) (*models.Report, error) {
	switch in.Category {
	case models.ReportCategorySafety, models.ReportCategoryBehavior,
		models.ReportCategoryMisuse, models.ReportCategoryOther:
	default:
		return nil, ErrInvalidReportCategory
	}
	if in.ReportedUserID != nil {
		if _, err := s.users.GetByID(ctx, *in.ReportedUserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
	}

	report := &models.Report{
		ID:             uuid.New(),
		ReporterID:     reporter.ID,
		ReportedUserID: in.ReportedUserID,
		RideID:         in.RideID,
		Category:       in.Category,
		Description:    in.Description,
		Status:         models.ReportStatusPending,
	}
	if err := s.moderation.CreateReport(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *AdminService) ListReports(ctx context.Context) ([]models.Report, error) {
	return s.moderation.ListReports(ctx)
}

// HandleReport resolves a pending report. Warn bumps the reported user's
// warning counter; suspend and disable flip the matching account flag.
func (s *AdminService) HandleReport(ctx context.Context, admin *models.User, reportID uuid.UUID, action string, notes *string) (*models.Report, error) {
	report, err := s.moderation.GetReport(ctx, reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	if report.Status == models.ReportStatusHandled {
		return nil, ErrReportAlreadyHandled
	}

	switch action {
	case ReportActionWarn, ReportActionSuspend, ReportActionDisable:
		if report.ReportedUserID == nil {
			return nil, ErrInvalidAdminAction
		}
		target, err := s.users.GetByID(ctx, *report.ReportedUserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
		if target.IsAdmin {
			return nil, ErrCannotModerateAdmin
		}
		switch action {
		case ReportActionWarn:
			target.WarningCount++
		case ReportActionSuspend:
			target.IsSuspended = true
		case ReportActionDisable:
			target.IsActive = false
		}
		if err := s.users.Update(ctx, target); err != nil {
			return nil, err
		}
	case ReportActionDismiss:
	default:
		return nil, ErrInvalidAdminAction
	}

	now := time.Now().UTC()
	report.Status = models.ReportStatusHandled
	report.AdminAction = &action
	report.AdminNotes = notes
	report.HandledAt = &now
	report.HandledBy = &admin.ID
	if err := s.moderation.UpdateReport(ctx, report); err != nil {
		return nil, err
	}

	s.audit(ctx, admin, "handle_report", "report", report.ID.String(), action)
	return report, nil
}

func (s *AdminService) ListSOS(ctx context.Context) ([]models.SOSEvent, error) {
	return s.safety.ListSOS(ctx)
}

// HandleSOS moves an alert to reviewing or resolved.
func (s *AdminService) HandleSOS(ctx context.Context, admin *models.User, eventID uuid.UUID, action string, notes *string) (*models.SOSEvent, error) {
	event, err := s.safety.GetSOS(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSOSNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	switch action {
	case "review":
		event.Status = models.SOSStatusReviewing
		event.ReviewedAt = &now
	case "resolve":
		event.Status = models.SOSStatusResolved
		event.ResolvedAt = &now
		event.ResolvedBy = &admin.ID
	default:
		return nil, ErrInvalidAdminAction
	}
	if notes != nil {
		event.AdminNotes = notes
	}
	if err := s.safety.UpdateSOS(ctx, event); err != nil {
		return nil, err
	}

	s.audit(ctx, admin, "handle_sos", "sos_event", event.ID.String(), action)
	return event, nil
}

type EventTagInput struct {
	Name        string
	Description *string
}

func (s *AdminService) CreateEventTag(ctx context.Context, admin *models.User, in EventTagInput) (*models.EventTag, error) {
	tag := &models.EventTag{
		ID:          uuid.New(),
		Name:        in.Name,
		Description: in.Description,
		IsActive:    true,
		CreatedBy:   &admin.ID,
	}
	if err := s.moderation.CreateEventTag(ctx, tag); err != nil {
		return nil, err
	}
	s.audit(ctx, admin, "create_event_tag", "event_tag", tag.ID.String(), tag.Name)
	return tag, nil
}

func (s *AdminService) DeactivateEventTag(ctx context.Context, admin *models.User, tagID uuid.UUID) (*models.EventTag, error) {
	tag, err := s.moderation.GetEventTag(ctx, tagID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}

	tag.IsActive = false
	if err := s.moderation.UpdateEventTag(ctx, tag); err != nil {
		return nil, err
	}
	s.audit(ctx, admin, "deactivate_event_tag", "event_tag", tag.ID.String(), tag.Name)
	return tag, nil
}

func (s *AdminService) ActiveEventTags(ctx context.Context) ([]models.EventTag, error) {
	return s.moderation.ListActiveEventTags(ctx)
}

// audit writes an entry to the trail. A failed write never blocks the
// action it describes.
func (s *AdminService) audit(ctx context.Context, admin *models.User, action, targetType, targetID, details string) {
	_ = s.moderation.CreateAuditLog(ctx, &models.AuditLog{
		ID:         uuid.New(),
		AdminID:    admin.ID,
		AdminName:  admin.Name,
		ActionType: action,
		TargetType: targetType,
		TargetID:   targetID,
		Details:    details,
	})
}
