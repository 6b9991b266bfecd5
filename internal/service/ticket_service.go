package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/anastheace/faultandtms/internal/dto"
	"github.com/anastheace/faultandtms/internal/model"
	"github.com/anastheace/faultandtms/internal/repository"
	apperrors "github.com/anastheace/faultandtms/pkg/errors"
	"github.com/anastheace/faultandtms/pkg/mailer"
)

// ── ticket errors ──

var (
	ErrTicketNotFound      = errors.New("ticket not found")
	ErrTicketForbidden     = errors.New("ticket not accessible")
	ErrStatusRequired      = errors.New("status is required")
	ErrInvalidTicketStatus = errors.New("invalid ticket status")
	ErrEmptyDescription    = errors.New("description is empty")
	ErrEmptyUpdate         = errors.New("update text is empty")
	ErrTechnicianNotFound  = errors.New("technician not found")
	ErrReporterNotFound    = errors.New("telemetry reporter not found")
)

const telemetryLabel = "Auto Telemetry"

// TicketService fault ticket lifecycle
type TicketService interface {
	Create(ctx context.Context, caller Caller, req *dto.CreateTicketRequest) (*dto.CreateTicketResponse, error)
	List(ctx context.Context, caller Caller, req *dto.TicketListRequest) ([]dto.TicketResponse, error)
	Get(ctx context.Context, caller Caller, ref string) (*dto.TicketDetailResponse, error)
	UpdateStatus(ctx context.Context, caller Caller, ref, status string) error
	Assign(ctx context.Context, caller Caller, ref string, techID uint) error
	AddUpdate(ctx context.Context, caller Caller, ref, text string) error
	// ReportThermalEvent files a critical hardware ticket on behalf of the
	// telemetry reporter account and returns the new ticket id.
	ReportThermalEvent(ctx context.Context, computerID uint, tempC int) (uint, error)
}

// assignMailTimeout bounds how long a notification goroutine waits on SMTP.
const assignMailTimeout = 30 * time.Second

type ticketService struct {
	repo          *repository.Repository
	mail          mailer.Mailer
	reporterEmail string
	logger        *zap.Logger

	mailTimeout time.Duration
	mailWG      sync.WaitGroup
}

func NewTicketService(
	repo *repository.Repository,
	mail mailer.Mailer,
	reporterEmail string,
	logger *zap.Logger,
) TicketService {
	return &ticketService{
		repo:          repo,
		mail:          mail,
		reporterEmail: normalizeEmail(reporterEmail),
		logger:        logger,
		mailTimeout:   assignMailTimeout,
	}
}

func (s *ticketService) Create(ctx context.Context, caller Caller, req *dto.CreateTicketRequest) (*dto.CreateTicketResponse, error) {
	description := sanitizeText(req.Description)
	if description == "" {
		return nil, ErrEmptyDescription
	}

	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	tag := NormalizeTag(req.PCNumber)

	var ticket *model.Ticket
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		pc, err := tx.Computer.FindOrCreate(ctx, tag, LabFromTag(tag), model.ComputerFaulty)
		if err != nil {
			return err
		}

		ticket = &model.Ticket{
			ComputerID:    pc.ID,
			ReportedBy:    caller.UserID,
			IssueCategory: req.IssueCategory,
			Description:   description,
			Priority:      priority,
			Status:        model.TicketOpen,
			Source:        model.SourceManual,
		}
		return tx.Ticket.Create(ctx, ticket)
	})
	if err != nil {
		s.logger.Error("create ticket failed", zap.String("pc", tag), zap.Error(err))
		return nil, err
	}

	s.logger.Info("fault reported",
		zap.Uint("ticket_id", ticket.ID),
		zap.String("pc", tag),
		zap.Uint("reported_by", caller.UserID),
	)

	return &dto.CreateTicketResponse{
		ID:       ticket.ID,
		TicketID: FormatTicketRef(ticket.ID),
	}, nil
}

func (s *ticketService) List(ctx context.Context, caller Caller, req *dto.TicketListRequest) ([]dto.TicketResponse, error) {
	filter := repository.TicketFilter{
		Status:   req.Status,
		Priority: req.Priority,
	}
	switch caller.Role {
	case model.RoleStudent, model.RoleStaff:
		filter.ReportedBy = caller.UserID
	case model.RoleTechnician:
		if req.Mine {
			filter.AssignedTo = caller.UserID
		}
	}

	tickets, err := s.repo.Ticket.List(ctx, filter)
	if err != nil {
		s.logger.Error("list tickets failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		result = append(result, toTicketResponse(&tickets[i]))
	}
	return result, nil
}

func (s *ticketService) Get(ctx context.Context, caller Caller, ref string) (*dto.TicketDetailResponse, error) {
	ticket, err := s.loadTicket(ctx, ref)
	if err != nil {
		return nil, err
	}
	if !canView(caller, ticket) {
		return nil, ErrTicketForbidden
	}

	updates, err := s.repo.TicketUpdate.ListByTicket(ctx, ticket.ID)
	if err != nil {
		s.logger.Error("list ticket updates failed", zap.Uint("ticket_id", ticket.ID), zap.Error(err))
		return nil, err
	}

	history := make([]dto.TicketUpdateResponse, 0, len(updates))
	for _, u := range updates {
		author := ""
		if u.Author != nil {
			author = u.Author.Name
		}
		history = append(history, dto.TicketUpdateResponse{
			ID:        u.ID,
			Author:    author,
			Text:      u.UpdateText,
			CreatedAt: formatTime(u.CreatedAt),
		})
	}

	return &dto.TicketDetailResponse{
		TicketResponse: toTicketResponse(ticket),
		Source:         ticket.Source,
		Updates:        history,
	}, nil
}

func (s *ticketService) UpdateStatus(ctx context.Context, caller Caller, ref, status string) error {
	status = strings.TrimSpace(status)
	if status == "" {
		return ErrStatusRequired
	}
	if !model.ValidTicketStatus(status) {
		return ErrInvalidTicketStatus
	}

	ticket, err := s.loadTicket(ctx, ref)
	if err != nil {
		return err
	}
	if !canWork(caller, ticket) {
		return ErrTicketForbidden
	}

	// resolved_at tracks the latest resolution only
	resolvedAt := ticket.ResolvedAt
	switch status {
	case model.TicketResolved:
		now := time.Now()
		resolvedAt = &now
	case model.TicketOpen, model.TicketInProgress:
		resolvedAt = nil
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Ticket.UpdateStatus(ctx, ticket.ID, status, resolvedAt); err != nil {
			return err
		}
		return tx.TicketUpdate.Create(ctx, &model.TicketUpdate{
			TicketID:   ticket.ID,
			UpdatedBy:  caller.UserID,
			UpdateText: fmt.Sprintf("Status changed from %s to %s", ticket.Status, status),
		})
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNoRowsAffected) {
			return ErrTicketNotFound
		}
		s.logger.Error("update ticket status failed", zap.Uint("ticket_id", ticket.ID), zap.Error(err))
		return err
	}

	s.logger.Info("ticket status updated",
		zap.Uint("ticket_id", ticket.ID),
		zap.String("from", ticket.Status),
		zap.String("to", status),
		zap.Uint("by", caller.UserID),
	)
	return nil
}

func (s *ticketService) Assign(ctx context.Context, caller Caller, ref string, techID uint) error {
	ticket, err := s.loadTicket(ctx, ref)
	if err != nil {
		return err
	}

	tech, err := s.repo.User.GetByID(ctx, techID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTechnicianNotFound
		}
		s.logger.Error("query technician failed", zap.Uint("tech_id", techID), zap.Error(err))
		return err
	}
	if tech.Role != model.RoleTechnician {
		return ErrTechnicianNotFound
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Ticket.Assign(ctx, ticket.ID, tech.ID); err != nil {
			return err
		}
		return tx.TicketUpdate.Create(ctx, &model.TicketUpdate{
			TicketID:   ticket.ID,
			UpdatedBy:  caller.UserID,
			UpdateText: "Assigned to " + tech.Name,
		})
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNoRowsAffected) {
			return ErrTicketNotFound
		}
		s.logger.Error("assign ticket failed", zap.Uint("ticket_id", ticket.ID), zap.Error(err))
		return err
	}

	s.logger.Info("ticket assigned", zap.Uint("ticket_id", ticket.ID), zap.Uint("tech_id", tech.ID))
	s.notifyAssignee(ticket, tech)
	return nil
}

func (s *ticketService) AddUpdate(ctx context.Context, caller Caller, ref, text string) error {
	text = sanitizeText(text)
	if text == "" {
		return ErrEmptyUpdate
	}

	ticket, err := s.loadTicket(ctx, ref)
	if err != nil {
		return err
	}
	if !canWork(caller, ticket) {
		return ErrTicketForbidden
	}

	if err := s.repo.TicketUpdate.Create(ctx, &model.TicketUpdate{
		TicketID:   ticket.ID,
		UpdatedBy:  caller.UserID,
		UpdateText: text,
	}); err != nil {
		s.logger.Error("add ticket update failed", zap.Uint("ticket_id", ticket.ID), zap.Error(err))
		return err
	}
	return nil
}

func (s *ticketService) ReportThermalEvent(ctx context.Context, computerID uint, tempC int) (uint, error) {
	reporter, err := s.repo.User.GetByEmail(ctx, s.reporterEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrReporterNotFound
		}
		return 0, err
	}

	ticket := &model.Ticket{
		ComputerID:    computerID,
		ReportedBy:    reporter.ID,
		IssueCategory: model.CategoryHardware,
		Description:   ThermalAlertDescription(tempC),
		Priority:      model.PriorityCritical,
		Status:        model.TicketOpen,
		Source:        model.SourceTelemetry,
	}
	if err := s.repo.Ticket.Create(ctx, ticket); err != nil {
		return 0, err
	}
	return ticket.ID, nil
}

// ThermalAlertDescription is the body of an automated thermal ticket.
func ThermalAlertDescription(tempC int) string {
	return fmt.Sprintf("[AUTOMATED TELEMETRY ALERT] Critical Thermal Event Detected. "+
		"CPU Core Temp exceeded safety thresholds (%d°C). Immediate hardware diagnostic required.", tempC)
}

// ── helpers ──

func (s *ticketService) loadTicket(ctx context.Context, ref string) (*model.Ticket, error) {
	id, err := ParseTicketRef(ref)
	if err != nil {
		return nil, ErrTicketNotFound
	}
	ticket, err := s.repo.Ticket.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		s.logger.Error("query ticket failed", zap.Uint("ticket_id", id), zap.Error(err))
		return nil, err
	}
	return ticket, nil
}

func (s *ticketService) notifyAssignee(ticket *model.Ticket, tech *model.User) {
	ref := FormatTicketRef(ticket.ID)
	pc := ""
	if ticket.Computer != nil {
		pc = ticket.Computer.ComputerID
	}
	body := fmt.Sprintf("Hello %s,\n\nTicket %s on %s has been assigned to you.\n\nPriority: %s\nCategory: %s\n\n%s\n",
		tech.Name, ref, pc, ticket.Priority, ticket.IssueCategory, ticket.Description)

	to, subject := tech.Email, "Ticket "+ref+" assigned to you"

	// SMTP runs off the request path
	s.mailWG.Add(1)
	go func() {
		defer s.mailWG.Done()

		done := make(chan error, 1)
		go func() { done <- s.mail.Send(to, subject, body) }()

		timer := time.NewTimer(s.mailTimeout)
		defer timer.Stop()
		select {
		case err := <-done:
			if err != nil {
				s.logger.Warn("assignment mail failed", zap.String("ticket", ref), zap.Error(err))
			}
		case <-timer.C:
			s.logger.Warn("assignment mail timed out", zap.String("ticket", ref), zap.Duration("timeout", s.mailTimeout))
		}
	}()
}

// canView students and staff only see what they reported.
func canView(caller Caller, t *model.Ticket) bool {
	switch caller.Role {
	case model.RoleAdmin, model.RoleTechnician:
		return true
	}
	return t.ReportedBy == caller.UserID
}

// canWork admins touch every ticket, technicians only their own assignments.
func canWork(caller Caller, t *model.Ticket) bool {
	switch caller.Role {
	case model.RoleAdmin:
		return true
	case model.RoleTechnician:
		return t.AssignedTo != nil && *t.AssignedTo == caller.UserID
	}
	return false
}

func reporterLabel(t *model.Ticket) string {
	if t.Source == model.SourceTelemetry {
		return telemetryLabel
	}
	if t.Reporter == nil || t.Reporter.Role == "" {
		return ""
	}
	role := t.Reporter.Role
	return strings.ToUpper(role[:1]) + role[1:]
}

func toTicketResponse(t *model.Ticket) dto.TicketResponse {
	resp := dto.TicketResponse{
		ID:          FormatTicketRef(t.ID),
		User:        reporterLabel(t),
		Issue:       t.IssueCategory,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		CreatedAt:   formatTime(t.CreatedAt),
		ResolvedAt:  formatTimePtr(t.ResolvedAt),
	}
	if t.Computer != nil {
		resp.PC = t.Computer.ComputerID
	}
	if t.Assignee != nil {
		name := t.Assignee.Name
		resp.AssignedTo = &name
	}
	return resp
}
