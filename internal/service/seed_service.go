package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/anastheace/faultandtms/internal/model"
	"github.com/anastheace/faultandtms/internal/repository"
)

// SeedAdminEmail marks the demo dataset as installed.
const SeedAdminEmail = "admin@tms.com"

// SeedService installs the demo dataset into an empty database.
type SeedService interface {
	// Seed is a no-op when the demo admin already exists.
	Seed(ctx context.Context) error
}

type seedService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewSeedService(repo *repository.Repository, logger *zap.Logger) SeedService {
	return &seedService{repo: repo, logger: logger, now: time.Now}
}

type seedUser struct {
	name, email, password, role string
}

var seedUsers = []seedUser{
	{"Anas", SeedAdminEmail, "anas123", model.RoleAdmin},
	{"Student", "student@tms.com", "student123", model.RoleStudent},
	{"Rajesh Technician", "rajesh@tms.com", "rajesh123", model.RoleTechnician},
	{"Tharun Technician", "tharun@tms.com", "tharun123", model.RoleTechnician},
	{"Susu Screenshot Collector", "susu@tms.com", "susu123", model.RoleTechnician},
}

var seedComputers = [][3]string{
	{"LAB-A-01", "Lab A", model.ComputerOperational},
	{"LAB-A-02", "Lab A", model.ComputerOperational},
	{"LAB-A-05", "Lab A", model.ComputerFaulty},
	{"LAB-B-01", "Lab B", model.ComputerOperational},
	{"LAB-B-07", "Lab B", model.ComputerOperational},
	{"LAB-B-11", "Lab B", model.ComputerMaintenance},
	{"LAB-C-04", "Lab C", model.ComputerOperational},
	{"LAB-C-09", "Lab C", model.ComputerOperational},
	{"LAB-D-12", "Lab D", model.ComputerOperational},
	{"LIB-PC-01", "Library", model.ComputerFaulty},
	{"LIB-PC-04", "Library", model.ComputerOperational},
	{"STAFF-ROOM-A", "Staff", model.ComputerFaulty},
}

// usage sessions as (pc, login offset, logout offset); a zero logout keeps
// the session open.
var seedSessions = []struct {
	pc            string
	login, logout time.Duration
}{
	{"LAB-A-01", -52 * time.Hour, -49 * time.Hour},
	{"LAB-A-02", -18 * time.Hour, -16 * time.Hour},
	{"LAB-B-07", -15 * time.Hour, -14 * time.Hour},
	{"LAB-C-04", -8 * time.Hour, -5 * time.Hour},
	{"LAB-B-01", -5 * time.Hour, -3 * time.Hour},
	{"LAB-A-02", -77 * time.Hour, -74 * time.Hour},
	{"LAB-C-09", -106 * time.Hour, -104 * time.Hour},
	{"LAB-D-12", -146 * time.Hour, -145 * time.Hour},
	{"LIB-PC-04", -33 * time.Hour, -28 * time.Hour},
	{"STAFF-ROOM-A", -132 * time.Hour, -129 * time.Hour},
	{"LAB-A-01", -176 * time.Hour, -174 * time.Hour},
	{"LAB-B-07", -58 * time.Hour, -56 * time.Hour},
	{"LAB-C-04", -92 * time.Hour, -90 * time.Hour},
	{"LAB-B-11", -6 * time.Hour, -4 * time.Hour},
	{"LIB-PC-01", -1 * time.Hour, 0},
	{"LAB-A-05", -2 * time.Hour, 0},
}

// tickets reference users by their index in seedUsers; -1 leaves a ticket
// unassigned.
var seedTickets = []struct {
	pc, category, description, priority, status string
	assignee                                    int
}{
	{"LAB-A-05", model.CategoryHardware, "Monitor is flickering and showing green lines", model.PriorityHigh, model.TicketInProgress, 2},
	{"LIB-PC-01", model.CategoryNetwork, "Cannot connect to university Wi-Fi or Ethernet", model.PriorityMedium, model.TicketOpen, -1},
	{"STAFF-ROOM-A", model.CategoryHardware, "Motherboard beeping on startup, fan is extremely loud", model.PriorityCritical, model.TicketResolved, 3},
	{"LAB-B-07", model.CategorySoftware, "whatsapp bug", model.PriorityLow, model.TicketInProgress, 4},
	{"LAB-A-01", model.CategorySoftware, "Anaconda Navigator not launching, python path error", model.PriorityMedium, model.TicketOpen, 2},
	{"LAB-C-04", model.CategoryHardware, "Missing keyboard keys (Spacebar and Enter)", model.PriorityLow, model.TicketOpen, -1},
	{"LAB-B-01", model.CategoryNetwork, "DNS Resolution failed, cannot access internal gitlab", model.PriorityHigh, model.TicketResolved, 2},
	{"LAB-A-02", model.CategoryOther, "Blue Screen of Death showing MEMORY_MANAGEMENT error", model.PriorityCritical, model.TicketInProgress, 3},
	{"LAB-C-09", model.CategorySoftware, "Visual Studio requires an admin password to update workloads", model.PriorityMedium, model.TicketResolved, 2},
	{"LIB-PC-04", model.CategoryHardware, "Mouse laser not tracking properly on the specific desk surface", model.PriorityLow, model.TicketResolved, 3},
	{"LAB-D-12", model.CategoryOther, "Chair at this workstation is broken and dangerous", model.PriorityMedium, model.TicketOpen, -1},
}

var seedMaintenance = []struct {
	pc          string
	days        int
	description string
	status      string
}{
	{"LAB-A-01", 2, "Monthly RAM and Dust Check", model.MaintenancePending},
	{"LAB-B-01", -1, "OS Security Patching", model.MaintenanceCompleted},
	{"LAB-A-02", 5, "Keyboard replacement", model.MaintenancePending},
	{"LAB-B-11", 1, "Deep cleaning and thermal paste replacement", model.MaintenancePending},
	{"STAFF-ROOM-A", -7, "BIOS Update and hardware diagnostic", model.MaintenanceCompleted},
	{"LAB-C-04", 12, "Network interface card swap", model.MaintenancePending},
	{"LIB-PC-01", -3, "Malware scan and removal", model.MaintenanceCompleted},
	{"LAB-D-12", 3, "CMOS battery replacement", model.MaintenancePending},
}

func (s *seedService) Seed(ctx context.Context) error {
	_, err := s.repo.User.GetByEmail(ctx, SeedAdminEmail)
	if err == nil {
		s.logger.Debug("demo data already present, skipping seed")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	now := s.now()
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		users := make([]*model.User, len(seedUsers))
		for i, su := range seedUsers {
			hash, err := bcrypt.GenerateFromPassword([]byte(su.password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			users[i] = &model.User{Name: su.name, Email: su.email, Password: string(hash), Role: su.role}
			if err := tx.User.Create(ctx, users[i]); err != nil {
				return err
			}
		}
		student := users[1]

		computers := make(map[string]uint, len(seedComputers))
		for _, c := range seedComputers {
			pc, err := tx.Computer.FindOrCreate(ctx, c[0], c[1], c[2])
			if err != nil {
				return err
			}
			computers[c[0]] = pc.ID
		}

		for _, sess := range seedSessions {
			entry := &model.UsageLog{
				ComputerID: computers[sess.pc],
				UserID:     student.ID,
				LoginTime:  now.Add(sess.login),
			}
			if sess.logout != 0 {
				out := now.Add(sess.logout)
				entry.LogoutTime = &out
			}
			if err := tx.UsageLog.Create(ctx, entry); err != nil {
				return err
			}
		}

		for i, st := range seedTickets {
			created := now.Add(-time.Duration(len(seedTickets)-i) * 3 * time.Hour)
			ticket := &model.Ticket{
				ComputerID:    computers[st.pc],
				ReportedBy:    student.ID,
				IssueCategory: st.category,
				Description:   st.description,
				Priority:      st.priority,
				Status:        st.status,
				Source:        model.SourceManual,
				CreatedAt:     created,
			}
			if st.assignee >= 0 {
				id := users[st.assignee].ID
				ticket.AssignedTo = &id
			}
			if st.status == model.TicketResolved {
				resolved := created.Add(2 * time.Hour)
				ticket.ResolvedAt = &resolved
			}
			if err := tx.Ticket.Create(ctx, ticket); err != nil {
				return err
			}
		}

		y, m, d := now.UTC().Date()
		today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		for _, sm := range seedMaintenance {
			if err := tx.Maintenance.Create(ctx, &model.MaintenanceSchedule{
				ComputerID:    computers[sm.pc],
				ScheduledDate: datatypes.Date(today.AddDate(0, 0, sm.days)),
				Status:        sm.status,
				Description:   sm.description,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("seed demo data failed", zap.Error(err))
		return err
	}

	s.logger.Info("demo data seeded",
		zap.Int("users", len(seedUsers)),
		zap.Int("computers", len(seedComputers)),
		zap.Int("tickets", len(seedTickets)),
	)
	return nil
}
