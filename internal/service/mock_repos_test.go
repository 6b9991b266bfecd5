package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/anastheace/faultandtms/internal/model"
	"github.com/anastheace/faultandtms/internal/repository"
	apperrors "github.com/anastheace/faultandtms/pkg/errors"
)

// mockStore backs every mock repository so associations can be resolved the
// way gorm Preload would.
type mockStore struct {
	mu        sync.Mutex
	nextID    uint
	users     map[uint]*model.User
	computers map[uint]*model.Computer
	tickets   map[uint]*model.Ticket
	updates   []model.TicketUpdate
	logs      []*model.UsageLog
	schedules map[uint]*model.MaintenanceSchedule
}

func newMockStore() *mockStore {
	return &mockStore{
		users:     make(map[uint]*model.User),
		computers: make(map[uint]*model.Computer),
		tickets:   make(map[uint]*model.Ticket),
		schedules: make(map[uint]*model.MaintenanceSchedule),
	}
}

func (s *mockStore) id() uint {
	s.nextID++
	return s.nextID
}

// newMockRepository assembles a Repository without a database; Transaction
// runs its callback directly.
func newMockRepository() (*repository.Repository, *mockStore) {
	s := newMockStore()
	return &repository.Repository{
		User:         &mockUserRepo{s: s},
		Computer:     &mockComputerRepo{s: s},
		Ticket:       &mockTicketRepo{s: s},
		TicketUpdate: &mockTicketUpdateRepo{s: s},
		UsageLog:     &mockUsageLogRepo{s: s},
		Maintenance:  &mockMaintenanceRepo{s: s},
	}, s
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	s *mockStore
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, u := range m.s.users {
		if u.Email == user.Email {
			return errors.New("UNIQUE constraint failed: users.email")
		}
	}
	user.ID = m.s.id()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	m.s.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uint) (*model.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if u, ok := m.s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, u := range m.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ListByRole(_ context.Context, role string) ([]model.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var result []model.User
	for _, u := range m.s.users {
		if u.Role == role {
			result = append(result, *u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// ── Mock ComputerRepository ──

type mockComputerRepo struct {
	s *mockStore
}

func (m *mockComputerRepo) GetByTag(_ context.Context, tag string) (*model.Computer, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if c := m.s.computerByTag(tag); c != nil {
		cp := *c
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockComputerRepo) FindOrCreate(_ context.Context, tag, labNumber, status string) (*model.Computer, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if c := m.s.computerByTag(tag); c != nil {
		cp := *c
		return &cp, nil
	}
	c := &model.Computer{ID: m.s.id(), ComputerID: tag, LabNumber: labNumber, Status: status}
	m.s.computers[c.ID] = c
	cp := *c
	return &cp, nil
}

func (m *mockComputerRepo) List(_ context.Context) ([]model.Computer, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var result []model.Computer
	for _, c := range m.s.computers {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].LabNumber != result[j].LabNumber {
			return result[i].LabNumber < result[j].LabNumber
		}
		return result[i].ComputerID < result[j].ComputerID
	})
	return result, nil
}

func (m *mockComputerRepo) ListByStatus(_ context.Context, status string) ([]model.Computer, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var result []model.Computer
	for _, c := range m.s.computers {
		if c.Status == status {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ComputerID < result[j].ComputerID })
	return result, nil
}

func (m *mockComputerRepo) UpdateLastMaintenance(_ context.Context, id uint, at time.Time) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if c, ok := m.s.computers[id]; ok {
		c.LastMaintenance = &at
	}
	return nil
}

func (m *mockComputerRepo) CountByStatus(_ context.Context) (map[string]int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	counts := make(map[string]int64)
	for _, c := range m.s.computers {
		counts[c.Status]++
	}
	return counts, nil
}

func (s *mockStore) computerByTag(tag string) *model.Computer {
	for _, c := range s.computers {
		if c.ComputerID == tag {
			return c
		}
	}
	return nil
}

// ── Mock TicketRepository ──

type mockTicketRepo struct {
	s         *mockStore
	createErr error
}

func (m *mockTicketRepo) Create(_ context.Context, ticket *model.Ticket) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	ticket.ID = m.s.id()
	if ticket.CreatedAt.IsZero() {
		ticket.CreatedAt = time.Now()
	}
	cp := *ticket
	m.s.tickets[ticket.ID] = &cp
	return nil
}

func (m *mockTicketRepo) GetByID(_ context.Context, id uint) (*model.Ticket, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if t, ok := m.s.tickets[id]; ok {
		h := m.s.hydrate(t)
		return &h, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTicketRepo) List(_ context.Context, f repository.TicketFilter) ([]model.Ticket, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var result []model.Ticket
	for _, t := range m.s.tickets {
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if f.Priority != "" && t.Priority != f.Priority {
			continue
		}
		if f.ReportedBy != 0 && t.ReportedBy != f.ReportedBy {
			continue
		}
		if f.AssignedTo != 0 && (t.AssignedTo == nil || *t.AssignedTo != f.AssignedTo) {
			continue
		}
		result = append(result, m.s.hydrate(t))
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (m *mockTicketRepo) UpdateStatus(_ context.Context, id uint, status string, resolvedAt *time.Time) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	t, ok := m.s.tickets[id]
	if !ok {
		return apperrors.ErrNoRowsAffected
	}
	t.Status = status
	t.ResolvedAt = resolvedAt
	return nil
}

func (m *mockTicketRepo) Assign(_ context.Context, id, techID uint) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	t, ok := m.s.tickets[id]
	if !ok {
		return apperrors.ErrNoRowsAffected
	}
	t.AssignedTo = &techID
	t.Status = model.TicketInProgress
	t.ResolvedAt = nil
	return nil
}

func (m *mockTicketRepo) CountByStatus(_ context.Context) (map[string]int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	counts := make(map[string]int64)
	for _, t := range m.s.tickets {
		counts[t.Status]++
	}
	return counts, nil
}

func (m *mockTicketRepo) CountByPriority(_ context.Context) (map[string]int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	counts := make(map[string]int64)
	for _, t := range m.s.tickets {
		counts[t.Priority]++
	}
	return counts, nil
}

// hydrate copies t with its associations filled in.
func (s *mockStore) hydrate(t *model.Ticket) model.Ticket {
	h := *t
	if c, ok := s.computers[t.ComputerID]; ok {
		cp := *c
		h.Computer = &cp
	}
	if u, ok := s.users[t.ReportedBy]; ok {
		cp := *u
		h.Reporter = &cp
	}
	if t.AssignedTo != nil {
		if u, ok := s.users[*t.AssignedTo]; ok {
			cp := *u
			h.Assignee = &cp
		}
	}
	return h
}

// ── Mock TicketUpdateRepository ──

type mockTicketUpdateRepo struct {
	s *mockStore
}

func (m *mockTicketUpdateRepo) Create(_ context.Context, update *model.TicketUpdate) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	update.ID = m.s.id()
	if update.CreatedAt.IsZero() {
		update.CreatedAt = time.Now()
	}
	m.s.updates = append(m.s.updates, *update)
	return nil
}

func (m *mockTicketUpdateRepo) ListByTicket(_ context.Context, ticketID uint) ([]model.TicketUpdate, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var result []model.TicketUpdate
	for _, u := range m.s.updates {
		if u.TicketID != ticketID {
			continue
		}
		if author, ok := m.s.users[u.UpdatedBy]; ok {
			cp := *author
			u.Author = &cp
		}
		result = append(result, u)
	}
	return result, nil
}

// ── Mock UsageLogRepository ──

type mockUsageLogRepo struct {
	s *mockStore
}

func (m *mockUsageLogRepo) Create(_ context.Context, log *model.UsageLog) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	log.ID = m.s.id()
	cp := *log
	m.s.logs = append(m.s.logs, &cp)
	return nil
}

func (m *mockUsageLogRepo) HasOpenSession(_ context.Context, computerID, userID uint) (bool, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, l := range m.s.logs {
		if l.ComputerID == computerID && l.UserID == userID && l.LogoutTime == nil {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUsageLogRepo) CloseOpen(_ context.Context, computerID, userID uint, logoutAt time.Time) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var n int64
	for _, l := range m.s.logs {
		if l.ComputerID == computerID && l.UserID == userID && l.LogoutTime == nil {
			at := logoutAt
			l.LogoutTime = &at
			n++
		}
	}
	return n, nil
}

func (m *mockUsageLogRepo) List(_ context.Context, offset, limit int) ([]model.UsageLog, int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	all := make([]model.UsageLog, 0, len(m.s.logs))
	for _, l := range m.s.logs {
		h := *l
		if c, ok := m.s.computers[l.ComputerID]; ok {
			cp := *c
			h.Computer = &cp
		}
		if u, ok := m.s.users[l.UserID]; ok {
			cp := *u
			h.User = &cp
		}
		all = append(all, h)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].LoginTime.After(all[j].LoginTime) })

	total := int64(len(all))
	if limit <= 0 {
		return all, total, nil
	}
	if offset >= len(all) {
		return []model.UsageLog{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockUsageLogRepo) CountOpen(_ context.Context) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var n int64
	for _, l := range m.s.logs {
		if l.LogoutTime == nil {
			n++
		}
	}
	return n, nil
}

// ── Mock MaintenanceRepository ──

type mockMaintenanceRepo struct {
	s *mockStore
}

func (m *mockMaintenanceRepo) Create(_ context.Context, schedule *model.MaintenanceSchedule) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	schedule.ID = m.s.id()
	cp := *schedule
	m.s.schedules[schedule.ID] = &cp
	return nil
}

func (m *mockMaintenanceRepo) GetByID(_ context.Context, id uint) (*model.MaintenanceSchedule, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if sc, ok := m.s.schedules[id]; ok {
		h := m.s.hydrateSchedule(sc)
		return &h, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMaintenanceRepo) List(_ context.Context) ([]model.MaintenanceSchedule, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var result []model.MaintenanceSchedule
	for _, sc := range m.s.schedules {
		result = append(result, m.s.hydrateSchedule(sc))
	}
	sort.Slice(result, func(i, j int) bool {
		ti, tj := time.Time(result[i].ScheduledDate), time.Time(result[j].ScheduledDate)
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (m *mockMaintenanceRepo) UpdateStatus(_ context.Context, id uint, status string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	sc, ok := m.s.schedules[id]
	if !ok {
		return apperrors.ErrNoRowsAffected
	}
	sc.Status = status
	return nil
}

func (m *mockMaintenanceRepo) CountPendingFrom(_ context.Context, from datatypes.Date) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var n int64
	for _, sc := range m.s.schedules {
		if sc.Status == model.MaintenancePending && !time.Time(sc.ScheduledDate).Before(time.Time(from)) {
			n++
		}
	}
	return n, nil
}

func (s *mockStore) hydrateSchedule(sc *model.MaintenanceSchedule) model.MaintenanceSchedule {
	h := *sc
	if c, ok := s.computers[sc.ComputerID]; ok {
		cp := *c
		h.Computer = &cp
	}
	return h
}

// ── fixtures ──

func (s *mockStore) addUser(name, email, role string) *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := &model.User{ID: s.id(), Name: name, Email: email, Password: "x", Role: role, CreatedAt: time.Now()}
	s.users[u.ID] = u
	return u
}

func (s *mockStore) addComputer(tag, lab, status string) *model.Computer {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := &model.Computer{ID: s.id(), ComputerID: tag, LabNumber: lab, Status: status}
	s.computers[c.ID] = c
	return c
}

func (s *mockStore) ticket(id uint) *model.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tickets[id]
}

// ── fake mailer ──

type sentMail struct {
	to, subject, body string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
	// block, when set, holds Send until it is closed
	block chan struct{}
}

func (f *fakeMailer) Send(to, subject, body string) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{to, subject, body})
	return f.err
}

func (f *fakeMailer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}
