package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/anastheace/faultandtms/internal/repository"
)

var ErrExportGenerateFail = errors.New("generate xlsx failed")

// ExportService spreadsheet reports
type ExportService interface {
	// ExportReport builds a workbook with Tickets, Usage and Maintenance
	// sheets and returns it with a suggested file name.
	ExportReport(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger, now: time.Now}
}

const (
	sheetTickets     = "Tickets"
	sheetUsage       = "Usage"
	sheetMaintenance = "Maintenance"
)

func (s *exportService) ExportReport(ctx context.Context) (*bytes.Buffer, string, error) {
	tickets, err := s.repo.Ticket.List(ctx, repository.TicketFilter{})
	if err != nil {
		s.logger.Error("load tickets for export failed", zap.Error(err))
		return nil, "", err
	}
	logs, _, err := s.repo.UsageLog.List(ctx, 0, 0)
	if err != nil {
		s.logger.Error("load usage logs for export failed", zap.Error(err))
		return nil, "", err
	}
	schedules, err := s.repo.Maintenance.List(ctx)
	if err != nil {
		s.logger.Error("load maintenance for export failed", zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// ── tickets ──
	ticketRows := make([][]interface{}, 0, len(tickets))
	for i := range tickets {
		t := toTicketResponse(&tickets[i])
		assigned := ""
		if t.AssignedTo != nil {
			assigned = *t.AssignedTo
		}
		resolved := ""
		if t.ResolvedAt != nil {
			resolved = *t.ResolvedAt
		}
		ticketRows = append(ticketRows, []interface{}{
			t.ID, t.PC, t.User, t.Issue, t.Priority, t.Status, assigned, t.CreatedAt, resolved, t.Description,
		})
	}
	if err := writeSheet(f, sheetTickets, headerStyle,
		[]string{"Ticket", "PC", "Reported By", "Category", "Priority", "Status", "Assigned To", "Created", "Resolved", "Description"},
		[]float64{10, 14, 16, 12, 10, 12, 22, 22, 22, 60},
		ticketRows); err != nil {
		return nil, "", s.fail(err)
	}

	// ── usage ──
	usageRows := make([][]interface{}, 0, len(logs))
	for _, l := range logs {
		pc, name, role := "", "", ""
		if l.Computer != nil {
			pc = l.Computer.ComputerID
		}
		if l.User != nil {
			name, role = l.User.Name, l.User.Role
		}
		logout := "active"
		if l.LogoutTime != nil {
			logout = formatTime(*l.LogoutTime)
		}
		usageRows = append(usageRows, []interface{}{l.ID, pc, name, role, formatTime(l.LoginTime), logout})
	}
	if err := writeSheet(f, sheetUsage, headerStyle,
		[]string{"Log", "PC", "User", "Role", "Login", "Logout"},
		[]float64{8, 14, 24, 12, 22, 22},
		usageRows); err != nil {
		return nil, "", s.fail(err)
	}

	// ── maintenance ──
	maintRows := make([][]interface{}, 0, len(schedules))
	for _, m := range schedules {
		pc := ""
		if m.Computer != nil {
			pc = m.Computer.ComputerID
		}
		maintRows = append(maintRows, []interface{}{m.ID, pc, formatDate(m.ScheduledDate), m.Status, m.Description})
	}
	if err := writeSheet(f, sheetMaintenance, headerStyle,
		[]string{"ID", "PC", "Date", "Status", "Description"},
		[]float64{8, 14, 12, 12, 50},
		maintRows); err != nil {
		return nil, "", s.fail(err)
	}

	if idx, err := f.GetSheetIndex(sheetTickets); err == nil {
		f.SetActiveSheet(idx)
	}
	_ = f.DeleteSheet("Sheet1")

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, "", s.fail(err)
	}

	filename := fmt.Sprintf("lab_report_%s.xlsx", s.now().Format("2006-01-02"))
	s.logger.Info("report exported",
		zap.Int("tickets", len(tickets)),
		zap.Int("usage_logs", len(logs)),
		zap.Int("maintenance", len(schedules)),
	)
	return buf, filename, nil
}

func (s *exportService) fail(err error) error {
	s.logger.Error("write xlsx failed", zap.Error(err))
	return ErrExportGenerateFail
}

// writeSheet creates name with a styled header row followed by rows.
func writeSheet(f *excelize.File, name string, headerStyle int, headers []string, widths []float64, rows [][]interface{}) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}

	for i, h := range headers {
		col := colName(i)
		if i < len(widths) {
			if err := f.SetColWidth(name, col, col, widths[i]); err != nil {
				return err
			}
		}
		if err := f.SetCellValue(name, cell(col, 1), h); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(name, "A1", cell(colName(len(headers)-1), 1), headerStyle); err != nil {
		return err
	}

	for r, row := range rows {
		for c, v := range row {
			if err := f.SetCellValue(name, cell(colName(c), r+2), v); err != nil {
				return err
			}
		}
	}
	return nil
}

// ── helpers ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

