package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/anastheace/faultandtms/internal/dto"
	"github.com/anastheace/faultandtms/internal/model"
)

func setupTestMaintenanceService() (MaintenanceService, *mockStore) {
	repo, store := newMockRepository()
	return NewMaintenanceService(repo, zap.NewNop()), store
}

func TestMaintenanceService_CreateAndList(t *testing.T) {
	svc, store := setupTestMaintenanceService()
	ctx := context.Background()

	late, err := svc.Create(ctx, &dto.CreateMaintenanceRequest{PCNumber: "LAB-C-04", ScheduledDate: "2026-06-12", Description: "Network interface card swap"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	early, err := svc.Create(ctx, &dto.CreateMaintenanceRequest{PCNumber: "new-pc-1", ScheduledDate: "2026-06-01"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	pc := store.computerByTag("NEW-PC-1")
	if pc == nil || pc.Status != model.ComputerOperational || pc.LabNumber != "Unknown" {
		t.Errorf("expected operational auto-created workstation, got %+v", pc)
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 schedules, got %d", len(list))
	}
	if list[0].ID != early.ID || list[1].ID != late.ID {
		t.Errorf("expected ascending dates, got %+v", list)
	}
	if list[0].ScheduledDate != "2026-06-01" || list[0].Status != model.MaintenancePending || list[0].PCNumber != "NEW-PC-1" {
		t.Errorf("unexpected row %+v", list[0])
	}
}

func TestMaintenanceService_Create_BadDate(t *testing.T) {
	svc, _ := setupTestMaintenanceService()

	for _, d := range []string{"12/06/2026", "2026-13-01", "tomorrow"} {
		_, err := svc.Create(context.Background(), &dto.CreateMaintenanceRequest{PCNumber: "LAB-A-01", ScheduledDate: d})
		if !errors.Is(err, ErrInvalidScheduleDate) {
			t.Errorf("date %q: expected ErrInvalidScheduleDate, got %v", d, err)
		}
	}
}

func TestMaintenanceService_UpdateStatus(t *testing.T) {
	svc, store := setupTestMaintenanceService()
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateMaintenanceRequest{PCNumber: "LAB-A-01", ScheduledDate: "2026-06-01"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := svc.UpdateStatus(ctx, created.ID, ""); !errors.Is(err, ErrStatusRequired) {
		t.Errorf("expected ErrStatusRequired, got %v", err)
	}
	if err := svc.UpdateStatus(ctx, created.ID, "cancelled"); !errors.Is(err, ErrInvalidMaintenanceStatus) {
		t.Errorf("expected ErrInvalidMaintenanceStatus, got %v", err)
	}
	if err := svc.UpdateStatus(ctx, 9999, model.MaintenanceCompleted); !errors.Is(err, ErrScheduleNotFound) {
		t.Errorf("expected ErrScheduleNotFound, got %v", err)
	}

	if err := svc.UpdateStatus(ctx, created.ID, model.MaintenanceCompleted); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if got := store.schedules[created.ID].Status; got != model.MaintenanceCompleted {
		t.Errorf("expected completed, got %s", got)
	}
	if pc := store.computerByTag("LAB-A-01"); pc.LastMaintenance == nil {
		t.Error("completing maintenance should stamp last_maintenance")
	}
}

func TestMaintenanceService_Calendar(t *testing.T) {
	svc, _ := setupTestMaintenanceService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, &dto.CreateMaintenanceRequest{PCNumber: "LAB-B-11", ScheduledDate: "2026-06-01", Description: "Deep cleaning"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	out, err := svc.Calendar(ctx)
	if err != nil {
		t.Fatalf("Calendar failed: %v", err)
	}
	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"METHOD:PUBLISH",
		"BEGIN:VEVENT",
		"SUMMARY:Maintenance: LAB-B-11",
		"DESCRIPTION:Deep cleaning",
		"20260601",
		"20260602",
		"END:VCALENDAR",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("calendar missing %q:\n%s", want, out)
		}
	}
}
