package service

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"github.com/anastheace/faultandtms/internal/model"
)

const calendarProductID = "-//Lab Fault TMS//Maintenance//EN"

func (s *maintenanceService) Calendar(ctx context.Context) (string, error) {
	schedules, err := s.repo.Maintenance.List(ctx)
	if err != nil {
		s.logger.Error("list maintenance for calendar failed", zap.Error(err))
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(calendarProductID)
	cal.SetName("Lab maintenance")

	stamp := time.Now().UTC()
	for _, m := range schedules {
		pc := "unknown workstation"
		if m.Computer != nil {
			pc = m.Computer.ComputerID
		}
		day := time.Time(m.ScheduledDate)

		event := cal.AddEvent(fmt.Sprintf("maintenance-%d@lab-fault-tms", m.ID))
		event.SetDtStampTime(stamp)
		event.SetAllDayStartAt(day)
		event.SetAllDayEndAt(day.AddDate(0, 0, 1))
		event.SetSummary("Maintenance: " + pc)
		if m.Description != "" {
			event.SetDescription(m.Description)
		}
		event.SetLocation(pc)
		if m.Status == model.MaintenanceCompleted {
			event.SetStatus(ics.ObjectStatusConfirmed)
		} else {
			event.SetStatus(ics.ObjectStatusTentative)
		}
	}

	return cal.Serialize(), nil
}
