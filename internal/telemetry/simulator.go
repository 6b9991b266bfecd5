package telemetry

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/anastheace/faultandtms/config"
	"github.com/anastheace/faultandtms/internal/model"
)

// ComputerLister supplies the workstations to sample.
type ComputerLister interface {
	ListByStatus(ctx context.Context, status string) ([]model.Computer, error)
}

// AlertFiler files an automated thermal ticket.
type AlertFiler interface {
	ReportThermalEvent(ctx context.Context, computerID uint, tempC int) (uint, error)
}

// Simulator fabricates CPU temperatures for operational workstations and
// raises a critical ticket when one overheats.
type Simulator struct {
	computers ComputerLister
	alerts    AlertFiler
	cfg       config.TelemetryConfig
	logger    *zap.Logger

	rnd *rand.Rand
	now func() time.Time

	mu        sync.Mutex
	lastAlert map[string]time.Time
}

func NewSimulator(computers ComputerLister, alerts AlertFiler, cfg config.TelemetryConfig, logger *zap.Logger) *Simulator {
	return &Simulator{
		computers: computers,
		alerts:    alerts,
		cfg:       cfg,
		logger:    logger,
		rnd:       rand.New(rand.NewSource(time.Now().UnixNano())),
		now:       time.Now,
		lastAlert: make(map[string]time.Time),
	}
}

// Start runs the sampling loop in its own goroutine until ctx is done. The
// returned channel is closed once the loop has exited.
func (s *Simulator) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)

		ticker := time.NewTicker(s.cfg.Interval)
		defer ticker.Stop()

		s.logger.Info("telemetry simulator started",
			zap.Duration("interval", s.cfg.Interval),
			zap.Int("threshold", s.cfg.Threshold),
		)
		for {
			select {
			case <-ctx.Done():
				s.logger.Info("telemetry simulator stopped")
				return
			case <-ticker.C:
				s.Tick(ctx)
			}
		}
	}()
	return done
}

// Tick samples every operational workstation once and returns the number of
// tickets filed.
func (s *Simulator) Tick(ctx context.Context) int {
	computers, err := s.computers.ListByStatus(ctx, model.ComputerOperational)
	if err != nil {
		s.logger.Error("telemetry: list computers failed", zap.Error(err))
		return 0
	}

	filed := 0
	for _, pc := range computers {
		temp := s.sample()
		if temp <= s.cfg.Threshold {
			continue
		}
		if s.coolingDown(pc.ComputerID) {
			s.logger.Debug("telemetry: alert suppressed",
				zap.String("pc", pc.ComputerID),
				zap.Int("temp", temp),
			)
			continue
		}

		id, err := s.alerts.ReportThermalEvent(ctx, pc.ID, temp)
		if err != nil {
			s.logger.Error("telemetry: file alert failed",
				zap.String("pc", pc.ComputerID),
				zap.Error(err),
			)
			continue
		}

		s.mu.Lock()
		s.lastAlert[pc.ComputerID] = s.now()
		s.mu.Unlock()
		filed++

		s.logger.Warn("telemetry: thermal event",
			zap.String("pc", pc.ComputerID),
			zap.Int("temp", temp),
			zap.Uint("ticket_id", id),
		)
	}
	return filed
}

// sample draws a temperature in [MinTemp, MaxTemp].
func (s *Simulator) sample() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.MinTemp + s.rnd.Intn(s.cfg.MaxTemp-s.cfg.MinTemp+1)
}

func (s *Simulator) coolingDown(tag string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	last, ok := s.lastAlert[tag]
	if !ok {
		return false
	}
	return s.now().Sub(last) <= s.cfg.Cooldown
}
