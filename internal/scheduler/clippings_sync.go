package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/clippings/internal/config"
	"github.com/mrlokans/clippings/internal/entities"
	"github.com/mrlokans/clippings/internal/kindle"
)

// ErrSyncPathNotConfigured is returned by Sync when no clippings file is set.
var ErrSyncPathNotConfigured = errors.New("clippings sync path not configured")

// Importer stores a parsed clippings file. *database.Database implements it.
type Importer interface {
	SaveImport(source string, entries []entities.Entry) (*entities.ImportSession, error)
}

// SyncStatus describes the outcome of the last sync run.
type SyncStatus struct {
	Time    time.Time `json:"time"`
	Success bool      `json:"success"`
	Message string    `json:"message"`
}

// Report is a point-in-time view of the scheduler for status endpoints.
type Report struct {
	Enabled     bool        `json:"enabled"`
	Running     bool        `json:"running"`
	Path        string      `json:"path,omitempty"`
	Schedule    string      `json:"schedule,omitempty"`
	Description string      `json:"description,omitempty"`
	NextRun     *time.Time  `json:"next_run,omitempty"`
	LastRun     *SyncStatus `json:"last_run,omitempty"`
}

// ClippingsSyncScheduler periodically re-imports a clippings file, e.g.
// the one on a mounted Kindle. A run is skipped when the file has not
// changed since the last successful import.
type ClippingsSyncScheduler struct {
	importer Importer
	parser   *kindle.Parser
	config   config.ClippingsSync

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc

	syncMu      sync.Mutex
	lastModTime time.Time
	lastStatus  *SyncStatus
}

func NewClippingsSyncScheduler(importer Importer, parser *kindle.Parser, cfg config.ClippingsSync) *ClippingsSyncScheduler {
	if parser == nil {
		parser = kindle.NewParser()
	}
	return &ClippingsSyncScheduler{
		importer: importer,
		parser:   parser,
		config:   cfg,
		cron:     cron.New(cron.WithParser(cronParser)),
	}
}

// Start begins the scheduler if sync is enabled
func (s *ClippingsSyncScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.config.Enabled {
		log.Printf("Clippings sync scheduler: disabled")
		return nil
	}

	if s.config.Path == "" {
		log.Printf("Clippings sync scheduler: clippings path not configured, skipping")
		return nil
	}

	if err := ValidateCronSchedule(s.config.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.config.Schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.config.Schedule, func() {
		s.runSync()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule sync job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	nextRun, _ := NextRunTime(s.config.Schedule, time.Now())
	log.Printf("Clippings sync scheduler: started with schedule '%s' (%s). Next run: %v",
		s.config.Schedule,
		CronDescription(s.config.Schedule),
		nextRun)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running sync to finish and stops the scheduler.
func (s *ClippingsSyncScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.cron.Remove(s.entryID)

	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Clippings sync scheduler: stopped")
}

// RunNow triggers an immediate sync
func (s *ClippingsSyncScheduler) RunNow() {
	go s.runSync()
}

func (s *ClippingsSyncScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns when the next sync will occur, or nil when stopped.
func (s *ClippingsSyncScheduler) NextRun() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	entry := s.cron.Entry(s.entryID)
	if !entry.Valid() {
		return nil
	}
	t := entry.Next
	return &t
}

// LastStatus returns the outcome of the most recent run, or nil if none ran.
func (s *ClippingsSyncScheduler) LastStatus() *SyncStatus {
	s.syncMu.Lock()
	defer s.syncMu.Unlock()

	if s.lastStatus == nil {
		return nil
	}
	status := *s.lastStatus
	return &status
}

// Report returns the current configuration, schedule and last outcome.
func (s *ClippingsSyncScheduler) Report() Report {
	report := Report{
		Enabled: s.config.Enabled,
		Running: s.IsRunning(),
		Path:    s.config.Path,
		NextRun: s.NextRun(),
		LastRun: s.LastStatus(),
	}
	if s.config.Schedule != "" {
		report.Schedule = s.config.Schedule
		report.Description = CronDescription(s.config.Schedule)
	}
	return report
}

// Sync imports the configured clippings file once. It returns a nil session
// when the file is unchanged since the last successful import.
func (s *ClippingsSyncScheduler) Sync() (*entities.ImportSession, error) {
	s.syncMu.Lock()
	defer s.syncMu.Unlock()

	session, err := s.sync()
	status := &SyncStatus{Time: time.Now(), Success: err == nil}
	switch {
	case err != nil:
		status.Message = err.Error()
	case session == nil:
		status.Message = "Clippings file unchanged"
	default:
		status.Message = fmt.Sprintf("Imported %d entries", session.EntriesCount)
	}
	s.lastStatus = status

	return session, err
}

func (s *ClippingsSyncScheduler) sync() (*entities.ImportSession, error) {
	if s.config.Path == "" {
		return nil, ErrSyncPathNotConfigured
	}

	info, err := os.Stat(s.config.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat clippings file: %w", err)
	}
	if info.ModTime().Equal(s.lastModTime) {
		return nil, nil
	}

	file, err := os.Open(s.config.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open clippings file: %w", err)
	}
	defer file.Close()

	entries, err := s.parser.ParseReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse clippings: %w", err)
	}

	session, err := s.importer.SaveImport(s.config.Path, entries)
	if err != nil {
		return nil, fmt.Errorf("failed to save import: %w", err)
	}

	s.lastModTime = info.ModTime()
	return session, nil
}

func (s *ClippingsSyncScheduler) runSync() {
	log.Printf("Clippings sync: starting import of %s", s.config.Path)
	startTime := time.Now()

	session, err := s.Sync()
	if err != nil {
		log.Printf("Clippings sync: %v", err)
		return
	}
	if session == nil {
		log.Printf("Clippings sync: skipped (file unchanged)")
		return
	}

	log.Printf("Clippings sync: imported %d entries as %s in %v",
		session.EntriesCount, session.ID, time.Since(startTime).Round(time.Millisecond))
}
