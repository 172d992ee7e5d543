package maintenance

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Every write to the content store is destructive of the prior value, so
// the only way back from a bad bulk edit is a snapshot. BackupJob copies
// the database on a cron schedule with VACUUM INTO and prunes old copies.
type BackupJob struct {
	writer   *sql.DB
	dbPath   string
	dir      string
	retain   int
	schedule string
	logger   *log.Logger

	cron *cron.Cron
}

// DBWriter is the single-connection write pool the backup runs on.
type DBWriter interface {
	Writer() *sql.DB
}

// NewBackupJob builds the job. An empty dir defaults to a "backups"
// directory beside the database file.
func NewBackupJob(dbPair DBWriter, dbPath, dir, schedule string, retain int, logger *log.Logger) *BackupJob {
	if logger == nil {
		logger = log.Default()
	}
	if dir == "" {
		dir = filepath.Join(filepath.Dir(dbPath), "backups")
	}
	return &BackupJob{
		writer:   dbPair.Writer(),
		dbPath:   dbPath,
		dir:      dir,
		retain:   retain,
		schedule: schedule,
		logger:   logger,
	}
}

// Start schedules the job. An empty schedule disables it.
func (j *BackupJob) Start() error {
	if j.schedule == "" {
		return nil
	}

	j.cron = cron.New()
	if _, err := j.cron.AddFunc(j.schedule, func() {
		if _, err := j.RunOnce(); err != nil {
			j.logger.Printf("backup failed: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("invalid backup schedule %q: %w", j.schedule, err)
	}
	j.cron.Start()
	j.logger.Printf("backup job scheduled: %s -> %s", j.schedule, j.dir)
	return nil
}

// Stop halts the schedule. In-flight runs finish.
func (j *BackupJob) Stop() {
	if j.cron != nil {
		j.cron.Stop()
	}
}

// RunOnce takes one backup and prunes beyond the retention count.
// Returns the path of the new backup file.
func (j *BackupJob) RunOnce() (string, error) {
	if err := os.MkdirAll(j.dir, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("content-%s.db", time.Now().UTC().Format("20060102-150405"))
	target := filepath.Join(j.dir, name)

	// VACUUM INTO produces a consistent single-file copy without blocking
	// readers; it fails if the target already exists.
	if _, err := j.writer.Exec("VACUUM INTO ?", target); err != nil {
		return "", fmt.Errorf("vacuum into %s: %w", target, err)
	}

	if err := j.prune(); err != nil {
		j.logger.Printf("backup prune failed: %v", err)
	}

	j.logger.Printf("backup written: %s", target)
	return target, nil
}

func (j *BackupJob) prune() error {
	entries, err := os.ReadDir(j.dir)
	if err != nil {
		return err
	}

	var backups []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasPrefix(entry.Name(), "content-") && strings.HasSuffix(entry.Name(), ".db") {
			backups = append(backups, entry.Name())
		}
	}

	if len(backups) <= j.retain {
		return nil
	}

	// Timestamped names sort chronologically.
	sort.Strings(backups)
	for _, name := range backups[:len(backups)-j.retain] {
		if err := os.Remove(filepath.Join(j.dir, name)); err != nil {
			return err
		}
	}
	return nil
}
