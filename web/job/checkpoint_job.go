// Package job contains the scheduled maintenance jobs of the blog server.
// Session expiry is handled lazily by the session store, not by a job.
package job

import (
	"blog/database"
	"blog/logger"
)

// CheckpointJob flushes the sqlite WAL back into the main database file.
type CheckpointJob struct{}

func NewCheckpointJob() *CheckpointJob {
	return new(CheckpointJob)
}

// Run implements cron.Job.
func (j *CheckpointJob) Run() {
	if err := database.Checkpoint(); err != nil {
		logger.Warning("checkpoint job err:", err)
	}
}
