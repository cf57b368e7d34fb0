package job

import (
	"os"

	"blog/logger"
)

// ClearLogsJob truncates the log file so it does not grow without bound.
type ClearLogsJob struct{}

func NewClearLogsJob() *ClearLogsJob {
	return new(ClearLogsJob)
}

// Run implements cron.Job.
func (j *ClearLogsJob) Run() {
	if err := os.Truncate(logger.GetLogFilePath(), 0); err != nil {
		logger.Warning("clear logs job err:", err)
	}
}
