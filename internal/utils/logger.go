package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ComponentLogger writes leveled log lines to stdout and a per-component log
// file. Failures in the export pipeline never reach HTTP callers, so this is
// the only place they become visible.
type ComponentLogger struct {
	file       *os.File
	logger     *log.Logger
	multiWrite io.Writer
}

func NewComponentLogger(component string) (*ComponentLogger, error) {
	// Sanitize component name for file system
	sanitized := strings.ReplaceAll(strings.ToLower(component), " ", "_")

	// Create logs directory if it doesn't exist
	logsDir := "logs"
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	// Create log file with timestamp
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	logPath := filepath.Join(logsDir, fmt.Sprintf("%s_%s.log", sanitized, timestamp))

	file, err := os.Create(logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	// Create multi-writer for both file and stdout
	multiWrite := io.MultiWriter(os.Stdout, file)
	logger := log.New(multiWrite, "", log.Ldate|log.Ltime|log.Lmicroseconds)

	return &ComponentLogger{
		file:       file,
		logger:     logger,
		multiWrite: multiWrite,
	}, nil
}

func (cl *ComponentLogger) LogInfo(format string, v ...interface{}) {
	cl.log("INFO", format, v...)
}

func (cl *ComponentLogger) LogError(format string, v ...interface{}) {
	cl.log("ERROR", format, v...)
}

func (cl *ComponentLogger) LogDebug(format string, v ...interface{}) {
	cl.log("DEBUG", format, v...)
}

func (cl *ComponentLogger) log(level string, format string, v ...interface{}) {
	message := fmt.Sprintf(format, v...)
	cl.logger.Printf("[%s] %s", level, message)
}

func (cl *ComponentLogger) Close() error {
	return cl.file.Close()
}
