package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type SetupParams struct {
	LogFileName string
	LogToStdout bool
	LogLevel    string
}

// Setup points logrus at a rotated log file, and stdout when asked.
// The returned closer flushes the file.
func Setup(params SetupParams) (io.Closer, error) {
	logrus.SetLevel(GetLevel(params.LogLevel))
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if params.LogFileName == "" {
		logrus.SetOutput(os.Stdout)
		return stdoutCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(params.LogFileName), 0755); err != nil {
		return nil, err
	}

	logFile := &lumberjack.Logger{
		Filename: params.LogFileName,
		MaxSize:  10, // megabytes
		Compress: true,
	}

	// running with air: the console is already captured
	if params.LogToStdout && os.Getenv("AIR_RESTART_COUNT") == "" {
		logrus.SetOutput(io.MultiWriter(os.Stdout, logFile))
	} else {
		logrus.SetOutput(logFile)
	}

	return logFile, nil
}

type stdoutCloser struct{}

func (stdoutCloser) Close() error { return nil }

func GetLevel(level string) logrus.Level {
	parsed, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		return logrus.InfoLevel
	}
	return parsed
}
