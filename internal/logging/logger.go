// Package logging configures the process-wide logrus logger.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Params struct {
	Level      string
	FileName   string
	FormatJSON bool
}

// Setup applies params to the standard logger. Without a file name, logs go
// to stderr so they never mix with command output. The returned closer
// releases the log file.
func Setup(params Params) io.Closer {
	if params.FormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: params.FileName == ""})
	}

	logrus.SetLevel(GetLevel(params.Level))

	if params.FileName == "" {
		logrus.SetOutput(os.Stderr)
		return nopCloser{}
	}

	if !strings.HasSuffix(params.FileName, ".log") {
		params.FileName += ".log"
	}

	lumberJackLogger := &lumberjack.Logger{
		Filename:   params.FileName,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		LocalTime:  false,
		Compress:   true,
	}
	logrus.SetOutput(lumberJackLogger)
	return lumberJackLogger
}

// GetLevel maps a level name to logrus, defaulting to warn.
func GetLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	default:
		return logrus.WarnLevel
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
