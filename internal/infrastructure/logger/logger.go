package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	Level      string
	Format     string // json or text
	FilePath   string // empty logs to stdout only
	MaxSize    int    // MB
	MaxBackups int
	MaxAge     int // days
	Compress   bool
}

// New builds the process logger. With a file path set, output goes to both
// stdout and a rotating file.
func New(o Options) (*logrus.Logger, error) {
	l := logrus.New()

	level, err := logrus.ParseLevel(o.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if o.Format == "text" {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{})
	}

	if o.FilePath == "" {
		l.SetOutput(os.Stdout)
		return l, nil
	}
	if err := os.MkdirAll(filepath.Dir(o.FilePath), 0o755); err != nil {
		return nil, err
	}
	l.SetOutput(io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   o.FilePath,
		MaxSize:    o.MaxSize,
		MaxBackups: o.MaxBackups,
		MaxAge:     o.MaxAge,
		Compress:   o.Compress,
	}))
	return l, nil
}
