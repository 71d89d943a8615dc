package pkg

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Log = logrus.NewEntry(logrus.StandardLogger())

// AddLogFileHook makes logger also write every entry it emits to path,
// rotating the file when it reaches 10 megabytes.
func AddLogFileHook(logger *logrus.Logger, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return errors.Wrapf(err, "create log directory for %q", path)
		}
	}

	writer := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10,
		MaxBackups: 3,
	}

	logger.AddHook(lfshook.NewHook(
		lfshook.WriterMap{
			logrus.DebugLevel: writer,
			logrus.InfoLevel:  writer,
			logrus.WarnLevel:  writer,
			logrus.ErrorLevel: writer,
			logrus.FatalLevel: writer,
			logrus.PanicLevel: writer,
		},
		&prefixed.TextFormatter{
			TimestampFormat:  time.RFC3339Nano,
			FullTimestamp:    true,
			DisableUppercase: true,
			ForceFormatting:  true,
			DisableColors:    true,
		},
	))

	return nil
}
