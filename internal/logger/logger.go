package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

type Entry = logrus.Entry

// Init configures the process logger. format is "json" or "text";
// an unparsable level falls back to info.
func Init(level, format string) {
	InitWithOutput(level, format, os.Stdout)
}

func InitWithOutput(level, format string, out io.Writer) {
	switch strings.ToLower(format) {
	case "json":
		Log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	default:
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	Log.SetOutput(out)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	if os.Getenv("DEBUG") == "true" {
		lvl = logrus.DebugLevel
	}
	Log.SetLevel(lvl)
}

// Component returns an entry tagged with the component name.
func Component(name string) *Entry {
	return Log.WithField("component", name)
}

// OrComponent returns e, or a component entry when e is nil.
func OrComponent(e *Entry, name string) *Entry {
	if e != nil {
		return e
	}
	return Component(name)
}
