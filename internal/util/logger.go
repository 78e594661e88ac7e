package util

import (
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide diagnostic logger. Command output intended for the
// operator goes through app.Context writers, never through Log.
var Log = logrus.New()

func InitLogger(debug bool) {
	InitLoggerTo(os.Stderr, debug)
}

// InitLoggerTo configures Log to write to w.
func InitLoggerTo(w io.Writer, debug bool) {
	Log.SetOutput(w)
	if debug {
		Log.SetLevel(logrus.DebugLevel)
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
			CallerPrettyfier: func(f *runtime.Frame) (string, string) {
				s := strings.Split(f.Function, ".")
				funcname := s[len(s)-1]
				filename := filepath.Base(f.File)
				return funcname, " [" + filename + ":" + strconv.Itoa(f.Line) + "]"
			},
		})
		Log.SetReportCaller(true)
		Log.Debug("Debug logging enabled")
	} else {
		Log.SetLevel(logrus.WarnLevel)
		Log.SetReportCaller(false)
		Log.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: true,
			ForceColors:      true,
		})
	}
}

// EnsureLevel makes Log at least as verbose as level. A more verbose level
// set by --debug is kept.
func EnsureLevel(level logrus.Level) {
	if Log.GetLevel() < level {
		Log.SetLevel(level)
	}
}
