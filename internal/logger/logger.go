// Package logger provides a lightweight, centralized logging facility
// with configurable verbosity levels, backed by logrus.
//
// Verbosity levels (in increasing order):
//
//	Error < Info < Debug < Trace
//
// Example usage:
//
//	logger.SetVerbosity(2) // Debug
//	logger.Infof("pricing started")
//	logger.Debugf("spot=%f vol=%f", spot, vol)
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// log is the package-wide logrus instance. All output goes to stderr so
// logs stay separate from report output on stdout.
var log = logrus.New()

func init() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.SetLevel(logrus.InfoLevel)
}

// SetVerbosity sets the global logging verbosity:
// 0=errors, 1=info, 2=debug, 3=trace.
// Typically called once during application startup, after parsing CLI flags.
func SetVerbosity(v int) {
	switch {
	case v <= 0:
		log.SetLevel(logrus.ErrorLevel)
	case v == 1:
		log.SetLevel(logrus.InfoLevel)
	case v == 2:
		log.SetLevel(logrus.DebugLevel)
	default:
		log.SetLevel(logrus.TraceLevel)
	}
}

// Errorf logs an error-level message.
func Errorf(format string, args ...any) { log.Errorf(format, args...) }

// Infof logs an informational message.
func Infof(format string, args ...any) { log.Infof(format, args...) }

// Debugf logs debugging information.
func Debugf(format string, args ...any) { log.Debugf(format, args...) }

// Tracef logs very detailed execution traces. Use sparingly due to volume.
func Tracef(format string, args ...any) { log.Tracef(format, args...) }
