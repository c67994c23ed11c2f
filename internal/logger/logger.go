// Package logger configures the process-wide structured logger.
package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the shared logger instance. It works with library defaults before
// Init runs, so package-level code and tests never hit a nil logger.
var Log = logrus.New()

// Init configures the shared logger from the environment. Call it once at
// startup:
//   - LOG_LEVEL sets the level ("debug", "info", ...), default "info"
//   - LOG_FORMAT set to "json" switches to JSON output for log collectors;
//     anything else keeps human-readable text
func Init() {
	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	Log.SetOutput(os.Stdout)
}
