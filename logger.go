package pixmap

import "github.com/sirupsen/logrus"

var log logrus.FieldLogger = logrus.WithField("pkg", "pixmap")

// SetLogger replaces the logger used by the package.
// Passing nil restores the logrus standard logger.
func SetLogger(logger logrus.FieldLogger) {
	if logger == nil {
		logger = logrus.WithField("pkg", "pixmap")
	}
	log = logger
}
