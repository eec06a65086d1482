// internal/transport/log.go
package transport

import (
	"github.com/sirupsen/logrus"
)

// LogConnect logs a message when a transport to the server is established.
func LogConnect(logger logrus.FieldLogger, c Conn, kind Kind) {
	logger.WithFields(logrus.Fields{
		"remote":    c.RemoteAddr(),
		"transport": kind,
	}).Info("Connected to game server")
}

// LogDisconnect logs a message when the transport goes away.
func LogDisconnect(logger logrus.FieldLogger, c Conn, err error) {
	fields := logrus.Fields{
		"remote": c.RemoteAddr(),
	}
	if err != nil {
		fields["error"] = err
	}
	logger.WithFields(fields).Info("Disconnected from game server")
}
