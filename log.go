package sstable

import log "github.com/sirupsen/logrus"

// defaultLogger is the package-level logrus instance used when Options
// does not supply one, following db.go's setupLogging pattern of wiring
// logrus at the point of use rather than passing a logger through every
// call.
var defaultLogger log.FieldLogger = log.StandardLogger()
