package quicstream

import "github.com/sirupsen/logrus"

// logCategory mirrors minq's logType constants (logTypeStream,
// logTypeFlowControl, ...): every log call site is tagged with the
// subsystem that produced it, so a consumer can filter by category
// the way minq filters by logType bitmask.
type logCategory string

const (
	logStream      logCategory = "stream"
	logFlowControl logCategory = "flowcontrol"
	logScheduler   logCategory = "scheduler"
)

// newManagerLogger derives a categorized child logger the way minq's
// newStreamLogger(id, kind, parent) derives a per-stream logger from
// the connection's. A nil parent falls back to logrus's standard
// logger so a zero-value StreamManagerConfig still logs somewhere.
func newManagerLogger(parent *logrus.Entry) *logrus.Entry {
	if parent != nil {
		return parent
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

func (m *StreamManager) logf(cat logCategory, format string, args ...interface{}) {
	if m.log == nil {
		return
	}
	m.log.WithField("component", string(cat)).Debugf(format, args...)
}

func (m *StreamManager) streamLogger(id StreamId, cat logCategory) *logrus.Entry {
	if m.log == nil {
		return logrus.NewEntry(logrus.New())
	}
	return m.log.WithFields(logrus.Fields{"component": string(cat), "stream": id.String()})
}
