package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// Group classifies a message reported by the exporter
type Group int

const (
	GroupError Group = iota
	GroupWarning
	GroupExportError
	GroupExportWarning
)

func (g Group) String() string {
	switch g {
	case GroupError:
		return "ERROR"
	case GroupWarning:
		return "WARNING"
	case GroupExportError:
		return "EXPORT-ERROR"
	case GroupExportWarning:
		return "EXPORT-WARNING"
	default:
		return fmt.Sprintf("GROUP(%d)", int(g))
	}
}

// IsError reports whether the group marks a failure
func (g Group) IsError() bool {
	return g == GroupError || g == GroupExportError
}

// Sink receives user facing messages
type Sink interface {
	Message(group Group, msg string)
}

// Messagef formats and reports a message to s
func Messagef(s Sink, group Group, format string, args ...any) {
	s.Message(group, fmt.Sprintf(format, args...))
}

// ZapSink forwards messages to a zap logger
type ZapSink struct {
	log *zap.Logger
}

// NewZapSink creates a sink logging to log, or to the global logger if log is nil
func NewZapSink(log *zap.Logger) *ZapSink {
	return &ZapSink{log: log}
}

func (s *ZapSink) Message(group Group, msg string) {
	log := s.log
	if log == nil {
		log = Log
	}
	field := zap.Stringer("group", group)
	if group.IsError() {
		log.Error(msg, field)
	} else {
		log.Warn(msg, field)
	}
}

// Entry is a recorded message
type Entry struct {
	Group   Group
	Message string
}

// Counter counts and records messages per group
type Counter struct {
	Entries []Entry
	counts  map[Group]int
}

// NewCounter creates an empty counter
func NewCounter() *Counter {
	return &Counter{counts: make(map[Group]int)}
}

func (c *Counter) Message(group Group, msg string) {
	if c.counts == nil {
		c.counts = make(map[Group]int)
	}
	c.counts[group]++
	c.Entries = append(c.Entries, Entry{Group: group, Message: msg})
}

// Count returns the number of messages in group
func (c *Counter) Count(group Group) int {
	return c.counts[group]
}

// Errors returns the number of messages in error groups
func (c *Counter) Errors() int {
	return c.counts[GroupError] + c.counts[GroupExportError]
}

// Warnings returns the number of messages in warning groups
func (c *Counter) Warnings() int {
	return c.counts[GroupWarning] + c.counts[GroupExportWarning]
}

// Total returns the number of recorded messages
func (c *Counter) Total() int {
	return len(c.Entries)
}

// Tee fans messages out to several sinks
type Tee []Sink

func (t Tee) Message(group Group, msg string) {
	for _, s := range t {
		s.Message(group, msg)
	}
}

type discard struct{}

func (discard) Message(Group, string) {}

// Discard drops all messages
var Discard Sink = discard{}
