package eventstore

import "github.com/rentierek/data-driven-autochess/internal/eventlog"

var kindByName = func() map[string]eventlog.Kind {
	m := make(map[string]eventlog.Kind)
	for k := eventlog.KindUnknown; k <= eventlog.KindTargetAcquired; k++ {
		m[k.String()] = k
	}
	return m
}()

// kindFromString reverses eventlog.Kind.String, for reconstructing events
// read back out of the database.
func kindFromString(s string) eventlog.Kind {
	if k, ok := kindByName[s]; ok {
		return k
	}
	return eventlog.KindUnknown
}
