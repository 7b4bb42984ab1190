package series

import "time"

// Temporal cells are stored as unix nanoseconds in UTC so Date/Time/DateTime
// can share one backing slice; Value's own constructors already normalize
// each variant's irrelevant component (Date clears time-of-day, Time clears
// calendar date), so round-tripping through int64 here loses nothing.

func timeToNs(t time.Time) int64 { return t.UTC().UnixNano() }

func nsToTime(ns int64) time.Time { return time.Unix(0, ns).UTC() }
