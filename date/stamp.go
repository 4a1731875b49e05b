package date

import "time"

// Stamp is an instant persisted as milliseconds since the Unix epoch.
//
// It is the JSON representation of allocation timestamps and snapshot
// creation/update times.
type Stamp int64

// FromTime truncates t to the millisecond.
func FromTime(t time.Time) Stamp { return Stamp(t.UnixMilli()) }

// Now returns the current instant.
func Now() Stamp { return FromTime(time.Now()) }

// Time returns the local time of s.
func (s Stamp) Time() time.Time { return time.UnixMilli(int64(s)) }

// Date returns the local calendar day of s.
func (s Stamp) Date() Date { return New(s.Time().Date()) }

// IsZero reports whether s has never been set.
func (s Stamp) IsZero() bool { return s == 0 }
