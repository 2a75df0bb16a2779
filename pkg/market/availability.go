package market

// Availability is either a present snapshot or the reason it could not be
// acquired. The zero value is neither and means the caller never said.
type Availability struct {
	snapshot *Snapshot
	reason   string
}

// Present wraps an acquired snapshot.
func Present(s *Snapshot) Availability {
	return Availability{snapshot: s}
}

// Unavailable records why a snapshot is missing.
func Unavailable(reason string) Availability {
	if reason == "" {
		reason = "source unavailable"
	}
	return Availability{reason: reason}
}

// Get returns the snapshot and whether it is present.
func (a Availability) Get() (*Snapshot, bool) {
	return a.snapshot, a.snapshot != nil
}

// Reason returns why the snapshot is missing, empty when present.
func (a Availability) Reason() string {
	return a.reason
}

// IsZero reports whether neither Present nor Unavailable was used.
func (a Availability) IsZero() bool {
	return a.snapshot == nil && a.reason == ""
}
