package models

// UpdateSession is the state of one check-download-install sequence.
type UpdateSession struct {
	ID             string
	CurrentVersion string
	LatestVersion  string
	DownloadURL    string
	ArtifactPath   string
	Status         Status
}

// HasUpdate reports whether the check resolved something to download.
func (s UpdateSession) HasUpdate() bool {
	return s.DownloadURL != ""
}

// DownloadProgress is emitted after every chunk written to disk.
type DownloadProgress struct {
	BytesDone  int64
	BytesTotal int64 // -1 when the server did not advertise a length
	Percent    int
}

// UpdateEventType represents the kind of notification sent to the host
type UpdateEventType string

const (
	EventStatus   UpdateEventType = "status"
	EventFound    UpdateEventType = "found"
	EventNoUpdate UpdateEventType = "no_update"
	EventError    UpdateEventType = "error"
	EventProgress UpdateEventType = "progress"
)

// UpdateEvent is a host notification in value form, for hosts that consume a channel.
type UpdateEvent struct {
	Type    UpdateEventType
	Key     string // set for EventStatus
	Version string // set for EventFound
	Percent int    // set for EventProgress
}
