package models

// Status is a state of the update state machine.
type Status string

const (
	StatusIdle              Status = "idle"
	StatusCheckingFeed      Status = "checking_feed"
	StatusFetchingReleases  Status = "fetching_releases"
	StatusComparingVersions Status = "comparing_versions"
	StatusUpToDate          Status = "up_to_date"
	StatusResolvingArtifact Status = "resolving_artifact"
	StatusFound             Status = "found"
	StatusNotFound          Status = "not_found"
	StatusDownloading       Status = "downloading"
	StatusDownloaded        Status = "downloaded"
	StatusInstalling        Status = "installing"
	StatusDone              Status = "done"
	StatusError             Status = "error"
)

// statusKeys holds the host-visible key for states the host renders as progress.
var statusKeys = map[Status]string{
	StatusCheckingFeed:      "connecting-api",
	StatusFetchingReleases:  "fetching-releases",
	StatusComparingVersions: "comparing-versions",
	StatusResolvingArtifact: "searching-apk",
	StatusDownloading:       "downloading",
	StatusInstalling:        "installing",
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// Key returns the status key delivered through OnUpdateStatus, or "" when the
// state is reported through a dedicated callback instead.
func (s Status) Key() string {
	return statusKeys[s]
}

// IsTerminal returns true once a sequence can no longer advance.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusUpToDate, StatusFound, StatusDone, StatusError:
		return true
	}
	return false
}

// StatusKeys lists every key a host may receive, in pipeline order.
func StatusKeys() []string {
	return []string{
		"connecting-api",
		"fetching-releases",
		"comparing-versions",
		"searching-apk",
		"downloading",
		"installing",
	}
}
