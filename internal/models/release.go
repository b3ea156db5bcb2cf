package models

// Asset is a downloadable file attached to a release or listed in a repository.
type Asset struct {
	Name        string `json:"name"`
	DownloadURL string `json:"download_url"`
}

// ReleaseInfo is one entry of the release feed.
type ReleaseInfo struct {
	TagName string  `json:"tag_name"`
	Assets  []Asset `json:"assets"`
}

// ResolveMode selects where the installable artifact is looked up.
type ResolveMode string

const (
	// ResolveModeAssets scans the latest release's asset list.
	ResolveModeAssets ResolveMode = "assets"
	// ResolveModeContents scans the default branch's root file listing.
	ResolveModeContents ResolveMode = "contents"
)

func (m ResolveMode) IsValid() bool {
	return m == ResolveModeAssets || m == ResolveModeContents
}

// BusyPolicy decides what happens to a start request while another one is in flight.
type BusyPolicy string

const (
	BusyPolicyQueue  BusyPolicy = "queue"
	BusyPolicyReject BusyPolicy = "reject"
)

func (p BusyPolicy) IsValid() bool {
	return p == BusyPolicyQueue || p == BusyPolicyReject
}
