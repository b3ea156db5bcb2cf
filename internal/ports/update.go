package ports

import "context"

// UpdateObserver receives host-visible notifications from the updater.
// Calls are fire-and-forget; implementations must not block for long.
type UpdateObserver interface {
	// OnUpdateStatus reports a progress step such as "connecting-api" or "downloading".
	OnUpdateStatus(key string)
	// OnUpdateFound reports that version is newer and an artifact was resolved.
	OnUpdateFound(version string)
	// OnNoUpdateFound reports that the installed version is current or nothing is installable.
	OnNoUpdateFound()
	// OnUpdateCheckError reports any failure. It carries no detail.
	OnUpdateCheckError()
	// OnUpdateProgress reports download progress in [0,100].
	OnUpdateProgress(percent int)
}

// Installer hands a fully downloaded artifact to the platform's package installer.
type Installer interface {
	Install(ctx context.Context, artifactPath string) error
}

// NetworkProbe tells whether the device currently has connectivity.
type NetworkProbe interface {
	Available(ctx context.Context) bool
}
