package platform

// AppName is reported to notification centres that group by application.
const AppName = "TouchPaint"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath, when non-empty, points to an image file the notification center
	// should display with the notification if supported by the platform.
	IconPath string
	// Tag, when non-empty, makes the notification replace the previous one
	// sent with the same tag instead of stacking, where the platform allows.
	Tag string
}
