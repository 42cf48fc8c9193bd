package tsinspect

const (
	AppName = "tsinspect"
	AppURL  = "https://github.com/pradeepantapnal/tsinspect"
)

var AppVersion = "dev"

func SetAppVersion(version string) {
	if version != "" {
		AppVersion = version
	}
}

func FormatVersion(version string) string {
	if version == "" {
		return "v(dev)"
	}
	return "v" + version
}
