package settings

// Version holds build metadata, overridden at link time with -ldflags "-X ..."
type Version struct {
	BuildVersion string
	Commit       string
	BuildTime    string
}

// VersionInformation is the build metadata of the running binary
var VersionInformation = Version{
	BuildVersion: "dev",
	Commit:       "none",
	BuildTime:    "unknown",
}

// String renders the version for --version
func (v Version) String() string {
	return v.BuildVersion + " (commit " + v.Commit + ", built " + v.BuildTime + ")"
}
