package finding

import (
	"strings"

	"github.com/package-url/packageurl-go"
)

// PackageURL renders the npm package URL for a package. Placeholder versions ("unknown", "cached", ...) are left
// out of the URL.
func PackageURL(name, version string) string {
	var namespace string
	if strings.HasPrefix(name, "@") {
		if idx := strings.Index(name, "/"); idx > 0 {
			namespace, name = name[:idx], name[idx+1:]
		}
	}

	switch version {
	case UnknownVersion, CachedVersion, NotApplicableVersion:
		version = ""
	}

	return packageurl.NewPackageURL(packageurl.TypeNPM, namespace, name, version, nil, "").ToString()
}
