package finding

// Kind identifies which matcher (and which method of that matcher) produced a finding. The values are stable
// report strings.
type Kind string

const (
	NpmLockKind         Kind = "package-lock.json"
	NpmLockFallbackKind Kind = "package-lock.json-fallback"
	YarnLockKind        Kind = "yarn.lock"
	PnpmLockKind        Kind = "pnpm-lock.yaml"
	PackageTreeKind     Kind = "node_modules"
	GlobalTreeKind      Kind = "global-node_modules"
	NvmTreeKind         Kind = "nvm-node_modules"
	CacheTarballKind    Kind = "npm-cache-tarball"
	BunPresentKind      Kind = "bun-file-present"
	BunContentHitKind   Kind = "bun-file-content-hit"
)

var AllKinds = []Kind{
	NpmLockKind,
	NpmLockFallbackKind,
	YarnLockKind,
	PnpmLockKind,
	PackageTreeKind,
	GlobalTreeKind,
	NvmTreeKind,
	CacheTarballKind,
	BunPresentKind,
	BunContentHitKind,
}

// extra field names
const (
	MethodField              = "method"
	CatalogVersionsField     = "catalog-versions"
	CatalogVersionMatchField = "catalog-version-match"
	PurlField                = "purl"
	MediaTypeField           = "media-type"
	ScriptField              = "script"
)

// values of the method extra field
const (
	QueryMethod        = "jq"
	StringSearchMethod = "string-search"
	RegexMethod        = "regex"
	NoMethod           = "none"
)

const (
	// UnknownVersion is reported when the version behind a finding could not be determined.
	UnknownVersion = "unknown"
	// CachedVersion marks cache tarball findings, where the version is not parsed from the file name.
	CachedVersion = "cached"
	// NotApplicableVersion is used for findings that are not about a package at all.
	NotApplicableVersion = "n/a"
	// BunFilePackage is the package name reported for suspicious script presence.
	BunFilePackage = "(bun file)"
)
