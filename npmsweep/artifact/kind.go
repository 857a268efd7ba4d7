package artifact

const (
	UnknownKind Kind = iota
	LockfileNpm
	LockfileYarn
	LockfilePnpm
	PackageTreeEntry
	CacheTarball
	SuspiciousScript
)

var kindStr = []string{
	"UnknownKind",
	"lockfile-npm",
	"lockfile-yarn",
	"lockfile-pnpm",
	"package-tree-entry",
	"cache-tarball",
	"suspicious-script",
}

var AllKinds = []Kind{
	LockfileNpm,
	LockfileYarn,
	LockfilePnpm,
	PackageTreeEntry,
	CacheTarball,
	SuspiciousScript,
}

// Kind tags a discovered filesystem object with the format matcher that understands it.
type Kind int

func (k Kind) String() string {
	if int(k) >= len(kindStr) || k < 0 {
		return kindStr[0]
	}

	return kindStr[k]
}

const (
	UnknownOrigin Origin = iota
	ProjectOrigin
	GlobalOrigin
	VersionManagerOrigin
	CacheOrigin
)

var originStr = []string{
	"UnknownOrigin",
	"project",
	"global",
	"version-manager",
	"cache",
}

// Origin describes which kind of install location an artifact was discovered in.
type Origin int

func (o Origin) String() string {
	if int(o) >= len(originStr) || o < 0 {
		return originStr[0]
	}

	return originStr[o]
}
