package finding

const (
	UnknownMatcherType MatcherType = iota
	NpmLockMatcher
	YarnLockMatcher
	PnpmLockMatcher
	PackageTreeMatcher
	CacheTarballMatcher
	BunScriptMatcher
)

var matcherTypeStr = []string{
	"UnknownMatcherType",
	"npm-lock-matcher",
	"yarn-lock-matcher",
	"pnpm-lock-matcher",
	"package-tree-matcher",
	"cache-tarball-matcher",
	"bun-script-matcher",
}

var AllMatcherTypes = []MatcherType{
	NpmLockMatcher,
	YarnLockMatcher,
	PnpmLockMatcher,
	PackageTreeMatcher,
	CacheTarballMatcher,
	BunScriptMatcher,
}

type MatcherType int

func (f MatcherType) String() string {
	if int(f) >= len(matcherTypeStr) || f < 0 {
		return matcherTypeStr[0]
	}

	return matcherTypeStr[f]
}
