package sweeperr

var (
	// ErrFindingsDiscovered indicates that the scan found at least one compromised package and the user asked for
	// a failing exit code in that case (--fail-on-findings).
	ErrFindingsDiscovered = NewExpectedErr("discovered compromised packages")
)
