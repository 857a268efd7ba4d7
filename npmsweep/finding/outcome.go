package finding

import (
	"fmt"

	"github.com/anchore/npmsweep/npmsweep/artifact"
)

// Outcome is the result of examining one artifact. An outcome with an error is "skipped": the artifact could
// not be examined completely, though findings gathered before the failure are kept.
type Outcome struct {
	Artifact artifact.Artifact
	Matcher  MatcherType
	Findings []Finding
	Err      error
}

func (o Outcome) Skipped() bool {
	return o.Err != nil
}

func (o Outcome) String() string {
	if o.Err != nil {
		return fmt.Sprintf("Outcome(artifact=%s matcher=%s findings=%d err=%q)", o.Artifact, o.Matcher, len(o.Findings), o.Err)
	}
	return fmt.Sprintf("Outcome(artifact=%s matcher=%s findings=%d)", o.Artifact, o.Matcher, len(o.Findings))
}
