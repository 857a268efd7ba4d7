package finding

import (
	"context"

	"github.com/anchore/npmsweep/npmsweep/artifact"
	"github.com/anchore/npmsweep/npmsweep/catalog"
)

// Matcher examines a single classified artifact against the catalog. A returned error means the artifact could
// not be (fully) examined; any findings returned alongside the error are still kept.
type Matcher interface {
	ArtifactKinds() []artifact.Kind
	Type() MatcherType
	Match(ctx context.Context, c *catalog.Catalog, a artifact.Artifact) ([]Finding, error)
}
