package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/anchore/npmsweep/internal"
	"github.com/anchore/npmsweep/internal/version"
	"github.com/anchore/npmsweep/npmsweep/finding"
	"github.com/anchore/npmsweep/npmsweep/matcher"
)

// Document represents the JSON document to be presented. The "matches" key holds the findings in discovery order.
type Document struct {
	Matches    []finding.Finding `json:"matches"`
	Skipped    []SkippedArtifact `json:"skipped,omitempty"`
	Descriptor Descriptor        `json:"descriptor"`
}

// SkippedArtifact is an artifact that could not be examined completely.
type SkippedArtifact struct {
	Path    string `json:"path"`
	Kind    string `json:"kind"`
	Package string `json:"package,omitempty"`
	Matcher string `json:"matcher"`
	Reason  string `json:"reason"`
}

// Descriptor describes what created the document as well as surrounding metadata
type Descriptor struct {
	Name                 string      `json:"name"`
	Version              string      `json:"version"`
	ID                   string      `json:"id"`
	Timestamp            string      `json:"timestamp"`
	DirectoriesProcessed int64       `json:"directoriesProcessed"`
	UniqueFindings       int         `json:"uniqueFindings"`
	Configuration        interface{} `json:"configuration,omitempty"`
}

// NewDocument creates and populates a new Document struct, representing the populated JSON document.
func NewDocument(report *matcher.Report, appConfig interface{}) Document {
	matches := make([]finding.Finding, 0)
	var skipped []SkippedArtifact
	var dirs int64
	var unique int

	if report != nil {
		matches = append(matches, report.Findings.Items()...)
		for _, o := range report.Skipped {
			skipped = append(skipped, SkippedArtifact{
				Path:    o.Artifact.Path,
				Kind:    o.Artifact.Kind.String(),
				Package: o.Artifact.Package,
				Matcher: o.Matcher.String(),
				Reason:  o.Err.Error(),
			})
		}
		dirs = report.DirectoriesProcessed
		unique = report.Findings.Fingerprints().Size()
	}

	return Document{
		Matches: matches,
		Skipped: skipped,
		Descriptor: Descriptor{
			Name:                 internal.ApplicationName,
			Version:              version.FromBuild().Version,
			ID:                   uuid.New().String(),
			Timestamp:            time.Now().Format(time.RFC3339),
			DirectoriesProcessed: dirs,
			UniqueFindings:       unique,
			Configuration:        appConfig,
		},
	}
}
