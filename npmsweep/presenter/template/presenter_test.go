package template

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anchore/npmsweep/npmsweep/finding"
	"github.com/anchore/npmsweep/npmsweep/presenter/models"
)

func testDocument() models.Document {
	return models.Document{
		Matches: []finding.Finding{
			finding.New("/p/yarn.lock", "left-pad", "1.0.0", finding.YarnLockKind, map[string]string{finding.MethodField: finding.StringSearchMethod}),
			finding.New("/p/node_modules", "@ctrl/tinycolor", "4.1.1", finding.PackageTreeKind, nil),
			finding.New("/q/yarn.lock", "left-pad", "1.0.0", finding.YarnLockKind, nil),
		},
	}
}

func TestPresenter_Present(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPresenter(testDocument(), "test-fixtures/test.template").Present(&buf))

	expected := `
yarn.lock: left-pad@1.0.0 in /p/yarn.lock (string-search)
node_modules: @ctrl/tinycolor@4.1.1 in /p/node_modules
yarn.lock: left-pad@1.0.0 in /q/yarn.lock
packages: @ctrl/tinycolor, left-pad
yarn: 2
last: 2
`
	assert.Equal(t, expected, buf.String())
}

func TestPresenter_MissingTemplate(t *testing.T) {
	var buf bytes.Buffer
	err := NewPresenter(testDocument(), "test-fixtures/does-not-exist.template").Present(&buf)
	assert.ErrorContains(t, err, "unable to get output template")
}
