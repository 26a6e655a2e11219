package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/saylorsolutions/teastr/cmd/teagen/internal/tmpl"
	"github.com/saylorsolutions/teastr/pkg/teastr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedManifest = `
package: secrets
seed: [1, 2, 3, 4]
literals:
  - name: token
    value: manifest value
`

func TestManifestOptions(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "teagen.yaml"), []byte(seedManifest), 0600))
	m, err := tmpl.LoadManifest(filepath.Join(dir, "teagen.yaml"))
	require.NoError(t, err)
	defaultSeed := teastr.Seed{S1: '1', S2: '3', S3: 'J', S4: 'a'}
	manifestOpts, err := m.Options(defaultSeed)
	require.NoError(t, err)
	base := []tmpl.ParamOpt{tmpl.UseSeed(defaultSeed)}

	tests := map[string]struct {
		seedOpt  tmpl.ParamOpt
		expected teastr.Seed
	}{
		"Manifest seed over default": {
			expected: teastr.Seed{S1: 1, S2: 2, S3: 3, S4: 4},
		},
		"Seed flag over manifest": {
			seedOpt:  tmpl.UseSeed(teastr.Seed{S1: 5, S2: 6, S3: 7, S4: 8}),
			expected: teastr.Seed{S1: 5, S2: 6, S3: 7, S4: 8},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, tmpl.Generate(&buf, manifestOptions(base, manifestOpts, tc.seedOpt)...))
			assert.Contains(t, buf.String(), keyString(teastr.GenerateKey(tc.expected)))
		})
	}
}

func TestManifestOptions_DoesNotModifyBase(t *testing.T) {
	base := make([]tmpl.ParamOpt, 1, 4)
	base[0] = tmpl.PackageName("first")
	all := manifestOptions(base, []tmpl.ParamOpt{tmpl.PackageName("second")}, tmpl.ExposeFunctions())
	assert.Len(t, all, 3)
	assert.Len(t, base, 1)
	assert.Nil(t, base[:2][1], "The base slice's backing array should not be written")
}

func keyString(key teastr.Key) string {
	return fmt.Sprintf("teastr.Key{0x%08x, 0x%08x, 0x%08x, 0x%08x}", key[0], key[1], key[2], key[3])
}
