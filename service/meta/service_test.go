package meta

import (
	"context"
	"embed"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	_ "github.com/viant/afs/embed"
)

//go:embed testdata/*
var testFS embed.FS

type document struct {
	Name     string `json:"name" yaml:"name"`
	Printers int    `json:"printers" yaml:"printers"`
}

func TestService_Load(t *testing.T) {
	t.Setenv("META_TEST_NAME", "lab")
	srv := New(afs.New(), "embed:///testdata", &testFS)
	ctx := context.Background()

	testCases := []struct {
		description string
		location    string
		expect      document
		expectErr   bool
	}{
		{description: "yaml with env expansion", location: "document.yaml", expect: document{Name: "lab", Printers: 2}},
		{description: "json", location: "document.json", expect: document{Name: "json", Printers: 4}},
		{description: "missing", location: "missing.yaml", expectErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			var actual document
			err := srv.Load(ctx, tc.location, &actual)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expect, actual)
		})
	}
}

func TestService_URL(t *testing.T) {
	srv := New(afs.New(), "mem://localhost/config")
	assert.Equal(t, "mem://localhost/config/a.yaml", srv.URL("a.yaml"))
	assert.Equal(t, "file:///tmp/a.yaml", srv.URL("file:///tmp/a.yaml"))
}
