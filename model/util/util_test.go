package util

import (
	"go/token"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPackageName(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"fmt", "fmt"},
		{"encoding/json", "json"},
		{"github.com/m4gshm/restruct/v2", "restruct"},
		{"gopkg.in/yaml.v3", "yaml.v3"},
		{"example.com/v1", "v1"},
		{"example.com/mod/v10/sub", "sub"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, GetPackageName(tc.input), tc.input)
	}
}

func TestGetDir(t *testing.T) {
	dir := t.TempDir()
	got, err := GetDir(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	file := filepath.Join(dir, "model.go")
	require.NoError(t, os.WriteFile(file, []byte("package model\n"), 0o644))
	got, err = GetDir(file)
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	got, err = GetDir(filepath.Join(dir, "absent_restruct.go"))
	require.NoError(t, err)
	assert.Equal(t, dir, got)
}

type located struct{ Name string }

func TestFindTypePackageFile(t *testing.T) {
	_, filename, _, _ := runtime.Caller(0)

	fileSet := token.NewFileSet()
	pkgs, err := ExtractPackages(fileSet, nil, filename)
	require.NoError(t, err)

	typ, pkg, filePath, file, err := FindTypePackageFile("located", fileSet, pkgs)
	require.NoError(t, err)
	require.NotNil(t, typ)
	assert.Equal(t, "util", pkg.Name)
	assert.Equal(t, filename, filePath)
	assert.Equal(t, "util", file.Name.Name)

	typ, _, _, _, err = FindTypePackageFile("absent", fileSet, pkgs)
	assert.NoError(t, err)
	assert.Nil(t, typ)
}
