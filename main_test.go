package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m4gshm/restruct/generator"
)

func Test_WriteSrc(t *testing.T) {
	outputName := filepath.Join(t.TempDir(), "user_restruct.go")
	g := generator.New("restruct", nil, "model", "example.com/model")
	require.NoError(t, g.AddType("UserView", "type UserView struct {\nName string\n}\n"))

	require.NoError(t, writeSrc(g, outputName))
	src, err := os.ReadFile(outputName)
	require.NoError(t, err)
	assert.Contains(t, string(src), "type UserView struct {")
}

func Test_WriteSrcFormatError(t *testing.T) {
	outputName := filepath.Join(t.TempDir(), "user_restruct.go")
	g := generator.New("restruct", nil, "model", "example.com/model")
	require.NoError(t, g.AddType("UserView", "type UserView struct {\nName string\n"))

	assert.ErrorContains(t, writeSrc(g, outputName), "formatting")
	_, err := os.Stat(outputName)
	assert.True(t, os.IsNotExist(err), "no output is written for a broken source")
}
