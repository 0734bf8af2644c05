package params

import (
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m4gshm/restruct/config"
)

func newFlags(t *testing.T, arguments ...string) *Config {
	flagSet := flag.NewFlagSet(Name, flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	c, err := NewConfig(flagSet)
	require.NoError(t, err)
	require.NoError(t, flagSet.Parse(arguments))
	return c
}

func Test_NewConfig(t *testing.T) {
	c := newFlags(t, "-type", "User", "-buildTag", "a,b", "-buildTag", "c", "-capability", "openapi", "-nolint")

	assert.Equal(t, "User", *c.Type)
	assert.Equal(t, ".", *c.PackagePattern)
	assert.Equal(t, []string{"a", "b", "c"}, *c.BuildTags)
	assert.Equal(t, []config.Capability{config.CapabilityOpenAPI}, *c.Capabilities)
	assert.True(t, *c.Nolint)
	assert.False(t, *c.Debug)
}

func Test_MultiValDuplicated(t *testing.T) {
	flagSet := flag.NewFlagSet(Name, flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	_, err := NewConfig(flagSet)
	require.NoError(t, err)

	err = flagSet.Parse([]string{"-buildTag", "a", "-buildTag", "a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicated value a of parameter buildTag")
}

func Test_ParseFile(t *testing.T) {
	c, err := ParseFile([]byte(`
type: User
out: user_restruct.go
buildTags: [integration]
capabilities: [openapi]
select: kind == "view"
nolint: true
`))
	require.NoError(t, err)

	assert.Equal(t, "User", *c.Type)
	assert.Equal(t, "user_restruct.go", *c.Output)
	assert.Equal(t, []string{"integration"}, *c.BuildTags)
	assert.Equal(t, []config.Capability{config.CapabilityOpenAPI}, *c.Capabilities)
	assert.Equal(t, `kind == "view"`, *c.Select)
	assert.True(t, *c.Nolint)
}

func Test_ParseFileUnknownCapability(t *testing.T) {
	_, err := ParseFile([]byte("capabilities: [graphql]"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown capability "graphql"`)
}

func Test_MergeWith_FlagsWin(t *testing.T) {
	flags := newFlags(t, "-type", "Account", "-out", "account.go")
	file, err := ParseFile([]byte(`
type: User
out: user_restruct.go
package: ./model
schema: user.yaml
capabilities: [openapi]
debug: true
`))
	require.NoError(t, err)

	c := flags.MergeWith(file)

	assert.Equal(t, "Account", *c.Type)
	assert.Equal(t, "account.go", *c.Output)
	assert.Equal(t, "./model", *c.PackagePattern)
	assert.Equal(t, "user.yaml", *c.Schema)
	assert.Equal(t, []config.Capability{config.CapabilityOpenAPI}, *c.Capabilities)
	assert.True(t, *c.Debug)
	assert.False(t, *c.Nolint)
}

func Test_MergeWith_Nil(t *testing.T) {
	flags := newFlags(t, "-type", "User")
	assert.Same(t, flags, flags.MergeWith(nil))
}
