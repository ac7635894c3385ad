package gen

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewConfigDefaults(t *testing.T) {
	c, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultHeader, c.Header)
	assert.Equal(t, AllKinds(), c.Kinds)
	assert.Equal(t, runtime.GOMAXPROCS(0), c.Workers)
	assert.NotNil(t, c.Log())
}

func TestWithHeader(t *testing.T) {
	t.Run("sets header", func(t *testing.T) {
		c := &Config{}
		require.NoError(t, WithHeader("// Custom header")(c))
		assert.Equal(t, "// Custom header", c.Header)
	})

	t.Run("empty header is allowed", func(t *testing.T) {
		c := &Config{Header: "existing"}
		require.NoError(t, WithHeader("")(c))
		assert.Equal(t, "", c.Header)
	})
}

func TestWithKindNames(t *testing.T) {
	tests := []struct {
		name    string
		kinds   []string
		want    []Kind
		wantErr bool
	}{
		{"single", []string{"view"}, []Kind{KindView}, false},
		{"several", []string{"record-builder", "proxy-ref"}, []Kind{KindRecordBuilder, KindProxyRef}, false},
		{"unknown", []string{"table"}, nil, true},
		{"processor is not per entity", []string{"processor"}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{}
			err := WithKindNames(tt.kinds...)(c)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsConfigError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Kinds)
		})
	}
}

func TestOptionErrors(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"empty target", WithTarget("")},
		{"empty package", WithPackage("")},
		{"zero workers", WithWorkers(0)},
		{"nil logger", WithLogger(nil)},
		{"empty processor", WithProcessors("dump", "")},
		{"processor kind", WithKinds(KindProcessor)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opt(&Config{})
			require.Error(t, err)
			assert.True(t, IsConfigError(err))
		})
	}
}

func TestApplyAll(t *testing.T) {
	c := &Config{}
	err := c.ApplyAll(WithTarget(""), WithPackage("example.com/m"), WithWorkers(-1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Target")
	assert.Contains(t, err.Error(), "Workers")
	assert.Equal(t, "example.com/m", c.Package)

	_, err = NewConfig(WithWorkers(0))
	assert.Error(t, err)
	assert.Panics(t, func() { MustNewConfig(WithPackage("")) })
}

func TestPackagePath(t *testing.T) {
	c := MustNewConfig(WithPackage("example.com/model"), WithLogger(zap.NewNop()))
	assert.Equal(t, "example.com/model", c.PackagePath(""))
	assert.Equal(t, "example.com/model/geo", c.PackagePath("geo"))
	assert.Equal(t, "geo", (&Config{}).PackagePath("geo"))
	var nilConfig *Config
	assert.NotNil(t, nilConfig.Log())
}
