package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lola-ipc/comcfg/pkg/cfgerrors"
	"github.com/lola-ipc/comcfg/pkg/schema/fb"
)

func TestLoadEndToEnd(t *testing.T) {
	path := writeConfigFile(t, fooConfig())

	config, err := LoadWithLogger(path, zap.NewNop())
	require.NoError(t, err)

	require.Len(t, config.ServiceTypes, 1)
	fooID := MakeServiceIdentifier("Foo", 1, 0)
	typeDeployment, ok := config.ServiceTypes[fooID]
	require.True(t, ok, "catalog must be keyed by (Foo, 1, 0)")

	lolaType, ok := typeDeployment.Binding.(LolaServiceTypeDeployment)
	require.True(t, ok, "binding must be the shared-memory variant")
	assert.Equal(t, uint16(7), lolaType.ServiceID)
	assert.Equal(t, map[string]uint8{"FooEvent": 1}, lolaType.Events)

	require.Len(t, config.ServiceInstances, 1)
	specifier, err := MakeInstanceSpecifier("foo_instance")
	require.NoError(t, err)
	instance, ok := config.ServiceInstances[specifier]
	require.True(t, ok, "catalog must be keyed by the instance specifier")

	assert.Equal(t, fooID, instance.Service)
	assert.Equal(t, QualityTypeASILB, instance.AsilLevel)

	lolaInstance, ok := instance.Binding.(LolaServiceInstanceDeployment)
	require.True(t, ok)
	require.NotNil(t, lolaInstance.InstanceID)
	assert.Equal(t, uint16(3), *lolaInstance.InstanceID)

	event, ok := lolaInstance.Events["FooEvent"]
	require.True(t, ok)
	require.NotNil(t, event.NumberOfSampleSlots)
	assert.Equal(t, uint16(10), *event.NumberOfSampleSlots)
	require.NotNil(t, event.MaxSubscribers)
	assert.Equal(t, uint8(2), *event.MaxSubscribers)
	assert.True(t, event.EnforceMaxSamples)
	assert.Equal(t, uint8(1), event.NumberOfTracingSlots)
	assert.Nil(t, event.MaxConcurrentAllocations)

	// No global or tracing block in the fixture: documented defaults.
	assert.Equal(t, NewGlobalConfiguration(), config.Global)
	assert.Equal(t, NewTracingConfiguration(), config.Tracing)
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no-such-config.bin")

	config, err := LoadWithLogger(path, zap.NewNop())

	require.Error(t, err)
	assert.Nil(t, config)
	assert.True(t, cfgerrors.IsIO(err))
	assert.Contains(t, err.Error(), "failed to map configuration file")

	var cfgErr *cfgerrors.Error
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, path, cfgErr.Details["path"])
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	config, err := LoadWithLogger(path, zap.NewNop())

	require.Error(t, err)
	assert.Nil(t, config)
	assert.True(t, cfgerrors.IsIO(err))
}

func TestLoadGarbageFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.bin")
	require.NoError(t, os.WriteFile(path, []byte("definitely not a flatbuffer"), 0o600))

	config, err := LoadWithLogger(path, zap.NewNop())

	require.Error(t, err)
	assert.Nil(t, config)
	assert.True(t, cfgerrors.IsSchema(err))
}

func TestLoadTruncatedFile(t *testing.T) {
	buf := buildConfig(fooConfig())
	path := filepath.Join(t.TempDir(), "truncated.bin")
	require.NoError(t, os.WriteFile(path, buf[:len(buf)/2], 0o600))

	config, err := LoadWithLogger(path, zap.NewNop())

	// The identifier survives truncation; the structural walk must not.
	require.Error(t, err)
	assert.Nil(t, config)
	assert.True(t, cfgerrors.IsSchema(err))
}

func TestLoadCatalogSizesMatchInput(t *testing.T) {
	spec := fooConfig()
	spec.types = append(spec.types, serviceTypeSpec{
		name:  "Bar",
		major: 2,
		minor: 1,
		bindings: []typeBindingSpec{{
			kind:      fb.BindingTypeShm,
			serviceID: 8,
		}},
	})

	path := writeConfigFile(t, spec)

	config, err := LoadWithLogger(path, zap.NewNop())
	require.NoError(t, err)

	assert.Len(t, config.ServiceTypes, 2)
	assert.Len(t, config.ServiceInstances, 1)
}
