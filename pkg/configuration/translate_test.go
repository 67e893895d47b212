package configuration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lola-ipc/comcfg/pkg/cfgerrors"
	"github.com/lola-ipc/comcfg/pkg/schema/fb"
)

// newTranslator renders the fixture into a buffer and points a translator at
// its root, bypassing file I/O.
func newTranslator(t *testing.T, spec configSpec) *translator {
	t.Helper()
	buf := buildConfig(spec)
	return &translator{root: fb.GetRootAsComConfiguration(buf, 0), log: zap.NewNop()}
}

func shmBinding(serviceID uint16) typeBindingSpec {
	return typeBindingSpec{kind: fb.BindingTypeShm, serviceID: serviceID}
}

func TestServiceTypesDuplicateIdentifier(t *testing.T) {
	tr := newTranslator(t, configSpec{
		types: []serviceTypeSpec{
			{name: "Foo", major: 1, minor: 0, bindings: []typeBindingSpec{shmBinding(7)}},
			{name: "Foo", major: 1, minor: 0, bindings: []typeBindingSpec{shmBinding(8)}},
		},
	})

	_, err := tr.serviceTypes()

	require.Error(t, err)
	assert.True(t, cfgerrors.IsSemantic(err))
	assert.Contains(t, err.Error(), "deployed twice")
}

func TestServiceTypesDistinctVersionsAreDistinctContracts(t *testing.T) {
	tr := newTranslator(t, configSpec{
		types: []serviceTypeSpec{
			{name: "Foo", major: 1, minor: 0, bindings: []typeBindingSpec{shmBinding(7)}},
			{name: "Foo", major: 1, minor: 1, bindings: []typeBindingSpec{shmBinding(8)}},
		},
	})

	deployments, err := tr.serviceTypes()

	require.NoError(t, err)
	assert.Len(t, deployments, 2)
}

func TestServiceTypesSomeIPBindingFatal(t *testing.T) {
	tr := newTranslator(t, configSpec{
		types: []serviceTypeSpec{{
			name: "Foo", major: 1, minor: 0,
			bindings: []typeBindingSpec{{kind: fb.BindingTypeSomeIp, serviceID: 7}},
		}},
	})

	_, err := tr.serviceTypes()

	require.Error(t, err)
	assert.True(t, cfgerrors.IsSemantic(err))
	assert.Contains(t, err.Error(), "SOME/IP")
}

func TestServiceTypesUnknownBindingFatal(t *testing.T) {
	tr := newTranslator(t, configSpec{
		types: []serviceTypeSpec{{
			name: "Foo", major: 1, minor: 0,
			bindings: []typeBindingSpec{{kind: fb.BindingTypeNone, serviceID: 7}},
		}},
	})

	_, err := tr.serviceTypes()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown binding type")
}

func TestServiceTypesNoBindingFatal(t *testing.T) {
	tr := newTranslator(t, configSpec{
		types: []serviceTypeSpec{{name: "Foo", major: 1, minor: 0}},
	})

	_, err := tr.serviceTypes()

	require.Error(t, err)
	assert.True(t, cfgerrors.IsSemantic(err))
	assert.Contains(t, err.Error(), "no shared-memory binding")
}

func TestServiceTypesDuplicateShmBindingFatal(t *testing.T) {
	tr := newTranslator(t, configSpec{
		types: []serviceTypeSpec{{
			name: "Foo", major: 1, minor: 0,
			bindings: []typeBindingSpec{shmBinding(7), shmBinding(8)},
		}},
	})

	_, err := tr.serviceTypes()

	require.Error(t, err)
	assert.True(t, cfgerrors.IsSemantic(err))
	assert.Contains(t, err.Error(), "multiple shared-memory bindings")
}

func TestServiceTypesDuplicateEventNameFatal(t *testing.T) {
	tr := newTranslator(t, configSpec{
		types: []serviceTypeSpec{{
			name: "Foo", major: 1, minor: 0,
			bindings: []typeBindingSpec{{
				kind:      fb.BindingTypeShm,
				serviceID: 7,
				events:    []typeElemSpec{{name: "E", id: 1}, {name: "E", id: 2}},
			}},
		}},
	})

	_, err := tr.serviceTypes()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "declared twice")
}

func TestServiceTypesElementMappings(t *testing.T) {
	tr := newTranslator(t, configSpec{
		types: []serviceTypeSpec{{
			name: "Foo", major: 1, minor: 0,
			bindings: []typeBindingSpec{{
				kind:      fb.BindingTypeShm,
				serviceID: 7,
				events:    []typeElemSpec{{name: "E1", id: 1}, {name: "E2", id: 2}},
				fields:    []typeElemSpec{{name: "F1", id: 3}},
				methods:   []typeElemSpec{{name: "M1", id: 4}},
			}},
		}},
	})

	deployments, err := tr.serviceTypes()
	require.NoError(t, err)

	lola := deployments[MakeServiceIdentifier("Foo", 1, 0)].Binding.(LolaServiceTypeDeployment)
	assert.Equal(t, map[string]uint8{"E1": 1, "E2": 2}, lola.Events)
	assert.Equal(t, map[string]uint8{"F1": 3}, lola.Fields)
	assert.Equal(t, map[string]uint8{"M1": 4}, lola.Methods)
}

func instanceEntry(specifier string, instances ...instanceSpec) serviceInstanceSpec {
	return serviceInstanceSpec{
		specifier: specifier,
		typeName:  "Foo",
		major:     1,
		minor:     0,
		instances: instances,
	}
}

func TestServiceInstancesDuplicateShmBindingFatal(t *testing.T) {
	tr := newTranslator(t, configSpec{
		instances: []serviceInstanceSpec{instanceEntry("foo_instance",
			instanceSpec{kind: fb.BindingTypeShm, instanceID: 1},
			instanceSpec{kind: fb.BindingTypeShm, instanceID: 2},
		)},
	})

	_, err := tr.serviceInstances()

	require.Error(t, err)
	assert.True(t, cfgerrors.IsSemantic(err))
	assert.Contains(t, err.Error(), "multiple shared-memory bindings")
}

func TestServiceInstancesSomeIPBindingFatal(t *testing.T) {
	tr := newTranslator(t, configSpec{
		instances: []serviceInstanceSpec{instanceEntry("foo_instance",
			instanceSpec{kind: fb.BindingTypeSomeIp},
		)},
	})

	_, err := tr.serviceInstances()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "SOME/IP")
}

func TestServiceInstancesMissingDeploymentsFatal(t *testing.T) {
	tr := newTranslator(t, configSpec{
		instances: []serviceInstanceSpec{instanceEntry("foo_instance")},
	})

	_, err := tr.serviceInstances()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing deployment instances")
}

func TestServiceInstancesInvalidSpecifierFatal(t *testing.T) {
	tr := newTranslator(t, configSpec{
		instances: []serviceInstanceSpec{instanceEntry("9starts_with_digit",
			instanceSpec{kind: fb.BindingTypeShm},
		)},
	})

	_, err := tr.serviceInstances()

	require.Error(t, err)
	assert.True(t, cfgerrors.IsSemantic(err))
	assert.Contains(t, err.Error(), "invalid instance specifier")
}

func TestServiceInstancesDuplicateSpecifierFatal(t *testing.T) {
	tr := newTranslator(t, configSpec{
		instances: []serviceInstanceSpec{
			instanceEntry("foo_instance", instanceSpec{kind: fb.BindingTypeShm}),
			instanceEntry("foo_instance", instanceSpec{kind: fb.BindingTypeShm}),
		},
	})

	_, err := tr.serviceInstances()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "deployed twice")
}

func TestZeroSentinelOptionals(t *testing.T) {
	tr := newTranslator(t, configSpec{
		instances: []serviceInstanceSpec{instanceEntry("foo_instance",
			instanceSpec{
				kind:       fb.BindingTypeShm,
				instanceID: 0, // unset
				events: []eventInstanceSpec{
					{name: "Unconfigured"},
					{name: "Configured", sampleSlots: 25, maxSubscribers: 4},
				},
				methods: []methodInstanceSpec{
					{name: "NoQueue"},
					{name: "WithQueue", queueSize: 12},
				},
			},
		)},
	})

	deployments, err := tr.serviceInstances()
	require.NoError(t, err)

	specifier, _ := MakeInstanceSpecifier("foo_instance")
	lola := deployments[specifier].Binding.(LolaServiceInstanceDeployment)

	assert.Nil(t, lola.InstanceID, "zero instance id must read as absent")

	unconfigured := lola.Events["Unconfigured"]
	assert.Nil(t, unconfigured.NumberOfSampleSlots)
	assert.Nil(t, unconfigured.MaxSubscribers)

	configured := lola.Events["Configured"]
	require.NotNil(t, configured.NumberOfSampleSlots)
	assert.Equal(t, uint16(25), *configured.NumberOfSampleSlots)
	require.NotNil(t, configured.MaxSubscribers)
	assert.Equal(t, uint8(4), *configured.MaxSubscribers)

	assert.Nil(t, lola.Methods["NoQueue"].QueueSize)
	require.NotNil(t, lola.Methods["WithQueue"].QueueSize)
	assert.Equal(t, uint8(12), *lola.Methods["WithQueue"].QueueSize)

	assert.Nil(t, lola.SharedMemorySize)
	assert.Nil(t, lola.ControlAsilBMemorySize)
	assert.Nil(t, lola.ControlQmMemorySize)
}

func TestMemorySizesAndPermissionStrategy(t *testing.T) {
	tr := newTranslator(t, configSpec{
		instances: []serviceInstanceSpec{instanceEntry("foo_instance",
			instanceSpec{
				kind:             fb.BindingTypeShm,
				permissionChecks: fb.PermissionCheckStrategyStrict,
				shmSize:          65536,
				controlBSize:     4096,
				controlQMSize:    8192,
			},
		)},
	})

	deployments, err := tr.serviceInstances()
	require.NoError(t, err)

	specifier, _ := MakeInstanceSpecifier("foo_instance")
	lola := deployments[specifier].Binding.(LolaServiceInstanceDeployment)

	assert.True(t, lola.StrictPermissions)
	require.NotNil(t, lola.SharedMemorySize)
	assert.Equal(t, uint64(65536), *lola.SharedMemorySize)
	require.NotNil(t, lola.ControlAsilBMemorySize)
	assert.Equal(t, uint64(4096), *lola.ControlAsilBMemorySize)
	require.NotNil(t, lola.ControlQmMemorySize)
	assert.Equal(t, uint64(8192), *lola.ControlQmMemorySize)
}

func TestPermissionMapsPerLevelPresence(t *testing.T) {
	tr := newTranslator(t, configSpec{
		instances: []serviceInstanceSpec{instanceEntry("foo_instance",
			instanceSpec{
				kind:     fb.BindingTypeShm,
				consumer: &permissionsSpec{hasQM: true, qm: []uint32{1000, 1001}},
				provider: &permissionsSpec{hasQM: true, qm: []uint32{1002}, hasB: true, b: []uint32{}},
			},
		)},
	})

	deployments, err := tr.serviceInstances()
	require.NoError(t, err)

	specifier, _ := MakeInstanceSpecifier("foo_instance")
	lola := deployments[specifier].Binding.(LolaServiceInstanceDeployment)

	// Consumer: QM list present, B level absent entirely.
	assert.Equal(t, []uint32{1000, 1001}, lola.AllowedConsumer[QualityTypeQM])
	_, hasB := lola.AllowedConsumer[QualityTypeASILB]
	assert.False(t, hasB, "a level absent from the schema stays absent")

	// Provider: an empty-but-present list is an empty entry, not absence.
	assert.Equal(t, []uint32{1002}, lola.AllowedProvider[QualityTypeQM])
	bUsers, hasB := lola.AllowedProvider[QualityTypeASILB]
	assert.True(t, hasB)
	assert.Empty(t, bUsers)
}

func TestGlobalConfigurationAbsentYieldsDefaults(t *testing.T) {
	tr := newTranslator(t, configSpec{})

	config := tr.globalConfiguration()

	assert.Equal(t, QualityTypeQM, config.ProcessAsilLevel)
	assert.Nil(t, config.ApplicationID)
	assert.Equal(t, DefaultReceiverQueueSize, config.QmReceiverQueueSize)
	assert.Equal(t, DefaultReceiverQueueSize, config.BReceiverQueueSize)
	assert.Equal(t, DefaultSenderQueueSize, config.BSenderQueueSize)
	assert.Equal(t, ShmSizeCalcModeSimulation, config.ShmSizeCalcMode)
}

func TestGlobalConfigurationCopiedFromSchema(t *testing.T) {
	tr := newTranslator(t, configSpec{
		global: &globalSpec{
			asil:          fb.AsilLevelB,
			applicationID: 42,
			queueSizes:    &[3]uint32{15, 25, 35},
			// The schema may carry any mode; the loader must force
			// simulation regardless.
			mode: fb.ShmSizeCalcModeEstimation,
		},
	})

	config := tr.globalConfiguration()

	assert.Equal(t, QualityTypeASILB, config.ProcessAsilLevel)
	require.NotNil(t, config.ApplicationID)
	assert.Equal(t, uint16(42), *config.ApplicationID)
	assert.Equal(t, int32(15), config.QmReceiverQueueSize)
	assert.Equal(t, int32(25), config.BReceiverQueueSize)
	assert.Equal(t, int32(35), config.BSenderQueueSize)
	assert.Equal(t, ShmSizeCalcModeSimulation, config.ShmSizeCalcMode)
}

func TestGlobalConfigurationZeroApplicationIDAbsent(t *testing.T) {
	tr := newTranslator(t, configSpec{
		global: &globalSpec{asil: fb.AsilLevelQM, applicationID: 0},
	})

	config := tr.globalConfiguration()

	assert.Nil(t, config.ApplicationID)
}

func TestTracingConfigurationAbsentYieldsDefaults(t *testing.T) {
	tr := newTranslator(t, configSpec{})

	config := tr.tracingConfiguration()

	assert.False(t, config.Enabled)
	assert.Empty(t, config.ApplicationInstanceID)
	assert.Equal(t, DefaultTraceFilterConfigPath, config.TraceFilterConfigPath)
}

func TestTracingConfigurationDefaultFilterPath(t *testing.T) {
	tr := newTranslator(t, configSpec{
		tracing: &tracingSpec{enable: true, appInstanceID: "app_1"},
	})

	config := tr.tracingConfiguration()

	assert.True(t, config.Enabled)
	assert.Equal(t, "app_1", config.ApplicationInstanceID)
	assert.Equal(t, DefaultTraceFilterConfigPath, config.TraceFilterConfigPath)
}

func TestTracingConfigurationExplicitFilterPath(t *testing.T) {
	tr := newTranslator(t, configSpec{
		tracing: &tracingSpec{
			enable:        false,
			appInstanceID: "app_1",
			filterPath:    "/opt/trace/filter.json",
		},
	})

	config := tr.tracingConfiguration()

	assert.False(t, config.Enabled)
	assert.Equal(t, "/opt/trace/filter.json", config.TraceFilterConfigPath)
}
