package configuration

// Test fixtures: declarative specs rendered into binary configuration
// buffers with the generated fb builder helpers, the same wire format the
// build-time configuration compiler emits.

import (
	"os"
	"path/filepath"
	"testing"

	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/stretchr/testify/require"

	"github.com/lola-ipc/comcfg/pkg/schema/fb"
)

type typeElemSpec struct {
	name string
	id   uint16
}

type typeBindingSpec struct {
	kind      fb.BindingType
	serviceID uint16
	events    []typeElemSpec
	fields    []typeElemSpec
	methods   []typeElemSpec
}

type serviceTypeSpec struct {
	name     string
	major    uint32
	minor    uint32
	bindings []typeBindingSpec
}

type eventInstanceSpec struct {
	name           string
	sampleSlots    uint16
	maxSubscribers uint16
	enforce        bool
	tracingSlots   uint16
}

type methodInstanceSpec struct {
	name      string
	queueSize uint16
}

type permissionsSpec struct {
	qm    []uint32
	hasQM bool
	b     []uint32
	hasB  bool
}

type instanceSpec struct {
	kind             fb.BindingType
	instanceID       uint16
	asil             fb.AsilLevel
	events           []eventInstanceSpec
	fields           []eventInstanceSpec
	methods          []methodInstanceSpec
	consumer         *permissionsSpec
	provider         *permissionsSpec
	permissionChecks fb.PermissionCheckStrategy
	shmSize          uint64
	controlBSize     uint64
	controlQMSize    uint64
}

type serviceInstanceSpec struct {
	specifier string
	typeName  string
	major     uint32
	minor     uint32
	instances []instanceSpec
}

type globalSpec struct {
	asil          fb.AsilLevel
	applicationID uint16
	queueSizes    *[3]uint32 // qm receiver, b receiver, b sender
	mode          fb.ShmSizeCalcMode
}

type tracingSpec struct {
	enable        bool
	appInstanceID string
	filterPath    string
}

type configSpec struct {
	types     []serviceTypeSpec
	instances []serviceInstanceSpec
	global    *globalSpec
	tracing   *tracingSpec
}

func tableVector(b *flatbuffers.Builder, start func(*flatbuffers.Builder, int) flatbuffers.UOffsetT, offsets []flatbuffers.UOffsetT) flatbuffers.UOffsetT {
	start(b, len(offsets))
	for i := len(offsets) - 1; i >= 0; i-- {
		b.PrependUOffsetT(offsets[i])
	}
	return b.EndVector(len(offsets))
}

func uint32Vector(b *flatbuffers.Builder, start func(*flatbuffers.Builder, int) flatbuffers.UOffsetT, values []uint32) flatbuffers.UOffsetT {
	start(b, len(values))
	for i := len(values) - 1; i >= 0; i-- {
		b.PrependUint32(values[i])
	}
	return b.EndVector(len(values))
}

func buildTypeBinding(b *flatbuffers.Builder, spec typeBindingSpec) flatbuffers.UOffsetT {
	eventOffsets := make([]flatbuffers.UOffsetT, len(spec.events))
	for i, e := range spec.events {
		name := b.CreateString(e.name)
		fb.EventStart(b)
		fb.EventAddEventName(b, name)
		fb.EventAddEventId(b, e.id)
		eventOffsets[i] = fb.EventEnd(b)
	}
	fieldOffsets := make([]flatbuffers.UOffsetT, len(spec.fields))
	for i, f := range spec.fields {
		name := b.CreateString(f.name)
		fb.FieldStart(b)
		fb.FieldAddFieldName(b, name)
		fb.FieldAddFieldId(b, f.id)
		fieldOffsets[i] = fb.FieldEnd(b)
	}
	methodOffsets := make([]flatbuffers.UOffsetT, len(spec.methods))
	for i, m := range spec.methods {
		name := b.CreateString(m.name)
		fb.MethodStart(b)
		fb.MethodAddMethodName(b, name)
		fb.MethodAddMethodId(b, m.id)
		methodOffsets[i] = fb.MethodEnd(b)
	}

	events := tableVector(b, fb.BindingStartEventsVector, eventOffsets)
	fields := tableVector(b, fb.BindingStartFieldsVector, fieldOffsets)
	methods := tableVector(b, fb.BindingStartMethodsVector, methodOffsets)

	fb.BindingStart(b)
	fb.BindingAddBinding(b, spec.kind)
	fb.BindingAddServiceId(b, spec.serviceID)
	fb.BindingAddEvents(b, events)
	fb.BindingAddFields(b, fields)
	fb.BindingAddMethods(b, methods)
	return fb.BindingEnd(b)
}

func buildPermissions(b *flatbuffers.Builder, spec *permissionsSpec) flatbuffers.UOffsetT {
	var qm, bVec flatbuffers.UOffsetT
	if spec.hasQM {
		qm = uint32Vector(b, fb.PermissionsStartQmVector, spec.qm)
	}
	if spec.hasB {
		bVec = uint32Vector(b, fb.PermissionsStartBVector, spec.b)
	}
	fb.PermissionsStart(b)
	if spec.hasQM {
		fb.PermissionsAddQm(b, qm)
	}
	if spec.hasB {
		fb.PermissionsAddB(b, bVec)
	}
	return fb.PermissionsEnd(b)
}

func buildInstance(b *flatbuffers.Builder, spec instanceSpec) flatbuffers.UOffsetT {
	eventOffsets := make([]flatbuffers.UOffsetT, len(spec.events))
	for i, e := range spec.events {
		name := b.CreateString(e.name)
		fb.EventInstanceStart(b)
		fb.EventInstanceAddEventName(b, name)
		fb.EventInstanceAddNumberOfSampleSlots(b, e.sampleSlots)
		fb.EventInstanceAddMaxSubscribers(b, e.maxSubscribers)
		fb.EventInstanceAddEnforceMaxSamples(b, e.enforce)
		fb.EventInstanceAddNumberOfIpcTracingSlots(b, e.tracingSlots)
		eventOffsets[i] = fb.EventInstanceEnd(b)
	}
	fieldOffsets := make([]flatbuffers.UOffsetT, len(spec.fields))
	for i, f := range spec.fields {
		name := b.CreateString(f.name)
		fb.FieldInstanceStart(b)
		fb.FieldInstanceAddFieldName(b, name)
		fb.FieldInstanceAddNumberOfSampleSlots(b, f.sampleSlots)
		fb.FieldInstanceAddMaxSubscribers(b, f.maxSubscribers)
		fb.FieldInstanceAddEnforceMaxSamples(b, f.enforce)
		fb.FieldInstanceAddNumberOfIpcTracingSlots(b, f.tracingSlots)
		fieldOffsets[i] = fb.FieldInstanceEnd(b)
	}
	methodOffsets := make([]flatbuffers.UOffsetT, len(spec.methods))
	for i, m := range spec.methods {
		name := b.CreateString(m.name)
		fb.MethodInstanceStart(b)
		fb.MethodInstanceAddMethodName(b, name)
		fb.MethodInstanceAddQueueSize(b, m.queueSize)
		methodOffsets[i] = fb.MethodInstanceEnd(b)
	}

	events := tableVector(b, fb.InstanceStartEventsVector, eventOffsets)
	fields := tableVector(b, fb.InstanceStartFieldsVector, fieldOffsets)
	methods := tableVector(b, fb.InstanceStartMethodsVector, methodOffsets)

	var consumer, provider flatbuffers.UOffsetT
	if spec.consumer != nil {
		consumer = buildPermissions(b, spec.consumer)
	}
	if spec.provider != nil {
		provider = buildPermissions(b, spec.provider)
	}

	fb.InstanceStart(b)
	fb.InstanceAddBinding(b, spec.kind)
	fb.InstanceAddInstanceId(b, spec.instanceID)
	fb.InstanceAddAsilLevel(b, spec.asil)
	fb.InstanceAddEvents(b, events)
	fb.InstanceAddFields(b, fields)
	fb.InstanceAddMethods(b, methods)
	if spec.consumer != nil {
		fb.InstanceAddAllowedConsumer(b, consumer)
	}
	if spec.provider != nil {
		fb.InstanceAddAllowedProvider(b, provider)
	}
	fb.InstanceAddPermissionChecks(b, spec.permissionChecks)
	fb.InstanceAddShmSize(b, spec.shmSize)
	fb.InstanceAddControlAsilBShmSize(b, spec.controlBSize)
	fb.InstanceAddControlQmShmSize(b, spec.controlQMSize)
	return fb.InstanceEnd(b)
}

// buildConfig renders spec into a finished, schema-valid binary buffer.
func buildConfig(spec configSpec) []byte {
	b := flatbuffers.NewBuilder(1024)

	typeOffsets := make([]flatbuffers.UOffsetT, len(spec.types))
	for i, st := range spec.types {
		bindingOffsets := make([]flatbuffers.UOffsetT, len(st.bindings))
		for j, binding := range st.bindings {
			bindingOffsets[j] = buildTypeBinding(b, binding)
		}
		bindings := tableVector(b, fb.ServiceTypeStartBindingsVector, bindingOffsets)
		name := b.CreateString(st.name)

		fb.ServiceTypeStart(b)
		fb.ServiceTypeAddServiceTypeName(b, name)
		fb.ServiceTypeAddVersion(b, fb.CreateVersion(b, st.major, st.minor))
		fb.ServiceTypeAddBindings(b, bindings)
		typeOffsets[i] = fb.ServiceTypeEnd(b)
	}
	serviceTypes := tableVector(b, fb.ComConfigurationStartServiceTypesVector, typeOffsets)

	instanceOffsets := make([]flatbuffers.UOffsetT, len(spec.instances))
	for i, si := range spec.instances {
		deployOffsets := make([]flatbuffers.UOffsetT, len(si.instances))
		for j, instance := range si.instances {
			deployOffsets[j] = buildInstance(b, instance)
		}
		instances := tableVector(b, fb.ServiceInstanceStartInstancesVector, deployOffsets)
		specifier := b.CreateString(si.specifier)
		typeName := b.CreateString(si.typeName)

		fb.ServiceInstanceStart(b)
		fb.ServiceInstanceAddInstanceSpecifier(b, specifier)
		fb.ServiceInstanceAddServiceTypeName(b, typeName)
		fb.ServiceInstanceAddVersion(b, fb.CreateVersion(b, si.major, si.minor))
		fb.ServiceInstanceAddInstances(b, instances)
		instanceOffsets[i] = fb.ServiceInstanceEnd(b)
	}
	serviceInstances := tableVector(b, fb.ComConfigurationStartServiceInstancesVector, instanceOffsets)

	var global flatbuffers.UOffsetT
	if spec.global != nil {
		var queueSize flatbuffers.UOffsetT
		if spec.global.queueSizes != nil {
			fb.QueueSizeStart(b)
			fb.QueueSizeAddQmReceiver(b, spec.global.queueSizes[0])
			fb.QueueSizeAddBReceiver(b, spec.global.queueSizes[1])
			fb.QueueSizeAddBSender(b, spec.global.queueSizes[2])
			queueSize = fb.QueueSizeEnd(b)
		}
		fb.GlobalStart(b)
		fb.GlobalAddAsilLevel(b, spec.global.asil)
		fb.GlobalAddApplicationId(b, spec.global.applicationID)
		if spec.global.queueSizes != nil {
			fb.GlobalAddQueueSize(b, queueSize)
		}
		fb.GlobalAddShmSizeCalcMode(b, spec.global.mode)
		global = fb.GlobalEnd(b)
	}

	var tracing flatbuffers.UOffsetT
	if spec.tracing != nil {
		appID := b.CreateString(spec.tracing.appInstanceID)
		var filterPath flatbuffers.UOffsetT
		if spec.tracing.filterPath != "" {
			filterPath = b.CreateString(spec.tracing.filterPath)
		}
		fb.TracingStart(b)
		fb.TracingAddEnable(b, spec.tracing.enable)
		fb.TracingAddApplicationInstanceId(b, appID)
		if spec.tracing.filterPath != "" {
			fb.TracingAddTraceFilterConfigPath(b, filterPath)
		}
		tracing = fb.TracingEnd(b)
	}

	fb.ComConfigurationStart(b)
	fb.ComConfigurationAddServiceTypes(b, serviceTypes)
	fb.ComConfigurationAddServiceInstances(b, serviceInstances)
	if spec.global != nil {
		fb.ComConfigurationAddGlobal(b, global)
	}
	if spec.tracing != nil {
		fb.ComConfigurationAddTracing(b, tracing)
	}
	root := fb.ComConfigurationEnd(b)

	fb.FinishComConfigurationBuffer(b, root)
	return b.FinishedBytes()
}

// writeConfigFile renders spec to a file for the Load entry point.
func writeConfigFile(t *testing.T, spec configSpec) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "comconfig.bin")
	require.NoError(t, os.WriteFile(path, buildConfig(spec), 0o600))
	return path
}

// fooConfig is the canonical valid fixture: service type Foo 1.0 with one
// shared-memory binding (service id 7) and one matching instance
// "foo_instance" at ASIL B with instance id 3.
func fooConfig() configSpec {
	return configSpec{
		types: []serviceTypeSpec{{
			name:  "Foo",
			major: 1,
			minor: 0,
			bindings: []typeBindingSpec{{
				kind:      fb.BindingTypeShm,
				serviceID: 7,
				events:    []typeElemSpec{{name: "FooEvent", id: 1}},
			}},
		}},
		instances: []serviceInstanceSpec{{
			specifier: "foo_instance",
			typeName:  "Foo",
			major:     1,
			minor:     0,
			instances: []instanceSpec{{
				kind:       fb.BindingTypeShm,
				instanceID: 3,
				asil:       fb.AsilLevelB,
				events: []eventInstanceSpec{{
					name:           "FooEvent",
					sampleSlots:    10,
					maxSubscribers: 2,
					enforce:        true,
					tracingSlots:   1,
				}},
			}},
		}},
	}
}
