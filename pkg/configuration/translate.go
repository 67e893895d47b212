package configuration

import (
	"go.uber.org/zap"

	"github.com/lola-ipc/comcfg/pkg/cfgerrors"
	"github.com/lola-ipc/comcfg/pkg/schema/fb"
)

// translator walks the verified schema root and builds the domain model.
// Every method either returns a fully populated result or a semantic error;
// nothing partial escapes. All strings and slices are copied out of the
// underlying buffer so the mapping can be released once translation is done.
type translator struct {
	root *fb.ComConfiguration
	log  *zap.Logger
}

// Zero-sentinel conversions: the schema encodes "not configured" as 0, so a
// value is present exactly when it is positive. Narrowing casts follow the
// check, never precede it.

func optionalU16(v uint16) *uint16 {
	if v == 0 {
		return nil
	}
	return &v
}

func optionalU8(v uint16) *uint8 {
	if v == 0 {
		return nil
	}
	n := uint8(v)
	return &n
}

func optionalU64(v uint64) *uint64 {
	if v == 0 {
		return nil
	}
	return &v
}

func asilToQuality(level fb.AsilLevel) QualityType {
	if level == fb.AsilLevelB {
		return QualityTypeASILB
	}
	return QualityTypeQM
}

// serviceTypes builds the service-type catalog. Exactly one shared-memory
// binding must exist per entry; an unsupported binding kind, a second
// shared-memory binding, a missing binding or a repeated service identifier
// all fail translation.
func (t *translator) serviceTypes() (ServiceTypeDeployments, error) {
	deployments := make(ServiceTypeDeployments, t.root.ServiceTypesLength())

	var serviceType fb.ServiceType
	for i := 0; i < t.root.ServiceTypesLength(); i++ {
		if !t.root.ServiceTypes(&serviceType, i) {
			continue
		}

		name := string(serviceType.ServiceTypeName())
		version := serviceType.Version(nil)
		if version == nil {
			return nil, cfgerrors.
				New(cfgerrors.ErrorTypeSemantic, "service type is missing its version").
				WithDetail("service_type", name)
		}
		identifier := MakeServiceIdentifier(name, version.Major(), version.Minor())

		var bindingInfo ServiceTypeBindingInformation
		var binding fb.Binding
		for j := 0; j < serviceType.BindingsLength(); j++ {
			if !serviceType.Bindings(&binding, j) {
				continue
			}
			switch binding.Binding() {
			case fb.BindingTypeShm:
				if bindingInfo != nil {
					return nil, cfgerrors.
						New(cfgerrors.ErrorTypeSemantic, "multiple shared-memory bindings for service type").
						WithDetail("service", identifier.String())
				}
				lola, err := t.lolaServiceTypeDeployment(&binding, identifier)
				if err != nil {
					return nil, err
				}
				bindingInfo = lola
			case fb.BindingTypeSomeIp:
				return nil, cfgerrors.
					New(cfgerrors.ErrorTypeSemantic, "SOME/IP binding provided, which is not supported yet").
					WithDetail("service", identifier.String())
			default:
				return nil, cfgerrors.
					New(cfgerrors.ErrorTypeSemantic, "unknown binding type provided").
					WithDetail("service", identifier.String())
			}
		}

		if bindingInfo == nil {
			return nil, cfgerrors.
				New(cfgerrors.ErrorTypeSemantic, "no shared-memory binding found for service type").
				WithDetail("service", identifier.String())
		}

		if _, exists := deployments[identifier]; exists {
			return nil, cfgerrors.
				New(cfgerrors.ErrorTypeSemantic, "service type is deployed twice").
				WithDetail("service", identifier.String())
		}
		deployments[identifier] = ServiceTypeDeployment{Binding: bindingInfo}
	}

	t.log.Debug("translated service types", zap.Int("count", len(deployments)))
	return deployments, nil
}

// lolaServiceTypeDeployment reads the shared-memory binding of a service
// type: service id plus the event/field/method name-to-id mappings.
func (t *translator) lolaServiceTypeDeployment(binding *fb.Binding, identifier ServiceIdentifier) (LolaServiceTypeDeployment, error) {
	deployment := LolaServiceTypeDeployment{
		ServiceID: binding.ServiceId(),
		Events:    make(map[string]uint8, binding.EventsLength()),
		Fields:    make(map[string]uint8, binding.FieldsLength()),
		Methods:   make(map[string]uint8, binding.MethodsLength()),
	}

	var event fb.Event
	for i := 0; i < binding.EventsLength(); i++ {
		if !binding.Events(&event, i) {
			continue
		}
		name := string(event.EventName())
		if _, exists := deployment.Events[name]; exists {
			return LolaServiceTypeDeployment{}, duplicateElement("event", name, identifier)
		}
		deployment.Events[name] = uint8(event.EventId())
	}

	var field fb.Field
	for i := 0; i < binding.FieldsLength(); i++ {
		if !binding.Fields(&field, i) {
			continue
		}
		name := string(field.FieldName())
		if _, exists := deployment.Fields[name]; exists {
			return LolaServiceTypeDeployment{}, duplicateElement("field", name, identifier)
		}
		deployment.Fields[name] = uint8(field.FieldId())
	}

	var method fb.Method
	for i := 0; i < binding.MethodsLength(); i++ {
		if !binding.Methods(&method, i) {
			continue
		}
		name := string(method.MethodName())
		if _, exists := deployment.Methods[name]; exists {
			return LolaServiceTypeDeployment{}, duplicateElement("method", name, identifier)
		}
		deployment.Methods[name] = uint8(method.MethodId())
	}

	return deployment, nil
}

func duplicateElement(kind, name string, identifier ServiceIdentifier) error {
	return cfgerrors.
		Newf(cfgerrors.ErrorTypeSemantic, "%s is declared twice within its mapping", kind).
		WithDetail(kind, name).
		WithDetail("service", identifier.String())
}

// serviceInstances builds the service-instance catalog. Each entry must
// carry exactly one shared-memory binding instance; zero, two, or any
// unsupported binding kind fails translation.
func (t *translator) serviceInstances() (ServiceInstanceDeployments, error) {
	deployments := make(ServiceInstanceDeployments, t.root.ServiceInstancesLength())

	var serviceInstance fb.ServiceInstance
	for i := 0; i < t.root.ServiceInstancesLength(); i++ {
		if !t.root.ServiceInstances(&serviceInstance, i) {
			continue
		}

		specifier, err := MakeInstanceSpecifier(string(serviceInstance.InstanceSpecifier()))
		if err != nil {
			return nil, cfgerrors.Wrap(err, cfgerrors.ErrorTypeSemantic, "invalid instance specifier")
		}

		name := string(serviceInstance.ServiceTypeName())
		version := serviceInstance.Version(nil)
		if version == nil {
			return nil, cfgerrors.
				New(cfgerrors.ErrorTypeSemantic, "service instance is missing its version").
				WithDetail("instance_specifier", specifier.String())
		}
		identifier := MakeServiceIdentifier(name, version.Major(), version.Minor())

		if serviceInstance.InstancesLength() == 0 {
			return nil, cfgerrors.
				New(cfgerrors.ErrorTypeSemantic, "service instance is missing deployment instances").
				WithDetail("instance_specifier", specifier.String())
		}

		// Exactly one shared-memory instance; multi-binding is not
		// supported.
		var shmInstance *fb.Instance
		var instance fb.Instance
		for j := 0; j < serviceInstance.InstancesLength(); j++ {
			if !serviceInstance.Instances(&instance, j) {
				continue
			}
			switch instance.Binding() {
			case fb.BindingTypeShm:
				if shmInstance != nil {
					return nil, cfgerrors.
						New(cfgerrors.ErrorTypeSemantic, "multiple shared-memory bindings for service instance").
						WithDetail("service", identifier.String()).
						WithDetail("instance_specifier", specifier.String())
				}
				kept := instance
				shmInstance = &kept
			case fb.BindingTypeSomeIp:
				return nil, cfgerrors.
					New(cfgerrors.ErrorTypeSemantic, "SOME/IP binding provided, which cannot be parsed").
					WithDetail("instance_specifier", specifier.String())
			default:
				return nil, cfgerrors.
					New(cfgerrors.ErrorTypeSemantic, "unknown binding type provided").
					WithDetail("instance_specifier", specifier.String())
			}
		}
		if shmInstance == nil {
			return nil, cfgerrors.
				New(cfgerrors.ErrorTypeSemantic, "no shared-memory binding found for service instance").
				WithDetail("service", identifier.String()).
				WithDetail("instance_specifier", specifier.String())
		}

		lola, err := t.lolaServiceInstanceDeployment(shmInstance, specifier)
		if err != nil {
			return nil, err
		}

		if _, exists := deployments[specifier]; exists {
			return nil, cfgerrors.
				New(cfgerrors.ErrorTypeSemantic, "instance specifier is deployed twice").
				WithDetail("instance_specifier", specifier.String())
		}
		deployments[specifier] = ServiceInstanceDeployment{
			Service:   identifier,
			AsilLevel: asilToQuality(shmInstance.AsilLevel()),
			Specifier: specifier,
			Binding:   lola,
		}
	}

	t.log.Debug("translated service instances", zap.Int("count", len(deployments)))
	return deployments, nil
}

// lolaServiceInstanceDeployment reads one shared-memory binding instance
// record.
func (t *translator) lolaServiceInstanceDeployment(instance *fb.Instance, specifier InstanceSpecifier) (LolaServiceInstanceDeployment, error) {
	deployment := LolaServiceInstanceDeployment{
		InstanceID:        optionalU16(instance.InstanceId()),
		Events:            make(map[string]LolaEventInstanceDeployment, instance.EventsLength()),
		Fields:            make(map[string]LolaFieldInstanceDeployment, instance.FieldsLength()),
		Methods:           make(map[string]LolaMethodInstanceDeployment, instance.MethodsLength()),
		StrictPermissions: instance.PermissionChecks() == fb.PermissionCheckStrategyStrict,
		AllowedConsumer:   permissionMap(instance.AllowedConsumer(nil)),
		AllowedProvider:   permissionMap(instance.AllowedProvider(nil)),

		SharedMemorySize:       optionalU64(instance.ShmSize()),
		ControlAsilBMemorySize: optionalU64(instance.ControlAsilBShmSize()),
		ControlQmMemorySize:    optionalU64(instance.ControlQmShmSize()),
	}

	var event fb.EventInstance
	for i := 0; i < instance.EventsLength(); i++ {
		if !instance.Events(&event, i) {
			continue
		}
		name := string(event.EventName())
		if _, exists := deployment.Events[name]; exists {
			return LolaServiceInstanceDeployment{}, duplicateInstanceElement("event", name, specifier)
		}
		deployment.Events[name] = LolaEventInstanceDeployment{
			NumberOfSampleSlots:  optionalU16(event.NumberOfSampleSlots()),
			MaxSubscribers:       optionalU8(event.MaxSubscribers()),
			EnforceMaxSamples:    event.EnforceMaxSamples(),
			NumberOfTracingSlots: uint8(event.NumberOfIpcTracingSlots()),
		}
	}

	var field fb.FieldInstance
	for i := 0; i < instance.FieldsLength(); i++ {
		if !instance.Fields(&field, i) {
			continue
		}
		name := string(field.FieldName())
		if _, exists := deployment.Fields[name]; exists {
			return LolaServiceInstanceDeployment{}, duplicateInstanceElement("field", name, specifier)
		}
		deployment.Fields[name] = LolaFieldInstanceDeployment{
			NumberOfSampleSlots:  optionalU16(field.NumberOfSampleSlots()),
			MaxSubscribers:       optionalU8(field.MaxSubscribers()),
			EnforceMaxSamples:    field.EnforceMaxSamples(),
			NumberOfTracingSlots: uint8(field.NumberOfIpcTracingSlots()),
		}
	}

	var method fb.MethodInstance
	for i := 0; i < instance.MethodsLength(); i++ {
		if !instance.Methods(&method, i) {
			continue
		}
		name := string(method.MethodName())
		if _, exists := deployment.Methods[name]; exists {
			return LolaServiceInstanceDeployment{}, duplicateInstanceElement("method", name, specifier)
		}
		deployment.Methods[name] = LolaMethodInstanceDeployment{
			QueueSize: optionalU8(method.QueueSize()),
		}
	}

	return deployment, nil
}

func duplicateInstanceElement(kind, name string, specifier InstanceSpecifier) error {
	return cfgerrors.
		Newf(cfgerrors.ErrorTypeSemantic, "%s is deployed twice within its mapping", kind).
		WithDetail(kind, name).
		WithDetail("instance_specifier", specifier.String())
}

// permissionMap reads at most two user-id lists, one per quality level. A
// level absent from the schema stays absent from the map; an empty list that
// is present yields an empty entry.
func permissionMap(permissions *fb.Permissions) map[QualityType][]uint32 {
	result := make(map[QualityType][]uint32)
	if permissions == nil {
		return result
	}

	tab := permissions.Table()
	if tab.Offset(4) != 0 {
		users := make([]uint32, permissions.QmLength())
		for i := range users {
			users[i] = permissions.Qm(i)
		}
		result[QualityTypeQM] = users
	}
	if tab.Offset(6) != 0 {
		users := make([]uint32, permissions.BLength())
		for i := range users {
			users[i] = permissions.B(i)
		}
		result[QualityTypeASILB] = users
	}
	return result
}

// globalConfiguration copies the process-wide settings, or returns defaults
// when the optional global block is absent.
func (t *translator) globalConfiguration() GlobalConfiguration {
	config := NewGlobalConfiguration()

	global := t.root.Global(nil)
	if global == nil {
		return config
	}

	config.ProcessAsilLevel = asilToQuality(global.AsilLevel())
	if id := global.ApplicationId(); id != 0 {
		config.ApplicationID = &id
	}

	if queueSize := global.QueueSize(nil); queueSize != nil {
		config.QmReceiverQueueSize = int32(queueSize.QmReceiver())
		config.BReceiverQueueSize = int32(queueSize.BReceiver())
		config.BSenderQueueSize = int32(queueSize.BSender())
	}

	// Shared-memory size calculation currently only supports simulation
	// mode, so the schema's shm_size_calc_mode field is deliberately not
	// read. Extend this once additional modes exist.
	config.ShmSizeCalcMode = ShmSizeCalcModeSimulation

	return config
}

// tracingConfiguration copies the tracing settings, or returns defaults
// (tracing disabled) when the optional tracing block is absent.
func (t *translator) tracingConfiguration() TracingConfiguration {
	config := NewTracingConfiguration()

	tracing := t.root.Tracing(nil)
	if tracing == nil {
		return config
	}

	config.Enabled = tracing.Enable()
	config.ApplicationInstanceID = string(tracing.ApplicationInstanceId())
	if path := tracing.TraceFilterConfigPath(); path != nil {
		config.TraceFilterConfigPath = string(path)
	}

	return config
}
