package configuration

// Transport bindings are tagged unions: a deployment carries exactly one
// binding variant, and the nil interface is the explicit "no binding yet"
// state that can never leave translation. Today the only variant is the
// shared-memory ("LoLa") binding; a future network binding would add a second
// implementation of the marker interfaces.

// ServiceTypeBindingInformation is the binding variant of a service type
// deployment.
type ServiceTypeBindingInformation interface {
	isServiceTypeBinding()
}

// LolaServiceTypeDeployment is the shared-memory binding of a service type:
// the numeric service id and the name-to-id mappings of its events, fields
// and methods. Each name is unique within its mapping.
type LolaServiceTypeDeployment struct {
	ServiceID uint16           `json:"service_id"`
	Events    map[string]uint8 `json:"events,omitempty"`
	Fields    map[string]uint8 `json:"fields,omitempty"`
	Methods   map[string]uint8 `json:"methods,omitempty"`
}

func (LolaServiceTypeDeployment) isServiceTypeBinding() {}

// ServiceTypeDeployment maps a service contract to its transport binding.
type ServiceTypeDeployment struct {
	Binding ServiceTypeBindingInformation `json:"binding"`
}

// ServiceInstanceBindingInformation is the binding variant of a service
// instance deployment.
type ServiceInstanceBindingInformation interface {
	isServiceInstanceBinding()
}

// LolaEventInstanceDeployment carries the per-instance deployment attributes
// of one event. Numeric fields follow the schema's zero-sentinel convention
// and are nil when not configured.
type LolaEventInstanceDeployment struct {
	NumberOfSampleSlots *uint16 `json:"number_of_sample_slots,omitempty"`
	MaxSubscribers      *uint8  `json:"max_subscribers,omitempty"`
	// MaxConcurrentAllocations is part of the deployment model but has no
	// counterpart in the current schema; the loader never populates it.
	MaxConcurrentAllocations *uint8 `json:"max_concurrent_allocations,omitempty"`
	EnforceMaxSamples        bool   `json:"enforce_max_samples"`
	NumberOfTracingSlots     uint8  `json:"number_of_tracing_slots"`
}

// LolaFieldInstanceDeployment carries the same attributes for a field.
type LolaFieldInstanceDeployment = LolaEventInstanceDeployment

// LolaMethodInstanceDeployment carries the per-instance deployment
// attributes of one method.
type LolaMethodInstanceDeployment struct {
	QueueSize *uint8 `json:"queue_size,omitempty"`
}

// LolaServiceInstanceDeployment is the shared-memory binding instance record
// of one service instance.
type LolaServiceInstanceDeployment struct {
	InstanceID *uint16 `json:"instance_id,omitempty"`

	Events  map[string]LolaEventInstanceDeployment  `json:"events,omitempty"`
	Fields  map[string]LolaFieldInstanceDeployment  `json:"fields,omitempty"`
	Methods map[string]LolaMethodInstanceDeployment `json:"methods,omitempty"`

	// StrictPermissions selects the strict permission-check strategy; the
	// lenient strategy applies otherwise.
	StrictPermissions bool                     `json:"strict_permissions"`
	AllowedConsumer   map[QualityType][]uint32 `json:"allowed_consumer,omitempty"`
	AllowedProvider   map[QualityType][]uint32 `json:"allowed_provider,omitempty"`

	SharedMemorySize       *uint64 `json:"shared_memory_size,omitempty"`
	ControlAsilBMemorySize *uint64 `json:"control_asil_b_memory_size,omitempty"`
	ControlQmMemorySize    *uint64 `json:"control_qm_memory_size,omitempty"`
}

func (LolaServiceInstanceDeployment) isServiceInstanceBinding() {}

// ServiceInstanceDeployment maps an instance specifier to its service
// contract, quality level and transport binding instance.
type ServiceInstanceDeployment struct {
	Service   ServiceIdentifier                 `json:"service"`
	AsilLevel QualityType                       `json:"asil_level"`
	Specifier InstanceSpecifier                 `json:"specifier"`
	Binding   ServiceInstanceBindingInformation `json:"binding"`
}
