// Package configuration materializes the immutable in-memory configuration
// model of the middleware from a binary comconfig file. See Load.
package configuration

// ServiceTypeDeployments is the service-type catalog, keyed by service
// contract.
type ServiceTypeDeployments map[ServiceIdentifier]ServiceTypeDeployment

// ServiceInstanceDeployments is the service-instance catalog, keyed by
// instance specifier.
type ServiceInstanceDeployments map[InstanceSpecifier]ServiceInstanceDeployment

// Configuration is the aggregate of everything the configuration file
// defines. It is created once per Load, fully validated before it is
// returned, and treated as immutable by all consumers.
type Configuration struct {
	ServiceTypes     ServiceTypeDeployments     `json:"service_types"`
	ServiceInstances ServiceInstanceDeployments `json:"service_instances"`
	Global           GlobalConfiguration        `json:"global"`
	Tracing          TracingConfiguration       `json:"tracing"`
}
