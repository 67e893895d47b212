package configuration

// DefaultTraceFilterConfigPath is used when the tracing block does not name
// a trace filter configuration file.
const DefaultTraceFilterConfigPath = "./etc/mw_com_trace_filter.json"

// TracingConfiguration holds the IPC tracing settings of the process.
type TracingConfiguration struct {
	Enabled               bool   `json:"enabled"`
	ApplicationInstanceID string `json:"application_instance_id,omitempty"`
	TraceFilterConfigPath string `json:"trace_filter_config_path"`
}

// NewTracingConfiguration returns the defaults used when the configuration
// file carries no tracing block: tracing disabled, default filter path.
func NewTracingConfiguration() TracingConfiguration {
	return TracingConfiguration{
		TraceFilterConfigPath: DefaultTraceFilterConfigPath,
	}
}
