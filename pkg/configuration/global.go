package configuration

// ShmSizeCalcMode selects how shared-memory segment sizes are determined.
type ShmSizeCalcMode uint8

const (
	ShmSizeCalcModeEstimation ShmSizeCalcMode = iota
	ShmSizeCalcModeSimulation
)

func (m ShmSizeCalcMode) String() string {
	if m == ShmSizeCalcModeSimulation {
		return "simulation"
	}
	return "estimation"
}

func (m ShmSizeCalcMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Message-queue size defaults applied when the global block or its
// queue-size record is absent.
const (
	DefaultReceiverQueueSize int32 = 10
	DefaultSenderQueueSize   int32 = 20
)

// GlobalConfiguration holds the process-wide settings of the middleware.
type GlobalConfiguration struct {
	ProcessAsilLevel QualityType `json:"process_asil_level"`
	ApplicationID    *uint16     `json:"application_id,omitempty"`

	QmReceiverQueueSize int32 `json:"qm_receiver_queue_size"`
	BReceiverQueueSize  int32 `json:"b_receiver_queue_size"`
	BSenderQueueSize    int32 `json:"b_sender_queue_size"`

	ShmSizeCalcMode ShmSizeCalcMode `json:"shm_size_calc_mode"`
}

// NewGlobalConfiguration returns the defaults used when the configuration
// file carries no global block.
func NewGlobalConfiguration() GlobalConfiguration {
	return GlobalConfiguration{
		ProcessAsilLevel:    QualityTypeQM,
		QmReceiverQueueSize: DefaultReceiverQueueSize,
		BReceiverQueueSize:  DefaultReceiverQueueSize,
		BSenderQueueSize:    DefaultSenderQueueSize,
		ShmSizeCalcMode:     ShmSizeCalcModeSimulation,
	}
}
