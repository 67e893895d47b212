package configuration

import "github.com/lola-ipc/comcfg/pkg/cfgerrors"

// QualityType is the ASIL (Automotive Safety Integrity Level) tag attached to
// a process or service instance. QM carries no safety requirement, B the
// higher integrity level.
type QualityType uint8

const (
	QualityTypeInvalid QualityType = iota
	QualityTypeQM
	QualityTypeASILB
)

func (q QualityType) String() string {
	switch q {
	case QualityTypeQM:
		return "QM"
	case QualityTypeASILB:
		return "B"
	default:
		return "invalid"
	}
}

// MarshalText renders the quality level for JSON output, including as a map
// key in permission maps.
func (q QualityType) MarshalText() ([]byte, error) {
	if q != QualityTypeQM && q != QualityTypeASILB {
		return nil, cfgerrors.Newf(cfgerrors.ErrorTypeInternal, "cannot marshal invalid quality type %d", uint8(q))
	}
	return []byte(q.String()), nil
}
