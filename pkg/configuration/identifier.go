package configuration

import "fmt"

// ServiceIdentifier names a service contract: type name plus major and minor
// version. It is comparable and keys the service-type catalog; two service
// types that agree on all three components are the same contract.
type ServiceIdentifier struct {
	Name  string `json:"name"`
	Major uint32 `json:"major"`
	Minor uint32 `json:"minor"`
}

// MakeServiceIdentifier builds the identifier for a (name, version) pair.
func MakeServiceIdentifier(name string, major, minor uint32) ServiceIdentifier {
	return ServiceIdentifier{Name: name, Major: major, Minor: minor}
}

func (s ServiceIdentifier) String() string {
	return fmt.Sprintf("%s:%d.%d", s.Name, s.Major, s.Minor)
}

// MarshalText lets the identifier serve as a JSON map key.
func (s ServiceIdentifier) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
