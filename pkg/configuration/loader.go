package configuration

import (
	"go.uber.org/zap"

	"github.com/lola-ipc/comcfg/pkg/cfgerrors"
	"github.com/lola-ipc/comcfg/pkg/logger"
	"github.com/lola-ipc/comcfg/pkg/mmap"
	"github.com/lola-ipc/comcfg/pkg/schema"
)

// Load builds the configuration from the binary file at path.
//
// The file is memory-mapped, structurally verified and translated in one
// synchronous pass; the mapping is released on every exit path before Load
// returns, and no part of the result references the mapped bytes. On any
// violation, I/O, structural or semantic, Load returns a *cfgerrors.Error
// identifying the offending path or field; a partially built configuration
// is never returned.
func Load(path string) (*Configuration, error) {
	return LoadWithLogger(path, logger.Get())
}

// LoadWithLogger is Load with an injected logger.
func LoadWithLogger(path string, log *zap.Logger) (*Configuration, error) {
	region, err := mmap.Open(path)
	if err != nil {
		return nil, cfgerrors.
			Wrap(err, cfgerrors.ErrorTypeIO, "failed to map configuration file").
			WithDetail("path", path)
	}
	defer region.Close()

	root, err := schema.VerifiedRoot(region.Bytes())
	if err != nil {
		return nil, cfgerrors.
			Wrap(err, cfgerrors.ErrorTypeSchema, "configuration buffer failed verification").
			WithDetail("path", path)
	}

	t := &translator{root: root, log: log.With(zap.String("path", path))}

	serviceTypes, err := t.serviceTypes()
	if err != nil {
		return nil, err
	}
	serviceInstances, err := t.serviceInstances()
	if err != nil {
		return nil, err
	}

	config := &Configuration{
		ServiceTypes:     serviceTypes,
		ServiceInstances: serviceInstances,
		Global:           t.globalConfiguration(),
		Tracing:          t.tracingConfiguration(),
	}

	t.log.Info("configuration loaded",
		zap.Int("service_types", len(config.ServiceTypes)),
		zap.Int("service_instances", len(config.ServiceInstances)),
		zap.Bool("tracing_enabled", config.Tracing.Enabled))

	return config, nil
}

// MustLoad is the middleware-startup entry point: a process must not come up
// on a missing or invalid configuration, so any load failure is logged and
// terminates the process.
func MustLoad(path string) *Configuration {
	config, err := Load(path)
	if err != nil {
		logger.Fatal("cannot load configuration",
			zap.String("path", path),
			zap.Error(err))
	}
	return config
}
