// Package host assembles the application services over the default
// adapters for the local machine.
package host

import (
	"go.uber.org/zap"

	"github.com/openkeg/openkeg/internal/adapters/outbound/config"
	"github.com/openkeg/openkeg/internal/adapters/outbound/formula"
	"github.com/openkeg/openkeg/internal/adapters/outbound/gitinfo"
	"github.com/openkeg/openkeg/internal/adapters/outbound/objfile"
	"github.com/openkeg/openkeg/internal/adapters/outbound/python"
	"github.com/openkeg/openkeg/internal/adapters/outbound/receipt"
	"github.com/openkeg/openkeg/internal/adapters/outbound/sdk"
	"github.com/openkeg/openkeg/internal/adapters/outbound/system"
	"github.com/openkeg/openkeg/internal/application"
	"github.com/openkeg/openkeg/internal/domain"
)

func CaveatsService(logger *zap.Logger) *application.CaveatsService {
	return application.NewCaveatsService(application.CaveatsDeps{
		ConfigLoader:  config.New(),
		FormulaLoader: formula.New(),
		Receipts:      receipt.New(),
		Executables:   system.NewLocator(),
		Services:      system.NewLaunchctl(),
		Multiplexer:   system.NewTmux(),
		Python: func(cfg domain.Config) domain.PythonProbe {
			return python.NewProbe(cfg.Prefix, logger)
		},
		Logger: logger,
	})
}

func AuditService(logger *zap.Logger) *application.AuditService {
	return application.NewAuditService(application.AuditDeps{
		ConfigLoader:  config.New(),
		FormulaLoader: formula.New(),
		Objects:       objfile.New(),
		GitInfo:       gitinfo.New(),
		Headers: func(cfg domain.Config) domain.HeaderIndex {
			return sdk.New(cfg.SDKPath)
		},
		Interpreter: func(cfg domain.Config) domain.InterpreterResolver {
			return python.NewResolver(cfg.OriginalPath)
		},
		Logger: logger,
	})
}

// Config loads the effective configuration from path, or from the default
// search locations when path is empty.
func Config(path string) (domain.Config, error) {
	return config.New().Load(path)
}
