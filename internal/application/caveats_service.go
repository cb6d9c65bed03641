package application

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/openkeg/openkeg/internal/domain"
	"github.com/openkeg/openkeg/internal/domain/caveats"
)

// CaveatsDeps wires the caveats pipeline. Python is built per call because
// its probes depend on the configured prefix.
type CaveatsDeps struct {
	ConfigLoader  domain.ConfigLoader
	FormulaLoader domain.FormulaLoader
	Receipts      domain.ReceiptReader
	Executables   domain.ExecutableLocator
	Services      domain.ServiceManager
	Multiplexer   domain.MultiplexerDetector
	Python        func(cfg domain.Config) domain.PythonProbe
	Logger        *zap.Logger
}

// CaveatsService orchestrates: load config → load formula → compose caveats.
type CaveatsService struct {
	deps CaveatsDeps
}

func NewCaveatsService(deps CaveatsDeps) *CaveatsService {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &CaveatsService{deps: deps}
}

func (s *CaveatsService) Caveats(configPath, formulaPath string) (*domain.CaveatsReport, error) {
	cfg, err := s.deps.ConfigLoader.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	f, err := s.deps.FormulaLoader.Load(formulaPath, cfg.Layout())
	if err != nil {
		return nil, fmt.Errorf("loading formula: %w", err)
	}

	var probe domain.PythonProbe
	if s.deps.Python != nil {
		probe = s.deps.Python(cfg)
	}

	c := caveats.New(f, caveats.Deps{
		Config:      cfg,
		Receipts:    s.deps.Receipts,
		Executables: s.deps.Executables,
		Services:    s.deps.Services,
		Multiplexer: s.deps.Multiplexer,
		Python:      probe,
		Logger:      s.deps.Logger.With(zap.String("formula", f.Name)),
	})

	text, err := c.Text()
	if err != nil {
		return nil, err
	}
	s.deps.Logger.Debug("caveats composed", zap.String("formula", f.Name), zap.Int("bytes", len(text)))

	return &domain.CaveatsReport{
		Formula: f.DisplayName(),
		Caveats: text,
		Empty:   text == "",
	}, nil
}
