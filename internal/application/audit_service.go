package application

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/openkeg/openkeg/internal/domain"
	"github.com/openkeg/openkeg/internal/domain/cellar"
)

// AuditDeps wires the audit pipeline. Headers and Interpreter are built per
// call from the loaded config.
type AuditDeps struct {
	ConfigLoader  domain.ConfigLoader
	FormulaLoader domain.FormulaLoader
	Objects       domain.ObjectParser
	GitInfo       domain.GitInfo
	Headers       func(cfg domain.Config) domain.HeaderIndex
	Interpreter   func(cfg domain.Config) domain.InterpreterResolver
	Logger        *zap.Logger
	Now           func() time.Time
}

// AuditService runs the cellar health checks against an installed formula.
type AuditService struct {
	deps AuditDeps
}

func NewAuditService(deps AuditDeps) *AuditService {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &AuditService{deps: deps}
}

// collector is the Reporter that accumulates findings into a report.
type collector struct {
	findings []domain.Finding
	logger   *zap.Logger
}

func (c *collector) Report(f domain.Finding) {
	c.logger.Debug("finding", zap.String("check", f.Check), zap.String("title", f.Title))
	c.findings = append(c.findings, f)
}

// Audit returns the report for formulaPath. A blocking finding is recorded
// in report.Failure, not returned as an error.
func (s *AuditService) Audit(configPath, formulaPath string) (*domain.AuditReport, error) {
	cfg, err := s.deps.ConfigLoader.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	f, err := s.deps.FormulaLoader.Load(formulaPath, cfg.Layout())
	if err != nil {
		return nil, fmt.Errorf("loading formula: %w", err)
	}

	logger := s.deps.Logger.With(zap.String("formula", f.Name))
	deps := cellar.Deps{
		Config:  cfg,
		Objects: s.deps.Objects,
		Logger:  logger,
	}
	if s.deps.Headers != nil {
		deps.Headers = s.deps.Headers(cfg)
	}
	if s.deps.Interpreter != nil {
		deps.Interpreter = s.deps.Interpreter(cfg)
	}

	report := &domain.AuditReport{
		Formula:   f.DisplayName(),
		Timestamp: s.deps.Now().UTC(),
		Findings:  []domain.Finding{},
	}
	if keg, ok := domain.ResolveKeg(f.KegCandidates()); ok {
		report.Keg = keg.Path
	}
	if s.deps.GitInfo != nil && s.deps.GitInfo.IsGitRepo(formulaPath) {
		if hash, err := s.deps.GitInfo.CommitHash(formulaPath); err == nil {
			report.TapRevision = hash
		}
	}

	r := &collector{logger: logger}
	err = cellar.New(deps).AuditInstalled(f, r)
	report.Findings = append(report.Findings, r.findings...)

	var failure *domain.AuditFailure
	switch {
	case errors.As(err, &failure):
		report.Failure = &failure.Finding
	case err != nil:
		return nil, fmt.Errorf("auditing %s: %w", f.Name, err)
	}
	return report, nil
}
