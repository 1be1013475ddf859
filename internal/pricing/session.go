package pricing

import (
	"fmt"
	"sync"
	"time"

	"alc-pricing/internal/config"
	"alc-pricing/internal/model"
)

// Session owns one instance of each calculator built from a config snapshot.
// Composed pipelines (Quote, Replay) are serialized; the calculators
// themselves are individually safe for concurrent use.
type Session struct {
	mu sync.Mutex

	market    *model.Market
	formula   *model.FormulaEngine
	guard     *model.FairnessGuard
	capacitor *model.Capacitor

	now func() time.Time
}

func NewSession(cfg *config.Config) (*Session, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	market, err := model.NewMarket(cfg.Market.ToModelParams())
	if err != nil {
		return nil, fmt.Errorf("market: %w", err)
	}
	guard, err := model.NewFairnessGuard(cfg.Fairness.ToModelParams())
	if err != nil {
		return nil, fmt.Errorf("fairness guard: %w", err)
	}
	capacitor, err := model.NewCapacitor(cfg.Capacitor.ToModelParams())
	if err != nil {
		return nil, fmt.Errorf("capacitor: %w", err)
	}
	return &Session{
		market:    market,
		formula:   model.NewFormulaEngine(),
		guard:     guard,
		capacitor: capacitor,
		now:       time.Now,
	}, nil
}

func (s *Session) Market() *model.Market { return s.market }
func (s *Session) Formula() *model.FormulaEngine { return s.formula }
func (s *Session) Guard() *model.FairnessGuard { return s.guard }
func (s *Session) Capacitor() *model.Capacitor { return s.capacitor }
