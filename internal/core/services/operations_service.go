package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/daftarhq/daftar/internal/apperrors"
	"github.com/daftarhq/daftar/internal/core/domain"
	portsrepo "github.com/daftarhq/daftar/internal/core/ports/repositories"
	portssvc "github.com/daftarhq/daftar/internal/core/ports/services"
	"github.com/daftarhq/daftar/internal/utils/accounting"
	"github.com/daftarhq/daftar/pkg/config"
)

// operationsService implements the OperationsSvc interface.
type operationsService struct {
	BaseService
	entities portsrepo.EntityReader
	cfg      *config.Reporting
}

// OperationsServiceOption is a functional option for configuring the
// operations service.
type OperationsServiceOption func(*operationsService)

// WithOperationsConfig overrides the reporting configuration.
func WithOperationsConfig(cfg *config.Reporting) OperationsServiceOption {
	return func(s *operationsService) {
		s.cfg = cfg
	}
}

// NewOperationsService creates a new operations service with the provided options.
func NewOperationsService(entities portsrepo.EntityReader, options ...OperationsServiceOption) portssvc.OperationsSvc {
	svc := &operationsService{
		entities: entities,
		cfg:      config.Default(),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure operationsService implements the OperationsSvc interface
var _ portssvc.OperationsSvc = (*operationsService)(nil)

// DebtorCreditor is the four-bucket aging of receivables and payables over a
// period.
func (s *operationsService) DebtorCreditor(ctx context.Context, from, to time.Time) (*domain.AgingReport, error) {
	period := defaultPeriod(from, to)
	return s.agingReport(ctx, period, accounting.FourBucket)
}

// AgedBalances buckets all open balances from the beginning of history up to
// asOf. An unknown shape falls back to the three-bucket layout.
func (s *operationsService) AgedBalances(ctx context.Context, asOf time.Time, shape accounting.AgingShape) (*domain.AgingReport, error) {
	if asOf.IsZero() {
		asOf = time.Now().UTC().Truncate(24 * time.Hour)
	}
	period := domain.ReportPeriod{From: time.Time{}, To: asOf}
	return s.agingReport(ctx, period, shape)
}

// agingReport folds movements chronologically per entity and side, so
// settlements reduce the oldest open buckets first.
func (s *operationsService) agingReport(ctx context.Context, period domain.ReportPeriod, shape accounting.AgingShape) (*domain.AgingReport, error) {
	movements, err := s.entities.EntityMovements(ctx, period.From, period.To)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve entity movements",
			slog.String("to", period.To.Format(time.RFC3339)))
		return nil, fmt.Errorf("failed to retrieve entity movements: %w", err)
	}
	accounting.SortEntityMovementsAsc(movements)

	type entityKey struct {
		side     domain.MovementSide
		entityID string
	}
	schedules := make(map[entityKey]*accounting.AgingSchedule)
	names := make(map[entityKey]string)
	var order []entityKey
	for _, mv := range movements {
		key := entityKey{side: mv.Side, entityID: mv.EntityID}
		sched, ok := schedules[key]
		if !ok {
			sched = accounting.NewAgingSchedule(shape)
			schedules[key] = sched
			names[key] = mv.EntityName
			order = append(order, key)
		}
		age := int(period.To.Sub(mv.Date).Hours() / 24)
		if age < 0 {
			age = 0
		}
		sched.Apply(age, mv.Delta)
	}

	entityIDs := make([]string, 0, len(order))
	for _, key := range order {
		if key.entityID != "" {
			entityIDs = append(entityIDs, key.entityID)
		}
	}
	entityByID, err := s.entities.FindEntitiesByIDs(ctx, entityIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve entities for aging report")
		return nil, fmt.Errorf("failed to resolve entities: %w", err)
	}

	var debtors, creditors []domain.AgingRow
	var totals domain.AgingTotals
	for _, key := range order {
		sched := schedules[key]
		total := sched.Total()
		if total <= 0 {
			continue
		}
		row := domain.AgingRow{
			EntityID:   key.entityID,
			EntityName: names[key],
			Buckets:    sched.Buckets(),
			Total:      total,
		}
		if ent, ok := entityByID[key.entityID]; ok {
			row.EntityType = ent.Type
			if row.EntityName == "" {
				row.EntityName = ent.Name
			}
		}
		if key.side == domain.SideDebtor {
			debtors = append(debtors, row)
			totals.Debtors += total
		} else {
			creditors = append(creditors, row)
			totals.Creditors += total
		}
	}
	byTotalDesc := func(rows []domain.AgingRow) func(i, j int) bool {
		return func(i, j int) bool {
			if rows[i].Total != rows[j].Total {
				return rows[i].Total > rows[j].Total
			}
			return rows[i].EntityName < rows[j].EntityName
		}
	}
	sort.SliceStable(debtors, byTotalDesc(debtors))
	sort.SliceStable(creditors, byTotalDesc(creditors))

	shapeLabel := string(shape)
	if shape != accounting.FourBucket {
		shapeLabel = string(accounting.ThreeBucket)
	}
	s.LogInfo(ctx, "Aging report generated",
		slog.String("shape", shapeLabel),
		slog.Int("debtors", len(debtors)),
		slog.Int("creditors", len(creditors)))
	return &domain.AgingReport{
		Period:    period,
		Shape:     shapeLabel,
		Debtors:   debtors,
		Creditors: creditors,
		Totals:    totals,
	}, nil
}

// PersonRunningBalance is the receivable or payable ledger of one entity.
// Clients walk the receivable account; suppliers and payees walk payable
// accounts with the sign mirrored so a growing debt reads positive.
func (s *operationsService) PersonRunningBalance(ctx context.Context, entityID string, role domain.EntityRole, from, to time.Time) (*domain.PersonRunningBalanceReport, error) {
	if role != domain.RoleClient && role != domain.RoleSupplier && role != domain.RolePayee {
		return nil, fmt.Errorf("role %q: %w", role, apperrors.ErrValidation)
	}
	period := defaultPeriod(from, to)

	entity, err := s.entities.FindEntityByID(ctx, entityID)
	if err != nil {
		s.LogError(ctx, err, "Failed to look up entity", slog.String("entityID", entityID))
		return nil, fmt.Errorf("failed to look up entity: %w", err)
	}
	if entity == nil {
		return nil, fmt.Errorf("entity %s: %w", entityID, apperrors.ErrNotFound)
	}

	lines, err := s.entities.EntityLines(ctx, entityID, role, period.From, period.To)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve entity lines", slog.String("entityID", entityID))
		return nil, fmt.Errorf("failed to retrieve entity lines: %w", err)
	}
	accounting.SortPostedLines(lines)

	var running int64
	var rows []domain.PersonRunningBalanceRow
	for _, ln := range lines {
		var delta int64
		if role == domain.RoleClient {
			if ln.AccountCode != s.cfg.ReceivableAccountCode {
				continue
			}
			delta = ln.Debit - ln.Credit
		} else {
			if !strings.HasPrefix(ln.AccountCode, s.cfg.PayableAccountPrefix) {
				continue
			}
			delta = ln.Credit - ln.Debit
		}
		running += delta
		row := domain.PersonRunningBalanceRow{
			Date:           ln.Date,
			TransactionID:  ln.TransactionID,
			Reference:      ln.Reference,
			Description:    ln.Description,
			RunningBalance: running,
		}
		// Receivable growth is a debit effect; payable growth shows in the
		// credit column even though both read positive in the running balance.
		if role == domain.RoleClient {
			if delta > 0 {
				row.DebitEffect = delta
			} else if delta < 0 {
				row.CreditEffect = -delta
			}
		} else {
			if delta > 0 {
				row.CreditEffect = delta
			} else if delta < 0 {
				row.DebitEffect = -delta
			}
		}
		rows = append(rows, row)
	}

	s.LogInfo(ctx, "Person running balance generated",
		slog.String("entityID", entityID),
		slog.String("role", string(role)),
		slog.Int("rows", len(rows)),
		slog.Int64("closing", running))
	return &domain.PersonRunningBalanceReport{
		Period:         period,
		EntityID:       entity.EntityID,
		EntityName:     entity.Name,
		Role:           role,
		Rows:           rows,
		ClosingBalance: running,
	}, nil
}
