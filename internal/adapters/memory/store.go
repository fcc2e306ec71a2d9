// Package memory is an in-memory implementation of the repository ports,
// used by tests and by the report CLI. It keeps the same ordering contracts
// the SQL adapters honour: page queries sort by date, creation time, then
// identity.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/daftarhq/daftar/internal/apperrors"
	"github.com/daftarhq/daftar/internal/core/domain"
	portsrepo "github.com/daftarhq/daftar/internal/core/ports/repositories"
	"github.com/daftarhq/daftar/internal/utils/accounting"
	"github.com/daftarhq/daftar/pkg/config"
)

// Store holds every aggregate behind one mutex. It implements all reader
// ports plus the fee write ports.
type Store struct {
	mu  sync.RWMutex
	cfg *config.Reporting

	accounts     []domain.Account
	transactions []domain.Transaction
	entities     map[string]domain.Entity
	links        []domain.EntityLink
	items        []domain.InventoryItem
	movements    []domain.InventoryMovement
	invoices     []domain.Invoice
	invoiceItems []domain.InvoiceItem
	methods      []domain.PaymentMethod
	rules        []domain.FeeRule
	applications map[string]domain.FeeApplication

	clock func() time.Time
}

// NewStore creates an empty store.
func NewStore(cfg *config.Reporting) *Store {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Store{
		cfg:          cfg,
		entities:     make(map[string]domain.Entity),
		applications: make(map[string]domain.FeeApplication),
		clock:        func() time.Time { return time.Now().UTC() },
	}
}

// Provider bundles the store as every repository the service container needs.
func (s *Store) Provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:     s,
		TransactionRepo: s,
		EntityRepo:      s,
		InventoryRepo:   s,
		InvoiceRepo:     s,
		FeeRepo:         s,
	}
}

var (
	_ portsrepo.AccountReader     = (*Store)(nil)
	_ portsrepo.TransactionReader = (*Store)(nil)
	_ portsrepo.EntityReader      = (*Store)(nil)
	_ portsrepo.InventoryReader   = (*Store)(nil)
	_ portsrepo.InvoiceReader     = (*Store)(nil)
	_ portsrepo.FeeRepository     = (*Store)(nil)
)

// inRange reports whether t falls inside the inclusive [from, to] window.
// A zero bound is open on that side.
func inRange(t, from, to time.Time) bool {
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && t.After(to) {
		return false
	}
	return true
}

// AddAccount registers an account. A missing ID is generated.
func (s *Store) AddAccount(acc domain.Account) domain.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	if acc.AccountID == "" {
		acc.AccountID = uuid.NewString()
	}
	if acc.CreatedAt.IsZero() {
		acc.CreatedAt = s.clock()
	}
	s.accounts = append(s.accounts, acc)
	return acc
}

// AddEntity registers a counterparty.
func (s *Store) AddEntity(ent domain.Entity) domain.Entity {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ent.EntityID == "" {
		ent.EntityID = uuid.NewString()
	}
	if ent.CreatedAt.IsZero() {
		ent.CreatedAt = s.clock()
	}
	s.entities[ent.EntityID] = ent
	return ent
}

// AddTransaction stores a transaction and denormalises account code and name
// onto its lines, the shape reports read.
func (s *Store) AddTransaction(txn domain.Transaction) domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	if txn.TransactionID == "" {
		txn.TransactionID = uuid.NewString()
	}
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = s.clock()
	}
	for i := range txn.Lines {
		ln := &txn.Lines[i]
		if ln.LineID == "" {
			ln.LineID = uuid.NewString()
		}
		ln.TransactionID = txn.TransactionID
		if ln.AccountID == "" || ln.AccountCode == "" || ln.AccountName == "" {
			for _, acc := range s.accounts {
				if acc.AccountID == ln.AccountID || acc.Code == ln.AccountCode {
					ln.AccountID = acc.AccountID
					ln.AccountCode = acc.Code
					ln.AccountName = acc.Name
					break
				}
			}
		}
	}
	s.transactions = append(s.transactions, txn)
	return txn
}

// LinkEntity ties a transaction to a counterparty in a role.
func (s *Store) LinkEntity(transactionID, entityID string, role domain.EntityRole) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.links = append(s.links, domain.EntityLink{
		TransactionID: transactionID,
		EntityID:      entityID,
		Role:          role,
	})
}

// AddItem registers an inventory item.
func (s *Store) AddItem(item domain.InventoryItem) domain.InventoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	if item.ItemID == "" {
		item.ItemID = uuid.NewString()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = s.clock()
	}
	s.items = append(s.items, item)
	return item
}

// AddMovement records a stock movement.
func (s *Store) AddMovement(mv domain.InventoryMovement) domain.InventoryMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	if mv.MovementID == "" {
		mv.MovementID = uuid.NewString()
	}
	if mv.CreatedAt.IsZero() {
		mv.CreatedAt = s.clock()
	}
	s.movements = append(s.movements, mv)
	return mv
}

// AddInvoice stores an invoice with its item lines.
func (s *Store) AddInvoice(inv domain.Invoice, items []domain.InvoiceItem) domain.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	if inv.InvoiceID == "" {
		inv.InvoiceID = uuid.NewString()
	}
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = s.clock()
	}
	s.invoices = append(s.invoices, inv)
	for _, item := range items {
		if item.ItemID == "" {
			item.ItemID = uuid.NewString()
		}
		item.InvoiceID = inv.InvoiceID
		s.invoiceItems = append(s.invoiceItems, item)
	}
	return inv
}

// AddPaymentMethod registers a payment method.
func (s *Store) AddPaymentMethod(m domain.PaymentMethod) domain.PaymentMethod {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.MethodID == "" {
		m.MethodID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = s.clock()
	}
	s.methods = append(s.methods, m)
	return m
}

// AddApplication records a fee application snapshot.
func (s *Store) AddApplication(app domain.FeeApplication) domain.FeeApplication {
	s.mu.Lock()
	defer s.mu.Unlock()
	if app.ApplicationID == "" {
		app.ApplicationID = uuid.NewString()
	}
	if app.CreatedAt.IsZero() {
		app.CreatedAt = s.clock()
	}
	s.applications[app.ApplicationID] = app
	return app
}

// ListAccounts returns every account ordered by code.
func (s *Store) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Account, len(s.accounts))
	copy(out, s.accounts)
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

// FindAccountByCode returns (nil, nil) for an unknown code.
func (s *Store) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, acc := range s.accounts {
		if acc.Code == code {
			found := acc
			return &found, nil
		}
	}
	return nil, nil
}

func (s *Store) turnovers(from, to time.Time) []domain.AccountTurnover {
	byAccount := make(map[string]*domain.AccountTurnover)
	for _, txn := range s.transactions {
		if !inRange(txn.Date, from, to) {
			continue
		}
		for _, ln := range txn.Lines {
			t, ok := byAccount[ln.AccountID]
			if !ok {
				t = &domain.AccountTurnover{
					AccountID:   ln.AccountID,
					AccountCode: ln.AccountCode,
					AccountName: ln.AccountName,
				}
				byAccount[ln.AccountID] = t
			}
			t.Debit += ln.Debit
			t.Credit += ln.Credit
		}
	}
	out := make([]domain.AccountTurnover, 0, len(byAccount))
	for _, t := range byAccount {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountCode < out[j].AccountCode })
	return out
}

// TurnoversBetween aggregates debit/credit per account over the range.
func (s *Store) TurnoversBetween(ctx context.Context, from, to time.Time) ([]domain.AccountTurnover, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.turnovers(from, to), nil
}

// TurnoversUpTo aggregates all history up to and including asOf.
func (s *Store) TurnoversUpTo(ctx context.Context, asOf time.Time) ([]domain.AccountTurnover, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.turnovers(time.Time{}, asOf), nil
}

// TurnoverForAccountBefore sums one account's activity strictly before the
// given date.
func (s *Store) TurnoverForAccountBefore(ctx context.Context, accountID string, before time.Time) (int64, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var debit, credit int64
	for _, txn := range s.transactions {
		if !txn.Date.Before(before) {
			continue
		}
		for _, ln := range txn.Lines {
			if ln.AccountID == accountID {
				debit += ln.Debit
				credit += ln.Credit
			}
		}
	}
	return debit, credit, nil
}

// ListTransactionsBetween returns transactions in chronological order.
func (s *Store) ListTransactionsBetween(ctx context.Context, from, to time.Time) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Transaction
	for _, txn := range s.transactions {
		if inRange(txn.Date, from, to) {
			out = append(out, txn)
		}
	}
	accounting.SortTransactionsAsc(out)
	return out, nil
}

// JournalPage returns one page of transactions, newest first, and the total
// count in the range.
func (s *Store) JournalPage(ctx context.Context, from, to time.Time, page, pageSize int) (int, []domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matched []domain.Transaction
	for _, txn := range s.transactions {
		if inRange(txn.Date, from, to) {
			matched = append(matched, txn)
		}
	}
	accounting.SortTransactionsAsc(matched)
	for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
		matched[i], matched[j] = matched[j], matched[i]
	}
	start, end := sliceWindow(len(matched), page, pageSize)
	return len(matched), matched[start:end], nil
}

// AccountLines returns every posted line of one account in the range,
// chronologically ascending.
func (s *Store) AccountLines(ctx context.Context, accountID string, from, to time.Time) ([]domain.PostedLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.PostedLine
	for _, txn := range s.transactions {
		if !inRange(txn.Date, from, to) {
			continue
		}
		for _, ln := range txn.Lines {
			if ln.AccountID != accountID {
				continue
			}
			out = append(out, postedLine(txn, ln))
		}
	}
	accounting.SortPostedLines(out)
	return out, nil
}

// FindEntityByID returns (nil, nil) for an unknown entity.
func (s *Store) FindEntityByID(ctx context.Context, entityID string) (*domain.Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if ent, ok := s.entities[entityID]; ok {
		return &ent, nil
	}
	return nil, nil
}

// FindEntitiesByIDs returns the subset of entities that exist.
func (s *Store) FindEntitiesByIDs(ctx context.Context, entityIDs []string) (map[string]domain.Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]domain.Entity, len(entityIDs))
	for _, id := range entityIDs {
		if ent, ok := s.entities[id]; ok {
			out[id] = ent
		}
	}
	return out, nil
}

// EntityMovements derives receivable and payable deltas from linked
// transactions: client links walk the receivable account as debtor rows,
// supplier and payee links walk payable accounts as creditor rows.
func (s *Store) EntityMovements(ctx context.Context, from, to time.Time) ([]domain.EntityMovement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	txnByID := make(map[string]domain.Transaction, len(s.transactions))
	for _, txn := range s.transactions {
		txnByID[txn.TransactionID] = txn
	}

	var out []domain.EntityMovement
	for _, link := range s.links {
		txn, ok := txnByID[link.TransactionID]
		if !ok || !inRange(txn.Date, from, to) {
			continue
		}
		var side domain.MovementSide
		var delta int64
		switch link.Role {
		case domain.RoleClient:
			side = domain.SideDebtor
			for _, ln := range txn.Lines {
				if ln.AccountCode == s.cfg.ReceivableAccountCode {
					delta += ln.Debit - ln.Credit
				}
			}
		case domain.RoleSupplier, domain.RolePayee:
			side = domain.SideCreditor
			for _, ln := range txn.Lines {
				if strings.HasPrefix(ln.AccountCode, s.cfg.PayableAccountPrefix) {
					delta += ln.Credit - ln.Debit
				}
			}
		default:
			continue
		}
		if delta == 0 {
			continue
		}
		mv := domain.EntityMovement{
			MovementID: txn.TransactionID,
			Date:       txn.Date,
			Side:       side,
			EntityID:   link.EntityID,
			Delta:      delta,
			CreatedAt:  txn.CreatedAt,
		}
		if ent, ok := s.entities[link.EntityID]; ok {
			mv.EntityName = ent.Name
		}
		out = append(out, mv)
	}
	accounting.SortEntityMovementsAsc(out)
	return out, nil
}

// EntityLines returns the posted lines of transactions linked to the entity
// in the given role, chronologically ascending.
func (s *Store) EntityLines(ctx context.Context, entityID string, role domain.EntityRole, from, to time.Time) ([]domain.PostedLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	linked := make(map[string]bool)
	for _, link := range s.links {
		if link.EntityID == entityID && link.Role == role {
			linked[link.TransactionID] = true
		}
	}
	var out []domain.PostedLine
	for _, txn := range s.transactions {
		if !linked[txn.TransactionID] || !inRange(txn.Date, from, to) {
			continue
		}
		for _, ln := range txn.Lines {
			out = append(out, postedLine(txn, ln))
		}
	}
	accounting.SortPostedLines(out)
	return out, nil
}

// ListItems returns every inventory item ordered by name.
func (s *Store) ListItems(ctx context.Context) ([]domain.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.InventoryItem, len(s.items))
	copy(out, s.items)
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

func (s *Store) itemByID(itemID string) domain.InventoryItem {
	for _, item := range s.items {
		if item.ItemID == itemID {
			return item
		}
	}
	return domain.InventoryItem{ItemID: itemID}
}

// MovementsUpTo returns all movements up to and including asOf,
// chronologically ascending.
func (s *Store) MovementsUpTo(ctx context.Context, asOf time.Time) ([]domain.ItemMovement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.ItemMovement
	for _, mv := range s.movements {
		if !asOf.IsZero() && mv.Date.After(asOf) {
			continue
		}
		out = append(out, domain.ItemMovement{Movement: mv, Item: s.itemByID(mv.ItemID)})
	}
	accounting.SortMovementsAsc(out)
	return out, nil
}

// MovementsPage returns one page of movements in the range, newest first,
// optionally restricted to one item.
func (s *Store) MovementsPage(ctx context.Context, from, to time.Time, page, pageSize int, itemID string) (int, []domain.ItemMovement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matched []domain.ItemMovement
	for _, mv := range s.movements {
		if itemID != "" && mv.ItemID != itemID {
			continue
		}
		if !inRange(mv.Date, from, to) {
			continue
		}
		matched = append(matched, domain.ItemMovement{Movement: mv, Item: s.itemByID(mv.ItemID)})
	}
	accounting.SortMovementsAsc(matched)
	for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
		matched[i], matched[j] = matched[j], matched[i]
	}
	start, end := sliceWindow(len(matched), page, pageSize)
	return len(matched), matched[start:end], nil
}

// InvoicesBetween returns invoices of one kind issued in the range.
func (s *Store) InvoicesBetween(ctx context.Context, from, to time.Time, kind domain.InvoiceKind) ([]domain.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Invoice
	for _, inv := range s.invoices {
		if inv.Kind == kind && inRange(inv.IssueDate, from, to) {
			out = append(out, inv)
		}
	}
	return out, nil
}

// InvoiceItemsBetween joins item lines to invoice headers of one kind issued
// in the range.
func (s *Store) InvoiceItemsBetween(ctx context.Context, from, to time.Time, kind domain.InvoiceKind) ([]domain.InvoiceItemRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	invByID := make(map[string]domain.Invoice, len(s.invoices))
	for _, inv := range s.invoices {
		if inv.Kind == kind && inRange(inv.IssueDate, from, to) {
			invByID[inv.InvoiceID] = inv
		}
	}
	var out []domain.InvoiceItemRow
	for _, item := range s.invoiceItems {
		if inv, ok := invByID[item.InvoiceID]; ok {
			out = append(out, domain.InvoiceItemRow{Item: item, Invoice: inv})
		}
	}
	return out, nil
}

// FindMethodByKey returns (nil, nil) for an unknown key.
func (s *Store) FindMethodByKey(ctx context.Context, key string) (*domain.PaymentMethod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.methods {
		if m.Key == key {
			found := m
			return &found, nil
		}
	}
	return nil, nil
}

// FindBankByName matches entities of type bank by name, case-insensitive.
func (s *Store) FindBankByName(ctx context.Context, name string) (*domain.Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ent := range s.entities {
		if ent.Type == "bank" && strings.EqualFold(ent.Name, strings.TrimSpace(name)) {
			found := ent
			return &found, nil
		}
	}
	return nil, nil
}

// ListRules returns every rule version for a method+bank pair.
func (s *Store) ListRules(ctx context.Context, methodID, bankID string) ([]domain.FeeRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.FeeRule
	for _, rule := range s.rules {
		if rule.MethodID == methodID && rule.BankID == bankID {
			out = append(out, rule)
		}
	}
	return out, nil
}

// SaveRule upserts one rule version by its ID.
func (s *Store) SaveRule(ctx context.Context, rule domain.FeeRule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rules {
		if s.rules[i].RuleID == rule.RuleID {
			s.rules[i] = rule
			return nil
		}
	}
	s.rules = append(s.rules, rule)
	return nil
}

// ListPendingApplications returns the PENDING snapshots of a method+bank
// pair, oldest first.
func (s *Store) ListPendingApplications(ctx context.Context, methodID, bankID string) ([]domain.FeeApplication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.FeeApplication
	for _, app := range s.applications {
		if app.Status == domain.FeePending && app.MethodID == methodID && app.BankID == bankID {
			out = append(out, app)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ApplicationID < out[j].ApplicationID
	})
	return out, nil
}

// UpdateApplications replaces the given snapshots as one batch. Any unknown
// snapshot fails the whole batch before a single write happens.
func (s *Store) UpdateApplications(ctx context.Context, apps []domain.FeeApplication) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, app := range apps {
		if _, ok := s.applications[app.ApplicationID]; !ok {
			return fmt.Errorf("fee application %s: %w", app.ApplicationID, apperrors.ErrNotFound)
		}
	}
	for _, app := range apps {
		s.applications[app.ApplicationID] = app
	}
	return nil
}

func postedLine(txn domain.Transaction, ln domain.TransactionLine) domain.PostedLine {
	return domain.PostedLine{
		Date:          txn.Date,
		TransactionID: txn.TransactionID,
		Reference:     txn.Reference,
		Description:   txn.Description,
		LineID:        ln.LineID,
		AccountID:     ln.AccountID,
		AccountCode:   ln.AccountCode,
		Debit:         ln.Debit,
		Credit:        ln.Credit,
		Note:          ln.Note,
		CreatedAt:     txn.CreatedAt,
	}
}

func sliceWindow(total, page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = total
		if pageSize < 1 {
			pageSize = 1
		}
	}
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return start, end
}
