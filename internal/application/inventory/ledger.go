// Package inventory registers kits and keeps their provenance history.
package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	appaudit "github.com/samarth/backend/internal/application/audit"
	"github.com/samarth/backend/internal/application/uow"
	"github.com/samarth/backend/internal/domain/audit"
	"github.com/samarth/backend/internal/domain/identity"
	"github.com/samarth/backend/internal/domain/inventory"
	"github.com/samarth/backend/internal/domain/shared"
	"github.com/samarth/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// MsgExportLogged is returned once an export has been audited
const MsgExportLogged = "Logged"

// Ledger creates and deletes kits. Every mutation writes the kit, its
// provenance and its audit entry in one unit of work.
type Ledger struct {
	items        inventory.ItemRepository
	transactions inventory.TransactionRepository
	txs          uow.TransactionScope
	audit        *appaudit.Recorder
	logger       *zap.Logger
}

// NewLedger creates a new Ledger
func NewLedger(
	items inventory.ItemRepository,
	transactions inventory.TransactionRepository,
	txs uow.TransactionScope,
	recorder *appaudit.Recorder,
	logger *zap.Logger,
) *Ledger {
	return &Ledger{
		items:        items,
		transactions: transactions,
		txs:          txs,
		audit:        recorder,
		logger:       logger,
	}
}

// CreateItem registers a kit with its initial allocation from the vendor.
// Uniqueness is left to the database; a violation writes nothing.
func (l *Ledger) CreateItem(ctx context.Context, req CreateItemRequest, actor *identity.User) (*ItemResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "inventory", "create_item",
		attribute.String("kit_id", req.KitID))
	defer span.End()

	item, err := inventory.NewItem(req.params())
	if err != nil {
		return nil, err
	}

	err = l.txs.Execute(ctx, func(repos uow.Repositories) error {
		if item.BatchID != nil {
			exists, err := repos.Batches().Exists(ctx, *item.BatchID)
			if err != nil {
				return fmt.Errorf("check batch: %w", err)
			}
			if !exists {
				return shared.NotFound("Batch not found")
			}
		}

		if err := repos.Items().Create(ctx, item); err != nil {
			return err
		}

		tx, err := inventory.NewInitialAllocation(item, actor.ID)
		if err != nil {
			return err
		}
		if err := repos.Transactions().Append(ctx, tx); err != nil {
			return fmt.Errorf("append initial allocation: %w", err)
		}

		return appaudit.Append(ctx, repos.Audit(), &actor.ID, audit.ActionCreateInventory, item.CreationDetail())
	})
	if err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			err = l.conflict(ctx, item.KitID)
		}
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetOK(span)
	l.logger.Info("Inventory item created",
		zap.String("item_id", item.ID.String()),
		zap.String("kit_id", item.KitID),
	)
	resp := ToItemResponse(item)
	return &resp, nil
}

// conflict names the key that collided. It runs after the rollback, so a
// kit id that exists now was taken by someone else.
func (l *Ledger) conflict(ctx context.Context, kitID string) error {
	exists, err := l.items.ExistsByKitID(ctx, kitID)
	if err != nil {
		return fmt.Errorf("check kit id: %w", err)
	}
	if exists {
		return shared.Conflict(fmt.Sprintf("Kit ID %s already exists", kitID))
	}
	return shared.Conflict("Serial number or QR code already registered")
}

// DeleteItem removes a kit. It returns false when the kit does not exist.
func (l *Ledger) DeleteItem(ctx context.Context, id uuid.UUID, actor *identity.User) (bool, error) {
	deleted := false
	err := l.txs.Execute(ctx, func(repos uow.Repositories) error {
		item, err := repos.Items().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil
			}
			return err
		}
		if err := repos.Items().Delete(ctx, id); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil
			}
			return fmt.Errorf("delete item: %w", err)
		}
		deleted = true
		return appaudit.Append(ctx, repos.Audit(), &actor.ID, audit.ActionDeleteInventory, item.DeletionDetail())
	})
	if err != nil {
		return false, err
	}
	if deleted {
		l.logger.Info("Inventory item deleted", zap.String("item_id", id.String()))
	}
	return deleted, nil
}

// ListItems returns a page of kits in creation order
func (l *Ledger) ListItems(ctx context.Context, offset, limit int) ([]ItemResponse, error) {
	items, err := l.items.List(ctx, shared.NewPage(offset, limit))
	if err != nil {
		return nil, err
	}
	out := make([]ItemResponse, len(items))
	for i := range items {
		out[i] = ToItemResponse(&items[i])
	}
	return out, nil
}

// Utilization reports how many kits are linked to a batch
func (l *Ledger) Utilization(ctx context.Context) (*UtilizationResponse, error) {
	total, err := l.items.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count items: %w", err)
	}
	allocated, err := l.items.CountAllocated(ctx)
	if err != nil {
		return nil, fmt.Errorf("count allocated items: %w", err)
	}
	u := inventory.ComputeUtilization(allocated, total)
	return &UtilizationResponse{
		UtilizationRate:   u.Rate,
		AllocatedKits:     u.Allocated,
		TotalKits:         u.Total,
		CorrelationStatus: u.CorrelationStatus,
	}, nil
}

// ListTransactions returns the provenance history of one kit, oldest first
func (l *Ledger) ListTransactions(ctx context.Context, kitID string) ([]TransactionResponse, error) {
	txs, err := l.transactions.ListByKitID(ctx, kitID)
	if err != nil {
		return nil, err
	}
	out := make([]TransactionResponse, len(txs))
	for i := range txs {
		out[i] = ToTransactionResponse(&txs[i])
	}
	return out, nil
}

// LogExport records that the caller exported the inventory report
func (l *Ledger) LogExport(ctx context.Context, actor *identity.User) (*MessageResponse, error) {
	if err := l.audit.Record(ctx, &actor.ID, audit.ActionExportReport, "User exported Inventory CSV Report"); err != nil {
		return nil, err
	}
	return &MessageResponse{Message: MsgExportLogged}, nil
}
