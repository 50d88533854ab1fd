package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateLedgerEntryRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	TotalAmount string `json:"total_amount" binding:"required"`
}

type AddPaymentRequest struct {
	PaymentType string `json:"payment_type" binding:"required,oneof='Cash' 'Bank Transfer' 'Cheque'"`
	Amount      string `json:"amount" binding:"required"`
	PaymentDate string `json:"payment_date" binding:"required"` // YYYY-MM-DD
	Note        string `json:"note"`
}

type LedgerPaymentResponse struct {
	ID          uint   `json:"id"`
	PaymentType string `json:"payment_type"`
	Amount      string `json:"amount"`
	PaymentDate string `json:"payment_date"`
	Note        string `json:"note"`
}

type LedgerEntryResponse struct {
	ID          uint                    `json:"id"`
	ClientName  string                  `json:"client_name"`
	TotalAmount string                  `json:"total_amount"`
	PaidAmount  string                  `json:"paid_amount"`
	Outstanding string                  `json:"outstanding"`
	Status      string                  `json:"status"` // pending, partial, cleared
	Payments    []LedgerPaymentResponse `json:"payments"`
	CreatedAt   string                  `json:"created_at"`
}

// --- Interface ---

type LedgerService interface {
	CreateEntry(ctx context.Context, req CreateLedgerEntryRequest) (LedgerEntryResponse, error)
	AddPayment(ctx context.Context, entryID uint, req AddPaymentRequest) (LedgerEntryResponse, error)
	GetEntry(ctx context.Context, id uint) (LedgerEntryResponse, error)
	ListEntries(ctx context.Context, page, limit int, client string) ([]LedgerEntryResponse, int64, error)
	DeleteEntry(ctx context.Context, id uint) error
}

type ledgerService struct {
	ledgerRepo repository.LedgerRepository
	auditRepo  repository.AuditRepository
	txManager  repository.TransactionManager
}

func NewLedgerService(
	ledgerRepo repository.LedgerRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) LedgerService {
	return &ledgerService{ledgerRepo: ledgerRepo, auditRepo: auditRepo, txManager: txManager}
}

// --- Implementation ---

func (s *ledgerService) CreateEntry(ctx context.Context, req CreateLedgerEntryRequest) (LedgerEntryResponse, error) {
	total, err := parsePositiveDecimal(req.TotalAmount, "total_amount")
	if err != nil {
		return LedgerEntryResponse{}, err
	}

	entry := model.LedgerEntry{
		ClientName:  req.ClientName,
		TotalAmount: total,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.ledgerRepo.Create(txCtx, &entry); createErr != nil {
			return fmt.Errorf("failed to create ledger entry: %w", createErr)
		}
		writeAudit(txCtx, s.auditRepo, model.ActionCreateLedger, fmt.Sprint(entry.ID), entry.ClientName, req)
		return nil
	})
	if err != nil {
		return LedgerEntryResponse{}, err
	}

	return toLedgerEntryResponse(entry), nil
}

func (s *ledgerService) AddPayment(ctx context.Context, entryID uint, req AddPaymentRequest) (LedgerEntryResponse, error) {
	amount, err := parsePositiveDecimal(req.Amount, "amount")
	if err != nil {
		return LedgerEntryResponse{}, err
	}

	paymentDate, err := time.Parse("2006-01-02", req.PaymentDate)
	if err != nil {
		return LedgerEntryResponse{}, fmt.Errorf("invalid payment_date format (expected YYYY-MM-DD): %w", err)
	}

	entry, err := s.ledgerRepo.FindByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LedgerEntryResponse{}, ErrLedgerNotFound
		}
		return LedgerEntryResponse{}, fmt.Errorf("failed to fetch ledger entry: %w", err)
	}

	payment := model.LedgerPayment{
		LedgerEntryID: entry.ID,
		PaymentType:   req.PaymentType,
		Amount:        amount,
		PaymentDate:   paymentDate,
		Note:          req.Note,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if payErr := s.ledgerRepo.AddPayment(txCtx, &payment); payErr != nil {
			return fmt.Errorf("failed to record payment: %w", payErr)
		}
		writeAudit(txCtx, s.auditRepo, model.ActionLedgerPayment, fmt.Sprint(entry.ID), entry.ClientName, req)
		return nil
	})
	if err != nil {
		return LedgerEntryResponse{}, err
	}

	entry.Payments = append(entry.Payments, payment)
	return toLedgerEntryResponse(*entry), nil
}

func (s *ledgerService) GetEntry(ctx context.Context, id uint) (LedgerEntryResponse, error) {
	entry, err := s.ledgerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LedgerEntryResponse{}, ErrLedgerNotFound
		}
		return LedgerEntryResponse{}, fmt.Errorf("failed to fetch ledger entry: %w", err)
	}
	return toLedgerEntryResponse(*entry), nil
}

func (s *ledgerService) ListEntries(ctx context.Context, page, limit int, client string) ([]LedgerEntryResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	entries, total, err := s.ledgerRepo.List(ctx, page, limit, client)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch ledger entries: %w", err)
	}

	res := make([]LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		res = append(res, toLedgerEntryResponse(e))
	}
	return res, total, nil
}

func (s *ledgerService) DeleteEntry(ctx context.Context, id uint) error {
	entry, err := s.ledgerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLedgerNotFound
		}
		return fmt.Errorf("failed to fetch ledger entry: %w", err)
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if delErr := s.ledgerRepo.Delete(txCtx, id); delErr != nil {
			return fmt.Errorf("failed to delete ledger entry: %w", delErr)
		}
		writeAudit(txCtx, s.auditRepo, model.ActionDeleteLedger, fmt.Sprint(id), entry.ClientName, map[string]bool{"deleted": true})
		return nil
	})
}

// --- Helpers ---

func toLedgerEntryResponse(entry model.LedgerEntry) LedgerEntryResponse {
	paid := decimal.Zero
	payments := make([]LedgerPaymentResponse, 0, len(entry.Payments))
	for _, p := range entry.Payments {
		paid = paid.Add(p.Amount)
		payments = append(payments, LedgerPaymentResponse{
			ID:          p.ID,
			PaymentType: p.PaymentType,
			Amount:      p.Amount.StringFixed(2),
			PaymentDate: p.PaymentDate.Format("2006-01-02"),
			Note:        p.Note,
		})
	}

	outstanding := entry.TotalAmount.Sub(paid)
	status := "pending"
	switch {
	case outstanding.LessThanOrEqual(decimal.Zero):
		status = "cleared"
	case paid.GreaterThan(decimal.Zero):
		status = "partial"
	}

	return LedgerEntryResponse{
		ID:          entry.ID,
		ClientName:  entry.ClientName,
		TotalAmount: entry.TotalAmount.StringFixed(2),
		PaidAmount:  paid.StringFixed(2),
		Outstanding: outstanding.StringFixed(2),
		Status:      status,
		Payments:    payments,
		CreatedAt:   entry.CreatedAt.Format(time.RFC3339),
	}
}
