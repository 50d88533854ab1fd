package service

import (
	"context"
	"strings"

	"backend/internal/config"

	"github.com/google/uuid"
)

// InvoiceData is everything the client-side renderer needs to lay out a
// printable invoice or quotation. The backend does no PDF work; it only
// assembles the numbers so the renderer never recomputes money.
type InvoiceData struct {
	InvoiceNo string              `json:"invoice_no"`
	Order     OrderResponse       `json:"order"`
	Company   CompanyInfoResponse `json:"company"`
	Bank      BankDetailsResponse `json:"bank"`
}

type CompanyInfoResponse struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	State   string `json:"state"`
	GSTIN   string `json:"gstin"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

type BankDetailsResponse struct {
	BankName      string `json:"bank_name"`
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
	IFSC          string `json:"ifsc"`
	Branch        string `json:"branch"`
}

type InvoiceService interface {
	GetInvoiceData(ctx context.Context, orderID uuid.UUID) (InvoiceData, error)
}

type invoiceService struct {
	orders  OrderService
	company config.CompanyInfo
	bank    config.BankDetails
}

func NewInvoiceService(orders OrderService, company config.CompanyInfo, bank config.BankDetails) InvoiceService {
	return &invoiceService{orders: orders, company: company, bank: bank}
}

func (s *invoiceService) GetInvoiceData(ctx context.Context, orderID uuid.UUID) (InvoiceData, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return InvoiceData{}, err
	}

	return InvoiceData{
		InvoiceNo: invoiceNoFor(order.OrderNo),
		Order:     order,
		Company: CompanyInfoResponse{
			Name:    s.company.Name,
			Address: s.company.Address,
			State:   s.company.State,
			GSTIN:   s.company.GSTIN,
			Phone:   s.company.Phone,
			Email:   s.company.Email,
		},
		Bank: BankDetailsResponse{
			BankName:      s.bank.BankName,
			AccountName:   s.bank.AccountName,
			AccountNumber: s.bank.AccountNumber,
			IFSC:          s.bank.IFSC,
			Branch:        s.bank.Branch,
		},
	}, nil
}

// invoiceNoFor reuses the order number sequence under the INV prefix so the
// two series stay in lockstep.
func invoiceNoFor(orderNo string) string {
	return "INV-" + strings.TrimPrefix(orderNo, "ORD-")
}
