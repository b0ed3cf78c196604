package services

import (
	"context"
	"errors"
	"os"

	"github.com/dmitrijs2005/homeledger/internal/client/client"
	"github.com/dmitrijs2005/homeledger/internal/client/models"
	"github.com/dmitrijs2005/homeledger/internal/netx"
)

// ErrReceiptRequiresConnection is returned when a receipt operation is
// attempted offline. Receipt files are not queued; only ledger rows are.
var ErrReceiptRequiresConnection = errors.New("receipts require a connection to the server")

// ReceiptService uploads receipt images through presigned URLs and attaches
// the resulting storage key to an expense.
type ReceiptService struct {
	client client.Client
	ledger *LedgerService
	online OnlineChecker
}

func NewReceiptService(c client.Client, ledger *LedgerService, online OnlineChecker) *ReceiptService {
	return &ReceiptService{client: c, ledger: ledger, online: online}
}

// Attach uploads the file at path and links it to the expense.
func (s *ReceiptService) Attach(ctx context.Context, expenseID string, path string) error {
	if !s.online.IsOnline() {
		return ErrReceiptRequiresConnection
	}
	if models.IsProvisionalID(expenseID) {
		return ErrReceiptRequiresConnection
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	key, url, err := s.client.PresignReceiptPut(ctx)
	if err != nil {
		return err
	}
	if err := netx.UploadToPresignedURL(ctx, url, data); err != nil {
		return err
	}

	exp, ok := s.ledger.session.FindExpense(expenseID)
	if !ok {
		return errors.New("expense not found")
	}
	updated := *exp
	updated.ReceiptKey = key
	return s.ledger.UpdateExpense(ctx, &updated)
}

// DownloadURL returns a short-lived link to view a stored receipt.
func (s *ReceiptService) DownloadURL(ctx context.Context, key string) (string, error) {
	if !s.online.IsOnline() {
		return "", ErrReceiptRequiresConnection
	}
	return s.client.PresignReceiptGet(ctx, key)
}

// Download fetches a stored receipt through its presigned link and writes
// it to path.
func (s *ReceiptService) Download(ctx context.Context, key string, path string) error {
	url, err := s.DownloadURL(ctx, key)
	if err != nil {
		return err
	}
	data, err := netx.DownloadFromPresignedURL(ctx, url)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
