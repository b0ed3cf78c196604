package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/homeledger/internal/common"
	"github.com/dmitrijs2005/homeledger/internal/rpc"
	"github.com/dmitrijs2005/homeledger/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Register(ctx context.Context, req *rpc.RegisterRequest) (*rpc.RegisterResponse, error) {

	s.logger.Info(ctx, "Registration request", "username", req.Username)

	user, err := s.users.Register(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUsernameTaken) {
			return nil, status.Error(codes.AlreadyExists, common.ErrorUsernameTaken.Error())
		}
		s.logger.Error(ctx, err.Error())
		return nil, status.Error(codes.Internal, "internal error")
	}

	s.logger.Info(ctx, "Registered", "username", req.Username)
	return &rpc.RegisterResponse{UserID: user.ID}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *rpc.LoginRequest) (*rpc.LoginResponse, error) {

	tokens, err := s.users.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return nil, status.Error(codes.Unauthenticated, "unauthorized")
		}
		s.logger.Error(ctx, err.Error())
		return nil, status.Error(codes.Internal, "internal error")
	}

	return &rpc.LoginResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *rpc.RefreshTokenRequest) (*rpc.RefreshTokenResponse, error) {

	tokens, err := s.users.Refresh(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, common.ErrRefreshTokenExpired) {
			return nil, status.Error(codes.Unauthenticated, common.ErrRefreshTokenExpired.Error())
		}
		s.logger.Error(ctx, err.Error())
		return nil, status.Error(codes.Internal, "internal error")
	}

	return &rpc.RefreshTokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *rpc.PingRequest) (*rpc.PingResponse, error) {
	return &rpc.PingResponse{Status: "OK"}, nil
}

// mapLedgerError converts service errors to gRPC statuses.
func mapLedgerError(err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return status.Error(codes.NotFound, common.ErrorNotFound.Error())
	}
	return status.Error(codes.Internal, "internal error")
}

func (s *GRPCServer) ListExpenses(ctx context.Context, req *rpc.ListExpensesRequest) (*rpc.ListExpensesResponse, error) {
	items, err := s.ledger.ListExpenses(ctx)
	if err != nil {
		s.logger.Error(ctx, err.Error())
		return nil, mapLedgerError(err)
	}

	resp := &rpc.ListExpensesResponse{Expenses: make([]rpc.ExpenseRecord, 0, len(items))}
	for _, e := range items {
		resp.Expenses = append(resp.Expenses, *services.ExpenseToRecord(e))
	}
	return resp, nil
}

func (s *GRPCServer) InsertExpense(ctx context.Context, req *rpc.InsertExpenseRequest) (*rpc.InsertExpenseResponse, error) {
	confirmed, err := s.ledger.InsertExpense(ctx, services.ExpenseFromRecord(&req.Expense))
	if err != nil {
		s.logger.Error(ctx, err.Error())
		return nil, mapLedgerError(err)
	}
	return &rpc.InsertExpenseResponse{Expense: *services.ExpenseToRecord(confirmed)}, nil
}

func (s *GRPCServer) UpdateExpense(ctx context.Context, req *rpc.UpdateExpenseRequest) (*rpc.UpdateExpenseResponse, error) {
	if err := s.ledger.UpdateExpense(ctx, req.ID, services.ExpenseFromRecord(&req.Expense)); err != nil {
		s.logger.Error(ctx, err.Error())
		return nil, mapLedgerError(err)
	}
	return &rpc.UpdateExpenseResponse{}, nil
}

func (s *GRPCServer) DeleteExpense(ctx context.Context, req *rpc.DeleteExpenseRequest) (*rpc.DeleteExpenseResponse, error) {
	if err := s.ledger.DeleteExpense(ctx, req.ID); err != nil {
		s.logger.Error(ctx, err.Error())
		return nil, mapLedgerError(err)
	}
	return &rpc.DeleteExpenseResponse{}, nil
}

func (s *GRPCServer) ListReminders(ctx context.Context, req *rpc.ListRemindersRequest) (*rpc.ListRemindersResponse, error) {
	items, err := s.ledger.ListReminders(ctx)
	if err != nil {
		s.logger.Error(ctx, err.Error())
		return nil, mapLedgerError(err)
	}

	resp := &rpc.ListRemindersResponse{Reminders: make([]rpc.ReminderRecord, 0, len(items))}
	for _, m := range items {
		resp.Reminders = append(resp.Reminders, *services.ReminderToRecord(m))
	}
	return resp, nil
}

func (s *GRPCServer) InsertReminder(ctx context.Context, req *rpc.InsertReminderRequest) (*rpc.InsertReminderResponse, error) {
	confirmed, err := s.ledger.InsertReminder(ctx, services.ReminderFromRecord(&req.Reminder))
	if err != nil {
		s.logger.Error(ctx, err.Error())
		return nil, mapLedgerError(err)
	}
	return &rpc.InsertReminderResponse{Reminder: *services.ReminderToRecord(confirmed)}, nil
}

func (s *GRPCServer) UpdateReminder(ctx context.Context, req *rpc.UpdateReminderRequest) (*rpc.UpdateReminderResponse, error) {
	if err := s.ledger.UpdateReminder(ctx, req.ID, services.ReminderFromRecord(&req.Reminder)); err != nil {
		s.logger.Error(ctx, err.Error())
		return nil, mapLedgerError(err)
	}
	return &rpc.UpdateReminderResponse{}, nil
}

func (s *GRPCServer) DeleteReminder(ctx context.Context, req *rpc.DeleteReminderRequest) (*rpc.DeleteReminderResponse, error) {
	if err := s.ledger.DeleteReminder(ctx, req.ID); err != nil {
		s.logger.Error(ctx, err.Error())
		return nil, mapLedgerError(err)
	}
	return &rpc.DeleteReminderResponse{}, nil
}

func (s *GRPCServer) PresignReceiptPut(ctx context.Context, req *rpc.PresignReceiptPutRequest) (*rpc.PresignReceiptPutResponse, error) {
	key, url, err := s.receipts.PresignPut(ctx)
	if err != nil {
		s.logger.Error(ctx, err.Error())
		return nil, status.Error(codes.Internal, "presign error")
	}
	return &rpc.PresignReceiptPutResponse{Key: key, URL: url}, nil
}

func (s *GRPCServer) PresignReceiptGet(ctx context.Context, req *rpc.PresignReceiptGetRequest) (*rpc.PresignReceiptGetResponse, error) {
	url, err := s.receipts.PresignGet(ctx, req.Key)
	if err != nil {
		s.logger.Error(ctx, err.Error())
		return nil, status.Error(codes.Internal, "presign error")
	}
	return &rpc.PresignReceiptGetResponse{URL: url}, nil
}

// Subscribe streams change events for the requested tables until the client
// disconnects or the server stops.
func (s *GRPCServer) Subscribe(req *rpc.SubscribeRequest, stream rpc.LedgerServiceSubscribeServer) error {

	ch, cancel := s.hub.Subscribe(req.Tables)
	defer cancel()

	ctx := stream.Context()
	s.logger.Info(ctx, "Realtime subscription opened", "tables", req.Tables)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-ch:
			if !ok {
				return nil
			}
			if err := stream.Send(ev); err != nil {
				return err
			}
		}
	}
}
