package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/homeledger/internal/client/models"
	"github.com/dmitrijs2005/homeledger/internal/common"
	"github.com/dmitrijs2005/homeledger/internal/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      rpc.LedgerServiceClient

	// mu guards the token pair: the connectivity monitor pings from its own
	// goroutine while the REPL logs in or the interceptor rotates tokens.
	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

func (s *GRPCClient) tokens() (access string, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken, s.refreshToken
}

func (s *GRPCClient) setTokens(access string, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = access
	s.refreshToken = refresh
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

// accessTokenInterceptor attaches the access token to every call and, when
// the server answers "token expired", transparently rotates the token pair
// and retries the call once.
func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	access, refresh := s.tokens()
	ctx = withAccessToken(ctx, access)

	err := invoker(ctx, method, req, reply, cc, opts...)

	if err != nil {
		st, ok := status.FromError(err)
		if !ok {
			return err
		}
		if st.Code() != codes.Unauthenticated {
			return err
		}
		if st.Message() != common.ErrTokenExpired.Error() {
			return err
		}
		if refresh == "" {
			return err
		}

		resp, err := s.client.RefreshToken(ctx, &rpc.RefreshTokenRequest{RefreshToken: refresh})
		if err != nil {
			return err
		}

		s.setTokens(resp.AccessToken, resp.RefreshToken)

		ctx = withAccessToken(ctx, resp.AccessToken)
		return invoker(ctx, method, req, reply, cc, opts...)
	}

	return err
}

func NewLedgerClient(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	if err := c.initGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) initGRPCClient() error {
	conn, err := grpc.NewClient(s.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor))
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = rpc.NewLedgerServiceClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

func (s *GRPCClient) Register(ctx context.Context, username string, password string) error {
	_, err := s.client.Register(ctx, &rpc.RegisterRequest{Username: username, Password: password})
	if err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) Login(ctx context.Context, username string, password string) error {
	resp, err := s.client.Login(ctx, &rpc.LoginRequest{Username: username, Password: password})
	if err != nil {
		return s.mapError(err)
	}

	s.setTokens(resp.AccessToken, resp.RefreshToken)
	return nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &rpc.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) ListExpenses(ctx context.Context) ([]*models.Expense, error) {
	resp, err := s.client.ListExpenses(ctx, &rpc.ListExpensesRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}

	result := make([]*models.Expense, 0, len(resp.Expenses))
	for i := range resp.Expenses {
		result = append(result, models.ExpenseFromRecord(&resp.Expenses[i]))
	}
	return result, nil
}

func (s *GRPCClient) InsertExpense(ctx context.Context, expense *models.Expense) (*models.Expense, error) {
	rec := expense.ToRecord()
	rec.ID = ""

	resp, err := s.client.InsertExpense(ctx, &rpc.InsertExpenseRequest{Expense: *rec})
	if err != nil {
		return nil, s.mapError(err)
	}
	return models.ExpenseFromRecord(&resp.Expense), nil
}

func (s *GRPCClient) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	_, err := s.client.UpdateExpense(ctx, &rpc.UpdateExpenseRequest{ID: expense.ID, Expense: *expense.ToRecord()})
	if err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) DeleteExpense(ctx context.Context, id string) error {
	_, err := s.client.DeleteExpense(ctx, &rpc.DeleteExpenseRequest{ID: id})
	if err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) ListReminders(ctx context.Context) ([]*models.Reminder, error) {
	resp, err := s.client.ListReminders(ctx, &rpc.ListRemindersRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}

	result := make([]*models.Reminder, 0, len(resp.Reminders))
	for i := range resp.Reminders {
		result = append(result, models.ReminderFromRecord(&resp.Reminders[i]))
	}
	return result, nil
}

func (s *GRPCClient) InsertReminder(ctx context.Context, reminder *models.Reminder) (*models.Reminder, error) {
	rec := reminder.ToRecord()
	rec.ID = ""

	resp, err := s.client.InsertReminder(ctx, &rpc.InsertReminderRequest{Reminder: *rec})
	if err != nil {
		return nil, s.mapError(err)
	}
	return models.ReminderFromRecord(&resp.Reminder), nil
}

func (s *GRPCClient) UpdateReminder(ctx context.Context, reminder *models.Reminder) error {
	_, err := s.client.UpdateReminder(ctx, &rpc.UpdateReminderRequest{ID: reminder.ID, Reminder: *reminder.ToRecord()})
	if err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) DeleteReminder(ctx context.Context, id string) error {
	_, err := s.client.DeleteReminder(ctx, &rpc.DeleteReminderRequest{ID: id})
	if err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) PresignReceiptPut(ctx context.Context) (string, string, error) {
	resp, err := s.client.PresignReceiptPut(ctx, &rpc.PresignReceiptPutRequest{})
	if err != nil {
		return "", "", s.mapError(err)
	}
	return resp.Key, resp.URL, nil
}

func (s *GRPCClient) PresignReceiptGet(ctx context.Context, key string) (string, error) {
	resp, err := s.client.PresignReceiptGet(ctx, &rpc.PresignReceiptGetRequest{Key: key})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.URL, nil
}

// Subscribe opens the server-streaming change feed and pumps events into a
// channel. The access token travels in the stream metadata; the channel is
// closed when the stream breaks, and the caller resubscribes after the next
// reconnect.
func (s *GRPCClient) Subscribe(ctx context.Context, tables []string) (<-chan *rpc.ChangeEvent, error) {
	access, _ := s.tokens()
	stream, err := s.client.Subscribe(withAccessToken(ctx, access), &rpc.SubscribeRequest{Tables: tables})
	if err != nil {
		return nil, s.mapError(err)
	}

	ch := make(chan *rpc.ChangeEvent)
	go func() {
		defer close(ch)
		for {
			ev, err := stream.Recv()
			if err != nil {
				return
			}
			select {
			case ch <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, nil
}
