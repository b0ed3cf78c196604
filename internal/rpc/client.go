package rpc

import (
	"context"

	"google.golang.org/grpc"
)

// LedgerServiceClient is the client API for the LedgerService.
type LedgerServiceClient interface {
	Register(ctx context.Context, req *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error)
	Login(ctx context.Context, req *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	RefreshToken(ctx context.Context, req *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error)
	Ping(ctx context.Context, req *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)

	ListExpenses(ctx context.Context, req *ListExpensesRequest, opts ...grpc.CallOption) (*ListExpensesResponse, error)
	InsertExpense(ctx context.Context, req *InsertExpenseRequest, opts ...grpc.CallOption) (*InsertExpenseResponse, error)
	UpdateExpense(ctx context.Context, req *UpdateExpenseRequest, opts ...grpc.CallOption) (*UpdateExpenseResponse, error)
	DeleteExpense(ctx context.Context, req *DeleteExpenseRequest, opts ...grpc.CallOption) (*DeleteExpenseResponse, error)

	ListReminders(ctx context.Context, req *ListRemindersRequest, opts ...grpc.CallOption) (*ListRemindersResponse, error)
	InsertReminder(ctx context.Context, req *InsertReminderRequest, opts ...grpc.CallOption) (*InsertReminderResponse, error)
	UpdateReminder(ctx context.Context, req *UpdateReminderRequest, opts ...grpc.CallOption) (*UpdateReminderResponse, error)
	DeleteReminder(ctx context.Context, req *DeleteReminderRequest, opts ...grpc.CallOption) (*DeleteReminderResponse, error)

	PresignReceiptPut(ctx context.Context, req *PresignReceiptPutRequest, opts ...grpc.CallOption) (*PresignReceiptPutResponse, error)
	PresignReceiptGet(ctx context.Context, req *PresignReceiptGetRequest, opts ...grpc.CallOption) (*PresignReceiptGetResponse, error)

	Subscribe(ctx context.Context, req *SubscribeRequest, opts ...grpc.CallOption) (LedgerServiceSubscribeClient, error)
}

// LedgerServiceSubscribeClient is the client side of the change-event stream.
type LedgerServiceSubscribeClient interface {
	Recv() (*ChangeEvent, error)
	grpc.ClientStream
}

type ledgerServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewLedgerServiceClient returns a LedgerServiceClient bound to cc. All
// calls are issued with the JSON content-subtype.
func NewLedgerServiceClient(cc grpc.ClientConnInterface) LedgerServiceClient {
	return &ledgerServiceClient{cc: cc}
}

func withJSON(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
}

func invoke[Req any, Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, req *Req, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	if err := cc.Invoke(ctx, method, req, out, withJSON(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerServiceClient) Register(ctx context.Context, req *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterRequest, RegisterResponse](ctx, c.cc, MethodRegister, req, opts)
}

func (c *ledgerServiceClient) Login(ctx context.Context, req *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginRequest, LoginResponse](ctx, c.cc, MethodLogin, req, opts)
}

func (c *ledgerServiceClient) RefreshToken(ctx context.Context, req *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error) {
	return invoke[RefreshTokenRequest, RefreshTokenResponse](ctx, c.cc, MethodRefreshToken, req, opts)
}

func (c *ledgerServiceClient) Ping(ctx context.Context, req *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingRequest, PingResponse](ctx, c.cc, MethodPing, req, opts)
}

func (c *ledgerServiceClient) ListExpenses(ctx context.Context, req *ListExpensesRequest, opts ...grpc.CallOption) (*ListExpensesResponse, error) {
	return invoke[ListExpensesRequest, ListExpensesResponse](ctx, c.cc, MethodListExpenses, req, opts)
}

func (c *ledgerServiceClient) InsertExpense(ctx context.Context, req *InsertExpenseRequest, opts ...grpc.CallOption) (*InsertExpenseResponse, error) {
	return invoke[InsertExpenseRequest, InsertExpenseResponse](ctx, c.cc, MethodInsertExpense, req, opts)
}

func (c *ledgerServiceClient) UpdateExpense(ctx context.Context, req *UpdateExpenseRequest, opts ...grpc.CallOption) (*UpdateExpenseResponse, error) {
	return invoke[UpdateExpenseRequest, UpdateExpenseResponse](ctx, c.cc, MethodUpdateExpense, req, opts)
}

func (c *ledgerServiceClient) DeleteExpense(ctx context.Context, req *DeleteExpenseRequest, opts ...grpc.CallOption) (*DeleteExpenseResponse, error) {
	return invoke[DeleteExpenseRequest, DeleteExpenseResponse](ctx, c.cc, MethodDeleteExpense, req, opts)
}

func (c *ledgerServiceClient) ListReminders(ctx context.Context, req *ListRemindersRequest, opts ...grpc.CallOption) (*ListRemindersResponse, error) {
	return invoke[ListRemindersRequest, ListRemindersResponse](ctx, c.cc, MethodListReminders, req, opts)
}

func (c *ledgerServiceClient) InsertReminder(ctx context.Context, req *InsertReminderRequest, opts ...grpc.CallOption) (*InsertReminderResponse, error) {
	return invoke[InsertReminderRequest, InsertReminderResponse](ctx, c.cc, MethodInsertReminder, req, opts)
}

func (c *ledgerServiceClient) UpdateReminder(ctx context.Context, req *UpdateReminderRequest, opts ...grpc.CallOption) (*UpdateReminderResponse, error) {
	return invoke[UpdateReminderRequest, UpdateReminderResponse](ctx, c.cc, MethodUpdateReminder, req, opts)
}

func (c *ledgerServiceClient) DeleteReminder(ctx context.Context, req *DeleteReminderRequest, opts ...grpc.CallOption) (*DeleteReminderResponse, error) {
	return invoke[DeleteReminderRequest, DeleteReminderResponse](ctx, c.cc, MethodDeleteReminder, req, opts)
}

func (c *ledgerServiceClient) PresignReceiptPut(ctx context.Context, req *PresignReceiptPutRequest, opts ...grpc.CallOption) (*PresignReceiptPutResponse, error) {
	return invoke[PresignReceiptPutRequest, PresignReceiptPutResponse](ctx, c.cc, MethodPresignReceiptPut, req, opts)
}

func (c *ledgerServiceClient) PresignReceiptGet(ctx context.Context, req *PresignReceiptGetRequest, opts ...grpc.CallOption) (*PresignReceiptGetResponse, error) {
	return invoke[PresignReceiptGetRequest, PresignReceiptGetResponse](ctx, c.cc, MethodPresignReceiptGet, req, opts)
}

func (c *ledgerServiceClient) Subscribe(ctx context.Context, req *SubscribeRequest, opts ...grpc.CallOption) (LedgerServiceSubscribeClient, error) {
	stream, err := c.cc.NewStream(ctx, &LedgerService_ServiceDesc.Streams[0], MethodSubscribe, withJSON(opts)...)
	if err != nil {
		return nil, err
	}
	x := &ledgerServiceSubscribeClient{stream}
	if err := x.ClientStream.SendMsg(req); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

type ledgerServiceSubscribeClient struct {
	grpc.ClientStream
}

func (x *ledgerServiceSubscribeClient) Recv() (*ChangeEvent, error) {
	m := new(ChangeEvent)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}
