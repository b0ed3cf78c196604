package rpc

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "homeledger.LedgerService"

// Full method names, used by interceptors on both sides.
const (
	MethodRegister          = "/homeledger.LedgerService/Register"
	MethodLogin             = "/homeledger.LedgerService/Login"
	MethodRefreshToken      = "/homeledger.LedgerService/RefreshToken"
	MethodPing              = "/homeledger.LedgerService/Ping"
	MethodListExpenses      = "/homeledger.LedgerService/ListExpenses"
	MethodInsertExpense     = "/homeledger.LedgerService/InsertExpense"
	MethodUpdateExpense     = "/homeledger.LedgerService/UpdateExpense"
	MethodDeleteExpense     = "/homeledger.LedgerService/DeleteExpense"
	MethodListReminders     = "/homeledger.LedgerService/ListReminders"
	MethodInsertReminder    = "/homeledger.LedgerService/InsertReminder"
	MethodUpdateReminder    = "/homeledger.LedgerService/UpdateReminder"
	MethodDeleteReminder    = "/homeledger.LedgerService/DeleteReminder"
	MethodPresignReceiptPut = "/homeledger.LedgerService/PresignReceiptPut"
	MethodPresignReceiptGet = "/homeledger.LedgerService/PresignReceiptGet"
	MethodSubscribe         = "/homeledger.LedgerService/Subscribe"
)

// LedgerServiceServer is the server API for the LedgerService.
type LedgerServiceServer interface {
	Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	RefreshToken(ctx context.Context, req *RefreshTokenRequest) (*RefreshTokenResponse, error)
	Ping(ctx context.Context, req *PingRequest) (*PingResponse, error)

	ListExpenses(ctx context.Context, req *ListExpensesRequest) (*ListExpensesResponse, error)
	InsertExpense(ctx context.Context, req *InsertExpenseRequest) (*InsertExpenseResponse, error)
	UpdateExpense(ctx context.Context, req *UpdateExpenseRequest) (*UpdateExpenseResponse, error)
	DeleteExpense(ctx context.Context, req *DeleteExpenseRequest) (*DeleteExpenseResponse, error)

	ListReminders(ctx context.Context, req *ListRemindersRequest) (*ListRemindersResponse, error)
	InsertReminder(ctx context.Context, req *InsertReminderRequest) (*InsertReminderResponse, error)
	UpdateReminder(ctx context.Context, req *UpdateReminderRequest) (*UpdateReminderResponse, error)
	DeleteReminder(ctx context.Context, req *DeleteReminderRequest) (*DeleteReminderResponse, error)

	PresignReceiptPut(ctx context.Context, req *PresignReceiptPutRequest) (*PresignReceiptPutResponse, error)
	PresignReceiptGet(ctx context.Context, req *PresignReceiptGetRequest) (*PresignReceiptGetResponse, error)

	Subscribe(req *SubscribeRequest, stream LedgerServiceSubscribeServer) error
}

// LedgerServiceSubscribeServer is the server side of the change-event stream.
type LedgerServiceSubscribeServer interface {
	Send(*ChangeEvent) error
	grpc.ServerStream
}

type ledgerServiceSubscribeServer struct {
	grpc.ServerStream
}

func (x *ledgerServiceSubscribeServer) Send(m *ChangeEvent) error {
	return x.ServerStream.SendMsg(m)
}

// RegisterLedgerServiceServer registers srv on the given registrar.
func RegisterLedgerServiceServer(s grpc.ServiceRegistrar, srv LedgerServiceServer) {
	s.RegisterService(&LedgerService_ServiceDesc, srv)
}

// unaryHandler adapts one typed service method to the grpc.MethodDesc
// handler shape, threading the registered interceptor chain through.
func unaryHandler[Req any, Resp any](
	method string,
	call func(s LedgerServiceServer, ctx context.Context, req *Req) (*Resp, error),
) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(LedgerServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(LedgerServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func _LedgerService_Subscribe_Handler(srv any, stream grpc.ServerStream) error {
	in := new(SubscribeRequest)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(LedgerServiceServer).Subscribe(in, &ledgerServiceSubscribeServer{stream})
}

// LedgerService_ServiceDesc is the grpc.ServiceDesc for the LedgerService.
var LedgerService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LedgerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: unaryHandler(MethodRegister, LedgerServiceServer.Register)},
		{MethodName: "Login", Handler: unaryHandler(MethodLogin, LedgerServiceServer.Login)},
		{MethodName: "RefreshToken", Handler: unaryHandler(MethodRefreshToken, LedgerServiceServer.RefreshToken)},
		{MethodName: "Ping", Handler: unaryHandler(MethodPing, LedgerServiceServer.Ping)},
		{MethodName: "ListExpenses", Handler: unaryHandler(MethodListExpenses, LedgerServiceServer.ListExpenses)},
		{MethodName: "InsertExpense", Handler: unaryHandler(MethodInsertExpense, LedgerServiceServer.InsertExpense)},
		{MethodName: "UpdateExpense", Handler: unaryHandler(MethodUpdateExpense, LedgerServiceServer.UpdateExpense)},
		{MethodName: "DeleteExpense", Handler: unaryHandler(MethodDeleteExpense, LedgerServiceServer.DeleteExpense)},
		{MethodName: "ListReminders", Handler: unaryHandler(MethodListReminders, LedgerServiceServer.ListReminders)},
		{MethodName: "InsertReminder", Handler: unaryHandler(MethodInsertReminder, LedgerServiceServer.InsertReminder)},
		{MethodName: "UpdateReminder", Handler: unaryHandler(MethodUpdateReminder, LedgerServiceServer.UpdateReminder)},
		{MethodName: "DeleteReminder", Handler: unaryHandler(MethodDeleteReminder, LedgerServiceServer.DeleteReminder)},
		{MethodName: "PresignReceiptPut", Handler: unaryHandler(MethodPresignReceiptPut, LedgerServiceServer.PresignReceiptPut)},
		{MethodName: "PresignReceiptGet", Handler: unaryHandler(MethodPresignReceiptGet, LedgerServiceServer.PresignReceiptGet)},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Subscribe",
			Handler:       _LedgerService_Subscribe_Handler,
			ServerStreams: true,
		},
	},
}
