package messaging

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "ticketchat.v1.MessagingService"

const (
	MessagingService_CreateOrGetConversation_FullMethodName = "/" + ServiceName + "/CreateOrGetConversation"
	MessagingService_GetConversations_FullMethodName        = "/" + ServiceName + "/GetConversations"
	MessagingService_ListMessageableUsers_FullMethodName    = "/" + ServiceName + "/ListMessageableUsers"
	MessagingService_LeaveConversation_FullMethodName       = "/" + ServiceName + "/LeaveConversation"
	MessagingService_SendMessage_FullMethodName             = "/" + ServiceName + "/SendMessage"
	MessagingService_GetMessages_FullMethodName             = "/" + ServiceName + "/GetMessages"
	MessagingService_DeleteMessage_FullMethodName           = "/" + ServiceName + "/DeleteMessage"
	MessagingService_MarkRead_FullMethodName                = "/" + ServiceName + "/MarkRead"
	MessagingService_GetUnreadCount_FullMethodName          = "/" + ServiceName + "/GetUnreadCount"
)

// MessagingServiceServer is the server API. The caller is identified by the
// transport, so requests never carry the acting user.
type MessagingServiceServer interface {
	CreateOrGetConversation(context.Context, *CreateConversationRequest) (*Conversation, error)
	GetConversations(context.Context, *EventRequest) (*ListConversationsResponse, error)
	ListMessageableUsers(context.Context, *EventRequest) (*ListMessageableUsersResponse, error)
	LeaveConversation(context.Context, *ConversationRequest) (*Empty, error)
	SendMessage(context.Context, *SendMessageRequest) (*Message, error)
	GetMessages(context.Context, *GetMessagesRequest) (*GetMessagesResponse, error)
	DeleteMessage(context.Context, *DeleteMessageRequest) (*Empty, error)
	MarkRead(context.Context, *ConversationRequest) (*Empty, error)
	GetUnreadCount(context.Context, *ConversationRequest) (*UnreadCountResponse, error)
}

func RegisterMessagingServiceServer(s grpc.ServiceRegistrar, srv MessagingServiceServer) {
	s.RegisterService(&MessagingService_ServiceDesc, srv)
}

var MessagingService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MessagingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("CreateOrGetConversation", MessagingServiceServer.CreateOrGetConversation),
		unary("GetConversations", MessagingServiceServer.GetConversations),
		unary("ListMessageableUsers", MessagingServiceServer.ListMessageableUsers),
		unary("LeaveConversation", MessagingServiceServer.LeaveConversation),
		unary("SendMessage", MessagingServiceServer.SendMessage),
		unary("GetMessages", MessagingServiceServer.GetMessages),
		unary("DeleteMessage", MessagingServiceServer.DeleteMessage),
		unary("MarkRead", MessagingServiceServer.MarkRead),
		unary("GetUnreadCount", MessagingServiceServer.GetUnreadCount),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "messaging.cbor",
}

// unary builds the method descriptor of call, decoding the request and
// running it through the server interceptors.
func unary[Req, Resp any](method string, call func(MessagingServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	fullMethod := "/" + ServiceName + "/" + method
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(MessagingServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(srv.(MessagingServiceServer), ctx, req.(*Req))
			})
		},
	}
}

type MessagingServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewMessagingServiceClient(cc grpc.ClientConnInterface) MessagingServiceClient {
	return MessagingServiceClient{cc: cc}
}

func (c MessagingServiceClient) CreateOrGetConversation(ctx context.Context, in *CreateConversationRequest, opts ...grpc.CallOption) (*Conversation, error) {
	return invoke[Conversation](ctx, c.cc, MessagingService_CreateOrGetConversation_FullMethodName, in, opts)
}

func (c MessagingServiceClient) GetConversations(ctx context.Context, in *EventRequest, opts ...grpc.CallOption) (*ListConversationsResponse, error) {
	return invoke[ListConversationsResponse](ctx, c.cc, MessagingService_GetConversations_FullMethodName, in, opts)
}

func (c MessagingServiceClient) ListMessageableUsers(ctx context.Context, in *EventRequest, opts ...grpc.CallOption) (*ListMessageableUsersResponse, error) {
	return invoke[ListMessageableUsersResponse](ctx, c.cc, MessagingService_ListMessageableUsers_FullMethodName, in, opts)
}

func (c MessagingServiceClient) LeaveConversation(ctx context.Context, in *ConversationRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MessagingService_LeaveConversation_FullMethodName, in, opts)
}

func (c MessagingServiceClient) SendMessage(ctx context.Context, in *SendMessageRequest, opts ...grpc.CallOption) (*Message, error) {
	return invoke[Message](ctx, c.cc, MessagingService_SendMessage_FullMethodName, in, opts)
}

func (c MessagingServiceClient) GetMessages(ctx context.Context, in *GetMessagesRequest, opts ...grpc.CallOption) (*GetMessagesResponse, error) {
	return invoke[GetMessagesResponse](ctx, c.cc, MessagingService_GetMessages_FullMethodName, in, opts)
}

func (c MessagingServiceClient) DeleteMessage(ctx context.Context, in *DeleteMessageRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MessagingService_DeleteMessage_FullMethodName, in, opts)
}

func (c MessagingServiceClient) MarkRead(ctx context.Context, in *ConversationRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MessagingService_MarkRead_FullMethodName, in, opts)
}

func (c MessagingServiceClient) GetUnreadCount(ctx context.Context, in *ConversationRequest, opts ...grpc.CallOption) (*UnreadCountResponse, error) {
	return invoke[UnreadCountResponse](ctx, c.cc, MessagingService_GetUnreadCount_FullMethodName, in, opts)
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
