package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const ContactsServiceName = "contacts.v1.Contacts"

type ContactsServer interface {
	List(context.Context, *Empty) (*ContactsResponse, error)
	Get(context.Context, *ContactIDRequest) (*Contact, error)
	Search(context.Context, *SearchRequest) (*ContactsResponse, error)
	Birthdays(context.Context, *Empty) (*ContactsResponse, error)
	Create(context.Context, *CreateContactRequest) (*Contact, error)
	Update(context.Context, *UpdateContactRequest) (*Contact, error)
	Delete(context.Context, *ContactIDRequest) (*Contact, error)
}

var ContactsServiceDesc = grpc.ServiceDesc{
	ServiceName: ContactsServiceName,
	HandlerType: (*ContactsServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(ContactsServiceName, "List", ContactsServer.List),
		unary(ContactsServiceName, "Get", ContactsServer.Get),
		unary(ContactsServiceName, "Search", ContactsServer.Search),
		unary(ContactsServiceName, "Birthdays", ContactsServer.Birthdays),
		unary(ContactsServiceName, "Create", ContactsServer.Create),
		unary(ContactsServiceName, "Update", ContactsServer.Update),
		unary(ContactsServiceName, "Delete", ContactsServer.Delete),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterContactsServer(s grpc.ServiceRegistrar, srv ContactsServer) {
	s.RegisterService(&ContactsServiceDesc, srv)
}

type ContactsClient struct {
	cc grpc.ClientConnInterface
}

func NewContactsClient(cc grpc.ClientConnInterface) *ContactsClient {
	return &ContactsClient{cc: cc}
}

func (c *ContactsClient) List(ctx context.Context, opts ...grpc.CallOption) (*ContactsResponse, error) {
	return invoke[ContactsResponse](ctx, c.cc, ContactsServiceName, "List", &Empty{}, opts)
}

func (c *ContactsClient) Get(ctx context.Context, in *ContactIDRequest, opts ...grpc.CallOption) (*Contact, error) {
	return invoke[Contact](ctx, c.cc, ContactsServiceName, "Get", in, opts)
}

func (c *ContactsClient) Search(ctx context.Context, in *SearchRequest, opts ...grpc.CallOption) (*ContactsResponse, error) {
	return invoke[ContactsResponse](ctx, c.cc, ContactsServiceName, "Search", in, opts)
}

func (c *ContactsClient) Birthdays(ctx context.Context, opts ...grpc.CallOption) (*ContactsResponse, error) {
	return invoke[ContactsResponse](ctx, c.cc, ContactsServiceName, "Birthdays", &Empty{}, opts)
}

func (c *ContactsClient) Create(ctx context.Context, in *CreateContactRequest, opts ...grpc.CallOption) (*Contact, error) {
	return invoke[Contact](ctx, c.cc, ContactsServiceName, "Create", in, opts)
}

func (c *ContactsClient) Update(ctx context.Context, in *UpdateContactRequest, opts ...grpc.CallOption) (*Contact, error) {
	return invoke[Contact](ctx, c.cc, ContactsServiceName, "Update", in, opts)
}

func (c *ContactsClient) Delete(ctx context.Context, in *ContactIDRequest, opts ...grpc.CallOption) (*Contact, error) {
	return invoke[Contact](ctx, c.cc, ContactsServiceName, "Delete", in, opts)
}
