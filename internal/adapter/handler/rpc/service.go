package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "shoeinventory.Inventory"

type InventoryServer interface {
	List(context.Context, *ListRequest) (*ListResponse, error)
	Add(context.Context, *AddRequest) (*AddResponse, error)
	RestockLowest(context.Context, *RestockRequest) (*RestockResponse, error)
	Search(context.Context, *SearchRequest) (*SearchResponse, error)
	ValuePerItem(context.Context, *ValueRequest) (*ValueResponse, error)
	Highest(context.Context, *HighestRequest) (*HighestResponse, error)
}

var InventoryServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*InventoryServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "List",
			Handler: unaryHandler("List", func(s InventoryServer, ctx context.Context, in *ListRequest) (any, error) {
				return s.List(ctx, in)
			}),
		},
		{
			MethodName: "Add",
			Handler: unaryHandler("Add", func(s InventoryServer, ctx context.Context, in *AddRequest) (any, error) {
				return s.Add(ctx, in)
			}),
		},
		{
			MethodName: "RestockLowest",
			Handler: unaryHandler("RestockLowest", func(s InventoryServer, ctx context.Context, in *RestockRequest) (any, error) {
				return s.RestockLowest(ctx, in)
			}),
		},
		{
			MethodName: "Search",
			Handler: unaryHandler("Search", func(s InventoryServer, ctx context.Context, in *SearchRequest) (any, error) {
				return s.Search(ctx, in)
			}),
		},
		{
			MethodName: "ValuePerItem",
			Handler: unaryHandler("ValuePerItem", func(s InventoryServer, ctx context.Context, in *ValueRequest) (any, error) {
				return s.ValuePerItem(ctx, in)
			}),
		},
		{
			MethodName: "Highest",
			Handler: unaryHandler("Highest", func(s InventoryServer, ctx context.Context, in *HighestRequest) (any, error) {
				return s.Highest(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "shoeinventory",
}

func RegisterInventoryServer(s grpc.ServiceRegistrar, srv InventoryServer) {
	s.RegisterService(&InventoryServiceDesc, srv)
}

func unaryHandler[Req any](method string, call func(InventoryServer, context.Context, *Req) (any, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		server := srv.(InventoryServer)
		if interceptor == nil {
			return call(server, ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod(method),
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(server, ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func fullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}
