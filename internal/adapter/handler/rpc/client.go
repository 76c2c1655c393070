package rpc

import (
	"context"

	"google.golang.org/grpc"
)

// InventoryClient calls the Inventory service over a client connection,
// always selecting the JSON codec.
type InventoryClient struct {
	cc grpc.ClientConnInterface
}

func NewInventoryClient(cc grpc.ClientConnInterface) *InventoryClient {
	return &InventoryClient{cc: cc}
}

func (c *InventoryClient) List(ctx context.Context, in *ListRequest, opts ...grpc.CallOption) (*ListResponse, error) {
	return invoke[ListResponse](ctx, c.cc, "List", in, opts)
}

func (c *InventoryClient) Add(ctx context.Context, in *AddRequest, opts ...grpc.CallOption) (*AddResponse, error) {
	return invoke[AddResponse](ctx, c.cc, "Add", in, opts)
}

func (c *InventoryClient) RestockLowest(ctx context.Context, in *RestockRequest, opts ...grpc.CallOption) (*RestockResponse, error) {
	return invoke[RestockResponse](ctx, c.cc, "RestockLowest", in, opts)
}

func (c *InventoryClient) Search(ctx context.Context, in *SearchRequest, opts ...grpc.CallOption) (*SearchResponse, error) {
	return invoke[SearchResponse](ctx, c.cc, "Search", in, opts)
}

func (c *InventoryClient) ValuePerItem(ctx context.Context, in *ValueRequest, opts ...grpc.CallOption) (*ValueResponse, error) {
	return invoke[ValueResponse](ctx, c.cc, "ValuePerItem", in, opts)
}

func (c *InventoryClient) Highest(ctx context.Context, in *HighestRequest, opts ...grpc.CallOption) (*HighestResponse, error) {
	return invoke[HighestResponse](ctx, c.cc, "Highest", in, opts)
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, fullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
