package handler

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/rl1809/shoe-inventory/internal/adapter/handler/rpc"
	"github.com/rl1809/shoe-inventory/internal/core/domain"
	"github.com/rl1809/shoe-inventory/internal/core/service"
)

type GRPCHandler struct {
	svc    *service.InventoryService
	logger *zap.Logger
}

var _ rpc.InventoryServer = (*GRPCHandler)(nil)

func NewGRPCHandler(svc *service.InventoryService, logger *zap.Logger) *GRPCHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GRPCHandler{svc: svc, logger: logger}
}

func (h *GRPCHandler) List(ctx context.Context, req *rpc.ListRequest) (*rpc.ListResponse, error) {
	resp := &rpc.ListResponse{Shoes: []rpc.Shoe{}}
	for shoe := range h.svc.All() {
		resp.Shoes = append(resp.Shoes, toRPCShoe(shoe))
	}
	return resp, nil
}

func (h *GRPCHandler) Add(ctx context.Context, req *rpc.AddRequest) (*rpc.AddResponse, error) {
	shoe, err := fromRPCShoe(req.Shoe)
	if err != nil {
		return nil, h.toStatus("Add", err)
	}
	if err := h.svc.Add(ctx, shoe); err != nil {
		return nil, h.toStatus("Add", err)
	}
	return &rpc.AddResponse{Shoe: toRPCShoe(shoe)}, nil
}

func (h *GRPCHandler) RestockLowest(ctx context.Context, req *rpc.RestockRequest) (*rpc.RestockResponse, error) {
	shoe, err := h.svc.RestockLowest(ctx, int(req.Quantity))
	if err != nil {
		return nil, h.toStatus("RestockLowest", err)
	}
	return &rpc.RestockResponse{Shoe: toRPCShoe(shoe)}, nil
}

func (h *GRPCHandler) Search(ctx context.Context, req *rpc.SearchRequest) (*rpc.SearchResponse, error) {
	shoe, err := h.svc.Search(req.Code)
	if err != nil {
		return nil, h.toStatus("Search", err)
	}
	return &rpc.SearchResponse{Shoe: toRPCShoe(shoe)}, nil
}

func (h *GRPCHandler) ValuePerItem(ctx context.Context, req *rpc.ValueRequest) (*rpc.ValueResponse, error) {
	resp := &rpc.ValueResponse{Items: []rpc.ItemValue{}}
	for _, v := range h.svc.ValuePerItem() {
		resp.Items = append(resp.Items, rpc.ItemValue{
			Product: v.Product,
			Code:    v.Code,
			Value:   v.Formatted(),
		})
	}
	return resp, nil
}

func (h *GRPCHandler) Highest(ctx context.Context, req *rpc.HighestRequest) (*rpc.HighestResponse, error) {
	shoe, err := h.svc.Highest()
	if err != nil {
		return nil, h.toStatus("Highest", err)
	}
	return &rpc.HighestResponse{Shoe: toRPCShoe(shoe)}, nil
}

// UnaryLoggingInterceptor logs each call with the caller's x-request-id,
// generating one when the caller sent none.
func UnaryLoggingInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		requestID := ""
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if values := md.Get("x-request-id"); len(values) > 0 {
				requestID = values[0]
			}
		}
		if requestID == "" {
			requestID = uuid.NewString()
		}

		start := time.Now()
		resp, err := next(ctx, req)
		logger.Debug("grpc call",
			zap.String("request_id", requestID),
			zap.String("method", info.FullMethod),
			zap.Duration("duration", time.Since(start)),
			zap.String("code", status.Code(err).String()),
		)
		return resp, err
	}
}

func (h *GRPCHandler) toStatus(method string, err error) error {
	code := codes.Internal
	switch {
	case errors.Is(err, domain.ErrNegativeValue), errors.Is(err, domain.ErrMalformedField),
		errors.Is(err, domain.ErrQuantityLimit):
		code = codes.InvalidArgument
	case errors.Is(err, domain.ErrNotFound):
		code = codes.NotFound
	case errors.Is(err, domain.ErrEmptyInventory), errors.Is(err, domain.ErrNotLoaded):
		code = codes.FailedPrecondition
	}

	if code == codes.Internal {
		h.logger.Error("grpc call failed", zap.String("method", method), zap.Error(err))
	}
	return status.Error(code, err.Error())
}

func toRPCShoe(shoe domain.Shoe) rpc.Shoe {
	return rpc.Shoe{
		Country:  shoe.Country,
		Code:     shoe.Code,
		Product:  shoe.Product,
		Cost:     shoe.Cost.String(),
		Quantity: int64(shoe.Quantity),
	}
}

func fromRPCShoe(shoe rpc.Shoe) (domain.Shoe, error) {
	cost, err := domain.ParseCost(shoe.Cost)
	if err != nil {
		return domain.Shoe{}, err
	}
	return domain.Shoe{
		Country:  shoe.Country,
		Code:     shoe.Code,
		Product:  shoe.Product,
		Cost:     cost,
		Quantity: int(shoe.Quantity),
	}, nil
}
