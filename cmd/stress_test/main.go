package main

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	"github.com/rl1809/shoe-inventory/internal/adapter/handler/rpc"
)

const (
	defaultAddr     = "localhost:50051"
	totalRequests   = 50
	restockQuantity = 2
)

func main() {
	ctx := context.Background()
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	addr := os.Getenv("INVENTORY_GRPC_ADDR")
	if addr == "" {
		addr = defaultAddr
	}

	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		logger.Fatal("failed to create client", zap.Error(err))
	}
	defer conn.Close()
	client := rpc.NewInventoryClient(conn)

	before, err := totalQuantity(ctx, client)
	if err != nil {
		logger.Fatal("failed to list inventory", zap.String("addr", addr), zap.Error(err))
	}

	// Counters
	var successCount atomic.Int32
	var failCount atomic.Int32

	// Spawn concurrent restocks
	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < totalRequests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			reqCtx := metadata.AppendToOutgoingContext(ctx, "x-request-id", uuid.NewString())
			_, err := client.RestockLowest(reqCtx, &rpc.RestockRequest{Quantity: restockQuantity})
			if err == nil {
				successCount.Add(1)
			} else {
				failCount.Add(1)
				logger.Debug("restock failed", zap.Error(err))
			}
		}()
	}

	wg.Wait()
	elapsed := time.Since(start)

	after, err := totalQuantity(ctx, client)
	if err != nil {
		logger.Fatal("failed to list inventory", zap.Error(err))
	}

	// Results
	success := successCount.Load()
	fail := failCount.Load()

	fmt.Println("========== STRESS TEST RESULTS ==========")
	fmt.Printf("Initial Quantity: %d\n", before)
	fmt.Printf("Total Requests:   %d\n", totalRequests)
	fmt.Printf("Successful:       %d\n", success)
	fmt.Printf("Failed:           %d\n", fail)
	fmt.Printf("Final Quantity:   %d\n", after)
	fmt.Printf("Duration:         %v\n", elapsed)
	fmt.Println("==========================================")

	if want := before + int(success)*restockQuantity; after == want {
		fmt.Printf("PASS: quantity grew by exactly %d\n", after-before)
	} else {
		fmt.Printf("FAIL: expected final quantity %d, got %d\n", want, after)
		os.Exit(1)
	}
}

func totalQuantity(ctx context.Context, client *rpc.InventoryClient) (int, error) {
	resp, err := client.List(ctx, &rpc.ListRequest{})
	if err != nil {
		return 0, err
	}
	total := 0
	for _, shoe := range resp.Shoes {
		total += int(shoe.Quantity)
	}
	return total, nil
}
