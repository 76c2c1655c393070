package handler

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rl1809/shoe-inventory/internal/core/domain"
	"github.com/rl1809/shoe-inventory/internal/core/service"
)

var errInputClosed = errors.New("input closed")

// ConsoleHandler drives the numbered text menu over a line reader and a
// writer. Every error is reported and the menu loop carries on.
type ConsoleHandler struct {
	svc    *service.InventoryService
	in     *bufio.Scanner
	out    io.Writer
	logger *zap.Logger
}

func NewConsoleHandler(svc *service.InventoryService, in io.Reader, out io.Writer, logger *zap.Logger) *ConsoleHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsoleHandler{
		svc:    svc,
		in:     bufio.NewScanner(in),
		out:    out,
		logger: logger.With(zap.String("session_id", uuid.NewString())),
	}
}

// Run loads the inventory if needed and serves the menu until the user
// exits, the input ends or ctx is cancelled.
func (h *ConsoleHandler) Run(ctx context.Context) error {
	if !h.svc.Loaded() {
		if err := h.svc.Load(ctx); err != nil {
			h.report(err)
		} else {
			h.println("Data loaded successfully.")
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		h.printMenu()
		choice, err := h.prompt("Enter your choice (1-7): ")
		if err != nil {
			h.println("\nExiting the program.")
			return nil
		}

		switch choice {
		case "1":
			h.viewAll()
		case "2":
			err = h.capture(ctx)
		case "3":
			err = h.restock(ctx)
		case "4":
			err = h.search()
		case "5":
			h.valuePerItem()
		case "6":
			h.highest()
		case "7":
			h.println("Exiting the program.")
			return nil
		default:
			h.println("Invalid choice. Please enter a number between 1 and 7.")
		}

		if errors.Is(err, errInputClosed) {
			h.println("\nExiting the program.")
			return nil
		}
	}
}

func (h *ConsoleHandler) printMenu() {
	h.println("")
	h.println("Shoe Inventory Management System")
	h.println("1. View All Shoes")
	h.println("2. Capture New Shoe")
	h.println("3. Re-stock Shoe")
	h.println("4. Search Shoe")
	h.println("5. Calculate Value per Item")
	h.println("6. Show Highest Quantity Shoe")
	h.println("7. Exit")
}

func (h *ConsoleHandler) viewAll() {
	empty := true
	for shoe := range h.svc.All() {
		empty = false
		h.println(shoe.String())
	}
	if empty {
		h.report(domain.ErrEmptyInventory)
	}
}

// capture stops at the first numeric answer that does not parse.
func (h *ConsoleHandler) capture(ctx context.Context) error {
	var shoe domain.Shoe
	var err error

	if shoe.Country, err = h.prompt("Enter the country: "); err != nil {
		return err
	}
	if shoe.Code, err = h.prompt("Enter the shoe code: "); err != nil {
		return err
	}
	if shoe.Product, err = h.prompt("Enter the product name: "); err != nil {
		return err
	}

	raw, err := h.prompt("Enter the cost: ")
	if err != nil {
		return err
	}
	if shoe.Cost, err = domain.ParseCost(raw); err != nil {
		h.report(err)
		return nil
	}

	if raw, err = h.prompt("Enter the quantity: "); err != nil {
		return err
	}
	if shoe.Quantity, err = domain.ParseQuantity(raw); err != nil {
		h.report(err)
		return nil
	}

	if err := h.svc.Add(ctx, shoe); err != nil {
		h.report(err)
		return nil
	}

	h.printf("Shoe added: %s\n", shoe)
	h.println("Inventory updated successfully.")
	return nil
}

// restock only proceeds on an explicit yes.
func (h *ConsoleHandler) restock(ctx context.Context) error {
	lowest, err := h.svc.Lowest()
	if err != nil {
		h.report(err)
		return nil
	}
	h.printf("Shoe with the lowest quantity: %s\n", lowest)

	answer, err := h.prompt("Do you want to add more stock for this shoe? (yes/no): ")
	if err != nil {
		return err
	}
	if a := strings.ToLower(answer); a != "yes" && a != "y" {
		h.println("Re-stock cancelled.")
		return nil
	}

	raw, err := h.prompt("Enter the quantity to add: ")
	if err != nil {
		return err
	}
	quantity, err := domain.ParseQuantity(raw)
	if err != nil {
		h.report(err)
		return nil
	}

	updated, err := h.svc.RestockLowest(ctx, quantity)
	if err != nil {
		h.report(err)
		return nil
	}

	h.printf("Updated shoe: %s\n", updated)
	h.println("Inventory updated successfully.")
	return nil
}

func (h *ConsoleHandler) search() error {
	code, err := h.prompt("Enter the shoe code to search: ")
	if err != nil {
		return err
	}

	shoe, err := h.svc.Search(code)
	if errors.Is(err, domain.ErrNotFound) {
		h.printf("No shoe found with code %q.\n", code)
		return nil
	}
	if err != nil {
		h.report(err)
		return nil
	}
	h.println(shoe.String())
	return nil
}

func (h *ConsoleHandler) valuePerItem() {
	values := h.svc.ValuePerItem()
	if len(values) == 0 {
		h.report(domain.ErrEmptyInventory)
		return
	}
	for _, v := range values {
		h.printf("Total value for %s (Code: %s): $%s\n", v.Product, v.Code, v.Formatted())
	}
}

func (h *ConsoleHandler) highest() {
	shoe, err := h.svc.Highest()
	if err != nil {
		h.report(err)
		return
	}
	h.printf("Shoe with the highest quantity (for sale): %s\n", shoe)
}

// prompt writes label and reads one trimmed line.
func (h *ConsoleHandler) prompt(label string) (string, error) {
	h.printf("%s", label)
	if !h.in.Scan() {
		if err := h.in.Err(); err != nil {
			h.logger.Warn("console input failed", zap.Error(err))
		}
		return "", errInputClosed
	}
	return strings.TrimSpace(h.in.Text()), nil
}

// report turns an error kind into the message shown to the user.
func (h *ConsoleHandler) report(err error) {
	h.logger.Debug("operation failed", zap.Error(err))

	switch {
	case errors.Is(err, domain.ErrFileMissing):
		h.printf("File not found: %v\n", err)
	case errors.Is(err, domain.ErrMalformedField):
		h.printf("Invalid value: %v\n", err)
	case errors.Is(err, domain.ErrNegativeValue):
		h.println("Cost and quantity must be non-negative.")
	case errors.Is(err, domain.ErrQuantityLimit):
		h.println("Quantity is too large to store.")
	case errors.Is(err, domain.ErrNotFound):
		h.println("Shoe not found.")
	case errors.Is(err, domain.ErrEmptyInventory):
		h.println("Shoe list is empty.")
	case errors.Is(err, domain.ErrNotLoaded):
		h.println("Inventory has not been loaded.")
	case errors.Is(err, domain.ErrFileIO):
		h.printf("File error: %v\n", err)
	default:
		h.printf("Error: %v\n", err)
	}
}

func (h *ConsoleHandler) println(s string) {
	fmt.Fprintln(h.out, s)
}

func (h *ConsoleHandler) printf(format string, args ...any) {
	fmt.Fprintf(h.out, format, args...)
}
