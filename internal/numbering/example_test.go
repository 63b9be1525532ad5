package numbering_test

import (
	"context"
	"fmt"
	"time"

	"invoicekit/internal/logger"
	"invoicekit/internal/numbering"
)

// Example issues two invoice numbers in January and one in February.
func Example() {
	ctx := context.Background()
	now := time.Date(2026, time.January, 10, 12, 0, 0, 0, time.Local)

	n := numbering.NewNumberer(numbering.NewMemoryStore(),
		numbering.WithClock(func() time.Time { return now }),
		numbering.WithLogger(logger.Nop()),
	)

	a, _ := n.Next(ctx, numbering.KindInvoice, "INV")
	b, _ := n.Next(ctx, numbering.KindInvoice, "INV")
	now = now.AddDate(0, 1, 0)
	c, _ := n.Next(ctx, numbering.KindInvoice, "INV")

	fmt.Println(a)
	fmt.Println(b)
	fmt.Println(c)
	// Output:
	// INV-202601-01
	// INV-202601-02
	// INV-202602-01
}
