package cli

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/iudanet/stockkeeper/internal/client/view"
)

func (c *Cli) runList(ctx context.Context, args []string) error {
	opts := c.inventory.Options()

	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(c.io)
	query := fs.String("q", opts.Query, "text to search in names")
	filter := fs.String("filter", string(opts.Filter), "all, low or in")
	sortKey := fs.String("sort", string(opts.Sort), "name, qty, cost or value")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// Изменённые настройки сохраняются (в local режиме)
	var err error
	fs.Visit(func(fl *flag.Flag) {
		if err != nil {
			return
		}
		switch fl.Name {
		case "q":
			err = c.inventory.SetQuery(ctx, *query)
		case "filter":
			var f view.Filter
			if f, err = view.ParseFilter(*filter); err == nil {
				err = c.inventory.SetFilter(ctx, f)
			}
		case "sort":
			var k view.SortKey
			if k, err = view.ParseSortKey(*sortKey); err == nil {
				err = c.inventory.SetSort(ctx, k)
			}
		}
	})
	if err != nil {
		return err
	}

	c.printView(c.inventory.View(), c.inventory.Options())
	return nil
}

func (c *Cli) printView(v view.View, opts view.Options) {
	if v.ItemCount == 0 {
		c.io.Println("No items yet. Use 'stockkeeper add' to add your first item.")
		return
	}

	if v.VisibleCount() == 0 {
		c.io.Println("No items match the current search.")
	} else {
		tw := tabwriter.NewWriter(c.io, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(tw, "ID\tNAME\tQTY\tUNIT\tCOST\tVALUE\tLOW AT\tSTATUS")
		for _, it := range v.Items {
			_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\t%d\t%s\n",
				shortID(it.ID), it.Name, it.Qty, it.Unit,
				c.money.Format(it.Cost), c.money.Format(it.Value()),
				it.LowAt, status(it.IsOut(), it.IsLow()))
		}
		_ = tw.Flush()
	}

	c.io.Println()
	c.io.Printf("Items: %d (shown %d, filter %s, sort %s", v.ItemCount, v.VisibleCount(), opts.Filter, opts.Sort)
	if opts.Query != "" {
		c.io.Printf(", search %s", strconv.Quote(opts.Query))
	}
	c.io.Println(")")
	c.io.Printf("Low stock: %d\n", v.LowCount)
	c.io.Printf("Total value: %s\n", c.money.Format(v.TotalValue))
}

func status(out, low bool) string {
	switch {
	case out:
		return "OUT"
	case low:
		return "LOW"
	default:
		return ""
	}
}
