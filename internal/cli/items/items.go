package items

import (
	"fmt"
	"slices"

	"github.com/julianstephens/spinday/internal/cli"
	"github.com/julianstephens/spinday/internal/models"
)

type ItemListCmd struct {
	Context string `short:"c" help:"Only list one pool (weekday|weekend)."`
	Hidden  bool   `help:"Include hidden default items."`
}

func (c *ItemListCmd) Validate() error {
	if c.Context == "" {
		return nil
	}
	_, err := models.ParsePoolContext(c.Context)
	return err
}

func (c *ItemListCmd) Run(ctx *cli.Context) error {
	contexts := models.Contexts
	if c.Context != "" {
		pc, _ := models.ParsePoolContext(c.Context)
		contexts = []models.PoolContext{pc}
	}

	mgr := ctx.Pool()
	for i, pc := range contexts {
		items, err := mgr.Items(pc)
		if err != nil {
			return fmt.Errorf("failed to list %s items: %w", pc, err)
		}
		if i > 0 {
			ctx.Println()
		}

		active := 0
		for _, item := range items {
			if !item.Hidden {
				active++
			}
		}
		ctx.Printf("%s (%d on the wheel):\n", pc, active)
		if len(items) == 0 {
			ctx.Println("  (empty)")
		}
		for _, item := range items {
			if item.Hidden && !c.Hidden {
				continue
			}
			marker := " "
			switch {
			case item.Hidden:
				marker = "-"
			case item.Provenance == models.ProvenanceUserAdded:
				marker = "+"
			}
			ctx.Printf("  %s %s\n", marker, item.Label)
		}
	}
	ctx.Println()
	ctx.Println("+ added by you, - hidden default")
	return nil
}

type ItemAddCmd struct {
	Label   string `arg:"" help:"Activity label."`
	Context string `short:"c" help:"Pool to add to (weekday|weekend)." default:"weekday"`
}

func (c *ItemAddCmd) Validate() error {
	_, err := models.ParsePoolContext(c.Context)
	return err
}

func (c *ItemAddCmd) Run(ctx *cli.Context) error {
	label, err := cli.CleanLabel(c.Label)
	if err != nil {
		return err
	}
	pc, _ := models.ParsePoolContext(c.Context)
	if err := ctx.Pool().AddUserItem(pc, label); err != nil {
		return fmt.Errorf("failed to add item: %w", err)
	}
	ctx.Printf("✓ Added %q to the %s pool\n", label, pc)
	return nil
}

type ItemRemoveCmd struct {
	Label   string `arg:"" help:"Activity label you added."`
	Context string `short:"c" help:"Pool to remove from (weekday|weekend)." default:"weekday"`
}

func (c *ItemRemoveCmd) Validate() error {
	_, err := models.ParsePoolContext(c.Context)
	return err
}

func (c *ItemRemoveCmd) Run(ctx *cli.Context) error {
	label, err := cli.CleanLabel(c.Label)
	if err != nil {
		return err
	}
	pc, _ := models.ParsePoolContext(c.Context)

	user, err := ctx.Store.GetUserItems(pc)
	if err != nil {
		return fmt.Errorf("failed to read items: %w", err)
	}
	if !slices.Contains(user, label) {
		if ctx.Catalog.Contains(label) {
			ctx.Printf("%q is a default item. Use 'spinday item hide' to take it off the wheel.\n", label)
			return nil
		}
		ctx.Printf("No item %q in the %s pool\n", label, pc)
		return nil
	}

	if err := ctx.Pool().RemoveUserItem(pc, label); err != nil {
		return fmt.Errorf("failed to remove item: %w", err)
	}
	ctx.Printf("✓ Removed %q from the %s pool\n", label, pc)
	return nil
}

type ItemHideCmd struct {
	Label string `arg:"" help:"Default activity label to hide from every pool."`
}

func (c *ItemHideCmd) Run(ctx *cli.Context) error {
	label, err := cli.CleanLabel(c.Label)
	if err != nil {
		return err
	}
	if !ctx.Catalog.Contains(label) {
		return fmt.Errorf("%q is not a default item (use 'spinday item remove' for items you added)", label)
	}
	if err := ctx.Pool().HideDefaultItem(label); err != nil {
		return fmt.Errorf("failed to hide item: %w", err)
	}
	ctx.Printf("✓ Hid %q\n", label)
	return nil
}

type ItemRestoreCmd struct {
	Label string `arg:"" optional:"" help:"Hidden default label to restore."`
	All   bool   `help:"Restore every hidden default."`
}

func (c *ItemRestoreCmd) Validate() error {
	if c.All == (c.Label != "") {
		return fmt.Errorf("give either a label or --all")
	}
	return nil
}

func (c *ItemRestoreCmd) Run(ctx *cli.Context) error {
	labels := []string{c.Label}
	if c.All {
		hidden, err := ctx.Store.GetDeletedDefaults()
		if err != nil {
			return fmt.Errorf("failed to read hidden items: %w", err)
		}
		labels = hidden
	}

	mgr := ctx.Pool()
	for _, label := range labels {
		if err := mgr.RestoreDefaultItem(label); err != nil {
			return fmt.Errorf("failed to restore %q: %w", label, err)
		}
		ctx.Printf("✓ Restored %q\n", label)
	}
	if len(labels) == 0 {
		ctx.Println("No hidden items.")
	}
	return nil
}
