package spins

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/julianstephens/spinday/internal/cli"
	"github.com/julianstephens/spinday/internal/constants"
	apperrors "github.com/julianstephens/spinday/internal/errors"
	"github.com/julianstephens/spinday/internal/models"
	"github.com/julianstephens/spinday/internal/spin"
)

type SpinCmd struct {
	Context string `short:"c" help:"Pool to spin (weekday|weekend). Defaults to today's."`
	NoWait  bool   `help:"Skip the spin animation and the reveal delay."`
	Seed    *int64 `help:"Seed the wheel to replay a spin."`
}

func (c *SpinCmd) Validate() error {
	if c.Context == "" {
		return nil
	}
	_, err := models.ParsePoolContext(c.Context)
	return err
}

func (c *SpinCmd) Run(ctx *cli.Context) error {
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return c.spin(runCtx, ctx)
}

func (c *SpinCmd) spin(runCtx context.Context, ctx *cli.Context) error {
	svc := ctx.Roulette()

	var pc models.PoolContext
	var err error
	if c.Context != "" {
		pc, _ = models.ParsePoolContext(c.Context)
	} else if pc, err = svc.TodayContext(); err != nil {
		return err
	}

	var rng spin.Random
	if c.Seed != nil {
		rng = spin.NewRandom(*c.Seed)
	}
	var opts []spin.Option
	if c.NoWait {
		opts = append(opts, spin.WithTickInterval(0))
	}

	wheel, err := svc.NewWheel(pc, rng, opts...)
	if errors.Is(err, apperrors.ErrEmptyPool) {
		return fmt.Errorf("the %s pool is empty: add items with 'spinday item add' or restore hidden ones", pc)
	}
	if err != nil {
		return err
	}

	ctx.Printf("🎡 %s wheel: %s\n", pc, strings.Join(wheel.WorkingSet(), " · "))

	onTick := func(st spin.State) {
		if !c.NoWait {
			ctx.Printf("\r   spinning %2d/%d  %6.1f°", st.Tick, constants.SpinTicks, spin.NormalizeRotation(st.Rotation))
		}
	}
	st, err := wheel.Spin(runCtx, onTick)
	if !c.NoWait {
		ctx.Println()
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			ctx.Println("Spin cancelled.")
			return nil
		}
		return err
	}

	ctx.Printf("🎯 %s\n", st.Selected)

	var event models.SpinEvent
	if c.NoWait {
		event, err = svc.Record(runCtx, wheel)
	} else {
		event, err = svc.Settle(runCtx, wheel)
	}
	if errors.Is(err, context.Canceled) {
		ctx.Println("Spin cancelled before it was recorded.")
		return nil
	}
	if err != nil {
		return err
	}

	ctx.Printf("✓ Recorded spin for %s\n", event.Day)
	ctx.Println("  When you're done, log it with: spinday diary add <photo>")
	if wheel.Seed != 0 {
		ctx.Printf("  Replay with: spinday spin --context %s --seed %d\n", pc, wheel.Seed)
	}
	return nil
}
