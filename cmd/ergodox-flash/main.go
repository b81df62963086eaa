// Command ergodox-flash is the HalfKay host-side flasher (spec §4.3, §6):
// it parses an Intel HEX firmware image, flattens it into a flash image,
// and writes it to a connected keyboard one page at a time, rebooting the
// keyboard into the bootloader first if it isn't already there.
package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/urfave/cli.v2"

	"github.com/ergodox/ergodox-go/internal/firmlog"
	"github.com/ergodox/ergodox-go/internal/halfkay"
	"github.com/ergodox/ergodox-go/internal/hexfile"
)

type stderrLogger struct{}

func (stderrLogger) Log(msg string) { fmt.Fprintln(os.Stderr, msg) }

func main() {
	app := &cli.App{
		Name:    "ergodox-flash",
		Usage:   "flash an ErgoDox keyboard's firmware over HalfKay",
		Version: "v0.1.0",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log every control transfer to stderr",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "flash",
				Usage:     "flash a .hex firmware image",
				ArgsUsage: "<file.hex>",
				Action:    runFlash,
			},
			{
				Name:  "detect",
				Usage: "report whether a HalfKay-mode device is connected",
				Action: runDetect,
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("verbose") {
				firmlog.SetLogger(stderrLogger{})
				firmlog.SetEnabled(true)
			}
			return nil
		},
	}

	sort.Sort(cli.FlagsByName(app.Flags))
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runFlash(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		cli.ShowSubcommandHelp(c)
		return cli.Exit("", 86)
	}

	f, err := os.Open(path)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer f.Close()

	segments, err := hexfile.Parse(f)
	if err != nil {
		return cli.Exit(fmt.Sprintf("parsing %s: %v", path, err), 1)
	}

	base, bytes, err := hexfile.Flatten(segments)
	if err != nil {
		return cli.Exit(fmt.Sprintf("flattening %s: %v", path, err), 1)
	}

	fmt.Printf("%s: %d bytes at base %#06x\n", path, len(bytes), base)

	opener := halfkay.NewGousbOpener()
	defer opener.Ctx.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := halfkay.FlashWithDiscovery(ctx, opener, uint32(base), bytes); err != nil {
		return cli.Exit(fmt.Sprintf("flashing: %v", err), 1)
	}

	fmt.Println("flash complete")
	return nil
}

func runDetect(c *cli.Context) error {
	opener := halfkay.NewGousbOpener()
	defer opener.Ctx.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	present, err := halfkay.Detect(ctx, opener)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if present {
		fmt.Println("HalfKay device detected")
		return nil
	}
	fmt.Println("no HalfKay device found")
	return cli.Exit("", 1)
}
