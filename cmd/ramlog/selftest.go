package main

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ACIDBURN2501/embedded-log/internal/rawdump"
	"github.com/ACIDBURN2501/embedded-log/internal/render"
	"github.com/ACIDBURN2501/embedded-log/ramlog"
)

func newSelftestCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "selftest",
		Short: "Exercise an in-process store and show the result",
		Long:  "Run a scripted logging session against a live store (appends, buffer wraparound, a once-latched hot loop), then capture and display it. With --out, also save the capture as an image usable with the other commands.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelftest(outPath)
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "save the capture to an image file (.zst for compressed)")

	return cmd
}

// runSelftest drives the store the way firmware would: a boot
// sequence, a hot loop guarded by a once-latch, and enough traffic to
// wrap the ring.
func runSelftest(outPath string) error {
	var tick uint32
	s := &ramlog.Store{}
	s.Init(func() uint32 { tick++; return tick - 1 })

	s.Event(ramlog.Info, "Boot complete, fw %s", version)
	s.Event(ramlog.Warn, "Brownout detector armed at %dmV", 2900)

	var stallOnce ramlog.Once
	for i := 0; i < 50; i++ {
		s.EventOnce(&stallOnce, ramlog.Fault, "Motor stall in tick loop")
	}

	for i := 0; i < ramlog.Entries; i++ {
		s.Event(ramlog.Info, "Sensor sweep %d", i)
	}

	img := rawdump.Capture(s)
	for i, e := range img.Chronological() {
		fmt.Println(render.FormatEntry(i, e, 0))
	}
	render.BuildSummary("(in-process)", img, nil).WriteText(os.Stdout, 0)

	if outPath == "" {
		return nil
	}
	if err := rawdump.WriteFile(outPath, img, binary.LittleEndian); err != nil {
		return err
	}
	if err := rawdump.WriteMetadata(outPath, rawdump.NewMetadata("selftest", "little")); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(os.Stderr, "Saved capture to %s\n", outPath)
	return nil
}
