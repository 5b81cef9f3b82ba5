package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/NicholasChin28/osu/internal/engine"
)

var extentOpts struct {
	at       float64
	dumpYAML bool
}

var extentCmd = &cobra.Command{
	Use:   "extent",
	Short: "Print container extents, offsets and draw order at a point in time",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadChart()
		if err != nil {
			return err
		}

		session, err := engine.NewSession(cfg, c, log, nil)
		if err != nil {
			return err
		}
		frame := session.Step(extentOpts.at)

		if extentOpts.dumpYAML {
			enc := yaml.NewEncoder(os.Stdout)
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(frame)
		}

		printFrame(frame)
		return nil
	},
}

func printFrame(f engine.Frame) {
	fmt.Printf("--- [LAYOUT @ %.0f ms | axes %s] ---\n", f.Time, f.Axes)
	for _, a := range f.Adjustments {
		fmt.Printf("[*] Точка %.0f мс x%.2f | extent %.2f мс | offset %.3f | length %.3f | объектов %d\n",
			a.ControlPoint.StartTime, a.ControlPoint.Multiplier, a.Extent, a.Offset, a.Length, len(a.Objects))
		for _, o := range a.Objects {
			fmt.Printf("    %-12s %8.0f-%-8.0f pos %7.3f\n", o.ID, o.StartTime, o.EndTime, o.Position)
		}
	}
	if len(f.HitTestOrder) > 0 {
		fmt.Printf("[*] Hit test: %s\n", strings.Join(f.HitTestOrder, " > "))
	}
	fmt.Println("-----------------------------")
}

func init() {
	f := extentCmd.Flags()
	f.Float64Var(&extentOpts.at, "at", 0, "Время воспроизведения (мс)")
	f.BoolVar(&extentOpts.dumpYAML, "yaml", false, "Вывести кадр целиком в YAML")
}
