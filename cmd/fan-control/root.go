package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sweeney/fan-control/internal/config"
	"github.com/sweeney/fan-control/internal/gpio"
	"github.com/sweeney/fan-control/internal/thermal"
	"github.com/sweeney/fan-control/internal/ui"
)

// newRootCommand builds the CLI. daemon is invoked with the validated
// configuration.
func newRootCommand(daemon func(cfg config.Config) error) *cobra.Command {
	v := config.New()
	var (
		cfgFile string
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "fan-control",
		Short: "Thermal fan controller with hysteresis",
		Long: `fan-control samples a temperature sensor and drives a fan on a GPIO
line. The fan starts at the on temperature and stops at the off
temperature; readings in between keep the current state.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ui.SetColorEnabled(!noColor)
			if cfgFile != "" {
				if err := config.ReadFile(v, cfgFile); err != nil {
					return err
				}
			}
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			ui.SetDebugEnabled(cfg.Verbose)
			return daemon(cfg)
		},
	}

	flags := cmd.Flags()
	flags.String(config.KeyChip, gpio.DefaultChip, "GPIO character device")
	flags.Int(config.KeyOffset, 0, "line offset of the fan on the chip (required)")
	flags.Float64(config.KeyOnTemp, config.DefaultOnTemp, "temperature in °C at or above which the fan starts")
	flags.Float64(config.KeyOffTemp, config.DefaultOffTemp, "temperature in °C at or below which the fan stops")
	flags.Int64(config.KeyInterval, config.DefaultIntervalMs, "poll interval in milliseconds")
	flags.BoolP(config.KeyVerbose, "v", false, "log every sample")
	flags.String(config.KeySensor, thermal.DefaultPath, "sysfs file holding the temperature in milli-degrees")
	flags.String(config.KeyBroker, "", "MQTT broker URL, e.g. tcp://192.168.1.200:1883 (empty disables)")
	flags.String(config.KeyHTTP, "", "status server address, e.g. :8080 (empty disables)")
	flags.StringVarP(&cfgFile, "config", "c", "", "YAML config file with the same keys as the flags")
	flags.BoolVar(&noColor, "no-color", false, "disable coloured output")

	flags.VisitAll(func(f *pflag.Flag) {
		switch f.Name {
		case "config", "no-color":
			return
		}
		// Binding only fails for a nil flag.
		_ = v.BindPFlag(f.Name, f)
	})

	return cmd
}
