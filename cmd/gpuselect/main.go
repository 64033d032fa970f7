package main

import (
	"io"
	"os"
	"runtime"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vkngwrapper/gpuselect/internal/bootstrap"
	"github.com/vkngwrapper/gpuselect/internal/config"
	"github.com/vkngwrapper/gpuselect/internal/vkhost"
)

func newRootCmd(out io.Writer) *cobra.Command {
	cfg := config.Default()

	cmd := &cobra.Command{
		Use:           "gpuselect",
		Short:         "Pick the first graphics-capable GPU and create a logical device on it",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			log.SetLevel(cfg.LogLevel())

			return run(cfg, out)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.AppName, "app-name", cfg.AppName, "application name reported to the driver")
	flags.BoolVar(&cfg.Validation, "validation", cfg.Validation, "enable the Khronos validation layer")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "log debug output")
	flags.IntVar(&cfg.QueueCount, "queues", cfg.QueueCount, "number of queues to request from the graphics family")
	flags.Float32Var(&cfg.QueuePriority, "priority", cfg.QueuePriority, "priority of each requested queue, in [0, 1]")

	return cmd
}

func run(cfg config.Config, out io.Writer) error {
	host, err := vkhost.Open(cfg)
	if err != nil {
		return err
	}
	defer host.Destroy()

	result, err := bootstrap.Run(host, out, cfg.BootstrapOptions())
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"device": result.Properties.Name,
		"family": result.QueueFamily.Index,
		"queues": len(result.Queues),
	}).Info("logical device ready")

	return result.Device.WaitIdle()
}

func main() {
	runtime.LockOSThread()

	err := newRootCmd(os.Stdout).Execute()
	if err != nil {
		log.Fatalf("%+v\n", err)
	}
}
