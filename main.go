package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"ble-proximity.dev/internal/app"
	"ble-proximity.dev/internal/bluetooth"
	"ble-proximity.dev/internal/config"
	"ble-proximity.dev/internal/discovery"
	"ble-proximity.dev/internal/estimate"
	"ble-proximity.dev/internal/monitor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagConfig    string
	flagAddress   string
	flagScan      bool
	flagScanSecs  int
	flagInterval  float64
	flagDuration  int
	flagConnect   bool
	flagTxPower   int
	flagPathLoss  float64
	flagDemo      bool
	flagLogLevel  string
	flagLogFormat string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ble-proximity",
		Short: "BLE proximity monitor - estimate distance to a peripheral from RSSI",
		Long: `ble-proximity samples the signal strength of a Bluetooth Low Energy
peripheral and converts each reading into an estimated distance and a
proximity label. Without an address it scans first and lets you pick a
device from the classified list.

Requires sudo or CAP_NET_ADMIN capability for real Bluetooth scanning.
Use --demo for a simulated neighborhood without Bluetooth hardware.`,
		SilenceUsage: true,
		RunE:         run,
	}

	f := rootCmd.Flags()
	f.StringVar(&flagConfig, "config", "", "Path to YAML config file")
	f.StringVarP(&flagAddress, "address", "a", "", "MAC address of the device to monitor")
	f.BoolVarP(&flagScan, "scan", "s", false, "Scan and list nearby devices before monitoring")
	f.IntVarP(&flagScanSecs, "time", "t", 10, "Scan duration in seconds")
	f.Float64VarP(&flagInterval, "interval", "i", 1.0, "Interval between RSSI readings in seconds")
	f.IntVarP(&flagDuration, "duration", "d", 0, "Total monitoring duration in seconds (0 = until interrupted)")
	f.BoolVarP(&flagConnect, "connect", "c", false, "Attempt a direct connection to the device first")
	f.IntVarP(&flagTxPower, "power", "p", -59, "Calibration value: RSSI at 1 meter (dBm)")
	f.Float64VarP(&flagPathLoss, "factor", "n", 2.0, "Path loss exponent (2.0 free space, 2.5-4.0 indoors)")
	f.BoolVar(&flagDemo, "demo", false, "Run against fake devices (no Bluetooth required)")
	f.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	f.StringVar(&flagLogFormat, "log-format", "", "Log format: console or json")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := cfg.InitLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var transport bluetooth.Transport
	if flagDemo {
		transport = bluetooth.NewMockTransport()
	} else {
		transport = bluetooth.NewAdapter(logger)
	}

	address := cfg.Monitor.Address
	if flagScan || address == "" {
		devices, err := discovery.Scan(ctx, transport, cfg.Monitor.ScanDuration(), logger)
		if err != nil {
			return err
		}
		printDevices(os.Stdout, devices)

		if address == "" {
			if len(devices) == 0 {
				return fmt.Errorf("no devices found and no address given")
			}
			address, err = pickDevice(devices)
			if err != nil {
				return err
			}
			if address == "" {
				logger.Info("no device selected, exiting")
				return nil
			}
		}
	}
	if ctx.Err() != nil {
		return nil
	}

	return monitorDevice(ctx, transport, address, cfg, logger)
}

// applyFlags lets explicitly set flags win over file and environment values.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("address") {
		cfg.Monitor.Address = flagAddress
	}
	if flags.Changed("time") {
		cfg.Monitor.ScanSeconds = flagScanSecs
	}
	if flags.Changed("interval") {
		cfg.Monitor.IntervalSeconds = flagInterval
	}
	if flags.Changed("duration") {
		cfg.Monitor.DurationSeconds = flagDuration
	}
	if flags.Changed("connect") {
		cfg.Monitor.Connect = flagConnect
	}
	if flags.Changed("power") {
		cfg.Monitor.TxPower = flagTxPower
	}
	if flags.Changed("factor") {
		cfg.Monitor.PathLossExp = flagPathLoss
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = flagLogLevel
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = flagLogFormat
	}
}

func printDevices(w io.Writer, devices []discovery.Device) {
	if len(devices) == 0 {
		fmt.Fprintln(w, "No devices found.")
		return
	}
	fmt.Fprintln(w, "\nDevices found:")
	for i, d := range devices {
		fmt.Fprintf(w, "%d. Address: %s - Name: %s%s - RSSI: %s\n",
			i+1, d.Address, d.Label, d.Annotation(), d.RSSIString())
	}
}

func pickDevice(devices []discovery.Device) (string, error) {
	p := tea.NewProgram(app.NewPicker(devices))
	m, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("device picker: %w", err)
	}
	return m.(app.PickerModel).Selected(), nil
}

// scanWindow is how long the scanning source waits for fresh advertisements
// before each lookup.
const scanWindow = time.Second

func monitorDevice(ctx context.Context, transport bluetooth.Transport, address string, cfg *config.Config, logger *zap.Logger) error {
	session, err := transport.NewSession()
	if err != nil {
		return fmt.Errorf("create scan session: %w", err)
	}

	var sources []monitor.Source
	if cfg.Monitor.Connect {
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		conn, err := transport.Connect(connectCtx, address)
		cancel()
		if err != nil {
			// The user asked for a connection; the degradation is deliberate
			// but must never be silent.
			logger.Warn("connection failed, monitoring via passive scan instead",
				zap.String("address", address),
				zap.Error(err),
			)
		} else {
			defer func() { _ = conn.Disconnect() }()
			sources = append(sources, monitor.NewConnectedSource(conn))
		}
	}
	sources = append(sources,
		monitor.NewScanningSource(session, scanWindow),
		monitor.NewUnavailableSource(),
	)

	fmt.Println("\nMonitoring signal strength...")
	fmt.Println("(Press Ctrl+C to stop)")

	m := monitor.New(monitor.Options{
		Address:  address,
		Interval: cfg.Monitor.Interval(),
		Budget:   cfg.Monitor.Duration(),
		Calibration: estimate.Calibration{
			TxPower:     cfg.Monitor.TxPower,
			PathLossExp: cfg.Monitor.PathLossExp,
		},
		Source:  monitor.NewSourceChain(logger, sources...),
		Session: session,
		Sink:    newConsoleSink(os.Stdout),
		Logger:  logger,
	})
	return m.Run(ctx)
}

// consoleSink renders readings the way the interactive tool always has:
// one line with the raw signal and bar, one with the distance estimate.
type consoleSink struct {
	out     io.Writer
	history *monitor.RSSIRing
}

func newConsoleSink(out io.Writer) *consoleSink {
	return &consoleSink{
		out:     out,
		history: monitor.NewRSSIRing(10),
	}
}

func (s *consoleSink) Emit(r monitor.Reading) {
	ts := r.Time.Format("15:04:05")
	if !r.HasRSSI {
		fmt.Fprintf(s.out, "[%s] Reading #%d: Device not found in scan results. It may be out of range.\n", ts, r.Seq)
		return
	}

	s.history.Push(float64(r.RSSI))
	fmt.Fprintf(s.out, "[%s] Reading #%d: Signal Strength: %d dBm [%s] (avg %.1f)\n",
		ts, r.Seq, r.RSSI, r.Bar(), s.history.Average())

	distance := "unknown"
	if r.HasDistance {
		distance = fmt.Sprintf("%.2f meters", r.Distance)
	}
	fmt.Fprintf(s.out, "%sEstimated Distance: %s (%s)\n",
		strings.Repeat(" ", 22), distance, r.Proximity.Describe())
}
