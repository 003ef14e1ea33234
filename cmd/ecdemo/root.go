package main

import (
	crand "crypto/rand"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/smartcontractkit/toyecc/internal/config"
	"github.com/smartcontractkit/toyecc/internal/curve"
	"github.com/smartcontractkit/toyecc/internal/group"
	"github.com/smartcontractkit/toyecc/internal/metrics"
	"github.com/smartcontractkit/toyecc/internal/points"
	"github.com/smartcontractkit/toyecc/internal/xof"
	"github.com/spf13/cobra"
)

const seedDST = "toyecc/ecdemo/seed"

// env is shared by all subcommands. It is populated in the root command's PersistentPreRunE.
type env struct {
	configPath string
	logLevel   string
	seed       string
	curveName  string

	cfg     *config.Config
	logger  *logrus.Logger
	metrics *metrics.Collector
	tables  *points.Cache
}

func makeRootCommand() *cobra.Command {
	e := &env{}
	command := &cobra.Command{
		Use:   "ecdemo [command] (flags)",
		Short: "ecdemo demonstrates elliptic curve arithmetic on short Weierstrass curves.",
		Long: `ecdemo demonstrates elliptic curve arithmetic on short Weierstrass curves y² = x³ + ax + b over small prime
fields and over the reals.

Typical usage:
    ecdemo curves
    ecdemo points --curve lecture23
    ecdemo add 1 11 3 6 --curve lecture23
    ecdemo multiply 7 --curve lecture23
    ecdemo ecdh --curve secp256k1 --seed demo
    ecdemo dlog 8 2 --curve ecdlp11
    ecdemo lecture
`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.init(cmd)
		},
	}
	command.PersistentFlags().StringVar(&e.configPath, "config", "", "path to a YAML configuration file")
	command.PersistentFlags().StringVar(&e.logLevel, "log-level", "", "log level (overrides the configuration file)")
	command.PersistentFlags().StringVar(&e.seed, "seed", "", "seed for reproducible key generation (overrides the configuration file)")
	command.PersistentFlags().StringVar(&e.curveName, "curve", "", "name of the curve to use")

	command.AddCommand(makeCurvesCommand(e))
	command.AddCommand(makePointsCommand(e))
	command.AddCommand(makeAddCommand(e))
	command.AddCommand(makeMultiplyCommand(e))
	command.AddCommand(makeECDHCommand(e))
	command.AddCommand(makeDiscreteLogCommand(e))
	command.AddCommand(makeLectureCommand(e))
	return command
}

func (e *env) init(cmd *cobra.Command) error {
	cfg := config.Default()
	if e.configPath != "" {
		var err error
		if cfg, err = config.Load(e.configPath); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = e.logLevel
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = e.seed
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}

	logger := logrus.New()
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetLevel(level)

	collector, err := metrics.NewCollector(prometheus.NewRegistry())
	if err != nil {
		return err
	}
	tables, err := points.NewCache(8)
	if err != nil {
		return err
	}

	e.cfg, e.logger, e.metrics, e.tables = cfg, logger, collector, tables
	return nil
}

// curve returns the curve selected with --curve, or the given default.
func (e *env) curve(defaultName string) (*curve.Named, error) {
	name := e.curveName
	if name == "" {
		name = defaultName
	}
	named, err := e.cfg.Lookup(name, curve.WithLogger(e.logger))
	if err != nil {
		return nil, err
	}
	e.logger.WithFields(logrus.Fields{"curve": named.Name(), "equation": named.String()}).Debug("Selected curve")
	return named, nil
}

func (e *env) arithmetic(c *curve.Curve) group.Arithmetic {
	return group.Arithmetic{Curve: c, Observer: e.metrics}
}

// random returns the source of private keys: a deterministic stream derived from the seed, or crypto/rand.
func (e *env) random(purpose string) io.Reader {
	if e.cfg.Seed == "" {
		return crand.Reader
	}
	h := xof.New(seedDST)
	h.WriteString(e.cfg.Seed)
	h.WriteString(purpose)
	return h
}

func parseScalar(s string) (*big.Int, error) {
	k, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, fmt.Errorf("invalid scalar %q", s)
	}
	return k, nil
}

// parsePoint parses a point given by its coordinates; "inf" denotes the point at infinity.
func parsePoint(c *curve.Curve, coordinates ...string) (group.Point, error) {
	if len(coordinates) == 1 && (strings.EqualFold(coordinates[0], "inf") || coordinates[0] == "∞") {
		return group.Infinity, nil
	}
	if len(coordinates) != 2 {
		return group.Infinity, fmt.Errorf("expected x and y coordinates or \"inf\", got %q", coordinates)
	}
	x, err := c.Field().Parse(coordinates[0])
	if err != nil {
		return group.Infinity, err
	}
	y, err := c.Field().Parse(coordinates[1])
	if err != nil {
		return group.Infinity, err
	}
	return group.NewPoint(c, x, y)
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
