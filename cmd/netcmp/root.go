package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hupe1980/netcmp"
	"github.com/hupe1980/netcmp/blobstore"
	"github.com/hupe1980/netcmp/blobstore/minio"
	"github.com/hupe1980/netcmp/blobstore/s3"
	"github.com/hupe1980/netcmp/codec"
	"github.com/hupe1980/netcmp/distance"
	"github.com/hupe1980/netcmp/internal/config"
	"github.com/hupe1980/netcmp/internal/resource"
)

// errUsage marks argument errors that are reported with the list of
// distance types.
var errUsage = errors.New("invalid arguments")

// rootFlags holds the flag values of one command instance.
type rootFlags struct {
	configPath string
	retries    int
	failFast   bool
	cacheCodec string
	cacheSize  int
	logLevel   string
	logFormat  string
	store      string
	bucket     string
	endpoint   string
	region     string
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "netcmp <network_folder> <distance_type> <process_count>",
		Short: "Compute pairwise network distances",
		Long: `Compute alignment-free distances between every pair of networks in a folder.

Each network is a graphlet signature file (<name>.ndump2). The degree,
clustering, diameter and spectral distances also need the LEDA graph file
(<name>.gw) next to it. One tab-delimited distance matrix per output is
written into the folder.

Examples:
  netcmp ./networks gcd73 8
  netcmp ./networks gdda 4 --cache-codec lz4
  netcmp experiments/ rgf 16 --store s3 --bucket my-networks`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, &flags, args)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.configPath, "config", "c", "", "Path to a YAML configuration file")
	f.IntVar(&flags.retries, "retries", 0, "Retries per failed entity or pair")
	f.BoolVar(&flags.failFast, "fail-fast", false, "Stop at the first failed item")
	f.StringVar(&flags.cacheCodec, "cache-codec", codec.Default.Name(), "Distribution cache codec ("+strings.Join(codec.Names(), ", ")+")")
	f.IntVar(&flags.cacheSize, "cache-size", 64, "Decoded distributions kept in memory")
	f.StringVar(&flags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	f.StringVar(&flags.logFormat, "log-format", "text", "Log format (text, json)")
	f.StringVar(&flags.store, "store", config.StoreLocal, "Input store (local, s3, minio)")
	f.StringVar(&flags.bucket, "bucket", "", "Bucket for the s3 and minio stores")
	f.StringVar(&flags.endpoint, "endpoint", "", "Endpoint for the s3 and minio stores")
	f.StringVar(&flags.region, "region", "", "Region for the s3 store")

	cmd.AddCommand(newListCmd())
	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available distance types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printDistanceTypes(cmd.OutOrStdout())
			return nil
		},
	}
}

func printDistanceTypes(w io.Writer) {
	fmt.Fprintln(w, "Available options are:")
	for _, m := range distance.Metrics() {
		fmt.Fprintf(w, "  %-12s - %s\n", m.String(), m.Description())
	}
}

// usageError prints the distance types and returns err marked as a usage error.
func usageError(cmd *cobra.Command, err error) error {
	printDistanceTypes(cmd.ErrOrStderr())
	return fmt.Errorf("%w: %w", errUsage, err)
}

// resolveConfig loads the configuration file and overlays explicitly set flags.
func resolveConfig(cmd *cobra.Command, flags *rootFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}

	set := cmd.Flags().Changed
	if set("retries") {
		cfg.Run.Retries = flags.retries
	}
	if set("fail-fast") {
		cfg.Run.FailFast = flags.failFast
	}
	if set("cache-codec") {
		cfg.Cache.Codec = flags.cacheCodec
	}
	if set("cache-size") {
		cfg.Cache.Size = flags.cacheSize
	}
	if set("log-level") {
		cfg.Log.Level = flags.logLevel
	}
	if set("log-format") {
		cfg.Log.Format = flags.logFormat
	}
	if set("store") {
		cfg.Store.Kind = flags.store
	}
	if set("bucket") {
		cfg.Store.Bucket = flags.bucket
	}
	if set("endpoint") {
		cfg.Store.Endpoint = flags.endpoint
	}
	if set("region") {
		cfg.Store.Region = flags.region
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runCompare(cmd *cobra.Command, flags *rootFlags, args []string) error {
	folder, selector, count := args[0], args[1], args[2]

	metric, err := distance.ParseMetric(selector)
	if err != nil {
		return usageError(cmd, err)
	}
	workers, err := strconv.Atoi(count)
	if err != nil || workers < 1 {
		return usageError(cmd, fmt.Errorf("%w: %q", netcmp.ErrInvalidWorkers, count))
	}

	cfg, err := resolveConfig(cmd, flags)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := openStore(ctx, cfg.Store, folder)
	if err != nil {
		return err
	}

	opts, err := compareOptions(cmd.ErrOrStderr(), cfg)
	if err != nil {
		return err
	}
	opts = append(opts, netcmp.WithWorkers(workers))

	cmp, err := netcmp.New(store, opts...)
	if err != nil {
		return err
	}

	report, err := cmp.Run(ctx, metric)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Compared %d networks with %s in %s\n", len(report.Entities), report.Metric, report.Duration.Round(time.Millisecond))
	for _, name := range report.Outputs {
		fmt.Fprintln(out, name)
	}
	return nil
}

func openStore(ctx context.Context, cfg config.StoreConfig, folder string) (blobstore.Store, error) {
	switch cfg.Kind {
	case config.StoreS3:
		return s3.New(ctx, cfg.Bucket,
			s3.WithPrefix(folder),
			s3.WithRegion(cfg.Region),
			s3.WithEndpoint(cfg.Endpoint),
		)
	case config.StoreMinio:
		return minio.NewFromEndpoint(cfg.Endpoint, cfg.AccessKey, cfg.SecretKey, cfg.Secure, cfg.Bucket, folder)
	default:
		info, err := os.Stat(folder)
		if err != nil || !info.IsDir() {
			return nil, fmt.Errorf("%w: provided network folder path is not found: %s", errUsage, folder)
		}
		return blobstore.NewLocalStore(folder), nil
	}
}

func compareOptions(logOut io.Writer, cfg *config.Config) ([]netcmp.Option, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	logger := netcmp.NewTextLogger(logOut, level)
	if strings.EqualFold(cfg.Log.Format, "json") {
		logger = netcmp.NewJSONLogger(logOut, level)
	}

	c, ok := codec.ByName(cfg.Cache.Codec)
	if !ok {
		return nil, fmt.Errorf("unknown cache codec %q", cfg.Cache.Codec)
	}

	memory, err := config.ParseSize(cfg.Resources.MemoryLimit)
	if err != nil {
		return nil, err
	}
	ioRate, err := config.ParseSize(cfg.Resources.IORateLimit)
	if err != nil {
		return nil, err
	}
	rc := resource.NewController(resource.Config{
		MemoryLimitBytes:   memory,
		MaxConcurrentLoads: cfg.Resources.MaxConcurrentLoads,
		IOLimitBytesPerSec: ioRate,
	})

	return []netcmp.Option{
		netcmp.WithLogger(logger),
		netcmp.WithRetries(cfg.Run.Retries),
		netcmp.WithFailFast(cfg.Run.FailFast),
		netcmp.WithCacheCodec(c),
		netcmp.WithCacheCapacity(cfg.Cache.Size),
		netcmp.WithResources(rc),
		netcmp.WithProgressInterval(cfg.Run.ProgressInterval/10, cfg.Run.ProgressInterval),
	}, nil
}
