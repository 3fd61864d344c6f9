package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mhewett/cftables/internal/cache"
	"github.com/mhewett/cftables/internal/config"
	"github.com/mhewett/cftables/internal/schemas"
)

// commonFlags holds the flag values shared by every subcommand. Each command
// registers its own instance so cobra keeps the flag sets independent.
type commonFlags struct {
	configPath    string
	standardNames string
	areaTypes     string
	udunits       string
	spoolDir      string
	checker       string
	version       string
	maxAge        float64
	verbose       bool
}

// register declares the shared flags on cmd.
func (f *commonFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	cmd.Flags().StringVarP(&f.standardNames, "standard-names", "s", "", "URL or path of the CF standard names table")
	cmd.Flags().StringVarP(&f.areaTypes, "area-types", "a", "", "URL or path of the CF area types table")
	cmd.Flags().StringVarP(&f.udunits, "udunits", "u", "", "Path of the udunits database (always local)")
	cmd.Flags().StringVar(&f.spoolDir, "spool-dir", "", "Directory holding cached tables")
	cmd.Flags().StringVar(&f.checker, "checker", "", "Checker executable name or path")
	cmd.Flags().Float64Var(&f.maxAge, "max-age", -1, "Freshness threshold in days for both tables (0 forces a refresh)")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "V", false, "Print detailed refresh narration")
}

// registerVersion declares the checker version flag; only commands that run
// the checker need it.
func (f *commonFlags) registerVersion(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.version, "cf-version", "v", "", "CF conventions version passed to the checker")
}

// resolve layers the configuration sources: explicit flags over the config
// file over environment variables over built-in defaults.
func (f *commonFlags) resolve(cmd *cobra.Command) (config.Config, error) {
	// Step 1: Load config file if provided, validating it against the schema
	// when the schema file can be located.
	var cfg config.Config
	if f.configPath != "" {
		if schemaPath := schemas.ResolveSchemaPath(schemas.ConfigSchemaFile); schemaPath != "" {
			if err := schemas.ValidateJSON(schemaPath, f.configPath); err != nil {
				return cfg, fmt.Errorf("invalid config file %s: %w", f.configPath, err)
			}
		}

		loaded, err := config.LoadConfig(f.configPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded

		if f.verbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", f.configPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority).
	// Only override if the flag was explicitly set.
	if cmd.Flags().Changed("standard-names") {
		cfg.StandardNames = f.standardNames
	}
	if cmd.Flags().Changed("area-types") {
		cfg.AreaTypes = f.areaTypes
	}
	if cmd.Flags().Changed("udunits") {
		cfg.Udunits = f.udunits
	}
	if cmd.Flags().Changed("spool-dir") {
		cfg.SpoolDir = f.spoolDir
	}
	if cmd.Flags().Changed("checker") {
		cfg.Checker = f.checker
	}
	if cmd.Flags().Changed("cf-version") {
		cfg.Version = f.version
	}
	if cmd.Flags().Changed("max-age") {
		age := f.maxAge
		cfg.StandardNamesMaxAge = &age
		cfg.AreaTypesMaxAge = &age
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = f.verbose
	}

	// Step 3: Fill remaining gaps from the environment, then from defaults.
	envCfg, err := config.FromEnv()
	if err != nil {
		return cfg, err
	}
	cfg = cfg.MergeWithDefaults(envCfg)
	cfg = cfg.MergeWithDefaults(config.DefaultConfig())

	// Step 4: Validate the merged result.
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// tableSet holds the two cacheable reference tables for one run.
type tableSet struct {
	StandardNames cache.Resource
	AreaTypes     cache.Resource
}

// all returns the tables in refresh order.
func (t tableSet) all() []cache.Resource {
	return []cache.Resource{t.StandardNames, t.AreaTypes}
}

// buildTables derives the per-run resources from the resolved configuration.
// The udunits database is not part of the set: it is always local and goes
// straight to the checker.
func buildTables(cfg config.Config) tableSet {
	return tableSet{
		StandardNames: cache.NewResource("standard names", cfg.StandardNames, cfg.SpoolDir, *cfg.StandardNamesMaxAge),
		AreaTypes:     cache.NewResource("area types", cfg.AreaTypes, cfg.SpoolDir, *cfg.AreaTypesMaxAge),
	}
}
