package tool

import (
	"flag"

	"github.com/flowdrop/flowdrop-go/types"
)

// SetFlags parses CLI flags and returns the override config.
func SetFlags() types.Config {
	var cfg types.Config
	flag.StringVar(&cfg.Log, "log", "", "log mode: dev|prod|none")
	flag.StringVar(&cfg.UseConfigPath, "useConfigPath", "", "override config file path")
	flag.IntVar(&cfg.UsePort, "usePort", 0, "override listen port")
	flag.BoolVar(&cfg.SkipSeed, "skipSeed", false, "start with empty stores instead of the embedded demo data")
	flag.Parse()
	return cfg
}
