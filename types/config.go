package types

// AppConfig is the application configuration loaded from the config file.
type AppConfig struct {
	Port              int      `yaml:"port"`
	MaxFileSize       int64    `yaml:"maxFileSize"`     // bytes, default 100 MiB
	AllowedTypes      []string `yaml:"allowedTypes"`    // media type allow-list
	StorageCapacity   int64    `yaml:"storageCapacity"` // bytes, default 100 GiB
	StoreLatencyMinMs int      `yaml:"storeLatencyMinMs"`
	StoreLatencyMaxMs int      `yaml:"storeLatencyMaxMs"`
	StepDelayMinMs    int      `yaml:"stepDelayMinMs"`
	StepDelayMaxMs    int      `yaml:"stepDelayMaxMs"`
	Seed              bool     `yaml:"seed"` // load the embedded demo collections at startup
	RateLimitRPS      float64  `yaml:"rateLimitRPS"`
	RateLimitBurst    int      `yaml:"rateLimitBurst"`
}

// Config holds runtime overrides from CLI flags.
type Config struct {
	Log           string
	UseConfigPath string
	UsePort       int
	SkipSeed      bool
}
