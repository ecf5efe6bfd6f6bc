package config

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port        int    `yaml:"port" validate:"gt=0"`
	MetricsAddr string `yaml:"metricsAddr"`
}

// ScheduleConfig contains static schedule configuration
type ScheduleConfig struct {
	DatabaseURL string `yaml:"databaseURL"`
	Timezone    string `yaml:"timezone"`
	// Local wall-clock time (HH:MM) at which the store's daily import
	// finishes and cached service resolutions must be dropped.
	RefreshAt string `yaml:"refreshAt" validate:"omitempty,len=5"`
}

// RealtimeConfig contains the GTFS-Realtime TripUpdates feed configuration
type RealtimeConfig struct {
	FeedURL        string `yaml:"feedURL" validate:"omitempty,url"`
	APIKey         string `yaml:"apiKey"`
	PollIntervalMS int    `yaml:"pollIntervalMS" validate:"gte=0"`
	TimeoutMS      int    `yaml:"timeoutMS" validate:"gte=0"`
}

// NATSConfig contains the optional delay publisher configuration.
// An empty URL disables publishing.
type NATSConfig struct {
	URL           string `yaml:"url" validate:"omitempty,url"`
	SubjectPrefix string `yaml:"subjectPrefix"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server   ServerConfig   `yaml:"server" validate:"required"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Realtime RealtimeConfig `yaml:"realtime"`
	NATS     NATSConfig     `yaml:"nats"`
}
