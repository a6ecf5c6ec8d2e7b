package config

var Conf Config

type Config struct {
	Application Application `yaml:"application" json:"application"`
}

type Application struct {
	DisplayName string     `yaml:"display-name" json:"display_name"`
	Server      Server     `yaml:"server" json:"server"`
	Datasource  Datasource `yaml:"datasource" json:"datasource"`
	Migration   string     `yaml:"migration"`
	Security    Security   `yaml:"security" json:"security"`
	Redis       Redis      `yaml:"redis" json:"redis"`
	WebAuthn    WebAuthn   `yaml:"webauthn" json:"webauthn"`
	Kafka       Kafka      `yaml:"kafka" json:"kafka"`
	Twilio      Twilio     `yaml:"twilio" json:"twilio"`
	Storage     Storage    `yaml:"storage" json:"storage"`
	Speech      Speech     `yaml:"speech" json:"speech"`
	Reminder    Reminder   `yaml:"reminder" json:"reminder"`
}

type Server struct {
	ContextPath string `yaml:"context-path" json:"context_path"`
	ApiVersion  string `yaml:"api-version" json:"api_version"`
	Port        string `yaml:"port"`
}

type Datasource struct {
	PrimaryURL            string `yaml:"primary-url" json:"primary_url"`
	MaxIdleConnections    int    `yaml:"max-idle-connections" json:"max_idle_connections"`
	MaxOpenConnections    int    `yaml:"max-open-connections" json:"max_open_connections"`
	ConnectionMaxLifetime int    `yaml:"connection-max-lifetime" json:"connection_max_lifetime"`
}

type Security struct {
	AdminToken              string `yaml:"admin-token" json:"-"`
	ShareLinkSecret         string `yaml:"share-link-secret" json:"-"`
	SessionValidityInHours  int    `yaml:"session-validity-in-hours" json:"session_validity_in_hours"`
	ShareLinkValidityInMins int    `yaml:"share-link-validity-in-mins" json:"share_link_validity_in_mins"`
	CookieName              string `yaml:"cookie-name" json:"cookie_name"`
	CookieSecure            bool   `yaml:"cookie-secure" json:"cookie_secure"`
	CookieSameSite          string `yaml:"cookie-same-site" json:"cookie_same_site"`
}

type Redis struct {
	Host string `yaml:"address" json:"address"`
}

type WebAuthn struct {
	RpDisplayName           string `yaml:"rp-display-name" json:"rp_display_name"`
	RpOrigin                string `yaml:"rp-origin" json:"rp_origin"`
	RpID                    string `yaml:"rp-id" json:"rp_id"`
	ChallengeTimeoutInMins  int    `yaml:"challenge-timeout-in-mins" json:"challenge_timeout_in_mins"`
	ChallengeCacheTTLInMins int    `yaml:"challenge-cache-ttl-in-mins" json:"challenge_cache_ttl_in_mins"`
}

type Kafka struct {
	Brokers       []string `yaml:"brokers" json:"brokers"`
	ReminderTopic string   `yaml:"reminder-topic" json:"reminder_topic"`
}

type Twilio struct {
	AccountSid string `yaml:"account_sid" json:"-"`
	AuthToken  string `yaml:"auth_token" json:"-"`
	From       string `yaml:"from" json:"from"`
}

type Storage struct {
	Region       string `yaml:"region" json:"region"`
	Bucket       string `yaml:"bucket" json:"bucket"`
	Endpoint     string `yaml:"endpoint" json:"endpoint"`
	AccessKey    string `yaml:"access-key" json:"-"`
	SecretKey    string `yaml:"secret-key" json:"-"`
	PresignInMin int    `yaml:"presign-in-min" json:"presign_in_min"`
}

type Speech struct {
	LanguageCode string `yaml:"language-code" json:"language_code"`
	SampleRateHz int    `yaml:"sample-rate-hz" json:"sample_rate_hz"`
}

type Reminder struct {
	ScanIntervalInSeconds int `yaml:"scan-interval-in-seconds" json:"scan_interval_in_seconds"`
	WindowInMinutes       int `yaml:"window-in-minutes" json:"window_in_minutes"`
}
