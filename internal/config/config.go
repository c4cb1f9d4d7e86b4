package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env  string
	Port string

	PostgresURL  string
	DBMaxRetries int

	JWTSecret string
	JWTTTL    time.Duration

	OTPTTL          time.Duration
	OTPLength       int
	OTPMaxAttempts  int
	OTPResendWindow time.Duration
	OTPExposeCode   bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	KafkaBrokers           []string
	KafkaNotificationTopic string

	UploadDir      string
	UploadMaxBytes int64

	SweepSchedule         string
	Timezone              string
	NotificationQueueSize int
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "5003")
	v.SetDefault("DB_MAX_RETRIES", 5)
	v.SetDefault("JWT_TTL", "168h")
	v.SetDefault("OTP_TTL", "5m")
	v.SetDefault("OTP_LENGTH", 6)
	v.SetDefault("OTP_MAX_ATTEMPTS", 5)
	v.SetDefault("OTP_RESEND_WINDOW", "30s")
	v.SetDefault("OTP_EXPOSE_CODE", false)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("KAFKA_NOTIFICATION_TOPIC", "seraphina.notifications")
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("UPLOAD_MAX_BYTES", 20<<20)
	v.SetDefault("SWEEP_SCHEDULE", "0 0 * * *")
	v.SetDefault("TIMEZONE", "Asia/Kolkata")
	v.SetDefault("NOTIFICATION_QUEUE_SIZE", 256)
}

// Load reads .env when present and then the process environment.
func Load() *Config {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return &Config{
		Env:  v.GetString("APP_ENV"),
		Port: v.GetString("PORT"),

		PostgresURL:  v.GetString("POSTGRES_URL"),
		DBMaxRetries: v.GetInt("DB_MAX_RETRIES"),

		JWTSecret: v.GetString("JWT_SECRET"),
		JWTTTL:    v.GetDuration("JWT_TTL"),

		OTPTTL:          v.GetDuration("OTP_TTL"),
		OTPLength:       v.GetInt("OTP_LENGTH"),
		OTPMaxAttempts:  v.GetInt("OTP_MAX_ATTEMPTS"),
		OTPResendWindow: v.GetDuration("OTP_RESEND_WINDOW"),
		OTPExposeCode:   v.GetBool("OTP_EXPOSE_CODE"),

		RedisAddr:     v.GetString("REDIS_ADDR"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),

		TwilioAccountSID: v.GetString("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  v.GetString("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber: v.GetString("TWILIO_FROM_NUMBER"),

		SMTPHost:     v.GetString("SMTP_HOST"),
		SMTPPort:     v.GetInt("SMTP_PORT"),
		SMTPUsername: v.GetString("SMTP_USERNAME"),
		SMTPPassword: v.GetString("SMTP_PASSWORD"),
		SMTPFrom:     v.GetString("SMTP_FROM"),

		KafkaBrokers:           splitList(v.GetString("KAFKA_BROKERS")),
		KafkaNotificationTopic: v.GetString("KAFKA_NOTIFICATION_TOPIC"),

		UploadDir:      v.GetString("UPLOAD_DIR"),
		UploadMaxBytes: v.GetInt64("UPLOAD_MAX_BYTES"),

		SweepSchedule:         v.GetString("SWEEP_SCHEDULE"),
		Timezone:              v.GetString("TIMEZONE"),
		NotificationQueueSize: v.GetInt("NOTIFICATION_QUEUE_SIZE"),
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
