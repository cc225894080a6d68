package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/Avinash-pradhan/Pradhan-Chemistry-Classes/models"
	"github.com/joho/godotenv"
)

type Config struct {
	Port string
	Env  string

	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     string
	PostgresSSLMode  string
	PostgresTimeZone string

	// PublicBaseURL is the externally reachable base URL used to build
	// gateway redirect and callback targets.
	PublicBaseURL string

	Gateway models.PaymentGateway

	RazorpayKeyID     string
	RazorpayKeySecret string

	PhonePeMerchantID     string
	PhonePeSaltKey        string
	PhonePeSaltIndex      string
	PhonePeBaseURL        string
	PhonePeVerifyCallback bool

	SendPaymentNotifications bool
	SMSProvider              string
	TwilioAccountSID         string
	TwilioAuthToken          string
	TwilioFromNumber         string
	WhatsAppProvider         string
	WhatsAppPhoneNumberID    string
	WhatsAppAccessToken      string
	WhatsAppAPIVersion       string
	DefaultCountryCode       string

	UPIID        string
	ReceiverName string

	JWTSecret string
}

func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		Env:              getEnv("ENV", "development"),
		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		PostgresTimeZone: getEnv("POSTGRES_TIMEZONE", "Asia/Kolkata"),

		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),

		Gateway: models.PaymentGateway(getEnv("PAYMENT_GATEWAY", string(models.GatewayRazorpay))),

		RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),

		PhonePeMerchantID:     os.Getenv("PHONEPE_MERCHANT_ID"),
		PhonePeSaltKey:        os.Getenv("PHONEPE_SALT_KEY"),
		PhonePeSaltIndex:      os.Getenv("PHONEPE_SALT_INDEX"),
		PhonePeBaseURL:        os.Getenv("PHONEPE_BASE_URL"),
		PhonePeVerifyCallback: getBoolEnv("PHONEPE_VERIFY_CALLBACK", true),

		SendPaymentNotifications: getBoolEnv("SEND_PAYMENT_NOTIFICATIONS", true),
		SMSProvider:              getEnv("SMS_PROVIDER", ""),
		TwilioAccountSID:         os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:          os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber:         os.Getenv("TWILIO_FROM_NUMBER"),
		WhatsAppProvider:         getEnv("WHATSAPP_PROVIDER", ""),
		WhatsAppPhoneNumberID:    os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
		WhatsAppAccessToken:      os.Getenv("WHATSAPP_ACCESS_TOKEN"),
		WhatsAppAPIVersion:       getEnv("WHATSAPP_API_VERSION", "v19.0"),
		DefaultCountryCode:       getEnv("DEFAULT_COUNTRY_CODE", "+91"),

		UPIID:        os.Getenv("PAYMENT_UPI_ID"),
		ReceiverName: getEnv("PAYMENT_RECEIVER_NAME", "Pradhan Chemistry Classes"),

		JWTSecret: os.Getenv("JWT_SECRET"),
	}

	if cfg.PostgresUser == "" || cfg.PostgresPassword == "" || cfg.PostgresDB == "" {
		return nil, fmt.Errorf("missing required database environment variables")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}
	if cfg.Gateway != models.GatewayRazorpay && cfg.Gateway != models.GatewayPhonePe {
		return nil, fmt.Errorf("unsupported PAYMENT_GATEWAY %q", cfg.Gateway)
	}

	return cfg, nil
}

// RazorpayReady reports whether Razorpay credentials are present.
func (c *Config) RazorpayReady() bool {
	return c.RazorpayKeyID != "" && c.RazorpayKeySecret != ""
}

// PhonePeReady reports whether the full PhonePe credential set is present.
func (c *Config) PhonePeReady() bool {
	return c.PhonePeMerchantID != "" && c.PhonePeSaltKey != "" &&
		c.PhonePeSaltIndex != "" && c.PhonePeBaseURL != ""
}

// OnlinePaymentReady reports whether the selected gateway is usable.
func (c *Config) OnlinePaymentReady() bool {
	if c.Gateway == models.GatewayPhonePe {
		return c.PhonePeReady()
	}
	return c.RazorpayReady()
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
