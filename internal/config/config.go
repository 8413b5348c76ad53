package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Env         string `mapstructure:"ENV"`
	Port        string `mapstructure:"PORT"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
	CORSAllowed string `mapstructure:"CORS_ALLOWED_ORIGINS"`

	// Segredo HS256 do provedor de auth; valida os tokens das rotas protegidas.
	JWTSecret string `mapstructure:"SUPABASE_JWT_SECRET"`

	RabbitUser string `mapstructure:"RABBITMQ_USER"`
	RabbitPass string `mapstructure:"RABBITMQ_PASS"`
	RabbitHost string `mapstructure:"RABBITMQ_HOST"`
	RabbitPort string `mapstructure:"RABBITMQ_PORT"`

	// Webhook do atendente IA (N8N). Vazio desativa as rotas de chat.
	AIWebhookURL string `mapstructure:"AI_WEBHOOK_URL"`
	// Webhook do extrator de contatos para o disparador.
	ExtractorWebhookURL string `mapstructure:"EXTRACTOR_WEBHOOK_URL"`
	// Proxy CORS usado para baixar planilhas publicadas.
	SheetProxyURL string `mapstructure:"SHEET_PROXY_URL"`

	MailHost string `mapstructure:"MAIL_HOST"`
	MailPort int    `mapstructure:"MAIL_PORT"`
	MailUser string `mapstructure:"MAIL_USER"`
	MailPass string `mapstructure:"MAIL_PASS"`
}

func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	v.SetDefault("ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("RABBITMQ_USER", "guest")
	v.SetDefault("RABBITMQ_PASS", "guest")
	v.SetDefault("RABBITMQ_HOST", "localhost")
	v.SetDefault("RABBITMQ_PORT", "5672")
	v.SetDefault("MAIL_PORT", 587)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
