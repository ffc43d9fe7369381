package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuracion del servicio.
type Config struct {
	HTTPPort         string `env:"HTTP_PORT" envDefault:"8080"`
	SessionSecret    string `env:"SESSION_SECRET,required"`
	SessionTTLHours  int    `env:"SESSION_TTL_HOURS" envDefault:"24"`
	OTPTTLMinutes    int    `env:"OTP_TTL_MINUTES" envDefault:"5"`
	AutoReplyDelayMS int    `env:"AUTO_REPLY_DELAY_MS" envDefault:"1000"`
	LoginFailureURL  string `env:"LOGIN_FAILURE_URL" envDefault:"/login?error=oauth"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleCallbackURL  string `env:"GOOGLE_CALLBACK_URL" envDefault:"http://localhost:8080/auth/google/callback"`

	FacebookClientID     string `env:"FACEBOOK_CLIENT_ID"`
	FacebookClientSecret string `env:"FACEBOOK_CLIENT_SECRET"`
	FacebookCallbackURL  string `env:"FACEBOOK_CALLBACK_URL" envDefault:"http://localhost:8080/auth/facebook/callback"`

	InstagramClientID     string `env:"INSTAGRAM_CLIENT_ID"`
	InstagramClientSecret string `env:"INSTAGRAM_CLIENT_SECRET"`
	InstagramCallbackURL  string `env:"INSTAGRAM_CALLBACK_URL" envDefault:"http://localhost:8080/auth/instagram/callback"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
}

// LoadConfig carga la configuracion desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
