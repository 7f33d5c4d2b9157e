package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	DatabaseURL string `env:"DATABASE_URL"`

	// Origin used for success/cancel redirects when the request carries
	// no Origin header.
	DefaultOrigin string `env:"DEFAULT_ORIGIN" envDefault:"https://hiper-shop.vercel.app"`

	Stripe Stripe `envPrefix:"STRIPE_"`
	Auth   Auth   `envPrefix:"AUTH_"`
}

type Stripe struct {
	BaseApiURL string `env:"BASE_API_URL" envDefault:"https://api.stripe.com"`
	SecretKey  string `env:"SECRET_KEY"`

	// WebhookSecret signs inbound events. AllowUnsignedWebhooks skips
	// verification when no secret is set; development only, never enable
	// in production.
	WebhookSecret         string `env:"WEBHOOK_SECRET"`
	AllowUnsignedWebhooks bool   `env:"ALLOW_UNSIGNED_WEBHOOKS" envDefault:"false"`
}

type Auth struct {
	JWTSecret string `env:"JWT_SECRET"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
