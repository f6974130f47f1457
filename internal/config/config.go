package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL,required,notEmpty"` // public url used in emailed download links

	Database Database `envPrefix:"DATABASE_"`
	Stripe   Stripe   `envPrefix:"STRIPE_"`
	Resend   Resend   `envPrefix:"RESEND_"`
	Admin    Admin    `envPrefix:"ADMIN_"`
	Redis    Redis    `envPrefix:"REDIS_"`
	Storage  Storage  `envPrefix:"STORAGE_"`
}

type Database struct {
	Driver string `env:"DRIVER" envDefault:"mysql"` // mysql | sqlite
	URL    string `env:"URL,required,notEmpty"`
}

type Stripe struct {
	SecretKey        string `env:"SECRET_KEY,required,notEmpty"`
	WebhookSecretKey string `env:"WEBHOOK_SECRET_KEY,required,notEmpty"`
	Currency         string `env:"CURRENCY" envDefault:"usd"`
}

type Resend struct {
	APIKey      string `env:"API_KEY,required,notEmpty"`
	SenderEmail string `env:"SENDER_EMAIL,required,notEmpty"`
}

type Admin struct {
	Username       string `env:"USERNAME,required,notEmpty"`
	HashedPassword string `env:"HASHED_PASSWORD,required,notEmpty"`
}

// Redis is optional; an empty Addr disables the catalog cache.
type Redis struct {
	Addr     string `env:"ADDR"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

type Storage struct {
	PrivateDir string `env:"PRIVATE_DIR" envDefault:"products"`
	PublicDir  string `env:"PUBLIC_DIR" envDefault:"public"`
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
