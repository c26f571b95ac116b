package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string   `env:"BASE_URL"`
	Database    Database `envPrefix:"DB_"`

	Paystack Paystack `envPrefix:"PAYSTACK_"`
	SMTP     SMTP     `envPrefix:"SMTP_"`
	Admin    Admin    `envPrefix:"ADMIN_"`
}

type Paystack struct {
	BaseApiURL  string `env:"BASE_API_URL" envDefault:"https://api.paystack.co"`
	SecretKey   string `env:"SECRET_KEY"`
	CallbackURL string `env:"CALLBACK_URL"`
}

type SMTP struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT" envDefault:"587"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	From     string `env:"FROM"`
}

type Admin struct {
	// shared key checked by the admin middleware
	APIKey string `env:"API_KEY"`
	// recipient of order-placed notifications
	Email string `env:"EMAIL"`
}

type Database struct {
	Driver string `env:"DRIVER" envDefault:"sqlite"` // sqlite | mysql
	DSN    string `env:"DSN" envDefault:"store.db"`
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
