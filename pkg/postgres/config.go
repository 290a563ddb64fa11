// Package postgres provides the PostgreSQL database client used by the service.
package postgres

// Config holds the parameters needed to establish a database connection.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	Schema   string
	SSLMode  string
	// MaxIdleConns is the maximum number of idle connections in the pool.
	MaxIdleConns int
	// MaxOpenConns is the maximum number of open connections to the database.
	MaxOpenConns int
	// ConnMaxIdleTime is the longest a connection may sit idle, in minutes.
	ConnMaxIdleTime int
	// ConnMaxLifetime is the longest a connection may be reused, in minutes.
	ConnMaxLifetime int
	// ConnectTimeout is the connection timeout in seconds.
	ConnectTimeout int
	// Debug enables SQL statement logging.
	Debug bool
}
