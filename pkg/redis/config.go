package redis

// Config holds Redis connection settings.
type Config struct {
	Addrs    []string
	Username string
	Password string
	DB       int
	PoolSize int
}
