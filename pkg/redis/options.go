package redis

// WithAddrs sets the Redis server addresses.
func WithAddrs(addrs []string) Option {
	return func(c *Client) {
		if len(addrs) > 0 {
			c.opts.Addrs = addrs
		}
	}
}

// WithUsername sets the Redis username.
func WithUsername(username string) Option {
	return func(c *Client) {
		c.opts.Username = username
	}
}

// WithPassword sets the Redis password.
func WithPassword(password string) Option {
	return func(c *Client) {
		c.opts.Password = password
	}
}

// WithDB sets the Redis database number.
func WithDB(db int) Option {
	return func(c *Client) {
		c.opts.DB = db
	}
}

// WithPoolSize sets the maximum number of socket connections.
func WithPoolSize(size int) Option {
	return func(c *Client) {
		if size > 0 {
			c.opts.PoolSize = size
		}
	}
}
