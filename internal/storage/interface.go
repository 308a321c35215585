package storage

// Provider is a string-keyed store. Each key holds one serialized collection.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Entries
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Keys() ([]string, error)

	GetConfigPath() string
}
