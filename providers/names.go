package providers

const (
	// DatabaseFileName is a name of MaxMind GeoLite2 City database
	// file in a database directory.
	DatabaseFileName = "GeoLite2-City.mmdb"

	// DefaultDirectory is a conventional location of MaxMind databases.
	DefaultDirectory = "/var/lib/GeoIP"
)
