package providers

import (
	"context"
	"net"
	"path/filepath"
	"strings"
	"sync"

	"github.com/juju/errors"
	"github.com/oschwald/geoip2-golang"
	"github.com/oschwald/maxminddb-golang"

	"github.com/9seconds/geoenrich/geolib"
)

type cityReader interface {
	LookupNetwork(ip net.IP, result interface{}) (*net.IPNet, bool, error)
	Close() error
}

type lookupResult struct {
	city  *geolib.City
	found bool
	err   error
}

// MaxmindCity resolves addresses with MaxMind GeoLite2 City database.
// A database handle is opened once and shared by all lookups.
type MaxmindCity struct {
	path         string
	dbReader     cityReader
	dbReaderLock sync.RWMutex
}

// Lookup returns a database record for the given address. found is
// false if database has no record for it.
func (m *MaxmindCity) Lookup(ctx context.Context, ip string) (*geolib.City, bool, error) {
	addr := net.ParseIP(ip)
	if addr == nil {
		return nil, false, errors.NotValidf("ip address %q", ip)
	}

	if err := ctx.Err(); err != nil {
		return nil, false, errors.Annotatef(err, "cannot lookup %s", ip)
	}

	resultChan := make(chan lookupResult, 1)

	go func() {
		resultChan <- m.lookup(addr)
	}()

	select {
	case <-ctx.Done():
		return nil, false, errors.Annotatef(ctx.Err(), "lookup of %s has timed out", ip)
	case result := <-resultChan:
		return result.city, result.found, result.err
	}
}

func (m *MaxmindCity) lookup(addr net.IP) lookupResult {
	m.dbReaderLock.RLock()
	defer m.dbReaderLock.RUnlock()

	if m.dbReader == nil {
		return lookupResult{err: ErrDatabaseIsClosed}
	}

	city := &geolib.City{}

	_, found, err := m.dbReader.LookupNetwork(addr, city)
	if err != nil {
		return lookupResult{err: errors.Annotatef(err, "cannot lookup %s", addr)}
	}

	if !found {
		return lookupResult{}
	}

	return lookupResult{city: city, found: true}
}

// Path returns a path to the database file.
func (m *MaxmindCity) Path() string {
	return m.path
}

// Close releases a database handle. It is safe to call it several
// times.
func (m *MaxmindCity) Close() error {
	m.dbReaderLock.Lock()
	defer m.dbReaderLock.Unlock()

	if m.dbReader == nil {
		return nil
	}

	err := m.dbReader.Close()
	m.dbReader = nil

	return errors.Annotate(err, "cannot close database")
}

// NewMaxmindCity opens GeoLite2-City.mmdb from the given directory.
// Error here means that geolocation is not configured properly.
func NewMaxmindCity(baseDirectory string) (*MaxmindCity, error) {
	path := filepath.Join(filepath.Clean(baseDirectory), DatabaseFileName)

	reader, err := maxminddb.Open(path)
	if err != nil {
		return nil, errors.Annotatef(err, "cannot open database %s", path)
	}

	if !isCityDatabase(reader.Metadata.DatabaseType) {
		reader.Close() // nolint: errcheck

		return nil, errors.Annotatef(geoip2.InvalidMethodError{
			Method:       "City",
			DatabaseType: reader.Metadata.DatabaseType,
		}, "cannot use database %s", path)
	}

	return &MaxmindCity{
		path:     path,
		dbReader: reader,
	}, nil
}

func isCityDatabase(databaseType string) bool {
	return strings.Contains(databaseType, "City") || strings.Contains(databaseType, "Enterprise")
}
