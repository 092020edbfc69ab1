package enricher_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/9seconds/geoenrich/enricher"
	"github.com/9seconds/geoenrich/geolib"
)

type CacheMock struct {
	mock.Mock
}

func (m *CacheMock) Get(ctx context.Context, ip string) (geolib.Record, bool, error) {
	args := m.Called(ctx, ip)

	return args.Get(0).(geolib.Record), args.Bool(1), args.Error(2)
}

type ResolverMock struct {
	mock.Mock
}

func (m *ResolverMock) Lookup(ctx context.Context, ip string) (*geolib.City, bool, error) {
	args := m.Called(ctx, ip)

	city, _ := args.Get(0).(*geolib.City)

	return city, args.Bool(1), args.Error(2)
}

type LoggerMock struct {
	mock.Mock
}

func (m *LoggerMock) LookupError(eventID, ip string, err error) {
	m.Called(eventID, ip, err)
}

func (m *LoggerMock) NotFound(eventID, ip string) {
	m.Called(eventID, ip)
}

type recordingSink struct {
	mutex  sync.Mutex
	events []enricher.EnrichedEvent
}

func (r *recordingSink) Emit(evt enricher.EnrichedEvent) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.events = append(r.events, evt)
}

func (r *recordingSink) Events() []enricher.EnrichedEvent {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return append([]enricher.EnrichedEvent{}, r.events...)
}
