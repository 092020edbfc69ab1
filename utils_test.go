package main

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/9seconds/geoenrich/enricher"
	"github.com/9seconds/geoenrich/geolib"
)

type EnricherMock struct {
	mock.Mock
}

func (m *EnricherMock) Enrich(ctx context.Context, evt enricher.Event) (enricher.EnrichedEvent, bool) {
	args := m.Called(ctx, evt)
	return args.Get(0).(enricher.EnrichedEvent), args.Bool(1)
}

type ProcessEventsTestSuite struct {
	suite.Suite

	enricher *EnricherMock
}

func (suite *ProcessEventsTestSuite) SetupTest() {
	suite.enricher = &EnricherMock{}
}

func (suite *ProcessEventsTestSuite) TestSequential() {
	first := enricher.Event{EventID: "session-connect", Session: "s1", SrcIP: "1.2.3.4"}
	second := enricher.Event{EventID: "direct-tcpip-request", Session: "s1", DstIP: "5.6.7.8"}

	suite.enricher.On("Enrich", mock.Anything, first).
		Once().
		Return(enricher.EnrichedEvent{}, true)
	suite.enricher.On("Enrich", mock.Anything, second).
		Once().
		Return(enricher.EnrichedEvent{}, false)

	input := strings.NewReader(`{"eventid":"session-connect","session":"s1","src_ip":"1.2.3.4"}
{"eventid":"direct-tcpip-request","session":"s1","dst_ip":"5.6.7.8"}
`)

	suite.Nil(processEvents(context.Background(), suite.enricher, input))
	suite.enricher.AssertExpectations(suite.T())
}

func (suite *ProcessEventsTestSuite) TestSkipBrokenLines() {
	evt := enricher.Event{EventID: "session-connect", Session: "s2", SrcIP: "1.2.3.4"}

	suite.enricher.On("Enrich", mock.Anything, evt).
		Once().
		Return(enricher.EnrichedEvent{}, true)

	input := strings.NewReader(`{"eventid":

not json
{"eventid":"session-connect","session":"s2","src_ip":"1.2.3.4"}`)

	suite.Nil(processEvents(context.Background(), suite.enricher, input))
	suite.enricher.AssertExpectations(suite.T())
}

func (suite *ProcessEventsTestSuite) TestCancelled() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	input := strings.NewReader(`{"eventid":"session-connect","session":"s1","src_ip":"1.2.3.4"}`)

	suite.Nil(processEvents(ctx, suite.enricher, input))
	suite.enricher.AssertNotCalled(suite.T(), "Enrich", mock.Anything, mock.Anything)
}

func TestProcessEvents(t *testing.T) {
	suite.Run(t, &ProcessEventsTestSuite{})
}

func TestLoadConfigOverrides(t *testing.T) {
	dir, err := ioutil.TempDir("", "geoenrich_main_test_")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	confPath := filepath.Join(dir, "config.toml")
	confContent := "shape = \"minimal\"\ncache_size = 10\n"
	if err := ioutil.WriteFile(confPath, []byte(confContent), 0600); err != nil {
		panic(err)
	}

	file, err := os.Open(confPath)
	if err != nil {
		panic(err)
	}

	conf, err := loadConfig(configOverrides{
		file:   file,
		dbPath: dir,
		shape:  "full",
		listen: "127.0.0.1:8000",
	})

	assert.Nil(t, err)
	assert.Equal(t, dir, conf.DBPath)
	assert.Equal(t, geolib.ShapeFull, conf.Shape)
	assert.Equal(t, 10, conf.CacheSize)
	assert.Equal(t, "127.0.0.1:8000", conf.Listen)
}

func TestLoadConfigBadShape(t *testing.T) {
	_, err := loadConfig(configOverrides{shape: "huge"})

	assert.NotNil(t, err)
}

func TestLoadConfigMissingDatabaseDirectory(t *testing.T) {
	_, err := loadConfig(configOverrides{dbPath: "/nonexistent/geoenrich"})

	assert.NotNil(t, err)
}
