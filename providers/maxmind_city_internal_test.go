package providers

import (
	"context"
	"errors"
	"io/ioutil"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/9seconds/geoenrich/geolib"
)

type cityReaderMock struct {
	mock.Mock
}

func (m *cityReaderMock) LookupNetwork(ip net.IP, result interface{}) (*net.IPNet, bool, error) {
	args := m.Called(ip, result)

	network, _ := args.Get(0).(*net.IPNet)

	return network, args.Bool(1), args.Error(2)
}

func (m *cityReaderMock) Close() error {
	return m.Called().Error(0)
}

type MaxmindCityTestSuite struct {
	suite.Suite

	ctx    context.Context
	reader *cityReaderMock
	m      *MaxmindCity
	tmpDir string
}

func (suite *MaxmindCityTestSuite) SetupTest() {
	dir, err := ioutil.TempDir("", "test_")
	if err != nil {
		panic(err)
	}

	suite.tmpDir = dir
	suite.ctx = context.Background()
	suite.reader = &cityReaderMock{}
	suite.m = &MaxmindCity{dbReader: suite.reader}
}

func (suite *MaxmindCityTestSuite) TearDownTest() {
	suite.reader.AssertExpectations(suite.T())
	os.RemoveAll(suite.tmpDir)
}

func (suite *MaxmindCityTestSuite) TestOpenErrorNoFile() {
	_, err := NewMaxmindCity(suite.tmpDir)

	suite.Error(err)
}

func (suite *MaxmindCityTestSuite) TestOpenErrorBadFile() {
	path := filepath.Join(suite.tmpDir, DatabaseFileName)

	suite.NoError(ioutil.WriteFile(path, []byte("definitely not a database"), 0644))

	_, err := NewMaxmindCity(suite.tmpDir)

	suite.Error(err)
}

func (suite *MaxmindCityTestSuite) TestLookupBadIP() {
	_, _, err := suite.m.Lookup(suite.ctx, "999.1.1.1")

	suite.Error(err)
}

func (suite *MaxmindCityTestSuite) TestLookupNotFound() {
	suite.reader.On("LookupNetwork", net.ParseIP("9.9.9.9"), mock.Anything).
		Return(nil, false, nil).
		Once()

	city, found, err := suite.m.Lookup(suite.ctx, "9.9.9.9")

	suite.NoError(err)
	suite.False(found)
	suite.Nil(city)
}

func (suite *MaxmindCityTestSuite) TestLookupError() {
	suite.reader.On("LookupNetwork", mock.Anything, mock.Anything).
		Return(nil, false, errors.New("corrupted")).
		Once()

	_, found, err := suite.m.Lookup(suite.ctx, "1.2.3.4")

	suite.Error(err)
	suite.False(found)
}

func (suite *MaxmindCityTestSuite) TestLookupOk() {
	suite.reader.On("LookupNetwork", net.ParseIP("81.2.69.142"), mock.Anything).
		Run(func(args mock.Arguments) {
			city := args.Get(1).(*geolib.City)
			city.Country.IsoCode = "GB"
			city.City.Names = map[string]string{"en": "London"}
		}).
		Return(nil, true, nil).
		Once()

	city, found, err := suite.m.Lookup(suite.ctx, "81.2.69.142")

	suite.NoError(err)
	suite.True(found)
	suite.Equal("GB", city.Country.IsoCode)
	suite.Equal("London", city.City.Names["en"])
}

func (suite *MaxmindCityTestSuite) TestLookupTimeout() {
	release := make(chan struct{})
	defer close(release)

	suite.reader.On("LookupNetwork", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			<-release
		}).
		Return(nil, false, nil).
		Maybe()

	ctx, cancel := context.WithTimeout(suite.ctx, 10*time.Millisecond)
	defer cancel()

	_, _, err := suite.m.Lookup(ctx, "1.2.3.4")

	suite.True(errors.Is(err, context.DeadlineExceeded))
}

func (suite *MaxmindCityTestSuite) TestClose() {
	suite.reader.On("Close").Return(nil).Once()

	suite.NoError(suite.m.Close())
	suite.NoError(suite.m.Close())

	_, _, err := suite.m.Lookup(suite.ctx, "1.2.3.4")

	suite.True(errors.Is(err, ErrDatabaseIsClosed))
}

func TestMaxmindCity(t *testing.T) {
	suite.Run(t, &MaxmindCityTestSuite{})
}

func TestIsCityDatabase(t *testing.T) {
	for _, v := range []string{"GeoLite2-City", "GeoIP2-City", "GeoIP2-Enterprise"} {
		if !isCityDatabase(v) {
			t.Errorf("%s should be a city database", v)
		}
	}

	for _, v := range []string{"GeoLite2-Country", "GeoLite2-ASN"} {
		if isCityDatabase(v) {
			t.Errorf("%s should not be a city database", v)
		}
	}
}
